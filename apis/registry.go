/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package apis

import "iter"

// Entry is a single (key, target) association in a store.
type Entry struct {
	// Key is the canonical key as stored (display form).
	Key string
	// Target is the registered value: a *hierarchy.Class, a callable, a
	// nested registry or any other registered object. Shared, never copied.
	Target any
	// Alias reports whether Key was produced from an explicit alias rather
	// than from the target's own name.
	Alias bool
}

// Mapping is the read-style surface exposed by every registry-bearing owner.
// Iteration order is insertion order.
type Mapping interface {
	// Contains reports whether key (or a dotted/slashed path) resolves.
	Contains(key string) bool
	// Len returns the number of keys in the owner's own store.
	Len() int
	// All yields keys in insertion order. Restartable.
	All() iter.Seq[string]
	// Keys returns a snapshot of the keys.
	Keys() []string
	// Values returns a snapshot of the targets.
	Values() []any
	// Items yields (key, target) pairs in insertion order.
	Items() iter.Seq2[string, any]
	// Lookup resolves key, or a dotted/slashed path, to its target.
	Lookup(key string) (any, error)
	// Get is Lookup with a fallback.
	Get(key string, fallback ...any) any
	// Clear empties the owner's own store.
	Clear()
}

// Nester is implemented by targets that own a store of their own, so path
// lookups can descend into them.
type Nester interface {
	// NestedMapping returns the owner's own mapping, or nil when detached.
	NestedMapping() Mapping
}
