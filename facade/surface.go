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

package facade

import (
	"fmt"
	"iter"

	"dirpx.dev/autoreg/apis"
	"dirpx.dev/autoreg/store"
)

// Source is a registry-bearing owner as seen by the facade.
type Source interface {
	// Name returns the owner's raw identifier.
	Name() string
	// Store returns the owner's own store, or nil once the link is gone.
	Store() *store.Store
}

// Surface implements apis.Mapping over the own store of a Source. Owners
// embed it. Every read goes through Source.Store, so an owner whose store
// link was cleared answers as an empty mapping instead of failing.
type Surface struct {
	src Source
}

// Ensure Surface implements apis.Mapping and apis.Nester.
var (
	_ apis.Mapping = Surface{}
	_ apis.Nester  = Surface{}
)

// NewSurface binds a Surface to src.
func NewSurface(src Source) Surface {
	return Surface{src: src}
}

func (f Surface) store() *store.Store {
	if f.src == nil {
		return nil
	}
	return f.src.Store()
}

// Contains reports whether key, or a dotted/slashed path, resolves.
func (f Surface) Contains(key string) bool {
	_, err := f.store().Resolve(key)
	return err == nil
}

// Len returns the number of keys in the own store.
func (f Surface) Len() int { return f.store().Len() }

// All yields keys in insertion order.
func (f Surface) All() iter.Seq[string] { return f.store().All() }

// Keys returns a snapshot of the keys in insertion order.
func (f Surface) Keys() []string { return f.store().Keys() }

// Values returns a snapshot of the targets in insertion order.
func (f Surface) Values() []any { return f.store().Values() }

// Items yields (key, target) pairs in insertion order.
func (f Surface) Items() iter.Seq2[string, any] { return f.store().Items() }

// Entries returns a snapshot of the entries, alias flags included.
func (f Surface) Entries() []apis.Entry { return f.store().Entries() }

// Lookup resolves key, or a dotted/slashed path, to its target. Missing keys
// fail with apis.ErrNotFound.
func (f Surface) Lookup(key string) (any, error) {
	s := f.store()
	if s == nil {
		return nil, &apis.KeyError{Op: "lookup", Key: key, Err: apis.ErrNotFound}
	}
	return s.Resolve(key)
}

// Get returns the target under key. When key is missing it returns the
// target under fallback if fallback is itself an existing key, fallback
// itself otherwise, or nil when no fallback is given.
func (f Surface) Get(key string, fallback ...any) any {
	if v, err := f.Lookup(key); err == nil {
		return v
	}
	if len(fallback) == 0 {
		return nil
	}
	if k, ok := fallback[0].(string); ok {
		if v, err := f.Lookup(k); err == nil {
			return v
		}
	}
	return fallback[0]
}

// NameOf returns the canonical key of target in the own store.
func (f Surface) NameOf(target any) (string, bool) { return f.store().NameOf(target) }

// Clear empties the own store.
func (f Surface) Clear() { f.store().Clear() }

// NestedMapping lets path lookups descend into the owner.
func (f Surface) NestedMapping() apis.Mapping {
	if f.store() == nil {
		return nil
	}
	return f
}

// String renders "<Name: [keys]>", or "<class Name>" when the owner has no store.
func (f Surface) String() string {
	name := ""
	if f.src != nil {
		name = f.src.Name()
	}
	s := f.store()
	if s == nil {
		return fmt.Sprintf("<class %s>", name)
	}
	return fmt.Sprintf("<%s: %q>", name, s.Keys())
}
