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

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidName is returned when a derived or explicit key fails the
	// legality check, or a mandatory prefix/suffix rule is violated.
	ErrInvalidName = errors.New("autoreg: invalid name")
	// ErrKeyCollision is returned when a key already exists in a store that
	// does not permit overwriting, or when one registration repeats a key.
	ErrKeyCollision = errors.New("autoreg: key collision")
	// ErrNamespaceAlias is returned when the same namespace is registered
	// into one registry tree under two different paths.
	ErrNamespaceAlias = errors.New("autoreg: namespace already registered under a different name")
	// ErrStandardNamespace is returned when scanning a standard library namespace.
	ErrStandardNamespace = errors.New("autoreg: cannot register a standard library namespace")
	// ErrNotFound is returned when a key or a path segment does not resolve.
	ErrNotFound = errors.New("autoreg: key not found")
	// ErrInvalidConfig is returned for unusable options (bad regex, options
	// that are not allowed in the current context).
	ErrInvalidConfig = errors.New("autoreg: invalid configuration")
	// ErrInstanceRequired is returned when a type-level call reaches a
	// user-defined method that needs an instance.
	ErrInstanceRequired = errors.New("autoreg: method requires an instance")
	// ErrUnknownMethod is returned by dynamic dispatch for names outside the
	// Mapping surface.
	ErrUnknownMethod = errors.New("autoreg: unknown mapping method")
	// ErrUnidentifiable is returned when no raw identifier can be found for a
	// target and no explicit name was given.
	ErrUnidentifiable = errors.New("autoreg: cannot identify target")
)

// KeyError attaches the operation, the store and the key to one of the
// sentinel errors above.
type KeyError struct {
	Op    string // operation, e.g. "derive", "insert", "lookup"
	Store string // owner name of the store, may be empty
	Key   string // offending key or identifier
	Err   error  // sentinel
}

// Error implements error.
func (e *KeyError) Error() string {
	if e.Store != "" {
		return fmt.Sprintf("%s: %s %q in %s", e.Err, e.Op, e.Key, e.Store)
	}
	return fmt.Sprintf("%s: %s %q", e.Err, e.Op, e.Key)
}

// Unwrap returns the sentinel.
func (e *KeyError) Unwrap() error {
	return e.Err
}
