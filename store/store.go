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

package store

import (
	"iter"
	"log/slog"
	"reflect"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"dirpx.dev/autoreg/apis"
	"dirpx.dev/autoreg/naming"
)

// Store is an ordered key -> entry mapping owned by one class or standing
// registry. Iteration follows insertion order; lookups never reorder.
//
// Keys are indexed by their folded form under the owner's configuration,
// so a case-insensitive store also matches explicit names given in mixed
// case. Entries keep the key as registered.
//
// A nil *Store behaves as an empty, read-only store.
type Store struct {
	owner string
	cfg   apis.Config
	m     *orderedmap.OrderedMap[string, apis.Entry]
}

// New creates an empty store for owner under cfg.
func New(owner string, cfg apis.Config) *Store {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		owner: owner,
		cfg:   cfg,
		m:     orderedmap.New[string, apis.Entry](),
	}
}

// Owner returns the name of the owning class or registry.
func (s *Store) Owner() string {
	if s == nil {
		return ""
	}
	return s.owner
}

// Config returns the owner's effective configuration.
func (s *Store) Config() apis.Config {
	if s == nil {
		return apis.Config{}
	}
	return s.cfg
}

// Check reports whether key could be inserted: it fails with
// apis.ErrKeyCollision when key exists and the store does not overwrite.
func (s *Store) Check(key string) error {
	if s == nil || s.cfg.Overwrite {
		return nil
	}
	if _, ok := s.m.Get(naming.Fold(key, s.cfg)); ok {
		return &apis.KeyError{Op: "insert", Store: s.owner, Key: key, Err: apis.ErrKeyCollision}
	}
	return nil
}

// Put inserts e. An existing key is replaced in place (its slot in the
// iteration order is kept) when the store overwrites, and is a collision
// otherwise.
func (s *Store) Put(e apis.Entry) error {
	if s == nil {
		return &apis.KeyError{Op: "insert", Key: e.Key, Err: apis.ErrNotFound}
	}
	if err := s.Check(e.Key); err != nil {
		return err
	}
	_, replaced := s.m.Set(naming.Fold(e.Key, s.cfg), e)
	s.cfg.Logger.Debug("autoreg: entry stored",
		"store", s.owner, "key", e.Key, "alias", e.Alias, "replaced", replaced)
	return nil
}

// Entry returns the entry stored under key, matched per the store's case
// sensitivity. Paths are not resolved.
func (s *Store) Entry(key string) (apis.Entry, bool) {
	if s == nil {
		return apis.Entry{}, false
	}
	return s.m.Get(naming.Fold(key, s.cfg))
}

// Resolve returns the target stored under key. A key that is not present as
// a whole is read as a path: "a.b.c" or "a/b/c" resolves segment by segment,
// descending into targets that implement apis.Nester. Each segment is matched
// by the store it is looked up in.
func (s *Store) Resolve(key string) (any, error) {
	if e, ok := s.Entry(key); ok {
		return e.Target, nil
	}
	i := strings.IndexAny(key, naming.Separators)
	if i < 0 {
		return nil, s.notFound(key)
	}
	head, rest := key[:i], key[i+1:]
	e, ok := s.Entry(head)
	if !ok {
		return nil, s.notFound(head)
	}
	n, ok := e.Target.(apis.Nester)
	if !ok {
		return nil, s.notFound(key)
	}
	m := n.NestedMapping()
	if m == nil {
		return nil, s.notFound(key)
	}
	return m.Lookup(rest)
}

// NameOf returns the canonical key of target: the first primary key
// registered for it.
func (s *Store) NameOf(target any) (string, bool) {
	if s == nil || target == nil {
		return "", false
	}
	for p := s.m.Oldest(); p != nil; p = p.Next() {
		if !p.Value.Alias && same(p.Value.Target, target) {
			return p.Value.Key, true
		}
	}
	return "", false
}

// Len returns the number of keys.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return s.m.Len()
}

// All yields keys in insertion order.
func (s *Store) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		if s == nil {
			return
		}
		for p := s.m.Oldest(); p != nil; p = p.Next() {
			if !yield(p.Value.Key) {
				return
			}
		}
	}
}

// Items yields (key, target) pairs in insertion order.
func (s *Store) Items() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if s == nil {
			return
		}
		for p := s.m.Oldest(); p != nil; p = p.Next() {
			if !yield(p.Value.Key, p.Value.Target) {
				return
			}
		}
	}
}

// Keys returns a snapshot of the keys in insertion order.
func (s *Store) Keys() []string {
	out := make([]string, 0, s.Len())
	for k := range s.All() {
		out = append(out, k)
	}
	return out
}

// Values returns a snapshot of the targets in insertion order.
func (s *Store) Values() []any {
	out := make([]any, 0, s.Len())
	for _, v := range s.Items() {
		out = append(out, v)
	}
	return out
}

// Entries returns a snapshot of the entries in insertion order.
func (s *Store) Entries() []apis.Entry {
	if s == nil {
		return nil
	}
	out := make([]apis.Entry, 0, s.m.Len())
	for p := s.m.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Value)
	}
	return out
}

// Clear removes every entry. Targets are not touched.
func (s *Store) Clear() {
	if s == nil {
		return
	}
	n := s.m.Len()
	s.m = orderedmap.New[string, apis.Entry]()
	s.cfg.Logger.Debug("autoreg: store cleared", "store", s.owner, "removed", n)
}

// same compares targets by identity. Funcs compare by code pointer.
func same(a, b any) bool {
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Type() != rb.Type() {
		return false
	}
	if ra.Kind() == reflect.Func {
		return ra.Pointer() == rb.Pointer()
	}
	if !ra.Type().Comparable() {
		return false
	}
	return a == b
}

func (s *Store) notFound(key string) error {
	return &apis.KeyError{Op: "lookup", Store: s.Owner(), Key: key, Err: apis.ErrNotFound}
}
