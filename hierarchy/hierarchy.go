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

// Package hierarchy binds family members into the registries of their
// ancestors.
//
// A family starts with a root (Define with a nil parent, or Root). Every class
// owns a store. Defining a member inserts it into its direct parent's store
// and then cascades the same entry outward through each ancestor whose
// effective recursive flag is true, stopping at the first that is false.
package hierarchy

import (
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/autoreg/apis"
	"dirpx.dev/autoreg/config"
	"dirpx.dev/autoreg/facade"
	"dirpx.dev/autoreg/naming"
	"dirpx.dev/autoreg/resolver"
	"dirpx.dev/autoreg/store"
)

// Class is one defined family member. It is both an ordinary value (Target)
// and a lookup table over its own store (the embedded Surface).
type Class struct {
	facade.Surface

	name   string
	target any
	typ    reflect.Type
	parent *Class
	cfg    apis.Config
	store  *store.Store
	caps   apis.Capabilities
	key    string
	depth  int
}

// Ensure *Class satisfies the facade owner contract and apis.Namer.
var (
	_ facade.Owner = (*Class)(nil)
	_ apis.Namer   = (*Class)(nil)
)

// Define binds target under parent. A nil parent makes target the root of a
// new family. Binding is all-or-nothing: every key for every destination
// store is derived and checked before anything is inserted.
func Define(parent *Class, target any, opts ...config.Option) (*Class, error) {
	lvl, err := config.NewLevel(opts...)
	if err != nil {
		return nil, err
	}

	base := config.DefaultConfig()
	depth := 0
	if parent != nil {
		base = parent.cfg
		depth = parent.depth + 1
	}
	cfg := lvl.Resolve(base)

	raw := resolver.Default().Resolve(target)
	if raw == "" {
		raw = lvl.Name()
	}
	if raw == "" {
		return nil, &apis.KeyError{Op: "define", Key: fmt.Sprintf("%T", target), Err: apis.ErrUnidentifiable}
	}

	c := &Class{
		name:   raw,
		target: target,
		typ:    typeOf(target),
		parent: parent,
		cfg:    cfg,
		depth:  depth,
	}
	c.Surface = facade.NewSurface(c)
	c.store = store.New(raw, cfg)
	c.caps = facade.Detect(c.typ)
	if parent != nil {
		c.caps = c.caps.Union(parent.caps)
	}

	plan, err := c.plan(lvl)
	if err != nil {
		return nil, err
	}
	for _, b := range plan {
		for _, k := range b.keys {
			if err := b.store.Put(apis.Entry{Key: k.Name, Target: c, Alias: k.Alias}); err != nil {
				return nil, err
			}
		}
		if b.direct {
			c.key = b.keys[0].Name
		}
		cfg.Logger.Debug("autoreg: class bound",
			"class", raw, "store", b.store.Owner(), "key", b.keys[0].Name, "depth", b.depth)
	}
	cfg.Logger.Debug("autoreg: class defined", "class", raw, "root", parent == nil, "stores", len(plan))
	return c, nil
}

// Root defines target as the root of a new family.
func Root(target any, opts ...config.Option) (*Class, error) {
	return Define(nil, target, opts...)
}

// RootOf defines T as the root of a new family.
func RootOf[T any](opts ...config.Option) (*Class, error) {
	return Define(nil, reflect.TypeFor[T](), opts...)
}

// DeriveOf defines T as a member under parent.
func DeriveOf[T any](parent *Class, opts ...config.Option) (*Class, error) {
	return Define(parent, reflect.TypeFor[T](), opts...)
}

// Must panics if err is non-nil. It is meant for package-level declarations.
func Must(c *Class, err error) *Class {
	if err != nil {
		panic(err)
	}
	return c
}

// Derive defines target as a member under c.
func (c *Class) Derive(target any, opts ...config.Option) (*Class, error) {
	return Define(c, target, opts...)
}

// Name returns the raw identifier of the class.
func (c *Class) Name() string { return c.name }

// EntityName implements apis.Namer, so a class registered elsewhere keeps
// its identifier.
func (c *Class) EntityName() string { return c.name }

// Target returns the value the class was defined for.
func (c *Class) Target() any { return c.target }

// Type returns the Go type behind the target.
func (c *Class) Type() reflect.Type { return c.typ }

// Parent returns the direct parent, or nil for a root.
func (c *Class) Parent() *Class { return c.parent }

// IsRoot reports whether c started its family.
func (c *Class) IsRoot() bool { return c.parent == nil }

// Config returns the effective configuration of c.
func (c *Class) Config() apis.Config { return c.cfg }

// Store returns the own store, or nil once detached.
func (c *Class) Store() *store.Store { return c.store }

// Capabilities returns the Mapping methods defined by the target type or any
// ancestor's target type.
func (c *Class) Capabilities() apis.Capabilities { return c.caps }

// Key returns the primary key of c in its direct parent's store, or "" for a
// root or a skipped member.
func (c *Class) Key() string { return c.key }

// Call invokes a Mapping method on the class itself, honoring redirection.
func (c *Class) Call(method string, args ...any) ([]any, error) {
	return facade.Call(c, method, args...)
}

// CallOn invokes a Mapping method on an instance of the class.
func (c *Class) CallOn(inst any, method string, args ...any) ([]any, error) {
	return facade.CallOn(c, inst, method, args...)
}

// binding is one destination store with the keys to insert there.
type binding struct {
	store *store.Store
	keys   []naming.Key
	depth  int
	direct bool
}

// plan lists destinations in insertion order: own store, direct parent, then
// ancestors outward while each destination's recursive flag holds. Keys are
// derived with the destination's configuration.
func (c *Class) plan(lvl config.Level) ([]binding, error) {
	var out []binding
	add := func(s *store.Store, depth int, direct bool) error {
		keys, err := naming.Keys(c.name, s.Config(), lvl.Name(), lvl.Aliases())
		if err != nil {
			return withStore(err, s.Owner())
		}
		for _, k := range keys {
			if err := s.Check(k.Name); err != nil {
				return err
			}
		}
		out = append(out, binding{store: s, keys: keys, depth: depth, direct: direct})
		return nil
	}

	if c.cfg.RegisterSelf {
		if err := add(c.store, c.depth, false); err != nil {
			return nil, err
		}
	}
	if c.parent == nil || lvl.Skip() {
		return out, nil
	}
	if s := c.parent.store; s != nil {
		if err := add(s, c.parent.depth, true); err != nil {
			return nil, err
		}
	}
	for a := c.parent.parent; a != nil; a = a.parent {
		if a.store == nil {
			continue
		}
		if !a.cfg.Recursive {
			break
		}
		if err := add(a.store, a.depth, false); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func typeOf(target any) reflect.Type {
	if t, ok := target.(reflect.Type); ok {
		return t
	}
	return reflect.TypeOf(target)
}

func withStore(err error, owner string) error {
	var ke *apis.KeyError
	if errors.As(err, &ke) && ke.Store == "" {
		cp := *ke
		cp.Store = owner
		return &cp
	}
	return err
}
