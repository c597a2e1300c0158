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

// Package registry implements standing registries: lookup tables filled by
// explicit registration of callables, types and namespaces rather than by a
// type hierarchy.
package registry

import (
	"fmt"

	"dirpx.dev/autoreg/apis"
	"dirpx.dev/autoreg/config"
	"dirpx.dev/autoreg/facade"
	"dirpx.dev/autoreg/naming"
	"dirpx.dev/autoreg/resolver"
	"dirpx.dev/autoreg/scanner"
	"dirpx.dev/autoreg/store"
)

// DefaultName is the display name of a registry created without WithName.
const DefaultName = "Registry"

// Registry is a standing registry. Scanned sub-namespaces become nested
// *Registry values that share the configuration of their parent.
type Registry struct {
	facade.Surface

	name   string
	path   string
	cfg    apis.Config
	store  *store.Store
	parent *Registry
	res    apis.Resolver
	// seen maps namespace identity to its path in this tree; root only.
	seen map[any]string
}

// Ensure *Registry satisfies the facade owner contract.
var _ facade.Owner = (*Registry)(nil)

// New creates an empty registry. WithName sets the display name; the other
// member-only options are rejected.
func New(opts ...config.Option) (*Registry, error) {
	lvl, err := config.NewLevel(opts...)
	if err != nil {
		return nil, err
	}
	if lvl.Skip() || len(lvl.Aliases()) > 0 {
		return nil, &apis.KeyError{Op: "new", Key: lvl.Name(), Err: fmt.Errorf("%w: skip and aliases apply to members only", apis.ErrInvalidConfig)}
	}
	name := lvl.Name()
	if name == "" {
		name = DefaultName
	}
	cfg := lvl.Resolve(config.DefaultConfig())
	r := &Registry{
		name:  name,
		cfg:   cfg,
		store: store.New(name, cfg),
		res:   resolver.Default(),
		seen:  map[any]string{},
	}
	r.Surface = facade.NewSurface(r)
	return r, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...config.Option) *Registry {
	r, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// From creates a registry pre-populated with targets: a single callable,
// type or *scanner.Namespace, or a []any of them registered in order.
func From(targets any, opts ...config.Option) (*Registry, error) {
	r, err := New(opts...)
	if err != nil {
		return nil, err
	}
	list, ok := targets.([]any)
	if !ok {
		list = []any{targets}
	}
	for _, v := range list {
		if err := r.Register(v); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds v. A *scanner.Namespace is scanned into the registry, or
// into a nested registry under its key when WithName or WithAliases is
// given; anything else is entered under its identifier, or the WithName
// value. Only WithName, WithAliases and WithSkip are accepted here.
func (r *Registry) Register(v any, opts ...config.Option) error {
	lvl, err := config.NewLevel(opts...)
	if err != nil {
		return err
	}
	if lvl.HasConfig() {
		return &apis.KeyError{Op: "register", Store: r.name, Err: fmt.Errorf("%w: only name, aliases and skip apply to a registration", apis.ErrInvalidConfig)}
	}
	if lvl.Skip() {
		return nil
	}

	if ns, ok := v.(*scanner.Namespace); ok {
		if lvl.Name() == "" && len(lvl.Aliases()) == 0 {
			return r.scan(ns)
		}
		if scanner.IsStandard(ns.Path()) {
			return &apis.KeyError{Op: "scan", Store: r.name, Key: ns.Path(), Err: apis.ErrStandardNamespace}
		}
		keys, err := naming.Keys(ns.Name(), r.cfg, lvl.Name(), lvl.Aliases())
		if err != nil {
			return r.scoped(err)
		}
		child, err := r.nest(keys, ns)
		if err != nil {
			return err
		}
		return child.scan(ns)
	}

	raw := r.res.Resolve(v)
	if raw == "" {
		raw = lvl.Name()
	}
	if raw == "" {
		return &apis.KeyError{Op: "register", Store: r.name, Key: fmt.Sprintf("%T", v), Err: apis.ErrUnidentifiable}
	}
	keys, err := naming.Keys(raw, r.cfg, lvl.Name(), lvl.Aliases())
	if err != nil {
		return r.scoped(err)
	}
	return r.put(keys, v)
}

// Add registers v and returns it unchanged, so a declaration can register
// itself: var Encode = registry.MustAdd(codecs, encode).
func Add[T any](r *Registry, v T, opts ...config.Option) (T, error) {
	return v, r.Register(v, opts...)
}

// MustAdd is like Add but panics on error.
func MustAdd[T any](r *Registry, v T, opts ...config.Option) T {
	if _, err := Add(r, v, opts...); err != nil {
		panic(err)
	}
	return v
}

// Name returns the display name: DefaultName, the WithName value, or the
// namespace name for nested registries.
func (r *Registry) Name() string { return r.name }

// Path returns the key path from the root registry, "" for the root.
func (r *Registry) Path() string { return r.path }

// Parent returns the enclosing registry of a nested one.
func (r *Registry) Parent() *Registry { return r.parent }

// Config returns the effective configuration.
func (r *Registry) Config() apis.Config { return r.cfg }

// Store returns the own store.
func (r *Registry) Store() *store.Store { return r.store }

// Capabilities is always empty: a Registry defines no instance overrides.
func (r *Registry) Capabilities() apis.Capabilities { return 0 }

// Call invokes a Mapping method by name.
func (r *Registry) Call(method string, args ...any) ([]any, error) {
	return facade.Call(r, method, args...)
}

func (r *Registry) root() *Registry {
	for r.parent != nil {
		r = r.parent
	}
	return r
}

func (r *Registry) scan(ns *scanner.Namespace) error {
	seen := r.root().seen
	if p, ok := seen[ns.ID()]; ok && p != r.path {
		return r.aliasErr(ns, p)
	}
	seen[ns.ID()] = r.path
	r.cfg.Logger.Debug("autoreg: scanning namespace", "store", r.name, "namespace", ns.Path())
	return scanner.Scan(ns, sink{r})
}

// put checks every key before inserting any.
func (r *Registry) put(keys []naming.Key, v any) error {
	for _, k := range keys {
		if err := r.store.Check(k.Name); err != nil {
			return err
		}
	}
	for _, k := range keys {
		if err := r.store.Put(apis.Entry{Key: k.Name, Target: v, Alias: k.Alias}); err != nil {
			return err
		}
	}
	return nil
}

// nest enters a child registry for ns under keys, keyed by path in the
// root's alias table.
func (r *Registry) nest(keys []naming.Key, ns *scanner.Namespace) (*Registry, error) {
	path := keys[0].Name
	if r.path != "" {
		path = r.path + "/" + path
	}
	seen := r.root().seen
	if p, ok := seen[ns.ID()]; ok && p != path {
		return nil, r.aliasErr(ns, p)
	}

	child := &Registry{
		name:   ns.Name(),
		path:   path,
		cfg:    r.cfg,
		store:  store.New(ns.Name(), r.cfg),
		parent: r,
		res:    r.res,
	}
	child.Surface = facade.NewSurface(child)
	if err := r.put(keys, child); err != nil {
		return nil, err
	}
	seen[ns.ID()] = path
	r.cfg.Logger.Debug("autoreg: namespace nested", "store", r.name, "key", keys[0].Name, "path", path)
	return child, nil
}

func (r *Registry) scoped(err error) error {
	if ke, ok := err.(*apis.KeyError); ok && ke.Store == "" {
		cp := *ke
		cp.Store = r.name
		return &cp
	}
	return err
}

func (r *Registry) aliasErr(ns *scanner.Namespace, first string) error {
	return &apis.KeyError{
		Op:    "scan",
		Store: r.name,
		Key:   ns.Path(),
		Err:   fmt.Errorf("%w: already registered at %q", apis.ErrNamespaceAlias, first),
	}
}

// sink adapts a Registry to scanner.Target.
type sink struct{ r *Registry }

func (s sink) Put(raw string, v any) error {
	keys, err := naming.Keys(raw, s.r.cfg, "", nil)
	if err != nil {
		return s.r.scoped(err)
	}
	return s.r.put(keys, v)
}

func (s sink) Nest(raw string, ns *scanner.Namespace) (scanner.Target, error) {
	keys, err := naming.Keys(raw, s.r.cfg, "", nil)
	if err != nil {
		return nil, s.r.scoped(err)
	}
	child, err := s.r.nest(keys, ns)
	if err != nil {
		return nil, err
	}
	return sink{child}, nil
}

func (s sink) Recursive() bool { return s.r.cfg.Recursive }
