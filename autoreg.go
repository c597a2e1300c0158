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

package autoreg

import (
	"dirpx.dev/autoreg/apis"
	"dirpx.dev/autoreg/config"
	"dirpx.dev/autoreg/hierarchy"
	"dirpx.dev/autoreg/registry"
	"dirpx.dev/autoreg/resolver"
	"dirpx.dev/autoreg/scanner"
)

type (
	// Class is a defined family member.
	Class = hierarchy.Class
	// Registry is a standing registry.
	Registry = registry.Registry
	// Namespace is a tree of callables and sub-namespaces.
	Namespace = scanner.Namespace
	// Option configures one level.
	Option = config.Option
	// Config is the effective configuration of one level.
	Config = apis.Config
	// Entry is one key of a store.
	Entry = apis.Entry
	// KeyError carries the operation, store and key of a failure.
	KeyError = apis.KeyError
)

// Errors, re-exported for errors.Is.
var (
	ErrInvalidName       = apis.ErrInvalidName
	ErrKeyCollision      = apis.ErrKeyCollision
	ErrNamespaceAlias    = apis.ErrNamespaceAlias
	ErrStandardNamespace = apis.ErrStandardNamespace
	ErrNotFound          = apis.ErrNotFound
	ErrInvalidConfig     = apis.ErrInvalidConfig
	ErrInstanceRequired  = apis.ErrInstanceRequired
	ErrUnknownMethod     = apis.ErrUnknownMethod
	ErrUnidentifiable    = apis.ErrUnidentifiable
)

// Options, re-exported from config.
var (
	WithCaseSensitive = config.WithCaseSensitive
	WithPrefix        = config.WithPrefix
	WithSuffix        = config.WithSuffix
	WithStripPrefix   = config.WithStripPrefix
	WithStripSuffix   = config.WithStripSuffix
	WithSnakeCase     = config.WithSnakeCase
	WithHyphen        = config.WithHyphen
	WithTransform     = config.WithTransform
	WithRegex         = config.WithRegex
	WithRecursive     = config.WithRecursive
	WithRedirect      = config.WithRedirect
	WithOverwrite     = config.WithOverwrite
	WithRegisterSelf  = config.WithRegisterSelf
	WithLogger        = config.WithLogger
	WithName          = config.WithName
	WithAliases       = config.WithAliases
	WithSkip          = config.WithSkip
)

// Entity returns the raw identifier of v, the name keys are derived from,
// or "" if v cannot be identified.
func Entity(v any) string {
	return resolver.Default().Resolve(v)
}

// New creates an empty standing registry.
func New(opts ...Option) (*Registry, error) {
	return registry.New(opts...)
}

// From creates a standing registry pre-populated with targets, a single
// value or a []any.
func From(targets any, opts ...Option) (*Registry, error) {
	return registry.From(targets, opts...)
}

// NewNamespace creates an empty namespace for an import path.
func NewNamespace(path string) *Namespace {
	return scanner.NewNamespace(path)
}

// Root defines target as the root of a new family.
func Root(target any, opts ...Option) (*Class, error) {
	return hierarchy.Root(target, opts...)
}

// Define binds target under parent, or makes it a root if parent is nil.
func Define(parent *Class, target any, opts ...Option) (*Class, error) {
	return hierarchy.Define(parent, target, opts...)
}

// RootOf defines T as the root of a new family.
func RootOf[T any](opts ...Option) (*Class, error) {
	return hierarchy.RootOf[T](opts...)
}

// DeriveOf defines T as a member under parent.
func DeriveOf[T any](parent *Class, opts ...Option) (*Class, error) {
	return hierarchy.DeriveOf[T](parent, opts...)
}

// Must panics if err is non-nil.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
