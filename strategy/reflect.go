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

package strategy

import (
	"reflect"
	"sync"

	"dirpx.dev/autoreg/apis"
	uref "dirpx.dev/autoreg/utils/reflect"
)

// NewTypeStrategy creates an apis.Strategy for reflect.Type targets: the
// identifier is the nearest named type's bare name.
func NewTypeStrategy() apis.Strategy {
	return typeStrategy{}
}

// NewValueStrategy creates the universal fallback: the identifier is the
// bare name of v's dynamic type. Values of builtin or unnamed types are not
// handled.
func NewValueStrategy() apis.Strategy {
	return valueStrategy{}
}

type typeStrategy struct{}

type valueStrategy struct{}

// Ensure both implement apis.Strategy.
var (
	_ apis.Strategy = typeStrategy{}
	_ apis.Strategy = valueStrategy{}
)

// typeNameCache caches resolved identifiers by type.
var typeNameCache sync.Map // key: reflect.Type, val: string

// TryResolve handles reflect.Type values only.
func (typeStrategy) TryResolve(v any) (string, bool) {
	t, ok := v.(reflect.Type)
	if !ok || t == nil {
		return "", false
	}
	name := byType(t)
	return name, name != ""
}

// TryResolve names v by its dynamic type. reflect.Type values are left to
// the type strategy.
func (valueStrategy) TryResolve(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	if _, ok := v.(reflect.Type); ok {
		return "", false
	}
	name := byType(reflect.TypeOf(v))
	return name, name != ""
}

// byType resolves the identifier for t with memoization. Types without a
// package (builtins) resolve to "".
func byType(t reflect.Type) string {
	if v, ok := typeNameCache.Load(t); ok {
		return v.(string)
	}

	name := ""
	if base, err := uref.Normalize(t, uref.DefaultMaxUnwrap); err == nil && base.PkgPath() != "" {
		name = uref.TypeName(base)
	}

	typeNameCache.Store(t, name)
	return name
}
