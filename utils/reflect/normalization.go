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

package reflect

import (
	"errors"
	"reflect"
)

// DefaultMaxUnwrap bounds container unwrapping. Eight levels cover any
// realistic *[]map[string]*T shape.
const DefaultMaxUnwrap = 8

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectTypeNotNamed indicates that the provided type (after unwrapping containers)
	// does not contain a named type (e.g., anonymous struct, func, interface{}).
	ErrReflectTypeNotNamed = errors.New("reflect: type has no name")
)

// Normalize unwraps containers and returns the nearest named inner type, or
// an error if none is found within maxUnwrap steps.
//
// Unwrapping policy:
//   - ptr/slice/array/chan -> Elem()
//   - map[K]V: V if named, else K if named, else keep unwrapping V.
//   - default: if t.Name() != "", return t; otherwise ErrReflectTypeNotNamed.
//
// If maxUnwrap <= 0, DefaultMaxUnwrap is used.
func Normalize(t reflect.Type, maxUnwrap int) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	if maxUnwrap <= 0 {
		maxUnwrap = DefaultMaxUnwrap
	}

	for i := 0; t != nil && i < maxUnwrap; i++ {
		switch t.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Chan:
			if t.Name() != "" {
				return t, nil
			}
			t = t.Elem()

		case reflect.Map:
			if t.Name() != "" {
				return t, nil
			}
			if et := t.Elem(); et.Name() != "" {
				return et, nil
			}
			if kt := t.Key(); kt.Name() != "" {
				return kt, nil
			}
			t = t.Elem()

		default:
			if t.Name() != "" {
				return t, nil
			}
			return nil, ErrReflectTypeNotNamed
		}
	}

	if t != nil && t.Name() != "" {
		return t, nil
	}
	return nil, ErrReflectTypeNotNamed
}

// TypeName returns the bare name of t with generic instantiation parameters
// removed: "Box[int]" -> "Box".
func TypeName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	return StripTypeParams(t.Name())
}

// StripTypeParams removes a generic instantiation suffix: "T[int,string]" -> "T".
func StripTypeParams(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '[' {
			return s[:i]
		}
	}
	return s
}
