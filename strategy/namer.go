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

	"dirpx.dev/autoreg/apis"
)

// NewNamerStrategy creates an apis.Strategy that uses apis.Namer.
func NewNamerStrategy() apis.Strategy {
	return &namerStrategy{}
}

// namerStrategy is the fast path: if v implements apis.Namer, return its
// EntityName() and stop the chain. A reflect.Type whose values implement
// apis.Namer is asked through its zero value.
type namerStrategy struct{}

// Ensure namerStrategy implements apis.Strategy.
var _ apis.Strategy = (*namerStrategy)(nil)

var namerType = reflect.TypeFor[apis.Namer]()

// TryResolve checks if v (or the type v describes) implements apis.Namer.
func (*namerStrategy) TryResolve(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case apis.Namer:
		return x.EntityName(), true
	case reflect.Type:
		return typeEntityName(x)
	}
	return "", false
}

func typeEntityName(t reflect.Type) (string, bool) {
	if t == nil || t.Kind() == reflect.Interface {
		return "", false
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	// *T covers both value and pointer receivers.
	if reflect.PointerTo(t).Implements(namerType) {
		return reflect.New(t).Interface().(apis.Namer).EntityName(), true
	}
	return "", false
}
