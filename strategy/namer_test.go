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

package strategy_test

import (
	"reflect"
	"testing"

	"dirpx.dev/autoreg/apis"
	"dirpx.dev/autoreg/strategy"
)

type namedType struct{}

func (namedType) EntityName() string { return "CustomName" } // implements apis.Namer

type ptrNamed struct{}

func (*ptrNamed) EntityName() string { return "PtrName" }

func TestNamerStrategy_TryResolve(t *testing.T) {
	s := strategy.NewNamerStrategy()

	// With value implementing apis.Namer -> handled = true
	got, ok := s.TryResolve(namedType{})
	if !ok || got != "CustomName" {
		t.Fatalf("TryResolve: got (%q,%v), want (CustomName,true)", got, ok)
	}

	// With non-namer value -> handled = false
	got, ok = s.TryResolve(struct{}{})
	if ok || got != "" {
		t.Fatalf("TryResolve(non-namer): got (%q,%v), want ('',false)", got, ok)
	}

	got, ok = s.TryResolve(nil)
	if ok || got != "" {
		t.Fatalf("TryResolve(nil): got (%q,%v), want ('',false)", got, ok)
	}
}

func TestNamerStrategy_Types(t *testing.T) {
	s := strategy.NewNamerStrategy()

	cases := []struct {
		name string
		typ  reflect.Type
		want string
		ok   bool
	}{
		{"value receiver", reflect.TypeOf(namedType{}), "CustomName", true},
		{"pointer to value receiver", reflect.TypeOf(&namedType{}), "CustomName", true},
		{"pointer receiver", reflect.TypeOf(ptrNamed{}), "PtrName", true},
		{"plain", reflect.TypeOf(struct{ X int }{}), "", false},
		{"interface", reflect.TypeFor[apis.Namer](), "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := s.TryResolve(tc.typ)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("got (%q,%v), want (%q,%v)", got, ok, tc.want, tc.ok)
			}
		})
	}
}

// Ensure the local types actually satisfy apis.Namer (compile-time).
var (
	_ apis.Namer = (*namedType)(nil)
	_ apis.Namer = (*ptrNamed)(nil)
)
