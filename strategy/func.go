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
	"runtime"
	"strings"

	"dirpx.dev/autoreg/apis"
)

// NewFuncStrategy creates an apis.Strategy naming functions by their symbol:
// "example.com/pkg.Foo" -> "Foo", "pkg.(*T).Run-fm" -> "Run".
// Anonymous closures are not handled.
func NewFuncStrategy() apis.Strategy {
	return funcStrategy{}
}

type funcStrategy struct{}

// Ensure funcStrategy implements apis.Strategy.
var _ apis.Strategy = funcStrategy{}

// TryResolve handles non-nil func values.
func (funcStrategy) TryResolve(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return "", false
	}
	fn := runtime.FuncForPC(rv.Pointer())
	if fn == nil {
		return "", false
	}
	return FuncName(fn.Name())
}

// FuncName extracts the bare function name from a runtime symbol.
func FuncName(symbol string) (string, bool) {
	s := strings.TrimSuffix(symbol, "-fm")
	s = strings.ReplaceAll(s, "[...]", "")
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		s = s[i+1:]
	}
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		s = s[i+1:]
	}
	if s == "" || isClosure(s) || strings.Trim(s, "0123456789") == "" {
		return "", false
	}
	return s, true
}

// isClosure matches compiler-generated names: func1, func2.3, gowrap1, ...
func isClosure(s string) bool {
	for _, p := range []string{"func", "gowrap", "deferwrap"} {
		if rest, ok := strings.CutPrefix(s, p); ok && rest != "" && strings.Trim(rest, "0123456789") == "" {
			return true
		}
	}
	return false
}
