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

package facade

import (
	"fmt"
	"reflect"

	"dirpx.dev/autoreg/apis"
)

// Owner is a Source that also carries the redirection inputs fixed at
// definition time.
type Owner interface {
	Source
	Config() apis.Config
	Capabilities() apis.Capabilities
}

// Detect returns the Mapping methods declared by t itself, looking at the
// method sets of t and *t. Promoted methods of embedded types count.
func Detect(t reflect.Type) apis.Capabilities {
	var caps apis.Capabilities
	if t == nil {
		return caps
	}
	for _, c := range apis.AllCapabilities() {
		if _, ok := t.MethodByName(c.Method()); ok {
			caps = caps.With(c)
			continue
		}
		if t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface {
			if _, ok := reflect.PointerTo(t).MethodByName(c.Method()); ok {
				caps = caps.With(c)
			}
		}
	}
	return caps
}

// Call invokes a Mapping method on the owner type itself.
//
// The registry answers unless the owner defines the method and its effective
// Redirect is false; then the call reaches the user's method, which has no
// instance to run on, and fails with apis.ErrInstanceRequired. Lookup is
// never redirected.
func Call(o Owner, method string, args ...any) ([]any, error) {
	c, ok := apis.CapabilityOf(method)
	if !ok {
		return nil, &apis.KeyError{Op: "call", Store: o.Name(), Key: method, Err: apis.ErrUnknownMethod}
	}
	if c != apis.CapLookup && o.Capabilities().Has(c) && !o.Config().Redirect {
		return nil, &apis.KeyError{Op: "call", Store: o.Name(), Key: method, Err: apis.ErrInstanceRequired}
	}
	return builtin(NewSurface(o), c, args)
}

// CallOn invokes a Mapping method on an instance of the owner type. A method
// defined by the instance always wins; otherwise the registry answers.
func CallOn(o Owner, inst any, method string, args ...any) ([]any, error) {
	c, ok := apis.CapabilityOf(method)
	if !ok {
		return nil, &apis.KeyError{Op: "call", Store: o.Name(), Key: method, Err: apis.ErrUnknownMethod}
	}
	if inst != nil {
		if m := reflect.ValueOf(inst).MethodByName(method); m.IsValid() {
			return invoke(m, method, args)
		}
	}
	return builtin(NewSurface(o), c, args)
}

func builtin(f Surface, c apis.Capability, args []any) ([]any, error) {
	switch c {
	case apis.CapContains:
		k, err := keyArg(c, args)
		if err != nil {
			return nil, err
		}
		return []any{f.Contains(k)}, nil
	case apis.CapLen:
		return []any{f.Len()}, nil
	case apis.CapAll:
		return []any{f.All()}, nil
	case apis.CapKeys:
		return []any{f.Keys()}, nil
	case apis.CapValues:
		return []any{f.Values()}, nil
	case apis.CapItems:
		return []any{f.Items()}, nil
	case apis.CapLookup:
		k, err := keyArg(c, args)
		if err != nil {
			return nil, err
		}
		v, err := f.Lookup(k)
		if err != nil {
			return nil, err
		}
		return []any{v}, nil
	case apis.CapGet:
		k, err := keyArg(c, args)
		if err != nil {
			return nil, err
		}
		return []any{f.Get(k, args[1:]...)}, nil
	case apis.CapClear:
		f.Clear()
		return nil, nil
	}
	return nil, &apis.KeyError{Op: "call", Key: c.Method(), Err: apis.ErrUnknownMethod}
}

func keyArg(c apis.Capability, args []any) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("autoreg: %s: missing key argument", c.Method())
	}
	k, ok := args[0].(string)
	if !ok {
		return "", fmt.Errorf("autoreg: %s: key must be a string, got %T", c.Method(), args[0])
	}
	return k, nil
}

// invoke calls a user method with loosely typed arguments.
func invoke(m reflect.Value, name string, args []any) ([]any, error) {
	mt := m.Type()
	n := mt.NumIn()
	if (!mt.IsVariadic() && len(args) != n) || (mt.IsVariadic() && len(args) < n-1) {
		return nil, fmt.Errorf("autoreg: %s: want %d arguments, got %d", name, n, len(args))
	}
	in := make([]reflect.Value, len(args))
	for i, a := range args {
		pt := paramType(mt, i)
		if a == nil {
			in[i] = reflect.Zero(pt)
			continue
		}
		v := reflect.ValueOf(a)
		if !v.Type().AssignableTo(pt) {
			return nil, fmt.Errorf("autoreg: %s: argument %d: %s is not assignable to %s", name, i, v.Type(), pt)
		}
		in[i] = v
	}
	out := m.Call(in)
	res := make([]any, len(out))
	for i, v := range out {
		res[i] = v.Interface()
	}
	return res, nil
}

func paramType(mt reflect.Type, i int) reflect.Type {
	if mt.IsVariadic() && i >= mt.NumIn()-1 {
		return mt.In(mt.NumIn() - 1).Elem()
	}
	return mt.In(i)
}
