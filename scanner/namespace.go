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

package scanner

import (
	"errors"
	"reflect"
	"strings"
	"unicode/utf8"
)

// ErrNotStruct is returned by FromStruct for anything but a non-nil pointer
// to a struct.
var ErrNotStruct = errors.New("autoreg(scanner): not a pointer to struct")

// Member is one named entry of a namespace: a callable, or a nested
// namespace when Namespace is non-nil.
type Member struct {
	Name      string
	Value     any
	Namespace *Namespace
}

// Public reports whether the member takes part in scanning. Names starting
// with "_" are private.
func (m Member) Public() bool {
	r, _ := utf8.DecodeRuneInString(m.Name)
	return m.Name != "" && r != '_'
}

// Namespace is an ordered tree of callables and sub-namespaces with an import
// path. Two namespaces are the same object iff their IDs are equal.
type Namespace struct {
	path    string
	name    string
	id      any
	members []Member
	load    func() []Member
}

// NewNamespace creates an empty namespace for an import path. The name is
// the last path element.
func NewNamespace(path string) *Namespace {
	ns := &Namespace{path: path, name: lastElem(path)}
	ns.id = ns
	return ns
}

// Add appends a callable member and returns ns for chaining.
func (ns *Namespace) Add(name string, v any) *Namespace {
	ns.members = append(ns.members, Member{Name: name, Value: v})
	return ns
}

// Sub creates a nested namespace under name and returns it.
func (ns *Namespace) Sub(name string) *Namespace {
	child := NewNamespace(ns.path + "/" + name)
	ns.AddNamespace(name, child)
	return child
}

// AddNamespace appends an existing namespace as a member and returns ns.
func (ns *Namespace) AddNamespace(name string, child *Namespace) *Namespace {
	ns.members = append(ns.members, Member{Name: name, Value: child, Namespace: child})
	return ns
}

// Members returns the members in declaration order. Members of a reflected
// struct are computed on first use.
func (ns *Namespace) Members() []Member {
	if ns.load != nil {
		ns.members = append(ns.load(), ns.members...)
		ns.load = nil
	}
	return ns.members
}

// Name returns the namespace's own name.
func (ns *Namespace) Name() string { return ns.name }

// EntityName implements apis.Namer.
func (ns *Namespace) EntityName() string { return ns.name }

// Path returns the import path.
func (ns *Namespace) Path() string { return ns.path }

// ID returns the identity used to detect a namespace reached twice.
func (ns *Namespace) ID() any { return ns.id }

// FromStruct reflects a namespace out of a pointer to struct. Exported
// non-nil func fields and exported methods are callables; exported struct
// and non-nil pointer-to-struct fields are sub-namespaces. The pointer is
// the namespace identity, so a struct reachable twice is the same namespace.
func FromStruct(path string, ptr any) (*Namespace, error) {
	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return nil, ErrNotStruct
	}
	return fromValue(path, v), nil
}

func fromValue(path string, v reflect.Value) *Namespace {
	ns := &Namespace{path: path, name: lastElem(path), id: v.Interface()}
	ns.load = func() []Member { return reflectMembers(path, v) }
	return ns
}

func reflectMembers(path string, v reflect.Value) []Member {
	var out []Member
	sv, st := v.Elem(), v.Elem().Type()
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		if !f.IsExported() || f.Anonymous {
			continue
		}
		fv := sv.Field(i)
		switch {
		case f.Type.Kind() == reflect.Func && !fv.IsNil():
			out = append(out, Member{Name: f.Name, Value: fv.Interface()})
		case f.Type.Kind() == reflect.Struct:
			sub := fromValue(path+"/"+f.Name, fv.Addr())
			out = append(out, Member{Name: f.Name, Value: sub, Namespace: sub})
		case f.Type.Kind() == reflect.Pointer && f.Type.Elem().Kind() == reflect.Struct && !fv.IsNil():
			sub := fromValue(path+"/"+f.Name, fv)
			out = append(out, Member{Name: f.Name, Value: sub, Namespace: sub})
		}
	}
	for i := 0; i < v.NumMethod(); i++ {
		out = append(out, Member{Name: v.Type().Method(i).Name, Value: v.Method(i).Interface()})
	}
	return out
}

func lastElem(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}
