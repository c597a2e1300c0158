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

// Package scanner walks namespaces and feeds their public callables and
// sub-namespaces into a registry.
package scanner

import (
	"go/build"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"dirpx.dev/autoreg/apis"
)

// Target receives scan results. Implemented by registry.Registry.
type Target interface {
	// Put registers a callable under its raw name.
	Put(raw string, v any) error
	// Nest registers a sub-namespace and returns the target to fill with its
	// members, or nil to leave it out.
	Nest(raw string, ns *Namespace) (Target, error)
	// Recursive reports whether sub-namespaces are scanned.
	Recursive() bool
}

// Scan registers every public member of ns into t. A standard library
// namespace is rejected with apis.ErrStandardNamespace; nested ones are
// skipped. Sub-namespaces are skipped entirely when t is not recursive.
func Scan(ns *Namespace, t Target) error {
	if IsStandard(ns.Path()) {
		return &apis.KeyError{Op: "scan", Key: ns.Path(), Err: apis.ErrStandardNamespace}
	}
	return scan(ns, t)
}

func scan(ns *Namespace, t Target) error {
	for _, m := range ns.Members() {
		if !m.Public() {
			continue
		}
		if m.Namespace != nil {
			if !t.Recursive() || IsStandard(m.Namespace.Path()) {
				continue
			}
			sub, err := t.Nest(m.Name, m.Namespace)
			if err != nil {
				return err
			}
			if sub == nil {
				continue
			}
			if err := scan(m.Namespace, sub); err != nil {
				return err
			}
			continue
		}
		if !Callable(m.Value) {
			continue
		}
		if err := t.Put(m.Name, m.Value); err != nil {
			return err
		}
	}
	return nil
}

// Callable reports whether v can be registered as a namespace member: a
// non-nil func or a reflect.Type.
func Callable(v any) bool {
	if _, ok := v.(reflect.Type); ok {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Func && !rv.IsNil()
}

// IsStandard reports whether path names a standard library package: its
// first element has no dot and, when GOROOT is known, the package exists
// under GOROOT/src. Without GOROOT, as in -trimpath builds, the first
// element is checked against the top-level standard library directories.
func IsStandard(path string) bool {
	if path == "" {
		return false
	}
	first, _, _ := strings.Cut(path, "/")
	if strings.Contains(first, ".") {
		return false
	}
	root := build.Default.GOROOT
	if root == "" {
		_, ok := stdRoots[first]
		return ok
	}
	fi, err := os.Stat(filepath.Join(root, "src", filepath.FromSlash(path)))
	return err == nil && fi.IsDir()
}

// stdRoots lists the top-level directories of GOROOT/src.
var stdRoots = map[string]struct{}{
	"archive": {}, "bufio": {}, "builtin": {}, "bytes": {}, "cmd": {}, "cmp": {},
	"compress": {}, "container": {}, "context": {}, "crypto": {}, "database": {},
	"debug": {}, "embed": {}, "encoding": {}, "errors": {}, "expvar": {},
	"flag": {}, "fmt": {}, "go": {}, "hash": {}, "html": {}, "image": {},
	"index": {}, "internal": {}, "io": {}, "iter": {}, "log": {}, "maps": {},
	"math": {}, "mime": {}, "net": {}, "os": {}, "path": {}, "plugin": {},
	"reflect": {}, "regexp": {}, "runtime": {}, "slices": {}, "sort": {},
	"strconv": {}, "strings": {}, "structs": {}, "sync": {}, "syscall": {},
	"testing": {}, "text": {}, "time": {}, "unicode": {}, "unique": {},
	"unsafe": {}, "vendor": {}, "weak": {},
}
