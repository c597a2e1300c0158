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

package scanner_test

import (
	"go/build"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/autoreg/apis"
	"dirpx.dev/autoreg/scanner"
)

// recorder is a scanner.Target that records what it receives.
type recorder struct {
	prefix    string
	recursive bool
	got       *[]string
}

func (r recorder) Put(raw string, _ any) error {
	*r.got = append(*r.got, r.prefix+raw)
	return nil
}

func (r recorder) Nest(raw string, _ *scanner.Namespace) (scanner.Target, error) {
	*r.got = append(*r.got, r.prefix+raw+"/")
	return recorder{prefix: r.prefix + raw + "/", recursive: r.recursive, got: r.got}, nil
}

func (r recorder) Recursive() bool { return r.recursive }

func tree() *scanner.Namespace {
	ns := scanner.NewNamespace("example.com/app")
	ns.Add("Start", func() {}).Add("_stop", func() {}).Add("Config", 42)
	ns.Add("Type", reflect.TypeFor[strings.Builder]())
	ns.Sub("Inner").Add("Run", func() {})
	ns.AddNamespace("Strings", scanner.NewNamespace("strings"))
	return ns
}

func TestScan(t *testing.T) {
	var got []string
	require.NoError(t, scanner.Scan(tree(), recorder{recursive: true, got: &got}))
	assert.Equal(t, []string{"Start", "Type", "Inner/", "Inner/Run"}, got)
}

func TestScan_NonRecursive(t *testing.T) {
	var got []string
	require.NoError(t, scanner.Scan(tree(), recorder{got: &got}))
	assert.Equal(t, []string{"Start", "Type"}, got)
}

func TestScan_Standard(t *testing.T) {
	var got []string
	err := scanner.Scan(scanner.NewNamespace("encoding/json"), recorder{got: &got})
	require.ErrorIs(t, err, apis.ErrStandardNamespace)
	assert.Empty(t, got)
}

func TestIsStandard(t *testing.T) {
	for _, p := range []string{"strings", "encoding/json", "net/http"} {
		assert.True(t, scanner.IsStandard(p), p)
	}
	for _, p := range []string{"", "example.com/app", "github.com/x/y", "myplugins/codecs"} {
		assert.False(t, scanner.IsStandard(p), p)
	}
}

func TestIsStandard_NoGOROOT(t *testing.T) {
	root := build.Default.GOROOT
	build.Default.GOROOT = ""
	t.Cleanup(func() { build.Default.GOROOT = root })

	for _, p := range []string{"strings", "encoding/json", "plugin"} {
		assert.True(t, scanner.IsStandard(p), p)
	}
	for _, p := range []string{"plugins", "myplugins/codecs", "example.com/app"} {
		assert.False(t, scanner.IsStandard(p), p)
	}

	var got []string
	ns := scanner.NewNamespace("plugins")
	ns.Add("Load", func() {})
	require.NoError(t, scanner.Scan(ns, recorder{got: &got}))
	assert.Equal(t, []string{"Load"}, got)
}

func TestNamespace(t *testing.T) {
	ns := scanner.NewNamespace("example.com/app/plugins")
	assert.Equal(t, "plugins", ns.Name())
	assert.Equal(t, "plugins", ns.EntityName())
	assert.Equal(t, "example.com/app/plugins", ns.Path())
	assert.Equal(t, ns, ns.ID())

	sub := ns.Sub("codecs")
	assert.Equal(t, "example.com/app/plugins/codecs", sub.Path())
	require.Len(t, ns.Members(), 1)
	assert.Same(t, sub, ns.Members()[0].Namespace)

	assert.True(t, scanner.Member{Name: "Run"}.Public())
	assert.False(t, scanner.Member{Name: "_run"}.Public())
	assert.False(t, scanner.Member{}.Public())
}

func TestCallable(t *testing.T) {
	var nilFn func()
	assert.True(t, scanner.Callable(strings.ToUpper))
	assert.True(t, scanner.Callable(reflect.TypeFor[strings.Builder]()))
	assert.False(t, scanner.Callable(nilFn))
	assert.False(t, scanner.Callable(42))
	assert.False(t, scanner.Callable(nil))
}

type service struct {
	Handle func()
	Nested struct {
		Ping func()
	}
	Opt *service
}

func (*service) Close() {}

func TestFromStruct(t *testing.T) {
	s := &service{Handle: func() {}}
	s.Nested.Ping = func() {}

	ns, err := scanner.FromStruct("example.com/svc", s)
	require.NoError(t, err)
	assert.Equal(t, any(s), ns.ID())

	var names []string
	for _, m := range ns.Members() {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"Handle", "Nested", "Close"}, names)

	nested := ns.Members()[1].Namespace
	require.NotNil(t, nested)
	assert.Equal(t, "example.com/svc/Nested", nested.Path())
	require.Len(t, nested.Members(), 1)
	assert.Equal(t, "Ping", nested.Members()[0].Name)

	for _, bad := range []any{nil, service{}, (*service)(nil), new(int)} {
		_, err := scanner.FromStruct("x", bad)
		require.ErrorIs(t, err, scanner.ErrNotStruct)
	}
}
