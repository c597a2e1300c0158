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

package config_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/autoreg/apis"
	"dirpx.dev/autoreg/config"
)

const yamlSpec = `
prefix: Sensor
snake_case: true
hyphen: true
recursive: false
name: probe
aliases: [p, sensor-probe]
`

const tomlSpec = `
prefix = "Sensor"
snake_case = true
hyphen = true
recursive = false
name = "probe"
aliases = ["p", "sensor-probe"]
`

func checkSpec(t *testing.T, s config.Spec) {
	t.Helper()
	require.NotNil(t, s.Prefix)
	assert.Equal(t, "Sensor", *s.Prefix)
	assert.Nil(t, s.Suffix)
	assert.Nil(t, s.CaseSensitive)

	lvl, err := config.NewLevel(s.Options()...)
	require.NoError(t, err)
	assert.Equal(t, "probe", lvl.Name())
	assert.Equal(t, []string{"p", "sensor-probe"}, lvl.Aliases())

	c := lvl.Resolve(config.DefaultConfig())
	assert.Equal(t, "Sensor", c.Prefix)
	assert.True(t, c.SnakeCase)
	assert.True(t, c.Hyphen)
	assert.False(t, c.Recursive)
	assert.True(t, c.StripPrefix)
}

func TestLoadYAML(t *testing.T) {
	s, err := config.LoadYAML(strings.NewReader(yamlSpec))
	require.NoError(t, err)
	checkSpec(t, s)
}

func TestLoadTOML(t *testing.T) {
	s, err := config.LoadTOML(strings.NewReader(tomlSpec))
	require.NoError(t, err)
	checkSpec(t, s)
}

func TestLoadYAML_Empty(t *testing.T) {
	s, err := config.LoadYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, s.Options())
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		name string
		load func() (config.Spec, error)
	}{
		{"yaml unknown field", func() (config.Spec, error) { return config.LoadYAML(strings.NewReader("colour: red\n")) }},
		{"yaml bad regex", func() (config.Spec, error) { return config.LoadYAML(strings.NewReader("regex: \"(\"\n")) }},
		{"yaml duplicate aliases", func() (config.Spec, error) { return config.LoadYAML(strings.NewReader("aliases: [a, a]\n")) }},
		{"yaml empty alias", func() (config.Spec, error) { return config.LoadYAML(strings.NewReader("aliases: [\"\"]\n")) }},
		{"toml unknown key", func() (config.Spec, error) { return config.LoadTOML(strings.NewReader("colour = \"red\"\n")) }},
		{"toml syntax", func() (config.Spec, error) { return config.LoadTOML(strings.NewReader("prefix = \n")) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.load()
			require.ErrorIs(t, err, apis.ErrInvalidConfig)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{"level.yaml": yamlSpec, "level.toml": tomlSpec} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
		s, err := config.LoadFile(p)
		require.NoError(t, err, name)
		checkSpec(t, s)
	}

	p := filepath.Join(dir, "level.json")
	require.NoError(t, os.WriteFile(p, []byte("{}"), 0o600))
	_, err := config.LoadFile(p)
	require.ErrorIs(t, err, apis.ErrInvalidConfig)

	_, err = config.LoadFile(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSchema(t *testing.T) {
	b, err := config.Schema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(b, &doc))
	assert.Equal(t, "autoreg level options", doc["title"])

	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	for _, k := range []string{"prefix", "snake_case", "regex", "register_self", "aliases"} {
		assert.Contains(t, props, k)
	}
}
