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

package naming_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/autoreg/apis"
	"dirpx.dev/autoreg/config"
	"dirpx.dev/autoreg/naming"
)

func cfg(t *testing.T, opts ...config.Option) apis.Config {
	t.Helper()
	c, err := config.NewConfig(opts...)
	require.NoError(t, err)
	return c
}

func TestDerive(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		opts []config.Option
		want string
	}{
		{"default lowercases", "SurfingPikachu", nil, "surfingpikachu"},
		{"case sensitive", "SurfingPikachu", []config.Option{config.WithCaseSensitive(true)}, "SurfingPikachu"},
		{"snake", "SurfingPikachu", []config.Option{config.WithSnakeCase(true)}, "surfing_pikachu"},
		{"snake acronym", "HTTPServer", []config.Option{config.WithSnakeCase(true)}, "http_server"},
		{"snake hyphen", "SurfingPikachu", []config.Option{config.WithSnakeCase(true), config.WithHyphen(true)}, "surfing-pikachu"},
		{"hyphen without snake", "foo_1", []config.Option{config.WithHyphen(true)}, "foo-1"},
		{"prefix stripped", "SensorOxygen", []config.Option{config.WithPrefix("Sensor")}, "oxygen"},
		{"prefix any case", "sensorOxygen", []config.Option{config.WithPrefix("Sensor")}, "oxygen"},
		{"prefix kept", "SensorOxygen", []config.Option{config.WithPrefix("Sensor"), config.WithStripPrefix(false)}, "sensoroxygen"},
		{"suffix stripped", "OxygenSensor", []config.Option{config.WithSuffix("Sensor")}, "oxygen"},
		{"prefix and suffix", "PluginJSONCodec", []config.Option{config.WithPrefix("Plugin"), config.WithSuffix("Codec"), config.WithSnakeCase(true)}, "json"},
		{"transform last", "SurfingPikachu", []config.Option{config.WithSnakeCase(true), config.WithTransform(strings.ToUpper)}, "SURFING_PIKACHU"},
		{"regex", "Greet", []config.Option{config.WithRegex(`[a-z]+`)}, "greet"},
		{"prefix kelvin sign", "kOxygen", []config.Option{config.WithPrefix("\u212A")}, "oxygen"},
		{"suffix kelvin sign", "Fook", []config.Option{config.WithSuffix("\u212A")}, "foo"},
		{"kelvin sign in raw", "\u212AOxygen", []config.Option{config.WithPrefix("k")}, "oxygen"},
		{"multibyte prefix", "ÄrgerOxygen", []config.Option{config.WithPrefix("ärger")}, "oxygen"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := naming.Derive(tc.raw, cfg(t, tc.opts...))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDerive_Invalid(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		opts []config.Option
	}{
		{"missing prefix", "Humidity", []config.Option{config.WithPrefix("Sensor")}},
		{"missing prefix not stripped", "Humidity", []config.Option{config.WithPrefix("Sensor"), config.WithStripPrefix(false)}},
		{"prefix case sensitive", "sensorOxygen", []config.Option{config.WithPrefix("Sensor"), config.WithCaseSensitive(true)}},
		{"missing suffix", "Oxygen", []config.Option{config.WithSuffix("Sensor")}},
		{"empty after strip", "Sensor", []config.Option{config.WithPrefix("Sensor")}},
		{"dot", "a.b", nil},
		{"slash", "a/b", nil},
		{"regex mismatch", "Greet2", []config.Option{config.WithRegex(`[a-z]+`)}},
		{"transform to separator", "Greet", []config.Option{config.WithTransform(func(s string) string { return s + "/x" })}},
		{"invalid utf8", "Ab\xffCd", nil},
		{"invalid utf8 snake", "Ab\xffCd", []config.Option{config.WithSnakeCase(true)}},
		{"kelvin prefix too long", "k", []config.Option{config.WithPrefix("\u212AO")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := naming.Derive(tc.raw, cfg(t, tc.opts...))
			require.ErrorIs(t, err, apis.ErrInvalidName)
			var ke *apis.KeyError
			require.ErrorAs(t, err, &ke)
			assert.Equal(t, "derive", ke.Op)
		})
	}
}

func TestDerive_Idempotent(t *testing.T) {
	configs := [][]config.Option{
		nil,
		{config.WithSnakeCase(true)},
		{config.WithSnakeCase(true), config.WithHyphen(true)},
		{config.WithCaseSensitive(true)},
		{config.WithTransform(strings.ToLower)},
	}
	raws := []string{"SurfingPikachu", "HTTPServer", "getHTTPResponseCode", "plain", "Version2Beta"}
	for _, opts := range configs {
		c := cfg(t, opts...)
		for _, raw := range raws {
			once, err := naming.Derive(raw, c)
			require.NoError(t, err)
			again, err := naming.Derive(raw, c)
			require.NoError(t, err)
			assert.Equal(t, once, again, raw)
			twice, err := naming.Derive(once, c)
			require.NoError(t, err)
			assert.Equal(t, once, twice, raw)
		}
	}
}

func TestRegexReplacesSeparatorCheck(t *testing.T) {
	c := cfg(t, config.WithRegexp(regexp.MustCompile(`^[a-z./]+$`)))
	got, err := naming.Derive("a.b/c", c)
	require.NoError(t, err)
	assert.Equal(t, "a.b/c", got)
}

func TestExplicit(t *testing.T) {
	c := cfg(t, config.WithPrefix("Sensor"), config.WithTransform(strings.ToUpper))

	got, err := naming.Explicit("humidity", c)
	require.NoError(t, err)
	assert.Equal(t, "HUMIDITY", got)

	_, err = naming.Explicit("a.b", c)
	require.ErrorIs(t, err, apis.ErrInvalidName)

	_, err = naming.Explicit("", c)
	require.ErrorIs(t, err, apis.ErrInvalidName)

	_, err = naming.Explicit("hum\xffidity", c)
	require.ErrorIs(t, err, apis.ErrInvalidName)
}

func TestKeys(t *testing.T) {
	c := cfg(t)

	keys, err := naming.Keys("SurfingPikachu", c, "", []string{"Surf", "pika"})
	require.NoError(t, err)
	assert.Equal(t, []naming.Key{
		{Name: "surfingpikachu"},
		{Name: "Surf", Alias: true},
		{Name: "pika", Alias: true},
	}, keys)

	keys, err = naming.Keys("SurfingPikachu", c, "Surfer", nil)
	require.NoError(t, err)
	assert.Equal(t, []naming.Key{{Name: "Surfer"}}, keys)

	_, err = naming.Keys("SurfingPikachu", c, "", []string{"pika", "PIKA"})
	require.ErrorIs(t, err, apis.ErrKeyCollision)

	_, err = naming.Keys("SurfingPikachu", c, "", []string{"SurfingPikachu"})
	require.ErrorIs(t, err, apis.ErrKeyCollision)

	// Case-sensitive configs treat differently cased aliases as distinct.
	keys, err = naming.Keys("SurfingPikachu", cfg(t, config.WithCaseSensitive(true)), "", []string{"pika", "PIKA"})
	require.NoError(t, err)
	assert.Len(t, keys, 3)

	_, err = naming.Keys("SurfingPikachu", c, "", []string{"a/b"})
	require.ErrorIs(t, err, apis.ErrInvalidName)
}

func TestFold(t *testing.T) {
	assert.Equal(t, "pikachu", naming.Fold("PikaChu", cfg(t)))
	assert.Equal(t, "PikaChu", naming.Fold("PikaChu", cfg(t, config.WithCaseSensitive(true))))
}

func TestSnakeCase(t *testing.T) {
	cases := map[string]string{
		"SurfingPikachu":      "surfing_pikachu",
		"HTTPServer":          "http_server",
		"getHTTPResponseCode": "get_http_response_code",
		"IOError":             "io_error",
		"Version2Beta":        "version2_beta",
		"already_snake":       "already_snake",
		"A":                   "a",
		"":                    "",
	}
	for in, want := range cases {
		assert.Equal(t, want, naming.SnakeCase(in), in)
	}
}
