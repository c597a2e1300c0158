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

package naming

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"dirpx.dev/autoreg/apis"
)

// Separators reserved for nested path lookups. The default legality check
// rejects keys containing them.
const Separators = "./"

// Key is one canonical key produced for a registration event.
type Key struct {
	Name  string
	Alias bool
}

// Derive converts a raw identifier into a canonical key under cfg:
// prefix, suffix, snake_case or case folding, hyphenation, transform and
// finally the legality check.
func Derive(raw string, cfg apis.Config) (string, error) {
	if !utf8.ValidString(raw) {
		return "", invalid(raw, fmt.Errorf("%w: not valid UTF-8", apis.ErrInvalidName))
	}
	name := raw

	if cfg.Prefix != "" {
		rest, ok := cutPrefix(name, cfg.Prefix, cfg.CaseSensitive)
		if !ok {
			return "", invalid(raw, fmt.Errorf("%w: missing prefix %q", apis.ErrInvalidName, cfg.Prefix))
		}
		if cfg.StripPrefix {
			name = rest
		}
	}
	if cfg.Suffix != "" {
		rest, ok := cutSuffix(name, cfg.Suffix, cfg.CaseSensitive)
		if !ok {
			return "", invalid(raw, fmt.Errorf("%w: missing suffix %q", apis.ErrInvalidName, cfg.Suffix))
		}
		if cfg.StripSuffix {
			name = rest
		}
	}

	switch {
	case cfg.SnakeCase:
		name = SnakeCase(name)
	case !cfg.CaseSensitive:
		name = lower(name)
	}
	if cfg.Hyphen {
		name = strings.ReplaceAll(name, "_", "-")
	}
	return finish(name, cfg)
}

// Explicit canonicalizes a caller-supplied name or alias. Affix and case
// rules are bypassed; the transform and the legality check are not.
func Explicit(name string, cfg apis.Config) (string, error) {
	if !utf8.ValidString(name) {
		return "", invalid(name, fmt.Errorf("%w: not valid UTF-8", apis.ErrInvalidName))
	}
	return finish(name, cfg)
}

// Keys computes every key of one registration event: the primary key
// (explicit name if given, derived from raw otherwise) followed by the
// aliases in order. Repeated keys fail with apis.ErrKeyCollision.
func Keys(raw string, cfg apis.Config, name string, aliases []string) ([]Key, error) {
	var (
		primary string
		err     error
	)
	if name != "" {
		primary, err = Explicit(name, cfg)
	} else {
		primary, err = Derive(raw, cfg)
	}
	if err != nil {
		return nil, err
	}

	keys := make([]Key, 0, 1+len(aliases))
	keys = append(keys, Key{Name: primary})
	seen := map[string]struct{}{Fold(primary, cfg): {}}
	for _, a := range aliases {
		k, err := Explicit(a, cfg)
		if err != nil {
			return nil, err
		}
		f := Fold(k, cfg)
		if _, dup := seen[f]; dup {
			return nil, &apis.KeyError{Op: "alias", Key: k, Err: apis.ErrKeyCollision}
		}
		seen[f] = struct{}{}
		keys = append(keys, Key{Name: k, Alias: true})
	}
	return keys, nil
}

// Validate applies the legality check: the configured regex as a full
// match, or by default a non-empty key free of path separators.
func Validate(key string, cfg apis.Config) error {
	if key == "" {
		return invalid(key, fmt.Errorf("%w: empty key", apis.ErrInvalidName))
	}
	if cfg.Regex != nil {
		loc := cfg.Regex.FindStringIndex(key)
		if loc == nil || loc[0] != 0 || loc[1] != len(key) {
			return invalid(key, fmt.Errorf("%w: does not match %s", apis.ErrInvalidName, cfg.Regex))
		}
		return nil
	}
	if strings.ContainsAny(key, Separators) {
		return invalid(key, fmt.Errorf("%w: contains a path separator", apis.ErrInvalidName))
	}
	return nil
}

// Fold maps a key to its lookup form under cfg.
func Fold(key string, cfg apis.Config) string {
	if cfg.CaseSensitive {
		return key
	}
	return lower(key)
}

func finish(name string, cfg apis.Config) (string, error) {
	if cfg.Transform != nil {
		name = cfg.Transform(name)
	}
	if err := Validate(name, cfg); err != nil {
		return "", err
	}
	return name, nil
}

// cutPrefix removes prefix from s. Without case sensitivity the prefix is
// matched against the same number of leading runes under simple folding,
// so the cut follows the bytes actually matched in s.
func cutPrefix(s, prefix string, caseSensitive bool) (string, bool) {
	if caseSensitive {
		return strings.CutPrefix(s, prefix)
	}
	i := 0
	for range utf8.RuneCountInString(prefix) {
		if i >= len(s) {
			return "", false
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	if !strings.EqualFold(s[:i], prefix) {
		return "", false
	}
	return s[i:], true
}

// cutSuffix is cutPrefix for the end of s.
func cutSuffix(s, suffix string, caseSensitive bool) (string, bool) {
	if caseSensitive {
		return strings.CutSuffix(s, suffix)
	}
	i := len(s)
	for range utf8.RuneCountInString(suffix) {
		if i <= 0 {
			return "", false
		}
		_, size := utf8.DecodeLastRuneInString(s[:i])
		i -= size
	}
	if !strings.EqualFold(s[i:], suffix) {
		return "", false
	}
	return s[:i], true
}

// lower lowercases s. A Caser is stateful, so one is made per call.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

func invalid(key string, err error) error {
	return &apis.KeyError{Op: "derive", Key: key, Err: err}
}
