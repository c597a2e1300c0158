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

package config

import (
	"fmt"
	"log/slog"
	"regexp"

	"dirpx.dev/autoreg/apis"
)

const (
	// DefaultCaseSensitive represents the default for CaseSensitive.
	// Keys are lowercased and lookups case-folded.
	DefaultCaseSensitive = false
	// DefaultStripPrefix represents the default for StripPrefix.
	DefaultStripPrefix = true
	// DefaultStripSuffix represents the default for StripSuffix.
	DefaultStripSuffix = true
	// DefaultRecursive represents the default for Recursive.
	// Every level collects all of its descendants.
	DefaultRecursive = true
	// DefaultRedirect represents the default for Redirect.
	DefaultRedirect = true
	// DefaultOverwrite represents the default for Overwrite.
	DefaultOverwrite = false
	// DefaultRegisterSelf represents the default for RegisterSelf.
	DefaultRegisterSelf = false
)

// discard is the logger used when none is configured.
var discard = slog.New(slog.DiscardHandler)

// DefaultConfig is the effective configuration of the family marker, the
// implicit parent of every root and standing registry.
func DefaultConfig() apis.Config {
	return apis.Config{
		CaseSensitive: DefaultCaseSensitive,
		StripPrefix:   DefaultStripPrefix,
		StripSuffix:   DefaultStripSuffix,
		Recursive:     DefaultRecursive,
		Redirect:      DefaultRedirect,
		Overwrite:     DefaultOverwrite,
		RegisterSelf:  DefaultRegisterSelf,
		Logger:        discard,
	}
}

// NewConfig resolves opts against DefaultConfig.
func NewConfig(opts ...Option) (apis.Config, error) {
	lvl, err := NewLevel(opts...)
	if err != nil {
		return apis.Config{}, err
	}
	return lvl.Resolve(DefaultConfig()), nil
}

// setting is one option that may or may not have been set on a level.
type setting[T any] struct {
	v  T
	ok bool
}

func (s *setting[T]) set(v T) { s.v, s.ok = v, true }

// or returns the level's own value if set, otherwise the inherited one.
func (s setting[T]) or(inherited T) T {
	if s.ok {
		return s.v
	}
	return inherited
}

// Level is the set of options given at one hierarchy level (one Define
// call or one standing registry). Unset options inherit independently.
type Level struct {
	caseSensitive setting[bool]
	prefix        setting[string]
	suffix        setting[string]
	stripPrefix   setting[bool]
	stripSuffix   setting[bool]
	snakeCase     setting[bool]
	hyphen        setting[bool]
	transform     setting[apis.Transform]
	regex         setting[*regexp.Regexp]
	recursive     setting[bool]
	redirect      setting[bool]
	overwrite     setting[bool]
	registerSelf  setting[bool]
	logger        setting[*slog.Logger]

	// member-only, never inherited
	name    string
	aliases []string
	skip    bool

	inheritable int
	errs        []error
}

// Option is a functional option recorded on a Level.
type Option func(*Level)

// NewLevel applies opts and reports the first invalid one.
func NewLevel(opts ...Option) (Level, error) {
	var l Level
	for _, opt := range opts {
		if opt != nil {
			opt(&l)
		}
	}
	if len(l.errs) > 0 {
		return Level{}, l.errs[0]
	}
	return l, nil
}

// Resolve merges the level against parent, the nearest ancestor's effective
// configuration, option by option.
func (l Level) Resolve(parent apis.Config) apis.Config {
	c := apis.Config{
		CaseSensitive: l.caseSensitive.or(parent.CaseSensitive),
		Prefix:        l.prefix.or(parent.Prefix),
		Suffix:        l.suffix.or(parent.Suffix),
		StripPrefix:   l.stripPrefix.or(parent.StripPrefix),
		StripSuffix:   l.stripSuffix.or(parent.StripSuffix),
		SnakeCase:     l.snakeCase.or(parent.SnakeCase),
		Hyphen:        l.hyphen.or(parent.Hyphen),
		Transform:     l.transform.or(parent.Transform),
		Regex:         l.regex.or(parent.Regex),
		Recursive:     l.recursive.or(parent.Recursive),
		Redirect:      l.redirect.or(parent.Redirect),
		Overwrite:     l.overwrite.or(parent.Overwrite),
		RegisterSelf:  l.registerSelf.or(parent.RegisterSelf),
		Logger:        l.logger.or(parent.Logger),
	}
	if c.Logger == nil {
		c.Logger = discard
	}
	return c
}

// Name returns the explicit key override, or "".
func (l Level) Name() string { return l.name }

// Aliases returns the explicit extra keys.
func (l Level) Aliases() []string { return append([]string(nil), l.aliases...) }

// Skip reports whether the member itself must not be entered anywhere.
func (l Level) Skip() bool { return l.skip }

// HasConfig reports whether any inheritable option was given.
func (l Level) HasConfig() bool { return l.inheritable > 0 }

func (l *Level) mark() { l.inheritable++ }

func (l *Level) fail(err error) { l.errs = append(l.errs, err) }

// WithCaseSensitive sets the CaseSensitive option.
func WithCaseSensitive(v bool) Option {
	return func(l *Level) { l.caseSensitive.set(v); l.mark() }
}

// WithPrefix sets the mandatory prefix. "" disables the rule.
func WithPrefix(p string) Option {
	return func(l *Level) { l.prefix.set(p); l.mark() }
}

// WithSuffix sets the mandatory suffix. "" disables the rule.
func WithSuffix(s string) Option {
	return func(l *Level) { l.suffix.set(s); l.mark() }
}

// WithStripPrefix sets the StripPrefix option.
func WithStripPrefix(v bool) Option {
	return func(l *Level) { l.stripPrefix.set(v); l.mark() }
}

// WithStripSuffix sets the StripSuffix option.
func WithStripSuffix(v bool) Option {
	return func(l *Level) { l.stripSuffix.set(v); l.mark() }
}

// WithSnakeCase sets the SnakeCase option.
func WithSnakeCase(v bool) Option {
	return func(l *Level) { l.snakeCase.set(v); l.mark() }
}

// WithHyphen sets the Hyphen option.
func WithHyphen(v bool) Option {
	return func(l *Level) { l.hyphen.set(v); l.mark() }
}

// WithTransform sets the final key transform. A nil fn clears an inherited one.
func WithTransform(fn apis.Transform) Option {
	return func(l *Level) { l.transform.set(fn); l.mark() }
}

// WithRegex sets the full-match legality pattern. "" clears an inherited one.
func WithRegex(pattern string) Option {
	return func(l *Level) {
		if pattern == "" {
			l.regex.set(nil)
			l.mark()
			return
		}
		re, err := regexp.Compile(`^(?:` + pattern + `)$`)
		if err != nil {
			l.fail(fmt.Errorf("%w: regex %q: %v", apis.ErrInvalidConfig, pattern, err))
			return
		}
		l.regex.set(re)
		l.mark()
	}
}

// WithRegexp sets a precompiled legality pattern. The caller is responsible
// for anchoring it.
func WithRegexp(re *regexp.Regexp) Option {
	return func(l *Level) { l.regex.set(re); l.mark() }
}

// WithRecursive sets the Recursive option.
func WithRecursive(v bool) Option {
	return func(l *Level) { l.recursive.set(v); l.mark() }
}

// WithRedirect sets the Redirect option.
func WithRedirect(v bool) Option {
	return func(l *Level) { l.redirect.set(v); l.mark() }
}

// WithOverwrite sets the Overwrite option.
func WithOverwrite(v bool) Option {
	return func(l *Level) { l.overwrite.set(v); l.mark() }
}

// WithRegisterSelf sets the RegisterSelf option.
func WithRegisterSelf(v bool) Option {
	return func(l *Level) { l.registerSelf.set(v); l.mark() }
}

// WithLogger sets the debug logger. nil falls back to a discard logger.
func WithLogger(lg *slog.Logger) Option {
	return func(l *Level) { l.logger.set(lg); l.mark() }
}

// WithName overrides the member's key. Explicit names bypass prefix, suffix
// and case rules but not the transform or the legality check.
func WithName(name string) Option {
	return func(l *Level) { l.name = name }
}

// WithAliases adds extra keys for the member, in order.
func WithAliases(aliases ...string) Option {
	return func(l *Level) { l.aliases = append(l.aliases, aliases...) }
}

// WithSkip keeps the member itself out of every store. Its own descendants
// are still bound against it.
func WithSkip(v bool) Option {
	return func(l *Level) { l.skip = v }
}
