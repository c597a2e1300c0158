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

package apis

import (
	"log/slog"
	"regexp"
)

// Transform rewrites a derived key as the last naming step.
type Transform func(name string) string

// Config carries the effective naming and binding knobs of one registry level.
// It is passed by value and should be treated as immutable by implementations;
// config.Level.Resolve produces a fresh value per level.
type Config struct {
	// CaseSensitive keeps identifiers as written. When false, derived keys are
	// lowercased and lookups are case-folded.
	CaseSensitive bool

	// Prefix and Suffix are mandatory affixes of every raw identifier
	// entering the store. Empty disables the rule.
	Prefix string
	Suffix string

	// StripPrefix and StripSuffix remove the affix from the derived key.
	StripPrefix bool
	StripSuffix bool

	// SnakeCase splits identifiers at case transitions and joins the words
	// with "_" (or "-" under Hyphen).
	SnakeCase bool

	// Hyphen uses "-" as the word separator: every "_" of the derived key
	// becomes "-".
	Hyphen bool

	// Transform, if set, is applied last, to derived and explicit names alike.
	Transform Transform

	// Regex, if set, replaces the default legality check: a key must fully
	// match it.
	Regex *regexp.Regexp

	// Recursive lets descendants deeper than direct children cascade into
	// this level's store. For namespaces it enables descending into
	// sub-namespaces.
	Recursive bool

	// Redirect makes type-level facade calls use the registry even when the
	// owner type defines a same-named method.
	Redirect bool

	// Overwrite permits replacing an existing key instead of failing.
	Overwrite bool

	// RegisterSelf enters an owner into its own store.
	RegisterSelf bool

	// Logger receives debug records about binding. Never nil after resolution.
	Logger *slog.Logger
}
