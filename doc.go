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

// Package autoreg builds string-keyed registries without explicit
// registration calls.
//
// A family of implementations is declared once, and callers resolve a
// concrete implementation by a derived short name:
//
//	pokemon := autoreg.Must(autoreg.RootOf[Pokemon]())
//	pikachu := autoreg.Must(autoreg.DeriveOf[Pikachu](pokemon))
//	autoreg.Must(autoreg.DeriveOf[SurfingPikachu](pikachu))
//
//	pokemon.Keys()          // ["pikachu", "surfingpikachu"]
//	pokemon.Lookup("PIKACHU")
//
// # Design
//
// The module is split by concern:
//
//   - config: functional options for one hierarchy level. Each option that
//     is not set on a level inherits the nearest ancestor's effective value,
//     independently of the others. Levels can also be read from YAML or
//     TOML files.
//
//   - naming: turns a raw identifier into a canonical key (prefix and
//     suffix rules, snake_case, case folding, transform, legality check).
//
//   - store: the ordered key -> entry mapping behind every registry.
//
//   - hierarchy: classes. A member is entered into its direct parent's
//     store, then cascaded to each ancestor whose own recursive flag is
//     true, stopping at the first that is false.
//
//   - facade: the mapping surface shared by classes and registries, and the
//     redirection rule for owner types that define same-named methods.
//
//   - scanner and registry: standing registries filled from callables,
//     types and namespace trees. Nested namespaces become nested registries
//     reachable with "a.b" or "a/b" keys.
//
//   - strategy and resolver: how a target's raw identifier is found
//     (apis.Namer, reflect.Type, function symbol, dynamic type).
//
// # Concurrency
//
// Binding and registration are expected to run from a single definition
// stream, typically package initialization. Stores are not synchronized;
// callers that mutate registries from several goroutines must serialize
// access themselves.
package autoreg
