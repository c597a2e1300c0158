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

// Namer lets a target choose its own raw identifier. The returned name still
// goes through the naming pipeline (prefix/suffix rules, case, transform).
//
//	type Charmander struct{}
//
//	func (Charmander) EntityName() string { return "Charmander" }
type Namer interface {
	// EntityName returns the raw identifier of the implementing type.
	// It must not depend on instance state.
	EntityName() string
}
