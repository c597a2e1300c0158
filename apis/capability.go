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

import "strings"

// Capability is one method of the Mapping surface, as a bit.
type Capability uint16

// Mapping methods that an owner type may define for its own instances.
const (
	CapContains Capability = 1 << iota
	CapLen
	CapAll
	CapKeys
	CapValues
	CapItems
	CapLookup
	CapGet
	CapClear
)

// capNames is indexed by bit position.
var capNames = [...]string{"Contains", "Len", "All", "Keys", "Values", "Items", "Lookup", "Get", "Clear"}

// AllCapabilities lists every capability in declaration order.
func AllCapabilities() []Capability {
	out := make([]Capability, len(capNames))
	for i := range capNames {
		out[i] = Capability(1) << i
	}
	return out
}

// Method returns the Go method name backing c, or "" for composite values.
func (c Capability) Method() string {
	for i, n := range capNames {
		if c == Capability(1)<<i {
			return n
		}
	}
	return ""
}

// CapabilityOf returns the capability named by method.
func CapabilityOf(method string) (Capability, bool) {
	for i, n := range capNames {
		if n == method {
			return Capability(1) << i, true
		}
	}
	return 0, false
}

// Capabilities is the fixed set of Mapping methods an owner defines itself.
// It is computed once, when the owner is defined.
type Capabilities Capability

// Has reports whether c is in the set.
func (s Capabilities) Has(c Capability) bool { return Capability(s)&c != 0 }

// With returns the set plus c.
func (s Capabilities) With(c Capability) Capabilities { return Capabilities(Capability(s) | c) }

// Union returns the union of both sets.
func (s Capabilities) Union(o Capabilities) Capabilities { return s | o }

// String lists the method names, e.g. "Keys|Len".
func (s Capabilities) String() string {
	var names []string
	for _, c := range AllCapabilities() {
		if s.Has(c) {
			names = append(names, c.Method())
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}
