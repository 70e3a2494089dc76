// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package savant

// Scope is a Savant dependency-group scope, drawn from a fixed set.
type Scope string

// The fixed set of Savant scopes.
const (
	ScopeProvided        Scope = "provided"
	ScopeCompile         Scope = "compile"
	ScopeCompileOptional Scope = "compile-optional"
	ScopeRuntime         Scope = "runtime"
	ScopeRuntimeOptional Scope = "runtime-optional"
	ScopeTestCompile     Scope = "test-compile"
	ScopeTestRuntime     Scope = "test-runtime"
)

// ValidScopes is the allowed set the interactive confirmation prompt
// restricts user-entered overrides to.
var ValidScopes = []Scope{
	ScopeProvided, ScopeCompile, ScopeCompileOptional,
	ScopeRuntime, ScopeRuntimeOptional, ScopeTestCompile, ScopeTestRuntime,
}

// IsValid reports whether s is one of ValidScopes.
func (s Scope) IsValid() bool {
	for _, v := range ValidScopes {
		if s == v {
			return true
		}
	}
	return false
}

// NormalizeMavenScope maps a Maven scope string (plus optional flag) onto a
// Savant Scope: Maven's "test" becomes "test-compile", and an "-optional"
// suffix is appended for optional compile/runtime deps.
func NormalizeMavenScope(mavenScope string, optional bool) Scope {
	switch mavenScope {
	case "", "compile":
		if optional {
			return ScopeCompileOptional
		}
		return ScopeCompile
	case "provided":
		return ScopeProvided
	case "runtime":
		if optional {
			return ScopeRuntimeOptional
		}
		return ScopeRuntime
	case "test":
		return ScopeTestCompile
	case "system":
		return ScopeProvided
	default:
		if optional {
			return ScopeCompileOptional
		}
		return ScopeCompile
	}
}

// GroupName returns the Savant dependency-group name for this scope, created
// lazily on first use by the graph walker's Savant-dependencies projection.
func (s Scope) GroupName() string {
	return string(s)
}

// Dependency is a single entry in a Savant dependency group.
type Dependency struct {
	ID      ArtifactID
	Version Version
}

// DependencyGroups maps a Savant scope group name to its member
// dependencies, built lazily by the graph walker.
type DependencyGroups map[string][]Dependency

// Add appends dep to the group named by scope, creating the group on first
// use.
func (g DependencyGroups) Add(scope Scope, dep Dependency) {
	g[scope.GroupName()] = append(g[scope.GroupName()], dep)
}
