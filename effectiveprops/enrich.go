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

package effectiveprops

import "github.com/savant-build/maven-bridge/pom"

// Resolved is a dependency declaration after property substitution and
// dependencyManagement lookup have filled in whatever the declaring POM
// left unspecified.
type Resolved struct {
	Group, ID  string
	Version    string
	Type       string
	Scope      string
	Classifier string
	Optional   bool
}

// Enrich substitutes ${...} placeholders in dep's declared fields against
// table, then falls back to owner's dependencyManagement chain (and a final
// substitution pass, since a dependencyManagement entry can itself hold an
// unsubstituted placeholder) for any field the dependency left nil.
func Enrich(dep pom.Dep, owner *pom.POM, table map[string]string) Resolved {
	r := Resolved{
		Group: SubstituteString(dep.Group, table),
		ID:    SubstituteString(dep.ID, table),
	}

	r.Version = resolveField(dep.Version, owner.ResolveDependencyVersion(dep.Group, dep.ID), table)
	r.Type = resolveField(dep.Type, nil, table)
	r.Scope = resolveField(dep.Scope, owner.ResolveDependencyScope(dep.Group, dep.ID), table)
	r.Classifier = resolveField(dep.Classifier, nil, table)

	optionalStr := resolveField(dep.Optional, owner.ResolveDependencyOptional(dep.Group, dep.ID), table)
	r.Optional = optionalStr == "true"

	return r
}

// resolveField prefers declared over managed, substituting whichever is
// used against table.
func resolveField(declared, managed *string, table map[string]string) string {
	if declared != nil && *declared != "" {
		return SubstituteString(*declared, table)
	}
	if managed != nil {
		return SubstituteString(*managed, table)
	}
	return ""
}
