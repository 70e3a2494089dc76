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

// Package effectiveprops builds the effective property table a POM's
// ${...} placeholders are substituted against: the POM's own declared
// properties, merged up through its parent chain, plus a handful of
// deprecated model-value aliases Maven itself recognizes.
package effectiveprops

import (
	"strings"

	"github.com/savant-build/maven-bridge/pom"
)

// maxSubstitutionPasses bounds the fixed-point ${key} substitution loop so a
// property that (directly or through a cycle) refers to itself can never
// hang the bridge; ten passes is far more than any real POM chain needs,
// since each pass can only resolve references that were themselves just
// resolved the pass before.
const maxSubstitutionPasses = 10

// Build walks p and its parent chain into a single effective property
// table, then resolves every ${...} placeholder within it to a fixed
// point (bounded by maxSubstitutionPasses).
func Build(p *pom.POM) map[string]string {
	table := map[string]string{}
	seedModelAliases(table, p)

	for node := p; node != nil; node = node.Parent {
		for k, v := range node.Properties {
			putIfAbsent(table, k, v)
		}
		if node.Parent != nil {
			seedParentAliases(table, node.Parent)
		}
	}

	substitute(table)
	return table
}

// seedModelAliases seeds the property keys Maven derives directly from the
// model rather than from a declared <properties> block, plus its older
// deprecated spellings of the same values ("pom.version", bare "version").
// A model value the POM never declared is skipped entirely; seeding an empty
// string would silently erase ${version}-style references that a declared
// property (or nothing at all) should resolve instead. Where the model value
// is declared it is authoritative over a same-named <properties> entry.
func seedModelAliases(table map[string]string, p *pom.POM) {
	seed := func(v string, keys ...string) {
		if v == "" {
			return
		}
		for _, k := range keys {
			table[k] = v
		}
	}
	seed(p.GroupID, "project.groupId", "pom.groupId", "groupId")
	seed(p.ArtifactID, "project.artifactId", "pom.artifactId", "artifactId")
	seed(p.Version, "project.version", "pom.version", "version")
	seed(p.Name, "project.name")
	seed(p.Packaging, "project.packaging")
}

// seedParentAliases makes every property a parent declares (its coordinate
// fields plus anything from its own <properties> block) available under
// both the "parent.k" and "project.parent.k" spellings POMs use
// interchangeably, without overwriting a value the child already resolved
// for itself.
func seedParentAliases(table map[string]string, parent *pom.POM) {
	parentProps := map[string]string{
		"groupId":    parent.GroupID,
		"artifactId": parent.ArtifactID,
		"version":    parent.Version,
	}
	for k, v := range parent.Properties {
		parentProps[k] = v
	}
	for k, v := range parentProps {
		for _, alias := range []string{"parent", "project.parent"} {
			putIfAbsent(table, alias+"."+k, v)
		}
	}
}

func putIfAbsent(table map[string]string, key, val string) {
	if _, ok := table[key]; !ok {
		table[key] = val
	}
}

// substitute resolves ${key} references within table's own values in place,
// iterating until a pass makes no further change or maxSubstitutionPasses is
// reached. An unresolvable reference is left verbatim, matching how real
// Maven tooling degrades rather than failing the build outright.
func substitute(table map[string]string) {
	for pass := 0; pass < maxSubstitutionPasses; pass++ {
		changed := false
		for k, v := range table {
			resolved := substituteOnce(v, table)
			if resolved != v {
				table[k] = resolved
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}

func substituteOnce(s string, table map[string]string) string {
	var b strings.Builder
	for {
		start := strings.Index(s, "${")
		if start < 0 {
			b.WriteString(s)
			break
		}
		end := strings.Index(s[start:], "}")
		if end < 0 {
			b.WriteString(s)
			break
		}
		end += start
		key := s[start+2 : end]
		b.WriteString(s[:start])
		if val, ok := table[key]; ok {
			b.WriteString(val)
		} else {
			b.WriteString(s[start : end+1])
		}
		s = s[end+1:]
	}
	return b.String()
}

// SubstituteString resolves ${...} references in s against table, for
// one-off values outside the property table itself (a dependency's
// version/scope/optional fields).
func SubstituteString(s string, table map[string]string) string {
	return substituteOnce(s, table)
}
