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

package pom

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/savant-build/maven-bridge/bridgeerr"
	"github.com/savant-build/maven-bridge/log"
)

// malformedOslash is the "&oslash;" entity reference observed in the wild in
// POMs on central. It is not a predefined XML entity, so a strict XML parser
// rejects it. The literal substring is rewritten to a plain "O" before
// parsing, so it never reaches the decoder's HTML entity table.
const malformedOslash = "&oslash;"

// Parse reads the POM at path, quarantining a copy to quarantineDir on any
// parse failure before returning a POMParseError; the caller treats that
// error as fatal. An empty quarantineDir disables quarantining.
func Parse(path, quarantineDir string) (*POM, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, bridgeerr.IOf(err, "reading POM %s", path)
	}

	sanitized := sanitize(raw)
	if len(sanitized) != len(raw) {
		if err := os.WriteFile(path, sanitized, 0o644); err != nil {
			log.Warnf("could not rewrite sanitized POM %s: %v", path, err)
		}
	}

	p, err := parseBytes(sanitized)
	if err != nil {
		quarantine(path, quarantineDir)
		return nil, bridgeerr.Wrap(bridgeerr.KindPOMParse, "parsing "+path, err)
	}
	return p, nil
}

func sanitize(raw []byte) []byte {
	return []byte(strings.ReplaceAll(string(raw), malformedOslash, "O"))
}

// quarantine copies the offending file into quarantineDir under its original
// base name so a human can inspect why it failed to parse. Quarantine
// failures are logged, not fatal; the original parse error is what matters.
func quarantine(path, quarantineDir string) {
	if quarantineDir == "" {
		return
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Warnf("could not read %s for quarantine: %v", path, err)
		return
	}
	if err := os.MkdirAll(quarantineDir, 0o755); err != nil {
		log.Warnf("could not create quarantine directory %s: %v", quarantineDir, err)
		return
	}
	dest := filepath.Join(quarantineDir, filepath.Base(path))
	if err := os.WriteFile(dest, raw, 0o644); err != nil {
		log.Warnf("could not quarantine %s to %s: %v", path, dest, err)
	}
}

func parseBytes(b []byte) (*POM, error) {
	root, err := parseTree(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}

	ns := root.Name.Space
	p := &POM{Properties: map[string]string{}}

	p.GroupID, _ = root.text(ns, "groupId")
	p.ArtifactID, _ = root.text(ns, "artifactId")
	p.Version, _ = root.text(ns, "version")
	p.Name, _ = root.text(ns, "name")
	p.Packaging, _ = root.text(ns, "packaging")

	if parentEl := root.child(ns, "parent"); parentEl != nil {
		pns := parentEl.Name.Space
		group, _ := parentEl.text(pns, "groupId")
		id, _ := parentEl.text(pns, "artifactId")
		version, _ := parentEl.text(pns, "version")
		p.ParentCoord = &ParentCoord{Group: group, ID: id, Version: version}

		// A child POM inherits groupId/version from its parent when it
		// declares neither itself.
		if p.GroupID == "" {
			p.GroupID = group
		}
		if p.Version == "" {
			p.Version = version
		}
	}

	if propsEl := root.child(ns, "properties"); propsEl != nil {
		for _, c := range propsEl.Children {
			p.Properties[c.Name.Local] = strings.TrimSpace(c.Text)
		}
	}

	if depsEl := root.child(ns, "dependencies"); depsEl != nil {
		for _, depEl := range depsEl.children(ns, "dependency") {
			p.Dependencies = append(p.Dependencies, parseDependency(depEl, ns))
		}
	}

	if dmEl := root.child(ns, "dependencyManagement"); dmEl != nil {
		// The nested <dependencies> (and each <dependency> within it) is
		// looked up in dependencyManagement's own namespace, which is not
		// always the same as the document's root namespace; observed in
		// POMs assembled by multi-module build tooling that re-declares a
		// default xmlns on this one element.
		dmNS := dmEl.Name.Space
		if dmDepsEl := dmEl.child(dmNS, "dependencies"); dmDepsEl != nil {
			for _, depEl := range dmDepsEl.children(dmNS, "dependency") {
				p.DependencyManagement = append(p.DependencyManagement, parseDependency(depEl, dmNS))
			}
		}
	}

	return p, nil
}

func parseDependency(el *element, ns string) Dep {
	group, _ := el.text(ns, "groupId")
	id, _ := el.text(ns, "artifactId")
	d := Dep{
		Group:      group,
		ID:         id,
		Version:    el.textPtr(ns, "version"),
		Type:       el.textPtr(ns, "type"),
		Scope:      el.textPtr(ns, "scope"),
		Classifier: el.textPtr(ns, "classifier"),
		Optional:   el.textPtr(ns, "optional"),
	}
	// Exclusions are recorded, never honored; whether to warn about them is
	// the caller's decision (warnings are suppressed in non-interactive mode).
	if exclEl := el.child(ns, "exclusions"); exclEl != nil && len(exclEl.Children) > 0 {
		d.HasExclusions = true
	}
	return d
}
