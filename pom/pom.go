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

// Package pom parses Maven pom.xml documents into the bridge's own POM
// record, tolerant of namespace-qualified elements and a fixed set of known
// malformed entities.
package pom

import "github.com/savant-build/maven-bridge/mavencoord"

// ParentCoord identifies a parent POM by group/artifact/version.
type ParentCoord struct {
	Group, ID, Version string
}

// Dep is a single <dependency> (or <dependencyManagement> entry), with all
// fields nullable except Group/ID.
type Dep struct {
	Group, ID     string
	Version       *string
	Type          *string
	Scope         *string
	Classifier    *string
	Optional      *string
	HasExclusions bool
}

// Coord renders the dependency's currently-known fields as a MavenCoord.
// Version/Type may be empty if not yet resolved.
func (d Dep) Coord() mavencoord.Coord {
	c := mavencoord.Coord{Group: d.Group, ID: d.ID}
	if d.Version != nil {
		c.Version = *d.Version
	}
	if d.Type != nil {
		c.Type = *d.Type
	}
	if d.Classifier != nil {
		c.Classifier = *d.Classifier
	}
	return c
}

// POM is the bridge's parsed representation of a project-object-model file.
type POM struct {
	GroupID, ArtifactID, Version, Name, Packaging string

	ParentCoord *ParentCoord

	Properties map[string]string

	Dependencies         []Dep
	DependencyManagement []Dep

	// Parent is lazily materialized by the caller walking ParentCoord.
	Parent *POM
}

// managementMatch returns the dependencyManagement entry matching
// (group, id), searching this POM only (not its parent chain).
func (p *POM) managementMatch(group, id string) *Dep {
	for i := range p.DependencyManagement {
		d := &p.DependencyManagement[i]
		if d.Group == group && d.ID == id {
			return d
		}
	}
	return nil
}

// ResolveDependencyVersion searches dependencyManagement for an entry
// matching (group, id) in this POM, then recurses into Parent if not found,
// returning nil if no match exists anywhere in the chain.
func (p *POM) ResolveDependencyVersion(group, id string) *string {
	if d := p.managementMatch(group, id); d != nil && d.Version != nil {
		return d.Version
	}
	if p.Parent != nil {
		return p.Parent.ResolveDependencyVersion(group, id)
	}
	return nil
}

// ResolveDependencyScope is the scope analogue of ResolveDependencyVersion.
func (p *POM) ResolveDependencyScope(group, id string) *string {
	if d := p.managementMatch(group, id); d != nil && d.Scope != nil {
		return d.Scope
	}
	if p.Parent != nil {
		return p.Parent.ResolveDependencyScope(group, id)
	}
	return nil
}

// ResolveDependencyOptional is the optional-flag analogue of
// ResolveDependencyVersion.
func (p *POM) ResolveDependencyOptional(group, id string) *string {
	if d := p.managementMatch(group, id); d != nil && d.Optional != nil {
		return d.Optional
	}
	if p.Parent != nil {
		return p.Parent.ResolveDependencyOptional(group, id)
	}
	return nil
}
