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

// Package publish models the three external collaborators the graph walker
// hands completed nodes to: the Savant Cache, the AMD (Artifact Meta-Data)
// document plus its XML serializer, and the publish workflow that writes
// both out. These are treated as narrow interfaces the core calls through
// rather than core logic, so this package keeps the interfaces narrow and
// ships a filesystem-backed default implementation good enough to run the
// bridge end-to-end against a real directory.
package publish

import (
	"encoding/xml"
	"fmt"

	"github.com/google/uuid"
	"github.com/savant-build/maven-bridge/savant"
)

// AMDDependency is one dependency entry inside an AMD group.
type AMDDependency struct {
	XMLName xml.Name `xml:"dependency"`
	Group   string   `xml:"group,attr"`
	Project string   `xml:"project,attr"`
	Name    string   `xml:"name,attr"`
	Version string   `xml:"version,attr"`
	Type    string   `xml:"type,attr"`
}

// AMDGroup is a named dependency group ("compile", "test-runtime", ...).
type AMDGroup struct {
	XMLName      xml.Name        `xml:"dependencyGroup"`
	Name         string          `xml:"name,attr"`
	Dependencies []AMDDependency `xml:"dependency"`
}

// AMD is the Savant artifact-metadata document the bridge generates for
// every published node.
type AMD struct {
	XMLName xml.Name `xml:"amd"`

	// ID uniquely identifies this generated document.
	ID string `xml:"id,attr"`

	Licenses []string   `xml:"licenses>license"`
	Groups   []AMDGroup `xml:"dependencies>dependencyGroup"`
}

// Build assembles an AMD from a node's projected Savant dependency groups
// and its resolved licenses.
func Build(groups savant.DependencyGroups, licenses []savant.License) AMD {
	amd := AMD{ID: uuid.NewString()}
	for _, l := range licenses {
		amd.Licenses = append(amd.Licenses, l.String())
	}
	for name, deps := range groups {
		group := AMDGroup{Name: name}
		for _, d := range deps {
			group.Dependencies = append(group.Dependencies, AMDDependency{
				Group:   d.ID.Group,
				Project: d.ID.Project,
				Name:    d.ID.Name,
				Version: d.Version.String(),
				Type:    d.ID.RenderedType(),
			})
		}
		amd.Groups = append(amd.Groups, group)
	}
	return amd
}

// AMDSerializer is the external collaborator interface for
// `AMDSerializer.toXML(AMD)`.
type AMDSerializer interface {
	ToXML(amd AMD) ([]byte, error)
}

// DefaultAMDSerializer renders an AMD with the standard library's
// encoding/xml, indented for readability in --debug dumps and on disk. No
// library in the retrieved corpus serializes a bespoke metadata schema like
// this one; see DESIGN.md.
type DefaultAMDSerializer struct{}

// ToXML implements AMDSerializer.
func (DefaultAMDSerializer) ToXML(amd AMD) ([]byte, error) {
	out, err := xml.MarshalIndent(amd, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing AMD %s: %w", amd.ID, err)
	}
	return append([]byte(xml.Header), out...), nil
}
