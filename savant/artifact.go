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

// Package savant models the target data model the bridge republishes into:
// artifact identities, semantic versions, SPDX licenses and dependency
// groups. The concrete publish/cache/serialization mechanics are narrow
// external interfaces; this package only carries the shapes the core
// pipeline needs to build before handing off.
package savant

import (
	"fmt"

	"github.com/package-url/packageurl-go"
)

// DefaultType is the packaging type assumed when none is known.
const DefaultType = "jar"

// ArtifactID identifies a Savant artifact: {group, project, name, type}.
// Project always equals the Maven artifact id; Name equals the Maven id plus
// a classifier suffix when one was recorded.
type ArtifactID struct {
	Group   string
	Project string
	Name    string
	Type    string
}

// RenderedType defaults Type to "jar" for display/file-name purposes.
func (a ArtifactID) RenderedType() string {
	if a.Type == "" {
		return DefaultType
	}
	return a.Type
}

func (a ArtifactID) String() string {
	return fmt.Sprintf("%s:%s:%s", a.Group, a.Name, a.RenderedType())
}

// Artifact is the fully resolved Savant artifact a MavenNode maps onto.
type Artifact struct {
	ID       ArtifactID
	Version  Version
	Licenses []License
}

// FileName returns the file name this artifact publishes under:
// "<name>-<version>.<type>".
func (a Artifact) FileName() string {
	return fmt.Sprintf("%s-%s.%s", a.ID.Name, a.Version.String(), a.ID.RenderedType())
}

// SourcesFileName returns "<name>-<version>-sources.<type>".
func (a Artifact) SourcesFileName() string {
	return fmt.Sprintf("%s-%s-sources.%s", a.ID.Name, a.Version.String(), a.ID.RenderedType())
}

// PackageURL renders a pkg:maven/... purl for log/debug output.
func (a Artifact) PackageURL() string {
	instance := packageurl.PackageURL{
		Type:      packageurl.TypeMaven,
		Namespace: a.ID.Group,
		Name:      a.ID.Project,
		Version:   a.Version.String(),
	}
	return (&instance).String()
}
