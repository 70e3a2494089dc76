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

// Package mavencoord defines the immutable Maven coordinate tuple that
// identifies an artifact in the remote repository, plus the annotated graph
// node type the walker builds around it.
package mavencoord

import "fmt"

// DefaultType is the packaging type Maven assumes when none is declared.
const DefaultType = "jar"

// Coord is an immutable Maven artifact coordinate. Equality and hashing use
// {Group, ID, Type, Version}. Classifier is deliberately excluded,
// matching observed upstream behavior: a graph containing a:b:1.0 and
// a:b:1.0:sources collapses to one node.
//
// Type is left empty ("") internally and only rendered as "jar" when a file
// name is produced; storing a defaulted value here would make the parent
// POM's packaging resolution ambiguous.
type Coord struct {
	Group      string
	ID         string
	Version    string
	Type       string
	Classifier string
}

// Key is the tuple used for equality and map keys: {Group, ID, Type,
// Version}. Classifier is deliberately excluded, so it must be used instead
// of Coord itself anywhere a classifier-insensitive identity is required;
// a bare Coord used directly as a map key would compare Classifier too via
// Go's built-in struct equality.
type Key struct {
	Group, ID, Type, Version string
}

// Key returns c's classifier-insensitive identity.
func (c Coord) Key() Key {
	return Key{Group: c.Group, ID: c.ID, Type: c.Type, Version: c.Version}
}

// Equal reports whether two coordinates are equal under the classifier-
// insensitive rule described above.
func (c Coord) Equal(other Coord) bool {
	return c.Key() == other.Key()
}

// RenderedType returns Type, defaulting to "jar" for display/file-name
// purposes only. The stored Type field is left untouched.
func (c Coord) RenderedType() string {
	if c.Type == "" {
		return DefaultType
	}
	return c.Type
}

// String renders the coordinate as group:id:version, the canonical form used
// in log messages and error text throughout the bridge.
func (c Coord) String() string {
	return fmt.Sprintf("%s:%s:%s", c.Group, c.ID, c.Version)
}

// GroupPath returns the group with '.' replaced by '/', as used to build
// repository URLs.
func (c Coord) GroupPath() string {
	path := make([]byte, 0, len(c.Group))
	for i := 0; i < len(c.Group); i++ {
		if c.Group[i] == '.' {
			path = append(path, '/')
		} else {
			path = append(path, c.Group[i])
		}
	}
	return string(path)
}

// MainFilename returns "<id>-<version>.<type>", defaulting type to "jar".
func (c Coord) MainFilename() string {
	return fmt.Sprintf("%s-%s.%s", c.ID, c.Version, c.RenderedType())
}

// SourcesFilename returns "<id>-<version>-sources.<type>".
func (c Coord) SourcesFilename() string {
	return fmt.Sprintf("%s-%s-sources.%s", c.ID, c.Version, c.RenderedType())
}

// POMFilename returns "<id>-<version>.pom".
func (c Coord) POMFilename() string {
	return fmt.Sprintf("%s-%s.pom", c.ID, c.Version)
}
