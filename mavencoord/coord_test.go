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

package mavencoord

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordEqualIgnoresClassifier(t *testing.T) {
	a := Coord{Group: "a", ID: "b", Version: "1.0"}
	b := Coord{Group: "a", ID: "b", Version: "1.0", Classifier: "sources"}
	assert.True(t, a.Equal(b), "classifier must not affect equality")
}

func TestCoordEqualDiffersOnType(t *testing.T) {
	a := Coord{Group: "a", ID: "b", Version: "1.0", Type: "jar"}
	b := Coord{Group: "a", ID: "b", Version: "1.0", Type: "pom"}
	assert.False(t, a.Equal(b))
}

func TestGroupPath(t *testing.T) {
	c := Coord{Group: "org.demo.lib"}
	assert.Equal(t, "org/demo/lib", c.GroupPath())
}

func TestRenderedTypeDefaultsToJar(t *testing.T) {
	c := Coord{Type: ""}
	assert.Equal(t, "jar", c.RenderedType())
	c.Type = "pom"
	assert.Equal(t, "pom", c.RenderedType())
}

func TestFilenames(t *testing.T) {
	c := Coord{ID: "widget", Version: "1.2.3"}
	assert.Equal(t, "widget-1.2.3.jar", c.MainFilename())
	assert.Equal(t, "widget-1.2.3-sources.jar", c.SourcesFilename())
	assert.Equal(t, "widget-1.2.3.pom", c.POMFilename())
}

func TestString(t *testing.T) {
	c := Coord{Group: "org.demo", ID: "app", Version: "2.0.0"}
	assert.Equal(t, "org.demo:app:2.0.0", c.String())
}
