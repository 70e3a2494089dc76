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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempPOM(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "pom.xml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

const basicPOM = `<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0">
  <groupId>org.demo</groupId>
  <artifactId>app</artifactId>
  <version>2.0.0</version>
  <packaging>jar</packaging>
  <name>Demo App</name>
  <properties>
    <lib.ver>4.5.1</lib.ver>
  </properties>
  <dependencies>
    <dependency>
      <groupId>org.demo</groupId>
      <artifactId>lib</artifactId>
      <version>${lib.ver}</version>
    </dependency>
  </dependencies>
</project>`

func TestParseBasicFields(t *testing.T) {
	path := writeTempPOM(t, basicPOM)
	p, err := Parse(path, "")
	require.NoError(t, err)

	assert.Equal(t, "org.demo", p.GroupID)
	assert.Equal(t, "app", p.ArtifactID)
	assert.Equal(t, "2.0.0", p.Version)
	assert.Equal(t, "jar", p.Packaging)
	assert.Equal(t, "Demo App", p.Name)
	assert.Equal(t, "4.5.1", p.Properties["lib.ver"])
	require.Len(t, p.Dependencies, 1)
	assert.Equal(t, "org.demo", p.Dependencies[0].Group)
	assert.Equal(t, "lib", p.Dependencies[0].ID)
	require.NotNil(t, p.Dependencies[0].Version)
	assert.Equal(t, "${lib.ver}", *p.Dependencies[0].Version)
}

const parentPOM = `<project xmlns="http://maven.apache.org/POM/4.0.0">
  <parent>
    <groupId>com.x</groupId>
    <artifactId>parent</artifactId>
    <version>1.0</version>
  </parent>
  <artifactId>child</artifactId>
  <dependencies>
    <dependency>
      <groupId>com.y</groupId>
      <artifactId>util</artifactId>
    </dependency>
  </dependencies>
</project>`

func TestParseParentCoord(t *testing.T) {
	path := writeTempPOM(t, parentPOM)
	p, err := Parse(path, "")
	require.NoError(t, err)

	require.NotNil(t, p.ParentCoord)
	assert.Equal(t, "com.x", p.ParentCoord.Group)
	assert.Equal(t, "parent", p.ParentCoord.ID)
	assert.Equal(t, "1.0", p.ParentCoord.Version)
	// Child inherits groupId/version from parent when it declares neither.
	assert.Equal(t, "com.x", p.GroupID)
	assert.Equal(t, "1.0", p.Version)

	require.Len(t, p.Dependencies, 1)
	assert.Nil(t, p.Dependencies[0].Version)
}

const dependencyManagementPOM = `<project xmlns="http://maven.apache.org/POM/4.0.0">
  <groupId>com.x</groupId>
  <artifactId>parent</artifactId>
  <version>1.0</version>
  <dependencyManagement>
    <dependencies>
      <dependency>
        <groupId>com.y</groupId>
        <artifactId>util</artifactId>
        <version>3.0</version>
        <scope>runtime</scope>
      </dependency>
    </dependencies>
  </dependencyManagement>
</project>`

func TestParseDependencyManagement(t *testing.T) {
	path := writeTempPOM(t, dependencyManagementPOM)
	p, err := Parse(path, "")
	require.NoError(t, err)

	require.Len(t, p.DependencyManagement, 1)
	version := p.ResolveDependencyVersion("com.y", "util")
	require.NotNil(t, version)
	assert.Equal(t, "3.0", *version)

	scope := p.ResolveDependencyScope("com.y", "util")
	require.NotNil(t, scope)
	assert.Equal(t, "runtime", *scope)

	assert.Nil(t, p.ResolveDependencyVersion("com.z", "other"))
}

func TestResolveDependencyVersionRecursesIntoParent(t *testing.T) {
	parent := &POM{
		DependencyManagement: []Dep{
			{Group: "com.y", ID: "util", Version: strPtr("3.0")},
		},
	}
	child := &POM{Parent: parent}

	version := child.ResolveDependencyVersion("com.y", "util")
	require.NotNil(t, version)
	assert.Equal(t, "3.0", *version)
}

func strPtr(s string) *string { return &s }

// The nested <dependencies> lookup uses dependencyManagement's own namespace,
// not the document root's, so a re-declared default namespace on the
// dependencyManagement element (as emitted by some multi-module build
// tooling) still parses.
const dependencyManagementOwnNamespacePOM = `<m:project xmlns:m="http://maven.apache.org/POM/4.0.0">
  <m:groupId>com.x</m:groupId>
  <m:artifactId>parent</m:artifactId>
  <m:version>1.0</m:version>
  <m:dependencyManagement xmlns="http://maven.apache.org/POM/4.0.0">
    <dependencies>
      <dependency>
        <groupId>com.y</groupId>
        <artifactId>util</artifactId>
        <version>3.0</version>
      </dependency>
    </dependencies>
  </m:dependencyManagement>
</m:project>`

func TestParseDependencyManagementNamespaceOfOwnElement(t *testing.T) {
	path := writeTempPOM(t, dependencyManagementOwnNamespacePOM)
	p, err := Parse(path, "")
	require.NoError(t, err)
	require.Len(t, p.DependencyManagement, 1)
	assert.Equal(t, "com.y", p.DependencyManagement[0].Group)
}

const exclusionsPOM = `<project xmlns="http://maven.apache.org/POM/4.0.0">
  <groupId>org.demo</groupId>
  <artifactId>app</artifactId>
  <version>1.0</version>
  <dependencies>
    <dependency>
      <groupId>org.demo</groupId>
      <artifactId>lib</artifactId>
      <version>1.0</version>
      <exclusions>
        <exclusion>
          <groupId>org.other</groupId>
          <artifactId>excluded</artifactId>
        </exclusion>
      </exclusions>
    </dependency>
  </dependencies>
</project>`

func TestParseExclusionsAreRecordedButNotRemoved(t *testing.T) {
	path := writeTempPOM(t, exclusionsPOM)
	p, err := Parse(path, "")
	require.NoError(t, err)
	require.Len(t, p.Dependencies, 1)
	assert.True(t, p.Dependencies[0].HasExclusions)
}

func TestParseSanitizesOslashEntity(t *testing.T) {
	contents := `<project xmlns="http://maven.apache.org/POM/4.0.0">
  <groupId>org.demo</groupId>
  <artifactId>b&oslash;rk</artifactId>
  <version>1.0</version>
</project>`
	path := writeTempPOM(t, contents)
	p, err := Parse(path, "")
	require.NoError(t, err)
	assert.Equal(t, "bOrk", p.ArtifactID)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "&oslash;")
}

func TestParseMalformedXMLIsQuarantined(t *testing.T) {
	quarantineDir := t.TempDir()
	path := writeTempPOM(t, "<project><a></b></project>")
	_, err := Parse(path, quarantineDir)
	require.Error(t, err)

	entries, err := os.ReadDir(quarantineDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
