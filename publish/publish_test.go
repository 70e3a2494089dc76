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

package publish

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savant-build/maven-bridge/savant"
)

func TestLocalCacheFetchReflectsDirectoryContents(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewLocalCache(dir)
	require.NoError(t, err)

	_, present := cache.Fetch("widget-1.2.3.jar")
	assert.False(t, present, "an empty cache holds nothing")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "widget-1.2.3.jar"), []byte("bytes"), 0o644))

	path, present := cache.Fetch("widget-1.2.3.jar")
	require.True(t, present)
	assert.Equal(t, filepath.Join(dir, "widget-1.2.3.jar"), path)
}

func TestNewLocalCacheCreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	_, err := NewLocalCache(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func artifact() savant.Artifact {
	return savant.Artifact{
		ID:      savant.ArtifactID{Group: "com.savant.demo", Project: "widget", Name: "widget", Type: "jar"},
		Version: mustVersion("1.2.3"),
	}
}

func mustVersion(s string) savant.Version {
	v, err := (savant.DefaultSemanticVersionParser{}).Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestLocalPublisherWritesMainSourcesAndAMD(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewLocalCache(dir)
	require.NoError(t, err)
	publisher := NewLocalPublisher(cache)

	mainFile := filepath.Join(t.TempDir(), "downloaded-main.jar")
	require.NoError(t, os.WriteFile(mainFile, []byte("main-bytes"), 0o644))
	sourcesFile := filepath.Join(t.TempDir(), "downloaded-sources.jar")
	require.NoError(t, os.WriteFile(sourcesFile, []byte("sources-bytes"), 0o644))

	a := artifact()
	amd := Build(savant.DependencyGroups{}, []savant.License{{ID: "Apache-2.0"}})

	err = publisher.Publish(Publication{Artifact: a, AMD: amd, MainFile: mainFile, SourceFile: sourcesFile})
	require.NoError(t, err)

	mainBytes, err := os.ReadFile(filepath.Join(dir, a.FileName()))
	require.NoError(t, err)
	assert.Equal(t, "main-bytes", string(mainBytes))

	sourceBytes, err := os.ReadFile(filepath.Join(dir, a.SourcesFileName()))
	require.NoError(t, err)
	assert.Equal(t, "sources-bytes", string(sourceBytes))

	amdBytes, err := os.ReadFile(filepath.Join(dir, a.FileName()+".amd.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(amdBytes), "Apache-2.0")

	_, present := cache.Fetch(a.FileName())
	assert.True(t, present, "publishing makes the artifact visible to the cache on the very next lookup")
}

func TestLocalPublisherToleratesMissingSources(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewLocalCache(dir)
	require.NoError(t, err)
	publisher := NewLocalPublisher(cache)

	mainFile := filepath.Join(t.TempDir(), "downloaded-main.jar")
	require.NoError(t, os.WriteFile(mainFile, []byte("main-bytes"), 0o644))

	a := artifact()
	err = publisher.Publish(Publication{Artifact: a, AMD: Build(savant.DependencyGroups{}, nil), MainFile: mainFile})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, a.SourcesFileName()))
	assert.True(t, os.IsNotExist(err), "no sources file is written when none was supplied")
}

func TestBuildAssemblesGroupsAndLicenses(t *testing.T) {
	groups := savant.DependencyGroups{}
	groups.Add(savant.ScopeCompile, savant.Dependency{
		ID:      savant.ArtifactID{Group: "com.savant.demo", Project: "lib", Name: "lib", Type: "jar"},
		Version: mustVersion("4.5.1"),
	})

	amd := Build(groups, []savant.License{{ID: "MIT"}})

	require.Len(t, amd.Groups, 1)
	assert.Equal(t, "compile", amd.Groups[0].Name)
	require.Len(t, amd.Groups[0].Dependencies, 1)
	assert.Equal(t, "lib", amd.Groups[0].Dependencies[0].Project)
	assert.Equal(t, []string{"MIT"}, amd.Licenses)
	assert.NotEmpty(t, amd.ID)
}

func TestDefaultAMDSerializerRendersWellFormedXML(t *testing.T) {
	groups := savant.DependencyGroups{}
	groups.Add(savant.ScopeTestCompile, savant.Dependency{
		ID:      savant.ArtifactID{Group: "com.savant.demo", Project: "junit", Name: "junit", Type: "jar"},
		Version: mustVersion("4.13.2"),
	})
	amd := Build(groups, []savant.License{{ID: "EPL-1.0"}})

	out, err := (DefaultAMDSerializer{}).ToXML(amd)
	require.NoError(t, err)
	body := string(out)
	assert.Contains(t, body, "<?xml")
	assert.Contains(t, body, "test-compile")
	assert.Contains(t, body, "junit")
	assert.Contains(t, body, "EPL-1.0")
}
