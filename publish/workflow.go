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
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/savant-build/maven-bridge/bridgeerr"
	"github.com/savant-build/maven-bridge/savant"
)

// Publication bundles everything a single publish call needs: the resolved
// Savant artifact, its AMD metadata document, and the local paths of its
// main and (optional) sources files.
type Publication struct {
	Artifact   savant.Artifact
	AMD        AMD
	MainFile   string
	SourceFile string // "" when no sources artifact was found (best-effort).
}

// PublishWorkflow is the external collaborator that hands a resolved
// artifact off to the Savant repository.
type PublishWorkflow interface {
	Publish(p Publication) error
}

// Cache is the external collaborator interface for
// `Cache.fetch(savantArtifactFileName) -> path | absent`. It is consulted
// both before fetching any POM (to skip entire subtrees) and before
// publishing (to avoid re-publish), keyed on the Savant artifact file name.
type Cache interface {
	Fetch(savantArtifactFileName string) (path string, present bool)
}

// LocalCache is a Cache backed by a flat directory of published artifact
// files, the simplest storage layout that satisfies the "keyed on the
// Savant artifact file name" contract without inventing a multi-level
// repository layout that properly belongs to an external Savant cache
// service.
type LocalCache struct {
	Dir string
}

// NewLocalCache returns a LocalCache rooted at dir, creating it if absent.
func NewLocalCache(dir string) (*LocalCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, bridgeerr.IOf(err, "creating cache directory %s", dir)
	}
	return &LocalCache{Dir: dir}, nil
}

// Fetch implements Cache.
func (c *LocalCache) Fetch(savantArtifactFileName string) (string, bool) {
	path := filepath.Join(c.Dir, savantArtifactFileName)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

// LocalPublisher is the default PublishWorkflow: it copies the main and
// (optional) sources file into the cache directory alongside a serialized
// AMD sidecar, standing in locally for an external Savant publish service.
type LocalPublisher struct {
	Cache      *LocalCache
	Serializer AMDSerializer
}

// NewLocalPublisher returns a LocalPublisher writing into cache using the
// default AMD serializer.
func NewLocalPublisher(cache *LocalCache) *LocalPublisher {
	return &LocalPublisher{Cache: cache, Serializer: DefaultAMDSerializer{}}
}

// Publish implements PublishWorkflow.
func (p *LocalPublisher) Publish(pub Publication) error {
	if err := copyFile(pub.MainFile, filepath.Join(p.Cache.Dir, pub.Artifact.FileName())); err != nil {
		return bridgeerr.IOf(err, "publishing %s", pub.Artifact.ID)
	}
	if pub.SourceFile != "" {
		if err := copyFile(pub.SourceFile, filepath.Join(p.Cache.Dir, pub.Artifact.SourcesFileName())); err != nil {
			return bridgeerr.IOf(err, "publishing sources for %s", pub.Artifact.ID)
		}
	}

	xmlBytes, err := p.Serializer.ToXML(pub.AMD)
	if err != nil {
		return err
	}
	amdPath := filepath.Join(p.Cache.Dir, pub.Artifact.FileName()+".amd.xml")
	if err := os.WriteFile(amdPath, xmlBytes, 0o644); err != nil {
		return bridgeerr.IOf(err, "writing AMD for %s", pub.Artifact.ID)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	return nil
}
