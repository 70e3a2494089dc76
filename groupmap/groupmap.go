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

// Package groupmap persists the Maven-group -> Savant-group remapping table
// as a genuine Java .properties file, using github.com/magiconair/properties
// rather than a hand-rolled key=value scanner.
package groupmap

import (
	"fmt"
	"os"
	"sync"

	"github.com/magiconair/properties"
)

// FileName is the persisted file's name inside the cache directory.
const FileName = "maven-group-mappings.properties"

// Mappings is a one-process-lifetime, mutation-in-place table of Maven
// group -> Savant group remaps.
type Mappings struct {
	mu   sync.Mutex
	path string
	m    map[string]string
}

// Load reads path if it exists, or starts with an empty table otherwise. A
// missing file is not an error.
func Load(path string) (*Mappings, error) {
	m := &Mappings{path: path, m: map[string]string{}}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return m, nil
	}
	props, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return nil, fmt.Errorf("loading group mappings from %s: %w", path, err)
	}
	for _, key := range props.Keys() {
		val, _ := props.Get(key)
		m.m[key] = val
	}
	return m, nil
}

// Get returns the Savant group mapped for mavenGroup, and whether one was
// found.
func (m *Mappings) Get(mavenGroup string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.m[mavenGroup]
	return v, ok
}

// Set stores (or overwrites) the mapping for mavenGroup, to be persisted on
// exit.
func (m *Mappings) Set(mavenGroup, savantGroup string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.m[mavenGroup] = savantGroup
}

// Save truncates and rewrites the backing file.
func (m *Mappings) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	props := properties.NewProperties()
	for k, v := range m.m {
		if _, _, err := props.Set(k, v); err != nil {
			return fmt.Errorf("encoding group mapping %s=%s: %w", k, v, err)
		}
	}
	f, err := os.Create(m.path)
	if err != nil {
		return fmt.Errorf("creating group mappings file %s: %w", m.path, err)
	}
	defer f.Close()
	if _, err := props.WriteComment(f, "# ", properties.UTF8); err != nil {
		return fmt.Errorf("writing group mappings file %s: %w", m.path, err)
	}
	return nil
}
