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

package groupmap

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maven-group-mappings.properties")
	m, err := Load(path)
	require.NoError(t, err)
	_, ok := m.Get("org.demo")
	assert.False(t, ok)
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maven-group-mappings.properties")

	first, err := Load(path)
	require.NoError(t, err)
	first.Set("demo", "org.demo.savant")
	first.Set("weaksauce", "org.weaksauce.savant")
	require.NoError(t, first.Save())

	second, err := Load(path)
	require.NoError(t, err)

	for _, k := range []string{"demo", "weaksauce"} {
		want, ok := first.Get(k)
		require.True(t, ok)
		got, ok := second.Get(k)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestSetOverwrites(t *testing.T) {
	m := &Mappings{m: map[string]string{}}
	m.Set("g", "first")
	m.Set("g", "second")
	v, ok := m.Get("g")
	require.True(t, ok)
	assert.Equal(t, "second", v)
}
