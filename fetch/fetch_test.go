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

package fetch

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savant-build/maven-bridge/mavencoord"
)

func md5Hex(b []byte) string {
	sum := md5.Sum(b)
	return hex.EncodeToString(sum[:])
}

func newServer(t *testing.T, files map[string][]byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := files[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write(body)
	}))
}

func TestFetchSuccess(t *testing.T) {
	content := []byte("hello world")
	path := "/org/demo/widget/1.2.3/widget-1.2.3.jar"
	srv := newServer(t, map[string][]byte{
		path:         content,
		path + ".md5": []byte(md5Hex(content)),
	})
	defer srv.Close()

	f := &HTTPFetcher{BaseURL: srv.URL, Client: http.DefaultClient}
	coord := mavencoord.Coord{Group: "org.demo", ID: "widget", Version: "1.2.3"}

	destDir := t.TempDir()
	gotPath, present, err := f.Fetch(context.Background(), coord, "widget-1.2.3.jar", destDir)
	require.NoError(t, err)
	require.True(t, present)

	got, err := os.ReadFile(gotPath)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestFetchAbsentWhenMD5Missing(t *testing.T) {
	srv := newServer(t, map[string][]byte{})
	defer srv.Close()

	f := &HTTPFetcher{BaseURL: srv.URL, Client: http.DefaultClient}
	coord := mavencoord.Coord{Group: "org.demo", ID: "widget", Version: "9.9.9"}

	_, present, err := f.Fetch(context.Background(), coord, "widget-9.9.9.jar", t.TempDir())
	require.NoError(t, err)
	assert.False(t, present)
}

func TestFetchFatalOnMD5Mismatch(t *testing.T) {
	content := []byte("hello world")
	path := "/org/demo/widget/1.2.3/widget-1.2.3.jar"
	srv := newServer(t, map[string][]byte{
		path:         content,
		path + ".md5": []byte("00000000000000000000000000000000"),
	})
	defer srv.Close()

	f := &HTTPFetcher{BaseURL: srv.URL, Client: http.DefaultClient}
	coord := mavencoord.Coord{Group: "org.demo", ID: "widget", Version: "1.2.3"}

	_, present, err := f.Fetch(context.Background(), coord, "widget-1.2.3.jar", t.TempDir())
	require.Error(t, err)
	assert.False(t, present)
}

func TestFetchURLPathEncodesGroup(t *testing.T) {
	f := &HTTPFetcher{BaseURL: CentralBaseURL}
	coord := mavencoord.Coord{Group: "org.demo.lib", ID: "widget", Version: "1.0"}
	assert.Equal(t, CentralBaseURL+"/org/demo/lib/widget/1.0/widget-1.0.jar", f.url(coord, "widget-1.0.jar"))
}

func TestExtractHexDigest(t *testing.T) {
	digest := "0123456789abcdef0123456789abcdef"
	assert.Equal(t, digest, extractHexDigest(digest+"  widget-1.2.3.jar\n"))
	assert.Equal(t, "", extractHexDigest("not a digest"))
}
