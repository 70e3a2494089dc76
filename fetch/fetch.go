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

// Package fetch resolves a Maven (group, id, version, filename) tuple to a
// local file, MD5-verifying every download against its ".md5" sidecar. A
// 404 response means "absent", any other non-200 status or network error is
// fatal, and responses are streamed to disk rather than buffered into the
// process unnecessarily for large jars.
package fetch

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/savant-build/maven-bridge/bridgeerr"
	"github.com/savant-build/maven-bridge/log"
	"github.com/savant-build/maven-bridge/mavencoord"
)

// CentralBaseURL is the only base URL the bridge supports; historical
// http:// mirrors are not honored.
const CentralBaseURL = "https://repo1.maven.org/maven2"

// Fetcher resolves a (coord, filename) tuple to a local file.
type Fetcher interface {
	// Fetch downloads filename for coord into a fresh file under destDir,
	// verifying it against its ".md5" sidecar. It returns ("", false, nil)
	// if the artifact does not exist upstream (HTTP 404 on the sidecar).
	Fetch(ctx context.Context, coord mavencoord.Coord, filename, destDir string) (path string, present bool, err error)
}

// HTTPFetcher is the default Fetcher, downloading from a single Maven
// repository base URL over HTTPS.
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
}

// New returns an HTTPFetcher rooted at CentralBaseURL using http.DefaultClient.
func New() *HTTPFetcher {
	return &HTTPFetcher{BaseURL: CentralBaseURL, Client: http.DefaultClient}
}

// url builds the request URL for coord/filename, turning the group's dots
// into path segments the way Maven Central lays out its repository tree.
func (f *HTTPFetcher) url(coord mavencoord.Coord, filename string) string {
	base := f.BaseURL
	if base == "" {
		base = CentralBaseURL
	}
	return strings.Join([]string{base, coord.GroupPath(), coord.ID, coord.Version, filename}, "/")
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, coord mavencoord.Coord, filename, destDir string) (string, bool, error) {
	primaryURL := f.url(coord, filename)
	md5URL := primaryURL + ".md5"

	log.Debugf("fetch: GET %s", md5URL)
	expected, present, err := f.fetchMD5(ctx, md5URL)
	if err != nil {
		return "", false, err
	}
	if !present {
		return "", false, nil
	}

	log.Debugf("fetch: GET %s", primaryURL)
	path, sum, err := f.download(ctx, primaryURL, destDir, filename)
	if err != nil {
		return "", false, err
	}

	if !strings.EqualFold(sum, expected) {
		os.Remove(path)
		return "", false, bridgeerr.New(bridgeerr.KindIO,
			fmt.Sprintf("MD5 mismatch for %s: expected %s, got %s", primaryURL, expected, sum))
	}
	return path, true, nil
}

// fetchMD5 downloads the ".md5" sidecar and extracts its first 32 hex
// characters. A 404 is reported as absent; any other non-200 status is
// fatal.
func (f *HTTPFetcher) fetchMD5(ctx context.Context, md5URL string) (string, bool, error) {
	resp, err := f.get(ctx, md5URL)
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", false, bridgeerr.New(bridgeerr.KindIO,
			fmt.Sprintf("unexpected status %d fetching %s", resp.StatusCode, md5URL))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", false, bridgeerr.IOf(err, "reading MD5 body from %s", md5URL)
	}

	hexDigest := extractHexDigest(string(body))
	if hexDigest == "" {
		return "", false, bridgeerr.New(bridgeerr.KindIO,
			fmt.Sprintf("could not find a 32-character MD5 digest in %s", md5URL))
	}
	return hexDigest, true, nil
}

// extractHexDigest returns the first 32 contiguous hex characters in s, or
// "" if none exist. Some repositories pad the sidecar with a trailing file
// name or whitespace; only the digest itself matters.
func extractHexDigest(s string) string {
	var run []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		isHex := (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
		if isHex {
			run = append(run, c)
			if len(run) == 32 {
				return strings.ToLower(string(run))
			}
			continue
		}
		run = run[:0]
	}
	return ""
}

// download streams primaryURL to a fresh file under destDir, computing its
// MD5 digest on the fly. A 404 here is still treated as fatal: by the time
// the primary URL is requested, the sidecar has already confirmed the
// artifact exists.
func (f *HTTPFetcher) download(ctx context.Context, primaryURL, destDir, filename string) (string, string, error) {
	resp, err := f.get(ctx, primaryURL)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", bridgeerr.New(bridgeerr.KindIO,
			fmt.Sprintf("unexpected status %d fetching %s", resp.StatusCode, primaryURL))
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", "", bridgeerr.IOf(err, "creating fetch destination %s", destDir)
	}

	tmp, err := os.CreateTemp(destDir, "fetch-*-"+sanitizeFileName(filename))
	if err != nil {
		return "", "", bridgeerr.IOf(err, "creating temp file in %s", destDir)
	}
	defer tmp.Close()

	hasher := md5.New()
	if _, err := io.Copy(io.MultiWriter(tmp, hasher), resp.Body); err != nil {
		os.Remove(tmp.Name())
		return "", "", bridgeerr.IOf(err, "downloading %s", primaryURL)
	}

	return tmp.Name(), hex.EncodeToString(hasher.Sum(nil)), nil
}

func (f *HTTPFetcher) get(ctx context.Context, rawURL string) (*http.Response, error) {
	if _, err := url.Parse(rawURL); err != nil {
		return nil, bridgeerr.New(bridgeerr.KindIO, fmt.Sprintf("invalid URL %s: %v", rawURL, err))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, bridgeerr.IOf(err, "building request for %s", rawURL)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, bridgeerr.IOf(err, "fetching %s", rawURL)
	}
	return resp, nil
}

func sanitizeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' {
			return '_'
		}
		return r
	}, name)
}
