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

package savant

import (
	"fmt"
	"regexp"

	"github.com/Masterminds/semver/v3"
)

// semverPattern matches MAJOR[.MINOR[.PATCH]][-PRERELEASE][+BUILD] with no
// leading zeros unless the component itself is literally "0".
var semverPattern = regexp.MustCompile(
	`^(0|[1-9]\d*)(\.(0|[1-9]\d*))?(\.(0|[1-9]\d*))?` +
		`(-[0-9A-Za-z-]+(\.[0-9A-Za-z-]+)*)?` +
		`(\+[0-9A-Za-z-]+(\.[0-9A-Za-z-]+)*)?$`)

// Version is a resolved Savant semantic version. It is the narrow
// representation the core hands to the external SemanticVersion.Parse
// collaborator; the default implementation below also parses it with
// Masterminds/semver. String returns the version exactly as it was parsed.
type Version struct {
	raw string
	sv  *semver.Version
}

func (v Version) String() string {
	if v.raw != "" {
		return v.raw
	}
	if v.sv != nil {
		return v.sv.String()
	}
	return ""
}

// IsValid reports whether v was produced by a successful Parse.
func (v Version) IsValid() bool { return v.sv != nil }

// MatchesSemanticVersion reports whether s satisfies the strict
// semantic-version grammar above, without attempting to parse or normalize
// it. Used by the coordinate mapper to decide whether to prompt for a
// replacement version.
func MatchesSemanticVersion(s string) bool {
	return semverPattern.MatchString(s)
}

// SemanticVersionParser is the external collaborator interface for
// `SemanticVersion.parse(string)`.
type SemanticVersionParser interface {
	Parse(s string) (Version, error)
}

// DefaultSemanticVersionParser is the bridge's concrete implementation,
// requiring the string to already satisfy MatchesSemanticVersion.
type DefaultSemanticVersionParser struct{}

// Parse implements SemanticVersionParser.
func (DefaultSemanticVersionParser) Parse(s string) (Version, error) {
	if !MatchesSemanticVersion(s) {
		return Version{}, fmt.Errorf("%q is not a valid semantic version", s)
	}
	sv, err := semver.NewVersion(s)
	if err != nil {
		return Version{}, fmt.Errorf("parsing semantic version %q: %w", s, err)
	}
	return Version{raw: s, sv: sv}, nil
}
