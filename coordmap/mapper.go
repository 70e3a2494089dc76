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

// Package coordmap turns a Maven coordinate's loosely-typed group, version
// and license strings into their Savant equivalents, prompting the operator
// interactively wherever the mapping isn't already known and persisting
// what it learns along the way.
package coordmap

import (
	"fmt"
	"strings"

	"github.com/savant-build/maven-bridge/bridgeerr"
	"github.com/savant-build/maven-bridge/config"
	"github.com/savant-build/maven-bridge/console"
	"github.com/savant-build/maven-bridge/groupmap"
	"github.com/savant-build/maven-bridge/log"
	"github.com/savant-build/maven-bridge/savant"
)

// Mapper resolves Savant groups, versions and licenses for Maven
// coordinates, memoizing everything it resolves within a single run (and,
// for groups, across runs via groupmap.Mappings).
type Mapper struct {
	groups   *groupmap.Mappings
	console  console.Console
	cfg      config.Config
	versions savant.SemanticVersionParser
	licenses savant.LicenseParser

	licenseCache map[string][]savant.License
}

// New builds a Mapper backed by the given persisted group table, console
// and process settings.
func New(groups *groupmap.Mappings, c console.Console, cfg config.Config) *Mapper {
	return &Mapper{
		groups:       groups,
		console:      c,
		cfg:          cfg,
		versions:     savant.DefaultSemanticVersionParser{},
		licenses:     savant.DefaultLicenseParser{},
		licenseCache: map[string][]savant.License{},
	}
}

// MapGroup returns the Savant group for a Maven group, via a three-step
// rule: an existing mapping wins outright; absent a mapping, a group that
// already "looks namespaced" (contains a '.') passes through unchanged with
// no prompt; only a bare, undotted group triggers the interactive prompt
// (and, with prompts disabled, passes through unchanged like a dotted one).
func (m *Mapper) MapGroup(mavenGroup string) (string, error) {
	if sg, ok := m.groups.Get(mavenGroup); ok {
		return sg, nil
	}
	if strings.Contains(mavenGroup, ".") {
		return mavenGroup, nil
	}
	if !m.cfg.PromptsEnabled {
		m.groups.Set(mavenGroup, mavenGroup)
		return mavenGroup, nil
	}
	answer, err := m.console.Ask(
		fmt.Sprintf("That group looks weaksauce. Enter the group to use with Savant instead of %q", mavenGroup),
		mavenGroup)
	if err != nil {
		return "", err
	}
	if answer != mavenGroup {
		m.groups.Set(mavenGroup, answer)
	}
	return answer, nil
}

// MapVersion returns the Savant version to publish under for a Maven
// version string. A version already matching the semantic-version grammar
// is kept by default (confirmed interactively unless prompts are
// disabled); anything else requires an interactive replacement, or fails
// outright with prompts disabled.
func (m *Mapper) MapVersion(mavenVersion string) (savant.Version, error) {
	valid := savant.MatchesSemanticVersion(mavenVersion)

	if valid && !m.cfg.PromptsEnabled {
		return m.versions.Parse(mavenVersion)
	}

	if valid {
		keep, err := m.console.Confirm(
			fmt.Sprintf("Maven version %q is a valid semantic version. Use it as-is?", mavenVersion), true)
		if err != nil {
			return savant.Version{}, err
		}
		if keep {
			return m.versions.Parse(mavenVersion)
		}
	} else if !m.cfg.PromptsEnabled {
		return savant.Version{}, bridgeerr.Validationf(
			"%q is not a valid semantic version and prompts are disabled", mavenVersion)
	} else {
		log.Warnf("Maven version %q is not a valid semantic version", mavenVersion)
	}

	replacement, err := console.AskValidated(m.console,
		"Enter a semantic version to publish under instead", mavenVersion,
		func(s string) error {
			if !savant.MatchesSemanticVersion(s) {
				return fmt.Errorf("%q is not a valid semantic version", s)
			}
			return nil
		})
	if err != nil {
		return savant.Version{}, err
	}
	return m.versions.Parse(replacement)
}

// MapLicenses resolves the Savant licenses to publish for the artifact
// identified by group:id, given whatever license identifiers (if any) the
// Maven POM declared. Results are memoized per group:id for the run.
func (m *Mapper) MapLicenses(group, id string, declared []string) ([]savant.License, error) {
	key := group + ":" + id
	if cached, ok := m.licenseCache[key]; ok {
		return cached, nil
	}

	var licenses []savant.License
	if !m.cfg.PromptsEnabled {
		spdxID := savant.DefaultLicenseID
		if len(declared) > 0 {
			spdxID = declared[0]
		}
		lic, err := m.licenses.Parse(spdxID)
		if err != nil {
			log.Warnf("license %q for %s is not recognized; defaulting to %s", spdxID, key, savant.DefaultLicenseID)
			lic = savant.License{ID: savant.DefaultLicenseID}
		}
		licenses = []savant.License{lic}
	} else {
		def := savant.DefaultLicenseID
		if len(declared) > 0 {
			def = strings.Join(declared, ",")
		}
		answer, err := console.AskValidated(m.console,
			fmt.Sprintf("SPDX license identifier(s) for %s (comma-separated)", key), def,
			func(s string) error {
				for _, part := range strings.Split(s, ",") {
					if _, err := m.licenses.Parse(strings.TrimSpace(part)); err != nil {
						return err
					}
				}
				return nil
			})
		if err != nil {
			return nil, err
		}
		for _, part := range strings.Split(answer, ",") {
			lic, _ := m.licenses.Parse(strings.TrimSpace(part))
			licenses = append(licenses, lic)
		}
	}

	m.licenseCache[key] = licenses
	return licenses, nil
}
