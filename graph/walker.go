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

// Package graph implements the recursive, cycle-checked, dedup-aware
// traversal that wires the fetcher, POM parser, property resolver and
// coordinate mapper into a topologically-sound import order. A visited list
// matched by coordinate identity guards against re-walking a dependency that
// was already resolved, and a
// cycle is reported the moment the same identity reappears on the live
// recursion stack.
package graph

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/savant-build/maven-bridge/bridgeerr"
	"github.com/savant-build/maven-bridge/config"
	"github.com/savant-build/maven-bridge/console"
	"github.com/savant-build/maven-bridge/coordmap"
	"github.com/savant-build/maven-bridge/effectiveprops"
	"github.com/savant-build/maven-bridge/fetch"
	"github.com/savant-build/maven-bridge/log"
	"github.com/savant-build/maven-bridge/mavencoord"
	"github.com/savant-build/maven-bridge/pom"
	"github.com/savant-build/maven-bridge/publish"
	"github.com/savant-build/maven-bridge/savant"
)

// Walker drives the import pipeline: the Fetcher downloads, pom.Parse
// parses, effectiveprops resolves properties, coordmap.Mapper maps Maven
// coordinates onto Savant ones, and this package recurses, dedups and
// finally publishes in post-order.
type Walker struct {
	Fetcher   fetch.Fetcher
	Mapper    *coordmap.Mapper
	Cache     publish.Cache
	Publisher publish.PublishWorkflow
	Console   console.Console
	Cfg       config.Config

	// WorkDir is a scratch directory for downloaded POMs and artifacts.
	WorkDir string
	// QuarantineDir receives copies of malformed POMs for later inspection.
	QuarantineDir string

	stack   map[mavencoord.Key]bool
	visited []*mavencoord.Node
}

// New returns a Walker ready to import a root coordinate.
func New(f fetch.Fetcher, m *coordmap.Mapper, cache publish.Cache, pub publish.PublishWorkflow, c console.Console, cfg config.Config, workDir string) *Walker {
	return &Walker{
		Fetcher:       f,
		Mapper:        m,
		Cache:         cache,
		Publisher:     pub,
		Console:       c,
		Cfg:           cfg,
		WorkDir:       workDir,
		QuarantineDir: filepath.Join(workDir, ".quarantine"),
		stack:         map[mavencoord.Key]bool{},
	}
}

// Import builds the graph rooted at coord and publishes every node in
// post-order: a node's artifacts only reach the cache once every child it
// depends on has already been published.
func (w *Walker) Import(ctx context.Context, coord mavencoord.Coord) error {
	root := &mavencoord.Node{Coord: coord}
	if err := w.buildGraph(ctx, root); err != nil {
		return err
	}
	if err := w.downloadAndProcess(ctx, root, map[*mavencoord.Node]bool{}); err != nil {
		return err
	}
	w.cleanupWorkDir()
	return nil
}

// visitedMatch returns the previously visited node equal to coord under
// mavencoord.Coord.Equal, if any, so an already-resolved coordinate is never
// walked twice.
func (w *Walker) visitedMatch(coord mavencoord.Coord) *mavencoord.Node {
	for _, n := range w.visited {
		if n.Equal(coord) {
			return n
		}
	}
	return nil
}

// buildGraph walks node's dependency tree depth-first, guarding against
// cycles with stack and against redundant work with visited.
func (w *Walker) buildGraph(ctx context.Context, node *mavencoord.Node) error {
	if w.stack[node.Coord.Key()] {
		return bridgeerr.Cyclef(node.Coord.String())
	}

	if existing := w.visitedMatch(node.Coord); existing != nil {
		node.Savant = existing.Savant
		node.SetState(mavencoord.Visited)
		return nil
	}

	savantArtifact, err := w.mapIdentity(node.Coord)
	if err != nil {
		return err
	}
	node.Savant = savantArtifact

	log.Banner(node.Coord.String(), savantArtifact.PackageURL())

	if _, present := w.Cache.Fetch(savantArtifact.FileName()); present {
		log.Infof("Skipping artifact %s: already in cache", savantArtifact.ID)
		node.SetState(mavencoord.Visited)
		return nil
	}

	// Licenses are only resolved once the cache pre-check has confirmed this
	// artifact still needs publishing: an already-cached artifact keeps an
	// empty license list rather than spending a prompt/cache lookup on it.
	licenses, err := w.Mapper.MapLicenses(node.Coord.Group, node.Coord.ID, nil)
	if err != nil {
		return err
	}
	savantArtifact.Licenses = licenses

	p, err := w.fetchAndParsePOM(ctx, node)
	if err != nil {
		return err
	}

	if err := w.linkParentChain(ctx, p); err != nil {
		return err
	}

	w.warnExclusions(p)

	table := effectiveprops.Build(p)
	deps := w.enrichDependencies(p, table)
	// Test/optional filtering runs before any version resolution: a dependency
	// that is about to be dropped must never cost the user a version prompt.
	deps = w.filterDependencies(deps)
	deps, err = w.resolveMissingVersions(deps)
	if err != nil {
		return err
	}
	deps = dedup(deps)

	var confirmed []savant.Scope
	if w.Cfg.PromptsEnabled {
		deps, confirmed, err = w.confirmDependencies(deps)
		if err != nil {
			return err
		}
	}

	w.stack[node.Coord.Key()] = true
	w.visited = append(w.visited, node)
	node.SetState(mavencoord.OnStack)

	for i, d := range deps {
		child := &mavencoord.Node{
			Coord:    mavencoord.Coord{Group: d.Group, ID: d.ID, Version: d.Version, Type: d.Type, Classifier: d.Classifier},
			Scope:    d.Scope,
			Optional: mavencoord.OptionalFromBool(d.Optional),
		}
		if confirmed != nil {
			child.ScopeOverride = confirmed[i]
		}
		if err := w.buildGraph(ctx, child); err != nil {
			return err
		}
		node.Children = append(node.Children, child)
	}

	delete(w.stack, node.Coord.Key())
	node.SetState(mavencoord.Visited)
	return nil
}

// mapIdentity maps a Maven coordinate onto its Savant group/name/version
// identity, deliberately leaving Licenses unset: license resolution is a
// separate, cache-gated step (see buildGraph) since the artifact's file
// name, and therefore the cache lookup key, never depends on its
// licenses.
func (w *Walker) mapIdentity(coord mavencoord.Coord) (*savant.Artifact, error) {
	savantGroup, err := w.Mapper.MapGroup(coord.Group)
	if err != nil {
		return nil, err
	}
	version, err := w.Mapper.MapVersion(coord.Version)
	if err != nil {
		return nil, err
	}
	name := coord.ID
	if coord.Classifier != "" {
		name += "-" + coord.Classifier
	}
	return &savant.Artifact{
		ID: savant.ArtifactID{
			Group:   savantGroup,
			Project: coord.ID,
			Name:    name,
			Type:    coord.Type,
		},
		Version: version,
	}, nil
}

// fetchAndParsePOM downloads coord's POM and parses it, offering a "try
// again" retry loop on absence when prompts are enabled.
func (w *Walker) fetchAndParsePOM(ctx context.Context, node *mavencoord.Node) (*pom.POM, error) {
	for {
		path, present, err := w.Fetcher.Fetch(ctx, node.Coord, node.Coord.POMFilename(), w.WorkDir)
		if err != nil {
			return nil, err
		}
		if present {
			if w.Cfg.Debug {
				if body, err := os.ReadFile(path); err == nil {
					log.Debugf("POM for %s:\n%s", node.Coord, body)
				}
			}
			return pom.Parse(path, w.QuarantineDir)
		}

		if !w.Cfg.PromptsEnabled {
			return nil, bridgeerr.Resolutionf("POM not found for %s and prompts are disabled", node.Coord)
		}

		retry, err := w.Console.Confirm(fmt.Sprintf("POM not found for %s. Do you want to try again?", node.Coord), true)
		if err != nil {
			return nil, err
		}
		if !retry {
			return nil, bridgeerr.Resolutionf("POM not found for %s", node.Coord)
		}

		newVersion, err := w.Console.Ask("Enter a corrected version", node.Coord.Version)
		if err != nil {
			return nil, err
		}
		node.Coord.Version = newVersion
		savantArtifact, err := w.mapIdentity(node.Coord)
		if err != nil {
			return nil, err
		}
		savantArtifact.Licenses = node.Savant.Licenses
		node.Savant = savantArtifact
	}
}

// linkParentChain walks p.ParentCoord, fetching and parsing each ancestor
// POM and appending its dependency list onto p.Dependencies. Property
// merging itself happens later via effectiveprops.Build, which already
// understands how to walk the Parent chain once linked.
func (w *Walker) linkParentChain(ctx context.Context, p *pom.POM) error {
	current := p
	for current.ParentCoord != nil {
		parentCoord := mavencoord.Coord{
			Group:   current.ParentCoord.Group,
			ID:      current.ParentCoord.ID,
			Version: current.ParentCoord.Version,
		}
		path, present, err := w.Fetcher.Fetch(ctx, parentCoord, parentCoord.POMFilename(), w.WorkDir)
		if err != nil {
			return err
		}
		if !present {
			return bridgeerr.Resolutionf("parent POM not found for %s", parentCoord)
		}
		parentPOM, err := pom.Parse(path, w.QuarantineDir)
		if err != nil {
			return err
		}
		current.Parent = parentPOM
		p.Dependencies = append(p.Dependencies, parentPOM.Dependencies...)
		current = parentPOM
	}
	return nil
}

// enrichDependencies applies property substitution and dependencyManagement
// enrichment to every declared dependency. Versions that remain unresolved
// after the management-chain lookup are handled later by
// resolveMissingVersions, after filtering has decided which dependencies are
// actually kept.
func (w *Walker) enrichDependencies(p *pom.POM, table map[string]string) []effectiveprops.Resolved {
	out := make([]effectiveprops.Resolved, 0, len(p.Dependencies))
	for _, dep := range p.Dependencies {
		out = append(out, effectiveprops.Enrich(dep, p, table))
	}
	return out
}

// resolveMissingVersions prompts for each surviving dependency whose version
// neither the declaration nor the dependencyManagement chain supplied. With
// prompts disabled an unresolvable version is a hard resolution failure.
func (w *Walker) resolveMissingVersions(deps []effectiveprops.Resolved) ([]effectiveprops.Resolved, error) {
	for i := range deps {
		if deps[i].Version != "" {
			continue
		}
		if !w.Cfg.PromptsEnabled {
			return nil, bridgeerr.Resolutionf(
				"no version could be resolved for dependency %s:%s and prompts are disabled", deps[i].Group, deps[i].ID)
		}
		v, err := console.AskValidated(w.Console,
			fmt.Sprintf("Version for dependency %s:%s", deps[i].Group, deps[i].ID), "",
			func(s string) error {
				if s == "" {
					return fmt.Errorf("a version is required")
				}
				return nil
			})
		if err != nil {
			return nil, err
		}
		deps[i].Version = v
	}
	return deps, nil
}

// warnExclusions surfaces every dependency that declared <exclusions>; the
// bridge never honors them. Suppressed entirely in non-interactive mode.
func (w *Walker) warnExclusions(p *pom.POM) {
	if !w.Cfg.PromptsEnabled {
		return
	}
	for _, d := range p.Dependencies {
		if d.HasExclusions {
			log.Warnf("%s:%s declares <exclusions>; the bridge does not honor exclusions and will carry the excluded artifacts through", d.Group, d.ID)
		}
	}
}

// filterDependencies drops test/optional dependencies per config, *before*
// any version validation happens downstream.
func (w *Walker) filterDependencies(deps []effectiveprops.Resolved) []effectiveprops.Resolved {
	out := deps[:0:0]
	for _, d := range deps {
		if !w.Cfg.IncludeTestDependencies && d.Scope == "test" {
			continue
		}
		if !w.Cfg.IncludeOptionalDependencies && d.Optional {
			continue
		}
		out = append(out, d)
	}
	return out
}

func dedup(deps []effectiveprops.Resolved) []effectiveprops.Resolved {
	seen := map[mavencoord.Key]bool{}
	out := deps[:0:0]
	for _, d := range deps {
		key := mavencoord.Key{Group: d.Group, ID: d.ID, Version: d.Version, Type: d.Type}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, d)
	}
	return out
}

// confirmDependencies walks each resolved dependency past the user,
// prompting to include/exclude it and to confirm its Savant scope. The
// confirmed scope for each kept dependency is returned alongside it, index
// for index, and is carried on the child Node verbatim: a Maven scope
// string plus optional flag cannot represent every Savant scope (there is
// no Maven spelling of "test-runtime"), so the answer is never mapped back.
func (w *Walker) confirmDependencies(deps []effectiveprops.Resolved) ([]effectiveprops.Resolved, []savant.Scope, error) {
	out := deps[:0:0]
	var scopes []savant.Scope
	for _, d := range deps {
		scope := savant.NormalizeMavenScope(d.Scope, d.Optional)
		include, err := w.Console.Confirm(
			fmt.Sprintf("Include dependency %s:%s:%s in scope %s?", d.Group, d.ID, d.Version, scope), true)
		if err != nil {
			return nil, nil, err
		}
		if !include {
			continue
		}
		for {
			answer, err := w.Console.Ask(fmt.Sprintf("Confirm Savant scope for %s:%s", d.Group, d.ID), string(scope))
			if err != nil {
				return nil, nil, err
			}
			if savant.Scope(answer).IsValid() {
				scopes = append(scopes, savant.Scope(answer))
				break
			}
			log.Warnf("%q is not a recognized Savant scope", answer)
		}
		out = append(out, d)
	}
	return out, scopes, nil
}

// downloadAndProcess is the post-order publish phase: every child is
// downloaded and published before this node itself, so an artifact never
// reaches the cache before the dependencies it needs.
func (w *Walker) downloadAndProcess(ctx context.Context, node *mavencoord.Node, published map[*mavencoord.Node]bool) error {
	if published[node] {
		return nil
	}
	published[node] = true

	if node.Savant == nil {
		// A node that never received a Savant identity has nothing to publish
		// or recurse into. Deduplicated nodes share their original's artifact
		// and are stopped by the cache check below.
		return nil
	}

	for _, child := range node.Children {
		if err := w.downloadAndProcess(ctx, child, published); err != nil {
			return err
		}
	}

	if _, present := w.Cache.Fetch(node.Savant.FileName()); present {
		return nil
	}

	mainPath, present, err := w.Fetcher.Fetch(ctx, node.Coord, node.Coord.MainFilename(), w.WorkDir)
	if err != nil {
		return err
	}
	if !present {
		return bridgeerr.New(bridgeerr.KindIO, fmt.Sprintf("main artifact not found for %s", node.Coord))
	}

	sourcesPath := ""
	if sp, present, err := w.Fetcher.Fetch(ctx, node.Coord, node.Coord.SourcesFilename(), w.WorkDir); err != nil {
		log.Warnf("could not fetch sources for %s: %v", node.Coord, err)
	} else if present {
		sourcesPath = sp
	}

	groups := savant.DependencyGroups{}
	for _, child := range node.Children {
		if child.Savant == nil {
			continue
		}
		groups.Add(child.SavantScope(), savant.Dependency{ID: child.Savant.ID, Version: child.Savant.Version})
	}

	amd := publish.Build(groups, node.Savant.Licenses)
	if w.Cfg.Debug {
		if xmlBytes, err := (publish.DefaultAMDSerializer{}).ToXML(amd); err == nil {
			log.Debugf("AMD for %s:\n%s", node.Savant.ID, string(xmlBytes))
		}
	}

	return w.Publisher.Publish(publish.Publication{
		Artifact:   *node.Savant,
		AMD:        amd,
		MainFile:   mainPath,
		SourceFile: sourcesPath,
	})
}

// cleanupWorkDir removes everything the walker downloaded into WorkDir,
// called by Import after a successful import.
func (w *Walker) cleanupWorkDir() {
	if w.WorkDir == "" {
		return
	}
	if err := os.RemoveAll(w.WorkDir); err != nil {
		log.Warnf("could not clean up work directory %s: %v", w.WorkDir, err)
	}
}
