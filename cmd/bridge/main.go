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

// Command bridge imports a Maven artifact and its dependency graph into a
// local Savant-style cache.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/savant-build/maven-bridge/bridgeerr"
	"github.com/savant-build/maven-bridge/config"
	"github.com/savant-build/maven-bridge/console"
	"github.com/savant-build/maven-bridge/coordmap"
	"github.com/savant-build/maven-bridge/fetch"
	"github.com/savant-build/maven-bridge/graph"
	"github.com/savant-build/maven-bridge/groupmap"
	"github.com/savant-build/maven-bridge/log"
	"github.com/savant-build/maven-bridge/mavencoord"
	"github.com/savant-build/maven-bridge/publish"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "bridge: unhandled error: %v\n%s\n", r, debug.Stack())
			exitCode = 1
		}
	}()

	fs := flag.NewFlagSet("bridge", flag.ContinueOnError)
	debugFlag := fs.Bool("debug", false, "enable verbose printing of POM contents, download URLs, and generated AMD XML")
	includeTest := fs.Bool("include-test", false, "include test-scoped dependencies")
	includeOptional := fs.Bool("include-optional", false, "include optional dependencies")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	rest := fs.Args()
	if len(rest) != 1 {
		fmt.Fprintln(os.Stderr, "usage: bridge [--debug] <directory>")
		return 1
	}
	dir := rest[0]

	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		fmt.Fprintf(os.Stderr, "bridge: %s exists and is not a directory\n", dir)
		return 1
	} else if os.IsNotExist(statErr) {
		if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
			fmt.Fprintf(os.Stderr, "bridge: creating %s: %v\n", dir, mkErr)
			return 1
		}
	} else if statErr != nil {
		fmt.Fprintf(os.Stderr, "bridge: %v\n", statErr)
		return 1
	}

	log.SetVerbose(*debugFlag)
	cfg := config.FromEnv(dir, *debugFlag, *includeTest, *includeOptional)

	cons := console.New(os.Stdin, os.Stdout)
	coord, err := readRootCoord(cons)
	if err != nil {
		fmt.Fprintln(os.Stderr, bridgeerr.Argumentf("%v", err))
		return 1
	}

	if err := importRoot(cfg, cons, coord); err != nil {
		printErrorChain(err)
		return 1
	}
	return 0
}

// readRootCoord prompts for the group, artifact id and version of the root
// artifact to import. The CLI itself only takes the cache directory; the
// coordinate the bridge walks from is gathered here, the same way the
// interactive prompts gather everything else the pipeline needs.
func readRootCoord(cons console.Console) (mavencoord.Coord, error) {
	group, err := cons.Ask("Maven group to import", "")
	if err != nil {
		return mavencoord.Coord{}, err
	}
	if group == "" {
		return mavencoord.Coord{}, fmt.Errorf("a Maven group is required")
	}
	id, err := cons.Ask("Maven artifact id to import", "")
	if err != nil {
		return mavencoord.Coord{}, err
	}
	if id == "" {
		return mavencoord.Coord{}, fmt.Errorf("a Maven artifact id is required")
	}
	version, err := cons.Ask("Maven version to import", "")
	if err != nil {
		return mavencoord.Coord{}, err
	}
	if version == "" {
		return mavencoord.Coord{}, fmt.Errorf("a Maven version is required")
	}
	return mavencoord.Coord{Group: group, ID: id, Version: version}, nil
}

func importRoot(cfg config.Config, cons console.Console, coord mavencoord.Coord) error {
	mappingsPath := filepath.Join(cfg.CacheDir, groupmap.FileName)
	groups, err := groupmap.Load(mappingsPath)
	if err != nil {
		return err
	}

	mapper := coordmap.New(groups, cons, cfg)

	cache, err := publish.NewLocalCache(cfg.CacheDir)
	if err != nil {
		return err
	}
	publisher := publish.NewLocalPublisher(cache)

	workDir, err := os.MkdirTemp("", "maven-bridge-")
	if err != nil {
		return bridgeerr.IOf(err, "creating work directory")
	}

	w := graph.New(fetch.New(), mapper, cache, publisher, cons, cfg, workDir)

	if err := w.Import(context.Background(), coord); err != nil {
		return err
	}

	return groups.Save()
}

func printErrorChain(err error) {
	fmt.Fprintln(os.Stderr, "bridge: import failed:")
	for e := err; e != nil; e = unwrap(e) {
		fmt.Fprintf(os.Stderr, "  %v\n", e)
	}
}

func unwrap(err error) error {
	type unwrapper interface{ Unwrap() error }
	if u, ok := err.(unwrapper); ok {
		return u.Unwrap()
	}
	return nil
}
