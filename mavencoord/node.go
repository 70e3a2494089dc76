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

package mavencoord

import "github.com/savant-build/maven-bridge/savant"

// Optional is the tri-state optional flag: unresolved ("") is distinct from
// an explicit "true"/"false".
type Optional string

// The three possible states of Optional.
const (
	OptionalUnset Optional = ""
	OptionalTrue  Optional = "true"
	OptionalFalse Optional = "false"
)

// IsTrue reports whether the dependency is optional.
func (o Optional) IsTrue() bool { return o == OptionalTrue }

// State is a node's position in the graph walker's cycle/dedup state
// machine.
type State int

// The three states a Node passes through during traversal.
const (
	Unvisited State = iota
	OnStack
	Visited
)

// Node is a MavenCoord annotated with its resolved scope/optional fields,
// its children in the dependency graph, and (once computed) its Savant
// identity.
type Node struct {
	Coord

	Scope    string
	Optional Optional

	// ScopeOverride records a Savant scope the user explicitly confirmed for
	// this dependency. The Maven Scope/Optional pair cannot represent every
	// Savant scope (there is no Maven spelling of "test-runtime"), so the
	// confirmed value is carried verbatim rather than round-tripped.
	ScopeOverride savant.Scope

	Children []*Node

	Savant *savant.Artifact

	state State
}

// EffectiveScope returns Scope, defaulting to "compile" when unresolved.
func (n *Node) EffectiveScope() string {
	if n.Scope == "" {
		return "compile"
	}
	return n.Scope
}

// SavantScope returns the Savant dependency-group scope for this node: the
// user-confirmed override when one was recorded, otherwise the normalization
// of the resolved Maven scope and optional flag.
func (n *Node) SavantScope() savant.Scope {
	if n.ScopeOverride != "" {
		return n.ScopeOverride
	}
	return savant.NormalizeMavenScope(n.EffectiveScope(), n.Optional.IsTrue())
}

// State returns the node's current traversal state.
func (n *Node) State() State { return n.state }

// SetState transitions the node's traversal state.
func (n *Node) SetState(s State) { n.state = s }

// Equal reports whether n represents the same coordinate as coord, using
// mavencoord.Coord's classifier-insensitive equality.
func (n *Node) Equal(coord Coord) bool { return n.Coord.Equal(coord) }

// OptionalFromBool converts a resolved boolean optional flag into the
// tri-state Optional the Node carries; there is no representable "unset"
// once a dependency has been enriched.
func OptionalFromBool(b bool) Optional {
	if b {
		return OptionalTrue
	}
	return OptionalFalse
}
