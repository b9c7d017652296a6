/* ==================================================================================== *\
    graph.go

    Graph: the full AS-level topology, built once from a Builder slice and
    then read-only for the lifetime of a simulation run. Construction
    mirrors anaximander_simulator's two-pass approach in caida_file_readers.go
    (allocate every node first, then wire edges, dropping references to
    ASNs never declared) and original_source/src/as_graph/mod.rs's
    propagation-rank / provider-cone computation.
\* ==================================================================================== */

package asgraph

import (
	"fmt"
	"sort"

	"github.com/Emeline-1/bgpsimulator/asn"
)

// Builder describes one AS's declared relationships before the graph is
// assembled; ASNs referenced here that have no Builder entry of their own
// are dropped from the edge, not synthesized as empty nodes.
type Builder struct {
	ASN       asn.ASN
	Providers []asn.ASN
	Peers     []asn.ASN
	Customers []asn.ASN
	IXP       bool
}

// CycleError reports that the customer-provider subgraph isn't a DAG.
type CycleError struct {
	Cycle []asn.ASN
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("customer-provider graph has a cycle: %v", e.Cycle)
}

// Graph is the assembled AS topology.
type Graph struct {
	ases map[asn.ASN]*AS

	// PropagationRanks[i] holds every ASN whose propagation rank is i;
	// rank 0 is the set of tier-1 ASes (no providers), increasing toward
	// the stubs.
	PropagationRanks [][]asn.ASN

	groups map[asn.ASNGroup]map[asn.ASN]struct{}

	// ASPAProviders is the attestation store ASPA validation queries:
	// for each ASN that has issued ASPA records, the set of ASNs it
	// attests are its true providers. Populated by SetASPAProviders;
	// empty (not nil) by default, which ASPA's provider_check treats as
	// "no attestation on file" (Unknown, not Invalid).
	ASPAProviders map[asn.ASN][]asn.ASN
}

// NewGraph assembles a Graph from builders. Edges to ASNs with no builder
// entry are silently dropped, mirroring anaximander_simulator's CAIDA
// reader behavior of ignoring stub ASNs outside the declared relationship
// file. Returns a *CycleError if the customer-provider subgraph has a cycle.
func NewGraph(builders []Builder) (*Graph, error) {
	g := &Graph{
		ases:          make(map[asn.ASN]*AS, len(builders)),
		groups:        make(map[asn.ASNGroup]map[asn.ASN]struct{}),
		ASPAProviders: make(map[asn.ASN][]asn.ASN),
	}

	for _, b := range builders {
		g.ases[b.ASN] = newAS(b.ASN)
	}

	for _, b := range builders {
		a := g.ases[b.ASN]
		a.IXP = b.IXP
		for _, p := range b.Providers {
			if _, ok := g.ases[p]; ok {
				a.Providers = append(a.Providers, p)
			}
		}
		for _, p := range b.Peers {
			if _, ok := g.ases[p]; ok {
				a.Peers = append(a.Peers, p)
			}
		}
		for _, c := range b.Customers {
			if _, ok := g.ases[c]; ok {
				a.Customers = append(a.Customers, c)
			}
		}
	}

	for _, a := range g.ases {
		a.Tier1 = len(a.Providers) == 0 && len(a.Customers) > 0
	}

	if cyc := g.findCycle(); cyc != nil {
		return nil, &CycleError{Cycle: cyc}
	}

	if err := g.rank(); err != nil {
		return nil, err
	}
	g.computeProviderCones()
	g.computeGroups()

	return g, nil
}

// AS looks up a node by ASN; ok is false if it isn't in the graph.
func (g *Graph) AS(a asn.ASN) (*AS, bool) {
	node, ok := g.ases[a]
	return node, ok
}

// Len reports how many ASes the graph holds.
func (g *Graph) Len() int {
	return len(g.ases)
}

// All returns every AS node. Callers must not mutate the slice's elements.
func (g *Graph) All() []*AS {
	out := make([]*AS, 0, len(g.ases))
	for _, a := range g.ases {
		out = append(out, a)
	}
	return out
}

// Group returns the ASN set for a named group, computed at build time.
func (g *Graph) Group(name asn.ASNGroup) map[asn.ASN]struct{} {
	return g.groups[name]
}

// SetASPAProviders records asn's provider attestation set, resolving the
// spec's ASPA provider_check against real data rather than a stub.
func (g *Graph) SetASPAProviders(a asn.ASN, providers []asn.ASN) {
	g.ASPAProviders[a] = providers
}

// findCycle runs a recursive DFS over the customer-provider subgraph
// (provider -> customer edges) looking for a back edge. Returns the cycle
// as a slice of ASNs, or nil if the subgraph is a DAG.
func (g *Graph) findCycle() []asn.ASN {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[asn.ASN]int, len(g.ases))
	var path []asn.ASN

	var visit func(a asn.ASN) []asn.ASN
	visit = func(a asn.ASN) []asn.ASN {
		color[a] = gray
		path = append(path, a)
		node := g.ases[a]
		for _, c := range node.Customers {
			switch color[c] {
			case white:
				if cyc := visit(c); cyc != nil {
					return cyc
				}
			case gray:
				cyc := append([]asn.ASN{}, path...)
				cyc = append(cyc, c)
				return cyc
			}
		}
		path = path[:len(path)-1]
		color[a] = black
		return nil
	}

	for a := range g.ases {
		if color[a] == white {
			if cyc := visit(a); cyc != nil {
				return cyc
			}
		}
	}
	return nil
}

// rank assigns each AS a propagation rank via a Kahn-style topological
// layering of the provider-customer DAG: rank 0 is every AS with no
// providers (tier-1), and each subsequent rank is every AS all of whose
// providers already have a rank below it — spec.md §4.1's "rank 0: ASes
// with empty providers" and invariant #2 (rank(X) > max(rank(p) for p in
// X.providers)). This is the layering spec.md §4.5's three-phase
// propagate_round traverses, reversed or not depending on phase.
func (g *Graph) rank() error {
	remaining := make(map[asn.ASN]int, len(g.ases))
	for a, node := range g.ases {
		remaining[a] = len(node.Providers)
	}

	assigned := 0
	rank := 0
	for assigned < len(g.ases) {
		var frontier []asn.ASN
		for a, left := range remaining {
			if left == 0 {
				frontier = append(frontier, a)
			}
		}
		sort.Slice(frontier, func(i, j int) bool { return frontier[i] < frontier[j] })
		if len(frontier) == 0 {
			return fmt.Errorf("asgraph: rank() made no progress with %d ASes unranked", len(g.ases)-assigned)
		}
		for _, a := range frontier {
			g.ases[a].PropagationRank = rank
			delete(remaining, a)
			assigned++
		}
		g.PropagationRanks = append(g.PropagationRanks, frontier)

		for _, a := range frontier {
			for _, c := range g.ases[a].Customers {
				if _, ok := remaining[c]; ok {
					remaining[c]--
				}
			}
		}
		rank++
	}
	return nil
}

// computeProviderCones fills ProviderConeASNs for every tier-1 AS: the set
// of all ASes reachable by following customer edges downward, memoized so
// shared sub-cones are computed once. Non-tier-1 ASes get an empty map,
// matching spec.md §4.4's "tier-1 ASes only" scope for provider cones.
func (g *Graph) computeProviderCones() {
	memo := make(map[asn.ASN]map[asn.ASN]struct{}, len(g.ases))

	var cone func(a asn.ASN) map[asn.ASN]struct{}
	cone = func(a asn.ASN) map[asn.ASN]struct{} {
		if c, ok := memo[a]; ok {
			return c
		}
		c := make(map[asn.ASN]struct{})
		memo[a] = c // break cycles defensively; findCycle already forbids them
		for _, customer := range g.ases[a].Customers {
			c[customer] = struct{}{}
			for desc := range cone(customer) {
				c[desc] = struct{}{}
			}
		}
		return c
	}

	for a, node := range g.ases {
		if node.Tier1 {
			node.ProviderConeASNs = cone(a)
		} else {
			node.ProviderConeASNs = map[asn.ASN]struct{}{}
		}
	}
}

// computeGroups fills the named ASN groups spec.md §4.4 defines. The Input
// group is not created here, so Group(asn.Input) returns nil.
func (g *Graph) computeGroups() {
	for _, name := range []asn.ASNGroup{
		asn.Tier1, asn.Etc, asn.StubsOrMH, asn.Stubs,
		asn.Multihomed, asn.Transit, asn.IXP,
	} {
		g.groups[name] = make(map[asn.ASN]struct{})
	}

	for a, node := range g.ases {
		switch {
		case node.Tier1:
			g.groups[asn.Tier1][a] = struct{}{}
		case node.IsStub():
			g.groups[asn.Stubs][a] = struct{}{}
			g.groups[asn.StubsOrMH][a] = struct{}{}
			if node.IsMultihomed() {
				g.groups[asn.Multihomed][a] = struct{}{}
			}
		default:
			g.groups[asn.Transit][a] = struct{}{}
			g.groups[asn.Etc][a] = struct{}{}
		}
		if node.IXP {
			g.groups[asn.IXP][a] = struct{}{}
		}
	}
}
