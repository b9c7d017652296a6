/* ==================================================================================== *\
    engine.go

    Engine: the propagation loop spec.md §4.6 describes — one PolicyState
    per AS, and a strict three-phase round (to-providers, to-peers,
    to-customers) driven by the graph's propagation ranks.
\* ==================================================================================== */

package ribengine

import (
	"github.com/Emeline-1/bgpsimulator/announcement"
	"github.com/Emeline-1/bgpsimulator/asgraph"
	"github.com/Emeline-1/bgpsimulator/asn"
	"github.com/Emeline-1/bgpsimulator/policy"
	"github.com/Emeline-1/bgpsimulator/roatrie"
)

// Engine owns one PolicyState per AS in the graph and drives propagation.
type Engine struct {
	Graph  *asgraph.Graph
	States map[asn.ASN]*PolicyState
	ctx    *policy.Context
}

// NewEngine builds an engine with one policy per AS, all running the
// given settings. validator may be nil for settings that never consult
// ROAs. legitimateOrigins and validEdges are scenario-supplied inputs
// for PathEnd and ASPathEdgeFilter respectively; either may be nil.
func NewEngine(graph *asgraph.Graph, settings asn.Settings, validator *roatrie.Validator, legitimateOrigins map[asn.ASN]struct{}, validEdges map[[2]asn.ASN]struct{}) *Engine {
	e := &Engine{
		Graph:  graph,
		States: make(map[asn.ASN]*PolicyState, graph.Len()),
		ctx: &policy.Context{
			Validator:         validator,
			Graph:             graph,
			LegitimateOrigins: legitimateOrigins,
			ValidEdges:        validEdges,
		},
	}
	for _, a := range graph.All() {
		e.States[a.ASN] = NewPolicyState(a, policy.Factory(settings))
	}
	return e
}

// AdoptSettings swaps the extension running at each ASN in adopting to
// the given settings, leaving every other AS on whatever NewEngine gave
// it. This is how a scenario expresses "half the ASes are upgraded to
// ROV" (spec.md §8 S5): NewEngine seeds the baseline-BGP majority, then
// the driver calls AdoptSettings once with the sampled adopting set —
// the same per-AS settings override original_source's Simulation::
// run_single_trial performs by reassigning policy.settings/policy.extension
// for each adopting ASN before the run starts.
func (e *Engine) AdoptSettings(adopting map[asn.ASN]struct{}, settings asn.Settings) {
	ext := policy.Factory(settings)
	for a := range adopting {
		if ps, ok := e.States[a]; ok {
			ps.Extension = ext
		}
	}
}

// SeedAnn injects ann at origin ASN, bypassing validate per spec.md §4.5.
func (e *Engine) SeedAnn(origin asn.ASN, ann announcement.Announcement) {
	if ps, ok := e.States[origin]; ok {
		ps.SeedAnn(ann)
	}
}

// InitialPropagation enqueues every origin AS's seeded local_rib entries
// (those SeedAnn stored, with recv relationship Origin; routes learned
// from neighbors are skipped), and every pending seeded withdrawal, onto all of that AS's
// neighbors' recv_qs — the "single initial propagation pass" spec.md
// §4.6's initialize names. A seeded withdrawal (spec.md §8 S6) has no
// local_rib entry of its own by the time this runs (SeedAnn already
// deleted it), so it's exported from e.States[...].TakeSeedWithdrawals
// instead, through the same origin-relationship export rule.
func (e *Engine) InitialPropagation() {
	for _, ps := range e.States {
		for _, ann := range ps.LocalRIB {
			if ann.RecvRelationship != asn.Origin {
				continue
			}
			e.exportFromOrigin(ps, ann)
		}
		for _, ann := range ps.TakeSeedWithdrawals() {
			e.exportFromOrigin(ps, ann)
		}
	}
}

// exportFromOrigin delivers ann to every neighbor ps's extension says
// to propagate an Origin-received route to, injecting directly into
// each neighbor's recv_q.
func (e *Engine) exportFromOrigin(ps *PolicyState, ann announcement.Announcement) {
	for _, sendRel := range []asn.Relationship{asn.Providers, asn.Peers, asn.Customers} {
		if !ps.Extension.ShouldPropagate(ann, asn.Origin, sendRel) {
			continue
		}
		for _, neighbor := range ps.Self.Neighbors(sendRel) {
			copyAnn := ann.CopyAndProcess(ps.Self.ASN, sendRel.Invert())
			if target, ok := e.States[neighbor]; ok {
				target.ReceiveAnn(copyAnn, sendRel.Invert())
			}
		}
	}
}

// Run executes rounds iterations of propagate_round.
func (e *Engine) Run(rounds int) {
	for i := 0; i < rounds; i++ {
		e.propagateRound()
	}
}

// propagateRound implements spec.md §4.6's three strict phases. Every
// AS that has something queued exports to every applicable neighbor kind
// when it's processed (per §4.5 step 4); it's the traversal order below
// — reverse rank, then unordered, then forward rank — that determines
// which hop of a valley-free path actually advances in which phase: an
// export toward a provider lands in a lower-rank AS's queue that the
// to-providers phase reaches later in the same pass, while an export
// toward a customer lands in a higher-rank AS's queue that phase has
// already passed, so it's only picked up once that AS's turn comes
// around again in to-peers or to-customers.
func (e *Engine) propagateRound() {
	ranks := e.Graph.PropagationRanks

	for i := len(ranks) - 1; i >= 0; i-- {
		e.processLayer(ranks[i])
	}

	var allASNs []asn.ASN
	for i := 0; i < len(ranks); i++ {
		allASNs = append(allASNs, ranks[i]...)
	}
	e.processLayer(allASNs)

	for i := 0; i < len(ranks); i++ {
		e.processLayer(ranks[i])
	}
}

// processLayer drains every AS in layer's recv_q, in slice order, fully
// draining each AS before moving to the next, and delivers the resulting
// outbound announcements immediately into the receivers' recv_qs.
func (e *Engine) processLayer(layer []asn.ASN) {
	for _, a := range layer {
		ps, ok := e.States[a]
		if !ok {
			continue
		}
		for _, d := range ps.ProcessIncomingAnns(e.ctx) {
			if target, ok := e.States[d.neighbor]; ok {
				target.ReceiveAnn(d.ann, d.recvRel)
			}
		}
	}
}

// GetLocalRIBSnapshot reads every AS's local_rib, per spec.md §4.6 and
// §6's snapshot output shape: asn -> prefix string -> AS path (self first,
// origin last).
func (e *Engine) GetLocalRIBSnapshot() map[asn.ASN]map[string][]asn.ASN {
	snap := make(map[asn.ASN]map[string][]asn.ASN, len(e.States))
	for a, ps := range e.States {
		prefixes := make(map[string][]asn.ASN, len(ps.LocalRIB))
		for prefix, ann := range ps.LocalRIB {
			prefixes[prefix] = append([]asn.ASN(nil), ann.ASPath...)
		}
		snap[a] = prefixes
	}
	return snap
}
