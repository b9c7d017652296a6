/* ==================================================================================== *\
    state.go

    PolicyState: the per-AS RIB machinery spec.md §4.5 describes —
    local_rib, ribs_in, ribs_out, a FIFO recv_q, and the AS's chosen
    policy extension. Exclusively owned by one AS; never shared across
    goroutines (spec.md §5: "policies own their per-AS state exclusively").
\* ==================================================================================== */

package ribengine

import (
	"github.com/Emeline-1/bgpsimulator/announcement"
	"github.com/Emeline-1/bgpsimulator/asgraph"
	"github.com/Emeline-1/bgpsimulator/asn"
	"github.com/Emeline-1/bgpsimulator/policy"
)

// pending is one (announcement, recv_relationship) pair waiting in an
// AS's FIFO receive queue.
type pending struct {
	ann     announcement.Announcement
	recvRel asn.Relationship
}

// PolicyState is one AS's BGP RIB state.
type PolicyState struct {
	Self      *asgraph.AS
	Extension policy.Extension

	// LocalRIB holds the single best route per prefix this AS has chosen.
	LocalRIB map[string]announcement.Announcement

	// RIBsIn holds, per neighbor ASN then prefix, the most recent route
	// that neighbor advertised (withdrawn routes are retained with
	// Withdraw=true so a later best-route scan can skip them explicitly).
	RIBsIn map[asn.ASN]map[string]announcement.Announcement

	// RIBsOut mirrors what this AS has most recently sent to each neighbor.
	RIBsOut map[asn.ASN]map[string]announcement.Announcement

	recvQ []pending

	// seedWithdrawals holds withdrawals SeedAnn received, keyed by
	// prefix, until InitialPropagation exports them to every neighbor.
	seedWithdrawals map[string]announcement.Announcement
}

// NewPolicyState builds an empty policy state for self running ext.
func NewPolicyState(self *asgraph.AS, ext policy.Extension) *PolicyState {
	return &PolicyState{
		Self:            self,
		Extension:       ext,
		LocalRIB:        make(map[string]announcement.Announcement),
		RIBsIn:          make(map[asn.ASN]map[string]announcement.Announcement),
		RIBsOut:         make(map[asn.ASN]map[string]announcement.Announcement),
		seedWithdrawals: make(map[string]announcement.Announcement),
	}
}

// ReceiveAnn appends (ann, recvRel) to the FIFO receive queue.
func (ps *PolicyState) ReceiveAnn(ann announcement.Announcement, recvRel asn.Relationship) {
	ps.recvQ = append(ps.recvQ, pending{ann: ann, recvRel: recvRel})
}

// SeedAnn injects ann directly as an origin announcement or withdrawal,
// per spec.md §4.5: self-prepend the AS's own ASN to the path if it
// isn't already the head (spec.md §9 resolves the "do seeds self-prepend"
// ambiguity as "yes, unless already present") — this applies whether or
// not ann is a withdrawal, since a withdrawal still names the AS that is
// retracting the route.
//
// A seeded withdrawal removes the prefix from local_rib immediately and
// is held in seedWithdrawals until InitialPropagation exports it to
// every neighbor, mirroring the export §4.5 step 5 runs for a withdrawal
// learned from a neighbor instead of silently dropping it.
func (ps *PolicyState) SeedAnn(ann announcement.Announcement) {
	if len(ann.ASPath) == 0 {
		ann.ASPath = []asn.ASN{ps.Self.ASN}
	} else if ann.ASPath[0] != ps.Self.ASN {
		ann.ASPath = append([]asn.ASN{ps.Self.ASN}, ann.ASPath...)
	}
	ann.NextHopASN = ps.Self.ASN
	ann.RecvRelationship = asn.Origin

	prefix := ann.PrefixString()
	if ann.Withdraw {
		delete(ps.LocalRIB, prefix)
		ps.seedWithdrawals[prefix] = ann
		return
	}
	delete(ps.seedWithdrawals, prefix)
	ps.LocalRIB[prefix] = ann
}

// TakeSeedWithdrawals drains and returns every withdrawal SeedAnn has
// queued since the last call, so InitialPropagation can export each one
// exactly once.
func (ps *PolicyState) TakeSeedWithdrawals() map[string]announcement.Announcement {
	out := ps.seedWithdrawals
	ps.seedWithdrawals = make(map[string]announcement.Announcement)
	return out
}

// outbox is a single outgoing delivery produced by ProcessIncomingAnns:
// an announcement to hand to a neighbor's recv_q, tagged with the
// relationship the neighbor will observe it under.
type outbox struct {
	neighbor asn.ASN
	ann      announcement.Announcement
	recvRel  asn.Relationship
}

// ProcessIncomingAnns drains recv_q, applying spec.md §4.5's five steps
// to each entry in FIFO order, and returns the deliveries that must be
// enqueued onto neighbors' recv_qs. Every relationship kind is considered
// for export on every call; it's the engine's phase traversal order
// (reverse rank, then unordered, then forward rank) that determines which
// hop of a valley-free path actually advances within a given phase.
func (ps *PolicyState) ProcessIncomingAnns(ctx *policy.Context) []outbox {
	queue := ps.recvQ
	ps.recvQ = nil

	var deliveries []outbox
	for _, p := range queue {
		ann, recvRel := p.ann, p.recvRel

		if !ps.Extension.Validate(ann, recvRel, ps.Self, ctx) {
			continue
		}
		ps.Extension.Process(&ann, recvRel, ps.Self, ctx)

		prefix := ann.PrefixString()
		if ps.RIBsIn[ann.NextHopASN] == nil {
			ps.RIBsIn[ann.NextHopASN] = make(map[string]announcement.Announcement)
		}
		ps.RIBsIn[ann.NextHopASN][prefix] = ann

		best, bestRel, hasBest := ps.recomputeBest(prefix)

		if hasBest {
			toInsert := best
			if len(toInsert.ASPath) == 0 || toInsert.ASPath[0] != ps.Self.ASN {
				toInsert.ASPath = append([]asn.ASN{ps.Self.ASN}, toInsert.ASPath...)
			}
			ps.LocalRIB[prefix] = toInsert

			deliveries = append(deliveries, ps.exportRoute(best, bestRel, prefix)...)
		} else if ann.Withdraw {
			delete(ps.LocalRIB, prefix)
			withdrawal := announcement.Announcement{Prefix: ann.Prefix, Withdraw: true, ASPath: []asn.ASN{ps.Self.ASN}}
			deliveries = append(deliveries, ps.exportRoute(withdrawal, recvRel, prefix)...)
		}
	}
	return deliveries
}

// recomputeBest scans every non-withdrawn ribs_in entry for prefix and
// returns the one extension.Compare prefers, using self's edge sets to
// derive each candidate's relationship from its next-hop ASN.
func (ps *PolicyState) recomputeBest(prefix string) (announcement.Announcement, asn.Relationship, bool) {
	var best announcement.Announcement
	var bestRel asn.Relationship
	found := false

	for neighborASN, routes := range ps.RIBsIn {
		ann, ok := routes[prefix]
		if !ok || ann.Withdraw {
			continue
		}
		rel := ps.relationshipOf(neighborASN)
		if !found {
			best, bestRel, found = ann, rel, true
			continue
		}
		if ps.Extension.Compare(ann, best, rel, bestRel) {
			best, bestRel = ann, rel
		}
	}
	return best, bestRel, found
}

// relationshipOf derives the relationship self observes toward
// neighborASN, treating self's own ASN as Origin (a self-seeded route).
func (ps *PolicyState) relationshipOf(neighborASN asn.ASN) asn.Relationship {
	if neighborASN == ps.Self.ASN {
		return asn.Origin
	}
	return ps.Self.RelationshipTo(neighborASN)
}

// exportRoute decides, for each neighbor kind, whether best should be
// forwarded per extension.ShouldPropagate, and builds the outbox entries.
func (ps *PolicyState) exportRoute(best announcement.Announcement, recvRel asn.Relationship, prefix string) []outbox {
	var out []outbox
	for _, sendRel := range []asn.Relationship{asn.Providers, asn.Peers, asn.Customers} {
		if !ps.Extension.ShouldPropagate(best, recvRel, sendRel) {
			continue
		}
		for _, neighbor := range ps.Self.Neighbors(sendRel) {
			copyAnn := best.CopyAndProcess(ps.Self.ASN, sendRel.Invert())
			if ps.RIBsOut[neighbor] == nil {
				ps.RIBsOut[neighbor] = make(map[string]announcement.Announcement)
			}
			ps.RIBsOut[neighbor][prefix] = copyAnn
			out = append(out, outbox{neighbor: neighbor, ann: copyAnn, recvRel: sendRel.Invert()})
		}
	}
	return out
}
