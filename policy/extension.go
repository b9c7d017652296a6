/* ==================================================================================== *\
    extension.go

    Extension: the capability set every BGP policy variant implements
    (validate, process, should_propagate, compare, name), per spec.md §4.4.
    Base supplies the default BGP behavior; concrete extensions embed Base
    and override only what they change, the same selective-override shape
    original_source's policy_extensions module uses (a PolicyExtension
    trait with a default-BGP struct and per-extension overrides).
\* ==================================================================================== */

package policy

import (
	"github.com/Emeline-1/bgpsimulator/announcement"
	"github.com/Emeline-1/bgpsimulator/asgraph"
	"github.com/Emeline-1/bgpsimulator/asn"
	"github.com/Emeline-1/bgpsimulator/roatrie"
)

// Context carries the read-only collaborators a policy extension may
// consult: the route validator, the AS graph (for ASPA attestations,
// tier-1 membership, neighbor checks), and the scenario-supplied data
// PathEnd and ASPathEdgeFilter need.
type Context struct {
	Validator         *roatrie.Validator
	Graph             *asgraph.Graph
	LegitimateOrigins map[asn.ASN]struct{}
	ValidEdges        map[[2]asn.ASN]struct{}
}

// Extension is the per-AS policy behavior spec.md §4.4 names.
type Extension interface {
	Name() string
	Validate(ann announcement.Announcement, recvRel asn.Relationship, self *asgraph.AS, ctx *Context) bool
	Process(ann *announcement.Announcement, recvRel asn.Relationship, self *asgraph.AS, ctx *Context)
	ShouldPropagate(ann announcement.Announcement, recvRel, sendRel asn.Relationship) bool
	// Compare reports whether a is strictly better than b.
	Compare(a, b announcement.Announcement, relA, relB asn.Relationship) bool
}

// Base implements the defaults every concrete extension starts from.
type Base struct{}

func (Base) Name() string { return "BGP" }

// Validate rejects per spec.md's default validate: empty path on a
// non-origin announcement, a loop through self, or a next-hop that
// doesn't match the head of a non-empty path.
func (Base) Validate(ann announcement.Announcement, recvRel asn.Relationship, self *asgraph.AS, _ *Context) bool {
	if !ann.Withdraw && len(ann.ASPath) == 0 && recvRel != asn.Origin {
		return false
	}
	if ann.ContainsASN(self.ASN) {
		return false
	}
	if len(ann.ASPath) > 0 && ann.ASPath[0] != ann.NextHopASN {
		return false
	}
	return true
}

// Process is a no-op for plain BGP; overridden by OTC and BGPSec.
func (Base) Process(_ *announcement.Announcement, _ asn.Relationship, _ *asgraph.AS, _ *Context) {}

// ShouldPropagate implements Gao-Rexford export: routes learned from a
// customer or self-originated are exported everywhere; routes learned
// from a peer or provider are exported only to customers.
func (Base) ShouldPropagate(ann announcement.Announcement, recvRel, sendRel asn.Relationship) bool {
	if recvRel == asn.Customers || recvRel == asn.Origin {
		return true
	}
	return sendRel == asn.Customers
}

// Compare orders candidates by Gao-Rexford preference, then shorter AS
// path, then lower next-hop ASN.
func (Base) Compare(a, b announcement.Announcement, relA, relB asn.Relationship) bool {
	pa, pb := relA.GaoRexfordPreference(), relB.GaoRexfordPreference()
	if pa != pb {
		return pa > pb
	}
	if len(a.ASPath) != len(b.ASPath) {
		return len(a.ASPath) < len(b.ASPath)
	}
	return a.NextHopASN < b.NextHopASN
}

// Factory returns the extension instance for the given settings tag.
// Unrecognized values default to plain BGP.
func Factory(settings asn.Settings) Extension {
	switch settings {
	case asn.ROV:
		return ROV{}
	case asn.PeerROV:
		return PeerROV{}
	case asn.EnforceFirstAS:
		return EnforceFirstAS{}
	case asn.OnlyToCustomers:
		return OTC{}
	case asn.PathEnd:
		return PathEnd{}
	case asn.BGPSec:
		return BGPSecExt{}
	case asn.ASPA:
		return ASPA{}
	case asn.ROVPPV1Lite:
		return ROVPPV1Lite{}
	case asn.PeerlockLite:
		return PeerlockLite{}
	case asn.EdgeFilter:
		return ASPathEdgeFilter{}
	default:
		return BGP{}
	}
}
