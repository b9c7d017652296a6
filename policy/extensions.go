/* ==================================================================================== *\
    extensions.go

    Concrete policy extensions. Each embeds Base and overrides only the
    methods spec.md §4.4's table lists for it.
\* ==================================================================================== */

package policy

import (
	"github.com/Emeline-1/bgpsimulator/announcement"
	"github.com/Emeline-1/bgpsimulator/asgraph"
	"github.com/Emeline-1/bgpsimulator/asn"
)

// BGP is plain BGP: every method is the Base default.
type BGP struct{ Base }

/* ---------------------------------------------------------------------- *\
   ROV / PeerROV
\* ---------------------------------------------------------------------- */

// ROV rejects announcements whose origin fails ROA validation; Unknown
// outcomes are accepted.
type ROV struct{ Base }

func (ROV) Name() string { return "ROV" }

func (r ROV) Validate(ann announcement.Announcement, recvRel asn.Relationship, self *asgraph.AS, ctx *Context) bool {
	if !r.Base.Validate(ann, recvRel, self, ctx) {
		return false
	}
	return rovAccepts(ann, ctx)
}

func rovAccepts(ann announcement.Announcement, ctx *Context) bool {
	if ctx == nil || ctx.Validator == nil {
		return true
	}
	validity, _ := ctx.Validator.GetROAOutcome(ann.Prefix, ann.Origin())
	return validity < asn.InvalidLength
}

// PeerROV is ROV plus: an Unknown outcome is also rejected when the
// announcement arrived over a peer relationship.
type PeerROV struct{ Base }

func (PeerROV) Name() string { return "PeerROV" }

func (p PeerROV) Validate(ann announcement.Announcement, recvRel asn.Relationship, self *asgraph.AS, ctx *Context) bool {
	if !p.Base.Validate(ann, recvRel, self, ctx) {
		return false
	}
	if ctx == nil || ctx.Validator == nil {
		return true
	}
	validity, _ := ctx.Validator.GetROAOutcome(ann.Prefix, ann.Origin())
	if recvRel == asn.Peers && validity == asn.ROAUnknown {
		return false
	}
	return validity < asn.InvalidLength
}

/* ---------------------------------------------------------------------- *\
   EnforceFirstAS
\* ---------------------------------------------------------------------- */

// EnforceFirstAS additionally requires the next-hop ASN to be an actual
// neighbor of self in some relationship.
type EnforceFirstAS struct{ Base }

func (EnforceFirstAS) Name() string { return "EnforceFirstAS" }

func (e EnforceFirstAS) Validate(ann announcement.Announcement, recvRel asn.Relationship, self *asgraph.AS, ctx *Context) bool {
	if !e.Base.Validate(ann, recvRel, self, ctx) {
		return false
	}
	if recvRel == asn.Origin {
		return true
	}
	return self.IsNeighbor(ann.NextHopASN)
}

/* ---------------------------------------------------------------------- *\
   OnlyToCustomers (OTC)
\* ---------------------------------------------------------------------- */

// OTC marks announcements learned from a peer or provider so they are
// only ever re-exported to customers.
type OTC struct{ Base }

func (OTC) Name() string { return "OnlyToCustomers" }

func (OTC) Process(ann *announcement.Announcement, recvRel asn.Relationship, _ *asgraph.AS, _ *Context) {
	if recvRel == asn.Peers || recvRel == asn.Providers {
		ann.OnlyToCustomers = true
	}
}

func (o OTC) ShouldPropagate(ann announcement.Announcement, recvRel, sendRel asn.Relationship) bool {
	if ann.OnlyToCustomers {
		return sendRel == asn.Customers
	}
	return o.Base.ShouldPropagate(ann, recvRel, sendRel)
}

/* ---------------------------------------------------------------------- *\
   PathEnd
\* ---------------------------------------------------------------------- */

// PathEnd requires the AS path's origin to be in the scenario-supplied
// legitimate-origin set. With no set supplied, every origin is accepted
// rather than rejecting everything outright.
type PathEnd struct{ Base }

func (PathEnd) Name() string { return "PathEnd" }

func (p PathEnd) Validate(ann announcement.Announcement, recvRel asn.Relationship, self *asgraph.AS, ctx *Context) bool {
	if !p.Base.Validate(ann, recvRel, self, ctx) {
		return false
	}
	if ctx == nil || ctx.LegitimateOrigins == nil {
		return true
	}
	_, ok := ctx.LegitimateOrigins[ann.Origin()]
	return ok
}

/* ---------------------------------------------------------------------- *\
   BGPSec
\* ---------------------------------------------------------------------- */

// BGPSecExt validates the signed bgpsec_as_path matches the plain AS
// path end-to-end, and prefers intact chains during best-route selection.
type BGPSecExt struct{ Base }

func (BGPSecExt) Name() string { return "BGPSec" }

func (b BGPSecExt) Validate(ann announcement.Announcement, recvRel asn.Relationship, self *asgraph.AS, ctx *Context) bool {
	if !b.Base.Validate(ann, recvRel, self, ctx) {
		return false
	}
	if ann.BGPSecASPath == nil {
		return true
	}
	if ann.BGPSecNextASN == nil || *ann.BGPSecNextASN != self.ASN {
		return false
	}
	return equalASPath(ann.BGPSecASPath, ann.ASPath)
}

func (BGPSecExt) Process(ann *announcement.Announcement, _ asn.Relationship, _ *asgraph.AS, _ *Context) {
	if ann.BGPSecASPath == nil || !equalASPath(ann.BGPSecASPath, ann.ASPath) {
		ann.BGPSecASPath = nil
	}
}

func (b BGPSecExt) Compare(a, bb announcement.Announcement, relA, relB asn.Relationship) bool {
	aIntact := a.BGPSecASPath != nil && equalASPath(a.BGPSecASPath, a.ASPath)
	bIntact := bb.BGPSecASPath != nil && equalASPath(bb.BGPSecASPath, bb.ASPath)
	if aIntact != bIntact {
		return aIntact
	}
	return b.Base.Compare(a, bb, relA, relB)
}

func equalASPath(a, b []asn.ASN) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

/* ---------------------------------------------------------------------- *\
   ASPA
\* ---------------------------------------------------------------------- */

// ASPA validates the announcement's up-ramp/down-ramp against the AS
// graph's ASPA attestation store, resolving spec.md §9's open question:
// provider_check consults real attested data (asgraph.Graph.ASPAProviders)
// rather than always returning true.
type ASPA struct{ Base }

func (ASPA) Name() string { return "ASPA" }

func (a ASPA) Validate(ann announcement.Announcement, recvRel asn.Relationship, self *asgraph.AS, ctx *Context) bool {
	if !a.Base.Validate(ann, recvRel, self, ctx) {
		return false
	}
	if len(ann.ASPath) == 0 {
		return true
	}
	if ann.ASPath[0] != ann.NextHopASN && !self.IXP {
		return false
	}
	if ctx == nil || ctx.Graph == nil {
		return true
	}
	up := a.maxUpRampLength(ann.ASPath, ctx)
	down := a.maxDownRampLength(ann.ASPath, ctx)
	return up+down >= len(ann.ASPath)
}

// providerCheck reports whether y is an attested provider of x; an ASN
// with no attestation on file passes unconditionally.
func (ASPA) providerCheck(x, y asn.ASN, ctx *Context) bool {
	providers, ok := ctx.Graph.ASPAProviders[x]
	if !ok {
		return true
	}
	for _, p := range providers {
		if p == y {
			return true
		}
	}
	return false
}

func reverseASNs(path []asn.ASN) []asn.ASN {
	out := make([]asn.ASN, len(path))
	for i, a := range path {
		out[len(path)-1-i] = a
	}
	return out
}

// maxUpRampLength scans the path from origin toward the most recent hop,
// stopping at the first attestation violation.
func (a ASPA) maxUpRampLength(path []asn.ASN, ctx *Context) int {
	reversed := reverseASNs(path)
	for i := 0; i < len(reversed)-1; i++ {
		if !a.providerCheck(reversed[i], reversed[i+1], ctx) {
			return i + 1
		}
	}
	return len(path)
}

// maxDownRampLength scans the path from the most recent hop back toward
// the origin, stopping at the first attestation violation.
func (a ASPA) maxDownRampLength(path []asn.ASN, ctx *Context) int {
	reversed := reverseASNs(path)
	for i := len(reversed) - 1; i >= 1; i-- {
		if !a.providerCheck(reversed[i], reversed[i-1], ctx) {
			j := i + 1
			return len(reversed) - j + 1
		}
	}
	return len(path)
}

/* ---------------------------------------------------------------------- *\
   ROV++V1Lite
\* ---------------------------------------------------------------------- */

// ROVPPV1Lite layers blackhole suppression on top of ROV validation: a
// blackholed route is still accepted into the local RIB (so downstream
// queries can observe it was blackholed) but is never propagated further.
type ROVPPV1Lite struct{ Base }

func (ROVPPV1Lite) Name() string { return "ROVPPV1Lite" }

func (r ROVPPV1Lite) Validate(ann announcement.Announcement, recvRel asn.Relationship, self *asgraph.AS, ctx *Context) bool {
	if !r.Base.Validate(ann, recvRel, self, ctx) {
		return false
	}
	return rovAccepts(ann, ctx)
}

func (r ROVPPV1Lite) ShouldPropagate(ann announcement.Announcement, recvRel, sendRel asn.Relationship) bool {
	if ann.ROVPPBlackhole {
		return false
	}
	return r.Base.ShouldPropagate(ann, recvRel, sendRel)
}

/* ---------------------------------------------------------------------- *\
   PeerlockLite
\* ---------------------------------------------------------------------- */

// PeerlockLite rejects route leaks: an announcement arriving from a
// customer whose AS path already passes through a tier-1 AS indicates
// the customer is leaking a route it should never have re-advertised.
type PeerlockLite struct{ Base }

func (PeerlockLite) Name() string { return "PeerlockLite" }

func (p PeerlockLite) Validate(ann announcement.Announcement, recvRel asn.Relationship, self *asgraph.AS, ctx *Context) bool {
	if !p.Base.Validate(ann, recvRel, self, ctx) {
		return false
	}
	if recvRel != asn.Customers || ctx == nil || ctx.Graph == nil {
		return true
	}
	for _, hop := range ann.ASPath {
		if hopAS, ok := ctx.Graph.AS(hop); ok && hopAS.Tier1 {
			return false
		}
	}
	return true
}

/* ---------------------------------------------------------------------- *\
   ASPathEdgeFilter
\* ---------------------------------------------------------------------- */

// ASPathEdgeFilter is the reserved hook spec.md names: it rejects any
// announcement whose consecutive AS-path pairs aren't all present in the
// scenario-supplied valid-edge set. With no set supplied, every edge
// passes.
type ASPathEdgeFilter struct{ Base }

func (ASPathEdgeFilter) Name() string { return "ASPathEdgeFilter" }

func (e ASPathEdgeFilter) Validate(ann announcement.Announcement, recvRel asn.Relationship, self *asgraph.AS, ctx *Context) bool {
	if !e.Base.Validate(ann, recvRel, self, ctx) {
		return false
	}
	if ctx == nil || ctx.ValidEdges == nil {
		return true
	}
	for i := 0; i+1 < len(ann.ASPath); i++ {
		if _, ok := ctx.ValidEdges[[2]asn.ASN{ann.ASPath[i], ann.ASPath[i+1]}]; !ok {
			return false
		}
	}
	return true
}
