/* ==================================================================================== *\
    announcement.go

    Announcement: a single route advertisement as it moves between AS
    policies. Mirrors anaximander_simulator's rib.go Rib_entry in shape
    (prefix + as_path + metadata travelling together) but carries the
    richer per-extension fields spec.md §4.1 defines.
\* ==================================================================================== */

package announcement

import (
	"net/netip"

	"github.com/Emeline-1/bgpsimulator/asn"
)

// Announcement is a route advertisement. Zero value is not meaningful;
// build one with New or via a policy's SeedAnn/CopyAndProcess.
type Announcement struct {
	Prefix    netip.Prefix
	ASPath    []asn.ASN
	NextHopASN asn.ASN
	RecvRelationship asn.Relationship
	Timestamp int64
	Withdraw  bool

	// BGPSecNextASN is nil unless a bgpsec-speaking AS has stamped it.
	BGPSecNextASN *asn.ASN
	BGPSecASPath  []asn.ASN

	OnlyToCustomers bool
	ROVPPBlackhole  bool
	RostIDs         []uint64
}

// New builds a bare announcement for the given prefix and AS path.
func New(prefix netip.Prefix, asPath []asn.ASN) Announcement {
	return Announcement{Prefix: prefix, ASPath: append([]asn.ASN(nil), asPath...)}
}

// Origin returns the last hop of the AS path, or NextHopASN if the path
// is empty (true only for an unseeded pre-seed announcement).
func (a Announcement) Origin() asn.ASN {
	if len(a.ASPath) == 0 {
		return a.NextHopASN
	}
	return a.ASPath[len(a.ASPath)-1]
}

// ContainsASN reports whether asn appears anywhere in the AS path —
// the loop check every policy's default validate runs.
func (a Announcement) ContainsASN(target asn.ASN) bool {
	for _, hop := range a.ASPath {
		if hop == target {
			return true
		}
	}
	return false
}

// CopyAndProcess produces the announcement a neighbor receives when self
// forwards this one onward, per spec.md §4.2. Withdrawals pass through
// unchanged except for next-hop/relationship; non-withdrawals prepend
// senderASN to the AS path (and to BGPSecASPath if present) and stamp
// BGPSecNextASN.
//
// The prepend is skipped if senderASN is already the head of the path —
// the same "exactly once" guard spec.md applies to seed_ann and to
// local_rib insertion, needed here so that exporting an AS's own local_rib
// entry (which already carries its self-prepend) during initial
// propagation doesn't duplicate the AS in the path.
func (a Announcement) CopyAndProcess(senderASN asn.ASN, newRecvRel asn.Relationship) Announcement {
	out := a
	out.RecvRelationship = newRecvRel
	out.NextHopASN = senderASN

	if a.Withdraw {
		return out
	}

	if len(a.ASPath) == 0 || a.ASPath[0] != senderASN {
		out.ASPath = make([]asn.ASN, 0, len(a.ASPath)+1)
		out.ASPath = append(out.ASPath, senderASN)
		out.ASPath = append(out.ASPath, a.ASPath...)
	}

	if a.BGPSecASPath != nil && (len(a.BGPSecASPath) == 0 || a.BGPSecASPath[0] != senderASN) {
		out.BGPSecASPath = make([]asn.ASN, 0, len(a.BGPSecASPath)+1)
		out.BGPSecASPath = append(out.BGPSecASPath, senderASN)
		out.BGPSecASPath = append(out.BGPSecASPath, a.BGPSecASPath...)
	}
	next := senderASN
	out.BGPSecNextASN = &next

	return out
}

// WithTimestamp returns a copy of a stamped with the given logical clock
// value, used as a tie-break for simultaneously-arriving routes.
func (a Announcement) WithTimestamp(ts int64) Announcement {
	a.Timestamp = ts
	return a
}

// PrefixString renders the prefix the way get_local_rib_snapshot keys its
// output map, per spec.md §4.6.
func (a Announcement) PrefixString() string {
	return a.Prefix.String()
}
