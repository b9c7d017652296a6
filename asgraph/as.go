/* ==================================================================================== *\
    as.go

    AS: a single Autonomous System node in the graph. Edge lists keep
    stable iteration order (append-only, built once) per spec.md §3.
\* ==================================================================================== */

package asgraph

import "github.com/Emeline-1/bgpsimulator/asn"

// AS is one node of the graph. Exclusively owned by the Graph that built
// it; all fields are read-only for the lifetime of a simulation run.
type AS struct {
	ASN       asn.ASN
	Providers []asn.ASN
	Peers     []asn.ASN
	Customers []asn.ASN
	Tier1     bool
	IXP       bool

	// ProviderConeASNs is populated only for tier-1 ASes; empty otherwise.
	ProviderConeASNs map[asn.ASN]struct{}

	// PropagationRank is -1 until Graph.rank() assigns it.
	PropagationRank int
}

func newAS(a asn.ASN) *AS {
	return &AS{ASN: a, PropagationRank: -1}
}

// IsStub reports whether the AS has no customers.
func (a *AS) IsStub() bool {
	return len(a.Customers) == 0
}

// IsTransit reports whether the AS has at least one customer.
func (a *AS) IsTransit() bool {
	return len(a.Customers) != 0
}

// IsMultihomed reports whether the AS is a stub connected to more than
// one provider/peer (i.e. it has no customers of its own, but more than
// one upstream/lateral neighbor).
func (a *AS) IsMultihomed() bool {
	return len(a.Customers) == 0 && len(a.Providers)+len(a.Peers) > 1
}

// Neighbors returns the edge list for the given relationship kind.
// Providers/Peers/Customers are the only ones with content; any other
// value (Origin, Unknown) yields nil.
func (a *AS) Neighbors(rel asn.Relationship) []asn.ASN {
	switch rel {
	case asn.Providers:
		return a.Providers
	case asn.Peers:
		return a.Peers
	case asn.Customers:
		return a.Customers
	default:
		return nil
	}
}

// RelationshipTo returns the relationship self has with neighbor, derived
// from which edge list neighbor appears in. Unknown if neighbor isn't an
// edge of self at all.
func (a *AS) RelationshipTo(neighbor asn.ASN) asn.Relationship {
	for _, c := range a.Customers {
		if c == neighbor {
			return asn.Customers
		}
	}
	for _, p := range a.Peers {
		if p == neighbor {
			return asn.Peers
		}
	}
	for _, p := range a.Providers {
		if p == neighbor {
			return asn.Providers
		}
	}
	return asn.Unknown
}

// IsNeighbor reports whether candidate is a provider, peer, or customer
// of self — used by the EnforceFirstAS policy extension.
func (a *AS) IsNeighbor(candidate asn.ASN) bool {
	return a.RelationshipTo(candidate) != asn.Unknown
}
