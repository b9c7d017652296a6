package policy

import (
	"net/netip"
	"testing"

	"github.com/Emeline-1/bgpsimulator/announcement"
	"github.com/Emeline-1/bgpsimulator/asgraph"
	"github.com/Emeline-1/bgpsimulator/asn"
	"github.com/Emeline-1/bgpsimulator/roatrie"
)

func mustPrefix(t *testing.T, s string) netip.Prefix {
	t.Helper()
	p, err := netip.ParsePrefix(s)
	if err != nil {
		t.Fatalf("ParsePrefix(%q): %v", s, err)
	}
	return p
}

func testGraph(t *testing.T) *asgraph.Graph {
	t.Helper()
	g, err := asgraph.NewGraph([]asgraph.Builder{
		{ASN: 1, Customers: []asn.ASN{2}},
		{ASN: 2, Providers: []asn.ASN{1}, Customers: []asn.ASN{3}},
		{ASN: 3, Providers: []asn.ASN{2}},
	})
	if err != nil {
		t.Fatalf("NewGraph: %v", err)
	}
	return g
}

func TestFactoryDefaultsToBGP(t *testing.T) {
	ext := Factory(asn.Settings(999))
	if ext.Name() != "BGP" {
		t.Errorf("unrecognized settings should default to BGP, got %s", ext.Name())
	}
}

func TestBaseValidateRejectsLoop(t *testing.T) {
	g := testGraph(t)
	self, _ := g.AS(2)
	ann := announcement.New(mustPrefix(t, "1.0.0.0/24"), []asn.ASN{3, 2, 1})
	ann.NextHopASN = 3
	if (BGP{}).Validate(ann, asn.Customers, self, nil) {
		t.Error("expected loop (self ASN already in path) to be rejected")
	}
}

func TestBaseValidateRejectsNextHopMismatch(t *testing.T) {
	g := testGraph(t)
	self, _ := g.AS(1)
	ann := announcement.New(mustPrefix(t, "1.0.0.0/24"), []asn.ASN{3, 4})
	ann.NextHopASN = 99
	if (BGP{}).Validate(ann, asn.Customers, self, nil) {
		t.Error("expected next-hop mismatch to be rejected")
	}
}

func TestBaseShouldPropagateGaoRexford(t *testing.T) {
	b := Base{}
	if !b.ShouldPropagate(announcement.Announcement{}, asn.Customers, asn.Peers) {
		t.Error("customer-learned routes should export to peers")
	}
	if b.ShouldPropagate(announcement.Announcement{}, asn.Peers, asn.Providers) {
		t.Error("peer-learned routes should not export to providers")
	}
	if !b.ShouldPropagate(announcement.Announcement{}, asn.Providers, asn.Customers) {
		t.Error("provider-learned routes should still export to customers")
	}
}

func TestBaseCompare(t *testing.T) {
	b := Base{}
	short := announcement.Announcement{ASPath: []asn.ASN{1}, NextHopASN: 5}
	long := announcement.Announcement{ASPath: []asn.ASN{1, 2}, NextHopASN: 5}
	if !b.Compare(short, long, asn.Customers, asn.Customers) {
		t.Error("shorter AS path should win when Gao-Rexford preference ties")
	}

	fromCustomer := announcement.Announcement{ASPath: []asn.ASN{1, 2}, NextHopASN: 5}
	fromPeer := announcement.Announcement{ASPath: []asn.ASN{1}, NextHopASN: 5}
	if !b.Compare(fromCustomer, fromPeer, asn.Customers, asn.Peers) {
		t.Error("customer relationship should beat peer relationship regardless of path length")
	}
}

func TestROVRejectsInvalidOrigin(t *testing.T) {
	v := roatrie.NewValidator()
	v.AddROA(roatrie.NewROA(mustPrefix(t, "10.0.0.0/24"), asn.ASN(777), nil))
	ctx := &Context{Validator: v}

	g := testGraph(t)
	self, _ := g.AS(2)

	ann := announcement.New(mustPrefix(t, "10.0.0.0/24"), []asn.ASN{3, 666})
	ann.NextHopASN = 3

	if (ROV{}).Validate(ann, asn.Customers, self, ctx) {
		t.Error("ROV should reject an announcement whose origin doesn't match the ROA")
	}
}

func TestROVAcceptsUnknown(t *testing.T) {
	v := roatrie.NewValidator()
	ctx := &Context{Validator: v}
	g := testGraph(t)
	self, _ := g.AS(2)

	ann := announcement.New(mustPrefix(t, "10.0.0.0/24"), []asn.ASN{3, 777})
	ann.NextHopASN = 3

	if !(ROV{}).Validate(ann, asn.Customers, self, ctx) {
		t.Error("ROV should accept an announcement with no covering ROA (Unknown)")
	}
}

func TestPeerROVRejectsUnknownFromPeer(t *testing.T) {
	v := roatrie.NewValidator()
	ctx := &Context{Validator: v}
	g := testGraph(t)
	self, _ := g.AS(2)

	ann := announcement.New(mustPrefix(t, "10.0.0.0/24"), []asn.ASN{3, 777})
	ann.NextHopASN = 3

	if (PeerROV{}).Validate(ann, asn.Peers, self, ctx) {
		t.Error("PeerROV should reject an Unknown-validity announcement received over a peer relationship")
	}
	if !(PeerROV{}).Validate(ann, asn.Customers, self, ctx) {
		t.Error("PeerROV should still accept Unknown over a customer relationship")
	}
}

func TestOTCMarksAndRestrictsPropagation(t *testing.T) {
	o := OTC{}
	ann := announcement.Announcement{ASPath: []asn.ASN{1}}
	o.Process(&ann, asn.Peers, nil, nil)
	if !ann.OnlyToCustomers {
		t.Fatal("expected OTC to mark the announcement when received from a peer")
	}
	if o.ShouldPropagate(ann, asn.Peers, asn.Peers) {
		t.Error("OTC-marked announcement must not propagate to a peer")
	}
	if !o.ShouldPropagate(ann, asn.Peers, asn.Customers) {
		t.Error("OTC-marked announcement should still propagate to a customer")
	}
}

func TestPathEndRejectsIllegitimateOrigin(t *testing.T) {
	g := testGraph(t)
	self, _ := g.AS(2)
	ctx := &Context{LegitimateOrigins: map[asn.ASN]struct{}{777: {}}}

	legit := announcement.New(mustPrefix(t, "10.0.0.0/24"), []asn.ASN{3, 777})
	legit.NextHopASN = 3
	if !(PathEnd{}).Validate(legit, asn.Customers, self, ctx) {
		t.Error("PathEnd should accept an announcement whose origin is in the legitimate set")
	}

	illegit := announcement.New(mustPrefix(t, "10.0.0.0/24"), []asn.ASN{3, 666})
	illegit.NextHopASN = 3
	if (PathEnd{}).Validate(illegit, asn.Customers, self, ctx) {
		t.Error("PathEnd should reject an announcement whose origin isn't in the legitimate set")
	}
}

func TestASPAProviderCheckUsesAttestations(t *testing.T) {
	g := testGraph(t)
	self, _ := g.AS(2)
	g.SetASPAProviders(4, []asn.ASN{1})
	ctx := &Context{Graph: g}

	ann := announcement.New(mustPrefix(t, "10.0.0.0/24"), []asn.ASN{1, 4})
	ann.NextHopASN = 1

	if !(ASPA{}).Validate(ann, asn.Customers, self, ctx) {
		t.Error("AS1 is an attested provider of AS4: the path should validate")
	}

	// Path [1, 9, 8, 4] (nearest hop first, origin last) with attestation
	// violations at both ends: AS4 doesn't attest AS8 as a provider, and
	// AS1 doesn't attest AS9 as a provider. The gap these leave in the
	// middle of the path isn't covered by either ramp, so it's rejected.
	g2 := testGraph(t)
	g2.SetASPAProviders(4, []asn.ASN{99})
	g2.SetASPAProviders(1, []asn.ASN{99})
	ctx2 := &Context{Graph: g2}

	bad := announcement.New(mustPrefix(t, "10.0.0.0/24"), []asn.ASN{1, 9, 8, 4})
	bad.NextHopASN = 1
	if (ASPA{}).Validate(bad, asn.Customers, self, ctx2) {
		t.Error("attestation violations at both ends of the path should leave a gap and be rejected")
	}
}

func TestPeerlockLiteRejectsTier1InCustomerPath(t *testing.T) {
	g := testGraph(t)
	self, _ := g.AS(3)
	ctx := &Context{Graph: g}

	leaked := announcement.New(mustPrefix(t, "10.0.0.0/24"), []asn.ASN{2, 1})
	leaked.NextHopASN = 2
	if (PeerlockLite{}).Validate(leaked, asn.Customers, self, ctx) {
		t.Error("PeerlockLite should reject a customer-received path that already transits a tier-1 AS")
	}
}

func TestROVPPV1LiteBlocksBlackholePropagation(t *testing.T) {
	r := ROVPPV1Lite{}
	ann := announcement.Announcement{ASPath: []asn.ASN{1}, ROVPPBlackhole: true}
	if r.ShouldPropagate(ann, asn.Customers, asn.Customers) {
		t.Error("a blackholed announcement must never propagate")
	}
}
