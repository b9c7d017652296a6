package asgraph

import (
	"strings"
	"testing"

	"github.com/Emeline-1/bgpsimulator/asn"
)

// linearGraph builds provider(1) -- customer(2) -- customer(3), i.e.
// AS1 is tier-1, AS2 is transit, AS3 is a stub.
func linearGraph(t *testing.T) *Graph {
	t.Helper()
	g, err := NewGraph([]Builder{
		{ASN: 1, Customers: []asn.ASN{2}},
		{ASN: 2, Providers: []asn.ASN{1}, Customers: []asn.ASN{3}},
		{ASN: 3, Providers: []asn.ASN{2}},
	})
	if err != nil {
		t.Fatalf("NewGraph: %v", err)
	}
	return g
}

func TestNewGraphDropsUnknownNeighbors(t *testing.T) {
	g, err := NewGraph([]Builder{
		{ASN: 1, Customers: []asn.ASN{2, 999}},
		{ASN: 2, Providers: []asn.ASN{1}},
	})
	if err != nil {
		t.Fatalf("NewGraph: %v", err)
	}
	as1, _ := g.AS(1)
	if len(as1.Customers) != 1 || as1.Customers[0] != 2 {
		t.Errorf("expected edge to undeclared ASN 999 to be dropped, got %v", as1.Customers)
	}
}

func TestTier1Detection(t *testing.T) {
	g := linearGraph(t)
	as1, _ := g.AS(1)
	as2, _ := g.AS(2)
	as3, _ := g.AS(3)

	if !as1.Tier1 {
		t.Error("AS1 has customers and no providers: should be Tier1")
	}
	if as2.Tier1 || as3.Tier1 {
		t.Error("AS2/AS3 have providers: should not be Tier1")
	}
	if !as3.IsStub() {
		t.Error("AS3 has no customers: should be a stub")
	}
}

func TestPropagationRanking(t *testing.T) {
	g := linearGraph(t)
	as1, _ := g.AS(1)
	as2, _ := g.AS(2)
	as3, _ := g.AS(3)

	if as1.PropagationRank != 0 {
		t.Errorf("AS1 (tier-1) rank = %d, want 0", as1.PropagationRank)
	}
	if as2.PropagationRank != 1 {
		t.Errorf("AS2 rank = %d, want 1", as2.PropagationRank)
	}
	if as3.PropagationRank != 2 {
		t.Errorf("AS3 (stub) rank = %d, want 2", as3.PropagationRank)
	}
}

func TestCycleDetection(t *testing.T) {
	_, err := NewGraph([]Builder{
		{ASN: 1, Customers: []asn.ASN{2}},
		{ASN: 2, Customers: []asn.ASN{3}},
		{ASN: 3, Customers: []asn.ASN{1}},
	})
	if err == nil {
		t.Fatal("expected a CycleError for a 3-cycle of customer edges")
	}
	var cycErr *CycleError
	if !errorsAs(err, &cycErr) {
		t.Fatalf("expected *CycleError, got %T: %v", err, err)
	}
}

func errorsAs(err error, target **CycleError) bool {
	if e, ok := err.(*CycleError); ok {
		*target = e
		return true
	}
	return false
}

func TestProviderCone(t *testing.T) {
	g := linearGraph(t)
	as1, _ := g.AS(1)
	if _, ok := as1.ProviderConeASNs[2]; !ok {
		t.Error("AS1's provider cone should include AS2")
	}
	if _, ok := as1.ProviderConeASNs[3]; !ok {
		t.Error("AS1's provider cone should include AS3 (transitively)")
	}
	as3, _ := g.AS(3)
	if len(as3.ProviderConeASNs) != 0 {
		t.Error("non-tier-1 ASes should have an empty provider cone")
	}
}

func TestASNGroups(t *testing.T) {
	g := linearGraph(t)
	if _, ok := g.Group(asn.Tier1)[1]; !ok {
		t.Error("AS1 should be in the TIER_1 group")
	}
	if _, ok := g.Group(asn.Stubs)[3]; !ok {
		t.Error("AS3 should be in the STUBS group")
	}
	if _, ok := g.Group(asn.Transit)[2]; !ok {
		t.Error("AS2 should be in the TRANSIT group")
	}
}

func TestMultihomedStub(t *testing.T) {
	g, err := NewGraph([]Builder{
		{ASN: 1, Customers: []asn.ASN{3}},
		{ASN: 2, Customers: []asn.ASN{3}},
		{ASN: 3, Providers: []asn.ASN{1, 2}},
	})
	if err != nil {
		t.Fatalf("NewGraph: %v", err)
	}
	if _, ok := g.Group(asn.Multihomed)[3]; !ok {
		t.Error("AS3 has two providers and no customers: should be MULTIHOMED")
	}
}

func TestParseCAIDAFile(t *testing.T) {
	data := `# input clique: 1
# IXP ASes: 5
1|2|-1
2|3|0
`
	builders, err := ParseCAIDAFile(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ParseCAIDAFile: %v", err)
	}
	byASN := make(map[asn.ASN]Builder, len(builders))
	for _, b := range builders {
		byASN[b.ASN] = b
	}
	if len(byASN[1].Customers) != 1 || byASN[1].Customers[0] != 2 {
		t.Errorf("AS1 customers = %v, want [2]", byASN[1].Customers)
	}
	if len(byASN[2].Providers) != 1 || byASN[2].Providers[0] != 1 {
		t.Errorf("AS2 providers = %v, want [1]", byASN[2].Providers)
	}
	if len(byASN[2].Peers) != 1 || byASN[2].Peers[0] != 3 {
		t.Errorf("AS2 peers = %v, want [3]", byASN[2].Peers)
	}
	if !byASN[5].IXP {
		t.Error("AS5 named only in the IXP header should still get a Builder with IXP set")
	}
}

func TestConnectedComponents(t *testing.T) {
	g, err := NewGraph([]Builder{
		{ASN: 1, Customers: []asn.ASN{2}},
		{ASN: 2, Providers: []asn.ASN{1}},
		{ASN: 3}, // isolated
	})
	if err != nil {
		t.Fatalf("NewGraph: %v", err)
	}
	components := g.ConnectedComponents()
	if len(components) != 2 {
		t.Fatalf("got %d components, want 2 (one pair + one singleton)", len(components))
	}
}
