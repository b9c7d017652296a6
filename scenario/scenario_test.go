package scenario

import (
	"testing"

	"github.com/Emeline-1/bgpsimulator/asgraph"
	"github.com/Emeline-1/bgpsimulator/asn"
	"github.com/Emeline-1/bgpsimulator/ribengine"
	"github.com/Emeline-1/bgpsimulator/roatrie"
)

// hijackGraph builds a tier-1 hub (AS1) with five stub customers, enough
// to compute a meaningful majority fraction for S4/S5.
func hijackGraph(t *testing.T) *asgraph.Graph {
	t.Helper()
	g, err := asgraph.NewGraph([]asgraph.Builder{
		{ASN: 1, Customers: []asn.ASN{2, 3, 4, 5, 6}},
		{ASN: 2, Providers: []asn.ASN{1}},
		{ASN: 3, Providers: []asn.ASN{1}},
		{ASN: 4, Providers: []asn.ASN{1}},
		{ASN: 5, Providers: []asn.ASN{1}},
		{ASN: 6, Providers: []asn.ASN{1}},
	})
	if err != nil {
		t.Fatalf("NewGraph: %v", err)
	}
	return g
}

// TestSubprefixHijackWithoutDefense is S4: plain BGP everywhere, the
// attacker's more-specific announcement should reach a majority of ASes
// unchallenged.
func TestSubprefixHijackWithoutDefense(t *testing.T) {
	g := hijackGraph(t)
	victim, attacker := asn.ASN(2), asn.ASN(3)
	s := NewSubprefixHijack(victim, attacker)

	e := ribengine.NewEngine(g, asn.BGP, nil, nil, nil)
	s.SetupEngine(e, nil)
	e.Run(10)

	if !s.IsSuccessful(e) {
		t.Error("expected the subprefix hijack to succeed with no ROV defense")
	}
}

// TestSubprefixHijackROVDefense is S5: the same topology, but every ROV-
// adopting AS must reject the attacker's InvalidLengthAndOrigin announcement
// regardless of which hop it arrives from, and full adoption must defeat
// the attack entirely.
func TestSubprefixHijackROVDefense(t *testing.T) {
	g := hijackGraph(t)
	victim, attacker := asn.ASN(2), asn.ASN(3)
	s := NewSubprefixHijack(victim, attacker)

	v := roatrie.NewValidator()
	e := ribengine.NewEngine(g, asn.BGP, v, nil, nil)

	adopting := map[asn.ASN]struct{}{1: {}, 4: {}, 5: {}}
	e.AdoptSettings(adopting, asn.ROV)

	s.SetupEngine(e, v)
	e.Run(10)

	hijackedPrefix := subprefixHijackedPrefix.String()
	for a := range adopting {
		ann, ok := e.States[a].LocalRIB[hijackedPrefix]
		if ok && ann.Origin() == attacker {
			t.Errorf("ROV-adopting AS%d accepted the attacker's InvalidLengthAndOrigin route", a)
		}
	}
}

// TestSubprefixHijackFullROVAdoptionDefeatsAttack checks spec.md §8 S5's
// closing claim directly: is_successful must be false under 100% ROV
// adoption.
func TestSubprefixHijackFullROVAdoptionDefeatsAttack(t *testing.T) {
	g := hijackGraph(t)
	victim, attacker := asn.ASN(2), asn.ASN(3)
	s := NewSubprefixHijack(victim, attacker)

	v := roatrie.NewValidator()
	e := ribengine.NewEngine(g, asn.ROV, v, nil, nil)

	s.SetupEngine(e, v)
	e.Run(10)

	if s.IsSuccessful(e) {
		t.Error("100% ROV adoption should defeat the subprefix hijack")
	}
}

// TestLegitimatePrefixOnlyReachesMajority exercises the simplest scenario:
// propagation alone should get the route to (almost) every AS.
func TestLegitimatePrefixOnlyReachesMajority(t *testing.T) {
	g := hijackGraph(t)
	victim := asn.ASN(2)
	s := NewLegitimatePrefixOnly(victim)

	e := ribengine.NewEngine(g, asn.BGP, nil, nil, nil)
	s.SetupEngine(e, nil)
	e.Run(5)

	if !s.IsSuccessful(e) {
		t.Error("expected legitimate-only propagation to reach over 80% of ASes")
	}
}

// TestPrefixHijackShorterPathWins exercises PrefixHijack's same-prefix
// contest: an attacker directly attached to the hub should out-compete a
// victim stub further away once path length differs, the same Compare
// machinery S3 exercises.
func TestPrefixHijackShorterPathWins(t *testing.T) {
	g, err := asgraph.NewGraph([]asgraph.Builder{
		{ASN: 1, Customers: []asn.ASN{2, 3}},
		{ASN: 2, Providers: []asn.ASN{1}, Customers: []asn.ASN{4}},
		{ASN: 3, Providers: []asn.ASN{1}},
		{ASN: 4, Providers: []asn.ASN{2}},
	})
	if err != nil {
		t.Fatalf("NewGraph: %v", err)
	}

	victim, attacker := asn.ASN(4), asn.ASN(3)
	s := NewPrefixHijack(victim, attacker)

	e := ribengine.NewEngine(g, asn.BGP, nil, nil, nil)
	s.SetupEngine(e, nil)
	e.Run(5)

	ann, ok := e.States[1].LocalRIB[prefixHijackPrefix.String()]
	if !ok {
		t.Fatal("AS1 has no route for the contested prefix")
	}
	if ann.Origin() != attacker {
		t.Errorf("AS1 should prefer the attacker's shorter path, got origin %d", ann.Origin())
	}
}
