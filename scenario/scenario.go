/* ==================================================================================== *\
    scenario.go

    Adapter: the scenario interface spec.md §6 describes — what a
    concrete attack/non-attack scenario must supply to drive an engine
    run and to judge its outcome. Base holds the fields every reference
    scenario shares (config.json-style knobs), the way anaximander_driver.go
    holds one Args struct that every probing strategy reads from.
\* ==================================================================================== */

package scenario

import (
	"math/rand"

	"github.com/Emeline-1/bgpsimulator/announcement"
	"github.com/Emeline-1/bgpsimulator/asgraph"
	"github.com/Emeline-1/bgpsimulator/asn"
	"github.com/Emeline-1/bgpsimulator/ribengine"
	"github.com/Emeline-1/bgpsimulator/roatrie"
)

// Adapter is the scenario contract spec.md §6 names: what attacker/victim
// ASNs to use, what to seed, what ROAs to install, and how to judge success.
type Adapter interface {
	Name() string
	MinPropagationRounds() int
	GetAttackerASNs(g *asgraph.Graph) map[asn.ASN]struct{}
	GetLegitimateOriginASNs(g *asgraph.Graph) map[asn.ASN]struct{}
	GetSeedASNAnnDict(g *asgraph.Graph) map[asn.ASN][]announcement.Announcement
	GetROAs(g *asgraph.Graph) []roatrie.ROA
	SetupEngine(e *ribengine.Engine, v *roatrie.Validator)
	IsSuccessful(e *ribengine.Engine) bool
}

// Base holds the fields every reference scenario shares: attacker/victim
// ASN sets, the original's Scenario struct fields (config,
// percent_ases_randomly_adopting, attacker_asns, legitimate_origin_asns)
// narrowed to what the Go engine actually needs. Adoption itself is a
// driver concern: ribengine.NewEngine seeds every AS with one Settings
// value, and a driver wanting partial adoption (e.g. "half the ASes
// adopt ROV") calls Engine.AdoptSettings afterward with the sampled
// adopting subset, rather than this package tracking a per-AS settings
// map itself.
type Base struct {
	AttackerASNs         map[asn.ASN]struct{}
	LegitimateOriginASNs map[asn.ASN]struct{}
}

// MinPropagationRounds is the default every original_source scenario
// inherits unless it overrides: one round suffices unless the topology
// is unusually deep.
func (Base) MinPropagationRounds() int { return 1 }

// DefaultAttackerASN picks asn.Attacker if present in the graph, else an
// arbitrary stub AS, mirroring Scenario::default_attacker_asns's
// "a random stub AS" fallback without requiring callers to seed an RNG
// for the common case of a graph that already reserves 666 for it.
func DefaultAttackerASN(g *asgraph.Graph, rng *rand.Rand) asn.ASN {
	if _, ok := g.AS(asn.Attacker); ok {
		return asn.Attacker
	}
	return randomStub(g, rng, nil)
}

// DefaultVictimASN picks asn.Victim if present, else a stub distinct
// from exclude, mirroring Scenario::default_legitimate_origin_asns.
func DefaultVictimASN(g *asgraph.Graph, rng *rand.Rand, exclude asn.ASN) asn.ASN {
	if _, ok := g.AS(asn.Victim); ok {
		return asn.Victim
	}
	return randomStub(g, rng, map[asn.ASN]struct{}{exclude: {}})
}

func randomStub(g *asgraph.Graph, rng *rand.Rand, exclude map[asn.ASN]struct{}) asn.ASN {
	var stubs []asn.ASN
	for a := range g.Group(asn.Stubs) {
		if _, skip := exclude[a]; !skip {
			stubs = append(stubs, a)
		}
	}
	if len(stubs) == 0 {
		return 0
	}
	return stubs[rng.Intn(len(stubs))]
}

// successRatio reports the fraction of ASes in e whose local_rib best
// route for prefix has an origin in origins, the shared arithmetic every
// reference scenario's is_successful performs over engine.policy_store.
func successRatio(e *ribengine.Engine, prefix string, origins map[asn.ASN]struct{}) float64 {
	if len(e.States) == 0 {
		return 0
	}
	matches := 0
	for _, ps := range e.States {
		ann, ok := ps.LocalRIB[prefix]
		if !ok {
			continue
		}
		if _, want := origins[ann.Origin()]; want {
			matches++
		}
	}
	return float64(matches) / float64(len(e.States))
}
