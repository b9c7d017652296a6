/* ==================================================================================== *\
    legitimate_prefix_only.go

    LegitimatePrefixOnly: no attacker, a single victim-originated prefix.
    Success means propagation actually reached the network, the simplest
    sanity scenario spec.md §6 names.
\* ==================================================================================== */

package scenario

import (
	"net/netip"

	"github.com/Emeline-1/bgpsimulator/announcement"
	"github.com/Emeline-1/bgpsimulator/asgraph"
	"github.com/Emeline-1/bgpsimulator/asn"
	"github.com/Emeline-1/bgpsimulator/ribengine"
	"github.com/Emeline-1/bgpsimulator/roatrie"
)

var legitimatePrefixOnlyPrefix = netip.MustParsePrefix("10.0.0.0/24")

// LegitimatePrefixOnly is the Go shape of
// simulation_framework/scenarios/legitimate_prefix_only.rs: one victim
// ASN originates 10.0.0.0/24, nothing else happens.
type LegitimatePrefixOnly struct {
	Base
}

// NewLegitimatePrefixOnly builds the scenario for the given victim ASN.
func NewLegitimatePrefixOnly(victim asn.ASN) *LegitimatePrefixOnly {
	return &LegitimatePrefixOnly{Base: Base{
		LegitimateOriginASNs: map[asn.ASN]struct{}{victim: {}},
	}}
}

func (s *LegitimatePrefixOnly) Name() string { return "LegitimatePrefixOnly" }

func (s *LegitimatePrefixOnly) GetAttackerASNs(*asgraph.Graph) map[asn.ASN]struct{} {
	return map[asn.ASN]struct{}{}
}

func (s *LegitimatePrefixOnly) GetLegitimateOriginASNs(*asgraph.Graph) map[asn.ASN]struct{} {
	return s.LegitimateOriginASNs
}

func (s *LegitimatePrefixOnly) GetSeedASNAnnDict(*asgraph.Graph) map[asn.ASN][]announcement.Announcement {
	seeds := make(map[asn.ASN][]announcement.Announcement, len(s.LegitimateOriginASNs))
	for a := range s.LegitimateOriginASNs {
		seeds[a] = []announcement.Announcement{announcement.New(legitimatePrefixOnlyPrefix, nil)}
	}
	return seeds
}

func (s *LegitimatePrefixOnly) GetROAs(*asgraph.Graph) []roatrie.ROA {
	roas := make([]roatrie.ROA, 0, len(s.LegitimateOriginASNs))
	maxLen := uint8(24)
	for a := range s.LegitimateOriginASNs {
		roas = append(roas, roatrie.NewROA(legitimatePrefixOnlyPrefix, a, &maxLen))
	}
	return roas
}

func (s *LegitimatePrefixOnly) SetupEngine(e *ribengine.Engine, v *roatrie.Validator) {
	if v != nil {
		for _, roa := range s.GetROAs(nil) {
			v.AddROA(roa)
		}
	}
	for a, anns := range s.GetSeedASNAnnDict(nil) {
		for _, ann := range anns {
			e.SeedAnn(a, ann)
		}
	}
	e.InitialPropagation()
}

// IsSuccessful mirrors legitimate_prefix_only.rs: success if more than
// 80% of ASes carry the route in local_rib.
func (s *LegitimatePrefixOnly) IsSuccessful(e *ribengine.Engine) bool {
	return successRatio(e, legitimatePrefixOnlyPrefix.String(), s.LegitimateOriginASNs) > 0.8
}
