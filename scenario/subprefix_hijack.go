/* ==================================================================================== *\
    subprefix_hijack.go

    SubprefixHijack: attacker announces a more specific prefix than the
    victim's, so the two never directly compete in Compare — every AS
    simply routes toward whichever origin advertised the longest matching
    prefix, the classic real-world hijack shape.
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

var (
	subprefixLegitimatePrefix = netip.MustParsePrefix("10.0.0.0/24")
	subprefixHijackedPrefix   = netip.MustParsePrefix("10.0.0.0/25")
)

// SubprefixHijack is the Go shape of
// simulation_framework/scenarios/subprefix_hijack.rs: the victim
// announces 10.0.0.0/24, the attacker a more specific 10.0.0.0/25.
type SubprefixHijack struct {
	Base
}

// NewSubprefixHijack builds the scenario for the given victim and attacker ASNs.
func NewSubprefixHijack(victim, attacker asn.ASN) *SubprefixHijack {
	return &SubprefixHijack{Base: Base{
		AttackerASNs:         map[asn.ASN]struct{}{attacker: {}},
		LegitimateOriginASNs: map[asn.ASN]struct{}{victim: {}},
	}}
}

func (s *SubprefixHijack) Name() string { return "SubprefixHijack" }

func (s *SubprefixHijack) GetAttackerASNs(*asgraph.Graph) map[asn.ASN]struct{} {
	return s.AttackerASNs
}

func (s *SubprefixHijack) GetLegitimateOriginASNs(*asgraph.Graph) map[asn.ASN]struct{} {
	return s.LegitimateOriginASNs
}

func (s *SubprefixHijack) GetSeedASNAnnDict(*asgraph.Graph) map[asn.ASN][]announcement.Announcement {
	seeds := make(map[asn.ASN][]announcement.Announcement, len(s.LegitimateOriginASNs)+len(s.AttackerASNs))
	for a := range s.LegitimateOriginASNs {
		seeds[a] = append(seeds[a], announcement.New(subprefixLegitimatePrefix, nil))
	}
	for a := range s.AttackerASNs {
		seeds[a] = append(seeds[a], announcement.New(subprefixHijackedPrefix, nil))
	}
	return seeds
}

func (s *SubprefixHijack) GetROAs(*asgraph.Graph) []roatrie.ROA {
	roas := make([]roatrie.ROA, 0, len(s.LegitimateOriginASNs))
	maxLen := uint8(24)
	for a := range s.LegitimateOriginASNs {
		roas = append(roas, roatrie.NewROA(subprefixLegitimatePrefix, a, &maxLen))
	}
	return roas
}

func (s *SubprefixHijack) SetupEngine(e *ribengine.Engine, v *roatrie.Validator) {
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

// IsSuccessful mirrors subprefix_hijack.rs's success_ratio check: the
// attacker wins if more than half of ASes prefer its subprefix route.
func (s *SubprefixHijack) IsSuccessful(e *ribengine.Engine) bool {
	return successRatio(e, subprefixHijackedPrefix.String(), s.AttackerASNs) > 0.5
}

// Classify exposes the richer per-AS outcome breakdown for this scenario's
// two-prefix shape, where LegitimatePrefixOnly/PrefixHijack only ever
// populate one RIB slot.
func (s *SubprefixHijack) Classify(e *ribengine.Engine) map[asn.ASN]asn.Outcome {
	return Classify(e, subprefixLegitimatePrefix.String(), subprefixHijackedPrefix.String(), s.LegitimateOriginASNs, s.AttackerASNs)
}
