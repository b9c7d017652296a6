/* ==================================================================================== *\
    prefix_hijack.go

    PrefixHijack: victim and attacker both originate the same prefix.
    Unlike SubprefixHijack, there's only one local_rib slot per AS per
    prefix here — the outcome is decided purely by Compare's preference/
    path-length/next-hop tie-break, the same machinery S3's Gao-Rexford
    export test exercises. No subprefix_hijack.rs equivalent exists in
    original_source for this variant; it's built from scenario.rs's base
    Scenario fields plus spec.md §6's one-line description.
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

var prefixHijackPrefix = netip.MustParsePrefix("10.0.0.0/24")

// PrefixHijack is the Go shape of spec.md §6's second reference scenario:
// victim and attacker both originate 10.0.0.0/24.
type PrefixHijack struct {
	Base
}

// NewPrefixHijack builds the scenario for the given victim and attacker ASNs.
func NewPrefixHijack(victim, attacker asn.ASN) *PrefixHijack {
	return &PrefixHijack{Base: Base{
		AttackerASNs:         map[asn.ASN]struct{}{attacker: {}},
		LegitimateOriginASNs: map[asn.ASN]struct{}{victim: {}},
	}}
}

func (s *PrefixHijack) Name() string { return "PrefixHijack" }

func (s *PrefixHijack) GetAttackerASNs(*asgraph.Graph) map[asn.ASN]struct{} {
	return s.AttackerASNs
}

func (s *PrefixHijack) GetLegitimateOriginASNs(*asgraph.Graph) map[asn.ASN]struct{} {
	return s.LegitimateOriginASNs
}

func (s *PrefixHijack) GetSeedASNAnnDict(*asgraph.Graph) map[asn.ASN][]announcement.Announcement {
	seeds := make(map[asn.ASN][]announcement.Announcement, len(s.LegitimateOriginASNs)+len(s.AttackerASNs))
	for a := range s.LegitimateOriginASNs {
		seeds[a] = append(seeds[a], announcement.New(prefixHijackPrefix, nil))
	}
	for a := range s.AttackerASNs {
		seeds[a] = append(seeds[a], announcement.New(prefixHijackPrefix, nil))
	}
	return seeds
}

func (s *PrefixHijack) GetROAs(*asgraph.Graph) []roatrie.ROA {
	roas := make([]roatrie.ROA, 0, len(s.LegitimateOriginASNs))
	maxLen := uint8(24)
	for a := range s.LegitimateOriginASNs {
		roas = append(roas, roatrie.NewROA(prefixHijackPrefix, a, &maxLen))
	}
	return roas
}

func (s *PrefixHijack) SetupEngine(e *ribengine.Engine, v *roatrie.Validator) {
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

// IsSuccessful reports whether the attacker's origin won the contested
// prefix at a majority of ASes.
func (s *PrefixHijack) IsSuccessful(e *ribengine.Engine) bool {
	return successRatio(e, prefixHijackPrefix.String(), s.AttackerASNs) > 0.5
}
