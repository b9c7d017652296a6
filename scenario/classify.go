/* ==================================================================================== *\
    classify.go

    Classify: the richer per-AS Outcome breakdown original_source/src/shared.rs's
    Outcomes enum defines, supplementing spec.md §6's binary is_successful.
    original_source itself never finishes this (simulation.rs's
    run_single_trial ends in a TODO returning a hardcoded VictimSuccess);
    this is a from-scratch implementation of what the enum's variant names
    say they mean, read directly off their names and the two competing-
    announcement scenarios that need them.
\* ==================================================================================== */

package scenario

import (
	"github.com/Emeline-1/bgpsimulator/asn"
	"github.com/Emeline-1/bgpsimulator/ribengine"
)

// Classify reports, for every AS in e, which Outcome describes its final
// view of a (legitimate, hijacked) prefix pair. For a plain prefix hijack
// (same prefix contested on path length/preference alone) pass the same
// string for both; legitimatePrefix and hijackedPrefix are the keys
// GetLocalRIBSnapshot/PolicyState.LocalRIB use, i.e. netip.Prefix.String().
func Classify(e *ribengine.Engine, legitimatePrefix, hijackedPrefix string, victimASNs, attackerASNs map[asn.ASN]struct{}) map[asn.ASN]asn.Outcome {
	out := make(map[asn.ASN]asn.Outcome, len(e.States))

	for a, ps := range e.States {
		legit, hasLegit := ps.LocalRIB[legitimatePrefix]
		hijacked, hasHijacked := ps.LocalRIB[hijackedPrefix]

		switch {
		case hasHijacked && isOrigin(hijacked.Origin(), attackerASNs):
			if hijacked.ROVPPBlackhole {
				out[a] = asn.HijackedButBlackholed
			} else if hasLegit && isOrigin(legit.Origin(), victimASNs) {
				out[a] = asn.HijackedButNotDetected
			} else {
				out[a] = asn.AttackerSuccess
			}
		case hasLegit && isOrigin(legit.Origin(), victimASNs):
			out[a] = asn.VictimSuccess
		case !hasLegit && !hasHijacked:
			out[a] = disconnectedOutcome(a, victimASNs, attackerASNs)
		default:
			// A route exists but its origin is neither the attacker nor
			// the victim set — a third party re-originated the prefix.
			// Closest-named outcome: treat it like the legitimate route
			// won, since it wasn't the attacker's.
			out[a] = asn.VictimSuccess
		}
	}
	return out
}

func isOrigin(origin asn.ASN, set map[asn.ASN]struct{}) bool {
	_, ok := set[origin]
	return ok
}

func disconnectedOutcome(a asn.ASN, victimASNs, attackerASNs map[asn.ASN]struct{}) asn.Outcome {
	if _, ok := victimASNs[a]; ok {
		return asn.DisconnectedVictim
	}
	if _, ok := attackerASNs[a]; ok {
		return asn.DisconnectedAttacker
	}
	return asn.DisconnectedOrigin
}

// IsSuccessfulAttack reports whether one AS's classification counts as
// an attacker win — a convenience predicate scenarios can use
// instead of re-deriving the same switch spec.md's is_successful needs.
func IsSuccessfulAttack(outcome asn.Outcome) bool {
	return outcome == asn.AttackerSuccess
}
