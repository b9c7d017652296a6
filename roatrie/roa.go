/* ==================================================================================== *\
    roa.go

    Route Origin Authorizations: a signed (prefix, origin, max_length)
    triple, plus the per-ROA validity check spec.md §4.3 defines.
\* ==================================================================================== */

package roatrie

import (
	"net/netip"

	"github.com/Emeline-1/bgpsimulator/asn"
)

// ROA is a single Route Origin Authorization.
type ROA struct {
	Prefix      netip.Prefix
	Origin      asn.ASN
	MaxLength   uint8
	TrustAnchor string // optional tag; empty when absent
}

// NewROA builds a ROA, defaulting MaxLength to the prefix's own length
// when maxLength is nil.
func NewROA(prefix netip.Prefix, origin asn.ASN, maxLength *uint8) ROA {
	ml := uint8(prefix.Bits())
	if maxLength != nil {
		ml = *maxLength
	}
	return ROA{Prefix: prefix, Origin: origin, MaxLength: ml}
}

// IsRouted reports whether this ROA authorizes any origin at all; origin
// zero marks an explicitly non-routed prefix.
func (r ROA) IsRouted() bool {
	return r.Origin != 0
}

// Covers reports whether r's prefix covers target: target must be at
// least as specific (equal or longer mask) and share r's leading bits.
func (r ROA) Covers(target netip.Prefix) bool {
	if r.Prefix.Addr().Is4() != target.Addr().Is4() {
		return false
	}
	if target.Bits() < r.Prefix.Bits() {
		return false
	}
	return r.Prefix.Contains(target.Addr())
}

// Validity compares target/origin against this single ROA, per spec.md
// §4.3: Unknown if the ROA doesn't cover the target; otherwise one of
// Valid/InvalidLength/InvalidOrigin/InvalidLengthAndOrigin.
func (r ROA) Validity(target netip.Prefix, origin asn.ASN) asn.ROAValidity {
	if !r.Covers(target) {
		return asn.ROAUnknown
	}
	validLength := target.Bits() <= int(r.MaxLength)
	validOrigin := r.Origin == origin
	switch {
	case validLength && validOrigin:
		return asn.Valid
	case !validLength && validOrigin:
		return asn.InvalidLength
	case validLength && !validOrigin:
		return asn.InvalidOrigin
	default:
		return asn.InvalidLengthAndOrigin
	}
}

// Outcome is the (validity, routed) pair spec.md's get_roa_outcome returns.
func (r ROA) Outcome(target netip.Prefix, origin asn.ASN) (asn.ROAValidity, asn.ROARouted) {
	validity := r.Validity(target, origin)
	routed := asn.NonRouted
	if r.IsRouted() {
		routed = asn.Routed
	}
	return validity, routed
}

// binaryString returns the prefix's network bits as a string of '0'/'1'
// characters, cut at the prefix length — the same encoding
// anaximander_simulator's get_binary_string uses for its radix tree keys.
func binaryString(p netip.Prefix) string {
	addr := p.Addr()
	buf := addr.AsSlice()
	bits := make([]byte, 0, len(buf)*8)
	for _, b := range buf {
		for i := 7; i >= 0; i-- {
			if (b>>uint(i))&1 == 1 {
				bits = append(bits, '1')
			} else {
				bits = append(bits, '0')
			}
		}
	}
	n := p.Bits()
	if n > len(bits) {
		n = len(bits)
	}
	return string(bits[:n])
}
