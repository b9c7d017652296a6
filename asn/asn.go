/* ==================================================================================== *\
    asn.go

    Shared enumerations used across the simulator: commercial relationships,
    ROA outcomes, ASN groups, policy settings, and attack outcomes.
\* ==================================================================================== */

package asn

// ASN is a 32-bit Autonomous System Number.
type ASN uint32

// Well-known ASNs used by the reference attack scenarios.
const (
	Attacker ASN = 666
	Victim   ASN = 777
)

// Relationship identifies how one AS received (or would send) a route
// relative to another AS: Gao-Rexford commercial relationship, plus the
// two pseudo-relationships Origin (self-originated) and Unknown (no
// edge found between the two ASes).
type Relationship int

const (
	Providers Relationship = iota + 1
	Peers
	Customers
	Origin
	Unknown
)

func (r Relationship) String() string {
	switch r {
	case Providers:
		return "PROVIDERS"
	case Peers:
		return "PEERS"
	case Customers:
		return "CUSTOMERS"
	case Origin:
		return "ORIGIN"
	default:
		return "UNKNOWN"
	}
}

// Invert returns the relationship the neighbor observes for the same edge:
// a provider's customer sees it as a provider, and vice versa; peer and
// origin edges are symmetric under inversion.
func (r Relationship) Invert() Relationship {
	switch r {
	case Providers:
		return Customers
	case Customers:
		return Providers
	default:
		return r
	}
}

// GaoRexfordPreference ranks a relationship for best-route selection:
// customer routes beat peer routes beat provider routes.
func (r Relationship) GaoRexfordPreference() int {
	switch r {
	case Customers:
		return 3
	case Peers:
		return 2
	case Providers:
		return 1
	default:
		return 0
	}
}

// ROAValidity is the outcome of checking an (prefix, origin) pair against
// one or more ROAs. Ordinal order matters: Valid < Unknown < InvalidLength
// < InvalidOrigin < InvalidLengthAndOrigin, used to pick the "best" (most
// permissive-if-tied) outcome when several ROAs cover the same prefix.
type ROAValidity int

const (
	Valid ROAValidity = iota
	ROAUnknown
	InvalidLength
	InvalidOrigin
	InvalidLengthAndOrigin
)

func (v ROAValidity) String() string {
	switch v {
	case Valid:
		return "VALID"
	case ROAUnknown:
		return "UNKNOWN"
	case InvalidLength:
		return "INVALID_LENGTH"
	case InvalidOrigin:
		return "INVALID_ORIGIN"
	case InvalidLengthAndOrigin:
		return "INVALID_LENGTH_AND_ORIGIN"
	default:
		return "UNKNOWN"
	}
}

// ROARouted marks whether the covering ROA authorizes any origin at all.
type ROARouted int

const (
	Routed ROARouted = iota
	RoutedUnknown
	NonRouted
)

// ASNGroup names one of the named groups an AS graph computes at build time.
type ASNGroup int

const (
	Tier1 ASNGroup = iota
	Etc
	StubsOrMH
	Stubs
	Multihomed
	Transit
	Input
	IXP
)

func (g ASNGroup) String() string {
	switch g {
	case Tier1:
		return "TIER_1"
	case Etc:
		return "ETC"
	case StubsOrMH:
		return "STUBS_OR_MH"
	case Stubs:
		return "STUBS"
	case Multihomed:
		return "MULTIHOMED"
	case Transit:
		return "TRANSIT"
	case Input:
		return "INPUT"
	case IXP:
		return "IXP"
	default:
		return "UNKNOWN"
	}
}

// Settings tags which policy extension an AS runs. Unknown values default
// to plain BGP (see policy.Factory).
type Settings int

const (
	BGP Settings = iota
	ROV
	PeerROV
	OnlyToCustomers
	PathEnd
	EnforceFirstAS
	ASPA
	BGPSec
	ROVPPV1Lite
	PeerlockLite
	EdgeFilter
)

func (s Settings) String() string {
	switch s {
	case BGP:
		return "BGP"
	case ROV:
		return "ROV"
	case PeerROV:
		return "PeerROV"
	case OnlyToCustomers:
		return "OnlyToCustomers"
	case PathEnd:
		return "PathEnd"
	case EnforceFirstAS:
		return "EnforceFirstAS"
	case ASPA:
		return "ASPA"
	case BGPSec:
		return "BGPSec"
	case ROVPPV1Lite:
		return "ROVPPV1Lite"
	case PeerlockLite:
		return "PeerlockLite"
	case EdgeFilter:
		return "ASPathEdgeFilter"
	default:
		return "BGP"
	}
}

// Outcome classifies a single AS's final view of an attack scenario's
// destination prefix(es), supplementing spec.md's binary is_successful
// with the richer classification original_source carried.
type Outcome int

const (
	AttackerSuccess Outcome = iota
	VictimSuccess
	DisconnectedOrigin
	DisconnectedAttacker
	DisconnectedVictim
	HijackedSamePath
	HijackedButBlackholed
	HijackedButNotDetected
)

func (o Outcome) String() string {
	switch o {
	case AttackerSuccess:
		return "attacker_success"
	case VictimSuccess:
		return "victim_success"
	case DisconnectedOrigin:
		return "disconnected_origin"
	case DisconnectedAttacker:
		return "disconnected_attacker"
	case DisconnectedVictim:
		return "disconnected_victim"
	case HijackedSamePath:
		return "hijacked_same_path"
	case HijackedButBlackholed:
		return "hijacked_but_blackholed"
	case HijackedButNotDetected:
		return "hijacked_but_not_detected"
	default:
		return "unknown"
	}
}
