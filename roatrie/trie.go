/* ==================================================================================== *\
    trie.go

    RouteValidator: a binary trie over ROA prefixes (one child per bit,
    as in original_source's ROASNode) with an LRU memoizer in front of the
    covering-ROA scan, per spec.md §4.3.
\* ==================================================================================== */

package roatrie

import (
	"net/netip"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Emeline-1/bgpsimulator/asn"
)

const cacheCapacity = 10000

type node struct {
	roas  []ROA
	left  *node // bit '0'
	right *node // bit '1'
}

type cacheKey struct {
	prefix netip.Prefix
	origin asn.ASN
}

type cacheEntry struct {
	validity asn.ROAValidity
	routed   asn.ROARouted
}

// Validator is spec.md's "route validator": read-only once loaded, safe
// for concurrent GetROAOutcome calls from multiple engine goroutines
// during trial-level parallelism (spec.md §5).
type Validator struct {
	mu    sync.RWMutex
	root  *node
	cache *lru.Cache[cacheKey, cacheEntry]
}

// NewValidator returns an empty validator with a 10000-entry LRU cache.
func NewValidator() *Validator {
	cache, _ := lru.New[cacheKey, cacheEntry](cacheCapacity)
	return &Validator{root: &node{}, cache: cache}
}

// AddROA inserts roa into the trie at its binary prefix and invalidates
// the cache, since previously-memoized outcomes may no longer be correct.
func (v *Validator) AddROA(roa ROA) {
	v.mu.Lock()
	defer v.mu.Unlock()

	bits := binaryString(roa.Prefix)
	n := v.root
	for i := 0; i < len(bits); i++ {
		if bits[i] == '0' {
			if n.left == nil {
				n.left = &node{}
			}
			n = n.left
		} else {
			if n.right == nil {
				n.right = &node{}
			}
			n = n.right
		}
	}
	n.roas = append(n.roas, roa)
	v.cache.Purge()
}

// GetROAOutcome implements spec.md §4.3's get_roa_outcome: walk the trie
// along prefix's bits, collect every covering ROA, and return the
// outcome with the smallest-ordinal (most-permissive-on-tie) validity.
func (v *Validator) GetROAOutcome(prefix netip.Prefix, origin asn.ASN) (asn.ROAValidity, asn.ROARouted) {
	key := cacheKey{prefix: prefix, origin: origin}
	if entry, ok := v.cache.Get(key); ok {
		return entry.validity, entry.routed
	}

	v.mu.RLock()
	covering := v.collectCovering(prefix)
	v.mu.RUnlock()

	var result cacheEntry
	if len(covering) == 0 {
		result = cacheEntry{validity: asn.ROAUnknown, routed: asn.RoutedUnknown}
	} else {
		result.validity, result.routed = covering[0].Outcome(prefix, origin)
		for _, roa := range covering[1:] {
			if validity, routed := roa.Outcome(prefix, origin); validity < result.validity {
				result.validity, result.routed = validity, routed
			}
		}
	}

	v.cache.Add(key, result)
	return result.validity, result.routed
}

// collectCovering walks the trie along prefix's bits, gathering every ROA
// stored at or above the target depth whose own prefix covers the target.
func (v *Validator) collectCovering(prefix netip.Prefix) []ROA {
	bits := binaryString(prefix)
	var out []ROA

	n := v.root
	for _, roa := range n.roas {
		if roa.Covers(prefix) {
			out = append(out, roa)
		}
	}
	for i := 0; i < len(bits) && n != nil; i++ {
		if bits[i] == '0' {
			n = n.left
		} else {
			n = n.right
		}
		if n == nil {
			break
		}
		for _, roa := range n.roas {
			if roa.Covers(prefix) {
				out = append(out, roa)
			}
		}
	}
	return out
}
