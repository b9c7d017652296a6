/* ==================================================================================== *\
    safeset.go

    A set protected by a sync.Mutex, generalized from anaximander_simulator's
    SafeSet (root safeset.go) for tracking which ASNs adopted a policy
    extension across a sweep's concurrent trial goroutines (pool.Launch_pool
    workers all call AddAll from runTrial closures simultaneously).
\* ==================================================================================== */

package safeset

import (
	"sync"

	"github.com/Emeline-1/bgpsimulator/asn"
)

// Set is a concurrency-safe set of ASNs.
type Set struct {
	mux sync.Mutex
	m   map[asn.ASN]struct{}
}

func New() *Set {
	return &Set{m: make(map[asn.ASN]struct{})}
}

func (s *Set) Add(a asn.ASN) {
	s.mux.Lock()
	s.m[a] = struct{}{}
	s.mux.Unlock()
}

func (s *Set) AddAll(asns map[asn.ASN]struct{}) {
	s.mux.Lock()
	for a := range asns {
		s.m[a] = struct{}{}
	}
	s.mux.Unlock()
}

func (s *Set) Contains(a asn.ASN) bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	_, ok := s.m[a]
	return ok
}

func (s *Set) Len() int {
	s.mux.Lock()
	defer s.mux.Unlock()
	return len(s.m)
}

func (s *Set) Slice() []asn.ASN {
	s.mux.Lock()
	defer s.mux.Unlock()
	out := make([]asn.ASN, 0, len(s.m))
	for a := range s.m {
		out = append(out, a)
	}
	return out
}
