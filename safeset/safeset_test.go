package safeset

import (
	"sync"
	"testing"

	"github.com/Emeline-1/bgpsimulator/asn"
)

func TestAddAndContains(t *testing.T) {
	s := New()
	if s.Contains(asn.ASN(1)) {
		t.Fatal("empty set should not contain AS1")
	}
	s.Add(asn.ASN(1))
	if !s.Contains(asn.ASN(1)) {
		t.Fatal("set should contain AS1 after Add")
	}
	if s.Contains(asn.ASN(2)) {
		t.Fatal("set should not contain AS2")
	}
}

func TestAddAllAndLen(t *testing.T) {
	s := New()
	s.AddAll(map[asn.ASN]struct{}{1: {}, 2: {}, 3: {}})
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	s.AddAll(map[asn.ASN]struct{}{3: {}, 4: {}})
	if s.Len() != 4 {
		t.Fatalf("Len() after overlapping AddAll = %d, want 4", s.Len())
	}
}

func TestSliceContainsAllAdded(t *testing.T) {
	s := New()
	want := map[asn.ASN]struct{}{10: {}, 20: {}, 30: {}}
	s.AddAll(want)

	got := make(map[asn.ASN]struct{})
	for _, a := range s.Slice() {
		got[a] = struct{}{}
	}
	if len(got) != len(want) {
		t.Fatalf("Slice() returned %d ASNs, want %d", len(got), len(want))
	}
	for a := range want {
		if _, ok := got[a]; !ok {
			t.Errorf("Slice() missing AS%d", a)
		}
	}
}

func TestConcurrentAdd(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(a asn.ASN) {
			defer wg.Done()
			s.Add(a)
		}(asn.ASN(i))
	}
	wg.Wait()
	if s.Len() != 100 {
		t.Fatalf("Len() after concurrent adds = %d, want 100", s.Len())
	}
}
