package rangeset

import (
	"encoding/binary"
	"math/rand"
	"net/netip"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go4.org/netipx"
)

// The IPv4 space is a 32 bit integer domain, so netipx's IPSet, which
// stores inclusive address ranges, can serve as an independent oracle
// for the uint32 set algebra.

func addrOf(v uint32) netip.Addr {
	var a4 [4]byte
	binary.BigEndian.PutUint32(a4[:], v)
	return netip.AddrFrom4(a4)
}

func uint32Of(a netip.Addr) uint32 {
	a4 := a.As4()
	return binary.BigEndian.Uint32(a4[:])
}

func toIPSet(t *testing.T, s *Set[uint32]) *netipx.IPSet {
	t.Helper()
	var b netipx.IPSetBuilder
	for r := range s.All() {
		b.AddRange(netipx.IPRangeFrom(addrOf(r.Start), addrOf(r.End-1)))
	}
	set, err := b.IPSet()
	require.NoError(t, err)
	return set
}

func fromIPSet(s *netipx.IPSet) []Range[uint32] {
	out := []Range[uint32]{}
	for _, r := range s.Ranges() {
		out = append(out, RangeFrom(uint32Of(r.From()), uint32Of(r.To())+1))
	}
	return out
}

func randomSet32(rnd *rand.Rand) *Set[uint32] {
	n := rnd.Intn(8)
	rr := make([]Range[uint32], 0, n)
	for i := 0; i < n; i++ {
		start := uint32(rnd.Intn(1 << 16))
		rr = append(rr, RangeOfLength(start, uint32(rnd.Intn(4096))))
	}
	return New(rr)
}

func TestAgainstIPSet(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		a, b := randomSet32(rnd), randomSet32(rnd)
		ipa, ipb := toIPSet(t, a), toIPSet(t, b)

		require.Empty(t, cmp.Diff(fromIPSet(ipa), a.Ranges()), "normalize %v", a)

		var ub netipx.IPSetBuilder
		ub.AddSet(ipa)
		ub.AddSet(ipb)
		union, err := ub.IPSet()
		require.NoError(t, err)
		if diff := cmp.Diff(fromIPSet(union), a.Union(b).Ranges()); diff != "" {
			t.Fatalf("union %v %v: -want, +got:\n%s", a, b, diff)
		}

		var ib netipx.IPSetBuilder
		ib.AddSet(ipa)
		ib.Intersect(ipb)
		intersection, err := ib.IPSet()
		require.NoError(t, err)
		if diff := cmp.Diff(fromIPSet(intersection), a.Intersection(b).Ranges()); diff != "" {
			t.Fatalf("intersection %v %v: -want, +got:\n%s", a, b, diff)
		}

		var db netipx.IPSetBuilder
		db.AddSet(ipa)
		db.RemoveSet(ipb)
		difference, err := db.IPSet()
		require.NoError(t, err)
		if diff := cmp.Diff(fromIPSet(difference), a.Difference(b).Ranges()); diff != "" {
			t.Fatalf("difference %v %v: -want, +got:\n%s", a, b, diff)
		}
	}
}
