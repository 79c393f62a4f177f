package rangeset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRange(t *testing.T) {
	cases := map[string]struct {
		s           string
		expected    Range[uint64]
		expectedErr bool
	}{
		"Normal": {
			s:        "2..5",
			expected: RangeFrom[uint64](2, 5),
		},
		"Spaces": {
			s:        " 98 .. 100",
			expected: RangeFrom[uint64](98, 100),
		},
		"Empty": {
			s:        "7..7",
			expected: RangeFrom[uint64](7, 7),
		},
		"NoSeparator": {
			s:           "2-5",
			expectedErr: true,
		},
		"BadStart": {
			s:           "x..5",
			expectedErr: true,
		},
		"Negative": {
			s:           "-1..5",
			expectedErr: true,
		},
		"Inverted": {
			s:           "9..5",
			expectedErr: true,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := ParseRange[uint64](tc.s)
			if tc.expectedErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, r)
		})
	}
}

func TestParseRangeWidth(t *testing.T) {
	_, err := ParseRange[uint8]("0..256")
	assert.Error(t, err)

	r, err := ParseRange[int8]("-128..127")
	assert.NoError(t, err)
	assert.Equal(t, RangeFrom[int8](-128, 127), r)
}

func TestRangeString(t *testing.T) {
	assert.Equal(t, "3..7", RangeFrom(3, 7).String())
	r, err := ParseRange[int](RangeFrom(-4, 12).String())
	assert.NoError(t, err)
	assert.Equal(t, RangeFrom(-4, 12), r)
}

func TestContains(t *testing.T) {
	r := RangeFrom(10, 15)
	assert.False(t, r.Contains(9))
	assert.True(t, r.Contains(10))
	assert.True(t, r.Contains(14))
	// half-open
	assert.False(t, r.Contains(15))
	assert.False(t, RangeFrom(4, 4).Contains(4))
}

func TestLen(t *testing.T) {
	assert.Equal(t, uint64(2), RangeOfLength[uint64](98, 2).Len())
	assert.Equal(t, 0, RangeFrom(5, 5).Len())
	assert.Equal(t, 0, RangeFrom(9, 5).Len())
	assert.True(t, RangeFrom(9, 5).IsEmpty())
	assert.False(t, RangeFrom(9, 5).IsValid())
	assert.True(t, Range[int]{}.IsZero())
}

func TestOverlaps(t *testing.T) {
	cases := map[string]struct {
		a, b     Range[int]
		expected bool
	}{
		"Partial":        {a: RangeFrom(0, 5), b: RangeFrom(1, 7), expected: true},
		"Disjoint":       {a: RangeFrom(0, 5), b: RangeFrom(7, 10), expected: false},
		"Inside":         {a: RangeFrom(0, 5), b: RangeFrom(2, 3), expected: true},
		"TouchingIsNot":  {a: RangeFrom(10, 15), b: RangeFrom(15, 20), expected: false},
		"EmptyInside":    {a: RangeFrom(0, 5), b: RangeFrom(2, 2), expected: false},
		"SameRange":      {a: RangeFrom(3, 4), b: RangeFrom(3, 4), expected: true},
		"LastScalarOnly": {a: RangeFrom(0, 5), b: RangeFrom(4, 9), expected: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.a.Overlaps(tc.b))
			// order does not matter
			assert.Equal(t, tc.expected, tc.b.Overlaps(tc.a))
		})
	}
}

func TestCoveredBy(t *testing.T) {
	r1 := RangeFrom(10, 20)
	r2 := RangeFrom(9, 40)
	r3 := RangeFrom(15, 30)
	assert.True(t, r1.CoveredBy(r2))
	assert.False(t, r2.CoveredBy(r1))
	assert.True(t, r3.CoveredBy(r2))
	assert.False(t, r3.CoveredBy(r1))
	assert.True(t, r1.CoveredBy(r1))
	assert.True(t, r2.Covers(r1))
	assert.False(t, r1.Covers(r3))
}

func TestRelations(t *testing.T) {
	in := RangeFrom(10, 20)
	cases := map[string]struct {
		out             Range[int]
		entirelyBefore  bool
		inMiddleOf      bool
		overlapsStartOf bool
		overlapsEndOf   bool
	}{
		"Before":     {out: RangeFrom(0, 10), entirelyBefore: true, overlapsStartOf: true},
		"Middle":     {out: RangeFrom(12, 15), inMiddleOf: true},
		"Start":      {out: RangeFrom(5, 12), overlapsStartOf: true},
		"SameStart":  {out: RangeFrom(10, 12), overlapsStartOf: true},
		"End":        {out: RangeFrom(15, 25), overlapsEndOf: true},
		"SameEnd":    {out: RangeFrom(15, 20), overlapsEndOf: true},
		"Everything": {out: RangeFrom(5, 25)},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.entirelyBefore, tc.out.EntirelyBefore(in))
			assert.Equal(t, tc.inMiddleOf, tc.out.InMiddleOf(in))
			assert.Equal(t, tc.overlapsStartOf, tc.out.OverlapsStartOf(in))
			assert.Equal(t, tc.overlapsEndOf, tc.out.OverlapsEndOf(in))
		})
	}
}

func TestIntersect(t *testing.T) {
	r, ok := RangeFrom(2, 5).Intersect(RangeFrom(3, 7))
	assert.True(t, ok)
	assert.Equal(t, RangeFrom(3, 5), r)

	_, ok = RangeFrom(2, 5).Intersect(RangeFrom(5, 7))
	assert.False(t, ok)
}

func TestShift(t *testing.T) {
	assert.Equal(t, RangeFrom(105, 110), RangeFrom(5, 10).Shift(100))
	assert.Equal(t, RangeFrom(-5, 0), RangeFrom(5, 10).Shift(-10))

	// unsigned offsets wrap, so dst-src moves ranges down as well
	src, dst := uint64(98), uint64(50)
	assert.Equal(t, RangeFrom[uint64](50, 52), RangeFrom[uint64](98, 100).Shift(dst-src))
}
