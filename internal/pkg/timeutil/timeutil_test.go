package timeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHHMM(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"08:05", 485, false},
		{"18:00", 1080, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"9:00", 0, true},
		{"09-00", 0, true},
		{"ab:cd", 0, true},
		{"", 0, true},
	}

	for _, tc := range cases {
		got, err := ParseHHMM(tc.in)
		if tc.wantErr {
			assert.ErrorIs(t, err, ErrInvalidTime, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestFormatHHMM(t *testing.T) {
	assert.Equal(t, "00:00", FormatHHMM(0))
	assert.Equal(t, "08:05", FormatHHMM(485))
	assert.Equal(t, "23:59", FormatHHMM(1439))
}

func TestFormatRange(t *testing.T) {
	assert.Equal(t, "19:00–20:00", FormatRange(19*60, 20*60))
}

func TestOverlaps(t *testing.T) {
	// Adjacent intervals do not overlap.
	assert.False(t, Overlaps(9*60, 10*60, 10*60, 11*60))
	assert.False(t, Overlaps(10*60, 11*60, 9*60, 10*60))

	// Partial overlap.
	assert.True(t, Overlaps(18*60, 20*60, 19*60, 21*60))

	// Containment.
	assert.True(t, Overlaps(9*60, 12*60, 10*60, 11*60))

	// Disjoint.
	assert.False(t, Overlaps(8*60, 9*60, 14*60, 15*60))
}

func TestOverlapsSymmetry(t *testing.T) {
	intervals := [][2]int{
		{540, 600}, {600, 660}, {570, 630}, {0, 1439}, {480, 480},
	}
	for _, a := range intervals {
		for _, b := range intervals {
			assert.Equal(t,
				Overlaps(a[0], a[1], b[0], b[1]),
				Overlaps(b[0], b[1], a[0], a[1]),
				"intervals %v and %v", a, b)
		}
	}
}

func TestToHours(t *testing.T) {
	assert.Equal(t, 2.25, ToHours(135)) // 90 + 45
	assert.Equal(t, 1.0, ToHours(60))
	assert.Equal(t, 0.0, ToHours(0))
	assert.Equal(t, 1.33, ToHours(80))
	assert.Equal(t, 0.17, ToHours(10))
}
