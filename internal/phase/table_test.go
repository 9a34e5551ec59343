package phase

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTableNearOriginAngle(t *testing.T) {
	table := NewTable()
	// i=q=128 lies almost exactly at the IQ origin; atan2(0.5,0.5) is pi/4,
	// which the +pi shift maps to 5/8 of the way around (40960), a fixed,
	// unambiguous reference point.
	got := table.Angle(128, 128)
	want := uint16(math.Round(32768 * (math.Atan2(0.5, 0.5) + math.Pi) / math.Pi))
	assert.Equal(t, want, got)
}

func TestNewTableMonotonicAroundOrigin(t *testing.T) {
	table := NewTable()
	// Moving from due-east (q=127.5-ish, i>127.5) counter-clockwise through
	// due-north should produce increasing phase values modulo wraparound.
	east := table.Angle(255, 128)
	north := table.Angle(128, 255)
	assert.Greater(t, north, east)
}

func TestDifferenceNoWrap(t *testing.T) {
	assert.Equal(t, int16(100), Difference(1000, 1100))
	assert.Equal(t, int16(-100), Difference(1100, 1000))
}

func TestDifferenceWrapsShortestArc(t *testing.T) {
	tests := []struct {
		name string
		from uint16
		to   uint16
		want int16
	}{
		{"wrap forward past 65535", 65500, 100, 136},
		{"wrap backward past 0", 100, 65500, -136},
		{"exact half circle", 0, 32768, -32768},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Difference(tt.from, tt.to))
		})
	}
}
