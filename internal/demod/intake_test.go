package demod

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaitcev/dump978/internal/phase"
)

func TestIntakeFillConvertsWholePairs(t *testing.T) {
	table := phase.NewTable()
	in := NewIntake(table)

	// Odd number of raw bytes: the last one must be held back as carryover.
	r := bytes.NewReader([]byte{10, 20, 30, 40, 50})
	phi, offset, err := in.Fill(r)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), offset)
	require.Len(t, phi, 2)
	assert.Equal(t, table.Angle(10, 20), phi[0])
	assert.Equal(t, table.Angle(30, 40), phi[1])
}

func TestIntakeFillCarriesOverTrailingByte(t *testing.T) {
	table := phase.NewTable()
	in := NewIntake(table)

	r := bytes.NewReader([]byte{1, 2, 3})
	phi, _, err := in.Fill(r)
	require.NoError(t, err)
	require.Len(t, phi, 1)
	assert.Equal(t, table.Angle(1, 2), phi[0])

	// The trailing byte (3) should pair with the next read's first byte.
	more := bytes.NewReader([]byte{4, 5, 6})
	phi2, _, err := in.Fill(more)
	require.NoError(t, err)
	require.Len(t, phi2, 3)
	assert.Equal(t, table.Angle(1, 2), phi2[0])
	assert.Equal(t, table.Angle(3, 4), phi2[1])
	assert.Equal(t, table.Angle(5, 6), phi2[2])
}

func TestIntakeAdvanceRetainsOffsetAndTail(t *testing.T) {
	table := phase.NewTable()
	in := NewIntake(table)

	r := bytes.NewReader([]byte{1, 2, 3, 4, 5, 6, 7, 8})
	phi, offset, err := in.Fill(r)
	require.NoError(t, err)
	require.Len(t, phi, 4)
	assert.Equal(t, uint64(0), offset)

	in.Advance(3)

	more := bytes.NewReader([]byte{9, 10})
	phi2, offset2, err := in.Fill(more)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), offset2)
	require.Len(t, phi2, 2)
	assert.Equal(t, table.Angle(7, 8), phi2[0])
	assert.Equal(t, table.Angle(9, 10), phi2[1])
}
