package rs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testCodec mirrors the ADS-B short-frame parameterization: nroots=12,
// pad=225, giving N=30, K=18 - small enough to exercise the full
// encode/corrupt/decode cycle cheaply.
func testCodec() *Codec {
	return New(0x187, 120, 1, 12, 225)
}

func TestEncodeDecodeRoundTripNoErrors(t *testing.T) {
	c := testCodec()
	data := make([]byte, c.K())
	for i := range data {
		data[i] = byte(i*7 + 3)
	}
	parity := c.Encode(data)
	codeword := append(append([]byte(nil), data...), parity...)
	require.Len(t, codeword, c.N())

	corrected, ok := c.Decode(codeword)
	require.True(t, ok)
	assert.Equal(t, 0, corrected)
	assert.Equal(t, data, codeword[:c.K()])
}

func TestDecodeCorrectsErrorsWithinCapacity(t *testing.T) {
	c := testCodec()
	data := make([]byte, c.K())
	for i := range data {
		data[i] = byte(i * 13)
	}
	parity := c.Encode(data)
	codeword := append(append([]byte(nil), data...), parity...)

	// nroots=12 corrects up to 6 symbol errors.
	corrupted := append([]byte(nil), codeword...)
	corrupted[0] ^= 0xFF
	corrupted[5] ^= 0x01
	corrupted[10] ^= 0x55
	corrupted[15] ^= 0x80
	corrupted[20] ^= 0x0F
	corrupted[25] ^= 0x3C

	corrected, ok := c.Decode(corrupted)
	require.True(t, ok)
	assert.Equal(t, 6, corrected)
	assert.Equal(t, codeword, corrupted)
}

func TestDecodeFailsClosedBeyondCapacity(t *testing.T) {
	c := testCodec()
	data := make([]byte, c.K())
	for i := range data {
		data[i] = byte(i * 17)
	}
	parity := c.Encode(data)
	codeword := append(append([]byte(nil), data...), parity...)

	corrupted := append([]byte(nil), codeword...)
	for i := 0; i < 7; i++ {
		corrupted[i*4] ^= byte(0x11 * (i + 1))
	}
	original := append([]byte(nil), corrupted...)

	_, ok := c.Decode(corrupted)
	assert.False(t, ok)
	assert.Equal(t, original, corrupted, "a failed decode must not modify the codeword")
}

func TestUplinkParameterization(t *testing.T) {
	c := New(0x187, 120, 1, 20, 163)
	assert.Equal(t, 92, c.N())
	assert.Equal(t, 72, c.K())

	data := make([]byte, c.K())
	for i := range data {
		data[i] = byte(i * 31)
	}
	parity := c.Encode(data)
	codeword := append(append([]byte(nil), data...), parity...)

	corrupted := append([]byte(nil), codeword...)
	corrupted[0] ^= 0xAA
	corrupted[40] ^= 0x11

	corrected, ok := c.Decode(corrupted)
	require.True(t, ok)
	assert.Equal(t, 2, corrected)
	assert.Equal(t, codeword, corrupted)
}

func TestLongFrameParameterization(t *testing.T) {
	c := New(0x187, 120, 1, 14, 207)
	assert.Equal(t, 48, c.N())
	assert.Equal(t, 34, c.K())
}
