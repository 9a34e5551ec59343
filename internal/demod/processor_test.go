package demod

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessFindsEmbeddedShortFrame(t *testing.T) {
	codecs := NewCodecs()
	codeword := shortADSBCodeword(t, codecs, 0)
	filler := make([]byte, LongFrameBytes-len(codeword))
	frameBytes := append(append([]byte(nil), codeword...), filler...)

	preambleBits := make([]int, 200)
	for i := range preambleBits {
		preambleBits[i] = i % 2
	}
	frameBits := append(wordToBits(ADSBSyncWord, SyncBits), bytesToBits(frameBytes)...)
	trailerBits := make([]int, UplinkFrameBits)
	for i := range trailerBits {
		trailerBits[i] = (i / 3) % 2
	}

	allBits := append(append(append([]int(nil), preambleBits...), frameBits...), trailerBits...)
	phi := bitsToPhase(allBits)

	p := NewProcessor(codecs, nil)
	var got []Frame
	consumed := p.Process(phi, 1000, func(f Frame) { got = append(got, f) })

	require.Len(t, got, 1)
	assert.False(t, got[0].Uplink)
	assert.Equal(t, 0, got[0].RSErrors)
	assert.Equal(t, codeword[:ShortFrameDataBytes], got[0].Data)
	assert.Greater(t, consumed, 0)
	assert.LessOrEqual(t, consumed, len(phi))

	_, adsbFrames, _, _ := p.Stats()
	assert.Equal(t, uint64(1), adsbFrames)
}

func TestProcessReturnsZeroWhenWindowTooSmall(t *testing.T) {
	codecs := NewCodecs()
	p := NewProcessor(codecs, nil)
	phi := make([]uint16, 100)
	consumed := p.Process(phi, 0, func(Frame) { t.Fatal("no frame should be found in noise-sized window") })
	assert.Equal(t, 0, consumed)
}
