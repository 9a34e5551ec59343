package demod

import (
	"io"

	"github.com/zaitcev/dump978/internal/phase"
)

// ReadChunkBytes is how many raw sample bytes Intake asks the reader for on
// each Fill call. It is sized generously above the per-call carryover a
// Processor ever retains (one uplink frame's worth of phase samples plus
// the unchecked tail of a sync word) so that, once primed, almost every
// byte handed to the reader turns into a phase sample the same call.
const ReadChunkBytes = 131072

// Intake turns a raw stream of interleaved 8-bit I/Q sample bytes into a
// growing window of phase samples, retaining only the carryover a
// Processor could not yet rule in or out as the start of a frame.
//
// Unlike the C original, which reinterprets a byte buffer in place as a
// uint16 buffer, Intake keeps the trailing unpaired I/Q byte (there is at
// most one, when an odd number of bytes has been read) separate from the
// phase sample buffer; this avoids the unsafe pointer aliasing the
// reinterpret-cast trick relies on while preserving the same carryover
// arithmetic.
type Intake struct {
	table *phase.Table

	raw     [ReadChunkBytes]byte
	rawUsed int // 0 or 1: an unpaired trailing I/Q byte held from the previous Fill

	samples  []uint16
	phaseLen int

	offset uint64 // absolute phase-sample index of samples[0]
}

// NewIntake builds an Intake ready to Fill from r.
func NewIntake(table *phase.Table) *Intake {
	// Capacity must cover a full read chunk (as phase samples) plus
	// whatever a Processor can carry over between calls - at most the
	// unchecked tail reserved near the end of its scan, which is bounded
	// by one uplink frame's worth of bits. Doubling UplinkFrameBits
	// leaves ample headroom over that bound.
	capacity := ReadChunkBytes + 2*UplinkFrameBits
	return &Intake{
		table:   table,
		samples: make([]uint16, capacity),
	}
}

// Fill reads up to ReadChunkBytes bytes from r, converts whole I/Q pairs to
// phase samples, and returns the phase window available for processing. It
// returns io.EOF once r is exhausted and no new samples were read.
func (in *Intake) Fill(r io.Reader) ([]uint16, uint64, error) {
	n, err := r.Read(in.raw[in.rawUsed:])
	if n == 0 {
		if err == nil {
			err = io.EOF
		}
		return in.samples[:in.phaseLen], in.offset, err
	}

	total := in.rawUsed + n
	end := total &^ 1 // largest even prefix of the bytes now held

	for i := 0; i < end; i += 2 {
		lo, hi := in.raw[i], in.raw[i+1]
		in.samples[in.phaseLen] = in.table.Angle(lo, hi)
		in.phaseLen++
	}

	if end < total {
		in.raw[0] = in.raw[end]
		in.rawUsed = 1
	} else {
		in.rawUsed = 0
	}

	return in.samples[:in.phaseLen], in.offset, nil
}

// Advance drops the leading 'consumed' phase samples a Processor has fully
// examined, retaining the remainder (and its absolute stream offset) for
// the next Fill.
func (in *Intake) Advance(consumed int) {
	remaining := in.phaseLen - consumed
	copy(in.samples[:remaining], in.samples[consumed:in.phaseLen])
	in.phaseLen = remaining
	in.offset += uint64(consumed)
}
