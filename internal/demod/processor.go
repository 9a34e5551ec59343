package demod

import (
	"github.com/sirupsen/logrus"

	"github.com/zaitcev/dump978/internal/phase"
)

// Frame is a single demodulated and Reed-Solomon-corrected UAT frame, ready
// for the sink to format. Offset is the phase-sample offset of the frame's
// first sync bit from the start of the stream.
type Frame struct {
	Uplink   bool
	Data     []byte
	RSErrors int
	Offset   uint64
}

// Processor runs the sliding sync-word correlator over a window of phase
// samples and demodulates whatever downlink or uplink frames it finds.
// A Processor is stateless between calls other than its statistics
// counters: every invariant it needs (candidate sync positions, frame
// buffers) lives in the phase window passed to Process, matching the
// "no state carried between calls" property the reference decoder relies
// on to avoid ever re-entering a partially examined sync word.
type Processor struct {
	codecs *Codecs
	logger *logrus.Logger

	syncCandidates uint64
	adsbFrames     uint64
	uplinkFrames   uint64
	rsErrorsTotal  uint64
}

// NewProcessor creates a Processor bound to a fixed set of Reed-Solomon
// codecs. The phase table lives in the caller's intake stage, not here -
// Process only ever sees samples already converted to phase.
func NewProcessor(codecs *Codecs, logger *logrus.Logger) *Processor {
	return &Processor{codecs: codecs, logger: logger}
}

// Process scans phi (of length len(phi) phase samples, offset being the
// stream-absolute sample index of phi[0]) for sync words, demodulating and
// emitting any frame it finds via emit. It returns the number of leading
// samples of phi that are fully consumed and may be dropped by the caller;
// the remainder must be represented again (with more data appended) on the
// next call, since it may be the start of a sync word this call couldn't
// yet rule in or out.
func (p *Processor) Process(phi []uint16, offset uint64, emit func(Frame)) int {
	var sync0, sync1 uint64

	tailReserve := (SyncBits - CheckBits) + UplinkFrameBits
	lenbits := len(phi)/2 - tailReserve
	if lenbits <= CheckBits {
		return 0
	}

	bit := 0
	for ; bit < lenbits; bit++ {
		dphi0 := phase.Difference(phi[bit*2], phi[bit*2+1])
		dphi1 := phase.Difference(phi[bit*2+1], phi[bit*2+2])

		sync0 = (sync0 << 1)
		if dphi0 > 0 {
			sync0 |= 1
		}
		sync1 = (sync1 << 1)
		if dphi1 > 0 {
			sync1 |= 1
		}

		if bit < CheckBits {
			continue
		}

		matchADSB0 := sync0&checkMask == checkADSB
		matchADSB1 := sync1&checkMask == checkADSB
		if matchADSB0 || matchADSB1 {
			p.syncCandidates++
			p.logStats()
			startbit := bit - CheckBits + 1
			shift := 0
			if !matchADSB0 {
				shift = 1
			}
			index := startbit*2 + shift

			data0, rs0, skip0, ok0 := p.tryADSB(phi, index)
			data1, rs1, skip1, ok1 := p.tryADSB(phi, index+1)

			switch {
			case ok0 && rs0 <= rs1:
				p.recordADSB(rs0)
				emit(Frame{Data: data0, RSErrors: rs0, Offset: offset + uint64(index)})
				bit = startbit + skip0
				continue
			case ok1 && rs1 <= rs0:
				p.recordADSB(rs1)
				emit(Frame{Data: data1, RSErrors: rs1, Offset: offset + uint64(index+1)})
				bit = startbit + skip1
				continue
			}
			continue
		}

		matchUplink0 := sync0&checkMask == checkUplink
		matchUplink1 := sync1&checkMask == checkUplink
		if matchUplink0 || matchUplink1 {
			p.syncCandidates++
			p.logStats()
			startbit := bit - CheckBits + 1
			shift := 0
			if !matchUplink0 {
				shift = 1
			}
			index := startbit*2 + shift

			data0, rs0, skip0, ok0 := p.tryUplink(phi, index)
			data1, rs1, skip1, ok1 := p.tryUplink(phi, index+1)

			switch {
			case ok0 && rs0 <= rs1:
				p.recordUplink(rs0)
				emit(Frame{Uplink: true, Data: data0, RSErrors: rs0, Offset: offset + uint64(index)})
				bit = startbit + skip0
				continue
			case ok1 && rs1 <= rs0:
				p.recordUplink(rs1)
				emit(Frame{Uplink: true, Data: data1, RSErrors: rs1, Offset: offset + uint64(index+1)})
				bit = startbit + skip1
				continue
			}
		}
	}

	return (bit - CheckBits) * 2
}

// tryADSB runs demodADSBFrame at index, unless the window doesn't hold
// enough samples past index for any possible frame length - an out-of-range
// read here would panic against a real slice, unlike the C original's
// always-oversized static buffer.
func (p *Processor) tryADSB(phi []uint16, index int) (data []byte, rsErrors, skip int, ok bool) {
	if index+demodSamplesNeeded > len(phi) {
		return nil, noSyncRSErrors, 0, false
	}
	return demodADSBFrame(phi[index:], p.codecs)
}

// tryUplink is tryADSB's uplink counterpart.
func (p *Processor) tryUplink(phi []uint16, index int) (data []byte, rsErrors, skip int, ok bool) {
	if index+demodSamplesNeeded > len(phi) {
		return nil, noSyncRSErrors, 0, false
	}
	return demodUplinkFrame(phi[index:], p.codecs)
}

func (p *Processor) recordADSB(rsErrors int) {
	p.adsbFrames++
	p.rsErrorsTotal += uint64(rsErrors)
}

func (p *Processor) recordUplink(rsErrors int) {
	p.uplinkFrames++
	p.rsErrorsTotal += uint64(rsErrors)
}

// logStats emits a periodic running-total line every 1000 sync candidates,
// the way the teacher's application loop logs I/Q packet/sample counters
// every 100 packets.
func (p *Processor) logStats() {
	if p.logger == nil || p.syncCandidates%1000 != 0 {
		return
	}
	p.logger.WithFields(logrus.Fields{
		"sync_candidates": p.syncCandidates,
		"adsb_frames":     p.adsbFrames,
		"uplink_frames":   p.uplinkFrames,
		"rs_errors_total": p.rsErrorsTotal,
	}).Debug("processor stats")
}

// Stats returns cumulative counters for periodic logging.
func (p *Processor) Stats() (syncCandidates, adsbFrames, uplinkFrames, rsErrorsTotal uint64) {
	return p.syncCandidates, p.adsbFrames, p.uplinkFrames, p.rsErrorsTotal
}
