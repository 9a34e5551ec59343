package demod

import "github.com/zaitcev/dump978/internal/phase"

// checkSyncWord verifies that phi[0:SyncBits*2] carries the 36-bit pattern,
// deriving the bit-slicing threshold from the mean phase difference of the
// pattern's own one- and zero-bits rather than a fixed constant - the signal
// drifts in amplitude and offset between bursts, so a fixed threshold would
// not track it. Returns the derived threshold and whether the sync word
// verified within MaxSyncErrors.
func checkSyncWord(phi []uint16, pattern uint64) (center int16, ok bool) {
	var dphiZeroTotal, dphiOneTotal int32
	var zeroBits, oneBits int

	for i := 0; i < SyncBits; i++ {
		dphi := phase.Difference(phi[i*2], phi[i*2+1])
		if pattern&(1<<(SyncBits-1-i)) != 0 {
			oneBits++
			dphiOneTotal += int32(dphi)
		} else {
			zeroBits++
			dphiZeroTotal += int32(dphi)
		}
	}

	dphiZeroTotal /= int32(zeroBits)
	dphiOneTotal /= int32(oneBits)
	center = int16((dphiOneTotal + dphiZeroTotal) / 2)

	errorBits := 0
	for i := 0; i < SyncBits; i++ {
		dphi := phase.Difference(phi[i*2], phi[i*2+1])
		if pattern&(1<<(SyncBits-1-i)) != 0 {
			if dphi < center {
				errorBits++
			}
		} else {
			if dphi >= center {
				errorBits++
			}
		}
	}

	return center, errorBits <= MaxSyncErrors
}

// demodFrame bit-slices 'bytes' bytes (8 bits each, 2 phase samples per bit)
// starting at phi[0], using centerDphi as the one/zero threshold, into
// frame. frame must have length >= bytes.
func demodFrame(phi []uint16, frame []byte, bytes int, centerDphi int16) {
	for i := 0; i < bytes; i++ {
		p := phi[i*16:]
		var b byte
		if phase.Difference(p[0], p[1]) > centerDphi {
			b |= 0x80
		}
		if phase.Difference(p[2], p[3]) > centerDphi {
			b |= 0x40
		}
		if phase.Difference(p[4], p[5]) > centerDphi {
			b |= 0x20
		}
		if phase.Difference(p[6], p[7]) > centerDphi {
			b |= 0x10
		}
		if phase.Difference(p[8], p[9]) > centerDphi {
			b |= 0x08
		}
		if phase.Difference(p[10], p[11]) > centerDphi {
			b |= 0x04
		}
		if phase.Difference(p[12], p[13]) > centerDphi {
			b |= 0x02
		}
		if phase.Difference(p[14], p[15]) > centerDphi {
			b |= 0x01
		}
		frame[i] = b
	}
}

// noSyncRSErrors is the sentinel magnitude used where the original reports
// "9999" for a failed demodulation - large enough that it never wins a
// rs_0 <= rs_1 comparison against a genuine correction count.
const noSyncRSErrors = 9999

// demodADSBFrame demodulates a downlink (ADS-B Long UAT or Basic UAT) frame
// with its first sync bit at phi[0]. It tries the long frame layout first
// and falls back to the short layout, matching the accept thresholds the
// reference decoder uses (at most 7 corrected symbols for a long frame, 6
// for a short one) and cross-checking the payload type bits so a
// marginally-correctable long frame is never accepted where the type byte
// only makes sense as a short one, or vice versa.
//
// Returns the recovered data bytes (ShortFrameDataBytes or
// LongFrameDataBytes long), the number of RS-corrected symbols, the number
// of bits consumed from phi, and whether demodulation succeeded.
func demodADSBFrame(phi []uint16, codecs *Codecs) (data []byte, rsErrors int, bits int, ok bool) {
	center, syncOK := checkSyncWord(phi, ADSBSyncWord)
	if !syncOK {
		return nil, noSyncRSErrors, 0, false
	}

	buf := make([]byte, LongFrameBytes)
	demodFrame(phi[SyncBits*2:], buf, LongFrameBytes, center)

	// Long UAT: decode a copy, so buf still holds the demodulated bytes for
	// the Basic UAT retry below even when the long decode corrects a
	// codeword that is then rejected.
	long := append([]byte(nil), buf...)
	if n, correctable := codecs.Long.Decode(long); correctable && n <= 7 && (long[0]>>3) != 0 {
		return long[:LongFrameDataBytes], n, SyncBits + LongFrameBits, true
	}

	short := append([]byte(nil), buf[:ShortFrameBytes]...)
	if n, correctable := codecs.Short.Decode(short); correctable && n <= 6 && (short[0]>>3) == 0 {
		return short[:ShortFrameDataBytes], n, SyncBits + ShortFrameBits, true
	}

	return nil, noSyncRSErrors, 0, false
}

// demodUplinkFrame demodulates an uplink frame with its first sync bit at
// phi[0]. The six interleaved blocks are de-interleaved and each is
// Reed-Solomon corrected independently; the whole frame is rejected if any
// block needs more than 10 corrections.
//
// Returns the recovered data (UplinkFrameDataBytes long), the total number
// of corrected symbols across all blocks, the number of bits consumed, and
// whether demodulation succeeded.
func demodUplinkFrame(phi []uint16, codecs *Codecs) (data []byte, rsErrors int, bits int, ok bool) {
	center, syncOK := checkSyncWord(phi, UplinkSyncWord)
	if !syncOK {
		return nil, noSyncRSErrors, 0, false
	}

	interleaved := make([]byte, UplinkFrameBytes)
	demodFrame(phi[SyncBits*2:], interleaved, UplinkFrameBytes, center)

	out := make([]byte, UplinkFrameBytes)
	totalCorrected := 0
	for block := 0; block < UplinkFrameBlocks; block++ {
		blockData := out[block*UplinkBlockDataBytes : block*UplinkBlockDataBytes+UplinkBlockBytes]
		for i := 0; i < UplinkBlockBytes; i++ {
			blockData[i] = interleaved[i*UplinkFrameBlocks+block]
		}

		n, correctable := codecs.Uplink.Decode(blockData)
		if !correctable || n > 10 {
			return nil, noSyncRSErrors, 0, false
		}
		totalCorrected += n
	}

	return out[:UplinkFrameDataBytes], totalCorrected, UplinkFrameBits + SyncBits, true
}
