package demod

// Sync words and frame geometry, as broadcast by the UAT physical layer.
// Values and names mirror the public UAT standard tables this demodulator
// is built against, with one exception: ADSBSyncWord differs from the value
// dump978 uses (DESIGN.md explains why).
const (
	SyncBits = 36

	ADSBSyncWord   = 0x0EACDDA4E
	UplinkSyncWord = 0x153225B1D

	// CheckBits is how many leading bits of the 36-bit sync word the
	// correlator matches before trying a full demodulation. 18 is the
	// tradeoff dump978 settled on: fewer false positives than a short
	// prefix, more marginal frames recovered than a full 36-bit match.
	CheckBits = 18
	checkMask = (1 << CheckBits) - 1

	// MaxSyncErrors is the greatest number of bit errors tolerated when
	// re-validating a sync word against its adaptively derived threshold.
	MaxSyncErrors = 2

	ShortFrameDataBytes = 18
	ShortFrameBytes     = 30
	ShortFrameBits      = ShortFrameBytes * 8

	LongFrameDataBytes = 34
	LongFrameBytes     = 48
	LongFrameBits      = LongFrameBytes * 8

	UplinkFrameBlocks     = 6
	UplinkBlockDataBytes  = 72
	UplinkBlockBytes      = 92
	UplinkFrameDataBytes  = UplinkFrameBlocks * UplinkBlockDataBytes
	UplinkFrameBytes      = UplinkFrameBlocks * UplinkBlockBytes
	UplinkFrameBits       = UplinkFrameBytes * 8

	// demodSamplesNeeded is the most phase samples a speculative demod can
	// read starting at a sync candidate's first bit: sync word plus the
	// largest frame type (uplink), at two samples per bit. The uplink
	// bound covers ADS-B candidates too since both frame types are
	// smaller. A candidate without this many samples left in the window
	// is skipped rather than risked, since Go (unlike the C original's
	// oversized static buffer) bounds-checks slice reads.
	demodSamplesNeeded = (SyncBits + UplinkFrameBits) * 2
)

// Reed-Solomon codec parameters for the three frame kinds that can follow a
// sync word. The ADS-B and uplink field polynomials are the same value.
const (
	adsbGFPoly   = 0x187
	uplinkGFPoly = 0x187
	rsFCR        = 120
	rsPrim       = 1

	shortNRoots = 12
	shortPad    = 225

	longNRoots = 14
	longPad    = 207

	uplinkNRoots = 20
	uplinkPad    = 163
)

// checkADSB and checkUplink are the leading CheckBits of each sync word,
// used for the fast correlator comparison before a full frame attempt.
const (
	checkADSB   = ADSBSyncWord >> (SyncBits - CheckBits)
	checkUplink = UplinkSyncWord >> (SyncBits - CheckBits)
)
