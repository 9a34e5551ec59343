package demod

import "github.com/zaitcev/dump978/internal/rs"

// Codecs bundles the three Reed-Solomon parameterizations a UAT frame can
// be protected by: short and long downlink (ADS-B/Basic UAT) frames, and a
// single uplink block. All three share the field polynomial 0x187, fcr=120
// and prim=1; only the root count and pad vary.
type Codecs struct {
	Short  *rs.Codec
	Long   *rs.Codec
	Uplink *rs.Codec
}

// NewCodecs builds the three codecs once; a Processor holds a single
// Codecs value for its lifetime.
func NewCodecs() *Codecs {
	return &Codecs{
		Short:  rs.New(adsbGFPoly, rsFCR, rsPrim, shortNRoots, shortPad),
		Long:   rs.New(adsbGFPoly, rsFCR, rsPrim, longNRoots, longPad),
		Uplink: rs.New(uplinkGFPoly, rsFCR, rsPrim, uplinkNRoots, uplinkPad),
	}
}
