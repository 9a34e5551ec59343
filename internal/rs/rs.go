// Package rs implements a GF(256) Reed-Solomon codec, parameterised the way
// UAT needs it: a shortened RS(255,k) code identified by its number of roots
// and its "pad" (the count of virtual leading zero data symbols that make
// the code shorter than 255 bytes).
//
// The Galois-field construction and table layout follow Phil Karn's classic
// rs.c, the same codec dump978 itself depends on; this port generalises the
// fixed three-tag table found in the FX.25/IL2P codecs in the reference
// corpus (github.com/doismellburning/samoyed, src/fx25_init.go) to the three
// (nroots, pad) pairs UAT uses instead of FX.25's fixed tag set.
package rs

// a0 is the log-of-zero sentinel, conventionally nn (the highest valid log
// index is nn-1).
const a0 = 255

// Codec is a configured GF(256) Reed-Solomon codec instance. A Codec is
// immutable after construction and safe to share across goroutines.
type Codec struct {
	nn      int // 2^mm - 1, fixed at 255 for symsize 8
	alphaTo []byte
	indexOf []byte
	genPoly []byte
	fcr     int
	prim    int
	iprim   int
	nroots  int
	pad     int
}

// New constructs a Reed-Solomon codec over GF(256) with the given field
// generator polynomial, first consecutive root (fcr), primitive element
// power (prim), number of parity roots, and pad (the number of virtual
// leading zero bytes that shorten the code from a full RS(255, 255-nroots)).
func New(gfPoly, fcr, prim, nroots, pad int) *Codec {
	const symsize = 8
	nn := (1 << symsize) - 1

	c := &Codec{
		nn:      nn,
		alphaTo: make([]byte, nn+1),
		indexOf: make([]byte, nn+1),
		fcr:     fcr,
		prim:    prim,
		nroots:  nroots,
		pad:     pad,
	}

	// Generate the Galois field log/antilog tables.
	c.indexOf[0] = byte(nn) // log(0) = -inf, represented as a0
	c.alphaTo[nn] = 0
	sr := 1
	for i := 0; i < nn; i++ {
		c.indexOf[sr] = byte(i)
		c.alphaTo[i] = byte(sr)
		sr <<= 1
		if sr&(1<<symsize) != 0 {
			sr ^= gfPoly
		}
		sr &= nn
	}
	if sr != 1 {
		panic("rs: field generator polynomial is not primitive")
	}

	// Find prim-th root of 1, used during decoding.
	iprim := 1
	for (iprim % prim) != 0 {
		iprim += nn
	}
	c.iprim = iprim / prim

	// Form the RS code generator polynomial from its roots, in index form.
	c.genPoly = make([]byte, nroots+1)
	c.genPoly[0] = 1
	root := fcr * prim
	for i := 0; i < nroots; i++ {
		c.genPoly[i+1] = 1
		for j := i; j > 0; j-- {
			if c.genPoly[j] != 0 {
				c.genPoly[j] = c.genPoly[j-1] ^ c.alphaTo[c.modNN(int(c.indexOf[c.genPoly[j]])+root)]
			} else {
				c.genPoly[j] = c.genPoly[j-1]
			}
		}
		c.genPoly[0] = c.alphaTo[c.modNN(int(c.indexOf[c.genPoly[0]])+root)]
		root += prim
	}
	for i := range c.genPoly {
		c.genPoly[i] = c.indexOf[c.genPoly[i]]
	}

	return c
}

func (c *Codec) modNN(x int) int {
	for x >= c.nn {
		x -= c.nn
		x = (x >> 8) + (x & c.nn)
	}
	return x
}

// N returns the codeword length (data+parity bytes) this codec decodes.
func (c *Codec) N() int { return c.nn - c.pad }

// K returns the number of data bytes in a codeword (N minus parity roots).
func (c *Codec) K() int { return c.N() - c.nroots }

// Encode computes the nroots parity bytes for data (length K()) and returns
// them; the caller appends them to form a codeword of length N().
func (c *Codec) Encode(data []byte) []byte {
	if len(data) != c.K() {
		panic("rs: Encode: wrong data length")
	}

	parity := make([]byte, c.nroots)
	for i := 0; i < c.K(); i++ {
		feedback := c.indexOf[data[i]^parity[0]]
		if feedback != a0 {
			for j := 1; j < c.nroots; j++ {
				parity[j] ^= c.alphaTo[c.modNN(int(feedback)+int(c.genPoly[c.nroots-j]))]
			}
		}
		copy(parity, parity[1:])
		if feedback != a0 {
			parity[c.nroots-1] = c.alphaTo[c.modNN(int(feedback)+int(c.genPoly[0]))]
		} else {
			parity[c.nroots-1] = 0
		}
	}
	return parity
}

// Decode corrects data (length N()) in place using Berlekamp-Massey and
// Chien search / Forney. It returns the number of corrected symbols and
// true, or leaves data unmodified and returns (0, false) if the codeword is
// uncorrectable. No correction is written until every located error has
// been checked, so a failed decode never leaves data half corrected.
func (c *Codec) Decode(data []byte) (int, bool) {
	if len(data) != c.N() {
		panic("rs: Decode: wrong data length")
	}

	nroots := c.nroots
	lambda := make([]int, nroots+1) // index form once converted
	b := make([]int, nroots+1)
	t := make([]int, nroots+1)
	s := make([]byte, nroots) // syndromes, poly form then index form

	// Form the syndromes: evaluate data(x) at the roots of g(x).
	for i := 0; i < nroots; i++ {
		s[i] = data[0]
	}
	for j := 1; j < c.N(); j++ {
		for i := 0; i < nroots; i++ {
			if s[i] == 0 {
				s[i] = data[j]
			} else {
				s[i] = data[j] ^ c.alphaTo[c.modNN(int(c.indexOf[s[i]])+(c.fcr+i)*c.prim)]
			}
		}
	}

	syndromeIdx := make([]int, nroots)
	syndromeNonzero := false
	for i := 0; i < nroots; i++ {
		if s[i] != 0 {
			syndromeNonzero = true
		}
		syndromeIdx[i] = int(c.indexOf[s[i]])
	}
	if !syndromeNonzero {
		return 0, true
	}

	lambdaPoly := make([]byte, nroots+1)
	lambdaPoly[0] = 1
	for i := 0; i <= nroots; i++ {
		b[i] = int(c.indexOf[lambdaPoly[i]])
	}

	el := 0
	r := 0
	for {
		r++
		if r > nroots {
			break
		}
		var discrR int
		for i := 0; i < r; i++ {
			if lambdaPoly[i] != 0 && syndromeIdx[r-i-1] != a0 {
				discrR ^= int(c.alphaTo[c.modNN(int(c.indexOf[lambdaPoly[i]])+syndromeIdx[r-i-1])])
			}
		}
		discrRIdx := int(c.indexOf[byte(discrR)])
		if discrRIdx == a0 {
			copy(b[1:], b[:nroots])
			b[0] = a0
		} else {
			t[0] = int(lambdaPoly[0])
			for i := 0; i < nroots; i++ {
				if b[i] != a0 {
					t[i+1] = int(lambdaPoly[i+1]) ^ int(c.alphaTo[c.modNN(discrRIdx+b[i])])
				} else {
					t[i+1] = int(lambdaPoly[i+1])
				}
			}
			if 2*el <= r-1 {
				el = r - el
				for i := 0; i <= nroots; i++ {
					if lambdaPoly[i] == 0 {
						b[i] = a0
					} else {
						b[i] = c.modNN(int(c.indexOf[lambdaPoly[i]]) - discrRIdx + c.nn)
					}
				}
			} else {
				copy(b[1:], b[:nroots])
				b[0] = a0
			}
			for i := range lambdaPoly {
				lambdaPoly[i] = byte(t[i])
			}
		}
	}

	// Convert lambda to index form and find its degree.
	degLambda := 0
	for i := 0; i <= nroots; i++ {
		lambda[i] = int(c.indexOf[lambdaPoly[i]])
		if lambda[i] != a0 {
			degLambda = i
		}
	}

	// Chien search for the roots of the error locator polynomial.
	reg := make([]int, nroots+1)
	copy(reg[1:], lambda[1:nroots+1])
	root := make([]int, nroots)
	loc := make([]int, nroots)
	count := 0
	k := c.iprim - 1
	for i := 1; i <= c.nn; i++ {
		q := 1
		for j := degLambda; j > 0; j-- {
			if reg[j] != a0 {
				reg[j] = c.modNN(reg[j] + j)
				q ^= int(c.alphaTo[reg[j]])
			}
		}
		if q == 0 {
			root[count] = i
			loc[count] = k
			count++
			if count == degLambda {
				break
			}
		}
		k = c.modNN(k + c.iprim)
	}
	if degLambda != count {
		return 0, false // uncorrectable: too many errors detected
	}

	// Compute the error evaluator polynomial omega(x) = s(x)*lambda(x) mod x^nroots.
	omega := make([]int, nroots+1)
	degOmega := 0
	for i := 0; i < nroots; i++ {
		var tmp byte
		jMax := degLambda
		if i < jMax {
			jMax = i
		}
		for j := jMax; j >= 0; j-- {
			if syndromeIdx[i-j] != a0 && lambda[j] != a0 {
				tmp ^= c.alphaTo[c.modNN(syndromeIdx[i-j]+lambda[j])]
			}
		}
		if tmp != 0 {
			degOmega = i
		}
		omega[i] = int(c.indexOf[tmp])
	}
	omega[nroots] = a0

	// Compute error magnitudes via Forney's algorithm; apply them in place
	// only after all of them have been found.
	fix := make([]byte, count)
	for j := count - 1; j >= 0; j-- {
		var num1 byte
		for i := degOmega; i >= 0; i-- {
			if omega[i] != a0 {
				num1 ^= c.alphaTo[c.modNN(omega[i]+i*root[j])]
			}
		}
		num2 := c.alphaTo[c.modNN(root[j]*(c.fcr-1)+c.nn)]

		var den byte
		iStart := degLambda
		if iStart > nroots-1 {
			iStart = nroots - 1
		}
		iStart &^= 1
		for i := iStart; i >= 0; i -= 2 {
			if lambda[i+1] != a0 {
				den ^= c.alphaTo[c.modNN(lambda[i+1]+i*root[j])]
			}
		}
		if den == 0 {
			return 0, false // could not evaluate an error magnitude
		}

		pos := loc[j] - c.pad
		if num1 != 0 {
			if pos < 0 || pos >= len(data) {
				return 0, false // error located in the unsent virtual padding
			}
			fix[j] = c.alphaTo[c.modNN(int(c.indexOf[num1])+int(c.indexOf[num2])+c.nn-int(c.indexOf[den]))]
		}
	}
	for j := 0; j < count; j++ {
		if fix[j] != 0 {
			data[loc[j]-c.pad] ^= fix[j]
		}
	}

	return count, true
}
