package dfloat

import "math/bits"

// fint (Fast INTeger) is a wrapper around uint64.
type fint uint64

// pow10 is a cache of powers of 10, where pow10[x] = 10^x.
var pow10 = [...]fint{
	1,                          // 10^0
	10,                         // 10^1
	100,                        // 10^2
	1_000,                      // 10^3
	10_000,                     // 10^4
	100_000,                    // 10^5
	1_000_000,                  // 10^6
	10_000_000,                 // 10^7
	100_000_000,                // 10^8
	1_000_000_000,              // 10^9
	10_000_000_000,             // 10^10
	100_000_000_000,            // 10^11
	1_000_000_000_000,          // 10^12
	10_000_000_000_000,         // 10^13
	100_000_000_000_000,        // 10^14
	1_000_000_000_000_000,      // 10^15
	10_000_000_000_000_000,     // 10^16
	100_000_000_000_000_000,    // 10^17
	1_000_000_000_000_000_000,  // 10^18
	10_000_000_000_000_000_000, // 10^19
}

func (x fint) isOdd() bool {
	return x&1 != 0
}

// hasPrec returns true if x has given number of digits or more.
// hasPrec assumes that 0 has no digits.
func (x fint) hasPrec(prec int) bool {
	// Special cases
	switch {
	case prec < 1:
		return true
	case prec > len(pow10):
		return false
	}
	// General case
	return x >= pow10[prec-1]
}

// wint (Wide INTeger) is a fixed-width 192-bit unsigned integer used
// for intermediate mantissa arithmetic. Mantissas are at most sixteen
// digits at rest, but aligned sums, full-width products, and the
// guard-digit scaling done by division and square root produce up to
// thirty-seven digits, and the power table below holds forty-eight.
type wint struct {
	hi, mid, lo uint64
}

// powerTableLen is three times the format width, so no product of two
// full-width mantissas plus guard digits can run off the end of the
// table.
const powerTableLen = 48

// pow10w and half10w are caches of powers of 10 and their halves,
// where pow10w[x] = 10^x and half10w[x] = 10^x / 2. The halves serve
// as rounding-tie midpoints; half10w[0] is 1 because a zero-digit
// truncation has no tie to break. Both tables are built before first
// use and never mutated.
var pow10w, half10w = newPowerTables()

func newPowerTables() (p, h [powerTableLen]wint) {
	p[0] = wint{lo: 1}
	h[0] = wint{lo: 1}
	for i := 1; i < powerTableLen; i++ {
		p[i], _ = p[i-1].mulFint(10)
		h[i], _ = p[i-1].mulFint(5)
	}
	return p, h
}

func wintFromFint(x fint) wint {
	return wint{lo: uint64(x)}
}

// mul64 calculates x * y exactly.
func mul64(x, y fint) wint {
	hi, lo := bits.Mul64(uint64(x), uint64(y))
	return wint{mid: hi, lo: lo}
}

// fint converts x to uint64.
// If x cannot be represented as uint64, the result is undefined.
func (x wint) fint() fint {
	return fint(x.lo)
}

func (x wint) isZero() bool {
	return x.hi == 0 && x.mid == 0 && x.lo == 0
}

func (x wint) bitLen() int {
	switch {
	case x.hi != 0:
		return 128 + bits.Len64(x.hi)
	case x.mid != 0:
		return 64 + bits.Len64(x.mid)
	}
	return bits.Len64(x.lo)
}

func (x wint) cmp(y wint) int {
	switch {
	case x.hi != y.hi:
		if x.hi < y.hi {
			return -1
		}
		return 1
	case x.mid != y.mid:
		if x.mid < y.mid {
			return -1
		}
		return 1
	case x.lo != y.lo:
		if x.lo < y.lo {
			return -1
		}
		return 1
	}
	return 0
}

// add calculates x + y.
// Callers keep both operands within the power table range,
// so the sum cannot wrap.
func (x wint) add(y wint) (z wint) {
	var c uint64
	z.lo, c = bits.Add64(x.lo, y.lo, 0)
	z.mid, c = bits.Add64(x.mid, y.mid, c)
	z.hi, _ = bits.Add64(x.hi, y.hi, c)
	return z
}

// sub calculates x - y.
// Callers guarantee x >= y.
func (x wint) sub(y wint) (z wint) {
	var b uint64
	z.lo, b = bits.Sub64(x.lo, y.lo, 0)
	z.mid, b = bits.Sub64(x.mid, y.mid, b)
	z.hi, _ = bits.Sub64(x.hi, y.hi, b)
	return z
}

// dist calculates abs(x - y).
func (x wint) dist(y wint) wint {
	if x.cmp(y) < 0 {
		return y.sub(x)
	}
	return x.sub(y)
}

// mulFint calculates x * y and checks overflow.
func (x wint) mulFint(y fint) (z wint, ok bool) {
	h0, l0 := bits.Mul64(x.lo, uint64(y))
	h1, l1 := bits.Mul64(x.mid, uint64(y))
	h2, l2 := bits.Mul64(x.hi, uint64(y))
	var c uint64
	z.lo = l0
	z.mid, c = bits.Add64(l1, h0, 0)
	z.hi, c = bits.Add64(l2, h1, c)
	if h2 != 0 || c != 0 {
		return wint{}, false
	}
	return z, true
}

// lsh (Left Shift) calculates x * 10^shift and checks overflow.
func (x wint) lsh(shift int) (z wint, ok bool) {
	z = x
	for shift >= len(pow10) {
		z, ok = z.mulFint(pow10[len(pow10)-1])
		if !ok {
			return wint{}, false
		}
		shift -= len(pow10) - 1
	}
	return z.mulFint(pow10[shift])
}

// fsa (Fused Shift and Addition) calculates x * 10^shift + b.
// Callers keep x small enough that neither step can overflow.
func (x wint) fsa(shift int, b byte) wint {
	z, _ := x.lsh(shift)
	return z.add(wintFromFint(fint(b)))
}

// quoRem64 calculates q = x / y and r = x % y.
// y must not be zero.
func (x wint) quoRem64(y fint) (q wint, r fint) {
	d := uint64(y)
	rem := x.hi % d
	q.hi = x.hi / d
	q.mid, rem = bits.Div64(rem, x.mid, d)
	q.lo, rem = bits.Div64(rem, x.lo, d)
	return q, fint(rem)
}

// quoRemPow10 calculates q = x / 10^shift and r = x % 10^shift.
// shift must be within the fint power table.
func (x wint) quoRemPow10(shift int) (q, r wint) {
	q, rem := x.quoRem64(pow10[shift])
	return q, wintFromFint(rem)
}

// prec returns length of x in decimal digits.
// prec assumes that 0 has no digits.
func (x wint) prec() int {
	if x.isZero() {
		return 0
	}
	// 617/2048 approximates 1/log2(10). The estimate can be short by
	// exactly one near powers of ten; the table comparison makes it
	// exact for every value the table covers.
	r := (x.bitLen() * 617) >> 11
	if r < powerTableLen && x.cmp(pow10w[r]) >= 0 {
		return r + 1
	}
	return r
}
