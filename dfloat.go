package dfloat

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Num is a decimal floating-point number with sixteen significant
// digits. The zero value of Num is the numeric value of 0, and Num
// values can be compared with ==, as the canonical form of every
// value is unique.
type Num struct {
	neg  bool  // indicates whether the number is negative
	exp  int16 // decimal exponent of the leading mantissa digit
	mant fint  // the sixteen-digit mantissa
}

const (
	// Digits is the number of significant decimal digits in a nonzero Num.
	Digits = 16

	// MaxExp and MinExp bound the decimal exponent of the leading
	// digit of a finite Num.
	MaxExp = 255
	MinExp = -MaxExp

	// expUndef is the reserved exponent that tags Undefined.
	// It also acts as the effective exponent of zero during
	// alignment, so adding zero never shifts digits out of the
	// other operand.
	expUndef = MinExp - 1

	maxMant = fint(9_999_999_999_999_999) // 10^Digits - 1
)

var (
	Zero      = Num{}              // 0
	One       = MustParse("1")     // 1
	Two       = MustParse("2")     // 2
	NegOne    = MustParse("-1")    // -1
	Undefined = Num{exp: expUndef} // result of operations with no valid numeric answer

	Tau    = MustParse("6.283185307179586") // circle constant, 2π
	Pi     = MustParse("3.141592653589793") // π
	HalfPi = MustParse("1.570796326794897") // π/2
	E      = MustParse("2.718281828459045") // base of natural logarithms
)

// ErrNotImplemented is returned by operations that are part of the
// numeric interface but have no algorithm in this package. It is
// deliberately distinct from Undefined: Undefined means the inputs
// have no valid numeric result, ErrNotImplemented means the
// capability does not exist regardless of inputs.
var ErrNotImplemented = errors.New("not implemented")

var (
	errInvalidLiteral = errors.New("invalid number literal")
	errExponentRange  = errors.New("exponent out of range")
)

// pack constructs a canonical Num from a raw magnitude and exponent.
// expected is the number of digits the caller assumes the magnitude
// to have; the difference between the actual and the expected digit
// count adjusts the exponent, which is how a carry such as 9 + 1 = 10
// bumps the scale. mant is rounded to sixteen digits using half-to-even
// rule. Underflow flushes to Zero, overflow saturates to Undefined.
// pack is the only constructor of nonzero values in the package.
func pack(neg bool, mant wint, exp, expected int) Num {
	prec := mant.prec()
	var m fint
	if excess := prec - Digits; excess > 0 {
		q, r := mant.quoRemPow10(excess)
		m = q.fint()
		switch r.cmp(half10w[excess]) {
		case 1:
			m++
		case 0:
			// half-to-even
			if m.isOdd() {
				m++
			}
		}
		if m > maxMant {
			// Rounding carried into a seventeenth digit.
			last := m % 10
			m /= 10
			if last > 5 || (last == 5 && m.isOdd()) {
				m++
			}
			exp++
		}
	} else {
		m = mant.fint() * pow10[-excess]
	}
	exp += prec - expected
	switch {
	case m == 0, exp < MinExp:
		return Zero
	case exp > MaxExp:
		return Undefined
	}
	return Num{neg: neg, exp: int16(exp), mant: m}
}

// Make returns a (possibly rounded) Num from a raw mantissa, the
// decimal exponent of its leading digit, and the digit count the
// mantissa is expected to have. A surplus or deficit of actual digits
// over expected digits shifts the exponent accordingly.
//
// Make normalizes, rounds, flushes underflow to Zero, and saturates
// overflow to Undefined; it never returns a non-canonical value.
func Make(mantissa int64, exponent, expected int) Num {
	neg := mantissa < 0
	mag := uint64(mantissa)
	if neg {
		mag = -mag
	}
	return pack(neg, wintFromFint(fint(mag)), exponent, expected)
}

// New returns a Num equal to mantissa * 10^exp.
//
// New rounds the result if mantissa has more than [Digits] digits.
func New(mantissa int64, exp int) Num {
	neg := mantissa < 0
	mag := uint64(mantissa)
	if neg {
		mag = -mag
	}
	w := wintFromFint(fint(mag))
	prec := w.prec()
	return pack(neg, w, exp+prec-1, prec)
}

// NewFromFloat64 converts a float64 to a (possibly rounded) Num.
// NaN and infinities convert to Undefined.
func NewFromFloat64(f float64) Num {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Undefined
	}
	n, err := Parse(strconv.FormatFloat(f, 'e', -1, 64))
	if err != nil {
		return Undefined
	}
	return n
}

// Parse converts a string to a (possibly rounded) Num.
// The input must be in one of the following formats:
//
//	1.234
//	-1234
//	+0.000001234
//	1.83e5
//	0.22e-9
//	Undefined
//
// The formal EBNF grammar for the supported format is as follows:
//
//	sign           ::= '+' | '-'
//	digits         ::= { '0' | '1' | '2' | '3' | '4' | '5' | '6' | '7' | '8' | '9' }
//	significand    ::= digits '.' digits | digits
//	exponent       ::= [ 'e' | 'E' ] [ sign ] digits
//	numeric-string ::= [ sign ] significand [ exponent ] | 'Undefined'
//
// Out-of-range magnitudes are not an error: they flush to Zero or
// saturate to Undefined like any other arithmetic result. Exponent
// literals longer than four digits are rejected.
func Parse(s string) (Num, error) {
	if s == "Undefined" {
		return Undefined, nil
	}
	var (
		pos          int
		width        = len(s)
		neg, eneg    bool
		coef         wint
		hascoef      bool
		sig          int // significant digits accumulated in coef
		frac         int // digits seen after the decimal point
		drop         int // integer digits beyond the accumulation cap
		sticky       bool
		exp          int
		hase, hasexp bool
	)

	// Sign
	switch {
	case pos == width:
		// skip
	case s[pos] == '-':
		neg = true
		pos++
	case s[pos] == '+':
		pos++
	}

	// Integer
	for pos < width && s[pos] >= '0' && s[pos] <= '9' {
		hascoef = true
		switch {
		case sig == 0 && s[pos] == '0':
			// skip leading zeros
		case sig < 2*Digits+1:
			coef = coef.fsa(1, s[pos]-'0')
			sig++
		default:
			drop++
			if s[pos] != '0' {
				sticky = true
			}
		}
		pos++
	}

	// Fraction
	if pos < width && s[pos] == '.' {
		pos++
		for pos < width && s[pos] >= '0' && s[pos] <= '9' {
			hascoef = true
			switch {
			case sig == 0 && s[pos] == '0':
				frac++
			case sig < 2*Digits+1:
				coef = coef.fsa(1, s[pos]-'0')
				sig++
				frac++
			default:
				if s[pos] != '0' {
					sticky = true
				}
			}
			pos++
		}
	}

	// Exponent
	if pos < width && (s[pos] == 'e' || s[pos] == 'E') {
		hase = true
		pos++
		switch {
		case pos == width:
			// skip
		case s[pos] == '-':
			eneg = true
			pos++
		case s[pos] == '+':
			pos++
		}
		for pos < width && s[pos] >= '0' && s[pos] <= '9' {
			exp = exp*10 + int(s[pos]-'0')
			if exp > 9_999 {
				return Num{}, fmt.Errorf("parsing %q: %w", s, errExponentRange)
			}
			hasexp = true
			pos++
		}
	}

	switch {
	case pos != width:
		return Num{}, fmt.Errorf("invalid character %q: %w", s[pos], errInvalidLiteral)
	case !hascoef:
		return Num{}, fmt.Errorf("no digits: %w", errInvalidLiteral)
	case hase && !hasexp:
		return Num{}, fmt.Errorf("no exponent digits: %w", errInvalidLiteral)
	}

	if eneg {
		exp = -exp
	}
	if sticky {
		// One sticky digit stands in for all discarded nonzero tail
		// digits, so a value just above a rounding midpoint cannot
		// masquerade as an exact tie.
		coef = coef.fsa(1, 1)
		frac++
	}
	prec := coef.prec()
	return pack(neg, coef, exp+drop-frac+prec-1, prec), nil
}

// String implements the [fmt.Stringer] interface.
// Trailing zeros in the fraction are always stripped; values needing
// more than seventeen printed digits fall back to [Num.Scientific].
// Undefined renders as "Undefined" and a non-canonical value as
// "Invalid".
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (n Num) String() string {
	switch {
	case n.IsUndefined():
		return "Undefined"
	case !n.IsNum():
		return "Invalid"
	case n.mant == 0:
		return "0"
	}
	m := uint64(n.mant)
	for m%10 == 0 {
		m /= 10
	}
	digs := strconv.FormatUint(m, 10)
	point := int(n.exp) + 1 // digits before the decimal point
	const maxPrinted = Digits + 1
	var b []byte
	if n.neg {
		b = append(b, '-')
	}
	switch {
	case point > 0 && len(digs) > point:
		b = append(b, digs[:point]...)
		b = append(b, '.')
		b = append(b, digs[point:]...)
	case point > 0 && point <= maxPrinted:
		b = append(b, digs...)
		for i := len(digs); i < point; i++ {
			b = append(b, '0')
		}
	case point <= 0 && len(digs)-point < maxPrinted:
		b = append(b, '0', '.')
		for i := 0; i < -point; i++ {
			b = append(b, '0')
		}
		b = append(b, digs...)
	default:
		return n.Scientific()
	}
	return string(b)
}

// Scientific returns the scientific notation of n, such as "1.5e23".
// Trailing zeros in the fraction are always stripped.
func (n Num) Scientific() string {
	switch {
	case n.IsUndefined():
		return "Undefined"
	case !n.IsNum():
		return "Invalid"
	case n.mant == 0:
		return "0"
	}
	m := uint64(n.mant)
	for m%10 == 0 {
		m /= 10
	}
	digs := strconv.FormatUint(m, 10)
	var b []byte
	if n.neg {
		b = append(b, '-')
	}
	b = append(b, digs[0])
	if len(digs) > 1 {
		b = append(b, '.')
		b = append(b, digs[1:]...)
	}
	b = append(b, 'e')
	b = strconv.AppendInt(b, int64(n.exp), 10)
	return string(b)
}

// Float64 returns the nearest binary floating-point number to n.
// Undefined and non-canonical values convert to NaN.
func (n Num) Float64() float64 {
	if !n.IsNum() {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(n.Scientific(), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// MarshalText implements the [encoding.TextMarshaler] interface.
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (n Num) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (n *Num) UnmarshalText(text []byte) error {
	var err error
	*n, err = Parse(string(text))
	return err
}

// IsNum returns true if n is canonical: either exactly zero or a
// sixteen-digit mantissa with an in-range exponent. Undefined is not
// a number.
func (n Num) IsNum() bool {
	if n == Zero {
		return true
	}
	return n.mant.hasPrec(Digits) && !n.mant.hasPrec(Digits+1) &&
		MinExp <= int(n.exp) && int(n.exp) <= MaxExp
}

// IsUndefined returns true if n is the Undefined sentinel.
func (n Num) IsUndefined() bool {
	return n == Undefined
}

// IsZero returns true if n is 0.
func (n Num) IsZero() bool {
	return n == Zero
}

// IsNeg returns true if n is less than 0.
func (n Num) IsNeg() bool {
	return n.neg
}

// IsPos returns true if n is greater than 0.
func (n Num) IsPos() bool {
	return n.mant != 0 && !n.neg
}

// Sign returns One if n is positive, NegOne if n is negative, Zero if
// n is zero, and Undefined if n is not a number.
func (n Num) Sign() Num {
	switch {
	case !n.IsNum():
		return Undefined
	case n.mant == 0:
		return Zero
	case n.neg:
		return NegOne
	}
	return One
}

// Neg returns n with its sign flipped.
func (n Num) Neg() Num {
	switch {
	case !n.IsNum():
		return Undefined
	case n.mant == 0:
		return Zero
	}
	return Num{neg: !n.neg, exp: n.exp, mant: n.mant}
}

// Abs returns the absolute value of n.
func (n Num) Abs() Num {
	switch {
	case !n.IsNum():
		return Undefined
	case n.mant == 0:
		return Zero
	}
	return Num{neg: false, exp: n.exp, mant: n.mant}
}

// align returns the magnitude of n rescaled to the given exponent.
// Shifting left is exact; shifting right truncates toward zero and
// is capped at the format width, past which the magnitude vanishes
// into the other operand's rounding anyway.
func (n Num) align(exp int) wint {
	shift := int(n.exp) - exp
	if shift >= 0 {
		// Addition keeps the gap within one format width,
		// so the shift cannot overflow.
		z, _ := wintFromFint(n.mant).lsh(shift)
		return z
	}
	shift = -shift
	if shift > Digits {
		shift = Digits
	}
	q, _ := wintFromFint(n.mant).quoRemPow10(shift)
	return q
}

// Add returns the (possibly rounded) sum of n and e.
// If either operand is not a number, the result is Undefined.
func (n Num) Add(e Num) Num {
	if !n.IsNum() || !e.IsNum() {
		return Undefined
	}
	nx, ex := int(n.exp), int(e.exp)
	if n.mant == 0 {
		nx = expUndef
	}
	if e.mant == 0 {
		ex = expUndef
	}
	hi := max(nx, ex)
	target := hi - Digits
	nm := n.align(target)
	em := e.align(target)
	var neg bool
	var m wint
	if n.neg == e.neg {
		m = nm.add(em)
		neg = n.neg
	} else {
		m = nm.dist(em)
		if em.cmp(nm) < 0 {
			neg = n.neg
		} else {
			neg = e.neg
		}
	}
	return pack(neg, m, hi, 2*Digits)
}

// Sub returns the (possibly rounded) difference of n and e.
// If either operand is not a number, the result is Undefined.
func (n Num) Sub(e Num) Num {
	return n.Add(e.Neg())
}

// Mul returns the (possibly rounded) product of n and e.
// If either operand is not a number, the result is Undefined.
func (n Num) Mul(e Num) Num {
	if !n.IsNum() || !e.IsNum() {
		return Undefined
	}
	return pack(n.neg != e.neg, mul64(n.mant, e.mant), int(n.exp)+int(e.exp), 2*Digits-1)
}

// Quo returns the (possibly rounded) quotient of n and e.
// If either operand is not a number, or e is zero, the result is
// Undefined.
func (n Num) Quo(e Num) Num {
	if !n.IsNum() || !e.IsNum() || e.mant == 0 {
		return Undefined
	}
	// The dividend carries one guard digit past full width.
	q, _ := mul64(n.mant, pow10[Digits]).quoRem64(e.mant)
	return pack(n.neg != e.neg, q, int(n.exp)-int(e.exp), Digits+1)
}

// key folds the magnitude of a canonical value into an
// order-preserving integer: exponent-major, mantissa-minor, with zero
// below every nonzero magnitude. The biased exponent occupies nine
// bits above the fifty-four the mantissa can reach.
func (n Num) key() uint64 {
	if n.mant == 0 {
		return 0
	}
	return uint64(n.mant) | uint64(int(n.exp)-expUndef)<<54
}

// Cmp numerically compares n and e and returns:
//
//	-1 if n < e
//	 0 if n == e
//	+1 if n > e
//
// Undefined is the unique minimal element: it compares below every
// number and equal to itself. For two negative operands the order
// follows the raw magnitude key, which inverts numeric order; see the
// package documentation for this known deviation.
func (n Num) Cmp(e Num) int {
	switch {
	case n.IsUndefined() && e.IsUndefined():
		return 0
	case n.IsUndefined():
		return -1
	case e.IsUndefined():
		return 1
	case n.neg != e.neg:
		if n.neg {
			return -1
		}
		return 1
	}
	x, y := n.key(), e.key()
	switch {
	case x < y:
		return -1
	case y < x:
		return 1
	}
	return 0
}

// Equal compares n and e for equality. It is equivalent to n == e, as
// the canonical form of every value is unique.
func (n Num) Equal(e Num) bool {
	return n == e
}

// Less reports whether n is ordered before e under [Num.Cmp].
func (n Num) Less(e Num) bool {
	return n.Cmp(e) < 0
}

// LessOrEqual reports whether n is not ordered after e under [Num.Cmp].
func (n Num) LessOrEqual(e Num) bool {
	return n.Cmp(e) <= 0
}

// Greater reports whether n is ordered after e under [Num.Cmp].
func (n Num) Greater(e Num) bool {
	return n.Cmp(e) > 0
}

// GreaterOrEqual reports whether n is not ordered before e under [Num.Cmp].
func (n Num) GreaterOrEqual(e Num) bool {
	return n.Cmp(e) >= 0
}

// Min returns the smaller of n and e under [Num.Cmp].
// Undefined loses against any number.
func (n Num) Min(e Num) Num {
	if n.Cmp(e) <= 0 {
		return n
	}
	return e
}

// Max returns the larger of n and e under [Num.Cmp].
// Undefined loses against any number.
func (n Num) Max(e Num) Num {
	if n.Cmp(e) >= 0 {
		return n
	}
	return e
}

// Sqrt returns the (possibly rounded) square root of n.
// If n is negative or not a number, the result is Undefined.
func (n Num) Sqrt() Num {
	switch {
	case !n.IsNum() || n.neg:
		return Undefined
	case n.mant == 0:
		return Zero
	}
	// Scaling by an even power of ten splits the root into an integer
	// part and a power shift; the parity of the exponent decides which
	// scaling keeps it even. The estimate is a linear fit over the
	// mantissa range, then Newton's method finishes the job.
	var orig wint
	var cur fint
	if int(n.exp)%2 == 0 {
		orig, _ = wintFromFint(n.mant).lsh(Digits + 3)
		cur = n.mant*28 + 89*pow10[Digits-1]
	} else {
		orig, _ = wintFromFint(n.mant).lsh(Digits + 4)
		cur = n.mant*89 + 28*pow10[Digits]
	}
	for i := 0; i < 7; i++ {
		q, _ := orig.quoRem64(cur)
		next := (cur + q.fint()) / 2
		if next == cur {
			break
		}
		cur = next
	}
	return pack(false, wintFromFint(cur), int(n.exp)>>1, Digits+2)
}

// Sin returns the (possibly rounded) sine of n, with n in radians.
// If n is not a number, the result is Undefined.
//
// Sin evaluates the Taylor series directly, without argument
// reduction: results are accurate for small arguments and degrade as
// the magnitude of n grows past a few turns.
func (n Num) Sin() Num {
	if !n.IsNum() {
		return Undefined
	}
	xx := n.Mul(n).Neg()
	term, result := n, n
	for k := 1; k <= 30; k++ {
		term = term.Mul(xx).Quo(New(int64(2*k*(2*k+1)), 0))
		next := result.Add(term)
		if next == result {
			break
		}
		result = next
	}
	return result
}

// Cos returns the (possibly rounded) cosine of n, with n in radians.
// If n is not a number, the result is Undefined.
//
// Cos shifts the argument by a quarter turn and uses [Num.Sin],
// inheriting its accuracy limits for large arguments.
func (n Num) Cos() Num {
	return n.Add(HalfPi).Sin()
}

// Tan returns the (possibly rounded) tangent of n, with n in radians.
// If n is not a number, or the cosine of n rounds to zero, the result
// is Undefined.
func (n Num) Tan() Num {
	return n.Sin().Quo(n.Cos())
}

// Rem is not implemented and always returns [ErrNotImplemented].
func (n Num) Rem(e Num) (Num, error) {
	return Undefined, fmt.Errorf("Rem: %w", ErrNotImplemented)
}

// Frac is not implemented and always returns [ErrNotImplemented].
func (n Num) Frac() (Num, error) {
	return Undefined, fmt.Errorf("Frac: %w", ErrNotImplemented)
}

// Round is not implemented and always returns [ErrNotImplemented].
func (n Num) Round() (Num, error) {
	return Undefined, fmt.Errorf("Round: %w", ErrNotImplemented)
}

// Asin is not implemented and always returns [ErrNotImplemented].
func (n Num) Asin() (Num, error) {
	return Undefined, fmt.Errorf("Asin: %w", ErrNotImplemented)
}

// Acos is not implemented and always returns [ErrNotImplemented].
func (n Num) Acos() (Num, error) {
	return Undefined, fmt.Errorf("Acos: %w", ErrNotImplemented)
}

// Atan is not implemented and always returns [ErrNotImplemented].
func (n Num) Atan() (Num, error) {
	return Undefined, fmt.Errorf("Atan: %w", ErrNotImplemented)
}

// Atan2 is not implemented and always returns [ErrNotImplemented].
func (n Num) Atan2(e Num) (Num, error) {
	return Undefined, fmt.Errorf("Atan2: %w", ErrNotImplemented)
}

// Exp is not implemented and always returns [ErrNotImplemented].
func (n Num) Exp() (Num, error) {
	return Undefined, fmt.Errorf("Exp: %w", ErrNotImplemented)
}

// Log is not implemented and always returns [ErrNotImplemented].
func (n Num) Log() (Num, error) {
	return Undefined, fmt.Errorf("Log: %w", ErrNotImplemented)
}

// Pow is not implemented and always returns [ErrNotImplemented].
func (n Num) Pow(e Num) (Num, error) {
	return Undefined, fmt.Errorf("Pow: %w", ErrNotImplemented)
}

// Root is not implemented and always returns [ErrNotImplemented].
func (n Num) Root(e Num) (Num, error) {
	return Undefined, fmt.Errorf("Root: %w", ErrNotImplemented)
}
