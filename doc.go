/*
Package dfloat implements immutable decimal floating-point numbers
with a fixed width of sixteen significant digits. It is designed for
deterministic numeric evaluation: the same expression produces the
same sixteen-digit result on every platform, with none of the binary
representation artifacts of float64.

# Representation

[Num] is a struct with three fields:

  - Sign: a boolean indicating whether the number is negative.
  - Exponent: the decimal exponent of the leading mantissa digit,
    ranging from -255 to 255.
  - Mantissa: an unsigned integer holding exactly sixteen decimal
    digits for any nonzero value.

The numerical value of a Num is calculated as:

  - -Mantissa * 10^(Exponent-15), if Sign is true.
  - Mantissa * 10^(Exponent-15), if Sign is false.

Every value has exactly one canonical form: zero is always the zero
value of the struct, and a nonzero mantissa always occupies the full
sixteen digits. Num values can therefore be compared with == and used
as map keys.

# Undefined

Operations with no valid numeric result, such as dividing by zero or
taking the square root of a negative number, do not return an error.
They return [Undefined], a sentinel value tagged by an exponent one
below the valid range. Undefined is contagious: any arithmetic or
trigonometric operation with an Undefined operand yields Undefined.
Under the ordering operations ([Num.Cmp], [Num.Min], [Num.Max])
Undefined is not contagious; it acts as the unique minimal element,
below every number.

Operations that are part of the numeric interface but have no
algorithm in this package, such as [Num.Rem] or [Num.Log], are a
separate category: they return [ErrNotImplemented] rather than
Undefined, and are the only methods returning an error.

# Context

The context is implicit and can be approximately equated to the
following settings:

	| Attribute               | Value                          |
	| ----------------------- | ------------------------------ |
	| Precision               | 16                             |
	| Maximum Exponent (Emax) | 255                            |
	| Minimum Exponent (Emin) | -255                           |
	| Rounding Method         | Half To Even                   |
	| Enabled Traps           | none                           |

Results with an exponent below Emin flush to [Zero]; results with an
exponent above Emax saturate to [Undefined]. Subnormal values are not
supported: a nonzero result always carries sixteen digits.

# Rounding

Implicit rounding is applied whenever a result exceeds sixteen
digits, using the half-to-even rule. This method ensures that
rounding errors are evenly distributed between rounding up and
rounding down. Division and square root carry guard digits through
the intermediate computation and round once at the end.

# Known deviations

Two behaviors are preserved for compatibility with systems that store
comparison keys derived from this format:

  - Ordering of negative numbers. [Num.Cmp] compares two negative
    values by their raw magnitude key, which inverts the numeric
    order: -1 is reported as less than -10. Mixed-sign and
    non-negative comparisons are numerically correct.
  - [Num.Sin] (and through it [Num.Cos] and [Num.Tan]) performs no
    argument reduction. Accuracy degrades as the argument magnitude
    grows past a few turns.
*/
package dfloat
