package prime

import (
	"errors"
	"math/big"
)

// Number is a parsed JSON numeric literal. Magnitude is limited only by
// memory; fixed-width integer conversion is deliberately never used, since
// query values routinely exceed the 64-bit range.
type Number struct {
	integral bool
	value    *big.Int
}

// Parse converts a JSON number literal (integer, fractional, or exponent
// form, optionally negative) into a Number. Literals with a non-zero
// fractional part yield a non-integral Number; they are still valid input.
func Parse(lit string) (Number, error) {
	// Fast path for plain integers, which is almost all real traffic.
	if i, ok := new(big.Int).SetString(lit, 10); ok {
		return Number{integral: true, value: i}, nil
	}

	// big.Rat.SetString caps the exponent magnitude it will materialize
	// (around 1e8 decimal digits), so an extreme literal like 1e100000000
	// fails here and ends up classified malformed. That faults only the
	// offending connection, the same outcome as the pending-line cap.
	r, ok := new(big.Rat).SetString(lit)
	if !ok {
		return Number{}, errors.New("not a numeric literal: " + lit)
	}
	if !r.IsInt() {
		return Number{}, nil
	}
	// Integral despite fractional/exponent syntax, e.g. 7.0 or 1e3.
	return Number{integral: true, value: new(big.Int).Set(r.Num())}, nil
}

// IsIntegral reports whether the number has no fractional part.
func (n Number) IsIntegral() bool { return n.integral }

// String returns the integral value in decimal, or "" for a non-integral
// Number. Diagnostics only.
func (n Number) String() string {
	if !n.integral {
		return ""
	}
	return n.value.String()
}

// IsPrime reports whether n is a prime number. It is total: non-integral
// and negative values simply report false. Beyond 64 bits the verdict
// comes from a Baillie-PSW test, which has no known composite that passes.
func IsPrime(n Number) bool {
	if !n.integral {
		return false
	}
	two := big.NewInt(2)
	if n.value.Cmp(two) < 0 {
		return false
	}
	return n.value.ProbablyPrime(0)
}
