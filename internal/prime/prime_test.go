package prime

import (
	"strconv"
	"testing"
)

func mustParse(t *testing.T, lit string) Number {
	t.Helper()
	n, err := Parse(lit)
	if err != nil {
		t.Fatalf("Parse(%q): %v", lit, err)
	}
	return n
}

func TestIsPrimeSmallValues(t *testing.T) {
	cases := []struct {
		lit  string
		want bool
	}{
		{"-7", false},
		{"-1", false},
		{"0", false},
		{"1", false},
		{"2", true},
		{"3", true},
		{"4", false},
		{"7", true},
		{"8", false},
		{"9", false},
		{"97", true},
		{"7.5", false},
		{"7.0", true}, // integral despite fractional syntax
		{"2.0000001", false},
		{"1e3", false},  // 1000
		{"1.3e1", true}, // 13
		{"778013", true},
	}
	for _, tc := range cases {
		if got := IsPrime(mustParse(t, tc.lit)); got != tc.want {
			t.Errorf("IsPrime(%s) = %v, want %v", tc.lit, got, tc.want)
		}
	}
}

// TestIsPrimeAgainstSieve cross-checks against a plain sieve of
// Eratosthenes oracle.
func TestIsPrimeAgainstSieve(t *testing.T) {
	limit := 1_000_000
	if testing.Short() {
		limit = 20_000
	}

	composite := make([]bool, limit+1)
	for i := 2; i*i <= limit; i++ {
		if composite[i] {
			continue
		}
		for j := i * i; j <= limit; j += i {
			composite[j] = true
		}
	}

	for n := 0; n <= limit; n++ {
		want := n >= 2 && !composite[n]
		num := mustParse(t, strconv.Itoa(n))
		if got := IsPrime(num); got != want {
			t.Fatalf("IsPrime(%d) = %v, want %v", n, got, want)
		}
	}
}

func TestIsPrimeBeyond64Bit(t *testing.T) {
	// 2^107 - 1, a Mersenne prime, 33 digits.
	const m107 = "162259276829213363391578010288127"
	if !IsPrime(mustParse(t, m107)) {
		t.Errorf("IsPrime(%s) = false, want true", m107)
	}
	// One less is even, hence composite.
	const m107less = "162259276829213363391578010288126"
	if IsPrime(mustParse(t, m107less)) {
		t.Errorf("IsPrime(%s) = true, want false", m107less)
	}
	// 2^89 - 1, also a known Mersenne prime.
	const m89 = "618970019642690137449562111"
	if !IsPrime(mustParse(t, m89)) {
		t.Errorf("IsPrime(%s) = false, want true", m89)
	}
}

func TestParseRejectsNonNumbers(t *testing.T) {
	for _, lit := range []string{"", "abc", "12x", "--5"} {
		if _, err := Parse(lit); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", lit)
		}
	}
}

func TestParseExponentRange(t *testing.T) {
	// Large exponents materialize as exact integers.
	n := mustParse(t, "1e400")
	if !n.IsIntegral() {
		t.Error("Parse(1e400) not integral")
	}
	if IsPrime(n) {
		t.Error("IsPrime(1e400) = true, want false")
	}

	// Past big.Rat's exponent cap the literal is rejected; the caller
	// treats that as malformed input for the one connection.
	if _, err := Parse("1e100000000"); err == nil {
		t.Error("Parse(1e100000000) succeeded, want error")
	}
}

func TestParseIntegrality(t *testing.T) {
	cases := []struct {
		lit      string
		integral bool
	}{
		{"5", true},
		{"-5", true},
		{"5.0", true},
		{"0.5", false},
		{"5.5", false},
		{"2e2", true},
		{"2.5e1", true}, // 25
		{"2.5e-1", false},
	}
	for _, tc := range cases {
		n := mustParse(t, tc.lit)
		if n.IsIntegral() != tc.integral {
			t.Errorf("Parse(%q).IsIntegral() = %v, want %v", tc.lit, n.IsIntegral(), tc.integral)
		}
	}
}
