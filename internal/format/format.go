// Package format renders numbers for people: fixed decimals with ties rounded
// away from zero, Brazilian digit grouping and abbreviated distances.
package format

import (
	"math"
	"math/big"
	"strings"
)

const workPrec = 2048

// Fixed renders x with exactly d decimals. The exact binary value of x is
// rounded to nearest, and exact ties go away from zero, so Fixed(2.5, 0) is
// "3" while Fixed(1.005, 2) is "1.00".
func Fixed(x float64, d int) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	}
	if d < 0 {
		d = 0
	}
	neg := x < 0

	scale := new(big.Float).SetPrec(workPrec).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(d)), nil))
	f := new(big.Float).SetPrec(workPrec).SetFloat64(math.Abs(x))
	f.Mul(f, scale)
	units, _ := f.Int(nil)
	frac := new(big.Float).SetPrec(workPrec).Sub(f, new(big.Float).SetPrec(workPrec).SetInt(units))
	if frac.Cmp(big.NewFloat(0.5)) >= 0 {
		units.Add(units, big.NewInt(1))
	}

	digits := units.String()
	if len(digits) <= d {
		digits = strings.Repeat("0", d-len(digits)+1) + digits
	}
	out := digits
	if d > 0 {
		cut := len(digits) - d
		out = digits[:cut] + "." + digits[cut:]
	}
	if neg {
		out = "-" + out
	}
	return out
}

// Number renders x with d decimals in pt-BR style: "1.234,56".
func Number(x float64, d int) string {
	return localize(Fixed(x, d))
}

// Km abbreviates a distance: millions as "1,2M", thousands as "12K", and
// smaller values in pt-BR style with up to three decimals.
func Km(x float64) string {
	switch {
	case x >= 1_000_000:
		return strings.Replace(Fixed(x/1_000_000, 1), ".", ",", 1) + "M"
	case x >= 1_000:
		return Fixed(x/1_000, 0) + "K"
	}
	s := Fixed(x, 3)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	if s == "-0" {
		s = "0"
	}
	return localize(s)
}

// localize turns a "-1234.56" style string into "-1.234,56".
func localize(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, decPart, hasDec := strings.Cut(s, ".")
	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	out := sign + b.String()
	if hasDec {
		out += "," + decPart
	}
	return out
}
