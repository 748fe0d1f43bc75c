package dataset

import (
	"math"
	"strconv"
	"strings"

	"fleet-insights-go/internal/types"
)

var currencyStripper = strings.NewReplacer("R", "", "$", "", "€", "")

// ParseNumeric reads a locale formatted decimal such as "1.234,56" or
// "1,234.56". The rightmost separator is the decimal one. Anything that does
// not parse yields 0.
func ParseNumeric(s string) float64 {
	cleaned := strings.Join(strings.Fields(s), "")
	cleaned = currencyStripper.Replace(cleaned)
	if cleaned == "" {
		return 0
	}
	lastDot := strings.LastIndex(cleaned, ".")
	lastComma := strings.LastIndex(cleaned, ",")
	switch {
	case lastDot == -1 && lastComma == -1:
		cleaned = keep(cleaned, "-")
	case lastDot > lastComma:
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	default:
		cleaned = strings.Replace(strings.ReplaceAll(cleaned, ".", ""), ",", ".", 1)
	}
	return parseFloatPrefix(cleaned)
}

// ParseDistance reads a km figure. A separator within the last three
// characters is taken as decimal and the value is rounded to a whole km;
// otherwise every non-digit is dropped.
func ParseDistance(s string) float64 {
	cleaned := strings.TrimSpace(s)
	if cleaned == "" {
		return 0
	}
	lastDot := strings.LastIndex(cleaned, ".")
	lastComma := strings.LastIndex(cleaned, ",")
	tail := len(cleaned) - 4
	switch {
	case lastComma > lastDot && lastComma > tail:
		cleaned = strings.Replace(strings.ReplaceAll(cleaned, ".", ""), ",", ".", 1)
		return roundHalfUp(parseFloatPrefix(cleaned))
	case lastDot > lastComma && lastDot > tail:
		cleaned = strings.ReplaceAll(cleaned, ",", "")
		return roundHalfUp(parseFloatPrefix(cleaned))
	}
	n, err := strconv.ParseInt(keep(cleaned, ""), 10, 64)
	if err != nil {
		return 0
	}
	return float64(n)
}

// Normalize parses the locale formatted averages of raw rows.
func Normalize(raw []types.RawRecord) []types.Record {
	out := make([]types.Record, len(raw))
	for i, r := range raw {
		out[i] = types.Record{
			RawRecord:        r,
			AverageNum:       ParseNumeric(r.AverageRaw),
			AverageLoadedNum: ParseNumeric(r.AverageLoadedRaw),
		}
	}
	return out
}

// keep drops every rune that is neither a digit nor listed in extra.
func keep(s, extra string) string {
	var b strings.Builder
	for _, c := range s {
		if c >= '0' && c <= '9' || strings.ContainsRune(extra, c) {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// parseFloatPrefix parses the longest leading decimal number of s, ignoring
// trailing garbage, and returns 0 when there is none.
func parseFloatPrefix(s string) float64 {
	end := 0
	seenDigit, seenDot := false, false
scan:
	for i, c := range s {
		switch {
		case c >= '0' && c <= '9':
			seenDigit = true
		case c == '.' && !seenDot:
			seenDot = true
		case (c == '-' || c == '+') && i == 0:
		default:
			break scan
		}
		end = i + 1
	}
	if !seenDigit {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
