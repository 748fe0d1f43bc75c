// Package period orders and filters records by their "MM/YY" month token.
package period

import (
	"sort"
	"strconv"
	"strings"

	"fleet-insights-go/internal/types"
)

// Key parses a "MM/YY" token into its numeric month and year.
// ok is false when either part is not an integer or the month is out of range.
func Key(token string) (year, month int, ok bool) {
	mm, yy, found := strings.Cut(strings.TrimSpace(token), "/")
	if !found {
		return 0, 0, false
	}
	m, err := strconv.Atoi(strings.TrimSpace(mm))
	if err != nil || m < 1 || m > 12 {
		return 0, 0, false
	}
	y, err := strconv.Atoi(strings.TrimSpace(yy))
	if err != nil {
		return 0, 0, false
	}
	return y, m, true
}

// Compare orders two month tokens chronologically: year first, then month.
// Tokens that parse are compared as integers, so "9/23" sorts before "12/23".
// Tokens that do not parse sort after every valid month and among themselves
// by their year part, then their month part, as text.
func Compare(a, b string) int {
	ya, ma, okA := Key(a)
	yb, mb, okB := Key(b)
	switch {
	case okA && okB:
		if ya != yb {
			return cmpInt(ya, yb)
		}
		return cmpInt(ma, mb)
	case okA:
		return -1
	case okB:
		return 1
	}
	mmA, yyA, _ := strings.Cut(a, "/")
	mmB, yyB, _ := strings.Cut(b, "/")
	if c := strings.Compare(yyA, yyB); c != 0 {
		return c
	}
	return strings.Compare(mmA, mmB)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Sorted returns a chronologically ordered copy of records. Records sharing a
// month keep their input order.
func Sorted(records []types.Record) []types.Record {
	out := make([]types.Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool { return Compare(out[i].Month, out[j].Month) < 0 })
	return out
}

// Months returns the distinct month tokens of records in chronological order.
func Months(records []types.Record) []string {
	seen := make(map[string]bool)
	var months []string
	for _, r := range records {
		if !seen[r.Month] {
			seen[r.Month] = true
			months = append(months, r.Month)
		}
	}
	sort.SliceStable(months, func(i, j int) bool { return Compare(months[i], months[j]) < 0 })
	return months
}
