package period

import (
	"fmt"

	"fleet-insights-go/internal/types"
)

// Filter keeps records whose month lies within [start, end]. An empty bound is
// open. Records or bounds whose month token does not parse never exclude a record.
func Filter(records []types.Record, start, end string) []types.Record {
	if start == "" && end == "" {
		return records
	}
	sy, sm, startOK := Key(start)
	ey, em, endOK := Key(end)
	out := make([]types.Record, 0, len(records))
	for _, r := range records {
		y, m, ok := Key(r.Month)
		if ok {
			if startOK && (y < sy || y == sy && m < sm) {
				continue
			}
			if endOK && (y > ey || y == ey && m > em) {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

// ValidateBound returns an error when a non-empty period bound is not a valid
// "MM/YY" month.
func ValidateBound(name, token string) error {
	if token == "" {
		return nil
	}
	if _, _, ok := Key(token); !ok {
		return fmt.Errorf("invalid %s month %q, expected MM/YY", name, token)
	}
	return nil
}

// FilterVehicle keeps the records of a single vehicle. An empty id keeps all.
func FilterVehicle(records []types.Record, vehicle string) []types.Record {
	if vehicle == "" {
		return records
	}
	var out []types.Record
	for _, r := range records {
		if r.Vehicle == vehicle {
			out = append(out, r)
		}
	}
	return out
}

// Preset resolves a named period against chronologically sorted months.
// "3m", "6m" and "12m" span the trailing months up to the latest one; "all"
// yields open bounds.
func Preset(months []string, name string) (start, end string, err error) {
	var span int
	switch name {
	case "all":
		return "", "", nil
	case "3m":
		span = 3
	case "6m":
		span = 6
	case "12m":
		span = 12
	default:
		return "", "", fmt.Errorf("unknown period preset %q", name)
	}
	if len(months) == 0 {
		return "", "", nil
	}
	first := len(months) - span
	if first < 0 {
		first = 0
	}
	return months[first], months[len(months)-1], nil
}
