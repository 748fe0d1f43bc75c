package actionable

import (
	"fmt"
	"math"
	"sort"

	"fleet-insights-go/internal/aggregator"
	"fleet-insights-go/internal/format"
	"fleet-insights-go/internal/types"
)

// Signal thresholds and the points each one adds to a vehicle's score.
const (
	lowEfficiency       = 70.0
	lowEfficiencyPoints = 3

	anomalyPoints = 4

	steepDecline       = -5.0
	steepDeclinePoints = 2

	belowFleetRatio  = 0.9
	belowFleetPoints = 1

	highScore   = 5
	mediumScore = 3
)

type problems struct {
	info     types.VehicleInfo
	problems []string
	score    int
}

// ledger keeps per-vehicle problems in the order vehicles were first flagged.
type ledger struct {
	index map[string]int
	rows  []problems
}

func (l *ledger) add(info types.VehicleInfo, problem string, points int) {
	i, ok := l.index[info.Vehicle]
	if !ok {
		i = len(l.rows)
		l.index[info.Vehicle] = i
		l.rows = append(l.rows, problems{info: info})
	}
	row := l.rows[i]
	row.problems = append(row.problems, problem)
	row.score += points
	l.rows[i] = row
}

// Generate merges the efficiency, anomaly and trend views with a direct check
// against the fleet mean into one scored list of vehicles needing attention.
// Vehicles with no triggered signal are left out. Entries are ordered by
// descending score; equal scores keep the order in which vehicles were first
// flagged.
func Generate(
	records []types.Record,
	efficiency []types.LoadEfficiencyEntry,
	anomalies []types.AnomalyEntry,
	trends []types.TrendEntry,
) []types.AttentionEntry {
	l := &ledger{index: map[string]int{}}

	for _, e := range efficiency {
		if e.Efficiency < lowEfficiency {
			l.add(e.VehicleInfo, fmt.Sprintf("Low load efficiency: %s%%", format.Fixed(e.Efficiency, 0)), lowEfficiencyPoints)
		}
	}
	for _, a := range anomalies {
		l.add(a.VehicleInfo, fmt.Sprintf("Drop of %s%% in %s", format.Fixed(math.Abs(a.Variation), 0), a.Month), anomalyPoints)
	}
	for _, t := range trends {
		if t.Trend == types.TrendDown && t.Variation < steepDecline {
			l.add(t.VehicleInfo, fmt.Sprintf("Downward trend: %s%%", format.Fixed(t.Variation, 1)), steepDeclinePoints)
		}
	}

	fleetMean := aggregator.MeanLoaded(records)
	for _, v := range aggregator.ByVehicle(records) {
		mean := v.LoadedAverage()
		if mean < fleetMean*belowFleetRatio {
			l.add(v.VehicleInfo, fmt.Sprintf("Below fleet average: %s km/l", format.Fixed(mean, 2)), belowFleetPoints)
		}
	}

	out := make([]types.AttentionEntry, 0, len(l.rows))
	for _, row := range l.rows {
		out = append(out, types.AttentionEntry{
			VehicleInfo: row.info,
			Problems:    row.problems,
			Priority:    Prioritize(row.score),
			Score:       row.score,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// Prioritize maps a score to its tier.
func Prioritize(score int) types.Priority {
	switch {
	case score >= highScore:
		return types.PriorityHigh
	case score >= mediumScore:
		return types.PriorityMedium
	default:
		return types.PriorityLow
	}
}
