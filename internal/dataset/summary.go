package dataset

import (
	"fmt"

	"fleet-insights-go/internal/logger"
	"fleet-insights-go/internal/stats"
	"fleet-insights-go/internal/types"
)

// Summary pairs a loaded record collection with its fleet-level scalars.
type Summary struct {
	Records []types.Record   `json:"-"`
	Stats   types.FleetStats `json:"stats"`
	Months  int              `json:"months"`
}

// LoadAndSummarize reads the dataset at path and computes the fleet summary
// logged at startup.
func LoadAndSummarize(path string) (Summary, error) {
	log := logger.New().WithField("component", "dataset.summary").WithField("path", path)
	log.Info("opening dataset for summarization")
	records, err := LoadFile(path)
	if err != nil {
		return Summary{}, fmt.Errorf("load: %w", err)
	}
	if len(records) == 0 {
		log.Error("no data rows")
		return Summary{}, ErrNoRows
	}
	s := Summarize(records)
	log.WithFields(map[string]interface{}{
		"records":  len(records),
		"vehicles": s.Stats.TotalVehicles,
		"months":   s.Months,
	}).Info("dataset summarization complete")
	return s, nil
}

// Summarize computes the summary of an in-memory collection.
func Summarize(records []types.Record) Summary {
	months := map[string]struct{}{}
	for _, r := range records {
		months[r.Month] = struct{}{}
	}
	return Summary{
		Records: records,
		Stats:   stats.Fleet(records),
		Months:  len(months),
	}
}
