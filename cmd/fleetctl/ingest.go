package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"fleet-insights-go/internal/dataset"
	"fleet-insights-go/internal/format"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import an .xlsx, .csv or .json dataset into the store",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var fetchCmd = &cobra.Command{
	Use:   "fetch [sheet-id]",
	Short: "Fetch a Google Sheets dataset into the store",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFetch,
}

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(fetchCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	summary, err := dataset.LoadAndSummarize(args[0])
	if err != nil {
		return err
	}
	if err := save(cmd, "file:"+args[0], summary); err != nil {
		return err
	}
	printSummary(cmd.OutOrStdout(), summary)
	return nil
}

func runFetch(cmd *cobra.Command, args []string) error {
	sheetID := cfg.Dataset.SheetsID
	if len(args) == 1 {
		sheetID = args[0]
	}
	if sheetID == "" {
		return fmt.Errorf("%w: pass a sheet id or set dataset.sheets_id", dataset.ErrNoSource)
	}
	records, err := dataset.NewSheetsClient(cfg.Dataset.FetchTimeout()).Fetch(cmd.Context(), sheetID)
	if err != nil {
		return fmt.Errorf("fetch sheet: %w", err)
	}
	if len(records) == 0 {
		return dataset.ErrNoRows
	}
	summary := dataset.Summarize(records)
	if err := save(cmd, "sheets:"+sheetID, summary); err != nil {
		return err
	}
	printSummary(cmd.OutOrStdout(), summary)
	return nil
}

func save(cmd *cobra.Command, source string, summary dataset.Summary) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.Save(cmd.Context(), source, summary.Records); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	log.WithField("source", source).WithField("records", len(summary.Records)).Info("snapshot saved")
	return nil
}

func printSummary(w io.Writer, s dataset.Summary) {
	fmt.Fprintf(w, "records:        %d\n", len(s.Records))
	fmt.Fprintf(w, "vehicles:       %d\n", s.Stats.TotalVehicles)
	fmt.Fprintf(w, "months:         %d\n", s.Months)
	fmt.Fprintf(w, "total km:       %s\n", format.Km(s.Stats.TotalKm))
	fmt.Fprintf(w, "loaded km:      %s\n", format.Km(s.Stats.TotalLoadedKm))
	fmt.Fprintf(w, "loaded average: %s km/l\n", format.Number(s.Stats.AvgLoadedAverage, 2))
}
