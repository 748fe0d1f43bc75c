package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"fleet-insights-go/internal/dataset"
	"fleet-insights-go/internal/pipeline"
	"fleet-insights-go/internal/report"
)

var (
	reportFilters    filterFlags
	attentionFilters filterFlags
	exportFilters    filterFlags
	attentionPDF     string
)

var reportCmd = &cobra.Command{
	Use:   "report [section]",
	Short: "Print the full report, or one section of it, as JSON",
	Long:  "Sections: " + strings.Join(pipeline.Sections, ", "),
	Args:  cobra.MaximumNArgs(1),
	RunE:  runReport,
}

var attentionCmd = &cobra.Command{
	Use:   "attention",
	Short: "List the vehicles needing attention",
	Args:  cobra.NoArgs,
	RunE:  runAttention,
}

var exportCmd = &cobra.Command{
	Use:   "export <out.xlsx>",
	Short: "Export the stored records as a workbook",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	reportFilters.register(reportCmd)
	attentionFilters.register(attentionCmd)
	exportFilters.register(exportCmd)
	attentionCmd.Flags().StringVar(&attentionPDF, "pdf", "", "write the report as PDF to this path")
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(attentionCmd)
	rootCmd.AddCommand(exportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	records, err := loadSnapshot(cmd.Context())
	if err != nil {
		return err
	}
	if records, err = reportFilters.apply(records); err != nil {
		return err
	}
	rep := newRunner().Run(records)

	var out interface{} = rep
	if len(args) == 1 {
		section, ok := rep.Section(args[0])
		if !ok {
			return fmt.Errorf("unknown section %q (want one of %s)", args[0], strings.Join(pipeline.Sections, ", "))
		}
		out = section
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func runAttention(cmd *cobra.Command, args []string) error {
	records, err := loadSnapshot(cmd.Context())
	if err != nil {
		return err
	}
	if records, err = attentionFilters.apply(records); err != nil {
		return err
	}
	entries := newRunner().Attention(records)

	if attentionPDF != "" {
		f, err := os.Create(attentionPDF)
		if err != nil {
			return err
		}
		if err := report.WriteAttentionPDF(f, entries, time.Now()); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		log.WithField("path", attentionPDF).WithField("vehicles", len(entries)).Info("attention report written")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VEHICLE\tMODEL\tPRIORITY\tSCORE\tPROBLEMS")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", e.Vehicle, e.Model, e.Priority, e.Score, strings.Join(e.Problems, "; "))
	}
	return tw.Flush()
}

func runExport(cmd *cobra.Command, args []string) error {
	records, err := loadSnapshot(cmd.Context())
	if err != nil {
		return err
	}
	if records, err = exportFilters.apply(records); err != nil {
		return err
	}
	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	if err := dataset.ExportXLSX(f, records); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.WithField("path", args[0]).WithField("records", len(records)).Info("workbook exported")
	return nil
}
