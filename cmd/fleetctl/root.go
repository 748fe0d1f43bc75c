package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fleet-insights-go/internal/config"
	"fleet-insights-go/internal/logger"
	"fleet-insights-go/internal/period"
	"fleet-insights-go/internal/pipeline"
	"fleet-insights-go/internal/store"
	"fleet-insights-go/internal/types"
)

var (
	cfgPath string
	cfg     *config.Config
	log     *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:          "fleetctl",
	Short:        "Fleet fuel and load efficiency analytics",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		log = logger.NewWithOptions(logger.Options{
			Environment: cfg.Environment,
			Level:       cfg.Log.Level,
			Output:      cmd.ErrOrStderr(),
		}).Component("fleetctl")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", os.Getenv("FLEET_CONFIG"), "configuration file")
}

func openStore() (*store.Store, error) {
	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// loadSnapshot reads the imported records from the store.
func loadSnapshot(ctx context.Context) ([]types.Record, error) {
	st, err := openStore()
	if err != nil {
		return nil, err
	}
	defer st.Close()
	records, err := st.Load(ctx)
	if errors.Is(err, store.ErrEmptySnapshot) {
		return nil, fmt.Errorf("%w: run `fleetctl import` or `fleetctl fetch` first", err)
	}
	return records, err
}

func newRunner() *pipeline.Runner {
	return pipeline.New(pipeline.Options{
		DropThreshold:        cfg.Analysis.Drop(),
		ConsistencyThreshold: cfg.Analysis.ConsistencyThreshold,
	}, nil, log)
}

// filterFlags are the period and vehicle filters shared by the read commands.
type filterFlags struct {
	start, end, preset, vehicle string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.start, "start", "", "first month (MM/YY), inclusive")
	cmd.Flags().StringVar(&f.end, "end", "", "last month (MM/YY), inclusive")
	cmd.Flags().StringVar(&f.preset, "preset", "", "period preset: all, 3m, 6m or 12m")
	cmd.Flags().StringVar(&f.vehicle, "vehicle", "", "restrict to one vehicle")
}

func (f filterFlags) apply(records []types.Record) ([]types.Record, error) {
	if err := period.ValidateBound("start", f.start); err != nil {
		return nil, err
	}
	if err := period.ValidateBound("end", f.end); err != nil {
		return nil, err
	}
	start, end := f.start, f.end
	if f.preset != "" {
		ps, pe, err := period.Preset(period.Months(records), f.preset)
		if err != nil {
			return nil, err
		}
		if start == "" {
			start = ps
		}
		if end == "" {
			end = pe
		}
	}
	out := period.Filter(records, start, end)
	return period.FilterVehicle(out, f.vehicle), nil
}
