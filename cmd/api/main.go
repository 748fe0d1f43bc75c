package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"fleet-insights-go/internal/api"
	"fleet-insights-go/internal/config"
	"fleet-insights-go/internal/dataset"
	"fleet-insights-go/internal/logger"
	"fleet-insights-go/internal/metrics"
	"fleet-insights-go/internal/pipeline"
	"fleet-insights-go/internal/store"
	"fleet-insights-go/internal/types"
)

func main() {
	_ = godotenv.Load() // loads .env

	configPath := flag.String("config", os.Getenv("FLEET_CONFIG"), "path to a YAML or JSON config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.New().WithError(err).Fatal("invalid configuration")
	}

	log := logger.NewWithOptions(logger.Options{Environment: cfg.Environment, Level: cfg.Log.Level})
	log.WithField("service", "fleet-insights-go").Info("starting service")

	collector, err := metrics.NewCollector()
	if err != nil {
		log.WithError(err).Fatal("failed to register metrics")
	}

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		log.WithError(err).Fatal("failed to open store")
	}
	defer st.Close()

	source := dataset.NewSource(cfg.Dataset.Path, cfg.Dataset.SheetsID, cfg.Dataset.FetchTimeout())
	reload := func(ctx context.Context) ([]types.Record, error) {
		records, err := source.Load(ctx)
		if err != nil {
			return nil, err
		}
		if err := st.Save(ctx, source.Name(), records); err != nil {
			return nil, err
		}
		return records, nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	records, err := st.Load(ctx)
	switch {
	case errors.Is(err, store.ErrEmptySnapshot) && source.Configured():
		log.WithField("source", source.Name()).Info("store is empty, importing dataset")
		if records, err = reload(ctx); err != nil {
			log.WithError(err).Fatal("failed to import dataset")
		}
	case errors.Is(err, store.ErrEmptySnapshot):
		log.Warn("store is empty and no dataset source is configured")
	case err != nil:
		log.WithError(err).Fatal("failed to read store")
	}
	if imp, err := st.LastImport(ctx); err == nil {
		log.WithField("source", imp.Source).
			WithField("imported_at", imp.ImportedAt).
			Info("serving snapshot")
	}
	summary := dataset.Summarize(records)
	log.WithField("records", len(records)).
		WithField("vehicles", summary.Stats.TotalVehicles).
		WithField("months", summary.Months).
		Info("dataset loaded")

	runner := pipeline.New(pipeline.Options{
		DropThreshold:        cfg.Analysis.Drop(),
		ConsistencyThreshold: cfg.Analysis.ConsistencyThreshold,
	}, collector, log)

	opts := api.Options{Runner: runner, Metrics: collector, Logger: log}
	if source.Configured() {
		opts.Reload = reload
	}
	server := api.NewServer(records, opts)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("shutdown failed")
		}
	}()

	log.WithField("addr", cfg.Server.Addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
	log.Info("server stopped")
}
