package config

import (
	"fmt"
	"time"
)

// LogConfig selects the log level.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `json:"level"`
}

func (c *LogConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
}

func (c LogConfig) Validate() error {
	switch c.Level {
	case "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("unknown level %s", c.Level)
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr string `json:"addr"`
}

func (c *ServerConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

func (c ServerConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	return nil
}

// DatasetConfig says where fleet records come from. Path wins over SheetsID
// when both are set.
type DatasetConfig struct {
	// Path is a local .xlsx, .csv or .json file.
	Path string `json:"path"`
	// SheetsID is a Google Sheets document exported as CSV.
	SheetsID string `json:"sheets_id"`
	// FetchTimeoutSeconds bounds the retries of a remote fetch.
	FetchTimeoutSeconds int `json:"fetch_timeout_seconds"`
}

func (c *DatasetConfig) SetDefaults() {
	if c.FetchTimeoutSeconds == 0 {
		c.FetchTimeoutSeconds = 12
	}
}

func (c DatasetConfig) Validate() error {
	if c.FetchTimeoutSeconds < 0 {
		return fmt.Errorf("fetch_timeout_seconds must not be negative")
	}
	return nil
}

// FetchTimeout returns FetchTimeoutSeconds as a duration.
func (c DatasetConfig) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// StoreConfig locates the SQLite snapshot.
type StoreConfig struct {
	Path string `json:"path"`
}

func (c *StoreConfig) SetDefaults() {
	if c.Path == "" {
		c.Path = "fleet.db"
	}
}

// AnalysisConfig tunes the analyses that take a threshold.
type AnalysisConfig struct {
	// DropThreshold is the anomaly variation cut, in percent. Must be <= 0.
	DropThreshold *float64 `json:"drop_threshold"`
	// ConsistencyThreshold is the coefficient of variation cut, in percent.
	ConsistencyThreshold float64 `json:"consistency_threshold"`
}

func (c *AnalysisConfig) SetDefaults() {
	if c.DropThreshold == nil {
		v := -10.0
		c.DropThreshold = &v
	}
	if c.ConsistencyThreshold == 0 {
		c.ConsistencyThreshold = 15
	}
}

func (c AnalysisConfig) Validate() error {
	if c.DropThreshold != nil && *c.DropThreshold > 0 {
		return fmt.Errorf("drop_threshold must be <= 0, got %v", *c.DropThreshold)
	}
	if c.ConsistencyThreshold <= 0 {
		return fmt.Errorf("consistency_threshold must be positive")
	}
	return nil
}

// Drop returns the configured anomaly threshold.
func (c AnalysisConfig) Drop() float64 {
	if c.DropThreshold == nil {
		return -10
	}
	return *c.DropThreshold
}
