package dataset

import (
	"context"
	"errors"
	"time"

	"fleet-insights-go/internal/types"
)

// ErrNoSource is returned when neither a file nor a sheet is configured.
var ErrNoSource = errors.New("no dataset source configured")

// Source locates the fleet records: a local file or a Google Sheets document.
// Path wins when both are set.
type Source struct {
	Path     string
	SheetsID string
	Client   *SheetsClient
}

// NewSource builds a Source whose remote fetches retry for at most timeout.
func NewSource(path, sheetsID string, timeout time.Duration) Source {
	return Source{Path: path, SheetsID: sheetsID, Client: NewSheetsClient(timeout)}
}

// Configured reports whether the source points anywhere.
func (s Source) Configured() bool {
	return s.Path != "" || s.SheetsID != ""
}

// Name identifies the source in import logs.
func (s Source) Name() string {
	switch {
	case s.Path != "":
		return "file:" + s.Path
	case s.SheetsID != "":
		return "sheets:" + s.SheetsID
	}
	return ""
}

// Load reads the records from the source.
func (s Source) Load(ctx context.Context) ([]types.Record, error) {
	switch {
	case s.Path != "":
		return LoadFile(s.Path)
	case s.SheetsID != "":
		client := s.Client
		if client == nil {
			client = NewSheetsClient(12 * time.Second)
		}
		return client.Fetch(ctx, s.SheetsID)
	}
	return nil, ErrNoSource
}
