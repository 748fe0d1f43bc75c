package dataset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"fleet-insights-go/internal/types"
)

const sheetsBaseURL = "https://docs.google.com/spreadsheets/d/"

// SheetsClient downloads a Google Sheets document as CSV.
type SheetsClient struct {
	HTTP    *http.Client
	BaseURL string
	// MaxElapsed bounds the whole retry loop.
	MaxElapsed time.Duration
}

// NewSheetsClient returns a client retrying for at most maxElapsed.
func NewSheetsClient(maxElapsed time.Duration) *SheetsClient {
	return &SheetsClient{
		HTTP:       &http.Client{Timeout: 12 * time.Second},
		BaseURL:    sheetsBaseURL,
		MaxElapsed: maxElapsed,
	}
}

// ExportURL is the CSV export address of a sheet.
func (c *SheetsClient) ExportURL(sheetID string) string {
	base := c.BaseURL
	if base == "" {
		base = sheetsBaseURL
	}
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(sheetID) + "/export?format=csv"
}

// Fetch downloads and parses the sheet. Transport errors and 5xx responses
// are retried with exponential backoff; other failures are returned at once.
func (c *SheetsClient) Fetch(ctx context.Context, sheetID string) ([]types.Record, error) {
	body, err := c.download(ctx, c.ExportURL(sheetID))
	if err != nil {
		return nil, err
	}
	raw, err := ParseCSV(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse sheet: %w", err)
	}
	return Normalize(raw), nil
}

func (c *SheetsClient) download(ctx context.Context, target string) ([]byte, error) {
	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	bo := backoff.NewExponentialBackOff()
	if c.MaxElapsed > 0 {
		bo.MaxElapsedTime = c.MaxElapsed
	}
	var body []byte
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		switch {
		case resp.StatusCode >= 500:
			return fmt.Errorf("sheets server error: %s", resp.Status)
		case resp.StatusCode >= 300:
			return backoff.Permanent(fmt.Errorf("failed to load sheet: %s", resp.Status))
		}
		body = b
		return nil
	}
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return nil, fmt.Errorf("fetch sheet: %w", err)
	}
	return body, nil
}
