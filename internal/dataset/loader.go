package dataset

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"fleet-insights-go/internal/logger"
	"fleet-insights-go/internal/types"
)

var (
	ErrNoSheets          = errors.New("no sheets")
	ErrNoRows            = errors.New("no data rows")
	ErrNotArray          = errors.New("json document must be an array of records")
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// LoadFile reads fleet records from an .xlsx, .csv or .json file and parses
// their averages.
func LoadFile(path string) ([]types.Record, error) {
	log := logger.New().WithField("component", "dataset.loader").WithField("path", path)
	var (
		raw []types.RawRecord
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		raw, err = LoadXLSX(path)
	case ".csv", ".json":
		var f *os.File
		f, err = os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open file: %w", err)
		}
		defer f.Close()
		if ext == ".csv" {
			raw, err = ParseCSV(f)
		} else {
			raw, err = ParseJSON(f)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		log.WithError(err).Error("load failed")
		return nil, err
	}
	log.WithField("rows", len(raw)).Debug("dataset rows read")
	return Normalize(raw), nil
}

// LoadXLSX reads the first sheet of a workbook on disk.
func LoadXLSX(path string) ([]types.RawRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return readWorkbook(f)
}

// ParseXLSX reads the first sheet of a workbook from r.
func ParseXLSX(r io.Reader) ([]types.RawRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return readWorkbook(f)
}

func readWorkbook(f *excelize.File) ([]types.RawRecord, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, ErrNoRows
	}
	idx := resolveColumns(rows[0])
	var out []types.RawRecord
	for _, r := range rows[1:] {
		if blank(r) {
			continue
		}
		rec := rowRecord(r, idx)
		// Workbook cells hold plain numbers, not locale text.
		rec.TotalDistance = plainNumber(cell(r, idx, colTotalKm))
		rec.LoadedDistance = plainNumber(cell(r, idx, colLoadedKm))
		if rec.AverageRaw == "" {
			rec.AverageRaw = "0"
		}
		if rec.AverageLoadedRaw == "" {
			rec.AverageLoadedRaw = "0"
		}
		out = append(out, rec)
	}
	return out, nil
}

// ParseCSV reads a CSV export with a header row. Rows with fewer than nine
// fields or an empty month are skipped.
func ParseCSV(r io.Reader) ([]types.RawRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	idx := resolveColumns(header)

	var out []types.RawRecord
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return out, fmt.Errorf("error at line %d: %w", line, err)
		}
		if len(row) < int(numColumns) || cell(row, idx, colMonth) == "" {
			continue
		}
		rec := rowRecord(row, idx)
		rec.TotalDistance = ParseDistance(cell(row, idx, colTotalKm))
		rec.LoadedDistance = ParseDistance(cell(row, idx, colLoadedKm))
		out = append(out, rec)
	}
	return out, nil
}

// ParseJSON reads an array of objects keyed by spreadsheet headers.
func ParseJSON(r io.Reader) ([]types.RawRecord, error) {
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	items, ok := doc.([]any)
	if !ok {
		return nil, ErrNotArray
	}
	out := make([]types.RawRecord, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, objectRecord(obj))
	}
	return out, nil
}

// objectRecord maps one JSON object onto the columns. When several keys alias
// the same column, the first non-null one in byte order of the key wins.
func objectRecord(obj map[string]any) types.RawRecord {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var fields [numColumns]any
	for _, k := range keys {
		c, ok := headerAliases[normalizeHeader(k)]
		if !ok || fields[c] != nil {
			continue
		}
		fields[c] = obj[k]
	}
	return types.RawRecord{
		Month:            text(fields[colMonth]),
		Vehicle:          text(fields[colVehicle]),
		Brand:            text(fields[colBrand]),
		Model:            text(fields[colModel]),
		Group:            text(fields[colGroup]),
		TotalDistance:    number(fields[colTotalKm]),
		LoadedDistance:   number(fields[colLoadedKm]),
		AverageRaw:       text(fields[colAverage]),
		AverageLoadedRaw: text(fields[colLoadedAverage]),
	}
}

func rowRecord(row []string, idx [numColumns]int) types.RawRecord {
	return types.RawRecord{
		Month:            cell(row, idx, colMonth),
		Vehicle:          cell(row, idx, colVehicle),
		Brand:            cell(row, idx, colBrand),
		Model:            cell(row, idx, colModel),
		Group:            cell(row, idx, colGroup),
		AverageRaw:       cell(row, idx, colAverage),
		AverageLoadedRaw: cell(row, idx, colLoadedAverage),
	}
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func plainNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// number reads a distance that may be a JSON number or locale text.
func number(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		return ParseDistance(t)
	}
	return 0
}
