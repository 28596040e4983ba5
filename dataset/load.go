package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// rowDTO is the wire shape of one row in the JSON input.
type rowDTO struct {
	Date     string   `json:"Date"`
	Open     *float64 `json:"Open"`
	High     float64  `json:"High,omitempty"`
	Low      float64  `json:"Low,omitempty"`
	Close    float64  `json:"Close,omitempty"`
	AdjClose float64  `json:"Adj Close,omitempty"`
	Volume   float64  `json:"Volume"`
}

// LoadFile reads a dataset from a .json or .csv file.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer f.Close()

	var ds *Dataset
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		ds, err = ReadJSON(f)
	case ".csv":
		ds, err = ReadCSV(f)
	default:
		return nil, fmt.Errorf("unsupported file extension %q (want .csv or .json)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// ReadJSON decodes an array of {"Date","Open",...,"Volume"} objects.
func ReadJSON(r io.Reader) (*Dataset, error) {
	var rows []rowDTO
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	points := make([]PricePoint, 0, len(rows))
	for i, row := range rows {
		date, err := ParseDate(row.Date)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		if row.Open == nil {
			return nil, fmt.Errorf("row %d: missing Open", i+1)
		}
		points = append(points, PricePoint{
			Date:     date,
			Open:     *row.Open,
			High:     row.High,
			Low:      row.Low,
			Close:    row.Close,
			AdjClose: row.AdjClose,
			Volume:   row.Volume,
		})
	}
	return New(points)
}

// ReadCSV reads a Yahoo-style CSV export. Columns are matched by header name;
// Date, Open and Volume are required.
func ReadCSV(r io.Reader) (*Dataset, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV has no rows")
	}

	cols := columnIndex(records[0])
	for _, required := range []string{"date", "open", "volume"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("CSV header has no %q column", required)
		}
	}

	points := make([]PricePoint, 0, len(records)-1)
	for i, rec := range records[1:] {
		line := i + 2
		date, err := ParseDate(field(rec, cols, "date"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		p := PricePoint{Date: date}
		if p.Open, err = parseNumber(field(rec, cols, "open"), true); err != nil {
			return nil, fmt.Errorf("line %d: Open: %w", line, err)
		}
		if p.Volume, err = parseNumber(field(rec, cols, "volume"), false); err != nil {
			return nil, fmt.Errorf("line %d: Volume: %w", line, err)
		}
		// optional columns are best effort
		p.High, _ = parseNumber(field(rec, cols, "high"), false)
		p.Low, _ = parseNumber(field(rec, cols, "low"), false)
		p.Close, _ = parseNumber(field(rec, cols, "close"), false)
		p.AdjClose, _ = parseNumber(field(rec, cols, "adj close"), false)
		points = append(points, p)
	}
	return New(points)
}

func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimPrefix(strings.TrimSpace(name), "\ufeff")
		cols[strings.ToLower(name)] = i
	}
	return cols
}

func field(rec []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func parseNumber(raw string, required bool) (float64, error) {
	if raw == "" || strings.EqualFold(raw, "null") {
		if required {
			return 0, fmt.Errorf("value is empty")
		}
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}

// ParseDate parses an ISO-8601 date or timestamp in local time.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", raw)
}
