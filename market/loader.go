package market

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ulikunitz/xz"
	"github.com/xyproto/unzip"
)

// LoadCSV reads a bar dataset from path. The expected row format is
//
//	time,open,high,low,close,volume
//
// with an optional header row. Timestamps are RFC3339 or unix seconds.
// Datasets compressed as .xz or .zip are decompressed transparently, so
// multi-year minute files can be kept compressed on disk.
func LoadCSV(path string) (Series, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xz":
		return loadXZ(path)
	case ".zip":
		return loadZip(path)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open dataset: %w", err)
		}
		defer f.Close()
		return ReadBars(f)
	}
}

func loadXZ(path string) (Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r, err := xz.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("xz dataset %s: %w", path, err)
	}
	return ReadBars(r)
}

func loadZip(path string) (Series, error) {
	dir, err := os.MkdirTemp("", "futuresim-dataset-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	if err := unzip.Extract(path, dir); err != nil {
		return nil, fmt.Errorf("unzip dataset %s: %w", path, err)
	}

	// Use the first CSV in the archive; datasets are one file per symbol.
	var csvPath string
	err = filepath.Walk(dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if csvPath == "" && !info.IsDir() && strings.EqualFold(filepath.Ext(p), ".csv") {
			csvPath = p
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if csvPath == "" {
		return nil, fmt.Errorf("zip dataset %s contains no csv", path)
	}

	f, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadBars(f)
}

// ReadBars parses bar rows from r and validates chronological order.
func ReadBars(r io.Reader) (Series, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var bars Series
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read bars: %w", err)
		}
		line++

		if len(rec) < 5 {
			return nil, fmt.Errorf("read bars: line %d: want at least 5 fields, got %d", line, len(rec))
		}
		if line == 1 && isHeader(rec[0]) {
			continue
		}

		ts, err := parseBarTime(rec[0])
		if err != nil {
			return nil, fmt.Errorf("read bars: line %d: %w", line, err)
		}

		vals := make([]float64, 0, 5)
		for _, s := range rec[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, fmt.Errorf("read bars: line %d: bad number %q", line, s)
			}
			vals = append(vals, v)
			if len(vals) == 5 {
				break
			}
		}

		b := Bar{
			Time:  ts,
			Open:  vals[0],
			High:  vals[1],
			Low:   vals[2],
			Close: vals[3],
		}
		if len(vals) > 4 {
			b.Volume = vals[4]
		}
		// Exchange kline dumps append close_time, quote_volume,
		// trade_count after the volume column.
		if len(rec) >= 9 {
			if qv, err := strconv.ParseFloat(strings.TrimSpace(rec[7]), 64); err == nil {
				b.QuoteVolume = qv
			}
			if n, err := strconv.ParseInt(strings.TrimSpace(rec[8]), 10, 64); err == nil {
				b.TradeCount = n
			}
		}
		bars = append(bars, b)
	}

	if err := bars.Validate(); err != nil {
		return nil, err
	}
	return bars, nil
}

func isHeader(field string) bool {
	f := strings.ToLower(strings.TrimSpace(field))
	return f == "time" || f == "timestamp" || f == "date" || f == "open_time"
}

func parseBarTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		// Millisecond stamps are 13 digits; exchange dumps use both.
		if secs > 1e12 {
			return time.UnixMilli(secs).UTC(), nil
		}
		return time.Unix(secs, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("bad timestamp %q", s)
}
