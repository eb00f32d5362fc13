package market

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

var csvHeader = []string{"date", "open", "high", "low", "close", "volume"}

// WriteCSV writes the series with a header row.
func (s Series) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, p := range s {
		row := []string{
			p.Date.Format(DateLayout),
			f(p.Open), f(p.High), f(p.Low), f(p.Close), f(p.Volume),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a series written by WriteCSV. The result is sanitized.
func ReadCSV(r io.Reader) (Series, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read series csv: %w", err)
	}

	var points []PricePoint
	for i, row := range rows {
		if i == 0 && len(row) > 0 && row[0] == csvHeader[0] {
			continue
		}
		if len(row) < 6 {
			return nil, fmt.Errorf("series csv row %d: want 6 fields, got %d", i, len(row))
		}
		date, err := time.Parse(DateLayout, row[0])
		if err != nil {
			return nil, fmt.Errorf("series csv row %d: %w", i, err)
		}
		vals := make([]float64, 5)
		for j := 1; j < 6; j++ {
			v, err := strconv.ParseFloat(row[j], 64)
			if err != nil {
				return nil, fmt.Errorf("series csv row %d field %s: %w", i, csvHeader[j], err)
			}
			vals[j-1] = v
		}
		points = append(points, PricePoint{
			Date: date, Open: vals[0], High: vals[1], Low: vals[2], Close: vals[3], Volume: vals[4],
		})
	}
	return Sanitize(points), nil
}

// LoadFile reads a cached series from path. A missing file returns an empty
// series and no error so a fresh cache can be built from scratch.
func LoadFile(path string) (Series, error) {
	fp, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Series{}, nil
		}
		return nil, err
	}
	defer fp.Close()
	return ReadCSV(fp)
}

// SaveFile writes the series to path, replacing any existing cache.
func (s Series) SaveFile(path string) error {
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.WriteCSV(fp); err != nil {
		fp.Close()
		return err
	}
	return fp.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
