// Package excel reads lightcurves from xlsx/csv files and exports
// diagnostic workbooks.
package excel

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"modshift/domain/lightcurve"
)

// LightcurveReader handles reading lightcurve files: two numeric columns,
// time in days then flux, with an optional header row.
type LightcurveReader struct{}

// NewLightcurveReader creates a reader; the format is chosen per file by
// extension.
func NewLightcurveReader() *LightcurveReader {
	return &LightcurveReader{}
}

// Read loads a lightcurve from the given path.
func (r *LightcurveReader) Read(path string) (*lightcurve.TimeSeries, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("lightcurve file not found: %s", path)
	}

	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSVRows(path)
	case ".xlsx":
		rows, err = readExcelRows(path)
	default:
		return nil, fmt.Errorf("unsupported lightcurve file type: %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}
	return parseRows(rows, path)
}

func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}

func readExcelRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Printf("[LightcurveReader] close %s: %v", path, cerr)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no sheets: %s", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read Excel rows: %w", err)
	}
	return rows, nil
}

func parseRows(rows [][]string, path string) (*lightcurve.TimeSeries, error) {
	ts := &lightcurve.TimeSeries{}
	for i, row := range rows {
		if len(row) < 2 {
			continue
		}
		t, errT := strconv.ParseFloat(strings.TrimSpace(row[0]), 64)
		f, errF := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if errT != nil || errF != nil {
			if i == 0 {
				// header row
				continue
			}
			return nil, fmt.Errorf("non-numeric lightcurve row %d in %s", i+1, path)
		}
		ts.Time = append(ts.Time, t)
		ts.Flux = append(ts.Flux, f)
	}
	if err := ts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid lightcurve in %s: %w", path, err)
	}
	return ts, nil
}
