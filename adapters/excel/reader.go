// Package excel reads pitch event files and exports analysis workbooks.
// Both xlsx and csv inputs are supported; cell mapping mirrors the HTTP
// source so a saved search export analyzes identically to a live fetch.
package excel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"pitchlens/adapters/statcast"
	"pitchlens/domain/pitch"
	"pitchlens/internal/errors"
)

// DataReader handles reading pitch event files in xlsx or csv form.
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a reader; the file type follows the extension.
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// ReadEvents parses the file into domain pitch events.
func (r *DataReader) ReadEvents() ([]pitch.PitchEvent, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.NotFound(fmt.Sprintf("%s file %s", strings.ToUpper(r.fileType), r.filePath))
	}

	switch r.fileType {
	case "csv":
		return r.readCSVEvents()
	case "xlsx":
		return r.readExcelEvents()
	default:
		return nil, errors.InvalidInput(fmt.Sprintf("unsupported file type: %s", r.fileType))
	}
}

// FetchSeason adapts the reader to the SeasonSource shape so a local file
// can stand in for the live source. The IDs are ignored; the file is the
// season.
func (r *DataReader) FetchSeason(_ context.Context, _, _ int) ([]pitch.PitchEvent, error) {
	return r.ReadEvents()
}

func (r *DataReader) readCSVEvents() ([]pitch.PitchEvent, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open CSV file")
	}
	defer file.Close()

	return statcast.ParseCSV(file)
}

// readExcelEvents reads Sheet1 and feeds the rows through the same
// header-keyed mapping as the CSV path.
func (r *DataReader) readExcelEvents() ([]pitch.PitchEvent, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open Excel file")
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, errors.Wrap(err, "failed to read Sheet1")
	}
	if len(rows) < 2 {
		return nil, errors.InvalidInput("file must have at least a header row and one data row")
	}

	var sb strings.Builder
	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(csvEscape(strings.TrimSpace(cell)))
		}
		sb.WriteByte('\n')
	}
	return statcast.ParseCSV(strings.NewReader(sb.String()))
}

func csvEscape(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
