package services

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// TemplateColumns is the exact header row of the bulk upload template.
var TemplateColumns = []string{"First Name", "Last Name", "Contact", "Email", "Address", "Password"}

var (
	// ErrEmptyFile is returned when the workbook has a header but no data
	// rows (or no rows at all). An empty upload is an error, not a
	// zero-length success.
	ErrEmptyFile = errors.New("file contains no data rows")

	// ErrParseFailed is returned when the upload cannot be decoded as a
	// spreadsheet at all.
	ErrParseFailed = errors.New("failed to parse file as a spreadsheet")
)

// SchemaError reports required template columns missing from the header
// row, so the user can fix the file without guessing.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing columns: %s", strings.Join(e.Missing, ", "))
}

// IngestUserSheet reads the first sheet of the workbook at path into
// row-tagged candidates, in sheet order.
func IngestUserSheet(path string) ([]RowTaggedCandidate, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}
	defer f.Close()
	return ingestRows(f)
}

// IngestUserSheetFromReader is IngestUserSheet for in-memory uploads.
func IngestUserSheetFromReader(r io.Reader) ([]RowTaggedCandidate, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}
	defer f.Close()
	return ingestRows(f)
}

func ingestRows(f *excelize.File) ([]RowTaggedCandidate, error) {
	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	columnIndex, missing := mapHeaderColumns(rows[0])
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	var candidates []RowTaggedCandidate
	for i, row := range rows {
		if i == 0 { // header row
			continue
		}
		if blankRow(row) {
			continue
		}

		cell := func(column string) string {
			idx := columnIndex[column]
			if idx >= len(row) {
				return ""
			}
			return row[idx]
		}

		candidates = append(candidates, RowTaggedCandidate{
			// Spreadsheet row: header is row 1, first data row is row 2.
			Row: i + 1,
			Data: CandidateUser{
				FirstName: cell("First Name"),
				LastName:  cell("Last Name"),
				Contact:   cell("Contact"),
				Email:     cell("Email"),
				Address:   cell("Address"),
				Password:  cell("Password"),
			},
		})
	}

	if len(candidates) == 0 {
		return nil, ErrEmptyFile
	}
	return candidates, nil
}

// mapHeaderColumns matches the header row against the template columns,
// case- and whitespace-insensitively, returning the index of each required
// column and the list of columns that could not be found.
func mapHeaderColumns(header []string) (map[string]int, []string) {
	normalized := make(map[string]int, len(header))
	for idx, cell := range header {
		normalized[strings.ToLower(strings.TrimSpace(cell))] = idx
	}

	columnIndex := make(map[string]int, len(TemplateColumns))
	var missing []string
	for _, column := range TemplateColumns {
		idx, ok := normalized[strings.ToLower(column)]
		if !ok {
			missing = append(missing, column)
			continue
		}
		columnIndex[column] = idx
	}
	return columnIndex, missing
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
