package services

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// buildWorkbook serializes an in-memory workbook with the given rows on the
// first sheet.
func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("building cell coordinate: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("writing row %d: %v", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("serializing workbook: %v", err)
	}
	return buf
}

func templateHeader() []interface{} {
	return []interface{}{"First Name", "Last Name", "Contact", "Email", "Address", "Password"}
}

func TestIngestUserSheetRowNumbering(t *testing.T) {
	t.Parallel()

	buf := buildWorkbook(t, [][]interface{}{
		templateHeader(),
		{"Jane", "Smith", "0712345678", "jane@gmail.com", "12 Main St", "Passw0rd#"},
		{"John", "Doe", "0787654321", "john@gmail.com", "9 Side Ave", "Secur3@pw"},
	})

	rows, err := IngestUserSheetFromReader(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	// Header is spreadsheet row 1, so data starts at 2.
	if rows[0].Row != 2 || rows[1].Row != 3 {
		t.Fatalf("expected row numbers 2 and 3, got %d and %d", rows[0].Row, rows[1].Row)
	}
	if rows[0].Data.FirstName != "Jane" || rows[1].Data.FirstName != "John" {
		t.Fatalf("rows out of order: %+v", rows)
	}
}

func TestIngestUserSheetMissingColumns(t *testing.T) {
	t.Parallel()

	buf := buildWorkbook(t, [][]interface{}{
		{"First Name", "Last Name", "Email"},
		{"Jane", "Smith", "jane@gmail.com"},
	})

	_, err := IngestUserSheetFromReader(buf)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}

	missing := strings.Join(schemaErr.Missing, ",")
	for _, column := range []string{"Contact", "Address", "Password"} {
		if !strings.Contains(missing, column) {
			t.Errorf("expected %q in missing columns, got %v", column, schemaErr.Missing)
		}
	}
}

func TestIngestUserSheetHeaderMatchingIsLenient(t *testing.T) {
	t.Parallel()

	// Case and surrounding whitespace must not matter.
	buf := buildWorkbook(t, [][]interface{}{
		{" first name ", "LAST NAME", "contact", "Email", "ADDRESS ", " password"},
		{"Jane", "Smith", "0712345678", "jane@gmail.com", "12 Main St", "Passw0rd#"},
	})

	rows, err := IngestUserSheetFromReader(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].Data.LastName != "Smith" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestIngestUserSheetEmpty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rows [][]interface{}
	}{
		{"header only", [][]interface{}{templateHeader()}},
		{"header and blank rows", [][]interface{}{
			templateHeader(),
			{"", "", "", "", "", ""},
			{"  ", "", "", "", "", ""},
		}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := buildWorkbook(t, tt.rows)
			_, err := IngestUserSheetFromReader(buf)
			if !errors.Is(err, ErrEmptyFile) {
				t.Fatalf("expected ErrEmptyFile, got %v", err)
			}
		})
	}
}

func TestIngestUserSheetBlankCellsPreserved(t *testing.T) {
	t.Parallel()

	// Missing trailing cells come back as empty strings, so validation can
	// report them as missing fields rather than the parser dropping the row.
	buf := buildWorkbook(t, [][]interface{}{
		templateHeader(),
		{"Jane", "Smith", "0712345678"},
	})

	rows, err := IngestUserSheetFromReader(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Data.Email != "" || rows[0].Data.Address != "" || rows[0].Data.Password != "" {
		t.Fatalf("expected blank cells as empty strings, got %+v", rows[0].Data)
	}
}

func TestIngestUserSheetNotASpreadsheet(t *testing.T) {
	t.Parallel()

	_, err := IngestUserSheetFromReader(strings.NewReader("this is not a workbook"))
	if !errors.Is(err, ErrParseFailed) {
		t.Fatalf("expected ErrParseFailed, got %v", err)
	}
}

func TestIngestUserSheetSkipsInteriorBlankRows(t *testing.T) {
	t.Parallel()

	// A blank row between data rows is skipped, but the rows around it keep
	// their spreadsheet positions.
	buf := buildWorkbook(t, [][]interface{}{
		templateHeader(),
		{"Jane", "Smith", "0712345678", "jane@gmail.com", "12 Main St", "Passw0rd#"},
		{"", "", "", "", "", ""},
		{"John", "Doe", "0787654321", "john@gmail.com", "9 Side Ave", "Secur3@pw"},
	})

	rows, err := IngestUserSheetFromReader(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Row != 2 || rows[1].Row != 4 {
		t.Fatalf("expected row numbers 2 and 4, got %d and %d", rows[0].Row, rows[1].Row)
	}
}
