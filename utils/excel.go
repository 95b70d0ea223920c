package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"github.com/xuri/excelize/v2"
)

const exportDir = "./public/files"

// EnsureDirectoryExists ensures the specified directory exists before file saving
func EnsureDirectoryExists(filePath string) error {
	dir := filepath.Dir(filePath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		err := os.MkdirAll(dir, 0755)
		if err != nil {
			return fmt.Errorf("error creating directory: %v", err)
		}
	}
	return nil
}

// GenerateExcel creates an Excel workbook under ./public/files from a slice
// of structs. Each header must name an exported struct field; the cell
// value is taken from that field via reflection. Returns the public path of
// the saved file.
func GenerateExcel(data interface{}, taskName string, headers []string) (string, error) {
	if err := os.MkdirAll(exportDir, 0755); err != nil {
		return "", fmt.Errorf("failed to ensure export directory exists: %v", err)
	}

	f := excelize.NewFile()
	sheetName := "Sheet1"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}

	// Write headers dynamically
	for col, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune(65+col))) // A1, B1, C1, etc.
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return "", fmt.Errorf("error setting header %s: %v", header, err)
		}
	}

	dataSlice := reflect.ValueOf(data)
	if dataSlice.Kind() != reflect.Slice {
		return "", fmt.Errorf("expected data to be a slice, got %v", dataSlice.Kind())
	}

	for row := 0; row < dataSlice.Len(); row++ {
		item := dataSlice.Index(row).Interface()

		for col, header := range headers {
			field := reflect.ValueOf(item).FieldByName(header)
			if !field.IsValid() {
				log.Printf("Field %s not found for row %d", header, row+2)
				continue
			}
			cell := fmt.Sprintf("%s%d", string(rune(65+col)), row+2)
			if err := f.SetCellValue(sheetName, cell, field.Interface()); err != nil {
				return "", fmt.Errorf("error setting value for field %s (row %d): %v", header, row+2, err)
			}
		}
	}

	f.SetActiveSheet(index)

	fileName := fmt.Sprintf("%s_%s.xlsx", taskName, time.Now().Format("2006-01-02_15-04-05"))
	publicPath := fmt.Sprintf("/public/files/%s", fileName)
	diskPath := filepath.Join(exportDir, fileName)

	if err := f.SaveAs(diskPath); err != nil {
		log.Printf("Error saving Excel file: %v", err)
		return "", err
	}

	return publicPath, nil
}

// GenerateUserTemplate builds the bulk upload template workbook: the exact
// required header row plus illustrative example rows (never validated).
func GenerateUserTemplate(headers []string) ([]byte, error) {
	f := excelize.NewFile()
	sheetName := "Users"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %v", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerRow := make([]interface{}, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &headerRow); err != nil {
		return nil, fmt.Errorf("error writing header row: %v", err)
	}

	examples := [][]interface{}{
		{"John", "Doe", "9876543210", "john@gmail.com", "123 Main St", "Pass@123"},
		{"Jane", "Smith", "9876543211", "jane@gmail.com", "456 Oak Ave", "Test@456"},
	}
	for i, example := range examples {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetName, cell, &example); err != nil {
			return nil, fmt.Errorf("error writing example row: %v", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("error serializing template: %v", err)
	}
	return buf.Bytes(), nil
}
