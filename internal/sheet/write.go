package sheet

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX writes header+data records into a new workbook at path.
func WriteXLSX(path, sheetName string, records [][]string) error {
	if sheetName == "" {
		sheetName = DefaultSheet
	}

	f := excelize.NewFile()
	defer f.Close()

	if sheetName != DefaultSheet {
		if err := f.SetSheetName(DefaultSheet, sheetName); err != nil {
			return fmt.Errorf("renaming sheet: %w", err)
		}
	}
	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(rec))
		for j, v := range rec {
			values[j] = v
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// SampleRecords is a small navigation export covering every node variant.
func SampleRecords() [][]string {
	return [][]string{
		RequiredColumns,
		{"/", "0", "1", "1", "1", "NULL", "0", "NULL", "Home", "Home"},
		{"/about-cancer", "1", "1.1", "1", "1", "4", "1", "3", "About Cancer", "About Cancer"},
		{"/about-cancer/causes", "2", "1.1.1", "1", "1", "12", "0", "NULL", "Causes & Prevention", "Causes"},
		{"/about-cancer/coping", "2", "1.1.2", "1", "1", "7", "0", "NULL", "NULL", "Coping with Cancer"},
		{"/about-cancer/legacy", "2", "1.1.3", "0", "1", "2", "0", "NULL", "Legacy Pages", "Legacy"},
		{"/types", "1", "1.2", "1", "0", "NULL", "1", "2", "Cancer Types", "Cancer Types"},
		{"/types/breast", "2", "1.2.1", "1", "1", "9", "0", "NULL", "Breast Cancer", "Breast Cancer"},
		{"/research", "1", "1.3", "1", "1", "3", "0", "NULL", "Research", "Research"},
		{"/research/areas", "2", "1.3.1", "1", "1", "5", "1", "2", "Research Areas", "Research Areas"},
	}
}
