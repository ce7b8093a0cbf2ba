package sheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the worksheet name the navigation export uses.
const DefaultSheet = "Sheet1"

// XLSXParser handles Excel workbooks.
type XLSXParser struct {
	Sheet string
}

func (p *XLSXParser) Parse(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	name := p.Sheet
	if name == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		name = sheets[0]
	}
	idx, err := f.GetSheetIndex(name)
	if err != nil {
		return nil, fmt.Errorf("look up sheet %q: %w", name, err)
	}
	if idx < 0 {
		return nil, fmt.Errorf("workbook has no sheet named %q", name)
	}

	records, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}
	// GetRows keeps empty rows, so record indexes are sheet row numbers.
	return fromRecords(records, nil)
}
