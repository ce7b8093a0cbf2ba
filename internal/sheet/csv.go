package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSVParser handles CSV exports of the navigation sheet.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var (
		records [][]string
		lines   []int
	)
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		line, _ := reader.FieldPos(0)
		records = append(records, rec)
		lines = append(lines, line)
	}
	return fromRecords(records, lines)
}
