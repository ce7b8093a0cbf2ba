// Package sheet reads navigation rows out of spreadsheet exports.
package sheet

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Column headers of the navigation export.
const (
	ColPath                = "path"
	ColLevel               = "level"
	ColNavIndexCode        = "NavIndexCode"
	ColShowInNav           = "SHOW_IN_NAV"
	ColHasLandingPage      = "Has_Landingpage"
	ColNonLandingPageCount = "nonLandingpage_count"
	ColHasSectionNav       = "Has_Sectionnav"
	ColLevelsToShow        = "LEVELS_TO_SHOW"
	ColNavTitle            = "nav_title"
	ColLandingPage         = "landingpage"
)

// RequiredColumns must all be present in the header row.
var RequiredColumns = []string{
	ColPath,
	ColLevel,
	ColNavIndexCode,
	ColShowInNav,
	ColHasLandingPage,
	ColNonLandingPageCount,
	ColHasSectionNav,
	ColLevelsToShow,
	ColNavTitle,
	ColLandingPage,
}

// Null is the sentinel the database export writes for missing values.
const Null = "NULL"

// Row is one navigation entry as it appears in the sheet. Values are kept raw; the
// classifier decides how to interpret them.
type Row struct {
	Line                int // 1-based line or row in the source file where the record starts
	Path                string
	Level               string
	NavIndexCode        string
	ShowInNav           string
	HasLandingPage      string
	NonLandingPageCount string
	HasSectionNav       string
	LevelsToShow        string
	NavTitle            string
	LandingPage         string
}

// Parser converts a spreadsheet stream into rows.
type Parser interface {
	Parse(r io.Reader) ([]Row, error)
}

// Options controls how a workbook is read.
type Options struct {
	// Sheet is the worksheet to read from workbooks. Empty means the first sheet.
	Sheet string
}

// SupportedExtensions lists the file extensions ForFile understands.
var SupportedExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".csv":  true,
}

// ForFile returns the parser for a filename.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx", ".xlsm":
		return &XLSXParser{Sheet: opts.Sheet}, nil
	case ".csv":
		return &CSVParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported spreadsheet extension: %q", ext)
	}
}

// IsSupported reports whether filename has an extension ForFile accepts.
func IsSupported(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// ReadFile opens path and parses it with the parser for its extension.
func ReadFile(path string, opts Options) ([]Row, error) {
	p, err := ForFile(path, opts)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	rows, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return rows, nil
}

// fromRecords maps a header row plus data rows onto Row values. Cells beyond the end of a
// short row read as empty, and rows with no content at all are skipped. lines[i] is the
// source line of records[i]; when lines is nil, record i sits on line i+1.
func fromRecords(records [][]string, lines []int) ([]Row, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("sheet is empty")
	}

	index := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		index[strings.TrimSpace(h)] = i
	}
	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("header is missing columns: %s", strings.Join(missing, ", "))
	}

	var rows []Row
	for i, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		cell := func(col string) string {
			j := index[col]
			if j >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[j])
		}
		line := i + 2
		if lines != nil {
			line = lines[i+1]
		}
		rows = append(rows, Row{
			Line:                line,
			Path:                cell(ColPath),
			Level:               cell(ColLevel),
			NavIndexCode:        cell(ColNavIndexCode),
			ShowInNav:           cell(ColShowInNav),
			HasLandingPage:      cell(ColHasLandingPage),
			NonLandingPageCount: cell(ColNonLandingPageCount),
			HasSectionNav:       cell(ColHasSectionNav),
			LevelsToShow:        cell(ColLevelsToShow),
			NavTitle:            cell(ColNavTitle),
			LandingPage:         cell(ColLandingPage),
		})
	}
	return rows, nil
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
