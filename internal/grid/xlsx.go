package grid

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXSource reads grid cells out of an xlsx workbook sheet.
type XLSXSource struct {
	file  *excelize.File
	sheet string
}

// OpenXLSX opens the workbook at path. When sheet is empty the workbook's
// first sheet is used.
func OpenXLSX(path, sheet string) (*XLSXSource, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		f.Close()
		return nil, fmt.Errorf("sheet %q not found in workbook", sheet)
	}
	return &XLSXSource{file: f, sheet: sheet}, nil
}

// Sheet returns the name of the sheet being read.
func (s *XLSXSource) Sheet() string {
	return s.sheet
}

func (s *XLSXSource) Cell(row, col int) (string, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", err
	}
	v, err := s.file.GetCellValue(s.sheet, cell)
	if err != nil {
		return "", fmt.Errorf("failed to read cell %s: %w", cell, err)
	}
	return strings.TrimSpace(v), nil
}

func (s *XLSXSource) Close() error {
	return s.file.Close()
}
