// Package export builds XLSX workbooks for list downloads.
package export

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type for .xlsx responses.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet is one worksheet: a header row then data rows. Cell values may be
// strings, numbers, bools or time.Time; nil leaves the cell blank.
type Sheet struct {
	Title  string
	Header []string
	Rows   [][]any
}

// Workbook wraps an excelize file.
type Workbook struct {
	File *excelize.File
}

// NewWorkbook writes sheets in order. The first sheet replaces the default
// "Sheet1". Headers are bold with an auto-filter.
func NewWorkbook(sheets []Sheet) (*Workbook, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("export: no sheets")
	}
	f := excelize.NewFile()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	for i, s := range sheets {
		name := s.Title
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("new sheet: %w", err)
		}

		for col, h := range s.Header {
			cell := fmt.Sprintf("%s1", colName(col+1))
			if err := f.SetCellStr(name, cell, h); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
		if len(s.Header) > 0 {
			end := colName(len(s.Header)) + "1"
			_ = f.SetCellStyle(name, "A1", end, bold)
			_ = f.AutoFilter(name, "A1:"+end, nil)
		}

		for r, row := range s.Rows {
			for c, val := range row {
				if val == nil {
					continue
				}
				cell := fmt.Sprintf("%s%d", colName(c+1), r+2)
				if err := setCell(f, name, cell, val); err != nil {
					return nil, fmt.Errorf("set cell %s: %w", cell, err)
				}
			}
		}

		for c := 1; c <= len(s.Header); c++ {
			_ = f.SetColWidth(name, colName(c), colName(c), columnWidth(s, c-1))
		}
	}
	return &Workbook{File: f}, nil
}

func setCell(f *excelize.File, sheet, cell string, val any) error {
	switch v := val.(type) {
	case string:
		return f.SetCellStr(sheet, cell, v)
	case time.Time:
		return f.SetCellStr(sheet, cell, v.Format("2006-01-02"))
	case *time.Time:
		if v == nil {
			return nil
		}
		return f.SetCellStr(sheet, cell, v.Format("2006-01-02"))
	case *int:
		if v == nil {
			return nil
		}
		return f.SetCellInt(sheet, cell, int64(*v))
	case *float64:
		if v == nil {
			return nil
		}
		return f.SetCellFloat(sheet, cell, *v, -1, 64)
	case float64:
		return f.SetCellFloat(sheet, cell, v, -1, 64)
	default:
		return f.SetCellValue(sheet, cell, v)
	}
}

// columnWidth sizes a column from its header and the first 50 rows.
func columnWidth(s Sheet, c int) float64 {
	maxim := len([]rune(s.Header[c]))
	for r := 0; r < min(50, len(s.Rows)); r++ {
		if c >= len(s.Rows[r]) {
			continue
		}
		if l := len([]rune(cellText(s.Rows[r][c]))); l > maxim {
			maxim = l
		}
	}
	w := float64(maxim) * 1.1
	if w < 10 {
		w = 10
	}
	if w > 50 {
		w = 50
	}
	return w
}

func cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case *int:
		if x == nil {
			return ""
		}
		return fmt.Sprint(*x)
	case *float64:
		if x == nil {
			return ""
		}
		return fmt.Sprint(*x)
	case *time.Time, time.Time:
		return "2006-01-02"
	default:
		return fmt.Sprint(x)
	}
}

// Write streams the workbook to w.
func (wb *Workbook) Write(w io.Writer) error {
	_, err := wb.File.WriteTo(w)
	return err
}

// Close releases temporary files held by excelize.
func (wb *Workbook) Close() error { return wb.File.Close() }

// Serve writes the workbook as an attachment named filename.
func (wb *Workbook) Serve(w http.ResponseWriter, filename string) error {
	w.Header().Set("Content-Type", ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	return wb.Write(w)
}

// Filename builds "<base>-YYYY-MM-DD.xlsx".
func Filename(base string, day time.Time) string {
	return fmt.Sprintf("%s-%s.xlsx", base, day.Format("2006-01-02"))
}

// colName converts a 1-based column index to letters: 1 -> A, 27 -> AA.
func colName(n int) string {
	name, _ := excelize.ColumnNumberToName(n)
	return name
}
