package export

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// Sheet is one named worksheet of a workbook.
type Sheet struct {
	Name string
	Data Dataset
}

// XLSXExporter renders datasets into an Excel workbook, one sheet per dataset.
type XLSXExporter struct{}

// NewXLSXExporter constructs a spreadsheet exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

type xlsxStyles struct {
	header    int
	highlight int
	tiers     map[Tier]int
}

// Render builds the workbook and returns its bytes.
func (e *XLSXExporter) Render(sheets ...Sheet) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx requires at least one sheet")
	}
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	styles, err := newXLSXStyles(f)
	if err != nil {
		return nil, err
	}

	for i, sheet := range sheets {
		if len(sheet.Data.Headers) == 0 {
			return nil, fmt.Errorf("sheet %q requires at least one header", sheet.Name)
		}
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return nil, fmt.Errorf("create sheet %q: %w", sheet.Name, err)
		}
		if err := writeSheet(f, sheet, styles); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func newXLSXStyles(f *excelize.File) (xlsxStyles, error) {
	styles := xlsxStyles{tiers: make(map[Tier]int)}
	var err error
	styles.header, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return styles, fmt.Errorf("create header style: %w", err)
	}
	styles.highlight, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{highlightFill.Hex()}},
	})
	if err != nil {
		return styles, fmt.Errorf("create highlight style: %w", err)
	}
	for tier, c := range tierFills {
		id, err := f.NewStyle(&excelize.Style{Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{c.Hex()}}})
		if err != nil {
			return styles, fmt.Errorf("create grade style: %w", err)
		}
		styles.tiers[tier] = id
	}
	return styles, nil
}

func writeSheet(f *excelize.File, sheet Sheet, styles xlsxStyles) error {
	data := sheet.Data
	header := make([]interface{}, len(data.Headers))
	for i, h := range data.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(data.Headers))
	if err != nil {
		return fmt.Errorf("resolve columns: %w", err)
	}
	if err := f.SetCellStyle(sheet.Name, "A1", lastCol+"1", styles.header); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	if err := f.SetColWidth(sheet.Name, "A", lastCol, 18); err != nil {
		return fmt.Errorf("size columns: %w", err)
	}

	for i := range data.Rows {
		rowNum := i + 2
		values := make([]interface{}, len(data.Headers))
		for j, h := range data.Headers {
			values[j] = cellValue(data.Rows[i][h], data.isNumeric(h))
		}
		start, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(sheet.Name, start, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}

		if data.isHighlighted(i) {
			end, _ := excelize.CoordinatesToCellName(len(data.Headers), rowNum)
			if err := f.SetCellStyle(sheet.Name, start, end, styles.highlight); err != nil {
				return fmt.Errorf("style row %d: %w", i, err)
			}
			continue
		}
		for j, h := range data.Headers {
			if h != data.GradeColumn {
				continue
			}
			style, ok := styles.tiers[cellTier(data.Rows[i][h])]
			if !ok {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(j+1, rowNum)
			if err := f.SetCellStyle(sheet.Name, cell, cell, style); err != nil {
				return fmt.Errorf("style grade cell %s: %w", cell, err)
			}
		}
	}
	return nil
}

// cellValue keeps numbers numeric so spreadsheet formulas work on them.
func cellValue(value string, numeric bool) interface{} {
	if !numeric || value == "" {
		return value
	}
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	return value
}
