package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders datasets into a basic tabular PDF.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF document with an optional title and table body.
// Grade cells are filled by tier and highlighted rows are set in bold.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	orientation := "P"
	width := 190.0
	if len(data.Headers) > 5 {
		orientation = "L"
		width = 277.0
	}
	pdf := gofpdf.New(orientation, "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(strings.ToUpper(title)), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	pdf.SetFont("Arial", "B", 10)
	colWidth := width / float64(len(data.Headers))
	for _, header := range data.Headers {
		pdf.CellFormat(colWidth, 8, tr(header), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	for i := range data.Rows {
		highlighted := data.isHighlighted(i)
		style := ""
		if highlighted {
			style = "B"
		}
		pdf.SetFont("Arial", style, 9)
		for _, header := range data.Headers {
			value := data.Rows[i][header]
			c, fill := data.cellFill(i, header)
			if fill {
				setFill(pdf, c)
			}
			align := ""
			if data.isNumeric(header) {
				align = "R"
			}
			pdf.CellFormat(colWidth, 7, tr(value), "1", 0, align, fill, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// cellFill picks the background of a body cell. Highlighted rows take the
// highlight fill only; grade tiers apply to the grade column of other rows.
func (d Dataset) cellFill(row int, header string) (Color, bool) {
	if d.isHighlighted(row) {
		return highlightFill, true
	}
	if header == d.GradeColumn {
		return cellTier(d.Rows[row][header]).Fill()
	}
	return Color{}, false
}

func setFill(pdf *gofpdf.Fpdf, c Color) {
	pdf.SetFillColor(c.R, c.G, c.B)
}
