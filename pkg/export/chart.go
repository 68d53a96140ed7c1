package export

import (
	"bytes"
	"fmt"
	"math"

	"github.com/jung-kurt/gofpdf"
)

// Layout arranges the panels of a figure.
type Layout int

const (
	// LayoutRow places panels side by side.
	LayoutRow Layout = iota
	// LayoutColumn stacks panels top to bottom.
	LayoutColumn
)

// Figure is a single chart page made of one or more panels.
type Figure struct {
	Title  string
	Layout Layout
	Panels []Panel
}

// Panel is one plot area of a figure.
type Panel interface {
	draw(c *canvas, area box)
}

type box struct {
	x, y, w, h float64
}

type canvas struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

var (
	palette = []Color{
		{R: 31, G: 119, B: 180}, {R: 255, G: 127, B: 14}, {R: 44, G: 160, B: 44},
		{R: 214, G: 39, B: 40}, {R: 148, G: 103, B: 189}, {R: 140, G: 86, B: 75},
		{R: 227, G: 119, B: 194}, {R: 127, G: 127, B: 127}, {R: 188, G: 189, B: 34},
		{R: 23, G: 190, B: 207},
	}
	gridColor = Color{R: 200, G: 200, B: 200}
	axisColor = Color{R: 60, G: 60, B: 60}
	lightBlue = Color{R: 198, G: 219, B: 239}
	darkBlue  = Color{R: 8, G: 48, B: 107}
)

// PaletteColor returns a distinct categorical colour for index i.
func PaletteColor(i int) Color {
	if i < 0 {
		i = -i
	}
	return palette[i%len(palette)]
}

// BlueShade maps intensity in [0,1] onto a light-to-dark blue ramp.
func BlueShade(intensity float64) Color {
	t := math.Max(0, math.Min(1, intensity))
	lerp := func(a, b int) int { return int(math.Round(float64(a) + (float64(b)-float64(a))*t)) }
	return Color{R: lerp(lightBlue.R, darkBlue.R), G: lerp(lightBlue.G, darkBlue.G), B: lerp(lightBlue.B, darkBlue.B)}
}

// ChartRenderer draws figures into a landscape A4 PDF page.
type ChartRenderer struct{}

// NewChartRenderer constructs a chart renderer.
func NewChartRenderer() *ChartRenderer {
	return &ChartRenderer{}
}

// Render draws the figure and returns the PDF bytes.
func (r *ChartRenderer) Render(fig Figure) ([]byte, error) {
	if len(fig.Panels) == 0 {
		return nil, fmt.Errorf("chart requires at least one panel")
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	c := &canvas{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	pageW, pageH := pdf.GetPageSize()
	top := 10.0
	if fig.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.SetXY(10, 8)
		pdf.CellFormat(pageW-20, 10, c.tr(fig.Title), "", 0, "C", false, 0, "")
		top = 20
	}
	area := box{x: 10, y: top, w: pageW - 20, h: pageH - top - 10}
	n := float64(len(fig.Panels))
	for i, panel := range fig.Panels {
		cell := area
		if fig.Layout == LayoutColumn {
			cell.h = area.h / n
			cell.y = area.y + float64(i)*cell.h
		} else {
			cell.w = area.w / n
			cell.x = area.x + float64(i)*cell.w
		}
		panel.draw(c, cell)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}

// Series is one set of bar values, aligned with the panel categories.
type Series struct {
	Name   string
	Values []float64
	Color  Color
	// Shades overrides Color per bar when set.
	Shades []Color
	// Labels annotate each bar; empty entries are skipped.
	Labels []string
}

func (s Series) value(i int) float64 {
	if i < len(s.Values) {
		return s.Values[i]
	}
	return 0
}

func (s Series) colorAt(i int) Color {
	if i < len(s.Shades) {
		return s.Shades[i]
	}
	return s.Color
}

func (s Series) label(i int) string {
	if i < len(s.Labels) {
		return s.Labels[i]
	}
	return ""
}

// BarPanel is a grouped, stacked or horizontal bar chart.
type BarPanel struct {
	Title      string
	XLabel     string
	YLabel     string
	Categories []string
	Series     []Series
	Horizontal bool
	Stacked    bool
	// Max fixes the value axis; zero means fit to the data.
	Max float64
}

func (b BarPanel) axisMax() float64 {
	if b.Max > 0 {
		return b.Max
	}
	peak := 0.0
	for i := range b.Categories {
		sum := 0.0
		for _, s := range b.Series {
			if b.Stacked {
				sum += s.value(i)
			} else {
				sum = math.Max(sum, s.value(i))
			}
		}
		peak = math.Max(peak, sum)
	}
	if peak <= 0 {
		return 1
	}
	return peak * 1.15
}

func (b BarPanel) draw(c *canvas, area box) {
	pdf := c.pdf
	area = c.panelTitle(b.Title, area)
	legend := len(b.Series) > 1
	left, bottom, top := 16.0, 20.0, 2.0
	if b.Horizontal {
		left, bottom = 42, 14
	}
	if legend {
		top += 6
	}
	plot := box{x: area.x + left, y: area.y + top, w: area.w - left - 6, h: area.h - top - bottom}
	limit := b.axisMax()
	c.valueGrid(plot, limit, b.Horizontal)

	n := len(b.Categories)
	if n > 0 && len(b.Series) > 0 {
		span := plot.w
		if b.Horizontal {
			span = plot.h
		}
		slot := span / float64(n)
		group := slot * 0.7
		bar := group
		if !b.Stacked {
			bar = group / float64(len(b.Series))
		}

		pdf.SetFont("Arial", "", 7)
		for i, category := range b.Categories {
			base := 0.0
			for si, s := range b.Series {
				v := s.value(i)
				offset := slot*float64(i) + (slot-group)/2
				if !b.Stacked {
					offset += bar * float64(si)
				}
				col := s.colorAt(i)
				pdf.SetFillColor(col.R, col.G, col.B)
				label := s.label(i)
				if b.Horizontal {
					bx := plot.x + base/limit*plot.w
					bw := v / limit * plot.w
					by := plot.y + offset
					pdf.Rect(bx, by, bw, bar, "F")
					if label != "" {
						c.text(bx+bw+1, by+bar/2+1, label, axisColor)
					}
				} else {
					bh := v / limit * plot.h
					bx := plot.x + offset
					by := plot.y + plot.h - base/limit*plot.h - bh
					pdf.Rect(bx, by, bar, bh, "F")
					if label != "" {
						c.centered(bx+bar/2, by-1.5, label)
					}
				}
				if b.Stacked {
					base += v
				}
			}

			pdf.SetFont("Arial", "", 7)
			if b.Horizontal {
				name := c.fit(category, left-4)
				c.text(plot.x-2-pdf.GetStringWidth(name), plot.y+slot*float64(i)+slot/2+1, name, axisColor)
			} else {
				c.centered(plot.x+slot*float64(i)+slot/2, plot.y+plot.h+4, c.fit(category, slot-1))
			}
		}
	}

	c.axes(plot)
	c.axisLabels(plot, b.XLabel, b.YLabel, bottom)
	if legend {
		c.legend(area.x+left, area.y+1, b.Series)
	}
}

// Point is one scatter marker on the x axis.
type Point struct {
	X float64
	// Hollow draws the marker as an outline.
	Hollow bool
}

// ScatterGroup is one row of markers sharing a colour.
type ScatterGroup struct {
	Name   string
	Color  Color
	Points []Point
}

// Tick labels a position on the x axis.
type Tick struct {
	Pos   float64
	Label string
}

// ScatterPanel plots each group on its own row along a shared x axis.
type ScatterPanel struct {
	Title  string
	XLabel string
	Note   string
	Groups []ScatterGroup
	XMin   float64
	XMax   float64
	XTicks []Tick
}

func (s ScatterPanel) draw(c *canvas, area box) {
	pdf := c.pdf
	area = c.panelTitle(s.Title, area)
	left, bottom := 42.0, 16.0
	plot := box{x: area.x + left, y: area.y + 2, w: area.w - left - 6, h: area.h - bottom - 2}

	lo, hi := s.XMin, s.XMax
	if hi <= lo {
		hi = lo + 1
	}
	pad := math.Max((hi-lo)*0.03, 0.5)
	lo, hi = lo-pad, hi+pad
	xpos := func(v float64) float64 { return plot.x + (v-lo)/(hi-lo)*plot.w }

	pdf.SetFont("Arial", "", 7)
	pdf.SetLineWidth(0.1)
	pdf.SetDrawColor(gridColor.R, gridColor.G, gridColor.B)
	pdf.SetDashPattern([]float64{1, 1}, 0)
	for _, tick := range s.XTicks {
		x := xpos(tick.Pos)
		pdf.Line(x, plot.y, x, plot.y+plot.h)
		c.centered(x, plot.y+plot.h+4, tick.Label)
	}
	pdf.SetDashPattern([]float64{}, 0)

	if n := len(s.Groups); n > 0 {
		row := plot.h / float64(n)
		for i, group := range s.Groups {
			cy := plot.y + row*float64(i) + row/2
			name := c.fit(group.Name, left-4)
			pdf.SetFont("Arial", "", 7)
			c.text(plot.x-2-pdf.GetStringWidth(name), cy+1, name, axisColor)
			pdf.SetFillColor(group.Color.R, group.Color.G, group.Color.B)
			pdf.SetDrawColor(group.Color.R, group.Color.G, group.Color.B)
			pdf.SetLineWidth(0.4)
			for _, p := range group.Points {
				style := "F"
				if p.Hollow {
					style = "D"
				}
				pdf.Circle(xpos(p.X), cy, 1.4, style)
			}
		}
	}

	c.axes(plot)
	c.axisLabels(plot, s.XLabel, "", bottom)
	if s.Note != "" {
		pdf.SetFont("Arial", "I", 7)
		c.text(plot.x+plot.w-pdf.GetStringWidth(s.Note), plot.y+plot.h+bottom-1, s.Note, axisColor)
	}
}

func (c *canvas) panelTitle(title string, area box) box {
	if title == "" {
		return area
	}
	c.pdf.SetFont("Arial", "B", 11)
	c.pdf.SetTextColor(0, 0, 0)
	c.pdf.SetXY(area.x, area.y)
	c.pdf.CellFormat(area.w, 7, c.tr(title), "", 0, "C", false, 0, "")
	return box{x: area.x, y: area.y + 8, w: area.w, h: area.h - 8}
}

func (c *canvas) valueGrid(plot box, limit float64, horizontal bool) {
	pdf := c.pdf
	pdf.SetFont("Arial", "", 7)
	pdf.SetLineWidth(0.1)
	pdf.SetDrawColor(gridColor.R, gridColor.G, gridColor.B)
	pdf.SetDashPattern([]float64{1, 1}, 0)
	format := "%.0f"
	if limit < 5 {
		format = "%.1f"
	}
	const ticks = 5
	for k := 0; k <= ticks; k++ {
		v := limit * float64(k) / ticks
		label := fmt.Sprintf(format, v)
		if horizontal {
			x := plot.x + plot.w*float64(k)/ticks
			pdf.Line(x, plot.y, x, plot.y+plot.h)
			c.centered(x, plot.y+plot.h+4, label)
		} else {
			y := plot.y + plot.h - plot.h*float64(k)/ticks
			pdf.Line(plot.x, y, plot.x+plot.w, y)
			c.text(plot.x-2-pdf.GetStringWidth(label), y+1, label, axisColor)
		}
	}
	pdf.SetDashPattern([]float64{}, 0)
}

func (c *canvas) axes(plot box) {
	pdf := c.pdf
	pdf.SetLineWidth(0.3)
	pdf.SetDrawColor(axisColor.R, axisColor.G, axisColor.B)
	pdf.Line(plot.x, plot.y, plot.x, plot.y+plot.h)
	pdf.Line(plot.x, plot.y+plot.h, plot.x+plot.w, plot.y+plot.h)
}

func (c *canvas) axisLabels(plot box, xLabel, yLabel string, bottom float64) {
	pdf := c.pdf
	pdf.SetFont("Arial", "", 8)
	if xLabel != "" {
		c.centered(plot.x+plot.w/2, plot.y+plot.h+bottom-5, xLabel)
	}
	if yLabel != "" {
		x := plot.x - 11
		y := plot.y + plot.h/2 + pdf.GetStringWidth(yLabel)/2
		pdf.TransformBegin()
		pdf.TransformRotate(90, x, y)
		c.text(x, y, yLabel, axisColor)
		pdf.TransformEnd()
	}
}

func (c *canvas) legend(x, y float64, series []Series) {
	pdf := c.pdf
	pdf.SetFont("Arial", "", 7)
	for _, s := range series {
		pdf.SetFillColor(s.Color.R, s.Color.G, s.Color.B)
		pdf.Rect(x, y, 3, 3, "F")
		c.text(x+4, y+2.6, s.Name, axisColor)
		x += 8 + pdf.GetStringWidth(s.Name)
	}
}

func (c *canvas) text(x, y float64, s string, col Color) {
	c.pdf.SetTextColor(col.R, col.G, col.B)
	c.pdf.Text(x, y, c.tr(s))
}

func (c *canvas) centered(x, y float64, s string) {
	c.text(x-c.pdf.GetStringWidth(s)/2, y, s, axisColor)
}

// fit shortens s with a trailing ".." until it is at most width wide.
func (c *canvas) fit(s string, width float64) string {
	if c.pdf.GetStringWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 1 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + ".."
		if c.pdf.GetStringWidth(candidate) <= width {
			return candidate
		}
	}
	return string(runes)
}
