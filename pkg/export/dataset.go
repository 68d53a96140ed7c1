package export

import (
	"fmt"
	"strconv"
	"strings"
)

// Dataset defines tabular export content.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
	// GradeColumn names the header whose numeric cells get tier colouring.
	GradeColumn string
	// NumericColumns are written as numbers where the format supports it.
	NumericColumns []string
	// Highlighted lists row indexes rendered bold on a highlighted fill.
	Highlighted []int
}

// Record returns row i in header order.
func (d Dataset) Record(i int) []string {
	record := make([]string, len(d.Headers))
	for j, header := range d.Headers {
		record[j] = d.Rows[i][header]
	}
	return record
}

func (d Dataset) isHighlighted(i int) bool {
	for _, idx := range d.Highlighted {
		if idx == i {
			return true
		}
	}
	return false
}

func (d Dataset) isNumeric(header string) bool {
	if header == d.GradeColumn {
		return true
	}
	for _, col := range d.NumericColumns {
		if col == header {
			return true
		}
	}
	return false
}

// Color is an RGB triple.
type Color struct {
	R, G, B int
}

// Hex returns the colour as RRGGBB.
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// Tier is a grade band used for conditional formatting.
type Tier int

const (
	TierNone Tier = iota
	TierLow
	TierMid
	TierHigh
)

var (
	tierFills = map[Tier]Color{
		TierHigh: {R: 0xC6, G: 0xEF, B: 0xCE},
		TierMid:  {R: 0xFF, G: 0xEB, B: 0x9C},
		TierLow:  {R: 0xFF, G: 0xC7, B: 0xCE},
	}
	highlightFill = Color{R: 0xFF, G: 0xF2, B: 0xCC}
)

// GradeTier classifies a grade: above 70 is high, 50 to 70 inclusive is mid, below 50 is low.
func GradeTier(grade float64) Tier {
	switch {
	case grade > 70:
		return TierHigh
	case grade >= 50:
		return TierMid
	default:
		return TierLow
	}
}

// Fill returns the background colour of the tier.
func (t Tier) Fill() (Color, bool) {
	c, ok := tierFills[t]
	return c, ok
}

// cellTier parses a cell as a grade. Placeholders such as "Not graded" yield TierNone.
func cellTier(value string) Tier {
	grade, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return TierNone
	}
	return GradeTier(grade)
}
