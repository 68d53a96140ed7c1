package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartRendererDrawsPanels(t *testing.T) {
	fig := Figure{
		Title:  "Assignment Timeline",
		Layout: LayoutColumn,
		Panels: []Panel{
			ScatterPanel{
				Title:  "Due dates",
				Groups: []ScatterGroup{{Name: "Algebra", Color: PaletteColor(0), Points: []Point{{X: 0}, {X: 9, Hollow: true}}}},
				XMax:   9,
				XTicks: []Tick{{Pos: 0, Label: "2025-02-01"}, {Pos: 7, Label: "2025-02-08"}},
			},
			BarPanel{
				Title:      "Weekly workload",
				Categories: []string{"Week 1", "Week 2"},
				Stacked:    true,
				Series: []Series{
					{Name: "Graded", Values: []float64{1, 0}, Color: PaletteColor(2)},
					{Name: "Ungraded", Values: []float64{0, 1}, Color: PaletteColor(7)},
				},
			},
		},
	}

	out, err := NewChartRenderer().Render(fig)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestChartRendererHorizontalBars(t *testing.T) {
	fig := Figure{Panels: []Panel{BarPanel{
		Horizontal: true,
		Categories: []string{"A course name far too long to fit in the margin"},
		Series:     []Series{{Values: []float64{2.25}, Labels: []string{"2.25 h"}}},
	}}}
	out, err := NewChartRenderer().Render(fig)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestChartRendererRequiresPanels(t *testing.T) {
	_, err := NewChartRenderer().Render(Figure{Title: "empty"})
	assert.Error(t, err)
}

func TestBlueShadeEndpoints(t *testing.T) {
	assert.Equal(t, lightBlue, BlueShade(0))
	assert.Equal(t, darkBlue, BlueShade(1))
	assert.Equal(t, darkBlue, BlueShade(3))
}

func TestBarPanelAxisMax(t *testing.T) {
	assert.Equal(t, 100.0, BarPanel{Max: 100}.axisMax())
	assert.Equal(t, 1.0, BarPanel{Categories: []string{"x"}}.axisMax())
	stacked := BarPanel{Categories: []string{"x"}, Stacked: true, Series: []Series{{Values: []float64{2}}, {Values: []float64{2}}}}
	assert.InDelta(t, 4.6, stacked.axisMax(), 1e-9)
}
