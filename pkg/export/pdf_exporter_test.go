package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFExporterRendersStyledTable(t *testing.T) {
	data := Dataset{
		Headers: []string{"ID", "Course", "Assignment", "Due Date", "Grade"},
		Rows: []map[string]string{
			{"ID": "1", "Course": "Álgebra", "Assignment": "Homework 1", "Due Date": "2025-02-01", "Grade": "90.0"},
			{"ID": "2", "Course": "History", "Assignment": "Essay", "Due Date": "2025-02-05", "Grade": "Not graded"},
		},
		GradeColumn: "Grade",
		Highlighted: []int{1},
	}

	out, err := NewPDFExporter().Render(data, "Assignments")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPDFCellFillHighlightOverridesTier(t *testing.T) {
	data := Dataset{
		Headers: []string{"Course", "Grade"},
		Rows: []map[string]string{
			{"Course": "History", "Grade": "55.0"},
			{"Course": "FINAL WEIGHTED GRADE", "Grade": "0.0"},
		},
		GradeColumn: "Grade",
		Highlighted: []int{1},
	}

	tierFill, ok := cellTier("55.0").Fill()
	require.True(t, ok)
	c, fill := data.cellFill(0, "Grade")
	assert.True(t, fill)
	assert.Equal(t, tierFill, c)

	_, fill = data.cellFill(0, "Course")
	assert.False(t, fill)

	for _, h := range data.Headers {
		c, fill = data.cellFill(1, h)
		assert.True(t, fill)
		assert.Equal(t, highlightFill, c, h)
	}
}

func TestPDFExporterRequiresHeaders(t *testing.T) {
	_, err := NewPDFExporter().Render(Dataset{}, "")
	assert.Error(t, err)
}
