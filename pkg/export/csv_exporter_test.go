package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRoundTrip(t *testing.T) {
	data := Dataset{
		Headers: []string{"Course", "Teacher", "Credits", "Assignment", "Due Date", "Grade"},
		Rows: []map[string]string{
			{"Course": "Algebra", "Teacher": "Dr. Noether", "Credits": "3", "Assignment": "Homework, part 1", "Due Date": "2025-02-01", "Grade": "90.0"},
			{"Course": "Art", "Teacher": "Ms. Kahlo", "Credits": "2", "Assignment": "No assignments", "Due Date": "", "Grade": "Not graded"},
		},
		GradeColumn: "Grade",
	}

	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, data.Headers, records[0])
	assert.Equal(t, []string{"Algebra", "Dr. Noether", "3", "Homework, part 1", "2025-02-01", "90.0"}, records[1])
	assert.Equal(t, []string{"Art", "Ms. Kahlo", "2", "No assignments", "", "Not graded"}, records[2])
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestCSVExporterCRLF(t *testing.T) {
	var buf bytes.Buffer
	err := (&CSVExporter{CRLF: true}).Write(&buf, Dataset{
		Headers: []string{"ID", "Course Name"},
		Rows:    []map[string]string{{"ID": "1", "Course Name": "Algebra"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "ID,Course Name\r\n1,Algebra\r\n", buf.String())
}
