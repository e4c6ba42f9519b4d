package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRenderOrdersRowsByColumn(t *testing.T) {
	body, err := NewCSVExporter().Render(Table{
		Columns: []string{"Name", "Present Days"},
		Rows: [][]string{
			{"Dana Cole", "18"},
			{"Rio Sanders", "20"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "Name,Present Days\nDana Cole,18\nRio Sanders,20\n", string(body))
}

func TestCSVRenderRejectsMisalignedRow(t *testing.T) {
	_, err := NewCSVExporter().Render(Table{
		Columns: []string{"Name", "Present Days"},
		Rows:    [][]string{{"Dana Cole"}},
	})

	assert.Error(t, err)
}

func TestCSVRenderRequiresColumns(t *testing.T) {
	_, err := NewCSVExporter().Render(Table{})
	assert.Error(t, err)
}

func TestPDFRenderProducesDocument(t *testing.T) {
	body, err := NewPDFExporter().Render(Table{
		Title:   "Attendance Summary",
		Columns: []string{"Name", "Total Days"},
		Rows:    [][]string{{"Dana Cole", "22"}},
	})

	require.NoError(t, err)
	assert.True(t, len(body) > 4)
	assert.Equal(t, "%PDF", string(body[:4]))
}
