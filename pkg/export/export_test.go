package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Title:   "Enquiries",
		Headers: []string{"Name", "Email", "Query"},
		Rows: []map[string]string{
			{"Name": "Asha", "Email": "asha@example.com", "Query": "Fees, hostel"},
			{"Name": "Ravi", "Email": "ravi@example.com", "Query": "=HYPERLINK(\"x\")"},
		},
	}
}

func TestCSVRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Name,Email,Query", lines[0])
	assert.Equal(t, `Asha,asha@example.com,"Fees, hostel"`, lines[1])
	assert.True(t, strings.HasSuffix(lines[2], `"'=HYPERLINK(""x"")"`))
}

func TestCSVRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestForFormat(t *testing.T) {
	r, err := For(FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", r.ContentType())

	r, err = For("")
	require.NoError(t, err)
	assert.Equal(t, "csv", r.Extension())
	assert.Equal(t, "enquiries-20250314.csv", Filename("enquiries", "20250314", r))

	_, err = For("xlsx")
	assert.Error(t, err)
}
