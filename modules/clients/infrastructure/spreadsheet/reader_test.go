package spreadsheet_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/praxishq/praxis/modules/clients/infrastructure/spreadsheet"
)

func TestReadRows_CSV(t *testing.T) {
	t.Parallel()

	csv := strings.Join([]string{
		"First Name,Last Name,Email",
		"Jane, Doe ,jane@example.com",
		",,",
		"John,Smith,",
	}, "\n")

	rows, err := spreadsheet.ReadRows(strings.NewReader(csv), "clients.csv")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Jane", rows[0]["First Name"])
	assert.Equal(t, "Doe", rows[0]["Last Name"])
	assert.Equal(t, "jane@example.com", rows[0]["Email"])

	// The blank line keeps its slot so row numbering stays aligned.
	assert.Empty(t, rows[1]["First Name"])
	assert.Empty(t, rows[1]["Last Name"])
	assert.Empty(t, rows[1]["Email"])

	assert.Equal(t, "John", rows[2]["First Name"])
	assert.Empty(t, rows[2]["Email"])
}

func TestReadRows_CSVRaggedRows(t *testing.T) {
	t.Parallel()

	csv := "First Name,Last Name,Email\nJane,Doe\n"
	rows, err := spreadsheet.ReadRows(strings.NewReader(csv), "clients.csv")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Doe", rows[0]["Last Name"])
	assert.Empty(t, rows[0]["Email"])
}

func TestReadRows_XLSX(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]string{"First Name", "Last Name", "Email"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]string{"Jane", "Doe", "jane@example.com"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]string{"John", "Smith", ""}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	rows, err := spreadsheet.ReadRows(&buf, "clients.xlsx")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Jane", rows[0]["First Name"])
	assert.Equal(t, "jane@example.com", rows[0]["Email"])
	assert.Equal(t, "Smith", rows[1]["Last Name"])
}

func TestReadRows_UnreadableFile(t *testing.T) {
	t.Parallel()

	_, err := spreadsheet.ReadRows(strings.NewReader("this is not a workbook"), "clients.xlsx")
	require.Error(t, err)
	assert.ErrorIs(t, err, spreadsheet.ErrUnreadableFile)
}

func TestReadRows_HeaderOnly(t *testing.T) {
	t.Parallel()

	rows, err := spreadsheet.ReadRows(strings.NewReader("First Name,Last Name\n"), "clients.csv")
	require.NoError(t, err)
	assert.Empty(t, rows)
}
