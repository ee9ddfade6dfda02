package export_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/warp/hourbank/export"
	"github.com/warp/hourbank/i18n"
	"github.com/warp/hourbank/timesheet"
)

func TestWriteReport(t *testing.T) {
	// GIVEN: Two report rows
	// WHEN: Writing the workbook and reading it back
	// THEN: A header row and both data rows are present in order

	rows := []timesheet.ReportRow{
		{Name: "Ana Souza", Date: "10/03/2025", Entry: "08:58:00", Exit: "17:58:00", TotalHours: "8h 0min"},
		{Name: "Bruno Lima", Date: "10/03/2025", Entry: "09:30:00", Exit: timesheet.MissingTime, TotalHours: "0h 0min"},
	}

	var buf bytes.Buffer
	require.NoError(t, export.WriteReport(&buf, rows, export.DefaultHeaders()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("Report")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Name", "Date", "Entry", "Exit", "Total hours"}, got[0])
	assert.Equal(t, []string{"Ana Souza", "10/03/2025", "08:58:00", "17:58:00", "8h 0min"}, got[1])
	assert.Equal(t, "-", got[2][3])
}

func TestWriteReport_LocalizedHeaders(t *testing.T) {
	tr, err := i18n.New("en")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, export.WriteReport(&buf, nil, export.LocalizedHeaders(tr, "pt-BR")))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("Relatório")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Nome", got[0][0])
}
