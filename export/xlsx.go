// Package export writes report rows to spreadsheet workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/warp/hourbank/i18n"
	"github.com/warp/hourbank/timesheet"
)

// ContentTypeXLSX is the MIME type of the workbook WriteReport produces.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Headers are the sheet name and column titles.
type Headers struct {
	Sheet      string
	Name       string
	Date       string
	Entry      string
	Exit       string
	TotalHours string
}

func DefaultHeaders() Headers {
	return Headers{
		Sheet:      "Report",
		Name:       "Name",
		Date:       "Date",
		Entry:      "Entry",
		Exit:       "Exit",
		TotalHours: "Total hours",
	}
}

// LocalizedHeaders resolves the titles through tr for the given locales.
func LocalizedHeaders(tr *i18n.Translator, locales ...string) Headers {
	if tr == nil {
		return DefaultHeaders()
	}
	return Headers{
		Sheet:      tr.T("report.sheet", locales...),
		Name:       tr.T("report.name", locales...),
		Date:       tr.T("report.date", locales...),
		Entry:      tr.T("report.entry", locales...),
		Exit:       tr.T("report.exit", locales...),
		TotalHours: tr.T("report.total_hours", locales...),
	}
}

func (h Headers) row() []any {
	return []any{h.Name, h.Date, h.Entry, h.Exit, h.TotalHours}
}

// WriteReport writes one sheet: a bold header row followed by one row per
// report row, in order.
func WriteReport(w io.Writer, rows []timesheet.ReportRow, h Headers) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := h.Sheet
	if sheet == "" {
		sheet = DefaultHeaders().Sheet
	}
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := h.row()
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	lastCol, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol, bold); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{r.Name, r.Date, r.Entry, r.Exit, r.TotalHours}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "E", 14); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
