// Package export writes schedule data to spreadsheets for office
// reconciliation.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/mark3labs/dispatch/internal/draft"
	"github.com/mark3labs/dispatch/internal/store"
	"github.com/xuri/excelize/v2"
)

// Sheet names.
const (
	SheetServiceCalls = "Service Calls"
	SheetCertificates = "Certificates"
)

// headerRow is the first data row; rows above it hold the title.
const headerRow = 3

type column struct {
	label string
	width float64
	value func(field func(string) string) string
}

func field(name string) func(func(string) string) string {
	return func(get func(string) string) string { return get(name) }
}

func labeled(name string, options []draft.Option) func(func(string) string) string {
	return func(get func(string) string) string { return draft.Label(options, get(name)) }
}

var callColumns = []column{
	{"Date", 12, field(draft.FieldDate)},
	{"Start", 8, field(draft.FieldStartTime)},
	{"Service", 18, labeled(draft.FieldServiceType, draft.ServiceTypes)},
	{"Customer", 24, field(draft.FieldCustomer)},
	{"Site", 24, field(draft.FieldProjectSite)},
	{"Pump", 14, labeled(draft.FieldPumpType, draft.PumpTypes)},
	{"Quantity", 10, field(draft.FieldQuantity)},
	{"Vehicle", 12, field(draft.FieldVehicleNumber)},
	{"Operator", 18, field(draft.FieldOperator)},
	{"Hourly", 8, field(draft.FieldHourlyBooking)},
	{"Status", 12, field(draft.FieldStatus)},
	{"Notes", 40, field(draft.FieldNotes)},
	{"ID", 38, field("id")},
}

var certColumns = []column{
	{"Date", 12, field(draft.FieldDate)},
	{"Start", 8, field(draft.FieldStartTime)},
	{"End", 8, field(draft.FieldEndTime)},
	{"Customer", 24, field(draft.FieldCustomer)},
	{"Site", 24, field(draft.FieldProjectSite)},
	{"Pump", 14, labeled(draft.FieldPumpType, draft.PumpTypes)},
	{"Concrete", 14, labeled(draft.FieldConcreteType, draft.ConcreteTypes)},
	{"Element", 14, labeled(draft.FieldElementType, draft.ElementTypes)},
	{"Quantity", 10, field(draft.FieldQuantity)},
	{"Waiting (min)", 12, field(draft.FieldWaitingTime)},
	{"Extra Pipe (m)", 12, field(draft.FieldAdditionalPipe)},
	{"Work Type", 12, labeled(draft.FieldWorkType, draft.WorkTypes)},
	{"Operator", 18, field(draft.FieldOperator)},
	{"Service Call", 38, field("serviceCallId")},
	{"ID", 38, field("id")},
}

// Workbook builds a workbook with one row per service call and, when certs
// is non-empty, a certificates sheet.
func Workbook(title string, calls []*store.ServiceCall, certs []*store.Certificate) (*excelize.File, error) {
	f := excelize.NewFile()

	callRows := make([]func(string) string, len(calls))
	for i, c := range calls {
		callRows[i] = c.Value
	}
	if err := writeSheet(f, SheetServiceCalls, title, callColumns, callRows); err != nil {
		f.Close()
		return nil, err
	}

	if len(certs) > 0 {
		certRows := make([]func(string) string, len(certs))
		for i, c := range certs {
			certRows[i] = c.Value
		}
		if err := writeSheet(f, SheetCertificates, title, certColumns, certRows); err != nil {
			f.Close()
			return nil, err
		}
	}

	index, err := f.GetSheetIndex(SheetServiceCalls)
	if err != nil {
		f.Close()
		return nil, err
	}
	f.SetActiveSheet(index)

	// Delete default Sheet1 now that ours exist
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// Write builds the workbook and writes it to w.
func Write(w io.Writer, title string, calls []*store.ServiceCall, certs []*store.Certificate) error {
	f, err := Workbook(title, calls, certs)
	if err != nil {
		return fmt.Errorf("building workbook: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet, title string, columns []column, rows []func(string) string) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return err
	}

	_ = f.SetCellValue(sheet, "A1", title)
	_ = f.SetCellStyle(sheet, "A1", "A1", titleStyle)
	_ = f.SetCellValue(sheet, "A2", fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04")))

	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		name, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetCellValue(sheet, cell, col.label)
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
		_ = f.SetColWidth(sheet, name, name, col.width)
	}

	for r, get := range rows {
		for c, col := range columns {
			cell, _ := excelize.CoordinatesToCellName(c+1, headerRow+1+r)
			if err := f.SetCellValue(sheet, cell, col.value(get)); err != nil {
				return fmt.Errorf("writing %s: %w", cell, err)
			}
		}
	}

	last, _ := excelize.CoordinatesToCellName(len(columns), headerRow)
	first, _ := excelize.CoordinatesToCellName(1, headerRow)
	return f.AutoFilter(sheet, first+":"+last, nil)
}
