package export

import (
	"fmt"

	"github.com/carevault/apiserver/types"
	"github.com/xuri/excelize/v2"
)

const timesheetSheet = "Timesheets"

// TimesheetHeader is the first row of the timesheet workbook.
var TimesheetHeader = []string{
	"ID",
	"Username",
	"Shift Date",
	"Time In",
	"Time Out",
	"Hours",
	"Sleep In",
	"Status",
	"Notes",
}

var timesheetColumnWidths = []float64{8, 20, 14, 10, 10, 8, 10, 12, 40}

// Timesheets renders the manager timesheet listing as an xlsx workbook.
func Timesheets(items []types.TimesheetView) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(timesheetSheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for col, header := range TimesheetHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(timesheetSheet, cell, header); err != nil {
			return nil, fmt.Errorf("set header %s: %w", cell, err)
		}
		if err := f.SetCellStyle(timesheetSheet, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("style header %s: %w", cell, err)
		}
	}

	for col, width := range timesheetColumnWidths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(timesheetSheet, name, name, width); err != nil {
			return nil, err
		}
	}

	for i, item := range items {
		notes := ""
		if item.Notes != nil {
			notes = *item.Notes
		}
		sleepIn := "No"
		if item.IsSleepIn {
			sleepIn = "Yes"
		}
		row := []any{
			item.ID,
			item.Username,
			item.ShiftDate.Format("2006-01-02"),
			item.TimeIn.Format("15:04"),
			item.TimeOut.Format("15:04"),
			item.Hours(),
			sleepIn,
			string(item.Status),
			notes,
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(timesheetSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
