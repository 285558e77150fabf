package export

import (
	"fmt"

	"renthub/internal/models"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Bookings"

// BookingsWorkbook renders booking views into an xlsx workbook, one row per
// booking, newest start first (the order the views arrive in).
func BookingsWorkbook(views []*models.BookingView) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("error removing default sheet: %w", err)
	}

	headers := []string{"ID", "Item", "Booker", "Start", "End", "Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
	}

	for row, view := range views {
		values := []interface{}{
			view.ID,
			view.Item.Name,
			view.Booker.ID,
			view.Start.Format("2006-01-02 15:04"),
			view.End.Format("2006-01-02 15:04"),
			view.Status,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	_ = f.SetColWidth(sheetName, "B", "B", 25)
	_ = f.SetColWidth(sheetName, "D", "E", 18)

	return f, nil
}
