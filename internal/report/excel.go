package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const occupancySheet = "Room Occupancy"

// RenderOccupancyExcel renders the occupancy report as an xlsx workbook.
func RenderOccupancyExcel(rows []OccupancyRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", occupancySheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := []interface{}{"Hostel", "Room Number", "Type", "Floor", "Status", "Students", "Count", "Capacity"}
	if err := f.SetSheetRow(occupancySheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("cell name: %w", err)
		}
		values := []interface{}{
			row.Hostel, row.RoomNumber, row.RoomType, row.Floor,
			row.Status, row.Occupants, row.Count, row.Capacity,
		}
		if err := f.SetSheetRow(occupancySheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
