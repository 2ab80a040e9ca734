package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// RenderOccupancyPDF renders the occupancy report as a PDF document, one
// block per room grouped under its hostel.
func RenderOccupancyPDF(rows []OccupancyRow) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Room Occupancy Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "Room Occupancy Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	currentHostel := ""
	for _, row := range rows {
		if row.Hostel != currentHostel {
			currentHostel = row.Hostel
			pdf.SetFont("Helvetica", "B", 14)
			pdf.CellFormat(0, 10, currentHostel, "", 1, "L", false, 0, "")
		}

		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 7, fmt.Sprintf("Room %s (%s, floor %d) - %s", row.RoomNumber, row.RoomType, row.Floor, row.Status), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		occupants := row.Occupants
		if occupants == "" {
			occupants = "empty"
		}
		pdf.MultiCell(0, 6, fmt.Sprintf("Students (%d/%d): %s", row.Count, row.Capacity, occupants), "", "L", false)
		pdf.Ln(2)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
