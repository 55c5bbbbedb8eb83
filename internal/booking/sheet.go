package booking

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Bookings"

var sheetHeader = []string{"ID", "Name", "Number", "Booking Date", "Time", "Status", "Notes"}

func sheetRow(b Booking) []string {
	date, _ := b.DateKey()
	return []string{
		b.ID,
		b.Name,
		b.ContactNumber(),
		date,
		FormatTime12(b.TimeOfDay()),
		string(b.Status),
		b.Notes,
	}
}

// WriteCSV writes list as a header row followed by one row per booking.
func WriteCSV(w io.Writer, list []Booking) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(sheetHeader); err != nil {
		return err
	}
	for _, b := range list {
		if err := cw.Write(sheetRow(b)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes list as a single-sheet workbook with the same columns as
// WriteCSV.
func WriteXLSX(w io.Writer, list []Booking) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("error renaming sheet: %w", err)
	}

	header := make([]any, len(sheetHeader))
	for i, h := range sheetHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("error creating header style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(sheetHeader), 1)
	if err := f.SetCellStyle(sheetName, "A1", last, style); err != nil {
		return fmt.Errorf("error styling header: %w", err)
	}

	for i, b := range list {
		cells := sheetRow(b)
		row := make([]any, len(cells))
		for j, c := range cells {
			row[j] = c
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("error writing row %d: %w", i+2, err)
		}
	}

	f.SetColWidth(sheetName, "B", "B", 24)
	f.SetColWidth(sheetName, "D", "D", 14)
	f.SetColWidth(sheetName, "G", "G", 40)

	_, err = f.WriteTo(w)
	return err
}
