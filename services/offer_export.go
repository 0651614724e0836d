package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportOfferHistoryXLSX builds a spreadsheet of the inquiry's offer history:
// one row per sent version with the option labels and totals as of that send.
// Used by the staff console's history download.
func ExportOfferHistoryXLSX(db *gorm.DB, inquiryID string) ([]byte, error) {
	entries, err := GetOfferHistory(db, inquiryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load offer history: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Offer History"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Version", "Kind", "Sent At", "Sent By", "Options", "Active Total", "Message"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	// entries come newest first; export oldest first for readability
	row := 2
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		options, err := entry.OptionsSnapshot()
		if err != nil {
			return nil, fmt.Errorf("failed to decode snapshot for version %d: %w", entry.Version, err)
		}

		var labels string
		var activeTotal float64
		for j := range options {
			if labels != "" {
				labels += ", "
			}
			labels += options[j].Label
			if !options[j].IsActive {
				labels += " (inactive)"
			} else {
				activeTotal += options[j].TotalAmount
			}
		}

		values := []interface{}{
			entry.Version,
			entry.Kind,
			entry.SentAt.Format("2006-01-02 15:04"),
			entry.SentBy,
			labels,
			RoundCurrency(activeTotal),
			entry.Message,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, value)
		}
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
