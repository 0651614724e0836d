package services

import (
	"bytes"
	"testing"

	"catering_app_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

func TestExportOfferHistoryXLSX(t *testing.T) {
	testDB := setupOfferTestDB(t)
	inquiry := createTestInquiry(t, testDB)
	session := openTestSession(t, testDB, nil, inquiry.ID)

	option, err := session.AddOption(models.OptionModeMenu)
	assert.NoError(t, err)
	amount := 1200.0
	assert.NoError(t, session.UpdateOption(option.ID, OptionPatch{TotalAmount: &amount}))

	_, err = session.SendProposal("first offer", "staff-1")
	assert.NoError(t, err)
	assert.NoError(t, session.UnlockForNewVersion("staff-1"))
	_, err = session.SendProposal("second offer", "staff-1")
	assert.NoError(t, err)

	data, err := ExportOfferHistoryXLSX(testDB, inquiry.ID)
	assert.NoError(t, err)
	assert.NotEmpty(t, data)

	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	assert.NoError(t, err)
	defer workbook.Close()

	rows, err := workbook.GetRows("Offer History")
	assert.NoError(t, err)

	// header plus one row per sent version, oldest first
	assert.Len(t, rows, 3)
	assert.Equal(t, "Version", rows[0][0])
	assert.Equal(t, "2", rows[1][0])
	assert.Equal(t, "4", rows[2][0])
	assert.Equal(t, "first offer", rows[1][6])
}

func TestExportOfferHistoryXLSX_EmptyHistory(t *testing.T) {
	testDB := setupOfferTestDB(t)
	inquiry := createTestInquiry(t, testDB)

	data, err := ExportOfferHistoryXLSX(testDB, inquiry.ID)
	assert.NoError(t, err)

	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	assert.NoError(t, err)
	defer workbook.Close()

	rows, err := workbook.GetRows("Offer History")
	assert.NoError(t, err)
	assert.Len(t, rows, 1) // header only
}
