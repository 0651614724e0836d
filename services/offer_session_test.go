package services

import (
	"testing"
	"time"

	"catering_app_go/config"
	"catering_app_go/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOfferTestDB(t *testing.T) *gorm.DB {
	// Shared cache so the autosave goroutine sees the same in-memory database
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared"), &gorm.Config{})
	assert.NoError(t, err)

	err = testDB.AutoMigrate(
		&models.Inquiry{},
		&models.ProposalOption{},
		&models.OfferHistoryEntry{},
		&models.CustomerResponse{},
		&models.MenuPackage{},
		&models.Dish{},
		&models.DrinkCategory{},
		&models.DrinkOption{},
	)
	assert.NoError(t, err)
	return testDB
}

func testConfig() *config.Config {
	return &config.Config{
		Environment:      "test",
		EmailTestMode:    true,
		PaymentTestMode:  true,
		AutosaveDebounce: 40 * time.Millisecond,
	}
}

func createTestInquiry(t *testing.T, testDB *gorm.DB) *models.Inquiry {
	inquiry := &models.Inquiry{
		CustomerName:  "Karin Larsen",
		CustomerEmail: "karin@example.com",
		EventDate:     time.Now().AddDate(0, 2, 0),
		EventVenue:    "Orangery",
		GuestCount:    50,
	}
	assert.NoError(t, testDB.Create(inquiry).Error)
	return inquiry
}

func createTieredPackage(t *testing.T, testDB *gorm.DB) *models.MenuPackage {
	pkg := &models.MenuPackage{
		Name:               "Buffet Royal",
		PricingMode:        models.PackagePricingTiered,
		BasePrice:          3000,
		IncludedGuests:     40,
		PricePerExtraGuest: 50,
		IsActive:           true,
	}
	assert.NoError(t, testDB.Create(pkg).Error)
	return pkg
}

func openTestSession(t *testing.T, testDB *gorm.DB, provisioner PaymentLinkProvisioner, inquiryID string) *OfferSession {
	session, err := LoadOfferSession(testDB, testConfig(), provisioner, nil, inquiryID)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func TestLoadOfferSession_NotFound(t *testing.T) {
	testDB := setupOfferTestDB(t)
	_, err := LoadOfferSession(testDB, testConfig(), nil, nil, uuid.New().String())
	assert.ErrorIs(t, err, ErrInquiryNotFound)
}

func TestLoadOfferSession_SeedsFromRequestedPackage(t *testing.T) {
	testDB := setupOfferTestDB(t)
	pkg := createTieredPackage(t, testDB)

	inquiry := &models.Inquiry{
		CustomerName:       "Jonas Weber",
		CustomerEmail:      "jonas@example.com",
		EventDate:          time.Now().AddDate(0, 1, 0),
		GuestCount:         50,
		RequestedPackageID: &pkg.ID,
	}
	assert.NoError(t, testDB.Create(inquiry).Error)

	session := openTestSession(t, testDB, nil, inquiry.ID)

	options := session.Options()
	assert.Len(t, options, 1)
	assert.Equal(t, "A", options[0].Label)
	assert.Equal(t, models.OptionModePackage, options[0].Mode)
	assert.Equal(t, 50, options[0].GuestCount)
	assert.Equal(t, 3500.0, options[0].TotalAmount) // 3000 + 10 extra guests x 50
	assert.True(t, options[0].IsActive)

	// the seed is persisted immediately
	var count int64
	testDB.Model(&models.ProposalOption{}).Where("inquiry_id = ?", inquiry.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestSendProposal_Success(t *testing.T) {
	testDB := setupOfferTestDB(t)
	inquiry := createTestInquiry(t, testDB)
	session := openTestSession(t, testDB, nil, inquiry.ID)

	option, err := session.AddOption(models.OptionModeMenu)
	assert.NoError(t, err)
	amount := 1200.0
	assert.NoError(t, session.UpdateOption(option.ID, OptionPatch{TotalAmount: &amount}))

	result, err := session.SendProposal("<p>Dear Karin, please find our offer below.</p>", "staff-1")
	assert.NoError(t, err)
	assert.Equal(t, 2, result.Version)

	updated := session.Inquiry()
	assert.Equal(t, models.OfferPhaseProposalSent, updated.OfferPhase)
	assert.Equal(t, 2, updated.OfferVersion)
	assert.True(t, updated.IsLocked())

	// options are stamped with the new version
	for _, opt := range session.Options() {
		assert.Equal(t, 2, opt.Version)
	}

	// exactly one history entry holding the option snapshot
	entries, err := GetOfferHistory(testDB, inquiry.ID)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].Version)
	assert.Equal(t, models.HistoryKindProposal, entries[0].Kind)
	assert.Equal(t, "staff-1", entries[0].SentBy)

	snapshot, err := entries[0].OptionsSnapshot()
	assert.NoError(t, err)
	assert.Len(t, snapshot, 1)
	assert.Equal(t, 1200.0, snapshot[0].TotalAmount)
}

func TestSendProposal_RequiresActiveOption(t *testing.T) {
	testDB := setupOfferTestDB(t)
	inquiry := createTestInquiry(t, testDB)
	session := openTestSession(t, testDB, nil, inquiry.ID)

	option, err := session.AddOption(models.OptionModeMenu)
	assert.NoError(t, err)
	assert.NoError(t, session.ToggleOptionActive(option.ID))

	_, err = session.SendProposal("offer text", "staff-1")
	assert.ErrorIs(t, err, ErrNoActiveOptions)

	// no phase change, no history entry
	assert.Equal(t, models.OfferPhaseDraft, session.Inquiry().OfferPhase)
	entries, _ := GetOfferHistory(testDB, inquiry.ID)
	assert.Empty(t, entries)
}

func TestSendProposal_RequiresMessage(t *testing.T) {
	testDB := setupOfferTestDB(t)
	inquiry := createTestInquiry(t, testDB)
	session := openTestSession(t, testDB, nil, inquiry.ID)

	_, err := session.AddOption(models.OptionModeMenu)
	assert.NoError(t, err)

	_, err = session.SendProposal("", "staff-1")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	_, err = session.SendProposal("   \n ", "staff-1")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	assert.Equal(t, 1, session.Inquiry().OfferVersion)
}

func TestSendProposal_PhaseGuard(t *testing.T) {
	testDB := setupOfferTestDB(t)
	inquiry := createTestInquiry(t, testDB)
	assert.NoError(t, testDB.Model(inquiry).Update("offer_phase", models.OfferPhaseCustomerResponded).Error)

	session := openTestSession(t, testDB, nil, inquiry.ID)
	_, err := session.AddOption(models.OptionModeMenu)
	assert.NoError(t, err)

	_, err = session.SendProposal("offer text", "staff-1")
	assert.ErrorIs(t, err, ErrPhaseNotAllowed)
}

func TestSendProposal_SanitizesMessage(t *testing.T) {
	testDB := setupOfferTestDB(t)
	inquiry := createTestInquiry(t, testDB)
	session := openTestSession(t, testDB, nil, inquiry.ID)

	_, err := session.AddOption(models.OptionModeMenu)
	assert.NoError(t, err)

	_, err = session.SendProposal(`<p>Hello</p><script>alert("x")</script>`, "staff-1")
	assert.NoError(t, err)

	entries, _ := GetOfferHistory(testDB, inquiry.ID)
	assert.Len(t, entries, 1)
	assert.Contains(t, entries[0].Message, "<p>Hello</p>")
	assert.NotContains(t, entries[0].Message, "<script>")
}

func TestSendFinalOffer_PhaseGuard(t *testing.T) {
	testDB := setupOfferTestDB(t)
	inquiry := createTestInquiry(t, testDB)
	session := openTestSession(t, testDB, nil, inquiry.ID)

	_, err := session.AddOption(models.OptionModeMenu)
	assert.NoError(t, err)

	_, err = session.SendFinalOffer("final offer", "staff-1")
	assert.ErrorIs(t, err, ErrPhaseNotAllowed)
}

func TestUnlockForNewVersion(t *testing.T) {
	testDB := setupOfferTestDB(t)
	inquiry := createTestInquiry(t, testDB)
	session := openTestSession(t, testDB, nil, inquiry.ID)

	option, err := session.AddOption(models.OptionModeMenu)
	assert.NoError(t, err)
	amount := 900.0
	assert.NoError(t, session.UpdateOption(option.ID, OptionPatch{TotalAmount: &amount}))

	_, err = session.SendProposal("offer text", "staff-1")
	assert.NoError(t, err)
	assert.True(t, session.IsLocked())
	before := session.Options()

	assert.NoError(t, session.UnlockForNewVersion("staff-1"))

	updated := session.Inquiry()
	assert.False(t, session.IsLocked())
	assert.Equal(t, 3, updated.OfferVersion)
	assert.Equal(t, models.OfferPhaseProposalSent, updated.OfferPhase)
	assert.Nil(t, updated.OfferSentAt)

	// option content is untouched by unlocking
	after := session.Options()
	assert.Equal(t, before, after)

	// editing works again
	assert.NoError(t, session.ToggleOptionActive(option.ID))
}

func TestUnlockForNewVersion_MapsFinalSentBack(t *testing.T) {
	testDB := setupOfferTestDB(t)
	inquiry := createTestInquiry(t, testDB)
	assert.NoError(t, testDB.Model(inquiry).Update("offer_phase", models.OfferPhaseCustomerResponded).Error)

	session := openTestSession(t, testDB, &fakeProvisioner{}, inquiry.ID)
	option, err := session.AddOption(models.OptionModeMenu)
	assert.NoError(t, err)
	amount := 500.0
	assert.NoError(t, session.UpdateOption(option.ID, OptionPatch{TotalAmount: &amount}))

	_, err = session.SendFinalOffer("final offer", "staff-1")
	assert.NoError(t, err)
	assert.Equal(t, models.OfferPhaseFinalSent, session.Inquiry().OfferPhase)

	assert.NoError(t, session.UnlockForNewVersion("staff-1"))
	assert.Equal(t, models.OfferPhaseFinalDraft, session.Inquiry().OfferPhase)
}

func TestUnlockForNewVersion_NotLocked(t *testing.T) {
	testDB := setupOfferTestDB(t)
	inquiry := createTestInquiry(t, testDB)
	session := openTestSession(t, testDB, nil, inquiry.ID)

	assert.ErrorIs(t, session.UnlockForNewVersion("staff-1"), ErrInquiryNotLocked)
}

func TestOfferHistory_AppendOnly(t *testing.T) {
	testDB := setupOfferTestDB(t)
	inquiry := createTestInquiry(t, testDB)
	session := openTestSession(t, testDB, nil, inquiry.ID)

	option, err := session.AddOption(models.OptionModeMenu)
	assert.NoError(t, err)

	_, err = session.SendProposal("first offer", "staff-1")
	assert.NoError(t, err)
	firstEntries, _ := GetOfferHistory(testDB, inquiry.ID)
	assert.Len(t, firstEntries, 1)
	firstSnapshot := firstEntries[0].OptionsSnapshotJSON

	assert.NoError(t, session.UnlockForNewVersion("staff-1"))
	amount := 2500.0
	assert.NoError(t, session.UpdateOption(option.ID, OptionPatch{TotalAmount: &amount}))

	_, err = session.SendProposal("revised offer", "staff-1")
	assert.NoError(t, err)

	entries, _ := GetOfferHistory(testDB, inquiry.ID)
	assert.Len(t, entries, 2)

	// the earlier entry is byte-identical after the second send
	var original models.OfferHistoryEntry
	assert.NoError(t, testDB.First(&original, "id = ?", firstEntries[0].ID).Error)
	assert.Equal(t, "first offer", original.Message)
	assert.Equal(t, firstSnapshot, original.OptionsSnapshotJSON)
}

func TestCustomerResponse_ReadThrough(t *testing.T) {
	testDB := setupOfferTestDB(t)
	inquiry := createTestInquiry(t, testDB)
	session := openTestSession(t, testDB, nil, inquiry.ID)

	response, err := session.CustomerResponse()
	assert.NoError(t, err)
	assert.Nil(t, response)

	assert.NoError(t, testDB.Create(&models.CustomerResponse{
		InquiryID: inquiry.ID,
		Notes:     "Option B please, but vegetarian mains",
	}).Error)

	response, err = session.CustomerResponse()
	assert.NoError(t, err)
	assert.NotNil(t, response)
	assert.Equal(t, "Option B please, but vegetarian mains", response.Notes)
}
