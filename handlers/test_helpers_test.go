package handlers

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"catering_app_go/config"
	"catering_app_go/db"
	"catering_app_go/models"
	"catering_app_go/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment:          "test",
		EmailTestMode:        true,
		PaymentTestMode:      true,
		PaymentWebhookSecret: "test-hook-secret",
		AutosaveDebounce:     40 * time.Millisecond,
	}
}

func setupTestDB(t *testing.T) *gorm.DB {
	// Use unique shared memory name to isolate tests while allowing shared cache
	// so the autosave goroutine reaches the same database
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
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

	// Set globals used by the handlers
	db.DB = testDB
	OfferSessions = services.NewOfferSessionManager(testDB, testConfig(), nil, nil)
	t.Cleanup(OfferSessions.CloseAll)

	return testDB
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Add config to context
	c.Set("config", testConfig())

	return e, c, rec
}

func createTestInquiry(t *testing.T, testDB *gorm.DB) *models.Inquiry {
	inquiry := &models.Inquiry{
		CustomerName:  "Karin Larsen",
		CustomerEmail: "karin@example.com",
		EventDate:     time.Now().AddDate(0, 2, 0),
		GuestCount:    50,
	}
	assert.NoError(t, testDB.Create(inquiry).Error)
	return inquiry
}
