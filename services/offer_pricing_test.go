package services

import (
	"testing"

	"catering_app_go/models"

	"github.com/stretchr/testify/assert"
)

func floatPtr(f float64) *float64 {
	return &f
}

func strPtr(s string) *string {
	return &s
}

func TestPackageTotal_Flat(t *testing.T) {
	pkg := &models.MenuPackage{
		PricingMode: models.PackagePricingFlat,
		BasePrice:   1800,
	}

	assert.Equal(t, 1800.0, PackageTotal(pkg, 10))
	assert.Equal(t, 1800.0, PackageTotal(pkg, 200))
}

func TestPackageTotal_Tiered(t *testing.T) {
	pkg := &models.MenuPackage{
		PricingMode:        models.PackagePricingTiered,
		BasePrice:          3000,
		IncludedGuests:     40,
		PricePerExtraGuest: 50,
	}

	// base price covers up to the threshold
	assert.Equal(t, 3000.0, PackageTotal(pkg, 30))
	assert.Equal(t, 3000.0, PackageTotal(pkg, 40))

	// 10 guests beyond the threshold at 50 each
	assert.Equal(t, 3500.0, PackageTotal(pkg, 50))
}

func TestPackageTotal_NilPackage(t *testing.T) {
	assert.Equal(t, 0.0, PackageTotal(nil, 50))
}

func TestRecalculatePackageTotal_Idempotent(t *testing.T) {
	pkg := &models.MenuPackage{
		PricingMode:        models.PackagePricingTiered,
		BasePrice:          3000,
		IncludedGuests:     40,
		PricePerExtraGuest: 50,
	}
	option := &models.ProposalOption{
		Mode:       models.OptionModePackage,
		GuestCount: 50,
	}

	assert.True(t, RecalculatePackageTotal(option, pkg))
	assert.Equal(t, 3500.0, option.TotalAmount)

	// unchanged inputs must not rewrite the total
	assert.False(t, RecalculatePackageTotal(option, pkg))
	assert.Equal(t, 3500.0, option.TotalAmount)
}

func TestRecalculatePackageTotal_OverwritesManualEdit(t *testing.T) {
	pkg := &models.MenuPackage{
		PricingMode: models.PackagePricingFlat,
		BasePrice:   2000,
	}
	option := &models.ProposalOption{
		Mode:        models.OptionModePackage,
		GuestCount:  25,
		TotalAmount: 1750, // stale manual edit
	}

	assert.True(t, RecalculatePackageTotal(option, pkg))
	assert.Equal(t, 2000.0, option.TotalAmount)
}

func TestRecalculatePackageTotal_IgnoresMenuMode(t *testing.T) {
	option := &models.ProposalOption{
		Mode:        models.OptionModeMenu,
		TotalAmount: 999,
	}

	assert.False(t, RecalculatePackageTotal(option, &models.MenuPackage{BasePrice: 100}))
	assert.Equal(t, 999.0, option.TotalAmount)
}

func TestMenuReferenceTotal(t *testing.T) {
	option := &models.ProposalOption{
		Mode:       models.OptionModeMenu,
		GuestCount: 20,
	}
	err := option.SetSelection(models.MenuSelection{
		Courses: []models.CourseSelection{
			{Course: models.CourseStarter, DishID: strPtr("dish-soup")},              // catalog price 8.50
			{Course: models.CourseMain, DishID: strPtr("dish-roast"), PriceOverride: floatPtr(30)}, // override wins
			{Course: models.CourseDessert, CustomName: "Family recipe"},             // free text, no price
		},
	})
	assert.NoError(t, err)

	prices := map[string]float64{"dish-soup": 8.50, "dish-roast": 24}

	total, err := MenuReferenceTotal(option, prices)
	assert.NoError(t, err)
	assert.Equal(t, (8.50+30)*20, total)
}

func TestMenuReferenceTotal_WinePairing(t *testing.T) {
	option := &models.ProposalOption{
		Mode:       models.OptionModeMenu,
		GuestCount: 10,
	}
	err := option.SetSelection(models.MenuSelection{
		Courses: []models.CourseSelection{
			{Course: models.CourseMain, PriceOverride: floatPtr(40)},
		},
		WinePairing:             true,
		WinePairingPricePerHead: 15,
	})
	assert.NoError(t, err)

	total, err := MenuReferenceTotal(option, nil)
	assert.NoError(t, err)
	assert.Equal(t, 40.0*10+15.0*10, total)
}

func TestPriceDiverges(t *testing.T) {
	assert.False(t, PriceDiverges(100, 100))
	assert.False(t, PriceDiverges(100.009, 100))
	assert.True(t, PriceDiverges(100, 95))
	assert.True(t, PriceDiverges(95, 100))
}

func TestRoundCurrency(t *testing.T) {
	assert.Equal(t, 10.56, RoundCurrency(10.555))
	assert.Equal(t, 10.55, RoundCurrency(10.554))
}
