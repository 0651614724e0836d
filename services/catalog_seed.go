package services

import (
	"log"

	"catering_app_go/models"

	"gorm.io/gorm"
)

// SeedDefaultCatalog populates the menu catalog with a starter set of
// packages, dishes and drink categories. Each group is skipped when the
// table already has rows, so repeated startups are safe.
func SeedDefaultCatalog(db *gorm.DB) error {
	if err := seedMenuPackages(db); err != nil {
		log.Printf("Error seeding menu packages: %v", err)
		return err
	}
	if err := seedDishes(db); err != nil {
		log.Printf("Error seeding dishes: %v", err)
		return err
	}
	if err := seedDrinkCategories(db); err != nil {
		log.Printf("Error seeding drink categories: %v", err)
		return err
	}
	return nil
}

func seedMenuPackages(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.MenuPackage{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil // Already seeded
	}

	packages := []models.MenuPackage{
		{
			Name:        "Buffet Classic",
			Description: "Self-service buffet with two mains and seasonal sides",
			PricingMode: models.PackagePricingFlat,
			BasePrice:   2400,
			SortOrder:   1,
			IsActive:    true,
		},
		{
			Name:               "Gala Dinner",
			Description:        "Plated three-course dinner with service staff",
			PricingMode:        models.PackagePricingTiered,
			BasePrice:          3600,
			IncludedGuests:     40,
			PricePerExtraGuest: 55,
			SortOrder:          2,
			IsActive:           true,
		},
		{
			Name:               "Standing Reception",
			Description:        "Finger food and canapes for standing events",
			PricingMode:        models.PackagePricingTiered,
			BasePrice:          1800,
			IncludedGuests:     50,
			PricePerExtraGuest: 28,
			SortOrder:          3,
			IsActive:           true,
		},
	}
	for _, pkg := range packages {
		if err := db.Create(&pkg).Error; err != nil {
			return err
		}
	}

	log.Printf("[SEED] Created %d menu packages", len(packages))
	return nil
}

func seedDishes(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Dish{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil // Already seeded
	}

	dishes := []models.Dish{
		{Name: "Pumpkin Soup", Course: models.CourseStarter, PricePerHead: 8.5, SortOrder: 1, IsActive: true},
		{Name: "Beef Carpaccio", Course: models.CourseStarter, PricePerHead: 12, SortOrder: 2, IsActive: true},
		{Name: "Braised Beef Cheeks", Course: models.CourseMain, PricePerHead: 26, SortOrder: 1, IsActive: true},
		{Name: "Pan-Fried Pike Perch", Course: models.CourseMain, PricePerHead: 24, SortOrder: 2, IsActive: true},
		{Name: "Wild Mushroom Risotto", Course: models.CourseMain, PricePerHead: 19, SortOrder: 3, IsActive: true},
		{Name: "Rosemary Potatoes", Course: models.CourseSide, PricePerHead: 5, SortOrder: 1, IsActive: true},
		{Name: "Seasonal Vegetables", Course: models.CourseSide, PricePerHead: 5.5, SortOrder: 2, IsActive: true},
		{Name: "Chocolate Fondant", Course: models.CourseDessert, PricePerHead: 9, SortOrder: 1, IsActive: true},
		{Name: "Lemon Tart", Course: models.CourseDessert, PricePerHead: 8, SortOrder: 2, IsActive: true},
	}
	for _, dish := range dishes {
		if err := db.Create(&dish).Error; err != nil {
			return err
		}
	}

	log.Printf("[SEED] Created %d dishes", len(dishes))
	return nil
}

func seedDrinkCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.DrinkCategory{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil // Already seeded
	}

	groups := []struct {
		category models.DrinkCategory
		options  []models.DrinkOption
	}{
		{
			category: models.DrinkCategory{Key: "aperitif", Name: "Aperitif", SortOrder: 1, IsActive: true},
			options: []models.DrinkOption{
				{Code: "prosecco", Label: "Prosecco", SortOrder: 1, IsActive: true},
				{Code: "aperol_spritz", Label: "Aperol Spritz", SortOrder: 2, IsActive: true},
				{Code: "alcohol_free_punch", Label: "Alcohol-Free Punch", SortOrder: 3, IsActive: true},
			},
		},
		{
			category: models.DrinkCategory{Key: "wine", Name: "Wine", SortOrder: 2, IsActive: true},
			options: []models.DrinkOption{
				{Code: "house_red", Label: "House Red", SortOrder: 1, IsActive: true},
				{Code: "house_white", Label: "House White", SortOrder: 2, IsActive: true},
			},
		},
		{
			category: models.DrinkCategory{Key: "non_alcoholic", Name: "Non-Alcoholic", SortOrder: 3, IsActive: true},
			options: []models.DrinkOption{
				{Code: "water_juices", Label: "Water and Juices", SortOrder: 1, IsActive: true},
				{Code: "soft_drinks", Label: "Soft Drinks", SortOrder: 2, IsActive: true},
			},
		},
	}

	for _, group := range groups {
		if err := db.Create(&group.category).Error; err != nil {
			return err
		}
		for _, option := range group.options {
			option.CategoryID = group.category.ID
			if err := db.Create(&option).Error; err != nil {
				return err
			}
		}
	}

	log.Printf("[SEED] Created %d drink categories", len(groups))
	return nil
}
