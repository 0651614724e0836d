package services

import (
	"errors"

	"catering_app_go/models"

	"gorm.io/gorm"
)

// Catalog errors
var (
	ErrMenuPackageNotFound = errors.New("menu package not found")
)

// GetActiveMenuPackages retrieves the selectable packages in display order
func GetActiveMenuPackages(db *gorm.DB) ([]models.MenuPackage, error) {
	var packages []models.MenuPackage
	err := db.Where("is_active = ?", true).
		Order("sort_order ASC").
		Find(&packages).Error
	return packages, err
}

// GetMenuPackageByID retrieves one package by ID
func GetMenuPackageByID(db *gorm.DB, packageID string) (*models.MenuPackage, error) {
	var pkg models.MenuPackage
	err := db.First(&pkg, "id = ?", packageID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuPackageNotFound
		}
		return nil, err
	}
	return &pkg, nil
}

// GetDishesByCourse retrieves the active dishes of one course type
func GetDishesByCourse(db *gorm.DB, course string) ([]models.Dish, error) {
	var dishes []models.Dish
	err := db.Where("course = ? AND is_active = ?", course, true).
		Order("sort_order ASC").
		Find(&dishes).Error
	return dishes, err
}

// GetDishPrices returns a price-per-head lookup for the given dish ids.
// Unknown ids are simply absent from the map (they price as 0).
func GetDishPrices(db *gorm.DB, dishIDs []string) (map[string]float64, error) {
	prices := make(map[string]float64, len(dishIDs))
	if len(dishIDs) == 0 {
		return prices, nil
	}

	var dishes []models.Dish
	err := db.Where("id IN ?", dishIDs).Find(&dishes).Error
	if err != nil {
		return nil, err
	}
	for i := range dishes {
		prices[dishes[i].ID] = dishes[i].PricePerHead
	}
	return prices, nil
}

// GetDrinkCategories retrieves the active drink categories with their active
// options, both in display order
func GetDrinkCategories(db *gorm.DB) ([]models.DrinkCategory, error) {
	var categories []models.DrinkCategory
	err := db.Where("is_active = ?", true).
		Preload("Options", "is_active = ?", true).
		Order("sort_order ASC").
		Find(&categories).Error
	return categories, err
}
