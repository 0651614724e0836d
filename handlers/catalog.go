package handlers

import (
	"net/http"

	"catering_app_go/db"
	"catering_app_go/models"
	"catering_app_go/services"

	"github.com/labstack/echo/v4"
)

// GetMenuPackagesHandler lists the selectable packages for the option editor
func GetMenuPackagesHandler(c echo.Context) error {
	packages, err := services.GetActiveMenuPackages(db.DB)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch packages")
	}
	return c.JSON(http.StatusOK, packages)
}

// GetDishesHandler lists the active dishes of one course type
func GetDishesHandler(c echo.Context) error {
	course := c.QueryParam("course")
	if !models.IsValidCourse(course) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid course type")
	}

	dishes, err := services.GetDishesByCourse(db.DB, course)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch dishes")
	}
	return c.JSON(http.StatusOK, dishes)
}

// GetDrinkCategoriesHandler lists the drink groups with their options
func GetDrinkCategoriesHandler(c echo.Context) error {
	categories, err := services.GetDrinkCategories(db.DB)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch drink categories")
	}
	return c.JSON(http.StatusOK, categories)
}
