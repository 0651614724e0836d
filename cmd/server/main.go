package main

import (
	"log"

	"catering_app_go/config"
	"catering_app_go/db"
	"catering_app_go/handlers"
	"catering_app_go/middleware"
	"catering_app_go/models"
	"catering_app_go/services"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	err := db.AutoMigrate(
		&models.Inquiry{},
		&models.ProposalOption{},
		&models.OfferHistoryEntry{},
		&models.CustomerResponse{},
		&models.MenuPackage{},
		&models.Dish{},
		&models.DrinkCategory{},
		&models.DrinkOption{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the menu catalog on first start
	if err := services.SeedDefaultCatalog(db.DB); err != nil {
		log.Printf("[WARNING] Failed to seed catalog: %v", err)
	}

	// Wire the offer engine collaborators
	provisioner := services.NewPaymentLinkProvisioner(cfg)
	mailer := services.NewResendOfferMailer(cfg)
	handlers.OfferSessions = services.NewOfferSessionManager(db.DB, cfg, provisioner, mailer)
	defer handlers.OfferSessions.CloseAll()

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Public routes: inquiry form, customer response channel, payment webhook
	e.POST("/inquiries", handlers.CreateInquiryHandler, middleware.PublicFormRateLimiter.Middleware())
	e.POST("/inquiries/:id/respond", handlers.RespondToOfferHandler, middleware.PublicFormRateLimiter.Middleware())
	e.POST("/webhooks/payment", handlers.PaymentWebhookHandler, middleware.WebhookRateLimiter.Middleware())

	// Staff offer console (authentication handled upstream)
	console := e.Group("/console")
	{
		console.GET("/catalog/packages", handlers.GetMenuPackagesHandler)
		console.GET("/catalog/dishes", handlers.GetDishesHandler)
		console.GET("/catalog/drinks", handlers.GetDrinkCategoriesHandler)

		offer := console.Group("/inquiries/:id/offer")
		offer.GET("", handlers.GetOfferHandler)
		offer.POST("/options", handlers.AddOptionHandler)
		offer.PATCH("/options/:optionId", handlers.UpdateOptionHandler)
		offer.DELETE("/options/:optionId", handlers.DeleteOptionHandler)
		offer.POST("/options/:optionId/toggle", handlers.ToggleOptionHandler)
		offer.POST("/options/:optionId/mode", handlers.SwitchOptionModeHandler)
		offer.POST("/options/reorder", handlers.ReorderOptionsHandler)
		offer.POST("/save", handlers.SaveOfferHandler)
		offer.POST("/send-proposal", handlers.SendProposalHandler)
		offer.POST("/send-final", handlers.SendFinalOfferHandler)
		offer.POST("/unlock", handlers.UnlockOfferHandler)
		offer.POST("/close", handlers.CloseOfferSessionHandler)
		offer.GET("/history", handlers.GetOfferHistoryHandler)
		offer.GET("/history/export", handlers.ExportOfferHistoryHandler)
	}

	log.Printf("Starting server on port %s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
