package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Geo222222/serenity-s-keys/internal/api"
	"github.com/Geo222222/serenity-s-keys/internal/config"
	"github.com/Geo222222/serenity-s-keys/internal/handlers"
	"github.com/Geo222222/serenity-s-keys/internal/middleware"
	"github.com/Geo222222/serenity-s-keys/internal/services"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config) {
	client := api.NewClient(cfg.APIBaseURL)

	catalog := services.NewCatalog()
	bookingService := services.NewBookingService(client, cfg.BookingBaseURL)
	adminService := services.NewAdminService(client)

	programHandler := handlers.NewProgramHandler(catalog)
	availabilityHandler := handlers.NewAvailabilityHandler(client, catalog)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	launchpadHandler := handlers.NewLaunchpadHandler(client)

	passwordHint := ""
	if cfg.HintEnabled() {
		passwordHint = cfg.AdminPasswordHint
	}
	adminHandler := handlers.NewAdminHandler(adminService, passwordHint)

	app.Use(middleware.RequestID())
	app.Use(middleware.ResolveAdmin(adminService))

	// Visitor-facing pages.
	app.Get("/programs", programHandler.List)
	app.Get("/availability", availabilityHandler.List)
	app.Get("/launchpad", launchpadHandler.Show)
	app.Get("/success", handlers.Success)
	app.Get("/cancel", handlers.Cancel)

	booking := app.Group("/api/booking")
	booking.Post("/checkout", bookingHandler.StartCheckout)

	admin := app.Group("/api/admin")
	admin.Post("/login", adminHandler.Login)
	admin.Post("/logout", adminHandler.Logout)
	admin.Get("/overview", adminHandler.Overview)
	admin.Post("/session", middleware.AdminRequired(), adminHandler.CreateSession)
	admin.Get("/sessions", middleware.AdminRequired(), adminHandler.Sessions)

	// The upstream API enforces auth on CSV import; the portal forwards with
	// whatever credential is present.
	app.Post("/api/typing/import", adminHandler.ImportCSV)
}
