package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/VenueBookHQ/VenueBook/app/controllers"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "venuebook api",
		})
	})

	// API v1 routes
	v1 := api.Group("/v1")

	v1.Post("/venues", controllers.HandleCreateVenue)
	v1.Get("/venues", controllers.HandleListVenues)
	v1.Get("/venues/:slug", controllers.HandleGetVenueBySlug)
	v1.Put("/venues/:id", controllers.HandleUpdateVenue)
	v1.Get("/venues/:id/availability", controllers.HandleVenueAvailability)
	v1.Get("/venues/:id/price", controllers.HandleVenuePrice)

	v1.Post("/services", controllers.HandleCreateServiceItem)
	v1.Get("/services", controllers.HandleListServiceItems)

	v1.Post("/bookings", controllers.HandleCreateBooking)
	v1.Get("/bookings", controllers.HandleListBookingsByEmail)
	v1.Get("/bookings/:id", controllers.HandleGetBooking)

	v1.Post("/payments/provider/create-order", controllers.HandleCreateOrder)
	v1.Post("/payments/provider/verify", controllers.HandleVerifyPayment)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
