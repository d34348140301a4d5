package router

import (
	"appointment-service/internal/module/booking/handler"
	"appointment-service/internal/pkg/middleware"

	"github.com/gofiber/fiber/v2"
)

func Initialize(app *fiber.App, handlerBooking *handler.BookingHandler, m *middleware.Middleware) *fiber.App {

	// health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("OK")
	})

	Api := app.Group("/api")

	// public routes
	v1 := Api.Group("/v1")
	v1.Get("/availability", handlerBooking.CheckAvailability)
	v1.Get("/payment/callback", handlerBooking.PaymentCallback)

	v1.Get("/bookings", m.ValidateToken, handlerBooking.ShowBookings)
	v1.Get("/bookings/:booking_id", m.ValidateToken, handlerBooking.ShowBookingDetail)
	v1.Post("/bookings", m.ValidateToken, handlerBooking.CreateBooking)
	v1.Post("/bookings/cancel", m.ValidateToken, handlerBooking.CancelBooking)
	v1.Post("/bookings/reschedule", m.ValidateToken, handlerBooking.RescheduleBooking)

	private := Api.Group("/private")
	private.Get("/payment/pending", handlerBooking.CountPendingPayment)

	return app

}
