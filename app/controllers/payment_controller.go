package controllers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/VenueBookHQ/VenueBook/app/repository"
	"github.com/VenueBookHQ/VenueBook/internal/pkg/env"
	"github.com/VenueBookHQ/VenueBook/internal/pkg/mail"
	"github.com/VenueBookHQ/VenueBook/internal/pkg/payment"
)

type createOrderBody struct {
	BookingID uint  `json:"booking_id"`
	Amount    int64 `json:"amount"`
}

// HandleCreateOrder opens a provider order for a booking's advance amount.
func HandleCreateOrder(c *fiber.Ctx) error {
	var body createOrderBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.BookingID == 0 {
		return badRequest(c, "booking_id is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	order, err := buildPaymentService().CreateOrder(ctx, body.BookingID, body.Amount)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, order)
}

type verifyPaymentBody struct {
	BookingID uint   `json:"booking_id"`
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
	Amount    int64  `json:"amount"`
}

// HandleVerifyPayment authenticates a provider callback and settles the
// booking. Replayed callbacks return the stored payment without re-crediting.
func HandleVerifyPayment(c *fiber.Ctx) error {
	var body verifyPaymentBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.BookingID == 0 || body.OrderID == "" || body.PaymentID == "" {
		return badRequest(c, "booking_id, order_id and payment_id are required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	record, err := buildPaymentService().VerifyAndSettle(ctx, payment.VerifyInput{
		BookingID:      body.BookingID,
		OrderID:        body.OrderID,
		PaymentID:      body.PaymentID,
		Signature:      body.Signature,
		DeclaredAmount: body.Amount,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, record)
}

// buildPaymentService wires the settlement service from globals and env config.
func buildPaymentService() *payment.Service {
	repos := repository.GetGlobalRepositories()
	cfg := payment.Config{
		KeyID:          env.GetEnv("PAYMENT_KEY_ID", ""),
		KeySecret:      env.GetEnv("PAYMENT_KEY_SECRET", ""),
		Currency:       env.GetEnv("PAYMENT_CURRENCY", "INR"),
		AdvancePercent: env.GetEnvInt("ADVANCE_PERCENT", 100),
	}
	notifier := mail.NewBookingMailer(env.GetEnv("OPERATOR_EMAIL", ""))
	return payment.NewService(cfg, repos.Booking, repos.Payment, repos.User, notifier)
}
