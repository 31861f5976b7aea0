package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/VenueBookHQ/VenueBook/app/repository"
	"github.com/VenueBookHQ/VenueBook/internal/pkg/availability"
	"github.com/VenueBookHQ/VenueBook/internal/pkg/booking"
	"github.com/VenueBookHQ/VenueBook/internal/pkg/cache"
	"github.com/VenueBookHQ/VenueBook/internal/pkg/env"
	"github.com/VenueBookHQ/VenueBook/internal/pkg/identity"
	"github.com/VenueBookHQ/VenueBook/internal/pkg/invoice"
	"github.com/VenueBookHQ/VenueBook/internal/pkg/mail"
	"github.com/VenueBookHQ/VenueBook/internal/pkg/pricing"
)

const requestTimeout = 15 * time.Second

// createBookingBody is the wire shape of POST /bookings.
type createBookingBody struct {
	VenueID       uint                 `json:"venue_id"`
	EventName     string               `json:"event_name"`
	EventType     string               `json:"event_type"`
	EventDate     string               `json:"event_date"`
	StartTime     string               `json:"start_time"`
	EndTime       string               `json:"end_time"`
	GuestCount    int                  `json:"guest_count"`
	CustomerName  string               `json:"customer_name"`
	CustomerEmail string               `json:"customer_email"`
	CustomerPhone string               `json:"customer_phone"`
	Addons        []booking.AddonInput `json:"addons"`

	// Optional precomputed breakdown from the presentation layer.
	BasePrice   int64 `json:"base_price"`
	AddonsTotal int64 `json:"addons_total"`
	Tax         int64 `json:"tax"`
	TotalAmount int64 `json:"total_amount"`
}

// HandleCreateBooking forms and persists a booking.
func HandleCreateBooking(c *fiber.Ctx) error {
	var body createBookingBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	eventDate, err := time.ParseInLocation("2006-01-02", body.EventDate, time.Local)
	if err != nil && body.EventDate != "" {
		return badRequest(c, "event_date must be formatted as YYYY-MM-DD")
	}

	wf := buildBookingWorkflow()
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	b, err := wf.CreateBooking(ctx, booking.CreateBookingRequest{
		VenueID:       body.VenueID,
		EventName:     body.EventName,
		EventType:     body.EventType,
		EventDate:     eventDate,
		StartTime:     body.StartTime,
		EndTime:       body.EndTime,
		GuestCount:    body.GuestCount,
		CustomerName:  body.CustomerName,
		CustomerEmail: body.CustomerEmail,
		CustomerPhone: body.CustomerPhone,
		Addons:        body.Addons,
		Overrides: pricing.Overrides{
			BasePrice:   body.BasePrice,
			AddonsTotal: body.AddonsTotal,
			Tax:         body.Tax,
			TotalAmount: body.TotalAmount,
		},
	})
	if err != nil {
		return respondError(c, err)
	}

	return respondData(c, fiber.StatusCreated, b)
}

// HandleGetBooking fetches one booking with its addons.
func HandleGetBooking(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return badRequest(c, "booking id must be numeric")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	b, err := repository.GetGlobalFactory().GetBookingRepository().GetByID(ctx, uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, b)
}

// HandleListBookingsByEmail lists the bookings anchored to a customer email.
// An unknown email yields an empty list, not an error.
func HandleListBookingsByEmail(c *fiber.Ctx) error {
	email := strings.ToLower(strings.TrimSpace(c.Query("email")))
	if email == "" {
		return badRequest(c, "email query parameter is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	repos := repository.GetGlobalRepositories()
	user, err := repos.User.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondList(c, []struct{}{}, 0)
		}
		return respondError(c, err)
	}

	bookings, err := repos.Booking.ListByUser(ctx, user.ID, c.QueryInt("offset", 0), c.QueryInt("limit", 50))
	if err != nil {
		return respondError(c, err)
	}
	return respondList(c, bookings, int64(len(bookings)))
}

// HandleVenueAvailability reports whether a venue is free for a date and
// optional time window. Conflicts are counted, not enforced.
func HandleVenueAvailability(c *fiber.Ctx) error {
	venueID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return badRequest(c, "venue id must be numeric")
	}
	date, err := time.ParseInLocation("2006-01-02", c.Query("date"), time.Local)
	if err != nil {
		return badRequest(c, "date query parameter must be formatted as YYYY-MM-DD")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	repos := repository.GetGlobalRepositories()
	if _, err := repos.Venue.GetByID(ctx, uint(venueID)); err != nil {
		return respondError(c, err)
	}

	checker := availability.NewChecker(repos.Booking)
	conflicts, err := checker.FindConflicts(ctx, uint(venueID), date, c.Query("startTime"), c.Query("endTime"))
	if err != nil {
		return respondError(c, err)
	}

	return respondData(c, fiber.StatusOK, fiber.Map{
		"available":           len(conflicts) == 0,
		"conflictingBookings": len(conflicts),
	})
}

// HandleVenuePrice computes a price breakdown without creating a booking.
// Responses are cached briefly; cache failures fall through to the DB.
func HandleVenuePrice(c *fiber.Ctx) error {
	venueID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return badRequest(c, "venue id must be numeric")
	}
	serviceType := c.Query("serviceType")
	startTime := c.Query("startTime")
	endTime := c.Query("endTime")

	cacheKey := "price:" + c.Params("id") + ":" + serviceType + ":" + startTime + ":" + endTime
	if cached, err := cache.Get(cacheKey); err == nil && cached != "" {
		var breakdown pricing.Breakdown
		if json.Unmarshal([]byte(cached), &breakdown) == nil {
			return respondData(c, fiber.StatusOK, breakdown)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	venue, err := repository.GetGlobalFactory().GetVenueRepository().GetWithPricing(ctx, uint(venueID))
	if err != nil {
		return respondError(c, err)
	}

	breakdown := pricing.Compute(venue, serviceType, startTime, endTime, nil, pricing.Overrides{})
	if encoded, err := json.Marshal(breakdown); err == nil {
		_ = cache.Set(cacheKey, string(encoded), time.Minute)
	}

	return respondData(c, fiber.StatusOK, breakdown)
}

// buildBookingWorkflow wires the workflow from globals and env config.
func buildBookingWorkflow() *booking.Workflow {
	repos := repository.GetGlobalRepositories()
	operatorEmail := env.GetEnv("OPERATOR_EMAIL", "")

	cfg := booking.Config{
		AdvancePercent: env.GetEnvInt("ADVANCE_PERCENT", 100),
	}

	return booking.NewWorkflow(
		cfg,
		repos.Venue,
		repos.Booking,
		identity.NewResolver(repos.User, operatorEmail),
		availability.NewChecker(repos.Booking),
		mail.NewBookingMailer(operatorEmail),
		invoice.NewRenderer(env.GetEnv("INVOICE_DIR", "./invoices")),
	)
}
