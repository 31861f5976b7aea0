package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/VenueBookHQ/VenueBook/app/models"
	"github.com/VenueBookHQ/VenueBook/app/repository"
	"github.com/VenueBookHQ/VenueBook/internal/pkg/apperr"
	"github.com/VenueBookHQ/VenueBook/internal/pkg/availability"
	"github.com/VenueBookHQ/VenueBook/internal/pkg/identity"
	"github.com/VenueBookHQ/VenueBook/internal/pkg/pricing"
)

// Notifier delivers booking mails. Implementations must be safe to fail: the
// workflow logs and swallows every notifier error, booking durability never
// depends on the notification channel.
type Notifier interface {
	SendBookingConfirmation(booking *models.Booking, user *models.User, attachmentPath string) error
	SendAdminNotification(booking *models.Booking, user *models.User) error
}

// InvoiceRenderer produces the invoice file attached to the confirmation
// mail. Deterministic for the same booking snapshot.
type InvoiceRenderer interface {
	Render(booking *models.Booking, user *models.User, venue *models.Venue, serviceLabel string) (string, error)
}

// Config is the injected policy configuration for the workflow.
type Config struct {
	AdvancePercent int
}

// Workflow creates bookings in a consistent initial state: it validates the
// request, resolves the guest identity, prices the event and persists the
// booking before any notification side effect runs.
type Workflow struct {
	cfg      Config
	venues   repository.VenueRepository
	bookings repository.BookingRepository
	resolver *identity.Resolver
	checker  *availability.Checker
	notifier Notifier
	invoices InvoiceRenderer
	validate *validator.Validate
}

// NewWorkflow wires the booking workflow from its collaborators.
func NewWorkflow(
	cfg Config,
	venues repository.VenueRepository,
	bookings repository.BookingRepository,
	resolver *identity.Resolver,
	checker *availability.Checker,
	notifier Notifier,
	invoices InvoiceRenderer,
) *Workflow {
	return &Workflow{
		cfg:      cfg,
		venues:   venues,
		bookings: bookings,
		resolver: resolver,
		checker:  checker,
		notifier: notifier,
		invoices: invoices,
		validate: validator.New(),
	}
}

// AddonInput is one requested extra.
type AddonInput struct {
	Name      string `json:"name" validate:"required"`
	UnitPrice int64  `json:"unit_price" validate:"min=0"`
	Quantity  int    `json:"quantity"`
}

// CreateBookingRequest carries everything needed to form a booking.
type CreateBookingRequest struct {
	VenueID       uint      `json:"venue_id" validate:"required"`
	EventName     string    `json:"event_name" validate:"required,min=2,max=255"`
	EventType     string    `json:"event_type" validate:"required,max=100"`
	EventDate     time.Time `json:"event_date" validate:"required"`
	StartTime     string    `json:"start_time" validate:"omitempty,len=5"`
	EndTime       string    `json:"end_time" validate:"omitempty,len=5"`
	GuestCount    int       `json:"guest_count" validate:"required,min=1"`
	CustomerName  string    `json:"customer_name" validate:"required,min=2,max=150"`
	CustomerEmail string    `json:"customer_email" validate:"required,email"`
	CustomerPhone string    `json:"customer_phone" validate:"required,min=7,max=20"`

	Addons    []AddonInput      `json:"addons" validate:"dive"`
	Overrides pricing.Overrides `json:"-"`
}

// CreateBooking runs the full formation flow. Steps 1-4 are hard failures
// that abort before persistence; the notification step never aborts.
func (w *Workflow) CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error) {
	if violations := w.collectViolations(req); len(violations) > 0 {
		return nil, apperr.NewValidation(violations)
	}

	user, err := w.resolver.Resolve(ctx, req.CustomerEmail, req.CustomerName, req.CustomerPhone)
	if err != nil {
		return nil, err
	}

	venue, err := w.venues.GetWithPricing(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("venue %d", req.VenueID)
		}
		return nil, fmt.Errorf("load venue: %w", err)
	}

	// Conflicts are advisory: same-day bookings are tolerated by policy, the
	// availability endpoint is where overlap checking is explicit.
	if conflicts, err := w.checker.FindConflicts(ctx, venue.ID, req.EventDate, req.StartTime, req.EndTime); err != nil {
		log.Printf("[booking] conflict check failed for venue %d: %v", venue.ID, err)
	} else if len(conflicts) > 0 {
		log.Printf("[booking] venue %d has %d same-day booking(s) on %s", venue.ID, len(conflicts), req.EventDate.Format("2006-01-02"))
	}

	addons := make([]models.Addon, 0, len(req.Addons))
	for _, a := range req.Addons {
		qty := a.Quantity
		if qty < 1 {
			qty = 1
		}
		addons = append(addons, models.Addon{Name: a.Name, UnitPrice: a.UnitPrice, Quantity: qty})
	}

	breakdown := pricing.Compute(venue, req.EventType, req.StartTime, req.EndTime, addons, req.Overrides)

	b := &models.Booking{
		InvoiceNumber:  NewInvoiceNumber(),
		VenueID:        venue.ID,
		UserID:         user.ID,
		EventName:      req.EventName,
		EventType:      req.EventType,
		EventDate:      req.EventDate,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		GuestCount:     req.GuestCount,
		Addons:         addons,
		BasePrice:      breakdown.BasePrice,
		SlotPrice:      breakdown.SlotPrice,
		AddonsTotal:    breakdown.AddonsTotal,
		Tax:            breakdown.Tax,
		TotalAmount:    breakdown.TotalAmount,
		PaidAmount:     0,
		AdvancePercent: w.cfg.AdvancePercent,
		PaymentStatus:  models.PaymentStatusPending,
		Status:         models.BookingStatusPending,
	}

	if err := w.bookings.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("persist booking: %w", err)
	}

	w.notifyCreated(b, user, venue)

	return b, nil
}

// NewInvoiceNumber mints a human-displayable invoice id. The timestamp keeps
// it monotonic-ish; the random suffix makes collisions negligible, so no
// store probe is done.
func NewInvoiceNumber() string {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("INV-%d-%s", time.Now().UnixMilli(), suffix)
}

// notifyCreated renders the invoice and sends both mails. Every failure is
// logged and swallowed.
func (w *Workflow) notifyCreated(b *models.Booking, user *models.User, venue *models.Venue) {
	attachment := ""
	if w.invoices != nil {
		path, err := w.invoices.Render(b, user, venue, b.EventType)
		if err != nil {
			log.Printf("[booking] invoice render failed for %s: %v", b.InvoiceNumber, err)
		} else {
			attachment = path
		}
	}
	if w.notifier == nil {
		return
	}
	if err := w.notifier.SendBookingConfirmation(b, user, attachment); err != nil {
		log.Printf("[booking] confirmation mail failed for %s: %v", b.InvoiceNumber, err)
	}
	if err := w.notifier.SendAdminNotification(b, user); err != nil {
		log.Printf("[booking] admin mail failed for %s: %v", b.InvoiceNumber, err)
	}
}

// collectViolations lists every invalid field, not just the first.
func (w *Workflow) collectViolations(req CreateBookingRequest) []string {
	err := w.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	violations := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			violations = append(violations, fmt.Sprintf("%s is required", fieldName(fe)))
		case "min":
			violations = append(violations, fmt.Sprintf("%s must be at least %s", fieldName(fe), fe.Param()))
		case "max":
			violations = append(violations, fmt.Sprintf("%s must be at most %s", fieldName(fe), fe.Param()))
		case "email":
			violations = append(violations, fmt.Sprintf("%s must be a valid email address", fieldName(fe)))
		case "len":
			violations = append(violations, fmt.Sprintf("%s must be %s characters (HH:MM)", fieldName(fe), fe.Param()))
		default:
			violations = append(violations, fmt.Sprintf("%s is invalid", fieldName(fe)))
		}
	}
	return violations
}

func fieldName(fe validator.FieldError) string {
	// StructNamespace is "CreateBookingRequest.Field"; drop the struct prefix.
	ns := fe.StructNamespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
