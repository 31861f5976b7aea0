package payment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/VenueBookHQ/VenueBook/app/models"
	"github.com/VenueBookHQ/VenueBook/app/repository"
	"github.com/VenueBookHQ/VenueBook/internal/pkg/apperr"
	"github.com/VenueBookHQ/VenueBook/internal/pkg/booking"
)

// Config is the injected provider configuration. The service is Unconfigured
// until both credentials are present.
type Config struct {
	KeyID          string
	KeySecret      string
	Currency       string
	AdvancePercent int
}

// Configured reports whether provider credentials are present.
func (c Config) Configured() bool {
	return c.KeyID != "" && c.KeySecret != ""
}

// Order is the provider-side order handed to the client for checkout.
type Order struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// VerifyInput is a provider payment callback.
type VerifyInput struct {
	BookingID      uint
	OrderID        string
	PaymentID      string
	Signature      string
	DeclaredAmount int64
}

// Service verifies provider callbacks and transitions bookings from unpaid to
// settled exactly once per external payment id.
type Service struct {
	cfg      Config
	bookings repository.BookingRepository
	payments repository.PaymentRepository
	users    repository.UserRepository
	notifier booking.Notifier
}

// NewService wires the settlement service.
func NewService(cfg Config, bookings repository.BookingRepository, payments repository.PaymentRepository, users repository.UserRepository, notifier booking.Notifier) *Service {
	return &Service{cfg: cfg, bookings: bookings, payments: payments, users: users, notifier: notifier}
}

// CreateOrder registers a provider order for the booking's advance amount.
// The amount captured is policy-derived, not client-declared.
func (s *Service) CreateOrder(ctx context.Context, bookingID uint, declaredAmount int64) (*Order, error) {
	if !s.cfg.Configured() {
		return nil, fmt.Errorf("payment provider: %w", apperr.ErrUnconfigured)
	}

	b, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	amount := AdvanceAmount(b.TotalAmount, s.advancePercent(b))
	if declaredAmount > 0 && declaredAmount != amount {
		log.Printf("[payment] declared amount %d differs from advance %d for booking %d", declaredAmount, amount, b.ID)
	}

	orderID := "order_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:20]
	if err := s.bookings.SetOrderID(ctx, b.ID, orderID); err != nil {
		return nil, fmt.Errorf("store order id: %w", err)
	}

	currency := s.cfg.Currency
	if currency == "" {
		currency = "INR"
	}
	return &Order{OrderID: orderID, Amount: amount, Currency: currency}, nil
}

// VerifyAndSettle authenticates the callback and advances the booking's
// settlement state. A duplicate callback for an already-stored payment id is
// a no-op success: the stored record is returned and paid_amount is not
// credited again.
func (s *Service) VerifyAndSettle(ctx context.Context, in VerifyInput) (*models.Payment, error) {
	if !s.cfg.Configured() {
		return nil, fmt.Errorf("payment provider: %w", apperr.ErrUnconfigured)
	}

	if !VerifySignature(in.OrderID, in.PaymentID, in.Signature, s.cfg.KeySecret) {
		return nil, fmt.Errorf("callback for order %s: %w", in.OrderID, apperr.ErrInvalidSignature)
	}

	b, err := s.loadBooking(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}

	// The signature only binds orderId|paymentId. Tying the callback to the
	// order stored on the booking keeps a genuine callback from settling a
	// different booking than the one it was charged for.
	if b.OrderID == "" || b.OrderID != in.OrderID {
		return nil, fmt.Errorf("callback order %s does not match booking %d: %w", in.OrderID, b.ID, apperr.ErrInvalidSignature)
	}

	advance := AdvanceAmount(b.TotalAmount, s.advancePercent(b))
	if in.DeclaredAmount > 0 && in.DeclaredAmount != advance {
		log.Printf("[payment] declared amount %d ignored, settling policy advance %d for booking %d", in.DeclaredAmount, advance, b.ID)
	}

	record := &models.Payment{
		BookingID: b.ID,
		UserID:    b.UserID,
		OrderID:   in.OrderID,
		PaymentID: in.PaymentID,
		Signature: in.Signature,
		Amount:    advance,
		Status:    models.PaymentRecordSuccess,
	}

	created, stored, err := s.payments.CreateIfNotExists(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("persist payment record: %w", err)
	}
	if !created {
		log.Printf("[payment] duplicate callback for payment %s, booking %d left unchanged", in.PaymentID, b.ID)
		return stored, nil
	}

	b.PaidAmount = advance
	if b.PaidAmount >= b.TotalAmount {
		b.PaymentStatus = models.PaymentStatusPaid
	} else {
		b.PaymentStatus = models.PaymentStatusPartial
	}
	b.Status = models.BookingStatusConfirmed
	if err := s.bookings.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("settle booking %d: %w", b.ID, err)
	}

	s.notifySettled(ctx, b)

	return stored, nil
}

// AdvanceAmount computes the policy fraction of the total due at booking,
// rounded half-up. A non-positive percent means full payment.
func AdvanceAmount(total int64, pct int) int64 {
	if pct <= 0 || pct > 100 {
		pct = 100
	}
	if total <= 0 {
		return 0
	}
	return (total*int64(pct) + 50) / 100
}

func (s *Service) advancePercent(b *models.Booking) int {
	if b.AdvancePercent > 0 {
		return b.AdvancePercent
	}
	return s.cfg.AdvancePercent
}

func (s *Service) loadBooking(ctx context.Context, id uint) (*models.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("booking %d", id)
		}
		return nil, fmt.Errorf("load booking: %w", err)
	}
	return b, nil
}

// notifySettled mirrors the booking workflow's best-effort contract.
func (s *Service) notifySettled(ctx context.Context, b *models.Booking) {
	if s.notifier == nil {
		return
	}
	user, err := s.users.GetByID(ctx, b.UserID)
	if err != nil {
		log.Printf("[payment] could not load account %d for settlement mail: %v", b.UserID, err)
		return
	}
	if err := s.notifier.SendBookingConfirmation(b, user, ""); err != nil {
		log.Printf("[payment] settlement mail failed for %s: %v", b.InvoiceNumber, err)
	}
	if err := s.notifier.SendAdminNotification(b, user); err != nil {
		log.Printf("[payment] admin mail failed for %s: %v", b.InvoiceNumber, err)
	}
}
