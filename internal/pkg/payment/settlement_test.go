package payment

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/VenueBookHQ/VenueBook/app/models"
	"github.com/VenueBookHQ/VenueBook/internal/pkg/apperr"
)

type fakeBookingStore struct {
	byID    map[uint]*models.Booking
	updates int
}

func (f *fakeBookingStore) Create(_ context.Context, b *models.Booking) error { return nil }
func (f *fakeBookingStore) GetByID(_ context.Context, id uint) (*models.Booking, error) {
	if b, ok := f.byID[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeBookingStore) GetByInvoiceNumber(context.Context, string) (*models.Booking, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeBookingStore) FindByVenueAndDay(context.Context, uint, time.Time, time.Time, []string) ([]models.Booking, error) {
	return nil, nil
}
func (f *fakeBookingStore) ListByUser(context.Context, uint, int, int) ([]models.Booking, error) {
	return nil, nil
}
func (f *fakeBookingStore) Update(_ context.Context, b *models.Booking) error {
	f.updates++
	f.byID[b.ID] = b
	return nil
}
func (f *fakeBookingStore) SetOrderID(_ context.Context, id uint, orderID string) error {
	if b, ok := f.byID[id]; ok {
		b.OrderID = orderID
		return nil
	}
	return gorm.ErrRecordNotFound
}
func (f *fakeBookingStore) Count(context.Context) (int64, error) { return 0, nil }

// fakePaymentStore deduplicates on the provider payment id like the unique
// index does.
type fakePaymentStore struct {
	byPaymentID map[string]*models.Payment
	nextID      uint
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{byPaymentID: make(map[string]*models.Payment)}
}

func (f *fakePaymentStore) CreateIfNotExists(_ context.Context, p *models.Payment) (bool, *models.Payment, error) {
	if stored, ok := f.byPaymentID[p.PaymentID]; ok {
		return false, stored, nil
	}
	f.nextID++
	p.ID = f.nextID
	f.byPaymentID[p.PaymentID] = p
	return true, p, nil
}

func (f *fakePaymentStore) GetByPaymentID(_ context.Context, paymentID string) (*models.Payment, error) {
	if p, ok := f.byPaymentID[paymentID]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePaymentStore) ListByBooking(context.Context, uint) ([]models.Payment, error) {
	return nil, nil
}

type fakeUserStore struct {
	user *models.User
}

func (f *fakeUserStore) Create(context.Context, *models.User) error { return nil }
func (f *fakeUserStore) GetByID(context.Context, uint) (*models.User, error) {
	if f.user != nil {
		return f.user, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserStore) GetByEmail(context.Context, string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserStore) Update(context.Context, *models.User) error { return nil }
func (f *fakeUserStore) Count(context.Context) (int64, error)      { return 0, nil }

type fakeNotifier struct {
	confirmations int
}

func (f *fakeNotifier) SendBookingConfirmation(*models.Booking, *models.User, string) error {
	f.confirmations++
	return nil
}
func (f *fakeNotifier) SendAdminNotification(*models.Booking, *models.User) error { return nil }

func testConfig() Config {
	return Config{KeyID: "key_test", KeySecret: "topsecret", Currency: "INR", AdvancePercent: 30}
}

func pendingBooking() *models.Booking {
	return &models.Booking{
		ID:            1,
		UserID:        7,
		InvoiceNumber: "INV-1-TESTTEST",
		TotalAmount:   306800,
		OrderID:       "order_1",
		PaymentStatus: models.PaymentStatusPending,
		Status:        models.BookingStatusPending,
	}
}

func newTestService(b *models.Booking) (*Service, *fakeBookingStore, *fakePaymentStore, *fakeNotifier) {
	bookings := &fakeBookingStore{byID: map[uint]*models.Booking{}}
	if b != nil {
		bookings.byID[b.ID] = b
	}
	payments := newFakePaymentStore()
	notifier := &fakeNotifier{}
	users := &fakeUserStore{user: &models.User{ID: 7, Name: "Alice", Email: "alice@example.com"}}
	return NewService(testConfig(), bookings, payments, users, notifier), bookings, payments, notifier
}

func TestAdvanceAmount(t *testing.T) {
	tests := []struct {
		total int64
		pct   int
		want  int64
	}{
		{total: 306800, pct: 30, want: 92040},
		{total: 100, pct: 30, want: 30},
		{total: 99, pct: 30, want: 30},   // 29.7 rounds up
		{total: 101, pct: 30, want: 30},  // 30.3 rounds down
		{total: 100, pct: 0, want: 100},  // non-positive means full payment
		{total: 100, pct: 150, want: 100},
		{total: 0, pct: 30, want: 0},
		{total: -5, pct: 30, want: 0},
	}

	for _, tt := range tests {
		if got := AdvanceAmount(tt.total, tt.pct); got != tt.want {
			t.Fatalf("AdvanceAmount(%d, %d) = %d, want %d", tt.total, tt.pct, got, tt.want)
		}
	}
}

func TestCreateOrderUnconfigured(t *testing.T) {
	svc := NewService(Config{}, nil, nil, nil, nil)

	_, err := svc.CreateOrder(context.Background(), 1, 0)
	assert.True(t, errors.Is(err, apperr.ErrUnconfigured))
}

func TestCreateOrderStoresOrderID(t *testing.T) {
	b := pendingBooking()
	svc, bookings, _, _ := newTestService(b)

	order, err := svc.CreateOrder(context.Background(), 1, 0)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.OrderID, "order_"))
	assert.Equal(t, int64(92040), order.Amount)
	assert.Equal(t, "INR", order.Currency)
	assert.Equal(t, order.OrderID, bookings.byID[1].OrderID)
}

func TestCreateOrderUnknownBooking(t *testing.T) {
	svc, _, _, _ := newTestService(nil)

	_, err := svc.CreateOrder(context.Background(), 99, 0)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestVerifyAndSettlePartialAdvance(t *testing.T) {
	b := pendingBooking()
	svc, bookings, _, notifier := newTestService(b)

	sig := SignPayload("order_1", "pay_1", "topsecret")
	record, err := svc.VerifyAndSettle(context.Background(), VerifyInput{
		BookingID: 1, OrderID: "order_1", PaymentID: "pay_1", Signature: sig,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(92040), record.Amount)
	assert.Equal(t, models.PaymentRecordSuccess, record.Status)

	settled := bookings.byID[1]
	assert.Equal(t, int64(92040), settled.PaidAmount)
	assert.Equal(t, models.PaymentStatusPartial, settled.PaymentStatus)
	assert.Equal(t, models.BookingStatusConfirmed, settled.Status)
	assert.Equal(t, 1, notifier.confirmations)
}

func TestVerifyAndSettleFullPaymentMarksPaid(t *testing.T) {
	b := pendingBooking()
	b.AdvancePercent = 100
	svc, bookings, _, _ := newTestService(b)

	sig := SignPayload("order_1", "pay_1", "topsecret")
	_, err := svc.VerifyAndSettle(context.Background(), VerifyInput{
		BookingID: 1, OrderID: "order_1", PaymentID: "pay_1", Signature: sig,
	})
	require.NoError(t, err)

	settled := bookings.byID[1]
	assert.Equal(t, b.TotalAmount, settled.PaidAmount)
	assert.Equal(t, models.PaymentStatusPaid, settled.PaymentStatus)
}

func TestVerifyAndSettleRejectsBadSignature(t *testing.T) {
	b := pendingBooking()
	svc, bookings, payments, _ := newTestService(b)

	_, err := svc.VerifyAndSettle(context.Background(), VerifyInput{
		BookingID: 1, OrderID: "order_1", PaymentID: "pay_1", Signature: "deadbeef",
	})
	assert.True(t, errors.Is(err, apperr.ErrInvalidSignature))

	// No state was touched.
	assert.Equal(t, int64(0), bookings.byID[1].PaidAmount)
	assert.Equal(t, models.BookingStatusPending, bookings.byID[1].Status)
	assert.Empty(t, payments.byPaymentID)
}

func TestVerifyAndSettleRejectsOrderForDifferentBooking(t *testing.T) {
	cheap := pendingBooking()
	other := &models.Booking{
		ID:            2,
		UserID:        7,
		InvoiceNumber: "INV-2-TESTTEST",
		TotalAmount:   900000,
		OrderID:       "order_2",
		PaymentStatus: models.PaymentStatusPending,
		Status:        models.BookingStatusPending,
	}
	svc, bookings, payments, _ := newTestService(cheap)
	bookings.byID[other.ID] = other

	// A genuine callback for the cheap booking's order, aimed at the other
	// booking.
	sig := SignPayload("order_1", "pay_1", "topsecret")
	_, err := svc.VerifyAndSettle(context.Background(), VerifyInput{
		BookingID: 2, OrderID: "order_1", PaymentID: "pay_1", Signature: sig,
	})
	assert.True(t, errors.Is(err, apperr.ErrInvalidSignature))

	assert.Equal(t, int64(0), other.PaidAmount)
	assert.Equal(t, models.BookingStatusPending, other.Status)
	assert.Empty(t, payments.byPaymentID)
}

func TestVerifyAndSettleRejectsBookingWithoutOrder(t *testing.T) {
	b := pendingBooking()
	b.OrderID = ""
	svc, bookings, payments, _ := newTestService(b)

	sig := SignPayload("order_1", "pay_1", "topsecret")
	_, err := svc.VerifyAndSettle(context.Background(), VerifyInput{
		BookingID: 1, OrderID: "order_1", PaymentID: "pay_1", Signature: sig,
	})
	assert.True(t, errors.Is(err, apperr.ErrInvalidSignature))

	assert.Equal(t, int64(0), bookings.byID[1].PaidAmount)
	assert.Empty(t, payments.byPaymentID)
}

func TestVerifyAndSettleDuplicateCallbackDoesNotRecredit(t *testing.T) {
	b := pendingBooking()
	svc, bookings, payments, notifier := newTestService(b)

	sig := SignPayload("order_1", "pay_1", "topsecret")
	in := VerifyInput{BookingID: 1, OrderID: "order_1", PaymentID: "pay_1", Signature: sig}

	first, err := svc.VerifyAndSettle(context.Background(), in)
	require.NoError(t, err)
	second, err := svc.VerifyAndSettle(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, payments.byPaymentID, 1)
	assert.Equal(t, int64(92040), bookings.byID[1].PaidAmount)
	assert.Equal(t, 1, bookings.updates)
	assert.Equal(t, 1, notifier.confirmations)
}
