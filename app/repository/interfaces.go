package repository

import (
	"context"
	"time"

	"github.com/VenueBookHQ/VenueBook/app/models"
	"gorm.io/gorm"
)

// VenueRepository defines the interface for venue-related database operations
type VenueRepository interface {
	Create(ctx context.Context, venue *models.Venue) error
	GetByID(ctx context.Context, id uint) (*models.Venue, error)
	GetBySlug(ctx context.Context, slug string) (*models.Venue, error)
	GetWithPricing(ctx context.Context, id uint) (*models.Venue, error)
	Update(ctx context.Context, venue *models.Venue) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]models.Venue, error)
	Count(ctx context.Context) (int64, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	SlugExistsExceptID(ctx context.Context, slug string, id uint) (bool, error)
}

// ServiceItemRepository defines the interface for service catalog operations
type ServiceItemRepository interface {
	Create(ctx context.Context, item *models.ServiceItem) error
	GetByID(ctx context.Context, id uint) (*models.ServiceItem, error)
	GetBySlug(ctx context.Context, slug string) (*models.ServiceItem, error)
	Update(ctx context.Context, item *models.ServiceItem) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]models.ServiceItem, error)
	Count(ctx context.Context) (int64, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	SlugExistsExceptID(ctx context.Context, slug string, id uint) (bool, error)
}

// UserRepository defines the interface for account-related database operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Count(ctx context.Context) (int64, error)
}

// BookingRepository defines the interface for booking-related database operations
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id uint) (*models.Booking, error)
	GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*models.Booking, error)
	FindByVenueAndDay(ctx context.Context, venueID uint, dayStart, dayEnd time.Time, statuses []string) ([]models.Booking, error)
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error
	SetOrderID(ctx context.Context, id uint, orderID string) error
	Count(ctx context.Context) (int64, error)
}

// PaymentRepository defines the interface for payment record operations
type PaymentRepository interface {
	// CreateIfNotExists inserts the record unless one with the same provider
	// payment id is already stored. It reports whether the insert happened and
	// always returns the stored row.
	CreateIfNotExists(ctx context.Context, payment *models.Payment) (bool, *models.Payment, error)
	GetByPaymentID(ctx context.Context, paymentID string) (*models.Payment, error)
	ListByBooking(ctx context.Context, bookingID uint) ([]models.Payment, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	Venue       VenueRepository
	ServiceItem ServiceItemRepository
	User        UserRepository
	Booking     BookingRepository
	Payment     PaymentRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Venue:       NewVenueRepository(db),
		ServiceItem: NewServiceItemRepository(db),
		User:        NewUserRepository(db),
		Booking:     NewBookingRepository(db),
		Payment:     NewPaymentRepository(db),
	}
}
