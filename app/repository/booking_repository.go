package repository

import (
	"context"
	"time"

	"github.com/VenueBookHQ/VenueBook/app/models"
	"gorm.io/gorm"
)

// bookingRepository implements the BookingRepository interface
type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository instance
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

// Create persists a booking together with its addons
func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

// GetByID retrieves a booking with its addons preloaded
func (r *bookingRepository) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).Preload("Addons").First(&booking, id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// GetByInvoiceNumber retrieves a booking by its human-displayable invoice number
func (r *bookingRepository) GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).Preload("Addons").
		Where("invoice_number = ?", invoiceNumber).First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByVenueAndDay returns bookings for a venue whose event date falls inside
// the given day window, restricted to the supplied statuses.
func (r *bookingRepository) FindByVenueAndDay(ctx context.Context, venueID uint, dayStart, dayEnd time.Time, statuses []string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("venue_id = ? AND event_date BETWEEN ? AND ? AND status IN ?", venueID, dayStart, dayEnd, statuses).
		Order("event_date ASC").
		Find(&bookings).Error
	return bookings, err
}

// ListByUser retrieves a paginated list of bookings for one account
func (r *bookingRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&bookings).Error
	return bookings, err
}

// Update updates an existing booking in the database
func (r *bookingRepository) Update(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Save(booking).Error
}

// SetOrderID stores the provider order id on the booking
func (r *bookingRepository) SetOrderID(ctx context.Context, id uint, orderID string) error {
	return r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ?", id).Update("order_id", orderID).Error
}

// Count returns the total number of bookings
func (r *bookingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Booking{}).Count(&count).Error
	return count, err
}
