package repository

import (
	"context"

	"github.com/VenueBookHQ/VenueBook/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// paymentRepository implements the PaymentRepository interface
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository instance
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// CreateIfNotExists inserts the record unless the provider payment id is
// already stored. The unique index on payment_id carries the dedup; the
// insert itself never errors on the duplicate.
func (r *paymentRepository) CreateIfNotExists(ctx context.Context, payment *models.Payment) (bool, *models.Payment, error) {
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "payment_id"}},
		DoNothing: true,
	}).Create(payment)
	if tx.Error != nil {
		return false, nil, tx.Error
	}

	created := tx.RowsAffected > 0
	var stored models.Payment
	if err := r.db.WithContext(ctx).Where("payment_id = ?", payment.PaymentID).
		First(&stored).Error; err != nil {
		return false, nil, err
	}
	return created, &stored, nil
}

// GetByPaymentID retrieves a payment record by the provider payment id
func (r *paymentRepository) GetByPaymentID(ctx context.Context, paymentID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).Where("payment_id = ?", paymentID).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// ListByBooking retrieves all payment records for one booking
func (r *paymentRepository) ListByBooking(ctx context.Context, bookingID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at ASC").
		Find(&payments).Error
	return payments, err
}
