package models

import "time"

const (
	PaymentRecordSuccess = "success"
	PaymentRecordFailed  = "failed"
)

// Payment stores a provider callback outcome with deduplication metadata.
// The unique payment_id index makes settlement idempotent under duplicate or
// retried provider callbacks.
type Payment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BookingID uint      `gorm:"index;not null" json:"booking_id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	OrderID   string    `gorm:"type:varchar(100);not null;index" json:"order_id"`
	PaymentID string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"payment_id"`
	Signature string    `gorm:"type:varchar(255);not null" json:"-"`
	Amount    int64     `gorm:"not null" json:"amount"`
	Status    string    `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
