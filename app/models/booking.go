package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"

	PaymentStatusPending  = "pending"
	PaymentStatusPartial  = "partial"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

// Booking is the persisted outcome of the booking workflow. It is created in
// status=pending/paymentStatus=pending and advanced only by payment
// settlement or administrative cancellation, never deleted.
type Booking struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	InvoiceNumber  string         `gorm:"uniqueIndex;type:varchar(64);not null" json:"invoice_number"`
	VenueID        uint           `gorm:"index;not null" json:"venue_id"`
	Venue          Venue          `gorm:"foreignKey:VenueID" json:"venue,omitempty"`
	UserID         uint           `gorm:"index;not null" json:"user_id"`
	User           User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	EventName      string         `gorm:"type:varchar(255);not null" json:"event_name"`
	EventType      string         `gorm:"type:varchar(100);not null" json:"event_type"`
	EventDate      time.Time      `gorm:"index;not null" json:"event_date"`
	StartTime      string         `gorm:"type:varchar(5)" json:"start_time"`
	EndTime        string         `gorm:"type:varchar(5)" json:"end_time"`
	GuestCount     int            `gorm:"default:1" json:"guest_count"`
	Addons         []Addon        `gorm:"foreignKey:BookingID" json:"addons,omitempty"`
	BasePrice      int64          `gorm:"not null" json:"base_price"`
	SlotPrice      int64          `gorm:"not null" json:"slot_price"`
	AddonsTotal    int64          `gorm:"not null" json:"addons_total"`
	Tax            int64          `gorm:"not null" json:"tax"`
	TotalAmount    int64          `gorm:"not null" json:"total_amount"`
	PaidAmount     int64          `gorm:"default:0" json:"paid_amount"`
	AdvancePercent int            `gorm:"default:100" json:"advance_percent"`
	PaymentStatus  string         `gorm:"type:varchar(20);default:'pending';index" json:"payment_status"`
	Status         string         `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	OrderID        string         `gorm:"type:varchar(100);index" json:"order_id,omitempty"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsSettled reports whether the advance has been captured.
func (b *Booking) IsSettled() bool {
	return b.PaymentStatus == PaymentStatusPaid || b.PaymentStatus == PaymentStatusPartial
}

// Addon is a priced extra attached to a booking.
type Addon struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BookingID uint      `gorm:"index;not null" json:"booking_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	UnitPrice int64     `gorm:"not null" json:"unit_price"`
	Quantity  int       `gorm:"default:1" json:"quantity"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Total returns the addon line total. A zero or negative quantity counts as one.
func (a *Addon) Total() int64 {
	qty := a.Quantity
	if qty < 1 {
		qty = 1
	}
	return a.UnitPrice * int64(qty)
}
