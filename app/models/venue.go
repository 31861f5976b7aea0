package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Venue is a bookable catalog entity. Its slug is minted once at creation and
// only re-derived when the name changes (see internal/pkg/slugify).
type Venue struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	Name            string           `gorm:"type:varchar(255);not null" json:"name" validate:"required,min=2,max=255"`
	Slug            string           `gorm:"uniqueIndex;type:varchar(255) CHARACTER SET utf8 COLLATE utf8_bin" json:"slug"`
	Location        string           `gorm:"type:varchar(255)" json:"location"`
	Capacity        int              `gorm:"default:0" json:"capacity" validate:"min=0"`
	Description     string           `gorm:"type:text" json:"description"`
	BasePrice       int64            `gorm:"default:0" json:"base_price" validate:"min=0"`
	IsActive        bool             `gorm:"default:true" json:"is_active"`
	PriceSlots      []PriceSlot      `gorm:"foreignKey:VenueID" json:"price_slots,omitempty"`
	ServicePricings []ServicePricing `gorm:"foreignKey:VenueID" json:"service_pricings,omitempty"`
	CreatedAt       time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt   `gorm:"index" json:"-"`
}

func (v *Venue) Validate() error {
	return validator.New().Struct(v)
}

// PriceSlot prices a time window of the day. Times are zero-padded "HH:MM"
// strings so lexicographic comparison matches chronological order.
type PriceSlot struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	VenueID   uint      `gorm:"index;not null" json:"venue_id"`
	StartTime string    `gorm:"type:varchar(5);not null" json:"start_time" validate:"required,len=5"`
	EndTime   string    `gorm:"type:varchar(5);not null" json:"end_time" validate:"required,len=5"`
	Price     int64     `gorm:"not null" json:"price" validate:"min=0"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// ServicePricing maps an event type to the base price the venue charges for it.
type ServicePricing struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	VenueID   uint      `gorm:"index;not null;uniqueIndex:ux_service_pricings_venue_event,priority:1" json:"venue_id"`
	EventType string    `gorm:"type:varchar(100);not null;uniqueIndex:ux_service_pricings_venue_event,priority:2" json:"event_type" validate:"required"`
	Price     int64     `gorm:"not null" json:"price" validate:"min=0"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
