package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// ServiceItem is a standalone catalog entity (catering, decoration, ...).
// It shares the slug rules with Venue but keeps its own slug namespace.
type ServiceItem struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name" validate:"required,min=2,max=255"`
	Slug        string         `gorm:"uniqueIndex;type:varchar(255) CHARACTER SET utf8 COLLATE utf8_bin" json:"slug"`
	Category    string         `gorm:"type:varchar(100)" json:"category"`
	Price       int64          `gorm:"default:0" json:"price" validate:"min=0"`
	Description string         `gorm:"type:text" json:"description"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *ServiceItem) Validate() error {
	return validator.New().Struct(s)
}
