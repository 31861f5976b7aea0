package models

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	ROLE_USER     = "user"
	ROLE_ADMIN    = "admin"
	STATUS_ACTIVE = "active"
	STATUS_GUEST  = "guest"
)

// User represents a payer account: either a registered customer or a guest
// record auto-created to anchor a booking made without prior registration.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(150)" json:"name" validate:"required,min=2,max=150"`
	Email     string         `gorm:"uniqueIndex;type:varchar(200) CHARACTER SET utf8 COLLATE utf8_bin" json:"email" validate:"required,email,min=5,max=200"`
	Phone     string         `gorm:"type:varchar(20)" json:"phone"`
	Password  string         `gorm:"type:text" json:"-" validate:"required,min=6"`
	Role      string         `gorm:"type:varchar(50);default:'user'" json:"role" validate:"oneof=user admin"`
	Status    string         `gorm:"type:varchar(50);default:'active'" json:"status" validate:"oneof=active guest"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) Validate() error {
	v := validator.New()

	return v.Struct(u)
}

// IsGuest reports whether the account was auto-created during booking.
func (u *User) IsGuest() bool {
	return u.Status == STATUS_GUEST
}

// CreateGuestUser builds an account that exists solely to anchor bookings and
// payments. The credential is random and unusable for login.
func CreateGuestUser(name, email, phone string) (*User, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	pw, err := HashPassword(hex.EncodeToString(b))
	if err != nil {
		return nil, err
	}

	u := &User{
		Name:     name,
		Email:    email,
		Phone:    phone,
		Password: pw,
		Role:     ROLE_USER,
		Status:   STATUS_GUEST,
	}

	if err := u.Validate(); err != nil {
		return nil, err
	}

	return u, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// CheckPasswordHash compares the given password with the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}
