package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/VenueBookHQ/VenueBook/app/models"
	"github.com/VenueBookHQ/VenueBook/app/repository"
	"github.com/VenueBookHQ/VenueBook/internal/pkg/apperr"
	"gorm.io/gorm"
)

// Resolver maps a declared contact identity to exactly one persistent
// account, creating a guest account on first sight. Resolution is idempotent
// and tolerates concurrent first-time resolution of the same email: the
// store's unique email index rejects the losing insert and the loser adopts
// the winner's row.
type Resolver struct {
	users         repository.UserRepository
	operatorEmail string
}

// NewResolver creates a resolver. operatorEmail is the configured admin
// address that must never anchor a customer booking.
func NewResolver(users repository.UserRepository, operatorEmail string) *Resolver {
	return &Resolver{users: users, operatorEmail: strings.TrimSpace(operatorEmail)}
}

// Resolve returns the account for email, creating a guest account when none
// exists. Resolving the operator's own address is a policy violation.
func (r *Resolver) Resolve(ctx context.Context, email, name, phone string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, apperr.NewValidation([]string{"email is required"})
	}
	if r.operatorEmail != "" && strings.EqualFold(email, r.operatorEmail) {
		return nil, fmt.Errorf("operator email cannot anchor a booking: %w", apperr.ErrPolicyViolation)
	}

	user, err := r.users.GetByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	guest, err := models.CreateGuestUser(name, email, phone)
	if err != nil {
		return nil, fmt.Errorf("build guest account: %w", err)
	}

	if err := r.users.Create(ctx, guest); err == nil {
		return guest, nil
	} else if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, fmt.Errorf("create guest account: %w", err)
	}

	// A concurrent resolver created the same email first; adopt its row.
	existing, err := r.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("re-query after duplicate insert for %s: %w", email, apperr.ErrIdentityConflict)
	}
	return existing, nil
}
