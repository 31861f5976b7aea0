package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/VenueBookHQ/VenueBook/app/models"
	"github.com/VenueBookHQ/VenueBook/internal/pkg/apperr"
)

// fakeUserStore keys accounts by email. onCreate, when set, replaces the
// insert to simulate losing the unique-index race to a concurrent resolver.
type fakeUserStore struct {
	byEmail     map[string]*models.User
	nextID      uint
	onCreate    func(user *models.User) error
	createCalls int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: make(map[string]*models.User), nextID: 1}
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	f.createCalls++
	if f.onCreate != nil {
		return f.onCreate(user)
	}
	if _, exists := f.byEmail[user.Email]; exists {
		return gorm.ErrDuplicatedKey
	}
	user.ID = f.nextID
	f.nextID++
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uint) (*models.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) Update(_ context.Context, user *models.User) error { return nil }

func (f *fakeUserStore) Count(_ context.Context) (int64, error) {
	return int64(len(f.byEmail)), nil
}

func TestResolveCreatesGuestOnFirstSight(t *testing.T) {
	store := newFakeUserStore()
	r := NewResolver(store, "admin@venuebook.test")

	user, err := r.Resolve(context.Background(), "Alice@Example.COM", "Alice", "+491701234567")
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", user.Email)
	assert.True(t, user.IsGuest())
	assert.NotEmpty(t, user.Password)
}

func TestResolveIsIdempotentPerEmail(t *testing.T) {
	store := newFakeUserStore()
	r := NewResolver(store, "")

	first, err := r.Resolve(context.Background(), "bob@example.com", "Bob", "+491701234567")
	require.NoError(t, err)
	second, err := r.Resolve(context.Background(), " BOB@example.com ", "Robert", "+491709999999")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, store.createCalls)
}

func TestResolveRejectsEmptyEmail(t *testing.T) {
	r := NewResolver(newFakeUserStore(), "")

	_, err := r.Resolve(context.Background(), "   ", "Alice", "")
	_, ok := apperr.IsValidation(err)
	assert.True(t, ok, "expected a validation error, got %v", err)
}

func TestResolveRejectsOperatorEmail(t *testing.T) {
	r := NewResolver(newFakeUserStore(), "admin@venuebook.test")

	_, err := r.Resolve(context.Background(), "ADMIN@venuebook.test", "Admin", "")
	assert.True(t, errors.Is(err, apperr.ErrPolicyViolation))
}

func TestResolveAdoptsRowAfterLostInsertRace(t *testing.T) {
	store := newFakeUserStore()
	winner := &models.User{ID: 42, Email: "carol@example.com", Status: models.STATUS_GUEST}
	store.onCreate = func(_ *models.User) error {
		// A concurrent resolver committed the same email between our lookup
		// and insert.
		store.byEmail[winner.Email] = winner
		return gorm.ErrDuplicatedKey
	}

	r := NewResolver(store, "")

	user, err := r.Resolve(context.Background(), "carol@example.com", "Carol", "")
	require.NoError(t, err)
	assert.Equal(t, uint(42), user.ID)
}

func TestResolveFailsWhenReQueryMisses(t *testing.T) {
	store := newFakeUserStore()
	store.onCreate = func(_ *models.User) error { return gorm.ErrDuplicatedKey }

	r := NewResolver(store, "")

	_, err := r.Resolve(context.Background(), "dave@example.com", "Dave", "")
	assert.True(t, errors.Is(err, apperr.ErrIdentityConflict))
}
