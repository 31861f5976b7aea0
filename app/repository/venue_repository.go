package repository

import (
	"context"

	"github.com/VenueBookHQ/VenueBook/app/models"
	"gorm.io/gorm"
)

// venueRepository implements the VenueRepository interface
type venueRepository struct {
	db *gorm.DB
}

// NewVenueRepository creates a new venue repository instance
func NewVenueRepository(db *gorm.DB) VenueRepository {
	return &venueRepository{db: db}
}

// Create creates a new venue in the database
func (r *venueRepository) Create(ctx context.Context, venue *models.Venue) error {
	return r.db.WithContext(ctx).Create(venue).Error
}

// GetByID retrieves a venue by its ID
func (r *venueRepository) GetByID(ctx context.Context, id uint) (*models.Venue, error) {
	var venue models.Venue
	err := r.db.WithContext(ctx).First(&venue, id).Error
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

// GetBySlug retrieves a venue by its slug
func (r *venueRepository) GetBySlug(ctx context.Context, slug string) (*models.Venue, error) {
	var venue models.Venue
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&venue).Error
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

// GetWithPricing retrieves a venue with its price slots and service pricings preloaded
func (r *venueRepository) GetWithPricing(ctx context.Context, id uint) (*models.Venue, error) {
	var venue models.Venue
	err := r.db.WithContext(ctx).
		Preload("PriceSlots").
		Preload("ServicePricings").
		First(&venue, id).Error
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

// Update updates an existing venue in the database
func (r *venueRepository) Update(ctx context.Context, venue *models.Venue) error {
	return r.db.WithContext(ctx).Save(venue).Error
}

// Delete soft deletes a venue by its ID
func (r *venueRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Venue{}, id).Error
}

// List retrieves a paginated list of venues
func (r *venueRepository) List(ctx context.Context, offset, limit int) ([]models.Venue, error) {
	var venues []models.Venue
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&venues).Error
	return venues, err
}

// Count returns the total number of venues
func (r *venueRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Venue{}).Count(&count).Error
	return count, err
}

// SlugExists checks whether any venue already uses the given slug
func (r *venueRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Venue{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// SlugExistsExceptID checks whether another venue uses the given slug
func (r *venueRepository) SlugExistsExceptID(ctx context.Context, slug string, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Venue{}).
		Where("slug = ? AND id <> ?", slug, id).Count(&count).Error
	return count > 0, err
}
