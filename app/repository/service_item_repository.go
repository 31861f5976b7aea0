package repository

import (
	"context"

	"github.com/VenueBookHQ/VenueBook/app/models"
	"gorm.io/gorm"
)

// serviceItemRepository implements the ServiceItemRepository interface
type serviceItemRepository struct {
	db *gorm.DB
}

// NewServiceItemRepository creates a new service catalog repository instance
func NewServiceItemRepository(db *gorm.DB) ServiceItemRepository {
	return &serviceItemRepository{db: db}
}

// Create creates a new service item in the database
func (r *serviceItemRepository) Create(ctx context.Context, item *models.ServiceItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// GetByID retrieves a service item by its ID
func (r *serviceItemRepository) GetByID(ctx context.Context, id uint) (*models.ServiceItem, error) {
	var item models.ServiceItem
	err := r.db.WithContext(ctx).First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetBySlug retrieves a service item by its slug
func (r *serviceItemRepository) GetBySlug(ctx context.Context, slug string) (*models.ServiceItem, error) {
	var item models.ServiceItem
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Update updates an existing service item in the database
func (r *serviceItemRepository) Update(ctx context.Context, item *models.ServiceItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete soft deletes a service item by its ID
func (r *serviceItemRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.ServiceItem{}, id).Error
}

// List retrieves a paginated list of service items
func (r *serviceItemRepository) List(ctx context.Context, offset, limit int) ([]models.ServiceItem, error) {
	var items []models.ServiceItem
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&items).Error
	return items, err
}

// Count returns the total number of service items
func (r *serviceItemRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ServiceItem{}).Count(&count).Error
	return count, err
}

// SlugExists checks whether any service item already uses the given slug
func (r *serviceItemRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ServiceItem{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// SlugExistsExceptID checks whether another service item uses the given slug
func (r *serviceItemRepository) SlugExistsExceptID(ctx context.Context, slug string, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ServiceItem{}).
		Where("slug = ? AND id <> ?", slug, id).Count(&count).Error
	return count > 0, err
}
