package adminproducts

import (
	"context"

	"github.com/google/uuid"
	"github.com/shoploft/storefront-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists admin-authored listings.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the listing and returns it with its assigned id.
func (r *Repository) Create(ctx context.Context, record *models.AdminProduct) (*models.AdminProduct, error) {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// FindByID loads a single listing.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.AdminProduct, error) {
	var record models.AdminProduct
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// ListAll returns every listing, oldest first, for the catalog merge.
func (r *Repository) ListAll(ctx context.Context) ([]models.AdminProduct, error) {
	var records []models.AdminProduct
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// ListByCreator returns the listings authored by the given user.
func (r *Repository) ListByCreator(ctx context.Context, userID uuid.UUID) ([]models.AdminProduct, error) {
	var records []models.AdminProduct
	if err := r.db.WithContext(ctx).
		Where("created_by = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
