package adminproducts

import (
	"context"
	"errors"
	"fmt"

	"github.com/shoploft/storefront-backend/internal/catalog"
	"github.com/shoploft/storefront-backend/pkg/db/models"
	"github.com/shoploft/storefront-backend/pkg/enums"
	"gorm.io/gorm"
)

// Source adapts the admin listing repository to the catalog's admin side.
type Source struct {
	repo *Repository
}

// NewSource builds a catalog source over the admin repository.
func NewSource(repo *Repository) (*Source, error) {
	if repo == nil {
		return nil, fmt.Errorf("admin product repository required")
	}
	return &Source{repo: repo}, nil
}

// List returns every admin listing as a catalog product.
func (s *Source) List(ctx context.Context) ([]catalog.Product, error) {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	products := make([]catalog.Product, 0, len(records))
	for i := range records {
		products = append(products, toCatalog(&records[i]))
	}
	return products, nil
}

// Get resolves a single admin listing by catalog id.
func (s *Source) Get(ctx context.Context, id int64) (*catalog.Product, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrNotFound
		}
		return nil, err
	}
	product := toCatalog(record)
	return &product, nil
}

func toCatalog(record *models.AdminProduct) catalog.Product {
	return catalog.Product{
		ID:          record.ID,
		Title:       record.Title,
		Price:       record.Price,
		Description: record.Description,
		Category:    record.Category,
		Image:       record.Image,
		Rating:      catalog.Rating{},
		Source:      enums.ProductSourceAdmin,
	}
}
