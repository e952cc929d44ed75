package adminproducts

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shoploft/storefront-backend/pkg/db/models"
)

// ProductDTO is the admin panel's view of a listing.
type ProductDTO struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	CreatedBy   uuid.UUID       `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

func toDTO(record *models.AdminProduct) *ProductDTO {
	return &ProductDTO{
		ID:          record.ID,
		Title:       record.Title,
		Price:       record.Price,
		Description: record.Description,
		Category:    record.Category,
		Image:       record.Image,
		CreatedBy:   record.CreatedBy,
		CreatedAt:   record.CreatedAt,
	}
}
