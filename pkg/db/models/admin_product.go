package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AdminProduct is a product authored through the admin panel. Its integer ID
// shares a namespace with the external feed; the sequence starts well above
// the feed's range so the two never collide.
type AdminProduct struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Title       string          `gorm:"column:title;not null"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Description string          `gorm:"column:description;not null"`
	Category    string          `gorm:"column:category;not null;index:idx_admin_products_category"`
	Image       string          `gorm:"column:image;not null"`
	CreatedBy   uuid.UUID       `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
