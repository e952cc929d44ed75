package adminproducts

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shoploft/storefront-backend/pkg/db/models"
	pkgerrors "github.com/shoploft/storefront-backend/pkg/errors"
	"github.com/shoploft/storefront-backend/pkg/logger"
)

const (
	maxTitleLen       = 200
	minDescriptionLen = 10
)

// Service exposes admin listing management operations.
type Service interface {
	CreateProduct(ctx context.Context, userID uuid.UUID, input CreateProductInput) (*ProductDTO, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]ProductDTO, error)
}

// CreateProductInput holds the decoded payload to create a listing.
type CreateProductInput struct {
	Title       string
	Price       decimal.Decimal
	Description string
	Category    string
	Image       string
}

type service struct {
	repo *Repository
	logg *logger.Logger
}

// NewService constructs an admin listing service.
func NewService(repo *Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("admin product repository required")
	}
	return &service{repo: repo, logg: logg}, nil
}

// CreateProduct validates and persists a new listing for the author.
func (s *service) CreateProduct(ctx context.Context, userID uuid.UUID, input CreateProductInput) (*ProductDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing author")
	}
	if fields := validateInput(input); len(fields) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product").WithDetails(fields)
	}

	record := &models.AdminProduct{
		Title:       strings.TrimSpace(input.Title),
		Price:       input.Price.Round(2),
		Description: strings.TrimSpace(input.Description),
		Category:    strings.TrimSpace(input.Category),
		Image:       strings.TrimSpace(input.Image),
		CreatedBy:   userID,
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating product")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "product_id", created.ID), "admin listing created")
	}
	return toDTO(created), nil
}

// ListMine returns the listings authored by the user, newest first.
func (s *service) ListMine(ctx context.Context, userID uuid.UUID) ([]ProductDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing author")
	}

	records, err := s.repo.ListByCreator(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}

	dtos := make([]ProductDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, *toDTO(&records[i]))
	}
	return dtos, nil
}

func validateInput(input CreateProductInput) map[string]string {
	fields := map[string]string{}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		fields["title"] = "title is required"
	} else if utf8.RuneCountInString(title) > maxTitleLen {
		fields["title"] = fmt.Sprintf("title must be at most %d characters", maxTitleLen)
	}

	if !input.Price.IsPositive() {
		fields["price"] = "price must be greater than zero"
	}

	if utf8.RuneCountInString(strings.TrimSpace(input.Description)) < minDescriptionLen {
		fields["description"] = fmt.Sprintf("description must be at least %d characters", minDescriptionLen)
	}

	if strings.TrimSpace(input.Category) == "" {
		fields["category"] = "category is required"
	}

	image := strings.TrimSpace(input.Image)
	if parsed, err := url.Parse(image); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		fields["image"] = "image must be a valid URL"
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}
