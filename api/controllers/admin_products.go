package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shoploft/storefront-backend/api/middleware"
	"github.com/shoploft/storefront-backend/api/responses"
	"github.com/shoploft/storefront-backend/api/validators"
	"github.com/shoploft/storefront-backend/internal/adminproducts"
	pkgerrors "github.com/shoploft/storefront-backend/pkg/errors"
	"github.com/shoploft/storefront-backend/pkg/logger"
)

type createAdminProductRequest struct {
	Title       string          `json:"title" validate:"required,max=200"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Description string          `json:"description" validate:"required,min=10"`
	Category    string          `json:"category" validate:"required"`
	Image       string          `json:"image" validate:"required,url"`
}

// ListAdminProducts returns the listings authored by the current admin.
func ListAdminProducts(svc adminproducts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin product service unavailable"))
			return
		}

		userID, err := uuid.Parse(middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing identity"))
			return
		}

		listings, err := svc.ListMine(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"items": listings})
	}
}

// CreateAdminProduct persists a new admin-authored listing.
func CreateAdminProduct(svc adminproducts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin product service unavailable"))
			return
		}

		userID, err := uuid.Parse(middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing identity"))
			return
		}

		var req createAdminProductRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateProduct(r.Context(), userID, adminproducts.CreateProductInput{
			Title:       req.Title,
			Price:       req.Price,
			Description: req.Description,
			Category:    req.Category,
			Image:       req.Image,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}
