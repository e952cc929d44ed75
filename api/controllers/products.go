package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shoploft/storefront-backend/api/middleware"
	"github.com/shoploft/storefront-backend/api/responses"
	"github.com/shoploft/storefront-backend/api/validators"
	"github.com/shoploft/storefront-backend/internal/catalog"
	pkgerrors "github.com/shoploft/storefront-backend/pkg/errors"
	"github.com/shoploft/storefront-backend/pkg/logger"
)

// ListProducts serves the merged, filtered, paginated catalog.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		page, err := validators.ParseQueryInt(r, "page", 1, 1, 1_000_000)
		if err != nil {
			// An unusable page falls back to the first page rather than
			// erroring; filters behave the same way.
			page = 1
		}

		query := r.URL.Query()
		input := catalog.BrowseInput{
			Filter: catalog.FilterState{
				Query:      validators.SanitizeString(query.Get("q"), 200),
				Categories: query["category"],
				PriceMin:   validators.ParseQueryDecimal(r, "price_min"),
				PriceMax:   validators.ParseQueryDecimal(r, "price_max"),
			},
			Page: page,
		}

		result, err := svc.Browse(r.Context(), middleware.CartSessionFromContext(r.Context()), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// FeaturedProducts serves the leading slice of the external feed.
func FeaturedProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		products, err := svc.Featured(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"items": products})
	}
}

// GetProduct resolves a single listing, admin source first.
func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := validators.ParsePathInt64(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// ListCategories serves the external feed's category names.
func ListCategories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		categories, err := svc.Categories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"categories": categories})
	}
}
