package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shoploft/storefront-backend/api/middleware"
	"github.com/shoploft/storefront-backend/api/responses"
	"github.com/shoploft/storefront-backend/api/validators"
	"github.com/shoploft/storefront-backend/internal/cart"
	"github.com/shoploft/storefront-backend/internal/catalog"
	pkgerrors "github.com/shoploft/storefront-backend/pkg/errors"
	"github.com/shoploft/storefront-backend/pkg/logger"
)

type addCartItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type cartPayload struct {
	Items   []cart.Item  `json:"items"`
	Summary cart.Summary `json:"summary"`
}

func cartResponse(store *cart.Store) cartPayload {
	return cartPayload{
		Items:   store.Items(),
		Summary: store.Summarize(),
	}
}

func sessionCart(r *http.Request, carts *cart.Manager) *cart.Store {
	return carts.Cart(middleware.CartSessionFromContext(r.Context()))
}

// GetCart returns the session's cart lines and derived summary.
func GetCart(carts *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if carts == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart manager unavailable"))
			return
		}
		responses.WriteSuccess(w, cartResponse(sessionCart(r, carts)))
	}
}

// AddCartItem resolves the product through the catalog and merges it into
// the cart. A non-positive quantity leaves the cart untouched.
func AddCartItem(carts *cart.Manager, catalogSvc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if carts == nil || catalogSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var req addCartItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := catalogSvc.GetProduct(r.Context(), req.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store := sessionCart(r, carts)
		store.AddItem(*product, req.Quantity)
		responses.WriteSuccess(w, cartResponse(store))
	}
}

// UpdateCartItem sets a line's quantity; zero or less removes the line.
func UpdateCartItem(carts *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if carts == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart manager unavailable"))
			return
		}

		productID, err := validators.ParsePathInt64(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store := sessionCart(r, carts)
		store.UpdateQuantity(productID, req.Quantity)
		responses.WriteSuccess(w, cartResponse(store))
	}
}

// RemoveCartItem drops a line from the cart.
func RemoveCartItem(carts *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if carts == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart manager unavailable"))
			return
		}

		productID, err := validators.ParsePathInt64(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store := sessionCart(r, carts)
		store.RemoveItem(productID)
		responses.WriteSuccess(w, cartResponse(store))
	}
}

// ClearCart empties the session's cart.
func ClearCart(carts *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if carts == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart manager unavailable"))
			return
		}

		store := sessionCart(r, carts)
		store.Clear()
		responses.WriteSuccess(w, cartResponse(store))
	}
}
