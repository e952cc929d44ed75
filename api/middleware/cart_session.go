package middleware

import (
	"net/http"

	"github.com/shoploft/storefront-backend/pkg/logger"
)

// CartSessionCookie is the cookie carrying the shopper's cart token.
const CartSessionCookie = "cart_session"

type tokenMinter interface {
	Mint() string
}

// CartSession ensures every request carries a cart session token, minting
// a cookie on first touch and seeding the context with the token.
func CartSession(minter tokenMinter, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string
			if cookie, err := r.Cookie(CartSessionCookie); err == nil && cookie.Value != "" {
				token = cookie.Value
			} else {
				token = minter.Mint()
				http.SetCookie(w, &http.Cookie{
					Name:     CartSessionCookie,
					Value:    token,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := WithCartSession(r.Context(), token)
			if logg != nil {
				ctx = logg.WithCartSession(ctx, token)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
