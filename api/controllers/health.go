package controllers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shoploft/storefront-backend/api/responses"
	pkgerrors "github.com/shoploft/storefront-backend/pkg/errors"
	"github.com/shoploft/storefront-backend/pkg/logger"
	"go.uber.org/multierr"
)

// Pinger is the health-check surface shared by the db and redis clients.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Live reports process liveness.
func Live() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}

// Ready pings every dependency and aggregates failures.
func Ready(checks map[string]Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		for name, check := range checks {
			if check == nil {
				continue
			}
			if pingErr := check.Ping(r.Context()); pingErr != nil {
				err = multierr.Append(err, fmt.Errorf("%s: %w", name, pingErr))
			}
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "dependencies unavailable"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
