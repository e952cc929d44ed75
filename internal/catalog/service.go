package catalog

import (
	"context"
	stdErrors "errors"
	"fmt"
	"sync"

	"github.com/shoploft/storefront-backend/pkg/enums"
	pkgerrors "github.com/shoploft/storefront-backend/pkg/errors"
	"github.com/shoploft/storefront-backend/pkg/logger"
)

// ExternalSource is the read surface of the upstream product feed.
type ExternalSource interface {
	List(ctx context.Context, limit int) ([]Product, error)
	Get(ctx context.Context, id int64) (*Product, error)
	Categories(ctx context.Context) ([]string, error)
}

// AdminSource exposes admin-authored listings as catalog products.
type AdminSource interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int64) (*Product, error)
}

// BrowseInput carries the storefront's query parameters for one request.
type BrowseInput struct {
	Filter FilterState
	Page   int
}

// Service exposes the merged catalog operations.
type Service interface {
	Browse(ctx context.Context, sessionToken string, input BrowseInput) (*Page, error)
	GetProduct(ctx context.Context, id int64) (*Product, error)
	Featured(ctx context.Context) ([]Product, error)
	Categories(ctx context.Context) ([]string, error)
}

type service struct {
	external      ExternalSource
	admin         AdminSource
	views         *Views
	featuredLimit int
	logg          *logger.Logger
}

// NewService constructs the catalog service.
func NewService(external ExternalSource, admin AdminSource, views *Views, featuredLimit int, logg *logger.Logger) (Service, error) {
	if external == nil {
		return nil, fmt.Errorf("external source required")
	}
	if admin == nil {
		return nil, fmt.Errorf("admin source required")
	}
	if views == nil {
		return nil, fmt.Errorf("view registry required")
	}
	if featuredLimit <= 0 {
		return nil, fmt.Errorf("featured limit must be positive")
	}
	return &service{
		external:      external,
		admin:         admin,
		views:         views,
		featuredLimit: featuredLimit,
		logg:          logg,
	}, nil
}

// Browse merges both sources, applies the session's filter state, and
// returns the requested page. A filter change resets the page to 1; a
// result for a superseded filter state is not retained on the view.
func (s *service) Browse(ctx context.Context, sessionToken string, input BrowseInput) (*Page, error) {
	view := s.views.Get(sessionToken)
	state := input.Filter.Normalize()
	page, gen := view.Apply(state, input.Page)

	external, admin, err := s.fetchSources(ctx)
	if err != nil {
		return nil, err
	}

	result := Paginate(Filter(Merge(external, admin), state), page)
	if !view.Commit(gen, result) && s.logg != nil {
		s.logg.Debug(ctx, "discarding stale browse result")
	}
	return &result, nil
}

func (s *service) fetchSources(ctx context.Context) ([]Product, []Product, error) {
	var (
		wg          sync.WaitGroup
		external    []Product
		admin       []Product
		externalErr error
		adminErr    error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		external, externalErr = s.external.List(ctx, 0)
	}()
	go func() {
		defer wg.Done()
		admin, adminErr = s.admin.List(ctx)
	}()
	wg.Wait()

	if externalErr != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, externalErr, "fetching external catalog")
	}
	if adminErr != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, adminErr, "loading admin listings")
	}
	return external, admin, nil
}

// GetProduct resolves a single listing, checking the admin source before
// the external feed so admin listings win their id.
func (s *service) GetProduct(ctx context.Context, id int64) (*Product, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	product, err := s.admin.Get(ctx, id)
	if err == nil {
		return product, nil
	}
	if !isNotFound(err) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading admin listing")
	}

	product, err = s.external.Get(ctx, id)
	if err == nil {
		return product, nil
	}
	if isNotFound(err) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetching external product")
}

// Featured returns the leading slice of the external feed.
func (s *service) Featured(ctx context.Context) ([]Product, error) {
	products, err := s.external.List(ctx, s.featuredLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetching featured products")
	}
	if len(products) > s.featuredLimit {
		products = products[:s.featuredLimit]
	}
	for i := range products {
		products[i].Source = enums.ProductSourceCatalog
	}
	return products, nil
}

// Categories returns the external feed's category list.
func (s *service) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.external.Categories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetching categories")
	}
	return categories, nil
}

func isNotFound(err error) bool {
	if typed := pkgerrors.As(err); typed != nil {
		return typed.Code() == pkgerrors.CodeNotFound
	}
	return stdErrors.Is(err, ErrNotFound)
}

// ErrNotFound is the sentinel sources return when a listing is absent.
var ErrNotFound = stdErrors.New("product not found")
