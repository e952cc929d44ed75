package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/shoploft/storefront-backend/pkg/enums"
	pkgerrors "github.com/shoploft/storefront-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExternal struct {
	products   []Product
	categories []string
	listErr    error
	getErr     error
}

func (s *stubExternal) List(_ context.Context, limit int) ([]Product, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	if limit > 0 && limit < len(s.products) {
		return s.products[:limit], nil
	}
	return s.products, nil
}

func (s *stubExternal) Get(_ context.Context, id int64) (*Product, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	for _, p := range s.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (s *stubExternal) Categories(_ context.Context) ([]string, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.categories, nil
}

type stubAdmin struct {
	products []Product
	listErr  error
}

func (s *stubAdmin) List(_ context.Context) ([]Product, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.products, nil
}

func (s *stubAdmin) Get(_ context.Context, id int64) (*Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func newTestService(t *testing.T, external *stubExternal, admin *stubAdmin) Service {
	t.Helper()
	svc, err := NewService(external, admin, NewViews(0), 8, nil)
	require.NoError(t, err)
	return svc
}

func TestBrowseMergesSources(t *testing.T) {
	external := &stubExternal{products: []Product{
		product(1, "Backpack", "bags", "109.95"),
	}}
	admin := &stubAdmin{products: []Product{
		product(100001, "Handmade Mug", "home", "18.00"),
	}}

	svc := newTestService(t, external, admin)
	page, err := svc.Browse(context.Background(), "session-1", BrowseInput{})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, enums.ProductSourceAdmin, page.Items[0].Source)
	assert.Equal(t, enums.ProductSourceCatalog, page.Items[1].Source)
}

func TestBrowseExternalFailureIsDependencyError(t *testing.T) {
	external := &stubExternal{listErr: errors.New("upstream down")}
	svc := newTestService(t, external, &stubAdmin{})

	_, err := svc.Browse(context.Background(), "session-1", BrowseInput{})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeDependency, typed.Code())
}

func TestBrowseFilterChangeResetsPage(t *testing.T) {
	products := make([]Product, 0, 25)
	for i := 1; i <= 25; i++ {
		products = append(products, product(int64(i), "Gadget", "misc", "10"))
	}
	svc := newTestService(t, &stubExternal{products: products}, &stubAdmin{})
	ctx := context.Background()

	page, err := svc.Browse(ctx, "session-1", BrowseInput{Page: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Meta.Page)

	page, err = svc.Browse(ctx, "session-1", BrowseInput{
		Filter: FilterState{Query: "gadget"},
		Page:   3,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Meta.Page)
}

func TestGetProductAdminWins(t *testing.T) {
	external := &stubExternal{products: []Product{product(7, "Feed Version", "misc", "10")}}
	admin := &stubAdmin{products: []Product{product(7, "Admin Version", "misc", "12")}}
	svc := newTestService(t, external, admin)

	got, err := svc.GetProduct(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Admin Version", got.Title)
}

func TestGetProductFallsBackToExternal(t *testing.T) {
	external := &stubExternal{products: []Product{product(3, "Feed Only", "misc", "10")}}
	svc := newTestService(t, external, &stubAdmin{})

	got, err := svc.GetProduct(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Feed Only", got.Title)
}

func TestGetProductMissingEverywhere(t *testing.T) {
	svc := newTestService(t, &stubExternal{}, &stubAdmin{})

	_, err := svc.GetProduct(context.Background(), 42)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestFeaturedLimitsAndTags(t *testing.T) {
	products := make([]Product, 0, 10)
	for i := 1; i <= 10; i++ {
		products = append(products, product(int64(i), "Item", "misc", "10"))
	}
	svc := newTestService(t, &stubExternal{products: products}, &stubAdmin{})

	featured, err := svc.Featured(context.Background())
	require.NoError(t, err)
	require.Len(t, featured, 8)
	for _, p := range featured {
		assert.Equal(t, enums.ProductSourceCatalog, p.Source)
	}
}

func TestCategoriesPassthrough(t *testing.T) {
	svc := newTestService(t, &stubExternal{categories: []string{"bags", "jewelery"}}, &stubAdmin{})

	categories, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"bags", "jewelery"}, categories)
}
