package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shoploft/storefront-backend/internal/users"
	pkgAuth "github.com/shoploft/storefront-backend/pkg/auth"
	"github.com/shoploft/storefront-backend/pkg/config"
	"github.com/shoploft/storefront-backend/pkg/db/models"
	"github.com/shoploft/storefront-backend/pkg/enums"
	pkgerrors "github.com/shoploft/storefront-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakeSessions struct {
	created map[string]uuid.UUID
	revoked []string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{created: map[string]uuid.UUID{}}
}

func (f *fakeSessions) Create(_ context.Context, accessID string, userID uuid.UUID) error {
	f.created[accessID] = userID
	return nil
}

func (f *fakeSessions) Revoke(_ context.Context, accessID string) error {
	f.revoked = append(f.revoked, accessID)
	delete(f.created, accessID)
	return nil
}

func newTestService(t *testing.T) (Service, *fakeSessions) {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.User{}))

	sessions := newFakeSessions()
	svc, err := NewService(ServiceParams{
		UserRepo:       users.NewRepository(conn),
		SessionManager: sessions,
		JWTConfig: config.JWTConfig{
			Secret:            "test-secret",
			Issuer:            "shoploft",
			ExpirationMinutes: 60,
			SessionTTLMinutes: 120,
		},
		PasswordConfig: config.PasswordConfig{
			ArgonMemoryKB:    1024,
			ArgonTime:        1,
			ArgonParallelism: 1,
			ArgonSaltLen:     16,
			ArgonKeyLen:      32,
		},
	})
	require.NoError(t, err)
	return svc, sessions
}

func validRegister() RegisterRequest {
	return RegisterRequest{
		Email:    "Shopper@Example.com",
		Password: "a long password",
		Name:     "Pat Shopper",
	}
}

func TestRegisterCreatesAndLogsIn(t *testing.T) {
	svc, sessions := newTestService(t)

	resp, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "shopper@example.com", resp.User.Email)
	assert.Equal(t, enums.UserRoleShopper, resp.User.Role)
	assert.Len(t, sessions.created, 1)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*RegisterRequest)
		field  string
	}{
		{"bad email", func(r *RegisterRequest) { r.Email = "not-an-email" }, "email"},
		{"short password", func(r *RegisterRequest) { r.Password = "short" }, "password"},
		{"missing name", func(r *RegisterRequest) { r.Name = "  " }, "name"},
		{"bad role", func(r *RegisterRequest) { r.Role = "superuser" }, "role"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRegister()
			tc.mutate(&req)

			_, err := svc.Register(ctx, req)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

			fields, ok := typed.Details().(map[string]string)
			require.True(t, ok)
			assert.Contains(t, fields, tc.field)
		})
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)

	_, err = svc.Register(ctx, validRegister())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestRegisterAdminRole(t *testing.T) {
	svc, _ := newTestService(t)

	req := validRegister()
	req.Role = "admin"

	resp, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, enums.UserRoleAdmin, resp.User.Role)
}

func TestLoginRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)

	resp, err := svc.Login(ctx, LoginRequest{
		Email:    "shopper@example.com",
		Password: "a long password",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	require.NotNil(t, resp.User.LastLoginAt)
	assert.WithinDuration(t, time.Now(), *resp.User.LastLoginAt, time.Minute)

	claims, err := pkgAuth.ParseAccessToken(config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "shoploft",
		ExpirationMinutes: 60,
	}, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, enums.UserRoleShopper, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Email: "shopper@example.com", Password: "wrong password"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "whatever1"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, sessions := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)
	require.Len(t, sessions.created, 1)

	var accessID string
	for id := range sessions.created {
		accessID = id
	}

	require.NoError(t, svc.Logout(ctx, accessID))
	assert.Empty(t, sessions.created)
}

func TestCurrentUser(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)

	user, err := svc.CurrentUser(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "shopper@example.com", user.Email)

	_, err = svc.CurrentUser(ctx, uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}
