package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vileyy/admin-halora-app/internal/model"
	"github.com/Vileyy/admin-halora-app/internal/repository"
	"github.com/Vileyy/admin-halora-app/pkg/pagination"
)

var testSecret = []byte("test-secret")

func newAuthFixture(t *testing.T) *authService {
	t.Helper()
	db := newTestDB(t)
	return &authService{
		repo:      repository.NewAdminRepository(db),
		txManager: repository.NewTransactionManager(db),
		cfg:       AuthConfig{Secret: testSecret, AccessTokenTTL: time.Hour, RefreshTokenTTL: 24 * time.Hour},
		now:       time.Now,
	}
}

func TestAuthService_LoginRefreshLogout(t *testing.T) {
	ctx := context.Background()
	svc := newAuthFixture(t)

	require.NoError(t, svc.EnsureAdmin(ctx, "Admin@Halora.vn", "s3cret!"))
	require.NoError(t, svc.EnsureAdmin(ctx, "other@halora.vn", "x"), "seeding is skipped once an admin exists")
	count, err := svc.repo.CountAdmins(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = svc.Login(ctx, LoginRequest{Email: "admin@halora.vn", Password: "wrong"})
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
	_, err = svc.Login(ctx, LoginRequest{Email: "nobody@halora.vn", Password: "s3cret!"})
	assert.True(t, errors.Is(err, ErrInvalidCredentials))

	tokens, err := svc.Login(ctx, LoginRequest{Email: "admin@halora.vn", Password: "s3cret!"})
	require.NoError(t, err)
	assert.Equal(t, int64(3600), tokens.ExpiresIn)

	parsed, err := jwt.Parse(tokens.AccessToken, func(token *jwt.Token) (interface{}, error) { return testSecret, nil })
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, string(model.UserRoleAdmin), claims["role"])

	me, err := svc.Me(ctx, claims["sub"].(string))
	require.NoError(t, err)
	assert.Equal(t, "admin@halora.vn", me.Email)

	rotated, err := svc.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, rotated.RefreshToken)

	_, err = svc.Refresh(ctx, tokens.RefreshToken)
	assert.True(t, errors.Is(err, ErrInvalidCredentials), "a refresh token is single use")

	require.NoError(t, svc.Logout(ctx, rotated.RefreshToken))
	_, err = svc.Refresh(ctx, rotated.RefreshToken)
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestAuthService_ExpiredRefreshToken(t *testing.T) {
	ctx := context.Background()
	svc := newAuthFixture(t)
	require.NoError(t, svc.EnsureAdmin(ctx, "admin@halora.vn", "s3cret!"))

	tokens, err := svc.Login(ctx, LoginRequest{Email: "admin@halora.vn", Password: "s3cret!"})
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(48 * time.Hour) }
	_, err = svc.Refresh(ctx, tokens.RefreshToken)
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestAuditService(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	admins := repository.NewAdminRepository(db)
	svc := NewAuditService(repository.NewAuditRepository(db))

	admin := &model.AdminAccount{Email: "admin@halora.vn", Password: "hash", Role: "admin"}
	require.NoError(t, admins.Create(ctx, admin))

	svc.Record(ctx, admin.ID.String(), model.ActionDeleteReview, "r1", "Serum", map[string]interface{}{"rating": 1})
	svc.Record(ctx, "not-a-uuid", model.ActionUpdateOrderStatus, "o1", "", nil)

	logs, total, err := svc.GetAuditLogs(ctx, AuditQuery{}, pagination.New(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, logs, 2)

	byAction := map[string]AuditLogResponse{}
	for _, l := range logs {
		byAction[l.Action] = l
	}
	assert.Equal(t, "admin@halora.vn", byAction[model.ActionDeleteReview].AdminEmail)
	assert.JSONEq(t, `{"rating":1}`, byAction[model.ActionDeleteReview].Details)
	assert.Equal(t, "system", byAction[model.ActionUpdateOrderStatus].AdminEmail)
	assert.Equal(t, "{}", byAction[model.ActionUpdateOrderStatus].Details)

	logs, total, err = svc.GetAuditLogs(ctx, AuditQuery{Action: "delete_review"}, pagination.New(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, logs, 1)
	assert.Equal(t, "r1", logs[0].EntityID)

	logs, _, err = svc.GetAuditLogs(ctx, AuditQuery{AdminID: admin.ID.String()}, pagination.New(1, 10))
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, model.ActionDeleteReview, logs[0].Action)

	_, _, err = svc.GetAuditLogs(ctx, AuditQuery{AdminID: "not-a-uuid"}, pagination.New(1, 10))
	assert.True(t, errors.Is(err, ErrInvalidInput))
}
