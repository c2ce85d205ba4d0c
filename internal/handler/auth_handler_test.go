package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Vileyy/admin-halora-app/internal/database"
	"github.com/Vileyy/admin-halora-app/internal/middleware"
	"github.com/Vileyy/admin-halora-app/internal/model"
	"github.com/Vileyy/admin-halora-app/internal/repository"
	"github.com/Vileyy/admin-halora-app/internal/service"
)

func newAdminAPI(t *testing.T) (apiClient, service.AuditService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.SetJWTSecret(testSecret)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	authSvc := service.NewAuthService(repository.NewAdminRepository(db), repository.NewTransactionManager(db), service.AuthConfig{
		Secret:          []byte(testSecret),
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: time.Hour,
	})
	require.NoError(t, authSvc.EnsureAdmin(context.Background(), "admin@halora.vn", "s3cret!"))
	auditSvc := service.NewAuditService(repository.NewAuditRepository(db))

	r := gin.New()
	root := r.Group("")
	NewAuthHandler(authSvc, 15*time.Minute, time.Hour).RegisterRoutes(root)
	NewAuditHandler(auditSvc).RegisterRoutes(root)
	return apiClient{t: t, router: r}, auditSvc
}

func TestAuthHandler_LoginRefreshLogout(t *testing.T) {
	api, _ := newAdminAPI(t)

	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPost, "/login", map[string]string{"email": "nope"}, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodPost, "/login",
		map[string]string{"email": "admin@halora.vn", "password": "wrong"}, nil).Code)

	var tokens service.TokenResponse
	w := api.do(http.MethodPost, "/login", map[string]string{"email": "Admin@Halora.vn", "password": "s3cret!"}, &tokens)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)

	cookies := map[string]string{}
	for _, c := range w.Result().Cookies() {
		cookies[c.Name] = c.Value
	}
	assert.Equal(t, tokens.AccessToken, cookies[middleware.AccessTokenCookie])
	assert.Equal(t, tokens.RefreshToken, cookies[middleware.RefreshTokenCookie])

	api.token = tokens.AccessToken
	var me service.AdminResponse
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/me", nil, &me).Code)
	assert.Equal(t, "admin@halora.vn", me.Email)

	var rotated service.TokenResponse
	require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/refresh", map[string]string{"refresh_token": tokens.RefreshToken}, &rotated).Code)
	assert.NotEqual(t, tokens.RefreshToken, rotated.RefreshToken)

	w = api.do(http.MethodPost, "/refresh", map[string]string{"refresh_token": tokens.RefreshToken}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "refresh tokens are single use")

	require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/logout", map[string]string{"refresh_token": rotated.RefreshToken}, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodPost, "/refresh", map[string]string{"refresh_token": rotated.RefreshToken}, nil).Code)
}

func TestAuditHandler(t *testing.T) {
	api, auditSvc := newAdminAPI(t)
	ctx := context.Background()

	auditSvc.Record(ctx, "", model.ActionDeleteReview, "r1", "Great", nil)
	auditSvc.Record(ctx, "", model.ActionCreateVoucher, "v1", "SALE10", map[string]interface{}{"code": "SALE10"})

	api.token = ""
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/api/audit-logs", nil, nil).Code)

	api.token = adminToken(t, "admin-1", "admin")
	var page struct {
		Items []service.AuditLogResponse `json:"items"`
		Total int64                      `json:"total"`
	}
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/audit-logs?limit=1", nil, &page).Code)
	assert.Equal(t, int64(2), page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "system", page.Items[0].AdminEmail)

	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/audit-logs?entity_id=r1", nil, &page).Code)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, model.ActionDeleteReview, page.Items[0].Action)

	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/api/audit-logs?admin_id=nobody", nil, nil).Code)
}
