package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/Vileyy/admin-halora-app/internal/middleware"
	"github.com/Vileyy/admin-halora-app/internal/repository"
	"github.com/Vileyy/admin-halora-app/internal/service"
	"github.com/Vileyy/admin-halora-app/internal/store"
	"github.com/Vileyy/admin-halora-app/pkg/pagination"
)

const testSecret = "handler-secret"

type nopAudit struct{}

func (nopAudit) Record(ctx context.Context, actorID, action, entityID, entityName string, details interface{}) {
}

func (nopAudit) GetAuditLogs(ctx context.Context, q service.AuditQuery, page pagination.Params) ([]service.AuditLogResponse, int64, error) {
	return []service.AuditLogResponse{}, 0, nil
}

type envelope struct {
	Status     string          `json:"status"`
	StatusCode int             `json:"status_code"`
	Data       json.RawMessage `json:"data"`
	Error      string          `json:"error"`
}

type apiClient struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func adminToken(t *testing.T, sub, role string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub, "role": role, "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

// do sends a request and decodes the envelope into out when out is not nil.
func (a apiClient) do(method, path string, body interface{}, out interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	if out != nil {
		var env envelope
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
		require.NoError(a.t, json.Unmarshal(env.Data, out), w.Body.String())
	}
	return w
}

func seedConsole(t *testing.T) *store.MemoryStore {
	t.Helper()
	s := store.NewMemoryStore()
	seeds := map[string]interface{}{
		"revenue": map[string]interface{}{
			"r1": map[string]interface{}{"orderId": "A", "productName": "Serum", "totalPrice": 100, "quantity": 2, "productCategory": "skincare", "completedAt": "2025-09-05"},
			"r2": map[string]interface{}{"orderId": "A", "productName": "Lipstick", "totalPrice": 50, "quantity": 1, "productCategory": "makeup", "completedAt": "2025-09-05"},
			"r3": map[string]interface{}{"orderId": "B", "productName": "Serum", "totalPrice": 100, "quantity": 1, "productCategory": "skincare", "month": "2025-09", "completedAt": "2025-09-20"},
		},
		"users": map[string]interface{}{
			"u1": map[string]interface{}{
				"displayName": "Lan", "email": "lan@example.com", "role": "user", "createdAt": "2025-01-02T00:00:00Z",
				"orders": map[string]interface{}{
					"o1": map[string]interface{}{"status": "pending", "totalAmount": 300, "paymentMethod": "cod", "createdAt": "2025-09-01T08:00:00Z",
						"items": []interface{}{map[string]interface{}{"name": "Serum", "price": 150, "quantity": 2, "category": "skincare"}}},
					"o2": map[string]interface{}{"status": "cancelled", "totalAmount": 90, "paymentMethod": "vnpay", "createdAt": "2025-09-10T08:00:00Z"},
				},
			},
			"u2": map[string]interface{}{"displayName": "Minh", "email": "minh@example.com", "role": "user", "status": "banned", "createdAt": "2025-02-02T00:00:00Z"},
		},
		"vouchers": map[string]interface{}{
			"v1": map[string]interface{}{"code": "OLD", "title": "Old", "status": "active", "startDate": 1, "endDate": 2},
		},
		"reviews": map[string]interface{}{
			"a": map[string]interface{}{"rating": 5, "shippingRating": 4, "comment": "Great"},
		},
	}
	for path, value := range seeds {
		require.NoError(t, s.Seed(path, value))
	}
	return s
}

// newConsole wires every document-store backed handler the way main does.
func newConsole(t *testing.T) (apiClient, *store.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.SetJWTSecret(testSecret)

	s := seedConsole(t)
	audit := nopAudit{}

	revenueRepo := repository.NewRevenueRepository(s)
	orderRepo := repository.NewOrderRepository(s)
	userRepo := repository.NewUserRepository(s)
	voucherRepo := repository.NewVoucherRepository(s)
	reviewRepo := repository.NewReviewRepository(s)

	revenueSvc := service.NewRevenueService(revenueRepo)

	r := gin.New()
	root := r.Group("")
	NewRevenueHandler(revenueSvc, service.NewReportService(revenueSvc)).RegisterRoutes(root)
	NewOrderHandler(service.NewOrderService(orderRepo, revenueSvc, audit)).RegisterRoutes(root)
	NewUserHandler(service.NewUserService(userRepo, audit)).RegisterRoutes(root)
	NewVoucherHandler(service.NewVoucherService(voucherRepo, audit)).RegisterRoutes(root)
	NewReviewHandler(service.NewReviewService(reviewRepo, audit)).RegisterRoutes(root)
	NewCatalogHandler(
		service.NewBannerService(repository.NewBannerRepository(s), audit),
		service.NewProductService(repository.NewProductRepository(s), audit),
	).RegisterRoutes(root)
	NewStatisticsHandler(service.NewDashboardService(revenueRepo, orderRepo, userRepo, voucherRepo, reviewRepo)).RegisterRoutes(root)
	NewAuditHandler(audit).RegisterRoutes(root)

	return apiClient{t: t, router: r, token: adminToken(t, "admin-1", "admin")}, s
}
