package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vileyy/admin-halora-app/internal/analytics"
	"github.com/Vileyy/admin-halora-app/internal/model"
	"github.com/Vileyy/admin-halora-app/internal/repository"
	"github.com/Vileyy/admin-halora-app/pkg/pagination"
)

func TestVoucherService(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t, map[string]interface{}{
		"vouchers": map[string]interface{}{
			"v1": map[string]interface{}{"code": "SUMMER", "title": "Summer sale", "status": "active",
				"startDate": ms(testNow.Add(-48 * time.Hour)), "endDate": ms(testNow.Add(-time.Hour)), "usageCount": 4},
			"v2": map[string]interface{}{"code": "FREESHIP", "title": "Free shipping", "status": "active",
				"startDate": ms(testNow.Add(-time.Hour)), "endDate": ms(testNow.Add(48 * time.Hour)), "usageCount": 1},
		},
	})
	audit := &recordingAudit{}
	svc := &voucherService{repo: repository.NewVoucherRepository(s), auditSvc: audit, now: fixedClock}

	expired, err := svc.ListVouchers(ctx, VoucherQuery{Status: "expired"})
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, "SUMMER", expired[0].Code)

	found, err := svc.ListVouchers(ctx, VoucherQuery{Search: "ship"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, model.VoucherStatusActive, found[0].Status)

	req := VoucherRequest{
		Code: " welcome10 ", Title: "Welcome", DiscountType: model.DiscountTypePercentage, DiscountValue: 10,
		Type: model.VoucherTypeProduct, StartDate: ms(testNow), EndDate: ms(testNow.Add(24 * time.Hour)),
	}
	created, err := svc.CreateVoucher(ctx, "admin-1", req)
	require.NoError(t, err)
	assert.Equal(t, "WELCOME10", created.Code)
	assert.Equal(t, model.VoucherStatusActive, created.Status)
	assert.NotEmpty(t, created.ID)

	_, err = svc.CreateVoucher(ctx, "admin-1", req)
	assert.True(t, errors.Is(err, ErrConflict), "codes are unique regardless of case")

	updated, err := svc.UpdateVoucher(ctx, "admin-1", created.ID, req)
	require.NoError(t, err, "a voucher does not conflict with itself")
	assert.Equal(t, "WELCOME10", updated.Code)

	bad := req
	bad.Code = "BIG"
	bad.DiscountValue = 150
	_, err = svc.CreateVoucher(ctx, "admin-1", bad)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	bad = req
	bad.Code = "BACKWARDS"
	bad.EndDate = bad.StartDate
	_, err = svc.CreateVoucher(ctx, "admin-1", bad)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	bad = req
	bad.Code = "OLD"
	bad.Status = model.VoucherStatusExpired
	_, err = svc.CreateVoucher(ctx, "admin-1", bad)
	assert.True(t, errors.Is(err, ErrInvalidStatus))

	stats, err := svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalVouchers)
	assert.Equal(t, 1, stats.ExpiredVouchers)
	assert.Equal(t, 5, stats.TotalUsage)

	require.NoError(t, svc.DeleteVoucher(ctx, "admin-1", created.ID))
	assert.True(t, errors.Is(svc.DeleteVoucher(ctx, "admin-1", created.ID), ErrNotFound))

	assert.Equal(t, []string{model.ActionCreateVoucher, model.ActionUpdateVoucher, model.ActionDeleteVoucher}, audit.actions())
}

func TestUserService(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t, map[string]interface{}{
		"users": map[string]interface{}{
			"u1": map[string]interface{}{"displayName": "Lan", "email": "lan@example.com", "role": "user", "createdAt": "2025-09-02T00:00:00Z"},
			"u2": map[string]interface{}{"displayName": "Minh", "email": "minh@example.com", "role": "user", "status": "banned", "createdAt": "2025-07-02T00:00:00Z"},
		},
	})
	audit := &recordingAudit{}
	svc := &userService{repo: repository.NewUserRepository(s), auditSvc: audit, now: fixedClock}

	users, total, err := svc.ListUsers(ctx, analytics.UserFilter{Status: "active"}, pagination.New(1, 20))
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "u1", users[0].UID)

	stats, err := svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalUsers)
	assert.Equal(t, 1, stats.BannedUsers)
	assert.Equal(t, 1, stats.NewUsersThisMonth)

	assert.True(t, errors.Is(svc.UpdateStatus(ctx, "admin-1", "u1", "deleted"), ErrInvalidStatus))
	assert.True(t, errors.Is(svc.UpdateRole(ctx, "admin-1", "u1", "owner"), ErrInvalidInput))
	assert.True(t, errors.Is(svc.UpdateStatus(ctx, "admin-1", "nobody", model.UserStatusBanned), ErrNotFound))

	require.NoError(t, svc.UpdateStatus(ctx, "admin-1", "u1", model.UserStatusInactive))
	require.NoError(t, svc.UpdateRole(ctx, "admin-1", "u1", model.UserRoleAdmin))
	user, err := svc.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, model.UserStatusInactive, user.Status)
	assert.Equal(t, model.UserRoleAdmin, user.Role)

	require.NoError(t, svc.DeleteUser(ctx, "admin-1", "u2"))
	_, err = svc.GetUser(ctx, "u2")
	assert.True(t, errors.Is(err, ErrNotFound))

	assert.Equal(t, []string{model.ActionUpdateUserStatus, model.ActionUpdateUserRole, model.ActionDeleteUser}, audit.actions())
}

func TestReviewService(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t, map[string]interface{}{
		"reviews": map[string]interface{}{
			"a": map[string]interface{}{"rating": 5, "shippingRating": 4, "comment": "Great serum", "productName": "Serum", "createdAt": "2025-09-01T00:00:00Z"},
			"b": map[string]interface{}{"rating": 3, "shippingRating": 2, "comment": "Slow delivery", "productName": "Toner", "createdAt": "2025-09-10T00:00:00Z"},
			"c": map[string]interface{}{"rating": 5, "shippingRating": 5, "comment": "Love it", "productName": "Mask", "createdAt": "2025-09-05T00:00:00Z"},
		},
	})
	audit := &recordingAudit{}
	svc := NewReviewService(repository.NewReviewRepository(s), audit)

	all, err := svc.ListReviews(ctx, ReviewQuery{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"b", "c", "a"}, []string{all[0].ID, all[1].ID, all[2].ID})

	five, err := svc.ListReviews(ctx, ReviewQuery{Rating: 5, Search: "serum"})
	require.NoError(t, err)
	require.Len(t, five, 1)
	assert.Equal(t, "a", five[0].ID)

	stats, err := svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4.3, stats.AverageRating)
	assert.Equal(t, 3.7, stats.AverageShippingRating)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 1, 4: 0, 5: 2}, stats.RatingBreakdown)

	require.NoError(t, svc.DeleteReview(ctx, "admin-1", "b"))
	assert.True(t, errors.Is(svc.DeleteReview(ctx, "admin-1", "b"), ErrNotFound))
	assert.Equal(t, []string{model.ActionDeleteReview}, audit.actions())
}

func TestBannerAndProductServices(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t, nil)
	audit := &recordingAudit{}
	banners := &bannerService{repo: repository.NewBannerRepository(s), auditSvc: audit, now: fixedClock}
	products := &productService{repo: repository.NewProductRepository(s), auditSvc: audit, now: fixedClock}

	banner, err := banners.CreateBanner(ctx, "admin-1", BannerRequest{Title: " Sale ", ImageURL: "https://cdn.halora.vn/b.png"})
	require.NoError(t, err)
	assert.Equal(t, "Sale", banner.Title)
	require.NoError(t, banners.SetActive(ctx, "admin-1", banner.ID, true))

	list, err := banners.ListBanners(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsActive)

	_, err = banners.UpdateBanner(ctx, "admin-1", "missing", BannerRequest{Title: "x"})
	assert.True(t, errors.Is(err, ErrNotFound))
	require.NoError(t, banners.DeleteBanner(ctx, "admin-1", banner.ID))

	product, err := products.CreateProduct(ctx, "admin-1", ProductRequest{Name: "Serum", Category: "skincare", Price: 150, Stock: 3,
		Variants: []model.ItemVariant{{Name: "30ml", Price: 150}}})
	require.NoError(t, err)
	_, err = products.CreateProduct(ctx, "admin-1", ProductRequest{Name: "Lipstick", Category: "makeup", Price: 90})
	require.NoError(t, err)

	_, err = products.CreateProduct(ctx, "admin-1", ProductRequest{Name: " ", Category: "makeup"})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	skincare, err := products.ListProducts(ctx, ProductQuery{Category: "skincare"})
	require.NoError(t, err)
	require.Len(t, skincare, 1)
	assert.Equal(t, product.ID, skincare[0].ID)
	assert.Len(t, skincare[0].Variants, 1)

	updated, err := products.UpdateProduct(ctx, "admin-1", product.ID, ProductRequest{Name: "Serum B5", Category: "skincare", Price: 170})
	require.NoError(t, err)
	assert.Equal(t, int64(170), updated.Price)

	found, err := products.ListProducts(ctx, ProductQuery{Search: "b5"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Empty(t, found[0].Variants)

	require.NoError(t, products.DeleteProduct(ctx, "admin-1", product.ID))

	assert.Equal(t, []string{
		model.ActionCreateBanner, model.ActionUpdateBanner, model.ActionDeleteBanner,
		model.ActionCreateProduct, model.ActionCreateProduct, model.ActionUpdateProduct, model.ActionDeleteProduct,
	}, audit.actions())
}
