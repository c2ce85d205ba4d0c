package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Vileyy/admin-halora-app/internal/model"
	"github.com/Vileyy/admin-halora-app/pkg/pagination"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every pooled connection would otherwise open its own empty in-memory database
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.AdminAccount{}, &model.RefreshToken{}, &model.AuditLog{}))
	return db
}

func TestAdminRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAdminRepository(newTestDB(t))

	admin := &model.AdminAccount{Email: "admin@halora.vn", Password: "hash", Role: "admin"}
	require.NoError(t, repo.Create(ctx, admin))
	require.NotEqual(t, uuid.Nil, admin.ID)

	got, err := repo.GetByEmail(ctx, "admin@halora.vn")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.ID)

	got, err = repo.GetByID(ctx, admin.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Role)

	_, err = repo.GetByEmail(ctx, "nobody@halora.vn")
	assert.ErrorIs(t, err, ErrNotFound)

	count, err := repo.CountAdmins(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestAdminRepository_RefreshTokens(t *testing.T) {
	ctx := context.Background()
	repo := NewAdminRepository(newTestDB(t))
	admin := &model.AdminAccount{Email: "a@halora.vn", Password: "hash", Role: "admin"}
	require.NoError(t, repo.Create(ctx, admin))

	now := time.Now()
	require.NoError(t, repo.CreateRefreshToken(ctx, &model.RefreshToken{AdminID: admin.ID, Token: "live", ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, repo.CreateRefreshToken(ctx, &model.RefreshToken{AdminID: admin.ID, Token: "stale", ExpiresAt: now.Add(-time.Hour)}))

	removed, err := repo.DeleteExpiredRefreshTokens(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	rt, err := repo.GetRefreshToken(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, rt.AdminID)

	require.NoError(t, repo.DeleteRefreshToken(ctx, "live"))
	_, err = repo.GetRefreshToken(ctx, "live")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTransactionManager_Rollback(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewAdminRepository(db)
	tx := NewTransactionManager(db)

	boom := errors.New("boom")
	err := tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := repo.Create(txCtx, &model.AdminAccount{Email: "tx@halora.vn", Password: "h", Role: "admin"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = repo.GetByEmail(ctx, "tx@halora.vn")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAuditRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	admins := NewAdminRepository(db)
	audit := NewAuditRepository(db)

	admin := &model.AdminAccount{Email: "a@halora.vn", Password: "hash", Role: "admin"}
	require.NoError(t, admins.Create(ctx, admin))

	base := time.Now().Add(-time.Hour)
	for i, action := range []string{model.ActionCreateVoucher, model.ActionDeleteReview, model.ActionUpdateOrderStatus} {
		require.NoError(t, audit.Log(ctx, &model.AuditLog{
			AdminID: &admin.ID, Action: action, EntityID: "e", Details: "{}", CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	logs, total, err := audit.List(ctx, AuditFilter{}, pagination.New(1, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, logs, 2)
	assert.Equal(t, model.ActionUpdateOrderStatus, logs[0].Action)
	require.NotNil(t, logs[0].Admin)
	assert.Equal(t, "a@halora.vn", logs[0].Admin.Email)

	logs, total, err = audit.List(ctx, AuditFilter{}, pagination.New(3, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Empty(t, logs)
}

func TestAuditRepository_Filter(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	admins := NewAdminRepository(db)
	audit := NewAuditRepository(db)

	admin := &model.AdminAccount{Email: "a@halora.vn", Password: "hash", Role: "admin"}
	require.NoError(t, admins.Create(ctx, admin))

	entries := []*model.AuditLog{
		{AdminID: &admin.ID, Action: model.ActionUpdateOrderStatus, EntityID: "o1", Details: "{}"},
		{AdminID: &admin.ID, Action: model.ActionRecordRevenue, EntityID: "o1", Details: "{}"},
		{Action: model.ActionUpdateOrderStatus, EntityID: "o2", Details: "{}"},
	}
	for _, e := range entries {
		require.NoError(t, audit.Log(ctx, e))
	}

	logs, total, err := audit.List(ctx, AuditFilter{EntityID: "o1"}, pagination.New(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, logs, 2)

	logs, total, err = audit.List(ctx, AuditFilter{Action: model.ActionUpdateOrderStatus}, pagination.New(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, logs, 2)

	logs, total, err = audit.List(ctx, AuditFilter{Action: model.ActionUpdateOrderStatus, AdminID: admin.ID.String()}, pagination.New(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, logs, 1)
	assert.Equal(t, "o1", logs[0].EntityID)

	logs, total, err = audit.List(ctx, AuditFilter{EntityID: "nope"}, pagination.New(1, 10))
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, logs)
}
