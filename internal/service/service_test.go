package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Vileyy/admin-halora-app/internal/database"
	"github.com/Vileyy/admin-halora-app/internal/store"
	"github.com/Vileyy/admin-halora-app/pkg/pagination"
)

var testNow = time.Date(2025, time.September, 15, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

type auditEntry struct {
	ActorID  string
	Action   string
	EntityID string
	Details  interface{}
}

// recordingAudit captures audit calls in memory.
type recordingAudit struct {
	mu      sync.Mutex
	entries []auditEntry
}

func (a *recordingAudit) Record(ctx context.Context, actorID, action, entityID, entityName string, details interface{}) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, auditEntry{ActorID: actorID, Action: action, EntityID: entityID, Details: details})
}

func (a *recordingAudit) GetAuditLogs(ctx context.Context, q AuditQuery, page pagination.Params) ([]AuditLogResponse, int64, error) {
	return nil, 0, nil
}

func (a *recordingAudit) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.entries))
	for _, e := range a.entries {
		out = append(out, e.Action)
	}
	return out
}

func seededStore(t *testing.T, seeds map[string]interface{}) *store.MemoryStore {
	t.Helper()
	s := store.NewMemoryStore()
	for path, value := range seeds {
		require.NoError(t, s.Seed(path, value))
	}
	return s
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	return db
}

func ms(t time.Time) int64 { return t.UnixMilli() }
