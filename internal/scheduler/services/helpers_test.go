package services

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dmitrijs2005/vaxscheduler/internal/logging"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/models"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/repositories/repomanager"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

type store struct {
	db *sqlx.DB
	rm *repomanager.SQLRepositoryManager
}

func newStore(t *testing.T) *store {
	t.Helper()
	ctx := context.Background()

	db, err := repomanager.Open(ctx, repomanager.DriverSQLite, filepath.Join(t.TempDir(), "scheduler.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rm := repomanager.NewSQLRepositoryManager()
	require.NoError(t, rm.RunMigrations(ctx, db))
	return &store{db: db, rm: rm}
}

// seedAccount inserts an account without hashing a password.
func (s *store) seedAccount(t *testing.T, role models.Role, username string) *Session {
	t.Helper()
	acc := &models.Account{Username: username, Salt: []byte("salt"), Hash: []byte("hash")}
	require.NoError(t, s.rm.Accounts(s.db, role).Create(context.Background(), acc))
	return NewSession(username, role)
}

func (s *store) seedVaccine(t *testing.T, name string, doses int64) {
	t.Helper()
	require.NoError(t, s.rm.Vaccines(s.db).Create(context.Background(), name, doses))
}

func (s *store) seedSlot(t *testing.T, caregiver, date string) {
	t.Helper()
	require.NoError(t, s.rm.Availabilities(s.db).Publish(context.Background(), caregiver, models.MustParseDate(date)))
}

func (s *store) doses(t *testing.T, name string) int64 {
	t.Helper()
	v, err := s.rm.Vaccines(s.db).Find(context.Background(), name)
	require.NoError(t, err)
	return v.Doses
}

// syncBuffer lets concurrent goroutines share one log sink.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestLogger() (logging.Logger, *syncBuffer) {
	buf := &syncBuffer{}
	h := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return logging.NewSlogLogger(slog.New(h)), buf
}
