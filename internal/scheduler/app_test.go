package scheduler

import (
	"bytes"
	"context"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/vaxscheduler/internal/common"
	"github.com/dmitrijs2005/vaxscheduler/internal/scheduler/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.DatabaseDSN = filepath.Join(t.TempDir(), "scheduler.db")
	c.LogLevel = "debug"
	return c
}

func TestApp_RunSessionAgainstSQLite(t *testing.T) {
	var stdout, stderr bytes.Buffer
	c := testConfig(t)

	app, err := NewApp(context.Background(), c, &stdout, &stderr)
	require.NoError(t, err)

	in := strings.NewReader(strings.Join([]string{
		"create_caregiver cg1 Passw0rd!",
		"login_caregiver cg1 Passw0rd!",
		"upload_availability 2024-05-01",
		"add_doses flu 2",
		"logout",
		"create_patient pat Passw0rd!",
		"login_patient pat Passw0rd!",
		"reserve 2024-05-01 flu",
		"quit",
	}, "\n"))
	app.Run(context.Background(), in)

	out := stdout.String()
	assert.Contains(t, out, "You have successfully made a reservation with cg1!")
	assert.Contains(t, out, "Your appointment id is 1.")
	assert.True(t, strings.HasSuffix(out, "Bye!\n"))

	assert.Contains(t, stderr.String(), `"msg":"reservation committed"`)
	assert.NotContains(t, out, "reservation committed", "logs stay off stdout")

	// the store outlives the process
	app2, err := NewApp(context.Background(), c, &stdout, &stderr)
	require.NoError(t, err)
	stdout.Reset()
	app2.Run(context.Background(), strings.NewReader("login_patient pat Passw0rd!\nshow_appointments\nquit\n"))
	assert.Contains(t, stdout.String(), "Appointment ID: 1 Vaccine Scheduled: flu Appointment Time: 2024-05-01 Caregiver Name: cg1")
}

func TestApp_RunWithOpsServer(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	c := testConfig(t)
	c.MetricsAddr = addr

	var stdout, stderr bytes.Buffer
	app, err := NewApp(context.Background(), c, &stdout, &stderr)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		app.Run(context.Background(), strings.NewReader("quit\n"))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.Contains(t, stdout.String(), "Bye!")
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestApp_OpsServerBindFailureKeepsSession(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	c := testConfig(t)
	c.MetricsAddr = busy.Addr().String()

	var stdout bytes.Buffer
	var stderr lockedBuffer
	app, err := NewApp(context.Background(), c, &stdout, &stderr)
	require.NoError(t, err)

	pr, pw := io.Pipe()
	done := make(chan struct{})
	go func() {
		app.Run(context.Background(), pr)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(stderr.String(), `"msg":"ops server disabled"`)
	}, 5*time.Second, 10*time.Millisecond)

	_, err = io.WriteString(pw, "create_patient pat Passw0rd!\nquit\n")
	require.NoError(t, err, "stdin must still be open")

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.Contains(t, stdout.String(), " *** Patient account created successfully *** ")
	assert.True(t, strings.HasSuffix(stdout.String(), "Bye!\n"))
}

func TestNewApp_Errors(t *testing.T) {
	var stdout, stderr bytes.Buffer

	c := testConfig(t)
	c.LogBackend = "logrus"
	_, err := NewApp(context.Background(), c, &stdout, &stderr)
	assert.Error(t, err)

	c = testConfig(t)
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))
	c.DatabaseDSN = filepath.Join(blocker, "scheduler.db")
	_, err = NewApp(context.Background(), c, &stdout, &stderr)
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)

	c = testConfig(t)
	c.DatabaseDriver = "oracle"
	_, err = NewApp(context.Background(), c, &stdout, &stderr)
	assert.ErrorIs(t, err, common.ErrInvalidArgument)
}

func TestNewApp_UnreachableRedisDisablesEvents(t *testing.T) {
	c := testConfig(t)
	c.RedisURL = "redis://127.0.0.1:1/0"
	c.StoreTimeout = 200 * time.Millisecond

	var stdout, stderr bytes.Buffer
	app, err := NewApp(context.Background(), c, &stdout, &stderr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.db.Close() })

	assert.Contains(t, stderr.String(), "booking events disabled")
}
