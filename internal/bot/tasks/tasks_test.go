package tasks

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/halalbot/internal/config"
	"github.com/edgard/halalbot/internal/database"
)

type appendOnlyStore struct{}

func (appendOnlyStore) AppendInteraction(context.Context, *database.Interaction) error { return nil }

type maintainedStore struct {
	appendOnlyStore
	runs int
	err  error
}

func (m *maintainedStore) RunSQLMaintenance(context.Context) error {
	m.runs++
	return m.err
}

func testDeps(t *testing.T, store database.InteractionStore) TaskDeps {
	t.Helper()
	return TaskDeps{
		Logger: slog.New(slog.DiscardHandler),
		Store:  store,
		Config: &config.Config{Media: config.MediaConfig{Dir: t.TempDir(), MaxAge: time.Hour}},
	}
}

func TestRegisterAllTasks(t *testing.T) {
	t.Parallel()

	tasks := RegisterAllTasks(testDeps(t, appendOnlyStore{}))
	assert.Len(t, tasks, 2)
	assert.Contains(t, tasks, MediaCleanupTask)
	assert.Contains(t, tasks, SQLMaintenanceTask)
}

func TestSQLMaintenanceTask(t *testing.T) {
	t.Parallel()

	t.Run("skips stores without maintenance", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, newSQLMaintenanceTask(testDeps(t, appendOnlyStore{}))(context.Background()))
	})

	t.Run("runs maintenance", func(t *testing.T) {
		t.Parallel()
		store := &maintainedStore{}
		require.NoError(t, newSQLMaintenanceTask(testDeps(t, store))(context.Background()))
		assert.Equal(t, 1, store.runs)
	})

	t.Run("wraps failures", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("database is locked")
		store := &maintainedStore{err: cause}
		err := newSQLMaintenanceTask(testDeps(t, store))(context.Background())
		assert.ErrorIs(t, err, cause)
	})
}

func TestMediaCleanupTask(t *testing.T) {
	t.Parallel()

	deps := testDeps(t, appendOnlyStore{})
	dir := deps.Config.Media.Dir

	write := func(name string, age time.Duration) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
		ts := time.Now().Add(-age)
		require.NoError(t, os.Chtimes(path, ts, ts))
		return path
	}

	stale := write("temp_123.jpg", 2*time.Hour)
	fresh := write("temp_456.jpg", time.Minute)
	unrelated := write("keep.jpg", 3*time.Hour)

	require.NoError(t, newMediaCleanupTask(deps)(context.Background()))

	assert.NoFileExists(t, stale)
	assert.FileExists(t, fresh)
	assert.FileExists(t, unrelated)
}

func TestMediaCleanupTask_MissingDir(t *testing.T) {
	t.Parallel()

	deps := testDeps(t, appendOnlyStore{})
	deps.Config.Media.Dir = filepath.Join(deps.Config.Media.Dir, "does-not-exist")

	assert.NoError(t, newMediaCleanupTask(deps)(context.Background()))
}
