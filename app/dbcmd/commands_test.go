package dbcmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"postboard/app/models"
	"postboard/app/repositories"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner(t *testing.T, input string) (*Runner, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	out := &bytes.Buffer{}
	return &Runner{
		Path:      filepath.Join(dir, "badger"),
		BackupDir: filepath.Join(dir, "backups"),
		In:        strings.NewReader(input),
		Out:       out,
		Log:       zerolog.Nop(),
		Now:       func() time.Time { return time.Unix(1700000000, 0) },
	}, out
}

func seed(t *testing.T, path string, titles ...string) {
	t.Helper()
	store, err := repositories.NewBadgerStore(path, zerolog.Nop())
	require.NoError(t, err)
	defer store.Close()

	for _, title := range titles {
		_, err := store.Posts().Insert(context.Background(), &models.Post{Title: title, Contents: "body"})
		require.NoError(t, err)
	}
}

func titles(t *testing.T, path string) []string {
	t.Helper()
	store, err := repositories.NewBadgerStore(path, zerolog.Nop())
	require.NoError(t, err)
	defer store.Close()

	posts, err := store.Posts().Find(context.Background())
	require.NoError(t, err)

	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Title)
	}
	return out
}

func TestBackupCleanRestore(t *testing.T) {
	r, out := newTestRunner(t, "")
	seed(t, r.Path, "one", "two")

	require.NoError(t, r.Run([]string{"backup"}))
	backupFile := filepath.Join(r.BackupDir, "backup_1700000000.db")
	assert.FileExists(t, backupFile)
	assert.Contains(t, out.String(), "Database backed up successfully to "+backupFile)

	require.NoError(t, r.Run([]string{"clean", "-y"}))
	assert.Empty(t, titles(t, r.Path))

	require.NoError(t, r.Run([]string{"restore", backupFile, "--yes"}))
	assert.Equal(t, []string{"one", "two"}, titles(t, r.Path))
	assert.Contains(t, out.String(), "Database restored successfully")
}

func TestRestoreRejectsDamagedBackup(t *testing.T) {
	r, out := newTestRunner(t, "")
	seed(t, r.Path, "precious")

	bad := filepath.Join(t.TempDir(), "bad.db")
	require.NoError(t, os.WriteFile(bad, []byte("this is not a badger backup"), 0644))

	err := r.Run([]string{"restore", bad, "-y"})
	assert.Error(t, err)
	assert.Contains(t, out.String(), "database left untouched")
	assert.Equal(t, []string{"precious"}, titles(t, r.Path))
}

func TestRestoreReplacesExistingData(t *testing.T) {
	r, _ := newTestRunner(t, "")
	seed(t, r.Path, "old")

	backupFile := filepath.Join(t.TempDir(), "posts.bak")
	require.NoError(t, r.Run([]string{"backup", backupFile}))

	seed(t, r.Path, "newer", "newest")
	require.NoError(t, r.Run([]string{"restore", backupFile, "-y"}))
	assert.Equal(t, []string{"old"}, titles(t, r.Path))
}

func TestBackupToExplicitFile(t *testing.T) {
	r, _ := newTestRunner(t, "")
	seed(t, r.Path, "solo")

	target := filepath.Join(t.TempDir(), "posts.bak")
	require.NoError(t, r.Run([]string{"backup", target}))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestCleanAsksForConfirmation(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		r, out := newTestRunner(t, "n\n")
		seed(t, r.Path, "keep")

		require.NoError(t, r.Run([]string{"clean"}))
		assert.Contains(t, out.String(), "Operation cancelled")
		assert.Equal(t, []string{"keep"}, titles(t, r.Path))
	})

	t.Run("accepted", func(t *testing.T) {
		r, out := newTestRunner(t, "y\n")
		seed(t, r.Path, "drop")

		require.NoError(t, r.Run([]string{"clean"}))
		assert.Contains(t, out.String(), "Database cleaned successfully")
		assert.Empty(t, titles(t, r.Path))
	})
}

func TestMissingDatabase(t *testing.T) {
	r, out := newTestRunner(t, "")

	require.NoError(t, r.Run([]string{"backup"}))
	assert.Contains(t, out.String(), "No database exists to backup")

	require.NoError(t, r.Run([]string{"clean"}))
	assert.Contains(t, out.String(), "Database is already clean")

	require.NoError(t, r.Run([]string{"restore", filepath.Join(t.TempDir(), "nope.db")}))
	assert.Contains(t, out.String(), "Backup file does not exist")
}

func TestUsageErrors(t *testing.T) {
	r, out := newTestRunner(t, "")

	assert.ErrorIs(t, r.Run(nil), ErrUsage)
	assert.ErrorIs(t, r.Run([]string{"restore"}), ErrUsage)
	assert.ErrorIs(t, r.Run([]string{"vacuum"}), ErrUsage)
	assert.Contains(t, out.String(), "Unknown db command: vacuum")

	out.Reset()
	assert.NoError(t, r.Run([]string{"help"}))
	assert.Contains(t, out.String(), "Usage: postboard db")
}
