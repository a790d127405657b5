package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/botcmd/pkg/adapters/file"
	"github.com/aretw0/botcmd/pkg/domain"
	"github.com/aretw0/botcmd/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	ports.RunSessionStoreContract(t, file.New(t.TempDir()))
}

func TestFileStore_EscapesSessionIDs(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	id := "ts3/client:42"
	require.NoError(t, store.Save(ctx, domain.NewSession(id)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ts3%2Fclient:42.json", entries[0].Name())

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{id}, ids)
}

func TestFileStore_ListIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tmp-123.json"), []byte("{}"), 0644))

	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}
