package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/botcmd/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSessionStoreContract runs a suite of tests to verify that a SessionStore
// implementation adheres to the interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		session := domain.NewSession(sessionID)
		session.Variables["foo"] = "bar"
		session.Record("!echo hi")

		err := store.Save(ctx, session)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, sessionID, loaded.ID)
		assert.Equal(t, "bar", loaded.Variables["foo"])
		assert.Equal(t, []string{"!echo hi"}, loaded.History)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-session")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Isolation", func(t *testing.T) {
		session := domain.NewSession(sessionID + "-iso")
		require.NoError(t, store.Save(ctx, session))

		session.Variables["late"] = "write"
		loaded, err := store.Load(ctx, session.ID)
		require.NoError(t, err)
		assert.NotContains(t, loaded.Variables, "late", "store must not alias the caller's session")
	})

	t.Run("List", func(t *testing.T) {
		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, sessionID)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, sessionID))
		_, err := store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)

		assert.NoError(t, store.Delete(ctx, sessionID), "deleting twice should be a no-op")
	})
}
