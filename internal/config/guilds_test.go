package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/database"
)

func newTestStore(t *testing.T) (*GuildStore, *database.Database) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store, err := NewGuildStore(db, 64)
	require.NoError(t, err)
	return store, db
}

func TestGetLazilyCreatesConfig(t *testing.T) {
	store, _ := newTestStore(t)

	cfg, err := store.Get("g1")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "g1", cfg.GuildID)
	assert.Empty(t, cfg.LogChannelID)
}

func TestGetReturnsPrivateCopies(t *testing.T) {
	store, _ := newTestStore(t)

	first, err := store.Get("g1")
	require.NoError(t, err)

	// A caller scribbling on its snapshot must never leak into what
	// other goroutines read for the same guild.
	first.LogChannelID = "scratch"

	second, err := store.Get("g1")
	require.NoError(t, err)
	assert.Empty(t, second.LogChannelID)
}

func TestUpdateVisibleToSubsequentGets(t *testing.T) {
	store, db := newTestStore(t)

	cfg, err := store.Get("g1")
	require.NoError(t, err)
	cfg.LogChannelID = "log-chan"
	cfg.AdminIDs = database.AddID(cfg.AdminIDs, "u1")
	require.NoError(t, store.Update(cfg))

	got, err := store.Get("g1")
	require.NoError(t, err)
	assert.Equal(t, "log-chan", got.LogChannelID)
	assert.True(t, got.IsAuthorized("u1"))

	// Persisted too, not just cached.
	row, err := db.GetGuildConfig("g1")
	require.NoError(t, err)
	assert.Equal(t, "log-chan", row.LogChannelID)
}

func TestUpdateDoesNotAliasCallerStruct(t *testing.T) {
	store, _ := newTestStore(t)

	cfg, err := store.Get("g1")
	require.NoError(t, err)
	cfg.WelcomeChannelID = "welcome"
	require.NoError(t, store.Update(cfg))

	// Mutating the struct after Update must not rewrite the cache.
	cfg.WelcomeChannelID = "tampered"

	got, err := store.Get("g1")
	require.NoError(t, err)
	assert.Equal(t, "welcome", got.WelcomeChannelID)
}

func TestInvalidateForcesReload(t *testing.T) {
	store, db := newTestStore(t)

	_, err := store.Get("g1")
	require.NoError(t, err)

	// Write behind the cache's back, then invalidate.
	require.NoError(t, db.UpsertGuildConfig(&database.GuildConfig{GuildID: "g1", TicketRoleID: "r1"}))
	store.Invalidate("g1")

	got, err := store.Get("g1")
	require.NoError(t, err)
	assert.Equal(t, "r1", got.TicketRoleID)
}
