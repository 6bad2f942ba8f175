package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAuthorizedIsUnionOfBothLists(t *testing.T) {
	cfg := &GuildConfig{AdminIDs: "a1,a2", AuthorizedIDs: "u1"}

	// Members of either list may run gated commands, including the
	// admin-list management commands themselves.
	assert.True(t, cfg.IsAuthorized("a1"))
	assert.True(t, cfg.IsAuthorized("a2"))
	assert.True(t, cfg.IsAuthorized("u1"))
	assert.False(t, cfg.IsAuthorized("stranger"))
	assert.False(t, cfg.IsAuthorized(""))
}

func TestIsAdminChecksAdminListOnly(t *testing.T) {
	cfg := &GuildConfig{AdminIDs: "a1", AuthorizedIDs: "u1"}

	assert.True(t, cfg.IsAdmin("a1"))
	assert.False(t, cfg.IsAdmin("u1"))
}

func TestAddIDIsIdempotent(t *testing.T) {
	list := AddID("", "u1")
	list = AddID(list, "u2")
	list = AddID(list, "u1")
	assert.Equal(t, "u1,u2", list)
}

func TestRemoveID(t *testing.T) {
	assert.Equal(t, "u1,u3", RemoveID("u1,u2,u3", "u2"))
	assert.Equal(t, "", RemoveID("u1", "u1"))
	assert.Equal(t, "u1", RemoveID("u1", "missing"))
}
