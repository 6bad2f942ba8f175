package config

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/database"
)

// GuildStore is the read-through cache over persisted GuildConfig rows.
// Reads hit the cache first; Update writes the store and then replaces
// the cache entry, so within a guild queue a completed update is visible
// to every subsequent read. Cached entries are never handed out: Get
// and Update copy, so callers on different goroutines can read and
// mutate their snapshots without sharing struct memory.
type GuildStore struct {
	db    *database.Database
	cache *lru.Cache[string, *database.GuildConfig]
}

func NewGuildStore(db *database.Database, size int) (*GuildStore, error) {
	cache, err := lru.New[string, *database.GuildConfig](size)
	if err != nil {
		return nil, err
	}
	return &GuildStore{db: db, cache: cache}, nil
}

// Get returns a copy of the guild's config, loading (and lazily
// creating) it from the store on first access. The copy is the caller's
// to mutate; changes only take effect through Update.
func (s *GuildStore) Get(guildID string) (*database.GuildConfig, error) {
	if cfg, ok := s.cache.Get(guildID); ok {
		snap := *cfg
		return &snap, nil
	}

	cfg, err := s.db.GetGuildConfig(guildID)
	if err != nil {
		return nil, err
	}
	s.cache.Add(guildID, cfg)
	snap := *cfg
	return &snap, nil
}

// Update persists cfg and installs a copy in the cache, so the caller's
// struct stays private after the call.
func (s *GuildStore) Update(cfg *database.GuildConfig) error {
	if err := s.db.UpsertGuildConfig(cfg); err != nil {
		return err
	}
	snap := *cfg
	s.cache.Add(cfg.GuildID, &snap)
	return nil
}

// Invalidate drops a cached entry, forcing the next Get to re-read.
func (s *GuildStore) Invalidate(guildID string) {
	s.cache.Remove(guildID)
}
