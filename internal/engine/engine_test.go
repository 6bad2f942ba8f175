package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/config"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/database"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/dispatcher"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/lockdown"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/models"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/platform"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/warnings"
)

func newTestEngine(t *testing.T) (*Engine, *database.Database, *platform.Recorder) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	guilds, err := config.NewGuildStore(db, 64)
	require.NoError(t, err)

	rec := platform.NewRecorder()
	cfg := config.DefaultConfig()

	e := New(cfg, db, guilds, rec, dispatcher.New(256),
		warnings.NewMachine(db, rec, cfg.Moderation.MaxWarnings),
		lockdown.New(rec, time.Minute))
	return e, db, rec
}

func message(guild, user, content string, ts time.Time) *models.Event {
	return &models.Event{
		Type: models.EventMessageCreate, GuildID: guild, ActorID: user,
		ChannelID: "c1", MessageID: "m1", Content: content, Timestamp: ts,
	}
}

func TestSpamBurstTimesOutOnce(t *testing.T) {
	e, _, rec := newTestEngine(t)
	base := time.Unix(1000, 0)

	// Six messages within four seconds, then a seventh in the same span.
	for i := 0; i < 7; i++ {
		e.process(message("g1", "u1", "hi", base.Add(time.Duration(i)*600*time.Millisecond)))
	}

	timeouts := rec.Calls("TimeoutMember")
	require.Len(t, timeouts, 1)
	assert.Equal(t, "u1", timeouts[0].Args[1])
	assert.Equal(t, (5 * time.Minute).String(), timeouts[0].Args[2])
}

func TestLinkMessageDeletedAndWarned(t *testing.T) {
	e, db, rec := newTestEngine(t)

	e.process(message("g1", "u1", "visit https://spam.example", time.Unix(1000, 0)))

	assert.Equal(t, 1, rec.CallCount("DeleteMessage"))
	assert.Equal(t, 1, rec.CallCount("SendTemporary"))
	count, err := db.CountWarnings("g1", "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestWhitelistedSenderSkipsFilters(t *testing.T) {
	e, db, rec := newTestEngine(t)
	require.NoError(t, db.AddWhitelist("g1", "u1", "mod"))

	e.process(message("g1", "u1", "discord.gg/abc123", time.Unix(1000, 0)))

	assert.Zero(t, rec.CallCount("DeleteMessage"))
	count, _ := db.CountWarnings("g1", "u1")
	assert.Zero(t, count)
}

func TestMassMentionExemptsPermittedSender(t *testing.T) {
	e, _, rec := newTestEngine(t)
	rec.MentionPerm["u1"] = true

	ev := message("g1", "u1", "announcement", time.Unix(1000, 0))
	ev.MentionsEveryone = true
	e.process(ev)

	assert.Zero(t, rec.CallCount("DeleteMessage"))
}

func TestJoinBurstActivatesLockdown(t *testing.T) {
	e, _, rec := newTestEngine(t)
	rec.Channels = []string{"c1", "c2"}
	base := time.Unix(1000, 0)

	for i := 0; i < 5; i++ {
		e.process(&models.Event{
			Type: models.EventMemberJoin, GuildID: "g1",
			ActorID: "u" + string(rune('a'+i)), Timestamp: base.Add(time.Duration(i) * time.Second),
		})
	}

	assert.True(t, e.Lockdown().IsActive("g1"))
	// One overwrite per channel, applied exactly once.
	assert.Equal(t, 2, rec.CallCount("SetChannelPermission"))
}

func TestChannelDeleteBurstRecreatesAndBans(t *testing.T) {
	e, _, rec := newTestEngine(t)
	rec.Audit[platform.AuditChannelDelete] = &platform.AuditEntry{ActorID: "raider"}
	base := time.Unix(1000, 0)

	for i := 0; i < 2; i++ {
		e.process(&models.Event{
			Type: models.EventChannelDelete, GuildID: "g1",
			Channel:   &models.ChannelInfo{ID: "c1", Name: "general"},
			Timestamp: base.Add(time.Duration(i) * time.Second),
		})
	}

	// Both channels recreated, executor banned after the second delete.
	assert.Equal(t, 2, rec.CallCount("CreateChannel"))
	bans := rec.Calls("BanMember")
	require.Len(t, bans, 1)
	assert.Equal(t, "raider", bans[0].Args[1])
}

func TestWhitelistedExecutorDeletionIgnored(t *testing.T) {
	e, db, rec := newTestEngine(t)
	require.NoError(t, db.AddWhitelist("g1", "admin", "owner"))
	rec.Audit[platform.AuditChannelDelete] = &platform.AuditEntry{ActorID: "admin"}

	e.process(&models.Event{
		Type: models.EventChannelDelete, GuildID: "g1",
		Channel:   &models.ChannelInfo{ID: "c1", Name: "general"},
		Timestamp: time.Unix(1000, 0),
	})

	assert.Zero(t, rec.CallCount("CreateChannel"))
	assert.Zero(t, rec.CallCount("BanMember"))
}

func TestBotExecutorDeletionIgnored(t *testing.T) {
	e, _, rec := newTestEngine(t)
	rec.Audit[platform.AuditChannelDelete] = &platform.AuditEntry{ActorID: "bot", ActorIsBot: true}

	e.process(&models.Event{
		Type: models.EventChannelDelete, GuildID: "g1",
		Channel:   &models.ChannelInfo{ID: "c1", Name: "general"},
		Timestamp: time.Unix(1000, 0),
	})

	assert.Zero(t, rec.CallCount("CreateChannel"))
}

func TestUnauthorizedChannelCreateRemoved(t *testing.T) {
	e, _, rec := newTestEngine(t)
	rec.Audit[platform.AuditChannelCreate] = &platform.AuditEntry{ActorID: "raider"}

	e.process(&models.Event{
		Type: models.EventChannelCreate, GuildID: "g1", ChannelID: "evil",
		Timestamp: time.Unix(1000, 0),
	})

	deletes := rec.Calls("DeleteChannel")
	require.Len(t, deletes, 1)
	assert.Equal(t, "evil", deletes[0].Args[0])
}

func TestUnauthorizedRoleCreateRemoved(t *testing.T) {
	e, _, rec := newTestEngine(t)
	rec.Audit[platform.AuditRoleCreate] = &platform.AuditEntry{ActorID: "raider"}

	e.process(&models.Event{
		Type: models.EventRoleCreate, GuildID: "g1",
		Role:      &models.RoleInfo{ID: "r1", Name: "evil"},
		Timestamp: time.Unix(1000, 0),
	})

	assert.Equal(t, 1, rec.CallCount("DeleteRole"))
}
