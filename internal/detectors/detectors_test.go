package detectors

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/models"
)

func msgEvent(guild, user string, ts time.Time) *models.Event {
	return &models.Event{
		Type:      models.EventMessageCreate,
		GuildID:   guild,
		ActorID:   user,
		Timestamp: ts,
	}
}

func TestAntiSpamTriggersOncePerBurst(t *testing.T) {
	d := NewAntiSpam(5, 5*time.Second, 5*time.Minute)
	base := time.Unix(1000, 0)

	var triggers int
	// Six messages inside four seconds: the sixth trips the detector.
	for i := 0; i < 6; i++ {
		acts := d.Check(msgEvent("g1", "u1", base.Add(time.Duration(i)*600*time.Millisecond)))
		triggers += len(acts)
		if len(acts) > 0 {
			assert.Equal(t, models.ActionTimeout, acts[0].Type)
			assert.Equal(t, 5*time.Minute, acts[0].Duration)
		}
	}
	assert.Equal(t, 1, triggers)

	// The window was reset, so a seventh message in the same span does
	// not double-trigger.
	acts := d.Check(msgEvent("g1", "u1", base.Add(4*time.Second)))
	assert.Empty(t, acts)
}

func TestAntiSpamIgnoresBots(t *testing.T) {
	d := NewAntiSpam(1, 5*time.Second, time.Minute)
	ev := msgEvent("g1", "b1", time.Unix(1000, 0))
	ev.ActorIsBot = true

	for i := 0; i < 10; i++ {
		assert.Empty(t, d.Check(ev))
	}
}

func TestAntiRaidDetectsJoinBurst(t *testing.T) {
	d := NewAntiRaid(5, 10*time.Second)
	base := time.Unix(1000, 0)

	for i := 0; i < 4; i++ {
		ev := &models.Event{Type: models.EventMemberJoin, GuildID: "g1", Timestamp: base.Add(time.Duration(i) * time.Second)}
		assert.Empty(t, d.Check(ev))
	}

	acts := d.Check(&models.Event{Type: models.EventMemberJoin, GuildID: "g1", ActorID: "u5", Timestamp: base.Add(4 * time.Second)})
	assert.Len(t, acts, 1)
	assert.Equal(t, models.ActionActivateLockdown, acts[0].Type)
	// The tripping joiner is attributed for the security alert.
	assert.Equal(t, "u5", acts[0].ActorID)
}

func TestAntiRaidSlowJoinsDoNotTrigger(t *testing.T) {
	d := NewAntiRaid(5, 10*time.Second)
	base := time.Unix(1000, 0)

	for i := 0; i < 10; i++ {
		ev := &models.Event{Type: models.EventMemberJoin, GuildID: "g1", Timestamp: base.Add(time.Duration(i) * 11 * time.Second)}
		assert.Empty(t, d.Check(ev))
	}
}

func TestContentFilterRules(t *testing.T) {
	f := NewContentFilter(5)

	cases := []struct {
		name     string
		content  string
		mentions int
		everyone bool
		want     FilterRule
	}{
		{"clean", "hello there", 0, false, FilterNone},
		{"link", "check https://example.com/page", 0, false, FilterLink},
		{"invite", "join discord.gg/abc123", 0, false, FilterInvite},
		{"invite full domain", "https://discord.com/invite/abc123", 0, false, FilterInvite},
		{"mass mention", "hi", 5, false, FilterMassMention},
		{"four mentions ok", "hi", 4, false, FilterNone},
		{"everyone ping", "@everyone hi", 0, true, FilterMassMention},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev := &models.Event{Content: tc.content, MentionCount: tc.mentions, MentionsEveryone: tc.everyone}
			assert.Equal(t, tc.want, f.Evaluate(ev))
		})
	}
}

func TestContentFilterIgnoresBots(t *testing.T) {
	f := NewContentFilter(5)
	ev := &models.Event{Content: "https://example.com", ActorIsBot: true}
	assert.Equal(t, FilterNone, f.Evaluate(ev))
}

func TestSecurityGuardBansOnSecondDeletion(t *testing.T) {
	g := NewSecurityGuard(2, 5*time.Second)
	base := time.Unix(1000, 0)

	assert.False(t, g.RecordDeletion("g1", "u1", base))
	assert.True(t, g.RecordDeletion("g1", "u1", base.Add(3*time.Second)))

	// Window reset on trigger: a lone follow-up deletion starts over.
	assert.False(t, g.RecordDeletion("g1", "u1", base.Add(4*time.Second)))
}

func TestSecurityGuardSpacedDeletionsDoNotTrigger(t *testing.T) {
	g := NewSecurityGuard(2, 5*time.Second)
	base := time.Unix(1000, 0)

	assert.False(t, g.RecordDeletion("g1", "u1", base))
	assert.False(t, g.RecordDeletion("g1", "u1", base.Add(6*time.Second)))
}
