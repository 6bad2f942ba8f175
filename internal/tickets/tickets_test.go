package tickets

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/config"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/database"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/platform"
)

func newTestManager(t *testing.T) (*Manager, *database.Database, *platform.Recorder) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	guilds, err := config.NewGuildStore(db, 64)
	require.NoError(t, err)

	rec := platform.NewRecorder()
	return NewManager(db, rec, guilds, 100), db, rec
}

func TestCreateOpensChannelAndPersists(t *testing.T) {
	m, db, rec := newTestManager(t)

	channelID, err := m.Create("g1", "u1", TypeGeneral)
	require.NoError(t, err)
	require.NotEmpty(t, channelID)

	ticket, err := db.GetTicket(channelID)
	require.NoError(t, err)
	require.NotNil(t, ticket)
	assert.Equal(t, "u1", ticket.CreatorID)
	assert.False(t, ticket.Closed)
	assert.Equal(t, 1, rec.CallCount("CreateChannel"))
}

func TestCreateRejectsSecondOpenTicket(t *testing.T) {
	m, _, rec := newTestManager(t)

	_, err := m.Create("g1", "u1", TypeGeneral)
	require.NoError(t, err)

	_, err = m.Create("g1", "u1", TypeApply)
	assert.ErrorIs(t, err, ErrDuplicateTicket)

	// Only the first create allocated a channel.
	assert.Equal(t, 1, rec.CallCount("CreateChannel"))
}

func TestCreateAllowedAfterClose(t *testing.T) {
	m, _, _ := newTestManager(t)

	channelID, err := m.Create("g1", "u1", TypeGeneral)
	require.NoError(t, err)
	require.NoError(t, m.Close(channelID, "mod"))

	_, err = m.Create("g1", "u1", TypeMerge)
	assert.NoError(t, err)
}

func TestCreateRejectsUnknownType(t *testing.T) {
	m, _, _ := newTestManager(t)
	_, err := m.Create("g1", "u1", "vip")
	assert.Error(t, err)
}

func TestClaimIsExclusive(t *testing.T) {
	m, db, _ := newTestManager(t)

	channelID, err := m.Create("g1", "u1", TypeGeneral)
	require.NoError(t, err)

	require.NoError(t, m.Claim(channelID, "staff1"))
	assert.ErrorIs(t, m.Claim(channelID, "staff2"), ErrAlreadyClaimed)

	// The original claimant is preserved.
	ticket, err := db.GetTicket(channelID)
	require.NoError(t, err)
	assert.Equal(t, "staff1", ticket.ClaimedBy)
}

func TestClaimUnknownChannel(t *testing.T) {
	m, _, _ := newTestManager(t)
	assert.ErrorIs(t, m.Claim("nope", "staff1"), ErrNotTicket)
}

func TestCloseDeletesChannel(t *testing.T) {
	m, db, rec := newTestManager(t)

	channelID, err := m.Create("g1", "u1", TypeGeneral)
	require.NoError(t, err)

	require.NoError(t, m.Close(channelID, "mod"))

	ticket, err := db.GetTicket(channelID)
	require.NoError(t, err)
	assert.True(t, ticket.Closed)
	assert.NotZero(t, ticket.ClosedAt)
	assert.Equal(t, 1, rec.CallCount("DeleteChannel"))

	assert.ErrorIs(t, m.Close(channelID, "mod"), ErrClosed)
}

func TestCloseIsTerminalAgainstConcurrentCloser(t *testing.T) {
	m, db, rec := newTestManager(t)

	channelID, err := m.Create("g1", "u1", TypeGeneral)
	require.NoError(t, err)

	// Another closer wins the update first: the store flips the row
	// exactly once, and the loser surfaces ErrClosed instead of
	// deleting the channel a second time.
	ok, err := db.CloseTicket(channelID, time.Now().Unix())
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = db.CloseTicket(channelID, time.Now().Unix())
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, m.Close(channelID, "mod"), ErrClosed)
	assert.Zero(t, rec.CallCount("DeleteChannel"))
}

func TestCloseDeletesChannelWhenTranscriptFails(t *testing.T) {
	m, _, rec := newTestManager(t)

	channelID, err := m.Create("g1", "u1", TypeGeneral)
	require.NoError(t, err)

	rec.FailMethods["RecentMessages"] = assert.AnError
	require.NoError(t, m.Close(channelID, "mod"))

	assert.Equal(t, 1, rec.CallCount("DeleteChannel"))
}

func TestTranscriptRendersOldestFirst(t *testing.T) {
	ticket := &database.Ticket{ChannelID: "c1", CreatorID: "u1", Type: TypeGeneral, ClaimedBy: "staff1"}
	base := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)

	// Newest-first, as the platform returns them.
	msgs := []platform.Message{
		{AuthorName: "staff", Content: "closing now", Timestamp: base.Add(2 * time.Minute)},
		{AuthorName: "user", Content: "thanks", Timestamp: base.Add(time.Minute)},
		{AuthorName: "user", Content: "I need help", Timestamp: base},
	}

	out := renderTranscript(ticket, msgs)
	first := strings.Index(out, "I need help")
	last := strings.Index(out, "closing now")
	assert.Greater(t, last, first)
	assert.Contains(t, out, "handled by <@staff1>")
}
