package warnings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/database"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/platform"
)

func newTestMachine(t *testing.T) (*Machine, *database.Database, *platform.Recorder) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rec := platform.NewRecorder()
	return NewMachine(db, rec, 3), db, rec
}

func TestImmuneUserIsNeverWarned(t *testing.T) {
	m, db, rec := newTestMachine(t)
	require.NoError(t, db.AddImmune("g1", "u1", "mod", "server founder"))

	for i := 0; i < 5; i++ {
		res, err := m.Issue("g1", "u1", "spam", "mod")
		require.NoError(t, err)
		assert.True(t, res.Immune)
		assert.False(t, res.Kicked)
	}

	count, err := db.CountWarnings("g1", "u1")
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Zero(t, rec.CallCount("KickMember"))
}

func TestThirdWarningKicksAndClears(t *testing.T) {
	m, db, rec := newTestMachine(t)

	res, err := m.Issue("g1", "u1", "spam", "mod")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
	assert.False(t, res.Kicked)

	res, err = m.Issue("g1", "u1", "links", "mod")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.False(t, res.Kicked)

	res, err = m.Issue("g1", "u1", "mentions", "mod")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count)
	assert.True(t, res.Kicked)

	kicks := rec.Calls("KickMember")
	require.Len(t, kicks, 1)
	assert.Equal(t, []string{"g1", "u1", "excessive warnings"}, kicks[0].Args)

	// Slate resets after enforcement.
	count, err := db.CountWarnings("g1", "u1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestWhitelistedUserStillAccumulatesWarnings(t *testing.T) {
	m, db, _ := newTestMachine(t)
	require.NoError(t, db.AddWhitelist("g1", "u1", "mod"))

	res, err := m.Issue("g1", "u1", "manual warn", "mod")
	require.NoError(t, err)
	assert.False(t, res.Immune)
	assert.Equal(t, 1, res.Count)
}

func TestKickFailureDoesNotRollBack(t *testing.T) {
	m, db, rec := newTestMachine(t)
	rec.FailMethods["KickMember"] = assert.AnError

	m.Issue("g1", "u1", "a", "mod")
	m.Issue("g1", "u1", "b", "mod")
	res, err := m.Issue("g1", "u1", "c", "mod")
	require.NoError(t, err)
	assert.True(t, res.Kicked)

	// Cleanup still ran; warnings are not restored on kick failure.
	count, err := db.CountWarnings("g1", "u1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestWarningsAreScopedPerGuild(t *testing.T) {
	m, _, rec := newTestMachine(t)

	m.Issue("g1", "u1", "a", "mod")
	m.Issue("g1", "u1", "b", "mod")
	res, err := m.Issue("g2", "u1", "c", "mod")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
	assert.Zero(t, rec.CallCount("KickMember"))
}

func TestRemoveByID(t *testing.T) {
	m, _, _ := newTestMachine(t)

	res, err := m.Issue("g1", "u1", "a", "mod")
	require.NoError(t, err)

	ok, err := m.Remove(res.Warning.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.Remove(res.Warning.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
