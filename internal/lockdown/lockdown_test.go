package lockdown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/platform"
)

func TestActivateFreezesAllTextChannels(t *testing.T) {
	rec := platform.NewRecorder()
	rec.Channels = []string{"c1", "c2", "c3"}
	c := New(rec, time.Minute)

	require.NoError(t, c.Activate("g1"))

	assert.True(t, c.IsActive("g1"))
	assert.Equal(t, 3, rec.CallCount("SetChannelPermission"))
}

func TestActivateIsIdempotent(t *testing.T) {
	rec := platform.NewRecorder()
	rec.Channels = []string{"c1"}
	c := New(rec, time.Minute)

	require.NoError(t, c.Activate("g1"))
	require.NoError(t, c.Activate("g1"))

	// Second activate must not re-apply overwrites or arm a second timer.
	assert.Equal(t, 1, rec.CallCount("SetChannelPermission"))
}

func TestActivateFailureLeavesGuildRetryable(t *testing.T) {
	rec := platform.NewRecorder()
	rec.FailMethods["TextChannels"] = assert.AnError
	c := New(rec, time.Minute)

	require.Error(t, c.Activate("g1"))
	assert.False(t, c.IsActive("g1"))

	// Once the platform recovers, the same guild can lock down.
	delete(rec.FailMethods, "TextChannels")
	rec.Channels = []string{"c1"}
	require.NoError(t, c.Activate("g1"))
	assert.True(t, c.IsActive("g1"))
	assert.Equal(t, 1, rec.CallCount("SetChannelPermission"))
}

func TestDeactivateWhenInactiveIsNoop(t *testing.T) {
	rec := platform.NewRecorder()
	c := New(rec, time.Minute)

	require.NoError(t, c.Deactivate("g1"))
	assert.Zero(t, rec.CallCount("DeleteChannelPermission"))
}

func TestManualDeactivateCancelsExpiry(t *testing.T) {
	rec := platform.NewRecorder()
	rec.Channels = []string{"c1"}
	c := New(rec, 30*time.Millisecond)

	require.NoError(t, c.Activate("g1"))
	require.NoError(t, c.Deactivate("g1"))
	reverts := rec.CallCount("DeleteChannelPermission")

	// Past the original expiry the cancelled timer must not fire again.
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, reverts, rec.CallCount("DeleteChannelPermission"))
	assert.False(t, c.IsActive("g1"))
}

func TestAutoExpiryReverts(t *testing.T) {
	rec := platform.NewRecorder()
	rec.Channels = []string{"c1"}
	c := New(rec, 20*time.Millisecond)

	require.NoError(t, c.Activate("g1"))

	assert.Eventually(t, func() bool {
		return !c.IsActive("g1") && rec.CallCount("DeleteChannelPermission") == 1
	}, time.Second, 5*time.Millisecond)
}
