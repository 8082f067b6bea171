package global

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDefaultTimer(t *testing.T) {
	ctx, cancel := GetDefaultTimer()
	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(10*time.Second), deadline, time.Second)

	cancel()
	assert.Error(t, ctx.Err())
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("STORE_TTL", "90s")
	t.Setenv("STORE_BAD_TTL", "-1s")
	t.Setenv("STORE_LIMIT", "x")
	t.Setenv("STORE_ORIGINS", " http://a , ,http://b")

	assert.Equal(t, 90*time.Second, GetEnvDuration("STORE_TTL", time.Hour))
	assert.Equal(t, time.Hour, GetEnvDuration("STORE_BAD_TTL", time.Hour))
	assert.Equal(t, 4, GetEnvInt("STORE_LIMIT", 4))
	assert.Equal(t, []string{"http://a", "http://b"}, GetEnvList("STORE_ORIGINS", nil))
	assert.Equal(t, "fallback", GetEnvOrDefault("STORE_UNSET", "fallback"))
}
