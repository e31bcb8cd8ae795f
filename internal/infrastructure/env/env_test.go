package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	t.Setenv("LEAVE_AGENT_TEST", "value")

	assert.Equal(t, "value", Get("LEAVE_AGENT_TEST", "fallback"))
	assert.Equal(t, "fallback", Get("LEAVE_AGENT_MISSING", "fallback"))
}

func TestMustGet(t *testing.T) {
	t.Setenv("LEAVE_AGENT_TEST", "value")

	v, err := MustGet("LEAVE_AGENT_TEST")
	require.NoError(t, err)
	assert.Equal(t, "value", v)

	_, err = MustGet("LEAVE_AGENT_MISSING")
	require.Error(t, err)

	t.Setenv("LEAVE_AGENT_EMPTY", "")
	_, err = MustGet("LEAVE_AGENT_EMPTY")
	require.Error(t, err, "empty counts as unset")
}

func TestGetBool(t *testing.T) {
	t.Setenv("LEAVE_AGENT_BOOL", "true")
	assert.True(t, GetBool("LEAVE_AGENT_BOOL", false))

	t.Setenv("LEAVE_AGENT_BOOL", "nonsense")
	assert.True(t, GetBool("LEAVE_AGENT_BOOL", true), "unparseable falls back")

	assert.False(t, GetBool("LEAVE_AGENT_MISSING", false))
}

func TestGetInt(t *testing.T) {
	t.Setenv("LEAVE_AGENT_INT", "42")
	assert.Equal(t, 42, GetInt("LEAVE_AGENT_INT", 7))

	t.Setenv("LEAVE_AGENT_INT", "x")
	assert.Equal(t, 7, GetInt("LEAVE_AGENT_INT", 7))
}

func TestGetDuration(t *testing.T) {
	t.Setenv("LEAVE_AGENT_DUR", "45s")
	assert.Equal(t, 45*time.Second, GetDuration("LEAVE_AGENT_DUR", time.Minute))

	assert.Equal(t, time.Minute, GetDuration("LEAVE_AGENT_MISSING", time.Minute))
}
