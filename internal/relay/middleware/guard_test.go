package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJoinGuard(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	g := NewJoinGuard(3, 10*time.Minute, setupTestLogger())
	g.now = func() time.Time { return now }

	assert.False(t, g.Failure("10.0.0.1"))
	assert.False(t, g.Failure("10.0.0.1"))
	assert.False(t, g.Banned("10.0.0.1"))

	assert.True(t, g.Failure("10.0.0.1"), "third failure bans")
	assert.True(t, g.Banned("10.0.0.1"))
	assert.False(t, g.Banned("10.0.0.2"), "other addresses are unaffected")

	now = now.Add(10 * time.Minute)
	assert.False(t, g.Banned("10.0.0.1"), "ban elapsed")

	// после истечения бана счетчик начинается заново
	assert.False(t, g.Failure("10.0.0.1"))
}

func TestJoinGuard_SuccessResets(t *testing.T) {
	g := NewJoinGuard(2, time.Minute, setupTestLogger())

	assert.False(t, g.Failure("10.0.0.1"))
	g.Success("10.0.0.1")
	assert.False(t, g.Failure("10.0.0.1"))
	assert.True(t, g.Failure("10.0.0.1"))
}
