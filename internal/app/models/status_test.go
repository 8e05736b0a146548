package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockedStatusIdentifiers(t *testing.T) {
	// These identifiers are persisted in ticket rows and must never move
	assert.Equal(t, int64(1), StatusPending.ID())
	assert.Equal(t, int64(2), StatusInProgress.ID())
	assert.Equal(t, int64(3), StatusResolved.ID())
	assert.Equal(t, int64(4), StatusCannotFix.ID())
	assert.Equal(t, int64(7), StatusReferred.ID())
	assert.Equal(t, int64(8), StatusDamaged.ID())
}

func TestTicketStatusFromID(t *testing.T) {
	for _, s := range []TicketStatus{
		StatusPending, StatusInProgress, StatusResolved,
		StatusCannotFix, StatusReferred, StatusDamaged,
	} {
		got, ok := TicketStatusFromID(s.ID())
		require.True(t, ok, "status %s", s)
		assert.Equal(t, s, got)
	}

	// The historical gaps and custom rows are not canonical
	for _, id := range []int64{0, 5, 6, 9, 101} {
		_, ok := TicketStatusFromID(id)
		assert.False(t, ok, "id %d", id)
	}
}

func TestIsLockedStatusID(t *testing.T) {
	assert.True(t, IsLockedStatusID(1))
	assert.True(t, IsLockedStatusID(7))
	assert.False(t, IsLockedStatusID(5))
	assert.False(t, IsLockedStatusID(101))
}

func TestOpenAndTerminalSets(t *testing.T) {
	assert.True(t, StatusPending.Open())
	assert.True(t, StatusInProgress.Open())
	assert.True(t, StatusReferred.Open())
	assert.False(t, StatusResolved.Open())
	assert.False(t, StatusCannotFix.Open())
	assert.False(t, StatusDamaged.Open())

	assert.True(t, StatusResolved.Terminal())
	assert.True(t, StatusDamaged.Terminal())
	assert.False(t, StatusReferred.Terminal())
	assert.False(t, StatusCannotFix.Terminal())
}

func TestStatusLocked(t *testing.T) {
	locked := &Status{ID: 3, Name: "Resolved"}
	custom := &Status{ID: 101, Name: "Waiting for parts"}

	assert.True(t, locked.Locked())
	assert.False(t, custom.Locked())
}
