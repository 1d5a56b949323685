package services

import (
	"testing"
	"time"

	"next2play/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifierExpiry(t *testing.T) {
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	n := NewNotifier(3 * time.Second)
	n.now = func() time.Time { return clock }

	first := n.Push("Status updated successfully!", models.NoticeSuccess)
	clock = clock.Add(2 * time.Second)
	second := n.Push("Failed to delete game", models.NoticeError)

	require.Len(t, n.Active(), 2)
	assert.Equal(t, []models.Notification{second}, n.Since(first.Seq))

	clock = clock.Add(1500 * time.Millisecond)
	active := n.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "Failed to delete game", active[0].Message)

	clock = clock.Add(2 * time.Second)
	assert.Empty(t, n.Active())
}
