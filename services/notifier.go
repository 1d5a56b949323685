// services/notifier.go
package services

import (
	"sync"
	"time"

	"next2play/models"
)

// DefaultNoticeDuration is how long a notification stays on screen.
const DefaultNoticeDuration = 3 * time.Second

// Notifier queues transient messages for one viewer.
type Notifier struct {
	mu    sync.Mutex
	ttl   time.Duration
	seq   uint64
	items []models.Notification
	now   func() time.Time
}

func NewNotifier(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultNoticeDuration
	}
	return &Notifier{ttl: ttl, now: time.Now}
}

// Push records a message and returns it.
func (n *Notifier) Push(message string, level models.NoticeLevel) models.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.seq++
	note := models.Notification{
		Seq:       n.seq,
		Message:   message,
		Level:     level,
		ExpiresAt: n.now().Add(n.ttl),
	}
	n.pruneLocked()
	n.items = append(n.items, note)
	return note
}

// Active returns the messages that have not expired yet.
func (n *Notifier) Active() []models.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pruneLocked()
	return append([]models.Notification(nil), n.items...)
}

// Since returns active messages newer than seq.
func (n *Notifier) Since(seq uint64) []models.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pruneLocked()
	var out []models.Notification
	for _, item := range n.items {
		if item.Seq > seq {
			out = append(out, item)
		}
	}
	return out
}

func (n *Notifier) pruneLocked() {
	now := n.now()
	kept := n.items[:0]
	for _, item := range n.items {
		if now.Before(item.ExpiresAt) {
			kept = append(kept, item)
		}
	}
	n.items = kept
}
