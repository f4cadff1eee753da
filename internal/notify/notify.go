// Package notify abstracts user-facing notifications (the toast equivalent)
// away from any rendering concern. Producers call Notify; a UI drains a Queue,
// or a LogNotifier writes to the log when no UI is attached.
package notify

import (
	"log/slog"
	"sync"
	"time"
)

// Kind classifies a notification.
type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// DefaultDuration is used when a producer does not care how long the
// notification stays visible.
const DefaultDuration = 4 * time.Second

// Notification is one user-visible message.
type Notification struct {
	Message  string
	Kind     Kind
	Duration time.Duration
}

// Notifier receives user-visible notifications.
type Notifier interface {
	Notify(n Notification)
}

// Queue is a bounded in-memory notifier. When full, the oldest notification
// is dropped so producers never block.
type Queue struct {
	mu      sync.Mutex
	max     int
	pending []Notification
}

// NewQueue creates a queue retaining at most max pending notifications.
func NewQueue(max int) *Queue {
	if max <= 0 {
		max = 16
	}
	return &Queue{max: max}
}

// Notify appends the notification, evicting the oldest when full.
func (q *Queue) Notify(n Notification) {
	if n.Duration <= 0 {
		n.Duration = DefaultDuration
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == q.max {
		q.pending = q.pending[1:]
	}
	q.pending = append(q.pending, n)
}

// Drain returns and clears all pending notifications in arrival order.
func (q *Queue) Drain() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = nil
	return out
}

// LogNotifier writes notifications to slog. Used as the default sink when no
// UI queue is attached.
type LogNotifier struct{}

// Notify logs the notification at a level matching its kind.
func (LogNotifier) Notify(n Notification) {
	switch n.Kind {
	case KindError:
		slog.Error("notification", "message", n.Message)
	case KindSuccess:
		slog.Info("notification", "kind", "success", "message", n.Message)
	default:
		slog.Info("notification", "message", n.Message)
	}
}
