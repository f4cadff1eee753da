package notify

import (
	"fmt"
	"testing"
	"time"
)

func TestQueue_DrainInArrivalOrder(t *testing.T) {
	q := NewQueue(8)
	q.Notify(Notification{Message: "first", Kind: KindInfo})
	q.Notify(Notification{Message: "second", Kind: KindSuccess})

	got := q.Drain()
	if len(got) != 2 || got[0].Message != "first" || got[1].Message != "second" {
		t.Errorf("unexpected drain result: %+v", got)
	}
	if len(q.Drain()) != 0 {
		t.Error("queue must be empty after drain")
	}
}

func TestQueue_EvictsOldestWhenFull(t *testing.T) {
	q := NewQueue(2)
	for i := 1; i <= 3; i++ {
		q.Notify(Notification{Message: fmt.Sprintf("msg-%d", i), Kind: KindInfo})
	}

	got := q.Drain()
	if len(got) != 2 {
		t.Fatalf("expected 2 pending, got %d", len(got))
	}
	if got[0].Message != "msg-2" || got[1].Message != "msg-3" {
		t.Errorf("expected oldest evicted, got %+v", got)
	}
}

func TestQueue_DefaultsDuration(t *testing.T) {
	q := NewQueue(1)
	q.Notify(Notification{Message: "hi", Kind: KindInfo})

	got := q.Drain()
	if got[0].Duration != DefaultDuration {
		t.Errorf("duration = %v, want %v", got[0].Duration, DefaultDuration)
	}
	q.Notify(Notification{Message: "hi", Kind: KindInfo, Duration: time.Second})
	if got := q.Drain(); got[0].Duration != time.Second {
		t.Errorf("explicit duration overridden: %v", got[0].Duration)
	}
}
