package game

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestEventQueueDeliversAtDrain(t *testing.T) {
	q := NewEventQueue()
	hits := &recorder{}
	all := &recorder{}
	q.Subscribe(EventHit, hits)
	q.SubscribeAll(all)

	q.Push(Event{Type: EventHit, Amount: 10})
	q.Push(Event{Type: EventSwing})
	q.Push(Event{Type: EventHit, Amount: 20})

	if len(hits.events) != 0 {
		t.Fatal("Expected nothing delivered before Drain")
	}
	if q.Len() != 3 {
		t.Fatalf("Expected 3 pending events, got %d", q.Len())
	}

	q.Drain()

	if len(hits.events) != 2 || hits.events[0].Amount != 10 || hits.events[1].Amount != 20 {
		t.Errorf("Expected two hits in order, got %+v", hits.events)
	}
	if len(all.events) != 3 {
		t.Errorf("Expected 3 events for the catch-all, got %d", len(all.events))
	}
	if q.Len() != 0 {
		t.Errorf("Expected empty queue, got %d", q.Len())
	}
}

func TestEventsPushedDuringDrainWait(t *testing.T) {
	q := NewEventQueue()
	var seen []EventType
	q.Subscribe(EventActorKilled, ListenerFunc(func(e Event) {
		q.Push(Event{Type: EventCoinCredited})
	}))
	q.SubscribeAll(ListenerFunc(func(e Event) {
		seen = append(seen, e.Type)
	}))

	q.Push(Event{Type: EventActorKilled})
	q.Drain()
	if len(seen) != 1 || q.Len() != 1 {
		t.Fatalf("Expected follow-up event held for next drain, saw %v with %d pending", seen, q.Len())
	}

	q.Drain()
	if len(seen) != 2 || seen[1] != EventCoinCredited {
		t.Errorf("Expected follow-up delivered on second drain, saw %v", seen)
	}
}

func TestEventQueueUnsubscribeAndClear(t *testing.T) {
	q := NewEventQueue()
	rec := &recorder{}
	q.Subscribe(EventHit, rec)
	q.Unsubscribe(EventHit, rec)

	q.Push(Event{Type: EventHit})
	q.Drain()
	if len(rec.events) != 0 {
		t.Errorf("Expected no delivery after unsubscribe, got %d", len(rec.events))
	}

	q.Subscribe(EventHit, rec)
	q.Push(Event{Type: EventHit})
	q.Clear()
	q.Drain()
	if len(rec.events) != 0 {
		t.Errorf("Expected cleared events dropped, got %d", len(rec.events))
	}
}

func TestLogListener(t *testing.T) {
	var buf bytes.Buffer
	l := &LogListener{Logger: log.New(&buf, "", 0)}

	l.OnEvent(Event{Type: EventActorKilled, Kind: ActorCrab, X: 10, Y: 20})
	l.OnEvent(Event{Type: EventHit})

	out := buf.String()
	if !strings.Contains(out, "crab destroyed at (10, 20)") {
		t.Errorf("Expected kill line, got %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("Expected hits not logged, got %q", out)
	}
}
