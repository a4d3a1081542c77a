package event_test

import (
	"testing"

	"github.com/nikbrunner/finwatch/internal/event"
)

func TestEmitter_DeliversInOrder(t *testing.T) {
	var e event.Emitter[int]
	var got []string

	e.Subscribe(func(v int) { got = append(got, "first") })
	e.Subscribe(func(v int) { got = append(got, "second") })

	e.Emit(1)

	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Errorf("unexpected delivery order: %v", got)
	}
}

func TestEmitter_Unsubscribe(t *testing.T) {
	var e event.Emitter[string]
	calls := 0

	unsubscribe := e.Subscribe(func(string) { calls++ })
	e.Emit("a")
	unsubscribe()
	unsubscribe()
	e.Emit("b")

	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
	if e.Len() != 0 {
		t.Errorf("expected no subscribers, got %d", e.Len())
	}
}

func TestEmitter_UnsubscribeDuringEmit(t *testing.T) {
	var e event.Emitter[int]
	calls := 0

	var unsubscribe func()
	unsubscribe = e.Subscribe(func(int) {
		calls++
		unsubscribe()
	})
	e.Subscribe(func(int) { calls++ })

	e.Emit(1)
	e.Emit(2)

	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}
