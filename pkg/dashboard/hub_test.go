package dashboard

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/crossplay/xwordgen/pkg/solver"
)

func TestHub_PublishDeliversOnlyToMatchingRun(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	watcherA := &client{runID: 1, send: make(chan []byte, 4)}
	watcherB := &client{runID: 2, send: make(chan []byte, 4)}
	hub.register <- watcherA
	hub.register <- watcherB

	hub.Publish(1, solver.StepResult{Word: "CAT"})

	select {
	case data := <-watcherA.send:
		var event StepEvent
		if err := json.Unmarshal(data, &event); err != nil {
			t.Fatal(err)
		}
		if event.Step.Word != "CAT" {
			t.Errorf("expected step word CAT, got %q", event.Step.Word)
		}
	case <-time.After(time.Second):
		t.Fatal("expected watcher for run 1 to receive the event")
	}

	select {
	case <-watcherB.send:
		t.Fatal("watcher for a different run should not receive the event")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_UnregisterClosesSendChannel(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c := &client{runID: 1, send: make(chan []byte, 1)}
	hub.register <- c
	hub.unregister <- c

	select {
	case _, ok := <-c.send:
		if ok {
			t.Fatal("expected the send channel to be closed, not to yield a value")
		}
	case <-time.After(time.Second):
		t.Fatal("expected the send channel to close promptly after unregister")
	}
}
