// Package dashboard serves a small gin HTTP API and websocket feed over
// solver run history, so a caller can watch a run's progress live and
// browse past runs afterward.
package dashboard

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/crossplay/xwordgen/pkg/solver"
)

// StepEvent is one solver step broadcast to connected websocket clients.
type StepEvent struct {
	RunID int64             `json:"runId"`
	Step  solver.StepResult `json:"step"`
}

// client is one registered websocket connection's outbound queue.
type client struct {
	runID int64
	send  chan []byte
}

// Hub fans out step events for in-progress runs to every client watching
// that run. One Hub serves every run a dashboard process ever starts.
type Hub struct {
	mutex      sync.RWMutex
	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	broadcast  chan StepEvent
}

// NewHub returns a Hub that must be started with Run in its own
// goroutine before clients are registered.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan StepEvent, 64),
	}
}

// Run processes registrations and broadcasts until ctx-equivalent
// shutdown; callers stop it by no longer sending and letting the
// process exit, matching the reference hub's simple for-select loop.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mutex.Lock()
			h.clients[c] = true
			h.mutex.Unlock()

		case c := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mutex.Unlock()

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				log.Printf("dashboard: failed to marshal step event: %v", err)
				continue
			}
			h.mutex.RLock()
			for c := range h.clients {
				if c.runID != event.RunID {
					continue
				}
				select {
				case c.send <- data:
				default:
					// slow consumer, drop the update rather than block the hub
				}
			}
			h.mutex.RUnlock()
		}
	}
}

// Publish broadcasts step as an event for runID. Safe to call from the
// solver's OnStep callback.
func (h *Hub) Publish(runID int64, step solver.StepResult) {
	h.broadcast <- StepEvent{RunID: runID, Step: step}
}
