package dossier

import (
	"log"
	"sync"
	"time"
)

// Event describes one successful state mutation. Events are the only
// externally observable side-channel besides query responses; external
// observers (notification pipelines, audit sinks) consume them through a
// Recorder.
type Event struct {
	Type      string         `json:"type"`
	Actor     string         `json:"actor"` // caller principal id
	Owner     string         `json:"owner"`
	DossierID uint64         `json:"dossier_id,omitempty"` // 0 for owner-wide (batch) events
	Detail    map[string]any `json:"detail,omitempty"`
	At        time.Time      `json:"at"`
}

// Event types emitted by the keeper.
const (
	EventDossierCreated      = "dossier_created"
	EventCheckedIn           = "checked_in"
	EventCheckedInAll        = "checked_in_all"
	EventPaused              = "paused"
	EventPausedAll           = "paused_all"
	EventResumed             = "resumed"
	EventResumedAll          = "resumed_all"
	EventReleased            = "released"
	EventDisabled            = "permanently_disabled"
	EventIntervalUpdated     = "interval_updated"
	EventFileHashAdded       = "file_hash_added"
	EventRecipientAdded      = "recipient_added"
	EventRecipientRemoved    = "recipient_removed"
	EventGuardianAdded       = "guardian_added"
	EventGuardianRemoved     = "guardian_removed"
	EventThresholdUpdated    = "threshold_updated"
	EventReleaseConfirmed    = "release_confirmed"
	EventConfirmationRevoked = "confirmation_revoked"
)

// Recorder receives events from the keeper. Record is called inside the
// mutating operation's critical section and must not block.
type Recorder interface {
	Record(ev Event)
}

// LogRecorder writes events to the standard logger. It is the recorder used
// by the server process.
type LogRecorder struct{}

// Record implements Recorder.
func (LogRecorder) Record(ev Event) {
	if ev.DossierID != 0 {
		log.Printf("INFO: Event %s - Owner: %s, Dossier: %d, Actor: %s", ev.Type, ev.Owner, ev.DossierID, ev.Actor)
		return
	}
	log.Printf("INFO: Event %s - Owner: %s, Actor: %s", ev.Type, ev.Owner, ev.Actor)
}

// MemoryRecorder accumulates events in memory for inspection in tests.
type MemoryRecorder struct {
	mu     sync.Mutex
	events []Event
}

// Record implements Recorder.
func (r *MemoryRecorder) Record(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Events returns a snapshot of everything recorded so far.
func (r *MemoryRecorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}
