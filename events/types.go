package events

import "github.com/lixenwraith/word-orbit/core"

// EventType identifies a viewer event
type EventType int

const (
	// EventBatchArrived delivers a coordinate batch from a fetch goroutine
	// Consumer: viewer loop | Payload: *BatchArrivedPayload
	EventBatchArrived EventType = iota

	// EventSequenceComplete signals the final batch of a sequence landed
	// Payload: *SequenceDonePayload
	EventSequenceComplete

	// EventSequenceFailed signals a fetch error; the sequence is dead
	// Payload: *SequenceFailedPayload
	EventSequenceFailed
)

// Event is one queued viewer event
type Event struct {
	Type    EventType
	Payload any
}

// BatchArrivedPayload carries one batch plus the generation that requested it
// Stale generations are dropped by the consumer without touching the scene
type BatchArrivedPayload struct {
	Generation uint64
	Anchor     string
	BatchNum   int
	Points     []core.Point
	IsComplete bool
}

// SequenceDonePayload marks sequence completion for a generation
type SequenceDonePayload struct {
	Generation uint64
	Anchor     string
}

// SequenceFailedPayload carries the terminal error of a fetch sequence
type SequenceFailedPayload struct {
	Generation uint64
	Anchor     string
	Err        error
}
