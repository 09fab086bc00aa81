package models

import "time"

// DecodePhase is the lifecycle position of the shared decode state.
type DecodePhase int

const (
	PhaseIdle DecodePhase = iota
	PhasePending
	PhaseSucceeded
	PhaseFailed
)

func (p DecodePhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePending:
		return "pending"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// DecodeSnapshot is a read-only copy of the shared decode state.
// Result and Error are never both set.
type DecodeSnapshot struct {
	Phase     DecodePhase
	Result    any    // Decoded value tree produced by the engine
	Error     string // Failure message of the attempt that wrote the state
	Frame     string // Frame of the attempt that last wrote the state
	AttemptID string
	Seq       uint64 // Issue order of the attempt that last wrote the state
	InFlight  int    // Attempts started but not yet resolved
	Version   uint64 // Incremented on every mutation
	UpdatedAt time.Time
}

func (s DecodeSnapshot) HasResult() bool {
	return s.Phase == PhaseSucceeded
}

func (s DecodeSnapshot) HasError() bool {
	return s.Phase == PhaseFailed
}

func (s DecodeSnapshot) IsPending() bool {
	return s.InFlight > 0
}
