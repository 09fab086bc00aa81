package core

import (
	"fmt"
	"sync"
	"time"

	"github.com/Rorical/ezframe/internal/models"
)

// Policy decides which completing attempts may write the shared state.
type Policy int

const (
	// LastCompleted lets every attempt write its outcome; the last one to
	// complete wins, whatever order they were issued in.
	LastCompleted Policy = iota
	// LatestIssued only applies the outcome of the most recently issued
	// attempt. Older attempts still run to completion but are discarded.
	LatestIssued
)

func (p Policy) String() string {
	switch p {
	case LastCompleted:
		return "last-completed"
	case LatestIssued:
		return "latest-issued"
	default:
		return "unknown"
	}
}

// ParsePolicy maps a config value to a Policy. Empty selects LastCompleted.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "last-completed":
		return LastCompleted, nil
	case "latest-issued":
		return LatestIssued, nil
	default:
		return LastCompleted, fmt.Errorf("unknown decode policy %q", s)
	}
}

// DecodeState is the single source of truth for the current decode attempt.
type DecodeState struct {
	mu        sync.RWMutex
	cond      *sync.Cond
	phase     models.DecodePhase
	result    any
	errMsg    string
	frame     string
	attemptID string
	seq       uint64 // attempt that last wrote the state
	issued    uint64 // last attempt handed out by begin
	inFlight  int
	version   uint64
	updatedAt time.Time
	now       func() time.Time
}

func NewDecodeState() *DecodeState {
	ds := &DecodeState{phase: models.PhaseIdle, now: time.Now}
	ds.cond = sync.NewCond(&ds.mu)
	return ds
}

// begin clears result and error, enters Pending and returns the new attempt's
// sequence number.
func (ds *DecodeState) begin(frame, attemptID string) uint64 {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	ds.issued++
	ds.inFlight++
	ds.phase = models.PhasePending
	ds.result = nil
	ds.errMsg = ""
	ds.frame = frame
	ds.attemptID = attemptID
	ds.seq = ds.issued
	ds.touch()
	return ds.seq
}

// finishWithResult records a successful attempt. It reports whether the
// outcome was applied under policy.
func (ds *DecodeState) finishWithResult(seq uint64, frame, attemptID string, value any, policy Policy) bool {
	return ds.finish(seq, policy, func() {
		ds.phase = models.PhaseSucceeded
		ds.result = value
		ds.errMsg = ""
		ds.frame = frame
		ds.attemptID = attemptID
	})
}

func (ds *DecodeState) finishWithError(seq uint64, frame, attemptID, msg string, policy Policy) bool {
	return ds.finish(seq, policy, func() {
		ds.phase = models.PhaseFailed
		ds.result = nil
		ds.errMsg = msg
		ds.frame = frame
		ds.attemptID = attemptID
	})
}

func (ds *DecodeState) finish(seq uint64, policy Policy, apply func()) bool {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	defer ds.cond.Broadcast()

	ds.inFlight--
	if policy == LatestIssued && seq != ds.issued {
		ds.touch()
		return false
	}
	apply()
	ds.seq = seq
	ds.touch()
	return true
}

func (ds *DecodeState) touch() {
	ds.version++
	ds.updatedAt = ds.now()
}

// Snapshot returns a copy of the state. It never blocks on in-flight attempts.
func (ds *DecodeState) Snapshot() models.DecodeSnapshot {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return models.DecodeSnapshot{
		Phase:     ds.phase,
		Result:    ds.result,
		Error:     ds.errMsg,
		Frame:     ds.frame,
		AttemptID: ds.attemptID,
		Seq:       ds.seq,
		InFlight:  ds.inFlight,
		Version:   ds.version,
		UpdatedAt: ds.updatedAt,
	}
}

// Wait blocks until no attempt is in flight.
func (ds *DecodeState) Wait() {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	for ds.inFlight > 0 {
		ds.cond.Wait()
	}
}
