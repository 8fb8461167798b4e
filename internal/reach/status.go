package reach

import (
	"sync"

	"github.com/mwolf76/gnuSMV/internal/witness"
)

// Status is the shared reachability verdict (§4.7/§5).
type Status int

const (
	StatusUnknown Status = iota
	StatusReachable
	StatusUnreachable
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusReachable:
		return "REACHABLE"
	case StatusUnreachable:
		return "UNREACHABLE"
	case StatusError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// SharedStatus is the one status cell every concurrently-running strategy
// races to set (§5's sync_set_status contract): set-once, CAS-like,
// guarded by a mutex rather than atomics since it also carries the
// winning witness pointer.
type SharedStatus struct {
	mu       sync.Mutex
	status   Status
	witness  *witness.Witness
	strategy Kind
	err      error
}

func newSharedStatus() *SharedStatus {
	return &SharedStatus{status: StatusUnknown}
}

// Get reads the current status.
func (s *SharedStatus) Get() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// TrySet sets status only if the cell is still UNKNOWN, returning whether
// this call won the race (sync_set_status's "CAS-like" semantics).
func (s *SharedStatus) TrySet(st Status, w *witness.Witness, by Kind, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusUnknown {
		return false
	}
	s.status = st
	s.witness = w
	s.strategy = by
	s.err = err
	return true
}

func (s *SharedStatus) snapshot() (Status, *witness.Witness, Kind, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, s.witness, s.strategy, s.err
}
