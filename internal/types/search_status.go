package types

import "time"

// SearchState is one stage of the search status state machine.
type SearchState string

// Search states, in pipeline order. FAILED is reachable from any
// non-terminal state; no state is ever revisited.
const (
	StateInitiated    SearchState = "INITIATED"
	StateSearching    SearchState = "SEARCHING"
	StateDiscovering  SearchState = "DISCOVERING"
	StateCategorizing SearchState = "CATEGORIZING"
	StateGenerating   SearchState = "GENERATING"
	StateCompleted    SearchState = "COMPLETED"
	StateFailed       SearchState = "FAILED"
)

// stateOrder gives each forward state its position in the pipeline.
var stateOrder = map[SearchState]int{
	StateInitiated:    0,
	StateSearching:    1,
	StateDiscovering:  2,
	StateCategorizing: 3,
	StateGenerating:   4,
	StateCompleted:    5,
}

// Terminal reports whether the state ends a run.
func (s SearchState) Terminal() bool {
	return s == StateCompleted || s == StateFailed
}

// CanTransition reports whether a transition from s to next is legal:
// strictly forward through the pipeline, or the FAILED escape from any
// non-terminal state.
func (s SearchState) CanTransition(next SearchState) bool {
	if s.Terminal() {
		return false
	}
	if next == StateFailed {
		return true
	}
	from, ok := stateOrder[s]
	if !ok {
		return false
	}
	to, ok := stateOrder[next]
	if !ok {
		return false
	}
	return to > from
}

// SearchStatus is the status ledger record for one search run.
type SearchStatus struct {
	SearchID       string      `json:"search_id"`
	UserID         string      `json:"user_id,omitempty"`
	Query          string      `json:"query"`
	State          SearchState `json:"status"`
	Progress       int         `json:"progress"`
	Message        string      `json:"message"`
	ResourcesFound int         `json:"resources_found"`
	SourcesScanned int         `json:"sources_scanned"`
	LearningPathID string      `json:"learning_path_id,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// StatusUpdate is a partial mutation of a SearchStatus. Nil pointer fields
// and empty strings are left untouched when applied.
type StatusUpdate struct {
	State          SearchState `json:"status,omitempty"`
	Progress       *int        `json:"progress,omitempty"`
	Message        string      `json:"message,omitempty"`
	ResourcesFound *int        `json:"resources_found,omitempty"`
	SourcesScanned *int        `json:"sources_scanned,omitempty"`
	LearningPathID string      `json:"learning_path_id,omitempty"`
}

// Apply copies the set fields of the update onto the status and stamps
// UpdatedAt.
func (u *StatusUpdate) Apply(s *SearchStatus) {
	if u.State != "" {
		s.State = u.State
	}
	if u.Progress != nil {
		s.Progress = *u.Progress
	}
	if u.Message != "" {
		s.Message = u.Message
	}
	if u.ResourcesFound != nil {
		s.ResourcesFound = *u.ResourcesFound
	}
	if u.SourcesScanned != nil {
		s.SourcesScanned = *u.SourcesScanned
	}
	if u.LearningPathID != "" {
		s.LearningPathID = u.LearningPathID
	}
	s.UpdatedAt = time.Now().UTC()
}

// IntPtr is a convenience for building StatusUpdate values.
func IntPtr(v int) *int { return &v }
