package requester

import "time"

// JobHistoryType tells whether a history entry records a job or an
// execution transition.
type JobHistoryType string

const (
	JobHistoryTypeJobLevel       JobHistoryType = "JobLevel"
	JobHistoryTypeExecutionLevel JobHistoryType = "ExecutionLevel"
)

// UnmarshalText implements [encoding.TextUnmarshaler]. Unknown history
// types are rejected.
func (t *JobHistoryType) UnmarshalText(b []byte) error {
	return decodeEnum(t, "history type", b, []JobHistoryType{JobHistoryTypeJobLevel, JobHistoryTypeExecutionLevel})
}

// StateChange is a transition between two states.
type StateChange[T any] struct {
	Previous T `json:"Previous,omitempty"`
	New      T `json:"New,omitempty"`
}

// JobHistory is one entry of the event log of a job, as recorded by the
// requester node.
type JobHistory struct {
	Type             JobHistoryType                   `json:"Type,omitempty"`
	JobID            string                           `json:"JobID,omitempty"`
	NodeID           string                           `json:"NodeID,omitempty"`
	ComputeReference string                           `json:"ComputeReference,omitempty"`
	JobState         *StateChange[JobStateType]       `json:"JobState,omitempty"`
	ExecutionState   *StateChange[ExecutionStateType] `json:"ExecutionState,omitempty"`
	NewVersion       int                              `json:"NewVersion,omitempty"`
	Comment          string                           `json:"Comment,omitempty"`
	Time             time.Time                        `json:"Time,omitzero"`
}

func (h JobHistory) String() string {
	return Format(h)
}

// JobLocalEvent is an event as seen by the node that served the request.
type JobLocalEvent struct {
	EventName    string `json:"EventName,omitempty"`
	JobID        string `json:"JobID,omitempty"`
	ShardIndex   int    `json:"ShardIndex,omitempty"`
	TargetNodeID string `json:"TargetNodeID,omitempty"`
}

// PublishedResult is where a node published the result of a job.
type PublishedResult struct {
	NodeID string      `json:"NodeID,omitempty"`
	Data   StorageSpec `json:"Data,omitzero"`
}
