package requester

import "time"

// JobState is the scheduling state of a job and all of its executions.
type JobState struct {
	JobID      string           `json:"JobID,omitempty"`
	Executions []ExecutionState `json:"Executions,omitempty"`
	State      JobStateType     `json:"State,omitempty"`
	Version    int              `json:"Version,omitempty"`
	CreateTime time.Time        `json:"CreateTime,omitzero"`
	UpdateTime time.Time        `json:"UpdateTime,omitzero"`
	TimeoutAt  time.Time        `json:"TimeoutAt,omitzero"`
}

func (s JobState) String() string {
	return Format(s)
}

// ExecutionState is the state of one execution of a job on a compute node.
type ExecutionState struct {
	JobID              string             `json:"JobID,omitempty"`
	NodeID             string             `json:"NodeID,omitempty"`
	ComputeReference   string             `json:"ComputeReference,omitempty"`
	State              ExecutionStateType `json:"State,omitempty"`
	AllocatedResources ResourceUsageData  `json:"AllocatedResources,omitzero"`
	PublishedResult    StorageSpec        `json:"PublishedResult,omitzero"`
	RunOutput          *RunCommandResult  `json:"RunOutput,omitempty"`
	Status             string             `json:"Status,omitempty"`
	VerificationResult VerificationResult `json:"VerificationResult,omitzero"`
	Version            int                `json:"Version,omitempty"`
	CreateTime         time.Time          `json:"CreateTime,omitzero"`
	UpdateTime         time.Time          `json:"UpdateTime,omitzero"`
}

// RunCommandResult is the output of an execution.
type RunCommandResult struct {
	STDOUT          string `json:"stdout,omitempty"`
	StdoutTruncated bool   `json:"stdouttruncated,omitempty"`
	STDERR          string `json:"stderr,omitempty"`
	StderrTruncated bool   `json:"stderrtruncated,omitempty"`
	ExitCode        int    `json:"exitCode,omitempty"`
	ErrorMsg        string `json:"runnerError,omitempty"`
}

// VerificationResult records whether an execution's result was verified.
type VerificationResult struct {
	Complete bool `json:"Complete,omitempty"`
	Result   bool `json:"Result,omitempty"`
}
