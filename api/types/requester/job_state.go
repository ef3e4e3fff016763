package requester

import (
	"fmt"
	"strings"
)

//go:generate stringer -type=JobStateType --trimprefix=JobState --output job_state_string.go

// JobStateType is the overall state of a job.
type JobStateType int

const (
	JobStateNew JobStateType = iota
	JobStateInProgress
	JobStateCancelled
	JobStateError
	JobStateCompleted
	JobStateQueued
)

// IsTerminal reports whether the job reached a state it will not leave.
func (s JobStateType) IsTerminal() bool {
	return s == JobStateCompleted || s == JobStateError || s == JobStateCancelled
}

// MarshalText implements [encoding.TextMarshaler].
func (s JobStateType) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (s *JobStateType) UnmarshalText(b []byte) error {
	for v := JobStateNew; v <= JobStateQueued; v++ {
		if v.String() == string(b) {
			*s = v
			return nil
		}
	}
	return errInvalidParameter{fmt.Errorf("invalid job state (%s)", b)}
}

// ParseJobStateType returns the [JobStateType] with the given name. Matching
// is case-insensitive, for names typed by users; decoding is exact.
func ParseJobStateType(name string) (JobStateType, error) {
	for s := JobStateNew; s <= JobStateQueued; s++ {
		if strings.EqualFold(s.String(), name) {
			return s, nil
		}
	}
	return JobStateNew, errInvalidParameter{fmt.Errorf("invalid job state (%s)", name)}
}
