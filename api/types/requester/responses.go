package requester

import (
	"encoding/json"
	"slices"
)

// EventsResponse is the response to an [EventsRequest].
type EventsResponse struct {
	Events []JobHistory `json:"events,omitempty"`
}

// ListResponse is the response to a [ListRequest].
type ListResponse struct {
	Jobs []*Job `json:"jobs,omitempty"`
}

// MarshalJSON implements [json.Marshaler]. Nil jobs are skipped, so the
// list never encodes a null entry.
func (r ListResponse) MarshalJSON() ([]byte, error) {
	type plain ListResponse
	return json.Marshal(plain{
		Jobs: slices.DeleteFunc(slices.Clone(r.Jobs), func(j *Job) bool { return j == nil }),
	})
}

// LocalEventsResponse is the response to a [LocalEventsRequest].
type LocalEventsResponse struct {
	LocalEvents []JobLocalEvent `json:"localEvents,omitempty"`
}

// ResultsResponse lists where the results of a job were published.
type ResultsResponse struct {
	Results []PublishedResult `json:"results,omitempty"`
}

// StateResponse is the state of a job.
type StateResponse struct {
	State JobState `json:"state,omitzero"`
}

// SubmitResponse is the job as accepted by the requester node.
type SubmitResponse struct {
	Job *Job `json:"job,omitempty"`
}

// VersionResponse is the response to a [VersionRequest].
type VersionResponse struct {
	VersionInfo *BuildVersionInfo `json:"build_version_info,omitempty"`
}

// BuildVersionInfo describes the build of a node or client.
type BuildVersionInfo struct {
	Major      string `json:"major,omitempty"`
	Minor      string `json:"minor,omitempty"`
	GitVersion string `json:"gitversion,omitempty"`
	GitCommit  string `json:"gitcommit,omitempty"`
	BuildDate  string `json:"builddate,omitempty"`
	GOOS       string `json:"goos,omitempty"`
	GOARCH     string `json:"goarch,omitempty"`
}
