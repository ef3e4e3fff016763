package requester

// EventsRequest asks for the event log of a job.
type EventsRequest struct {
	ClientID string `json:"client_id,omitempty"`
	JobID    string `json:"job_id,omitempty"`
}

func (r EventsRequest) String() string {
	return Format(r)
}

// ListRequest asks for the jobs of a client or, with ReturnAll, of the whole
// network.
type ListRequest struct {
	JobID       string   `json:"id,omitempty"`
	ClientID    string   `json:"client_id,omitempty"`
	IncludeTags []string `json:"include_tags,omitempty"`
	ExcludeTags []string `json:"exclude_tags,omitempty"`
	MaxJobs     int      `json:"max_jobs,omitempty"`
	ReturnAll   bool     `json:"return_all,omitempty"`
	SortBy      string   `json:"sort_by,omitempty"`
	SortReverse bool     `json:"sort_reverse,omitempty"`
}

func (r ListRequest) String() string {
	return Format(r)
}

// LocalEventsRequest asks for the events a node recorded locally for a job.
type LocalEventsRequest struct {
	ClientID string `json:"client_id,omitempty"`
	JobID    string `json:"job_id,omitempty"`
}

func (r LocalEventsRequest) String() string {
	return Format(r)
}

// StateRequest identifies a job for the states and results endpoints.
type StateRequest struct {
	ClientID string `json:"client_id,omitempty"`
	JobID    string `json:"job_id,omitempty"`
}

func (r StateRequest) String() string {
	return Format(r)
}

// SubmitRequest submits a job. ClientPublicKey and ClientSignature are
// carried as given; they are not computed by this package.
type SubmitRequest struct {
	JobCreatePayload *JobCreatePayload `json:"job_create_payload,omitempty"`
	ClientPublicKey  string            `json:"client_public_key,omitempty"`
	ClientSignature  string            `json:"signature,omitempty"`
}

func (r SubmitRequest) String() string {
	return Format(r)
}

// VersionRequest asks a node for its build version.
type VersionRequest struct {
	ClientID string `json:"client_id,omitempty"`
}
