package requester

import "time"

// Job is a unit of work submitted to the network.
type Job struct {
	APIVersion string    `json:"APIVersion,omitempty"`
	Metadata   Metadata  `json:"Metadata,omitzero"`
	Spec       Spec      `json:"Spec,omitzero"`
	Status     JobStatus `json:"Status,omitzero"`
}

func (j Job) String() string {
	return Format(j)
}

// Metadata identifies a job and its owner.
type Metadata struct {
	ID        string       `json:"ID,omitempty"`
	CreatedAt time.Time    `json:"CreatedAt,omitzero"`
	ClientID  string       `json:"ClientID,omitempty"`
	Requester JobRequester `json:"Requester,omitzero"`
}

// JobRequester is the requester node that accepted a job.
type JobRequester struct {
	RequesterNodeID    string `json:"RequesterNodeID,omitempty"`
	RequesterPublicKey string `json:"RequesterPublicKey,omitempty"`
}

// JobStatus is the status block of a [Job].
type JobStatus struct {
	JobState  *JobState    `json:"JobState,omitempty"`
	Requester JobRequester `json:"Requester,omitzero"`
}

// Spec is what a job runs and how.
type Spec struct {
	Engine        Engine              `json:"Engine,omitempty"`
	Docker        *JobSpecDocker      `json:"Docker,omitempty"`
	Wasm          *JobSpecWasm        `json:"Wasm,omitempty"`
	Publisher     Publisher           `json:"Publisher,omitempty"`
	PublisherSpec PublisherSpec       `json:"PublisherSpec,omitzero"`
	Resources     ResourceUsageConfig `json:"Resources,omitzero"`
	Network       NetworkConfig       `json:"Network,omitzero"`
	// Timeout in seconds.
	Timeout              float64                    `json:"Timeout,omitempty"`
	Inputs               []StorageSpec              `json:"inputs,omitempty"`
	Outputs              []StorageSpec              `json:"outputs,omitempty"`
	Annotations          []string                   `json:"Annotations,omitempty"`
	NodeSelectors        []LabelSelectorRequirement `json:"NodeSelectors,omitempty"`
	Deal                 Deal                       `json:"Deal,omitzero"`
	EnvironmentVariables map[string]string          `json:"EnvironmentVariables,omitempty"`
}

// JobSpecDocker is the docker engine section of a [Spec].
type JobSpecDocker struct {
	Image            string   `json:"Image,omitempty"`
	Entrypoint       []string `json:"Entrypoint,omitempty"`
	Parameters       []string `json:"Parameters,omitempty"`
	WorkingDirectory string   `json:"WorkingDirectory,omitempty"`
}

// JobSpecWasm is the wasm engine section of a [Spec].
type JobSpecWasm struct {
	EntryModule   StorageSpec   `json:"EntryModule,omitzero"`
	EntryPoint    string        `json:"EntryPoint,omitempty"`
	Parameters    []string      `json:"Parameters,omitempty"`
	ImportModules []StorageSpec `json:"ImportModules,omitempty"`
}

// PublisherSpec configures the result publisher.
type PublisherSpec struct {
	Type   Publisher         `json:"Type,omitempty"`
	Params map[string]string `json:"Params,omitempty"`
}

// ResourceUsageConfig is the resources a job asks for, in human readable
// units ("500m", "1Gb").
type ResourceUsageConfig struct {
	CPU    string `json:"CPU,omitempty"`
	Memory string `json:"Memory,omitempty"`
	Disk   string `json:"Disk,omitempty"`
	GPU    string `json:"GPU,omitempty"`
}

// NetworkConfig is the network access granted to a job.
type NetworkConfig struct {
	Type    Network  `json:"Type,omitempty"`
	Domains []string `json:"Domains,omitempty"`
}

// StorageSpec points at data a job reads or writes.
type StorageSpec struct {
	StorageSource StorageSourceType `json:"StorageSource,omitempty"`
	Name          string            `json:"Name,omitempty"`
	CID           string            `json:"CID,omitempty"`
	URL           string            `json:"URL,omitempty"`
	Repo          string            `json:"Repo,omitempty"`
	Path          string            `json:"Path,omitempty"`
	Metadata      map[string]string `json:"Metadata,omitempty"`
}

// LabelSelectorRequirement restricts the nodes a job may run on.
type LabelSelectorRequirement struct {
	Key string `json:"Key,omitempty"`
	// Operator is one of "=", "!=", "in", "notin", "exists", "!".
	Operator string   `json:"Operator,omitempty"`
	Values   []string `json:"Values,omitempty"`
}

// Deal is the agreement on how many nodes run a job.
type Deal struct {
	TargetingMode TargetingMode `json:"TargetingMode,omitempty"`
	Concurrency   int           `json:"Concurrency,omitempty"`
	Confidence    int           `json:"Confidence,omitempty"`
	MinBids       int           `json:"MinBids,omitempty"`
}

// JobCreatePayload is the body of a submit request.
type JobCreatePayload struct {
	ClientID   string `json:"ClientID,omitempty"`
	APIVersion string `json:"APIVersion,omitempty"`
	Spec       *Spec  `json:"Spec,omitempty"`
}
