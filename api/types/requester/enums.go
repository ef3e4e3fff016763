package requester

import (
	"fmt"
	"slices"
	"strings"
)

// NodeType is the role a node plays in the network.
type NodeType string

const (
	NodeTypeRequester NodeType = "Requester" // NodeTypeRequester accepts jobs from clients and schedules them.
	NodeTypeCompute   NodeType = "Compute"   // NodeTypeCompute bids on and executes jobs.
)

var validNodeTypes = []NodeType{NodeTypeRequester, NodeTypeCompute}

// UnmarshalText implements [encoding.TextUnmarshaler]. Unknown node types
// are rejected.
func (t *NodeType) UnmarshalText(b []byte) error {
	return decodeEnum(t, "node type", b, validNodeTypes)
}

// decodeEnum sets *dst to the member of valid named b. Names match exactly,
// so a decoded value always equals the one that was encoded.
func decodeEnum[T ~string](dst *T, kind string, b []byte, valid []T) error {
	v := T(b)
	if !slices.Contains(valid, v) {
		names := make([]string, 0, len(valid))
		for _, e := range valid {
			names = append(names, string(e))
		}
		return errInvalidParameter{fmt.Errorf("invalid %s (%s): must be one of %s", kind, v, strings.Join(names, ", "))}
	}
	*dst = v
	return nil
}

// Engine is the execution engine a job runs on.
type Engine string

const (
	EngineNoop   Engine = "Noop"
	EngineDocker Engine = "Docker"
	EngineWasm   Engine = "Wasm"
)

var validEngines = []Engine{EngineNoop, EngineDocker, EngineWasm}

// UnmarshalText implements [encoding.TextUnmarshaler]. Only the exact
// engine names are accepted.
func (e *Engine) UnmarshalText(b []byte) error {
	return decodeEnum(e, "engine", b, validEngines)
}

// ParseEngine returns the [Engine] with the given name. Matching is
// case-insensitive, for names typed by users.
func ParseEngine(s string) (Engine, error) {
	for _, e := range validEngines {
		if strings.EqualFold(string(e), s) {
			return e, nil
		}
	}
	return "", errInvalidParameter{fmt.Errorf("invalid engine (%s): must be one of Noop, Docker, Wasm", s)}
}

// Publisher is the component that publishes the results of a job.
type Publisher string

const (
	PublisherNoop     Publisher = "Noop"
	PublisherIpfs     Publisher = "Ipfs"
	PublisherEstuary  Publisher = "Estuary"
	PublisherS3       Publisher = "S3"
	PublisherFilecoin Publisher = "Filecoin"
)

var validPublishers = []Publisher{PublisherNoop, PublisherIpfs, PublisherEstuary, PublisherS3, PublisherFilecoin}

// UnmarshalText implements [encoding.TextUnmarshaler]. Only the exact
// publisher names are accepted.
func (p *Publisher) UnmarshalText(b []byte) error {
	return decodeEnum(p, "publisher", b, validPublishers)
}

// ParsePublisher returns the [Publisher] with the given name. Matching is
// case-insensitive, for names typed by users.
func ParsePublisher(s string) (Publisher, error) {
	for _, p := range validPublishers {
		if strings.EqualFold(string(p), s) {
			return p, nil
		}
	}
	return "", errInvalidParameter{fmt.Errorf("invalid publisher (%s): must be one of Noop, Ipfs, Estuary, S3, Filecoin", s)}
}

// StorageSourceType is where job inputs are read from or outputs written to.
type StorageSourceType string

const (
	StorageSourceIPFS           StorageSourceType = "ipfs"
	StorageSourceURLDownload    StorageSourceType = "urlDownload"
	StorageSourceRepoClone      StorageSourceType = "repoClone"
	StorageSourceS3             StorageSourceType = "s3"
	StorageSourceInline         StorageSourceType = "inline"
	StorageSourceLocalDirectory StorageSourceType = "localDirectory"
)

var validStorageSources = []StorageSourceType{
	StorageSourceIPFS,
	StorageSourceURLDownload,
	StorageSourceRepoClone,
	StorageSourceS3,
	StorageSourceInline,
	StorageSourceLocalDirectory,
}

// UnmarshalText implements [encoding.TextUnmarshaler]. Unknown storage
// sources are rejected.
func (t *StorageSourceType) UnmarshalText(b []byte) error {
	return decodeEnum(t, "storage source", b, validStorageSources)
}

// Network is the kind of networking a job is granted.
type Network string

const (
	NetworkNone Network = "None"
	NetworkFull Network = "Full"
	NetworkHTTP Network = "HTTP"
)

// UnmarshalText implements [encoding.TextUnmarshaler]. Unknown network
// types are rejected.
func (n *Network) UnmarshalText(b []byte) error {
	return decodeEnum(n, "network type", b, []Network{NetworkNone, NetworkFull, NetworkHTTP})
}

// TargetingMode decides how many nodes a job is scheduled on.
type TargetingMode bool

const (
	TargetAny TargetingMode = false
	TargetAll TargetingMode = true
)

// ExecutionStateType is the state of one execution of a job on a compute node.
type ExecutionStateType string

const (
	ExecutionStateNew               ExecutionStateType = "New"
	ExecutionStateAskForBid         ExecutionStateType = "AskForBid"
	ExecutionStateAskForBidAccepted ExecutionStateType = "AskForBidAccepted"
	ExecutionStateAskForBidRejected ExecutionStateType = "AskForBidRejected"
	ExecutionStateBidAccepted       ExecutionStateType = "BidAccepted"
	ExecutionStateBidRejected       ExecutionStateType = "BidRejected"
	ExecutionStateResultProposed    ExecutionStateType = "ResultProposed"
	ExecutionStateResultAccepted    ExecutionStateType = "ResultAccepted"
	ExecutionStateResultRejected    ExecutionStateType = "ResultRejected"
	ExecutionStateCompleted         ExecutionStateType = "Completed"
	ExecutionStateFailed            ExecutionStateType = "Failed"
	ExecutionStateCancelled         ExecutionStateType = "Cancelled"
)

var validExecutionStates = []ExecutionStateType{
	ExecutionStateNew,
	ExecutionStateAskForBid,
	ExecutionStateAskForBidAccepted,
	ExecutionStateAskForBidRejected,
	ExecutionStateBidAccepted,
	ExecutionStateBidRejected,
	ExecutionStateResultProposed,
	ExecutionStateResultAccepted,
	ExecutionStateResultRejected,
	ExecutionStateCompleted,
	ExecutionStateFailed,
	ExecutionStateCancelled,
}

// UnmarshalText implements [encoding.TextUnmarshaler]. Unknown execution
// states are rejected.
func (s *ExecutionStateType) UnmarshalText(b []byte) error {
	return decodeEnum(s, "execution state", b, validExecutionStates)
}

// IsTerminal reports whether no further transitions are expected.
func (s ExecutionStateType) IsTerminal() bool {
	switch s {
	case ExecutionStateBidRejected, ExecutionStateResultRejected, ExecutionStateCompleted, ExecutionStateFailed, ExecutionStateCancelled:
		return true
	default:
		return false
	}
}
