package requester

// NodeInfo describes a node of the network and what it is able to run.
type NodeInfo struct {
	ComputeNodeInfo *ComputeNodeInfo  `json:"ComputeNodeInfo,omitempty"`
	Labels          map[string]string `json:"Labels,omitempty"`
	NodeType        NodeType          `json:"NodeType,omitempty"`
	PeerInfo        *PeerAddrInfo     `json:"PeerInfo,omitempty"`
}

func (n NodeInfo) String() string {
	return Format(n)
}

// ComputeNodeInfo is the part of [NodeInfo] only compute nodes publish.
type ComputeNodeInfo struct {
	ExecutionEngines   []Engine            `json:"ExecutionEngines,omitempty"`
	Publishers         []Publisher         `json:"Publishers,omitempty"`
	StorageSources     []StorageSourceType `json:"StorageSources,omitempty"`
	MaxCapacity        ResourceUsageData   `json:"MaxCapacity,omitzero"`
	AvailableCapacity  ResourceUsageData   `json:"AvailableCapacity,omitzero"`
	MaxJobRequirements ResourceUsageData   `json:"MaxJobRequirements,omitzero"`
	RunningExecutions  int                 `json:"RunningExecutions,omitempty"`
	EnqueuedExecutions int                 `json:"EnqueuedExecutions,omitempty"`
}

// PeerAddrInfo is the network identity of a node.
type PeerAddrInfo struct {
	ID    string   `json:"ID,omitempty"`
	Addrs []string `json:"Addrs,omitempty"`
}

// ResourceUsageData is an amount of compute resources.
type ResourceUsageData struct {
	// CPU units, fractional values allowed.
	CPU float64 `json:"CPU,omitempty"`
	// Memory in bytes.
	Memory uint64 `json:"Memory,omitempty"`
	// Disk in bytes.
	Disk uint64 `json:"Disk,omitempty"`
	GPU  uint64 `json:"GPU,omitempty"`
}
