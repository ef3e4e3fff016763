package formatter

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/bacalhau-project/apiclient/api/types/requester"
	units "github.com/docker/go-units"
)

const (
	defaultNodeTableFormat = "table {{.ID}}\t{{.Type}}\t{{.Engines}}\t{{.Running}}\t{{.CPU}}\t{{.Memory}}\t{{.Disk}}"

	peerIDHeader  = "PEER ID"
	enginesHeader = "ENGINES"
	runningHeader = "RUNNING"
	cpuHeader     = "CPU"
	memoryHeader  = "MEMORY"
	diskHeader    = "DISK"
	labelsHeader  = "LABELS"
)

// NewNodeFormat returns a Format for rendering node information.
func NewNodeFormat(source string) Format {
	switch source {
	case TableFormatKey, "":
		return defaultNodeTableFormat
	}
	return Format(source)
}

// NodeWrite writes the information a node publishes about itself. Capacity
// columns show the available capacity of compute nodes.
func NodeWrite(ctx Context, nodes []requester.NodeInfo) error {
	render := func(format func(subContext subContext) error) error {
		for i := range nodes {
			if err := format(&nodeContext{trunc: ctx.Trunc, n: nodes[i]}); err != nil {
				return err
			}
		}
		return nil
	}
	nodeCtx := nodeContext{}
	nodeCtx.header = map[string]string{
		"ID":      peerIDHeader,
		"Type":    typeHeader,
		"Engines": enginesHeader,
		"Running": runningHeader,
		"CPU":     cpuHeader,
		"Memory":  memoryHeader,
		"Disk":    diskHeader,
		"Labels":  labelsHeader,
	}
	return ctx.Write(&nodeCtx, render)
}

type nodeContext struct {
	HeaderContext
	trunc bool
	n     requester.NodeInfo
}

func (c *nodeContext) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.n)
}

func (c *nodeContext) ID() string {
	if c.n.PeerInfo == nil {
		return ""
	}
	if c.trunc {
		return ShortID(c.n.PeerInfo.ID)
	}
	return c.n.PeerInfo.ID
}

func (c *nodeContext) Type() string {
	return string(c.n.NodeType)
}

func (c *nodeContext) Engines() string {
	if c.n.ComputeNodeInfo == nil {
		return ""
	}
	engines := make([]string, 0, len(c.n.ComputeNodeInfo.ExecutionEngines))
	for _, e := range c.n.ComputeNodeInfo.ExecutionEngines {
		engines = append(engines, string(e))
	}
	return strings.Join(engines, ",")
}

func (c *nodeContext) Running() string {
	if c.n.ComputeNodeInfo == nil {
		return ""
	}
	return strconv.Itoa(c.n.ComputeNodeInfo.RunningExecutions)
}

func (c *nodeContext) CPU() string {
	if c.n.ComputeNodeInfo == nil {
		return ""
	}
	return strconv.FormatFloat(c.n.ComputeNodeInfo.AvailableCapacity.CPU, 'f', -1, 64)
}

func (c *nodeContext) Memory() string {
	if c.n.ComputeNodeInfo == nil {
		return ""
	}
	return units.BytesSize(float64(c.n.ComputeNodeInfo.AvailableCapacity.Memory))
}

func (c *nodeContext) Disk() string {
	if c.n.ComputeNodeInfo == nil {
		return ""
	}
	return units.BytesSize(float64(c.n.ComputeNodeInfo.AvailableCapacity.Disk))
}

func (c *nodeContext) Labels() string {
	labels := make([]string, 0, len(c.n.Labels))
	for k, v := range c.n.Labels {
		labels = append(labels, k+"="+v)
	}
	sort.Strings(labels)
	return strings.Join(labels, ",")
}
