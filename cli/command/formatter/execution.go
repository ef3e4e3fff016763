package formatter

import (
	"encoding/json"
	"strconv"

	"github.com/bacalhau-project/apiclient/api/types/requester"
)

const (
	defaultExecutionTableFormat = "table {{.Node}}\t{{.State}}\t{{.Status}}\t{{.Version}}\t{{.Updated}}"

	statusHeader  = "STATUS"
	versionHeader = "VERSION"
	updatedHeader = "UPDATED"
)

// NewExecutionFormat returns a Format for rendering the executions of a job.
func NewExecutionFormat(source string) Format {
	switch source {
	case TableFormatKey, "":
		return defaultExecutionTableFormat
	}
	return Format(source)
}

// ExecutionWrite writes the executions of a job.
func ExecutionWrite(ctx Context, executions []requester.ExecutionState) error {
	render := func(format func(subContext subContext) error) error {
		for i := range executions {
			if err := format(&executionContext{trunc: ctx.Trunc, e: executions[i]}); err != nil {
				return err
			}
		}
		return nil
	}
	execCtx := executionContext{}
	execCtx.header = map[string]string{
		"JobID":   jobIDHeader,
		"Node":    nodeHeader,
		"State":   stateHeader,
		"Status":  statusHeader,
		"Version": versionHeader,
		"Updated": updatedHeader,
	}
	return ctx.Write(&execCtx, render)
}

type executionContext struct {
	HeaderContext
	trunc bool
	e     requester.ExecutionState
}

func (c *executionContext) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.e)
}

func (c *executionContext) JobID() string {
	if c.trunc {
		return ShortID(c.e.JobID)
	}
	return c.e.JobID
}

func (c *executionContext) Node() string {
	if c.trunc {
		return ShortID(c.e.NodeID)
	}
	return c.e.NodeID
}

func (c *executionContext) State() string {
	return string(c.e.State)
}

func (c *executionContext) Status() string {
	return c.e.Status
}

func (c *executionContext) Version() string {
	return strconv.Itoa(c.e.Version)
}

func (c *executionContext) Updated() string {
	return humanTime(c.e.UpdateTime)
}
