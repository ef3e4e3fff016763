package formatter

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/bacalhau-project/apiclient/api/types/requester"
)

const (
	defaultEventTableFormat      = "table {{.Time}}\t{{.Type}}\t{{.Node}}\t{{.Transition}}\t{{.Comment}}"
	defaultLocalEventTableFormat = "table {{.Event}}\t{{.JobID}}\t{{.Shard}}\t{{.TargetNode}}"

	timeHeader       = "TIME"
	typeHeader       = "TYPE"
	nodeHeader       = "NODE"
	transitionHeader = "TRANSITION"
	commentHeader    = "COMMENT"
	eventHeader      = "EVENT"
	shardHeader      = "SHARD"
	targetNodeHeader = "TARGET NODE"
)

// NewEventFormat returns a Format for rendering the event log of a job.
func NewEventFormat(source string) Format {
	switch source {
	case TableFormatKey, "":
		return defaultEventTableFormat
	}
	return Format(source)
}

// EventWrite writes the event log of a job.
func EventWrite(ctx Context, events []requester.JobHistory) error {
	render := func(format func(subContext subContext) error) error {
		for i := range events {
			if err := format(&eventContext{trunc: ctx.Trunc, e: events[i]}); err != nil {
				return err
			}
		}
		return nil
	}
	eventCtx := eventContext{}
	eventCtx.header = map[string]string{
		"Time":       timeHeader,
		"Type":       typeHeader,
		"JobID":      jobIDHeader,
		"Node":       nodeHeader,
		"Transition": transitionHeader,
		"Comment":    commentHeader,
	}
	return ctx.Write(&eventCtx, render)
}

type eventContext struct {
	HeaderContext
	trunc bool
	e     requester.JobHistory
}

func (c *eventContext) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.e)
}

func (c *eventContext) Time() string {
	if c.e.Time.IsZero() {
		return ""
	}
	return c.e.Time.UTC().Format(time.RFC3339)
}

func (c *eventContext) Type() string {
	return string(c.e.Type)
}

func (c *eventContext) JobID() string {
	if c.trunc {
		return ShortID(c.e.JobID)
	}
	return c.e.JobID
}

func (c *eventContext) Node() string {
	if c.trunc {
		return ShortID(c.e.NodeID)
	}
	return c.e.NodeID
}

// Transition renders the state change of the entry as "Previous -> New".
func (c *eventContext) Transition() string {
	switch {
	case c.e.JobState != nil:
		return c.e.JobState.Previous.String() + " -> " + c.e.JobState.New.String()
	case c.e.ExecutionState != nil:
		return string(c.e.ExecutionState.Previous) + " -> " + string(c.e.ExecutionState.New)
	}
	return ""
}

func (c *eventContext) Comment() string {
	return c.e.Comment
}

// NewLocalEventFormat returns a Format for rendering node local events.
func NewLocalEventFormat(source string) Format {
	switch source {
	case TableFormatKey, "":
		return defaultLocalEventTableFormat
	}
	return Format(source)
}

// LocalEventWrite writes the events a node recorded locally.
func LocalEventWrite(ctx Context, events []requester.JobLocalEvent) error {
	render := func(format func(subContext subContext) error) error {
		for i := range events {
			if err := format(&localEventContext{trunc: ctx.Trunc, e: events[i]}); err != nil {
				return err
			}
		}
		return nil
	}
	eventCtx := localEventContext{}
	eventCtx.header = map[string]string{
		"Event":      eventHeader,
		"JobID":      jobIDHeader,
		"Shard":      shardHeader,
		"TargetNode": targetNodeHeader,
	}
	return ctx.Write(&eventCtx, render)
}

type localEventContext struct {
	HeaderContext
	trunc bool
	e     requester.JobLocalEvent
}

func (c *localEventContext) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.e)
}

func (c *localEventContext) Event() string {
	return c.e.EventName
}

func (c *localEventContext) JobID() string {
	if c.trunc {
		return ShortID(c.e.JobID)
	}
	return c.e.JobID
}

func (c *localEventContext) Shard() string {
	return strconv.Itoa(c.e.ShardIndex)
}

func (c *localEventContext) TargetNode() string {
	if c.trunc {
		return ShortID(c.e.TargetNodeID)
	}
	return c.e.TargetNodeID
}
