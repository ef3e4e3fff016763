package formatter

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/bacalhau-project/apiclient/api/types/requester"
	units "github.com/docker/go-units"
)

const (
	defaultJobTableFormat = "table {{.ID}}\t{{.Created}}\t{{.Engine}}\t{{.Image}}\t{{.State}}\t{{.Publisher}}"

	jobIDHeader       = "JOB ID"
	createdHeader     = "CREATED"
	engineHeader      = "ENGINE"
	imageHeader       = "IMAGE"
	stateHeader       = "STATE"
	publisherHeader   = "PUBLISHER"
	concurrencyHeader = "CONCURRENCY"
	clientIDHeader    = "CLIENT ID"

	shortIDLength = 8
)

// NewJobFormat returns a Format for rendering jobs.
func NewJobFormat(source string, quiet bool) Format {
	switch source {
	case TableFormatKey, "":
		if quiet {
			return defaultQuietFormat
		}
		return defaultJobTableFormat
	}
	return Format(source)
}

// JobWrite writes the jobs in the format of the context.
func JobWrite(ctx Context, jobs []*requester.Job) error {
	render := func(format func(subContext subContext) error) error {
		for _, j := range jobs {
			if j == nil {
				continue
			}
			if err := format(&jobContext{trunc: ctx.Trunc, j: j}); err != nil {
				return err
			}
		}
		return nil
	}
	jobCtx := jobContext{}
	jobCtx.header = map[string]string{
		"ID":          jobIDHeader,
		"Created":     createdHeader,
		"Engine":      engineHeader,
		"Image":       imageHeader,
		"State":       stateHeader,
		"Publisher":   publisherHeader,
		"Concurrency": concurrencyHeader,
		"ClientID":    clientIDHeader,
	}
	return ctx.Write(&jobCtx, render)
}

type jobContext struct {
	HeaderContext
	trunc bool
	j     *requester.Job
}

func (c *jobContext) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.j)
}

func (c *jobContext) ID() string {
	if c.trunc {
		return ShortID(c.j.Metadata.ID)
	}
	return c.j.Metadata.ID
}

func (c *jobContext) ClientID() string {
	return c.j.Metadata.ClientID
}

func (c *jobContext) Created() string {
	return humanTime(c.j.Metadata.CreatedAt)
}

func (c *jobContext) Engine() string {
	return string(c.j.Spec.Engine)
}

func (c *jobContext) Image() string {
	switch {
	case c.j.Spec.Docker != nil:
		return c.j.Spec.Docker.Image
	case c.j.Spec.Wasm != nil:
		m := c.j.Spec.Wasm.EntryModule
		if m.Name != "" {
			return m.Name
		}
		if m.CID != "" {
			return m.CID
		}
		return m.URL
	}
	return ""
}

func (c *jobContext) State() string {
	if c.j.Status.JobState == nil {
		return ""
	}
	return c.j.Status.JobState.State.String()
}

func (c *jobContext) Publisher() string {
	return string(c.j.Spec.Publisher)
}

func (c *jobContext) Concurrency() string {
	return strconv.Itoa(c.j.Spec.Deal.Concurrency)
}

// ShortID returns the leading part of a job or node ID.
func ShortID(id string) string {
	if len(id) > shortIDLength {
		return id[:shortIDLength]
	}
	return id
}

func humanTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return units.HumanDuration(time.Now().UTC().Sub(t)) + " ago"
}
