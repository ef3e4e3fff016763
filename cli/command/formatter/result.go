package formatter

import (
	"encoding/json"

	"github.com/bacalhau-project/apiclient/api/types/requester"
)

const (
	defaultResultTableFormat = "table {{.Node}}\t{{.Name}}\t{{.Source}}\t{{.Location}}"

	nameHeader     = "NAME"
	sourceHeader   = "SOURCE"
	locationHeader = "LOCATION"
)

// NewResultFormat returns a Format for rendering published results.
func NewResultFormat(source string, quiet bool) Format {
	switch source {
	case TableFormatKey, "":
		if quiet {
			return "{{.Location}}"
		}
		return defaultResultTableFormat
	}
	return Format(source)
}

// ResultWrite writes where the results of a job were published.
func ResultWrite(ctx Context, results []requester.PublishedResult) error {
	render := func(format func(subContext subContext) error) error {
		for i := range results {
			if err := format(&resultContext{trunc: ctx.Trunc, r: results[i]}); err != nil {
				return err
			}
		}
		return nil
	}
	resultCtx := resultContext{}
	resultCtx.header = map[string]string{
		"Node":     nodeHeader,
		"Name":     nameHeader,
		"Source":   sourceHeader,
		"Location": locationHeader,
	}
	return ctx.Write(&resultCtx, render)
}

type resultContext struct {
	HeaderContext
	trunc bool
	r     requester.PublishedResult
}

func (c *resultContext) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.r)
}

func (c *resultContext) Node() string {
	if c.trunc {
		return ShortID(c.r.NodeID)
	}
	return c.r.NodeID
}

func (c *resultContext) Name() string {
	return c.r.Data.Name
}

func (c *resultContext) Source() string {
	return string(c.r.Data.StorageSource)
}

// Location is the CID, URL or path of the published data, in that order.
func (c *resultContext) Location() string {
	switch {
	case c.r.Data.CID != "":
		return c.r.Data.CID
	case c.r.Data.URL != "":
		return c.r.Data.URL
	}
	return c.r.Data.Path
}
