package formatter

import (
	"encoding/json"
	"sort"
)

const (
	defaultConfigTableFormat = "table {{.Key}}\t{{.Value}}"

	keyHeader   = "KEY"
	valueHeader = "VALUE"
)

// NewConfigFormat returns a Format for rendering configuration settings.
func NewConfigFormat(source string, quiet bool) Format {
	switch source {
	case TableFormatKey, "":
		if quiet {
			return "{{.Key}}"
		}
		return defaultConfigTableFormat
	}
	return Format(source)
}

// ConfigWrite writes settings sorted by key.
func ConfigWrite(ctx Context, settings map[string]string) error {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	render := func(format func(subContext subContext) error) error {
		for _, k := range keys {
			if err := format(&configContext{key: k, value: settings[k]}); err != nil {
				return err
			}
		}
		return nil
	}
	configCtx := configContext{}
	configCtx.header = map[string]string{
		"Key":   keyHeader,
		"Value": valueHeader,
	}
	return ctx.Write(&configCtx, render)
}

type configContext struct {
	HeaderContext
	key   string
	value string
}

func (c *configContext) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"Key": c.key, "Value": c.value})
}

func (c *configContext) Key() string {
	return c.key
}

func (c *configContext) Value() string {
	return c.value
}
