package command

import (
	"maps"

	"github.com/bacalhau-project/apiclient/cli/config"
	"github.com/bacalhau-project/apiclient/client"
)

// ParseCallOptions merges the raw options of the configuration file with
// flagOpts, flagOpts winning, and parses the result. Unknown keys are
// reported before any request is made.
func ParseCallOptions(cfg *config.File, flagOpts map[string]string) (client.RawOptions, error) {
	m := make(map[string]string, len(flagOpts))
	if cfg != nil {
		maps.Copy(m, cfg.Options)
	}
	maps.Copy(m, flagOpts)
	return client.ParseCallOptions(m)
}
