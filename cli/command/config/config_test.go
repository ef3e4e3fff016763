package config

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	cliconfig "github.com/bacalhau-project/apiclient/cli/config"
	"github.com/bacalhau-project/apiclient/cli/internal/test"
	"github.com/pelletier/go-toml"
	"github.com/spf13/cobra"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
	"gotest.tools/v3/fs"
)

const configContent = `host = "tcp://requester.example.com:1234"
client_id = "client-1"

[tls]
  verify = true
  cacert = "/etc/requester/ca.pem"

[options]
  _request_timeout = "5"
`

func loadTestConfig(t *testing.T) *cliconfig.File {
	t.Helper()
	dir := fs.NewDir(t, t.Name(), fs.WithFile(cliconfig.ConfigFileName, configContent))
	cfg, err := cliconfig.LoadFile(filepath.Join(dir.Path(), cliconfig.ConfigFileName))
	assert.NilError(t, err)
	return cfg
}

func TestConfigList(t *testing.T) {
	fakeCli := test.NewFakeCli(nil)
	fakeCli.SetConfigFile(loadTestConfig(t))

	cmd := newListCommand(fakeCli)
	cmd.SetArgs([]string{})
	assert.NilError(t, cmd.Execute())

	var rows [][]string
	for _, line := range strings.Split(strings.TrimSpace(fakeCli.OutBuffer().String()), "\n") {
		rows = append(rows, strings.Fields(line))
	}
	assert.Check(t, is.DeepEqual(rows, [][]string{
		{"KEY", "VALUE"},
		{"client_id", "client-1"},
		{"host", "tcp://requester.example.com:1234"},
		{"options._request_timeout", "5"},
		{"tls.cacert", "/etc/requester/ca.pem"},
		{"tls.verify", "true"},
	}))
}

func TestConfigListQuiet(t *testing.T) {
	fakeCli := test.NewFakeCli(nil)
	fakeCli.SetConfigFile(loadTestConfig(t))

	cmd := newListCommand(fakeCli)
	cmd.SetArgs([]string{"-q"})
	assert.NilError(t, cmd.Execute())
	assert.Check(t, is.Equal(fakeCli.OutBuffer().String(), "client_id\nhost\noptions._request_timeout\ntls.cacert\ntls.verify\n"))
}

func TestConfigListEmpty(t *testing.T) {
	fakeCli := test.NewFakeCli(nil)
	cmd := newListCommand(fakeCli)
	cmd.SetArgs([]string{"--format", "{{.Key}}={{.Value}}"})
	assert.NilError(t, cmd.Execute())
	assert.Check(t, is.Equal(fakeCli.OutBuffer().String(), ""))
}

func TestConfigShow(t *testing.T) {
	cfg := loadTestConfig(t)
	fakeCli := test.NewFakeCli(nil)
	fakeCli.SetConfigFile(cfg)

	cmd := newShowCommand(fakeCli)
	cmd.SetArgs([]string{})
	assert.NilError(t, cmd.Execute())

	var shown cliconfig.File
	assert.NilError(t, toml.Unmarshal(fakeCli.OutBuffer().Bytes(), &shown))
	assert.Check(t, is.Equal(shown.Host, "tcp://requester.example.com:1234"))
	assert.Check(t, is.Equal(shown.ClientID, "client-1"))
	assert.Check(t, shown.TLS.Verify)
	assert.Check(t, is.Equal(shown.TLS.CACert, "/etc/requester/ca.pem"))
	assert.Check(t, is.DeepEqual(shown.Options, map[string]string{"_request_timeout": "5"}))
}

func TestConfigArgs(t *testing.T) {
	fakeCli := test.NewFakeCli(nil)
	for _, cmd := range []*cobra.Command{newListCommand(fakeCli), newShowCommand(fakeCli)} {
		cmd.SetArgs([]string{"extra"})
		cmd.SetOut(io.Discard)
		cmd.SetErr(io.Discard)
		assert.Check(t, is.ErrorContains(cmd.Execute(), "accepts no arguments"), cmd.Name())
	}
}
