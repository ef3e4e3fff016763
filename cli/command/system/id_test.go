package system

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/bacalhau-project/apiclient/cli/config"
	"github.com/bacalhau-project/apiclient/cli/internal/test"
	"github.com/google/uuid"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
	"gotest.tools/v3/fs"
)

func TestIDExisting(t *testing.T) {
	cli := test.NewFakeCli(&fakeClient{})
	cli.ConfigFile().ClientID = "client-1"
	cmd := newIDCommand(cli)
	cmd.SetArgs([]string{})
	assert.NilError(t, cmd.Execute())
	assert.Check(t, is.Equal(cli.OutBuffer().String(), "client-1\n"))
}

func TestIDGenerated(t *testing.T) {
	dir := fs.NewDir(t, t.Name())
	filename := filepath.Join(dir.Path(), config.ConfigFileName)

	cli := test.NewFakeCli(&fakeClient{})
	cli.SetConfigFile(config.New(filename))
	cmd := newIDCommand(cli)
	cmd.SetArgs([]string{})
	assert.NilError(t, cmd.Execute())

	id := cli.ConfigFile().ClientID
	_, err := uuid.Parse(id)
	assert.NilError(t, err)
	assert.Check(t, is.Equal(cli.OutBuffer().String(), id+"\n"))

	saved, err := config.LoadFile(filename)
	assert.NilError(t, err)
	assert.Check(t, is.Equal(saved.ClientID, id))
}

func TestIDSaveError(t *testing.T) {
	cmd := newIDCommand(test.NewFakeCli(&fakeClient{}))
	cmd.SetArgs([]string{})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	assert.ErrorContains(t, cmd.Execute(), "can't save config with empty filename")
}
