// Package test provides a fake command line client for testing commands.
package test

import (
	"bytes"
	"io"

	"github.com/bacalhau-project/apiclient/cli/command"
	"github.com/bacalhau-project/apiclient/cli/config"
	"github.com/bacalhau-project/apiclient/client"
)

// FakeCli emulates the default RequesterCli
type FakeCli struct {
	client     client.APIClient
	configFile *config.File
	out        *command.OutStream
	outBuffer  *bytes.Buffer
	err        *bytes.Buffer
}

// NewFakeCli returns a Cli backed by the fakeCli
func NewFakeCli(c client.APIClient) *FakeCli {
	outBuffer := new(bytes.Buffer)
	return &FakeCli{
		client:     c,
		out:        command.NewOutStream(outBuffer),
		outBuffer:  outBuffer,
		err:        new(bytes.Buffer),
		configFile: config.New(""),
	}
}

// SetConfigFile sets the "fake" config file
func (c *FakeCli) SetConfigFile(cf *config.File) {
	c.configFile = cf
}

// Client returns a client for interacting with the requester node
func (c *FakeCli) Client() client.APIClient {
	return c.client
}

// Out returns the output stream (stdout) the cli should write on
func (c *FakeCli) Out() *command.OutStream {
	return c.out
}

// Err returns the output stream (stderr) the cli should write on
func (c *FakeCli) Err() io.Writer {
	return c.err
}

// ConfigFile returns the cli configfile object (to get client configuration)
func (c *FakeCli) ConfigFile() *config.File {
	return c.configFile
}

// OutBuffer returns the stdout buffer
func (c *FakeCli) OutBuffer() *bytes.Buffer {
	return c.outBuffer
}

// ErrBuffer returns the stderr buffer
func (c *FakeCli) ErrBuffer() *bytes.Buffer {
	return c.err
}
