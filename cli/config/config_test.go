package config

import (
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
	"gotest.tools/v3/env"
	"gotest.tools/v3/fs"
)

func TestEmptyConfigDir(t *testing.T) {
	tmpHome := fs.NewDir(t, t.Name())
	defer tmpHome.Remove()
	defer resetConfigDir()

	SetDir(tmpHome.Path())

	config, err := Load("")
	assert.NilError(t, err)
	assert.Check(t, is.Equal(config.Filename, filepath.Join(tmpHome.Path(), ConfigFileName)))
	assert.Check(t, is.Equal(config.Host, ""))
}

func TestDirFromEnv(t *testing.T) {
	defer resetConfigDir()
	resetConfigDir()
	defer env.Patch(t, EnvOverrideConfigDir, "/etc/requesterctl")()

	assert.Check(t, is.Equal(Dir(), "/etc/requesterctl"))
}

func TestDirDefault(t *testing.T) {
	defer resetConfigDir()
	resetConfigDir()
	defer env.Patch(t, EnvOverrideConfigDir, "")()
	defer env.Patch(t, "HOME", "/home/someone")()

	assert.Check(t, is.Equal(Dir(), filepath.Join("/home/someone", ".requesterctl")))
}

func TestLoadFile(t *testing.T) {
	dir := fs.NewDir(t, t.Name(), fs.WithFile(ConfigFileName, `
host = "tcp://10.0.0.1:1234"
client_id = "client-1"
timeout = "30s"

[tls]
enabled = true
cacert = "/certs/ca.pem"

[options]
_request_timeout = "10"
`))
	defer dir.Remove()

	config, err := Load(dir.Path())
	assert.NilError(t, err)
	assert.Check(t, is.DeepEqual(config, &File{
		Host:     "tcp://10.0.0.1:1234",
		ClientID: "client-1",
		Timeout:  "30s",
		TLS:      TLSConfig{Enabled: true, CACert: "/certs/ca.pem"},
		Options:  map[string]string{"_request_timeout": "10"},
		Filename: dir.Join(ConfigFileName),
	}))
}

func TestLoadInvalidFile(t *testing.T) {
	dir := fs.NewDir(t, t.Name(), fs.WithFile(ConfigFileName, `host = `))
	defer dir.Remove()

	_, err := Load(dir.Path())
	assert.Check(t, is.ErrorContains(err, "failed to parse configuration file"))
}

func TestSaveCreatesDirectory(t *testing.T) {
	dir := fs.NewDir(t, t.Name())
	defer dir.Remove()

	fn := filepath.Join(dir.Path(), ".requesterctl", ConfigFileName)
	config := New(fn)
	config.Host = "unix:///var/run/requester.sock"
	config.ClientID = "4a7c4a83-99f1-4a8f-a63d-7e1b3c7b3a11"
	assert.NilError(t, config.Save())

	st, err := os.Stat(fn)
	assert.NilError(t, err)
	assert.Check(t, is.Equal(st.Mode().Perm(), os.FileMode(0o600)))

	loaded, err := LoadFile(fn)
	assert.NilError(t, err)
	assert.Check(t, is.Equal(loaded.Host, config.Host))
	assert.Check(t, is.Equal(loaded.ClientID, config.ClientID))
}

func TestSaveEmptyFilename(t *testing.T) {
	err := (&File{Host: "tcp://127.0.0.1:1234"}).Save()
	assert.Check(t, is.Error(err, "can't save config with empty filename"))
}

func TestMerge(t *testing.T) {
	config := &File{
		Host:     "tcp://10.0.0.1:1234",
		ClientID: "client-1",
		Options:  map[string]string{"_preload_content": "false"},
		Filename: "/tmp/config.toml",
	}
	err := config.Merge(File{
		Host:     "tcp://10.0.0.2:1234",
		Timeout:  "5s",
		Filename: "/elsewhere/config.toml",
	})
	assert.NilError(t, err)
	assert.Check(t, is.DeepEqual(config, &File{
		Host:     "tcp://10.0.0.2:1234",
		ClientID: "client-1",
		Timeout:  "5s",
		Options:  map[string]string{"_preload_content": "false"},
		Filename: "/tmp/config.toml",
	}))
}

func TestSettings(t *testing.T) {
	cfg := New("")
	cfg.Host = "tcp://127.0.0.1:1234"
	cfg.TLS.Verify = true
	cfg.Options = map[string]string{"_request_timeout": "5"}

	settings, err := cfg.Settings()
	assert.NilError(t, err)
	assert.Check(t, is.DeepEqual(settings, map[string]string{
		"host":                     "tcp://127.0.0.1:1234",
		"tls.verify":               "true",
		"options._request_timeout": "5",
	}))

	settings, err = New("").Settings()
	assert.NilError(t, err)
	assert.Check(t, is.Len(settings, 0))
}
