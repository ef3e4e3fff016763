// Package config loads and saves the requesterctl configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"dario.cat/mergo"
	"github.com/moby/sys/atomicwriter"
	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

const (
	// ConfigFileName is the name of the configuration file inside the
	// configuration directory.
	ConfigFileName = "config.toml"
	// EnvOverrideConfigDir overrides the configuration directory.
	EnvOverrideConfigDir = "REQUESTER_CONFIG"

	configFileDir = ".requesterctl"
)

var (
	initConfigDir = new(sync.Once)
	configDir     string
)

// resetConfigDir is used in testing to reset the "configDir" package variable
// and its sync.Once to force re-lookup between tests.
func resetConfigDir() {
	configDir = ""
	initConfigDir = new(sync.Once)
}

func setConfigDir() {
	if configDir != "" {
		return
	}
	configDir = os.Getenv(EnvOverrideConfigDir)
	if configDir != "" {
		return
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	configDir = filepath.Join(home, configFileDir)
}

// Dir returns the directory the configuration file is stored in.
func Dir() string {
	initConfigDir.Do(setConfigDir)
	return configDir
}

// SetDir sets the directory the configuration file is stored in.
func SetDir(dir string) {
	initConfigDir.Do(func() {})
	configDir = filepath.Clean(dir)
}

// File is the content of the configuration file. Zero fields are not
// written.
type File struct {
	Host     string `toml:"host,omitempty"`
	ClientID string `toml:"client_id,omitempty"`
	// Timeout is a Go duration applied to every request.
	Timeout string    `toml:"timeout,omitempty"`
	TLS     TLSConfig `toml:"tls,omitempty"`
	// Options are raw call options applied to every request, as with
	// --opt.
	Options map[string]string `toml:"options,omitempty"`

	Filename string `toml:"-"`
}

// TLSConfig is the [tls] table of the configuration file.
type TLSConfig struct {
	Enabled bool   `toml:"enabled,omitempty"`
	Verify  bool   `toml:"verify,omitempty"`
	CACert  string `toml:"cacert,omitempty"`
	Cert    string `toml:"cert,omitempty"`
	Key     string `toml:"key,omitempty"`
}

// New returns an empty configuration bound to fn.
func New(fn string) *File {
	return &File{Filename: fn}
}

// Load reads the configuration file from dir, or from [Dir] when dir is
// empty. A missing file yields an empty configuration.
func Load(dir string) (*File, error) {
	if dir == "" {
		dir = Dir()
	}
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads the configuration file fn. A missing file yields an empty
// configuration.
func LoadFile(fn string) (*File, error) {
	cfg := New(fn)
	data, err := os.ReadFile(fn)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "failed to read configuration file %s", fn)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return cfg, errors.Wrapf(err, "failed to parse configuration file %s", fn)
	}
	cfg.Filename = fn
	return cfg, nil
}

// Merge overlays the non-zero fields of overrides onto f.
func (f *File) Merge(overrides File) error {
	fn := f.Filename
	overrides.Filename = ""
	if err := mergo.Merge(f, overrides, mergo.WithOverride); err != nil {
		return errors.Wrap(err, "failed to merge configuration")
	}
	f.Filename = fn
	return nil
}

// Encode returns f in the TOML format of the configuration file.
func (f *File) Encode() ([]byte, error) {
	data, err := toml.Marshal(f)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode configuration")
	}
	return data, nil
}

// Settings returns the values set in f keyed by their dotted TOML path,
// such as "tls.verify" or "options._request_timeout".
func (f *File) Settings() (map[string]string, error) {
	data, err := f.Encode()
	if err != nil {
		return nil, err
	}
	tree, err := toml.LoadBytes(data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse encoded configuration")
	}
	settings := map[string]string{}
	flatten("", tree.ToMap(), settings)
	return settings, nil
}

func flatten(prefix string, m map[string]any, out map[string]string) {
	for k, v := range m {
		if sub, ok := v.(map[string]any); ok {
			flatten(prefix+k+".", sub, out)
			continue
		}
		out[prefix+k] = fmt.Sprint(v)
	}
}

// Save writes f to its file, creating the directory if needed.
func (f *File) Save() error {
	if f.Filename == "" {
		return errors.New("can't save config with empty filename")
	}
	data, err := f.Encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.Filename), 0o700); err != nil {
		return err
	}
	return atomicwriter.WriteFile(f.Filename, data, 0o600)
}
