// Package jobspec builds job specifications to submit to a requester node.
package jobspec

import (
	"fmt"
	"maps"
	"path"
	"time"

	"github.com/bacalhau-project/apiclient/api/types/requester"
	cerrdefs "github.com/containerd/errdefs"
	units "github.com/docker/go-units"
)

// DefaultTimeout is the execution timeout of a job made by [MakeSpec].
const DefaultTimeout = 30 * time.Minute

var defaultSpec = requester.Spec{
	Engine:    requester.EngineNoop,
	Publisher: requester.PublisherNoop,
	PublisherSpec: requester.PublisherSpec{
		Type: requester.PublisherNoop,
	},
	Network: requester.NetworkConfig{
		Type: requester.NetworkNone,
	},
	Timeout: DefaultTimeout.Seconds(),
	Deal: requester.Deal{
		Concurrency: 1,
	},
}

// SpecOpt modifies a spec under construction.
type SpecOpt func(*requester.Spec) error

// MakeSpec returns a spec with the defaults applied, then opts in order: the
// noop engine and publisher, no network access, [DefaultTimeout] and a
// concurrency of one.
func MakeSpec(opts ...SpecOpt) (requester.Spec, error) {
	spec, err := requester.Clone(defaultSpec)
	if err != nil {
		return requester.Spec{}, err
	}
	for _, opt := range opts {
		if err := opt(&spec); err != nil {
			return requester.Spec{}, err
		}
	}
	return spec, nil
}

// MakeDockerSpec returns a spec running image on the docker engine.
func MakeDockerSpec(image, workdir string, entrypoint, parameters []string, opts ...SpecOpt) (requester.Spec, error) {
	return MakeSpec(append(opts, WithDockerEngine(image, workdir, entrypoint, parameters))...)
}

// MakeWasmSpec returns a spec running entryModule on the wasm engine.
func MakeWasmSpec(entryModule requester.StorageSpec, entrypoint string, parameters []string, importModules []requester.StorageSpec, opts ...SpecOpt) (requester.Spec, error) {
	return MakeSpec(append(opts, WithWasmEngine(entryModule, entrypoint, parameters, importModules))...)
}

// WithDockerEngine runs the job in a container. workdir, when set, must be
// an absolute path.
func WithDockerEngine(image, workdir string, entrypoint, parameters []string) SpecOpt {
	return func(s *requester.Spec) error {
		if image == "" {
			return fmt.Errorf("docker image is required: %w", cerrdefs.ErrInvalidArgument)
		}
		if workdir != "" && !path.IsAbs(workdir) {
			return fmt.Errorf("docker working directory %q must be an absolute path: %w", workdir, cerrdefs.ErrInvalidArgument)
		}
		s.Engine = requester.EngineDocker
		s.Docker = &requester.JobSpecDocker{
			Image:            image,
			Entrypoint:       entrypoint,
			Parameters:       parameters,
			WorkingDirectory: workdir,
		}
		s.Wasm = nil
		return nil
	}
}

// WithWasmEngine runs the job as a wasm module.
func WithWasmEngine(entryModule requester.StorageSpec, entrypoint string, parameters []string, importModules []requester.StorageSpec) SpecOpt {
	return func(s *requester.Spec) error {
		s.Engine = requester.EngineWasm
		s.Wasm = &requester.JobSpecWasm{
			EntryModule:   entryModule,
			EntryPoint:    entrypoint,
			Parameters:    parameters,
			ImportModules: importModules,
		}
		s.Docker = nil
		return nil
	}
}

// WithPublisher sets where the results are published.
func WithPublisher(p requester.PublisherSpec) SpecOpt {
	return func(s *requester.Spec) error {
		s.Publisher = p.Type
		s.PublisherSpec = p
		return nil
	}
}

// WithNetwork sets the network access of the job. domains only apply to
// [requester.NetworkHTTP].
func WithNetwork(network requester.Network, domains []string) SpecOpt {
	return func(s *requester.Spec) error {
		s.Network.Type = network
		s.Network.Domains = domains
		return nil
	}
}

// WithResources sets the resources the job asks for. Memory and disk take
// human readable sizes such as "512mb" or "2GB"; empty values are left
// unset.
func WithResources(cpu, memory, disk, gpu string) SpecOpt {
	return func(s *requester.Spec) error {
		for name, v := range map[string]string{"memory": memory, "disk": disk} {
			if v == "" {
				continue
			}
			if _, err := units.RAMInBytes(v); err != nil {
				return fmt.Errorf("invalid %s %q: %w", name, v, cerrdefs.ErrInvalidArgument)
			}
		}
		s.Resources = requester.ResourceUsageConfig{
			CPU:    cpu,
			Memory: memory,
			Disk:   disk,
			GPU:    gpu,
		}
		return nil
	}
}

// WithTimeout sets the execution timeout of the job.
func WithTimeout(d time.Duration) SpecOpt {
	return func(s *requester.Spec) error {
		if d <= 0 {
			return fmt.Errorf("invalid timeout %s: %w", d, cerrdefs.ErrInvalidArgument)
		}
		s.Timeout = d.Seconds()
		return nil
	}
}

// WithDeal sets how many nodes run the job.
func WithDeal(targeting requester.TargetingMode, concurrency int) SpecOpt {
	return func(s *requester.Spec) error {
		if concurrency < 1 {
			return fmt.Errorf("concurrency must be at least 1, got %d: %w", concurrency, cerrdefs.ErrInvalidArgument)
		}
		s.Deal.TargetingMode = targeting
		s.Deal.Concurrency = concurrency
		return nil
	}
}

func WithAnnotations(annotations ...string) SpecOpt {
	return func(s *requester.Spec) error {
		s.Annotations = annotations
		return nil
	}
}

func WithInputs(inputs ...requester.StorageSpec) SpecOpt {
	return func(s *requester.Spec) error {
		s.Inputs = inputs
		return nil
	}
}

func WithOutputs(outputs ...requester.StorageSpec) SpecOpt {
	return func(s *requester.Spec) error {
		s.Outputs = outputs
		return nil
	}
}

func WithNodeSelector(selector []requester.LabelSelectorRequirement) SpecOpt {
	return func(s *requester.Spec) error {
		s.NodeSelectors = selector
		return nil
	}
}

// WithEnvironmentVariables adds vars to the environment of the job.
func WithEnvironmentVariables(vars map[string]string) SpecOpt {
	return func(s *requester.Spec) error {
		if len(vars) == 0 {
			return nil
		}
		if s.EnvironmentVariables == nil {
			s.EnvironmentVariables = make(map[string]string, len(vars))
		}
		maps.Copy(s.EnvironmentVariables, vars)
		return nil
	}
}
