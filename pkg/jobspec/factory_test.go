package jobspec

import (
	"testing"
	"time"

	"github.com/bacalhau-project/apiclient/api/types/requester"
	cerrdefs "github.com/containerd/errdefs"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestMakeSpecDefaults(t *testing.T) {
	spec, err := MakeSpec()
	assert.NilError(t, err)
	assert.Check(t, is.DeepEqual(spec, requester.Spec{
		Engine:        requester.EngineNoop,
		Publisher:     requester.PublisherNoop,
		PublisherSpec: requester.PublisherSpec{Type: requester.PublisherNoop},
		Network:       requester.NetworkConfig{Type: requester.NetworkNone},
		Timeout:       1800,
		Deal:          requester.Deal{Concurrency: 1},
	}))
}

func TestMakeSpecDoesNotShareDefaults(t *testing.T) {
	a, err := MakeSpec(WithEnvironmentVariables(map[string]string{"A": "1"}), WithNetwork(requester.NetworkHTTP, []string{"example.com"}))
	assert.NilError(t, err)
	b, err := MakeSpec()
	assert.NilError(t, err)

	assert.Check(t, is.DeepEqual(a.EnvironmentVariables, map[string]string{"A": "1"}))
	assert.Check(t, is.Len(b.EnvironmentVariables, 0))
	assert.Check(t, is.Equal(b.Network.Type, requester.NetworkNone))
	assert.Check(t, is.Len(b.Network.Domains, 0))
	assert.Check(t, is.Equal(defaultSpec.Network.Type, requester.NetworkNone))
}

func TestMakeDockerSpec(t *testing.T) {
	spec, err := MakeDockerSpec("ubuntu", "/work", []string{"bash", "-c"}, []string{"echo hi"},
		WithTimeout(10*time.Minute),
		WithDeal(requester.TargetAll, 3),
		WithResources("500m", "1Gb", "10GB", "1"),
		WithPublisher(requester.PublisherSpec{Type: requester.PublisherIpfs}),
		WithAnnotations("a", "b"),
	)
	assert.NilError(t, err)

	assert.Check(t, is.Equal(spec.Engine, requester.EngineDocker))
	assert.Check(t, is.DeepEqual(spec.Docker, &requester.JobSpecDocker{
		Image:            "ubuntu",
		Entrypoint:       []string{"bash", "-c"},
		Parameters:       []string{"echo hi"},
		WorkingDirectory: "/work",
	}))
	assert.Check(t, is.Nil(spec.Wasm))
	assert.Check(t, is.Equal(spec.Timeout, float64(600)))
	assert.Check(t, is.DeepEqual(spec.Deal, requester.Deal{TargetingMode: requester.TargetAll, Concurrency: 3}))
	assert.Check(t, is.Equal(spec.Resources.Memory, "1Gb"))
	assert.Check(t, is.Equal(spec.Publisher, requester.PublisherIpfs))
	assert.Check(t, is.Equal(spec.PublisherSpec.Type, requester.PublisherIpfs))
	assert.Check(t, is.DeepEqual(spec.Annotations, []string{"a", "b"}))
}

func TestMakeWasmSpec(t *testing.T) {
	entry := requester.StorageSpec{StorageSource: requester.StorageSourceInline, URL: "data:,module"}
	spec, err := MakeWasmSpec(entry, "_start", []string{"x"}, nil,
		WithInputs(requester.StorageSpec{StorageSource: requester.StorageSourceIPFS, CID: "Qm1", Path: "/in"}),
		WithOutputs(requester.StorageSpec{Name: "outputs", Path: "/outputs"}),
	)
	assert.NilError(t, err)
	assert.Check(t, is.Equal(spec.Engine, requester.EngineWasm))
	assert.Check(t, is.Nil(spec.Docker))
	assert.Check(t, is.DeepEqual(spec.Wasm, &requester.JobSpecWasm{
		EntryModule: entry,
		EntryPoint:  "_start",
		Parameters:  []string{"x"},
	}))
	assert.Check(t, is.Len(spec.Inputs, 1))
	assert.Check(t, is.Len(spec.Outputs, 1))
}

func TestSpecOptErrors(t *testing.T) {
	tests := []struct {
		doc      string
		opt      SpecOpt
		expected string
	}{
		{
			doc:      "relative working directory",
			opt:      WithDockerEngine("ubuntu", "work", nil, nil),
			expected: `docker working directory "work" must be an absolute path`,
		},
		{
			doc:      "missing image",
			opt:      WithDockerEngine("", "", nil, nil),
			expected: "docker image is required",
		},
		{
			doc:      "invalid memory",
			opt:      WithResources("1", "lots", "", ""),
			expected: `invalid memory "lots"`,
		},
		{
			doc:      "invalid disk",
			opt:      WithResources("", "", "10 parsecs", ""),
			expected: `invalid disk "10 parsecs"`,
		},
		{
			doc:      "zero timeout",
			opt:      WithTimeout(0),
			expected: "invalid timeout 0s",
		},
		{
			doc:      "zero concurrency",
			opt:      WithDeal(requester.TargetAny, 0),
			expected: "concurrency must be at least 1, got 0",
		},
	}
	for _, tc := range tests {
		t.Run(tc.doc, func(t *testing.T) {
			_, err := MakeSpec(tc.opt)
			assert.Check(t, is.ErrorContains(err, tc.expected))
			assert.Check(t, cerrdefs.IsInvalidArgument(err))
		})
	}
}

func TestWithNodeSelector(t *testing.T) {
	sel := []requester.LabelSelectorRequirement{{Key: "region", Operator: "in", Values: []string{"eu", "us"}}}
	spec, err := MakeSpec(WithNodeSelector(sel))
	assert.NilError(t, err)
	assert.Check(t, is.DeepEqual(spec.NodeSelectors, sel))
}
