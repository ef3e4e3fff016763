package job

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bacalhau-project/apiclient/api/types/requester"
	"github.com/bacalhau-project/apiclient/cli"
	"github.com/bacalhau-project/apiclient/cli/command"
	"github.com/bacalhau-project/apiclient/client"
	"github.com/bacalhau-project/apiclient/pkg/jobspec"
	"github.com/containerd/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// APIVersion is the job API version sent with submitted jobs.
const APIVersion = "V1beta1"

var defaultPollInterval = time.Second

type submitOptions struct {
	wasm        bool
	workdir     string
	env         []string
	publisher   string
	network     string
	domains     []string
	cpu         string
	memory      string
	disk        string
	gpu         string
	jobTimeout  time.Duration
	concurrency int
	targetAll   bool
	annotations []string
	inputs      []string
	outputs     []string
	selectors   []string
	publicKey   string
	signature   string
	quiet       bool
	wait        bool
	waitTimeout time.Duration
	call        callOptions

	image string
	args  []string

	pollInterval time.Duration
}

func newSubmitCommand(requesterCli command.Cli) *cobra.Command {
	options := submitOptions{pollInterval: defaultPollInterval}

	cmd := &cobra.Command{
		Use:   "submit [OPTIONS] IMAGE [COMMAND] [ARG...]",
		Short: "Submit a job",
		Long: `Submit a job running IMAGE on the docker engine, or with --wasm the
wasm module with the CID IMAGE, calling COMMAND as its entry point.`,
		Args: cli.RequiresMinArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options.image = args[0]
			options.args = args[1:]
			return runSubmit(cmd.Context(), requesterCli, options)
		},
	}

	flags := cmd.Flags()
	flags.SetInterspersed(false)
	flags.BoolVar(&options.wasm, "wasm", false, "Run a wasm module instead of a container")
	flags.StringVarP(&options.workdir, "workdir", "w", "", "Working directory inside the container")
	flags.StringArrayVarP(&options.env, "env", "e", nil, "Set environment variables")
	flags.StringVar(&options.publisher, "publisher", string(requester.PublisherIpfs), "Where to publish the results")
	flags.StringVar(&options.network, "network", string(requester.NetworkNone), "Network access (\"None\"|\"Full\"|\"HTTP\")")
	flags.StringSliceVar(&options.domains, "domain", nil, "Domain the job may reach with --network=HTTP")
	flags.StringVar(&options.cpu, "cpu", "", "CPU units, e.g. 500m or 2")
	flags.StringVar(&options.memory, "memory", "", "Memory, e.g. 512mb or 2gb")
	flags.StringVar(&options.disk, "disk", "", "Disk space, e.g. 10gb")
	flags.StringVar(&options.gpu, "gpu", "", "Number of GPUs")
	flags.DurationVar(&options.jobTimeout, "job-timeout", jobspec.DefaultTimeout, "Execution timeout of the job")
	flags.IntVar(&options.concurrency, "concurrency", 1, "Number of nodes to run the job on")
	flags.BoolVar(&options.targetAll, "target-all", false, "Run the job on all matching nodes")
	flags.StringArrayVarP(&options.annotations, "annotation", "l", nil, "Annotate the job")
	flags.StringArrayVarP(&options.inputs, "input", "i", nil, "Mount an input, CID[:PATH] or URL[:PATH]")
	flags.StringArrayVarP(&options.outputs, "output", "o", nil, "Collect an output, NAME:PATH")
	flags.StringArrayVarP(&options.selectors, "selector", "s", nil, "Only run on nodes with this label, KEY=VALUE")
	flags.StringVar(&options.publicKey, "public-key", "", "Base64 public key of the client")
	flags.StringVar(&options.signature, "signature", "", "Base64 signature of the job payload")
	flags.BoolVarP(&options.quiet, "quiet", "q", false, "Only display the job ID")
	flags.BoolVar(&options.wait, "wait", false, "Wait for the job to finish")
	flags.DurationVar(&options.waitTimeout, "wait-timeout", 0, "Give up waiting after this long (0 for no limit)")
	options.call.installFlags(flags)

	return cmd
}

func runSubmit(ctx context.Context, requesterCli command.Cli, options submitOptions) error {
	spec, err := buildSpec(options)
	if err != nil {
		return err
	}

	cfg := requesterCli.ConfigFile()
	req := &requester.SubmitRequest{
		JobCreatePayload: &requester.JobCreatePayload{
			ClientID:   cfg.ClientID,
			APIVersion: APIVersion,
			Spec:       &spec,
		},
		ClientPublicKey: options.publicKey,
		ClientSignature: options.signature,
	}
	apiClient := requesterCli.Client()
	resp, written, err := execute(ctx, requesterCli, options.call,
		func(ctx context.Context, opts ...client.CallOption) (requester.SubmitResponse, error) {
			return apiClient.Submit(ctx, req, opts...)
		},
		func(ctx context.Context, opts ...client.CallOption) *client.Handle[requester.SubmitResponse] {
			return apiClient.SubmitAsync(ctx, req, opts...)
		},
	)
	if err != nil || written {
		return err
	}
	if resp.Job == nil || resp.Job.Metadata.ID == "" {
		return errors.New("requester node accepted the job but returned no job ID")
	}

	id := resp.Job.Metadata.ID
	if options.quiet || !options.wait {
		fmt.Fprintln(requesterCli.Out(), id)
	} else {
		fmt.Fprintf(requesterCli.Out(), "Job %s submitted\n", id)
	}
	if !options.wait {
		return nil
	}

	state, err := waitForJob(ctx, requesterCli, id, options)
	if err != nil {
		return err
	}
	if !options.quiet {
		fmt.Fprintf(requesterCli.Out(), "Job %s %s\n", id, strings.ToLower(state.State.String()))
	}
	if state.State != requester.JobStateCompleted {
		return cli.StatusError{StatusCode: 1, Status: fmt.Sprintf("job %s ended in state %s", id, state.State)}
	}
	return nil
}

func waitForJob(ctx context.Context, requesterCli command.Cli, id string, options submitOptions) (requester.JobState, error) {
	if options.waitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, options.waitTimeout)
		defer cancel()
	}

	ticker := time.NewTicker(options.pollInterval)
	defer ticker.Stop()

	last := requester.JobStateType(-1)
	for {
		s, _, err := states(ctx, requesterCli, []string{id}, callOptions{})
		if err != nil {
			if ctx.Err() != nil {
				return requester.JobState{}, errors.Wrapf(ctx.Err(), "timed out waiting for job %s", id)
			}
			return requester.JobState{}, err
		}
		state := s[0]
		if state.State != last {
			log.G(ctx).WithField("job", id).WithField("state", state.State.String()).Debug("job state changed")
			if requesterCli.Out().IsTerminal() && !options.quiet {
				fmt.Fprintf(requesterCli.Err(), "%s\n", state.State)
			}
			last = state.State
		}
		if state.State.IsTerminal() {
			return state, nil
		}

		select {
		case <-ctx.Done():
			return requester.JobState{}, errors.Wrapf(ctx.Err(), "timed out waiting for job %s", id)
		case <-ticker.C:
		}
	}
}

func buildSpec(options submitOptions) (requester.Spec, error) {
	network, err := parseNetwork(options.network)
	if err != nil {
		return requester.Spec{}, err
	}
	publisher, err := requester.ParsePublisher(options.publisher)
	if err != nil {
		return requester.Spec{}, err
	}
	env, err := parseKeyValues("env", options.env)
	if err != nil {
		return requester.Spec{}, err
	}
	inputs, err := parseInputs(options.inputs)
	if err != nil {
		return requester.Spec{}, err
	}
	outputs, err := parseOutputs(options.outputs)
	if err != nil {
		return requester.Spec{}, err
	}
	selectors, err := parseSelectors(options.selectors)
	if err != nil {
		return requester.Spec{}, err
	}
	targeting := requester.TargetAny
	if options.targetAll {
		targeting = requester.TargetAll
	}

	specOpts := []jobspec.SpecOpt{
		jobspec.WithPublisher(requester.PublisherSpec{Type: publisher}),
		jobspec.WithNetwork(network, options.domains),
		jobspec.WithResources(options.cpu, options.memory, options.disk, options.gpu),
		jobspec.WithTimeout(options.jobTimeout),
		jobspec.WithDeal(targeting, options.concurrency),
		jobspec.WithAnnotations(options.annotations...),
		jobspec.WithInputs(inputs...),
		jobspec.WithOutputs(outputs...),
		jobspec.WithNodeSelector(selectors),
		jobspec.WithEnvironmentVariables(env),
	}

	if options.wasm {
		var entrypoint string
		var params []string
		if len(options.args) > 0 {
			entrypoint, params = options.args[0], options.args[1:]
		}
		entry := requester.StorageSpec{StorageSource: requester.StorageSourceIPFS, CID: options.image}
		return jobspec.MakeWasmSpec(entry, entrypoint, params, nil, specOpts...)
	}
	var entrypoint []string
	if len(options.args) > 0 {
		entrypoint = options.args
	}
	return jobspec.MakeDockerSpec(options.image, options.workdir, entrypoint, nil, specOpts...)
}

func parseNetwork(s string) (requester.Network, error) {
	for _, n := range []requester.Network{requester.NetworkNone, requester.NetworkFull, requester.NetworkHTTP} {
		if strings.EqualFold(s, string(n)) {
			return n, nil
		}
	}
	return "", errors.Errorf("invalid network %q: must be one of None, Full or HTTP", s)
}

func parseKeyValues(kind string, values []string) (map[string]string, error) {
	if len(values) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(values))
	for _, v := range values {
		k, val, ok := strings.Cut(v, "=")
		if !ok || k == "" {
			return nil, errors.Errorf("invalid %s %q: expected KEY=VALUE", kind, v)
		}
		out[k] = val
	}
	return out, nil
}

// splitPath splits "SOURCE:/path" at the last colon followed by an
// absolute path.
func splitPath(s, defaultPath string) (string, string) {
	if i := strings.LastIndex(s, ":"); i >= 0 && strings.HasPrefix(s[i+1:], "/") {
		return s[:i], s[i+1:]
	}
	return s, defaultPath
}

func parseInputs(values []string) ([]requester.StorageSpec, error) {
	var out []requester.StorageSpec
	for _, v := range values {
		source, path := splitPath(v, "/inputs")
		if source == "" {
			return nil, errors.Errorf("invalid input %q", v)
		}
		if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
			out = append(out, requester.StorageSpec{StorageSource: requester.StorageSourceURLDownload, URL: source, Path: path})
			continue
		}
		out = append(out, requester.StorageSpec{StorageSource: requester.StorageSourceIPFS, CID: source, Path: path})
	}
	return out, nil
}

func parseOutputs(values []string) ([]requester.StorageSpec, error) {
	var out []requester.StorageSpec
	for _, v := range values {
		name, path, ok := strings.Cut(v, ":")
		if !ok || name == "" || !strings.HasPrefix(path, "/") {
			return nil, errors.Errorf("invalid output %q: expected NAME:/PATH", v)
		}
		out = append(out, requester.StorageSpec{StorageSource: requester.StorageSourceIPFS, Name: name, Path: path})
	}
	return out, nil
}

func parseSelectors(values []string) ([]requester.LabelSelectorRequirement, error) {
	var out []requester.LabelSelectorRequirement
	for _, v := range values {
		k, val, ok := strings.Cut(v, "=")
		if !ok || k == "" {
			return nil, errors.Errorf("invalid selector %q: expected KEY=VALUE", v)
		}
		out = append(out, requester.LabelSelectorRequirement{Key: k, Operator: "=", Values: []string{val}})
	}
	return out, nil
}
