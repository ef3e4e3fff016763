package job

import (
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/bacalhau-project/apiclient/api/types/requester"
	"github.com/bacalhau-project/apiclient/cli/internal/test"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestDescribeMultipleJobs(t *testing.T) {
	var mu sync.Mutex
	var seen []string
	cli := test.NewFakeCli(&fakeClient{statesFunc: func(req *requester.StateRequest) (requester.StateResponse, error) {
		mu.Lock()
		seen = append(seen, req.JobID)
		mu.Unlock()
		return requester.StateResponse{State: requester.JobState{JobID: req.JobID, State: requester.JobStateCompleted}}, nil
	}})
	cmd := newDescribeCommand(cli)
	cmd.SetArgs([]string{"--format", "{{.JobID}} {{.State}}", "job-1", "job-2", "job-3", "job-4", "job-5"})
	assert.NilError(t, cmd.Execute())

	// Output keeps the order of the arguments.
	assert.Check(t, is.Equal(cli.OutBuffer().String(), "job-1 Completed\njob-2 Completed\njob-3 Completed\njob-4 Completed\njob-5 Completed\n"))
	assert.Check(t, is.Len(seen, 5))
}

func TestDescribeJSON(t *testing.T) {
	cli := test.NewFakeCli(&fakeClient{statesFunc: func(req *requester.StateRequest) (requester.StateResponse, error) {
		return requester.StateResponse{State: requester.JobState{JobID: req.JobID}}, nil
	}})
	cmd := newDescribeCommand(cli)
	cmd.SetArgs([]string{"job-1"})
	assert.NilError(t, cmd.Execute())
	assert.Check(t, is.Equal(cli.OutBuffer().String(), "[\n    {\n        \"JobID\": \"job-1\"\n    }\n]\n"))
}

func TestDescribeExecutionsTable(t *testing.T) {
	cli := test.NewFakeCli(&fakeClient{statesFunc: func(req *requester.StateRequest) (requester.StateResponse, error) {
		return requester.StateResponse{State: requester.JobState{
			JobID: req.JobID,
			Executions: []requester.ExecutionState{
				{JobID: req.JobID, NodeID: "QmNodeAAAAAAAA", State: "Completed", Version: 3},
			},
		}}, nil
	}})
	cmd := newDescribeCommand(cli)
	cmd.SetArgs([]string{"--format", "table {{.Node}}\t{{.State}}", "job-1"})
	assert.NilError(t, cmd.Execute())
	lines := strings.Split(strings.TrimSpace(cli.OutBuffer().String()), "\n")
	assert.Assert(t, is.Len(lines, 2))
	assert.Check(t, is.Equal(strings.Join(strings.Fields(lines[0]), " "), "NODE STATE"))
	assert.Check(t, is.Equal(strings.Join(strings.Fields(lines[1]), " "), "QmNodeAA Completed"))
}

func TestDescribeError(t *testing.T) {
	cli := test.NewFakeCli(&fakeClient{statesFunc: func(req *requester.StateRequest) (requester.StateResponse, error) {
		if req.JobID == "missing" {
			return requester.StateResponse{}, errors.New("job not found")
		}
		return requester.StateResponse{State: requester.JobState{JobID: req.JobID}}, nil
	}})
	cmd := newDescribeCommand(cli)
	cmd.SetArgs([]string{"job-1", "missing"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	assert.Check(t, is.ErrorContains(cmd.Execute(), "job not found"))
	assert.Check(t, is.Equal(cli.OutBuffer().String(), ""))
}

func TestDescribeRequiresJob(t *testing.T) {
	cmd := newDescribeCommand(test.NewFakeCli(&fakeClient{}))
	cmd.SetArgs([]string{})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	assert.Check(t, is.ErrorContains(cmd.Execute(), "requires at least 1 argument"))
}

func TestEventsAndResults(t *testing.T) {
	cli := test.NewFakeCli(&fakeClient{
		eventsFunc: func(req *requester.EventsRequest) (requester.EventsResponse, error) {
			return requester.EventsResponse{Events: []requester.JobHistory{{JobID: req.JobID, Comment: "created"}}}, nil
		},
		resultsFunc: func(req *requester.StateRequest) (requester.ResultsResponse, error) {
			return requester.ResultsResponse{Results: []requester.PublishedResult{{NodeID: "n", Data: requester.StorageSpec{CID: "Qm" + req.JobID}}}}, nil
		},
		localEventsFunc: func(req *requester.LocalEventsRequest) (requester.LocalEventsResponse, error) {
			return requester.LocalEventsResponse{LocalEvents: []requester.JobLocalEvent{{EventName: "Bid", JobID: req.JobID}}}, nil
		},
	})

	cmd := newEventsCommand(cli)
	cmd.SetArgs([]string{"--format", "{{.JobID}} {{.Comment}}", "a", "b"})
	assert.NilError(t, cmd.Execute())
	assert.Check(t, is.Equal(cli.OutBuffer().String(), "a created\nb created\n"))

	cli.OutBuffer().Reset()
	cmd = newResultsCommand(cli)
	cmd.SetArgs([]string{"-q", "a", "b"})
	assert.NilError(t, cmd.Execute())
	assert.Check(t, is.Equal(cli.OutBuffer().String(), "Qma\nQmb\n"))

	cli.OutBuffer().Reset()
	cmd = newLocalEventsCommand(cli)
	cmd.SetArgs([]string{"--format", "{{.Event}} {{.JobID}}", "a"})
	assert.NilError(t, cmd.Execute())
	assert.Check(t, is.Equal(cli.OutBuffer().String(), "Bid a\n"))
}
