package job

import (
	"context"

	"github.com/bacalhau-project/apiclient/api/types/requester"
	"github.com/bacalhau-project/apiclient/client"
)

type fakeClient struct {
	client.APIClient
	listFunc        func(req *requester.ListRequest) (requester.ListResponse, error)
	statesFunc      func(req *requester.StateRequest) (requester.StateResponse, error)
	eventsFunc      func(req *requester.EventsRequest) (requester.EventsResponse, error)
	localEventsFunc func(req *requester.LocalEventsRequest) (requester.LocalEventsResponse, error)
	resultsFunc     func(req *requester.StateRequest) (requester.ResultsResponse, error)
	submitFunc      func(req *requester.SubmitRequest) (requester.SubmitResponse, error)
}

func (cli *fakeClient) List(_ context.Context, req *requester.ListRequest, _ ...client.CallOption) (requester.ListResponse, error) {
	if cli.listFunc != nil {
		return cli.listFunc(req)
	}
	return requester.ListResponse{}, nil
}

func (cli *fakeClient) States(_ context.Context, req *requester.StateRequest, _ ...client.CallOption) (requester.StateResponse, error) {
	if cli.statesFunc != nil {
		return cli.statesFunc(req)
	}
	return requester.StateResponse{}, nil
}

func (cli *fakeClient) Events(_ context.Context, req *requester.EventsRequest, _ ...client.CallOption) (requester.EventsResponse, error) {
	if cli.eventsFunc != nil {
		return cli.eventsFunc(req)
	}
	return requester.EventsResponse{}, nil
}

func (cli *fakeClient) LocalEvents(_ context.Context, req *requester.LocalEventsRequest, _ ...client.CallOption) (requester.LocalEventsResponse, error) {
	if cli.localEventsFunc != nil {
		return cli.localEventsFunc(req)
	}
	return requester.LocalEventsResponse{}, nil
}

func (cli *fakeClient) Results(_ context.Context, req *requester.StateRequest, _ ...client.CallOption) (requester.ResultsResponse, error) {
	if cli.resultsFunc != nil {
		return cli.resultsFunc(req)
	}
	return requester.ResultsResponse{}, nil
}

func (cli *fakeClient) Submit(_ context.Context, req *requester.SubmitRequest, _ ...client.CallOption) (requester.SubmitResponse, error) {
	if cli.submitFunc != nil {
		return cli.submitFunc(req)
	}
	return requester.SubmitResponse{}, nil
}
