package system

import (
	"context"

	"github.com/bacalhau-project/apiclient/api/types/requester"
	"github.com/bacalhau-project/apiclient/client"
)

type fakeClient struct {
	client.APIClient
	versionFunc  func(req *requester.VersionRequest) (requester.VersionResponse, error)
	nodeInfoFunc func() (requester.NodeInfo, error)
}

func (cli *fakeClient) Version(_ context.Context, req *requester.VersionRequest, _ ...client.CallOption) (requester.VersionResponse, error) {
	if cli.versionFunc != nil {
		return cli.versionFunc(req)
	}
	return requester.VersionResponse{}, nil
}

func (cli *fakeClient) NodeInfo(context.Context, ...client.CallOption) (requester.NodeInfo, error) {
	if cli.nodeInfoFunc != nil {
		return cli.nodeInfoFunc()
	}
	return requester.NodeInfo{}, nil
}
