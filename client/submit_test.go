package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/bacalhau-project/apiclient/api/types/requester"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestSubmitSendsSerializedModel(t *testing.T) {
	req := &requester.SubmitRequest{
		JobCreatePayload: &requester.JobCreatePayload{
			ClientID:   "client-1",
			APIVersion: "V1beta1",
			Spec: &requester.Spec{
				Engine:    requester.EngineDocker,
				Publisher: requester.PublisherIpfs,
				Docker: &requester.JobSpecDocker{
					Image:      "ubuntu",
					Entrypoint: []string{"echo", "hello"},
				},
				Deal:    requester.Deal{Concurrency: 1},
				Timeout: 1800,
			},
		},
		ClientPublicKey: "cHVia2V5",
		ClientSignature: "c2lnbmF0dXJl",
	}
	expectedBody, err := json.Marshal(req)
	assert.NilError(t, err)

	var requests []*http.Request
	var bodies [][]byte
	client, err := NewClientWithOpts(WithHTTPClient(newMockClient(func(r *http.Request) (*http.Response, error) {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		requests = append(requests, r)
		bodies = append(bodies, b)
		return mockJSONResponse(`{"job":{"APIVersion":"V1beta1","Metadata":{"ID":"92d5d4ee-3765-4f78-8353-623f5f26df08","ClientID":"client-1"}}}`)(r)
	})))
	assert.NilError(t, err)

	resp, err := client.Submit(context.Background(), req)
	assert.NilError(t, err)

	assert.Assert(t, is.Len(requests, 1))
	assert.Check(t, is.Equal(requests[0].Method, http.MethodPost))
	assert.Check(t, is.Equal(requests[0].URL.Path, "/requester/submit"))
	assert.Check(t, is.Equal(requests[0].Header.Get("Content-Type"), "application/json"))
	assert.Check(t, is.Equal(string(bytes.TrimSpace(bodies[0])), string(expectedBody)))

	assert.Assert(t, resp.Job != nil)
	assert.Check(t, is.Equal(resp.Job.Metadata.ID, "92d5d4ee-3765-4f78-8353-623f5f26df08"))
}

func TestListReturnAll(t *testing.T) {
	client, err := NewClientWithOpts(WithHTTPClient(newMockClient(func(r *http.Request) (*http.Response, error) {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		if !bytes.Contains(b, []byte(`"return_all":true`)) {
			return nil, fmt.Errorf("expected return_all in body, got %s", b)
		}
		return mockJSONResponse(`{"jobs":[{"Metadata":{"ID":"a"}},{"Metadata":{"ID":"b"}}]}`)(r)
	})))
	assert.NilError(t, err)

	resp, err := client.List(context.Background(), &requester.ListRequest{ReturnAll: true})
	assert.NilError(t, err)
	assert.Check(t, is.Len(resp.Jobs, 2))
}

func TestListOmitsUnsetFields(t *testing.T) {
	client, err := NewClientWithOpts(WithHTTPClient(newMockClient(func(r *http.Request) (*http.Response, error) {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		if got := string(bytes.TrimSpace(b)); got != `{}` {
			return nil, fmt.Errorf("expected empty object, got %s", got)
		}
		return mockJSONResponse(`{}`)(r)
	})))
	assert.NilError(t, err)

	_, err = client.List(context.Background(), &requester.ListRequest{})
	assert.NilError(t, err)
}
