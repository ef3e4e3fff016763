package client

import (
	"net/http"
)

// APIClient is an interface that clients that talk with a requester node must implement.
type APIClient interface {
	RequesterAPIClient
	Host() string
	HTTPClient() *http.Client
	Close() error
}

// Ensure that Client always implements APIClient.
var _ APIClient = &Client{}
