package client

//go:generate go run ../cmd/endpointgen -in ../api/requester.toml -source api/requester.toml -out requester_gen.go

// Endpoint describes one operation of the requester API.
type Endpoint struct {
	// Name is the operation name used in errors, logs and metrics.
	Name string
	// Method is the HTTP method.
	Method string
	// Path is the resource path, relative to the host's base path.
	Path string
	// Param is the name of the required request parameter. It is empty for
	// operations that take no request body.
	Param string
	// Accept lists the content types the endpoint can respond with.
	Accept []string
	// ContentType lists the content types the endpoint consumes.
	ContentType []string
	// Response is the name of the response model.
	Response string
}

// Endpoints returns the descriptors of all operations the client supports,
// in declaration order.
func Endpoints() []Endpoint {
	out := make([]Endpoint, len(endpoints))
	copy(out, endpoints)
	return out
}
