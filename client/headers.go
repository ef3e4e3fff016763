package client

import (
	"mime"
	"strings"
)

const mimeJSON = "application/json"

// selectHeaderAccept returns the Accept header for an endpoint that can
// respond with any of accepts. JSON is preferred when offered; an empty
// list yields no header.
func selectHeaderAccept(accepts []string) string {
	if len(accepts) == 0 {
		return ""
	}
	for _, a := range accepts {
		if strings.EqualFold(a, mimeJSON) {
			return mimeJSON
		}
	}
	return strings.Join(accepts, ", ")
}

// selectHeaderContentType returns the Content-Type header for an endpoint
// consuming any of contentTypes.
func selectHeaderContentType(contentTypes []string) string {
	if len(contentTypes) == 0 {
		return mimeJSON
	}
	for _, ct := range contentTypes {
		if ct == "*/*" || strings.EqualFold(ct, mimeJSON) {
			return mimeJSON
		}
	}
	return contentTypes[0]
}

// isJSONMime reports whether contentType is application/json, ignoring
// parameters such as charset.
func isJSONMime(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == mimeJSON
}
