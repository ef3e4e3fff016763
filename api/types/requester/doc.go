// Package requester holds the wire models of the requester API.
//
// Models are plain structs. Their JSON tags are the mapping from Go field
// names to wire keys; every field is optional and unset fields are left out
// of the encoded document instead of being sent as null.
package requester
