package domain

// AuthorizationHeader is the header a forwarded credential is sent in.
const AuthorizationHeader = "Authorization"

// Credential is an opaque authorization value supplied by a client.
// The empty credential means none was supplied.
type Credential string

// Headers returns the headers to attach to remote calls, or nil if no
// credential was supplied.
func (c Credential) Headers() map[string]string {
	if c == "" {
		return nil
	}
	return map[string]string{AuthorizationHeader: string(c)}
}

// QueryParam is one key/value query parameter. Order is preserved and keys
// may repeat.
type QueryParam struct {
	Key   string
	Value string
}
