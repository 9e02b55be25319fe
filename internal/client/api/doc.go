// Package api implements the REST client for the Amparo backend. All calls
// are plain HTTP+JSON; authenticated endpoints carry the session's bearer
// token in the Authorization header. Backend failures are mapped onto the
// sentinel errors in internal/common so callers can branch with errors.Is.
package api
