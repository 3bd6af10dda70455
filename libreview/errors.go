// errors.go
package libreview

import (
	"errors"
	"fmt"
)

// Sentinel errors for the distinguished empty/missing cases.
var (
	// ErrNoToken is returned when the login response carries no auth ticket token.
	ErrNoToken = errors.New("login response contained no token")

	// ErrNoConnections is returned when the account has no patient connections.
	ErrNoConnections = errors.New("no patient connections on this account")

	// ErrNoReadings is returned when the graph endpoint returns an empty reading list.
	ErrNoReadings = errors.New("no glucose readings returned")
)

// AuthError reports a failure while establishing a session: bad credentials,
// an unreachable endpoint, or a malformed login/account/connections response.
type AuthError struct {
	Op         string // "login", "account", "connections"
	StatusCode int    // HTTP status, 0 if the request never completed
	Err        error
}

func (e *AuthError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("auth: %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("auth: %s: %v", e.Op, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// FetchError reports a failure while retrieving a reading with an established
// session: an expired/invalid token, empty data, or a malformed response.
type FetchError struct {
	Op         string // "graph"
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch: %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch: %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
