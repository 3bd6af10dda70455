// client.go
package libreview

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://api.libreview.io"
	defaultProduct = "llu.android"
	defaultVersion = "4.16.0"

	// The /account endpoint rejects newer version headers; it is pinned.
	accountVersion = "4.7"
)

type Config struct {
	BaseURL string
	Product string
	Version string
	Timeout time.Duration
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		BaseURL: defaultBaseURL,
		Product: defaultProduct,
		Version: defaultVersion,
		Timeout: 10 * time.Second,
	}
}

// Client talks to the LibreLink Up API. It performs no retries and holds no
// state beyond its configuration; session state lives in Session.
type Client struct {
	config Config
	client *http.Client
}

func New(config Config) *Client {
	defaults := DefaultConfig()
	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}
	if config.Product == "" {
		config.Product = defaults.Product
	}
	if config.Version == "" {
		config.Version = defaults.Version
	}
	if config.Timeout == 0 {
		config.Timeout = defaults.Timeout
	}
	return &Client{
		config: config,
		client: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// Session is the credential state established by Authenticate. It is never
// persisted and is immutable once returned.
type Session struct {
	Token     string // bearer token from the auth ticket
	AccountID string // SHA-256 hex of the account user id, sent as Account-Id
	PatientID string // connection the readings belong to
}

// Authenticate logs in with the given credentials and resolves the account and
// patient identifiers needed for subsequent requests. Any failure in the
// sequence is an *AuthError.
func (c *Client) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	token, err := c.login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	accountID, err := c.fetchAccountID(ctx, token)
	if err != nil {
		return nil, err
	}

	patientID, err := c.fetchPatientID(ctx, token, accountID)
	if err != nil {
		return nil, err
	}

	return &Session{
		Token:     token,
		AccountID: accountID,
		PatientID: patientID,
	}, nil
}

// LatestReading fetches the most recent glucose measurement for the session's
// patient. Any failure is a *FetchError; an empty reading list wraps
// ErrNoReadings.
func (c *Client) LatestReading(ctx context.Context, session *Session) (*Reading, error) {
	url := fmt.Sprintf("%s/llu/connections/%s/graph", c.config.BaseURL, session.PatientID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Op: "graph", Err: fmt.Errorf("creating request: %w", err)}
	}
	c.setHeaders(req, c.config.Version, session.Token, session.AccountID)

	body, status, err := c.do(req)
	if err != nil {
		return nil, &FetchError{Op: "graph", Err: err}
	}
	if status != http.StatusOK {
		return nil, &FetchError{Op: "graph", StatusCode: status, Err: apiError(body)}
	}

	var parsed graphResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &FetchError{Op: "graph", Err: fmt.Errorf("parsing response: %w", err)}
	}
	if parsed.Data == nil {
		return nil, &FetchError{Op: "graph", Err: errors.New("response contained no data")}
	}
	if len(parsed.Data.GraphData) == 0 {
		return nil, &FetchError{Op: "graph", Err: ErrNoReadings}
	}

	// The graph list is ordered oldest first; the last entry is current.
	latest := parsed.Data.GraphData[len(parsed.Data.GraphData)-1]
	reading, err := latest.toReading()
	if err != nil {
		return nil, &FetchError{Op: "graph", Err: err}
	}
	return reading, nil
}

func (c *Client) login(ctx context.Context, email, password string) (string, error) {
	jsonData, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return "", &AuthError{Op: "login", Err: fmt.Errorf("marshaling payload: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.BaseURL+"/llu/auth/login", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", &AuthError{Op: "login", Err: fmt.Errorf("creating request: %w", err)}
	}
	c.setHeaders(req, c.config.Version, "", "")
	req.Header.Set("Content-Type", "application/json")

	body, status, err := c.do(req)
	if err != nil {
		return "", &AuthError{Op: "login", Err: err}
	}
	if status == http.StatusUnauthorized {
		return "", &AuthError{Op: "login", StatusCode: status, Err: errors.New("invalid credentials")}
	}
	if status != http.StatusOK {
		return "", &AuthError{Op: "login", StatusCode: status, Err: apiError(body)}
	}

	var parsed loginResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &AuthError{Op: "login", Err: fmt.Errorf("parsing response: %w", err)}
	}
	if parsed.Data == nil || parsed.Data.AuthTicket == nil || parsed.Data.AuthTicket.Token == "" {
		return "", &AuthError{Op: "login", Err: ErrNoToken}
	}
	return parsed.Data.AuthTicket.Token, nil
}

// fetchAccountID retrieves the account user id and returns its SHA-256 hex
// digest, which the API expects in the Account-Id header on later requests.
func (c *Client) fetchAccountID(ctx context.Context, token string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/account", nil)
	if err != nil {
		return "", &AuthError{Op: "account", Err: fmt.Errorf("creating request: %w", err)}
	}
	c.setHeaders(req, accountVersion, token, "")

	body, status, err := c.do(req)
	if err != nil {
		return "", &AuthError{Op: "account", Err: err}
	}
	if status != http.StatusOK {
		return "", &AuthError{Op: "account", StatusCode: status, Err: apiError(body)}
	}

	var parsed accountResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &AuthError{Op: "account", Err: fmt.Errorf("parsing response: %w", err)}
	}
	if parsed.Data == nil || parsed.Data.User == nil || parsed.Data.User.ID == "" {
		return "", &AuthError{Op: "account", Err: errors.New("response contained no user id")}
	}

	sum := sha256.Sum256([]byte(parsed.Data.User.ID))
	return hex.EncodeToString(sum[:]), nil
}

func (c *Client) fetchPatientID(ctx context.Context, token, accountID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/llu/connections", nil)
	if err != nil {
		return "", &AuthError{Op: "connections", Err: fmt.Errorf("creating request: %w", err)}
	}
	c.setHeaders(req, c.config.Version, token, accountID)

	body, status, err := c.do(req)
	if err != nil {
		return "", &AuthError{Op: "connections", Err: err}
	}
	if status != http.StatusOK {
		return "", &AuthError{Op: "connections", StatusCode: status, Err: apiError(body)}
	}

	var parsed connectionsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &AuthError{Op: "connections", Err: fmt.Errorf("parsing response: %w", err)}
	}
	if len(parsed.Data) == 0 {
		return "", &AuthError{Op: "connections", Err: ErrNoConnections}
	}
	if parsed.Data[0].PatientID == "" {
		return "", &AuthError{Op: "connections", Err: errors.New("first connection has no patientId")}
	}
	return parsed.Data[0].PatientID, nil
}

// do sends the request and reads the full body. A transport-level failure
// returns err; an HTTP-level failure is left to the caller via status.
func (c *Client) do(req *http.Request) ([]byte, int, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reading response: %w", err)
	}
	return body, resp.StatusCode, nil
}

func (c *Client) setHeaders(req *http.Request, version, token, accountID string) {
	req.Header.Set("product", c.config.Product)
	req.Header.Set("version", version)
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if accountID != "" {
		req.Header.Set("Account-Id", accountID)
	}
}

// apiError extracts the API's error envelope from a failed response body,
// falling back to the raw body when the envelope doesn't parse.
func apiError(body []byte) error {
	var parsed apiErrorResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return fmt.Errorf("api error: %s", parsed.Error.Message)
	}
	const max = 200
	if len(body) > max {
		body = body[:max]
	}
	return fmt.Errorf("unexpected response: %s", string(body))
}
