package toniecloud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL     = "https://api.tonie.cloud/v2"
	defaultTokenURL    = "https://login.tonies.com/auth/realms/tonies/protocol/openid-connect/token"
	defaultClientID    = "my-tonies"
	defaultOrigin      = "toniecloud-go"
	defaultHTTPTimeout = 30 * time.Second
)

// HTTPDoer describes the HTTP client used for all upstream calls.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Prompter supplies the interactive entry points. Implementations live in
// internal/prompt; tests supply canned answers.
type Prompter interface {
	Line(label string) (string, error)
	Confirm(question string) (bool, error)
}

// Config describes the client configuration. Zero values fall back to the
// production endpoints and a fresh session.
type Config struct {
	BaseURL    string
	TokenURL   string
	ClientID   string
	Origin     string
	HTTPClient HTTPDoer
	Session    *Session
	Prompter   Prompter
}

// Client wraps the Creative Tonie REST API for one session.
type Client struct {
	baseURL  string
	tokenURL string
	clientID string
	origin   string
	http     HTTPDoer
	session  *Session
	prompter Prompter
}

// New creates a Client from the supplied configuration.
func New(cfg Config) *Client {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultBaseURL
	}
	tokenURL := strings.TrimSpace(cfg.TokenURL)
	if tokenURL == "" {
		tokenURL = defaultTokenURL
	}
	clientID := strings.TrimSpace(cfg.ClientID)
	if clientID == "" {
		clientID = defaultClientID
	}
	origin := strings.TrimSpace(cfg.Origin)
	if origin == "" {
		origin = defaultOrigin
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	session := cfg.Session
	if session == nil {
		session = NewSession()
	}
	return &Client{
		baseURL:  strings.TrimRight(base, "/"),
		tokenURL: tokenURL,
		clientID: clientID,
		origin:   origin,
		http:     httpClient,
		session:  session,
		prompter: cfg.Prompter,
	}
}

// WithPrompter returns a copy of the client that answers interactive
// questions through p. The session and transport are shared.
func (c *Client) WithPrompter(p Prompter) *Client {
	clone := *c
	clone.prompter = p
	return &clone
}

// Session exposes the session backing this client.
func (c *Client) Session() *Session {
	return c.session
}

// Origin returns the default origin tag recorded with uploaded chapters.
func (c *Client) Origin() string {
	return c.origin
}

// Me returns the raw profile document for the authenticated user. The shape
// is not otherwise modeled upstream.
func (c *Client) Me(ctx context.Context) (json.RawMessage, error) {
	var payload json.RawMessage
	if err := c.getJSON(ctx, "/me", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Households returns the households belonging to the authenticated user, in
// service order. The order is service-defined and not guaranteed stable.
func (c *Client) Households(ctx context.Context) ([]Household, error) {
	var households []Household
	if err := c.getJSON(ctx, "/households", &households); err != nil {
		return nil, err
	}
	return households, nil
}

// CreativeTonies returns the figurines of the given household in service
// order. A zero-value household resolves through CurrentHousehold.
func (c *Client) CreativeTonies(ctx context.Context, household Household) ([]CreativeTonie, error) {
	if household.ID == "" {
		resolved, err := c.CurrentHousehold(ctx)
		if err != nil {
			return nil, err
		}
		household = resolved
	}
	var tonies []CreativeTonie
	if err := c.getJSON(ctx, "/households/"+household.ID+"/creativetonies", &tonies); err != nil {
		return nil, err
	}
	return tonies, nil
}

// CurrentHousehold returns the selected household. Without a prior selection
// it fetches the account's households: exactly one is selected and cached;
// zero or several fail with AmbiguousHouseholdError carrying the count.
func (c *Client) CurrentHousehold(ctx context.Context) (Household, error) {
	if h, ok := c.session.SelectedHousehold(); ok {
		return h, nil
	}
	households, err := c.Households(ctx)
	if err != nil {
		return Household{}, err
	}
	if len(households) != 1 {
		return Household{}, &AmbiguousHouseholdError{Count: len(households)}
	}
	c.session.SelectHousehold(households[0])
	return households[0], nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	resp, err := c.doAuthed(ctx, http.MethodGet, c.baseURL+path, "", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: GET %s: %v", ErrDecode, path, err)
	}
	return nil
}

// doAuthed issues a request against the application API with the session
// bearer token attached.
func (c *Client) doAuthed(ctx context.Context, method, requestURL, contentType string, body io.Reader) (*http.Response, error) {
	token, err := c.session.AccessToken()
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, requestURL, err)
	}
	return resp, nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &ServiceError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}

var _ HTTPDoer = (*http.Client)(nil)

// errInterrupted reports whether err should abort a best-effort loop early.
func errInterrupted(err error) bool {
	return errors.Is(err, ErrNotAuthenticated) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
