package toniecloud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Login exchanges the credentials for a bearer token via the OAuth2 password
// grant and stores it in the session. A failed exchange never leaves a stale
// or partial token behind.
func (c *Client) Login(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return &AuthError{Err: errors.New("username is empty")}
	}
	if password == "" {
		return &AuthError{Err: errors.New("password is empty")}
	}

	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("client_id", c.clientID)
	form.Set("scope", "openid")
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return &AuthError{Err: fmt.Errorf("build token request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &AuthError{Err: fmt.Errorf("token request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &AuthError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return &AuthError{Status: resp.StatusCode, Err: fmt.Errorf("decode token response: %w", err)}
	}
	if payload.AccessToken == "" {
		return &AuthError{Status: resp.StatusCode, Err: errors.New("token response missing access_token")}
	}

	c.session.setToken(payload.AccessToken)
	return nil
}

// LoginInteractive prompts for the username and password, line-buffered and
// unmasked, then delegates to Login. It fails when no prompt provider is
// configured, so non-interactive embeddings never block on a terminal.
func (c *Client) LoginInteractive(ctx context.Context) error {
	if c.prompter == nil {
		return ErrNoPrompter
	}
	username, err := c.prompter.Line("Username")
	if err != nil {
		return fmt.Errorf("read username: %w", err)
	}
	password, err := c.prompter.Line("Password")
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	return c.Login(ctx, username, password)
}
