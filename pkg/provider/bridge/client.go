// Package bridge is the HTTP client for a host UI Automation bridge
// server. The bridge owns the live accessibility tree and the input
// injection; this package only queries and drives it. It implements both
// core.Provider (element search) and core.Actor (element actions).
package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/autolab-dev/uia-runner/pkg/core"
	"github.com/autolab-dev/uia-runner/pkg/logger"
)

// Client communicates with the automation bridge.
type Client struct {
	http      *http.Client
	baseURL   string
	sessionID string
	logger    *log.Logger
}

// NewClient creates a client for the bridge at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
		logger:  log.New(logger.GetWriter(), "", log.Ltime|log.Lmicroseconds),
	}
}

// Response is the generic bridge response envelope.
type Response struct {
	Value interface{} `json:"value"`
}

// SessionID returns the current session ID.
func (c *Client) SessionID() string {
	return c.sessionID
}

// HasSession returns true if a session is active.
func (c *Client) HasSession() bool {
	return c.sessionID != ""
}

// request makes an HTTP request to the bridge.
func (c *Client) request(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	start := time.Now()

	var reqBody io.Reader
	var bodyStr string
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
		bodyStr = string(data)
		if len(bodyStr) > 100 {
			bodyStr = bodyStr[:100] + "..."
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.logger.Printf("%s %s [%v] ERROR: %v", method, path, elapsed, err)
		return nil, core.ErrServerUnreachable.WithCause(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	status := "OK"
	if resp.StatusCode >= 400 {
		status = fmt.Sprintf("ERR:%d", resp.StatusCode)
	}
	c.logger.Printf("%s %s [%v] %s body=%s", method, path, elapsed, status, bodyStr)

	if resp.StatusCode >= 400 {
		var errResp struct {
			Value struct {
				Error   string `json:"error"`
				Message string `json:"message"`
			} `json:"value"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Value.Error != "" {
			return nil, fmt.Errorf("%s: %s", errResp.Value.Error, errResp.Value.Message)
		}
		return nil, fmt.Errorf("bridge error %d: %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}

// sessionPath returns path with session ID prefix.
func (c *Client) sessionPath(path string) string {
	return fmt.Sprintf("/session/%s%s", c.sessionID, path)
}

// Status checks if the bridge is ready.
func (c *Client) Status(ctx context.Context) (bool, error) {
	data, err := c.request(ctx, "GET", "/status", nil)
	if err != nil {
		return false, err
	}

	var resp struct {
		Value struct {
			Ready   bool   `json:"ready"`
			Message string `json:"message"`
		} `json:"value"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return false, err
	}

	return resp.Value.Ready, nil
}

// Capabilities select the application a session attaches to. Set
// Application to launch a binary, or AttachTitle to attach to a running
// window by (partial) title.
type Capabilities struct {
	Application string   `json:"application,omitempty"`
	Arguments   []string `json:"arguments,omitempty"`
	AttachTitle string   `json:"attachTitle,omitempty"`
	AttachPID   int      `json:"attachPid,omitempty"`
}

// CreateSession starts a new automation session.
func (c *Client) CreateSession(ctx context.Context, caps Capabilities) error {
	data, err := c.request(ctx, "POST", "/session", map[string]interface{}{
		"capabilities": caps,
	})
	if err != nil {
		return err
	}

	var resp struct {
		Value struct {
			SessionID string `json:"sessionId"`
		} `json:"value"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("parse session response: %w", err)
	}
	if resp.Value.SessionID == "" {
		return fmt.Errorf("no session ID in response")
	}

	c.sessionID = resp.Value.SessionID
	return nil
}

// DeleteSession ends the current session, closing the application if the
// session launched it.
func (c *Client) DeleteSession(ctx context.Context) error {
	if c.sessionID == "" {
		return nil
	}

	_, err := c.request(ctx, "DELETE", c.sessionPath(""), nil)
	c.sessionID = ""
	return err
}

// Close ends the session.
func (c *Client) Close() error {
	return c.DeleteSession(context.Background())
}

// Hierarchy fetches the current UI tree as snapshot XML.
func (c *Client) Hierarchy(ctx context.Context) (string, error) {
	if c.sessionID == "" {
		return "", core.ErrNoSession
	}

	data, err := c.request(ctx, "GET", c.sessionPath("/hierarchy"), nil)
	if err != nil {
		return "", err
	}

	var resp struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("parse hierarchy response: %w", err)
	}
	return resp.Value, nil
}
