// Package client consumes the application-tracking REST API. Transport
// failures and response codes are folded into the error taxonomy callers
// switch on: NotFoundError, ValidationError, TransientError.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/applytrack/applytrack/internal/application"
	"github.com/applytrack/applytrack/internal/certification"
	"github.com/applytrack/applytrack/internal/timeline"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) GetApplication(ctx context.Context, id string) (application.Application, error) {
	app := application.Application{}
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/applications/%s", id), id, nil, &app)
	return app, err
}

// UpdateApplication issues the single PATCH carrying a partial update. For
// lifecycle transitions the body is the status together with its captured
// auxiliary payload, never two separate calls.
func (c *Client) UpdateApplication(ctx context.Context, id string, rq application.UpdateRq) (application.Application, error) {
	app := application.Application{}
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/applications/%s", id), id, rq, &app)
	return app, err
}

func (c *Client) Timeline(ctx context.Context, id string) ([]timeline.Event, error) {
	events := []timeline.Event{}
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/applications/%s/timeline", id), id, nil, &events)
	return events, err
}

func (c *Client) AddTimelineEvent(ctx context.Context, id string, rq timeline.AddEventRq) (timeline.Event, error) {
	event := timeline.Event{}
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/applications/%s/timeline", id), id, rq, &event)
	return event, err
}

// Archive soft-deletes an application; Restore reverses it. Neither touches
// the lifecycle status.
func (c *Client) Archive(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/applications/%s", id), id, nil, nil)
}

func (c *Client) Restore(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/applications/%s/restore", id), id, nil, nil)
}

func (c *Client) Certifications(ctx context.Context) ([]certification.Certification, error) {
	certs := []certification.Certification{}
	err := c.do(ctx, http.MethodGet, "/certifications", "", nil, &certs)
	return certs, err
}

// UpdateCertificationPosition persists one entry's new position. The
// reorder pattern issues one of these per moved entry, concurrently.
func (c *Client) UpdateCertificationPosition(ctx context.Context, id string, position int) error {
	body := struct {
		Position int `json:"position"`
	}{Position: position}
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/certifications/%s", id), id, body, nil)
}

func (c *Client) do(ctx context.Context, method, path, entityID string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return err
		}
		reader = buf
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return &TransientError{Err: err}
	}
	defer res.Body.Close()
	switch {
	case res.StatusCode == http.StatusNotFound:
		return &NotFoundError{ID: entityID}
	case res.StatusCode >= 400 && res.StatusCode < 500:
		return &ValidationError{Message: readMessage(res.Body)}
	case res.StatusCode >= 500:
		return &TransientError{Err: fmt.Errorf("server returned %d", res.StatusCode)}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func readMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(raw) == 0 {
		return "request rejected"
	}
	var msg string
	if err := json.Unmarshal(raw, &msg); err == nil && msg != "" {
		return msg
	}
	return strings.TrimSpace(string(raw))
}
