// Package client is the Go consumer of the REST surface used by the
// dashboard frontends. Mutations are fire-and-confirm: nothing is assumed
// about server state until the response arrives.
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

	"github.com/doanvu/school-eval-api/internal/apperr"
	"github.com/doanvu/school-eval-api/internal/models"
)

type Client struct {
	base  string
	token string
	http  *http.Client
}

func New(base, token string) *Client {
	return &Client{
		base:  strings.TrimRight(base, "/"),
		token: token,
		http:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &apperr.TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return &apperr.TransportError{Status: resp.StatusCode, Msg: serverMessage(raw)}
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return &apperr.TransportError{Status: resp.StatusCode, Err: err}
		}
	}
	return nil
}

// serverMessage surfaces the server's error text verbatim when present; the
// caller's TransportError falls back to a generic message otherwise.
func serverMessage(raw []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return ""
}

func (c *Client) List(ctx context.Context, skip, limit int) ([]models.EvaluationView, error) {
	path := "/evaluations"
	if skip > 0 || limit > 0 {
		path = fmt.Sprintf("/evaluations?skip=%d&limit=%d", skip, limit)
	}
	var out []models.EvaluationView
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) ListByStudent(ctx context.Context, studentID int64) ([]models.EvaluationView, error) {
	var out []models.EvaluationView
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/evaluations/student/%d", studentID), nil, &out)
	return out, err
}

func (c *Client) ListByStudentClass(ctx context.Context, studentID, classID int64) ([]models.EvaluationView, error) {
	var out []models.EvaluationView
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/evaluations/student/%d/class/%d", studentID, classID), nil, &out)
	return out, err
}

func (c *Client) Summary(ctx context.Context, studentID int64) (models.ScoreSummary, error) {
	var out models.ScoreSummary
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/evaluations/student/%d/summary", studentID), nil, &out)
	return out, err
}

func (c *Client) ClassSummary(ctx context.Context, studentID, classID int64) (models.ScoreSummary, error) {
	var out models.ScoreSummary
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/evaluations/student/%d/class/%d/summary", studentID, classID), nil, &out)
	return out, err
}

func (c *Client) Create(ctx context.Context, draft models.EvaluationDraft) (*models.Evaluation, error) {
	var out models.Evaluation
	if err := c.do(ctx, http.MethodPost, "/evaluations", draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) QuickCreate(ctx context.Context, templateID string, studentID, classID int64) (*models.Evaluation, error) {
	body := map[string]any{"template_id": templateID, "student_id": studentID, "class_id": classID}
	var out models.Evaluation
	if err := c.do(ctx, http.MethodPost, "/evaluations/quick", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/evaluations/%d", id), nil, nil)
}
