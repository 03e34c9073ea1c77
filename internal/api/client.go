package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/Geo222222/serenity-s-keys/internal/models"
)

const adminTokenHeader = "X-Admin-Token"

// Client is the typed HTTP client for the Serenity's Keys API. All
// persistence, scheduling, and payment logic live behind it; this portal only
// exchanges DTO snapshots.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
}

// Availability lists bookable sessions for a course. The request always
// bypasses caches so seat counts are current.
func (c *Client) Availability(ctx context.Context, course string) ([]models.Session, error) {
	payload := map[string]string{"course": course}
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/api/availability", payload)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	if !success(resp) {
		return nil, statusError(resp, "Unable to load availability.")
	}

	var sessions []models.Session
	if err := json.NewDecoder(resp.Body).Decode(&sessions); err != nil {
		return nil, networkError(fmt.Errorf("decode availability response: %w", err))
	}
	return sessions, nil
}

// GetSession looks up a single session by id.
func (c *Client) GetSession(ctx context.Context, sessionID int64) (*models.Session, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/api/sessions/%d", c.baseURL, sessionID), nil)
	if err != nil {
		return nil, networkError(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	if !success(resp) {
		return nil, statusError(resp, "Unable to load the session details.")
	}

	var session models.Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, networkError(fmt.Errorf("decode session response: %w", err))
	}
	return &session, nil
}

// UpsertProfile saves parent and student identity upstream. The call is
// idempotent on student_id when one is supplied.
func (c *Client) UpsertProfile(ctx context.Context, profile models.Profile) (*models.ProfileResult, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/api/profile/upsert", profile)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	if !success(resp) {
		return nil, statusError(resp, "Unable to save the profile before checkout.")
	}

	var result models.ProfileResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, networkError(fmt.Errorf("decode profile response: %w", err))
	}
	return &result, nil
}

// CreateCheckout starts a hosted payment session and returns the page the
// browser must navigate to.
func (c *Client) CreateCheckout(ctx context.Context, request models.CheckoutRequest) (*models.CheckoutResult, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/api/booking/checkout", request)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	if !success(resp) {
		return nil, statusError(resp, "Checkout could not be started.")
	}

	var result models.CheckoutResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, networkError(fmt.Errorf("decode checkout response: %w", err))
	}
	if result.CheckoutURL == "" {
		return nil, networkError(fmt.Errorf("checkout url missing from response"))
	}
	return &result, nil
}

// AdminLogin exchanges the staff password for a short-lived admin token.
func (c *Client) AdminLogin(ctx context.Context, password string) (*models.AdminToken, error) {
	payload := map[string]string{"password": password}
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/api/admin/login", payload)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	if !success(resp) {
		return nil, statusError(resp, "Invalid password")
	}

	var token models.AdminToken
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, networkError(fmt.Errorf("decode login response: %w", err))
	}
	if token.Token == "" {
		return nil, networkError(fmt.Errorf("token missing from login response"))
	}
	return &token, nil
}

// RawResult is an upstream response relayed to the admin console verbatim.
// Admin tools show the body as-is, success or error undifferentiated.
type RawResult struct {
	Status int
	Body   string
}

// CreateSession submits a session draft with the admin token attached.
func (c *Client) CreateSession(ctx context.Context, token string, draft models.SessionDraft) (*RawResult, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/api/admin/session", draft)
	if err != nil {
		return nil, err
	}
	req.Header.Set(adminTokenHeader, token)

	return c.doRaw(req)
}

// AdminSessions lists upcoming sessions for the admin console.
func (c *Client) AdminSessions(ctx context.Context, token string) (*RawResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/admin/sessions", nil)
	if err != nil {
		return nil, networkError(err)
	}
	req.Header.Set(adminTokenHeader, token)

	return c.doRaw(req)
}

// ImportTypingCSV forwards a Typing.com CSV export as multipart form data.
// The admin header is attached only when a token is present; the upstream API
// is the one enforcing authentication on this endpoint.
func (c *Client) ImportTypingCSV(ctx context.Context, token, filename string, file io.Reader) (*RawResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, networkError(fmt.Errorf("build multipart form: %w", err))
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, networkError(fmt.Errorf("copy upload: %w", err))
	}
	if err := writer.Close(); err != nil {
		return nil, networkError(fmt.Errorf("close multipart form: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/typing/import", &buf)
	if err != nil {
		return nil, networkError(err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set(adminTokenHeader, token)
	}

	return c.doRaw(req)
}

func (c *Client) newJSONRequest(ctx context.Context, method, path string, payload any) (*http.Request, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, networkError(fmt.Errorf("marshal request: %w", err))
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, networkError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) doRaw(req *http.Request) (*RawResult, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, networkError(fmt.Errorf("read response: %w", err))
	}
	return &RawResult{Status: resp.StatusCode, Body: string(body)}, nil
}

func success(resp *http.Response) bool {
	return resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices
}
