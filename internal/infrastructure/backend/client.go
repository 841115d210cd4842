// Package backend implements the HTTP client for the remote console API:
// identity, admin-check, workspace app access, and dashboard preferences.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/aexy/console-state/internal/api/metrics"
	"github.com/aexy/console-state/internal/core/domain"
	"github.com/aexy/console-state/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Client talks to the remote console API. It holds no credential state;
// the bearer token is supplied per call.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (c *Client) FetchIdentity(ctx context.Context, token string) (*domain.Session, error) {
	var sess domain.Session
	status, err := c.do(ctx, http.MethodGet, "/api/v1/identity", token, nil, &sess, "identity")
	if err != nil {
		return nil, err
	}
	switch status {
	case http.StatusOK:
		return &sess, nil
	case http.StatusUnauthorized:
		return nil, domain.ErrUnauthenticated
	default:
		return nil, fmt.Errorf("identity: unexpected status %d: %w", status, domain.ErrBackendUnavailable)
	}
}

func (c *Client) FetchAdminCheck(ctx context.Context, token string) (bool, error) {
	var out struct {
		IsAdmin bool `json:"is_admin"`
	}
	status, err := c.do(ctx, http.MethodGet, "/api/v1/identity/admin-check", token, nil, &out, "admin_check")
	if err != nil {
		return false, err
	}
	switch status {
	case http.StatusOK:
		return out.IsAdmin, nil
	case http.StatusUnauthorized:
		return false, domain.ErrUnauthenticated
	default:
		return false, fmt.Errorf("admin check: unexpected status %d: %w", status, domain.ErrBackendUnavailable)
	}
}

func (c *Client) FetchAppAccess(ctx context.Context, token, appID string) (bool, error) {
	var out struct {
		HasAccess bool `json:"has_access"`
	}
	path := "/api/v1/workspaces/apps/" + appID + "/access"
	status, err := c.do(ctx, http.MethodGet, path, token, nil, &out, "app_access")
	if err != nil {
		return false, err
	}
	switch status {
	case http.StatusOK:
		return out.HasAccess, nil
	case http.StatusUnauthorized:
		return false, domain.ErrUnauthenticated
	case http.StatusNotFound, http.StatusForbidden:
		// unknown app or membership missing: a closed decision, not an outage
		return false, nil
	default:
		return false, fmt.Errorf("app access: unexpected status %d: %w", status, domain.ErrBackendUnavailable)
	}
}

func (c *Client) FetchDashboardPreferences(ctx context.Context, token string) (*domain.DashboardPreferences, error) {
	var prefs domain.DashboardPreferences
	status, err := c.do(ctx, http.MethodGet, "/api/v1/dashboard/preferences", token, nil, &prefs, "dashboard_get")
	if err != nil {
		return nil, err
	}
	switch status {
	case http.StatusOK:
		return &prefs, nil
	case http.StatusNotFound:
		return nil, domain.ErrPreferencesNotFound
	case http.StatusUnauthorized:
		return nil, domain.ErrUnauthenticated
	default:
		return nil, fmt.Errorf("dashboard get: unexpected status %d: %w", status, domain.ErrBackendUnavailable)
	}
}

func (c *Client) UpdateDashboardPreferences(ctx context.Context, token string, patch ports.DashboardPatch) error {
	status, err := c.do(ctx, http.MethodPatch, "/api/v1/dashboard/preferences", token, patch, nil, "dashboard_patch")
	if err != nil {
		return err
	}
	switch {
	case status == http.StatusOK || status == http.StatusNoContent:
		return nil
	case status == http.StatusUnauthorized:
		return domain.ErrUnauthenticated
	case status >= 400 && status < 500:
		return fmt.Errorf("dashboard patch: status %d: %w", status, domain.ErrWriteRejected)
	default:
		return fmt.Errorf("dashboard patch: unexpected status %d: %w", status, domain.ErrBackendUnavailable)
	}
}

// do executes one request and decodes a 2xx body into out when non-nil.
// It returns the HTTP status; transport failures wrap
// domain.ErrBackendUnavailable.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any, endpoint string) (int, error) {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	metrics.BackendRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(endpoint, "transport_error").Inc()
		c.log.Warn().Err(err).Str("endpoint", endpoint).Msg("backend request failed")
		return 0, fmt.Errorf("%s: %w: %v", endpoint, domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()
	metrics.BackendRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if out != nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("%s: decode response: %w", endpoint, err)
		}
	}
	return resp.StatusCode, nil
}
