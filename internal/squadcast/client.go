// Package squadcast is a minimal HTTP client for the Squadcast incident API:
// a single token exchange against the auth endpoint and the paginated
// incidents export. Failures are never retried; every error is surfaced to
// the caller with its cause.
package squadcast

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"incsight/internal/contract"
	"incsight/schema"
)

// maxErrorBody caps how much of a failed response body is carried in the
// error message.
const maxErrorBody = 4000

// defaultTimeout bounds every request. The export endpoint can be slow on
// wide time windows.
const defaultTimeout = 120 * time.Second

// Client talks to the Squadcast API. A token exchange must succeed before
// the incident operations can authenticate.
type Client struct {
	authURL      string
	baseAPI      string
	refreshToken string
	accessToken  string
	httpClient   *http.Client
}

var _ contract.IncidentAPI = (*Client)(nil) // Compile-time check

// APIError represents a non-2xx HTTP response.
type APIError struct {
	StatusCode int
	Body       string // first 4000 bytes
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// Option configures Client behavior.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// New creates a Client for the given endpoints and refresh credential.
func New(authURL, baseAPI, refreshToken string, opts ...Option) *Client {
	c := &Client{
		authURL:      authURL,
		baseAPI:      strings.TrimRight(baseAPI, "/"),
		refreshToken: refreshToken,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// tokenResponse mirrors the auth endpoint envelope.
type tokenResponse struct {
	Data struct {
		AccessToken string `json:"access_token"`
	} `json:"data"`
}

// ExchangeToken trades the refresh credential for an access token using the
// X-Refresh-Token header flow. The token is retained for subsequent calls.
// A rejection by the auth endpoint is an authentication error, distinct from
// transport failures.
func (c *Client) ExchangeToken(ctx context.Context) (string, error) {
	slog.Debug("exchanging refresh token", "url", c.authURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.authURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: building token exchange request: %v", contract.ErrTransport, err)
	}
	req.Header.Set("X-Refresh-Token", c.refreshToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: token exchange request failed: %v", contract.ErrTransport, err)
	}
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return "", fmt.Errorf("%w: reading token exchange response: %v", contract.ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: truncateBody(body)}
		return "", fmt.Errorf("%w: token exchange rejected: %v", contract.ErrAuthentication, apiErr)
	}

	var payload tokenResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("%w: token exchange returned malformed JSON: %v", contract.ErrTransport, err)
	}
	if payload.Data.AccessToken == "" {
		return "", fmt.Errorf("%w: token exchange returned no access token", contract.ErrAuthentication)
	}

	c.accessToken = payload.Data.AccessToken
	return c.accessToken, nil
}

// FetchIncidents pages through the JSON incident export and returns all
// records in API order plus the number of pages fetched. Pagination stops
// when a page returns fewer records than the page size. A malformed page
// aborts the whole fetch; no partial batch is returned.
func (c *Client) FetchIncidents(ctx context.Context, filter contract.FetchFilter) ([]map[string]any, int, error) {
	var all []map[string]any
	pages := 0
	for pageNumber := 1; ; pageNumber++ {
		query := exportQuery(filter, schema.JSONFetch)
		query.Set("page_number", strconv.Itoa(pageNumber))
		query.Set("page_size", strconv.Itoa(schema.PageSize))

		body, err := c.getExport(ctx, query, "application/json")
		if err != nil {
			return nil, 0, err
		}

		records, err := decodePage(body)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: export page %d is not a JSON array of records: %v", contract.ErrDataFormat, pageNumber, err)
		}

		pages++
		all = append(all, records...)
		slog.Debug("fetched incident page", "page", pageNumber, "records", len(records), "total", len(all))

		if len(records) < schema.PageSize {
			break
		}
	}
	return all, pages, nil
}

// DownloadCSV fetches the API's CSV export in one request and returns the
// raw bytes. The CSV export is not paginated.
func (c *Client) DownloadCSV(ctx context.Context, filter contract.FetchFilter) ([]byte, error) {
	return c.getExport(ctx, exportQuery(filter, schema.CSVFetch), "text/csv")
}

// getExport issues one authenticated GET against the export endpoint.
func (c *Client) getExport(ctx context.Context, query url.Values, accept string) ([]byte, error) {
	fullURL := c.baseAPI + "/incidents/export?" + query.Encode()
	slog.Debug("requesting incident export", "url", fullURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building export request: %v", contract.ErrTransport, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", accept)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: export request failed: %v", contract.ErrTransport, err)
	}
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("%w: reading export response: %v", contract.ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: truncateBody(body)}
		return nil, fmt.Errorf("%w: %v", contract.ErrTransport, apiErr)
	}
	return body, nil
}

// exportQuery translates the filter to query parameters. Empty optional
// fields are omitted from the outgoing request entirely.
func exportQuery(filter contract.FetchFilter, fetchType schema.FetchType) url.Values {
	query := url.Values{}
	query.Set("type", string(fetchType))
	query.Set("start_time", filter.StartTime.UTC().Format(time.RFC3339))
	query.Set("end_time", filter.EndTime.UTC().Format(time.RFC3339))
	if filter.Team != "" {
		query.Set("owner_id", filter.Team)
	}
	if filter.Assignee != "" {
		query.Set("assigned_to", filter.Assignee)
	}
	if filter.Tags != "" {
		query.Set("tags", filter.Tags)
	}
	if filter.Status != "" {
		// One status value per request.
		query.Set("status", filter.Status)
	}
	return query
}

// decodePage extracts the record array from one export page. The payload is
// either a bare array or a {"data": [...]} envelope.
func decodePage(body []byte) ([]map[string]any, error) {
	payload := bytes.TrimSpace(body)
	if len(payload) > 0 && payload[0] == '{' {
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(payload, &envelope); err != nil {
			return nil, err
		}
		if envelope.Data == nil {
			return nil, errors.New("envelope has no data array")
		}
		payload = envelope.Data
	}

	var records []map[string]any
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func truncateBody(body []byte) string {
	s := string(bytes.TrimSpace(body))
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody]
	}
	return s
}
