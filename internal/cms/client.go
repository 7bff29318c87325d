package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"eventures/internal/catalog"
	"eventures/pkg/logger"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultPageSize = 100
	maxPages        = 50
)

// APIError is a non-2xx response from Strapi
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("strapi: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("strapi: %s (status %d)", e.Message, e.StatusCode)
}

// Client reads catalog and lookup data from a Strapi v4 or v5 REST API
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *logger.Logger
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.GetDefault(),
	}
}

// ListCatalog returns every item of kind, following pagination
func (c *Client) ListCatalog(ctx context.Context, kind catalog.Kind) ([]Item, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: %q", catalog.ErrInvalidKind, kind)
	}

	imageField := imageFieldFor(kind)
	query := url.Values{}
	query.Set("populate", imageField)

	entries, err := c.listAll(ctx, "/api/"+kind.String()+"-items", query)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(entries))
	for _, e := range entries {
		item, err := c.decodeItem(kind, imageField, e)
		if err != nil {
			c.logger.WarnWithContext(ctx, "Skipping malformed catalog entry", err, map[string]interface{}{
				"kind": kind.String(),
				"id":   e.id(),
			})
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// ListEventTypes returns the event type names
func (c *Client) ListEventTypes(ctx context.Context) ([]string, error) {
	return c.listNames(ctx, "/api/event-types", "EventName")
}

// ListLocations returns the location type names
func (c *Client) ListLocations(ctx context.Context) ([]string, error) {
	return c.listNames(ctx, "/api/locations", "LocationType")
}

func (c *Client) listNames(ctx context.Context, path, field string) ([]string, error) {
	entries, err := c.listAll(ctx, path, url.Values{})
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if name := strings.TrimSpace(e.text(field)); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

type listResponse struct {
	Data []json.RawMessage `json:"data"`
	Meta struct {
		Pagination struct {
			Page      int `json:"page"`
			PageCount int `json:"pageCount"`
		} `json:"pagination"`
	} `json:"meta"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) listAll(ctx context.Context, path string, query url.Values) ([]entry, error) {
	var entries []entry

	for page := 1; page <= maxPages; page++ {
		query.Set("pagination[page]", strconv.Itoa(page))
		query.Set("pagination[pageSize]", strconv.Itoa(defaultPageSize))

		var resp listResponse
		if err := c.get(ctx, path, query, &resp); err != nil {
			return nil, err
		}

		for _, raw := range resp.Data {
			e, err := parseEntry(raw)
			if err != nil {
				return nil, fmt.Errorf("failed to decode %s entry: %w", path, err)
			}
			entries = append(entries, e)
		}

		if resp.Meta.Pagination.PageCount <= page {
			break
		}
	}
	return entries, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dest interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errResp errorResponse
		if json.Unmarshal(body, &errResp) == nil {
			apiErr.Message = errResp.Error.Message
		}
		return apiErr
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

func imageFieldFor(kind catalog.Kind) string {
	s := kind.String()
	return strings.ToUpper(s[:1]) + s[1:] + "Image"
}
