package restaurant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// API defines the restaurant operations the UI depends on.
// This interface is implemented by *Client and can be used for testing.
type API interface {
	Query(ctx context.Context, criteria Criteria) ([]Restaurant, error)
	Create(ctx context.Context, data Restaurant) (Restaurant, error)
	Update(ctx context.Context, name string, data Restaurant) (Restaurant, error)
	Delete(ctx context.Context, name string) error
	Ping(ctx context.Context) error
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the restaurants HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultAPIURL         = "127.0.0.1:8080"
	defaultUserAgent      = "platter/0.1"
	defaultRequestTimeout = 5 * time.Second
	restaurantsPath       = "/restaurants"
)

// StatusError reports a non-success HTTP status from the API.
type StatusError struct {
	Method string
	Path   string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s %s returned status %d", e.Method, e.Path, e.Status)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsConflict reports whether err is a 409 from the API.
func IsConflict(err error) bool {
	return hasStatus(err, http.StatusConflict)
}

func hasStatus(err error, status int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == status
}

// NewClient builds a Client for the API at apiURL (host:port or full URL).
// A non-positive timeout uses the default.
func NewClient(apiURL string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// Query lists restaurants matching the criteria.
func (c *Client) Query(ctx context.Context, criteria Criteria) ([]Restaurant, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	if name := strings.TrimSpace(criteria.NameBeginsWith); name != "" {
		values.Set("nameBeginsWith", name)
	}
	if criteria.Category != "" {
		values.Set("category", string(criteria.Category))
	}
	values.Set("triedBefore", strconv.FormatBool(criteria.TriedBefore))
	if criteria.RatingAtLeast > 0 {
		values.Set("ratingAtLeast", strconv.Itoa(criteria.RatingAtLeast))
	}
	rel := &url.URL{Path: restaurantsPath, RawQuery: values.Encode()}

	var payload []Restaurant
	if _, err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	if payload == nil {
		payload = []Restaurant{}
	}
	return payload, nil
}

// Create stores a new restaurant. When the API answers without a body the
// submitted data is returned.
func (c *Client) Create(ctx context.Context, data Restaurant) (Restaurant, error) {
	if c == nil {
		return Restaurant{}, fmt.Errorf("client is nil")
	}
	var payload Restaurant
	decoded, err := c.doURL(ctx, http.MethodPost, &url.URL{Path: restaurantsPath}, data, &payload)
	if err != nil {
		return Restaurant{}, err
	}
	if !decoded {
		return data, nil
	}
	return payload, nil
}

// Update patches the restaurant currently stored under name. A 204 (nothing
// changed) returns the submitted data.
func (c *Client) Update(ctx context.Context, name string, data Restaurant) (Restaurant, error) {
	if c == nil {
		return Restaurant{}, fmt.Errorf("client is nil")
	}
	rel, err := entryURL(name)
	if err != nil {
		return Restaurant{}, err
	}
	var payload Restaurant
	decoded, err := c.doURL(ctx, http.MethodPatch, rel, data, &payload)
	if err != nil {
		return Restaurant{}, err
	}
	if !decoded {
		return data, nil
	}
	return payload, nil
}

// Delete removes the restaurant stored under name.
func (c *Client) Delete(ctx context.Context, name string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	rel, err := entryURL(name)
	if err != nil {
		return err
	}
	_, err = c.doURL(ctx, http.MethodDelete, rel, nil, nil)
	return err
}

// Ping checks that the API answers its health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	_, err := c.doURL(ctx, http.MethodGet, &url.URL{Path: "/health"}, nil, nil)
	return err
}

// entryURL builds /restaurants/{name} with the name escaped as one segment.
func entryURL(name string) (*url.URL, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("restaurant name required")
	}
	if !AddressableName(name) {
		return nil, fmt.Errorf("restaurant name %q cannot be used in a URL path", name)
	}
	return &url.URL{
		Path:    restaurantsPath + "/" + name,
		RawPath: restaurantsPath + "/" + url.PathEscape(name),
	}, nil
}

// doURL executes the request and decodes the response into dest. It reports
// whether a body was decoded.
func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body any, dest any) (bool, error) {
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return false, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return false, &StatusError{Method: method, Path: rel.Path, Status: resp.StatusCode}
	}
	if dest == nil || resp.StatusCode == http.StatusNoContent {
		return false, nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, fmt.Errorf("decode response: %w", err)
	}
	return true, nil
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = defaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", apiURL, err)
	}
	u.Path = ""
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
