package mattermost

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Version is the version of this module.
const Version = "0.1.0"

const (
	apiPathPrefix = "/api/v4"

	// MaxPerPage is the server-imposed upper bound on the number of emoji
	// records returned per listing page.
	MaxPerPage = 200
)

// Client represents a Mattermost API client authenticated with a personal
// access token or bot token. All requests carry a bearer authorization
// header; the client only reads from the server, it never mutates anything.
type Client struct {
	serverURL   string
	accessToken string
	httpClient  *http.Client
}

// NewClient creates a new Mattermost API client for the given server URL and
// access token. Trailing slashes on the server URL are stripped. The client
// is configured with connection pooling and a generous timeout so that large
// animated emoji downloads do not get cut off.
func NewClient(serverURL, accessToken string) *Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 10,
	}

	return &Client{
		serverURL:   strings.TrimRight(serverURL, "/"),
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout:   2 * time.Minute,
			Transport: transport,
		},
	}
}

// NormalizeServerURL validates and canonicalizes a Mattermost server URL:
// surrounding whitespace and trailing slashes are removed, and the URL must
// be absolute http(s) with a host. Returns an error describing what is wrong
// with the input otherwise.
func NormalizeServerURL(raw string) (string, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(raw), "/")
	if trimmed == "" {
		return "", fmt.Errorf("server URL is empty")
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid server URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("server URL %q must start with http:// or https://", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("server URL %q has no host", raw)
	}

	return trimmed, nil
}

func (c *Client) newRequest(path string) (*http.Request, error) {
	req, err := http.NewRequest(http.MethodGet, c.serverURL+apiPathPrefix+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	return req, nil
}

// Me retrieves the user record the access token authenticates as. It serves
// as the connectivity and credential check before any extraction work starts.
func (c *Client) Me() (*User, error) {
	req, err := c.newRequest("/users/me")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &user, nil
}

// GetEmojiPage retrieves one page of custom emoji records, sorted by name.
// The page index is zero-based; perPage is clamped to MaxPerPage and
// defaulted to it when non-positive. An empty slice with a nil error means
// the page genuinely holds no records.
func (c *Client) GetEmojiPage(page, perPage int) ([]Emoji, error) {
	if perPage <= 0 || perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	req, err := c.newRequest("/emoji")
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("sort", "name")
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var emojis []Emoji
	if err := json.Unmarshal(body, &emojis); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return emojis, nil
}

// GetEmojiImage retrieves the binary image for the emoji with the given id.
// On success it returns the response body stream and the Content-Type header
// value; the caller owns the stream and must close it. On a non-success
// status the body is consumed and an error returned.
func (c *Client) GetEmojiImage(id string) (io.ReadCloser, string, error) {
	req, err := c.newRequest("/emoji/" + id + "/image")
	if err != nil {
		return nil, "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to execute request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	return resp.Body, resp.Header.Get("Content-Type"), nil
}
