package organization

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client looks organizations up through the JSON API served at
// GET {base}/api/organizations/{key}.
type Client struct {
	base string
	http *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) GetByKey(ctx context.Context, key string) (*Organization, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.base+"/api/organizations/"+url.PathEscape(key), nil)
	if err != nil {
		return nil, errors.Join(ErrLookupFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Join(ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var body struct {
		Data *Organization `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.Join(ErrLookupFailed, err)
	}
	if body.Data == nil {
		return nil, fmt.Errorf("%w: empty response", ErrLookupFailed)
	}
	return body.Data, nil
}

// KeyExists reports whether the API knows an organization with key.
func (c *Client) KeyExists(ctx context.Context, key string) (bool, error) {
	return KeyExists(ctx, c, key)
}
