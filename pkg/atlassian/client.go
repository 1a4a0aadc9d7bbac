package atlassian

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/ratelimit"
)

const (
	groupMembersPath = "/group/user"
	defaultTimeout   = 30 * time.Second
	maxBodySize      = 64 * 1024
)

// BaseURL returns the REST API v3 root of an Atlassian Cloud site.
func BaseURL(site string) string {
	site = strings.TrimSuffix(strings.TrimSpace(site), "/")
	site = strings.TrimPrefix(strings.TrimPrefix(site, "https://"), "http://")
	return fmt.Sprintf("https://%s/rest/api/3", site)
}

type Options struct {
	BaseURL  string
	Email    string
	APIToken string
	// RateLimit caps removal calls per second. Zero disables pacing.
	RateLimit  int
	HTTPClient *http.Client
}

// Client removes accounts from groups through the Atlassian admin API.
type Client struct {
	baseURL  string
	email    string
	apiToken string
	client   *http.Client
	limiter  ratelimit.Limiter
}

// Response is what the API answered to a removal call.
type Response struct {
	StatusCode int
	Body       string
}

// OK reports whether the account left the group.
func (r *Response) OK() bool {
	return r != nil && r.StatusCode == http.StatusOK
}

func NewClient(options Options) (*Client, error) {
	if strings.TrimSpace(options.BaseURL) == "" {
		return nil, fmt.Errorf("atlassian base url is required")
	}
	if strings.TrimSpace(options.Email) == "" || strings.TrimSpace(options.APIToken) == "" {
		return nil, fmt.Errorf("atlassian email and api token are required")
	}

	httpClient := options.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	limiter := ratelimit.NewUnlimited()
	if options.RateLimit > 0 {
		limiter = ratelimit.New(options.RateLimit, ratelimit.Per(time.Second))
	}

	return &Client{
		baseURL:  strings.TrimSuffix(options.BaseURL, "/"),
		email:    options.Email,
		apiToken: options.APIToken,
		client:   httpClient,
		limiter:  limiter,
	}, nil
}

// RemoveFromGroup issues a single DELETE for the (group, account) membership.
// Non-200 answers are returned as a Response; only transport problems are errors.
func (c *Client) RemoveFromGroup(ctx context.Context, groupID string, accountID string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+groupMembersPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	q := url.Values{}
	q.Set("groupId", groupID)
	q.Set("accountId", accountID)
	req.URL.RawQuery = q.Encode()
	req.SetBasicAuth(c.email, c.apiToken)
	req.Header.Set("Accept", "application/json")

	// wait for one available slot for deletion
	c.limiter.Take()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to remove account %s from group %s: %w", accountID, groupID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}, nil
}
