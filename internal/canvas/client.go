package canvas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bobmcallan/canvas-mcp/internal/common"
)

// maxResponseSize caps a single Canvas response body.
const maxResponseSize = 50 << 20 // 50MB

const defaultPerPage = 100

// Client is an authenticated Canvas REST client. It holds no per-call state
// and is safe for concurrent use.
type Client struct {
	baseURL    *url.URL
	token      string
	perPage    int
	httpClient *http.Client
	logger     *common.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout. Zero means requests are bounded
// only by their context.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithPerPage sets the page size requested on list endpoints.
func WithPerPage(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.perPage = n
		}
	}
}

// NewClient creates a client for the given Canvas domain. The domain is a bare
// host ("school.instructure.com"); an explicit scheme is honoured so tests can
// point the client at a plain-HTTP server.
func NewClient(domain, token string, logger *common.Logger, opts ...Option) (*Client, error) {
	base, err := baseURLFor(domain)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	c := &Client{
		baseURL:    base,
		token:      token,
		perPage:    defaultPerPage,
		httpClient: &http.Client{},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func baseURLFor(domain string) (*url.URL, error) {
	domain = strings.TrimSpace(domain)
	if domain == "" {
		return nil, fmt.Errorf("canvas domain is required")
	}
	if !strings.Contains(domain, "://") {
		domain = "https://" + domain
	}
	u, err := url.Parse(domain)
	if err != nil {
		return nil, fmt.Errorf("invalid canvas domain %q: %w", domain, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid canvas domain %q", domain)
	}
	u.Path = "/api/v1/"
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

// BaseURL returns the API root, e.g. https://school.instructure.com/api/v1/.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// PerPage returns the page size sent on list requests.
func (c *Client) PerPage() int {
	return c.perPage
}

// endpoint resolves a relative API path plus query into an absolute URL.
func (c *Client) endpoint(path string, params url.Values) string {
	rel := &url.URL{Path: strings.TrimPrefix(path, "/")}
	u := c.baseURL.ResolveReference(rel)
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}
	return u.String()
}

// sameOrigin reports whether target shares scheme and host with the API root.
func (c *Client) sameOrigin(target string) bool {
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Scheme, c.baseURL.Scheme) && strings.EqualFold(u.Host, c.baseURL.Host)
}

// do performs a request against an absolute URL and returns the body and headers.
func (c *Client) do(ctx context.Context, method, target string, data any) ([]byte, http.Header, error) {
	path := c.logPath(target)
	c.logger.Debug().Str("method", method).Str("path", path).Msg("canvas request")

	var bodyReader io.Reader
	if data != nil {
		payload, err := json.Marshal(data)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.Error().Str("method", method).Str("path", path).Int64("duration_ms", duration.Milliseconds()).Str("error", err.Error()).Msg("canvas request failed")
		return nil, nil, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Int64("duration_ms", duration.Milliseconds()).Msg("canvas response")

	if resp.StatusCode >= 400 {
		return nil, nil, parseErrorResponse(method, path, resp.StatusCode, body)
	}
	return body, resp.Header, nil
}

// logPath strips scheme and host so logs never carry the full URL with tokens in query.
func (c *Client) logPath(target string) string {
	u, err := url.Parse(target)
	if err != nil {
		return target
	}
	return u.Path
}

// getJSON fetches a single resource and decodes it into out.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	body, _, err := c.do(ctx, http.MethodGet, c.endpoint(path, params), nil)
	if err != nil {
		return err
	}
	return decode(body, out)
}

// sendJSON issues a write request and decodes the response into out when non-nil.
func (c *Client) sendJSON(ctx context.Context, method, path string, data, out any) error {
	body, _, err := c.do(ctx, method, c.endpoint(path, nil), data)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decode(body, out)
}

func decode(body []byte, out any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode canvas response: %w", err)
	}
	return nil
}

// getAllPages fetches a list endpoint and follows rel="next" links until the
// last page. Query parameters go on the first request only; each next link is
// requested verbatim since it already encodes them. Any page failure discards
// everything gathered so far.
func getAllPages[T any](ctx context.Context, c *Client, path string, params url.Values) ([]T, error) {
	first := url.Values{}
	for k, v := range params {
		first[k] = append([]string(nil), v...)
	}
	if first.Get("per_page") == "" {
		first.Set("per_page", strconv.Itoa(c.perPage))
	}

	var all []T
	target := c.endpoint(path, first)
	pages := 0
	for target != "" {
		body, header, err := c.do(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, err
		}
		pages++

		var page []T
		if err := decode(body, &page); err != nil {
			return nil, err
		}
		all = append(all, page...)

		next := parseLinkHeader(header.Get("Link"))["next"]
		if next != "" && !c.sameOrigin(next) {
			c.logger.Warn().Str("path", path).Str("next", next).Msg("refusing cross-origin pagination link")
			return nil, ErrForeignNextLink
		}
		target = next
	}

	c.logger.Debug().Str("path", path).Int("pages", pages).Int("items", len(all)).Msg("canvas list complete")
	if all == nil {
		all = []T{}
	}
	return all, nil
}

// listParams builds a query from Rails-style array parameters such as include[].
func listParams(pairs ...string) url.Values {
	v := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		v.Add(pairs[i], pairs[i+1])
	}
	return v
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}
