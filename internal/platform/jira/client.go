package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/imamik/jiraseed/internal/config"
)

// Response is the outcome of a Read call.
type Response struct {
	Status   int
	Document Document
	// Body is the raw response body, kept for error reporting.
	Body string
}

// Found reports whether the read returned 200.
func (r *Response) Found() bool { return r.Status == http.StatusOK }

// Gateway performs the remote I/O the provisioning core needs.
type Gateway interface {
	// Read fetches a resource. Non-2xx statuses are returned, not treated as errors.
	Read(ctx context.Context, r Resource) (*Response, error)
	// Create posts doc to r and returns the decoded response.
	Create(ctx context.Context, r Resource, doc Document) (Document, error)
	// Replace puts doc to r and returns the decoded response.
	Replace(ctx context.Context, r Resource, doc Document) (Document, error)
	// Delete removes r.
	Delete(ctx context.Context, r Resource) error
}

// RESTClient implements Gateway against the Jira REST API v2.
type RESTClient struct {
	apiRoot  *url.URL
	username string
	password string
	timeouts *config.Timeouts

	newHTTPClient func() *http.Client

	mu     sync.Mutex
	client *http.Client
}

// ClientOption configures a RESTClient.
type ClientOption func(*RESTClient)

// WithTimeouts sets custom timeouts for the client.
func WithTimeouts(t *config.Timeouts) ClientOption {
	return func(c *RESTClient) {
		c.timeouts = t
	}
}

// WithHTTPClientFactory sets the constructor used when a transport is acquired.
func WithHTTPClientFactory(f func() *http.Client) ClientOption {
	return func(c *RESTClient) {
		c.newHTTPClient = f
	}
}

// NewRESTClient creates a client for the Jira instance at baseURL
// (e.g. http://localhost:2990/jira).
func NewRESTClient(baseURL, username, password string, opts ...ClientOption) (*RESTClient, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host are required", baseURL)
	}

	c := &RESTClient{
		apiRoot:  base.JoinPath("rest", "api", "2"),
		username: username,
		password: password,
		timeouts: config.LoadTimeouts(),
		newHTTPClient: func() *http.Client {
			return &http.Client{Transport: http.DefaultTransport.(*http.Transport).Clone()}
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// URL returns the absolute URL of r.
func (c *RESTClient) URL(r Resource) string {
	u := c.apiRoot.JoinPath(r.Segments...)
	u.RawQuery = r.Query.Encode()
	return u.String()
}

// Read implements Gateway.
func (c *RESTClient) Read(ctx context.Context, r Resource) (*Response, error) {
	status, body, err := c.do(ctx, http.MethodGet, r, nil)
	if err != nil {
		return nil, err
	}

	resp := &Response{Status: status, Body: string(body)}
	if isSuccess(status) {
		doc, err := decode(body)
		if err != nil {
			return nil, fmt.Errorf("GET %s: %w", r, err)
		}
		resp.Document = doc
	}
	return resp, nil
}

// Create implements Gateway.
func (c *RESTClient) Create(ctx context.Context, r Resource, doc Document) (Document, error) {
	return c.write(ctx, http.MethodPost, r, doc)
}

// Replace implements Gateway.
func (c *RESTClient) Replace(ctx context.Context, r Resource, doc Document) (Document, error) {
	return c.write(ctx, http.MethodPut, r, doc)
}

// Delete implements Gateway.
func (c *RESTClient) Delete(ctx context.Context, r Resource) error {
	_, err := c.write(ctx, http.MethodDelete, r, nil)
	return err
}

func (c *RESTClient) write(ctx context.Context, method string, r Resource, doc Document) (Document, error) {
	status, body, err := c.do(ctx, method, r, doc)
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, &RemoteError{Method: method, Resource: r.String(), Status: status, Body: string(body)}
	}

	out, err := decode(body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, r, err)
	}
	return out, nil
}

// do sends one request and returns status and body. The transport is released
// before returning.
func (c *RESTClient) do(ctx context.Context, method string, r Resource, doc Document) (int, []byte, error) {
	var bodyReader io.Reader
	if doc != nil {
		data, err := json.Marshal(doc)
		if err != nil {
			return 0, nil, fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	if c.timeouts != nil && c.timeouts.Request > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeouts.Request)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL(r), bodyReader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")
	if doc != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := c.acquire()
	defer c.release()

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", method, r, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: read response: %w", method, r, err)
	}
	return resp.StatusCode, body, nil
}

// acquire returns the HTTP client, creating it on first use.
func (c *RESTClient) acquire() *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client == nil {
		c.client = c.newHTTPClient()
	}
	return c.client
}

// release closes idle connections and drops the client.
func (c *RESTClient) release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		c.client.CloseIdleConnections()
	}
	c.client = nil
}

// Close releases the transport. It is safe to call more than once.
func (c *RESTClient) Close() error {
	c.release()
	return nil
}

// decode parses a JSON body. An empty body yields an empty document; a
// top-level array is wrapped under "items".
func decode(body []byte) (Document, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return Document{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	switch t := v.(type) {
	case map[string]any:
		return Document(t), nil
	case []any:
		return Document{"items": t}, nil
	default:
		return Document{"value": t}, nil
	}
}
