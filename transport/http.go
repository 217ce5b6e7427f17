package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/kndndrj/go-arango/core"
	"github.com/kndndrj/go-arango/logging"
)

const (
	// VersionHeader carries the API compatibility version on every request.
	VersionHeader = "X-Arango-Version"
	// APICompatibilityVersion is major*10000 + minor*100 of the oldest
	// supported server.
	APICompatibilityVersion = "20200"
)

var ErrInvalidURL = errors.New("invalid server url")

var _ core.Transport = (*HTTP)(nil)

// HTTP executes requests against a server base URL.
type HTTP struct {
	baseURL string
	client  *http.Client

	username string
	password string
	auth     bool

	apiVersion   string
	log          logging.Logger
	debugHeaders bool
}

type Option func(*HTTP)

// WithClient replaces the default pooled client.
func WithClient(client *http.Client) Option {
	return func(h *HTTP) {
		if client != nil {
			h.client = client
		}
	}
}

func WithBasicAuth(username, password string) Option {
	return func(h *HTTP) {
		h.username = username
		h.password = password
		h.auth = true
	}
}

func WithLogger(log logging.Logger) Option {
	return func(h *HTTP) {
		if log != nil {
			h.log = log
		}
	}
}

// WithDebugHeaders appends request and response headers to debug logs.
func WithDebugHeaders(enabled bool) Option {
	return func(h *HTTP) {
		h.debugHeaders = enabled
	}
}

func WithAPIVersion(version string) Option {
	return func(h *HTTP) {
		h.apiVersion = version
	}
}

// New creates a transport for baseURL, e.g. http://localhost:8529.
func New(baseURL string, opts ...Option) (*HTTP, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("url.Parse: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, baseURL)
	}

	h := &HTTP{
		baseURL:    strings.TrimRight(u.String(), "/"),
		client:     cleanhttp.DefaultPooledClient(),
		apiVersion: APICompatibilityVersion,
		log:        logging.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}

	return h, nil
}

// FromParams builds a transport from connection parameters.
func FromParams(params *core.ConnectionParams, opts ...Option) (*HTTP, error) {
	all := []Option{WithDebugHeaders(params.DebugHeaders)}
	if params.Username != "" {
		all = append(all, WithBasicAuth(params.Username, params.Password))
	}
	return New(params.URL, append(all, opts...)...)
}

// Do sends the request. Only transport failures are returned as errors, the
// status code is left to the caller.
func (h *HTTP) Do(ctx context.Context, req *core.Request) (*core.Response, error) {
	target := h.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("json.Marshal: %w", err)
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if h.apiVersion != "" {
		httpReq.Header.Set(VersionHeader, h.apiVersion)
	}
	if h.auth {
		httpReq.SetBasicAuth(h.username, h.password)
	}

	h.log.Debugf("%s %s%s", req.Method, target, h.dumpHeaders(httpReq.Header))

	resp, err := h.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("client.Do: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll: %w", err)
	}

	h.log.Debugf("%s %s %d%s", req.Method, target, resp.StatusCode, h.dumpHeaders(resp.Header))

	return &core.Response{
		StatusCode: resp.StatusCode,
		Path:       req.Path,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

// dumpHeaders renders headers on one line, credentials masked.
func (h *HTTP) dumpHeaders(header http.Header) string {
	if !h.debugHeaders || len(header) == 0 {
		return ""
	}

	names := make([]string, 0, len(header))
	for name := range header {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		value := strings.Join(header.Values(name), ", ")
		if name == "Authorization" {
			value = "[redacted]"
		}
		fmt.Fprintf(&sb, " %s: %q", name, value)
	}
	return sb.String()
}
