// Package http provides an HTTP-based implementation of pagevec.Fetcher.
// Pages are fetched with a single GET and no JavaScript execution.
package http

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/pagevec"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 6 * time.Second

// DefaultMaxBodySize caps how much of a response body is read.
const DefaultMaxBodySize = 10 << 20

// DefaultUserAgent is sent when no User-Agent is configured.
const DefaultUserAgent = "Mozilla/5.0 (compatible; pagevec/1.0)"

// Ensure Fetcher implements pagevec.Fetcher at compile time.
var _ pagevec.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP requests.
//
// Certificate validation is disabled: phishing hosts routinely serve
// self-signed or expired certificates and their markup is still wanted.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	maxBodySize int64
	userAgent   string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (6s) if not specified.
// Non-positive values are ignored; every request has a finite timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithMaxBodySize sets the maximum number of body bytes read per response.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxBodySize = n
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithClient replaces the underlying HTTP client. The client's timeout is
// overwritten with the configured fetch timeout.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		maxBodySize: DefaultMaxBodySize,
		userAgent:   DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true, //nolint:gosec // certificates of collected hosts are not trusted anyway
		}
		f.client = &http.Client{Transport: transport}
	}
	f.client.Timeout = f.timeout

	return f
}

// Fetch retrieves the HTML content from the given URL.
// The body is decoded to UTF-8 using the Content-Type header and
// in-document charset declarations.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", pagevec.Errorf(pagevec.EFETCH, "build request for %s: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", pagevec.Errorf(pagevec.EFETCH, "GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", pagevec.Errorf(pagevec.EFETCH, "HTTP %d for %s", resp.StatusCode, url)
	}

	body := io.LimitReader(resp.Body, f.maxBodySize)
	r, err := charset.NewReader(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", pagevec.Errorf(pagevec.EFETCH, "decode body of %s: %v", url, err)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", pagevec.Errorf(pagevec.EFETCH, "read body of %s: %v", url, err)
	}

	return string(data), nil
}

// Close releases idle connections held by the client.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
