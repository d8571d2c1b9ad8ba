package client

import (
	"context"
	"log/slog"
	"net/url"
	"sync"

	"github.com/lubluniky/cent-client-go/internal/transport"
)

// Poster performs the HTTP exchange for a signed API request. It posts form
// as an application/x-www-form-urlencoded body to rawURL and returns the
// response body, or fails with a transport error.
//
// The default implementation is backed by net/http. Tests and callers with
// their own transport stack can supply another via WithTransport.
type Poster interface {
	PostForm(ctx context.Context, rawURL string, form url.Values) ([]byte, error)
}

// Client sends signed commands to the server API and generates the tokens
// browser clients need to connect and subscribe to private channels.
//
// A Client is safe for concurrent use as long as its Poster is. Setters may
// be called at any time; each request works on a snapshot of the
// configuration taken when it starts.
type Client struct {
	mu            sync.RWMutex
	apiURL        string
	secret        string
	hashAlgorithm string
	transport     Poster
	logger        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithAPIURL sets the server API endpoint.
func WithAPIURL(u string) Option {
	return func(c *Client) { c.apiURL = u }
}

// WithSecret sets the secret shared with the server.
func WithSecret(secret string) Option {
	return func(c *Client) { c.secret = secret }
}

// WithHashAlgorithm sets the HMAC digest algorithm. The name is not checked
// here; an unknown algorithm fails the first signing operation.
func WithHashAlgorithm(algorithm string) Option {
	return func(c *Client) { c.hashAlgorithm = algorithm }
}

// WithTransport replaces the HTTP transport. A nil Poster is ignored.
func WithTransport(p Poster) Option {
	return func(c *Client) {
		if p != nil {
			c.transport = p
		}
	}
}

// WithLogger sets the logger used for per-request debug records. Secrets and
// signs are never logged.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a Client. Without options it targets DefaultAPIURL with
// an empty secret, DefaultHashAlgorithm and a net/http transport with a 10s
// timeout.
func NewClient(opts ...Option) *Client {
	c := &Client{
		apiURL:        DefaultAPIURL,
		hashAlgorithm: DefaultHashAlgorithm,
		transport:     transport.NewHTTPClient(),
		logger:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetAPIURL changes the server API endpoint.
func (c *Client) SetAPIURL(u string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apiURL = u
}

// SetSecret changes the secret used to sign API requests.
func (c *Client) SetSecret(secret string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.secret = secret
}

// SetHashAlgorithm changes the HMAC digest algorithm for subsequent signing
// operations.
func (c *Client) SetHashAlgorithm(algorithm string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hashAlgorithm = algorithm
}

// SetTransport replaces the HTTP transport. A nil Poster is ignored.
func (c *Client) SetTransport(p Poster) {
	if p == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transport = p
}

// APIURL returns the configured server API endpoint.
func (c *Client) APIURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.apiURL
}

// HashAlgorithm returns the configured HMAC digest algorithm.
func (c *Client) HashAlgorithm() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hashAlgorithm
}

type config struct {
	apiURL        string
	secret        string
	hashAlgorithm string
	transport     Poster
}

func (c *Client) snapshot() config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return config{
		apiURL:        c.apiURL,
		secret:        c.secret,
		hashAlgorithm: c.hashAlgorithm,
		transport:     c.transport,
	}
}
