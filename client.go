package xpa

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/pior/xpa/wire"
	"github.com/sony/gobreaker/v2"
)

// AllServers is the max-recipients sentinel requesting the protocol's
// maximum (MaxReplies) instead of a fixed count.
const AllServers = -1

// Config holds configuration for a Client.
type Config struct {
	// Registry is the address of the xpans-style name registry. Ignored
	// when Resolver is set.
	Registry string

	// Resolver overrides registry-based resolution, e.g. with a
	// StaticResolver over known endpoints.
	Resolver Resolver

	// MaxRecipients is the default recipient bound per request. Zero
	// means 1; AllServers means the protocol maximum. Individual requests
	// override it with WithMaxRecipients.
	MaxRecipients int

	// PoolSize is the maximum number of pooled connections per endpoint.
	// Zero means the transport default.
	PoolSize int32

	// Dialer is used to open endpoint connections. Nil means a default
	// net.Dialer.
	Dialer *net.Dialer

	// NewBreaker, when set, gives every endpoint a circuit breaker.
	// See NewBreaker.
	NewBreaker func(addr string) *gobreaker.CircuitBreaker[*wire.Reply]

	// Logger, when set, receives connection-lifecycle debug logging.
	Logger *log.Logger

	// Transport replaces the default TCPTransport. For tests and for
	// embedding environments with their own delivery layer.
	Transport Transport
}

// Client is a session with the XPA messaging system. It opens its transport
// lazily on the first request and closes it exactly once.
//
// A Client serializes its requests: the staging area between the transport
// and the Answer under construction is shared state, and no request may
// begin while it holds replies from the previous one. Concurrent callers
// simply block; there are no overlapping in-flight requests.
type Client struct {
	cfg Config

	mu        sync.Mutex
	transport Transport
	acc       *accumulator
	closed    bool
}

// NewClient creates a Client. The connection is not opened until Connect or
// the first request.
func NewClient(cfg Config) *Client {
	return &Client{
		cfg: cfg,
		acc: newAccumulator(),
	}
}

// Connect opens the transport now instead of on the first request. It
// fails with a *ConnError when no transport can be set up; retrying is the
// caller's decision, the client never retries internally.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := c.ensureTransport(ctx)
	return err
}

// ensureTransport lazily builds the transport. Must be called with the
// lock held.
func (c *Client) ensureTransport(_ context.Context) (Transport, error) {
	if c.closed {
		return nil, &ConnError{Op: "connect", Err: net.ErrClosed}
	}
	if c.transport != nil {
		return c.transport, nil
	}
	if c.cfg.Transport != nil {
		c.transport = c.cfg.Transport
		return c.transport, nil
	}

	resolver := c.cfg.Resolver
	if resolver == nil {
		if c.cfg.Registry == "" {
			return nil, &ConnError{Op: "connect", Err: fmt.Errorf("no registry address and no resolver configured")}
		}
		resolver = NewRegistryResolver(c.cfg.Registry)
	}

	transport, err := NewTCPTransport(TCPTransportConfig{
		Resolver:   resolver,
		PoolSize:   c.cfg.PoolSize,
		Dialer:     c.cfg.Dialer,
		NewBreaker: c.cfg.NewBreaker,
	})
	if err != nil {
		return nil, &ConnError{Op: "connect", Err: err}
	}
	if c.cfg.Logger != nil {
		c.cfg.Logger.Debug("xpa transport opened", "registry", c.cfg.Registry)
	}
	c.transport = transport
	return c.transport, nil
}

// Close closes the transport. Idempotent; a closed client rejects further
// requests with a *ConnError.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.acc.reset()

	if c.transport == nil {
		return nil
	}
	transport := c.transport
	c.transport = nil
	if c.cfg.Logger != nil {
		c.cfg.Logger.Debug("xpa transport closed")
	}
	return transport.Close()
}

// RequestOption adjusts a single request.
type RequestOption func(*requestOptions)

type requestOptions struct {
	maxRecipients int
}

// WithMaxRecipients bounds the number of recipients for one request.
// AllServers requests the protocol maximum.
func WithMaxRecipients(n int) RequestOption {
	return func(o *requestOptions) { o.maxRecipients = n }
}

// maxRecipients resolves the effective bound: request option, then client
// default, then 1; the AllServers sentinel and anything above MaxReplies
// clamp to MaxReplies.
func (c *Client) maxRecipients(opts []RequestOption) (int, error) {
	o := requestOptions{maxRecipients: c.cfg.MaxRecipients}
	for _, opt := range opts {
		opt(&o)
	}
	switch {
	case o.maxRecipients == 0:
		return 1, nil
	case o.maxRecipients == AllServers, o.maxRecipients > MaxReplies:
		return MaxReplies, nil
	case o.maxRecipients < 0:
		return 0, usageErrorf("invalid max recipients %d", o.maxRecipients)
	}
	return o.maxRecipients, nil
}

// Get issues a get request against accessPoint and returns the aggregated
// answer. command may be empty. Error-tagged replies do not fail the call;
// check them with CheckErrors or Answer.Errors.
func (c *Client) Get(ctx context.Context, accessPoint, command string, opts ...RequestOption) (*Answer, error) {
	return c.request(ctx, "get", opts, func(t Transport, max int) ([]Reply, error) {
		return t.Get(ctx, accessPoint, command, max)
	})
}

// Set issues a set request against accessPoint, sending data. Set replies
// carry status and server identity but never a payload.
func (c *Client) Set(ctx context.Context, accessPoint, command string, data []byte, opts ...RequestOption) (*Answer, error) {
	return c.request(ctx, "set", opts, func(t Transport, max int) ([]Reply, error) {
		return t.Set(ctx, accessPoint, command, data, max)
	})
}

// request is the single-flight critical section: reset the staging area,
// run the transport call, move the staged replies into a fresh Answer.
func (c *Client) request(ctx context.Context, op string, opts []RequestOption, call func(t Transport, max int) ([]Reply, error)) (*Answer, error) {
	max, err := c.maxRecipients(opts)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Fail before touching the staging area when there is no transport.
	transport, err := c.ensureTransport(ctx)
	if err != nil {
		return nil, err
	}

	// Clean slate: drop leftovers from any aborted prior operation.
	c.acc.reset()

	replies, err := call(transport, max)
	for _, r := range replies {
		c.acc.put(r)
	}
	if err != nil {
		c.acc.reset()
		return nil, &ConnError{Op: op, Err: err}
	}

	return newAnswer(c.acc), nil
}
