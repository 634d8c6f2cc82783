package xpa

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/pior/xpa/wire"
	"github.com/sony/gobreaker/v2"
)

// TCPTransportConfig configures a TCPTransport.
type TCPTransportConfig struct {
	// Resolver maps access point templates to endpoints. Required.
	Resolver Resolver

	// Selector picks recipients when a template matches more servers than
	// the request addresses. Nil means DefaultSelector.
	Selector Selector

	// PoolSize is the maximum number of connections kept per endpoint.
	// Zero means 2.
	PoolSize int32

	// Dialer is used to open endpoint connections. Nil means a default
	// net.Dialer.
	Dialer *net.Dialer

	// NewBreaker, when set, is called once per endpoint address to create
	// its circuit breaker. See NewBreaker.
	NewBreaker func(addr string) *gobreaker.CircuitBreaker[*wire.Reply]

	// dial is a test hook replacing the network dial.
	dial func(ctx context.Context, endpoint Endpoint) (*conn, error)
}

// TCPTransport is the default Transport: it resolves access points through
// a Resolver, keeps a lazily created connection pool per endpoint and fans
// a request out to the selected recipients, sequentially, in resolution
// order.
//
// A recipient that cannot be reached or answers garbage does not fail the
// fan-out: it contributes an error-tagged reply, the way XPA proxies
// delivery failures into the answer set.
type TCPTransport struct {
	cfg TCPTransportConfig

	mu     sync.Mutex
	pools  map[string]*endpointPool
	closed bool
}

type endpointPool struct {
	pool    *connPool
	breaker *gobreaker.CircuitBreaker[*wire.Reply]
}

// NewTCPTransport builds a TCPTransport. The resolver is required.
func NewTCPTransport(cfg TCPTransportConfig) (*TCPTransport, error) {
	if cfg.Resolver == nil {
		return nil, fmt.Errorf("xpa: TCPTransport requires a resolver")
	}
	if cfg.Selector == nil {
		cfg.Selector = DefaultSelector
	}
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = 2
	}
	if cfg.Dialer == nil {
		cfg.Dialer = &net.Dialer{}
	}
	if cfg.dial == nil {
		dialer := cfg.Dialer
		cfg.dial = func(ctx context.Context, endpoint Endpoint) (*conn, error) {
			nc, err := dialer.DialContext(ctx, "tcp", endpoint.Addr)
			if err != nil {
				return nil, err
			}
			return newConn(endpoint, nc), nil
		}
	}
	return &TCPTransport{
		cfg:   cfg,
		pools: make(map[string]*endpointPool),
	}, nil
}

// Get implements Transport.
func (t *TCPTransport) Get(ctx context.Context, accessPoint, command string, max int) ([]Reply, error) {
	return t.fanOut(ctx, accessPoint, max, func() *wire.Request {
		return wire.NewGetRequest(accessPoint, command)
	})
}

// Set implements Transport.
func (t *TCPTransport) Set(ctx context.Context, accessPoint, command string, data []byte, max int) ([]Reply, error) {
	return t.fanOut(ctx, accessPoint, max, func() *wire.Request {
		return wire.NewSetRequest(accessPoint, command, data)
	})
}

// fanOut resolves the access point, selects recipients and collects one
// reply per recipient. newRequest is called per recipient so that every
// exchange gets its own correlation token.
func (t *TCPTransport) fanOut(ctx context.Context, accessPoint string, max int, newRequest func() *wire.Request) ([]Reply, error) {
	if t.isClosed() {
		return nil, net.ErrClosed
	}

	endpoints, err := t.cfg.Resolver.Resolve(ctx, accessPoint)
	if err != nil {
		return nil, err
	}
	if max < len(endpoints) {
		endpoints = pickEndpoints(t.cfg.Selector, accessPoint, endpoints, max)
	}

	replies := make([]Reply, 0, len(endpoints))
	for _, endpoint := range endpoints {
		wr, err := t.exchange(ctx, endpoint, newRequest())
		if err != nil {
			// The context ending aborts the whole fan-out; anything
			// else is one recipient failing.
			if ctx.Err() != nil {
				return replies, ctx.Err()
			}
			replies = append(replies, failureReply(endpoint, err))
			continue
		}
		replies = append(replies, Reply{
			Server:  serverName(endpoint, wr),
			Message: wr.Message,
			Data:    wr.Data,
		})
	}
	return replies, nil
}

// exchange runs one request against one endpoint through its pool, wrapped
// by the endpoint's circuit breaker when one is configured.
func (t *TCPTransport) exchange(ctx context.Context, endpoint Endpoint, req *wire.Request) (*wire.Reply, error) {
	ep, err := t.poolFor(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	run := func() (*wire.Reply, error) {
		var reply *wire.Reply
		err := ep.pool.withConn(ctx, func(c *conn) error {
			var err error
			reply, err = c.exchange(ctx, req)
			return err
		})
		return reply, err
	}

	if ep.breaker != nil {
		return ep.breaker.Execute(run)
	}
	return run()
}

func (t *TCPTransport) poolFor(ctx context.Context, endpoint Endpoint) (*endpointPool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil, net.ErrClosed
	}
	if ep, ok := t.pools[endpoint.Addr]; ok {
		return ep, nil
	}

	dial := t.cfg.dial
	pool, err := newConnPool(func(ctx context.Context) (*conn, error) {
		return dial(ctx, endpoint)
	}, t.cfg.PoolSize)
	if err != nil {
		return nil, err
	}

	ep := &endpointPool{pool: pool}
	if t.cfg.NewBreaker != nil {
		ep.breaker = t.cfg.NewBreaker(endpoint.Addr)
	}
	t.pools[endpoint.Addr] = ep
	return ep, nil
}

func (t *TCPTransport) isClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

// Close implements Transport. Idempotent.
func (t *TCPTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true
	for _, ep := range t.pools {
		ep.pool.close()
	}
	t.pools = nil
	return nil
}

// failureReply converts a per-recipient delivery failure into an
// error-tagged reply, preserving XPA's convention that one dead server
// shows up in the answer set rather than failing the request.
func failureReply(endpoint Endpoint, err error) Reply {
	return Reply{
		Server:  endpoint.Name,
		Message: fmt.Sprintf("%s %v (%s)", ErrorPrefix, err, endpoint.Name),
	}
}

// serverName prefers the identity the server reported on its XPA$END line.
func serverName(endpoint Endpoint, wr *wire.Reply) string {
	if wr.Server != "" {
		return wr.Server
	}
	return endpoint.Name
}
