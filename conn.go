package xpa

import (
	"bufio"
	"context"
	"net"
	"sync"
	"time"

	"github.com/pior/xpa/wire"
)

// conn is a single connection to one server endpoint. Exchanges are
// strictly request/reply, serialized by a mutex: the wire dialect has no
// pipelining.
type conn struct {
	endpoint Endpoint
	nc       net.Conn
	reader   *bufio.Reader
	writer   *bufio.Writer

	mu     sync.Mutex
	closed bool
}

func newConn(endpoint Endpoint, nc net.Conn) *conn {
	return &conn{
		endpoint: endpoint,
		nc:       nc,
		reader:   bufio.NewReader(nc),
		writer:   bufio.NewWriter(nc),
	}
}

// exchange writes one request and reads the server's reply. On any wire
// error the connection is marked closed; the pool destroys it on release.
func (c *conn) exchange(ctx context.Context, req *wire.Request) (*wire.Reply, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, net.ErrClosed
	}

	if deadline, ok := ctx.Deadline(); ok {
		c.nc.SetDeadline(deadline)
	} else {
		c.nc.SetDeadline(time.Time{})
	}

	if err := wire.WriteRequest(c.writer, req); err != nil {
		c.markClosed()
		return nil, err
	}

	reply, err := wire.ReadReply(c.reader, req.ID)
	if err != nil {
		if wire.ShouldCloseConnection(err) {
			c.markClosed()
		}
		return nil, err
	}

	return reply, nil
}

func (c *conn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// markClosed must be called with the lock held.
func (c *conn) markClosed() { c.closed = true }

func (c *conn) close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.markClosed()
	return c.nc.Close()
}
