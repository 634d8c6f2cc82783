package xpa

import (
	"context"

	"github.com/jackc/puddle/v2"
)

// connPool is a puddle-backed pool of connections to one endpoint.
type connPool struct {
	pool *puddle.Pool[*conn]
}

func newConnPool(constructor func(ctx context.Context) (*conn, error), maxSize int32) (*connPool, error) {
	pool, err := puddle.NewPool(&puddle.Config[*conn]{
		Constructor: constructor,
		Destructor: func(c *conn) {
			_ = c.close()
		},
		MaxSize: maxSize,
	})
	if err != nil {
		return nil, err
	}
	return &connPool{pool: pool}, nil
}

// withConn runs fn with a pooled connection. Connections that fn leaves in
// a closed state are destroyed instead of released, so a wire error never
// poisons the pool.
func (p *connPool) withConn(ctx context.Context, fn func(c *conn) error) error {
	res, err := p.pool.Acquire(ctx)
	if err != nil {
		return err
	}

	c := res.Value()
	if c.isClosed() {
		res.Destroy()
		return p.withConn(ctx, fn)
	}

	err = fn(c)
	if c.isClosed() {
		res.Destroy()
	} else {
		res.Release()
	}
	return err
}

func (p *connPool) close() { p.pool.Close() }
