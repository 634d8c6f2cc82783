package xpa

import "context"

// Transport delivers requests to the servers behind an access point and
// returns the per-recipient replies, in delivery order.
//
// A Transport owns discovery, routing and delivery; the Client only
// aggregates what it returns. Implementations must return at most max
// replies and must report failures to reach the messaging system itself
// (as opposed to failures of individual recipients) as an error.
type Transport interface {
	// Get requests data from up to max recipients behind accessPoint.
	Get(ctx context.Context, accessPoint, command string, max int) ([]Reply, error)

	// Set sends data to up to max recipients behind accessPoint. Set
	// replies never carry a payload.
	Set(ctx context.Context, accessPoint, command string, data []byte, max int) ([]Reply, error)

	// Close releases the transport's connections. Idempotent.
	Close() error
}
