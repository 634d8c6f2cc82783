package xpa

import (
	"time"

	"github.com/pior/xpa/wire"
	"github.com/sony/gobreaker/v2"
)

// NewBreaker returns a factory producing one circuit breaker per endpoint
// address, for TCPTransportConfig.NewBreaker. An endpoint whose breaker is
// open fails fast with an error-tagged reply instead of waiting out a dial
// timeout on every request.
func NewBreaker(maxRequests uint32, interval, timeout time.Duration) func(addr string) *gobreaker.CircuitBreaker[*wire.Reply] {
	return func(addr string) *gobreaker.CircuitBreaker[*wire.Reply] {
		return gobreaker.NewCircuitBreaker[*wire.Reply](gobreaker.Settings{
			Name:        addr,
			MaxRequests: maxRequests,
			Interval:    interval,
			Timeout:     timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && failureRatio >= 0.6
			},
		})
	}
}
