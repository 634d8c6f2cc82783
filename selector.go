package xpa

import (
	"github.com/pior/xpa/internal"
	"github.com/zeebo/xxh3"
)

// Selector picks the starting offset into a resolved endpoint list when a
// request addresses fewer recipients than the template matches. Recipients
// are taken cyclically from the returned offset.
type Selector func(accessPoint string, endpointCount int) int

// DefaultSelector hashes the access point with xxh3 and maps it with Jump
// Hash. The pick is deterministic for a given access point and stable under
// endpoint additions and removals, so repeated single-recipient requests to
// the same template keep landing on the same server.
func DefaultSelector(accessPoint string, endpointCount int) int {
	return internal.JumpHash(xxh3.HashString(accessPoint), endpointCount)
}

// firstSelector always starts at the head of the endpoint list. Used in
// tests to keep recipient order predictable.
func firstSelector(string, int) int { return 0 }

// pickEndpoints returns up to max endpoints, cyclically from the offset the
// selector chose. With max >= len(endpoints) the full list is returned in
// resolution order.
func pickEndpoints(sel Selector, accessPoint string, endpoints []Endpoint, max int) []Endpoint {
	if max >= len(endpoints) {
		return endpoints
	}
	start := sel(accessPoint, len(endpoints)) % len(endpoints)
	out := make([]Endpoint, 0, max)
	for i := 0; i < max; i++ {
		out = append(out, endpoints[(start+i)%len(endpoints)])
	}
	return out
}
