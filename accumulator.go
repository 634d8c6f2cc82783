package xpa

// MaxReplies is the protocol's maximum number of recipients for a single
// request, and therefore the capacity of the staging area.
const MaxReplies = 100

// accumulator is the staging area between a transport call and Answer
// construction. It transiently owns the replies of exactly one request;
// newAnswer drains it, so replies are never reachable from two places.
//
// The accumulator is reset at the start of every request and defensively
// after construction, so leftovers from an aborted operation never leak
// into the next Answer. It is not safe for concurrent use; the Client
// serializes access.
type accumulator struct {
	replies []Reply
}

func newAccumulator() *accumulator {
	return &accumulator{replies: make([]Reply, 0, MaxReplies)}
}

// reset drops every staged reply. It is idempotent and safe to call on a
// partially drained accumulator: slots are zeroed one by one before the
// slice is truncated, so an interrupted reset can simply be resumed.
func (s *accumulator) reset() {
	for i := range s.replies {
		s.replies[i] = Reply{}
	}
	s.replies = s.replies[:0]
}

// put stages one reply. Replies beyond MaxReplies are dropped; the
// transport is handed the same bound and should never produce more.
func (s *accumulator) put(r Reply) {
	if len(s.replies) >= MaxReplies {
		return
	}
	s.replies = append(s.replies, r)
}

// drain moves the staged replies out, leaving the accumulator empty.
// The returned slice is owned by the caller.
func (s *accumulator) drain() []Reply {
	out := make([]Reply, len(s.replies))
	copy(out, s.replies)
	s.reset()
	return out
}

func (s *accumulator) len() int { return len(s.replies) }
