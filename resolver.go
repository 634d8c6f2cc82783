package xpa

import (
	"context"
	"path"
	"strings"
)

// Endpoint is one resolvable server: its identity and its network address.
type Endpoint struct {
	// Name is the server identity, conventionally "class:name".
	Name string

	// Addr is the dialable "host:port" address.
	Addr string
}

// Resolver maps an access point template to the endpoints it addresses.
// Resolution order is stable: the same template over the same server set
// yields the same endpoint order, which keeps reply order deterministic.
type Resolver interface {
	Resolve(ctx context.Context, template string) ([]Endpoint, error)
}

// MatchTemplate reports whether an access point template addresses the
// server named name ("class:name").
//
// A template containing a colon is matched against the full identity;
// otherwise it is matched against the name part and the class part
// separately. Glob wildcards follow path.Match ("*", "?", "[...]").
func MatchTemplate(template, name string) bool {
	if strings.Contains(template, ":") {
		return globMatch(template, name)
	}
	class, short, _ := strings.Cut(name, ":")
	return globMatch(template, short) || globMatch(template, class)
}

// globMatch treats a malformed pattern as matching nothing.
func globMatch(pattern, s string) bool {
	ok, err := path.Match(pattern, s)
	return err == nil && ok
}

// StaticResolver resolves templates against a fixed endpoint table.
// It is the zero-infrastructure alternative to RegistryResolver for
// deployments where server addresses are known up front.
type StaticResolver struct {
	endpoints []Endpoint
}

// NewStaticResolver builds a resolver over a fixed endpoint list. The list
// order is preserved by Resolve.
func NewStaticResolver(endpoints ...Endpoint) *StaticResolver {
	return &StaticResolver{endpoints: append([]Endpoint(nil), endpoints...)}
}

// Resolve returns every endpoint whose name the template addresses. An
// exact address match ("host:port") is honored as well, so callers can
// bypass naming entirely.
func (r *StaticResolver) Resolve(_ context.Context, template string) ([]Endpoint, error) {
	var out []Endpoint
	for _, ep := range r.endpoints {
		if MatchTemplate(template, ep.Name) || template == ep.Addr {
			out = append(out, ep)
		}
	}
	return out, nil
}
