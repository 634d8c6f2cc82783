package xpa

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strings"
)

// RegistryAccessPoint is the well-known access point of the name registry
// itself. Getting it lists every registered server, one per line.
const RegistryAccessPoint = "xpans"

// RegistryResolver resolves access point templates by asking an xpans-style
// name registry over TCP.
//
// The lookup protocol is a single line exchange:
//
//	-> lookup <template>\r\n
//	<- <name> <addr>\r\n        (one line per matching server)
//	<- \r\n                     (empty line terminates the listing)
//
// The registry is itself an XPA server, addressable through the
// RegistryAccessPoint template; that is what Client.ListServers relies on.
type RegistryResolver struct {
	addr   string
	dialer net.Dialer
}

// NewRegistryResolver builds a resolver that queries the registry at addr.
func NewRegistryResolver(addr string) *RegistryResolver {
	return &RegistryResolver{addr: addr}
}

// Resolve queries the registry for every endpoint the template addresses.
// The registry access point resolves to the registry itself without a
// network round trip.
func (r *RegistryResolver) Resolve(ctx context.Context, template string) ([]Endpoint, error) {
	if template == RegistryAccessPoint {
		return []Endpoint{{Name: "XPANS:" + RegistryAccessPoint, Addr: r.addr}}, nil
	}

	conn, err := r.dialer.DialContext(ctx, "tcp", r.addr)
	if err != nil {
		return nil, fmt.Errorf("registry lookup: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	if _, err := fmt.Fprintf(conn, "lookup %s\r\n", template); err != nil {
		return nil, fmt.Errorf("registry lookup: %w", err)
	}

	var out []Endpoint
	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("registry lookup: %w", err)
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			return out, nil
		}
		name, addr, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("registry lookup: malformed entry %q", line)
		}
		out = append(out, Endpoint{Name: name, Addr: addr})
	}
}
