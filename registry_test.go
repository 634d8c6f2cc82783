package xpa

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// startStubRegistry runs a one-connection-at-a-time registry speaking the
// lookup line protocol over a loopback listener.
func startStubRegistry(t *testing.T, entries map[string][]Endpoint) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer conn.Close()
				line, err := bufio.NewReader(conn).ReadString('\n')
				if err != nil {
					return
				}
				template := strings.TrimSpace(strings.TrimPrefix(strings.TrimRight(line, "\r\n"), "lookup"))
				for _, ep := range entries[template] {
					fmt.Fprintf(conn, "%s %s\r\n", ep.Name, ep.Addr)
				}
				fmt.Fprint(conn, "\r\n")
			}(conn)
		}
	}()

	return ln.Addr().String()
}

func TestRegistryResolver(t *testing.T) {
	addr := startStubRegistry(t, map[string][]Endpoint{
		"DS9:*": {
			{Name: "DS9:ds9", Addr: "10.0.0.1:7001"},
			{Name: "DS9:ds9b", Addr: "10.0.0.2:7001"},
		},
	})
	resolver := NewRegistryResolver(addr)
	ctx := context.Background()

	t.Run("lookup", func(t *testing.T) {
		endpoints, err := resolver.Resolve(ctx, "DS9:*")
		require.NoError(t, err)
		require.Equal(t, []Endpoint{
			{Name: "DS9:ds9", Addr: "10.0.0.1:7001"},
			{Name: "DS9:ds9b", Addr: "10.0.0.2:7001"},
		}, endpoints)
	})

	t.Run("no match", func(t *testing.T) {
		endpoints, err := resolver.Resolve(ctx, "missing")
		require.NoError(t, err)
		require.Empty(t, endpoints)
	})

	t.Run("registry access point resolves to the registry", func(t *testing.T) {
		endpoints, err := resolver.Resolve(ctx, RegistryAccessPoint)
		require.NoError(t, err)
		require.Equal(t, []Endpoint{{Name: "XPANS:xpans", Addr: addr}}, endpoints)
	})
}

func TestRegistryResolverUnreachable(t *testing.T) {
	resolver := NewRegistryResolver("127.0.0.1:1")
	_, err := resolver.Resolve(context.Background(), "DS9:*")
	require.Error(t, err)
}
