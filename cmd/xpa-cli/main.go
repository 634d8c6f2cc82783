// Command xpa-cli is an interactive shell for XPA servers: get and set
// access points, list registered servers, inspect answers.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pior/xpa"
	"github.com/pior/xpa/internal/logger"
)

func main() {
	configPath := flag.String("config", "", "path to TOML config file")
	registry := flag.String("registry", "", "override the registry address")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *registry != "" {
		cfg.Registry = *registry
	}

	lg := logger.NewWithLevel("xpa", cfg.LogLevel)

	client := xpa.NewClient(xpa.Config{
		Registry:      cfg.Registry,
		Resolver:      cfg.resolver(),
		MaxRecipients: cfg.MaxRecipients,
		Logger:        lg,
	})
	defer client.Close()

	fmt.Println("xpa-cli")
	fmt.Println("Commands: get <apt> [cmd...], set <apt> <cmd...> < data, ls, info <apt>, quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		ctx := context.Background()

		switch strings.ToLower(parts[0]) {
		case "get":
			if len(parts) < 2 {
				fmt.Println("Usage: get <accesspoint> [command...]")
				continue
			}
			handleGet(ctx, client, parts[1], strings.Join(parts[2:], " "))

		case "set":
			if len(parts) < 3 {
				fmt.Println("Usage: set <accesspoint> <command...>")
				continue
			}
			handleSet(ctx, client, parts[1], strings.Join(parts[2:], " "))

		case "ls":
			handleList(ctx, client)

		case "info":
			if len(parts) != 2 {
				fmt.Println("Usage: info <accesspoint>")
				continue
			}
			handleInfo(ctx, client, parts[1])

		case "quit", "exit":
			return

		default:
			fmt.Printf("Unknown command: %s\n", parts[0])
		}
	}
}

func handleGet(ctx context.Context, client *xpa.Client, accessPoint, command string) {
	ans, err := client.Get(ctx, accessPoint, command)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	text, err := xpa.Text(ans)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Print(text)
	if !strings.HasSuffix(text, "\n") {
		fmt.Println()
	}
}

func handleSet(ctx context.Context, client *xpa.Client, accessPoint, command string) {
	// Data comes from stdin only when it is not the terminal.
	var data []byte
	if fi, err := os.Stdin.Stat(); err == nil && fi.Mode()&os.ModeCharDevice == 0 {
		data, _ = io.ReadAll(os.Stdin)
	}

	ans, err := client.Set(ctx, accessPoint, command, data)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if err := xpa.CheckErrors(ans, false); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println(ans)
}

func handleList(ctx context.Context, client *xpa.Client) {
	servers, err := client.ListServers(ctx)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	for _, s := range servers {
		fmt.Println(s)
	}
}

func handleInfo(ctx context.Context, client *xpa.Client, accessPoint string) {
	ans, err := client.Get(ctx, accessPoint, "", xpa.WithMaxRecipients(xpa.AllServers))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println(ans)
	for i := 1; i <= ans.Replies(); i++ {
		server, _ := ans.Server(i)
		size, _ := ans.Size(i)
		msg, _ := ans.Message(i)
		fmt.Printf("  %3d  %-24s %8d bytes  %s\n", i, server, size, msg)
	}
}
