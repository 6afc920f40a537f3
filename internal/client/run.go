package client

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/hamed0406/iptest/internal/domain"
	"github.com/hamed0406/iptest/internal/logging"
)

// Exit codes of the iptest CLI. Target unreachability and service
// unreachability are distinct failures and must stay distinguishable in
// scripts.
const (
	ExitReachable          = 0
	ExitUnreachable        = 1
	ExitInvalidTarget      = 2
	ExitServiceUnreachable = 3
	ExitUsage              = 4
)

// DefaultTarget is probed when the command is invoked without an argument,
// so a bare `iptest` still performs a useful test.
const DefaultTarget = "8.8.8.8"

// Run is the client runtime: resolve the endpoint, issue one lookup (or a
// health check), render the result, map it to an exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("iptest", flag.ContinueOnError)
	fs.SetOutput(stderr)
	health := fs.Bool("health", false, "check server liveness instead of probing a target")
	jsonOut := fs.Bool("json", false, "print the raw server response as JSON")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(stderr, "usage: iptest [flags] [target]")
		return ExitUsage
	}

	log := logging.NewConsole()
	defer func() { _ = log.Sync() }()

	ep := ResolveEndpoint(log)
	c := New(ep)
	ctx := context.Background()

	if *health {
		status, err := c.Health(ctx)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return ExitServiceUnreachable
		}
		fmt.Fprintf(stdout, "server %s: %s\n", ep.BaseURL, status)
		return ExitReachable
	}

	tgt := DefaultTarget
	if fs.NArg() == 1 && fs.Arg(0) != "" {
		tgt = fs.Arg(0)
	}

	resp, err := c.Lookup(ctx, tgt)
	if err != nil {
		if errors.Is(err, ErrServiceUnreachable) {
			fmt.Fprintln(stderr, err)
			return ExitServiceUnreachable
		}
		fmt.Fprintf(stderr, "lookup failed: %v\n", err)
		return ExitUsage
	}

	if *jsonOut {
		writeRawJSON(stdout, resp)
	} else {
		Render(stdout, resp)
	}

	switch resp.Status {
	case domain.StatusReachable:
		return ExitReachable
	case domain.StatusInvalidTarget:
		return ExitInvalidTarget
	default:
		return ExitUnreachable
	}
}

func writeRawJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
