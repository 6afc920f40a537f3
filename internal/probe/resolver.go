package probe

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/hamed0406/iptest/internal/target"
)

// Resolver maps a validated target to one concrete address. The engine
// resolves once per request and reuses the address for every attempt, so a
// target cannot flap between addresses mid-request.
type Resolver interface {
	Resolve(ctx context.Context, tg target.Target) (string, error)
}

// NetResolver resolves through the OS resolver with a bounded timeout.
type NetResolver struct {
	Timeout time.Duration
}

func NewNetResolver(timeout time.Duration) *NetResolver {
	return &NetResolver{Timeout: timeout}
}

func (r *NetResolver) Resolve(ctx context.Context, tg target.Target) (string, error) {
	if tg.IsIP {
		return tg.Host, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	ips, err := net.DefaultResolver.LookupIP(ctx, "ip", tg.Host)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", tg.Host, err)
	}
	if len(ips) == 0 {
		return "", fmt.Errorf("resolve %s: no addresses", tg.Host)
	}
	return ips[0].String(), nil
}
