package probe

import (
	"context"
	"time"

	"github.com/go-ping/ping"

	"github.com/hamed0406/iptest/internal/domain"
)

// ICMPChecker probes with a single unprivileged ICMP echo. Useful where the
// TCP port is filtered but ping is allowed. ICMP has no notion of an actively
// refused connection, so this checker never produces OutcomeRefused.
type ICMPChecker struct{}

func NewICMPChecker() *ICMPChecker {
	return &ICMPChecker{}
}

func (c *ICMPChecker) Check(ctx context.Context, addr string, timeout time.Duration) domain.Attempt {
	start := time.Now()
	a := domain.Attempt{At: start.UTC()}

	pinger, err := ping.NewPinger(addr)
	if err != nil {
		a.Outcome = domain.OutcomeError
		a.Message = err.Error()
		return a
	}
	pinger.SetPrivileged(false)
	pinger.Count = 1
	pinger.Timeout = timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			pinger.Timeout = remaining
		}
	}

	if err := pinger.Run(); err != nil {
		a.LatencyMS = float64(time.Since(start).Microseconds()) / 1000.0
		a.Outcome = domain.OutcomeError
		a.Message = err.Error()
		return a
	}

	stats := pinger.Statistics()
	if stats.PacketsRecv == 0 {
		a.LatencyMS = float64(time.Since(start).Microseconds()) / 1000.0
		a.Outcome = domain.OutcomeTimeout
		a.Message = "no echo reply within timeout"
		return a
	}

	a.LatencyMS = float64(stats.AvgRtt.Microseconds()) / 1000.0
	a.Outcome = domain.OutcomeSuccess
	return a
}
