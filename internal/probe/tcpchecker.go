package probe

import (
	"context"
	"errors"
	"net"
	"os"
	"strconv"
	"syscall"
	"time"

	"github.com/hamed0406/iptest/internal/domain"
)

// TCPChecker probes by opening a TCP connection to a fixed port and timing
// the handshake. "Reachable" here means the target accepted the connection.
type TCPChecker struct {
	Port int
}

func NewTCPChecker(port int) *TCPChecker {
	return &TCPChecker{Port: port}
}

func (c *TCPChecker) Check(ctx context.Context, addr string, timeout time.Duration) domain.Attempt {
	d := net.Dialer{Timeout: timeout}
	hostport := net.JoinHostPort(addr, strconv.Itoa(c.Port))

	start := time.Now()
	conn, err := d.DialContext(ctx, "tcp", hostport)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	a := domain.Attempt{LatencyMS: elapsed, At: start.UTC()}
	if err == nil {
		_ = conn.Close()
		a.Outcome = domain.OutcomeSuccess
		return a
	}

	a.Outcome = classifyDialError(err)
	a.Message = err.Error()
	return a
}

func classifyDialError(err error) domain.Outcome {
	var ne net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), os.IsTimeout(err):
		return domain.OutcomeTimeout
	case errors.As(err, &ne) && ne.Timeout():
		return domain.OutcomeTimeout
	case errors.Is(err, syscall.ECONNREFUSED):
		return domain.OutcomeRefused
	default:
		return domain.OutcomeError
	}
}
