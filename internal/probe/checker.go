package probe

import (
	"context"
	"time"

	"github.com/hamed0406/iptest/internal/domain"
)

// Checker performs a single probe of an already-resolved address and
// classifies the outcome. Implementations must honor both ctx and timeout;
// no call may block past whichever expires first.
type Checker interface {
	Check(ctx context.Context, addr string, timeout time.Duration) domain.Attempt
}
