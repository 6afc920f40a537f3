package domain

import "time"

// Outcome classifies a single probe attempt.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeTimeout Outcome = "timeout"
	OutcomeRefused Outcome = "refused"
	OutcomeError   Outcome = "error"
)

// Status is the overall verdict for one lookup request.
type Status string

const (
	StatusReachable     Status = "reachable"
	StatusUnreachable   Status = "unreachable"
	StatusInvalidTarget Status = "invalid_target"
)

// Attempt is one measurement. Immutable once created.
type Attempt struct {
	Outcome   Outcome   `json:"outcome"`
	LatencyMS float64   `json:"latency_ms"`
	Message   string    `json:"message,omitempty"`
	At        time.Time `json:"at"`
}

// LatencyStats summarizes successful attempts only.
type LatencyStats struct {
	MinMS float64 `json:"min"`
	AvgMS float64 `json:"avg"`
	MaxMS float64 `json:"max"`
}

// Report is the aggregate over one request's attempt sequence.
// Latency is nil when no attempt succeeded; zero would be misleading.
type Report struct {
	Target       string        `json:"target"`
	Status       Status        `json:"status"`
	SuccessCount int           `json:"success_count"`
	Attempts     int           `json:"attempts"`
	Latency      *LatencyStats `json:"latency_ms"`
	Results      []Attempt     `json:"attempt_results,omitempty"`
}
