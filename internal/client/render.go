package client

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/hamed0406/iptest/internal/domain"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	faint  = color.New(color.Faint).SprintFunc()
)

// Render prints the human-readable report for one lookup.
func Render(w io.Writer, resp *LookupResponse) {
	fmt.Fprintf(w, "Target:   %s\n", resp.Target)
	fmt.Fprintf(w, "Status:   %s (%d/%d attempts succeeded)\n",
		colorStatus(resp.Status), resp.SuccessCount, resp.Attempts)

	if resp.Latency != nil {
		fmt.Fprintf(w, "Latency:  min %.1f ms / avg %.1f ms / max %.1f ms\n",
			resp.Latency.MinMS, resp.Latency.AvgMS, resp.Latency.MaxMS)
	}

	for i, a := range resp.Results {
		line := fmt.Sprintf("  #%d %s", i+1, a.Outcome)
		if a.Outcome == domain.OutcomeSuccess {
			line += fmt.Sprintf(" %.1f ms", a.LatencyMS)
		} else if a.Message != "" {
			line += " " + a.Message
		}
		fmt.Fprintln(w, faint(line))
	}

	if resp.Timing.GapMS != nil {
		fmt.Fprintf(w, "Clock gap: %d ms", *resp.Timing.GapMS)
		if resp.Timing.ClockSkewDetected {
			fmt.Fprintf(w, " %s", yellow("(clock skew detected)"))
		}
		fmt.Fprintln(w)
	}
}

func colorStatus(s domain.Status) string {
	switch s {
	case domain.StatusReachable:
		return green(string(s))
	case domain.StatusInvalidTarget:
		return yellow(string(s))
	default:
		return red(string(s))
	}
}
