package domain

// Aggregate folds an ordered attempt sequence into a Report. It is a pure
// function: identical inputs always produce identical reports, so callers can
// unit-test against fake attempt streams without touching the network.
//
// requested is the attempt count the caller asked for; it may exceed
// len(attempts) when a request deadline abandoned the tail of the sequence.
func Aggregate(target string, requested int, attempts []Attempt) Report {
	r := Report{
		Target:   target,
		Status:   StatusUnreachable,
		Attempts: requested,
		Results:  attempts,
	}

	var sum, min, max float64
	for _, a := range attempts {
		if a.Outcome != OutcomeSuccess {
			continue
		}
		if r.SuccessCount == 0 {
			min, max = a.LatencyMS, a.LatencyMS
		} else {
			if a.LatencyMS < min {
				min = a.LatencyMS
			}
			if a.LatencyMS > max {
				max = a.LatencyMS
			}
		}
		sum += a.LatencyMS
		r.SuccessCount++
	}

	if r.SuccessCount > 0 {
		r.Status = StatusReachable
		r.Latency = &LatencyStats{
			MinMS: min,
			AvgMS: sum / float64(r.SuccessCount),
			MaxMS: max,
		}
	}
	return r
}

// InvalidTarget builds the classified report for input the validator rejected.
// The probe engine is never involved.
func InvalidTarget(target string) Report {
	return Report{
		Target: target,
		Status: StatusInvalidTarget,
	}
}
