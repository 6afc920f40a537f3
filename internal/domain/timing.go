package domain

import "time"

// Timing reports the gap between the client's send time and the server's
// receive time. Gap is computed in UTC epoch milliseconds to avoid timezone
// drift; it is nil when the client did not report a send timestamp.
type Timing struct {
	ServerReceivedEpochMS int64  `json:"server_received_epoch_ms"`
	ClientSentEpochMS     *int64 `json:"client_sent_epoch_ms,omitempty"`
	GapMS                 *int64 `json:"gap_ms,omitempty"`
	ClockSkewDetected     bool   `json:"clock_skew_detected"`
}

// BuildTiming computes the client/server clock gap. clientSentEpochMS <= 0
// means the client sent no timestamp. A negative gap means the server received
// the request "before" the client sent it, i.e. the clocks disagree.
func BuildTiming(clientSentEpochMS int64, serverReceived time.Time) Timing {
	t := Timing{ServerReceivedEpochMS: serverReceived.UTC().UnixMilli()}
	if clientSentEpochMS <= 0 {
		return t
	}
	sent := clientSentEpochMS
	gap := t.ServerReceivedEpochMS - sent
	t.ClientSentEpochMS = &sent
	t.GapMS = &gap
	t.ClockSkewDetected = gap < 0
	return t
}
