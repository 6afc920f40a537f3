package client

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hamed0406/iptest/internal/domain"
)

func fakeServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return New(Endpoint{BaseURL: ts.URL, Timeout: 5 * time.Second, Source: "env"})
}

func TestLookup_SendsTargetAndTimestamp(t *testing.T) {
	var got struct {
		Target            string `json:"target"`
		ClientSentEpochMS int64  `json:"client_sent_epoch_ms"`
	}
	c := fakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/lookup" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(LookupResponse{
			Target:       got.Target,
			Status:       domain.StatusReachable,
			SuccessCount: 3,
			Attempts:     3,
			Latency:      &domain.LatencyStats{MinMS: 10, AvgMS: 11, MaxMS: 12},
		})
	})

	resp, err := c.Lookup(context.Background(), "8.8.8.8")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got.Target != "8.8.8.8" || got.ClientSentEpochMS <= 0 {
		t.Fatalf("request payload wrong: %+v", got)
	}
	if resp.Status != domain.StatusReachable || resp.Latency == nil {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestLookup_ServiceUnreachableIsDistinct(t *testing.T) {
	// Bind then close to get a loopback port nothing listens on.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	url := "http://" + ln.Addr().String()
	ln.Close()

	c := New(Endpoint{BaseURL: url, Timeout: 2 * time.Second})
	_, err = c.Lookup(context.Background(), "8.8.8.8")
	if !errors.Is(err, ErrServiceUnreachable) {
		t.Fatalf("want ErrServiceUnreachable, got %v", err)
	}
}

func TestLookup_ServerFaultIsNotUnreachable(t *testing.T) {
	c := fakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	_, err := c.Lookup(context.Background(), "8.8.8.8")
	if err == nil || errors.Is(err, ErrServiceUnreachable) {
		t.Fatalf("5xx must be a server fault, not unreachability: %v", err)
	}
}

func TestHealth(t *testing.T) {
	c := fakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"status":"ok"}`))
	})
	status, err := c.Health(context.Background())
	if err != nil || status != "ok" {
		t.Fatalf("Health = %q, %v", status, err)
	}
}
