package client

import (
	"bytes"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hamed0406/iptest/internal/domain"
)

// lookupStub serves canned lookup responses keyed by target.
func lookupStub(t *testing.T, reports map[string]LookupResponse) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.Write([]byte(`{"status":"ok"}`))
			return
		}
		var p struct {
			Target string `json:"target"`
		}
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, "bad payload", http.StatusBadRequest)
			return
		}
		resp, ok := reports[p.Target]
		if !ok {
			t.Errorf("unexpected target %q", p.Target)
		}
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(ts.Close)
	t.Setenv(envServerURL, ts.URL)
	return ts
}

func TestRun_ReachableExitsZero(t *testing.T) {
	lookupStub(t, map[string]LookupResponse{
		"example.com": {
			Target:       "example.com",
			Status:       domain.StatusReachable,
			SuccessCount: 3,
			Attempts:     3,
			Latency:      &domain.LatencyStats{MinMS: 10, AvgMS: 11, MaxMS: 12},
		},
	})

	var out, errOut bytes.Buffer
	code := Run([]string{"example.com"}, &out, &errOut)
	if code != ExitReachable {
		t.Fatalf("want exit 0, got %d (stderr: %s)", code, errOut.String())
	}
	s := out.String()
	if !strings.Contains(s, "example.com") || !strings.Contains(s, "reachable") {
		t.Fatalf("render missing target/status:\n%s", s)
	}
	if !strings.Contains(s, "min 10.0 ms") {
		t.Fatalf("render missing latency stats:\n%s", s)
	}
}

func TestRun_UnreachableExitsOne(t *testing.T) {
	lookupStub(t, map[string]LookupResponse{
		"10.255.255.1": {
			Target:   "10.255.255.1",
			Status:   domain.StatusUnreachable,
			Attempts: 3,
		},
	})

	var out, errOut bytes.Buffer
	if code := Run([]string{"10.255.255.1"}, &out, &errOut); code != ExitUnreachable {
		t.Fatalf("want exit 1, got %d", code)
	}
	if strings.Contains(out.String(), "Latency:") {
		t.Fatalf("no latency line expected for zero successes:\n%s", out.String())
	}
}

func TestRun_InvalidTargetExitsTwo(t *testing.T) {
	lookupStub(t, map[string]LookupResponse{
		"!!!bad_host!!!": {
			Target: "!!!bad_host!!!",
			Status: domain.StatusInvalidTarget,
		},
	})

	var out, errOut bytes.Buffer
	if code := Run([]string{"!!!bad_host!!!"}, &out, &errOut); code != ExitInvalidTarget {
		t.Fatalf("want exit 2, got %d", code)
	}
}

func TestRun_DefaultTargetWhenBare(t *testing.T) {
	lookupStub(t, map[string]LookupResponse{
		DefaultTarget: {
			Target:       DefaultTarget,
			Status:       domain.StatusReachable,
			SuccessCount: 1,
			Attempts:     3,
			Latency:      &domain.LatencyStats{MinMS: 1, AvgMS: 1, MaxMS: 1},
		},
	})

	var out, errOut bytes.Buffer
	if code := Run(nil, &out, &errOut); code != ExitReachable {
		t.Fatalf("bare invocation failed: %d (stderr: %s)", code, errOut.String())
	}
}

func TestRun_ServiceUnreachableExitsThree(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	url := "http://" + ln.Addr().String()
	ln.Close()
	t.Setenv(envServerURL, url)
	t.Setenv(envTimeoutSec, "2")

	var out, errOut bytes.Buffer
	code := Run([]string{"8.8.8.8"}, &out, &errOut)
	if code != ExitServiceUnreachable {
		t.Fatalf("want exit 3, got %d", code)
	}
	if !strings.Contains(errOut.String(), "could not reach test server") {
		t.Fatalf("service failure message missing:\n%s", errOut.String())
	}
}

func TestRun_HealthFlag(t *testing.T) {
	lookupStub(t, nil)

	var out, errOut bytes.Buffer
	if code := Run([]string{"-health"}, &out, &errOut); code != ExitReachable {
		t.Fatalf("health check failed: %d (stderr: %s)", code, errOut.String())
	}
	if !strings.Contains(out.String(), "ok") {
		t.Fatalf("health output missing status:\n%s", out.String())
	}
}

func TestRun_JSONFlag(t *testing.T) {
	lookupStub(t, map[string]LookupResponse{
		"example.com": {
			Target:       "example.com",
			Status:       domain.StatusReachable,
			SuccessCount: 1,
			Attempts:     1,
		},
	})

	var out, errOut bytes.Buffer
	if code := Run([]string{"-json", "example.com"}, &out, &errOut); code != ExitReachable {
		t.Fatalf("json run failed: %d", code)
	}
	var decoded LookupResponse
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("-json output not valid JSON: %v\n%s", err, out.String())
	}
	if decoded.Target != "example.com" {
		t.Fatalf("json output wrong: %+v", decoded)
	}
}

func TestRun_TooManyArgsExitsUsage(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := Run([]string{"a.example", "b.example"}, &out, &errOut); code != ExitUsage {
		t.Fatalf("want usage exit, got %d", code)
	}
}
