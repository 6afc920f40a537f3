package target

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"
)

// ErrInvalidTarget marks input the validator rejected. Endpoint code turns it
// into a classified invalid_target result, never a server error.
var ErrInvalidTarget = errors.New("invalid target")

// Target is a validated probe target: either an IP literal or a
// syntactically valid hostname. Resolution happens later, in the probe
// engine, so a Target that fails to resolve is still a valid Target.
type Target struct {
	Host string
	IsIP bool
}

// Parse trims, then accepts an IPv4/IPv6 literal or a hostname that satisfies
// the usual DNS syntax rules (total length <=253, labels 1..63 of
// [a-zA-Z0-9-], no hyphen at a label edge). It never resolves.
func Parse(raw string) (Target, error) {
	host := strings.TrimSpace(raw)
	if host == "" {
		return Target{}, fmt.Errorf("%w: empty", ErrInvalidTarget)
	}

	if addr, err := netip.ParseAddr(host); err == nil {
		return Target{Host: addr.String(), IsIP: true}, nil
	}

	if err := checkHostname(host); err != nil {
		return Target{}, err
	}
	return Target{Host: strings.ToLower(host)}, nil
}

func checkHostname(host string) error {
	if len(host) > 253 {
		return fmt.Errorf("%w: name longer than 253 characters", ErrInvalidTarget)
	}
	// A trailing dot (rooted name) is tolerated by resolvers; we are stricter
	// and treat it as an empty final label, matching what users type.
	labels := strings.Split(host, ".")
	for _, label := range labels {
		if err := checkLabel(label); err != nil {
			return err
		}
	}
	// All-numeric final label means the input was meant as an IPv4 literal
	// and failed the parse above.
	if isAllDigits(labels[len(labels)-1]) {
		return fmt.Errorf("%w: %q is not a valid IP address", ErrInvalidTarget, host)
	}
	return nil
}

func checkLabel(label string) error {
	if label == "" {
		return fmt.Errorf("%w: empty label", ErrInvalidTarget)
	}
	if len(label) > 63 {
		return fmt.Errorf("%w: label longer than 63 characters", ErrInvalidTarget)
	}
	if label[0] == '-' || label[len(label)-1] == '-' {
		return fmt.Errorf("%w: label %q starts or ends with a hyphen", ErrInvalidTarget, label)
	}
	for i := 0; i < len(label); i++ {
		c := label[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-':
		default:
			return fmt.Errorf("%w: illegal character %q", ErrInvalidTarget, c)
		}
	}
	return nil
}

func isAllDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
