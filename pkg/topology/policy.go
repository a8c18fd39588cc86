package topology

import (
	"fmt"
	"net/netip"
	"strings"
)

// Policy admits or rejects candidate neighbor addresses before they are
// queried.
type Policy struct {
	allow   []netip.Prefix
	exclude []netip.Prefix
}

// NewPolicy parses allow and exclude subnets. Bare addresses are taken as
// host routes.
func NewPolicy(allow, exclude []string) (*Policy, error) {
	a, err := parsePrefixes(allow)
	if err != nil {
		return nil, err
	}

	e, err := parsePrefixes(exclude)
	if err != nil {
		return nil, err
	}

	return &Policy{allow: a, exclude: e}, nil
}

func parsePrefixes(subnets []string) ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(subnets))

	for _, s := range subnets {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}

		if !strings.Contains(s, "/") {
			addr, err := netip.ParseAddr(s)
			if err != nil {
				return nil, fmt.Errorf("%w %q: %w", ErrInvalidSubnet, s, err)
			}

			prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))

			continue
		}

		p, err := netip.ParsePrefix(s)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidSubnet, s, err)
		}

		prefixes = append(prefixes, p.Masked())
	}

	return prefixes, nil
}

// Allowed evaluates a. Unknown and empty addresses always pass since there
// is nothing to filter; the all-zeros placeholder is filtered like any IP.
func (p *Policy) Allowed(a Address) bool {
	if p == nil || !a.IP.IsValid() {
		return true
	}

	if contains(p.exclude, a.IP) {
		return false
	}

	if len(p.allow) == 0 {
		return true
	}

	return contains(p.allow, a.IP)
}

func contains(prefixes []netip.Prefix, ip netip.Addr) bool {
	ip = ip.Unmap()

	for _, p := range prefixes {
		if p.Contains(ip) {
			return true
		}
	}

	return false
}
