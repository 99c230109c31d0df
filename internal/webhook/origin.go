package webhook

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"
)

// Allowlist is a parsed set of caller addresses and CIDR ranges. The zero
// value is an empty allowlist, which lets every caller through.
type Allowlist struct {
	addrs    map[netip.Addr]struct{}
	prefixes []netip.Prefix
}

// ParseAllowlist parses IP and CIDR entries. Blank entries are skipped;
// anything else that does not parse is an error.
func ParseAllowlist(entries []string) (Allowlist, error) {
	list := Allowlist{addrs: make(map[netip.Addr]struct{})}

	for _, raw := range entries {
		entry := strings.TrimSpace(raw)
		if entry == "" {
			continue
		}

		if strings.Contains(entry, "/") {
			prefix, err := parsePrefix(entry)
			if err != nil {
				return Allowlist{}, fmt.Errorf("%w %q: %v", ErrInvalidAllowlist, entry, err)
			}
			list.prefixes = append(list.prefixes, prefix)
			continue
		}

		addr, ok := NormalizeAddr(entry)
		if !ok {
			return Allowlist{}, fmt.Errorf("%w %q", ErrInvalidAllowlist, entry)
		}
		list.addrs[addr] = struct{}{}
	}

	return list, nil
}

// Empty reports whether the allowlist is disabled.
func (a Allowlist) Empty() bool {
	return len(a.addrs) == 0 && len(a.prefixes) == 0
}

// Len returns the number of entries.
func (a Allowlist) Len() int {
	return len(a.addrs) + len(a.prefixes)
}

// Check returns Verified when the allowlist is empty or remote matches an
// entry after normalization, OriginRejected otherwise.
func (a Allowlist) Check(remote string) VerificationResult {
	if a.Empty() {
		return Verified
	}

	addr, ok := NormalizeAddr(remote)
	if !ok {
		return OriginRejected
	}

	if _, ok := a.addrs[addr]; ok {
		return Verified
	}
	for _, p := range a.prefixes {
		if p.Contains(addr) {
			return Verified
		}
	}

	return OriginRejected
}

// NormalizeAddr parses an address in any of the forms a server may observe
// ("203.0.113.5", "::ffff:203.0.113.5", "[2001:db8::1]:443", "fe80::1%eth0")
// and returns it unmapped and without zone.
func NormalizeAddr(s string) (netip.Addr, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return netip.Addr{}, false
	}

	if ap, err := netip.ParseAddrPort(s); err == nil {
		return ap.Addr().Unmap().WithZone(""), true
	}

	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap().WithZone(""), true
}

func parsePrefix(s string) (netip.Prefix, error) {
	prefix, err := netip.ParsePrefix(s)
	if err != nil {
		return netip.Prefix{}, err
	}

	// ::ffff:10.0.0.0/104 means 10.0.0.0/8
	if prefix.Addr().Is4In6() {
		bits := prefix.Bits() - 96
		if bits < 0 {
			return netip.Prefix{}, errors.New("mapped prefix shorter than /96")
		}
		prefix = netip.PrefixFrom(prefix.Addr().Unmap(), bits)
	}

	return prefix.Masked(), nil
}
