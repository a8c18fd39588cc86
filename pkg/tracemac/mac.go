package tracemac

import (
	"fmt"
	"net"
	"strings"
)

// ParseMAC accepts aa:bb:cc:dd:ee:ff, aa-bb-cc-dd-ee-ff, aabb.ccdd.eeff and
// aabbccddeeff. Only 48-bit addresses are accepted.
func ParseMAC(s string) (net.HardwareAddr, error) {
	s = strings.TrimSpace(s)

	if len(s) == 12 && !strings.ContainsAny(s, ":-.") {
		s = s[0:4] + "." + s[4:8] + "." + s[8:12]
	}

	mac, err := net.ParseMAC(s)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidMAC, s, err)
	}

	if len(mac) != 6 {
		return nil, fmt.Errorf("%w %q: not a 48-bit address", ErrInvalidMAC, s)
	}

	return mac, nil
}
