package device

import (
	"context"
	"fmt"
	"net"
	"regexp"
	"strconv"
	"strings"

	"github.com/carverauto/mnet/pkg/snmp"
)

var versionPattern = regexp.MustCompile(`Version ([^ ,\n]+)`)

// Session answers device queries over one SNMP client. Interface tables are
// read once per session.
type Session struct {
	client snmp.SNMPClient
	host   string

	ifNames map[int]string
	ifAddrs map[int][]string
}

// NewSession wraps a connected client.
func NewSession(client snmp.SNMPClient, host string) *Session {
	return &Session{client: client, host: host}
}

// Hostname returns sysName.0.
func (s *Session) Hostname(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	vars, err := s.client.Get([]string{oidSysName})
	if err != nil {
		return "", err
	}

	return vars[oidSysName].String(), nil
}

// Close releases the SNMP client.
func (s *Session) Close() error {
	return s.client.Close()
}

func (s *Session) get(oids ...string) (map[string]snmp.Variable, error) {
	return s.client.Get(oids)
}

// walkIndexed walks column and keys every value by its single integer index.
func (s *Session) walkIndexed(column string) (map[int]snmp.Variable, []int, error) {
	vars, err := s.client.Walk(column)
	if err != nil {
		return nil, nil, err
	}

	values := make(map[int]snmp.Variable, len(vars))
	order := make([]int, 0, len(vars))

	for _, v := range vars {
		idx, err := strconv.Atoi(v.Index(column))
		if err != nil {
			continue
		}

		values[idx] = v
		order = append(order, idx)
	}

	return values, order, nil
}

// interfaceNames maps ifIndex to ifName, falling back to ifDescr.
func (s *Session) interfaceNames() (map[int]string, error) {
	if s.ifNames != nil {
		return s.ifNames, nil
	}

	names := make(map[int]string)

	for _, column := range []string{oidIfName, oidIfDescr} {
		vars, _, err := s.walkIndexed(column)
		if err != nil {
			return nil, fmt.Errorf("interface names: %w", err)
		}

		for idx, v := range vars {
			if _, ok := names[idx]; !ok && v.String() != "" {
				names[idx] = v.String()
			}
		}

		if len(names) > 0 {
			break
		}
	}

	s.ifNames = names

	return names, nil
}

// interfaceAddresses maps ifIndex to its addresses in "ip/len" form.
func (s *Session) interfaceAddresses() (map[int][]string, error) {
	if s.ifAddrs != nil {
		return s.ifAddrs, nil
	}

	ifIndexes, err := s.client.Walk(oidIPAdEntIfIdx)
	if err != nil {
		return nil, fmt.Errorf("interface addresses: %w", err)
	}

	masks, err := s.client.Walk(oidIPAdEntNetMsk)
	if err != nil {
		return nil, fmt.Errorf("interface masks: %w", err)
	}

	prefixLen := make(map[string]int, len(masks))

	for _, m := range masks {
		ip, ok := m.IPv4()
		if !ok {
			continue
		}

		ones, _ := net.IPMask(net.ParseIP(ip).To4()).Size()
		prefixLen[m.Index(oidIPAdEntNetMsk)] = ones
	}

	addrs := make(map[int][]string)

	for _, v := range ifIndexes {
		idx, ok := v.Int()
		if !ok {
			continue
		}

		ip := v.Index(oidIPAdEntIfIdx)
		if n, ok := prefixLen[ip]; ok {
			ip = ip + "/" + strconv.Itoa(n)
		}

		addrs[idx] = append(addrs[idx], ip)
	}

	s.ifAddrs = addrs

	return addrs, nil
}

// ifIndexByName finds an interface by its ifName.
func (s *Session) ifIndexByName(name string) (int, bool) {
	names, err := s.interfaceNames()
	if err != nil {
		return 0, false
	}

	for idx, n := range names {
		if strings.EqualFold(n, name) {
			return idx, true
		}
	}

	return 0, false
}

// parseVersion extracts "x" from "... Version x, ..." banners.
func parseVersion(desc string) string {
	if m := versionPattern.FindStringSubmatch(desc); m != nil {
		return m[1]
	}

	return ""
}

// firstLine returns the first non-empty line of s.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}

	return ""
}
