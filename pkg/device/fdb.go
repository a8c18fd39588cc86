package device

import (
	"context"
	"fmt"
	"log"
	"net"
	"strings"

	"github.com/carverauto/mnet/pkg/tracemac"
)

// reserved VTP VLANs never carry user traffic
var reservedVLANs = map[int]bool{1002: true, 1003: true, 1004: true, 1005: true}

// LocateMAC implements tracemac.Locator. The Q-BRIDGE table is tried first;
// agents that only keep per-VLAN BRIDGE-MIB instances are then searched one
// VLAN context at a time.
func (s *Session) LocateMAC(ctx context.Context, mac net.HardwareAddr) (tracemac.Location, error) {
	if err := ctx.Err(); err != nil {
		return tracemac.Location{}, err
	}

	vlans, err := s.vlans()
	if err != nil {
		return tracemac.Location{}, err
	}

	suffix := macIndex(mac)

	oids := make([]string, len(vlans))
	for i, vlan := range vlans {
		oids[i] = oid(oidDot1qTpFdbPort, vlan) + "." + suffix
	}

	vars, err := s.get(oids...)
	if err != nil {
		return tracemac.Location{}, fmt.Errorf("q-bridge forwarding table: %w", err)
	}

	for i, vlan := range vlans {
		if port, ok := vars[oids[i]].Int(); ok && port > 0 {
			return s.bridgePortLocation(s, port, vlan)
		}
	}

	for _, vlan := range vlans {
		loc, found, err := s.locateInVLAN(vlan, suffix)
		if err != nil {
			log.Printf("Failed to search VLAN %d forwarding table of %s: %v", vlan, s.host, err)
			continue
		}

		if found {
			return loc, nil
		}
	}

	return tracemac.Location{}, fmt.Errorf("%w: %s on %s", tracemac.ErrMACNotFound, mac, s.host)
}

func (s *Session) locateInVLAN(vlan int, suffix string) (tracemac.Location, bool, error) {
	scoped := s.client.WithVLAN(vlan)
	if err := scoped.Connect(); err != nil {
		return tracemac.Location{}, false, err
	}

	defer func() {
		if err := scoped.Close(); err != nil {
			log.Printf("Failed to close VLAN %d session to %s: %v", vlan, s.host, err)
		}
	}()

	key := oidDot1dTpFdbPort + "." + suffix

	vars, err := scoped.Get([]string{key})
	if err != nil {
		return tracemac.Location{}, false, err
	}

	port, ok := vars[key].Int()
	if !ok || port == 0 {
		return tracemac.Location{}, false, nil
	}

	loc, err := s.bridgePortLocation(&Session{client: scoped, host: s.host}, port, vlan)

	return loc, err == nil, err
}

// bridgePortLocation resolves a bridge port to an interface name. The bridge
// port table is read through via, which may be a VLAN-scoped session.
func (s *Session) bridgePortLocation(via *Session, port, vlan int) (tracemac.Location, error) {
	key := oid(oidDot1dBasePortIfIndex, port)

	vars, err := via.get(key)
	if err != nil {
		return tracemac.Location{}, fmt.Errorf("bridge port %d: %w", port, err)
	}

	ifIndex, ok := vars[key].Int()
	if !ok {
		return tracemac.Location{}, fmt.Errorf("%w: %d", ErrBridgePortUnmapped, port)
	}

	names, err := s.interfaceNames()
	if err != nil {
		return tracemac.Location{}, err
	}

	return tracemac.Location{Port: names[ifIndex], VLAN: vlan}, nil
}

// vlans lists active VTP VLANs, or VLAN 1 when the agent has no VTP table.
func (s *Session) vlans() ([]int, error) {
	vars, err := s.client.Walk(oidVTPVlanState)
	if err != nil {
		return nil, fmt.Errorf("vlan table: %w", err)
	}

	var vlans []int

	for _, v := range vars {
		// managementDomainIndex.vlanIndex
		index := v.Index(oidVTPVlanState)

		dot := strings.LastIndexByte(index, '.')
		if dot < 0 {
			continue
		}

		var vlan int
		if _, err := fmt.Sscanf(index[dot+1:], "%d", &vlan); err != nil || reservedVLANs[vlan] {
			continue
		}

		vlans = append(vlans, vlan)
	}

	if len(vlans) == 0 {
		vlans = []int{1}
	}

	return vlans, nil
}

// macIndex renders mac as the six decimal sub-identifiers used by FDB tables.
func macIndex(mac net.HardwareAddr) string {
	parts := make([]string, len(mac))
	for i, b := range mac {
		parts[i] = fmt.Sprintf("%d", b)
	}

	return strings.Join(parts, ".")
}
