package device

import (
	"context"
	"fmt"
	"strings"

	"github.com/carverauto/mnet/pkg/snmp"
	"github.com/carverauto/mnet/pkg/topology"
)

// Neighbors implements topology.Session. A protocol with an empty remote
// table yields nil.
func (s *Session) Neighbors(ctx context.Context, protocol topology.Protocol) ([]topology.Neighbor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch protocol {
	case topology.ProtocolCDP:
		return s.cdpNeighbors()
	case topology.ProtocolLLDP:
		return s.lldpNeighbors()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProtocol, protocol)
	}
}

func (s *Session) cdpNeighbors() ([]topology.Neighbor, error) {
	ids, err := s.client.Walk(oidCDPCacheDeviceID)
	if err != nil {
		return nil, fmt.Errorf("cdp cache: %w", err)
	}

	if len(ids) == 0 {
		return nil, nil
	}

	names, err := s.interfaceNames()
	if err != nil {
		return nil, err
	}

	neighbors := make([]topology.Neighbor, 0, len(ids))

	for _, id := range ids {
		index := id.Index(oidCDPCacheDeviceID)

		parts, err := snmp.IndexParts(index)
		if err != nil || len(parts) != 2 {
			continue
		}

		vars, err := s.get(
			oidCDPCacheAddressType+"."+index,
			oidCDPCacheAddress+"."+index,
			oidCDPCacheVersion+"."+index,
			oidCDPCacheDevicePort+"."+index,
			oidCDPCachePlatform+"."+index,
		)
		if err != nil {
			return nil, fmt.Errorf("cdp entry %s: %w", index, err)
		}

		n := topology.Neighbor{
			Protocol:       topology.ProtocolCDP,
			LocalPort:      names[parts[0]],
			RemoteName:     stripSerial(id.String()),
			RemotePort:     vars[oidCDPCacheDevicePort+"."+index].String(),
			RemoteAddress:  topology.Address{Kind: topology.AddressUnknown},
			RemotePlatform: strings.TrimPrefix(vars[oidCDPCachePlatform+"."+index].String(), "cisco "),
		}

		banner := vars[oidCDPCacheVersion+"."+index].String()
		if n.RemoteVersion = parseVersion(banner); n.RemoteVersion == "" {
			n.RemoteVersion = firstLine(banner)
		}

		addrType, typed := vars[oidCDPCacheAddressType+"."+index].Int()
		if addr, ok := vars[oidCDPCacheAddress+"."+index]; ok && (!typed || addrType == cdpAddressTypeIP) {
			if ip, ok := addr.IPv4(); ok {
				n.RemoteAddress = topology.ParseAddress(ip)
			}
		}

		if err := s.describePort(&n, parts[0]); err != nil {
			return nil, err
		}

		neighbors = append(neighbors, n)
	}

	return neighbors, nil
}

func (s *Session) lldpNeighbors() ([]topology.Neighbor, error) {
	sysNames, err := s.client.Walk(oidLLDPRemSysName)
	if err != nil {
		return nil, fmt.Errorf("lldp remote table: %w", err)
	}

	if len(sysNames) == 0 {
		return nil, nil
	}

	mgmt, err := s.lldpManagementAddresses()
	if err != nil {
		return nil, err
	}

	neighbors := make([]topology.Neighbor, 0, len(sysNames))

	for _, sysName := range sysNames {
		// timeMark.localPortNum.remIndex
		index := sysName.Index(oidLLDPRemSysName)

		parts, err := snmp.IndexParts(index)
		if err != nil || len(parts) != 3 {
			continue
		}

		localPortNum := parts[1]

		vars, err := s.get(
			oidLLDPRemChassisID+"."+index,
			oidLLDPRemPortID+"."+index,
			oidLLDPRemPortDesc+"."+index,
			oidLLDPRemSysDesc+"."+index,
			oid(oidLLDPLocPortID, localPortNum),
		)
		if err != nil {
			return nil, fmt.Errorf("lldp entry %s: %w", index, err)
		}

		desc := vars[oidLLDPRemSysDesc+"."+index].String()

		n := topology.Neighbor{
			Protocol:       topology.ProtocolLLDP,
			RemoteName:     sysName.String(),
			RemotePort:     lldpPortName(vars[oidLLDPRemPortID+"."+index], vars[oidLLDPRemPortDesc+"."+index]),
			RemoteAddress:  topology.Address{Kind: topology.AddressUnknown},
			RemotePlatform: firstLine(desc),
			RemoteVersion:  parseVersion(desc),
		}

		if n.RemoteName == "" {
			n.RemoteName = vars[oidLLDPRemChassisID+"."+index].MAC()
		}

		if ip, ok := mgmt[index]; ok {
			n.RemoteAddress = topology.ParseAddress(ip)
		}

		ifIndex, ok := s.lldpLocalIfIndex(localPortNum, vars[oid(oidLLDPLocPortID, localPortNum)].String())
		if ok {
			n.LocalPort = s.ifNames[ifIndex]

			if err := s.describePort(&n, ifIndex); err != nil {
				return nil, err
			}
		} else {
			n.LocalPort = vars[oid(oidLLDPLocPortID, localPortNum)].String()
		}

		neighbors = append(neighbors, n)
	}

	return neighbors, nil
}

// lldpManagementAddresses maps "timeMark.localPortNum.remIndex" to the first
// IPv4 management address, decoded from the table index.
func (s *Session) lldpManagementAddresses() (map[string]string, error) {
	vars, err := s.client.Walk(oidLLDPRemManAddrIfType)
	if err != nil {
		return nil, fmt.Errorf("lldp management addresses: %w", err)
	}

	addrs := make(map[string]string)

	for _, v := range vars {
		// timeMark.localPortNum.remIndex.addrSubtype.addrLen.addr...
		parts, err := snmp.IndexParts(v.Index(oidLLDPRemManAddrIfType))
		if err != nil || len(parts) != 9 || parts[3] != lldpManAddrIPv4 || parts[4] != 4 {
			continue
		}

		key := fmt.Sprintf("%d.%d.%d", parts[0], parts[1], parts[2])
		if _, ok := addrs[key]; ok {
			continue
		}

		addrs[key] = fmt.Sprintf("%d.%d.%d.%d", parts[5], parts[6], parts[7], parts[8])
	}

	return addrs, nil
}

// lldpLocalIfIndex maps an LLDP local port number to an ifIndex. Most agents
// number LLDP ports by ifIndex; the rest are matched by port id.
func (s *Session) lldpLocalIfIndex(portNum int, portID string) (int, bool) {
	names, err := s.interfaceNames()
	if err != nil {
		return 0, false
	}

	if name, ok := names[portNum]; ok && (portID == "" || strings.EqualFold(name, portID)) {
		return portNum, true
	}

	if portID != "" {
		return s.ifIndexByName(portID)
	}

	return 0, false
}

// lldpPortName prefers a printable port id and falls back to the port
// description; MAC-typed ids are formatted.
func lldpPortName(id, desc snmp.Variable) string {
	raw := id.Bytes()
	if len(raw) == 6 && !printable(raw) {
		if d := desc.String(); d != "" {
			return d
		}

		return id.MAC()
	}

	if s := id.String(); s != "" {
		return s
	}

	return desc.String()
}

// describePort fills the local switchport view of n from the ifIndex.
func (s *Session) describePort(n *topology.Neighbor, ifIndex int) error {
	vars, err := s.get(
		oid(oidTrunkDynamicStatus, ifIndex),
		oid(oidTrunkNativeVlan, ifIndex),
		oid(oidTrunkVlansEnabled, ifIndex),
		oid(oidVMVlan, ifIndex),
		oid(oidLAGSelectedAggID, ifIndex),
	)
	if err != nil {
		return fmt.Errorf("port %d: %w", ifIndex, err)
	}

	addrs, err := s.interfaceAddresses()
	if err != nil {
		return err
	}

	names, err := s.interfaceNames()
	if err != nil {
		return err
	}

	if status, _ := vars[oid(oidTrunkDynamicStatus, ifIndex)].Int(); status == trunkDynamicStatusOn {
		n.Kind = topology.LinkTrunk
		n.Local.NativeVLAN, _ = vars[oid(oidTrunkNativeVlan, ifIndex)].Int()
		n.Local.AllowedVLANs = vlanList(vars[oid(oidTrunkVlansEnabled, ifIndex)].Bytes())
	} else if vlan, ok := vars[oid(oidVMVlan, ifIndex)].Int(); ok {
		n.Kind = topology.LinkAccess
		n.VLAN = vlan
	} else {
		n.Kind = topology.LinkRouted
	}

	// no dot3ad instance leaves the membership unknown
	if agg, ok := vars[oid(oidLAGSelectedAggID, ifIndex)].Int(); ok {
		n.Local.LAG = topology.NoLAG()
		if agg > 0 && agg != ifIndex {
			n.Local.LAG = topology.MemberOf(names[agg], addrs[agg]...)
		}
	}

	if a := addrs[ifIndex]; len(a) > 0 {
		n.Local.Address = a[0]
	}

	return nil
}

// stripSerial drops the "(serial)" suffix some platforms append to their CDP
// device id.
func stripSerial(id string) string {
	if i := strings.IndexByte(id, '('); i > 0 && strings.HasSuffix(id, ")") {
		return id[:i]
	}

	return id
}

func printable(b []byte) bool {
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return false
		}
	}

	return true
}
