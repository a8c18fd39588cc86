package topology

import (
	"context"
	"errors"
	"net/netip"
)

var errUnreachable = errors.New("request timeout")

type fakeDevice struct {
	name   string
	info   DeviceInfo
	cdp    []Neighbor
	lldp   []Neighbor
	serial string
}

// fakeNetwork answers SNMP-level questions from an in-memory topology keyed
// by management address.
type fakeNetwork struct {
	devices       map[string]*fakeDevice
	opened        []string
	neighborCalls map[string]int
	queries       map[string]int
	closed        int
	// open counts sessions not yet closed; peak is its high-water mark.
	open int
	peak int
}

func newFakeNetwork() *fakeNetwork {
	return &fakeNetwork{
		devices:       make(map[string]*fakeDevice),
		neighborCalls: make(map[string]int),
		queries:       make(map[string]int),
	}
}

func (n *fakeNetwork) add(addr, name string) *fakeDevice {
	d := &fakeDevice{name: name, info: DeviceInfo{Platform: "WS-C3850", Version: "16.9.4", Serial: "FOC" + name}}
	n.devices[addr] = d

	return d
}

func (n *fakeNetwork) Open(_ context.Context, addr netip.Addr) (Session, error) {
	n.opened = append(n.opened, addr.String())

	d, ok := n.devices[addr.String()]
	if !ok {
		return nil, errUnreachable
	}

	n.open++
	n.peak = max(n.peak, n.open)

	return &fakeSession{net: n, dev: d}, nil
}

func (n *fakeNetwork) wasOpened(addr string) bool {
	for _, a := range n.opened {
		if a == addr {
			return true
		}
	}

	return false
}

type fakeSession struct {
	net *fakeNetwork
	dev *fakeDevice
}

func (s *fakeSession) Hostname(context.Context) (string, error) {
	return s.dev.name, nil
}

func (s *fakeSession) Query(_ context.Context, opts QueryOptions) (DeviceInfo, error) {
	s.net.queries[s.dev.name]++

	info := s.dev.info
	if opts.Serials && s.dev.serial != "" {
		info.Serial = s.dev.serial
	}

	return info, nil
}

func (s *fakeSession) Neighbors(_ context.Context, protocol Protocol) ([]Neighbor, error) {
	s.net.neighborCalls[s.dev.name]++

	if protocol == ProtocolCDP {
		return s.dev.cdp, nil
	}

	return s.dev.lldp, nil
}

func (s *fakeSession) Close() error {
	s.net.closed++
	s.net.open--

	return nil
}

// link makes a and b advertise each other over CDP on the given ports.
func (n *fakeNetwork) link(aAddr, aPort, bAddr, bPort string) {
	a, b := n.devices[aAddr], n.devices[bAddr]
	a.cdp = append(a.cdp, advert(ProtocolCDP, aPort, b.name, bAddr, bPort))
	b.cdp = append(b.cdp, advert(ProtocolCDP, bPort, a.name, aAddr, aPort))
}

func advert(protocol Protocol, localPort, remoteName, remoteAddr, remotePort string) Neighbor {
	return Neighbor{
		Protocol:      protocol,
		LocalPort:     localPort,
		RemoteName:    remoteName,
		RemotePort:    remotePort,
		RemoteAddress: ParseAddress(remoteAddr),
		Local:         PortSide{LAG: NoLAG()},
	}
}
