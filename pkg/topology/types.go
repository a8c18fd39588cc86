package topology

import (
	"net/netip"
	"strings"
)

// Protocol names the discovery protocol that produced a neighbor record.
type Protocol string

const (
	ProtocolCDP  Protocol = "cdp"
	ProtocolLLDP Protocol = "lldp"
)

// AddressKind distinguishes the ways a management address can be missing.
type AddressKind uint8

const (
	// AddressUnknown is a real neighbor that advertised no usable address.
	AddressUnknown AddressKind = iota
	// AddressPlaceholder is an empty or all-zeros stand-in address.
	AddressPlaceholder
	// AddressIP is a usable management address.
	AddressIP
)

// Address is a management address as advertised or configured.
type Address struct {
	Kind AddressKind
	IP   netip.Addr
}

// ParseAddress classifies s. Empty strings and unspecified addresses become
// placeholders, anything unparseable is unknown.
func ParseAddress(s string) Address {
	s = strings.TrimSpace(s)
	if s == "" {
		return Address{Kind: AddressPlaceholder}
	}

	ip, err := netip.ParseAddr(s)
	if err != nil {
		return Address{Kind: AddressUnknown}
	}

	if ip.IsUnspecified() {
		return Address{Kind: AddressPlaceholder, IP: ip}
	}

	return Address{Kind: AddressIP, IP: ip}
}

// AddrFrom wraps a usable IP.
func AddrFrom(ip netip.Addr) Address {
	return ParseAddress(ip.String())
}

// IsIP reports whether the address can be queried.
func (a Address) IsIP() bool {
	return a.Kind == AddressIP
}

func (a Address) String() string {
	switch a.Kind {
	case AddressUnknown:
		return "UNKNOWN"
	case AddressPlaceholder:
		if a.IP.IsValid() {
			return a.IP.String()
		}

		return ""
	default:
		return a.IP.String()
	}
}

// LinkKind classifies a link by its local switchport mode. The zero value is
// a routed (non-switchport) link.
type LinkKind uint8

const (
	LinkRouted LinkKind = iota
	LinkAccess
	LinkTrunk
)

func (k LinkKind) String() string {
	switch k {
	case LinkAccess:
		return "access"
	case LinkTrunk:
		return "trunk"
	default:
		return "routed"
	}
}

// LAGState separates "never learned" from "learned: not a member".
type LAGState uint8

const (
	LAGUnknown LAGState = iota
	LAGNone
	LAGMember
)

// LAG is one side's link-aggregation membership.
type LAG struct {
	State LAGState
	// ID names the aggregate interface when State is LAGMember.
	ID string
	// Addresses are bound to the aggregate interface.
	Addresses []string
}

// NoLAG is a learned non-member.
func NoLAG() LAG { return LAG{State: LAGNone} }

// MemberOf is a learned member of the aggregate id.
func MemberOf(id string, addrs ...string) LAG {
	return LAG{State: LAGMember, ID: id, Addresses: addrs}
}

// IsMember reports LAG membership.
func (l LAG) IsMember() bool { return l.State == LAGMember }

func (l LAG) String() string {
	switch l.State {
	case LAGMember:
		return l.ID
	case LAGNone:
		return "-"
	default:
		return "UNKNOWN"
	}
}

// PortSide is the switchport configuration one end of a link knows about
// itself. Zero values mean "not learned".
type PortSide struct {
	NativeVLAN   int
	AllowedVLANs string
	LAG          LAG
	// Address is the IP bound to the port itself.
	Address string
}

// Neighbor is one entry of a device's neighbor table.
type Neighbor struct {
	Protocol       Protocol
	LocalPort      string
	RemoteName     string
	RemotePort     string
	RemoteAddress  Address
	RemotePlatform string
	RemoteVersion  string
	Kind           LinkKind
	// VLAN is the access VLAN for LinkAccess.
	VLAN  int
	Local PortSide
}

// QueryOptions toggles the optional parts of a device query.
type QueryOptions struct {
	Serials      bool
	BootImage    bool
	Stack        bool
	StackDetails bool
	Pair         bool
	PairDetails  bool
	Routing      bool
	HSRP         bool
	Loopbacks    bool
	SVIs         bool
}

// Routing holds routing-protocol identifiers. Empty fields were not found.
type Routing struct {
	Enabled      bool
	OSPFRouterID string
	BGPLocalAS   string
}

// HSRP is first-hop-redundancy state.
type HSRP struct {
	Priority  int
	VirtualIP string
}

// Interface is a loopback or an SVI with its addresses.
type Interface struct {
	Name      string
	VLAN      int
	Addresses []string
}

// DeviceInfo is the result of a device query.
type DeviceInfo struct {
	Platform  string
	Version   string
	Serial    string
	BootImage string
	Routing   Routing
	HSRP      *HSRP
	Loopbacks []Interface
	SVIs      []Interface
	Chassis   Chassis
}
