package topology

// DeviceID is a stable handle into a Graph's device set.
type DeviceID int

// Device is one physically distinct device, however many addresses lead to it.
type Device struct {
	ID        DeviceID
	Name      string
	Addresses []Address
	Platform  string
	Version   string
	Serial    string
	BootImage string
	Routing   Routing
	HSRP      *HSRP
	Loopbacks []Interface
	SVIs      []Interface
	Chassis   Chassis
	Links     []*Link
	// Reachable is set once a credential succeeded against the device.
	Reachable bool
	// Queried is set once an attribute query succeeded. Reachable devices
	// without it are queried again after the crawl.
	Queried bool

	visited bool
}

// Address returns the first known address.
func (d *Device) Address() Address {
	if len(d.Addresses) == 0 {
		return Address{Kind: AddressPlaceholder}
	}

	return d.Addresses[0]
}

// HasAddress reports whether ip is one of the device's usable addresses.
func (d *Device) HasAddress(a Address) bool {
	if !a.IsIP() {
		return false
	}

	for _, known := range d.Addresses {
		if known.IsIP() && known.IP == a.IP {
			return true
		}
	}

	return false
}

// IsPlaceholder reports a sentinel-address leaf that was never queried.
func (d *Device) IsPlaceholder() bool {
	return !d.Address().IsIP()
}

// Link is a directed adjacency from its owning device to a neighbor. Local
// fields describe the owner's port, Remote fields the neighbor's.
type Link struct {
	LocalPort  string
	RemotePort string
	Neighbor   DeviceID
	Protocol   Protocol
	Kind       LinkKind
	// VLAN is the access VLAN when Kind is LinkAccess.
	VLAN   int
	Local  PortSide
	Remote PortSide
}

// Graph owns every device discovered by one crawl.
type Graph struct {
	devices  []*Device
	root     DeviceID
	hasRoot  bool
	maxDepth int
}

// NewGraph returns an empty graph. maxDepth 0 means unbounded.
func NewGraph(maxDepth int) *Graph {
	return &Graph{maxDepth: maxDepth}
}

// MaxDepth returns the crawl depth bound.
func (g *Graph) MaxDepth() int { return g.maxDepth }

// Devices returns the device set in insertion order.
func (g *Graph) Devices() []*Device { return g.devices }

// Device returns the device for id.
func (g *Graph) Device(id DeviceID) *Device {
	if id < 0 || int(id) >= len(g.devices) {
		return nil
	}

	return g.devices[id]
}

// Root returns the first identified root, or nil.
func (g *Graph) Root() *Device {
	if !g.hasRoot {
		return nil
	}

	return g.Device(g.root)
}

// LinkCount is the total number of link records.
func (g *Graph) LinkCount() int {
	n := 0
	for _, d := range g.devices {
		n += len(d.Links)
	}

	return n
}

// AddDevice appends d to the device set and assigns its ID.
func (g *Graph) AddDevice(d *Device) *Device {
	d.ID = DeviceID(len(g.devices))
	g.devices = append(g.devices, d)

	return d
}

// SetRoot records d as the root unless a root is already set.
func (g *Graph) SetRoot(d *Device) {
	if g.hasRoot || d == nil {
		return
	}

	g.root = d.ID
	g.hasRoot = true
}

func (g *Graph) findByAddress(a Address) *Device {
	for _, d := range g.devices {
		if d.HasAddress(a) {
			return d
		}
	}

	return nil
}

func (g *Graph) findByName(name string) *Device {
	if name == "" {
		return nil
	}

	for _, d := range g.devices {
		if d.Reachable && d.Name == name {
			return d
		}
	}

	return nil
}
