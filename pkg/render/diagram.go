package render

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/carverauto/mnet/pkg/topology"
)

// diagramNode is one device as the graphical renderers draw it.
type diagramNode struct {
	id          string
	device      *topology.Device
	name        string
	address     string
	details     []string
	router      bool
	peripheries int
	// cluster is set when the device is drawn as one node per unit.
	cluster *cluster
}

func (n *diagramNode) lines() []string {
	lines := []string{n.name}
	if n.address != "" {
		lines = append(lines, n.address)
	}

	return append(lines, n.details...)
}

type cluster struct {
	label   string
	members []member
}

type member struct {
	id     string
	number int
	// extra follows the owning device's lines.
	extra []string
}

type diagramEdge struct {
	from, to string
	lines    []string
	kind     topology.LinkKind
	// ring joins two units of the same cluster.
	ring bool
}

type diagram struct {
	nodes []*diagramNode
	edges []diagramEdge
}

// buildDiagram applies the grouping options to g. Nodes follow the walk
// order; each node's ring edges precede all link edges.
func buildDiagram(g *topology.Graph, opts Options) *diagram {
	d := &diagram{}
	byID := make(map[topology.DeviceID]*diagramNode)

	g.Walk(func(dev *topology.Device) {
		n := newDiagramNode(dev, opts)
		byID[dev.ID] = n
		d.nodes = append(d.nodes, n)
		d.edges = append(d.edges, ringEdges(n)...)
	})

	for _, n := range d.nodes {
		collapsed := make(map[string]bool)

		for _, l := range n.device.Links {
			nb, ok := byID[l.Neighbor]
			if !ok {
				continue
			}

			if opts.ExpandLAG || !l.Local.LAG.IsMember() {
				d.edges = append(d.edges, linkEdge(n, nb, l, nil))
				continue
			}

			if collapsed[l.Local.LAG.ID] {
				continue
			}

			collapsed[l.Local.LAG.ID] = true
			d.edges = append(d.edges, linkEdge(n, nb, l, lagMembers(n.device, l.Local.LAG.ID)))
		}
	}

	return d
}

func nodeID(id topology.DeviceID) string {
	return fmt.Sprintf("n%d", id)
}

func displayName(d *topology.Device) string {
	if d.Name != "" {
		return d.Name
	}

	return "UNKNOWN"
}

func serialSuffix(opts Options, serial string) string {
	if !opts.IncludeSerials {
		return ""
	}

	return " - " + serial
}

func appendSet(lines []string, s string) []string {
	if s == "" {
		return lines
	}

	return append(lines, s)
}

func newDiagramNode(dev *topology.Device, opts Options) *diagramNode {
	n := &diagramNode{
		id:          nodeID(dev.ID),
		device:      dev,
		name:        displayName(dev),
		router:      dev.Routing.Enabled,
		peripheries: 1,
	}

	if a := dev.Address(); a.IsIP() {
		n.address = a.String()
	}

	stack, stacked := dev.Chassis.(*topology.Stack)
	pair, paired := dev.Chassis.(*topology.RedundantPair)

	var lines []string

	if !stacked || !opts.StackMembers {
		lines = appendSet(lines, dev.Platform)
	}

	if opts.IncludeSerials && !stacked && !paired {
		lines = appendSet(lines, dev.Serial)
	}

	lines = appendSet(lines, dev.Version)

	switch {
	case paired && opts.ExpandPair:
		n.cluster = &cluster{label: "VSS " + pair.Domain}
		for i, m := range pair.Members {
			n.cluster.members = append(n.cluster.members, member{
				id:     fmt.Sprintf("%s_%d", n.id, i+1),
				number: i + 1,
				extra:  []string{fmt.Sprintf("VSS %d - %s%s", i, m.Platform, serialSuffix(opts, m.Serial))},
			})
		}
	case paired:
		n.peripheries = 2
		lines = append(lines, "VSS "+pair.Domain)
		for i, m := range pair.Members {
			lines = append(lines, fmt.Sprintf("VSS %d - %s%s", i, m.Platform, serialSuffix(opts, m.Serial)))
		}
	case stacked && opts.ExpandStack:
		n.cluster = &cluster{label: "Stackwise"}
		for i, m := range stack.Members {
			n.cluster.members = append(n.cluster.members, member{
				id:     fmt.Sprintf("%s_%d", n.id, i+1),
				number: m.Number,
				extra: []string{
					fmt.Sprintf("SW %d (%s)", m.Number, m.Role),
					m.Platform + serialSuffix(opts, m.Serial),
				},
			})
		}
	case stacked:
		n.peripheries = len(stack.Members)
		lines = append(lines, "Stackwise "+strconv.Itoa(len(stack.Members)))
		if opts.StackMembers {
			for _, m := range stack.Members {
				lines = append(lines, fmt.Sprintf("SW %d - %s%s (%s)", m.Number, m.Platform, serialSuffix(opts, m.Serial), m.Role))
			}
		}
	}

	if n.router {
		if as := dev.Routing.BGPLocalAS; as != "" {
			lines = append(lines, "BGP "+as)
		}

		if id := dev.Routing.OSPFRouterID; id != "" {
			lines = append(lines, "OSPF "+id)
		}

		if h := dev.HSRP; h != nil {
			lines = append(lines, "HSRP VIP "+h.VirtualIP, "HSRP Pri "+strconv.Itoa(h.Priority))
		}
	}

	if opts.IncludeLo {
		for _, lo := range dev.Loopbacks {
			for _, ip := range lo.Addresses {
				lines = append(lines, lo.Name+" - "+ip)
			}
		}
	}

	if opts.IncludeSVI {
		for _, svi := range dev.SVIs {
			for _, ip := range svi.Addresses {
				lines = append(lines, fmt.Sprintf("VLAN %d - %s", svi.VLAN, ip))
			}
		}
	}

	n.details = lines

	return n
}

func ringEdges(n *diagramNode) []diagramEdge {
	if n.cluster == nil || len(n.cluster.members) < 2 {
		return nil
	}

	members := n.cluster.members

	count := len(members)
	if count == 2 {
		count = 1
	}

	edges := make([]diagramEdge, 0, count)
	for i := 0; i < count; i++ {
		edges = append(edges, diagramEdge{from: members[i].id, to: members[(i+1)%len(members)].id, ring: true})
	}

	return edges
}

var modulePattern = regexp.MustCompile(`^[A-Za-z-]*\s*(\d+)/`)

// moduleOf returns the slot or stack-member number of an interface name
// such as Gi2/0/1, defaulting to 1.
func moduleOf(port string) int {
	m := modulePattern.FindStringSubmatch(port)
	if m == nil {
		return 1
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 1
	}

	return n
}

// endpoint picks the cluster member that owns port.
func endpoint(n *diagramNode, port string) string {
	if n.cluster == nil || len(n.cluster.members) == 0 {
		return n.id
	}

	module := moduleOf(port)
	for _, m := range n.cluster.members {
		if m.number == module {
			return m.id
		}
	}

	return n.cluster.members[0].id
}

func lagMembers(d *topology.Device, id string) []*topology.Link {
	var members []*topology.Link

	for _, l := range d.Links {
		if l.Local.LAG.IsMember() && l.Local.LAG.ID == id {
			members = append(members, l)
		}
	}

	return members
}

// linkEdge labels l. A non-nil members list draws l as its whole aggregate.
func linkEdge(from, to *diagramNode, l *topology.Link, members []*topology.Link) diagramEdge {
	e := diagramEdge{
		from: endpoint(from, l.LocalPort),
		to:   endpoint(to, l.RemotePort),
		kind: l.Kind,
	}

	if members != nil {
		e.lines = append(e.lines, "LAG", fmt.Sprintf("%d Members", len(members)))
		for _, m := range members {
			e.lines = append(e.lines, fmt.Sprintf("P:%s | C:%s", m.LocalPort, m.RemotePort))
		}

		e.lines = append(e.lines, lagLines(l)...)
	} else {
		e.lines = append(e.lines, "P:"+l.LocalPort, "C:"+l.RemotePort)

		if l.Local.LAG.IsMember() {
			e.lines = append(e.lines, "LAG Member")
			e.lines = append(e.lines, lagLines(l)...)
		}

		if l.Local.Address != "" {
			e.lines = append(e.lines, "P:"+l.Local.Address)
		}

		if l.Remote.Address != "" {
			e.lines = append(e.lines, "C:"+l.Remote.Address)
		}
	}

	switch l.Kind {
	case topology.LinkTrunk:
		e.lines = append(e.lines, trunkLines(l)...)
	case topology.LinkAccess:
		if l.VLAN != 0 {
			e.lines = append(e.lines, "VLAN "+strconv.Itoa(l.VLAN))
		}
	}

	return e
}

func lagLines(l *topology.Link) []string {
	local, remote := firstAddress(l.Local.LAG), firstAddress(l.Remote.LAG)
	if local == "" && remote == "" {
		return []string{fmt.Sprintf("P:%s | C:%s", l.Local.LAG, l.Remote.LAG)}
	}

	return []string{
		"P:" + l.Local.LAG.String() + ipSuffix(local),
		"C:" + l.Remote.LAG.String() + ipSuffix(remote),
	}
}

func firstAddress(lag topology.LAG) string {
	if len(lag.Addresses) == 0 {
		return ""
	}

	return lag.Addresses[0]
}

func ipSuffix(ip string) string {
	if ip == "" {
		return ""
	}

	return " - " + ip
}

func trunkLines(l *topology.Link) []string {
	var lines []string

	local, remote := l.Local.NativeVLAN, l.Remote.NativeVLAN

	switch {
	case remote == 0 || remote == local:
		if local != 0 {
			lines = append(lines, "Native "+strconv.Itoa(local))
		}
	default:
		lines = append(lines, fmt.Sprintf("Native P:%d C:%d", local, remote))
	}

	la, ra := l.Local.AllowedVLANs, l.Remote.AllowedVLANs

	switch {
	case la == ra:
		if la != "" {
			lines = append(lines, "Allowed "+la)
		}
	default:
		lines = append(lines, "Allowed P:"+la)
		if ra != "" {
			lines = append(lines, "Allowed C:"+ra)
		}
	}

	return lines
}
