package topology

import (
	"context"
	"io"
	"log"
)

// Options configure a Crawler.
type Options struct {
	// MaxDepth bounds recursion; 0 means unbounded.
	MaxDepth int
	// Query selects the attributes fetched for every newly found device.
	Query       QueryOptions
	HostDomains []string
	// Progress receives one line per crawl step; nil discards them.
	Progress io.Writer
}

// Crawler discovers a network depth-first from one or more root addresses.
// A Crawler runs one crawl at a time.
type Crawler struct {
	querier  Querier
	policy   *Policy
	opts     Options
	progress progress

	graph    *Graph
	sessions map[DeviceID]Session
	expanded map[DeviceID]bool
}

// NewCrawler returns a Crawler. A nil policy admits every address.
func NewCrawler(querier Querier, policy *Policy, opts Options) *Crawler {
	return &Crawler{
		querier:  querier,
		policy:   policy,
		opts:     opts,
		progress: progress{w: opts.Progress},
	}
}

// Crawl builds a fresh graph from roots. Unreachable devices become leaves;
// the only error is an empty root list.
func (c *Crawler) Crawl(ctx context.Context, roots []string) (*Graph, error) {
	if len(roots) == 0 {
		return nil, ErrNoRoots
	}

	c.graph = NewGraph(c.opts.MaxDepth)
	c.sessions = make(map[DeviceID]Session)
	c.expanded = make(map[DeviceID]bool)

	defer c.closeSessions()

	var first *Device

	for _, root := range roots {
		addr := ParseAddress(root)
		if addr.Kind == AddressUnknown {
			log.Printf("Root %q is not an IP address, adding it as a leaf", root)
		}

		d := c.resolveDevice(ctx, addr, 0, "")
		if first == nil {
			first = d
		}

		if d.Reachable {
			c.graph.SetRoot(d)
		}

		c.expand(ctx, d, 0)
	}

	c.graph.SetRoot(first)
	c.backfillChassis(ctx)

	return c.graph, nil
}

// resolveDevice returns the device behind addr, creating it on first sight.
func (c *Crawler) resolveDevice(ctx context.Context, addr Address, depth int, via Protocol) *Device {
	if !addr.IsIP() {
		return c.graph.AddDevice(&Device{Addresses: []Address{addr}})
	}

	if d := c.graph.findByAddress(addr); d != nil {
		return d
	}

	sess, err := c.querier.Open(ctx, addr.IP)
	if err != nil {
		c.progress.step(stepResolve, depth, via, "", addr, false)

		return c.graph.AddDevice(&Device{Addresses: []Address{addr}})
	}

	raw, err := sess.Hostname(ctx)
	if err != nil {
		log.Printf("Failed to read hostname of %s: %v", addr, err)
	}

	name := ShortenName(raw, c.opts.HostDomains)

	// a known hostname means another interface of a device we already have
	if d := c.graph.findByName(name); d != nil {
		d.Addresses = append(d.Addresses, addr)
		c.closeSession(addr, sess)

		return d
	}

	c.progress.step(stepResolve, depth, via, name, addr, true)

	d := &Device{Name: name, Addresses: []Address{addr}, Reachable: true}

	info, err := sess.Query(ctx, c.opts.Query)
	if err != nil {
		log.Printf("Partial query of %s (%s): %v", name, addr, err)
	}

	d.Queried = err == nil
	applyInfo(d, info)

	c.graph.AddDevice(d)
	c.sessions[d.ID] = sess

	return d
}

func applyInfo(d *Device, info DeviceInfo) {
	d.Platform = info.Platform
	d.Version = info.Version
	d.Serial = info.Serial
	d.BootImage = info.BootImage
	d.Routing = info.Routing
	d.HSRP = info.HSRP
	d.Loopbacks = info.Loopbacks
	d.SVIs = info.SVIs

	d.Chassis = info.Chassis
	if d.Chassis == nil {
		d.Chassis = Standalone{}
	}
}

// expand queries d's neighbor tables and recurses into every neighbor that
// produced a new link. Each device is expanded at most once per crawl, and
// its session is closed before the recursion so only the devices waiting on
// the current path hold one.
func (c *Crawler) expand(ctx context.Context, d *Device, depth int) {
	if d == nil {
		return
	}

	// a shorter path may still reach d later; expand reopens it then
	if c.opts.MaxDepth > 0 && depth >= c.opts.MaxDepth {
		c.release(d)
		return
	}

	if c.expanded[d.ID] {
		return
	}

	c.expanded[d.ID] = true

	if d.IsPlaceholder() || !d.Reachable {
		return
	}

	sess := c.session(ctx, d)
	if sess == nil {
		return
	}

	c.progress.step(stepExpand, depth, "", d.Name, d.Address(), true)

	cdp := c.neighbors(ctx, d, sess, ProtocolCDP)
	lldp := c.neighbors(ctx, d, sess, ProtocolLLDP)

	c.release(d)

	if cdp == nil && lldp == nil {
		return
	}

	var next []*Device

	for _, n := range append(cdp, lldp...) {
		if !c.policy.Allowed(n.RemoteAddress) {
			continue
		}

		if n.RemoteAddress.Kind == AddressUnknown {
			continue
		}

		child := c.resolveDevice(ctx, n.RemoteAddress, depth+1, n.Protocol)

		if !child.Reachable {
			child.Name = ShortenName(n.RemoteName, c.opts.HostDomains)
			c.progress.step(stepResolve, depth, n.Protocol, child.Name, n.RemoteAddress, true)
		}

		backfillAdvertised(child, n)

		if c.addLink(d, newLink(n, child.ID)) {
			next = append(next, child)
		}
	}

	for _, child := range next {
		c.expand(ctx, child, depth+1)
	}
}

// session returns the session left open by resolveDevice, or reopens one.
func (c *Crawler) session(ctx context.Context, d *Device) Session {
	if sess, ok := c.sessions[d.ID]; ok {
		return sess
	}

	sess, err := c.querier.Open(ctx, d.Address().IP)
	if err != nil {
		log.Printf("Failed to reopen %s (%s): %v", d.Name, d.Address(), err)
		return nil
	}

	c.sessions[d.ID] = sess

	return sess
}

// release closes d's session, if it has one.
func (c *Crawler) release(d *Device) {
	sess, ok := c.sessions[d.ID]
	if !ok {
		return
	}

	delete(c.sessions, d.ID)
	c.closeSession(d.Address(), sess)
}

func (c *Crawler) neighbors(ctx context.Context, d *Device, sess Session, protocol Protocol) []Neighbor {
	neighbors, err := sess.Neighbors(ctx, protocol)
	if err != nil {
		log.Printf("Failed to read %s neighbors of %s: %v", protocol, d.Name, err)

		return nil
	}

	return neighbors
}

// backfillAdvertised copies what the neighbor advertised about itself into
// fields its own query could not fill.
func backfillAdvertised(d *Device, n Neighbor) {
	if n.RemotePlatform != "" && (!d.Reachable || d.Platform == "") {
		d.Platform = n.RemotePlatform
	}

	if n.RemoteVersion != "" && (!d.Reachable || d.Version == "") {
		d.Version = n.RemoteVersion
	}
}

func newLink(n Neighbor, neighbor DeviceID) *Link {
	return &Link{
		LocalPort:  n.LocalPort,
		RemotePort: n.RemotePort,
		Neighbor:   neighbor,
		Protocol:   n.Protocol,
		Kind:       n.Kind,
		VLAN:       n.VLAN,
		Local:      n.Local,
	}
}

// addLink attaches cand to owner. It returns false when cand was folded into
// an existing record: either the reciprocal record on an already expanded
// neighbor, or a duplicate report of the same port on owner.
func (c *Crawler) addLink(owner *Device, cand *Link) bool {
	if c.expanded[cand.Neighbor] {
		if nb := c.graph.Device(cand.Neighbor); nb != nil {
			for _, ex := range nb.Links {
				if ex.Neighbor == owner.ID && ex.LocalPort == cand.RemotePort {
					mergeRemote(ex, cand.Local)
					return false
				}
			}
		}
	}

	for _, ex := range owner.Links {
		if ex.Neighbor == cand.Neighbor && ex.LocalPort == cand.LocalPort {
			return false
		}
	}

	owner.Links = append(owner.Links, cand)

	return true
}

// mergeRemote fills the remote-side fields of l that are still unset.
func mergeRemote(l *Link, from PortSide) {
	if l.Remote.Address == "" {
		l.Remote.Address = from.Address
	}

	if l.Remote.LAG.State == LAGUnknown {
		l.Remote.LAG.State = from.LAG.State
		l.Remote.LAG.ID = from.LAG.ID
	}

	if len(l.Remote.LAG.Addresses) == 0 {
		l.Remote.LAG.Addresses = from.LAG.Addresses
	}

	if l.Remote.NativeVLAN == 0 {
		l.Remote.NativeVLAN = from.NativeVLAN
	}

	if l.Remote.AllowedVLANs == "" {
		l.Remote.AllowedVLANs = from.AllowedVLANs
	}
}

// backfillChassis reopens reachable devices whose attribute query failed, or
// succeeded without serial, platform or version, and fills in the gaps. A
// device whose query failed is asked for everything the crawl asked for.
func (c *Crawler) backfillChassis(ctx context.Context) {
	for _, d := range c.graph.devices {
		if !d.Reachable || d.IsPlaceholder() {
			continue
		}

		if d.Queried && d.Serial != "" && d.Platform != "" && d.Version != "" {
			continue
		}

		opts := QueryOptions{Serials: true}
		if !d.Queried {
			opts = c.opts.Query
			opts.Serials = true
		}

		sess, err := c.querier.Open(ctx, d.Address().IP)
		if err != nil {
			log.Printf("Failed to reopen %s for chassis info: %v", d.Name, err)
			continue
		}

		info, err := sess.Query(ctx, opts)
		c.closeSession(d.Address(), sess)

		if err != nil {
			log.Printf("Failed to recover chassis info of %s: %v", d.Name, err)
			continue
		}

		if !d.Queried {
			fillInfo(d, info)
			d.Queried = true
		}

		if d.Serial == "" {
			d.Serial = info.Serial
		}

		if d.Platform == "" {
			d.Platform = info.Platform
		}

		if d.Version == "" {
			d.Version = info.Version
		}
	}
}

// fillInfo copies the attributes a failed query left unset.
func fillInfo(d *Device, info DeviceInfo) {
	if d.BootImage == "" {
		d.BootImage = info.BootImage
	}

	if d.Routing == (Routing{}) {
		d.Routing = info.Routing
	}

	if d.HSRP == nil {
		d.HSRP = info.HSRP
	}

	if d.Loopbacks == nil {
		d.Loopbacks = info.Loopbacks
	}

	if d.SVIs == nil {
		d.SVIs = info.SVIs
	}

	if _, ok := d.Chassis.(Standalone); ok && info.Chassis != nil {
		d.Chassis = info.Chassis
	}
}

// closeSessions closes whatever an aborted expansion left open.
func (c *Crawler) closeSessions() {
	for id, sess := range c.sessions {
		c.closeSession(c.graph.Device(id).Address(), sess)
	}

	c.sessions = nil
}

func (c *Crawler) closeSession(addr Address, sess Session) {
	if err := sess.Close(); err != nil {
		log.Printf("Failed to close session to %s: %v", addr, err)
	}
}
