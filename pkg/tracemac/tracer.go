package tracemac

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"

	"github.com/carverauto/mnet/pkg/topology"
)

// Hop is one device along a MAC trace.
type Hop struct {
	Address string
	Device  string
	Port    string
	VLAN    int
	// Next is the neighbor behind Port; empty at the attachment point.
	Next       string
	NextDevice string
}

// Tracer follows a hardware address from switch to switch.
type Tracer struct {
	querier topology.Querier
	domains []string
	out     io.Writer
}

// New returns a Tracer. Hops are printed to out as they are found.
func New(querier topology.Querier, domains []string, out io.Writer) *Tracer {
	if out == nil {
		out = io.Discard
	}

	return &Tracer{querier: querier, domains: domains, out: out}
}

// Trace looks mac up on the device at addr. The returned hop's Next is the
// address to continue from, or empty when mac is attached to this device.
func (t *Tracer) Trace(ctx context.Context, addr string, mac net.HardwareAddr) (Hop, error) {
	hop := Hop{Address: addr}

	a := topology.ParseAddress(addr)
	if !a.IsIP() {
		return hop, fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
	}

	sess, err := t.querier.Open(ctx, a.IP)
	if err != nil {
		return hop, fmt.Errorf("unable to reach %s: %w", addr, err)
	}

	defer func() {
		if err := sess.Close(); err != nil {
			log.Printf("Failed to close session to %s: %v", addr, err)
		}
	}()

	name, err := sess.Hostname(ctx)
	if err != nil {
		log.Printf("Failed to read hostname of %s: %v", addr, err)
	}

	hop.Device = topology.ShortenName(name, t.domains)

	locator, ok := sess.(Locator)
	if !ok {
		return hop, ErrNoForwardingTable
	}

	loc, err := locator.LocateMAC(ctx, mac)
	if err != nil {
		return hop, err
	}

	hop.Port = loc.Port
	hop.VLAN = loc.VLAN

	var unaddressed string

	for _, protocol := range []topology.Protocol{topology.ProtocolCDP, topology.ProtocolLLDP} {
		neighbors, err := sess.Neighbors(ctx, protocol)
		if err != nil {
			log.Printf("Failed to read %s neighbors of %s: %v", protocol, addr, err)
			continue
		}

		for _, n := range neighbors {
			if !onPort(n, loc.Port) {
				continue
			}

			if !n.RemoteAddress.IsIP() {
				if unaddressed == "" {
					unaddressed = topology.ShortenName(n.RemoteName, t.domains)
				}

				continue
			}

			hop.Next = n.RemoteAddress.String()
			hop.NextDevice = topology.ShortenName(n.RemoteName, t.domains)

			return hop, nil
		}
	}

	// the MAC sits behind a device we cannot follow
	if unaddressed != "" {
		hop.NextDevice = unaddressed
		return hop, fmt.Errorf("%w: %s on %s", ErrNoNextHop, unaddressed, loc.Port)
	}

	return hop, nil
}

// onPort matches a neighbor learned on port directly or on a member of the
// aggregate named port.
func onPort(n topology.Neighbor, port string) bool {
	return n.LocalPort == port || n.Local.LAG.IsMember() && n.Local.LAG.ID == port
}

// Run traces mac from root until the attachment point or the first failure,
// printing one line per hop. The error describes why the trace stopped early.
func (t *Tracer) Run(ctx context.Context, root string, mac net.HardwareAddr) ([]Hop, error) {
	fmt.Fprintf(t.out, "Tracing %s from %s\n", mac, root)

	var hops []Hop

	seen := make(map[string]bool)

	for addr := root; addr != ""; {
		if seen[addr] {
			err := fmt.Errorf("%w: %s", ErrLoop, addr)
			fmt.Fprintf(t.out, "  %s\n", err)

			return hops, err
		}

		seen[addr] = true

		hop, err := t.Trace(ctx, addr, mac)
		if err != nil {
			fmt.Fprintf(t.out, "  %s (%s): %v\n", displayName(hop.Device), addr, err)

			return hops, err
		}

		hops = append(hops, hop)

		if hop.Next == "" {
			fmt.Fprintf(t.out, "  %s (%s) %s VLAN %d  << attached here\n", displayName(hop.Device), addr, hop.Port, hop.VLAN)

			return hops, nil
		}

		fmt.Fprintf(t.out, "  %s (%s) %s VLAN %d -> %s (%s)\n",
			displayName(hop.Device), addr, hop.Port, hop.VLAN, displayName(hop.NextDevice), hop.Next)

		addr = hop.Next
	}

	return hops, nil
}

func displayName(name string) string {
	if name == "" {
		return "UNKNOWN"
	}

	return name
}
