package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/carverauto/mnet/pkg/topology"
)

const rule = "-----------------------------------------"

// Stdout writes the device and link dump followed by the discovered device
// and link counts, which are also returned.
func Stdout(w io.Writer, g *topology.Graph, opts Options) (devices, links int, err error) {
	bw := bufio.NewWriter(w)

	fmt.Fprint(bw, "-----\n----- DEVICES\n-----\n")

	g.Walk(func(d *topology.Device) {
		describe(bw, g, d, opts)

		devices++
		links += len(d.Links)
	})

	fmt.Fprintf(bw, "Discovered devices: %d\n", devices)
	fmt.Fprintf(bw, "Discovered links:   %d\n", links)

	return devices, links, bw.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}

	return "no"
}

// describe writes the text block for one device.
func describe(w io.Writer, g *topology.Graph, d *topology.Device, opts Options) {
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "      Name: %s\n", displayName(d))

	if len(d.Addresses) == 0 {
		fmt.Fprintln(w, "        IP:")
	}

	for _, a := range d.Addresses {
		fmt.Fprintf(w, "        IP: %s\n", a)
	}

	fmt.Fprintf(w, "  Platform: %s\n", d.Platform)
	fmt.Fprintf(w, "   IOS Ver: %s\n", d.Version)

	chassis := topology.ChassisOf(d)
	if _, ok := chassis.(topology.Standalone); ok {
		fmt.Fprintf(w, "    Serial: %s\n", d.Serial)
	}

	fmt.Fprintf(w, "   Routing: %s\n", yesNo(d.Routing.Enabled))
	fmt.Fprintf(w, "   OSPF ID: %s\n", d.Routing.OSPFRouterID)
	fmt.Fprintf(w, "   BGP LAS: %s\n", d.Routing.BGPLocalAS)

	if d.HSRP != nil {
		fmt.Fprintf(w, "  HSRP Pri: %d\n", d.HSRP.Priority)
		fmt.Fprintf(w, "  HSRP VIP: %s\n", d.HSRP.VirtualIP)
	} else {
		fmt.Fprintln(w, "  HSRP Pri:")
		fmt.Fprintln(w, "  HSRP VIP:")
	}

	stackCount := 0

	switch c := chassis.(type) {
	case *topology.RedundantPair:
		fmt.Fprintf(w, "VSS Domain: %s\n", c.Domain)
		for i, m := range c.Members {
			fmt.Fprintf(w, "       VSS Slot %d:\n", i)
			fmt.Fprintf(w, "              IOS: %s\n", m.Version)
			fmt.Fprintf(w, "           Serial: %s\n", m.Serial)
			fmt.Fprintf(w, "         Platform: %s\n", m.Platform)
		}
	case *topology.Stack:
		stackCount = len(c.Members)
	}

	fmt.Fprintf(w, " Stack Cnt: %d\n", stackCount)

	if stack, ok := chassis.(*topology.Stack); ok && opts.StackMembers {
		fmt.Fprintln(w, "      Stack members:")
		for _, m := range stack.Members {
			fmt.Fprintf(w, "        Switch Number: %d\n", m.Number)
			fmt.Fprintf(w, "                 Role: %s\n", m.Role)
			fmt.Fprintf(w, "             Priority: %d\n", m.Priority)
			fmt.Fprintf(w, "                  MAC: %s\n", m.MAC)
			fmt.Fprintf(w, "             Platform: %s\n", m.Platform)
			fmt.Fprintf(w, "                Image: %s\n", m.Image)
			fmt.Fprintf(w, "               Serial: %s\n", m.Serial)
		}
	}

	fmt.Fprintln(w, "      Loopbacks:")
	if !opts.IncludeLo {
		fmt.Fprintln(w, "        Not configured.")
	} else {
		for _, lo := range d.Loopbacks {
			for _, ip := range lo.Addresses {
				fmt.Fprintf(w, "        %s - %s\n", lo.Name, ip)
			}
		}
	}

	fmt.Fprintln(w, "      SVIs:")
	if !opts.IncludeSVI {
		fmt.Fprintln(w, "        Not configured.")
	} else {
		for _, svi := range d.SVIs {
			for _, ip := range svi.Addresses {
				fmt.Fprintf(w, "        SVI %d - %s\n", svi.VLAN, ip)
			}
		}
	}

	fmt.Fprintln(w, "     Links:")
	for _, l := range d.Links {
		fmt.Fprintln(w, linkLine(g, l))
	}
}

func linkLine(g *topology.Graph, l *topology.Link) string {
	name := "UNKNOWN"
	if nb := g.Device(l.Neighbor); nb != nil {
		name = displayName(nb)
	}

	line := fmt.Sprintf("       %s -> %s:%s", l.LocalPort, name, l.RemotePort)

	if l.Local.LAG.IsMember() || l.Remote.LAG.IsMember() {
		line += fmt.Sprintf(" LAG[%s:%s]", memberID(l.Local.LAG), memberID(l.Remote.LAG))
	}

	return line
}

func memberID(lag topology.LAG) string {
	if !lag.IsMember() {
		return ""
	}

	return lag.ID
}

// description is the describe block as a string, used for GraphML node
// descriptions.
func description(g *topology.Graph, d *topology.Device, opts Options) string {
	var sb strings.Builder

	describe(&sb, g, d, opts)

	return sb.String()
}
