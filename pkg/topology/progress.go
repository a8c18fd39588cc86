package topology

import (
	"fmt"
	"io"
	"strings"
)

const (
	stepResolve = '+'
	stepExpand  = '>'
)

// progress prints one line per crawl step, e.g. "[ cdp]+..core2 (10.0.0.2)".
type progress struct {
	w io.Writer
}

func (p progress) step(indicator byte, depth int, via Protocol, name string, addr Address, reachable bool) {
	if p.w == nil {
		return
	}

	var b strings.Builder

	switch via {
	case ProtocolCDP:
		b.WriteString("[ cdp]")
	case ProtocolLLDP:
		b.WriteString("[lldp]")
	default:
		b.WriteString("      ")
	}

	b.WriteByte(indicator)
	b.WriteString(strings.Repeat(".", depth))

	if reachable {
		fmt.Fprintf(&b, "%s (%s)", name, addr)
	} else {
		fmt.Fprintf(&b, "UNKNOWN (%s)            << UNABLE TO CONNECT WITH SNMP", addr)
	}

	fmt.Fprintln(p.w, b.String())
}
