package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/carverauto/mnet/pkg/topology"
)

const notPolled = "NOT CONFIGURED TO POLL"

// Catalog writes one inventory line per physical unit:
//
//	"name","ip","platform","version","serial","TYPE","bootfile"
//
// TYPE is STACK, VSS or empty for a standalone device. It returns the
// number of lines written.
func Catalog(w io.Writer, g *topology.Graph) (int, error) {
	bw := bufio.NewWriter(w)
	lines := 0

	for _, d := range g.Devices() {
		name, ip := displayName(d), d.Address().String()

		switch c := topology.ChassisOf(d).(type) {
		case *topology.Stack:
			for _, m := range c.Members {
				catalogLine(bw, name, ip, polled(m.Platform), polled(d.Version), polled(m.Serial), "STACK", d.BootImage)
			}
		case *topology.RedundantPair:
			for _, m := range c.Members {
				catalogLine(bw, name, ip, polled(m.Platform), polled(m.Version), polled(m.Serial), "VSS", d.BootImage)
			}
		default:
			catalogLine(bw, name, ip, polled(d.Platform), polled(d.Version), polled(d.Serial), "", d.BootImage)
		}

		lines += topology.ChassisOf(d).Units()
	}

	return lines, bw.Flush()
}

func polled(s string) string {
	if s == "" {
		return notPolled
	}

	return s
}

func catalogLine(w io.Writer, fields ...string) {
	for i, f := range fields {
		fields[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}

	fmt.Fprintln(w, strings.Join(fields, ","))
}
