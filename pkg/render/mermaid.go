package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/carverauto/mnet/pkg/topology"
)

// Mermaid writes g as a Mermaid flowchart. Expanded stacks and pairs become
// subgraphs.
func Mermaid(w io.Writer, g *topology.Graph, opts Options) error {
	d := buildDiagram(g, opts)
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "flowchart TD")

	if opts.Title != "" {
		fmt.Fprintf(bw, "    %%%% %s - %s\n", opts.Title, opts.stamp())
	}

	for _, n := range d.nodes {
		if n.cluster == nil {
			fmt.Fprintf(bw, "    %s%s\n", n.id, mermaidNode(n, nil))
			continue
		}

		fmt.Fprintf(bw, "    subgraph %s [\"%s\"]\n", n.id, mermaidEscape(n.cluster.label))

		for _, m := range n.cluster.members {
			fmt.Fprintf(bw, "        %s%s\n", m.id, mermaidNode(n, m.extra))
		}

		fmt.Fprintln(bw, "    end")
	}

	fmt.Fprintln(bw)

	var styles []string

	for i, e := range d.edges {
		if e.ring {
			fmt.Fprintf(bw, "    %s -.- %s\n", e.from, e.to)
			continue
		}

		if len(e.lines) == 0 {
			fmt.Fprintf(bw, "    %s --- %s\n", e.from, e.to)
		} else {
			fmt.Fprintf(bw, "    %s ---|\"%s\"| %s\n", e.from, mermaidLines(e.lines), e.to)
		}

		switch e.kind {
		case topology.LinkTrunk:
			styles = append(styles, fmt.Sprintf("    linkStyle %d stroke:#0000FF,stroke-width:2px", i))
		case topology.LinkRouted:
			styles = append(styles, fmt.Sprintf("    linkStyle %d stroke:#FF0000,stroke-width:2px", i))
		}
	}

	for _, s := range styles {
		fmt.Fprintln(bw, s)
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "    classDef unreachable fill:#FFB6C1,stroke:#FF0000")

	return bw.Flush()
}

func mermaidNode(n *diagramNode, extra []string) string {
	label := mermaidLines(append(n.lines(), extra...))

	var shape string
	if n.router {
		shape = "{\"" + label + "\"}"
	} else {
		shape = "([\"" + label + "\"])"
	}

	if !n.device.Reachable {
		shape += ":::unreachable"
	}

	return shape
}

func mermaidLines(lines []string) string {
	escaped := make([]string, len(lines))
	for i, line := range lines {
		escaped[i] = mermaidEscape(line)
	}

	return strings.Join(escaped, "<br/>")
}

func mermaidEscape(s string) string {
	return strings.ReplaceAll(s, `"`, "#quot;")
}
