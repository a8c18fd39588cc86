package render

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"os"
	"strings"

	"github.com/carverauto/mnet/pkg/topology"
)

// DOT writes g as an undirected Graphviz graph with HTML node labels.
func DOT(w io.Writer, g *topology.Graph, opts Options) error {
	d := buildDiagram(g, opts)
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "graph G {")
	fmt.Fprintf(bw, "\tgraph [fontsize=%d, labelloc=b, labeljust=r, label=<%s>];\n", opts.NodeTextSize, dotCredits(opts))
	fmt.Fprintf(bw, "\tnode [fontsize=%d];\n", opts.LinkTextSize)
	fmt.Fprintf(bw, "\tedge [fontsize=%d, labeljust=l];\n", opts.LinkTextSize)

	rings := make(map[string][]diagramEdge)
	for _, e := range d.edges {
		if e.ring {
			rings[e.from] = append(rings[e.from], e)
		}
	}

	for _, n := range d.nodes {
		if n.cluster == nil {
			fmt.Fprintf(bw, "\t%s [label=<%s>, shape=%s, style=solid, peripheries=%d];\n",
				n.id, dotNodeLabel(n, nil), dotShape(n), n.peripheries)

			continue
		}

		fmt.Fprintf(bw, "\tsubgraph cluster_%s {\n", n.id)
		fmt.Fprintf(bw, "\t\tlabel=<<br /><b>%s</b>>;\n\t\tlabelloc=t;\n\t\tlabeljust=c;\n\t\tfontsize=%d;\n",
			html.EscapeString(n.cluster.label), opts.NodeTextSize)

		for _, m := range n.cluster.members {
			fmt.Fprintf(bw, "\t\t%s [label=<%s>, shape=%s, style=solid, peripheries=%d];\n",
				m.id, dotNodeLabel(n, m.extra), dotShape(n), n.peripheries)
		}

		for _, m := range n.cluster.members {
			for _, e := range rings[m.id] {
				fmt.Fprintf(bw, "\t\t%s -- %s [style=dashed];\n", e.from, e.to)
			}
		}

		fmt.Fprintln(bw, "\t}")
	}

	for _, e := range d.edges {
		if e.ring {
			continue
		}

		color, style := edgeStyle(e.kind)
		fmt.Fprintf(bw, "\t%s -- %s [dir=forward, label=%s, color=%s, style=%s];\n",
			e.from, e.to, dotQuote(e.lines), color, style)
	}

	fmt.Fprintln(bw, "}")

	return bw.Flush()
}

// WriteDOT writes DOT text to a .dot or .gv path. Any other extension names
// a Graphviz output format, and the rendered image is written instead.
func WriteDOT(ctx context.Context, path string, g *topology.Graph, opts Options) error {
	ext := extension(path)
	if ext == "" || ext == "dot" || ext == "gv" {
		return writeFile(path, func(w io.Writer) error {
			return DOT(w, g, opts)
		})
	}

	var buf bytes.Buffer
	if err := DOT(&buf, g, opts); err != nil {
		return err
	}

	out, err := graphviz(ctx, buf.Bytes(), "-T"+ext)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

func edgeStyle(kind topology.LinkKind) (color, style string) {
	switch kind {
	case topology.LinkTrunk:
		return "blue", "bold"
	case topology.LinkRouted:
		return "red", "bold"
	default:
		return "black", "solid"
	}
}

func dotShape(n *diagramNode) string {
	if n.router {
		return "diamond"
	}

	return "ellipse"
}

func dotNodeLabel(n *diagramNode, extra []string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, `<font point-size="10"><b>%s</b></font>`, html.EscapeString(n.name))

	if n.address != "" {
		fmt.Fprintf(&sb, `<br /><font point-size="8"><i>%s</i></font>`, n.address)
	}

	for _, line := range n.details {
		sb.WriteString("<br />" + html.EscapeString(line))
	}

	for _, line := range extra {
		sb.WriteString("<br />" + html.EscapeString(line))
	}

	return sb.String()
}

func dotCredits(opts Options) string {
	return fmt.Sprintf(`<table border="0"><tr><td balign="right">`+
		`<font point-size="%d"><b>%s</b></font><br />`+
		`<font point-size="%d">%s</font><br />`+
		`<font point-size="7">%s</font><br />`+
		`</td></tr></table>`,
		opts.TitleTextSize, html.EscapeString(opts.Title),
		opts.TitleTextSize-2, opts.stamp(),
		html.EscapeString(generatedBy(opts)))
}

func generatedBy(opts Options) string {
	if opts.Version == "" {
		return "Generated by MNet"
	}

	return "Generated by MNet " + opts.Version
}

// dotQuote renders lines as one quoted DOT string with \n line breaks.
func dotQuote(lines []string) string {
	escaped := make([]string, len(lines))
	for i, line := range lines {
		escaped[i] = strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(line)
	}

	return `"` + strings.Join(escaped, `\n`) + `"`
}
