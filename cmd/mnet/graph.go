package main

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/carverauto/mnet/pkg/config"
	"github.com/carverauto/mnet/pkg/device"
	"github.com/carverauto/mnet/pkg/render"
	"github.com/carverauto/mnet/pkg/snmp"
	"github.com/carverauto/mnet/pkg/topology"
)

// newQuerier builds the SNMP device facade. Tests swap it for a mock.
var newQuerier = func(cfg *config.Config) topology.Querier {
	return device.NewQuerier(snmp.NewDialer(cfg.SNMP, cfg.Poll.Options()))
}

type graphOptions struct {
	roots   []string
	dot     string
	graphml string
	mermaid string
	catalog string
	depth   int
	title   string
	config  string
	style   render.GraphMLStyle
}

var graphStyleAliases = map[string]string{
	"na":         "no-arrows",
	"nc":         "no-colors",
	"nn":         "no-node-labels",
	"no-nodes":   "no-node-labels",
	"ne":         "no-edge-labels",
	"no-edges":   "no-edge-labels",
	"la":         "lump-attributes",
	"sc":         "separator-char",
	"cn":         "color-nodes",
	"cnt":        "color-nodes-text",
	"ce":         "color-edges",
	"cet":        "color-edges-text",
	"ah":         "arrowhead",
	"at":         "arrowtail",
}

func newGraphCmd(term func(*cobra.Command) *ui) *cobra.Command {
	o := &graphOptions{style: render.DefaultGraphMLStyle()}

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Crawl the network and write diagrams",
		Long: `Crawl the network from the root devices and write the discovered
topology. At least one of --dot, --graphml or --mermaid is required. A --dot
path ending in anything other than .dot or .gv is rendered by Graphviz.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGraph(cmd.Context(), term(cmd), o)
		},
	}

	f := cmd.Flags()
	f.StringArrayVarP(&o.roots, "root", "r", nil, "root device address (repeatable)")
	f.StringVarP(&o.dot, "dot", "f", "", "Graphviz output file")
	f.StringVarP(&o.graphml, "graphml", "g", "", "yEd GraphML output file")
	f.StringVar(&o.mermaid, "mermaid", "", "Mermaid output file (.md files are fenced)")
	f.StringVarP(&o.catalog, "catalog", "C", "", "catalog output file")
	f.IntVarP(&o.depth, "depth", "d", 0, "maximum crawl depth, 0 for unlimited")
	f.StringVarP(&o.title, "title", "t", render.DefaultOptions().Title, "diagram title")
	f.StringVarP(&o.config, "config", "c", defaultConfigPath, "config file")

	s := &o.style
	f.StringVar(&s.Layout, "layout", s.Layout, "GraphML layout ("+strings.Join(render.Layouts, "|")+")")
	f.Int64Var(&s.Seed, "seed", s.Seed, "random GraphML layout seed")
	f.BoolVar(&s.NoArrows, "no-arrows", false, "GraphML: draw no arrows")
	f.BoolVar(&s.NoColors, "no-colors", false, "GraphML: draw no colors")
	f.BoolVar(&s.NoNodeLabels, "no-node-labels", false, "GraphML: omit node labels")
	f.BoolVar(&s.NoEdgeLabels, "no-edge-labels", false, "GraphML: omit edge labels")
	f.BoolVar(&s.LumpAttributes, "lump-attributes", false, "GraphML: append device details to node labels")
	f.StringVar(&s.SepChar, "separator-char", s.SepChar, "GraphML: rule character for lumped attributes")
	f.StringVar(&s.NodeColor, "color-nodes", s.NodeColor, "GraphML: node color")
	f.StringVar(&s.NodeTextColor, "color-nodes-text", s.NodeTextColor, "GraphML: node label color")
	f.StringVar(&s.EdgeColor, "color-edges", s.EdgeColor, "GraphML: edge color")
	f.StringVar(&s.EdgeTextColor, "color-edges-text", s.EdgeTextColor, "GraphML: edge label color")
	f.StringVar(&s.ArrowHead, "arrowhead", s.ArrowHead, "GraphML: arrow head shape (standard|diamond|circle|...)")
	f.StringVar(&s.ArrowTail, "arrowtail", s.ArrowTail, "GraphML: arrow tail shape")
	f.SetNormalizeFunc(flagAliases(graphStyleAliases))

	return cmd
}

func (o *graphOptions) validate() error {
	if len(o.roots) == 0 {
		return errNoRoot
	}

	if o.dot == "" && o.graphml == "" && o.mermaid == "" {
		return errNoOutput
	}

	if !slices.Contains(render.Layouts, o.style.Layout) {
		return fmt.Errorf("%w: %q", render.ErrUnknownLayout, o.style.Layout)
	}

	return nil
}

func renderOptions(g config.GraphConfig, title string) render.Options {
	opts := render.DefaultOptions()
	opts.Title = title
	opts.Version = version
	opts.NodeTextSize = g.NodeTextSize
	opts.LinkTextSize = g.LinkTextSize
	opts.TitleTextSize = g.TitleTextSize
	opts.IncludeSerials = g.IncludeSerials
	opts.IncludeLo = g.IncludeLo
	opts.IncludeSVI = g.IncludeSVI
	opts.StackMembers = g.GetStackMembers
	opts.ExpandStack = g.ExpandStackwise
	opts.ExpandPair = g.ExpandVSS
	opts.ExpandLAG = g.ExpandLAG

	return opts
}

func runGraph(ctx context.Context, u *ui, o *graphOptions) error {
	if err := o.validate(); err != nil {
		return err
	}

	u.heading("MNet Graph")
	u.field("Config file", o.config)
	u.field("Root node", strings.Join(o.roots, ", "))

	for _, out := range []string{o.dot, o.graphml, o.mermaid} {
		if out != "" {
			u.field("Output file", out)
		}
	}

	u.field("Crawl depth", strconv.Itoa(o.depth))
	u.field("Diagram title", o.title)
	u.field("Catalog file", o.catalog)
	fmt.Fprintln(u.out)

	cfg := config.Default()
	if err := config.LoadAndValidate(o.config, cfg); err != nil {
		return fmt.Errorf("%w: %w", errFailedToLoadConfig, err)
	}

	policy, err := cfg.Policy()
	if err != nil {
		return err
	}

	query := cfg.Graph.QueryOptions()
	if o.catalog != "" {
		query.Serials = true
		query.BootImage = true
	}

	crawler := topology.NewCrawler(newQuerier(cfg), policy, topology.Options{
		MaxDepth:    o.depth,
		Query:       query,
		HostDomains: cfg.Domains,
		Progress:    u.out,
	})

	g, err := crawler.Crawl(ctx, o.roots)
	if err != nil {
		return err
	}

	opts := renderOptions(cfg.Graph, o.title)

	fmt.Fprintln(u.out)

	if _, _, err := render.Stdout(u.out, g, opts); err != nil {
		return err
	}

	writeOutputs(ctx, u, g, o, opts)

	return nil
}

// writeOutputs writes every requested file. A failed output is reported and
// the rest are still written.
func writeOutputs(ctx context.Context, u *ui, g *topology.Graph, o *graphOptions, opts render.Options) {
	outputs := []struct {
		kind  string
		path  string
		write func() error
	}{
		{"DOT", o.dot, func() error { return render.WriteDOT(ctx, o.dot, g, opts) }},
		{"GraphML", o.graphml, func() error { return render.WriteGraphML(ctx, o.graphml, g, opts, o.style) }},
		{"Mermaid", o.mermaid, func() error { return render.WriteMermaid(o.mermaid, g, opts) }},
		{"Catalog", o.catalog, func() error { return render.WriteCatalog(o.catalog, g) }},
	}

	fmt.Fprintln(u.out)

	for _, out := range outputs {
		if out.path == "" {
			continue
		}

		if err := out.write(); err != nil {
			u.warnf("Unable to write %s output %s: %v", out.kind, out.path, err)
			continue
		}

		u.field(out.kind, "created "+out.path)
	}
}
