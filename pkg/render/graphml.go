package render

import (
	"bufio"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/carverauto/mnet/pkg/topology"
)

const (
	keyNodeGraphics = "d0"
	keyNodeDesc     = "d1"
	keyEdgeGraphics = "d2"
	keyGraphDesc    = "d3"

	nodeWidth  = 160.0
	lineHeight = 16.0
)

type gmlDoc struct {
	XMLName        xml.Name `xml:"graphml"`
	XMLNS          string   `xml:"xmlns,attr"`
	XMLNSXSI       string   `xml:"xmlns:xsi,attr"`
	XMLNSY         string   `xml:"xmlns:y,attr"`
	SchemaLocation string   `xml:"xsi:schemaLocation,attr"`
	Keys           []gmlKey `xml:"key"`
	Graph          gmlGraph `xml:"graph"`
}

type gmlKey struct {
	ID       string `xml:"id,attr"`
	For      string `xml:"for,attr"`
	YType    string `xml:"yfiles.type,attr,omitempty"`
	AttrName string `xml:"attr.name,attr,omitempty"`
	AttrType string `xml:"attr.type,attr,omitempty"`
}

type gmlGraph struct {
	ID          string    `xml:"id,attr"`
	EdgeDefault string    `xml:"edgedefault,attr"`
	Data        []gmlData `xml:"data"`
	Nodes       []gmlNode `xml:"node"`
	Edges       []gmlEdge `xml:"edge"`
}

type gmlData struct {
	Key   string      `xml:"key,attr"`
	Text  string      `xml:",chardata"`
	Shape *yShapeNode `xml:"y:ShapeNode,omitempty"`
	Group *yProxyNode `xml:"y:ProxyAutoBoundsNode,omitempty"`
	Edge  *yPolyLine  `xml:"y:PolyLineEdge,omitempty"`
}

type gmlNode struct {
	ID         string    `xml:"id,attr"`
	FolderType string    `xml:"yfiles.foldertype,attr,omitempty"`
	Data       []gmlData `xml:"data"`
	Graph      *gmlGraph `xml:"graph,omitempty"`
}

type gmlEdge struct {
	ID     string    `xml:"id,attr"`
	Source string    `xml:"source,attr"`
	Target string    `xml:"target,attr"`
	Data   []gmlData `xml:"data"`
}

type yGeometry struct {
	X      float64 `xml:"x,attr"`
	Y      float64 `xml:"y,attr"`
	Width  float64 `xml:"width,attr"`
	Height float64 `xml:"height,attr"`
}

type yFill struct {
	Color       string `xml:"color,attr"`
	Transparent bool   `xml:"transparent,attr"`
}

type yLine struct {
	Color string  `xml:"color,attr"`
	Type  string  `xml:"type,attr"`
	Width float64 `xml:"width,attr"`
}

type yLabel struct {
	Alignment     string `xml:"alignment,attr"`
	FontSize      int    `xml:"fontSize,attr"`
	TextColor     string `xml:"textColor,attr"`
	ModelName     string `xml:"modelName,attr,omitempty"`
	ModelPosition string `xml:"modelPosition,attr,omitempty"`
	Text          string `xml:",chardata"`
}

type yShape struct {
	Type string `xml:"type,attr"`
}

type yShapeNode struct {
	Geometry yGeometry `xml:"y:Geometry"`
	Fill     yFill     `xml:"y:Fill"`
	Border   yLine     `xml:"y:BorderStyle"`
	Label    *yLabel   `xml:"y:NodeLabel,omitempty"`
	Shape    yShape    `xml:"y:Shape"`
}

type yProxyNode struct {
	Realizers yRealizers `xml:"y:Realizers"`
}

type yRealizers struct {
	Active int        `xml:"active,attr"`
	Group  yGroupNode `xml:"y:GroupNode"`
}

type yGroupNode struct {
	Fill   yFill   `xml:"y:Fill"`
	Border yLine   `xml:"y:BorderStyle"`
	Label  *yLabel `xml:"y:NodeLabel,omitempty"`
	Shape  yShape  `xml:"y:Shape"`
	State  yState  `xml:"y:State"`
}

type yState struct {
	Closed bool `xml:"closed,attr"`
}

type yArrows struct {
	Source string `xml:"source,attr"`
	Target string `xml:"target,attr"`
}

type yPolyLine struct {
	LineStyle yLine   `xml:"y:LineStyle"`
	Arrows    yArrows `xml:"y:Arrows"`
	Label     *yLabel `xml:"y:EdgeLabel,omitempty"`
}

// GraphML writes g as a yEd GraphML document. Expanded stacks and pairs
// become group nodes holding one node per unit.
func GraphML(ctx context.Context, w io.Writer, g *topology.Graph, opts Options, style GraphMLStyle) error {
	d := buildDiagram(g, opts)

	pos, err := layout(ctx, style, layoutNodes(g, d), layoutEdges(d))
	if err != nil {
		return err
	}

	b := &gmlBuilder{g: g, opts: opts, style: style, pos: pos}

	doc := gmlDoc{
		XMLNS:          "http://graphml.graphdrawing.org/xmlns",
		XMLNSXSI:       "http://www.w3.org/2001/XMLSchema-instance",
		XMLNSY:         "http://www.yworks.com/xml/graphml",
		SchemaLocation: "http://graphml.graphdrawing.org/xmlns http://www.yworks.com/xml/schema/graphml/1.0/ygraphml.xsd",
		Keys: []gmlKey{
			{ID: keyNodeGraphics, For: "node", YType: "nodegraphics"},
			{ID: keyNodeDesc, For: "node", AttrName: "description", AttrType: "string"},
			{ID: keyEdgeGraphics, For: "edge", YType: "edgegraphics"},
			{ID: keyGraphDesc, For: "graph", AttrName: "description", AttrType: "string"},
		},
		Graph: gmlGraph{
			ID:          "G",
			EdgeDefault: "directed",
			Data:        []gmlData{{Key: keyGraphDesc, Text: credits(opts)}},
		},
	}

	for _, n := range d.nodes {
		doc.Graph.Nodes = append(doc.Graph.Nodes, b.node(n, d))
	}

	for i, e := range d.edges {
		if !e.ring {
			doc.Graph.Edges = append(doc.Graph.Edges, b.edge(fmt.Sprintf("e%d", i), e))
		}
	}

	bw := bufio.NewWriter(w)

	if _, err := io.WriteString(bw, xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(bw)
	enc.Indent("", "  ")

	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode graphml: %w", err)
	}

	if _, err := io.WriteString(bw, "\n"); err != nil {
		return err
	}

	return bw.Flush()
}

func credits(opts Options) string {
	return strings.Join([]string{opts.Title, opts.stamp(), generatedBy(opts)}, "\n")
}

func layoutNodes(g *topology.Graph, d *diagram) []layoutNode {
	shells := hops(g)

	var nodes []layoutNode

	for _, n := range d.nodes {
		shell := shells[n.device.ID]

		if n.cluster == nil {
			nodes = append(nodes, layoutNode{id: n.id, shell: shell})
			continue
		}

		for _, m := range n.cluster.members {
			nodes = append(nodes, layoutNode{id: m.id, shell: shell})
		}
	}

	return nodes
}

func layoutEdges(d *diagram) [][2]string {
	edges := make([][2]string, 0, len(d.edges))
	for _, e := range d.edges {
		edges = append(edges, [2]string{e.from, e.to})
	}

	return edges
}

// hops is the breadth-first link distance of every device from the root.
// Devices the root cannot reach are placed one hop beyond the farthest.
func hops(g *topology.Graph) map[topology.DeviceID]int {
	dist := make(map[topology.DeviceID]int)

	root := g.Root()
	if root == nil {
		return dist
	}

	dist[root.ID] = 0
	queue := []*topology.Device{root}
	farthest := 0

	for len(queue) > 0 {
		d := queue[0]
		queue = queue[1:]

		for _, l := range d.Links {
			nb := g.Device(l.Neighbor)
			if nb == nil {
				continue
			}

			if _, seen := dist[nb.ID]; seen {
				continue
			}

			dist[nb.ID] = dist[d.ID] + 1
			farthest = max(farthest, dist[nb.ID])
			queue = append(queue, nb)
		}
	}

	for _, d := range g.Devices() {
		if _, seen := dist[d.ID]; !seen {
			dist[d.ID] = farthest + 1
		}
	}

	return dist
}

type gmlBuilder struct {
	g     *topology.Graph
	opts  Options
	style GraphMLStyle
	pos   map[string]point
}

func (b *gmlBuilder) fill() yFill {
	if b.style.NoColors {
		return yFill{Color: "#FFFFFF"}
	}

	return yFill{Color: b.style.NodeColor}
}

func (b *gmlBuilder) label(lines []string, desc string) *yLabel {
	if b.style.NoNodeLabels {
		return nil
	}

	text := strings.Join(lines, "\n")
	if b.style.LumpAttributes {
		text += "\n" + strings.Repeat(b.style.SepChar, 24) + "\n" + strings.TrimRight(desc, "\n")
	}

	return &yLabel{
		Alignment:     "center",
		FontSize:      b.opts.NodeTextSize,
		TextColor:     b.style.NodeTextColor,
		ModelName:     "sandwich",
		ModelPosition: "s",
		Text:          text,
	}
}

func (b *gmlBuilder) shapeNode(id string, lines []string, desc, shape string) gmlNode {
	p := b.pos[id]

	return gmlNode{
		ID: id,
		Data: []gmlData{
			{Key: keyNodeDesc, Text: desc},
			{Key: keyNodeGraphics, Shape: &yShapeNode{
				Geometry: yGeometry{X: p.X, Y: p.Y, Width: nodeWidth, Height: lineHeight*float64(len(lines)) + 12},
				Fill:     b.fill(),
				Border:   yLine{Color: "#000000", Type: "line", Width: 1},
				Label:    b.label(lines, desc),
				Shape:    yShape{Type: shape},
			}},
		},
	}
}

func (b *gmlBuilder) node(n *diagramNode, d *diagram) gmlNode {
	desc := description(b.g, n.device, b.opts)

	shape := "ellipse"
	if n.router {
		shape = "diamond"
	}

	if n.cluster == nil {
		return b.shapeNode(n.id, n.lines(), desc, shape)
	}

	group := gmlNode{
		ID:         n.id,
		FolderType: "group",
		Data: []gmlData{
			{Key: keyNodeDesc, Text: desc},
			{Key: keyNodeGraphics, Group: &yProxyNode{Realizers: yRealizers{Group: yGroupNode{
				Fill:   yFill{Color: "#F5F5F5"},
				Border: yLine{Color: "#000000", Type: "dashed", Width: 1},
				Label: &yLabel{
					Alignment: "right",
					FontSize:  b.opts.NodeTextSize,
					TextColor: b.style.NodeTextColor,
					ModelName: "internal",
					Text:      n.cluster.label,
				},
				Shape: yShape{Type: "roundrectangle"},
			}}}},
		},
		Graph: &gmlGraph{ID: n.id + ":", EdgeDefault: "directed"},
	}

	for _, m := range n.cluster.members {
		lines := append(n.lines(), m.extra...)
		group.Graph.Nodes = append(group.Graph.Nodes, b.shapeNode(m.id, lines, "", shape))
	}

	for i, e := range d.edges {
		if e.ring && b.inCluster(n, e.from) {
			group.Graph.Edges = append(group.Graph.Edges, b.edge(fmt.Sprintf("%s:e%d", n.id, i), e))
		}
	}

	return group
}

func (b *gmlBuilder) inCluster(n *diagramNode, id string) bool {
	for _, m := range n.cluster.members {
		if m.id == id {
			return true
		}
	}

	return false
}

func (b *gmlBuilder) edge(id string, e diagramEdge) gmlEdge {
	line := yLine{Color: b.style.EdgeColor, Type: "line", Width: 1}

	switch {
	case e.ring:
		line.Type = "dashed"
	case e.kind == topology.LinkTrunk:
		line.Width = 2
		if !b.style.NoColors {
			line.Color = "#0000FF"
		}
	case e.kind == topology.LinkRouted:
		line.Width = 2
		if !b.style.NoColors {
			line.Color = "#FF0000"
		}
	}

	arrows := yArrows{Source: b.style.ArrowTail, Target: b.style.ArrowHead}
	if b.style.NoArrows {
		arrows = yArrows{Source: "none", Target: "none"}
	}

	pl := &yPolyLine{LineStyle: line, Arrows: arrows}

	if !b.style.NoEdgeLabels && len(e.lines) > 0 {
		pl.Label = &yLabel{
			Alignment: "center",
			FontSize:  b.opts.LinkTextSize,
			TextColor: b.style.EdgeTextColor,
			Text:      strings.Join(e.lines, "\n"),
		}
	}

	return gmlEdge{
		ID:     id,
		Source: e.from,
		Target: e.to,
		Data:   []gmlData{{Key: keyEdgeGraphics, Edge: pl}},
	}
}
