package render

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"strconv"
	"strings"
)

type point struct {
	X, Y float64
}

const (
	layoutScale   = 500.0
	layoutSpacing = 250.0
	// Graphviz plain output is in inches.
	pointsPerInch = 72.0
)

// layoutNode is one drawn box. shell is the hop distance from the root.
type layoutNode struct {
	id    string
	shell int
}

// layout positions nodes by style. The dot layout falls back to circular
// when Graphviz cannot be run.
func layout(ctx context.Context, style GraphMLStyle, nodes []layoutNode, edges [][2]string) (map[string]point, error) {
	switch style.Layout {
	case LayoutDot, "":
		pos, err := dotLayout(ctx, nodes, edges)
		if err == nil {
			return pos, nil
		}

		log.Printf("Falling back to circular layout: %v", err)

		return circularLayout(nodes), nil
	case LayoutCircular:
		return circularLayout(nodes), nil
	case LayoutShell:
		return shellLayout(nodes), nil
	case LayoutGrid:
		return gridLayout(nodes), nil
	case LayoutRandom:
		return randomLayout(nodes, style.Seed), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLayout, style.Layout)
	}
}

func ring(ids []string, radius float64, pos map[string]point) {
	if len(ids) == 1 && radius == 0 {
		pos[ids[0]] = point{}
		return
	}

	for i, id := range ids {
		angle := 2 * math.Pi * float64(i) / float64(len(ids))
		pos[id] = point{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
	}
}

func circularLayout(nodes []layoutNode) map[string]point {
	pos := make(map[string]point, len(nodes))

	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.id
	}

	if len(ids) == 1 {
		ring(ids, 0, pos)
	} else {
		ring(ids, layoutScale, pos)
	}

	return pos
}

// shellLayout puts the root at the centre and every further hop on the next
// concentric circle.
func shellLayout(nodes []layoutNode) map[string]point {
	pos := make(map[string]point, len(nodes))
	shells := make(map[int][]string)
	maxShell := 0

	for _, n := range nodes {
		shells[n.shell] = append(shells[n.shell], n.id)
		maxShell = max(maxShell, n.shell)
	}

	for s := 0; s <= maxShell; s++ {
		if ids := shells[s]; len(ids) > 0 {
			ring(ids, float64(s)*layoutSpacing, pos)
		}
	}

	return pos
}

func gridLayout(nodes []layoutNode) map[string]point {
	pos := make(map[string]point, len(nodes))
	cols := int(math.Ceil(math.Sqrt(float64(len(nodes)))))

	for i, n := range nodes {
		pos[n.id] = point{X: float64(i%cols) * layoutSpacing, Y: float64(i/cols) * layoutSpacing}
	}

	return pos
}

func randomLayout(nodes []layoutNode, seed int64) map[string]point {
	pos := make(map[string]point, len(nodes))
	rng := rand.New(rand.NewSource(seed))

	for _, n := range nodes {
		pos[n.id] = point{X: rng.Float64() * 2 * layoutScale, Y: rng.Float64() * 2 * layoutScale}
	}

	return pos
}

// dotLayout asks Graphviz for positions through its plain output format.
func dotLayout(ctx context.Context, nodes []layoutNode, edges [][2]string) (map[string]point, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "graph {")
	fmt.Fprintln(&buf, "\tgraph [nodesep=4.0, ranksep=4.0, mindist=4.0];")

	for _, n := range nodes {
		fmt.Fprintf(&buf, "\t%s;\n", n.id)
	}

	for _, e := range edges {
		fmt.Fprintf(&buf, "\t%s -- %s;\n", e[0], e[1])
	}

	fmt.Fprintln(&buf, "}")

	out, err := graphviz(ctx, buf.Bytes(), "-Tplain")
	if err != nil {
		return nil, err
	}

	return parsePlain(out)
}

// parsePlain reads "node name x y ..." lines. Graphviz puts y upwards, yEd
// downwards.
func parsePlain(out []byte) (map[string]point, error) {
	pos := make(map[string]point)

	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 4 || fields[0] != "node" {
			continue
		}

		x, errX := strconv.ParseFloat(fields[2], 64)
		y, errY := strconv.ParseFloat(fields[3], 64)

		if errX != nil || errY != nil {
			return nil, fmt.Errorf("bad graphviz position line %q", sc.Text())
		}

		pos[strings.Trim(fields[1], `"`)] = point{X: x * pointsPerInch, Y: -y * pointsPerInch}
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}

	return pos, nil
}
