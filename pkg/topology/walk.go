package topology

// Walk calls visit once for every device: depth-first from the root along
// links, then for every device the root walk did not reach. Visited markers
// are reset on entry, so each call is an independent pass.
func (g *Graph) Walk(visit func(d *Device)) {
	for _, d := range g.devices {
		d.visited = false
	}

	if root := g.Root(); root != nil {
		g.walk(root, visit)
	}

	for _, d := range g.devices {
		if !d.visited {
			g.walk(d, visit)
		}
	}
}

func (g *Graph) walk(d *Device, visit func(d *Device)) {
	if d == nil || d.visited {
		return
	}

	d.visited = true
	visit(d)

	for _, l := range d.Links {
		g.walk(g.Device(l.Neighbor), visit)
	}
}
