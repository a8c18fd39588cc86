package render

import (
	"context"
	"testing"
	"time"

	"github.com/carverauto/mnet/pkg/topology"
)

func addr(s string) topology.Address {
	return topology.ParseAddress(s)
}

func trunk(local, remote string, neighbor topology.DeviceID, lag string) *topology.Link {
	side := topology.PortSide{NativeVLAN: 1, AllowedVLANs: "1-4094", LAG: topology.MemberOf(lag)}

	return &topology.Link{
		LocalPort:  local,
		RemotePort: remote,
		Neighbor:   neighbor,
		Protocol:   topology.ProtocolCDP,
		Kind:       topology.LinkTrunk,
		Local:      side,
		Remote:     side,
	}
}

func access(local, remote string, neighbor topology.DeviceID) *topology.Link {
	return &topology.Link{
		LocalPort:  local,
		RemotePort: remote,
		Neighbor:   neighbor,
		Protocol:   topology.ProtocolCDP,
		Kind:       topology.LinkAccess,
		VLAN:       10,
		Local:      topology.PortSide{LAG: topology.NoLAG()},
		Remote:     topology.PortSide{LAG: topology.NoLAG()},
	}
}

// campus is a VSS core with a two-member access stack hanging off a
// two-link port-channel and a standalone edge switch below the stack.
func campus() *topology.Graph {
	g := topology.NewGraph(0)

	core := g.AddDevice(&topology.Device{
		Name:      "core1",
		Addresses: []topology.Address{addr("10.0.0.1")},
		Platform:  "WS-C6509-E",
		Version:   "15.1(2)SY11",
		Routing:   topology.Routing{Enabled: true, OSPFRouterID: "1.1.1.1"},
		Chassis: &topology.RedundantPair{Domain: "100", Members: [2]topology.PairMember{
			{Platform: "WS-C6509-E", Serial: "SAL1", Version: "15.1(2)SY11"},
			{Platform: "WS-C6509-E", Serial: "SAL2", Version: "15.1(2)SY11"},
		}},
		Reachable: true,
		Queried:   true,
	})

	acc := g.AddDevice(&topology.Device{
		Name:      "acc1",
		Addresses: []topology.Address{addr("10.0.0.2")},
		Platform:  "WS-C3850-48P",
		Version:   "16.9.4",
		BootImage: "flash:packages.conf",
		Chassis: &topology.Stack{Members: []topology.StackMember{
			{Number: 1, Role: "active", Priority: 15, Platform: "WS-C3850-48P", Serial: "FOC1"},
			{Number: 2, Role: "standby", Priority: 14, Platform: "WS-C3850-48P", Serial: "FOC2"},
		}},
		Reachable: true,
		Queried:   true,
	})

	edge := g.AddDevice(&topology.Device{
		Name:      "edge1",
		Addresses: []topology.Address{addr("10.0.0.3")},
		Platform:  "WS-C2960",
		Serial:    "FOC123",
		Reachable: true,
		Queried:   true,
	})

	g.SetRoot(core)

	core.Links = []*topology.Link{
		trunk("Gi1/1/1", "Gi1/0/49", acc.ID, "Po1"),
		trunk("Gi2/1/1", "Gi2/0/49", acc.ID, "Po1"),
	}
	acc.Links = []*topology.Link{
		trunk("Gi1/0/49", "Gi1/1/1", core.ID, "Po1"),
		trunk("Gi2/0/49", "Gi2/1/1", core.ID, "Po1"),
		access("Gi1/0/1", "Gi0/1", edge.ID),
	}
	edge.Links = []*topology.Link{
		access("Gi0/1", "Gi1/0/1", acc.ID),
	}

	return g
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.Version = "1.0.0"
	opts.Now = func() time.Time { return time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC) }

	return opts
}

type graphvizFunc func(ctx context.Context, input []byte, args ...string) ([]byte, error)

func stubGraphviz(t *testing.T, fn graphvizFunc) {
	t.Helper()

	orig := graphviz
	graphviz = fn

	t.Cleanup(func() { graphviz = orig })
}
