package tracemac

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/netip"
	"testing"

	"github.com/carverauto/mnet/pkg/topology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	testMAC = mustMAC("0050.56aa.bbcc")
	domains = []string{"example.net"}
)

func mustMAC(s string) net.HardwareAddr {
	mac, err := ParseMAC(s)
	if err != nil {
		panic(err)
	}

	return mac
}

func expectSwitch(ctrl *gomock.Controller, q *topology.MockQuerier, addr, name string, loc Location, cdp []topology.Neighbor) *MockSession {
	sess := NewMockSession(ctrl)

	q.EXPECT().Open(gomock.Any(), netip.MustParseAddr(addr)).Return(sess, nil)
	sess.EXPECT().Hostname(gomock.Any()).Return(name, nil)
	sess.EXPECT().LocateMAC(gomock.Any(), gomock.Any()).Return(loc, nil)
	sess.EXPECT().Neighbors(gomock.Any(), topology.ProtocolCDP).Return(cdp, nil).AnyTimes()
	sess.EXPECT().Neighbors(gomock.Any(), topology.ProtocolLLDP).Return(nil, nil).AnyTimes()
	sess.EXPECT().Close().Return(nil)

	return sess
}

func TestTracer_RunFollowsAggregate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	q := topology.NewMockQuerier(ctrl)

	expectSwitch(ctrl, q, "10.0.0.1", "dist1.example.net", Location{Port: "Po1", VLAN: 10}, []topology.Neighbor{
		{
			Protocol:      topology.ProtocolCDP,
			LocalPort:     "Gi1/0/1",
			RemoteName:    "access1.example.net",
			RemoteAddress: topology.ParseAddress("10.0.0.2"),
			Local:         topology.PortSide{LAG: topology.MemberOf("Po1")},
		},
	})
	expectSwitch(ctrl, q, "10.0.0.2", "access1.example.net", Location{Port: "Gi1/0/5", VLAN: 10}, []topology.Neighbor{
		{
			Protocol:      topology.ProtocolCDP,
			LocalPort:     "Gi1/0/48",
			RemoteName:    "dist1.example.net",
			RemoteAddress: topology.ParseAddress("10.0.0.1"),
		},
	})

	var out bytes.Buffer

	hops, err := New(q, domains, &out).Run(context.Background(), "10.0.0.1", testMAC)
	require.NoError(t, err)
	require.Len(t, hops, 2)

	assert.Equal(t, Hop{Address: "10.0.0.1", Device: "dist1", Port: "Po1", VLAN: 10, Next: "10.0.0.2", NextDevice: "access1"}, hops[0])
	assert.Equal(t, Hop{Address: "10.0.0.2", Device: "access1", Port: "Gi1/0/5", VLAN: 10}, hops[1])

	assert.Equal(t, "Tracing 00:50:56:aa:bb:cc from 10.0.0.1\n"+
		"  dist1 (10.0.0.1) Po1 VLAN 10 -> access1 (10.0.0.2)\n"+
		"  access1 (10.0.0.2) Gi1/0/5 VLAN 10  << attached here\n", out.String())
}

func TestTracer_RunDetectsLoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	q := topology.NewMockQuerier(ctrl)

	expectSwitch(ctrl, q, "10.0.0.1", "sw1", Location{Port: "Gi0/1", VLAN: 1}, []topology.Neighbor{
		{LocalPort: "Gi0/1", RemoteName: "sw2", RemoteAddress: topology.ParseAddress("10.0.0.2")},
	})
	expectSwitch(ctrl, q, "10.0.0.2", "sw2", Location{Port: "Gi0/2", VLAN: 1}, []topology.Neighbor{
		{LocalPort: "Gi0/2", RemoteName: "sw1", RemoteAddress: topology.ParseAddress("10.0.0.1")},
	})

	hops, err := New(q, nil, nil).Run(context.Background(), "10.0.0.1", testMAC)
	assert.ErrorIs(t, err, ErrLoop)
	assert.Len(t, hops, 2)
}

func TestTracer_RunStopsAtUnaddressedNeighbor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	q := topology.NewMockQuerier(ctrl)

	expectSwitch(ctrl, q, "10.0.0.1", "access1.example.net", Location{Port: "Gi1/0/7", VLAN: 20}, []topology.Neighbor{
		{
			Protocol:      topology.ProtocolCDP,
			LocalPort:     "Gi1/0/7",
			RemoteName:    "ap07.example.net",
			RemoteAddress: topology.ParseAddress("0.0.0.0"),
		},
	})

	var out bytes.Buffer

	hops, err := New(q, domains, &out).Run(context.Background(), "10.0.0.1", testMAC)
	require.ErrorIs(t, err, ErrNoNextHop)
	assert.Empty(t, hops)
	assert.Contains(t, err.Error(), "ap07 on Gi1/0/7")
	assert.NotContains(t, out.String(), "attached here")
	assert.Contains(t, out.String(), "  access1 (10.0.0.1): ")
}

func TestTracer_TracePrefersAddressedNeighbor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	q := topology.NewMockQuerier(ctrl)

	expectSwitch(ctrl, q, "10.0.0.1", "dist1", Location{Port: "Gi1/0/1", VLAN: 10}, []topology.Neighbor{
		{LocalPort: "Gi1/0/1", RemoteName: "phone1", RemoteAddress: topology.Address{Kind: topology.AddressUnknown}},
		{LocalPort: "Gi1/0/1", RemoteName: "access2", RemoteAddress: topology.ParseAddress("10.0.0.3")},
	})

	hop, err := New(q, nil, nil).Trace(context.Background(), "10.0.0.1", testMAC)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.3", hop.Next)
	assert.Equal(t, "access2", hop.NextDevice)
}

func TestTracer_TraceNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	q := topology.NewMockQuerier(ctrl)
	sess := NewMockSession(ctrl)

	q.EXPECT().Open(gomock.Any(), netip.MustParseAddr("10.0.0.1")).Return(sess, nil)
	sess.EXPECT().Hostname(gomock.Any()).Return("sw1", nil)
	sess.EXPECT().LocateMAC(gomock.Any(), gomock.Any()).Return(Location{}, ErrMACNotFound)
	sess.EXPECT().Close().Return(nil)

	hop, err := New(q, nil, nil).Trace(context.Background(), "10.0.0.1", testMAC)
	assert.ErrorIs(t, err, ErrMACNotFound)
	assert.Equal(t, "sw1", hop.Device)
}

func TestTracer_TraceWithoutForwardingTable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	q := topology.NewMockQuerier(ctrl)
	sess := topology.NewMockSession(ctrl)

	q.EXPECT().Open(gomock.Any(), gomock.Any()).Return(sess, nil)
	sess.EXPECT().Hostname(gomock.Any()).Return("router1", nil)
	sess.EXPECT().Close().Return(nil)

	_, err := New(q, nil, nil).Trace(context.Background(), "10.0.0.9", testMAC)
	assert.ErrorIs(t, err, ErrNoForwardingTable)
}

func TestTracer_TraceUnreachable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	timeout := errors.New("request timeout")

	q := topology.NewMockQuerier(ctrl)
	q.EXPECT().Open(gomock.Any(), gomock.Any()).Return(nil, timeout)

	var out bytes.Buffer

	hops, err := New(q, nil, &out).Run(context.Background(), "10.0.0.1", testMAC)
	assert.ErrorIs(t, err, timeout)
	assert.Empty(t, hops)
	assert.Contains(t, out.String(), "UNKNOWN (10.0.0.1)")
}

func TestTracer_TraceRejectsBadAddress(t *testing.T) {
	_, err := New(nil, nil, nil).Trace(context.Background(), "not-an-ip", testMAC)
	assert.ErrorIs(t, err, ErrInvalidAddress)
}
