package snmp

import (
	"context"
	"errors"
	"testing"

	"github.com/gosnmp/gosnmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var errTimeout = errors.New("request timeout")

func TestDialer_TriesCredentialsInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	wrong := NewMockSNMPClient(ctrl)
	right := NewMockSNMPClient(ctrl)

	gomock.InOrder(
		wrong.EXPECT().Connect().Return(nil),
		wrong.EXPECT().Get([]string{OIDSysName}).Return(nil, errTimeout),
		wrong.EXPECT().Close().Return(nil),
		right.EXPECT().Connect().Return(nil),
		right.EXPECT().Get([]string{OIDSysName}).Return(map[string]Variable{
			OIDSysName: {OID: OIDSysName, Type: gosnmp.OctetString, Value: []byte("core1")},
		}, nil),
	)

	clients := map[string]SNMPClient{"public": wrong, "private": right}

	d := &Dialer{
		credentials: []Credential{
			{Version: "2c", Community: "public"},
			{Version: "2c", Community: "private"},
		},
		newClient: func(_ context.Context, _ string, cred Credential, _ Options) (SNMPClient, error) {
			return clients[cred.Community], nil
		},
	}

	client, err := d.Dial(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.Same(t, right, client)
}

func TestDialer_NoCredentialWorks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	silent := NewMockSNMPClient(ctrl)
	silent.EXPECT().Connect().Return(nil)
	silent.EXPECT().Get(gomock.Any()).Return(map[string]Variable{}, nil)
	silent.EXPECT().Close().Return(nil)

	d := &Dialer{
		credentials: []Credential{{Version: "2c", Community: "public"}},
		newClient: func(context.Context, string, Credential, Options) (SNMPClient, error) {
			return silent, nil
		},
	}

	_, err := d.Dial(context.Background(), "10.0.0.9")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrNoCredentials)
	assert.ErrorIs(t, err, ErrNoSysName)
}

func TestDialer_NoCredentialsConfigured(t *testing.T) {
	d := NewDialer(nil, Options{})

	_, err := d.Dial(context.Background(), "10.0.0.9")
	assert.ErrorIs(t, err, ErrNoCredentials)
}

func TestNewSNMPClient(t *testing.T) {
	t.Run("v2c defaults", func(t *testing.T) {
		c, err := newSNMPClient(context.Background(), "10.0.0.1", Credential{Version: "2", Community: "public"}, Options{})
		require.NoError(t, err)

		impl := c.(*SNMPClientImpl)
		assert.Equal(t, gosnmp.Version2c, impl.client.Version)
		assert.Equal(t, uint16(defaultPort), impl.client.Port)
		assert.Equal(t, defaultTimeout, impl.client.Timeout)
	})

	t.Run("v3 auth priv", func(t *testing.T) {
		c, err := newSNMPClient(context.Background(), "10.0.0.1", Credential{
			Version: "v3", User: "ops", AuthProto: "sha", AuthPass: "secret1", PrivProto: "aes", PrivPass: "secret2",
		}, Options{})
		require.NoError(t, err)

		impl := c.(*SNMPClientImpl)
		assert.Equal(t, gosnmp.Version3, impl.client.Version)
		assert.Equal(t, gosnmp.AuthPriv, impl.client.MsgFlags)
	})

	t.Run("missing host", func(t *testing.T) {
		_, err := newSNMPClient(context.Background(), "", Credential{Community: "public"}, Options{})
		assert.ErrorIs(t, err, ErrTargetHostRequired)
	})

	t.Run("vlan context", func(t *testing.T) {
		c, err := newSNMPClient(context.Background(), "10.0.0.1", Credential{Version: "2c", Community: "public"}, Options{})
		require.NoError(t, err)

		scoped := c.WithVLAN(20).(*SNMPClientImpl)
		assert.Equal(t, "public@20", scoped.client.Community)
		assert.False(t, scoped.connected)
	})

	t.Run("request before connect", func(t *testing.T) {
		c, err := newSNMPClient(context.Background(), "10.0.0.1", Credential{Community: "public"}, Options{})
		require.NoError(t, err)

		_, err = c.Get([]string{OIDSysName})

		var snmpErr *SNMPError
		require.ErrorAs(t, err, &snmpErr)
		assert.ErrorIs(t, err, ErrNotConnected)
	})
}
