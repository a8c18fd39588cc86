package snmp

import (
	"testing"

	"github.com/gosnmp/gosnmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariable(t *testing.T) {
	tests := []struct {
		name   string
		v      Variable
		str    string
		num    int
		numOK  bool
		exists bool
	}{
		{"octet string", Variable{Type: gosnmp.OctetString, Value: []byte("Gi1/0/1")}, "Gi1/0/1", 0, false, true},
		{"integer", Variable{Type: gosnmp.Integer, Value: 42}, "42", 42, true, true},
		{"gauge", Variable{Type: gosnmp.Gauge32, Value: uint(7)}, "7", 7, true, true},
		{"numeric text", Variable{Type: gosnmp.OctetString, Value: []byte("65001")}, "65001", 65001, true, true},
		{"no such instance", Variable{Type: gosnmp.NoSuchInstance}, "", 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.exists, tt.v.Exists())
			assert.Equal(t, tt.str, tt.v.String())

			n, ok := tt.v.Int()
			assert.Equal(t, tt.numOK, ok)
			assert.Equal(t, tt.num, n)
		})
	}
}

func TestVariable_IPv4(t *testing.T) {
	ip, ok := Variable{Type: gosnmp.OctetString, Value: []byte{10, 0, 0, 2}}.IPv4()
	require.True(t, ok)
	assert.Equal(t, "10.0.0.2", ip)

	ip, ok = Variable{Type: gosnmp.IPAddress, Value: "192.168.1.1"}.IPv4()
	require.True(t, ok)
	assert.Equal(t, "192.168.1.1", ip)

	ip, ok = Variable{Type: gosnmp.OctetString, Value: []byte("172.16.0.1")}.IPv4()
	require.True(t, ok)
	assert.Equal(t, "172.16.0.1", ip)

	_, ok = Variable{Type: gosnmp.OctetString, Value: []byte("n/a")}.IPv4()
	assert.False(t, ok)
}

func TestVariable_Index(t *testing.T) {
	v := Variable{OID: "1.3.6.1.4.1.9.9.23.1.2.1.1.6.10101.3"}

	assert.Equal(t, "10101.3", v.Index(".1.3.6.1.4.1.9.9.23.1.2.1.1.6"))
	assert.Equal(t, "", v.Index("1.3.6.1.4.1.9.9.23.1.2.1.1.7"))

	parts, err := IndexParts(v.Index("1.3.6.1.4.1.9.9.23.1.2.1.1.6"))
	require.NoError(t, err)
	assert.Equal(t, []int{10101, 3}, parts)

	_, err = IndexParts("1.x")
	assert.Error(t, err)
}

func TestVariable_MAC(t *testing.T) {
	v := Variable{Type: gosnmp.OctetString, Value: []byte{0x00, 0x1b, 0x54, 0xaa, 0xbb, 0xcc}}
	assert.Equal(t, "00:1b:54:aa:bb:cc", v.MAC())
}

func TestCredential_Validate(t *testing.T) {
	tests := []struct {
		name string
		cred *Credential
		err  error
	}{
		{"nil", nil, ErrNilCredential},
		{"v2c ok", &Credential{Version: "2c", Community: "public"}, nil},
		{"v2c no community", &Credential{Version: "2c"}, ErrCommunityRequired},
		{"bad version", &Credential{Version: "4", Community: "x"}, ErrUnsupportedSNMPVersion},
		{"v3 no user", &Credential{Version: "3"}, ErrUserRequired},
		{"v3 bad auth", &Credential{Version: "3", User: "ops", AuthProto: "rot13"}, ErrUnsupportedAuthProto},
		{"v3 ok", &Credential{Version: "3", User: "ops", AuthProto: "SHA256", PrivProto: "AES256"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cred.Validate()
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, tt.err)
		})
	}
}
