package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		in   string
		kind AddressKind
		str  string
	}{
		{"10.0.0.1", AddressIP, "10.0.0.1"},
		{" 10.0.0.1 ", AddressIP, "10.0.0.1"},
		{"", AddressPlaceholder, ""},
		{"0.0.0.0", AddressPlaceholder, "0.0.0.0"},
		{"UNKNOWN", AddressUnknown, "UNKNOWN"},
		{"core1.example.net", AddressUnknown, "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			a := ParseAddress(tt.in)
			assert.Equal(t, tt.kind, a.Kind)
			assert.Equal(t, tt.str, a.String())
			assert.Equal(t, tt.kind == AddressIP, a.IsIP())
		})
	}
}

func TestLAG(t *testing.T) {
	assert.Equal(t, "UNKNOWN", LAG{}.String())
	assert.Equal(t, "-", NoLAG().String())
	assert.Equal(t, "Po1", MemberOf("Po1").String())
	assert.True(t, MemberOf("Po1").IsMember())
	assert.False(t, NoLAG().IsMember())
}

func TestChassisUnits(t *testing.T) {
	stack := &Stack{Members: []StackMember{{Number: 1}, {Number: 2}, {Number: 3}}}

	assert.Equal(t, 1, Standalone{}.Units())
	assert.Equal(t, 3, stack.Units())
	assert.Equal(t, 2, (&RedundantPair{}).Units())
	assert.Equal(t, 1, ChassisOf(&Device{}).Units())
}

func TestShortenName(t *testing.T) {
	domains := []string{".corp.example.net", "example.net"}

	assert.Equal(t, "core1", ShortenName("core1.corp.example.net", domains))
	assert.Equal(t, "CORE1", ShortenName("CORE1.EXAMPLE.NET", domains))
	assert.Equal(t, "edge1.other.org", ShortenName("edge1.other.org", domains))
	assert.Equal(t, "sw1", ShortenName(" sw1 ", nil))
}
