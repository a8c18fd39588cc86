package tracemac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMAC(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"00:50:56:aa:bb:cc", "00:50:56:aa:bb:cc"},
		{"00-50-56-AA-BB-CC", "00:50:56:aa:bb:cc"},
		{"0050.56aa.bbcc", "00:50:56:aa:bb:cc"},
		{"005056aabbcc", "00:50:56:aa:bb:cc"},
		{" 005056AABBCC ", "00:50:56:aa:bb:cc"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			mac, err := ParseMAC(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, mac.String())
		})
	}
}

func TestParseMACRejects(t *testing.T) {
	for _, in := range []string{"", "0050.56aa", "00:50:56:aa:bb:cc:dd:ee", "zz:50:56:aa:bb:cc"} {
		_, err := ParseMAC(in)
		assert.ErrorIs(t, err, ErrInvalidMAC, in)
	}
}
