package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/carverauto/mnet/pkg/snmp"
	"github.com/carverauto/mnet/pkg/topology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

const legacyConf = `{
	"snmp": [
		{ "community": "private", "ver": 2, "port": 161 },
		{ "community": "public", "ver": 2 }
	],
	"domains": [".company.net"],
	"exclude": [],
	"subnets": ["10.0.0.0/8"],
	"graph": {
		"node_text_size": 10,
		"include_svi": 1,
		"include_lo": 0,
		"include_serials": 1,
		"expand_lag": 0
	}
}`

func TestLoadAndValidate_LegacyConf(t *testing.T) {
	cfg := Default()
	require.NoError(t, LoadAndValidate(writeFile(t, "mnet.conf", legacyConf), cfg))

	require.Len(t, cfg.SNMP, 2)
	assert.Equal(t, snmp.Credential{Version: "2", Community: "private", Port: 161}, cfg.SNMP[0])
	assert.Equal(t, []string{".company.net"}, cfg.Domains)
	assert.Equal(t, []string{"10.0.0.0/8"}, cfg.Subnets)

	assert.Equal(t, 10, cfg.Graph.NodeTextSize)
	assert.Equal(t, 7, cfg.Graph.LinkTextSize, "keys left out keep their defaults")
	assert.True(t, cfg.Graph.IncludeSVI)
	assert.False(t, cfg.Graph.IncludeLo)
	assert.True(t, cfg.Graph.IncludeSerials)
	assert.False(t, cfg.Graph.ExpandLAG)
	assert.Equal(t, Duration(3*time.Second), cfg.Poll.Timeout)
}

func TestLoadFile_YAML(t *testing.T) {
	body := `
snmp:
  - ver: 3
    user: ops
    auth_proto: sha
    auth_pass: secret1
    priv_proto: aes
    priv_pass: secret2
poll:
  timeout: 5s
  retries: 2
  rate_limit: 20
`
	cfg := Default()
	require.NoError(t, LoadAndValidate(writeFile(t, "mnet.yaml", body), cfg))

	assert.Equal(t, "3", cfg.SNMP[0].Version)
	assert.Equal(t, "ops", cfg.SNMP[0].User)
	assert.Equal(t, Duration(5*time.Second), cfg.Poll.Timeout)

	opts := cfg.Poll.Options()
	assert.Equal(t, 5*time.Second, opts.Timeout)
	assert.Equal(t, 2, opts.Retries)
	assert.Equal(t, uint32(25), opts.MaxRepetitions)
	require.NotNil(t, opts.Limiter)
}

func TestLoadFile_NumericTimeoutIsSeconds(t *testing.T) {
	cfg := Default()
	require.NoError(t, LoadFile(writeFile(t, "mnet.json", `{"poll": {"timeout": 2}}`), cfg))
	assert.Equal(t, Duration(2*time.Second), cfg.Poll.Timeout)
}

func TestLoadFile_Errors(t *testing.T) {
	err := LoadFile(filepath.Join(t.TempDir(), "missing.conf"), Default())
	assert.Error(t, err)

	err = LoadFile(writeFile(t, "broken.conf", `{"snmp": [`), Default())
	assert.Error(t, err)

	err = LoadFile(writeFile(t, "bad.json", `{"poll": {"timeout": "soon"}}`), Default())
	assert.ErrorContains(t, err, errInvalidDuration.Error())
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.SNMP = []snmp.Credential{{Community: "public"}}

		return cfg
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"no credentials", func(c *Config) { c.SNMP = nil }, ErrNoCredentials},
		{"empty community", func(c *Config) { c.SNMP[0].Community = "" }, ErrBadCredential},
		{"bad version", func(c *Config) { c.SNMP[0].Version = "4" }, snmp.ErrUnsupportedSNMPVersion},
		{"bad subnet", func(c *Config) { c.Subnets = []string{"10.0.0.0/33"} }, topology.ErrInvalidSubnet},
		{"bad exclude", func(c *Config) { c.Exclude = []string{"nope"} }, topology.ErrInvalidSubnet},
		{"zero text size", func(c *Config) { c.Graph.NodeTextSize = 0 }, ErrTextSize},
		{"negative rate", func(c *Config) { c.Poll.RateLimit = -1 }, ErrPoll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}
}

func TestTemplateLoadsBack(t *testing.T) {
	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			out, err := Template(format)
			require.NoError(t, err)

			cfg := Default()
			require.NoError(t, LoadAndValidate(writeFile(t, "mnet."+format, string(out)), cfg))
			assert.Equal(t, Example(), cfg)
		})
	}

	_, err := Template("toml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestGraphConfig_QueryOptions(t *testing.T) {
	g := Default().Graph
	g.IncludeSerials = true
	g.GetStackMembers = true
	g.IncludeLo = true

	assert.Equal(t, topology.QueryOptions{
		Serials:      true,
		Stack:        true,
		StackDetails: true,
		Pair:         true,
		Routing:      true,
		HSRP:         true,
		Loopbacks:    true,
	}, g.QueryOptions())
}

func TestPollConfig_OptionsWithoutRateLimit(t *testing.T) {
	assert.Nil(t, Default().Poll.Options().Limiter)
}
