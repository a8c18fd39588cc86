package config

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/carverauto/mnet/pkg/snmp"
	"github.com/carverauto/mnet/pkg/topology"
	"golang.org/x/time/rate"
)

// Duration accepts "3s"-style strings or a number of seconds.
type Duration time.Duration

func parseDuration(v interface{}) (Duration, error) {
	switch value := v.(type) {
	case Duration:
		return value, nil
	case string:
		dur, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", errInvalidDuration, err)
		}

		return Duration(dur), nil
	case float64:
		return Duration(value * float64(time.Second)), nil
	case int:
		return Duration(time.Duration(value) * time.Second), nil
	case int64:
		return Duration(time.Duration(value) * time.Second), nil
	default:
		return 0, errInvalidDuration
	}
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	dur, err := parseDuration(v)
	if err != nil {
		return err
	}

	*d = dur

	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Config is the mnet configuration file.
type Config struct {
	SNMP    []snmp.Credential `mapstructure:"snmp" json:"snmp" yaml:"snmp"`
	Domains []string          `mapstructure:"domains" json:"domains" yaml:"domains"` // suffixes stripped from hostnames
	Exclude []string          `mapstructure:"exclude" json:"exclude" yaml:"exclude"` // never queried
	Subnets []string          `mapstructure:"subnets" json:"subnets" yaml:"subnets"` // empty allows everything
	Graph   GraphConfig       `mapstructure:"graph" json:"graph" yaml:"graph"`
	Poll    PollConfig        `mapstructure:"poll" json:"poll" yaml:"poll"`
}

// GraphConfig selects what is queried and how diagrams group devices.
type GraphConfig struct {
	NodeTextSize    int  `mapstructure:"node_text_size" json:"node_text_size" yaml:"node_text_size"`
	LinkTextSize    int  `mapstructure:"link_text_size" json:"link_text_size" yaml:"link_text_size"`
	TitleTextSize   int  `mapstructure:"title_text_size" json:"title_text_size" yaml:"title_text_size"`
	IncludeSVI      bool `mapstructure:"include_svi" json:"include_svi" yaml:"include_svi"`
	IncludeLo       bool `mapstructure:"include_lo" json:"include_lo" yaml:"include_lo"`
	IncludeSerials  bool `mapstructure:"include_serials" json:"include_serials" yaml:"include_serials"`
	GetStackMembers bool `mapstructure:"get_stack_members" json:"get_stack_members" yaml:"get_stack_members"`
	GetVSSMembers   bool `mapstructure:"get_vss_members" json:"get_vss_members" yaml:"get_vss_members"`
	ExpandStackwise bool `mapstructure:"expand_stackwise" json:"expand_stackwise" yaml:"expand_stackwise"`
	ExpandVSS       bool `mapstructure:"expand_vss" json:"expand_vss" yaml:"expand_vss"`
	ExpandLAG       bool `mapstructure:"expand_lag" json:"expand_lag" yaml:"expand_lag"`
}

// PollConfig tunes SNMP requests. RateLimit is requests per second across
// the whole run; 0 disables pacing.
type PollConfig struct {
	Timeout        Duration `mapstructure:"timeout" json:"timeout" yaml:"timeout"`
	Retries        int      `mapstructure:"retries" json:"retries" yaml:"retries"`
	MaxRepetitions uint32   `mapstructure:"max_repetitions" json:"max_repetitions" yaml:"max_repetitions"`
	RateLimit      float64  `mapstructure:"rate_limit" json:"rate_limit" yaml:"rate_limit"`
}

// Default returns the settings used for keys the file leaves out.
func Default() *Config {
	return &Config{
		Graph: GraphConfig{
			NodeTextSize:  8,
			LinkTextSize:  7,
			TitleTextSize: 15,
			ExpandLAG:     true,
		},
		Poll: PollConfig{
			Timeout:        Duration(3 * time.Second),
			Retries:        1,
			MaxRepetitions: 25,
		},
	}
}

// Example is Default with placeholder credentials and subnets, used as the
// generated template.
func Example() *Config {
	cfg := Default()
	cfg.SNMP = []snmp.Credential{
		{Version: "2c", Community: "public"},
		{Version: "3", User: "mnet", AuthProto: "sha", AuthPass: "authpassword", PrivProto: "aes", PrivPass: "privpassword"},
	}
	cfg.Domains = []string{".example.com"}
	cfg.Exclude = []string{"192.0.2.0/24"}
	cfg.Subnets = []string{"10.0.0.0/8"}

	return cfg
}

// Validate implements Validator.
func (c *Config) Validate() error {
	if len(c.SNMP) == 0 {
		return ErrNoCredentials
	}

	for i := range c.SNMP {
		if err := c.SNMP[i].Validate(); err != nil {
			return fmt.Errorf("%w %d: %w", ErrBadCredential, i, err)
		}
	}

	if _, err := c.Policy(); err != nil {
		return err
	}

	g := c.Graph
	if g.NodeTextSize <= 0 || g.LinkTextSize <= 0 || g.TitleTextSize <= 0 {
		return ErrTextSize
	}

	if c.Poll.Timeout < 0 || c.Poll.Retries < 0 || c.Poll.RateLimit < 0 {
		return ErrPoll
	}

	return nil
}

// Policy builds the crawl subnet filter.
func (c *Config) Policy() (*topology.Policy, error) {
	return topology.NewPolicy(c.Subnets, c.Exclude)
}

// QueryOptions maps the graph toggles onto per-device queries. Stack and
// pair membership, routing and HSRP are always read.
func (g GraphConfig) QueryOptions() topology.QueryOptions {
	return topology.QueryOptions{
		Serials:      g.IncludeSerials,
		Stack:        true,
		StackDetails: g.GetStackMembers,
		Pair:         true,
		PairDetails:  g.GetVSSMembers,
		Routing:      true,
		HSRP:         true,
		Loopbacks:    g.IncludeLo,
		SVIs:         g.IncludeSVI,
	}
}

// Options returns SNMP client options. Every client built from them shares
// one limiter.
func (p PollConfig) Options() snmp.Options {
	opts := snmp.Options{
		Timeout:        time.Duration(p.Timeout),
		Retries:        p.Retries,
		MaxRepetitions: p.MaxRepetitions,
	}

	if p.RateLimit > 0 {
		opts.Limiter = rate.NewLimiter(rate.Limit(p.RateLimit), 1)
	}

	return opts
}
