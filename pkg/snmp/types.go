package snmp

import (
	"fmt"
	"strings"
	"time"

	"github.com/gosnmp/gosnmp"
	"golang.org/x/time/rate"
)

// SNMPVersion represents supported SNMP versions
type SNMPVersion string

const (
	Version1  SNMPVersion = "1"
	Version2c SNMPVersion = "2c"
	Version3  SNMPVersion = "3"
)

const (
	defaultPort           = 161
	defaultTimeout        = 3 * time.Second
	defaultRetries        = 1
	defaultMaxRepetitions = 25
)

// ParseVersion accepts the spellings found in configuration files ("2", "v2c", "2c", ...).
func ParseVersion(s string) (SNMPVersion, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "v") {
	case "1":
		return Version1, nil
	case "", "2", "2c":
		return Version2c, nil
	case "3":
		return Version3, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedSNMPVersion, s)
	}
}

// Credential is one set of SNMP credentials. Credentials are tried in the
// order they are configured.
type Credential struct {
	Version   string `mapstructure:"ver" json:"ver" yaml:"ver"`
	Community string `mapstructure:"community" json:"community,omitempty" yaml:"community,omitempty"`
	Port      uint16 `mapstructure:"port" json:"port,omitempty" yaml:"port,omitempty"`
	User      string `mapstructure:"user" json:"user,omitempty" yaml:"user,omitempty"`
	AuthProto string `mapstructure:"auth_proto" json:"auth_proto,omitempty" yaml:"auth_proto,omitempty"`
	AuthPass  string `mapstructure:"auth_pass" json:"auth_pass,omitempty" yaml:"auth_pass,omitempty"`
	PrivProto string `mapstructure:"priv_proto" json:"priv_proto,omitempty" yaml:"priv_proto,omitempty"`
	PrivPass  string `mapstructure:"priv_pass" json:"priv_pass,omitempty" yaml:"priv_pass,omitempty"`
}

// Validate checks that the credential can be turned into a session.
func (c *Credential) Validate() error {
	if c == nil {
		return ErrNilCredential
	}

	version, err := ParseVersion(c.Version)
	if err != nil {
		return err
	}

	if version != Version3 {
		if c.Community == "" {
			return ErrCommunityRequired
		}

		return nil
	}

	if c.User == "" {
		return ErrUserRequired
	}

	if _, err := authProtocol(c.AuthProto); err != nil {
		return err
	}

	if _, err := privProtocol(c.PrivProto); err != nil {
		return err
	}

	return nil
}

// Options tune every session opened by a Dialer.
type Options struct {
	Timeout        time.Duration
	Retries        int
	MaxRepetitions uint32
	// Limiter paces requests across all sessions; nil disables pacing.
	Limiter *rate.Limiter
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}

	if o.Retries < 0 {
		o.Retries = defaultRetries
	}

	if o.MaxRepetitions == 0 {
		o.MaxRepetitions = defaultMaxRepetitions
	}

	return o
}

func authProtocol(s string) (gosnmp.SnmpV3AuthProtocol, error) {
	switch strings.ToUpper(s) {
	case "", "NONE":
		return gosnmp.NoAuth, nil
	case "MD5":
		return gosnmp.MD5, nil
	case "SHA", "SHA1":
		return gosnmp.SHA, nil
	case "SHA224":
		return gosnmp.SHA224, nil
	case "SHA256":
		return gosnmp.SHA256, nil
	case "SHA384":
		return gosnmp.SHA384, nil
	case "SHA512":
		return gosnmp.SHA512, nil
	default:
		return gosnmp.NoAuth, fmt.Errorf("%w: %q", ErrUnsupportedAuthProto, s)
	}
}

func privProtocol(s string) (gosnmp.SnmpV3PrivProtocol, error) {
	switch strings.ToUpper(s) {
	case "", "NONE":
		return gosnmp.NoPriv, nil
	case "DES":
		return gosnmp.DES, nil
	case "AES", "AES128":
		return gosnmp.AES, nil
	case "AES192":
		return gosnmp.AES192, nil
	case "AES256":
		return gosnmp.AES256, nil
	case "AES192C":
		return gosnmp.AES192C, nil
	case "AES256C":
		return gosnmp.AES256C, nil
	default:
		return gosnmp.NoPriv, fmt.Errorf("%w: %q", ErrUnsupportedPrivProto, s)
	}
}
