// Package snmp pkg/snmp/client.go

package snmp

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/gosnmp/gosnmp"
)

// SNMPClientImpl implements the SNMPClient interface using gosnmp.
type SNMPClientImpl struct {
	ctx        context.Context
	client     *gosnmp.GoSNMP
	host       string
	credential Credential
	opts       Options
	mu         sync.Mutex
	connected  bool
}

// SNMPError wraps SNMP-specific errors with additional context.
type SNMPError struct {
	Op      string
	Target  string
	Wrapped error
}

func (e *SNMPError) Error() string {
	return fmt.Sprintf("SNMP %s failed for target %s: %v", e.Op, e.Target, e.Wrapped)
}

func (e *SNMPError) Unwrap() error {
	return e.Wrapped
}

func newSNMPClient(ctx context.Context, host string, cred Credential, opts Options) (SNMPClient, error) {
	if host == "" {
		return nil, ErrTargetHostRequired
	}

	if err := cred.Validate(); err != nil {
		return nil, fmt.Errorf("invalid credential: %w", err)
	}

	opts = opts.withDefaults()

	port := cred.Port
	if port == 0 {
		port = defaultPort
	}

	client := &gosnmp.GoSNMP{
		Context:            ctx,
		Target:             host,
		Port:               port,
		Timeout:            opts.Timeout,
		Retries:            opts.Retries,
		ExponentialTimeout: false,
		MaxOids:            gosnmp.MaxOids,
		MaxRepetitions:     opts.MaxRepetitions,
	}

	version, _ := ParseVersion(cred.Version)

	switch version {
	case Version1:
		client.Version = gosnmp.Version1
		client.Community = cred.Community
	case Version2c:
		client.Version = gosnmp.Version2c
		client.Community = cred.Community
	case Version3:
		auth, _ := authProtocol(cred.AuthProto)
		priv, _ := privProtocol(cred.PrivProto)

		client.Version = gosnmp.Version3
		client.SecurityModel = gosnmp.UserSecurityModel
		client.MsgFlags = msgFlags(auth, priv)
		client.SecurityParameters = &gosnmp.UsmSecurityParameters{
			UserName:                 cred.User,
			AuthenticationProtocol:   auth,
			AuthenticationPassphrase: cred.AuthPass,
			PrivacyProtocol:          priv,
			PrivacyPassphrase:        cred.PrivPass,
		}
	}

	return &SNMPClientImpl{
		ctx:        ctx,
		client:     client,
		host:       host,
		credential: cred,
		opts:       opts,
	}, nil
}

func msgFlags(auth gosnmp.SnmpV3AuthProtocol, priv gosnmp.SnmpV3PrivProtocol) gosnmp.SnmpV3MsgFlags {
	switch {
	case auth == gosnmp.NoAuth:
		return gosnmp.NoAuthNoPriv
	case priv == gosnmp.NoPriv:
		return gosnmp.AuthNoPriv
	default:
		return gosnmp.AuthPriv
	}
}

// Connect implements SNMPClient interface.
func (s *SNMPClientImpl) Connect() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.connected {
		return nil
	}

	if err := s.client.Connect(); err != nil {
		return &SNMPError{Op: "connect", Target: s.host, Wrapped: err}
	}

	s.connected = true

	return nil
}

// Get implements SNMPClient interface.
func (s *SNMPClientImpl) Get(oids []string) (map[string]Variable, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	results := make(map[string]Variable, len(oids))

	// Split OIDs into chunks of MaxOids size
	for i := 0; i < len(oids); i += gosnmp.MaxOids {
		end := i + gosnmp.MaxOids
		if end > len(oids) {
			end = len(oids)
		}

		chunk := make([]string, 0, end-i)
		for _, oid := range oids[i:end] {
			chunk = append(chunk, "."+TrimOID(oid))
		}

		if err := s.wait(); err != nil {
			return nil, err
		}

		packet, err := s.client.Get(chunk)
		if err != nil {
			return nil, &SNMPError{Op: "get", Target: s.host, Wrapped: err}
		}

		for _, pdu := range packet.Variables {
			v := newVariable(pdu)
			if v.Exists() {
				results[v.OID] = v
			}
		}
	}

	return results, nil
}

// Walk implements SNMPClient interface.
func (s *SNMPClientImpl) Walk(root string) ([]Variable, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	if err := s.wait(); err != nil {
		return nil, err
	}

	var (
		pdus []gosnmp.SnmpPDU
		err  error
	)

	// BulkWalk only exists from v2c onwards.
	if s.client.Version == gosnmp.Version1 {
		pdus, err = s.client.WalkAll("." + TrimOID(root))
	} else {
		pdus, err = s.client.BulkWalkAll("." + TrimOID(root))
	}

	if err != nil {
		return nil, &SNMPError{Op: "walk", Target: s.host, Wrapped: err}
	}

	vars := make([]Variable, 0, len(pdus))

	for _, pdu := range pdus {
		v := newVariable(pdu)
		if v.Exists() {
			vars = append(vars, v)
		}
	}

	return vars, nil
}

// WithVLAN implements SNMPClient interface. v1/v2c agents expose per-VLAN
// bridge tables through "community@vlan"; v3 agents through the "vlan-N"
// context.
func (s *SNMPClientImpl) WithVLAN(vlan int) SNMPClient {
	cred := s.credential
	if v, _ := ParseVersion(cred.Version); v != Version3 {
		cred.Community = cred.Community + "@" + strconv.Itoa(vlan)
	}

	c, err := newSNMPClient(s.ctx, s.host, cred, s.opts)
	if err != nil {
		// unreachable: the credential validated when s was built
		return s
	}

	if impl, ok := c.(*SNMPClientImpl); ok && impl.client.Version == gosnmp.Version3 {
		impl.client.ContextName = "vlan-" + strconv.Itoa(vlan)
	}

	return c
}

// Close implements SNMPClient interface.
func (s *SNMPClientImpl) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return nil
	}

	s.connected = false

	if s.client.Conn == nil {
		return nil
	}

	return s.client.Conn.Close()
}

func (s *SNMPClientImpl) ready() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return &SNMPError{Op: "request", Target: s.host, Wrapped: ErrNotConnected}
	}

	return nil
}

func (s *SNMPClientImpl) wait() error {
	if s.opts.Limiter == nil {
		return nil
	}

	if err := s.opts.Limiter.Wait(s.ctx); err != nil {
		return &SNMPError{Op: "rate limit", Target: s.host, Wrapped: err}
	}

	return nil
}
