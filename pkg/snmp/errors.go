package snmp

import "errors"

var (
	ErrNilCredential          = errors.New("credential is nil")
	ErrTargetHostRequired     = errors.New("target host is required")
	ErrUnsupportedSNMPVersion = errors.New("unsupported SNMP version")
	ErrCommunityRequired      = errors.New("community is required for SNMP v1/v2c")
	ErrUserRequired           = errors.New("user is required for SNMP v3")
	ErrUnsupportedAuthProto   = errors.New("unsupported SNMP v3 auth protocol")
	ErrUnsupportedPrivProto   = errors.New("unsupported SNMP v3 privacy protocol")
	ErrNoCredentials          = errors.New("no credential set succeeded")
	ErrNoSysName              = errors.New("agent returned no sysName")
	ErrNotConnected           = errors.New("SNMP session is not connected")
)
