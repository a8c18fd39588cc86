package config

import "errors"

var (
	errInvalidDuration = errors.New("invalid duration")

	ErrNoCredentials = errors.New("no SNMP credentials configured")
	ErrBadCredential = errors.New("invalid SNMP credential")
	ErrTextSize      = errors.New("text sizes must be positive")
	ErrPoll          = errors.New("invalid poll settings")
	ErrUnknownFormat = errors.New("unknown template format")
)
