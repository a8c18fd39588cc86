package device

import "errors"

var (
	ErrUnknownProtocol    = errors.New("unknown discovery protocol")
	ErrBridgePortUnmapped = errors.New("bridge port has no interface")
)
