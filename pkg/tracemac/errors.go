package tracemac

import "errors"

var (
	ErrInvalidMAC        = errors.New("invalid hardware address")
	ErrInvalidAddress    = errors.New("not a device address")
	ErrMACNotFound       = errors.New("MAC address not in forwarding table")
	ErrNoForwardingTable = errors.New("device cannot search its forwarding table")
	ErrLoop              = errors.New("trace revisited a device")
	ErrNoNextHop         = errors.New("neighbor on the MAC's port advertises no usable address")
)
