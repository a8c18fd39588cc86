package topology

import "errors"

var (
	ErrInvalidSubnet = errors.New("invalid subnet")
	ErrNoRoots       = errors.New("no root address given")
)
