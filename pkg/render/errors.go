package render

import "errors"

var (
	ErrUnknownLayout = errors.New("unknown layout")
	ErrNoGraphviz    = errors.New("graphviz dot binary not found")
)
