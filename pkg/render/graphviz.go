package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// graphviz feeds input to the dot binary and returns its output.
var graphviz = func(ctx context.Context, input []byte, args ...string) ([]byte, error) {
	path, err := exec.LookPath("dot")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoGraphviz, err)
	}

	var stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = bytes.NewReader(input)
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("dot %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}

	return out, nil
}
