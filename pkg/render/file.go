package render

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/carverauto/mnet/pkg/topology"
)

func writeFile(path string, render func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	return render(f)
}

func extension(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// WriteCatalog writes the catalog to path.
func WriteCatalog(path string, g *topology.Graph) error {
	return writeFile(path, func(w io.Writer) error {
		_, err := Catalog(w, g)
		return err
	})
}

// WriteGraphML writes the yEd diagram to path.
func WriteGraphML(ctx context.Context, path string, g *topology.Graph, opts Options, style GraphMLStyle) error {
	return writeFile(path, func(w io.Writer) error {
		return GraphML(ctx, w, g, opts, style)
	})
}

// WriteMermaid writes a Mermaid flowchart to path, fenced as a code block
// when path is a Markdown file.
func WriteMermaid(path string, g *topology.Graph, opts Options) error {
	return writeFile(path, func(w io.Writer) error {
		if extension(path) != "md" {
			return Mermaid(w, g, opts)
		}

		if _, err := io.WriteString(w, "```mermaid\n"); err != nil {
			return err
		}

		if err := Mermaid(w, g, opts); err != nil {
			return err
		}

		_, err := io.WriteString(w, "```\n")

		return err
	})
}
