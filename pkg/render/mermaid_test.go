package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMermaid(t *testing.T) {
	g := campus()
	g.Device(2).Reachable = false

	opts := testOptions()
	opts.ExpandLAG = false

	var buf bytes.Buffer

	require.NoError(t, Mermaid(&buf, g, opts))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "flowchart TD\n    %% MNet Network Diagram - 2025-03-01 10:30\n"))
	assert.Contains(t, out, `    n0{"core1<br/>10.0.0.1<br/>WS-C6509-E`)
	assert.Contains(t, out, `    n2(["edge1<br/>10.0.0.3<br/>WS-C2960"]):::unreachable`)
	assert.Contains(t, out, `    n1 ---|"P:Gi1/0/1<br/>C:Gi0/1<br/>VLAN 10"| n2`)
	assert.Contains(t, out, "    linkStyle 0 stroke:#0000FF,stroke-width:2px\n    linkStyle 1 stroke:#0000FF,stroke-width:2px\n")
	assert.NotContains(t, out, "linkStyle 2")
	assert.Contains(t, out, "classDef unreachable")
}

func TestMermaid_Subgraphs(t *testing.T) {
	opts := testOptions()
	opts.ExpandPair = true

	var buf bytes.Buffer

	require.NoError(t, Mermaid(&buf, campus(), opts))

	out := buf.String()
	assert.Contains(t, out, "    subgraph n0 [\"VSS 100\"]\n        n0_1{")
	assert.Contains(t, out, "<br/>VSS 1 - WS-C6509-E\"}\n    end\n")
	assert.Contains(t, out, "    n0_1 -.- n0_2\n")
}

func TestMermaid_Escapes(t *testing.T) {
	assert.Equal(t, "say #quot;hi#quot;<br/>x", mermaidLines([]string{`say "hi"`, "x"}))
}

func TestWriteMermaid_Markdown(t *testing.T) {
	dir := t.TempDir()

	md := filepath.Join(dir, "net.md")
	require.NoError(t, WriteMermaid(md, campus(), testOptions()))

	data, err := os.ReadFile(md)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "```mermaid\nflowchart TD\n"))
	assert.True(t, strings.HasSuffix(string(data), "```\n"))

	mmd := filepath.Join(dir, "net.mmd")
	require.NoError(t, WriteMermaid(mmd, campus(), testOptions()))

	data, err = os.ReadFile(mmd)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "flowchart TD\n"))
}
