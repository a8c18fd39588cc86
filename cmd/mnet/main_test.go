package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/mnet/pkg/config"
	"github.com/carverauto/mnet/pkg/render"
	"github.com/carverauto/mnet/pkg/topology"
	"github.com/carverauto/mnet/pkg/tracemac"
)

var errUnreachable = errors.New("no response")

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer

	root := newRootCmd()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(append([]string{"--plain"}, args...))

	err := root.ExecuteContext(context.Background())

	return buf.String(), err
}

func writeConfig(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "mnet.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"snmp": [{"community": "public", "ver": "2c"}]}`), 0o600))

	return path
}

func stubQuerier(t *testing.T, q topology.Querier) {
	t.Helper()

	orig := newQuerier
	newQuerier = func(*config.Config) topology.Querier { return q }

	t.Cleanup(func() { newQuerier = orig })
}

func TestGraph_ArgumentErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"no root", []string{"graph", "-f", "net.dot"}, errNoRoot},
		{"no output", []string{"graph", "-r", "10.0.0.1", "-C", "catalog.csv"}, errNoOutput},
		{"bad layout", []string{"graph", "-r", "10.0.0.1", "-g", "net.graphml", "--layout", "spring"}, render.ErrUnknownLayout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGraph_MissingConfig(t *testing.T) {
	_, err := execute(t, "graph", "-r", "10.0.0.1", "-f", "net.dot", "-c", filepath.Join(t.TempDir(), "absent.conf"))
	require.ErrorIs(t, err, errFailedToLoadConfig)
}

func TestGraph_StyleAliases(t *testing.T) {
	cmd := newGraphCmd(func(*cobra.Command) *ui { return newUI(os.Stdout, true) })

	require.NoError(t, cmd.ParseFlags([]string{"--na", "--cn", "#FFFFFF", "--no-edges", "--sc=*"}))

	noArrows, err := cmd.Flags().GetBool("no-arrows")
	require.NoError(t, err)
	assert.True(t, noArrows)

	color, err := cmd.Flags().GetString("color-nodes")
	require.NoError(t, err)
	assert.Equal(t, "#FFFFFF", color)

	noEdgeLabels, err := cmd.Flags().GetBool("no-edge-labels")
	require.NoError(t, err)
	assert.True(t, noEdgeLabels)

	sep, err := cmd.Flags().GetString("separator-char")
	require.NoError(t, err)
	assert.Equal(t, "*", sep)
}

func TestGraph_UnreachableRoot(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := topology.NewMockQuerier(ctrl)
	q.EXPECT().Open(gomock.Any(), gomock.Any()).Return(nil, errUnreachable).AnyTimes()
	stubQuerier(t, q)

	dir := t.TempDir()
	dot := filepath.Join(dir, "net.dot")
	catalog := filepath.Join(dir, "catalog.csv")
	mermaid := filepath.Join(dir, "missing", "net.mmd")

	out, err := execute(t, "graph",
		"-r", "10.0.0.1",
		"-f", dot,
		"--mermaid", mermaid,
		"-C", catalog,
		"-c", writeConfig(t),
	)
	require.NoError(t, err)

	assert.Contains(t, out, "Discovered devices: 1\n")
	assert.Contains(t, out, "Discovered links:   0\n")
	assert.Contains(t, out, "Unable to write Mermaid output")
	assert.FileExists(t, dot)

	data, err := os.ReadFile(catalog)
	require.NoError(t, err)
	assert.Equal(t, `"UNKNOWN","10.0.0.1","NOT CONFIGURED TO POLL","NOT CONFIGURED TO POLL","NOT CONFIGURED TO POLL","",""`+"\n", string(data))
}

func TestTraceMAC_ArgumentErrors(t *testing.T) {
	_, err := execute(t, "tracemac", "-m", "0050.56aa.bbcc")
	require.ErrorIs(t, err, errNoRoot)

	_, err = execute(t, "tracemac", "-r", "10.0.0.1")
	require.ErrorIs(t, err, errNoMAC)

	_, err = execute(t, "tracemac", "-r", "10.0.0.1", "-m", "not-a-mac")
	require.ErrorIs(t, err, tracemac.ErrInvalidMAC)
}

func TestTraceMAC_UnreachableRoot(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := topology.NewMockQuerier(ctrl)
	q.EXPECT().Open(gomock.Any(), gomock.Any()).Return(nil, errUnreachable)
	stubQuerier(t, q)

	out, err := execute(t, "tracemac", "-r", "10.0.0.1", "-m", "00:50:56:aa:bb:cc", "-c", writeConfig(t))
	require.NoError(t, err)

	assert.Contains(t, out, "Tracing 00:50:56:aa:bb:cc from 10.0.0.1\n")
	assert.Contains(t, out, "  UNKNOWN (10.0.0.1): ")
	assert.Contains(t, out, "Trace complete.")
}

func TestConfigTemplate(t *testing.T) {
	out, err := execute(t, "config")
	require.NoError(t, err)

	var cfg map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Contains(t, cfg, "snmp")

	out, err = execute(t, "config", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "snmp:\n")

	_, err = execute(t, "config", "--format", "toml")
	require.ErrorIs(t, err, config.ErrUnknownFormat)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "mnet version dev\n", out)
}
