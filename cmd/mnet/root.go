package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const defaultConfigPath = "./mnet.conf"

var (
	errFailedToLoadConfig = errors.New("failed to load config")
	errNoRoot             = errors.New("at least one root address is required")
	errNoOutput           = errors.New("no output file given")
	errNoMAC              = errors.New("a MAC address is required")
)

func newRootCmd() *cobra.Command {
	var plain bool

	root := &cobra.Command{
		Use:   "mnet",
		Short: "Network topology discovery over SNMP",
		Long: `mnet crawls a network from one or more root devices using CDP and LLDP
neighbor tables, then writes the topology as Graphviz, yEd GraphML or
Mermaid diagrams and an inventory catalog. It can also trace a MAC
address through switch forwarding tables to its attachment port.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVar(&plain, "plain", false, "disable styled terminal output")

	term := func(cmd *cobra.Command) *ui {
		return newUI(cmd.OutOrStdout(), plain)
	}

	root.AddCommand(
		newGraphCmd(term),
		newTraceMACCmd(term),
		newConfigCmd(),
		newVersionCmd(),
	)

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mnet version %s\n", version)
		},
	}
}

// ui styles the banner, summaries and warnings around the plain-text
// renderer output.
type ui struct {
	out   io.Writer
	title lipgloss.Style
	label lipgloss.Style
	value lipgloss.Style
	warn  lipgloss.Style
}

func newUI(out io.Writer, plain bool) *ui {
	u := &ui{
		out:   out,
		title: lipgloss.NewStyle(),
		label: lipgloss.NewStyle(),
		value: lipgloss.NewStyle(),
		warn:  lipgloss.NewStyle(),
	}

	if plain {
		return u
	}

	u.title = u.title.Bold(true).Foreground(lipgloss.Color("99"))
	u.label = u.label.Foreground(lipgloss.Color("241"))
	u.value = u.value.Foreground(lipgloss.Color("86"))
	u.warn = u.warn.Bold(true).Foreground(lipgloss.Color("196"))

	return u
}

func (u *ui) heading(s string) {
	fmt.Fprintln(u.out, u.title.Render(s))
}

func (u *ui) field(label, value string) {
	fmt.Fprintf(u.out, "%s %s\n", u.label.Render(fmt.Sprintf("%16s:", label)), u.value.Render(value))
}

func (u *ui) warnf(format string, args ...interface{}) {
	fmt.Fprintln(u.out, u.warn.Render(fmt.Sprintf(format, args...)))
}

// flagAliases maps the short long-option spellings of the classic tool
// (--na, --cn, ...) onto the flag names.
func flagAliases(aliases map[string]string) func(*pflag.FlagSet, string) pflag.NormalizedName {
	return func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if full, ok := aliases[name]; ok {
			name = full
		}

		return pflag.NormalizedName(name)
	}
}
