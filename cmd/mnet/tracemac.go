package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/carverauto/mnet/pkg/config"
	"github.com/carverauto/mnet/pkg/tracemac"
)

type traceOptions struct {
	roots  []string
	mac    string
	config string
}

func newTraceMACCmd(term func(*cobra.Command) *ui) *cobra.Command {
	o := &traceOptions{}

	cmd := &cobra.Command{
		Use:   "tracemac",
		Short: "Trace a MAC address to its switch port",
		Long: `Follow a MAC address through switch forwarding tables, starting at each
root device, until the port it is attached to. The address may be written as
aa:bb:cc:dd:ee:ff, aa-bb-cc-dd-ee-ff or aabb.ccdd.eeff.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTraceMAC(cmd.Context(), term(cmd), o)
		},
	}

	f := cmd.Flags()
	f.StringArrayVarP(&o.roots, "root", "r", nil, "device to start from (repeatable)")
	f.StringVarP(&o.mac, "mac", "m", "", "MAC address to trace")
	f.StringVarP(&o.config, "config", "c", defaultConfigPath, "config file")

	return cmd
}

func runTraceMAC(ctx context.Context, u *ui, o *traceOptions) error {
	if len(o.roots) == 0 {
		return errNoRoot
	}

	if o.mac == "" {
		return errNoMAC
	}

	u.heading("MNet MAC Trace")
	u.field("Config file", o.config)
	u.field("Root node", strings.Join(o.roots, ", "))
	u.field("MAC address", o.mac)
	fmt.Fprintln(u.out)

	mac, err := tracemac.ParseMAC(o.mac)
	if err != nil {
		return err
	}

	cfg := config.Default()
	if err := config.LoadAndValidate(o.config, cfg); err != nil {
		return fmt.Errorf("%w: %w", errFailedToLoadConfig, err)
	}

	tracer := tracemac.New(newQuerier(cfg), cfg.Domains, u.out)

	for _, root := range o.roots {
		if _, err := tracer.Run(ctx, root, mac); err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}

			u.warnf("Trace from %s stopped: %v", root, err)
		}

		fmt.Fprintln(u.out, "------------")
	}

	u.heading("Trace complete.")

	return nil
}
