package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/ARTM2000/acorn/internal/garage"
	"github.com/spf13/cobra"
)

func newScenariosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List the wiring scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, s := range garage.Scenarios() {
				fmt.Fprintf(w, "%s\t%s\n", s.Name, s.Description)
			}
			return w.Flush()
		},
	}
}

func newRunCmd(opts *rootOptions) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "run [scenario...]",
		Short: "Build a container for each scenario and drive its car",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := args
			if all {
				names = nil
				for _, s := range garage.Scenarios() {
					names = append(names, s.Name)
				}
			}
			if len(names) == 0 {
				return fmt.Errorf("no scenario given; see 'garage scenarios' or use --all")
			}

			out := cmd.OutOrStdout()
			for _, name := range names {
				fmt.Fprintf(out, "== %s\n", name)
				opts.logger.WithField("scenario", name).Info("running scenario")
				if err := garage.Run(cmd.Context(), name, out, opts.builderOptions()...); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Run every scenario")
	return cmd
}
