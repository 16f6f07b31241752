package main

import (
	"fmt"

	"github.com/orixdb/orixdb"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		ov      orixdb.Overrides
		verbose bool
	)
	cmd := &cobra.Command{
		Use:   "serve [folder]",
		Short: "Open a store and hold it until interrupted",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("verbose") {
				ov.Verbose = &verbose
			}
			opts := append(a.openOptions(cmd), orixdb.WithOverrides(ov))

			ctx := cmd.Context()
			st, err := orixdb.Open(ctx, a.storeDir(args), opts...)
			if err != nil {
				return err
			}
			defer st.Close()

			w := cmd.OutOrStdout()
			m := st.Manifest()
			ports := st.Ports()
			printTitle(w, fmt.Sprintf("Serving %s", m.ID))
			printField(w, "path", st.Root())
			printField(w, "type", m.Kind)
			printField(w, "version", versionField(m.Version, st.VersionSkew()))
			printField(w, "api port", ports.API)
			printField(w, "cluster port", ports.Cluster)
			printField(w, "verbose", st.Verbose())
			fmt.Fprintln(w, styles.Muted.Render("Press Ctrl+C to stop."))

			<-ctx.Done()
			fmt.Fprintln(w, styles.Success.Render("Store closed."))
			return st.Close()
		},
	}

	f := cmd.Flags()
	f.StringVar(&ov.APIPort, "api-port", "", "override the store's API port")
	f.StringVar(&ov.ClusterPort, "cluster-port", "", "override the store's cluster port")
	f.BoolVar(&verbose, "verbose", false, "override the store's verbosity")
	return cmd
}
