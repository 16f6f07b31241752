package main

import (
	"github.com/orixdb/orixdb"
	"github.com/spf13/cobra"
)

func newCreateCmd(a *app) *cobra.Command {
	var (
		params   orixdb.CreateParams
		checksum bool
	)
	cmd := &cobra.Command{
		Use:   "create [folder]",
		Short: "Create a new store",
		Long: `Create initializes an empty store in folder, or in the current
directory when no folder is given. The folder must not exist or be empty.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("checksum") {
				params.Checksumming = &checksum
			}
			dir := a.storeDir(args)
			m, err := orixdb.Create(cmd.Context(), dir, params, orixdb.WithLogger(a.logger))
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printTitle(w, "Store created")
			printField(w, "id", m.ID)
			printField(w, "name", m.Name)
			printField(w, "type", m.Kind)
			printField(w, "version", m.Version)
			printField(w, "ordering", m.Ordering)
			printField(w, "checksumming", m.Checksumming)
			printField(w, "logging", m.Logging)
			printField(w, "api port", apiSpec(m).String())
			printField(w, "cluster port", clusterSpec(m).String())
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&params.Name, "name", "", "display name (default: folder name)")
	f.StringVar(&params.ID, "id", "", "store id (default: derived from the name)")
	f.StringVar(&params.Type, "type", "", "store type: live, lite, backup or archive")
	f.BoolVar(&params.Ordering, "ordering", false, "keep entries ordered")
	f.BoolVar(&checksum, "checksum", true, "checksum stored values")
	f.StringVar(&params.Logging, "logging", "", "logging mode: off, minimal, normal or detailed")
	f.BoolVar(&params.Verbose, "verbose", false, "serve verbosely by default")
	f.StringVar(&params.APIPort, "api-port", "", `default API port, "N" or "N..." to scan upward`)
	f.StringVar(&params.ClusterPort, "cluster-port", "", `default cluster port, "N" or "N..." to scan upward`)
	return cmd
}

func apiSpec(m *orixdb.Manifest) orixdb.PortSpec {
	return orixdb.PortSpec{Port: m.Defaults.APIPort, Scan: m.Defaults.APIScan}
}

func clusterSpec(m *orixdb.Manifest) orixdb.PortSpec {
	return orixdb.PortSpec{Port: m.Defaults.ClusterPort, Scan: m.Defaults.ClusterScan}
}
