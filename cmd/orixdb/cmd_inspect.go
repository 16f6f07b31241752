package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/orixdb/orixdb"
	"github.com/spf13/cobra"
)

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [folder]",
		Short: "Print a summary of a store's indexes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := orixdb.Open(cmd.Context(), a.storeDir(args), a.openOptions(cmd)...)
			if err != nil {
				return err
			}
			defer st.Close()

			w := cmd.OutOrStdout()
			m := st.Manifest()
			s := st.Stats()
			printTitle(w, fmt.Sprintf("Store %s", m.ID))
			printField(w, "path", st.Root())
			printField(w, "version", versionField(m.Version, st.VersionSkew()))
			printField(w, "data files", s.Files)
			printField(w, "singletons", s.Singletons)
			printField(w, "collections", s.Collections)
			printField(w, "collection records", s.CollectionRecords)
			printField(w, "collection items", s.CollectionItems)
			printField(w, "allocated", humanize.IBytes(s.BytesAllocated))
			printField(w, "referenced", humanize.IBytes(s.BytesReferenced))

			usage := fileUsage(st)
			for _, id := range st.Files() {
				f, _ := st.File(id)
				u := usage[id]
				fmt.Fprintf(w, "  %s  %s entries, %s of %s\n",
					styles.Key.Render(id.String()),
					humanize.Comma(int64(u.entries)),
					humanize.IBytes(u.bytes),
					humanize.IBytes(f.Size()),
				)
			}
			return nil
		},
	}
}

type usage struct {
	entries int
	bytes   uint64
}

// fileUsage counts the entries and referenced bytes of every data file.
func fileUsage(st *orixdb.Store) map[orixdb.ID]usage {
	out := make(map[orixdb.ID]usage)
	add := func(e orixdb.Entry) {
		u := out[e.File]
		u.entries++
		u.bytes += e.Length
		out[e.File] = u
	}
	for _, e := range st.Singletons() {
		add(e)
	}
	for _, e := range st.CollectionRecords() {
		add(e)
	}
	for cid := range st.Collections() {
		items, _ := st.CollectionItems(cid)
		for _, e := range items {
			add(e)
		}
	}
	return out
}
