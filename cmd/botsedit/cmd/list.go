package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list [filter...]",
		Short: "List records, optionally filtered by name",
		Long: `List the records of the current session as "<id> - <name>" with their
index. The filter matches any part of the name, ignoring case. The
selected record is marked with '*'.

Example:
  botsedit list
  botsedit list blade arm`,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := a.loadWorkspace(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			entries := w.ed.List(strings.Join(args, " "))
			for _, e := range entries {
				mark := ' '
				if e.Index == w.ed.Selected() {
					mark = '*'
				}
				fmt.Fprintf(out, "%c %5d  %s\n", mark, e.Index, e.Label())
			}
			if len(args) > 0 {
				fmt.Fprintf(out, "%d of %d records\n", len(entries), w.ed.Len())
			}
			return nil
		},
	}
}
