package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ssargent/botsedit/pkg/codec"
	"github.com/ssargent/botsedit/pkg/session"
)

func newSessionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List stashed sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := a.stash.List()
			if err != nil {
				return err
			}
			current, _ := a.stash.Current()

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "no sessions")
				return nil
			}
			for _, e := range entries {
				mark := ' '
				if e.ID == current {
					mark = '*'
				}
				state := ""
				if e.Meta.Modified {
					state = " (modified)"
				}
				fmt.Fprintf(out, "%c %s  %-5s %5d records  %s  %s%s\n",
					mark, e.ID, e.Meta.Format, e.Meta.Records,
					e.Meta.Updated.Local().Format(time.DateTime), e.Meta.Source, state)
			}
			return nil
		},
	}
}

func newUseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "use <session-id>",
		Short: "Make a stashed session the current one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.stash.Resolve(args[0])
			if err != nil {
				return err
			}
			if err := a.stash.SetCurrent(id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "current session %s\n", id)
			return nil
		},
	}
}

func newFieldsCmd(a *app) *cobra.Command {
	fieldsCmd := &cobra.Command{
		Use:   "fields",
		Short: "List the field keys of a table layout",
		Long: `List the keys accepted by 'set' for the current session's layout, or
for the layout named with --format.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var ed session.Editor
			if name, _ := cmd.Flags().GetString("format"); name != "" {
				format, err := session.ParseFormat(name)
				if err != nil {
					return err
				}
				if ed, err = emptyEditor(format); err != nil {
					return err
				}
			} else {
				w, err := a.loadWorkspace(cmd)
				if err != nil {
					return err
				}
				ed = w.ed
			}

			out := cmd.OutOrStdout()
			for _, f := range ed.Schema() {
				suffix := ""
				if f.ReadOnly {
					suffix = "  (read-only)"
				}
				fmt.Fprintf(out, "%-12s %s%s\n", f.Key, f.Label, suffix)
			}
			return nil
		},
	}
	fieldsCmd.Flags().StringP("format", "f", "", "Table layout: item, shop1 or shop2")
	return fieldsCmd
}

// emptyEditor returns an editor over an empty table of format.
func emptyEditor(format session.Format) (session.Editor, error) {
	var data []byte
	if format == session.FormatShopV1 {
		data = make([]byte, codec.ShopV1HeaderSize)
	}
	return session.FromBytes(format, "", data, nil)
}
