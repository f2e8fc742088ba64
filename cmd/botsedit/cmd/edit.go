package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newSetCmd(a *app) *cobra.Command {
	setCmd := &cobra.Command{
		Use:   "set <field> <value> [<field> <value>...]",
		Short: "Set fields of the selected record",
		Long: `Set one or more fields of the selected record. Numbers may be given in
decimal or with a 0x prefix. If any value is rejected nothing is changed.

On item tables, setting buyable rewrites digit 7 of the identifier, and
setting id re-derives bot, part and buyable. Bot (0 to 3) only decides
whether that digit is kept in sync. It is not stored in the file, so the
next command derives it from the identifier's leading digits again.

Example:
  botsedit set name "Blade Arm" level 12
  botsedit set buyable 0`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || len(args)%2 != 0 {
				return errors.New("expected field/value pairs")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := a.loadWorkspace(cmd)
			if err != nil {
				return err
			}
			if index, _ := cmd.Flags().GetInt("index"); index >= 0 {
				if err := w.ed.Select(index); err != nil {
					return err
				}
			}

			for i := 0; i < len(args); i += 2 {
				if err := w.ed.Set(args[i], args[i+1]); err != nil {
					return err
				}
			}
			if err := a.store(w, true); err != nil {
				return err
			}
			return printRecord(cmd, w.ed)
		},
	}
	setCmd.Flags().IntP("index", "i", -1, "Select this record before setting")
	return setCmd
}

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add",
		Short: "Append a new record after the last one",
		Long: `Append a record with the identifier following the last record's and
select it. Shop records copy the last record's bytes and reset name,
category and buyable; item records start blank.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := a.loadWorkspace(cmd)
			if err != nil {
				return err
			}
			e, err := w.ed.Add()
			if err != nil {
				return err
			}
			if err := a.store(w, true); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added record %d: %s\n", e.Index, e.Label())
			return nil
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <index>",
		Aliases: []string{"rm"},
		Short:   "Remove a record",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := a.loadWorkspace(cmd)
			if err != nil {
				return err
			}
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			entries := w.ed.List("")
			if err := w.ed.Remove(index); err != nil {
				return err
			}
			if err := a.store(w, true); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed record %d: %s\n", index, entries[index].Label())
			return nil
		},
	}
}
