package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/botsedit/pkg/session"
)

func newSelectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "select <index>",
		Short: "Select the record later commands operate on",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := a.loadWorkspace(cmd)
			if err != nil {
				return err
			}
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			if err := w.ed.Select(index); err != nil {
				return err
			}
			if err := a.store(w, false); err != nil {
				return err
			}
			return printRecord(cmd, w.ed)
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show [index]",
		Short: "Show the fields of a record",
		Long: `Show every field of the selected record. Given an index, that record
is shown and becomes the selection.

Example:
  botsedit show 3`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := a.loadWorkspace(cmd)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				index, err := parseIndex(args[0])
				if err != nil {
					return err
				}
				if err := w.ed.Select(index); err != nil {
					return err
				}
				if err := a.store(w, false); err != nil {
					return err
				}
			}
			return printRecord(cmd, w.ed)
		},
	}
}

func printRecord(cmd *cobra.Command, ed session.Editor) error {
	fields, err := ed.Fields()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "record %d of %d\n", ed.Selected(), ed.Len())
	for _, f := range fields {
		suffix := ""
		if f.ReadOnly {
			suffix = "  (read-only)"
		}
		fmt.Fprintf(out, "  %-14s %-12s %s%s\n", f.Label, "["+f.Key+"]", f.Value, suffix)
	}
	return nil
}
