package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newSaveCmd(a *app) *cobra.Command {
	saveCmd := &cobra.Command{
		Use:   "save [file]",
		Short: "Write the session's table to disk",
		Long: `Encode the table and write it to the file it was opened from, or to
file if given (which then becomes the session's file). The previous
contents are kept as <file>.old unless --backup=false.

Example:
  botsedit save
  botsedit save --backup=false data/shop_new.dat`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := a.loadWorkspace(cmd)
			if err != nil {
				return err
			}

			backup := a.cfg.Backup
			if cmd.Flags().Changed("backup") {
				backup, _ = cmd.Flags().GetBool("backup")
			}

			path := w.entry.Meta.Source
			if len(args) == 1 {
				if path, err = filepath.Abs(args[0]); err != nil {
					return fmt.Errorf("invalid path: %w", err)
				}
			}
			if err := w.ed.Save(path, backup); err != nil {
				return err
			}

			w.entry.Meta.Source = path
			w.entry.Meta.Modified = false
			if err := a.store(w, false); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %d records to %s\n", w.ed.Len(), path)
			return nil
		},
	}
	saveCmd.Flags().Bool("backup", true, "Keep the previous file as <file>.old (default from config)")
	return saveCmd
}

func newCloseCmd(a *app) *cobra.Command {
	closeCmd := &cobra.Command{
		Use:   "close",
		Short: "Discard a session",
		Long: `Delete the current session (or the one given with --session) from the
stash. Sessions with unsaved changes are only closed with --force.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := a.loadWorkspace(cmd)
			if err != nil {
				return err
			}
			force, _ := cmd.Flags().GetBool("force")
			if w.entry.Meta.Modified && !force {
				return errors.New("session has unsaved changes, save it or use --force")
			}
			if err := a.stash.Delete(w.id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "closed session %s\n", w.id)
			return nil
		},
	}
	closeCmd.Flags().Bool("force", false, "Discard unsaved changes")
	return closeCmd
}
