package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ssargent/botsedit/pkg/session"
	"github.com/ssargent/botsedit/pkg/stash"
)

func newOpenCmd(a *app) *cobra.Command {
	openCmd := &cobra.Command{
		Use:   "open <file>",
		Short: "Open a table file in a new session",
		Long: `Decode a table file and start a new editing session for it. The new
session becomes the current one.

Formats:
  item   item table (4-byte header, 236-byte records)
  shop1  shop file with a 48-byte header and 108-byte records
  shop2  headerless shop file with 256-byte records

Example:
  botsedit open --format shop1 data/shop.dat`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("format")
			if name == "" {
				name = a.cfg.DefaultFormat
			}
			if name == "" {
				return errors.New("no format given, use --format item|shop1|shop2")
			}
			format, err := session.ParseFormat(name)
			if err != nil {
				return err
			}

			path, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("invalid path: %w", err)
			}
			ed, err := session.Open(format, path, a.log)
			if err != nil {
				return err
			}
			data, err := ed.Encode()
			if err != nil {
				return err
			}

			id, err := a.stash.Create(stash.Meta{
				Format:   format.String(),
				Source:   path,
				Selected: -1,
				Records:  ed.Len(),
			}, data)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "session %s: %d %s records from %s\n", id, ed.Len(), format, path)
			return nil
		},
	}
	openCmd.Flags().StringP("format", "f", "", "Table layout: item, shop1 or shop2 (default from config)")
	return openCmd
}
