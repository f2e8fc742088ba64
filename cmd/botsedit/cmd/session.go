package cmd

import (
	"fmt"
	"strconv"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"

	"github.com/ssargent/botsedit/pkg/session"
	"github.com/ssargent/botsedit/pkg/stash"
)

// workspace is a stashed session restored into an editor.
type workspace struct {
	id    ksuid.KSUID
	entry *stash.Entry
	ed    session.Editor
}

func (a *app) loadWorkspace(cmd *cobra.Command) (*workspace, error) {
	ref, _ := cmd.Flags().GetString("session")
	id, err := a.stash.Resolve(ref)
	if err != nil {
		return nil, err
	}
	entry, err := a.stash.Get(id)
	if err != nil {
		return nil, err
	}
	format, err := session.ParseFormat(entry.Meta.Format)
	if err != nil {
		return nil, err
	}
	ed, err := session.FromBytes(format, entry.Meta.Source, entry.Data, a.log)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}
	if sel := entry.Meta.Selected; sel >= 0 && sel < ed.Len() {
		if err := ed.Select(sel); err != nil {
			return nil, err
		}
	}
	return &workspace{id: id, entry: entry, ed: ed}, nil
}

// store writes the editor state back to the stash. modified marks the
// session as having unsaved changes.
func (a *app) store(w *workspace, modified bool) error {
	data, err := w.ed.Encode()
	if err != nil {
		return err
	}
	meta := w.entry.Meta
	meta.Selected = w.ed.Selected()
	meta.Records = w.ed.Len()
	meta.Modified = meta.Modified || modified
	if err := a.stash.Update(w.id, meta, data); err != nil {
		return err
	}
	w.entry.Meta = meta
	w.entry.Data = data
	return nil
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid record index %q", s)
	}
	return n, nil
}
