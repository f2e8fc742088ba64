// Package table holds a decoded binary table in memory while it is edited.
package table

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ssargent/botsedit/pkg/codec"
)

// Codec is the contract a record layout provides to a Table.
type Codec[R any] interface {
	Decode(data []byte) (header []byte, records []*R, err error)
	Encode(header []byte, records []*R) ([]byte, error)
	// Next builds a new record using last as a template.
	Next(last *R) (*R, error)
	Fields() []codec.Field[R]
	Describe(r *R) (id uint32, name string)
}

// Table is an ordered set of records of one layout plus the file header
// they were read with. A Table exclusively owns its records.
type Table[R any] struct {
	codec   Codec[R]
	header  []byte
	records []*R
}

// Decode builds a table from the bytes of a whole file.
func Decode[R any](c Codec[R], data []byte) (*Table[R], error) {
	header, records, err := c.Decode(data)
	if err != nil {
		return nil, err
	}
	return &Table[R]{codec: c, header: header, records: records}, nil
}

// Load reads and decodes the file at path.
func Load[R any](c Codec[R], path string) (*Table[R], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &codec.IOError{Op: "read", Path: path, Err: err}
	}
	return Decode(c, data)
}

// Codec returns the layout the table was decoded with.
func (t *Table[R]) Codec() Codec[R] {
	return t.codec
}

// Records returns the records in file order. The slice is owned by the
// table; use Append and Remove to change its length.
func (t *Table[R]) Records() []*R {
	return t.records
}

// Len returns the number of records.
func (t *Table[R]) Len() int {
	return len(t.records)
}

// RecordAt returns the record at index for in-place editing.
func (t *Table[R]) RecordAt(index int) (*R, error) {
	if index < 0 || index >= len(t.records) {
		return nil, codec.IndexError(index, len(t.records))
	}
	return t.records[index], nil
}

// Append adds r at the end of the table.
func (t *Table[R]) Append(r *R) {
	t.records = append(t.records, r)
}

// AddRecord appends a record templated on the last one and returns it.
// The table is unchanged when the layout cannot build a successor.
func (t *Table[R]) AddRecord() (*R, error) {
	if len(t.records) == 0 {
		return nil, codec.IndexError(-1, 0)
	}
	r, err := t.codec.Next(t.records[len(t.records)-1])
	if err != nil {
		return nil, err
	}
	t.Append(r)
	return r, nil
}

// Remove deletes the record at index, keeping the order of the rest.
func (t *Table[R]) Remove(index int) error {
	if index < 0 || index >= len(t.records) {
		return codec.IndexError(index, len(t.records))
	}
	copy(t.records[index:], t.records[index+1:])
	t.records[len(t.records)-1] = nil
	t.records = t.records[:len(t.records)-1]
	return nil
}

// Encode serializes the whole table.
func (t *Table[R]) Encode() ([]byte, error) {
	return t.codec.Encode(t.header, t.records)
}

// Save encodes the table and replaces the file at path. The data goes to a
// temporary file in the same directory which is synced and then renamed
// over path, so a crash leaves either the old or the new file.
func (t *Table[R]) Save(path string, opts ...SaveOption) error {
	data, err := t.Encode()
	if err != nil {
		return err
	}
	return WriteFile(path, data, opts...)
}

// SaveOption configures WriteFile.
type SaveOption func(*saveConfig)

type saveConfig struct {
	backupSuffix string
}

// WithBackup keeps the previous contents of the target as path+suffix.
func WithBackup(suffix string) SaveOption {
	return func(c *saveConfig) {
		c.backupSuffix = suffix
	}
}

// renameFile is replaced in tests to fail the final step of WriteFile.
var renameFile = os.Rename

// WriteFile atomically replaces path with data. An existing target keeps
// its permission bits; a new one is created 0644. The backup, if asked
// for, is a hard link (or a copy) of the old target, so path exists at
// every step.
func WriteFile(path string, data []byte, opts ...SaveOption) error {
	var cfg saveConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	perm := fs.FileMode(0644)
	existing, err := os.Stat(path)
	switch {
	case err == nil:
		perm = existing.Mode().Perm()
	case !errors.Is(err, fs.ErrNotExist):
		return &codec.IOError{Op: "stat", Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return &codec.IOError{Op: "create", Path: path, Err: err}
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	w := bufio.NewWriter(tmp)
	if _, err := w.Write(data); err != nil {
		return &codec.IOError{Op: "write", Path: tmpPath, Err: err}
	}
	if err := w.Flush(); err != nil {
		return &codec.IOError{Op: "write", Path: tmpPath, Err: err}
	}
	if err := tmp.Chmod(perm); err != nil {
		return &codec.IOError{Op: "chmod", Path: tmpPath, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		return &codec.IOError{Op: "sync", Path: tmpPath, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &codec.IOError{Op: "close", Path: tmpPath, Err: err}
	}

	if cfg.backupSuffix != "" && existing != nil {
		if err := backupFile(path, path+cfg.backupSuffix); err != nil {
			return &codec.IOError{Op: "backup", Path: path, Err: err}
		}
	}
	if err := renameFile(tmpPath, path); err != nil {
		return &codec.IOError{Op: "rename", Path: path, Err: err}
	}
	committed = true

	return nil
}

// backupFile makes dst a second name for src, replacing any older dst.
// Filesystems without hard links get a copy instead.
func backupFile(src, dst string) error {
	if err := os.Remove(dst); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := os.Link(src, dst); err == nil {
		return nil
	}
	return copyFile(src, dst)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
