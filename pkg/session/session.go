// Package session implements an editing session over one decoded table:
// the table itself, the selected record and field access by key.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ssargent/botsedit/pkg/codec"
	"github.com/ssargent/botsedit/pkg/table"
)

var (
	// ErrUnknownFormat reports a layout name other than item, shop1 or shop2.
	ErrUnknownFormat = errors.New("unknown format")
	// ErrNoSelection reports a field access with no record selected.
	ErrNoSelection = errors.New("no record selected")
	// ErrUnknownField reports a key the layout has no field for.
	ErrUnknownField = errors.New("unknown field")
	// ErrReadOnly reports a Set on a derived field.
	ErrReadOnly = errors.New("field is read-only")
)

// BackupSuffix is appended to the previous file when Save keeps a backup.
const BackupSuffix = ".old"

// Entry is one line of a record listing.
type Entry struct {
	Index int
	ID    uint32
	Name  string
}

// Label renders the entry the way record lists show it.
func (e Entry) Label() string {
	return fmt.Sprintf("%d - %s", e.ID, e.Name)
}

// FieldValue is a field of the selected record with its current value.
type FieldValue struct {
	Key      string
	Label    string
	Value    string
	ReadOnly bool
}

// Editor is a session independent of the record type.
type Editor interface {
	Format() Format
	Path() string
	Len() int
	List(filter string) []Entry
	Select(index int) error
	Selected() int
	Schema() []FieldValue
	Fields() ([]FieldValue, error)
	Get(key string) (string, error)
	Set(key, value string) error
	Add() (Entry, error)
	Remove(index int) error
	Encode() ([]byte, error)
	Save(path string, backup bool) error
}

// Session is an Editor over a table of R records.
type Session[R any] struct {
	format   Format
	path     string
	table    *table.Table[R]
	selected int
	log      *slog.Logger
}

// New wraps an already decoded table.
func New[R any](format Format, path string, t *table.Table[R], log *slog.Logger) *Session[R] {
	if log == nil {
		log = slog.Default()
	}
	return &Session[R]{
		format:   format,
		path:     path,
		table:    t,
		selected: -1,
		log:      log.With("format", string(format)),
	}
}

// Open loads the file at path with the given layout.
func Open(format Format, path string, log *slog.Logger) (Editor, error) {
	switch format {
	case FormatItem:
		return load[codec.ItemRecord](format, path, codec.NewItemCodec(), log)
	case FormatShopV1:
		return load[codec.ShopV1Record](format, path, codec.NewShopV1Codec(), log)
	case FormatShopV2:
		return load[codec.ShopV2Record](format, path, codec.NewShopV2Codec(), log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func load[R any](format Format, path string, c table.Codec[R], log *slog.Logger) (*Session[R], error) {
	t, err := table.Load(c, path)
	if err != nil {
		var ioErr *codec.IOError
		if errors.As(err, &ioErr) {
			return nil, err
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	s := New(format, path, t, log)
	s.log.Debug("table loaded", "path", path, "records", t.Len())
	return s, nil
}

// FromBytes decodes data with the given layout. path is remembered as the
// default save target.
func FromBytes(format Format, path string, data []byte, log *slog.Logger) (Editor, error) {
	switch format {
	case FormatItem:
		return decode[codec.ItemRecord](format, path, codec.NewItemCodec(), data, log)
	case FormatShopV1:
		return decode[codec.ShopV1Record](format, path, codec.NewShopV1Codec(), data, log)
	case FormatShopV2:
		return decode[codec.ShopV2Record](format, path, codec.NewShopV2Codec(), data, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func decode[R any](format Format, path string, c table.Codec[R], data []byte, log *slog.Logger) (*Session[R], error) {
	t, err := table.Decode(c, data)
	if err != nil {
		return nil, err
	}
	s := New(format, path, t, log)
	s.log.Debug("table decoded", "path", path, "bytes", len(data), "records", t.Len())
	return s, nil
}

func (s *Session[R]) Format() Format {
	return s.format
}

func (s *Session[R]) Path() string {
	return s.path
}

func (s *Session[R]) Len() int {
	return s.table.Len()
}

// List returns the records whose name contains filter, ignoring case.
// An empty filter lists everything.
func (s *Session[R]) List(filter string) []Entry {
	c := s.table.Codec()
	filter = strings.ToLower(filter)

	var entries []Entry
	for i, r := range s.table.Records() {
		id, name := c.Describe(r)
		if filter != "" && !strings.Contains(strings.ToLower(name), filter) {
			continue
		}
		entries = append(entries, Entry{Index: i, ID: id, Name: name})
	}
	return entries
}

// Select makes the record at index current. -1 clears the selection.
func (s *Session[R]) Select(index int) error {
	if index == -1 {
		s.selected = -1
		return nil
	}
	if _, err := s.table.RecordAt(index); err != nil {
		return err
	}
	s.selected = index
	return nil
}

// Selected returns the selected index, or -1.
func (s *Session[R]) Selected() int {
	return s.selected
}

func (s *Session[R]) current() (*R, error) {
	if s.selected < 0 {
		return nil, ErrNoSelection
	}
	return s.table.RecordAt(s.selected)
}

// Schema returns the fields of the layout in form order, without values.
func (s *Session[R]) Schema() []FieldValue {
	fields := s.table.Codec().Fields()
	out := make([]FieldValue, 0, len(fields))
	for _, f := range fields {
		out = append(out, FieldValue{Key: f.Key, Label: f.Label, ReadOnly: f.ReadOnly()})
	}
	return out
}

// Fields returns every field of the selected record in form order.
func (s *Session[R]) Fields() ([]FieldValue, error) {
	r, err := s.current()
	if err != nil {
		return nil, err
	}
	fields := s.table.Codec().Fields()
	out := make([]FieldValue, 0, len(fields))
	for _, f := range fields {
		out = append(out, FieldValue{
			Key:      f.Key,
			Label:    f.Label,
			Value:    f.Get(r),
			ReadOnly: f.ReadOnly(),
		})
	}
	return out, nil
}

func (s *Session[R]) field(key string) (codec.Field[R], error) {
	f, ok := codec.FindField(s.table.Codec().Fields(), key)
	if !ok {
		return f, fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
	return f, nil
}

// Get returns one field of the selected record.
func (s *Session[R]) Get(key string) (string, error) {
	r, err := s.current()
	if err != nil {
		return "", err
	}
	f, err := s.field(key)
	if err != nil {
		return "", err
	}
	return f.Get(r), nil
}

// Set parses value into one field of the selected record. A failed parse
// leaves the record unchanged.
func (s *Session[R]) Set(key, value string) error {
	r, err := s.current()
	if err != nil {
		return err
	}
	f, err := s.field(key)
	if err != nil {
		return err
	}
	if f.ReadOnly() {
		return fmt.Errorf("%w: %s", ErrReadOnly, f.Key)
	}
	if err := f.Set(r, value); err != nil {
		return err
	}
	s.log.Debug("field set", "index", s.selected, "field", f.Key, "value", f.Get(r))
	return nil
}

// Add appends a record templated on the last one and selects it.
func (s *Session[R]) Add() (Entry, error) {
	r, err := s.table.AddRecord()
	if err != nil {
		return Entry{}, err
	}
	s.selected = s.table.Len() - 1
	id, name := s.table.Codec().Describe(r)
	s.log.Debug("record added", "index", s.selected, "id", id)
	return Entry{Index: s.selected, ID: id, Name: name}, nil
}

// Remove deletes the record at index. The selection follows the record it
// pointed at and is cleared if that record was removed.
func (s *Session[R]) Remove(index int) error {
	if err := s.table.Remove(index); err != nil {
		return err
	}
	switch {
	case index == s.selected:
		s.selected = -1
	case index < s.selected:
		s.selected--
	}
	s.log.Debug("record removed", "index", index, "records", s.table.Len())
	return nil
}

func (s *Session[R]) Encode() ([]byte, error) {
	return s.table.Encode()
}

// Save writes the table to path, or to the file it was opened from when
// path is empty. With backup set an existing file is kept as path.old.
func (s *Session[R]) Save(path string, backup bool) error {
	if path == "" {
		path = s.path
	}
	var opts []table.SaveOption
	if backup {
		opts = append(opts, table.WithBackup(BackupSuffix))
	}
	if err := s.table.Save(path, opts...); err != nil {
		return err
	}
	s.log.Info("table saved", "path", path, "records", s.table.Len(), "backup", backup)
	return nil
}
