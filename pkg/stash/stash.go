// Package stash keeps editing sessions between command invocations in a
// local pebble store. Each session is stored under its ksuid as two keys:
// a YAML metadata document and the encoded table bytes.
package stash

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
	"gopkg.in/yaml.v3"
)

// ErrNotFound reports a session ID (or current marker) missing from the stash.
var ErrNotFound = errors.New("session not found")

const (
	sessionPrefix = "session/"
	metaSuffix    = "/meta"
	dataSuffix    = "/data"
	currentKey    = "current"
)

// Meta describes a stashed session.
type Meta struct {
	Format   string    `yaml:"format"`
	Source   string    `yaml:"source"`
	Selected int       `yaml:"selected"`
	Records  int       `yaml:"records"`
	Modified bool      `yaml:"modified"`
	Created  time.Time `yaml:"created"`
	Updated  time.Time `yaml:"updated"`
}

// Entry is a stashed session.
type Entry struct {
	ID   ksuid.KSUID
	Meta Meta
	Data []byte
}

// Store is a pebble-backed session stash.
type Store struct {
	db  *pebble.DB
	log *slog.Logger
}

// Open opens or creates the stash in dir.
func Open(dir string, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open stash %s: %w", dir, err)
	}
	return &Store{db: db, log: log.With("stash", dir)}, nil
}

func metaKey(id ksuid.KSUID) []byte {
	return []byte(sessionPrefix + id.String() + metaSuffix)
}

func dataKey(id ksuid.KSUID) []byte {
	return []byte(sessionPrefix + id.String() + dataSuffix)
}

// Create stores a new session, makes it current and returns its ID.
func (s *Store) Create(meta Meta, data []byte) (ksuid.KSUID, error) {
	id := ksuid.New()
	now := id.Time().UTC()
	meta.Created = now
	meta.Updated = now
	if err := s.write(id, meta, data, true); err != nil {
		return ksuid.Nil, err
	}
	s.log.Debug("session created", "id", id.String(), "source", meta.Source, "bytes", len(data))
	return id, nil
}

// Update replaces the metadata and data of an existing session.
func (s *Store) Update(id ksuid.KSUID, meta Meta, data []byte) error {
	old, err := s.meta(id)
	if err != nil {
		return err
	}
	meta.Created = old.Created
	meta.Updated = time.Now().UTC()
	if err := s.write(id, meta, data, false); err != nil {
		return err
	}
	s.log.Debug("session updated", "id", id.String(), "bytes", len(data))
	return nil
}

func (s *Store) write(id ksuid.KSUID, meta Meta, data []byte, makeCurrent bool) error {
	encoded, err := yaml.Marshal(&meta)
	if err != nil {
		return fmt.Errorf("failed to marshal session meta: %w", err)
	}

	b := s.db.NewBatch()
	defer b.Close()
	if err := b.Set(metaKey(id), encoded, nil); err != nil {
		return err
	}
	if err := b.Set(dataKey(id), data, nil); err != nil {
		return err
	}
	if makeCurrent {
		if err := b.Set([]byte(currentKey), id.Bytes(), nil); err != nil {
			return err
		}
	}
	if err := b.Commit(pebble.Sync); err != nil {
		return fmt.Errorf("failed to write session %s: %w", id, err)
	}
	return nil
}

// get copies the value for key; pebble only lends it until the closer runs.
func (s *Store) get(key []byte) ([]byte, error) {
	v, closer, err := s.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	return append([]byte(nil), v...), nil
}

func (s *Store) meta(id ksuid.KSUID) (Meta, error) {
	var meta Meta
	raw, err := s.get(metaKey(id))
	if err != nil {
		return meta, fmt.Errorf("%w: %s", err, id)
	}
	if err := yaml.Unmarshal(raw, &meta); err != nil {
		return meta, fmt.Errorf("failed to parse session meta %s: %w", id, err)
	}
	return meta, nil
}

// Get returns a session with its data.
func (s *Store) Get(id ksuid.KSUID) (*Entry, error) {
	meta, err := s.meta(id)
	if err != nil {
		return nil, err
	}
	data, err := s.get(dataKey(id))
	if err != nil {
		return nil, fmt.Errorf("%w: %s data", err, id)
	}
	return &Entry{ID: id, Meta: meta, Data: data}, nil
}

// Delete removes a session. Deleting the current session clears the
// current marker.
func (s *Store) Delete(id ksuid.KSUID) error {
	if _, err := s.meta(id); err != nil {
		return err
	}

	b := s.db.NewBatch()
	defer b.Close()
	if err := b.Delete(metaKey(id), nil); err != nil {
		return err
	}
	if err := b.Delete(dataKey(id), nil); err != nil {
		return err
	}
	if cur, err := s.Current(); err == nil && cur == id {
		if err := b.Delete([]byte(currentKey), nil); err != nil {
			return err
		}
	}
	if err := b.Commit(pebble.Sync); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	s.log.Debug("session deleted", "id", id.String())
	return nil
}

// List returns every session without its data, oldest first.
func (s *Store) List() ([]Entry, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(sessionPrefix),
		UpperBound: prefixEnd([]byte(sessionPrefix)),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var entries []Entry
	for iter.First(); iter.Valid(); iter.Next() {
		key := string(iter.Key())
		if !strings.HasSuffix(key, metaSuffix) {
			continue
		}
		id, err := ksuid.Parse(strings.TrimSuffix(strings.TrimPrefix(key, sessionPrefix), metaSuffix))
		if err != nil {
			s.log.Warn("skipping malformed session key", "key", key)
			continue
		}
		var meta Meta
		if err := yaml.Unmarshal(iter.Value(), &meta); err != nil {
			return nil, fmt.Errorf("failed to parse session meta %s: %w", id, err)
		}
		entries = append(entries, Entry{ID: id, Meta: meta})
	}
	return entries, iter.Error()
}

// Current returns the session most recently made current.
func (s *Store) Current() (ksuid.KSUID, error) {
	raw, err := s.get([]byte(currentKey))
	if err != nil {
		return ksuid.Nil, err
	}
	return ksuid.FromBytes(raw)
}

// SetCurrent marks an existing session as current.
func (s *Store) SetCurrent(id ksuid.KSUID) error {
	if _, err := s.meta(id); err != nil {
		return err
	}
	return s.db.Set([]byte(currentKey), id.Bytes(), pebble.Sync)
}

// Resolve parses a session ID, or returns the current session for "".
func (s *Store) Resolve(ref string) (ksuid.KSUID, error) {
	if ref == "" {
		id, err := s.Current()
		if errors.Is(err, ErrNotFound) {
			return ksuid.Nil, fmt.Errorf("%w: no current session, run open first", ErrNotFound)
		}
		return id, err
	}
	id, err := ksuid.Parse(ref)
	if err != nil {
		return ksuid.Nil, fmt.Errorf("%w: invalid session id %q", ErrNotFound, ref)
	}
	return id, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	end[len(end)-1]++
	return end
}
