package stash

import (
	"testing"

	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_CreateGet(t *testing.T) {
	s := openStore(t)

	id, err := s.Create(Meta{Format: "shop1", Source: "/tmp/shop.bin", Selected: -1, Records: 2}, []byte{1, 2, 3})
	require.NoError(t, err)

	e, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, id, e.ID)
	assert.Equal(t, "shop1", e.Meta.Format)
	assert.Equal(t, "/tmp/shop.bin", e.Meta.Source)
	assert.Equal(t, -1, e.Meta.Selected)
	assert.Equal(t, []byte{1, 2, 3}, e.Data)
	assert.False(t, e.Meta.Created.IsZero())

	cur, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, id, cur)
}

func TestStore_Update(t *testing.T) {
	s := openStore(t)
	id, err := s.Create(Meta{Format: "item"}, []byte("old"))
	require.NoError(t, err)
	before, err := s.Get(id)
	require.NoError(t, err)

	require.NoError(t, s.Update(id, Meta{Format: "item", Selected: 4}, []byte("new")))

	after, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), after.Data)
	assert.Equal(t, 4, after.Meta.Selected)
	assert.True(t, before.Meta.Created.Equal(after.Meta.Created))

	assert.ErrorIs(t, s.Update(ksuid.New(), Meta{}, nil), ErrNotFound)
}

func TestStore_ListAndDelete(t *testing.T) {
	s := openStore(t)
	first, err := s.Create(Meta{Format: "item", Source: "a"}, []byte("a"))
	require.NoError(t, err)
	second, err := s.Create(Meta{Format: "shop2", Source: "b"}, []byte("b"))
	require.NoError(t, err)

	entries, err := s.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	ids := []ksuid.KSUID{entries[0].ID, entries[1].ID}
	assert.ElementsMatch(t, []ksuid.KSUID{first, second}, ids)
	for _, e := range entries {
		assert.Nil(t, e.Data)
	}

	require.NoError(t, s.Delete(second))
	_, err = s.Get(second)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Current()
	assert.ErrorIs(t, err, ErrNotFound, "deleting the current session clears it")

	require.NoError(t, s.SetCurrent(first))
	cur, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, first, cur)

	entries, err = s.List()
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	assert.ErrorIs(t, s.Delete(second), ErrNotFound)
	assert.ErrorIs(t, s.SetCurrent(second), ErrNotFound)
}

func TestStore_Resolve(t *testing.T) {
	s := openStore(t)

	_, err := s.Resolve("")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Resolve("not-a-ksuid")
	assert.ErrorIs(t, err, ErrNotFound)

	id, err := s.Create(Meta{Format: "item"}, nil)
	require.NoError(t, err)

	got, err := s.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	got, err = s.Resolve(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestStore_Reopen(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, nil)
	require.NoError(t, err)
	id, err := s.Create(Meta{Format: "shop1"}, []byte("persisted"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(dir, nil)
	require.NoError(t, err)
	defer s.Close()

	e, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, []byte("persisted"), e.Data)
}
