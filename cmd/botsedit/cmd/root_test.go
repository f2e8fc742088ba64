package cmd

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/botsedit/pkg/codec"
)

type harness struct {
	t    *testing.T
	dir  string
	base []string
}

func newHarness(t *testing.T) *harness {
	dir := t.TempDir()
	return &harness{
		t:   t,
		dir: dir,
		base: []string{
			"--config", filepath.Join(dir, "config.yaml"),
			"--stash-dir", filepath.Join(dir, "stash"),
		},
	}
}

func (h *harness) run(args ...string) (string, string, int) {
	h.t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(append(append([]string(nil), h.base...), args...), &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

func (h *harness) ok(args ...string) string {
	h.t.Helper()
	out, errOut, code := h.run(args...)
	require.Equal(h.t, 0, code, "botsedit %v: %s", args, errOut)
	return out
}

func (h *harness) file(name string, data []byte) string {
	h.t.Helper()
	path := filepath.Join(h.dir, name)
	require.NoError(h.t, os.WriteFile(path, data, 0644))
	return path
}

func itemTable() []byte {
	out := make([]byte, codec.ItemHeaderSize)
	for _, it := range []struct {
		id   uint32
		name string
	}{
		{1112340567, "Blade Arm"},
		{1220001000, "Drill Leg"},
	} {
		b := make([]byte, codec.ItemRecordSize)
		binary.LittleEndian.PutUint32(b, it.id)
		copy(b[4:], it.name)
		out = append(out, b...)
	}
	return out
}

var sessionID = regexp.MustCompile(`session (\w{27}):`)

func TestEditItemTable(t *testing.T) {
	h := newHarness(t)
	path := h.file("item.dat", itemTable())

	out := h.ok("open", "--format", "item", path)
	assert.Contains(t, out, "2 item records")
	require.Regexp(t, sessionID, out)

	out = h.ok("list")
	assert.Contains(t, out, "1112340567 - Blade Arm")
	assert.Contains(t, out, "1220001000 - Drill Leg")

	out = h.ok("list", "drill")
	assert.NotContains(t, out, "Blade Arm")
	assert.Contains(t, out, "1 of 2 records")

	_, errOut, code := h.run("set", "name", "x")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "no record selected")

	out = h.ok("show", "0")
	assert.Contains(t, out, "record 0 of 2")
	assert.Contains(t, out, "Blade Arm")

	out = h.ok("set", "buyable", "0", "level", "7")
	assert.Contains(t, out, "1112341567")

	_, errOut, code = h.run("set", "level", "300")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "invalid data")

	out = h.ok("sessions")
	assert.Contains(t, out, "(modified)")

	_, errOut, code = h.run("close")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "unsaved changes")

	out = h.ok("save")
	assert.Contains(t, out, "saved 2 records")

	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(1112341567), binary.LittleEndian.Uint32(saved[codec.ItemHeaderSize:]))
	assert.Equal(t, uint8(7), saved[codec.ItemHeaderSize+35])

	backup, err := os.ReadFile(path + ".old")
	require.NoError(t, err)
	assert.Equal(t, itemTable(), backup)

	h.ok("close")
	out = h.ok("sessions")
	assert.Contains(t, out, "no sessions")
}

func TestAddRemoveShopV2(t *testing.T) {
	h := newHarness(t)
	var data []byte
	for i := 0; i < 3; i++ {
		b := bytes.Repeat([]byte{byte(0x10 * (i + 1))}, codec.ShopV2RecordSize)
		binary.LittleEndian.PutUint32(b[0x30:], uint32(40+i))
		clear(b[0x38:0x58])
		copy(b[0x38:], "Part")
		data = append(data, b...)
	}
	path := h.file("shop.dat", data)

	h.ok("open", "-f", "shop2", path)

	out := h.ok("add")
	assert.Contains(t, out, "added record 3: 43 - NewItem")

	out = h.ok("remove", "1")
	assert.Contains(t, out, "removed record 1: 41 - Part")

	_, errOut, code := h.run("remove", "9")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "no such record")

	out = h.ok("save", "--backup=false")
	assert.Contains(t, out, "saved 3 records")
	assert.NoFileExists(t, path+".old")

	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, saved, 3*codec.ShopV2RecordSize)
	assert.Equal(t, data[:codec.ShopV2RecordSize], saved[:codec.ShopV2RecordSize])
	assert.Equal(t, data[2*codec.ShopV2RecordSize:], saved[codec.ShopV2RecordSize:2*codec.ShopV2RecordSize])
}

func TestSessionsAndUse(t *testing.T) {
	h := newHarness(t)
	shop := make([]byte, codec.ShopV1HeaderSize+codec.ShopV1RecordSize)
	copy(shop[codec.ShopV1HeaderSize:], "Cannon")
	first := h.file("a.dat", shop)
	second := h.file("b.dat", shop)

	firstID := sessionID.FindStringSubmatch(h.ok("open", "-f", "shop1", first))[1]
	h.ok("open", "-f", "shop1", second)

	out := h.ok("use", firstID)
	assert.Contains(t, out, firstID)

	out = h.ok("sessions")
	assert.Regexp(t, `\* `+firstID+`.*a\.dat`, out)

	out = h.ok("--session", firstID, "show", "0")
	assert.Contains(t, out, "Cannon")
}

func TestFields(t *testing.T) {
	h := newHarness(t)

	out := h.ok("fields", "--format", "shop1")
	assert.Contains(t, out, "category")
	assert.Regexp(t, `offset\s+Offset\s+\(read-only\)`, out)

	out = h.ok("fields", "-f", "item")
	assert.Contains(t, out, "buyable")
	for _, key := range codec.StatKeys() {
		assert.Contains(t, out, key)
	}
}

func TestErrors(t *testing.T) {
	h := newHarness(t)

	_, errOut, code := h.run("list")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "no current session")

	_, errOut, code = h.run("open", filepath.Join(h.dir, "x.dat"))
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "no format given")

	_, errOut, code = h.run("open", "-f", "item", filepath.Join(h.dir, "missing.dat"))
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "cannot access file")

	short := h.file("short.dat", make([]byte, 10))
	_, errOut, code = h.run("open", "-f", "shop1", short)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "invalid data")

	_, errOut, code = h.run("open", "-f", "shop9", short)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "unknown format")
}

func TestConfigInit(t *testing.T) {
	h := newHarness(t)

	out := h.ok("config", "init")
	assert.Contains(t, out, "wrote")
	assert.FileExists(t, filepath.Join(h.dir, "config.yaml"))

	_, errOut, code := h.run("config", "init")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "already exists")

	out = h.ok("config")
	assert.Contains(t, out, "stash_dir: "+filepath.Join(h.dir, "stash"))
}
