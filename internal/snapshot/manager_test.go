package snapshot

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memstack/memdrive/internal/engine"
)

func newTestManager(t *testing.T, opts Options) *Manager {
	t.Helper()
	if opts.Fs == nil {
		opts.Fs = afero.NewMemMapFs()
	}
	if opts.Dir == "" {
		opts.Dir = "snaps"
	}
	m, err := NewManager(opts)
	require.NoError(t, err)
	return m
}

// TestManagerRejectsUnknownChecksum tests option validation.
func TestManagerRejectsUnknownChecksum(t *testing.T) {
	_, err := NewManager(Options{Fs: afero.NewMemMapFs(), Checksum: "md5"})
	assert.ErrorIs(t, err, ErrPersistence)
}

// TestSaveRestore tests the plain save and restore cycle.
func TestSaveRestore(t *testing.T) {
	m := newTestManager(t, Options{})
	e := populatedEngine(t)

	name, err := m.Save(e)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "drive_"))
	assert.True(t, strings.HasSuffix(name, ".json"))

	exists, err := m.fs.Exists("snaps/" + name + ".sum")
	require.NoError(t, err)
	assert.True(t, exists)

	_, _, err = e.CreateFile(e.DefaultSession(), "C:/extra.txt", "late")
	require.NoError(t, err)

	require.NoError(t, m.Restore(e, name))
	assert.Equal(t, 5, e.Catalog().Len())
	assert.Empty(t, e.Catalog().SearchExact("extra.txt"))
	assert.Equal(t, "C:/docs/work", e.DefaultSession().Path())
}

// TestSaveCompressed tests the zstd path end to end.
func TestSaveCompressed(t *testing.T) {
	m := newTestManager(t, Options{Compress: true})
	e := populatedEngine(t)

	name, err := m.Save(e)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".json.zst"))

	raw, err := m.fs.ReadFile("snaps/" + name)
	require.NoError(t, err)
	_, err = Decode(raw)
	assert.Error(t, err, "stored bytes should not be plain JSON")

	e2, err := engine.New(engine.Options{})
	require.NoError(t, err)
	require.NoError(t, m.Restore(e2, name))
	assert.Equal(t, 5, e2.Catalog().Len())
}

// TestRestoreDetectsTampering tests the checksum mismatch path.
func TestRestoreDetectsTampering(t *testing.T) {
	m := newTestManager(t, Options{})
	e := populatedEngine(t)

	name, err := m.Save(e)
	require.NoError(t, err)

	path := "snaps/" + name
	data, err := m.fs.ReadFile(path)
	require.NoError(t, err)
	data[len(data)-2] ^= 0xff
	require.NoError(t, m.fs.WriteFile(path, data, 0o644))

	err = m.Restore(e, name)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Contains(t, err.Error(), "checksum mismatch")
}

// TestRestoreWithoutSidecar tests that a missing sidecar still restores.
func TestRestoreWithoutSidecar(t *testing.T) {
	m := newTestManager(t, Options{})
	e := populatedEngine(t)

	name, err := m.Save(e)
	require.NoError(t, err)
	require.NoError(t, m.fs.Remove("snaps/"+name+".sum"))

	e2, err := engine.New(engine.Options{})
	require.NoError(t, err)
	assert.NoError(t, m.Restore(e2, name))
}

// TestRestoreBlake2bSidecar tests the alternate checksum algorithm.
func TestRestoreBlake2bSidecar(t *testing.T) {
	m := newTestManager(t, Options{Checksum: AlgBlake2b})
	e := populatedEngine(t)

	name, err := m.Save(e)
	require.NoError(t, err)

	raw, err := m.fs.ReadFile("snaps/" + name + ".sum")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "blake2b:"))

	e2, err := engine.New(engine.Options{})
	require.NoError(t, err)
	assert.NoError(t, m.Restore(e2, name))
}

// TestListOrder tests filtering and newest-first ordering.
func TestListOrder(t *testing.T) {
	m := newTestManager(t, Options{})

	for _, name := range []string{
		"drive_20250101-120000.json",
		"drive_20250103-120000.json",
		"drive_20250102-120000.json.zst",
		"drive_20250101-120000.json.sum",
		"notes.txt",
	} {
		require.NoError(t, m.fs.WriteFile("snaps/"+name, []byte("x"), 0o644))
	}

	snaps, err := m.List()
	require.NoError(t, err)
	require.Len(t, snaps, 3)
	assert.Equal(t, "drive_20250103-120000.json", snaps[0].Name)
	assert.Equal(t, "drive_20250102-120000.json.zst", snaps[1].Name)
	assert.Equal(t, "drive_20250101-120000.json", snaps[2].Name)
}

// TestRestoreLatestPicksNewest tests the lexically-last rule.
func TestRestoreLatestPicksNewest(t *testing.T) {
	m := newTestManager(t, Options{})
	e := populatedEngine(t)

	_, err := m.Save(e)
	require.NoError(t, err)

	_, _, err = e.CreateFile(e.DefaultSession(), "C:/latest.txt", "newest")
	require.NoError(t, err)
	newer, err := Encode(Capture(e))
	require.NoError(t, err)
	newerName := "drive_20991231-235959.json"
	require.NoError(t, m.fs.WriteFile("snaps/"+newerName, newer, 0o644))

	e2, err := engine.New(engine.Options{})
	require.NoError(t, err)
	name, err := m.RestoreLatest(e2)
	require.NoError(t, err)
	assert.Equal(t, newerName, name)
	assert.Len(t, e2.Catalog().SearchExact("latest.txt"), 1)
}

// TestRestoreLatestEmpty tests the no-snapshot error.
func TestRestoreLatestEmpty(t *testing.T) {
	m := newTestManager(t, Options{})
	e, err := engine.New(engine.Options{})
	require.NoError(t, err)

	_, err = m.RestoreLatest(e)
	assert.ErrorIs(t, err, ErrPersistence)
}

// TestPrune tests that only the newest snapshots survive.
func TestPrune(t *testing.T) {
	m := newTestManager(t, Options{})

	for _, name := range []string{
		"drive_20250101-120000.json",
		"drive_20250102-120000.json",
		"drive_20250103-120000.json",
	} {
		require.NoError(t, m.fs.WriteFile("snaps/"+name, []byte("x"), 0o644))
		require.NoError(t, m.fs.WriteFile("snaps/"+name+".sum", []byte("y"), 0o644))
	}

	removed, err := m.Prune(1)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"drive_20250102-120000.json",
		"drive_20250101-120000.json",
	}, removed)

	snaps, err := m.List()
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, "drive_20250103-120000.json", snaps[0].Name)

	exists, err := m.fs.Exists("snaps/drive_20250101-120000.json.sum")
	require.NoError(t, err)
	assert.False(t, exists)

	removed, err = m.Prune(5)
	require.NoError(t, err)
	assert.Empty(t, removed)
}
