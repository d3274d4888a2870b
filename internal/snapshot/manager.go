package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"
	"github.com/zeebo/xxh3"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"

	"github.com/memstack/memdrive/internal/engine"
)

// Checksum algorithms for the sidecar files.
const (
	AlgXXH3    = "xxh3"
	AlgBlake2b = "blake2b"
)

const nameLayout = "drive_20060102-150405"

// Shared codec state; both are safe for concurrent use and expensive to
// construct per call.
var (
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	zstdDecoder, _ = zstd.NewReader(nil)
)

// Manager saves and restores snapshots through an afero filesystem, the
// OS one in production and a memory one in tests.
type Manager struct {
	fs       afero.Afero
	dir      string
	compress bool
	checksum string
	log      *zap.Logger
}

// Options configures a manager. Zero values mean the OS filesystem, a
// "snapshots" directory, no compression and xxh3 checksums.
type Options struct {
	Dir      string
	Compress bool
	Checksum string
	Fs       afero.Fs
	Logger   *zap.Logger
}

// Info describes one stored snapshot.
type Info struct {
	Name    string    `json:"name"`
	Size    int64     `json:"size_bytes"`
	SavedAt time.Time `json:"saved_at"`
}

// NewManager builds a manager and makes sure its directory exists.
func NewManager(opts Options) (*Manager, error) {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Dir == "" {
		opts.Dir = "snapshots"
	}
	if opts.Checksum == "" {
		opts.Checksum = AlgXXH3
	}
	if opts.Checksum != AlgXXH3 && opts.Checksum != AlgBlake2b {
		return nil, fmt.Errorf("%w: unknown checksum algorithm %q", ErrPersistence, opts.Checksum)
	}

	m := &Manager{
		fs:       afero.Afero{Fs: opts.Fs},
		dir:      opts.Dir,
		compress: opts.Compress,
		checksum: opts.Checksum,
		log:      opts.Logger,
	}
	if err := m.fs.MkdirAll(m.dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create %s: %w", ErrPersistence, m.dir, err)
	}
	return m, nil
}

// Save captures the engine, writes drive_<timestamp>.json (plus .zst
// when compressing) and a checksum sidecar, and returns the file name.
func (m *Manager) Save(e *engine.Engine) (string, error) {
	doc := Capture(e)
	data, err := Encode(doc)
	if err != nil {
		return "", err
	}

	name := doc.TakenAt.Format(nameLayout) + ".json"
	if m.compress {
		data = zstdEncoder.EncodeAll(data, nil)
		name += ".zst"
	}

	path := filepath.Join(m.dir, name)
	if err := m.fs.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("%w: write %s: %w", ErrPersistence, name, err)
	}
	sum := m.checksum + ":" + digest(data, m.checksum) + "\n"
	if err := m.fs.WriteFile(path+".sum", []byte(sum), 0o644); err != nil {
		return "", fmt.Errorf("%w: write %s.sum: %w", ErrPersistence, name, err)
	}

	m.log.Info("snapshot saved",
		zap.String("name", name),
		zap.Int("bytes", len(data)),
		zap.Bool("compressed", m.compress))
	return name, nil
}

// Restore loads the named snapshot into the engine, verifying the
// checksum sidecar when one exists.
func (m *Manager) Restore(e *engine.Engine, name string) error {
	path := filepath.Join(m.dir, name)
	data, err := m.fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: read %s: %w", ErrPersistence, name, err)
	}
	if err := m.verify(path, data); err != nil {
		return err
	}
	if strings.HasSuffix(name, ".zst") {
		data, err = zstdDecoder.DecodeAll(data, nil)
		if err != nil {
			return fmt.Errorf("%w: decompress %s: %w", ErrPersistence, name, err)
		}
	}

	doc, err := Decode(data)
	if err != nil {
		return err
	}
	if err := Apply(e, doc); err != nil {
		return err
	}
	m.log.Info("snapshot restored", zap.String("name", name))
	return nil
}

// RestoreLatest loads the newest snapshot; the timestamped names make
// the lexically last file the newest.
func (m *Manager) RestoreLatest(e *engine.Engine) (string, error) {
	snaps, err := m.List()
	if err != nil {
		return "", err
	}
	if len(snaps) == 0 {
		return "", fmt.Errorf("%w: no snapshots in %s", ErrPersistence, m.dir)
	}
	name := snaps[0].Name
	return name, m.Restore(e, name)
}

// List returns the stored snapshots, newest first.
func (m *Manager) List() ([]Info, error) {
	entries, err := m.fs.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %w", ErrPersistence, m.dir, err)
	}

	out := []Info{}
	for _, fi := range entries {
		if fi.IsDir() || !isSnapshotName(fi.Name()) {
			continue
		}
		out = append(out, Info{Name: fi.Name(), Size: fi.Size(), SavedAt: fi.ModTime()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name > out[j].Name })
	return out, nil
}

// Prune deletes all but the newest keep snapshots, sidecars included,
// and returns the removed names.
func (m *Manager) Prune(keep int) ([]string, error) {
	if keep < 0 {
		keep = 0
	}
	snaps, err := m.List()
	if err != nil {
		return nil, err
	}
	if keep >= len(snaps) {
		return nil, nil
	}

	removed := []string{}
	for _, snap := range snaps[keep:] {
		path := filepath.Join(m.dir, snap.Name)
		if err := m.fs.Remove(path); err != nil {
			return removed, fmt.Errorf("%w: remove %s: %w", ErrPersistence, snap.Name, err)
		}
		// The sidecar is optional.
		_ = m.fs.Remove(path + ".sum")
		removed = append(removed, snap.Name)
	}
	m.log.Info("snapshots pruned", zap.Int("kept", keep), zap.Int("removed", len(removed)))
	return removed, nil
}

// verify checks data against the snapshot's checksum sidecar. A missing
// sidecar passes; a malformed or mismatching one fails.
func (m *Manager) verify(path string, data []byte) error {
	raw, err := m.fs.ReadFile(path + ".sum")
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: read %s.sum: %w", ErrPersistence, filepath.Base(path), err)
	}

	alg, want, ok := strings.Cut(strings.TrimSpace(string(raw)), ":")
	if !ok || (alg != AlgXXH3 && alg != AlgBlake2b) {
		return fmt.Errorf("%w: malformed checksum sidecar for %s", ErrPersistence, filepath.Base(path))
	}
	if digest(data, alg) != want {
		return fmt.Errorf("%w: checksum mismatch for %s", ErrPersistence, filepath.Base(path))
	}
	return nil
}

// digest returns a 16 hex character digest of data.
func digest(data []byte, alg string) string {
	switch alg {
	case AlgBlake2b:
		h, _ := blake2b.New(8, nil)
		h.Write(data)
		return fmt.Sprintf("%016x", h.Sum(nil))
	default:
		return fmt.Sprintf("%016x", xxh3.Hash(data))
	}
}

func isSnapshotName(name string) bool {
	if !strings.HasPrefix(name, "drive_") {
		return false
	}
	return strings.HasSuffix(name, ".json") || strings.HasSuffix(name, ".json.zst")
}
