package engine

import (
	"fmt"

	"github.com/puzpuzpuz/xsync/v4"
	"go.uber.org/zap"

	"github.com/memstack/memdrive/internal/index"
	"github.com/memstack/memdrive/internal/store"
)

// Options configures a new engine.
type Options struct {
	// Units are the drive letters to register, first one current.
	Units []string
	// IndexDegree is the catalog B-tree minimum degree, floored at 2.
	IndexDegree int
	// LogOperations enables the operation journal.
	LogOperations bool
	// HistoryLimit caps each journal; 0 keeps everything.
	HistoryLimit int
	Logger       *zap.Logger
}

// Engine owns the store and the catalog and keeps them in lockstep.
// Every mutation validates before touching anything, so a failed
// operation leaves no partial state. The engine itself does not lock;
// the service layer serializes top-level operations.
type Engine struct {
	store    *store.Store
	catalog  *index.Index
	ops      *journal
	failures *journal
	logOps   bool

	sessions       *xsync.Map[string, *Session]
	defaultSession *Session

	log *zap.Logger
}

// New builds an engine with the given units registered in order.
func New(opts Options) (*Engine, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	units := opts.Units
	if len(units) == 0 {
		units = []string{"C:", "D:"}
	}

	st := store.New()
	for _, name := range units {
		if _, err := st.AddUnit(name); err != nil {
			return nil, fmt.Errorf("engine: register unit %q: %w", name, err)
		}
	}

	e := &Engine{
		store:    st,
		catalog:  index.New(opts.IndexDegree),
		ops:      newJournal(opts.HistoryLimit),
		failures: newJournal(opts.HistoryLimit),
		logOps:   opts.LogOperations,
		sessions: xsync.NewMap[string, *Session](),
		log:      opts.Logger,
	}
	e.defaultSession = &Session{
		ID:   DefaultSessionID,
		Unit: st.First(),
		Dir:  st.First().Root,
	}
	e.sessions.Store(DefaultSessionID, e.defaultSession)
	return e, nil
}

// Store exposes the unit chain, read-only by convention.
func (e *Engine) Store() *store.Store {
	return e.store
}

// Catalog exposes the global index for queries.
func (e *Engine) Catalog() *index.Index {
	return e.catalog
}

// OperationLog returns the recorded operations, newest first.
func (e *Engine) OperationLog() []string {
	return e.ops.snapshot()
}

// ErrorLog returns the recorded failures, newest first.
func (e *Engine) ErrorLog() []string {
	return e.failures.snapshot()
}

// ClearLogs empties both journals.
func (e *Engine) ClearLogs() {
	e.ops.clear()
	e.failures.clear()
	e.record("clearlog")
}

// RebuildIndex wipes the catalog and re-walks every tree, indexing each
// file once. Rebuilding a consistent catalog reproduces it exactly.
func (e *Engine) RebuildIndex() int {
	e.catalog.Clear()
	for _, unit := range e.store.Units() {
		unit.Root.Walk(func(d *store.Directory) {
			for _, f := range d.Files(store.PreOrder) {
				e.catalog.InsertEntry(e.entryFor(d, f))
			}
		})
	}
	e.log.Debug("catalog rebuilt", zap.Int("entries", e.catalog.Len()))
	return e.catalog.Len()
}

// Adopt swaps in a restored world: store, catalog, journals, and the
// default session position. A nil catalog triggers a rebuild. Used by
// snapshot restore after the replacement state is fully built.
func (e *Engine) Adopt(st *store.Store, cat *index.Index, ops, errs []string, unitName, path string) {
	e.store = st

	unit, err := st.Unit(unitName)
	if err != nil {
		unit = st.First()
	}
	dir := unit.Root
	if runit, resolved, rerr := store.Resolve(st, unit, unit.Root, path); rerr == nil {
		unit, dir = runit, resolved
	}
	e.resetSessions(unit, dir)

	if cat != nil {
		e.catalog = cat
	} else {
		e.RebuildIndex()
	}
	e.ops.restore(ops)
	e.failures.restore(errs)
	e.log.Info("state adopted",
		zap.Int("units", st.Len()),
		zap.Int("entries", e.catalog.Len()),
		zap.String("cwd", store.Absolute(dir)))
}

// entryFor builds the catalog entry of a file sitting in dir.
func (e *Engine) entryFor(d *store.Directory, f *store.File) *index.Entry {
	return &index.Entry{
		Name:       f.Name,
		FullPath:   store.FilePath(d, f.Name),
		SizeKB:     index.SizeKB(f.Content),
		CreatedAt:  f.CreatedAt,
		ModifiedAt: f.ModifiedAt,
		Extension:  f.Extension,
	}
}

// record journals a completed operation when operation logging is on.
func (e *Engine) record(format string, args ...interface{}) {
	if e.logOps {
		e.ops.record(fmt.Sprintf(format, args...))
	}
}

// fail journals an error and hands it back.
func (e *Engine) fail(op string, err error) error {
	e.failures.record(fmt.Sprintf("%s: %v", op, err))
	e.log.Debug("operation failed", zap.String("op", op), zap.Error(err))
	return err
}
