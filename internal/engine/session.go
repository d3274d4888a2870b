package engine

import (
	"github.com/google/uuid"

	"github.com/memstack/memdrive/internal/store"
)

// DefaultSessionID names the session every engine starts with.
const DefaultSessionID = "default"

// Session is one client's position in the hierarchy: the current unit
// and the current directory within it. Sessions share the engine's
// store; the engine relocates a session whose directory is removed.
type Session struct {
	ID   string
	Unit *store.StorageUnit
	Dir  *store.Directory
}

// Path returns the session's canonical current path.
func (s *Session) Path() string {
	return store.Absolute(s.Dir)
}

// DefaultSession returns the engine's built-in session.
func (e *Engine) DefaultSession() *Session {
	return e.defaultSession
}

// Session resolves a session ID. Empty or unknown IDs fall back to the
// default session, so callers always get a usable position.
func (e *Engine) Session(id string) *Session {
	if id == "" {
		return e.defaultSession
	}
	if s, ok := e.sessions.Load(id); ok {
		return s
	}
	return e.defaultSession
}

// LookupSession resolves a session ID without the default fallback.
func (e *Engine) LookupSession(id string) (*Session, bool) {
	return e.sessions.Load(id)
}

// Sessions returns all live sessions in no particular order.
func (e *Engine) Sessions() []*Session {
	out := make([]*Session, 0, e.sessions.Size())
	e.sessions.Range(func(_ string, s *Session) bool {
		out = append(out, s)
		return true
	})
	return out
}

// NewSession mints a session positioned at the first unit's root.
func (e *Engine) NewSession() *Session {
	first := e.store.First()
	s := &Session{
		ID:   uuid.NewString(),
		Unit: first,
		Dir:  first.Root,
	}
	e.sessions.Store(s.ID, s)
	return s
}

// DropSession discards a minted session. The default session stays.
func (e *Engine) DropSession(id string) {
	if id == DefaultSessionID {
		return
	}
	e.sessions.Delete(id)
}

// SessionCount returns the number of live sessions.
func (e *Engine) SessionCount() int {
	return e.sessions.Size()
}

// ChangeDirectory moves the session to the directory at path.
func (e *Engine) ChangeDirectory(s *Session, path string) (string, error) {
	unit, dir, err := store.Resolve(e.store, s.Unit, s.Dir, path)
	if err != nil {
		return "", e.fail("cd", err)
	}
	s.Unit, s.Dir = unit, dir
	abs := store.Absolute(dir)
	e.record("cd %s", abs)
	return abs, nil
}

// ChangeUnit selects a unit by letter and moves to its root.
func (e *Engine) ChangeUnit(s *Session, name string) (string, error) {
	unit, err := e.store.Unit(name)
	if err != nil {
		return "", e.fail("use", err)
	}
	s.Unit, s.Dir = unit, unit.Root
	e.record("use %s", unit.Name)
	return unit.Name, nil
}

// relocateSessions moves every session positioned inside removed to the
// owning unit's root, so no session keeps a detached directory.
func (e *Engine) relocateSessions(removed *store.Directory, unit *store.StorageUnit) {
	e.sessions.Range(func(_ string, s *Session) bool {
		if removed.Contains(s.Dir) {
			s.Unit, s.Dir = unit, unit.Root
		}
		return true
	})
}

// resetSessions drops every minted session and re-points the default
// session, used when a snapshot replaces the world.
func (e *Engine) resetSessions(unit *store.StorageUnit, dir *store.Directory) {
	e.sessions.Range(func(id string, _ *Session) bool {
		e.sessions.Delete(id)
		return true
	})
	e.defaultSession = &Session{ID: DefaultSessionID, Unit: unit, Dir: dir}
	e.sessions.Store(DefaultSessionID, e.defaultSession)
}
