package engine

import (
	"fmt"
	"time"

	"github.com/memstack/memdrive/internal/shared/stack"
)

// journal is a newest-first log of timestamped lines backed by a linked
// stack, so snapshots preserve exact order through save and restore.
type journal struct {
	lines *stack.Stack[string]
	limit int
}

func newJournal(limit int) *journal {
	return &journal{
		lines: stack.New[string](),
		limit: limit,
	}
}

// record stamps and pushes a line.
func (j *journal) record(text string) {
	j.lines.Push(fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), text))
	if j.limit > 0 && j.lines.Len() > j.limit {
		j.trim()
	}
}

// trim drops the oldest lines down to the limit.
func (j *journal) trim() {
	keep := j.lines.Snapshot()
	if len(keep) > j.limit {
		keep = keep[:j.limit]
	}
	j.lines.Restore(keep)
}

// snapshot returns the lines newest-first.
func (j *journal) snapshot() []string {
	return j.lines.Snapshot()
}

// restore replaces the log from a newest-first slice.
func (j *journal) restore(lines []string) {
	j.lines.Restore(lines)
}

func (j *journal) clear() {
	j.lines.Clear()
}

func (j *journal) len() int {
	return j.lines.Len()
}
