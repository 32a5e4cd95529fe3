package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/civicdash/pkg/nav"
)

// taskKind names a class of deferred work. At most one task per kind is
// pending; scheduling a new one supersedes the old.
type taskKind int

const (
	taskRender taskKind = iota
	taskEntryAnimation
	taskKinds
)

func (k taskKind) String() string {
	switch k {
	case taskRender:
		return "render"
	case taskEntryAnimation:
		return "entry-animation"
	}
	return "unknown"
}

// deferredMsg is delivered when a scheduled task's delay elapses.
type deferredMsg struct {
	kind    taskKind
	token   uint64
	section nav.Section // taskRender only
}

// taskQueue hands out tokens for deferred tasks. A timer cannot be stopped
// once its command is running, so cancellation is done by forgetting the
// token; the late message then fails accept and is dropped.
type taskQueue struct {
	seq     uint64
	pending [taskKinds]uint64 // 0 = nothing pending
}

// schedule supersedes any pending task of the same kind.
func (q *taskQueue) schedule(kind taskKind) uint64 {
	q.seq++
	q.pending[kind] = q.seq
	return q.seq
}

func (q *taskQueue) cancel(kind taskKind) {
	q.pending[kind] = 0
}

func (q *taskQueue) cancelAll() {
	for i := range q.pending {
		q.pending[i] = 0
	}
}

// accept consumes the pending task if token is still current.
func (q *taskQueue) accept(kind taskKind, token uint64) bool {
	if kind < 0 || kind >= taskKinds {
		return false
	}
	if token == 0 || q.pending[kind] != token {
		return false
	}
	q.pending[kind] = 0
	return true
}

func (q taskQueue) isPending(kind taskKind) bool {
	return q.pending[kind] != 0
}

// deferCmd delivers msg after d. A zero delay still goes through the
// runtime so the caller's update finishes first.
func deferCmd(d time.Duration, msg deferredMsg) tea.Cmd {
	if d <= 0 {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return msg
	})
}
