// Package eventloop models the single goroutine that owns a widget's element
// tree. Everything that touches the tree after an asynchronous step (the
// data fetch, a debounce timer) goes through a Loop.
package eventloop

import (
	"sort"
	"sync"
	"time"
)

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	// Stop cancels the callback. It reports false if the callback already
	// ran or was stopped.
	Stop() bool
}

// Loop runs callbacks on the goroutine that owns the element tree.
type Loop interface {
	// Do runs f on the loop and returns once it has run. It must not be
	// called from inside a callback already running on the loop.
	Do(f func())
	// AfterFunc schedules f to run on the loop after d.
	AfterFunc(d time.Duration, f func()) Timer
}

// Inline is a Loop that runs callbacks on the calling goroutine,
// serialized by a mutex. Timers use time.AfterFunc.
type Inline struct {
	mu sync.Mutex
}

// NewInline returns a ready Inline loop.
func NewInline() *Inline {
	return &Inline{}
}

func (l *Inline) Do(f func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	f()
}

func (l *Inline) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, func() { l.Do(f) })
}

// Manual is a Loop with a virtual clock for deterministic tests. Do runs
// immediately; timers fire only from Advance.
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	loop    *Manual
	at      time.Time
	seq     int
	f       func()
	stopped bool
	fired   bool
}

// NewManual returns a Manual loop whose clock starts at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the virtual time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Do(f func()) { f() }

func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTimer{loop: m, at: m.now.Add(d), seq: m.seq, f: f}
	m.timers = append(m.timers, t)
	return t
}

// Pending is the number of timers that have neither fired nor been stopped.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d and runs every timer that became
// due, in deadline order. Timers scheduled by callbacks run too if they
// fall inside the window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		var due []*manualTimer
		for _, t := range m.timers {
			if !t.stopped && !t.fired && !t.at.After(target) {
				due = append(due, t)
			}
		}
		if len(due) == 0 {
			m.now = target
			m.compact()
			m.mu.Unlock()
			return
		}
		sort.Slice(due, func(i, j int) bool {
			if due[i].at.Equal(due[j].at) {
				return due[i].seq < due[j].seq
			}
			return due[i].at.Before(due[j].at)
		})
		next := due[0]
		next.fired = true
		m.now = next.at
		m.mu.Unlock()

		next.f()
	}
}

func (m *Manual) compact() {
	live := m.timers[:0]
	for _, t := range m.timers {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	m.timers = live
}

func (t *manualTimer) Stop() bool {
	t.loop.mu.Lock()
	defer t.loop.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}
