package model

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"perkgrid/internal/eventloop"
)

// RunMsg carries a callback into the bubbletea update loop. The update
// function must call Run.
type RunMsg struct {
	f   func()
	ran chan struct{}
}

// Run executes the callback and releases a waiting Loop.Do.
func (m RunMsg) Run() {
	if m.f != nil {
		m.f()
	}
	if m.ran != nil {
		close(m.ran)
	}
}

// Loop is an eventloop.Loop backed by a bubbletea program: callbacks are
// sent as RunMsg and run by Update, so the element tree is only touched on
// the program goroutine. Do must not be called from Update.
type Loop struct {
	mu     sync.Mutex
	send   func(tea.Msg)
	closed chan struct{}
	once   sync.Once
}

var _ eventloop.Loop = (*Loop)(nil)

// NewLoop returns a Loop that is not yet bound to a program.
func NewLoop() *Loop {
	return &Loop{closed: make(chan struct{})}
}

// Bind sets the function used to deliver messages, normally
// (*tea.Program).Send.
func (l *Loop) Bind(send func(tea.Msg)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.send = send
}

func (l *Loop) sender() func(tea.Msg) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.send
}

// Do sends f to the program and waits until it ran or the loop closed.
func (l *Loop) Do(f func()) {
	send := l.sender()
	if send == nil {
		return
	}
	ran := make(chan struct{})
	go send(RunMsg{f: f, ran: ran})
	select {
	case <-ran:
	case <-l.closed:
	}
}

// AfterFunc delivers f to the program once d has elapsed.
func (l *Loop) AfterFunc(d time.Duration, f func()) eventloop.Timer {
	return time.AfterFunc(d, func() {
		select {
		case <-l.closed:
			return
		default:
		}
		if send := l.sender(); send != nil {
			send(RunMsg{f: f})
		}
	})
}

// Close releases callers blocked in Do. Call it once the program exited.
func (l *Loop) Close() {
	l.once.Do(func() { close(l.closed) })
}
