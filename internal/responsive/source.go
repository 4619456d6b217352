package responsive

import (
	"slices"
	"sync"
)

// Source is a SizeSource whose width is set by its owner, e.g. from
// terminal resize messages.
type Source struct {
	mu     sync.Mutex
	width  int
	nextID int
	subs   []sourceSub
}

type sourceSub struct {
	id int
	fn func(int)
}

// NewSource returns a Source reporting width.
func NewSource(width int) *Source {
	return &Source{width: width}
}

func (s *Source) Width() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width
}

func (s *Source) Subscribe(fn func(width int)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, sourceSub{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.subs = slices.DeleteFunc(s.subs, func(sub sourceSub) bool { return sub.id == id })
	}
}

// SetWidth records width and notifies subscribers, even when the width is
// unchanged.
func (s *Source) SetWidth(width int) {
	s.mu.Lock()
	s.width = width
	subs := slices.Clone(s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(width)
	}
}

// Subscribers is the number of active subscriptions.
func (s *Source) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
