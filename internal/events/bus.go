package events

import (
	"slices"
	"sync"
	"time"
)

// Handler processes an event.
type Handler func(Event)

// Filter decides whether a subscription receives an event.
type Filter func(Event) bool

// OfType matches events of any of the given types.
func OfType(types ...EventType) Filter {
	return func(e Event) bool {
		return slices.Contains(types, e.Type)
	}
}

// Subscription represents a subscription to events.
type Subscription struct {
	id      int64
	filter  Filter
	handler Handler
	channel chan Event

	mu     sync.RWMutex
	closed bool
}

// C returns the delivery channel of a channel subscription.
func (s *Subscription) C() <-chan Event {
	return s.channel
}

func (s *Subscription) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		if s.channel != nil {
			close(s.channel)
		}
		s.closed = true
	}
}

// Closed reports whether the subscription was removed.
func (s *Subscription) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// Bus provides publish/subscribe for widget notifications. Handlers run
// synchronously in subscription order, like DOM event listeners, so a
// listener observes the tree exactly as it was when the event fired.
type Bus interface {
	Publish(event Event)
	Subscribe(filter Filter, handler Handler) *Subscription
	// SubscribeChannel delivers without blocking; events are dropped when
	// the buffer is full.
	SubscribeChannel(filter Filter, bufferSize int) *Subscription
	Unsubscribe(subscription *Subscription)
	Metrics() Metrics
	Close()
}

// Metrics tracks bus activity.
type Metrics struct {
	ActiveSubscriptions int
	EventsPublished     int64
	EventsDelivered     int64
	EventsDropped       int64
	LastEventTime       time.Time
	EventsByType        map[EventType]int64
}

// DefaultBus is the default implementation of Bus.
type DefaultBus struct {
	mu            sync.RWMutex
	subscriptions []*Subscription
	nextID        int64
	metrics       Metrics
	closed        bool
}

// NewBus creates a new event bus.
func NewBus() *DefaultBus {
	return &DefaultBus{
		metrics: Metrics{EventsByType: make(map[EventType]int64)},
	}
}

// Publish delivers event to every matching subscription.
func (b *DefaultBus) Publish(event Event) {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return
	}
	subs := slices.Clone(b.subscriptions)
	b.mu.RUnlock()

	var delivered, dropped int64
	for _, s := range subs {
		if s.Closed() {
			continue
		}
		if s.filter != nil && !s.filter(event) {
			continue
		}
		if s.handler != nil {
			s.handler(event)
			delivered++
		}
		if s.channel != nil {
			s.mu.RLock()
			if !s.closed {
				select {
				case s.channel <- event:
					delivered++
				default:
					dropped++
				}
			}
			s.mu.RUnlock()
		}
	}

	b.mu.Lock()
	b.metrics.EventsPublished++
	b.metrics.EventsByType[event.Type]++
	b.metrics.LastEventTime = event.Timestamp
	b.metrics.EventsDelivered += delivered
	b.metrics.EventsDropped += dropped
	b.mu.Unlock()
}

// Subscribe registers a handler. It returns nil once the bus is closed.
func (b *DefaultBus) Subscribe(filter Filter, handler Handler) *Subscription {
	return b.add(&Subscription{filter: filter, handler: handler})
}

// SubscribeChannel registers a buffered channel subscription.
func (b *DefaultBus) SubscribeChannel(filter Filter, bufferSize int) *Subscription {
	return b.add(&Subscription{filter: filter, channel: make(chan Event, bufferSize)})
}

func (b *DefaultBus) add(s *Subscription) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.nextID++
	s.id = b.nextID
	b.subscriptions = append(b.subscriptions, s)
	b.metrics.ActiveSubscriptions++
	return s
}

// Unsubscribe removes a subscription. Unknown or nil subscriptions are ignored.
func (b *DefaultBus) Unsubscribe(subscription *Subscription) {
	if subscription == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	i := slices.Index(b.subscriptions, subscription)
	if i < 0 {
		return
	}
	b.subscriptions = slices.Delete(b.subscriptions, i, i+1)
	b.metrics.ActiveSubscriptions--
	subscription.close()
}

// Metrics returns a copy of the bus metrics.
func (b *DefaultBus) Metrics() Metrics {
	b.mu.RLock()
	defer b.mu.RUnlock()
	m := b.metrics
	m.EventsByType = make(map[EventType]int64, len(b.metrics.EventsByType))
	for k, v := range b.metrics.EventsByType {
		m.EventsByType[k] = v
	}
	return m
}

// Close closes the bus and all subscriptions.
func (b *DefaultBus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, s := range b.subscriptions {
		s.close()
	}
	b.subscriptions = nil
	b.metrics.ActiveSubscriptions = 0
}
