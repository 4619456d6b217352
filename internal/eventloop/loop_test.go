package eventloop

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManual_AdvanceRunsDueTimersInOrder(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewManual(start)

	var order []string
	m.AfterFunc(300*time.Millisecond, func() { order = append(order, "b") })
	m.AfterFunc(100*time.Millisecond, func() { order = append(order, "a") })
	late := m.AfterFunc(time.Second, func() { order = append(order, "late") })
	assert.Equal(t, 3, m.Pending())

	m.Advance(500 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, start.Add(500*time.Millisecond), m.Now())
	assert.Equal(t, 1, m.Pending())

	assert.True(t, late.Stop())
	assert.False(t, late.Stop())
	m.Advance(time.Second)
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Zero(t, m.Pending())
}

func TestManual_CallbackSchedulesInsideWindow(t *testing.T) {
	m := NewManual(time.Time{})
	fired := 0
	m.AfterFunc(10*time.Millisecond, func() {
		fired++
		m.AfterFunc(10*time.Millisecond, func() { fired++ })
	})
	m.Advance(25 * time.Millisecond)
	assert.Equal(t, 2, fired)
}

func TestManual_StoppedTimerDoesNotFire(t *testing.T) {
	m := NewManual(time.Time{})
	fired := false
	timer := m.AfterFunc(time.Millisecond, func() { fired = true })
	timer.Stop()
	m.Advance(time.Second)
	assert.False(t, fired)
}

func TestInline_DoSerializes(t *testing.T) {
	l := NewInline()
	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Do(func() { counter++ })
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, counter)
}

func TestInline_AfterFunc(t *testing.T) {
	l := NewInline()
	done := make(chan struct{})
	l.AfterFunc(time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not fire")
	}
}
