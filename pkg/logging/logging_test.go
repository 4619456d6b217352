package logging

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{in: "debug", want: LevelDebug},
		{in: " WARN ", want: LevelWarn},
		{in: "warning", want: LevelWarn},
		{in: "", want: LevelInfo},
		{in: "error", want: LevelError},
		{in: "loud", want: LevelInfo, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInitForCLI_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelWarn, &buf)

	Info("Fetch", "fetching %s", "sample")
	Warn("Fetch", "retrying %s", "sample")
	Error("Fetch", errors.New("boom"), "giving up")

	out := buf.String()
	assert.NotContains(t, out, "fetching sample")
	assert.Contains(t, out, "retrying sample")
	assert.Contains(t, out, "subsystem=Fetch")
	assert.Contains(t, out, "error=boom")
}

func TestInitForTUI_SendsEntries(t *testing.T) {
	ch := InitForTUI(LevelInfo)
	defer func() {
		CloseTUIChannel()
		InitForCLI(LevelInfo, &bytes.Buffer{})
	}()

	Debug("TUI", "hidden")
	Info("TUI", "resized to %d columns", 80)

	select {
	case entry := <-ch:
		assert.Equal(t, LevelInfo, entry.Level)
		assert.Equal(t, "TUI", entry.Subsystem)
		assert.Equal(t, "resized to 80 columns", entry.Message)
	case <-time.After(time.Second):
		require.Fail(t, "no log entry received")
	}
}

func TestCloseTUIChannel(t *testing.T) {
	ch := InitForTUI(LevelInfo)
	CloseTUIChannel()
	defer InitForCLI(LevelInfo, &bytes.Buffer{})

	_, open := <-ch
	assert.False(t, open)

	// Logging after close must not panic.
	Info("TUI", "after close")
}

func TestLogEntryString(t *testing.T) {
	entry := LogEntry{
		Timestamp: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		Level:     LevelError,
		Subsystem: "Widget",
		Message:   "fetch failed",
		Err:       errors.New("404 Not Found"),
	}
	assert.Equal(t, "09:30:00 [ERROR] Widget: fetch failed (error: 404 Not Found)", entry.String())
}
