package design

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestGetStateStyle(t *testing.T) {
	tests := []struct {
		state string
		want  lipgloss.Style
	}{
		{"ready", TextSuccessStyle},
		{"error", TextErrorStyle},
		{"connecting", TextWarningStyle},
		{"loading", TextWarningStyle},
		{"disconnected", TextSecondaryStyle},
		{"unknown", TextStyle},
	}
	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			assert.Equal(t, tt.want.GetForeground(), GetStateStyle(tt.state).GetForeground())
		})
	}
}

func TestStatusBarInfoUsesInfoColor(t *testing.T) {
	assert.Equal(t, ColorInfo, StatusBarInfoStyle.GetBackground())
}

func TestCenterHorizontal(t *testing.T) {
	out := CenterHorizontal(10, "ab")
	assert.Equal(t, 10, lipgloss.Width(out))
	assert.True(t, strings.HasPrefix(out, "    ab"))

	assert.Equal(t, "too wide", CenterHorizontal(4, "too wide"))
}
