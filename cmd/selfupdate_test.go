package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDevelopmentVersion(t *testing.T) {
	tests := []struct {
		version string
		want    bool
	}{
		{version: "", want: true},
		{version: "dev", want: true},
		{version: "0.4.0-dev", want: true},
		{version: "0.4.0", want: false},
		{version: "v1.2.3-rc.1", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			assert.Equal(t, tt.want, isDevelopmentVersion(tt.version))
		})
	}
}

// A binary built without -ldflags carries main.go's "dev" version and must
// never reach GitHub.
func TestSelfUpdate_RefusesDevBuild(t *testing.T) {
	original := rootCmd.Version
	defer func() { rootCmd.Version = original }()

	for _, version := range []string{"dev", ""} {
		SetVersion(version)
		out, err := executeRoot(t, "self-update")
		require.Error(t, err, "version %q", version)
		assert.EqualError(t, err, "cannot self-update a development version")
		assert.Empty(t, out)
	}
}

func TestSelfUpdate_TakesNoArguments(t *testing.T) {
	original := rootCmd.Version
	defer func() { rootCmd.Version = original }()
	SetVersion("1.0.0")

	_, err := executeRoot(t, "self-update", "v2.0.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}
