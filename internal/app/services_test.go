package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perkgrid/internal/config"
	"perkgrid/internal/demo"
	"perkgrid/internal/eventdata"
	"perkgrid/internal/fetch"
)

func TestInitializeServices_Online(t *testing.T) {
	pgCfg := config.GetDefaultConfig()
	pgCfg.API.Root = "http://api.test"
	pgCfg.API.Timeout = time.Second

	cfg := NewConfig("emberconf", true, false)
	cfg.PerkGridConfig = &pgCfg

	services, err := InitializeServices(cfg)
	require.NoError(t, err)
	assert.Nil(t, services.Store)

	client, ok := services.Fetcher.(*fetch.Client)
	require.True(t, ok, "expected the API client, got %T", services.Fetcher)
	assert.Equal(t, "http://api.test/api/v1/perk_grids/emberconf.json", client.URL("emberconf"))
}

func TestInitializeServices_DefaultRoot(t *testing.T) {
	services, err := InitializeServices(NewConfig("x", true, false))
	require.NoError(t, err)
	client := services.Fetcher.(*fetch.Client)
	assert.Equal(t, fetch.DefaultAPIRoot+"api/v1/perk_grids/x.json", client.URL("x"))
}

func TestInitializeServices_Offline(t *testing.T) {
	cfg := NewConfig(eventdata.SampleID, true, false)
	cfg.Offline = true

	services, err := InitializeServices(cfg)
	require.NoError(t, err)
	require.NotNil(t, services.Store)
	assert.Same(t, services.Store, services.Fetcher.(*demo.Store))
	assert.Equal(t, []string{eventdata.SampleID}, services.Store.IDs())
}

func TestInitializeServices_MissingFixturesDir(t *testing.T) {
	cfg := NewConfig(eventdata.SampleID, true, false)
	cfg.FixturesDir = filepath.Join(t.TempDir(), "missing")

	_, err := InitializeServices(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load fixtures")
}
