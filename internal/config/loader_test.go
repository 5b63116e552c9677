package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freshLoader(t *testing.T) *Loader {
	t.Helper()
	return &Loader{v: viper.New()}
}

func TestLoader_LoadWithoutValidation_AppliesDefaults(t *testing.T) {
	l := freshLoader(t)
	cfg, err := l.LoadWithoutValidation()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Scan.DarkThreshold, cfg.Scan.DarkThreshold)
	assert.Equal(t, DefaultConfig().Server.Port, cfg.Server.Port)
}

func TestLoader_SetOverridesDefault(t *testing.T) {
	l := freshLoader(t)
	l.Set("scan.canonical_size", 800)
	cfg, err := l.LoadWithoutValidation()
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Scan.CanonicalSize)
}

func TestGetConfigSearchPaths_IncludesCurrentDirectory(t *testing.T) {
	paths := GetConfigSearchPaths()
	assert.Contains(t, paths, ".")
}
