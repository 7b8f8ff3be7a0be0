package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fae.toml")

	cfg := Default()
	cfg.Trust.Policy = TrustPolicyPermissive
	cfg.Audit.LogPath = "/var/log/fae/audit.db"

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestDefaultIsStrict(t *testing.T) {
	cfg := Default()
	require.Equal(t, TrustPolicyStrict, cfg.Trust.Policy)
}
