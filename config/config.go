// Package config loads the engine's own small configuration: trust-set
// policy knobs and the audit log's path, via TOML (grounded on
// cmd/rivinecg/pkg/config/config-file.go's go-toml marshal/unmarshal
// shape, narrowed to the engine's single flat config rather than that
// file's multi-network blockchain genesis config).
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
)

// TrustPolicy controls how strictly the engine enforces the trust
// discipline of a Trusted(i) input argument (spec §4.1 step 1).
type TrustPolicy string

const (
	// TrustPolicyStrict rejects any Trusted reference the dispatched
	// contract's own trust set does not name, per spec default behavior.
	TrustPolicyStrict TrustPolicy = "strict"
	// TrustPolicyPermissive allows Trusted references regardless of the
	// dispatched contract's declared trust set. Intended only for local
	// fixture runs exercising a transaction shape before its trust sets
	// are finalized; never appropriate once the transaction is intended
	// for real submission.
	TrustPolicyPermissive TrustPolicy = "permissive"
)

// EngineConfig is the engine's full runtime configuration.
type EngineConfig struct {
	Trust struct {
		Policy TrustPolicy `toml:"policy"`
	} `toml:"trust"`
	Audit struct {
		LogPath string `toml:"log_path"`
	} `toml:"audit"`
}

// Default returns the engine's default configuration: strict trust
// checking, audit log under the working directory.
func Default() EngineConfig {
	cfg := EngineConfig{}
	cfg.Trust.Policy = TrustPolicyStrict
	cfg.Audit.LogPath = "fae-audit.db"
	return cfg
}

// Load reads and parses an EngineConfig from a TOML file at path.
func Load(path string) (EngineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return EngineConfig{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return EngineConfig{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as TOML, creating or truncating the file.
func Save(path string, cfg EngineConfig) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshaling: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: writing %s: %w", path, err)
	}
	return nil
}
