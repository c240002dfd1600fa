// Package config loads the optional operator-tunable defaults for the
// helper. Absence of the file is never an error: defaults apply, the
// same tolerant behavior the teacher's config loader has.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultRPDisplayName      = "OpenWrt"
	DefaultUserVerification   = "preferred"
	DefaultChallengeTTL       = 120 * time.Second
	DefaultCredentialFileMode = 0o600
)

// Config carries every operator-tunable default. Zero value is invalid;
// use Load or Defaults.
type Config struct {
	RPDisplayName      string        `toml:"rp_display_name"`
	UserVerification   string        `toml:"user_verification"`
	ChallengeTTL       time.Duration `toml:"challenge_ttl"`
	CredentialFileMode uint32        `toml:"credential_file_mode"`
}

// Defaults returns the built-in defaults, used whenever no config file
// is present or a field is left unset in one that is.
func Defaults() Config {
	return Config{
		RPDisplayName:      DefaultRPDisplayName,
		UserVerification:   DefaultUserVerification,
		ChallengeTTL:       DefaultChallengeTTL,
		CredentialFileMode: DefaultCredentialFileMode,
	}
}

// Load reads path (or the first of candidatePaths that exists, if path
// is empty), overlaying any set fields onto Defaults(). A missing file
// is not an error.
func Load(path string, candidatePaths ...string) (Config, error) {
	cfg := Defaults()

	resolved := path
	if resolved == "" {
		for _, candidate := range candidatePaths {
			if candidate == "" {
				continue
			}
			if _, err := os.Stat(candidate); err == nil {
				resolved = candidate
				break
			}
		}
	}
	if resolved == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filepath.Clean(resolved))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", resolved, err)
	}

	var overlay Config
	if err := toml.Unmarshal(data, &overlay); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", resolved, err)
	}

	if overlay.RPDisplayName != "" {
		cfg.RPDisplayName = overlay.RPDisplayName
	}
	if overlay.UserVerification != "" {
		cfg.UserVerification = overlay.UserVerification
	}
	if overlay.ChallengeTTL > 0 {
		cfg.ChallengeTTL = overlay.ChallengeTTL
	}
	if overlay.CredentialFileMode != 0 {
		cfg.CredentialFileMode = overlay.CredentialFileMode
	}
	return cfg, nil
}
