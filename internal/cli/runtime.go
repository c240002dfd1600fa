package cli

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/openwrt/webauthn-helper/internal/config"
	"github.com/openwrt/webauthn-helper/internal/engine"
	"github.com/openwrt/webauthn-helper/internal/log"
	"github.com/openwrt/webauthn-helper/internal/manage"
	"github.com/openwrt/webauthn-helper/internal/store/challenge"
	"github.com/openwrt/webauthn-helper/internal/store/credential"
)

// runtimeEnv holds every stateful dependency a command needs,
// constructed once per invocation from WEBAUTHN_ROOT (or the system
// defaults) the way the teacher resolves HEIMDALL_VAULT_PATH-style
// overrides in applyPathEnvOverrides.
type runtimeEnv struct {
	Config      config.Config
	Logger      *slog.Logger
	Engine      *engine.Engine
	Manager     *manage.Manager
	Credentials credential.Store
	Challenges  challenge.Store
	CredsPath   string
}

func resolveRoot(override string) string {
	if override != "" {
		return override
	}
	if root := os.Getenv("WEBAUTHN_ROOT"); root != "" {
		return root
	}
	return ""
}

func credentialsPath(root string) string {
	if root != "" {
		return filepath.Join(root, "etc", "webauthn", "credentials.json")
	}
	return "/etc/webauthn/credentials.json"
}

func challengesDir(root string) string {
	if root != "" {
		return filepath.Join(root, "tmp", "webauthn", "challenges")
	}
	return "/tmp/webauthn/challenges"
}

func configCandidates(root string) []string {
	if root != "" {
		return []string{filepath.Join(root, "etc", "webauthn", "helper.toml")}
	}
	return []string{"/etc/webauthn/helper.toml"}
}

func newRuntimeEnv(globals *GlobalOptions, logWriter io.Writer) (*runtimeEnv, error) {
	root := resolveRoot(globals.RootOverride)

	cfg, err := config.Load("", configCandidates(root)...)
	if err != nil {
		return nil, err
	}

	logger := log.New(logWriter, slog.LevelInfo)

	credsPath := credentialsPath(root)
	credStore, err := credential.NewFSStore(credsPath, os.FileMode(cfg.CredentialFileMode))
	if err != nil {
		return nil, err
	}

	challengeStore, err := challenge.NewFSStore(challengesDir(root), cfg.ChallengeTTL)
	if err != nil {
		return nil, err
	}

	eng := engine.New(challengeStore, credStore, cfg.RPDisplayName, cfg.UserVerification, logger)
	mgr := manage.New(challengeStore, credStore, credsPath, logger)

	return &runtimeEnv{
		Config:      cfg,
		Logger:      logger,
		Engine:      eng,
		Manager:     mgr,
		Credentials: credStore,
		Challenges:  challengeStore,
		CredsPath:   credsPath,
	}, nil
}
