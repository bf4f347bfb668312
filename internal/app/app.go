package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmcnair/carehub/internal/clients/identity"
	"github.com/jmcnair/carehub/internal/common"
	"github.com/jmcnair/carehub/internal/interfaces"
	"github.com/jmcnair/carehub/internal/services/directory"
	"github.com/jmcnair/carehub/internal/storage/surrealdb"
)

// App holds the application's shared dependencies.
type App struct {
	Config      *common.Config
	Logger      *common.Logger
	Storage     interfaces.StorageManager
	Identity    interfaces.IdentityClient
	Directory   interfaces.DirectoryService
	StartupTime time.Time
}

// NewApp initializes the application: config, logging, storage and
// clients. configPath overrides the default config discovery when
// non-empty.
func NewApp(configPath string) (*App, error) {
	paths := configPaths(configPath)
	cfg, err := common.LoadConfig(paths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(cfg.Logging)

	storage, err := surrealdb.NewManager(logger, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	idCfg := cfg.Auth.Identity
	if idCfg.TenantID == "" || idCfg.ClientID == "" {
		logger.Warn().Msg("Identity provider tenant_id or client_id is not configured; sign-in URLs will be incomplete")
	}
	idClient := identity.NewClient(identity.Config{
		TenantID:     idCfg.TenantID,
		ClientID:     idCfg.ClientID,
		ClientSecret: idCfg.ClientSecret,
		Scope:        idCfg.APIScope(),
	}, append([]identity.ClientOption{identity.WithLogger(logger)}, identityBaseURL(idCfg.BaseURL)...)...)

	app := &App{
		Config:      cfg,
		Logger:      logger,
		Storage:     storage,
		Identity:    idClient,
		Directory:   directory.NewService(storage, logger),
		StartupTime: time.Now(),
	}

	logger.Info().
		Str("environment", cfg.Environment).
		Str("storage", cfg.Storage.Address).
		Msg("Application initialized")

	return app, nil
}

// Close releases application resources.
func (a *App) Close() error {
	if a.Storage != nil {
		return a.Storage.Close()
	}
	return nil
}

// configPaths resolves the ordered list of candidate config files.
func configPaths(override string) []string {
	if override != "" {
		return []string{override}
	}
	if env := os.Getenv("CAREHUB_CONFIG"); env != "" {
		return []string{env}
	}
	paths := []string{"carehub.toml"}
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), "carehub.toml"))
	}
	return paths
}

func identityBaseURL(base string) []identity.ClientOption {
	if base == "" {
		return nil
	}
	return []identity.ClientOption{identity.WithBaseURL(base)}
}
