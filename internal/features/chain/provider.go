package chain

import (
	"go-unionreg/internal/config"

	"go.uber.org/zap"
)

// NewRegistryFromConfig builds the process-wide registry: built-ins first, then the optional chain file
func NewRegistryFromConfig(cfg *config.Config, logger *zap.Logger) (*Registry, error) {
	registry := NewDefaultRegistry()
	if cfg.ChainsFile == "" {
		return registry, nil
	}
	if err := registry.LoadFile(cfg.ChainsFile); err != nil {
		return nil, err
	}
	logger.Info("approval chains loaded", zap.String("file", cfg.ChainsFile), zap.Int("chains", len(registry.List())))
	return registry, nil
}
