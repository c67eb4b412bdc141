package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/waabox/pipelinedeck/internal/config"
	"github.com/waabox/pipelinedeck/internal/git"
	"github.com/waabox/pipelinedeck/internal/logging"
	"github.com/waabox/pipelinedeck/internal/store"
)

// session bundles what every command needs: resolved config, the file logger
// and an open counter store.
type session struct {
	cfg      config.Config
	logger   *zap.Logger
	kv       store.KV
	counters *store.CounterStore
}

// openSession resolves --config and --store, then opens the logger and store.
// The --store flag wins over the config file and PIPELINEDECK_STORE.
func openSession(cmd *cobra.Command) (*session, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if dsn, _ := cmd.Flags().GetString("store"); dsn != "" {
		cfg.Store = dsn
	}

	logger, err := logging.New(cfg.LogLevelOrDefault(), cfg.LogFileOrDefault())
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	kv, err := store.DefaultRegistry().Open(cfg.StoreOrDefault())
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("opening store: %w", err)
	}
	logger.Debug("session opened", zap.String("store", cfg.StoreOrDefault()), zap.String("config", configPath))

	return &session{
		cfg:      cfg,
		logger:   logger,
		kv:       kv,
		counters: store.NewCounterStore(kv, logger.Named("store")),
	}, nil
}

func (s *session) Close() error {
	err := s.kv.Close()
	_ = s.logger.Sync()
	if err != nil {
		return fmt.Errorf("closing store: %w", err)
	}
	return nil
}

// projectLabel names the project in the current directory.
func projectLabel() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return git.ProjectLabel(cwd), nil
}
