package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/ports"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/bootstrap"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/pkg/config"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/pkg/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ledgerctl",
		Short:         "Operaciones sobre facturas, outbox y catálogo de tarifas",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCmd(), newRecomputeCmd(), newRelayCmd(), newSeedRatesCmd())
	return root
}

// env configuración, logger y servicios compartidos por los subcomandos.
type env struct {
	cfg      *config.Config
	log      *logger.Logger
	backend  *bootstrap.Backend
	services *bootstrap.Services
}

func (e *env) close() {
	if e.backend != nil {
		e.backend.Close()
	}
}

func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
	return cfg, log, nil
}

func openEnv(ctx context.Context) (*env, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, err
	}
	backend, err := bootstrap.OpenBackend(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	clock := ports.SystemClock{Location: cfg.App.Location()}
	services := bootstrap.NewServices(backend, cfg, bootstrap.NewPusher(cfg.Push, log), clock, log)
	return &env{cfg: cfg, log: log, backend: backend, services: services}, nil
}
