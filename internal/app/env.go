package app

import (
	"errors"
	"fmt"
	"sync"

	"msxcat/internal/builder"
	"msxcat/internal/catalog"
	"msxcat/internal/config"
	"msxcat/internal/extradata"
	"msxcat/internal/store"
)

// Env bundles the long-lived services every command runs against.
type Env struct {
	Config    *config.Config
	Store     *store.Store
	Catalog   *catalog.Data
	Builder   *builder.Builder
	ExtraData *extradata.Getter
}

var (
	envMu      sync.RWMutex
	defaultEnv *Env
)

// Setup opens the catalog database and wires the shared services from the
// configuration, installing them as the default environment.
func Setup(cfg *config.Config) error {
	s, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open catalog store: %w", err)
	}

	var sources []catalog.Source
	if cfg.MachinesDir != "" {
		sources = append(sources,
			catalog.RomSource(cfg.MachinesDir),
			catalog.TapeSource(cfg.MachinesDir))
	}

	SetDefaultEnv(&Env{
		Config:    cfg,
		Store:     s,
		Catalog:   catalog.NewData(sources...),
		Builder:   builder.New(cfg.GenerationMSXURL),
		ExtraData: extradata.NewGetter(cfg.ExtraDataDir),
	})
	return nil
}

// SetDefaultEnv installs the global environment used by the runners.
func SetDefaultEnv(env *Env) {
	envMu.Lock()
	defer envMu.Unlock()
	defaultEnv = env
}

// DefaultEnv returns the global environment if one has been configured.
func DefaultEnv() *Env {
	envMu.RLock()
	defer envMu.RUnlock()
	return defaultEnv
}

// Teardown closes the default environment's store.
func Teardown() error {
	envMu.Lock()
	defer envMu.Unlock()
	if defaultEnv == nil {
		return nil
	}
	err := defaultEnv.Store.Close()
	defaultEnv = nil
	return err
}

func requireEnv() (*Env, error) {
	env := DefaultEnv()
	if env == nil {
		return nil, errors.New("environment not initialised")
	}
	return env, nil
}
