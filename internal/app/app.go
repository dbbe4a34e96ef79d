package app

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"sketchnotes/internal/config"
	"sketchnotes/internal/secret"
	"sketchnotes/internal/service"
	"sketchnotes/internal/storage"
	"sketchnotes/internal/watch"
)

// App owns the storage driver, the workspace and the optional watcher.
type App struct {
	log       *zap.Logger
	backend   *storage.Backend
	workspace *service.Workspace
	watcher   *watch.Watcher
}

// New opens storage and builds the workspace. Unlike note operations,
// startup failures are returned.
func New(cfg *config.AppConfig, log *zap.Logger, emitter service.EventEmitter) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}

	password, err := storagePassword(cfg.Storage)
	if err != nil {
		return nil, err
	}
	store, err := storage.Open(cfg.Storage, cfg.DataDir, password)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	log.Info("storage opened", zap.String("type", cfg.Storage.Type))

	a := &App{
		log:     log,
		backend: storage.NewBackend(store, log),
	}
	a.workspace = service.NewWorkspace(a.backend, emitter)

	if dir, ok := store.(*storage.DirStore); ok && cfg.Watch.Enabled {
		w, err := watch.New(dir.Root(), a.workspace.Refresh, log)
		if err != nil {
			// The list still works, it just won't notice outside changes.
			log.Warn("notes root watcher disabled", zap.Error(err))
		} else {
			a.watcher = w
		}
	}
	return a, nil
}

func storagePassword(cfg storage.Config) (string, error) {
	if !storage.NeedsPassword(cfg.Type) {
		return "", nil
	}
	secrets, err := secret.New(cfg.PasswordSource)
	if err != nil {
		return "", err
	}
	password, err := secrets.Get(secret.PasswordKey)
	if err != nil {
		return "", fmt.Errorf("read storage password: %w", err)
	}
	return string(password), nil
}

// Workspace returns the serialized note list and session.
func (a *App) Workspace() *service.Workspace {
	return a.workspace
}

// Shutdown saves the open page and releases storage.
func (a *App) Shutdown() error {
	a.log.Debug("shutting down")
	a.workspace.CloseNote()

	var errs []error
	if a.watcher != nil {
		errs = append(errs, a.watcher.Close())
	}
	errs = append(errs, a.backend.Close())
	return errors.Join(errs...)
}
