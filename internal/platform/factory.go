package platform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/cellar/pkg/adapters/fs"
	"github.com/aretw0/cellar/pkg/adapters/memory"
	"github.com/aretw0/cellar/pkg/adapters/sqlite"
	"github.com/aretw0/cellar/pkg/core"
)

// Init builds and initializes a storage adapter based on the provided
// configuration. The 'uri' argument is adapter-specific (a directory for
// 'fs', a database file for 'sqlite', ignored for 'memory').
//
// It returns the configured core.Store.
func Init(uri string, opts ...Option) (core.Store, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	// 1. Check for injected store
	if o.store != nil {
		return o.store, nil
	}

	// 2. Initialize based on Adapter
	var store core.Store
	var err error

	switch o.adapter {
	case "fs":
		store, err = initFS(uri, o)
	case "sqlite":
		store, err = initSQLite(uri, o)
	case "memory":
		store = memory.NewStore()
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}

	if err != nil {
		return nil, err
	}

	// 3. Run Initialization
	if init, ok := store.(core.Initializer); ok {
		if err := init.Initialize(context.Background()); err != nil {
			return nil, err
		}
	}

	return store, nil
}

// initFS handles the initialization logic for the filesystem adapter.
func initFS(path string, o *options) (core.Store, error) {
	autoInit, _ := o.config["auto_init"].(bool)
	versioned, _ := o.config["versioned"].(bool)
	mustExist, _ := o.config["must_exist"].(bool)
	readOnly, _ := o.config["read_only"].(bool)
	systemDir, _ := o.config["system_dir"].(string)
	eventBuffer, _ := o.config["event_buffer"].(int)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	// Smart versioning detection. If "versioned" is not explicitly
	// configured, an existing .git directory opts the vault in.
	if _, ok := o.config["versioned"]; !ok {
		if _, err := os.Stat(filepath.Join(path, ".git")); err == nil {
			versioned = true
			if o.logger != nil {
				o.logger.Debug("auto-detected versioned vault", "reason", ".git present")
			}
		}
	}

	if systemDir == "" {
		systemDir = fs.DefaultSystemDir
	}

	repo := fs.NewRepository(fs.Config{
		Path:         path,
		AutoInit:     autoInit,
		Versioned:    versioned,
		MustExist:    mustExist || !autoInit,
		ReadOnly:     readOnly,
		Logger:       o.logger,
		SystemDir:    systemDir,
		EventBuffer:  eventBuffer,
		ErrorHandler: errorHandler,
	})

	return repo, nil
}

// initSQLite handles the initialization logic for the SQLite adapter.
func initSQLite(path string, o *options) (core.Store, error) {
	mustExist, _ := o.config["must_exist"].(bool)
	if mustExist {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("database %q does not exist: %w", path, err)
		}
	}
	return sqlite.NewStore(path, sqlite.WithLogger(o.logger))
}

// ServiceOptions converts the platform configuration into options for the
// domain services so callers can wire both layers from a single opts slice.
func ServiceOptions(opts ...Option) []core.ServiceOption {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	var svcOpts []core.ServiceOption
	if o.logger != nil {
		svcOpts = append(svcOpts, core.WithServiceLogger(o.logger))
	}
	if o.clock != nil {
		svcOpts = append(svcOpts, core.WithClock(o.clock))
	}
	if o.idSource != nil {
		svcOpts = append(svcOpts, core.WithIDSource(o.idSource))
	}
	if o.deletePolicy != core.KeepNotes {
		svcOpts = append(svcOpts, core.WithFolderDeletePolicy(o.deletePolicy))
	}
	return svcOpts
}
