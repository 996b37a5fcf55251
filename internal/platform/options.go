package platform

import (
	"log/slog"

	"github.com/aretw0/cellar/pkg/core"
)

// options holds the internal configuration for the Cellar services.
type options struct {
	store        core.Store
	logger       *slog.Logger
	adapter      string
	config       map[string]interface{}
	clock        core.Clock
	idSource     core.IDSource
	deletePolicy core.FolderDeletePolicy
}

// Option defines a functional option for configuring Cellar.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		store:   nil,
		logger:  nil,
		adapter: "fs",
		config:  make(map[string]interface{}),
	}
}

// WithAutoInit enables automatic initialization of the vault (creates directories and git init).
func WithAutoInit(auto bool) Option {
	return func(o *options) {
		o.config["auto_init"] = auto
	}
}

// WithVersioning enables or disables git versioning of the vault.
// By default, versioning is disabled; the vault is plain files.
func WithVersioning(enabled bool) Option {
	return func(o *options) {
		o.config["versioned"] = enabled
	}
}

// WithMustExist ensures the vault directory must already exist.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithReadOnly opens the vault for reading only; mutations are rejected.
func WithReadOnly(readOnly bool) Option {
	return func(o *options) {
		o.config["read_only"] = readOnly
	}
}

// WithLogger sets the logger for the services.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStore allows injecting a custom storage adapter (e.g. memory, mock).
// If provided, the adapter selection is skipped.
func WithStore(store core.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithAdapter selects the storage adapter by name ("fs", "sqlite", "memory").
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithSystemDir allows specifying the hidden directory name (e.g. ".cellar").
func WithSystemDir(name string) Option {
	return func(o *options) {
		o.config["system_dir"] = name
	}
}

// WithEventBuffer allows specifying the size of the watch channel buffer.
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.config["event_buffer"] = size
	}
}

// WithWatcherErrorHandler installs a callback for asynchronous watcher
// errors. Without one the fs adapter only logs them.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}

// WithClock overrides the timestamp source used by the services.
func WithClock(c core.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithIDSource overrides the identifier generator used by the services.
func WithIDSource(src core.IDSource) Option {
	return func(o *options) {
		o.idSource = src
	}
}

// WithFolderDeletePolicy selects what happens to a deleted folder's notes.
func WithFolderDeletePolicy(p core.FolderDeletePolicy) Option {
	return func(o *options) {
		o.deletePolicy = p
	}
}
