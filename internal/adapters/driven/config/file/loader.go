package file

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
	"github.com/custodia-labs/inkpanel/internal/core/ports/driven"
)

// EnvPrefix prefixes environment overrides, e.g. INKPANEL_DISPLAY_MODE.
const EnvPrefix = "INKPANEL"

// Ensure Loader implements the interface.
var _ driven.SettingsSource = (*Loader)(nil)

type snapshot struct {
	config   *Config
	settings domain.Settings
}

// Loader reads, validates and watches the configuration file.
type Loader struct {
	v        *viper.Viper
	path     string
	validate *validator.Validate
	logger   *slog.Logger

	current atomic.Pointer[snapshot]

	mu        sync.Mutex
	callbacks []func(domain.Settings)
}

// DefaultDir returns ~/.inkpanel.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".inkpanel"), nil
}

// DefaultPath returns ~/.inkpanel/config.toml.
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// NewLoader creates a loader for path. If path is empty, DefaultPath is used.
func NewLoader(path string, logger *slog.Logger) (*Loader, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, Defaults())

	l := &Loader{
		v:        v,
		path:     path,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger.With("component", "config"),
	}
	l.current.Store(&snapshot{config: Defaults(), settings: domain.DefaultSettings()})
	return l, nil
}

// Path returns the configuration file path.
func (l *Loader) Path() string {
	return l.path
}

// Load reads the file. A missing file leaves the defaults in place.
func (l *Loader) Load() (*Config, error) {
	if err := l.v.ReadInConfig(); err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrInvalidConfig, l.path, err)
	}

	snap, err := l.decode()
	if err != nil {
		return nil, err
	}
	l.current.Store(snap)
	return snap.config, nil
}

// Config returns the active configuration.
func (l *Loader) Config() *Config {
	return l.current.Load().config
}

// Current returns the active settings.
func (l *Loader) Current() domain.Settings {
	return l.current.Load().settings
}

// OnReload registers fn to run after every successful reload.
func (l *Loader) OnReload(fn func(domain.Settings)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.callbacks = append(l.callbacks, fn)
}

// Watch starts watching the file. It is a no-op when the file does not exist.
func (l *Loader) Watch() {
	if _, err := os.Stat(l.path); err != nil {
		l.logger.Info("config file not found, reload disabled", "path", l.path)
		return
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		l.Reload()
	})
	l.v.WatchConfig()
}

// Reload re-reads the file and notifies callbacks. An invalid file keeps
// the previous settings.
func (l *Loader) Reload() {
	if err := l.v.ReadInConfig(); err != nil {
		l.logger.Warn("config reload failed, keeping previous settings", "error", err)
		return
	}
	snap, err := l.decode()
	if err != nil {
		l.logger.Warn("config reload rejected, keeping previous settings", "error", err)
		return
	}
	l.current.Store(snap)
	l.logger.Info("config reloaded",
		"mode", snap.settings.Display.Mode.String(),
		"quiet_start", snap.settings.Quiet.StartHour,
		"quiet_end", snap.settings.Quiet.EndHour)

	l.mu.Lock()
	callbacks := slices.Clone(l.callbacks)
	l.mu.Unlock()
	for _, fn := range callbacks {
		fn(snap.settings)
	}
}

func (l *Loader) decode() (*snapshot, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: decoding: %v", domain.ErrInvalidConfig, err)
	}
	if err := l.validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, describe(err))
	}
	settings, err := cfg.Settings()
	if err != nil {
		return nil, err
	}
	return &snapshot{config: &cfg, settings: settings}, nil
}

// describe flattens validator errors into "field: rule" pairs.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		ns := strings.TrimPrefix(fe.Namespace(), "Config.")
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: %s=%s", ns, fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s: %s", ns, fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

// setDefaults registers every key so environment overrides apply to keys
// absent from the file.
func setDefaults(v *viper.Viper, cfg *Config) {
	for key, value := range flatten(Document(cfg, false), "") {
		v.SetDefault(key, value)
	}
}
