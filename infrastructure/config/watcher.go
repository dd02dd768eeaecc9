package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DynamicConfig represents runtime-changeable configuration. Operators
// edit the YAML file in place; the watcher picks the change up without a
// restart.
type DynamicConfig struct {
	Limits   Limits   `yaml:"limits"`
	Features Features `yaml:"features"`
}

// Limits holds marketplace limits
type Limits struct {
	MaxBudget           float64 `yaml:"maxBudget"`
	MaxKeywordsPerOffer int     `yaml:"maxKeywordsPerOffer"`
	IPRequestsPerMinute int     `yaml:"ipRequestsPerMinute"`
}

// Features holds feature flags
type Features struct {
	EnablePayments bool `yaml:"enablePayments"`
	EnableSurvey   bool `yaml:"enableSurvey"`
}

// DefaultDynamicConfig returns the limits used when no file is
// configured.
func DefaultDynamicConfig() *DynamicConfig {
	return &DynamicConfig{
		Limits: Limits{
			MaxBudget:           20000,
			MaxKeywordsPerOffer: 20,
			IPRequestsPerMinute: 100,
		},
		Features: Features{
			EnablePayments: true,
			EnableSurvey:   true,
		},
	}
}

// Watcher watches the dynamic configuration file for changes.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	current *DynamicConfig
	mu      sync.RWMutex
	logger  *zap.Logger
	stopCh  chan struct{}
}

// NewWatcher loads the file and starts watching it. An empty path yields
// a watcher that only ever serves the defaults.
func NewWatcher(path string, logger *zap.Logger) (*Watcher, error) {
	w := &Watcher{
		path:    path,
		current: DefaultDynamicConfig(),
		logger:  logger,
		stopCh:  make(chan struct{}),
	}

	if path == "" {
		return w, nil
	}

	loaded, err := loadDynamicConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load dynamic config: %w", err)
	}
	w.current = loaded

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	// Watch the directory: editors replace the file on save, which drops
	// a direct file watch.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch config directory: %w", err)
	}
	w.watcher = fsw

	go w.watch()

	return w, nil
}

// Current returns the active dynamic configuration.
func (w *Watcher) Current() *DynamicConfig {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// MaxBudget returns the active budget ceiling.
func (w *Watcher) MaxBudget() float64 {
	return w.Current().Limits.MaxBudget
}

// Stop stops watching.
func (w *Watcher) Stop() {
	close(w.stopCh)
	if w.watcher != nil {
		w.watcher.Close()
	}
}

func (w *Watcher) watch() {
	for {
		select {
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			loaded, err := loadDynamicConfig(w.path)
			if err != nil {
				w.logger.Error("Failed to reload dynamic config, keeping previous",
					zap.String("path", w.path),
					zap.Error(err),
				)
				continue
			}
			w.mu.Lock()
			w.current = loaded
			w.mu.Unlock()
			w.logger.Info("Dynamic config reloaded",
				zap.Float64("maxBudget", loaded.Limits.MaxBudget),
			)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Config watcher error", zap.Error(err))
		}
	}
}

func loadDynamicConfig(path string) (*DynamicConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultDynamicConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Limits.MaxBudget <= 0 {
		return nil, fmt.Errorf("maxBudget must be positive")
	}
	return cfg, nil
}
