// Package logging provides config-driven categorized file logging for
// grimoire. Logs are written to .grimoire/logs/ with one file per category
// per day. Nothing is written unless logging.debug_mode is on, because the
// terminal UI owns stdout and stderr while the intro runs.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"grimoire/internal/config"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot    Category = "boot"    // Startup, config, workspace
	CategoryIntro   Category = "intro"   // Sequencer beats, steps, skips
	CategoryUI      Category = "ui"      // Bubbletea host, keys, frames
	CategoryContent Category = "content" // Content tables, overrides, watch
	CategoryHistory Category = "history" // Run history database
	CategoryPrefs   Category = "prefs"   // Persisted UI preferences
)

// Categories lists every category.
var Categories = []Category{
	CategoryBoot, CategoryIntro, CategoryUI, CategoryContent, CategoryHistory, CategoryPrefs,
}

// Manager hands out one zap logger per category, all sharing a level.
type Manager struct {
	cfg   config.LoggingConfig
	dir   string
	level zap.AtomicLevel

	mu      sync.Mutex
	loggers map[Category]*zap.Logger
	closers []func()
}

// NewManager prepares logging under workspace. The logs directory is only
// created when debug mode is enabled.
func NewManager(workspace string, cfg config.LoggingConfig) (*Manager, error) {
	if workspace == "" {
		return nil, fmt.Errorf("workspace path required")
	}

	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if cfg.Level != "" {
		lvl, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level.SetLevel(lvl)
	}

	m := &Manager{
		cfg:     cfg,
		dir:     filepath.Join(workspace, config.DirName, "logs"),
		level:   level,
		loggers: make(map[Category]*zap.Logger),
	}
	if !cfg.DebugMode {
		return m, nil
	}
	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	boot := m.Get(CategoryBoot)
	boot.Info("logging initialized",
		zap.String("workspace", workspace),
		zap.String("dir", m.dir),
		zap.Stringer("level", m.level.Level()))
	return m, nil
}

// Dir is the logs directory.
func (m *Manager) Dir() string {
	return m.dir
}

// SetLevel changes the level of every category logger.
func (m *Manager) SetLevel(l zapcore.Level) {
	m.level.SetLevel(l)
}

// Enabled reports whether category writes anywhere.
func (m *Manager) Enabled(category Category) bool {
	return m.cfg.IsCategoryEnabled(string(category))
}

// Get returns (or creates) the logger for category. Disabled categories get
// a no-op logger.
func (m *Manager) Get(category Category) *zap.Logger {
	if m == nil || !m.Enabled(category) {
		return zap.NewNop()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.loggers[category]; ok {
		return l
	}

	date := time.Now().Format("2006-01-02")
	path := filepath.Join(m.dir, fmt.Sprintf("%s_%s.log", date, category))
	sink, closeSink, err := zap.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] Warning: could not open log file %s: %v\n", path, err)
		return zap.NewNop()
	}

	core := zapcore.NewCore(m.encoder(), sink, m.level)
	l := zap.New(core).With(zap.String("cat", string(category)))
	m.loggers[category] = l
	m.closers = append(m.closers, closeSink)
	return l
}

func (m *Manager) encoder() zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	if m.cfg.Format == "console" {
		return zapcore.NewConsoleEncoder(ec)
	}
	return zapcore.NewJSONEncoder(ec)
}

// Close syncs and closes every category file.
func (m *Manager) Close() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.loggers {
		_ = l.Sync()
	}
	for _, c := range m.closers {
		c()
	}
	m.loggers = make(map[Category]*zap.Logger)
	m.closers = nil
}

var (
	defaultMu      sync.RWMutex
	defaultManager *Manager
)

// Initialize installs the process-wide manager used by Get.
func Initialize(workspace string, cfg config.LoggingConfig) error {
	m, err := NewManager(workspace, cfg)
	if err != nil {
		return err
	}
	defaultMu.Lock()
	old := defaultManager
	defaultManager = m
	defaultMu.Unlock()
	old.Close()
	return nil
}

// Get returns the process-wide logger for category, or a no-op logger
// before Initialize.
func Get(category Category) *zap.Logger {
	defaultMu.RLock()
	m := defaultManager
	defaultMu.RUnlock()
	return m.Get(category)
}

// CloseAll closes the process-wide manager.
func CloseAll() {
	defaultMu.Lock()
	m := defaultManager
	defaultManager = nil
	defaultMu.Unlock()
	m.Close()
}
