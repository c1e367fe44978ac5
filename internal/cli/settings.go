package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/matzehuels/dragdrop/pkg/config"
	"github.com/matzehuels/dragdrop/pkg/store"
)

// Store backends selectable in settings.
const (
	backendFile   = "file"
	backendSQLite = "sqlite"
)

// Settings are user preferences that apply to every board. They are read
// from ~/.config/dragdrop/config.toml and DRAGDROP_* environment variables:
//
//	feedback_delay = "500ms"
//	animate = false
//
//	[store]
//	backend = "sqlite"
//	path = "/home/me/.local/share/dragdrop/saves.db"
type Settings struct {
	// FeedbackDelay overrides the board's feedback delay when non-zero.
	FeedbackDelay time.Duration `mapstructure:"feedback_delay"`
	// Animate enables item movement animation in play.
	Animate bool `mapstructure:"animate"`
	Store   StoreSettings
}

// StoreSettings selects where saves go.
type StoreSettings struct {
	Backend string
	Path    string
}

func defaultSettings() Settings {
	return Settings{Animate: true, Store: StoreSettings{Backend: backendFile}}
}

// loadSettings reads settings from path, or from the default location when
// path is empty. A missing default file is not an error.
func loadSettings(path string) (Settings, error) {
	v := viper.New()

	def := defaultSettings()
	v.SetDefault("feedback_delay", def.FeedbackDelay)
	v.SetDefault("animate", def.Animate)
	v.SetDefault("store.backend", def.Store.Backend)
	v.SetDefault("store.path", "")

	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else if dir, err := configDir(); err == nil {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("read settings: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("unmarshal settings: %w", err)
	}
	switch s.Store.Backend {
	case backendFile, backendSQLite:
	default:
		return Settings{}, fmt.Errorf("settings: store.backend must be %q or %q, got %q", backendFile, backendSQLite, s.Store.Backend)
	}
	return s, nil
}

// apply merges the settings into a board configuration.
func (s Settings) apply(cfg *config.Config) {
	if s.FeedbackDelay > 0 {
		cfg.FeedbackDelay = config.Duration{Duration: s.FeedbackDelay}
	}
	if !s.Animate {
		cfg.DisableAnimation = true
	}
}

// openStore opens the configured save store.
func (s Settings) openStore(ctx context.Context) (store.Store, error) {
	switch s.Store.Backend {
	case backendSQLite:
		path := s.Store.Path
		if path == "" {
			dir, err := configDir()
			if err != nil {
				return nil, err
			}
			path = filepath.Join(dir, "saves.db")
		}
		return store.OpenSQLite(ctx, path)
	default:
		return store.NewFileStore(s.Store.Path)
	}
}
