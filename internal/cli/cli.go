package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dragdrop/pkg/buildinfo"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "dragdrop"

	// envPrefix prefixes environment overrides of user settings.
	envPrefix = "DRAGDROP"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	settingsPath string
	settings     Settings
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:   newLogger(w, level),
		settings: defaultSettings(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "dragdrop runs accessible drag-and-drop boards in the terminal",
		Long: `dragdrop loads a board of drag items and drop areas and lets you play it with
the mouse, the keyboard or a screen-reader friendly command line.

Boards are TOML, YAML or JSON files. Sessions can be saved and resumed.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(c.settingsPath)
			if err != nil {
				return err
			}
			c.settings = s
			installHooks(c.Logger)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.settingsPath, "settings", "", "settings file (default ~/.config/dragdrop/config.toml)")

	// Register all subcommands
	root.AddCommand(c.playCommand())
	root.AddCommand(c.replCommand())
	root.AddCommand(c.simulateCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.savesCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/dragdrop/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
