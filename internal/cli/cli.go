// Package cli implements the coursemap command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/coursemap/pkg/buildinfo"
	"github.com/matzehuels/coursemap/pkg/cache"
	"github.com/matzehuels/coursemap/pkg/config"
	"github.com/matzehuels/coursemap/pkg/pipeline"
	"github.com/matzehuels/coursemap/pkg/records"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "coursemap"
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
	// Out receives command output (tables, status lines).
	Out io.Writer

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
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
		Short: "coursemap lays out course prerequisite graphs",
		Long: `coursemap computes drawing coordinates for a program's courses and their
prerequisites. Courses are placed on levels so every prerequisite sits below
the courses that need it, then each level is reordered to reduce crossing
edges. The result is the input data with x/y coordinates merged in.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Out)
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "",
		"config file (default: ./"+config.DefaultFile+" if present)")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.levelsCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.strategiesCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config & Runner Factory
// =============================================================================

// loadConfig reads the --config file, or ./coursemap.toml when it exists,
// or falls back to defaults.
func (c *CLI) loadConfig() (config.Config, error) {
	path := c.configPath
	if path == "" {
		if _, err := os.Stat(config.DefaultFile); err != nil {
			return config.Default(), nil
		}
		path = config.DefaultFile
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	c.Logger.Debug("loaded config", "path", path)
	return cfg, nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg config.Cache, noCache bool) (*pipeline.Runner, error) {
	cc, err := newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if cfg.Namespace != "" {
		keyer = cache.NewScopedKeyer(nil, cfg.Namespace+":")
	}
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

func newCache(ctx context.Context, cfg config.Cache, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Backend == config.BackendNone {
		return cache.NewNullCache(), nil
	}
	if cfg.Backend == config.BackendRedis {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connect cache: %w", err)
		}
		return rc, nil
	}
	dir := cfg.Dir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/coursemap/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Input Helpers
// =============================================================================

// readDataset loads a JSON or YAML dataset.
func readDataset(path string) (*records.Dataset, error) {
	ds, err := records.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return ds, nil
}
