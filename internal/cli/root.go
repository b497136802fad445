// Package cli implements the bmdash command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/nikbrunner/bmdash/internal/logging"
	"github.com/nikbrunner/bmdash/internal/model"
	"github.com/nikbrunner/bmdash/internal/picker"
	"github.com/nikbrunner/bmdash/internal/storage"
	"github.com/spf13/cobra"
)

// app holds flags and the state loaded before a command runs.
type app struct {
	configPath  string
	profileName string
	verbose     bool
	open        *openFlags

	cfg     *storage.Config
	logger  *log.Logger
	storage storage.Storage
	store   *model.Store

	// Side effects, replaced in tests
	openURL   func(url string) error
	copyURL   func(url string) error
	runPicker func(p picker.Picker) (picker.Picker, error)
}

func newApp() *app {
	return &app{
		openURL:   openInBrowser,
		copyURL:   clipboard.WriteAll,
		runPicker: runPickerProgram,
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	root := newRootCmd(newApp())
	root.SetOut(os.Stdout)
	return root.ExecuteContext(ctx)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "bmdash [query...]",
		Short: "Search and open bookmarks from the terminal",
		Long: `bmdash keeps bookmarks in named profiles and finds them with a ranked
fuzzy search over titles, URLs and tags.

Without arguments it opens an interactive picker. With a query the picker
starts pre-filled; a single match is opened directly.

	Examples:
	  bmdash
	  bmdash git
	  bmdash -p Work jira --copy`,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ~/.config/bmdash/config.toml)")
	root.PersistentFlags().StringVarP(&a.profileName, "profile", "p", "", "profile to use")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	addOpenFlags(root, a)
	root.RunE = a.runOpen

	root.AddCommand(
		newSearchCmd(a),
		newListCmd(a),
		newAddCmd(a),
		newEditCmd(a),
		newRemoveCmd(a),
		newMoveCmd(a),
		newProfileCmd(a),
		newTagsCmd(a),
		newImportCmd(a),
		newExportCmd(a),
		newCullCmd(a),
	)

	return root
}

// setup loads config, logger, storage and the store.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	path := a.configPath
	if path == "" {
		var err error
		if path, err = storage.DefaultConfigFilePath(); err != nil {
			return fmt.Errorf("config path: %w", err)
		}
	}

	cfg, err := storage.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	level := cfg.LogLevel
	if a.verbose {
		level = "debug"
	}
	a.logger = logging.New(logging.Options{
		Level:  level,
		Output: cmd.ErrOrStderr(),
		Prefix: "bmdash",
	})
	a.logger.Debug("loaded config", "path", path)

	a.storage, err = storage.OpenStorage(cfg, a.logger)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}

	a.store, err = a.storage.Load()
	if err != nil {
		return fmt.Errorf("load bookmarks: %w", err)
	}
	return nil
}

func (a *app) close() error {
	if c, ok := a.storage.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (a *app) save() error {
	if err := a.storage.Save(a.store); err != nil {
		return fmt.Errorf("save bookmarks: %w", err)
	}
	return nil
}

// profile returns the profile commands act on: the --profile flag, then
// the configured default, then the store's current profile.
func (a *app) profile() (*model.Profile, error) {
	name := a.profileName
	if name == "" {
		name = a.cfg.DefaultProfile
		if name != "" && a.store.Profile(name) == nil {
			a.logger.Warn("configured default profile not found", "profile", name)
			name = ""
		}
	}
	if name == "" {
		return a.store.CurrentProfile(), nil
	}

	p := a.store.Profile(name)
	if p == nil {
		return nil, fmt.Errorf("%w: %s", model.ErrProfileNotFound, name)
	}
	return p, nil
}

func runPickerProgram(p picker.Picker) (picker.Picker, error) {
	finalModel, err := tea.NewProgram(p).Run()
	if err != nil {
		return p, fmt.Errorf("run picker: %w", err)
	}
	return finalModel.(picker.Picker), nil
}
