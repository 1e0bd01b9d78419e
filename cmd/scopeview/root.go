package main

import (
	"errors"
	"fmt"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	config "github.com/edward-ap/scopeview/internal/config"
	events "github.com/edward-ap/scopeview/internal/events"
	fonts "github.com/edward-ap/scopeview/internal/fonts"
	logging "github.com/edward-ap/scopeview/internal/logging"
	viewerapp "github.com/edward-ap/scopeview/internal/viewerapp"
)

// createNewRootCommand creates the root command, which opens the viewer window.
// fs backs the config store, the log directory and the font scan.
func createNewRootCommand(fs afero.Fs) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "scopeview",
		Short:         "Logic analyzer and oscilloscope capture viewer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runViewer(cmd, fs)
		},
	}

	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultPath(), "Path to config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(createOptionsCommand(fs))
	return rootCmd
}

// session is the store and logger shared by every command.
type session struct {
	store *config.Store
	log   zerolog.Logger
}

// openSession loads the config named by --config and builds the logger. An
// unparsable config file is replaced by defaults with a warning.
func openSession(cmd *cobra.Command, fs afero.Fs, logCfg logging.Config) (*session, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	level, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get log-level flag: %w", err)
	}

	store, loadErr := config.Load(fs, configPath)
	if loadErr != nil {
		if !errors.Is(loadErr, config.ErrInvalidConfig) {
			return nil, fmt.Errorf("failed to load config: %w", loadErr)
		}
		store = config.NewStore(fs, configPath, nil)
	}

	if level == "" {
		level = store.Config().LogLevel
	}
	logCfg.Level = level
	log, err := logging.New(fs, logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	if loadErr != nil {
		log.Warn().Err(loadErr).Msg("using default configuration")
	}
	return &session{store: store, log: log}, nil
}

func runViewer(cmd *cobra.Command, fs afero.Fs) error {
	s, err := openSession(cmd, fs, logging.Config{Dir: config.StateDir()})
	if err != nil {
		return err
	}
	s.log.Info().Str("config", s.store.Path()).Msg("starting viewer")

	fontProvider := newFontProvider(fs, s.log)
	go fontProvider.Scan()

	a := viewerapp.NewApp(viewerapp.Deps{
		Store: s.store,
		Bus:   events.NewBus(),
		Fonts: fontProvider,
		Log:   s.log,
	})
	defer a.Close()
	a.Run()
	return nil
}

// newFontProvider scans the XDG font dirs on fs.
func newFontProvider(fs afero.Fs, log zerolog.Logger) *fonts.System {
	return fonts.NewSystem(fs, xdg.FontDirs, log)
}
