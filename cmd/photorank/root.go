package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"photorank/application"
	"photorank/application/session"
	"photorank/core/eventbus"
	"photorank/domain/archive"
	"photorank/infrastructure/config"
	"photorank/infrastructure/imagefs"
	"photorank/infrastructure/logging"
	"photorank/infrastructure/repository"
	"photorank/presentation"
	"photorank/resources"
)

// shutdownTimeout bounds cleanup after the window closes.
const shutdownTimeout = 10 * time.Second

type rootOptions struct {
	configPath string
	folder     string
	criteria   []string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "photorank",
		Short: "Rate a folder of photos against your own criteria",
		Long: `photorank shows each image in a folder with one slider per criterion,
then ranks the images by the sum of their ratings.

Without a subcommand it opens the desktop window.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd.Context(), opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	cmd.Flags().StringVar(&opts.folder, "folder", "", "folder to load on startup")
	cmd.Flags().StringArrayVar(&opts.criteria, "criterion", nil, "criterion to add on startup (repeatable)")

	cmd.AddCommand(newRankCmd(opts))
	cmd.AddCommand(newHistoryCmd(opts))

	return cmd
}

// bootstrap loads configuration and sets up logging.
// The returned context carries the logger.
func bootstrap(ctx context.Context, configPath string) (*config.Config, context.Context, func() error, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	logOpts, err := cfg.LoggingOptions()
	if err != nil {
		return nil, nil, nil, err
	}

	logger, closeLog, err := logging.Setup(logOpts)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("initialize logging: %w", err)
	}

	return cfg, logging.With(ctx, logger), closeLog, nil
}

// openArchive connects to MongoDB when the archive is enabled.
// It returns a nil service when the archive is off.
func openArchive(ctx context.Context, cfg *config.Config) (*archive.Service, func(), error) {
	if !cfg.Archive.Enabled {
		return nil, func() {}, nil
	}
	logger := logging.From(ctx)

	db, err := repository.NewMongoDB(ctx, cfg.MongoOptions(), logger)
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Close(closeCtx); err != nil {
			logger.Warn("Failed to close MongoDB", "error", err)
		}
	}

	repo := repository.NewMongoResultRepository(db, logger)
	return archive.NewService(repo), closeFn, nil
}

func runGUI(ctx context.Context, opts *rootOptions) error {
	cfg, ctx, closeLog, err := bootstrap(ctx, opts.configPath)
	if err != nil {
		return err
	}
	defer closeLog()

	logger := logging.From(ctx)
	logger.Info("Starting photorank", "version", version)

	// The archive is optional; a failed connection only disables history.
	archiveService, closeArchive, err := openArchive(ctx, cfg)
	if err != nil {
		logger.Warn("Archive unavailable, continuing without it", "error", err)
		archiveService, closeArchive = nil, func() {}
	}
	defer closeArchive()

	eventBus := eventbus.New(100, logger)
	defer eventBus.Close()

	fyneApp := app.New()
	fyneApp.SetIcon(resources.GetAppIcon())

	manager := session.NewManager(&session.Config{
		Source: imagefs.NewSource(logger),
		Logger: logger,
	})

	coordinator := application.NewCoordinator(&application.CoordinatorConfig{
		Manager:        manager,
		EventBus:       eventBus,
		Archive:        archiveService,
		ArchiveTimeout: time.Duration(cfg.Archive.TimeoutSeconds) * time.Second,
		Opener:         fyneApp,
		Logger:         logger,
	})
	coordinator.Start()
	defer coordinator.Stop()

	bridge := presentation.NewUIEventBridge(&presentation.BridgeConfig{
		Coordinator: coordinator,
		EventBus:    eventBus,
		Logger:      logger,
	})
	defer bridge.Close()

	preload(bridge, append(cfg.Criteria, opts.criteria...), opts.folder, logger)

	mainWindow := presentation.NewMainWindow(&presentation.MainWindowConfig{
		App:          fyneApp,
		Bridge:       bridge,
		Logger:       logger,
		Size:         fyne.NewSize(cfg.Window.Width, cfg.Window.Height),
		ExportDir:    cfg.Export.Dir,
		ExportFormat: cfg.Export.Format,
	})
	defer mainWindow.Cleanup()

	mainWindow.Show()
	fyneApp.Run()

	// Force exit if cleanup hangs
	go func() {
		time.Sleep(shutdownTimeout)
		logger.Warn("Shutdown timeout, forcing exit")
		os.Exit(0)
	}()

	logger.Info("Application shutdown complete")
	return nil
}

// preload adds startup criteria and loads the startup folder.
// Failures are logged; the user can fix them in the setup view.
func preload(bridge *presentation.UIEventBridge, criteria []string, folder string, logger *slog.Logger) {
	for _, c := range criteria {
		if err := bridge.AddCriterion(c); err != nil {
			logger.Warn("Skipping startup criterion", "criterion", c, "error", err)
		}
	}
	if folder != "" {
		if err := bridge.LoadFolder(folder); err != nil {
			logger.Warn("Startup folder unavailable", "folder", folder, "error", err)
		}
	}
}
