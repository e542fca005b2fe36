package presentation

import (
	"fmt"
	"log/slog"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"

	"photorank/core/event"
	"photorank/core/state"
)

// MainWindow is the main application window. It shows one view per phase.
type MainWindow struct {
	app    fyne.App
	window fyne.Window
	bridge *UIEventBridge
	logger *slog.Logger

	exportDir    string
	exportFormat string

	// Views - only the one for the current phase is non-nil
	stack      *fyne.Container
	setup      *SetupView
	evaluation *EvaluationView
	results    *ResultsView

	cleanupOnce sync.Once
}

// MainWindowConfig holds configuration for MainWindow.
type MainWindowConfig struct {
	App    fyne.App
	Bridge *UIEventBridge
	Logger *slog.Logger
	Title  string
	Size   fyne.Size
	// ExportDir and ExportFormat seed the export dialog.
	ExportDir    string
	ExportFormat string
}

// NewMainWindow creates a new main window.
func NewMainWindow(cfg *MainWindowConfig) *MainWindow {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Title == "" {
		cfg.Title = "Photorank"
	}
	if cfg.Size.IsZero() {
		cfg.Size = fyne.NewSize(1024, 768)
	}

	w := &MainWindow{
		app:          cfg.App,
		window:       cfg.App.NewWindow(cfg.Title),
		bridge:       cfg.Bridge,
		logger:       cfg.Logger,
		exportDir:    cfg.ExportDir,
		exportFormat: cfg.ExportFormat,
	}

	w.stack = container.NewStack()
	w.window.SetContent(w.stack)
	w.window.Resize(cfg.Size)

	w.setupEventCallbacks()
	w.showPhase(w.bridge.Snapshot().Phase)

	w.window.SetOnClosed(func() {
		w.Cleanup()
		cfg.App.Quit()
	})

	return w
}

func (w *MainWindow) setupEventCallbacks() {
	w.bridge.SetCallbacks(&UICallbacks{
		OnPhaseChanged: func(oldPhase, newPhase state.Phase) {
			w.logger.Debug("Phase changed", "from", oldPhase, "to", newPhase)
			// UI update must run on main thread
			fyne.Do(func() {
				w.showPhase(newPhase)
			})
		},
		OnCriteriaChanged: func(criteria []string, canStart bool) {
			fyne.Do(func() {
				if w.setup != nil {
					w.setup.SetCriteria(criteria)
					w.setup.SetCanStart(canStart)
				}
			})
		},
		OnFolderLoaded: func(path string, images []string, canStart bool) {
			fyne.Do(func() {
				if w.setup != nil {
					w.setup.ShowFolder(path, len(images))
					w.setup.SetCanStart(canStart)
				}
			})
		},
		OnFolderUnavailable: func(path string, err error) {
			w.logger.Warn("Folder unavailable", "folder", path, "error", err)
			fyne.Do(func() {
				if w.setup != nil {
					w.setup.ShowFolderError(err)
					w.setup.SetCanStart(false)
				}
			})
		},
		OnImageChanged: func(evt event.ImageChanged) {
			fyne.Do(func() {
				if w.evaluation != nil {
					w.evaluation.ShowImage(evt)
				}
			})
		},
		OnRatingChanged: func(image, criterion string, value int) {
			fyne.Do(func() {
				if w.evaluation != nil {
					w.evaluation.ShowRating(criterion, value)
				}
			})
		},
		OnResultsExported: func(path, format string) {
			fyne.Do(func() {
				dialog.ShowInformation("Export Complete",
					fmt.Sprintf("Results saved as %s:\n%s", format, path), w.window)
			})
		},
		OnResultsArchived: func(sessionID string) {
			w.logger.Info("Results archived", "session_id", sessionID)
		},
		OnOperationFailed: func(operation string, err error) {
			w.logger.Warn("Operation failed", "operation", operation, "error", err)
			fyne.Do(func() {
				dialog.ShowError(err, w.window)
			})
		},
	})
}

// showPhase replaces the window content with the view for phase, rendered
// from the coordinator's current state.
func (w *MainWindow) showPhase(phase state.Phase) {
	w.setup, w.evaluation, w.results = nil, nil, nil

	var content fyne.CanvasObject
	switch phase {
	case state.PhaseSetup:
		var onHistory func()
		if w.bridge.ArchiveEnabled() {
			onHistory = w.showHistory
		}
		w.setup = NewSetupView(&SetupViewConfig{
			Window:        w.window,
			Bridge:        w.bridge,
			Logger:        w.logger,
			OnShowHistory: onHistory,
		})
		w.setup.Render(w.bridge.Snapshot())
		content = w.setup.Content()

	case state.PhaseEvaluating:
		snapshot := w.bridge.Snapshot()
		w.evaluation = NewEvaluationView(&EvaluationViewConfig{
			Bridge: w.bridge,
			Logger: w.logger,
		}, snapshot.Criteria)
		w.evaluation.Render(snapshot)
		content = w.evaluation.Content()

	case state.PhaseResults:
		res, _ := w.bridge.Results()
		w.results = NewResultsView(&ResultsViewConfig{
			Window:       w.window,
			Bridge:       w.bridge,
			Logger:       w.logger,
			ExportDir:    w.exportDir,
			ExportFormat: w.exportFormat,
		}, res)
		content = w.results.Content()

	default:
		w.logger.Error("No view for phase", "phase", phase)
		return
	}

	w.stack.Objects = []fyne.CanvasObject{content}
	w.stack.Refresh()
}

func (w *MainWindow) showHistory() {
	ShowHistoryDialog(&HistoryDialogConfig{
		App:    w.app,
		Bridge: w.bridge,
		Logger: w.logger,
	})
}

// Show displays the window.
func (w *MainWindow) Show() {
	w.window.Show()
}

// Cleanup releases resources. Safe to call more than once.
func (w *MainWindow) Cleanup() {
	w.cleanupOnce.Do(func() {
		w.logger.Info("Cleaning up main window")
		if w.bridge != nil {
			w.bridge.Close()
		}
	})
}
