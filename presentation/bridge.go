// Package presentation provides the UI layer with event bridging to the application layer.
package presentation

import (
	"context"
	"log/slog"
	"sync"

	"photorank/application"
	"photorank/application/session"
	"photorank/core/command"
	"photorank/core/event"
	"photorank/core/eventbus"
	"photorank/core/state"
	"photorank/domain/archive"
	"photorank/domain/ranking"
)

// UIEventBridge bridges UI events to the application layer and routes events back to UI.
// Callbacks run on the event bus goroutine; UI code wraps widget updates in fyne.Do.
type UIEventBridge struct {
	coordinator *application.Coordinator
	eventBus    eventbus.EventBus
	logger      *slog.Logger

	// UI callbacks - set by UI components
	callbacks   *UICallbacks
	callbacksMu sync.RWMutex

	subscriptionID string
}

// UICallbacks contains callbacks for UI updates.
type UICallbacks struct {
	OnPhaseChanged func(oldPhase, newPhase state.Phase)

	// Setup
	OnCriteriaChanged   func(criteria []string, canStart bool)
	OnFolderLoaded      func(path string, images []string, canStart bool)
	OnFolderUnavailable func(path string, err error)

	// Evaluation
	OnImageChanged  func(evt event.ImageChanged)
	OnRatingChanged func(image, criterion string, value int)

	// Results
	OnSessionCompleted func(sessionID string, results ranking.Results)
	OnResultsExported  func(path, format string)
	OnResultsArchived  func(sessionID string)

	OnOperationFailed func(operation string, err error)
}

// BridgeConfig holds configuration for UIEventBridge.
type BridgeConfig struct {
	Coordinator *application.Coordinator
	EventBus    eventbus.EventBus
	Logger      *slog.Logger
}

// NewUIEventBridge creates a new UI event bridge.
func NewUIEventBridge(cfg *BridgeConfig) *UIEventBridge {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	b := &UIEventBridge{
		coordinator: cfg.Coordinator,
		eventBus:    cfg.EventBus,
		logger:      cfg.Logger,
		callbacks:   &UICallbacks{},
	}

	if b.eventBus != nil {
		b.subscriptionID = b.eventBus.Subscribe(b.handleEvent)
	}

	return b
}

// SetCallbacks sets the UI callbacks.
func (b *UIEventBridge) SetCallbacks(callbacks *UICallbacks) {
	b.callbacksMu.Lock()
	defer b.callbacksMu.Unlock()
	b.callbacks = callbacks
}

// Close unsubscribes from the event bus.
func (b *UIEventBridge) Close() {
	if b.eventBus != nil && b.subscriptionID != "" {
		b.eventBus.Unsubscribe(b.subscriptionID)
	}
}

// Command dispatching methods

// AddCriterion appends a criterion label.
func (b *UIEventBridge) AddCriterion(label string) error {
	return b.coordinator.Dispatch(&command.AddCriterion{Label: label})
}

// RemoveCriterion removes a criterion label.
func (b *UIEventBridge) RemoveCriterion(label string) error {
	return b.coordinator.Dispatch(&command.RemoveCriterion{Label: label})
}

// LoadFolder loads a folder's images.
func (b *UIEventBridge) LoadFolder(path string) error {
	return b.coordinator.Dispatch(&command.LoadFolder{Path: path})
}

// StartEvaluation begins rating.
func (b *UIEventBridge) StartEvaluation() error {
	return b.coordinator.Dispatch(&command.StartEvaluation{})
}

// ResetSession discards the session and returns to setup.
func (b *UIEventBridge) ResetSession() error {
	return b.coordinator.Dispatch(&command.ResetSession{})
}

// SetRating sets the current image's score for a criterion.
func (b *UIEventBridge) SetRating(criterion string, value int) error {
	return b.coordinator.Dispatch(&command.SetRating{Criterion: criterion, Value: value})
}

// RandomizeRatings draws random scores for the current image.
func (b *UIEventBridge) RandomizeRatings() error {
	return b.coordinator.Dispatch(&command.RandomizeRatings{})
}

// NextImage advances, finishing the session after the last image.
func (b *UIEventBridge) NextImage() error {
	return b.coordinator.Dispatch(&command.NextImage{})
}

// PreviousImage steps back one image.
func (b *UIEventBridge) PreviousImage() error {
	return b.coordinator.Dispatch(&command.PreviousImage{})
}

// FinishEvaluation ends rating and computes results.
func (b *UIEventBridge) FinishEvaluation() error {
	return b.coordinator.Dispatch(&command.FinishEvaluation{})
}

// OpenImage opens an image with the system viewer.
func (b *UIEventBridge) OpenImage(path string) error {
	return b.coordinator.Dispatch(&command.OpenImage{Path: path})
}

// ExportResults writes results to path.
func (b *UIEventBridge) ExportResults(path string) error {
	return b.coordinator.Dispatch(&command.ExportResults{Path: path})
}

// Query methods

// Snapshot returns the current session state.
func (b *UIEventBridge) Snapshot() session.View {
	return b.coordinator.Snapshot()
}

// Results returns the completed session's rankings.
func (b *UIEventBridge) Results() (ranking.Results, bool) {
	return b.coordinator.Results()
}

// ArchiveEnabled reports whether the history dialog has anything to show.
func (b *UIEventBridge) ArchiveEnabled() bool {
	return b.coordinator.ArchiveEnabled()
}

// RecentSessions lists archived sessions, newest first.
func (b *UIEventBridge) RecentSessions(ctx context.Context, limit int) ([]*archive.Record, error) {
	return b.coordinator.RecentSessions(ctx, limit)
}

// DeleteArchived removes an archived session.
func (b *UIEventBridge) DeleteArchived(ctx context.Context, id string) error {
	return b.coordinator.DeleteSession(ctx, id)
}

// Event handling

func (b *UIEventBridge) handleEvent(e event.Event) {
	b.callbacksMu.RLock()
	callbacks := b.callbacks
	b.callbacksMu.RUnlock()

	if callbacks == nil {
		return
	}

	switch evt := e.(type) {
	case *event.PhaseChanged:
		if callbacks.OnPhaseChanged != nil {
			callbacks.OnPhaseChanged(evt.OldPhase, evt.NewPhase)
		}

	case *event.CriteriaChanged:
		if callbacks.OnCriteriaChanged != nil {
			callbacks.OnCriteriaChanged(evt.Criteria, evt.CanStart)
		}

	case *event.FolderLoaded:
		if callbacks.OnFolderLoaded != nil {
			callbacks.OnFolderLoaded(evt.Path, evt.Images, evt.CanStart)
		}

	case *event.FolderUnavailable:
		if callbacks.OnFolderUnavailable != nil {
			callbacks.OnFolderUnavailable(evt.Path, evt.Error)
		}

	case *event.ImageChanged:
		if callbacks.OnImageChanged != nil {
			callbacks.OnImageChanged(*evt)
		}

	case *event.RatingChanged:
		if callbacks.OnRatingChanged != nil {
			callbacks.OnRatingChanged(evt.Image, evt.Criterion, evt.Value)
		}

	case *event.SessionCompleted:
		if callbacks.OnSessionCompleted != nil {
			callbacks.OnSessionCompleted(evt.SessionID, evt.Results)
		}

	case *event.ResultsExported:
		if callbacks.OnResultsExported != nil {
			callbacks.OnResultsExported(evt.Path, evt.Format)
		}

	case *event.ResultsArchived:
		if callbacks.OnResultsArchived != nil {
			callbacks.OnResultsArchived(evt.SessionID)
		}

	case *event.OperationFailed:
		if callbacks.OnOperationFailed != nil {
			callbacks.OnOperationFailed(evt.Operation, evt.Error)
		}
	}
}
