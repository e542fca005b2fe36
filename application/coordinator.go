// Package application provides the application layer for orchestrating a rating session.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"photorank/application/session"
	"photorank/core/command"
	"photorank/core/event"
	"photorank/core/eventbus"
	"photorank/core/state"
	"photorank/domain/archive"
	"photorank/domain/gallery"
	"photorank/domain/ranking"
	"photorank/infrastructure/export"
)

// Common errors for coordinator operations.
var (
	ErrNoResults     = errors.New("no results to export")
	ErrNoOpener      = errors.New("opening images is not supported")
	ErrArchiveOff    = errors.New("session archive is not configured")
	ErrEmptyPath     = errors.New("path is required")
	errUnknownAction = errors.New("unknown command type")
)

// URLOpener opens a URL with the operating system's default handler.
// fyne.App satisfies it.
type URLOpener interface {
	OpenURL(u *url.URL) error
}

// Coordinator applies commands to the session manager and publishes the
// resulting events. Commands are serialized; the manager is never touched
// from more than one goroutine at a time.
type Coordinator struct {
	mu          sync.Mutex
	manager     *session.Manager
	sessionID   string
	completedAt time.Time

	// Dependencies
	eventBus       eventbus.EventBus
	archive        *archive.Service
	archiveTimeout time.Duration
	opener         URLOpener
	now            func() time.Time
	logger         *slog.Logger

	// Lifecycle
	ctx      context.Context
	cancel   context.CancelFunc
	archiveW sync.WaitGroup
}

// CoordinatorConfig holds configuration for the Coordinator.
type CoordinatorConfig struct {
	Manager  *session.Manager
	EventBus eventbus.EventBus
	// Archive stores completed sessions. Optional.
	Archive *archive.Service
	// ArchiveTimeout bounds a single archive write. Defaults to 10s.
	ArchiveTimeout time.Duration
	// Opener opens images from the results screen. Optional.
	Opener URLOpener
	Logger *slog.Logger
}

// NewCoordinator creates a new session coordinator.
func NewCoordinator(cfg *CoordinatorConfig) *Coordinator {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Manager == nil {
		cfg.Manager = session.NewManager(&session.Config{Logger: cfg.Logger})
	}
	if cfg.ArchiveTimeout <= 0 {
		cfg.ArchiveTimeout = 10 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Coordinator{
		manager:        cfg.Manager,
		eventBus:       cfg.EventBus,
		archive:        cfg.Archive,
		archiveTimeout: cfg.ArchiveTimeout,
		opener:         cfg.Opener,
		now:            time.Now,
		logger:         cfg.Logger,
		ctx:            ctx,
		cancel:         cancel,
	}
}

// Start begins the coordinator.
func (c *Coordinator) Start() {
	c.logger.Info("Coordinator started")
}

// Stop waits for pending archive writes, then cancels any still running.
func (c *Coordinator) Stop() {
	done := make(chan struct{})
	go func() {
		c.archiveW.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(c.archiveTimeout):
		c.logger.Warn("Coordinator stop timeout, archive write abandoned")
	}

	c.cancel()
	c.logger.Info("Coordinator stopped")
}

// Dispatch applies a command. Failures are returned and also published as
// OperationFailed, except folder errors which have their own event.
func (c *Coordinator) Dispatch(cmd command.Command) error {
	c.logger.Debug("Dispatching command", "command", cmd.CommandName())

	c.mu.Lock()
	err := c.dispatch(cmd)
	c.mu.Unlock()

	if err != nil && !errors.Is(err, gallery.ErrFolderUnavailable) {
		c.logger.Warn("Command failed", "command", cmd.CommandName(), "error", err)
		c.publish(event.NewOperationFailed(cmd.CommandName(), err))
	}
	return err
}

func (c *Coordinator) dispatch(cmd command.Command) error {
	switch cmd := cmd.(type) {
	// Setup
	case *command.AddCriterion:
		return c.handleAddCriterion(cmd)
	case *command.RemoveCriterion:
		return c.handleRemoveCriterion(cmd)
	case *command.LoadFolder:
		return c.handleLoadFolder(cmd)
	case *command.StartEvaluation:
		return c.handleStartEvaluation()
	case *command.ResetSession:
		return c.handleReset()

	// Evaluation
	case *command.SetRating:
		return c.handleSetRating(cmd)
	case *command.RandomizeRatings:
		return c.handleRandomize()
	case *command.NextImage:
		return c.handleNextImage()
	case *command.PreviousImage:
		return c.handlePreviousImage()
	case *command.FinishEvaluation:
		return c.finish()

	// Results
	case *command.OpenImage:
		return c.handleOpenImage(cmd)
	case *command.ExportResults:
		return c.handleExport(cmd)

	default:
		return fmt.Errorf("%w: %T", errUnknownAction, cmd)
	}
}

// Query methods

// Snapshot returns the manager's current state.
func (c *Coordinator) Snapshot() session.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.manager.Snapshot()
}

// Results returns the completed session's rankings.
func (c *Coordinator) Results() (ranking.Results, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.manager.Results()
}

// SessionID returns the ID assigned at completion, or "" before that.
func (c *Coordinator) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// ArchiveEnabled reports whether completed sessions are archived.
func (c *Coordinator) ArchiveEnabled() bool {
	return c.archive != nil
}

// RecentSessions lists archived sessions, newest first.
func (c *Coordinator) RecentSessions(ctx context.Context, limit int) ([]*archive.Record, error) {
	if c.archive == nil {
		return nil, ErrArchiveOff
	}
	return c.archive.ListRecent(ctx, limit)
}

// DeleteSession removes an archived session.
func (c *Coordinator) DeleteSession(ctx context.Context, id string) error {
	if c.archive == nil {
		return ErrArchiveOff
	}
	if err := c.archive.Delete(ctx, id); err != nil {
		return err
	}
	c.logger.Info("Archived session deleted", "session_id", id)
	return nil
}

// Command handlers

func (c *Coordinator) handleAddCriterion(cmd *command.AddCriterion) error {
	if _, err := c.manager.AddCriterion(cmd.Label); err != nil {
		return err
	}
	c.publish(event.NewCriteriaChanged(c.manager.Criteria(), c.manager.CanStart()))
	return nil
}

func (c *Coordinator) handleRemoveCriterion(cmd *command.RemoveCriterion) error {
	if c.manager.RemoveCriterion(cmd.Label) {
		c.publish(event.NewCriteriaChanged(c.manager.Criteria(), c.manager.CanStart()))
	}
	return nil
}

func (c *Coordinator) handleLoadFolder(cmd *command.LoadFolder) error {
	images, err := c.manager.LoadFolder(cmd.Path)
	if err != nil {
		if errors.Is(err, gallery.ErrFolderUnavailable) {
			c.publish(event.NewFolderUnavailable(cmd.Path, err))
		}
		return err
	}
	c.publish(event.NewFolderLoaded(c.manager.Folder(), images, c.manager.CanStart()))
	return nil
}

func (c *Coordinator) handleStartEvaluation() error {
	old := c.manager.Phase()
	if err := c.manager.StartEvaluation(); err != nil {
		return err
	}
	c.sessionID = ""
	c.publish(event.NewPhaseChanged(old, state.PhaseEvaluating))
	c.publishImageChanged()
	return nil
}

// handleReset always publishes PhaseChanged so setup views re-render, even
// when the session was already in Setup.
func (c *Coordinator) handleReset() error {
	old := c.manager.Phase()
	c.manager.Reset()
	c.sessionID = ""
	c.completedAt = time.Time{}
	c.publish(event.NewPhaseChanged(old, state.PhaseSetup))
	return nil
}

func (c *Coordinator) handleSetRating(cmd *command.SetRating) error {
	stored, err := c.manager.SetCurrentRating(cmd.Criterion, cmd.Value)
	if err != nil {
		return err
	}
	c.publish(event.NewRatingChanged(c.manager.CurrentImage(), cmd.Criterion, stored))
	return nil
}

func (c *Coordinator) handleRandomize() error {
	if _, err := c.manager.RandomizeCurrentImage(); err != nil {
		return err
	}
	c.publishImageChanged()
	return nil
}

func (c *Coordinator) handleNextImage() error {
	step, err := c.manager.Advance()
	if err != nil {
		return err
	}
	if step == session.SessionComplete {
		return c.finish()
	}
	c.publishImageChanged()
	return nil
}

func (c *Coordinator) handlePreviousImage() error {
	if c.manager.Retreat() {
		c.publishImageChanged()
	}
	return nil
}

func (c *Coordinator) finish() error {
	old := c.manager.Phase()
	res, err := c.manager.Finish()
	if err != nil {
		return err
	}

	c.sessionID = uuid.NewString()
	c.completedAt = c.now().UTC()
	folder := c.manager.Folder()

	c.logger.Info("Session completed", "session_id", c.sessionID, "images", res.Len())
	c.publish(event.NewPhaseChanged(old, state.PhaseResults))
	c.publish(event.NewSessionCompleted(c.sessionID, folder, res))

	if c.archive != nil {
		c.archiveW.Add(1)
		go c.archiveResults(c.sessionID, folder, res, c.completedAt)
	}
	return nil
}

// archiveResults saves results in the background and reports the outcome as an event.
func (c *Coordinator) archiveResults(id, folder string, res ranking.Results, completedAt time.Time) {
	defer c.archiveW.Done()

	ctx, cancel := context.WithTimeout(c.ctx, c.archiveTimeout)
	defer cancel()

	if _, err := c.archive.Save(ctx, id, folder, res, completedAt); err != nil {
		c.logger.Warn("Failed to archive results", "session_id", id, "error", err)
		c.publish(event.NewOperationFailed("ArchiveResults", err))
		return
	}
	c.publish(event.NewResultsArchived(id))
}

func (c *Coordinator) handleOpenImage(cmd *command.OpenImage) error {
	if c.opener == nil {
		return ErrNoOpener
	}
	u, err := FileURL(cmd.Path)
	if err != nil {
		return err
	}
	if err := c.opener.OpenURL(u); err != nil {
		return fmt.Errorf("failed to open %s: %w", cmd.Path, err)
	}
	c.logger.Debug("Opened image", "path", cmd.Path)
	return nil
}

func (c *Coordinator) handleExport(cmd *command.ExportResults) error {
	if cmd.Path == "" {
		return ErrEmptyPath
	}
	res, ok := c.manager.Results()
	if !ok {
		return ErrNoResults
	}

	report := export.NewReport(c.sessionID, c.manager.Folder(), res, c.completedAt)
	format, err := export.WriteFile(cmd.Path, report, c.logger)
	if err != nil {
		return err
	}
	c.publish(event.NewResultsExported(cmd.Path, format))
	return nil
}

// FileURL converts a local path to an absolute file:// URL.
func FileURL(path string) (*url.URL, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return &url.URL{Scheme: "file", Path: p}, nil
}

func (c *Coordinator) publishImageChanged() {
	v := c.manager.Snapshot()
	c.publish(&event.ImageChanged{
		Index:      v.Index,
		ImageCount: v.ImageCount,
		Image:      v.CurrentImage,
		Scores:     v.Scores,
		Progress:   v.Progress,
		CanRetreat: v.CanRetreat,
	})
}

func (c *Coordinator) publish(e event.Event) {
	if c.eventBus != nil {
		c.eventBus.Publish(e)
	}
}
