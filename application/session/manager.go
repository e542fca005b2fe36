// Package session implements the rating session manager.
//
// The Manager is the single source of truth for a rating flow: criteria, the
// loaded images, the current position and every score. It is not safe for
// concurrent use; callers serialize access (see application.Coordinator).
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"

	"photorank/core/state"
	"photorank/domain/criteria"
	"photorank/domain/gallery"
	"photorank/domain/ranking"
	"photorank/domain/rating"
)

// Common errors for session operations.
var (
	ErrEmptyCriteriaOrImages = errors.New("at least one criterion and one image are required")
	ErrNotEvaluating         = errors.New("no evaluation in progress")
	ErrSetupLocked           = errors.New("criteria and folder cannot change during evaluation")
)

// Step is the outcome of Advance.
type Step int

const (
	// HasNext means the index moved to the next image.
	HasNext Step = iota
	// SessionComplete means the current image was the last one; the index is unchanged.
	SessionComplete
)

// String returns the string representation of the step.
func (s Step) String() string {
	switch s {
	case HasNext:
		return "HasNext"
	case SessionComplete:
		return "SessionComplete"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// Manager holds the state of one rating flow.
type Manager struct {
	phase    state.Phase
	criteria *criteria.List
	folder   string
	images   []string
	index    int
	sheet    *rating.Sheet
	results  ranking.Results

	source gallery.Source
	rng    rating.Rand
	logger *slog.Logger
}

// Config holds configuration for creating a new Manager.
type Config struct {
	// Source lists folder images. Required for LoadFolder.
	Source gallery.Source
	// Rand draws random scores. Defaults to an unseeded math/rand/v2 source.
	Rand   rating.Rand
	Logger *slog.Logger
}

// NewManager creates a manager in the Setup phase.
func NewManager(cfg *Config) *Manager {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return &Manager{
		phase:    state.PhaseSetup,
		criteria: criteria.NewList(),
		sheet:    rating.NewSheet(),
		source:   cfg.Source,
		rng:      cfg.Rand,
		logger:   cfg.Logger,
	}
}

// Phase returns the current phase.
func (m *Manager) Phase() state.Phase {
	return m.phase
}

// Setup operations

// AddCriterion trims, normalizes and appends a criterion label.
// Empty and duplicate labels leave the list unchanged and return
// criteria.ErrEmptyCriterion or criteria.ErrDuplicateCriterion.
func (m *Manager) AddCriterion(label string) (string, error) {
	if !m.phase.CanEditSetup() {
		return "", ErrSetupLocked
	}
	added, err := m.criteria.Add(label)
	if err != nil {
		return added, err
	}
	m.logger.Debug("Criterion added", "criterion", added, "count", m.criteria.Len())
	return added, nil
}

// RemoveCriterion removes the first matching criterion.
// Ratings already recorded are not touched.
func (m *Manager) RemoveCriterion(label string) bool {
	if !m.phase.CanEditSetup() {
		return false
	}
	removed := m.criteria.Remove(label)
	if removed {
		m.logger.Debug("Criterion removed", "criterion", label, "count", m.criteria.Len())
	}
	return removed
}

// Criteria returns the criteria in display order.
func (m *Manager) Criteria() []string {
	return m.criteria.Labels()
}

// LoadFolder replaces the image sequence with the folder's images.
// On failure the folder and images are cleared, so the session cannot start
// until a load succeeds.
func (m *Manager) LoadFolder(path string) ([]string, error) {
	if !m.phase.CanEditSetup() {
		return nil, ErrSetupLocked
	}
	if m.source == nil {
		return nil, fmt.Errorf("%w: no image source configured", gallery.ErrFolderUnavailable)
	}

	imgs, err := m.source.ListImages(path)
	if err != nil {
		m.logger.Warn("Folder unavailable", "folder", path, "error", err)
		m.folder = ""
		m.images = nil
		return nil, err
	}

	m.folder = path
	m.images = imgs
	m.logger.Info("Folder loaded", "folder", path, "images", len(imgs))
	return slices.Clone(imgs), nil
}

// Folder returns the loaded folder path, or "" if none.
func (m *Manager) Folder() string {
	return m.folder
}

// Images returns the image sequence.
func (m *Manager) Images() []string {
	return slices.Clone(m.images)
}

// CanStart returns true if evaluation can begin.
func (m *Manager) CanStart() bool {
	return m.phase.CanEditSetup() && !m.criteria.IsEmpty() && len(m.images) > 0
}

// StartEvaluation sets the index to 0 and rates every image × criterion pair 5.
func (m *Manager) StartEvaluation() error {
	if !m.phase.CanTransitionTo(state.PhaseEvaluating) {
		return state.NewTransitionError(m.phase, state.PhaseEvaluating, "")
	}
	if m.criteria.IsEmpty() || len(m.images) == 0 {
		return ErrEmptyCriteriaOrImages
	}

	m.index = 0
	m.sheet.Init(m.images, m.criteria.Labels())
	m.results = ranking.Results{}
	m.phase = state.PhaseEvaluating

	m.logger.Info("Evaluation started", "images", len(m.images), "criteria", m.criteria.Len())
	return nil
}

// Evaluation operations

// SetRating clamps value to [1, 10] and stores it for the pair.
// Returns the stored value.
func (m *Manager) SetRating(image, criterion string, value int) (int, error) {
	if !m.phase.CanRate() {
		return 0, ErrNotEvaluating
	}
	return m.sheet.Set(image, criterion, value)
}

// SetCurrentRating sets a rating for the image at the current index.
func (m *Manager) SetCurrentRating(criterion string, value int) (int, error) {
	if !m.phase.CanRate() {
		return 0, ErrNotEvaluating
	}
	return m.sheet.Set(m.images[m.index], criterion, value)
}

// Rating returns a stored rating.
func (m *Manager) Rating(image, criterion string) (int, bool) {
	return m.sheet.Get(image, criterion)
}

// RandomizeCurrentImage draws a new uniform score for every criterion of the
// current image. Returns the drawn scores in criterion order.
func (m *Manager) RandomizeCurrentImage() ([]int, error) {
	if !m.phase.CanRate() {
		return nil, ErrNotEvaluating
	}
	return m.sheet.Randomize(m.images[m.index], m.criteria.Labels(), m.rng)
}

// Advance moves to the next image. At the last image it leaves the index
// unchanged and returns SessionComplete.
func (m *Manager) Advance() (Step, error) {
	if !m.phase.CanRate() {
		return 0, ErrNotEvaluating
	}
	if m.index+1 < len(m.images) {
		m.index++
		return HasNext, nil
	}
	return SessionComplete, nil
}

// Retreat moves to the previous image. Returns false at index 0.
func (m *Manager) Retreat() bool {
	if !m.phase.CanRate() || m.index == 0 {
		return false
	}
	m.index--
	return true
}

// Index returns the current image index.
func (m *Manager) Index() int {
	return m.index
}

// CurrentImage returns the image at the current index, or "" outside evaluation.
func (m *Manager) CurrentImage() string {
	if !m.phase.CanRate() || len(m.images) == 0 {
		return ""
	}
	return m.images[m.index]
}

// Progress returns index / image count, or 0 with no images.
func (m *Manager) Progress() float64 {
	if len(m.images) == 0 {
		return 0
	}
	return float64(m.index) / float64(len(m.images))
}

// Results operations

// ComputeRankings sums every image's ratings over the current criteria and
// returns the stable descending ordering.
func (m *Manager) ComputeRankings() ranking.Results {
	return ranking.Compute(m.images, m.criteria.Labels(), m.sheet)
}

// Finish computes rankings and enters the Results phase.
func (m *Manager) Finish() (ranking.Results, error) {
	if !m.phase.CanTransitionTo(state.PhaseResults) {
		return ranking.Results{}, state.NewTransitionError(m.phase, state.PhaseResults, "")
	}

	m.results = m.ComputeRankings()
	m.phase = state.PhaseResults

	if winner, ok := m.results.Winner(); ok {
		m.logger.Info("Evaluation finished", "images", m.results.Len(), "winner", winner.Name(), "score", winner.Score)
	}
	return m.results, nil
}

// Results returns the rankings computed by Finish.
func (m *Manager) Results() (ranking.Results, bool) {
	return m.results, m.phase.HasResults()
}

// Reset discards all state and returns to Setup.
func (m *Manager) Reset() {
	m.phase = state.PhaseSetup
	m.criteria.Clear()
	m.folder = ""
	m.images = nil
	m.index = 0
	m.sheet.Reset()
	m.results = ranking.Results{}
	m.logger.Debug("Session reset")
}
