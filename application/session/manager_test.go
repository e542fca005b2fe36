package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photorank/core/state"
	"photorank/domain/criteria"
	"photorank/domain/gallery"
)

// stubSource returns a fixed listing per folder.
type stubSource struct {
	folders map[string][]string
}

func (s *stubSource) ListImages(dir string) ([]string, error) {
	imgs, ok := s.folders[dir]
	if !ok {
		return nil, fmt.Errorf("%w: %s", gallery.ErrFolderUnavailable, dir)
	}
	return imgs, nil
}

// seqRand returns values from a fixed sequence, cycling.
type seqRand struct {
	values []int
	next   int
}

func (r *seqRand) IntN(n int) int {
	v := r.values[r.next%len(r.values)] % n
	r.next++
	return v
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(&Config{
		Source: &stubSource{folders: map[string][]string{
			"/photos": {"/photos/A.png", "/photos/B.jpg", "/photos/C.jpeg"},
			"/empty":  {},
		}},
		Rand:   &seqRand{values: []int{6, 1, 8}},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func startedManager(t *testing.T, labels ...string) *Manager {
	t.Helper()
	m := newTestManager(t)
	for _, l := range labels {
		_, err := m.AddCriterion(l)
		require.NoError(t, err)
	}
	_, err := m.LoadFolder("/photos")
	require.NoError(t, err)
	require.NoError(t, m.StartEvaluation())
	return m
}

func TestManager_AddCriterion(t *testing.T) {
	m := newTestManager(t)

	added, err := m.AddCriterion("  Sharpness  ")
	require.NoError(t, err)
	assert.Equal(t, "Sharpness", added)

	_, err = m.AddCriterion("")
	assert.ErrorIs(t, err, criteria.ErrEmptyCriterion)

	_, err = m.AddCriterion("Sharpness")
	assert.ErrorIs(t, err, criteria.ErrDuplicateCriterion)

	assert.Equal(t, []string{"Sharpness"}, m.Criteria())
}

func TestManager_AddRemoveRestores(t *testing.T) {
	m := newTestManager(t)
	for _, l := range []string{"A", "B", "C"} {
		_, err := m.AddCriterion(l)
		require.NoError(t, err)
	}
	before := m.Criteria()

	_, err := m.AddCriterion("D")
	require.NoError(t, err)
	require.True(t, m.RemoveCriterion("D"))

	assert.Equal(t, before, m.Criteria())
	assert.False(t, m.RemoveCriterion("missing"))
}

func TestManager_LoadFolder(t *testing.T) {
	m := newTestManager(t)

	imgs, err := m.LoadFolder("/photos")
	require.NoError(t, err)
	assert.Len(t, imgs, 3)
	assert.Equal(t, "/photos", m.Folder())

	_, err = m.LoadFolder("/nope")
	assert.ErrorIs(t, err, gallery.ErrFolderUnavailable)
	assert.Equal(t, "", m.Folder(), "failed load clears the folder")
	assert.Empty(t, m.Images())
}

func TestManager_FailedLoadBlocksStart(t *testing.T) {
	m := newTestManager(t)
	_, err := m.AddCriterion("A")
	require.NoError(t, err)
	_, err = m.LoadFolder("/photos")
	require.NoError(t, err)
	require.True(t, m.CanStart())

	_, err = m.LoadFolder("/nope")
	require.ErrorIs(t, err, gallery.ErrFolderUnavailable)
	assert.False(t, m.CanStart())
	assert.ErrorIs(t, m.StartEvaluation(), ErrEmptyCriteriaOrImages)

	_, err = m.LoadFolder("/photos")
	require.NoError(t, err)
	assert.True(t, m.CanStart())
}

func TestManager_LoadFolderWithoutSource(t *testing.T) {
	m := NewManager(nil)

	_, err := m.LoadFolder("/photos")
	assert.ErrorIs(t, err, gallery.ErrFolderUnavailable)
}

func TestManager_CanStart(t *testing.T) {
	m := newTestManager(t)
	assert.False(t, m.CanStart())
	assert.ErrorIs(t, m.StartEvaluation(), ErrEmptyCriteriaOrImages)

	_, _ = m.AddCriterion("A")
	assert.False(t, m.CanStart())

	_, err := m.LoadFolder("/empty")
	require.NoError(t, err)
	assert.False(t, m.CanStart())
	assert.ErrorIs(t, m.StartEvaluation(), ErrEmptyCriteriaOrImages)

	_, err = m.LoadFolder("/photos")
	require.NoError(t, err)
	assert.True(t, m.CanStart())
}

func TestManager_StartEvaluationInitializesDefaults(t *testing.T) {
	m := startedManager(t, "Sharpness", "Composition")

	assert.Equal(t, state.PhaseEvaluating, m.Phase())
	assert.Equal(t, 0, m.Index())
	for _, img := range m.Images() {
		for _, c := range m.Criteria() {
			v, ok := m.Rating(img, c)
			require.True(t, ok)
			assert.Equal(t, 5, v, "%s/%s", img, c)
		}
	}
}

func TestManager_SetupLockedDuringEvaluation(t *testing.T) {
	m := startedManager(t, "A")

	_, err := m.AddCriterion("B")
	assert.ErrorIs(t, err, ErrSetupLocked)
	assert.False(t, m.RemoveCriterion("A"))
	_, err = m.LoadFolder("/photos")
	assert.ErrorIs(t, err, ErrSetupLocked)

	var te *state.TransitionError
	assert.True(t, errors.As(m.StartEvaluation(), &te))
}

func TestManager_SetRatingClamps(t *testing.T) {
	m := startedManager(t, "A")

	stored, err := m.SetRating("/photos/B.jpg", "A", 42)
	require.NoError(t, err)
	assert.Equal(t, 10, stored)

	stored, err = m.SetCurrentRating("A", -1)
	require.NoError(t, err)
	assert.Equal(t, 1, stored)

	v, _ := m.Rating("/photos/A.png", "A")
	assert.Equal(t, 1, v)
}

func TestManager_RatingOutsideEvaluation(t *testing.T) {
	m := newTestManager(t)

	_, err := m.SetRating("/photos/A.png", "A", 3)
	assert.ErrorIs(t, err, ErrNotEvaluating)
	_, err = m.SetCurrentRating("A", 3)
	assert.ErrorIs(t, err, ErrNotEvaluating)
	_, err = m.RandomizeCurrentImage()
	assert.ErrorIs(t, err, ErrNotEvaluating)
	_, err = m.Advance()
	assert.ErrorIs(t, err, ErrNotEvaluating)
	assert.False(t, m.Retreat())
	assert.Equal(t, "", m.CurrentImage())
}

func TestManager_RandomizeOnlyCurrent(t *testing.T) {
	m := startedManager(t, "A", "B", "C")
	step, err := m.Advance()
	require.NoError(t, err)
	require.Equal(t, HasNext, step)

	drawn, err := m.RandomizeCurrentImage()
	require.NoError(t, err)
	assert.Equal(t, []int{7, 2, 9}, drawn)

	view := m.Snapshot()
	assert.Equal(t, drawn, view.Scores)
	for _, img := range []string{"/photos/A.png", "/photos/C.jpeg"} {
		for _, c := range m.Criteria() {
			v, _ := m.Rating(img, c)
			assert.Equal(t, 5, v)
		}
	}
}

func TestManager_AdvanceAndRetreat(t *testing.T) {
	m := startedManager(t, "A")

	assert.False(t, m.Retreat(), "retreat at index 0 is a no-op")
	assert.Equal(t, 0, m.Index())

	step, err := m.Advance()
	require.NoError(t, err)
	assert.Equal(t, HasNext, step)
	step, err = m.Advance()
	require.NoError(t, err)
	assert.Equal(t, HasNext, step)
	assert.Equal(t, 2, m.Index())

	step, err = m.Advance()
	require.NoError(t, err)
	assert.Equal(t, SessionComplete, step)
	assert.Equal(t, 2, m.Index(), "advance at last index leaves index unchanged")

	assert.True(t, m.Retreat())
	assert.Equal(t, 1, m.Index())
	assert.Equal(t, "/photos/B.jpg", m.CurrentImage())
}

func TestManager_Progress(t *testing.T) {
	m := newTestManager(t)
	assert.Equal(t, 0.0, m.Progress())

	m = startedManager(t, "A")
	_, _ = m.Advance()
	assert.InDelta(t, 1.0/3.0, m.Progress(), 1e-9)
}

func TestManager_FinishRanks(t *testing.T) {
	m := startedManager(t, "Sharpness", "Composition")
	set := func(img string, a, b int) {
		_, err := m.SetRating(img, "Sharpness", a)
		require.NoError(t, err)
		_, err = m.SetRating(img, "Composition", b)
		require.NoError(t, err)
	}
	set("/photos/A.png", 8, 8)
	set("/photos/B.jpg", 5, 5)
	set("/photos/C.jpeg", 9, 9)

	res, err := m.Finish()
	require.NoError(t, err)
	assert.Equal(t, state.PhaseResults, m.Phase())

	var order []string
	for _, e := range res.Winners() {
		order = append(order, e.Image)
	}
	assert.Equal(t, []string{"/photos/C.jpeg", "/photos/A.png", "/photos/B.jpg"}, order)

	stored, ok := m.Results()
	require.True(t, ok)
	assert.Equal(t, res, stored)

	_, err = m.Finish()
	var te *state.TransitionError
	assert.True(t, errors.As(err, &te))
}

func TestManager_ComputeRankingsIsRepeatable(t *testing.T) {
	m := startedManager(t, "X", "Y")
	_, _ = m.SetRating("/photos/A.png", "X", 6)
	_, _ = m.SetRating("/photos/A.png", "Y", 4)
	_, _ = m.SetRating("/photos/B.jpg", "X", 7)
	_, _ = m.SetRating("/photos/B.jpg", "Y", 3)

	first := m.ComputeRankings()
	second := m.ComputeRankings()

	assert.Equal(t, first, second)
	assert.Equal(t, "/photos/A.png", first.Entries[0].Image)
	assert.Equal(t, "/photos/B.jpg", first.Entries[1].Image)
	assert.Equal(t, "/photos/C.jpeg", first.Entries[2].Image)
}

func TestManager_Reset(t *testing.T) {
	m := startedManager(t, "A")
	_, err := m.Finish()
	require.NoError(t, err)

	m.Reset()

	assert.Equal(t, state.PhaseSetup, m.Phase())
	assert.Empty(t, m.Criteria())
	assert.Empty(t, m.Images())
	assert.Equal(t, "", m.Folder())
	_, ok := m.Results()
	assert.False(t, ok)
	_, ok = m.Rating("/photos/A.png", "A")
	assert.False(t, ok)
}

func TestManager_Snapshot(t *testing.T) {
	m := newTestManager(t)
	v := m.Snapshot()
	assert.Equal(t, state.PhaseSetup, v.Phase)
	assert.False(t, v.CanStart)
	assert.Empty(t, v.CurrentImage)

	m = startedManager(t, "A", "B")
	_, _ = m.Advance()
	_, _ = m.Advance()
	_, _ = m.SetCurrentRating("B", 9)

	v = m.Snapshot()
	assert.Equal(t, state.PhaseEvaluating, v.Phase)
	assert.Equal(t, "/photos/C.jpeg", v.CurrentImage)
	assert.Equal(t, []int{5, 9}, v.Scores)
	assert.True(t, v.CanRetreat)
	assert.True(t, v.IsLast())
	assert.Equal(t, 3, v.Position())
	assert.False(t, v.CanStart)
}

func TestStep_String(t *testing.T) {
	assert.Equal(t, "HasNext", HasNext.String())
	assert.Equal(t, "SessionComplete", SessionComplete.String())
	assert.Equal(t, "Unknown(7)", Step(7).String())
}
