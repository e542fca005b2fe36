package presentation

import (
	"io"
	"log/slog"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photorank/application"
	"photorank/application/session"
	"photorank/core/event"
	"photorank/core/state"
	"photorank/domain/gallery"
)

type stubSource struct{}

func (stubSource) ListImages(dir string) ([]string, error) {
	if dir != "/photos" {
		return nil, gallery.ErrFolderUnavailable
	}
	return []string{"/photos/A.png", "/photos/B.png", "/photos/C.png"}, nil
}

// newTestWindow wires a main window to a coordinator without an event bus,
// so views are driven directly.
func newTestWindow(t *testing.T) *MainWindow {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	coord := application.NewCoordinator(&application.CoordinatorConfig{
		Manager: session.NewManager(&session.Config{Source: stubSource{}, Logger: logger}),
		Logger:  logger,
	})
	bridge := NewUIEventBridge(&BridgeConfig{Coordinator: coord, Logger: logger})

	return NewMainWindow(&MainWindowConfig{
		App:    test.NewTempApp(t),
		Bridge: bridge,
		Logger: logger,
	})
}

func TestMainWindowConfig(t *testing.T) {
	cfg := &MainWindowConfig{}

	assert.Nil(t, cfg.App)
	assert.Nil(t, cfg.Bridge)
	assert.Nil(t, cfg.Logger)
}

func TestMainWindow_StartsInSetup(t *testing.T) {
	w := newTestWindow(t)

	require.NotNil(t, w.setup, "setup view should be shown first")
	assert.Nil(t, w.evaluation)
	assert.Nil(t, w.results)
	assert.True(t, w.setup.startBtn.Disabled(), "Start should be disabled without criteria and images")
}

func TestSetupView_AddCriterion(t *testing.T) {
	w := newTestWindow(t)
	v := w.setup

	test.Type(v.criterionEntry, "Sharpness")
	test.Tap(v.addBtn)

	assert.Equal(t, []string{"Sharpness"}, w.bridge.Snapshot().Criteria)
	assert.Empty(t, v.criterionEntry.Text, "entry should be cleared")

	// A duplicate keeps the text for editing
	test.Type(v.criterionEntry, "Sharpness")
	test.Tap(v.addBtn)
	assert.Equal(t, "Sharpness", v.criterionEntry.Text, "entry should be kept after a rejected add")
}

func TestEvaluationView_SliderDispatchAndSuppression(t *testing.T) {
	w := newTestWindow(t)
	require.NoError(t, w.bridge.AddCriterion("Sharpness"))
	require.NoError(t, w.bridge.LoadFolder("/photos"))
	require.NoError(t, w.bridge.StartEvaluation())
	w.showPhase(state.PhaseEvaluating)

	v := w.evaluation
	require.NotNil(t, v, "evaluation view should be shown")
	require.Len(t, v.sliders, 1)
	assert.True(t, v.backBtn.Disabled(), "Back should be disabled on the first image")

	v.onSliderChanged(v.sliders[0], 8.4)
	assert.Equal(t, []int{8}, w.bridge.Snapshot().Scores)

	// Programmatic updates must not write ratings back
	v.ShowImage(event.ImageChanged{Index: 0, ImageCount: 3, Image: "/photos/A.png", Scores: []int{3}})
	assert.Equal(t, []int{8}, w.bridge.Snapshot().Scores, "programmatic slider updates are not saved")
	assert.Equal(t, 3.0, v.sliders[0].slider.Value)
}

func TestMainWindow_ResultsView(t *testing.T) {
	w := newTestWindow(t)
	for _, c := range []string{"Sharpness", "Composition"} {
		require.NoError(t, w.bridge.AddCriterion(c))
	}
	require.NoError(t, w.bridge.LoadFolder("/photos"))
	require.NoError(t, w.bridge.StartEvaluation())
	require.NoError(t, w.bridge.FinishEvaluation())
	w.showPhase(state.PhaseResults)

	require.NotNil(t, w.results, "results view should be shown")
	require.Len(t, w.results.runners, 2)
	assert.Equal(t, 2, w.results.runners[0].Rank)

	require.NoError(t, w.bridge.ResetSession())
	w.showPhase(state.PhaseSetup)
	assert.NotNil(t, w.setup, "reset should return to the setup view")
	assert.Nil(t, w.results)
}
