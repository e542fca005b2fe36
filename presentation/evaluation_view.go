package presentation

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"photorank/application/session"
	"photorank/core/event"
	"photorank/domain/rating"
)

// EvaluationViewConfig holds configuration for EvaluationView.
type EvaluationViewConfig struct {
	Bridge *UIEventBridge
	Logger *slog.Logger
}

// criterionSlider is one criterion's slider and value label.
type criterionSlider struct {
	criterion string
	slider    *widget.Slider
	value     *widget.Label
	last      int
}

// EvaluationView shows one image at a time with a slider per criterion.
type EvaluationView struct {
	bridge *UIEventBridge
	logger *slog.Logger

	image    *canvas.Image
	position *widget.Label
	sliders  []*criterionSlider
	progress *widget.ProgressBar

	randomBtn *widget.Button
	backBtn   *widget.Button
	nextBtn   *widget.Button
	finishBtn *widget.Button

	// suppressRatingSync stops programmatic slider updates from dispatching SetRating.
	suppressRatingSync bool

	content fyne.CanvasObject
}

// NewEvaluationView creates the rating screen for the given criteria.
func NewEvaluationView(cfg *EvaluationViewConfig, criteria []string) *EvaluationView {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	v := &EvaluationView{
		bridge: cfg.Bridge,
		logger: cfg.Logger,
	}
	v.build(criteria)
	return v
}

func (v *EvaluationView) build(criteria []string) {
	v.image = canvas.NewImageFromResource(nil)
	v.image.FillMode = canvas.ImageFillContain
	v.image.ScaleMode = canvas.ImageScaleSmooth
	v.image.SetMinSize(fyne.NewSize(320, 240))

	v.position = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	v.position.Truncation = fyne.TextTruncateEllipsis

	form := container.New(layout.NewFormLayout(), v.buildSliders(criteria)...)

	v.randomBtn = widget.NewButtonWithIcon("Random", theme.ViewRefreshIcon(), func() {
		v.dispatch("randomize", v.bridge.RandomizeRatings)
	})
	v.backBtn = widget.NewButtonWithIcon("Back", theme.NavigateBackIcon(), func() {
		v.dispatch("previous image", v.bridge.PreviousImage)
	})
	v.nextBtn = widget.NewButtonWithIcon("Next", theme.NavigateNextIcon(), func() {
		v.dispatch("next image", v.bridge.NextImage)
	})
	v.nextBtn.IconPlacement = widget.ButtonIconTrailingText
	v.nextBtn.Importance = widget.HighImportance
	v.finishBtn = widget.NewButtonWithIcon("Finish", theme.ConfirmIcon(), func() {
		v.dispatch("finish", v.bridge.FinishEvaluation)
	})

	v.progress = widget.NewProgressBar()

	buttons := container.NewHBox(v.backBtn, v.randomBtn, v.nextBtn, v.finishBtn)
	controls := container.NewVBox(
		form,
		container.NewCenter(buttons),
		v.progress,
	)

	v.content = container.NewPadded(container.NewBorder(v.position, controls, nil, nil, v.image))
}

func (v *EvaluationView) buildSliders(criteria []string) []fyne.CanvasObject {
	objects := make([]fyne.CanvasObject, 0, len(criteria)*2)
	v.sliders = make([]*criterionSlider, len(criteria))

	for i, c := range criteria {
		cs := &criterionSlider{
			criterion: c,
			slider:    widget.NewSlider(rating.MinScore, rating.MaxScore),
			value:     widget.NewLabel(fmt.Sprint(rating.DefaultScore)),
			last:      rating.DefaultScore,
		}
		cs.slider.Step = 1
		cs.slider.SetValue(rating.DefaultScore)
		cs.slider.OnChanged = func(f float64) {
			v.onSliderChanged(cs, f)
		}
		v.sliders[i] = cs

		name := widget.NewLabel(c)
		name.Truncation = fyne.TextTruncateEllipsis
		objects = append(objects,
			container.NewBorder(nil, nil, nil, cs.value, name),
			cs.slider,
		)
	}
	return objects
}

func (v *EvaluationView) onSliderChanged(cs *criterionSlider, f float64) {
	value := rating.ClampFloat(f)
	cs.value.SetText(fmt.Sprint(value))
	if v.suppressRatingSync || value == cs.last {
		return
	}
	cs.last = value
	if err := v.bridge.SetRating(cs.criterion, value); err != nil {
		v.logger.Error("Failed to set rating", "criterion", cs.criterion, "error", err)
	}
}

func (v *EvaluationView) dispatch(action string, fn func() error) {
	if err := fn(); err != nil {
		v.logger.Error("Evaluation action failed", "action", action, "error", err)
	}
}

// Content returns the view's root object.
func (v *EvaluationView) Content() fyne.CanvasObject {
	return v.content
}

// Render shows the current image from a snapshot.
func (v *EvaluationView) Render(s session.View) {
	v.ShowImage(event.ImageChanged{
		Index:      s.Index,
		ImageCount: s.ImageCount,
		Image:      s.CurrentImage,
		Scores:     s.Scores,
		Progress:   s.Progress,
		CanRetreat: s.CanRetreat,
	})
}

// ShowImage displays an image and its stored scores.
func (v *EvaluationView) ShowImage(evt event.ImageChanged) {
	if evt.Image != "" {
		v.image.File = evt.Image
		v.image.Resource = nil
		v.image.Refresh()
	}
	v.position.SetText(fmt.Sprintf("%d / %d  %s", evt.Index+1, evt.ImageCount, filepath.Base(evt.Image)))

	v.suppressRatingSync = true
	for i, cs := range v.sliders {
		if i < len(evt.Scores) {
			cs.last = evt.Scores[i]
			cs.slider.SetValue(float64(evt.Scores[i]))
		}
	}
	v.suppressRatingSync = false

	v.progress.SetValue(evt.Progress)
	if evt.CanRetreat {
		v.backBtn.Enable()
	} else {
		v.backBtn.Disable()
	}
}

// ShowRating syncs one slider to a stored value, which may differ from the
// slider position after clamping.
func (v *EvaluationView) ShowRating(criterion string, value int) {
	for _, cs := range v.sliders {
		if cs.criterion != criterion || cs.last == value {
			continue
		}
		v.suppressRatingSync = true
		cs.last = value
		cs.slider.SetValue(float64(value))
		v.suppressRatingSync = false
	}
}
