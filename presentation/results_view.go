package presentation

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"photorank/domain/ranking"
)

// ResultsViewConfig holds configuration for ResultsView.
type ResultsViewConfig struct {
	Window fyne.Window
	Bridge *UIEventBridge
	Logger *slog.Logger
	// ExportDir is the initial export dialog location. Optional.
	ExportDir string
	// ExportFormat is the default file extension, "yaml" or "parquet".
	ExportFormat string
}

// ResultsView shows the winner and the runners-up.
type ResultsView struct {
	config  *ResultsViewConfig
	results ranking.Results
	runners []ranking.Entry

	content fyne.CanvasObject
}

// tappableImage opens its file when tapped.
type tappableImage struct {
	widget.BaseWidget
	image *canvas.Image
	onTap func()
}

func newTappableImage(path string, onTap func()) *tappableImage {
	img := canvas.NewImageFromFile(path)
	img.FillMode = canvas.ImageFillContain
	img.ScaleMode = canvas.ImageScaleSmooth

	t := &tappableImage{image: img, onTap: onTap}
	t.ExtendBaseWidget(t)
	return t
}

func (t *tappableImage) Tapped(*fyne.PointEvent) {
	if t.onTap != nil {
		t.onTap()
	}
}

func (t *tappableImage) Cursor() desktop.Cursor {
	return desktop.PointerCursor
}

func (t *tappableImage) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(t.image)
}

// NewResultsView creates the results screen.
func NewResultsView(cfg *ResultsViewConfig, results ranking.Results) *ResultsView {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.ExportFormat == "" {
		cfg.ExportFormat = "yaml"
	}

	v := &ResultsView{
		config:  cfg,
		results: results,
		runners: results.RunnersUp(),
	}
	v.build()
	return v
}

func (v *ResultsView) build() {
	title := widget.NewLabelWithStyle("Winner", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	var image fyne.CanvasObject = widget.NewLabelWithStyle("No images were rated", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	caption := widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	if winner, ok := v.results.Winner(); ok {
		image = newTappableImage(winner.Image, func() { v.openImage(winner.Image) })
		caption.SetText(fmt.Sprintf("%s - %d points", winner.Name(), winner.Score))
	}

	list := widget.NewList(
		func() int { return len(v.runners) },
		v.createCard,
		v.updateCard,
	)
	list.OnSelected = func(id widget.ListItemID) {
		if id < len(v.runners) {
			v.openImage(v.runners[id].Image)
		}
		list.UnselectAll()
	}

	exportBtn := widget.NewButtonWithIcon("Export...", theme.DocumentSaveIcon(), v.showExportDialog)
	backBtn := widget.NewButtonWithIcon("Back to start", theme.HomeIcon(), func() {
		if err := v.config.Bridge.ResetSession(); err != nil {
			v.config.Logger.Error("Failed to reset session", "error", err)
		}
	})
	backBtn.Importance = widget.HighImportance
	actions := container.NewGridWithColumns(2, exportBtn, backBtn)

	v.content = container.New(resultsLayout{}, title, image, caption, list, actions)
}

func (v *ResultsView) createCard() fyne.CanvasObject {
	thumb := canvas.NewImageFromResource(theme.FileImageIcon())
	thumb.FillMode = canvas.ImageFillContain

	rank := widget.NewLabelWithStyle("#0", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	rank.Importance = widget.HighImportance
	name := widget.NewLabel("image name")
	name.Truncation = fyne.TextTruncateEllipsis
	score := widget.NewLabel("0 points")
	score.Importance = widget.SuccessImportance

	plan := PlanResultsLayout(fyne.Size{})
	return container.NewBorder(nil, nil,
		container.NewGridWrap(plan.Thumbnail, thumb), nil,
		container.NewVBox(rank, name, score),
	)
}

func (v *ResultsView) updateCard(id widget.ListItemID, item fyne.CanvasObject) {
	if id >= len(v.runners) {
		return
	}
	entry := v.runners[id]

	// Border layout stores the center object first, then the leading edge.
	card := item.(*fyne.Container)
	text := card.Objects[0].(*fyne.Container)
	thumb := card.Objects[1].(*fyne.Container).Objects[0].(*canvas.Image)

	text.Objects[0].(*widget.Label).SetText(fmt.Sprintf("#%d", entry.Rank))
	text.Objects[1].(*widget.Label).SetText(entry.Name())
	text.Objects[2].(*widget.Label).SetText(fmt.Sprintf("%d points", entry.Score))

	if thumb.File != entry.Image {
		thumb.Resource = nil
		thumb.File = entry.Image
		thumb.Refresh()
	}
}

func (v *ResultsView) openImage(path string) {
	if err := v.config.Bridge.OpenImage(path); err != nil {
		v.config.Logger.Warn("Failed to open image", "path", path, "error", err)
	}
}

func (v *ResultsView) showExportDialog() {
	save := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, v.config.Window)
			return
		}
		if w == nil {
			return
		}
		path := w.URI().Path()
		// The export writer creates the file itself.
		_ = w.Close()
		if err := v.config.Bridge.ExportResults(path); err != nil {
			v.config.Logger.Warn("Export failed", "path", path, "error", err)
		}
	}, v.config.Window)

	save.SetFileName("photorank-results." + v.config.ExportFormat)
	save.SetFilter(storage.NewExtensionFileFilter([]string{".yaml", ".yml", ".parquet"}))
	if v.config.ExportDir != "" {
		if dir, err := storage.ListerForURI(storage.NewFileURI(filepath.Clean(v.config.ExportDir))); err == nil {
			save.SetLocation(dir)
		}
	}
	save.Show()
}

// Content returns the view's root object.
func (v *ResultsView) Content() fyne.CanvasObject {
	return v.content
}
