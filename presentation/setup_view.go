package presentation

import (
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"photorank/application/session"
)

// SetupViewConfig holds configuration for SetupView.
type SetupViewConfig struct {
	Window fyne.Window
	Bridge *UIEventBridge
	Logger *slog.Logger
	// OnShowHistory opens the archive dialog. The button is hidden when nil.
	OnShowHistory func()
}

// SetupView collects criteria and the image folder.
type SetupView struct {
	window fyne.Window
	bridge *UIEventBridge
	logger *slog.Logger

	criterionEntry *widget.Entry
	addBtn         *widget.Button
	criterionList  *CriterionList
	folderBtn      *widget.Button
	folderStatus   *widget.Label
	startBtn       *widget.Button

	content fyne.CanvasObject
}

// NewSetupView creates the setup screen.
func NewSetupView(cfg *SetupViewConfig) *SetupView {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	v := &SetupView{
		window: cfg.Window,
		bridge: cfg.Bridge,
		logger: cfg.Logger,
	}
	v.build(cfg.OnShowHistory)
	return v
}

func (v *SetupView) build(onShowHistory func()) {
	title := widget.NewLabelWithStyle("Rate your photos", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	v.criterionEntry = widget.NewEntry()
	v.criterionEntry.SetPlaceHolder("Criterion, e.g. Sharpness")
	v.criterionEntry.OnSubmitted = func(string) { v.addCriterion() }
	v.addBtn = widget.NewButtonWithIcon("Add", theme.ContentAddIcon(), v.addCriterion)

	v.criterionList = NewCriterionList(func(label string) {
		if err := v.bridge.RemoveCriterion(label); err != nil {
			v.logger.Error("Failed to remove criterion", "criterion", label, "error", err)
		}
	})

	v.folderBtn = widget.NewButtonWithIcon("Choose folder...", theme.FolderOpenIcon(), v.chooseFolder)
	v.folderStatus = widget.NewLabel("No folder selected")
	v.folderStatus.Wrapping = fyne.TextWrapWord

	v.startBtn = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		if err := v.bridge.StartEvaluation(); err != nil {
			v.logger.Warn("Cannot start evaluation", "error", err)
		}
	})
	v.startBtn.Importance = widget.HighImportance
	v.startBtn.Disable()

	entryRow := container.NewBorder(nil, nil, nil, v.addBtn, v.criterionEntry)
	top := container.NewVBox(title, widget.NewSeparator(), widget.NewLabel("Criteria"), entryRow)

	bottomItems := []fyne.CanvasObject{
		widget.NewSeparator(),
		container.NewBorder(nil, nil, v.folderBtn, nil, v.folderStatus),
	}
	if onShowHistory != nil {
		historyBtn := widget.NewButtonWithIcon("History...", theme.HistoryIcon(), onShowHistory)
		bottomItems = append(bottomItems, container.NewBorder(nil, nil, historyBtn, v.startBtn))
	} else {
		bottomItems = append(bottomItems, v.startBtn)
	}

	v.content = container.NewPadded(container.NewBorder(top, container.NewVBox(bottomItems...), nil, nil, v.criterionList))
}

// Content returns the view's root object.
func (v *SetupView) Content() fyne.CanvasObject {
	return v.content
}

func (v *SetupView) addCriterion() {
	label := v.criterionEntry.Text
	if err := v.bridge.AddCriterion(label); err != nil {
		// The coordinator reports the failure; keep the text for editing.
		return
	}
	v.criterionEntry.SetText("")
	v.window.Canvas().Focus(v.criterionEntry)
}

func (v *SetupView) chooseFolder() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, v.window)
			return
		}
		if uri == nil {
			return
		}
		// Failures arrive as FolderUnavailable.
		_ = v.bridge.LoadFolder(uri.Path())
	}, v.window)
}

// Render refreshes every widget from a snapshot.
func (v *SetupView) Render(s session.View) {
	v.criterionList.SetCriteria(s.Criteria)
	if s.Folder == "" {
		v.setFolderStatus("No folder selected", widget.MediumImportance)
	} else {
		v.ShowFolder(s.Folder, s.ImageCount)
	}
	v.SetCanStart(s.CanStart)
}

// SetCriteria shows the current criteria.
func (v *SetupView) SetCriteria(labels []string) {
	v.criterionList.SetCriteria(labels)
}

// ShowFolder reports a loaded folder.
func (v *SetupView) ShowFolder(path string, imageCount int) {
	if imageCount == 0 {
		v.setFolderStatus(fmt.Sprintf("%s: no PNG or JPEG images found", path), widget.DangerImportance)
		return
	}
	v.setFolderStatus(fmt.Sprintf("%s: %d images", path, imageCount), widget.SuccessImportance)
}

// ShowFolderError reports a folder that could not be listed.
func (v *SetupView) ShowFolderError(err error) {
	v.setFolderStatus(err.Error(), widget.DangerImportance)
}

// SetCanStart enables the Start button.
func (v *SetupView) SetCanStart(canStart bool) {
	if canStart {
		v.startBtn.Enable()
	} else {
		v.startBtn.Disable()
	}
}

func (v *SetupView) setFolderStatus(text string, importance widget.Importance) {
	v.folderStatus.Importance = importance
	v.folderStatus.SetText(text)
}
