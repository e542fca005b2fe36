package presentation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"photorank/domain/archive"
)

// historyLimit is the number of archived sessions listed.
const historyLimit = 50

// HistoryDialogConfig holds configuration for the history dialog.
type HistoryDialogConfig struct {
	App    fyne.App
	Bridge *UIEventBridge
	Logger *slog.Logger
}

// HistoryDialog lists archived sessions and shows the ranking of the selected one.
type HistoryDialog struct {
	config *HistoryDialogConfig
	window fyne.Window

	list      *widget.List
	detail    *widget.Label
	deleteBtn *widget.Button

	records  []*archive.Record
	selected *archive.Record
}

// ShowHistoryDialog opens the archive browser window.
func ShowHistoryDialog(cfg *HistoryDialogConfig) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	hd := &HistoryDialog{config: cfg}
	hd.window = cfg.App.NewWindow("Session History")

	hd.buildUI()
	hd.loadData()

	hd.window.Resize(fyne.NewSize(800, 500))
	hd.window.CenterOnScreen()
	hd.window.Show()
}

func (hd *HistoryDialog) buildUI() {
	hd.list = widget.NewList(
		func() int { return len(hd.records) },
		func() fyne.CanvasObject {
			label := widget.NewLabel("2006-01-02 15:04  Template folder name")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < len(hd.records) {
				obj.(*widget.Label).SetText(recordTitle(hd.records[id]))
			}
		},
	)
	hd.list.OnSelected = func(id widget.ListItemID) {
		if id < len(hd.records) {
			hd.selected = hd.records[id]
			hd.detail.SetText(recordDetail(hd.selected))
			hd.deleteBtn.Enable()
		}
	}

	refreshBtn := widget.NewButtonWithIcon("Refresh", theme.ViewRefreshIcon(), hd.loadData)
	hd.deleteBtn = widget.NewButtonWithIcon("Delete", theme.DeleteIcon(), hd.onDelete)
	hd.deleteBtn.Importance = widget.DangerImportance
	hd.deleteBtn.Disable()

	listPanel := container.NewBorder(
		container.NewVBox(container.NewHBox(refreshBtn, hd.deleteBtn), widget.NewSeparator()),
		nil, nil, nil,
		hd.list,
	)

	hd.detail = widget.NewLabel("Select a session to see its ranking")
	hd.detail.Wrapping = fyne.TextWrapWord

	split := container.NewHSplit(listPanel, container.NewVScroll(hd.detail))
	split.SetOffset(0.45)
	hd.window.SetContent(split)
}

func (hd *HistoryDialog) loadData() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		records, err := hd.config.Bridge.RecentSessions(ctx, historyLimit)
		fyne.Do(func() {
			if err != nil {
				hd.config.Logger.Error("Failed to load session history", "error", err)
				dialog.ShowError(err, hd.window)
				return
			}
			hd.records = records
			hd.selected = nil
			hd.deleteBtn.Disable()
			hd.list.UnselectAll()
			hd.list.Refresh()
			if len(records) == 0 {
				hd.detail.SetText("No archived sessions yet")
			}
		})
	}()
}

func (hd *HistoryDialog) onDelete() {
	if hd.selected == nil {
		return
	}
	record := hd.selected

	dialog.ShowConfirm("Delete Session",
		fmt.Sprintf("Delete the session from %s?", record.CompletedAt.Local().Format("2006-01-02 15:04")),
		func(confirmed bool) {
			if !confirmed {
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := hd.config.Bridge.DeleteArchived(ctx, record.ID); err != nil {
				dialog.ShowError(err, hd.window)
				return
			}
			hd.detail.SetText("")
			hd.loadData()
		}, hd.window)
}

func recordTitle(r *archive.Record) string {
	return fmt.Sprintf("%s  %s (%d images)",
		r.CompletedAt.Local().Format("2006-01-02 15:04"), r.Folder, r.ImageCount())
}

func recordDetail(r *archive.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Folder: %s\n", r.Folder)
	fmt.Fprintf(&b, "Criteria: %s\n\n", strings.Join(r.Criteria, ", "))
	for _, e := range r.Entries {
		fmt.Fprintf(&b, "#%d  %s  %d points\n", e.Rank, e.Name(), e.Score)
	}
	return b.String()
}
