package presentation

import (
	"slices"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// CriterionList is a scrollable list of criteria, each with a delete button.
type CriterionList struct {
	widget.List
	items    []string
	itemsMu  sync.RWMutex
	onRemove func(label string)
}

// NewCriterionList creates a new criterion list widget.
func NewCriterionList(onRemove func(label string)) *CriterionList {
	cl := &CriterionList{onRemove: onRemove}

	cl.List = widget.List{
		Length: func() int {
			cl.itemsMu.RLock()
			defer cl.itemsMu.RUnlock()
			return len(cl.items)
		},
		CreateItem: func() fyne.CanvasObject {
			return cl.createItem()
		},
		UpdateItem: func(id widget.ListItemID, item fyne.CanvasObject) {
			cl.updateItem(id, item)
		},
	}

	cl.ExtendBaseWidget(cl)
	return cl
}

func (cl *CriterionList) createItem() fyne.CanvasObject {
	label := widget.NewLabel("Criterion Name")
	label.Truncation = fyne.TextTruncateEllipsis

	remove := widget.NewButtonWithIcon("", theme.DeleteIcon(), nil)
	remove.Importance = widget.LowImportance

	return container.NewBorder(nil, nil, nil, remove, label)
}

func (cl *CriterionList) updateItem(id widget.ListItemID, item fyne.CanvasObject) {
	cl.itemsMu.RLock()
	if id >= len(cl.items) {
		cl.itemsMu.RUnlock()
		return
	}
	text := cl.items[id]
	cl.itemsMu.RUnlock()

	// Border layout stores the center object first, then the trailing edge.
	row := item.(*fyne.Container)
	label := row.Objects[0].(*widget.Label)
	remove := row.Objects[1].(*widget.Button)

	label.SetText(text)
	remove.OnTapped = func() {
		if cl.onRemove != nil {
			cl.onRemove(text)
		}
	}
}

// SetCriteria replaces the displayed criteria.
func (cl *CriterionList) SetCriteria(labels []string) {
	cl.itemsMu.Lock()
	cl.items = slices.Clone(labels)
	cl.itemsMu.Unlock()

	cl.Refresh()
}

// Count returns the number of criteria in the list.
func (cl *CriterionList) Count() int {
	cl.itemsMu.RLock()
	defer cl.itemsMu.RUnlock()
	return len(cl.items)
}
