package presentation

import "fyne.io/fyne/v2"

// Results screen metrics.
const (
	resultsPadding      float32 = 10
	winnerTitleHeight   float32 = 36
	winnerCaptionHeight float32 = 28
	maxWinnerImageSide  float32 = 300
	winnerImageRatio    float32 = 0.7
	actionsHeight       float32 = 40
	actionsBottomOffset float32 = 50
	contentMarginRatio  float32 = 0.05
	thumbnailSide       float32 = 80
)

// Rect is a placed region.
type Rect struct {
	Pos  fyne.Position
	Size fyne.Size
}

// Bottom returns the y coordinate below the rect.
func (r Rect) Bottom() float32 {
	return r.Pos.Y + r.Size.Height
}

// ResultsPlan places every region of the results screen for one viewport size.
type ResultsPlan struct {
	WinnerTitle   Rect
	WinnerImage   Rect
	WinnerCaption Rect
	RunnersUp     Rect
	Actions       Rect
	Thumbnail     fyne.Size
}

// PlanResultsLayout computes the results screen layout for a viewport.
//
// The winner block spans the full width at the top with a square image of
// min(300, 70% of width), shrunk if the viewport is too short. The runners-up
// list and the action bar use 90% of the width, centered, with the action bar
// 50 units above the bottom edge.
func PlanResultsLayout(viewport fyne.Size) ResultsPlan {
	w := max(viewport.Width, 0)
	h := max(viewport.Height, 0)

	actionsTop := max(h-actionsBottomOffset, 0)
	fixed := resultsPadding + winnerTitleHeight + resultsPadding + resultsPadding + winnerCaptionHeight + resultsPadding

	side := min(maxWinnerImageSide, w*winnerImageRatio)
	side = max(min(side, actionsTop-resultsPadding-fixed), 0)

	title := Rect{
		Pos:  fyne.NewPos(0, resultsPadding),
		Size: fyne.NewSize(w, winnerTitleHeight),
	}
	image := Rect{
		Pos:  fyne.NewPos((w-side)/2, title.Bottom()+resultsPadding),
		Size: fyne.NewSize(side, side),
	}
	caption := Rect{
		Pos:  fyne.NewPos(0, image.Bottom()+resultsPadding),
		Size: fyne.NewSize(w, winnerCaptionHeight),
	}

	left := w * contentMarginRatio
	contentWidth := w - 2*left
	listTop := caption.Bottom() + resultsPadding

	return ResultsPlan{
		WinnerTitle:   title,
		WinnerImage:   image,
		WinnerCaption: caption,
		RunnersUp: Rect{
			Pos:  fyne.NewPos(left, listTop),
			Size: fyne.NewSize(contentWidth, max(actionsTop-resultsPadding-listTop, 0)),
		},
		Actions: Rect{
			Pos:  fyne.NewPos(left, actionsTop),
			Size: fyne.NewSize(contentWidth, actionsHeight),
		},
		Thumbnail: fyne.NewSize(thumbnailSide, thumbnailSide),
	}
}

// resultsLayout places the results screen objects from PlanResultsLayout.
// Objects are expected in order: title, image, caption, runners-up, actions.
type resultsLayout struct{}

func (resultsLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	plan := PlanResultsLayout(size)
	rects := []Rect{plan.WinnerTitle, plan.WinnerImage, plan.WinnerCaption, plan.RunnersUp, plan.Actions}
	for i, obj := range objects {
		if i >= len(rects) {
			break
		}
		obj.Move(rects[i].Pos)
		obj.Resize(rects[i].Size)
	}
}

func (resultsLayout) MinSize([]fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(320, 320)
}
