package presentation

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
)

func TestPlanResultsLayout_Desktop(t *testing.T) {
	plan := PlanResultsLayout(fyne.NewSize(1000, 800))

	assert.Equal(t, fyne.NewSize(300, 300), plan.WinnerImage.Size)
	assert.Equal(t, float32(350), plan.WinnerImage.Pos.X, "winner image is centered")
	assert.Equal(t, float32(50), plan.RunnersUp.Pos.X)
	assert.Equal(t, float32(900), plan.RunnersUp.Size.Width)
	assert.Equal(t, float32(750), plan.Actions.Pos.Y)
	assert.Equal(t, fyne.NewSize(80, 80), plan.Thumbnail)
}

func TestPlanResultsLayout_NarrowWindow(t *testing.T) {
	plan := PlanResultsLayout(fyne.NewSize(400, 900))

	assert.Equal(t, float32(280), plan.WinnerImage.Size.Width, "70% of 400")
}

func TestPlanResultsLayout_ShortWindowShrinksImage(t *testing.T) {
	plan := PlanResultsLayout(fyne.NewSize(1000, 300))

	assert.Less(t, plan.WinnerImage.Size.Width, float32(300))
	assert.LessOrEqual(t, plan.WinnerCaption.Bottom(), plan.Actions.Pos.Y, "caption overlaps actions")
}

func TestPlanResultsLayout_RegionsDoNotOverlap(t *testing.T) {
	sizes := []fyne.Size{
		fyne.NewSize(1000, 800),
		fyne.NewSize(1920, 1080),
		fyne.NewSize(400, 600),
		fyne.NewSize(320, 320),
	}

	for _, size := range sizes {
		plan := PlanResultsLayout(size)
		ordered := []Rect{plan.WinnerTitle, plan.WinnerImage, plan.WinnerCaption, plan.RunnersUp, plan.Actions}
		for i := 1; i < len(ordered); i++ {
			assert.GreaterOrEqual(t, ordered[i].Pos.Y, ordered[i-1].Bottom(),
				"%v: region %d starts before region %d ends", size, i, i-1)
		}
		assert.LessOrEqual(t, plan.Actions.Bottom(), size.Height, "%v: actions past the viewport", size)
	}
}

func TestPlanResultsLayout_EmptyViewport(t *testing.T) {
	plan := PlanResultsLayout(fyne.NewSize(0, 0))

	for _, r := range []Rect{plan.WinnerImage, plan.RunnersUp, plan.Actions} {
		assert.GreaterOrEqual(t, r.Size.Width, float32(0))
		assert.GreaterOrEqual(t, r.Size.Height, float32(0))
	}
	assert.Equal(t, float32(0), plan.WinnerImage.Size.Width)
}
