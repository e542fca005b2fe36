package session

import "photorank/core/state"

// View is a read-only copy of the manager's state for rendering.
type View struct {
	Phase      state.Phase
	Criteria   []string
	Folder     string
	ImageCount int
	Index      int
	// CurrentImage is empty outside the Evaluating phase.
	CurrentImage string
	// Scores holds the current image's ratings in Criteria order.
	Scores     []int
	Progress   float64
	CanRetreat bool
	CanStart   bool
}

// IsLast reports whether the current image is the last one.
func (v View) IsLast() bool {
	return v.ImageCount > 0 && v.Index == v.ImageCount-1
}

// Position returns the 1-based position of the current image.
func (v View) Position() int {
	return v.Index + 1
}

// Snapshot copies the state needed to render any screen.
func (m *Manager) Snapshot() View {
	labels := m.criteria.Labels()
	v := View{
		Phase:      m.phase,
		Criteria:   labels,
		Folder:     m.folder,
		ImageCount: len(m.images),
		Index:      m.index,
		Progress:   m.Progress(),
		CanStart:   m.CanStart(),
	}

	if m.phase.CanRate() {
		v.CurrentImage = m.images[m.index]
		v.Scores = m.sheet.Scores(v.CurrentImage, labels)
		v.CanRetreat = m.index > 0
	}

	return v
}
