package command

// SetRating sets the current image's score for a criterion.
// Values outside [1, 10] are clamped.
type SetRating struct {
	Criterion string
	Value     int
}

func (c *SetRating) CommandName() string {
	return "SetRating"
}

// RandomizeRatings draws random scores for the current image.
type RandomizeRatings struct{}

func (c *RandomizeRatings) CommandName() string {
	return "RandomizeRatings"
}

// NextImage advances to the next image, finishing the session after the last one.
type NextImage struct{}

func (c *NextImage) CommandName() string {
	return "NextImage"
}

// PreviousImage steps back one image.
type PreviousImage struct{}

func (c *PreviousImage) CommandName() string {
	return "PreviousImage"
}

// FinishEvaluation ends rating early and computes results.
type FinishEvaluation struct{}

func (c *FinishEvaluation) CommandName() string {
	return "FinishEvaluation"
}
