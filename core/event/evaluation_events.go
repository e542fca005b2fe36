package event

// ImageChanged is published when the image under evaluation changes,
// including when evaluation starts and after ratings are randomized.
type ImageChanged struct {
	Index      int
	ImageCount int
	Image      string
	// Scores holds the image's ratings in criterion order.
	Scores     []int
	Progress   float64
	CanRetreat bool
}

func (e *ImageChanged) EventName() string {
	return "ImageChanged"
}

// RatingChanged is published when a single rating is stored.
type RatingChanged struct {
	Image     string
	Criterion string
	Value     int
}

func NewRatingChanged(image, criterion string, value int) *RatingChanged {
	return &RatingChanged{Image: image, Criterion: criterion, Value: value}
}

func (e *RatingChanged) EventName() string {
	return "RatingChanged"
}
