package command

// AddCriterion appends a criterion label.
type AddCriterion struct {
	Label string
}

func (c *AddCriterion) CommandName() string {
	return "AddCriterion"
}

// RemoveCriterion removes a criterion label.
type RemoveCriterion struct {
	Label string
}

func (c *RemoveCriterion) CommandName() string {
	return "RemoveCriterion"
}

// LoadFolder loads the images of a folder.
type LoadFolder struct {
	Path string
}

func (c *LoadFolder) CommandName() string {
	return "LoadFolder"
}

// StartEvaluation begins rating the loaded images.
type StartEvaluation struct{}

func (c *StartEvaluation) CommandName() string {
	return "StartEvaluation"
}

// ResetSession discards all state and returns to setup.
type ResetSession struct{}

func (c *ResetSession) CommandName() string {
	return "ResetSession"
}
