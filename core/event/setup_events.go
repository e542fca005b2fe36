package event

// CriteriaChanged is published after a criterion is added or removed.
type CriteriaChanged struct {
	Criteria []string
	CanStart bool
}

func NewCriteriaChanged(criteria []string, canStart bool) *CriteriaChanged {
	return &CriteriaChanged{Criteria: criteria, CanStart: canStart}
}

func (e *CriteriaChanged) EventName() string {
	return "CriteriaChanged"
}

// FolderLoaded is published when a folder has been listed.
type FolderLoaded struct {
	Path     string
	Images   []string
	CanStart bool
}

func NewFolderLoaded(path string, images []string, canStart bool) *FolderLoaded {
	return &FolderLoaded{Path: path, Images: images, CanStart: canStart}
}

func (e *FolderLoaded) EventName() string {
	return "FolderLoaded"
}

// FolderUnavailable is published when a folder cannot be listed.
type FolderUnavailable struct {
	Path  string
	Error error
}

func NewFolderUnavailable(path string, err error) *FolderUnavailable {
	return &FolderUnavailable{Path: path, Error: err}
}

func (e *FolderUnavailable) EventName() string {
	return "FolderUnavailable"
}
