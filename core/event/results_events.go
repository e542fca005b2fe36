package event

import "photorank/domain/ranking"

// SessionCompleted is published when rankings have been computed.
type SessionCompleted struct {
	SessionID string
	Folder    string
	Results   ranking.Results
}

func NewSessionCompleted(sessionID, folder string, results ranking.Results) *SessionCompleted {
	return &SessionCompleted{SessionID: sessionID, Folder: folder, Results: results}
}

func (e *SessionCompleted) EventName() string {
	return "SessionCompleted"
}

// ResultsExported is published after results are written to a file.
type ResultsExported struct {
	Path   string
	Format string
}

func NewResultsExported(path, format string) *ResultsExported {
	return &ResultsExported{Path: path, Format: format}
}

func (e *ResultsExported) EventName() string {
	return "ResultsExported"
}

// ResultsArchived is published after a completed session is stored in the archive.
type ResultsArchived struct {
	SessionID string
}

func NewResultsArchived(sessionID string) *ResultsArchived {
	return &ResultsArchived{SessionID: sessionID}
}

func (e *ResultsArchived) EventName() string {
	return "ResultsArchived"
}
