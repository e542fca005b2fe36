// Package command defines the requests the coordinator applies to a rating
// session, grouped by the phase that accepts them.
package command

// Command is a request from the UI or the CLI.
type Command interface {
	// CommandName names the command in logs and OperationFailed events.
	CommandName() string
}
