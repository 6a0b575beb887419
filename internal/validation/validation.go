package validation

import (
	"gitlet/internal/errors"
)

// ExactOperands fails unless the command received exactly n operands.
func ExactOperands(args []string, n int) error {
	if len(args) != n {
		return errors.BadOperands()
	}
	return nil
}

// CommitMessage fails on an empty commit message.
func CommitMessage(message string) error {
	if message == "" {
		return errors.EmptyCommitMessage()
	}
	return nil
}

// FindMessage fails on an empty find query; an empty message can never
// match a commit.
func FindMessage(message string) error {
	if message == "" {
		return errors.NoSuchMessage()
	}
	return nil
}
