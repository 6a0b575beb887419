package errors

// Kind identifies one condition in the closed error taxonomy. Every
// user-visible failure of the engine is one of these; the CLI prints the
// message and exits.
type Kind string

const (
	KindNoCommand           Kind = "NO_COMMAND"
	KindUnknownCommand      Kind = "UNKNOWN_COMMAND"
	KindBadOperands         Kind = "BAD_OPERANDS"
	KindEmptyCommitMessage  Kind = "EMPTY_COMMIT_MESSAGE"
	KindNotInitialized      Kind = "NOT_INITIALIZED"
	KindAlreadyInitialized  Kind = "ALREADY_INITIALIZED"
	KindFileMissing         Kind = "FILE_MISSING"
	KindNoChanges           Kind = "NO_CHANGES"
	KindNothingToRemove     Kind = "NOTHING_TO_REMOVE"
	KindNoSuchMessage       Kind = "NO_SUCH_MESSAGE"
	KindNotInCommit         Kind = "NOT_IN_COMMIT"
	KindNoSuchCommit        Kind = "NO_SUCH_COMMIT"
	KindShortId             Kind = "SHORT_ID"
	KindAmbiguousId         Kind = "AMBIGUOUS_ID"
	KindNoSuchBranch        Kind = "NO_SUCH_BRANCH"
	KindAlreadyOnBranch     Kind = "ALREADY_ON_BRANCH"
	KindBranchExists        Kind = "BRANCH_EXISTS"
	KindRemoveCurrentBranch Kind = "REMOVE_CURRENT_BRANCH"
	KindUntrackedOverwrite  Kind = "UNTRACKED_OVERWRITE"
	KindUncommittedChanges  Kind = "UNCOMMITTED_CHANGES"
	KindMergeWithSelf       Kind = "MERGE_WITH_SELF"
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}

func NoCommand() *Error {
	return &Error{KindNoCommand, "Please enter a command."}
}

func UnknownCommand() *Error {
	return &Error{KindUnknownCommand, "No command with that name exists."}
}

func BadOperands() *Error {
	return &Error{KindBadOperands, "Incorrect operands."}
}

func EmptyCommitMessage() *Error {
	return &Error{KindEmptyCommitMessage, "Please enter a commit message."}
}

func NotInitialized() *Error {
	return &Error{KindNotInitialized, "Not in an initialized Gitlet directory."}
}

func AlreadyInitialized() *Error {
	return &Error{KindAlreadyInitialized,
		"A Gitlet version-control system already exists in the current directory."}
}

func FileMissing() *Error {
	return &Error{KindFileMissing, "File does not exist."}
}

func NoChanges() *Error {
	return &Error{KindNoChanges, "No changes added to the commit."}
}

func NothingToRemove() *Error {
	return &Error{KindNothingToRemove, "No reason to remove the file."}
}

func NoSuchMessage() *Error {
	return &Error{KindNoSuchMessage, "Found no commit with that message."}
}

func NotInCommit() *Error {
	return &Error{KindNotInCommit, "File does not exist in that commit."}
}

func NoSuchCommit() *Error {
	return &Error{KindNoSuchCommit, "No commit with that id exists."}
}

func ShortId() *Error {
	return &Error{KindShortId, "Commit id should contain at least 4 characters."}
}

func AmbiguousId() *Error {
	return &Error{KindAmbiguousId, "More than 1 commit has the same id prefix."}
}

// NoSuchBranch is the checkout-time wording; branch management uses
// NoSuchBranchRef instead.
func NoSuchBranch() *Error {
	return &Error{KindNoSuchBranch, "No such branch exists."}
}

// NoSuchBranchRef is the rm-branch/merge wording for a missing branch.
func NoSuchBranchRef() *Error {
	return &Error{KindNoSuchBranch, "A branch with that name does not exist."}
}

func AlreadyOnBranch() *Error {
	return &Error{KindAlreadyOnBranch, "No need to checkout the current branch."}
}

func BranchExists() *Error {
	return &Error{KindBranchExists, "A branch with that name already exists."}
}

func RemoveCurrentBranch() *Error {
	return &Error{KindRemoveCurrentBranch, "Cannot remove the current branch."}
}

func UntrackedOverwrite() *Error {
	return &Error{KindUntrackedOverwrite,
		"There is an untracked file in the way; delete it, or add and commit it first."}
}

func UncommittedChanges() *Error {
	return &Error{KindUncommittedChanges, "You have uncommitted changes."}
}

func MergeWithSelf() *Error {
	return &Error{KindMergeWithSelf, "Cannot merge a branch with itself."}
}
