package content

import (
	"fmt"
	"strings"
	"time"

	"gitlet/shared/utils"
)

// TimestampLayout is the date format used in log output and in commit
// identity hashing.
const TimestampLayout = "Mon Jan 2 15:04:05 2006 -0700"

// InitialMessage is the message of the commit created by init.
const InitialMessage = "initial commit"

// Commit is one node of the history DAG. Parents are referenced by id, never
// embedded. Tracked maps absolute file path to blob id.
type Commit struct {
	ID      string            `json:"id"`
	Message string            `json:"message"`
	Time    time.Time         `json:"time"`
	Parents []string          `json:"parents"`
	Tracked map[string]string `json:"tracked"`
}

// NewCommit builds an ordinary commit stamped with the current wall clock.
func NewCommit(message string, parents []string, tracked map[string]string) *Commit {
	if tracked == nil {
		tracked = map[string]string{}
	}
	c := &Commit{
		Message: message,
		Time:    time.Now(),
		Parents: parents,
		Tracked: tracked,
	}
	c.ID = c.generateID()
	return c
}

// InitialCommit builds the epoch-0 root commit every repository starts from.
func InitialCommit() *Commit {
	c := &Commit{
		Message: InitialMessage,
		Time:    time.Unix(0, 0),
		Tracked: map[string]string{},
	}
	c.ID = c.generateID()
	return c
}

// generateID hashes the formatted timestamp, message, parent list and sorted
// tracked map. Every field is rendered in a stable textual form first.
func (c *Commit) generateID() string {
	var tracked strings.Builder
	for _, path := range utils.SortedKeys(c.Tracked) {
		tracked.WriteString(path)
		tracked.WriteByte(0)
		tracked.WriteString(c.Tracked[path])
		tracked.WriteByte('\n')
	}
	return utils.HashContent(
		[]byte(c.Timestamp()),
		[]byte(c.Message),
		[]byte(strings.Join(c.Parents, ",")),
		[]byte(tracked.String()),
	)
}

// Timestamp formats the commit time for log output and identity hashing.
func (c *Commit) Timestamp() string {
	return c.Time.Format(TimestampLayout)
}

// TrackedID returns the blob id recorded for path, or "" if untracked.
func (c *Commit) TrackedID(path string) string {
	return c.Tracked[path]
}

// IsTracked reports whether path is part of this commit's snapshot.
func (c *Commit) IsTracked(path string) bool {
	_, ok := c.Tracked[path]
	return ok
}

// LogEntry renders the commit the way log and global-log print it. Merge
// commits carry an extra line with the 7-character prefixes of both parents.
func (c *Commit) LogEntry() string {
	var b strings.Builder
	b.WriteString("===\n")
	b.WriteString("commit " + c.ID + "\n")
	if len(c.Parents) == 2 {
		b.WriteString(fmt.Sprintf("Merge: %s %s\n", shortID(c.Parents[0]), shortID(c.Parents[1])))
	}
	b.WriteString("Date: " + c.Timestamp() + "\n")
	b.WriteString(c.Message + "\n\n")
	return b.String()
}

func shortID(id string) string {
	if len(id) > 7 {
		return id[:7]
	}
	return id
}
