package content

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialCommit(t *testing.T) {
	c := InitialCommit()

	assert.Equal(t, InitialMessage, c.Message)
	assert.Empty(t, c.Parents)
	assert.Empty(t, c.Tracked)
	assert.True(t, c.Time.Equal(time.Unix(0, 0)))
	assert.Len(t, c.ID, 40)

	// The id is a pure function of content.
	assert.Equal(t, c.ID, InitialCommit().ID)
}

func TestCommitIDDependsOnContent(t *testing.T) {
	tracked := map[string]string{"/work/a.txt": strings.Repeat("a", 40)}
	base := NewCommit("msg", []string{strings.Repeat("0", 40)}, tracked)

	differentMsg := &Commit{
		Message: "other",
		Time:    base.Time,
		Parents: base.Parents,
		Tracked: base.Tracked,
	}
	differentMsg.ID = differentMsg.generateID()
	assert.NotEqual(t, base.ID, differentMsg.ID)

	differentTracked := &Commit{
		Message: base.Message,
		Time:    base.Time,
		Parents: base.Parents,
		Tracked: map[string]string{"/work/a.txt": strings.Repeat("b", 40)},
	}
	differentTracked.ID = differentTracked.generateID()
	assert.NotEqual(t, base.ID, differentTracked.ID)
}

func TestTimestampFormat(t *testing.T) {
	c := &Commit{Time: time.Date(1969, time.December, 31, 16, 0, 0, 0, time.FixedZone("", -8*3600))}
	assert.Equal(t, "Wed Dec 31 16:00:00 1969 -0800", c.Timestamp())
}

func TestLogEntry(t *testing.T) {
	when := time.Date(2024, time.March, 5, 10, 30, 0, 0, time.UTC)

	t.Run("ordinary commit", func(t *testing.T) {
		c := &Commit{
			ID:      strings.Repeat("a", 40),
			Message: "change things",
			Time:    when,
			Parents: []string{strings.Repeat("b", 40)},
		}
		want := "===\n" +
			"commit " + c.ID + "\n" +
			"Date: Tue Mar 5 10:30:00 2024 +0000\n" +
			"change things\n\n"
		assert.Equal(t, want, c.LogEntry())
	})

	t.Run("merge commit carries parent prefixes", func(t *testing.T) {
		p1 := strings.Repeat("b", 40)
		p2 := strings.Repeat("c", 40)
		c := &Commit{
			ID:      strings.Repeat("a", 40),
			Message: "Merged other into master.",
			Time:    when,
			Parents: []string{p1, p2},
		}
		require.Contains(t, c.LogEntry(), fmt.Sprintf("Merge: %s %s\n", p1[:7], p2[:7]))
	})
}
