package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashContent(t *testing.T) {
	tests := []struct {
		name     string
		a, b     [][]byte
		wantSame bool
	}{
		{
			name:     "identical segments",
			a:        [][]byte{[]byte("path"), []byte("content")},
			b:        [][]byte{[]byte("path"), []byte("content")},
			wantSame: true,
		},
		{
			name:     "different content",
			a:        [][]byte{[]byte("path"), []byte("content")},
			b:        [][]byte{[]byte("path"), []byte("other")},
			wantSame: false,
		},
		{
			name:     "segment order matters",
			a:        [][]byte{[]byte("ab"), []byte("c")},
			b:        [][]byte{[]byte("c"), []byte("ab")},
			wantSame: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ha := HashContent(tt.a...)
			hb := HashContent(tt.b...)
			assert.Len(t, ha, 40)
			if tt.wantSame {
				assert.Equal(t, ha, hb)
			} else {
				assert.NotEqual(t, ha, hb)
			}
		})
	}
}

func TestSortedKeys(t *testing.T) {
	m := map[string]int{"b": 1, "a": 2, "c": 3}
	assert.Equal(t, []string{"a", "b", "c"}, SortedKeys(m))
	assert.Empty(t, SortedKeys(map[string]int{}))
}

func TestWriteJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index")

	in := map[string]string{"k": "v"}
	require.NoError(t, WriteJSON(path, in))

	var out map[string]string
	require.NoError(t, ReadJSON(path, &out))
	assert.Equal(t, in, out)

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "index", entries[0].Name())
}

func TestWriteFileAtomicOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ref")
	require.NoError(t, WriteFileAtomic(path, []byte("one")))
	require.NoError(t, WriteFileAtomic(path, []byte("two")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}
