package content

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"gitlet/internal/errors"
	"gitlet/shared/utils"
)

// ErrNotFound is returned when an object id has no stored counterpart.
var ErrNotFound = stderrors.New("object not found")

// Kind discriminates stored object types. Blobs and commits share the same
// id namespace, so every serialized object carries its kind up front.
type Kind string

const (
	KindBlob   Kind = "blob"
	KindCommit Kind = "commit"
)

// envelope is the on-disk representation of any stored object.
type envelope struct {
	Kind   Kind    `json:"kind"`
	Blob   *Blob   `json:"blob,omitempty"`
	Commit *Commit `json:"commit,omitempty"`
}

// minPrefixLen is the shortest commit-id abbreviation resolve accepts.
const minPrefixLen = 4

const cacheSize = 512

// FileStore is the content-addressed object store. Objects live one file per
// id under root/<id[:2]>/<id[2:]>; writes are idempotent because the id is a
// function of the content.
type FileStore struct {
	root   string
	cache  *lru.Cache[string, *envelope]
	logger *zap.Logger
}

func NewFileStore(root string, logger *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating object store directory: %w", err)
	}
	cache, err := lru.New[string, *envelope](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating object cache: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{root: root, cache: cache, logger: logger}, nil
}

func (s *FileStore) objectPath(id string) string {
	return filepath.Join(s.root, id[:2], id[2:])
}

// PutBlob stores b, keyed by its id. A no-op if the object already exists.
func (s *FileStore) PutBlob(b *Blob) error {
	return s.put(b.ID, &envelope{Kind: KindBlob, Blob: b})
}

// PutCommit stores c, keyed by its id.
func (s *FileStore) PutCommit(c *Commit) error {
	return s.put(c.ID, &envelope{Kind: KindCommit, Commit: c})
}

func (s *FileStore) put(id string, env *envelope) error {
	path := s.objectPath(id)
	if _, err := os.Stat(path); err == nil {
		s.cache.Add(id, env)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating object shard: %w", err)
	}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encoding object %s: %w", id, err)
	}
	if err := utils.WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("writing object %s: %w", id, err)
	}
	s.cache.Add(id, env)
	s.logger.Debug("stored object",
		zap.String("id", id),
		zap.String("kind", string(env.Kind)))
	return nil
}

// GetBlob loads the blob with the given id.
func (s *FileStore) GetBlob(id string) (*Blob, error) {
	env, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if env.Kind != KindBlob || env.Blob == nil {
		return nil, ErrNotFound
	}
	return env.Blob, nil
}

// GetCommit loads the commit with the given id.
func (s *FileStore) GetCommit(id string) (*Commit, error) {
	env, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if env.Kind != KindCommit || env.Commit == nil {
		return nil, ErrNotFound
	}
	if env.Commit.Tracked == nil {
		env.Commit.Tracked = map[string]string{}
	}
	return env.Commit, nil
}

func (s *FileStore) load(id string) (*envelope, error) {
	if len(id) < 3 {
		return nil, ErrNotFound
	}
	if env, ok := s.cache.Get(id); ok {
		return env, nil
	}
	data, err := os.ReadFile(s.objectPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading object %s: %w", id, err)
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decoding object %s: %w", id, err)
	}
	s.cache.Add(id, &env)
	return &env, nil
}

// Exists reports whether an object with the given id is stored.
func (s *FileStore) Exists(id string) bool {
	if len(id) < 3 {
		return false
	}
	if s.cache.Contains(id) {
		return true
	}
	_, err := os.Stat(s.objectPath(id))
	return err == nil
}

// IsCommit reports whether the stored object with the given id is a commit,
// without deserializing the full payload.
func (s *FileStore) IsCommit(id string) bool {
	if env, ok := s.cache.Get(id); ok {
		return env.Kind == KindCommit
	}
	data, err := os.ReadFile(s.objectPath(id))
	if err != nil {
		return false
	}
	var tag struct {
		Kind Kind `json:"kind"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return false
	}
	return tag.Kind == KindCommit
}

// ResolveCommit expands a commit-id prefix of at least minPrefixLen hex
// characters to the full id. Only commit-typed objects participate; a blob
// sharing the prefix never makes the result ambiguous.
func (s *FileStore) ResolveCommit(prefix string) (string, error) {
	if len(prefix) < minPrefixLen {
		return "", errors.ShortId()
	}
	shard := prefix[:2]
	rest := prefix[2:]

	entries, err := os.ReadDir(filepath.Join(s.root, shard))
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NoSuchCommit()
		}
		return "", fmt.Errorf("listing object shard %s: %w", shard, err)
	}

	var match string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), rest) {
			continue
		}
		id := shard + entry.Name()
		if !s.IsCommit(id) {
			continue
		}
		if match != "" {
			return "", errors.AmbiguousId()
		}
		match = id
	}
	if match == "" {
		return "", errors.NoSuchCommit()
	}
	return match, nil
}
