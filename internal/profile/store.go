package profile

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/renameio/v2"
)

// Store persists the selected profile across restarts.
type Store interface {
	// Load returns the persisted profile. An error means the slot is
	// missing or invalid; callers should fall back to LeadFree and
	// write the default back.
	Load() (Profile, error)

	// Save persists the profile. Best effort: callers log failures and
	// carry on.
	Save(Profile) error
}

// FileStore keeps the profile id as a single ASCII digit in a file. Writes
// go through an atomic rename so a power cut mid-write cannot corrupt the
// slot.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads and validates the persisted profile id.
func (s *FileStore) Load() (Profile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return LeadFree, fmt.Errorf("read profile slot: %w", err)
	}
	text := strings.TrimSpace(string(data))
	n, err := strconv.Atoi(text)
	if err != nil || n < 0 || !Profile(n).Valid() {
		return LeadFree, fmt.Errorf("invalid profile id %q", text)
	}
	return Profile(n), nil
}

// Save writes the profile id atomically.
func (s *FileStore) Save(p Profile) error {
	data := []byte(strconv.Itoa(int(p)) + "\n")
	if err := renameio.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write profile slot: %w", err)
	}
	return nil
}
