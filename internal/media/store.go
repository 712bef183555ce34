// Package media manages downloaded photo artifacts on the local filesystem.
package media

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store addresses media artifacts by the {channel_username}_{message_id}.jpg
// convention inside a configured directory. The scraper writes artifacts,
// duplicate cleanup removes them; both sides derive the path from record
// fields rather than storing it.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Path returns the artifact path for a channel message.
func (s *Store) Path(channelUsername string, messageID int64) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_%d.jpg", channelUsername, messageID))
}

// Remove deletes the artifact for a channel message.
// Returns an error when the file exists but cannot be removed; a missing
// file is not an error.
func (s *Store) Remove(channelUsername string, messageID int64) error {
	path := s.Path(channelUsername, messageID)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove artifact %s: %w", path, err)
	}
	return nil
}
