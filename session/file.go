package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/eros-saude/eros-go/model"
)

const sessionFileName = "session.json"

// sessionDoc is the on-disk shape. The key names match what earlier client
// builds stored, so an upgraded client picks up an existing session.
type sessionDoc struct {
	Token string      `json:"eros_token,omitempty"`
	User  *model.User `json:"eros_user,omitempty"`
}

// FileStore keeps the session in a single JSON document under dir. Every
// write rewrites the whole file, which is what makes last-write-wins hold.
type FileStore struct {
	mu   sync.Mutex
	path string
	doc  sessionDoc
}

// NewFileStore loads any existing session from dir, creating the directory
// if needed. A corrupt session file is discarded rather than surfaced: the
// user just has to log in again.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	s := &FileStore{path: filepath.Join(dir, sessionFileName)}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}
	if err := json.Unmarshal(data, &s.doc); err != nil {
		s.doc = sessionDoc{}
	}
	return s, nil
}

func (s *FileStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Token, s.doc.Token != ""
}

func (s *FileStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Token = token
	return s.flush()
}

func (s *FileStore) User() (*model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.User, s.doc.User != nil
}

func (s *FileStore) SetUser(u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.User = u
	return s.flush()
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = sessionDoc{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

func (s *FileStore) flush() error {
	data, err := json.Marshal(s.doc)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}
