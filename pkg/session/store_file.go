package session

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FileStore keeps the session record in a JSON file, the terminal analog of
// the browser's localStorage. Load on a missing file yields (nil, nil).
type FileStore struct {
	path   string
	logger *zap.SugaredLogger
}

func NewFileStore(path string, logger *zap.SugaredLogger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// Open creates a fresh session for the given user and persists it.
func (s *FileStore) Open(u *User) (*Session, error) {
	sess := &Session{
		ID:      uuid.New().String(),
		User:    u,
		Created: time.Now(),
	}

	err := s.Save(sess)
	if err != nil {
		return nil, err
	}

	return sess, nil
}

func (s *FileStore) Load() (*Session, error) {
	data, err := ioutil.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	sess := &Session{}
	err = json.Unmarshal(data, sess)
	if err != nil {
		s.logger.Errorf("corrupt session file %s: %v", s.path, err)
		return nil, err
	}

	return sess, nil
}

func (s *FileStore) Save(sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(s.path), 0o700)
	if err != nil {
		return err
	}

	return ioutil.WriteFile(s.path, data, 0o600)
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}

	return err
}
