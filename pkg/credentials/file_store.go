package credentials

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/evanterry/surveyor/pkg/crypto"
)

const (
	fileVersion       = 1
	keyFileName       = "credentials.key"
	lockTimeout       = 3 * time.Second
	lockRetryInterval = 100 * time.Millisecond

	labelUsername = "username"
	labelPassword = "password"
)

var _ Store = (*FileStore)(nil)

// credentialFile is the on-disk layout. Both values are sealed with crypto.SecretBox.
type credentialFile struct {
	Version   int       `yaml:"version"`
	Username  string    `yaml:"username"`
	Password  string    `yaml:"password"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

// FileStore keeps encrypted credentials in a YAML file. A sibling ".lock" file serialises
// access across processes. When no key is configured a random one is generated on first
// write into credentials.key next to the file.
type FileStore struct {
	path   string
	key    string
	locks  LockFactory
	logger *zap.Logger

	mu  sync.Mutex
	box *crypto.SecretBox
}

// FileStoreOption configures a FileStore.
type FileStoreOption func(*FileStore)

// WithLockFactory replaces the gofrs/flock based locking.
func WithLockFactory(f LockFactory) FileStoreOption {
	return func(s *FileStore) { s.locks = f }
}

// NewFileStore creates a store at path. key may be empty.
func NewFileStore(path, key string, logger *zap.Logger, opts ...FileStoreOption) *FileStore {
	s := &FileStore{
		path:   path,
		key:    key,
		locks:  FlockFactory{},
		logger: logger.Named("credentials"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the credentials file location.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(ctx context.Context) (Credentials, bool, error) {
	var creds Credentials
	err := s.withLock(ctx, func() error {
		data, err := os.ReadFile(s.path)
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read credentials file: %w", err)
		}

		var f credentialFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("failed to parse credentials file: %w", err)
		}
		if f.Username == "" && f.Password == "" {
			return nil
		}

		box, err := s.secretBox(false)
		if err != nil {
			return err
		}
		if creds.Username, err = box.Open(labelUsername, f.Username); err != nil {
			return fmt.Errorf("failed to decrypt username: %w", err)
		}
		if creds.Password, err = box.Open(labelPassword, f.Password); err != nil {
			return fmt.Errorf("failed to decrypt password: %w", err)
		}
		return nil
	})
	if err != nil {
		return Credentials{}, false, err
	}
	return creds, creds.Valid(), nil
}

func (s *FileStore) Set(ctx context.Context, c Credentials) error {
	if !c.Valid() {
		return s.Delete(ctx)
	}

	return s.withLock(ctx, func() error {
		box, err := s.secretBox(true)
		if err != nil {
			return err
		}

		f := credentialFile{Version: fileVersion, UpdatedAt: time.Now().UTC()}
		if f.Username, err = box.Seal(labelUsername, c.Username); err != nil {
			return fmt.Errorf("failed to encrypt username: %w", err)
		}
		if f.Password, err = box.Seal(labelPassword, c.Password); err != nil {
			return fmt.Errorf("failed to encrypt password: %w", err)
		}

		data, err := yaml.Marshal(&f)
		if err != nil {
			return fmt.Errorf("failed to encode credentials file: %w", err)
		}
		if err := writeFileAtomic(s.path, data); err != nil {
			return err
		}

		s.logger.Debug("Stored credentials", zap.String("path", s.path))
		return nil
	})
}

func (s *FileStore) Delete(ctx context.Context) error {
	return s.withLock(ctx, func() error {
		err := os.Remove(s.path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove credentials file: %w", err)
		}
		s.logger.Debug("Removed credentials", zap.String("path", s.path))
		return nil
	})
}

func (s *FileStore) withLock(ctx context.Context, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}

	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	lock := s.locks.New(s.path + ".lock")
	locked, err := lock.TryLockContext(lockCtx, lockRetryInterval)
	if err != nil {
		return fmt.Errorf("failed to acquire credentials lock: %w", err)
	}
	if !locked {
		return errors.New("could not acquire credentials lock")
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			s.logger.Warn("Failed to release credentials lock", zap.Error(err))
		}
	}()

	return fn()
}

// secretBox returns the cached box, loading the key from config or the key file.
// With create set, a missing key file is generated.
func (s *FileStore) secretBox(create bool) (*crypto.SecretBox, error) {
	if s.box != nil {
		return s.box, nil
	}

	key := s.key
	if key == "" {
		var err error
		if key, err = s.loadKeyFile(create); err != nil {
			return nil, err
		}
	}

	box, err := crypto.NewSecretBox(key)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise credentials encryption: %w", err)
	}
	s.box = box
	return box, nil
}

func (s *FileStore) loadKeyFile(create bool) (string, error) {
	keyPath := filepath.Join(filepath.Dir(s.path), keyFileName)

	data, err := os.ReadFile(keyPath)
	if err == nil {
		return strings.TrimSpace(string(data)), nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("failed to read credentials key: %w", err)
	}
	if !create {
		return "", fmt.Errorf("credentials key %s is missing", keyPath)
	}

	key, err := crypto.GenerateKey()
	if err != nil {
		return "", err
	}
	if err := writeFileAtomic(keyPath, []byte(key+"\n")); err != nil {
		return "", err
	}
	s.logger.Info("Generated credentials key", zap.String("path", keyPath))
	return key, nil
}

// writeFileAtomic writes data with mode 0600 via a temp file in the same directory.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
