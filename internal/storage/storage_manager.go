package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"ironpulse/local-app/internal/log"
	"ironpulse/local-app/internal/model"
)

// Keys names the persisted records. With the default prefix they are
// ironpulse_auth, ironpulse_users and ironpulse_entries_<username>.
type Keys struct {
	Prefix string
}

func (k Keys) Auth() string                   { return k.Prefix + "_auth" }
func (k Keys) Users() string                  { return k.Prefix + "_users" }
func (k Keys) Entries(username string) string { return k.Prefix + "_entries_" + username }

// Storage represents the main storage implementation.
type Storage struct {
	db     Database
	keys   Keys
	logger *log.Logger
	UserStore
	AuthStore
	EntryStore
}

// NewStorage creates a new Storage instance and initializes the database.
func NewStorage(config *model.Config, logger *log.Logger) (*Storage, error) {
	dbDriver, err := validateDBDriver(config.DatabaseType)
	if err != nil {
		return nil, fmt.Errorf("invalid database driver '%s': %w", config.DatabaseType, err)
	}

	db, err := NewDatabase(dbDriver, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create database instance: %w", err)
	}

	// Construct the full path for the database file
	dataSourceName := filepath.Join(config.DatabaseDir, config.DatabaseFile)

	// Open the database connection
	if err := db.Open(dataSourceName); err != nil {
		return nil, fmt.Errorf("failed to open database connection '%s': %w", dataSourceName, err)
	}

	if err := db.InitSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return newStorage(db, config.KeyPrefix, logger), nil
}

// NewStorageWithDatabase wraps an already opened database
func NewStorageWithDatabase(db Database, keyPrefix string, logger *log.Logger) (*Storage, error) {
	if err := db.InitSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return newStorage(db, keyPrefix, logger), nil
}

func newStorage(db Database, keyPrefix string, logger *log.Logger) *Storage {
	if keyPrefix == "" {
		keyPrefix = "ironpulse"
	}
	storage := &Storage{
		db:     db,
		keys:   Keys{Prefix: keyPrefix},
		logger: logger,
	}

	// Create stores
	storage.UserStore = NewUserStorage(storage)
	storage.AuthStore = NewAuthStorage(storage)
	storage.EntryStore = NewEntryStorage(storage)

	return storage
}

// Close closes the database connection.
func (s *Storage) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

// GetDatabase returns the database instance
func (s *Storage) GetDatabase() Database {
	return s.db
}

// Keys returns the key naming in use
func (s *Storage) Keys() Keys {
	return s.keys
}

// AccountCreate adds a new account and, when login is set, makes it the
// authenticated user in the same transaction.
func (s *Storage) AccountCreate(account model.StoredAccount, login bool) error {
	return s.withTx(func() error {
		if err := s.userAdd(account); err != nil {
			return err
		}
		if login {
			return s.authSet(&account.Profile)
		}
		return nil
	})
}

// ProfileSave writes profile to the registry and the auth record together.
// Nothing is written when no account exists for the username; the returned
// bool reports whether it was found.
func (s *Storage) ProfileSave(profile model.UserProfile) (bool, error) {
	var found bool
	err := s.withTx(func() error {
		var err error
		found, err = s.userUpdate(profile)
		if err != nil || !found {
			return err
		}
		return s.authSet(&profile)
	})
	return found, err
}

// withTx runs fn inside a transaction, rolling back when it fails
func (s *Storage) withTx(fn func() error) error {
	if err := s.db.Begin(); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(); err != nil {
		if rbErr := s.db.Rollback(); rbErr != nil {
			s.logger.Error(context.Background(), "Rollback failed", log.Fields{"error": rbErr})
		}
		return err
	}
	if err := s.db.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// readJSON decodes the record under key into v. A record that cannot be
// decoded is logged and reported as absent.
func (s *Storage) readJSON(key string, v interface{}) (bool, error) {
	data, ok, err := s.db.Get(key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Warn(context.Background(), "Corrupt record treated as absent", log.Fields{"key": key, "error": err})
		return false, nil
	}
	return true, nil
}

func (s *Storage) writeJSON(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.db.Put(key, data)
}
