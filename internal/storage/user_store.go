package storage

import (
	"errors"
	"fmt"

	"ironpulse/local-app/internal/model"
)

// ErrUserExists is returned when adding an account whose username is taken
var ErrUserExists = errors.New("user already exists")

// UserStore defines the interface for account registry operations.
type UserStore interface {
	UserAdd(account model.StoredAccount) error
	UserGet(username string) (*model.StoredAccount, error)
	UserUpdate(profile model.UserProfile) (bool, error)
	UsersGet() (map[string]model.StoredAccount, error)
}

// UserStorage implements the UserStore interface.
// The whole registry is one record mapping username to account.
type UserStorage struct {
	storage *Storage
}

// NewUserStorage creates a new UserStorage instance.
func NewUserStorage(storage *Storage) *UserStorage {
	return &UserStorage{storage: storage}
}

// UserAdd inserts a new account. It fails with ErrUserExists if the username is present.
func (s *UserStorage) UserAdd(account model.StoredAccount) error {
	return s.storage.withTx(func() error {
		return s.storage.userAdd(account)
	})
}

// UserGet returns the account for username, or nil when there is none
func (s *UserStorage) UserGet(username string) (*model.StoredAccount, error) {
	users, err := s.storage.usersRead()
	if err != nil {
		return nil, err
	}
	account, ok := users[username]
	if !ok {
		return nil, nil
	}
	return &account, nil
}

// UserUpdate replaces the stored profile for profile.Username, keeping the password.
// It reports false without writing anything when the username is unknown.
func (s *UserStorage) UserUpdate(profile model.UserProfile) (bool, error) {
	var found bool
	err := s.storage.withTx(func() error {
		var err error
		found, err = s.storage.userUpdate(profile)
		return err
	})
	return found, err
}

// UsersGet returns the whole registry
func (s *UserStorage) UsersGet() (map[string]model.StoredAccount, error) {
	return s.storage.usersRead()
}

func (s *Storage) usersRead() (map[string]model.StoredAccount, error) {
	users := map[string]model.StoredAccount{}
	found, err := s.readJSON(s.keys.Users(), &users)
	if err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}
	if !found {
		return map[string]model.StoredAccount{}, nil
	}
	return users, nil
}

func (s *Storage) userAdd(account model.StoredAccount) error {
	users, err := s.usersRead()
	if err != nil {
		return err
	}
	if _, exists := users[account.Profile.Username]; exists {
		return fmt.Errorf("%w: %s", ErrUserExists, account.Profile.Username)
	}
	users[account.Profile.Username] = account
	if err := s.writeJSON(s.keys.Users(), users); err != nil {
		return fmt.Errorf("failed to add user: %w", err)
	}
	return nil
}

func (s *Storage) userUpdate(profile model.UserProfile) (bool, error) {
	users, err := s.usersRead()
	if err != nil {
		return false, err
	}
	account, exists := users[profile.Username]
	if !exists {
		return false, nil
	}
	account.Profile = profile
	users[profile.Username] = account
	if err := s.writeJSON(s.keys.Users(), users); err != nil {
		return false, fmt.Errorf("failed to update user: %w", err)
	}
	return true, nil
}
