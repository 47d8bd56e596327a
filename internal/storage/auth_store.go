package storage

import (
	"fmt"

	"ironpulse/local-app/internal/model"
)

// AuthStore persists which profile is currently logged in.
type AuthStore interface {
	AuthGet() (model.AuthState, error)
	AuthSet(profile *model.UserProfile) error
	AuthClear() error
}

// AuthStorage implements the AuthStore interface.
type AuthStorage struct {
	storage *Storage
}

// NewAuthStorage creates a new AuthStorage instance.
func NewAuthStorage(storage *Storage) *AuthStorage {
	return &AuthStorage{storage: storage}
}

// AuthGet returns the persisted auth record; a missing or corrupt record reads as logged out
func (s *AuthStorage) AuthGet() (model.AuthState, error) {
	var state model.AuthState
	found, err := s.storage.readJSON(s.storage.keys.Auth(), &state)
	if err != nil {
		return model.AuthState{}, fmt.Errorf("failed to read auth state: %w", err)
	}
	if !found || !state.IsAuthenticated || state.User == nil {
		return model.AuthState{}, nil
	}
	return state, nil
}

// AuthSet records profile as the authenticated user
func (s *AuthStorage) AuthSet(profile *model.UserProfile) error {
	return s.storage.authSet(profile)
}

// AuthClear records that nobody is logged in
func (s *AuthStorage) AuthClear() error {
	if err := s.storage.writeJSON(s.storage.keys.Auth(), model.AuthState{}); err != nil {
		return fmt.Errorf("failed to clear auth state: %w", err)
	}
	return nil
}

func (s *Storage) authSet(profile *model.UserProfile) error {
	if profile == nil {
		return fmt.Errorf("cannot authenticate a nil profile")
	}
	state := model.AuthState{IsAuthenticated: true, User: profile}
	if err := s.writeJSON(s.keys.Auth(), state); err != nil {
		return fmt.Errorf("failed to write auth state: %w", err)
	}
	return nil
}
