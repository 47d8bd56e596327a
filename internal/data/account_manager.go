// Package data provides data management functionality for the IronPulse application.
// This file contains operations related to the account registry and the auth record.
package data

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"ironpulse/local-app/internal/event"
	"ironpulse/local-app/internal/log"
	"ironpulse/local-app/internal/model"
	"ironpulse/local-app/internal/storage"
)

// AccountStore is the storage the account manager needs: the registry, the
// auth record, and the writes that must touch both together.
type AccountStore interface {
	storage.UserStore
	storage.AuthStore
	AccountCreate(account model.StoredAccount, login bool) error
	ProfileSave(profile model.UserProfile) (bool, error)
}

// AccountManager handles registration, login and profile persistence.
type AccountManager struct {
	store        AccountStore
	eventManager *event.EventManager
	logger       *log.Logger
	now          func() time.Time
}

// NewAccountManager creates a new AccountManager instance.
func NewAccountManager(store AccountStore, eventManager *event.EventManager, logger *log.Logger) (*AccountManager, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger not initialized")
	}
	ctx := context.Background()
	logger.Info(ctx, "Creating new AccountManager", nil)

	if store == nil {
		logger.Error(ctx, "AccountStore not initialized", nil)
		return nil, fmt.Errorf("accountStore not initialized")
	}
	if eventManager == nil {
		logger.Error(ctx, "EventManager not initialized", nil)
		return nil, fmt.Errorf("eventManager not initialized")
	}

	return &AccountManager{
		store:        store,
		eventManager: eventManager,
		logger:       logger,
		now:          time.Now,
	}, nil
}

// Register creates an account with the initial profile defaults and logs it in.
func (am *AccountManager) Register(username, email, password string) (*model.UserProfile, error) {
	profile := model.UserProfile{
		Username:            strings.TrimSpace(username),
		Email:               strings.TrimSpace(email),
		ActivityLevel:       model.ActivityModerate,
		Goal:                model.GoalFitness,
		JoinedAt:            am.now().UTC().Truncate(time.Millisecond),
		OnboardingCompleted: false,
	}
	if err := am.RegisterProfile(profile, password, true); err != nil {
		return nil, err
	}
	return &profile, nil
}

// RegisterProfile inserts profile with password into the registry. It fails with
// ErrUsernameTaken when the username exists, leaving the stored account untouched.
// When login is set the new account also becomes the authenticated user.
func (am *AccountManager) RegisterProfile(profile model.UserProfile, password string, login bool) error {
	ctx := context.Background()
	am.logger.Info(ctx, "Registering account", log.Fields{"username": profile.Username})

	if profile.Username == "" {
		return fmt.Errorf("%w: username", ErrMissingRequiredField)
	}
	if password == "" {
		return fmt.Errorf("%w: password", ErrMissingRequiredField)
	}

	err := am.store.AccountCreate(model.StoredAccount{Profile: profile, Password: password}, login)
	if errors.Is(err, storage.ErrUserExists) {
		am.logger.Warn(ctx, "Username already taken", log.Fields{"username": profile.Username})
		return ErrUsernameTaken
	}
	if err != nil {
		am.logger.Error(ctx, "Failed to register account", log.Fields{"error": err, "username": profile.Username})
		return fmt.Errorf("failed to register account: %w", err)
	}

	if err := am.eventManager.Publish(event.Event{Type: event.UserRegistered, Data: profile}); err != nil {
		am.logger.Warn(ctx, "UserRegistered handlers failed", log.Fields{"error": err})
	}
	am.logger.Info(ctx, "Account registered successfully", log.Fields{"username": profile.Username})
	return nil
}

// Login checks the password against the registry and makes the account the
// authenticated user. Unknown usernames and wrong passwords both give ErrInvalidCredentials.
func (am *AccountManager) Login(username, password string) (*model.UserProfile, error) {
	ctx := context.Background()
	am.logger.Info(ctx, "Authenticating user", log.Fields{"username": username})

	account, err := am.store.UserGet(username)
	if err != nil {
		am.logger.Error(ctx, "Error retrieving user", log.Fields{"error": err, "username": username})
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	// Passwords are stored and compared in plain text
	if account == nil || subtle.ConstantTimeCompare([]byte(account.Password), []byte(password)) != 1 {
		am.logger.Warn(ctx, "Authentication failed", log.Fields{"username": username})
		return nil, ErrInvalidCredentials
	}

	profile := account.Profile
	if err := am.store.AuthSet(&profile); err != nil {
		am.logger.Error(ctx, "Failed to store session", log.Fields{"error": err, "username": username})
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	if err := am.eventManager.Publish(event.Event{Type: event.UserLoggedIn, Data: profile}); err != nil {
		am.logger.Warn(ctx, "UserLoggedIn handlers failed", log.Fields{"error": err})
	}
	am.logger.Info(ctx, "User authenticated successfully", log.Fields{"username": username})
	return &profile, nil
}

// Logout clears the auth record
func (am *AccountManager) Logout(username string) error {
	ctx := context.Background()
	if err := am.store.AuthClear(); err != nil {
		am.logger.Error(ctx, "Failed to clear session", log.Fields{"error": err})
		return fmt.Errorf("failed to clear session: %w", err)
	}
	if err := am.eventManager.Publish(event.Event{Type: event.UserLoggedOut, Data: username}); err != nil {
		am.logger.Warn(ctx, "UserLoggedOut handlers failed", log.Fields{"error": err})
	}
	am.logger.Info(ctx, "User logged out", log.Fields{"username": username})
	return nil
}

// CurrentUser returns the persisted authenticated profile, or nil when logged out
func (am *AccountManager) CurrentUser() (*model.UserProfile, error) {
	state, err := am.store.AuthGet()
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if !state.IsAuthenticated {
		return nil, nil
	}
	return state.User, nil
}

// Update writes profile to the registry and the auth record together.
// Updating a username that is not registered does nothing; a warning is logged
// and found is false.
func (am *AccountManager) Update(profile model.UserProfile) (found bool, err error) {
	ctx := context.Background()
	am.logger.Info(ctx, "Updating profile", log.Fields{"username": profile.Username})

	found, err = am.store.ProfileSave(profile)
	if err != nil {
		am.logger.Error(ctx, "Failed to update profile", log.Fields{"error": err, "username": profile.Username})
		return false, fmt.Errorf("failed to update profile: %w", err)
	}
	if !found {
		am.logger.Warn(ctx, "Profile update for unknown user ignored", log.Fields{"username": profile.Username})
		return false, nil
	}

	am.logger.Info(ctx, "Profile updated successfully", log.Fields{"username": profile.Username})
	return true, nil
}

// Exists reports whether username is registered
func (am *AccountManager) Exists(username string) (bool, error) {
	account, err := am.store.UserGet(username)
	if err != nil {
		return false, fmt.Errorf("error retrieving user: %w", err)
	}
	return account != nil, nil
}
