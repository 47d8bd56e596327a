// Package data provides data management functionality for the IronPulse application.
// It coordinates operations between the account and entry managers.
package data

import (
	"context"
	"fmt"

	"ironpulse/local-app/internal/event"
	"ironpulse/local-app/internal/log"
	"ironpulse/local-app/internal/model"
	"ironpulse/local-app/internal/storage"
)

// ProfileChange is the payload of a ProfileUpdated event
type ProfileChange struct {
	Previous model.UserProfile
	Updated  model.UserProfile
}

// DataManager is the main struct that coordinates all data operations
type DataManager struct {
	AccountManager *AccountManager
	EntryManager   *EntryManager
	EventManager   *event.EventManager
	Config         *model.Config
	Logger         *log.Logger
}

// NewDataManager creates a new DataManager instance
func NewDataManager(accountStore AccountStore, entryStore storage.EntryStore, cfg *model.Config, logger *log.Logger) (*DataManager, error) {
	eventManager := event.NewEventManager(logger)
	m := &DataManager{
		EventManager: eventManager,
		Config:       cfg,
		Logger:       logger,
	}

	var err error
	m.AccountManager, err = NewAccountManager(accountStore, eventManager, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create AccountManager: %w", err)
	}

	m.EntryManager, err = NewEntryManager(entryStore, eventManager, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create EntryManager: %w", err)
	}

	// Weight changes saved from the profile are logged as weigh-ins
	eventManager.Subscribe(event.ProfileUpdated, m.EntryManager.handleProfileUpdated)

	return m, nil
}

// NewDataManagerFromStorage wires a DataManager to every store of s
func NewDataManagerFromStorage(s *storage.Storage, cfg *model.Config, logger *log.Logger) (*DataManager, error) {
	return NewDataManager(s, s.EntryStore, cfg, logger)
}

// ProfileUpdate saves updated over prev, keeping the registry and auth record in step.
// The username cannot change. Nothing is saved or published for an unregistered
// username and ErrNotFound is returned.
func (m *DataManager) ProfileUpdate(prev, updated model.UserProfile) error {
	ctx := context.Background()
	if prev.Username != updated.Username {
		m.Logger.Warn(ctx, "Rejected username change", log.Fields{"from": prev.Username, "to": updated.Username})
		return ErrUsernameImmutable
	}

	found, err := m.AccountManager.Update(updated)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: user %s", ErrNotFound, updated.Username)
	}

	if err := m.EventManager.Publish(event.Event{
		Type: event.ProfileUpdated,
		Data: ProfileChange{Previous: prev, Updated: updated},
	}); err != nil {
		m.Logger.Error(ctx, "Profile update follow-up failed", log.Fields{"error": err, "username": updated.Username})
		return fmt.Errorf("profile saved but follow-up failed: %w", err)
	}
	return nil
}

// OnboardingComplete saves a profile produced by the onboarding flow and seeds the
// entry log with one weigh-in when a weight was given. An unregistered username
// gets ErrNotFound and no weigh-in.
func (m *DataManager) OnboardingComplete(profile model.UserProfile) error {
	ctx := context.Background()
	m.Logger.Info(ctx, "Completing onboarding", log.Fields{"username": profile.Username})

	profile.OnboardingCompleted = true
	found, err := m.AccountManager.Update(profile)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: user %s", ErrNotFound, profile.Username)
	}

	if profile.Weight > 0 {
		if _, err := m.EntryManager.BiometricAdd(profile.Username, profile.Weight, profile.Height); err != nil {
			m.Logger.Error(ctx, "Failed to log initial weight", log.Fields{"error": err, "username": profile.Username})
			return fmt.Errorf("failed to log initial weight: %w", err)
		}
	}

	if err := m.EventManager.Publish(event.Event{Type: event.OnboardingCompleted, Data: profile}); err != nil {
		m.Logger.Warn(ctx, "OnboardingCompleted handlers failed", log.Fields{"error": err})
	}
	m.Logger.Info(ctx, "Onboarding completed", log.Fields{"username": profile.Username})
	return nil
}

// EntryExport writes a user's entry log to a JSON file.
func (m *DataManager) EntryExport(username, filename string) (int, error) {
	entries, err := m.EntryManager.EntryList(username)
	if err != nil {
		return 0, err
	}
	if err := storage.FileExport(entries, filename); err != nil {
		return 0, fmt.Errorf("failed to export entries: %w", err)
	}
	m.Logger.Info(context.Background(), "Entries exported", log.Fields{"username": username, "file": filename, "count": len(entries)})
	return len(entries), nil
}

// EntryImport reads a JSON entry log and adds the entries the user does not have yet.
// It returns how many were added.
func (m *DataManager) EntryImport(username, filename string) (int, error) {
	entries, err := storage.FileImport(filename)
	if err != nil {
		return 0, fmt.Errorf("failed to import entries: %w", err)
	}
	added, err := m.EntryManager.entryStore.EntriesMerge(username, entries)
	if err != nil {
		m.Logger.Error(context.Background(), "Failed to merge imported entries", log.Fields{"error": err, "username": username})
		return 0, err
	}
	m.Logger.Info(context.Background(), "Entries imported", log.Fields{"username": username, "file": filename, "added": added})
	return added, nil
}
