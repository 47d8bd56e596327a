// Package data provides data management functionality for the IronPulse application.
// This file contains operations related to the per-user entry log.
package data

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ironpulse/local-app/internal/event"
	"ironpulse/local-app/internal/log"
	"ironpulse/local-app/internal/metrics"
	"ironpulse/local-app/internal/model"
	"ironpulse/local-app/internal/storage"
)

// EntryManager builds, validates and stores activity entries.
type EntryManager struct {
	entryStore   storage.EntryStore
	eventManager *event.EventManager
	config       *model.Config
	logger       *log.Logger
	now          func() time.Time
	newID        func() string
}

// NewEntryManager creates a new EntryManager instance.
func NewEntryManager(entryStore storage.EntryStore, eventManager *event.EventManager, cfg *model.Config, logger *log.Logger) (*EntryManager, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger not initialized")
	}
	ctx := context.Background()
	logger.Info(ctx, "Creating new EntryManager", nil)

	if entryStore == nil {
		logger.Error(ctx, "EntryStore not initialized", nil)
		return nil, fmt.Errorf("entryStore not initialized")
	}
	if eventManager == nil {
		logger.Error(ctx, "EventManager not initialized", nil)
		return nil, fmt.Errorf("eventManager not initialized")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config not initialized")
	}

	return &EntryManager{
		entryStore:   entryStore,
		eventManager: eventManager,
		config:       cfg,
		logger:       logger,
		now:          time.Now,
		newID:        newEntryID,
	}, nil
}

// newEntryID returns a time-ordered UUID so ids sort by creation
func newEntryID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (em *EntryManager) base(t model.EntryType) model.EntryBase {
	return model.EntryBase{
		ID:        em.newID(),
		Timestamp: em.now().UTC().Truncate(time.Millisecond),
		Type:      t,
	}
}

// EntryAdd validates entry and prepends it to the user's log
func (em *EntryManager) EntryAdd(username string, entry model.Entry) (model.EntryList, error) {
	ctx := context.Background()
	if username == "" {
		return nil, ErrNotAuthenticated
	}
	if err := entry.Validate(); err != nil {
		em.logger.Warn(ctx, "Rejected invalid entry", log.Fields{"error": err, "username": username, "type": string(entry.Kind())})
		return nil, err
	}

	list, err := em.entryStore.EntryAppend(username, entry)
	if err != nil {
		em.logger.Error(ctx, "Failed to store entry", log.Fields{"error": err, "username": username})
		return nil, fmt.Errorf("failed to store entry: %w", err)
	}

	if err := em.eventManager.Publish(event.Event{Type: event.EntryAdded, Data: entry}); err != nil {
		em.logger.Warn(ctx, "EntryAdded handlers failed", log.Fields{"error": err})
	}
	em.logger.Info(ctx, "Entry added", log.Fields{"username": username, "type": string(entry.Kind()), "id": entry.EntryID()})
	return list, nil
}

// WorkoutAdd logs a workout, estimating calories from the user's weight
// (or the configured default weight when unset).
func (em *EntryManager) WorkoutAdd(user *model.UserProfile, exerciseType string, minutes int) (model.WorkoutEntry, error) {
	if user == nil {
		return model.WorkoutEntry{}, ErrNotAuthenticated
	}
	weight := user.Weight
	if weight <= 0 {
		weight = em.config.DefaultWeightKg
	}
	exerciseType = strings.ToLower(strings.TrimSpace(exerciseType))
	entry := model.WorkoutEntry{
		EntryBase:      em.base(model.EntryWorkout),
		ExerciseType:   exerciseType,
		Duration:       minutes,
		CaloriesBurned: metrics.CaloriesBurned(exerciseType, weight, minutes),
	}
	if _, err := em.EntryAdd(user.Username, entry); err != nil {
		return model.WorkoutEntry{}, err
	}
	return entry, nil
}

// HydrationAdd logs water intake. An amount of 0 logs the configured quick amount.
func (em *EntryManager) HydrationAdd(username string, amountMl int) (model.HydrationEntry, error) {
	if amountMl == 0 {
		amountMl = em.config.QuickHydrationMl
	}
	entry := model.HydrationEntry{
		EntryBase: em.base(model.EntryHydration),
		AmountMl:  amountMl,
	}
	if _, err := em.EntryAdd(username, entry); err != nil {
		return model.HydrationEntry{}, err
	}
	return entry, nil
}

// SleepAdd logs a night of sleep from bed and wake times (HH:MM)
func (em *EntryManager) SleepAdd(username, bedTime, wakeTime string) (model.SleepEntry, error) {
	sleep, err := metrics.SleepDuration(bedTime, wakeTime)
	if err != nil {
		return model.SleepEntry{}, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}
	entry := model.SleepEntry{
		EntryBase:     em.base(model.EntrySleep),
		BedTime:       strings.TrimSpace(bedTime),
		WakeTime:      strings.TrimSpace(wakeTime),
		DurationHours: sleep.DurationHours,
		Cycles:        sleep.Cycles,
	}
	if _, err := em.EntryAdd(username, entry); err != nil {
		return model.SleepEntry{}, err
	}
	return entry, nil
}

// JournalAdd logs a journal note. Title and content are required.
func (em *EntryManager) JournalAdd(username, title, content, mood string) (model.JournalEntry, error) {
	title, content = strings.TrimSpace(title), strings.TrimSpace(content)
	if title == "" || content == "" {
		return model.JournalEntry{}, fmt.Errorf("%w: journal title and content", ErrMissingRequiredField)
	}
	entry := model.JournalEntry{
		EntryBase: em.base(model.EntryJournal),
		Title:     title,
		Content:   content,
		Mood:      strings.TrimSpace(mood),
	}
	if _, err := em.EntryAdd(username, entry); err != nil {
		return model.JournalEntry{}, err
	}
	return entry, nil
}

// BiometricAdd logs a weigh-in with the BMI it gives at heightCm
func (em *EntryManager) BiometricAdd(username string, weightKg, heightCm float64) (model.BiometricEntry, error) {
	entry := model.BiometricEntry{
		EntryBase: em.base(model.EntryBiometrics),
		Weight:    weightKg,
		BMI:       metrics.FormatBMI(weightKg, heightCm),
	}
	if _, err := em.EntryAdd(username, entry); err != nil {
		return model.BiometricEntry{}, err
	}
	return entry, nil
}

// EntryList returns the user's log, most recent first, keeping only the given types (all when none)
func (em *EntryManager) EntryList(username string, types ...model.EntryType) (model.EntryList, error) {
	list, err := em.entryStore.EntriesGet(username)
	if err != nil {
		em.logger.Error(context.Background(), "Failed to read entries", log.Fields{"error": err, "username": username})
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}
	return list.Filter(types...), nil
}

// EntryDelete removes one entry by id
func (em *EntryManager) EntryDelete(username, id string) error {
	ctx := context.Background()
	_, found, err := em.entryStore.EntryDelete(username, id)
	if err != nil {
		em.logger.Error(ctx, "Failed to delete entry", log.Fields{"error": err, "username": username, "id": id})
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	if !found {
		return fmt.Errorf("%w: entry %s", ErrNotFound, id)
	}
	if err := em.eventManager.Publish(event.Event{Type: event.EntryDeleted, Data: id}); err != nil {
		em.logger.Warn(ctx, "EntryDeleted handlers failed", log.Fields{"error": err})
	}
	em.logger.Info(ctx, "Entry deleted", log.Fields{"username": username, "id": id})
	return nil
}

// EntryDeleteByTimestamp removes every entry logged at ts and returns how many were removed
func (em *EntryManager) EntryDeleteByTimestamp(username string, ts time.Time) (int, error) {
	ctx := context.Background()
	_, n, err := em.entryStore.EntryDeleteByTimestamp(username, ts)
	if err != nil {
		em.logger.Error(ctx, "Failed to delete entries", log.Fields{"error": err, "username": username})
		return 0, fmt.Errorf("failed to delete entries: %w", err)
	}
	if n > 1 {
		em.logger.Warn(ctx, "Timestamp matched several entries", log.Fields{"username": username, "count": n})
	}
	em.logger.Info(ctx, "Entries deleted by timestamp", log.Fields{"username": username, "count": n})
	return n, nil
}

// EntryPurge removes the user's whole log
func (em *EntryManager) EntryPurge(username string) error {
	if err := em.entryStore.EntryClear(username); err != nil {
		em.logger.Error(context.Background(), "Failed to clear entries", log.Fields{"error": err, "username": username})
		return fmt.Errorf("failed to clear entries: %w", err)
	}
	em.logger.Info(context.Background(), "Entry log cleared", log.Fields{"username": username})
	return nil
}

// handleProfileUpdated logs a weigh-in when the saved weight differs from the
// latest logged weight, or when nothing has been logged yet.
func (em *EntryManager) handleProfileUpdated(e event.Event) error {
	change, ok := e.Data.(ProfileChange)
	if !ok {
		return fmt.Errorf("unexpected event data %T", e.Data)
	}
	updated := change.Updated
	if updated.Weight <= 0 {
		return nil
	}

	list, err := em.EntryList(updated.Username, model.EntryBiometrics)
	if err != nil {
		return err
	}
	if latest, ok := metrics.LatestWeight(list); ok && latest == updated.Weight {
		return nil
	}

	_, err = em.BiometricAdd(updated.Username, updated.Weight, updated.Height)
	return err
}
