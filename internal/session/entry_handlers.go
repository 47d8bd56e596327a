package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ironpulse/local-app/internal/data"
	"ironpulse/local-app/internal/log"
	"ironpulse/local-app/internal/metrics"
	"ironpulse/local-app/internal/model"
	"ironpulse/local-app/internal/units"
)

// EntryListing is a slice of the entry log with the weight unit to show it in
type EntryListing struct {
	Entries    model.EntryList
	Total      int
	WeightUnit units.WeightUnit
}

// entryTypeAliases maps command scope names to the entry types they log
var entryTypeAliases = map[string]model.EntryType{
	"water":  model.EntryHydration,
	"weight": model.EntryBiometrics,
}

// initEntryCommandHandlers initializes entry log command handlers
func initEntryCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"list":   handleEntryList,
		"delete": handleEntryDelete,
		"purge":  handleEntryPurge,
		"export": handleEntryExport,
		"import": handleEntryImport,
	}
}

func handleWorkoutAdd(s *Session, cmd model.Command) (interface{}, error) {
	user, err := s.UserGet()
	if err != nil {
		return nil, err
	}
	minutes, err := parseInt("duration", cmd.Args[1])
	if err != nil {
		return nil, err
	}
	return s.DataManager.EntryManager.WorkoutAdd(user, cmd.Args[0], minutes)
}

// handleWaterAdd logs the given amount, or the current quick amount when none is given
func handleWaterAdd(s *Session, cmd model.Command) (interface{}, error) {
	user, err := s.UserGet()
	if err != nil {
		return nil, err
	}
	amount := s.hydrationMl
	if len(cmd.Args) == 1 {
		if amount, err = parseInt("amount", cmd.Args[0]); err != nil {
			return nil, err
		}
	}
	return s.DataManager.EntryManager.HydrationAdd(user.Username, amount)
}

// handleWaterAdjust moves the quick amount by whole steps
func handleWaterAdjust(s *Session, cmd model.Command) (interface{}, error) {
	steps, err := parseInt("steps", cmd.Args[0])
	if err != nil {
		return nil, err
	}
	s.hydrationMl = metrics.AdjustHydration(s.hydrationMl, steps)
	return fmt.Sprintf("Quick water amount: %d ml", s.hydrationMl), nil
}

func handleSleepAdd(s *Session, cmd model.Command) (interface{}, error) {
	user, err := s.UserGet()
	if err != nil {
		return nil, err
	}
	return s.DataManager.EntryManager.SleepAdd(user.Username, cmd.Args[0], cmd.Args[1])
}

func handleJournalAdd(s *Session, cmd model.Command) (interface{}, error) {
	user, err := s.UserGet()
	if err != nil {
		return nil, err
	}
	var mood string
	if len(cmd.Args) == 3 {
		mood = cmd.Args[2]
	}
	return s.DataManager.EntryManager.JournalAdd(user.Username, cmd.Args[0], cmd.Args[1], mood)
}

// handleWeightAdd logs a weigh-in and makes it the profile weight
func handleWeightAdd(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	user, err := s.UserGet()
	if err != nil {
		return nil, err
	}
	kg, err := s.parseWeightKg(cmd.Args[0])
	if err != nil {
		return nil, err
	}

	entry, err := s.DataManager.EntryManager.BiometricAdd(user.Username, kg, user.Height)
	if err != nil {
		return nil, err
	}

	if user.Weight != kg {
		updated := *user
		updated.Weight = kg
		if err := s.DataManager.ProfileUpdate(*user, updated); err != nil {
			s.logger.Error(ctx, "Weigh-in logged but profile not updated", log.Fields{"error": err, "username": user.Username})
			return nil, err
		}
		s.user = &updated
	}
	return entry, nil
}

// handleEntryList lists the log, newest first, optionally filtered by type and limited
func handleEntryList(s *Session, cmd model.Command) (interface{}, error) {
	user, err := s.UserGet()
	if err != nil {
		return nil, err
	}

	var types []model.EntryType
	limit := 0
	for _, arg := range cmd.Args {
		if n, err := parseInt("limit", arg); err == nil {
			limit = n
			continue
		}
		if strings.EqualFold(arg, "all") {
			continue
		}
		if t, ok := entryTypeAliases[strings.ToLower(arg)]; ok {
			types = append(types, t)
			continue
		}
		t, err := model.ParseEntryType(arg)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}

	entries, err := s.DataManager.EntryManager.EntryList(user.Username, types...)
	if err != nil {
		return nil, err
	}
	total := len(entries)
	if limit > 0 && total > limit {
		entries = entries[:limit]
	}
	return EntryListing{Entries: entries, Total: total, WeightUnit: s.weightUnit}, nil
}

// handleEntryDelete removes an entry by id. An RFC 3339 timestamp that matches no id
// removes every entry logged at that instant.
func handleEntryDelete(s *Session, cmd model.Command) (interface{}, error) {
	user, err := s.UserGet()
	if err != nil {
		return nil, err
	}
	ref := cmd.Args[0]

	err = s.DataManager.EntryManager.EntryDelete(user.Username, ref)
	if err == nil {
		return fmt.Sprintf("Deleted entry %s", ref), nil
	}
	if !errors.Is(err, data.ErrNotFound) {
		return nil, err
	}

	ts, perr := time.Parse(time.RFC3339Nano, ref)
	if perr != nil {
		return nil, err
	}
	n, err := s.DataManager.EntryManager.EntryDeleteByTimestamp(user.Username, ts)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: no entry at %s", data.ErrNotFound, ref)
	}
	return fmt.Sprintf("Deleted %d entries logged at %s", n, ref), nil
}

func handleEntryPurge(s *Session, cmd model.Command) (interface{}, error) {
	user, err := s.UserGet()
	if err != nil {
		return nil, err
	}
	if err := s.DataManager.EntryManager.EntryPurge(user.Username); err != nil {
		return nil, err
	}
	return "Entry log cleared", nil
}

func handleEntryExport(s *Session, cmd model.Command) (interface{}, error) {
	user, err := s.UserGet()
	if err != nil {
		return nil, err
	}
	n, err := s.DataManager.EntryExport(user.Username, cmd.Args[0])
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("Exported %d entries to %s", n, cmd.Args[0]), nil
}

func handleEntryImport(s *Session, cmd model.Command) (interface{}, error) {
	user, err := s.UserGet()
	if err != nil {
		return nil, err
	}
	n, err := s.DataManager.EntryImport(user.Username, cmd.Args[0])
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("Imported %d new entries from %s", n, cmd.Args[0]), nil
}
