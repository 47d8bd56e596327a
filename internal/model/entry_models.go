package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// EntryType discriminates the kinds of activity records.
type EntryType string

const (
	EntryWorkout    EntryType = "workout"
	EntryHydration  EntryType = "hydration"
	EntrySleep      EntryType = "sleep"
	EntryJournal    EntryType = "journal"
	EntryBiometrics EntryType = "biometrics"
)

// EntryTypes lists every entry kind in display order.
var EntryTypes = []EntryType{EntryWorkout, EntryHydration, EntrySleep, EntryJournal, EntryBiometrics}

// ErrInvalidEntry is returned when an entry fails validation or cannot be decoded.
var ErrInvalidEntry = errors.New("invalid entry")

// ParseEntryType validates an entry type name
func ParseEntryType(s string) (EntryType, error) {
	t := EntryType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range EntryTypes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown entry type %q", ErrInvalidEntry, s)
}

// Entry is one immutable, timestamped activity record. The concrete types are
// WorkoutEntry, HydrationEntry, SleepEntry, JournalEntry and BiometricEntry.
type Entry interface {
	EntryID() string
	EntryTime() time.Time
	Kind() EntryType
	Validate() error
	isEntry()
}

// EntryBase holds the fields shared by every entry kind.
type EntryBase struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Type      EntryType `json:"type"`
}

func (b EntryBase) EntryID() string      { return b.ID }
func (b EntryBase) EntryTime() time.Time { return b.Timestamp }
func (b EntryBase) Kind() EntryType      { return b.Type }

func (b EntryBase) validateBase(want EntryType) error {
	if b.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidEntry)
	}
	if b.Timestamp.IsZero() {
		return fmt.Errorf("%w: missing timestamp", ErrInvalidEntry)
	}
	if b.Type != want {
		return fmt.Errorf("%w: type %q does not match %q", ErrInvalidEntry, b.Type, want)
	}
	return nil
}

// WorkoutEntry records a training session.
type WorkoutEntry struct {
	EntryBase
	ExerciseType   string `json:"exerciseType"`
	Duration       int    `json:"duration"`
	CaloriesBurned int    `json:"caloriesBurned"`
}

// HydrationEntry records water intake.
type HydrationEntry struct {
	EntryBase
	AmountMl int `json:"amountMl"`
}

// SleepEntry records one night of sleep. BedTime and WakeTime are HH:MM.
type SleepEntry struct {
	EntryBase
	BedTime       string  `json:"bedTime"`
	WakeTime      string  `json:"wakeTime"`
	DurationHours float64 `json:"durationHours"`
	Cycles        int     `json:"cycles"`
}

// JournalEntry is a free text training note.
type JournalEntry struct {
	EntryBase
	Title   string `json:"title"`
	Content string `json:"content"`
	Mood    string `json:"mood,omitempty"`
}

// BiometricEntry records body weight (kg) and the BMI derived from it,
// formatted to one decimal.
type BiometricEntry struct {
	EntryBase
	Weight float64 `json:"weight"`
	BMI    string  `json:"bmi"`
}

func (WorkoutEntry) isEntry()   {}
func (HydrationEntry) isEntry() {}
func (SleepEntry) isEntry()     {}
func (JournalEntry) isEntry()   {}
func (BiometricEntry) isEntry() {}

// Validate checks the workout fields
func (e WorkoutEntry) Validate() error {
	if err := e.validateBase(EntryWorkout); err != nil {
		return err
	}
	if strings.TrimSpace(e.ExerciseType) == "" {
		return fmt.Errorf("%w: workout needs an exercise type", ErrInvalidEntry)
	}
	if e.Duration <= 0 {
		return fmt.Errorf("%w: workout duration must be positive", ErrInvalidEntry)
	}
	if e.CaloriesBurned < 0 {
		return fmt.Errorf("%w: calories burned cannot be negative", ErrInvalidEntry)
	}
	return nil
}

// Validate checks the hydration fields
func (e HydrationEntry) Validate() error {
	if err := e.validateBase(EntryHydration); err != nil {
		return err
	}
	if e.AmountMl <= 0 {
		return fmt.Errorf("%w: hydration amount must be positive", ErrInvalidEntry)
	}
	return nil
}

// Validate checks the sleep fields
func (e SleepEntry) Validate() error {
	if err := e.validateBase(EntrySleep); err != nil {
		return err
	}
	if e.DurationHours <= 0 {
		return fmt.Errorf("%w: sleep duration must be positive", ErrInvalidEntry)
	}
	if e.Cycles < 0 {
		return fmt.Errorf("%w: sleep cycles cannot be negative", ErrInvalidEntry)
	}
	return nil
}

// Validate checks the journal fields
func (e JournalEntry) Validate() error {
	if err := e.validateBase(EntryJournal); err != nil {
		return err
	}
	if strings.TrimSpace(e.Title) == "" || strings.TrimSpace(e.Content) == "" {
		return fmt.Errorf("%w: journal needs a title and content", ErrInvalidEntry)
	}
	return nil
}

// Validate checks the biometric fields
func (e BiometricEntry) Validate() error {
	if err := e.validateBase(EntryBiometrics); err != nil {
		return err
	}
	if e.Weight <= 0 {
		return fmt.Errorf("%w: weight must be positive", ErrInvalidEntry)
	}
	return nil
}

// DecodeEntry decodes a single JSON entry, selecting the concrete type from its "type" field.
func DecodeEntry(data []byte) (Entry, error) {
	var head struct {
		Type EntryType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}

	var (
		entry Entry
		err   error
	)
	switch head.Type {
	case EntryWorkout:
		var e WorkoutEntry
		err = json.Unmarshal(data, &e)
		entry = e
	case EntryHydration:
		var e HydrationEntry
		err = json.Unmarshal(data, &e)
		entry = e
	case EntrySleep:
		var e SleepEntry
		err = json.Unmarshal(data, &e)
		entry = e
	case EntryJournal:
		var e JournalEntry
		err = json.Unmarshal(data, &e)
		entry = e
	case EntryBiometrics:
		var e BiometricEntry
		err = json.Unmarshal(data, &e)
		entry = e
	default:
		return nil, fmt.Errorf("%w: unknown entry type %q", ErrInvalidEntry, head.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}
	return entry, nil
}

// EntryList is an entry log ordered most recent first.
type EntryList []Entry

// UnmarshalJSON decodes a heterogeneous JSON array of entries
func (l *EntryList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}
	out := make(EntryList, 0, len(raw))
	for i, r := range raw {
		entry, err := DecodeEntry(r)
		if err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		out = append(out, entry)
	}
	*l = out
	return nil
}

// Filter returns the entries of the given kinds, keeping order
func (l EntryList) Filter(types ...EntryType) EntryList {
	if len(types) == 0 {
		return l
	}
	out := EntryList{}
	for _, e := range l {
		for _, t := range types {
			if e.Kind() == t {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// Biometrics returns the biometric entries, keeping order
func (l EntryList) Biometrics() []BiometricEntry {
	var out []BiometricEntry
	for _, e := range l {
		if b, ok := e.(BiometricEntry); ok {
			out = append(out, b)
		}
	}
	return out
}
