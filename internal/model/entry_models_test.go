package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func base(id string, t EntryType) EntryBase {
	return EntryBase{ID: id, Timestamp: time.Date(2024, 3, 1, 7, 30, 0, 0, time.UTC), Type: t}
}

func TestEntryListJSONKeepsVariants(t *testing.T) {
	list := EntryList{
		BiometricEntry{EntryBase: base("e5", EntryBiometrics), Weight: 80, BMI: "24.7"},
		JournalEntry{EntryBase: base("e4", EntryJournal), Title: "Leg day", Content: "Squats felt heavy", Mood: "tired"},
		SleepEntry{EntryBase: base("e3", EntrySleep), BedTime: "22:00", WakeTime: "06:00", DurationHours: 8, Cycles: 5},
		HydrationEntry{EntryBase: base("e2", EntryHydration), AmountMl: 250},
		WorkoutEntry{EntryBase: base("e1", EntryWorkout), ExerciseType: "running", Duration: 30, CaloriesBurned: 392},
	}

	data, err := json.Marshal(list)
	require.NoError(t, err)

	var decoded EntryList
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, list, decoded)
}

func TestEntryJSONFieldNames(t *testing.T) {
	data, err := json.Marshal(WorkoutEntry{EntryBase: base("w1", EntryWorkout), ExerciseType: "yoga", Duration: 60, CaloriesBurned: 225})
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"id", "timestamp", "type", "exerciseType", "duration", "caloriesBurned"} {
		assert.Contains(t, raw, key)
	}
	assert.Equal(t, "workout", raw["type"])
}

func TestDecodeEntryRejectsUnknownType(t *testing.T) {
	_, err := DecodeEntry([]byte(`{"id":"x","type":"meditation"}`))
	assert.ErrorIs(t, err, ErrInvalidEntry)

	_, err = DecodeEntry([]byte(`not json`))
	assert.ErrorIs(t, err, ErrInvalidEntry)

	var list EntryList
	assert.ErrorIs(t, json.Unmarshal([]byte(`[{"type":"sleep","id":"a"},{"type":"nap"}]`), &list), ErrInvalidEntry)
}

func TestEntryValidate(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		ok    bool
	}{
		{"workout ok", WorkoutEntry{EntryBase: base("a", EntryWorkout), ExerciseType: "boxing", Duration: 10}, true},
		{"workout zero duration", WorkoutEntry{EntryBase: base("a", EntryWorkout), ExerciseType: "boxing"}, false},
		{"workout no exercise", WorkoutEntry{EntryBase: base("a", EntryWorkout), Duration: 10}, false},
		{"hydration ok", HydrationEntry{EntryBase: base("a", EntryHydration), AmountMl: 50}, true},
		{"hydration zero", HydrationEntry{EntryBase: base("a", EntryHydration)}, false},
		{"sleep ok", SleepEntry{EntryBase: base("a", EntrySleep), DurationHours: 7.5, Cycles: 5}, true},
		{"sleep zero", SleepEntry{EntryBase: base("a", EntrySleep)}, false},
		{"journal ok", JournalEntry{EntryBase: base("a", EntryJournal), Title: "t", Content: "c"}, true},
		{"journal blank title", JournalEntry{EntryBase: base("a", EntryJournal), Title: "  ", Content: "c"}, false},
		{"biometric ok", BiometricEntry{EntryBase: base("a", EntryBiometrics), Weight: 70}, true},
		{"biometric wrong tag", BiometricEntry{EntryBase: base("a", EntryWorkout), Weight: 70}, false},
		{"missing id", HydrationEntry{EntryBase: base("", EntryHydration), AmountMl: 50}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidEntry)
			}
		})
	}
}

func TestEntryListFilter(t *testing.T) {
	list := EntryList{
		HydrationEntry{EntryBase: base("h2", EntryHydration), AmountMl: 500},
		BiometricEntry{EntryBase: base("b1", EntryBiometrics), Weight: 81},
		HydrationEntry{EntryBase: base("h1", EntryHydration), AmountMl: 250},
	}

	water := list.Filter(EntryHydration)
	require.Len(t, water, 2)
	assert.Equal(t, "h2", water[0].EntryID())
	assert.Equal(t, "h1", water[1].EntryID())

	assert.Len(t, list.Filter(), 3)
	assert.Empty(t, list.Filter(EntrySleep))

	bio := list.Biometrics()
	require.Len(t, bio, 1)
	assert.Equal(t, 81.0, bio[0].Weight)
}

func TestParseEntryType(t *testing.T) {
	got, err := ParseEntryType(" Sleep ")
	require.NoError(t, err)
	assert.Equal(t, EntrySleep, got)

	_, err = ParseEntryType("nap")
	assert.Error(t, err)
}
