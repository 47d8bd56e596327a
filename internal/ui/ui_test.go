package ui

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ironpulse/local-app/internal/metrics"
	"ironpulse/local-app/internal/model"
	"ironpulse/local-app/internal/units"
)

func TestPrintMarkup(t *testing.T) {
	var buf bytes.Buffer
	NewUI(&buf, false).PrintMarkup("{{green}}ok{{default}} done {{nope}}x")
	assert.Equal(t, "ok done x\n", buf.String())

	buf.Reset()
	NewUI(&buf, true).PrintMarkup("{{green}}ok{{default}}")
	assert.Equal(t, string(ColorGreen)+"ok"+string(ColorDefault)+"\n", buf.String())
}

func TestPromptString(t *testing.T) {
	u := NewUI(&bytes.Buffer{}, false)
	assert.Equal(t, "> ", u.PromptString("", false))
	assert.Equal(t, "alice > ", u.PromptString("alice", false))
	assert.Equal(t, "alice (onboarding) > ", u.PromptString("alice", true))
}

func TestBar(t *testing.T) {
	assert.Equal(t, "[#####.....]", bar(50, 10))
	assert.Equal(t, "[..........]", bar(-3, 10))
	assert.Equal(t, "[##########]", bar(140, 10))
}

func TestEntrySummary(t *testing.T) {
	ts := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	base := func(k model.EntryType) model.EntryBase { return model.EntryBase{ID: "id", Timestamp: ts, Type: k} }

	tests := []struct {
		entry model.Entry
		want  string
	}{
		{model.WorkoutEntry{EntryBase: base(model.EntryWorkout), ExerciseType: "yoga", Duration: 45, CaloriesBurned: 180}, "yoga, 45 min, 180 kcal"},
		{model.HydrationEntry{EntryBase: base(model.EntryHydration), AmountMl: 250}, "250 ml"},
		{model.SleepEntry{EntryBase: base(model.EntrySleep), BedTime: "23:30", WakeTime: "07:00", DurationHours: 7.5, Cycles: 5}, "23:30 to 07:00, 7h 30m, 5 cycles"},
		{model.JournalEntry{EntryBase: base(model.EntryJournal), Title: "Rest", Content: "Easy day"}, "Rest: Easy day"},
		{model.JournalEntry{EntryBase: base(model.EntryJournal), Title: "Rest", Content: "Easy day", Mood: "calm"}, "Rest: Easy day (calm)"},
		{model.BiometricEntry{EntryBase: base(model.EntryBiometrics), Weight: 80, BMI: "24.7"}, "176.4 lbs, BMI 24.7"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EntrySummary(tt.entry, units.Lbs))
	}
}

func TestEntryListTruncated(t *testing.T) {
	var buf bytes.Buffer
	u := NewUI(&buf, false)
	u.EntryList(nil, 0, units.Kg)
	assert.Equal(t, "No entries found.\n", buf.String())

	buf.Reset()
	e := model.HydrationEntry{EntryBase: model.EntryBase{ID: "h1", Timestamp: time.Now(), Type: model.EntryHydration}, AmountMl: 300}
	u.EntryList(model.EntryList{e}, 4, units.Kg)
	assert.Contains(t, buf.String(), "300 ml h1")
	assert.Contains(t, buf.String(), "Showing 1 of 4 entries")
}

func TestDashboard(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2024, 5, 10, 18, 0, 0, 0, time.Local)
	d := metrics.Dashboard{
		Today:       metrics.Summary{Day: now, HydrationMl: 1250, CaloriesBurned: 392, Workouts: 1},
		HydrationMl: 1250,
		TargetMl:    2500,
		BMI:         "24.7",
		Progress:    metrics.Progress{Start: 90, Current: 80, Goal: 70, Percent: 50, Gap: 10},
		Quote:       "Keep going.",
	}
	NewUI(&buf, false).Dashboard(d, units.Kg)

	out := buf.String()
	assert.Contains(t, out, "Today Fri 2024-05-10")
	assert.Contains(t, out, "1250 / 2500 ml [##########..........]")
	assert.Contains(t, out, "392 kcal in 1 workouts")
	assert.Contains(t, out, "80.0 kg to 70.0 kg")
	assert.Contains(t, out, "\"Keep going.\"")
}
