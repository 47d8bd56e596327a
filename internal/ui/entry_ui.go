package ui

import (
	"fmt"
	"math"

	"ironpulse/local-app/internal/metrics"
	"ironpulse/local-app/internal/model"
	"ironpulse/local-app/internal/units"
)

var entryColors = map[model.EntryType]Color{
	model.EntryWorkout:    ColorOrange,
	model.EntryHydration:  ColorLightBlue,
	model.EntrySleep:      ColorLightPurple,
	model.EntryJournal:    ColorLightYellow,
	model.EntryBiometrics: ColorLightGreen,
}

// EntrySummary describes an entry in one line, weights in wu
func EntrySummary(e model.Entry, wu units.WeightUnit) string {
	switch v := e.(type) {
	case model.WorkoutEntry:
		return fmt.Sprintf("%s, %d min, %d kcal", v.ExerciseType, v.Duration, v.CaloriesBurned)
	case model.HydrationEntry:
		return fmt.Sprintf("%d ml", v.AmountMl)
	case model.SleepEntry:
		minutes := int(math.Round(v.DurationHours * 60))
		return fmt.Sprintf("%s to %s, %s, %d cycles", v.BedTime, v.WakeTime, metrics.FormatSleep(minutes), v.Cycles)
	case model.JournalEntry:
		if v.Mood != "" {
			return fmt.Sprintf("%s: %s (%s)", v.Title, v.Content, v.Mood)
		}
		return fmt.Sprintf("%s: %s", v.Title, v.Content)
	case model.BiometricEntry:
		return fmt.Sprintf("%s, BMI %s", units.FormatWeight(v.Weight, wu), v.BMI)
	}
	return ""
}

// EntryLine displays one entry with its local time, type and id
func (u *UI) EntryLine(e model.Entry, wu units.WeightUnit) {
	u.Printf("%s ", e.EntryTime().Local().Format("2006-01-02 15:04"))
	u.PrintColored(fmt.Sprintf("%-10s", e.Kind()), entryColors[e.Kind()])
	u.Printf(" %s ", EntrySummary(e, wu))
	u.PrintlnColored(e.EntryID(), ColorDarkGray)
}

// EntryAdded confirms a logged entry
func (u *UI) EntryAdded(e model.Entry, wu units.WeightUnit) {
	u.Success(fmt.Sprintf("Logged %s: %s", e.Kind(), EntrySummary(e, wu)))
}

// EntryList displays entries, newest first, noting when the list was cut short
func (u *UI) EntryList(entries model.EntryList, total int, wu units.WeightUnit) {
	if len(entries) == 0 {
		u.Println("No entries found.")
		return
	}
	for _, e := range entries {
		u.EntryLine(e, wu)
	}
	if total > len(entries) {
		u.Info(fmt.Sprintf("Showing %d of %d entries", len(entries), total))
	}
}
