package metrics

import (
	"sort"
	"time"

	"ironpulse/local-app/internal/model"
)

// TrendPoints is the number of weigh-ins the dashboard chart shows
const TrendPoints = 7

// Summary aggregates one day of entries
type Summary struct {
	Day            time.Time
	HydrationMl    int
	CaloriesBurned int
	Workouts       int
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DailySummary totals the hydration and workout calories logged on day.
// Entries are compared on the calendar date in day's location.
func DailySummary(entries model.EntryList, day time.Time) Summary {
	s := Summary{Day: day}
	for _, e := range entries {
		if !sameDay(e.EntryTime().In(day.Location()), day) {
			continue
		}
		switch v := e.(type) {
		case model.HydrationEntry:
			s.HydrationMl += v.AmountMl
		case model.WorkoutEntry:
			s.CaloriesBurned += v.CaloriesBurned
			s.Workouts++
		case model.SleepEntry, model.JournalEntry, model.BiometricEntry:
		}
	}
	return s
}

// WeightHistory returns every biometric entry, oldest first. Entries sharing a
// timestamp keep their logging order.
func WeightHistory(entries model.EntryList) []model.BiometricEntry {
	history := entries.Biometrics()
	// the log is stored newest first
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Timestamp.Before(history[j].Timestamp)
	})
	return history
}

// WeightTrend returns the last n biometric entries, oldest first
func WeightTrend(entries model.EntryList, n int) []model.BiometricEntry {
	history := WeightHistory(entries)
	if n > 0 && len(history) > n {
		history = history[len(history)-n:]
	}
	return history
}

// StartWeight is the weight of the first weigh-in, or current when there is none
func StartWeight(entries model.EntryList, current float64) float64 {
	history := WeightHistory(entries)
	if len(history) == 0 {
		return current
	}
	return history[0].Weight
}

// LatestWeight returns the most recently logged weight
func LatestWeight(entries model.EntryList) (float64, bool) {
	history := WeightHistory(entries)
	if len(history) == 0 {
		return 0, false
	}
	return history[len(history)-1].Weight, true
}

var dailyQuotes = []string{
	"The only bad workout is the one that didn't happen.",
	"Take care of your body. It’s the only place you have to live.",
	"Success starts with self-discipline.",
	"Don’t count the days, make the days count.",
	"Pain is weakness leaving the body.",
	"Your body can stand almost anything. It’s your mind that you have to convince.",
	"Fitness is not about being better than someone else. It’s about being better than you were yesterday.",
	"Motivation is what gets you started. Habit is what keeps you going.",
	"A one hour workout is only 4% of your day. No excuses.",
	"Sweat is just fat crying.",
	"Discipline is doing what needs to be done, even if you don't want to do it.",
	"You don't have to be extreme, just consistent.",
	"Strength does not come from physical capacity. It comes from an indomitable will.",
	"Train insane or remain the same.",
	"If it doesn't challenge you, it doesn't change you.",
	"Action is the foundational key to all success.",
	"Believe you can and you're halfway there.",
}

// QuoteOfDay picks the quote for t's calendar day. It changes at local midnight.
func QuoteOfDay(t time.Time) string {
	return dailyQuotes[t.YearDay()%len(dailyQuotes)]
}

// Progress describes movement toward the goal weight
type Progress struct {
	Start   float64
	Current float64
	Goal    float64
	Percent float64
	Gap     float64
}

// GoalProgress computes weight goal progress for a profile. The start weight is
// the first logged weigh-in, or the current weight when there is none.
func GoalProgress(profile model.UserProfile, entries model.EntryList) Progress {
	start := StartWeight(entries, profile.Weight)
	return Progress{
		Start:   start,
		Current: profile.Weight,
		Goal:    profile.GoalWeight,
		Percent: ProgressPercent(start, profile.Weight, profile.GoalWeight),
		Gap:     WeightGap(profile.Weight, profile.GoalWeight),
	}
}

// Dashboard is the home screen summary for one user
type Dashboard struct {
	Today       Summary
	HydrationMl int
	TargetMl    int
	BMI         string
	Progress    Progress
	Trend       []model.BiometricEntry
	Quote       string
}

// BuildDashboard assembles the dashboard for profile at now
func BuildDashboard(profile model.UserProfile, entries model.EntryList, now time.Time, hydrationTargetMl int) Dashboard {
	today := DailySummary(entries, now)
	return Dashboard{
		Today:       today,
		HydrationMl: today.HydrationMl,
		TargetMl:    hydrationTargetMl,
		BMI:         FormatBMI(profile.Weight, profile.Height),
		Progress:    GoalProgress(profile, entries),
		Trend:       WeightTrend(entries, TrendPoints),
		Quote:       QuoteOfDay(now),
	}
}
