// Package metrics holds the calculations derived from a profile and its entry log:
// BMI, calorie burn, sleep duration and weight goal progress, plus the dashboard
// aggregates built on top of them.
package metrics

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"ironpulse/local-app/internal/units"
)

// DefaultWeightKg is used for calorie estimates when the profile has no weight
const DefaultWeightKg = 75.0

// BMIPlaceholder is shown when height or weight is missing
const BMIPlaceholder = "--"

// ErrInvalidClock is returned for a time of day that is not HH:MM
var ErrInvalidClock = errors.New("invalid time of day")

// exerciseMETs maps exercise types to their metabolic equivalent
var exerciseMETs = map[string]float64{
	"running":       9.8,
	"cycling":       7.5,
	"yoga":          3.0,
	"boxing":        12.8,
	"hiit":          11.0,
	"weightlifting": 6.0,
	"swimming":      8.0,
}

// MET returns the metabolic equivalent for an exercise type, or 1 when unknown
func MET(exerciseType string) float64 {
	if met, ok := exerciseMETs[strings.ToLower(strings.TrimSpace(exerciseType))]; ok {
		return met
	}
	return 1
}

// ExerciseTypes lists the exercise types with a known MET, sorted
func ExerciseTypes() []string {
	types := make([]string, 0, len(exerciseMETs))
	for t := range exerciseMETs {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// CaloriesBurned estimates the calories burned by a workout.
// A non-positive weight falls back to DefaultWeightKg.
func CaloriesBurned(exerciseType string, weightKg float64, durationMinutes int) int {
	if weightKg <= 0 {
		weightKg = DefaultWeightKg
	}
	return int(math.Round(MET(exerciseType) * weightKg * (float64(durationMinutes) / 60)))
}

// BMI computes body mass index. ok is false when height or weight is missing.
func BMI(weightKg, heightCm float64) (bmi float64, ok bool) {
	if weightKg <= 0 || heightCm <= 0 {
		return 0, false
	}
	h := heightCm / 100
	return weightKg / (h * h), true
}

// FormatBMI renders BMI to one decimal, or BMIPlaceholder when it is undefined
func FormatBMI(weightKg, heightCm float64) string {
	bmi, ok := BMI(weightKg, heightCm)
	if !ok {
		return BMIPlaceholder
	}
	return fmt.Sprintf("%.1f", bmi)
}

// Sleep is the result of a bed/wake time calculation
type Sleep struct {
	Minutes       int
	DurationHours float64
	Cycles        int
}

// SleepDuration computes how long someone slept between bedTime and wakeTime (HH:MM).
// A wake time earlier than the bed time is taken to be on the next day.
func SleepDuration(bedTime, wakeTime string) (Sleep, error) {
	bed, err := clockMinutes(bedTime)
	if err != nil {
		return Sleep{}, err
	}
	wake, err := clockMinutes(wakeTime)
	if err != nil {
		return Sleep{}, err
	}

	if wake < bed {
		wake += 24 * 60
	}
	minutes := wake - bed
	return Sleep{
		Minutes:       minutes,
		DurationHours: units.Round1(float64(minutes) / 60),
		Cycles:        minutes / 90,
	}, nil
}

func clockMinutes(s string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ProgressPercent reports how far current has moved from start toward goal, in [0,100].
// It is 0 when current or goal is unknown, and 100 when start already equals goal.
func ProgressPercent(start, current, goal float64) float64 {
	if current <= 0 || goal <= 0 {
		return 0
	}
	total := math.Abs(goal - start)
	if total == 0 {
		return 100
	}

	var progress float64
	if start > goal {
		switch {
		case current <= goal:
			progress = 100
		case current >= start:
			progress = 0
		default:
			progress = (start - current) / total * 100
		}
	} else {
		switch {
		case current >= goal:
			progress = 100
		case current <= start:
			progress = 0
		default:
			progress = (current - start) / total * 100
		}
	}
	return math.Max(0, math.Min(100, progress))
}

// WeightGap is the remaining distance between current and goal weight
func WeightGap(current, goal float64) float64 {
	if current <= 0 || goal <= 0 {
		return 0
	}
	return math.Abs(goal - current)
}
