package ui

import (
	"fmt"
	"strings"

	"ironpulse/local-app/internal/metrics"
	"ironpulse/local-app/internal/model"
	"ironpulse/local-app/internal/units"
)

const barWidth = 20

// Dashboard displays the daily summary, goal progress and weight trend
func (u *UI) Dashboard(d metrics.Dashboard, wu units.WeightUnit) {
	u.PrintMarkup(fmt.Sprintf("{{blue}}Today %s{{default}}", d.Today.Day.Format("Mon 2006-01-02")))

	water := 0.0
	if d.TargetMl > 0 {
		water = float64(d.HydrationMl) / float64(d.TargetMl) * 100
	}
	u.Printf("  %-10s %d / %d ml %s\n", "Water", d.HydrationMl, d.TargetMl, bar(water, barWidth))
	u.Printf("  %-10s %d kcal in %d workouts\n", "Burned", d.Today.CaloriesBurned, d.Today.Workouts)
	u.Printf("  %-10s %s\n", "BMI", d.BMI)
	if d.Progress.Goal > 0 {
		u.Printf("  %-10s %s\n", "Goal", progressLine(d.Progress, wu))
	}
	if len(d.Trend) > 0 {
		u.Println("")
		u.Trend(d.Trend, wu)
	}
	u.Println("")
	u.PrintMarkup(fmt.Sprintf("{{gray}}\"%s\"{{default}}", d.Quote))
}

func progressLine(p metrics.Progress, wu units.WeightUnit) string {
	return fmt.Sprintf("%s to %s %s %.0f%%, %s to go",
		units.FormatWeight(p.Current, wu), units.FormatWeight(p.Goal, wu), bar(p.Percent, barWidth), p.Percent, units.FormatWeight(p.Gap, wu))
}

// Progress displays weight goal progress
func (u *UI) Progress(p metrics.Progress, wu units.WeightUnit) {
	u.Printf("  %-10s %s\n", "Start", units.FormatWeight(p.Start, wu))
	u.Printf("  %-10s %s\n", "Current", units.FormatWeight(p.Current, wu))
	u.Printf("  %-10s %s\n", "Goal", units.FormatWeight(p.Goal, wu))
	u.Printf("  %-10s %s %.0f%%\n", "Progress", bar(p.Percent, barWidth), p.Percent)
	if p.Percent >= 100 {
		u.Success("Goal reached")
	}
}

// Trend draws one bar per weigh-in, scaled between the lightest and heaviest
func (u *UI) Trend(points []model.BiometricEntry, wu units.WeightUnit) {
	if len(points) == 0 {
		u.Println("No weigh-ins logged yet.")
		return
	}
	lo, hi := points[0].Weight, points[0].Weight
	for _, p := range points {
		lo = min(lo, p.Weight)
		hi = max(hi, p.Weight)
	}
	for _, p := range points {
		pct := 100.0
		if hi > lo {
			// the lightest weigh-in still gets a sliver
			pct = 10 + (p.Weight-lo)/(hi-lo)*90
		}
		filled := int(pct / 100 * barWidth)
		u.Printf("  %s ", p.Timestamp.Local().Format("01-02"))
		u.PrintColored(fmt.Sprintf("%-*s", barWidth, strings.Repeat("=", filled)), ColorLightGreen)
		u.Printf(" %s\n", units.FormatWeight(p.Weight, wu))
	}
}

// Foods displays nutrition suggestions for a goal
func (u *UI) Foods(goal model.Goal, foods []metrics.Food) {
	u.PrintMarkup(fmt.Sprintf("{{blue}}Suggested foods for %s{{default}}", goal))
	for _, f := range foods {
		u.Printf("  %-16s %-14s %s\n", f.Name, f.Calories, f.Benefit)
	}
}
