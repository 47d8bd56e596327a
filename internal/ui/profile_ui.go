package ui

import (
	"fmt"

	"ironpulse/local-app/internal/metrics"
	"ironpulse/local-app/internal/model"
	"ironpulse/local-app/internal/onboarding"
	"ironpulse/local-app/internal/units"
)

func orDash(set bool, s string) string {
	if !set {
		return "--"
	}
	return s
}

// ProfileInfo displays a profile in the given units
func (u *UI) ProfileInfo(p model.UserProfile, bmi string, hu units.HeightUnit, wu units.WeightUnit) {
	u.PrintlnColored(p.Username, ColorLightBlue)
	u.Printf("  %-14s %s\n", "Email", orDash(p.Email != "", p.Email))
	u.Printf("  %-14s %s\n", "Age", orDash(p.Age > 0, fmt.Sprint(p.Age)))
	u.Printf("  %-14s %s\n", "Gender", orDash(p.Gender != "", string(p.Gender)))
	u.Printf("  %-14s %s\n", "Height", orDash(p.Height > 0, units.FormatHeight(p.Height, hu)))
	u.Printf("  %-14s %s\n", "Weight", orDash(p.Weight > 0, units.FormatWeight(p.Weight, wu)))
	u.Printf("  %-14s %s\n", "Goal weight", orDash(p.GoalWeight > 0, units.FormatWeight(p.GoalWeight, wu)))
	u.Printf("  %-14s %s\n", "BMI", bmi)
	u.Printf("  %-14s %s\n", "Goal", orDash(p.Goal != "", fmt.Sprintf("%s, %s", p.Goal, metrics.GoalDescription(p.Goal))))
	u.Printf("  %-14s %s\n", "Activity", orDash(p.ActivityLevel != "", fmt.Sprintf("%s, %s", p.ActivityLevel, metrics.ActivityDescription(p.ActivityLevel))))
	u.Printf("  %-14s %s\n", "Member since", p.JoinedAt.Local().Format("2006-01-02"))
	if !p.OnboardingCompleted {
		u.Warning("Onboarding not finished")
	}
}

// OnboardingStatus displays the current onboarding step and the values entered so far
func (u *UI) OnboardingStatus(step onboarding.Step, total int, in onboarding.Input) {
	if step == onboarding.StepCompleted {
		u.Success("Onboarding complete")
		return
	}
	u.PrintMarkup(fmt.Sprintf("{{purple}}Step %d of %d: %s{{default}}", int(step), total, step))

	u.Printf("  %-14s %s\n", "Age", orDash(in.Age > 0, fmt.Sprint(in.Age)))
	u.Printf("  %-14s %s\n", "Gender", in.Gender)

	height := "--"
	if in.HeightUnit == units.Ft && in.HeightFeet > 0 {
		height = fmt.Sprintf("%d'%d\"", in.HeightFeet, in.HeightInch)
	} else if in.HeightCm > 0 {
		height = fmt.Sprintf("%g cm", in.HeightCm)
	}
	u.Printf("  %-14s %s\n", "Height", height)
	u.Printf("  %-14s %s\n", "Weight", orDash(in.Weight > 0, fmt.Sprintf("%g %s", in.Weight, in.WeightUnit)))
	u.Printf("  %-14s %s\n", "Activity", in.ActivityLevel)
	u.Printf("  %-14s %s\n", "Goal", in.Goal)
	u.Printf("  %-14s %s\n", "Goal weight", orDash(in.GoalWeight > 0, fmt.Sprintf("%g %s", in.GoalWeight, in.WeightUnit)))

	switch step {
	case onboarding.StepBasics:
		u.Info("Next: onboard basics <age> <gender>, then onboard next")
	case onboarding.StepBody:
		u.Info("Next: onboard body <height> <weight>, then onboard next")
	case onboarding.StepGoals:
		u.Info("Next: onboard goals <activity> <goal> [goal_weight], then onboard finish")
	}
}
