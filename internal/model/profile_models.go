package model

import (
	"fmt"
	"strings"
	"time"
)

// Gender is the biological sex recorded during onboarding.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Goal is the user's primary training goal.
type Goal string

const (
	GoalGain     Goal = "gain"
	GoalLoss     Goal = "loss"
	GoalMaintain Goal = "maintain"
	GoalFitness  Goal = "fitness"
)

// ActivityLevel describes how often the user trains.
type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "sedentary"
	ActivityLight     ActivityLevel = "light"
	ActivityModerate  ActivityLevel = "moderate"
	ActivityActive    ActivityLevel = "active"
)

// UserProfile is the account profile. Height is always centimeters and
// Weight/GoalWeight are always kilograms; zero means the value was never set.
type UserProfile struct {
	Username            string        `json:"username"`
	Email               string        `json:"email,omitempty"`
	Age                 int           `json:"age,omitempty"`
	Gender              Gender        `json:"gender,omitempty"`
	Height              float64       `json:"height,omitempty"`
	Weight              float64       `json:"weight,omitempty"`
	GoalWeight          float64       `json:"goalWeight,omitempty"`
	Goal                Goal          `json:"goal,omitempty"`
	ActivityLevel       ActivityLevel `json:"activityLevel,omitempty"`
	JoinedAt            time.Time     `json:"joinedAt"`
	OnboardingCompleted bool          `json:"onboardingCompleted"`
}

// StoredAccount pairs a profile with its password in the account registry.
// The password is kept in plain text.
type StoredAccount struct {
	Profile  UserProfile `json:"profile"`
	Password string      `json:"password"`
}

// ParseGender validates a gender value
func ParseGender(s string) (Gender, error) {
	switch g := Gender(strings.ToLower(strings.TrimSpace(s))); g {
	case GenderMale, GenderFemale, GenderOther:
		return g, nil
	default:
		return "", fmt.Errorf("invalid gender: %q (male|female|other)", s)
	}
}

// ParseGoal validates a goal value
func ParseGoal(s string) (Goal, error) {
	switch g := Goal(strings.ToLower(strings.TrimSpace(s))); g {
	case GoalGain, GoalLoss, GoalMaintain, GoalFitness:
		return g, nil
	default:
		return "", fmt.Errorf("invalid goal: %q (gain|loss|maintain|fitness)", s)
	}
}

// ParseActivityLevel validates an activity level value
func ParseActivityLevel(s string) (ActivityLevel, error) {
	switch a := ActivityLevel(strings.ToLower(strings.TrimSpace(s))); a {
	case ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive:
		return a, nil
	default:
		return "", fmt.Errorf("invalid activity level: %q (sedentary|light|moderate|active)", s)
	}
}
