// Package onboarding implements the three step profile setup a new account walks through:
// basics (age, gender), body metrics (height, weight) and goals.
package onboarding

import (
	"errors"
	"fmt"

	"ironpulse/local-app/internal/model"
	"ironpulse/local-app/internal/units"
)

// Step is a position in the onboarding flow
type Step int

const (
	StepBasics Step = iota + 1
	StepBody
	StepGoals
	StepCompleted
)

// TotalSteps is the number of input steps
const TotalSteps = 3

func (s Step) String() string {
	switch s {
	case StepBasics:
		return "basics"
	case StepBody:
		return "body metrics"
	case StepGoals:
		return "goals"
	case StepCompleted:
		return "completed"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

var (
	// ErrMissingRequiredField blocks moving forward from a step with missing input
	ErrMissingRequiredField = errors.New("missing required field")
	// ErrFirstStep is returned when going back from the first step
	ErrFirstStep = errors.New("already at the first step")
	// ErrFlowCompleted is returned when changing a finished flow
	ErrFlowCompleted = errors.New("onboarding already completed")
)

// Input holds the raw values as entered, in the units the user chose
type Input struct {
	Age    int
	Gender model.Gender

	HeightUnit units.HeightUnit
	HeightCm   float64
	HeightFeet int
	HeightInch int

	WeightUnit units.WeightUnit
	Weight     float64
	GoalWeight float64

	ActivityLevel model.ActivityLevel
	Goal          model.Goal
}

// Flow is the onboarding state machine. The zero value is not usable; call NewFlow.
type Flow struct {
	step  Step
	input Input
}

// NewFlow starts a flow at the basics step with the default selections
func NewFlow() *Flow {
	return &Flow{
		step: StepBasics,
		input: Input{
			Gender:        model.GenderMale,
			HeightUnit:    units.Cm,
			WeightUnit:    units.Kg,
			ActivityLevel: model.ActivityModerate,
			Goal:          model.GoalFitness,
		},
	}
}

// Step returns the current step
func (f *Flow) Step() Step {
	return f.step
}

// Input returns a copy of the values entered so far
func (f *Flow) Input() Input {
	return f.input
}

// SetBasics records age and gender
func (f *Flow) SetBasics(age int, gender model.Gender) error {
	if f.step == StepCompleted {
		return ErrFlowCompleted
	}
	f.input.Age = age
	if gender != "" {
		f.input.Gender = gender
	}
	return nil
}

// SetHeightCm records a metric height
func (f *Flow) SetHeightCm(cm float64) error {
	if f.step == StepCompleted {
		return ErrFlowCompleted
	}
	f.input.HeightUnit = units.Cm
	f.input.HeightCm = cm
	return nil
}

// SetHeightFeetInches records an imperial height
func (f *Flow) SetHeightFeetInches(feet, inches int) error {
	if f.step == StepCompleted {
		return ErrFlowCompleted
	}
	f.input.HeightUnit = units.Ft
	f.input.HeightFeet = feet
	f.input.HeightInch = inches
	return nil
}

// SetWeight records the current weight in unit. The goal weight uses the same unit.
func (f *Flow) SetWeight(weight float64, unit units.WeightUnit) error {
	if f.step == StepCompleted {
		return ErrFlowCompleted
	}
	f.input.Weight = weight
	if unit != "" {
		f.input.WeightUnit = unit
	}
	return nil
}

// SetGoals records the activity level, goal and optional goal weight (0 for none)
func (f *Flow) SetGoals(level model.ActivityLevel, goal model.Goal, goalWeight float64) error {
	if f.step == StepCompleted {
		return ErrFlowCompleted
	}
	if level != "" {
		f.input.ActivityLevel = level
	}
	if goal != "" {
		f.input.Goal = goal
	}
	f.input.GoalWeight = goalWeight
	return nil
}

// Validate checks that a step has its required fields
func (f *Flow) Validate(step Step) error {
	in := f.input
	switch step {
	case StepBasics:
		if in.Age <= 0 {
			return fmt.Errorf("%w: age", ErrMissingRequiredField)
		}
		if in.Gender == "" {
			return fmt.Errorf("%w: gender", ErrMissingRequiredField)
		}
	case StepBody:
		if in.HeightUnit == units.Ft {
			if in.HeightFeet <= 0 {
				return fmt.Errorf("%w: height", ErrMissingRequiredField)
			}
		} else if in.HeightCm <= 0 {
			return fmt.Errorf("%w: height", ErrMissingRequiredField)
		}
		if in.Weight <= 0 {
			return fmt.Errorf("%w: weight", ErrMissingRequiredField)
		}
	case StepGoals:
		if in.ActivityLevel == "" {
			return fmt.Errorf("%w: activity level", ErrMissingRequiredField)
		}
		if in.Goal == "" {
			return fmt.Errorf("%w: goal", ErrMissingRequiredField)
		}
	case StepCompleted:
		return ErrFlowCompleted
	}
	return nil
}

// Next moves forward one step once the current step validates.
// Moving forward from the goals step is done with Finish.
func (f *Flow) Next() error {
	if f.step == StepCompleted {
		return ErrFlowCompleted
	}
	if f.step == StepGoals {
		return fmt.Errorf("goals is the last step, finish to complete onboarding")
	}
	if err := f.Validate(f.step); err != nil {
		return err
	}
	f.step++
	return nil
}

// Back moves to the previous step
func (f *Flow) Back() error {
	switch f.step {
	case StepBasics:
		return ErrFirstStep
	case StepCompleted:
		return ErrFlowCompleted
	}
	f.step--
	return nil
}

// Finish validates every step, converts the input to centimeters and kilograms
// and returns base updated with it and marked as onboarded.
// The flow moves to StepCompleted.
func (f *Flow) Finish(base model.UserProfile) (model.UserProfile, error) {
	if f.step == StepCompleted {
		return model.UserProfile{}, ErrFlowCompleted
	}
	if f.step != StepGoals {
		return model.UserProfile{}, fmt.Errorf("onboarding is at %s, finish from the goals step", f.step)
	}
	for _, step := range []Step{StepBasics, StepBody, StepGoals} {
		if err := f.Validate(step); err != nil {
			return model.UserProfile{}, err
		}
	}

	in := f.input
	profile := base
	profile.Age = in.Age
	profile.Gender = in.Gender
	if in.HeightUnit == units.Ft {
		profile.Height = units.FeetInchesToCm(in.HeightFeet, in.HeightInch)
	} else {
		profile.Height = in.HeightCm
	}
	profile.Weight = units.WeightToKg(in.Weight, in.WeightUnit)
	if in.GoalWeight > 0 {
		profile.GoalWeight = units.WeightToKg(in.GoalWeight, in.WeightUnit)
	}
	profile.ActivityLevel = in.ActivityLevel
	profile.Goal = in.Goal
	profile.OnboardingCompleted = true

	f.step = StepCompleted
	return profile, nil
}
