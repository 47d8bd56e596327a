package session

import (
	"context"
	"errors"
	"fmt"

	"ironpulse/local-app/internal/log"
	"ironpulse/local-app/internal/model"
	"ironpulse/local-app/internal/onboarding"
	"ironpulse/local-app/internal/units"
)

// OnboardingStatus reports where the onboarding flow is and what has been entered
type OnboardingStatus struct {
	Step  onboarding.Step
	Total int
	Input onboarding.Input
}

// initOnboardCommandHandlers initializes onboarding command handlers
func initOnboardCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"start":  handleOnboardStart,
		"basics": handleOnboardBasics,
		"body":   handleOnboardBody,
		"goals":  handleOnboardGoals,
		"next":   handleOnboardNext,
		"back":   handleOnboardBack,
		"status": handleOnboardStatus,
		"finish": handleOnboardFinish,
	}
}

// flowGet returns the pending flow for the logged in user
func (s *Session) flowGet() (*onboarding.Flow, error) {
	if _, err := s.UserGet(); err != nil {
		return nil, err
	}
	if s.flow == nil {
		return nil, errors.New("onboarding is not in progress, run 'onboard start'")
	}
	return s.flow, nil
}

func (s *Session) onboardingStatus() OnboardingStatus {
	return OnboardingStatus{Step: s.flow.Step(), Total: onboarding.TotalSteps, Input: s.flow.Input()}
}

// handleOnboardStart begins a fresh flow. A finished profile can be onboarded again.
func handleOnboardStart(s *Session, cmd model.Command) (interface{}, error) {
	user, err := s.UserGet()
	if err != nil {
		return nil, err
	}
	s.logger.Info(context.Background(), "Starting onboarding", log.Fields{"username": user.Username})
	s.flow = onboarding.NewFlow()
	return s.onboardingStatus(), nil
}

func handleOnboardBasics(s *Session, cmd model.Command) (interface{}, error) {
	flow, err := s.flowGet()
	if err != nil {
		return nil, err
	}
	age, err := parseInt("age", cmd.Args[0])
	if err != nil {
		return nil, err
	}
	gender, err := model.ParseGender(cmd.Args[1])
	if err != nil {
		return nil, err
	}
	if err := flow.SetBasics(age, gender); err != nil {
		return nil, err
	}
	return s.onboardingStatus(), nil
}

// handleOnboardBody records height and weight in the session units.
// In feet the height is 5'11 or two args: feet inches.
func handleOnboardBody(s *Session, cmd model.Command) (interface{}, error) {
	flow, err := s.flowGet()
	if err != nil {
		return nil, err
	}

	heightArgs, weightArg := cmd.Args[:len(cmd.Args)-1], cmd.Args[len(cmd.Args)-1]
	if s.heightUnit == units.Ft {
		feet, inches, err := parseFeetInches(heightArgs[0], heightArgs[1:])
		if err != nil {
			return nil, err
		}
		err = flow.SetHeightFeetInches(feet, inches)
		if err != nil {
			return nil, err
		}
	} else {
		if len(heightArgs) > 1 {
			return nil, fmt.Errorf("usage: onboard body <height> <weight>")
		}
		cm, err := parseFloat("height", heightArgs[0])
		if err != nil {
			return nil, err
		}
		if err := flow.SetHeightCm(cm); err != nil {
			return nil, err
		}
	}

	weight, err := parseFloat("weight", weightArg)
	if err != nil {
		return nil, err
	}
	if err := flow.SetWeight(weight, s.weightUnit); err != nil {
		return nil, err
	}
	return s.onboardingStatus(), nil
}

// handleOnboardGoals records the activity level, the goal and an optional goal weight
func handleOnboardGoals(s *Session, cmd model.Command) (interface{}, error) {
	flow, err := s.flowGet()
	if err != nil {
		return nil, err
	}
	level, err := model.ParseActivityLevel(cmd.Args[0])
	if err != nil {
		return nil, err
	}
	goal, err := model.ParseGoal(cmd.Args[1])
	if err != nil {
		return nil, err
	}
	var goalWeight float64
	if len(cmd.Args) == 3 {
		if goalWeight, err = parseFloat("goal weight", cmd.Args[2]); err != nil {
			return nil, err
		}
	}
	if err := flow.SetGoals(level, goal, goalWeight); err != nil {
		return nil, err
	}
	return s.onboardingStatus(), nil
}

func handleOnboardNext(s *Session, cmd model.Command) (interface{}, error) {
	flow, err := s.flowGet()
	if err != nil {
		return nil, err
	}
	if err := flow.Next(); err != nil {
		return nil, err
	}
	return s.onboardingStatus(), nil
}

func handleOnboardBack(s *Session, cmd model.Command) (interface{}, error) {
	flow, err := s.flowGet()
	if err != nil {
		return nil, err
	}
	if err := flow.Back(); err != nil {
		return nil, err
	}
	return s.onboardingStatus(), nil
}

func handleOnboardStatus(s *Session, cmd model.Command) (interface{}, error) {
	if _, err := s.flowGet(); err != nil {
		return nil, err
	}
	return s.onboardingStatus(), nil
}

// handleOnboardFinish converts the entered values, saves the profile and logs the first weigh-in
func handleOnboardFinish(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	flow, err := s.flowGet()
	if err != nil {
		return nil, err
	}
	user := s.user

	profile, err := flow.Finish(*user)
	if err != nil {
		return nil, err
	}
	if err := s.DataManager.OnboardingComplete(profile); err != nil {
		s.logger.Error(ctx, "Failed to complete onboarding", log.Fields{"error": err, "username": user.Username})
		return nil, fmt.Errorf("failed to complete onboarding: %w", err)
	}

	s.user = &profile
	s.flow = nil
	return s.profileView(profile), nil
}
