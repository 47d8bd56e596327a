package session

import (
	"context"
	"fmt"
	"strings"

	"ironpulse/local-app/internal/data"
	"ironpulse/local-app/internal/log"
	"ironpulse/local-app/internal/metrics"
	"ironpulse/local-app/internal/model"
	"ironpulse/local-app/internal/units"
)

// ProfileView is a profile together with the units it should be shown in
type ProfileView struct {
	Profile    model.UserProfile
	BMI        string
	HeightUnit units.HeightUnit
	WeightUnit units.WeightUnit
}

// initUserCommandHandlers initializes user command handlers
func initUserCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"register": handleUserRegister,
		"login":    handleUserLogin,
		"logout":   handleUserLogout,
		"show":     handleUserShow,
		"update":   handleUserUpdate,
	}
}

// handleUserRegister creates an account and logs it in
func handleUserRegister(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling user register command", log.Fields{"username": cmd.Args[0]})

	var email string
	if len(cmd.Args) == 3 {
		email = cmd.Args[2]
	}

	profile, err := s.DataManager.AccountManager.Register(cmd.Args[0], email, cmd.Args[1])
	if err != nil {
		return nil, err
	}
	s.userSet(profile)
	return fmt.Sprintf("Welcome, %s. Run 'onboard start' to set up your profile.", profile.Username), nil
}

// handleUserLogin authenticates and switches the session user
func handleUserLogin(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Info(ctx, "Handling user login command", log.Fields{"username": cmd.Args[0]})

	profile, err := s.DataManager.AccountManager.Login(cmd.Args[0], cmd.Args[1])
	if err != nil {
		return nil, err
	}
	s.userSet(profile)
	if !profile.OnboardingCompleted {
		return fmt.Sprintf("Logged in as %s. Onboarding is not finished, run 'onboard status'.", profile.Username), nil
	}
	return fmt.Sprintf("Logged in as %s", profile.Username), nil
}

func handleUserLogout(s *Session, cmd model.Command) (interface{}, error) {
	if err := s.Logout(); err != nil {
		return nil, err
	}
	return "Logged out", nil
}

func handleUserShow(s *Session, cmd model.Command) (interface{}, error) {
	user, err := s.UserGet()
	if err != nil {
		return nil, err
	}
	return s.profileView(*user), nil
}

func (s *Session) profileView(p model.UserProfile) ProfileView {
	return ProfileView{
		Profile:    p,
		BMI:        metrics.FormatBMI(p.Weight, p.Height),
		HeightUnit: s.heightUnit,
		WeightUnit: s.weightUnit,
	}
}

// handleUserUpdate changes one profile field. Heights and weights are read in the session units.
func handleUserUpdate(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	user, err := s.UserGet()
	if err != nil {
		return nil, err
	}

	field, value := strings.ToLower(cmd.Args[0]), cmd.Args[1]
	s.logger.Info(ctx, "Handling user update command", log.Fields{"field": field})

	updated := *user
	switch field {
	case "username":
		return nil, data.ErrUsernameImmutable
	case "email":
		updated.Email = strings.TrimSpace(value)
	case "age":
		if updated.Age, err = parseInt("age", value); err != nil {
			return nil, err
		}
	case "gender":
		if updated.Gender, err = model.ParseGender(value); err != nil {
			return nil, err
		}
	case "height":
		if updated.Height, err = s.parseHeightCm(value, cmd.Args[2:]); err != nil {
			return nil, err
		}
	case "weight":
		if updated.Weight, err = s.parseWeightKg(value); err != nil {
			return nil, err
		}
	case "goalweight", "goal_weight":
		if updated.GoalWeight, err = s.parseWeightKg(value); err != nil {
			return nil, err
		}
	case "goal":
		if updated.Goal, err = model.ParseGoal(value); err != nil {
			return nil, err
		}
	case "activity", "activity_level":
		if updated.ActivityLevel, err = model.ParseActivityLevel(value); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown profile field: %s (email|age|gender|height|weight|goalweight|goal|activity)", field)
	}

	if err := s.DataManager.ProfileUpdate(*user, updated); err != nil {
		return nil, err
	}
	s.user = &updated
	return fmt.Sprintf("Profile updated: %s", field), nil
}
