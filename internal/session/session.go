// Package session holds the state of one interactive user session and runs
// validated commands against the data layer.
package session

import (
	"context"
	"errors"
	"time"

	"ironpulse/local-app/internal/data"
	"ironpulse/local-app/internal/log"
	"ironpulse/local-app/internal/model"
	"ironpulse/local-app/internal/onboarding"
	"ironpulse/local-app/internal/units"
)

// CommandHandler is a function type for command handlers
type CommandHandler func(*Session, model.Command) (interface{}, error)

// Exit is returned by the system exit handler
type Exit struct{}

// Session represents the single local user session
type Session struct {
	ID           string
	DataManager  *data.DataManager
	LastActivity time.Time

	user        *model.UserProfile
	flow        *onboarding.Flow
	heightUnit  units.HeightUnit
	weightUnit  units.WeightUnit
	hydrationMl int

	now             func() time.Time
	commandHandlers map[string]map[string]CommandHandler
	logger          *log.Logger
}

// NewSession creates a new Session instance
func NewSession(id string, dataManager *data.DataManager, logger *log.Logger) *Session {
	ctx := context.Background()
	logger.Info(ctx, "Creating new Session", log.Fields{"sessionID": id})

	s := &Session{
		ID:           id,
		DataManager:  dataManager,
		LastActivity: time.Now(),
		heightUnit:   units.Cm,
		weightUnit:   units.Kg,
		hydrationMl:  dataManager.Config.QuickHydrationMl,
		now:          time.Now,
		logger:       logger,
	}
	s.initCommandHandlers()

	logger.Info(ctx, "New Session created successfully", log.Fields{"sessionID": id})
	return s
}

// initCommandHandlers initializes the command handlers map
func (s *Session) initCommandHandlers() {
	s.commandHandlers = map[string]map[string]CommandHandler{
		"user":    initUserCommandHandlers(),
		"onboard": initOnboardCommandHandlers(),
		"workout": {"add": handleWorkoutAdd},
		"water":   {"add": handleWaterAdd, "adjust": handleWaterAdjust},
		"sleep":   {"add": handleSleepAdd},
		"journal": {"add": handleJournalAdd},
		"weight":  {"add": handleWeightAdd},
		"entry":   initEntryCommandHandlers(),
		"stats":   initStatsCommandHandlers(),
		"units":   {"height": handleUnitsHeight, "weight": handleUnitsWeight},
		"food":    {"suggest": handleFoodSuggest},
		"system":  {"exit": handleSystemExit, "quit": handleSystemExit},
	}
}

// Restore resumes the session persisted by a previous run, if any
func (s *Session) Restore() error {
	ctx := context.Background()
	user, err := s.DataManager.AccountManager.CurrentUser()
	if err != nil {
		s.logger.Error(ctx, "Failed to restore session", log.Fields{"error": err})
		return err
	}
	s.user = user
	if user != nil {
		s.logger.Info(ctx, "Session restored", log.Fields{"username": user.Username})
		if !user.OnboardingCompleted {
			s.flow = onboarding.NewFlow()
		}
	}
	return nil
}

// CommandRun validates and executes a command within the session context
func (s *Session) CommandRun(cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Command(ctx, "Running command", log.Fields{"scope": cmd.Scope, "operation": cmd.Operation, "argCount": len(cmd.Args)})
	s.LastActivity = s.now()

	command := NewCommand(cmd, s.logger)
	if err := command.Validate(); err != nil {
		return nil, err
	}

	handler, ok := s.commandHandlers[cmd.Scope][cmd.Operation]
	if !ok {
		s.logger.Error(ctx, "No handler for command", log.Fields{"scope": cmd.Scope, "operation": cmd.Operation})
		return nil, errors.New("invalid command operation")
	}

	result, err := handler(s, cmd)
	if err != nil {
		s.logger.Error(ctx, "Command execution failed", log.Fields{"error": err, "scope": cmd.Scope, "operation": cmd.Operation})
	} else {
		s.logger.Debug(ctx, "Command executed successfully", nil)
	}
	return result, err
}

// User returns the logged-in profile, or nil
func (s *Session) User() *model.UserProfile {
	return s.user
}

// IsAuthenticated reports whether a user is logged in
func (s *Session) IsAuthenticated() bool {
	return s.user != nil
}

// UserGet returns the logged-in profile or ErrNotAuthenticated
func (s *Session) UserGet() (*model.UserProfile, error) {
	if s.user == nil {
		s.logger.Warn(context.Background(), "No user logged in", nil)
		return nil, data.ErrNotAuthenticated
	}
	return s.user, nil
}

// userSet makes profile the session user and starts onboarding when it is pending
func (s *Session) userSet(profile *model.UserProfile) {
	s.user = profile
	s.flow = nil
	if profile != nil && !profile.OnboardingCompleted {
		s.flow = onboarding.NewFlow()
	}
}

// Logout clears the persisted auth record and the session state
func (s *Session) Logout() error {
	user, err := s.UserGet()
	if err != nil {
		return err
	}
	if err := s.DataManager.AccountManager.Logout(user.Username); err != nil {
		return err
	}
	s.userSet(nil)
	s.hydrationMl = s.DataManager.Config.QuickHydrationMl
	return nil
}

// Units returns the display units
func (s *Session) Units() (units.HeightUnit, units.WeightUnit) {
	return s.heightUnit, s.weightUnit
}

// Onboarding returns the pending onboarding flow, or nil
func (s *Session) Onboarding() *onboarding.Flow {
	return s.flow
}

func handleSystemExit(s *Session, cmd model.Command) (interface{}, error) {
	s.logger.Info(context.Background(), "Exit requested", nil)
	return Exit{}, nil
}
