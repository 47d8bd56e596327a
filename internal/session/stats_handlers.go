package session

import (
	"fmt"

	"ironpulse/local-app/internal/metrics"
	"ironpulse/local-app/internal/model"
	"ironpulse/local-app/internal/units"
)

// DashboardView is the dashboard with the weight unit to show it in
type DashboardView struct {
	metrics.Dashboard
	WeightUnit units.WeightUnit
}

// ProgressView is goal progress with the weight unit to show it in
type ProgressView struct {
	metrics.Progress
	WeightUnit units.WeightUnit
}

// TrendView is the recent weigh-in history with the weight unit to show it in
type TrendView struct {
	Points     []model.BiometricEntry
	WeightUnit units.WeightUnit
}

// FoodSuggestions lists nutrition suggestions for one goal
type FoodSuggestions struct {
	Goal  model.Goal
	Foods []metrics.Food
}

// initStatsCommandHandlers initializes stats command handlers
func initStatsCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"dashboard": handleStatsDashboard,
		"bmi":       handleStatsBMI,
		"progress":  handleStatsProgress,
		"trend":     handleStatsTrend,
		"quote":     handleStatsQuote,
	}
}

// userEntries returns the logged in user and their full entry log
func (s *Session) userEntries() (*model.UserProfile, model.EntryList, error) {
	user, err := s.UserGet()
	if err != nil {
		return nil, nil, err
	}
	entries, err := s.DataManager.EntryManager.EntryList(user.Username)
	if err != nil {
		return nil, nil, err
	}
	return user, entries, nil
}

func handleStatsDashboard(s *Session, cmd model.Command) (interface{}, error) {
	user, entries, err := s.userEntries()
	if err != nil {
		return nil, err
	}
	d := metrics.BuildDashboard(*user, entries, s.now(), s.DataManager.Config.HydrationTargetMl)
	return DashboardView{Dashboard: d, WeightUnit: s.weightUnit}, nil
}

func handleStatsBMI(s *Session, cmd model.Command) (interface{}, error) {
	user, err := s.UserGet()
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("BMI: %s", metrics.FormatBMI(user.Weight, user.Height)), nil
}

func handleStatsProgress(s *Session, cmd model.Command) (interface{}, error) {
	user, entries, err := s.userEntries()
	if err != nil {
		return nil, err
	}
	if user.GoalWeight <= 0 {
		return nil, fmt.Errorf("no goal weight set, run 'user update goalweight <weight>'")
	}
	return ProgressView{Progress: metrics.GoalProgress(*user, entries), WeightUnit: s.weightUnit}, nil
}

func handleStatsTrend(s *Session, cmd model.Command) (interface{}, error) {
	_, entries, err := s.userEntries()
	if err != nil {
		return nil, err
	}
	points := metrics.TrendPoints
	if len(cmd.Args) == 1 {
		if points, err = parseInt("points", cmd.Args[0]); err != nil {
			return nil, err
		}
	}
	return TrendView{Points: metrics.WeightTrend(entries, points), WeightUnit: s.weightUnit}, nil
}

func handleStatsQuote(s *Session, cmd model.Command) (interface{}, error) {
	return metrics.QuoteOfDay(s.now()), nil
}

// handleUnitsHeight shows or sets the height display unit
func handleUnitsHeight(s *Session, cmd model.Command) (interface{}, error) {
	if len(cmd.Args) == 1 {
		unit, err := units.ParseHeightUnit(cmd.Args[0])
		if err != nil {
			return nil, err
		}
		s.heightUnit = unit
	}
	return fmt.Sprintf("Height unit: %s", s.heightUnit), nil
}

// handleUnitsWeight shows or sets the weight display unit
func handleUnitsWeight(s *Session, cmd model.Command) (interface{}, error) {
	if len(cmd.Args) == 1 {
		unit, err := units.ParseWeightUnit(cmd.Args[0])
		if err != nil {
			return nil, err
		}
		s.weightUnit = unit
	}
	return fmt.Sprintf("Weight unit: %s", s.weightUnit), nil
}

// handleFoodSuggest lists foods for the given goal, or the user's goal
func handleFoodSuggest(s *Session, cmd model.Command) (interface{}, error) {
	goal := model.GoalFitness
	if s.user != nil && s.user.Goal != "" {
		goal = s.user.Goal
	}
	if len(cmd.Args) == 1 {
		var err error
		if goal, err = model.ParseGoal(cmd.Args[0]); err != nil {
			return nil, err
		}
	}
	return FoodSuggestions{Goal: goal, Foods: metrics.NutritionSuggestions(goal)}, nil
}
