package cli

import (
	"fmt"

	"ironpulse/local-app/internal/model"
	"ironpulse/local-app/internal/session"
)

// render displays a command result. It returns true when the result asks to exit.
func (c *CLI) render(result interface{}) bool {
	_, weightUnit := c.Session.Units()

	switch v := result.(type) {
	case nil:
	case session.Exit:
		c.UI.Println("Goodbye!")
		return true
	case string:
		c.UI.Success(v)
	case session.ProfileView:
		c.UI.ProfileInfo(v.Profile, v.BMI, v.HeightUnit, v.WeightUnit)
	case session.OnboardingStatus:
		c.UI.OnboardingStatus(v.Step, v.Total, v.Input)
	case model.Entry:
		c.UI.EntryAdded(v, weightUnit)
	case session.EntryListing:
		c.UI.EntryList(v.Entries, v.Total, v.WeightUnit)
	case session.DashboardView:
		c.UI.Dashboard(v.Dashboard, v.WeightUnit)
	case session.ProgressView:
		c.UI.Progress(v.Progress, v.WeightUnit)
	case session.TrendView:
		c.UI.Trend(v.Points, v.WeightUnit)
	case session.FoodSuggestions:
		c.UI.Foods(v.Goal, v.Foods)
	default:
		c.UI.Println(fmt.Sprint(v))
	}
	return false
}
