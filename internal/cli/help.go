// Package cli provides the command-line interface functionality for IronPulse.
// This file handles the help system and command completion.
package cli

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"

	"ironpulse/local-app/internal/session"
)

// CommandHelp represents the help information for one command
type CommandHelp struct {
	Scope     string
	Operation string
	ShortDesc string
	LongDesc  string
	Examples  []string
}

// Syntax returns the full command syntax
func (h CommandHelp) Syntax() string {
	syntax := h.Scope + " " + h.Operation
	if usage, ok := session.Usage(h.Scope, h.Operation); ok && usage != "" {
		syntax += " " + usage
	}
	return syntax
}

// HandleHelp shows general, scope or operation help
func (c *CLI) HandleHelp(args []string) error {
	switch len(args) {
	case 0:
		return c.showGeneralHelp()
	case 1:
		return c.showScopeHelp(strings.ToLower(args[0]))
	case 2:
		return c.showOperationHelp(strings.ToLower(args[0]), strings.ToLower(args[1]))
	default:
		return fmt.Errorf("invalid help command. Use 'help [scope] [operation]'")
	}
}

func (c *CLI) showGeneralHelp() error {
	c.UI.Println("Command syntax: <scope> <operation> [arguments]")
	c.UI.Println("Quote arguments that contain spaces.")

	currentScope := ""
	for _, cmd := range commandHelps {
		if cmd.Scope != currentScope {
			c.UI.PrintMarkup(fmt.Sprintf("\n{{blue}}%s{{default}}", cmd.Scope))
			currentScope = cmd.Scope
		}
		c.UI.Printf("  %-12s %s\n", cmd.Operation, cmd.ShortDesc)
	}
	return nil
}

func (c *CLI) showScopeHelp(scope string) error {
	found := false
	for _, cmd := range commandHelps {
		if cmd.Scope == scope {
			if !found {
				c.UI.Printf("Commands for %s:\n\n", scope)
				found = true
			}
			c.UI.Printf("  %-40s %s\n", cmd.Syntax(), cmd.ShortDesc)
		}
	}
	if !found {
		return fmt.Errorf("no help found for %s", scope)
	}
	return nil
}

func (c *CLI) showOperationHelp(scope, operation string) error {
	for _, cmd := range commandHelps {
		if cmd.Scope != scope || cmd.Operation != operation {
			continue
		}
		c.UI.Printf("Command: %s %s\n", scope, operation)
		desc := cmd.LongDesc
		if desc == "" {
			desc = cmd.ShortDesc
		}
		c.UI.Printf("Description: %s\n", desc)
		c.UI.Printf("Syntax: %s\n", cmd.Syntax())
		if len(cmd.Examples) > 0 {
			c.UI.Println("Examples:")
			for _, ex := range cmd.Examples {
				c.UI.Printf("  %s\n", ex)
			}
		}
		return nil
	}
	return fmt.Errorf("no help found for %s %s", scope, operation)
}

// Completer builds readline completion from the help table
func Completer() *readline.PrefixCompleter {
	var scopes []readline.PrefixCompleterInterface
	var ops []readline.PrefixCompleterInterface
	currentScope := ""
	flush := func() {
		if currentScope != "" {
			scopes = append(scopes, readline.PcItem(currentScope, ops...))
		}
		ops = nil
	}
	for _, cmd := range commandHelps {
		if cmd.Scope != currentScope {
			flush()
			currentScope = cmd.Scope
		}
		ops = append(ops, readline.PcItem(cmd.Operation))
	}
	flush()
	scopes = append(scopes, readline.PcItem("help"), readline.PcItem("exit"), readline.PcItem("quit"))
	return readline.NewPrefixCompleter(scopes...)
}

// commandHelps lists every command, grouped by scope
var commandHelps = []CommandHelp{
	{Scope: "user", Operation: "register", ShortDesc: "Create an account and log in",
		LongDesc: "Creates an account with the given username and password and logs in. The password is asked for when omitted.",
		Examples: []string{"user register alice s3cret alice@example.com"}},
	{Scope: "user", Operation: "login", ShortDesc: "Log in to an account",
		Examples: []string{"user login alice"}},
	{Scope: "user", Operation: "logout", ShortDesc: "Log out"},
	{Scope: "user", Operation: "show", ShortDesc: "Show the profile"},
	{Scope: "user", Operation: "update", ShortDesc: "Change one profile field",
		LongDesc: "Fields: email, age, gender, height, weight, goalweight, goal, activity. Height and weight use the current display units. The username cannot be changed.",
		Examples: []string{"user update weight 79.5", "user update height 5 11", "user update goal loss"}},

	{Scope: "onboard", Operation: "start", ShortDesc: "Start (or restart) profile setup"},
	{Scope: "onboard", Operation: "basics", ShortDesc: "Step 1: age and gender",
		Examples: []string{"onboard basics 29 female"}},
	{Scope: "onboard", Operation: "body", ShortDesc: "Step 2: height and weight",
		LongDesc: "Height and weight use the current display units. In feet, write 5'11 or 5 11.",
		Examples: []string{"onboard body 180 80", "onboard body 5'11 176"}},
	{Scope: "onboard", Operation: "goals", ShortDesc: "Step 3: activity level, goal and goal weight",
		LongDesc: "Activity levels: sedentary, light, moderate, active. Goals: gain, loss, maintain, fitness.",
		Examples: []string{"onboard goals active loss 72"}},
	{Scope: "onboard", Operation: "next", ShortDesc: "Go to the next step"},
	{Scope: "onboard", Operation: "back", ShortDesc: "Go to the previous step"},
	{Scope: "onboard", Operation: "status", ShortDesc: "Show the current step and values"},
	{Scope: "onboard", Operation: "finish", ShortDesc: "Save the profile"},

	{Scope: "workout", Operation: "add", ShortDesc: "Log a workout",
		LongDesc: "Calories are estimated from the exercise MET value and your weight. Known exercises: boxing, cycling, hiit, running, swimming, weightlifting, yoga.",
		Examples: []string{"workout add running 30"}},
	{Scope: "water", Operation: "add", ShortDesc: "Log water intake",
		LongDesc: "Without an amount the quick amount is logged.",
		Examples: []string{"water add", "water add 500"}},
	{Scope: "water", Operation: "adjust", ShortDesc: "Change the quick amount in 50 ml steps",
		Examples: []string{"water adjust 2", "water adjust -1"}},
	{Scope: "sleep", Operation: "add", ShortDesc: "Log a night of sleep",
		Examples: []string{"sleep add 23:30 07:00"}},
	{Scope: "journal", Operation: "add", ShortDesc: "Write a journal note",
		Examples: []string{"journal add \"Leg day\" \"Squats felt strong\" happy"}},
	{Scope: "weight", Operation: "add", ShortDesc: "Log a weigh-in and update the profile weight",
		Examples: []string{"weight add 79.2"}},

	{Scope: "entry", Operation: "list", ShortDesc: "List entries, newest first",
		LongDesc: "Types: workout, hydration (water), sleep, journal, biometrics (weight).",
		Examples: []string{"entry list", "entry list water 10"}},
	{Scope: "entry", Operation: "delete", ShortDesc: "Delete an entry by id or timestamp"},
	{Scope: "entry", Operation: "purge", ShortDesc: "Delete every entry"},
	{Scope: "entry", Operation: "export", ShortDesc: "Write the entry log to a JSON file"},
	{Scope: "entry", Operation: "import", ShortDesc: "Add entries from a JSON file"},

	{Scope: "stats", Operation: "dashboard", ShortDesc: "Today's summary, goal progress and weight trend"},
	{Scope: "stats", Operation: "bmi", ShortDesc: "Show the current BMI"},
	{Scope: "stats", Operation: "progress", ShortDesc: "Show weight goal progress"},
	{Scope: "stats", Operation: "trend", ShortDesc: "Chart recent weigh-ins"},
	{Scope: "stats", Operation: "quote", ShortDesc: "Quote of the day"},

	{Scope: "units", Operation: "height", ShortDesc: "Show or set the height unit"},
	{Scope: "units", Operation: "weight", ShortDesc: "Show or set the weight unit"},

	{Scope: "food", Operation: "suggest", ShortDesc: "Suggest foods for a goal"},

	{Scope: "system", Operation: "exit", ShortDesc: "Exit the program"},
	{Scope: "system", Operation: "quit", ShortDesc: "Exit the program"},
}
