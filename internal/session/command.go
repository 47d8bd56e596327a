package session

import (
	"context"
	"errors"
	"fmt"

	"ironpulse/local-app/internal/log"
	"ironpulse/local-app/internal/model"
)

// argRange bounds the argument count of one operation. max < 0 means unbounded.
type argRange struct {
	min, max int
	usage    string
}

func (r argRange) accepts(n int) bool {
	return n >= r.min && (r.max < 0 || n <= r.max)
}

// commandArgs lists every valid scope and operation with its argument bounds
var commandArgs = map[string]map[string]argRange{
	"user": {
		"register": {2, 3, "<username> <password> [email]"},
		"login":    {2, 2, "<username> <password>"},
		"logout":   {0, 0, ""},
		"show":     {0, 0, ""},
		"update":   {2, 3, "<field> <value> [inches]"},
	},
	"onboard": {
		"start":  {0, 0, ""},
		"basics": {2, 2, "<age> <male|female|other>"},
		"body":   {2, 3, "<height> [inches] <weight>"},
		"goals":  {2, 3, "<activity_level> <goal> [goal_weight]"},
		"next":   {0, 0, ""},
		"back":   {0, 0, ""},
		"status": {0, 0, ""},
		"finish": {0, 0, ""},
	},
	"workout": {
		"add": {2, 2, "<exercise> <minutes>"},
	},
	"water": {
		"add":    {0, 1, "[ml]"},
		"adjust": {1, 1, "<steps>"},
	},
	"sleep": {
		"add": {2, 2, "<bed HH:MM> <wake HH:MM>"},
	},
	"journal": {
		"add": {2, 3, "<title> <content> [mood]"},
	},
	"weight": {
		"add": {1, 1, "<weight>"},
	},
	"entry": {
		"list":   {0, 2, "[type] [limit]"},
		"delete": {1, 1, "<id|timestamp>"},
		"purge":  {0, 0, ""},
		"export": {1, 1, "<filename>"},
		"import": {1, 1, "<filename>"},
	},
	"stats": {
		"dashboard": {0, 0, ""},
		"bmi":       {0, 0, ""},
		"progress":  {0, 0, ""},
		"trend":     {0, 1, "[points]"},
		"quote":     {0, 0, ""},
	},
	"units": {
		"height": {0, 1, "[cm|ft]"},
		"weight": {0, 1, "[kg|lbs]"},
	},
	"food": {
		"suggest": {0, 1, "[goal]"},
	},
	"system": {
		"exit": {0, 0, ""},
		"quit": {0, 0, ""},
	},
}

// Command wraps the model.Command and adds session-specific functionality
type Command struct {
	command model.Command
	logger  *log.Logger
}

// NewCommand creates a new Command from a model.Command
func NewCommand(cmd model.Command, logger *log.Logger) Command {
	return Command{command: cmd, logger: logger}
}

// Validate checks that the scope and operation exist and the argument count fits
func (c *Command) Validate() error {
	ctx := context.Background()
	c.logger.Debug(ctx, "Validating command", log.Fields{"scope": c.command.Scope, "operation": c.command.Operation})

	if c.command.Scope == "" {
		c.logger.Error(ctx, "Command scope is empty", nil)
		return errors.New("command scope is required")
	}

	operations, ok := commandArgs[c.command.Scope]
	if !ok {
		c.logger.Error(ctx, "Invalid command scope", log.Fields{"scope": c.command.Scope})
		return fmt.Errorf("invalid command scope: %s", c.command.Scope)
	}

	bounds, ok := operations[c.command.Operation]
	if !ok {
		c.logger.Error(ctx, "Invalid command operation", log.Fields{"scope": c.command.Scope, "operation": c.command.Operation})
		return fmt.Errorf("invalid %s operation: %s", c.command.Scope, c.command.Operation)
	}

	if !bounds.accepts(len(c.command.Args)) {
		c.logger.Error(ctx, "Invalid number of arguments", log.Fields{"scope": c.command.Scope, "operation": c.command.Operation, "argCount": len(c.command.Args)})
		if bounds.usage == "" {
			return fmt.Errorf("%s %s command does not accept any arguments", c.command.Scope, c.command.Operation)
		}
		return fmt.Errorf("usage: %s %s %s", c.command.Scope, c.command.Operation, bounds.usage)
	}
	return nil
}

// Usage returns the argument synopsis of scope/operation, or false when unknown
func Usage(scope, operation string) (string, bool) {
	bounds, ok := commandArgs[scope][operation]
	return bounds.usage, ok
}
