// Package cli provides the interactive command line of IronPulse.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"
	"unicode"

	"github.com/chzyer/readline"
	"golang.org/x/crypto/ssh/terminal"

	"ironpulse/local-app/internal/log"
	"ironpulse/local-app/internal/model"
	"ironpulse/local-app/internal/session"
	"ironpulse/local-app/internal/ui"
)

// CLI reads commands, runs them against the session and renders the results
type CLI struct {
	Session *session.Session
	UI      *ui.UI
	RL      *readline.Instance
	logger  *log.Logger

	readPassword func(prompt string) (string, error)
}

// NewCLI creates a CLI. rl may be nil when only scripts are run.
func NewCLI(sess *session.Session, rl *readline.Instance, out io.Writer, useColor bool, logger *log.Logger) *CLI {
	c := &CLI{
		Session: sess,
		UI:      ui.NewUI(out, useColor),
		RL:      rl,
		logger:  logger,
	}
	c.readPassword = c.promptForPassword
	return c
}

// Prompt returns the prompt for the current session state
func (c *CLI) Prompt() string {
	user := c.Session.User()
	if user == nil {
		return c.UI.PromptString("", false)
	}
	return c.UI.PromptString(user.Username, c.Session.Onboarding() != nil)
}

// Run reads and executes lines until exit or end of input
func (c *CLI) Run() error {
	for {
		c.RL.SetPrompt(c.Prompt())
		line, err := c.RL.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if strings.TrimSpace(line) == "" {
				c.UI.Info("Use 'exit' or 'quit' to exit the program.")
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		exit, err := c.ExecuteLine(line)
		if err != nil {
			c.UI.Error(err.Error())
		}
		if exit {
			return nil
		}
	}
}

// ExecuteLine parses and runs one input line. exit reports a request to quit.
func (c *CLI) ExecuteLine(line string) (exit bool, err error) {
	args := ParseArgs(line)
	if len(args) == 0 {
		return false, nil
	}
	return c.ExecuteCommand(args)
}

// ExecuteScript runs every line of a file. A failing line is reported as
// file:line and the script carries on; the failures are returned joined.
func (c *CLI) ExecuteScript(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	defer file.Close()

	var errs []error
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		exit, err := c.ExecuteLine(line)
		if err != nil {
			lineErr := fmt.Errorf("%s:%d: %w", filename, lineNo, err)
			c.UI.Error(lineErr.Error())
			errs = append(errs, lineErr)
			continue
		}
		if exit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		errs = append(errs, fmt.Errorf("failed to read script: %w", err))
	}
	return errors.Join(errs...)
}

// ParseArgs splits input on whitespace. Double quotes group words into one argument.
func ParseArgs(input string) []string {
	var args []string
	var currentArg strings.Builder
	inQuotes, quoted := false, false

	for _, char := range input {
		switch {
		case char == '"':
			inQuotes = !inQuotes
			quoted = true
		case unicode.IsSpace(char) && !inQuotes:
			if currentArg.Len() > 0 || quoted {
				args = append(args, currentArg.String())
				currentArg.Reset()
			}
			quoted = false
		default:
			currentArg.WriteRune(char)
		}
	}

	if currentArg.Len() > 0 || quoted {
		args = append(args, currentArg.String())
	}
	return args
}

// ExecuteCommand runs a parsed command line
func (c *CLI) ExecuteCommand(args []string) (bool, error) {
	ctx := context.Background()
	scope := strings.ToLower(args[0])

	switch scope {
	case "help":
		return false, c.HandleHelp(args[1:])
	case "exit", "quit":
		args = []string{"system", scope}
	}

	cmd := model.Command{Scope: strings.ToLower(args[0])}
	if len(args) > 1 {
		cmd.Operation = strings.ToLower(args[1])
	}
	if len(args) > 2 {
		cmd.Args = args[2:]
	}

	if cmd.Scope == "user" && (cmd.Operation == "register" || cmd.Operation == "login") && len(cmd.Args) == 1 {
		password, err := c.readPassword("Password: ")
		if err != nil {
			return false, err
		}
		cmd.Args = append(cmd.Args, password)
	}

	c.logger.Command(ctx, "Executing command", log.Fields{"scope": cmd.Scope, "operation": cmd.Operation})
	result, err := c.Session.CommandRun(cmd)
	if err != nil {
		return false, err
	}
	return c.render(result), nil
}

func (c *CLI) promptForPassword(prompt string) (string, error) {
	fd := int(syscall.Stdin)
	if !terminal.IsTerminal(fd) {
		return "", errors.New("password required")
	}
	c.UI.Print(prompt)
	passwordBytes, err := terminal.ReadPassword(fd)
	c.UI.Println("")
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(passwordBytes), nil
}
