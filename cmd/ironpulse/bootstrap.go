package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
	"github.com/google/uuid"
	"golang.org/x/crypto/ssh/terminal"

	"ironpulse/local-app/internal/cli"
	"ironpulse/local-app/internal/config"
	"ironpulse/local-app/internal/data"
	"ironpulse/local-app/internal/log"
	"ironpulse/local-app/internal/session"
	"ironpulse/local-app/internal/storage"
)

// bootstrap loads the configuration, wires logger, storage, data manager and
// session together, restores the previous login and runs the CLI.
func bootstrap(configPath string, scripts []string) error {
	ctx := context.Background()

	if err := config.ConfigLoad(configPath); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg := config.ConfigGet()

	logger, err := log.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		if err := logger.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to close logger: %v\n", err)
		}
	}()

	logger.Info(ctx, "Application started", log.Fields{"config": configPath, "database": cfg.DatabaseType})

	store, err := storage.NewStorage(cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize storage", log.Fields{"error": err})
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error(ctx, "Failed to close storage", log.Fields{"error": err})
		}
	}()

	dataManager, err := data.NewDataManagerFromStorage(store, cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize data manager", log.Fields{"error": err})
		return fmt.Errorf("failed to initialize data manager: %w", err)
	}

	sess := session.NewSession(uuid.NewString(), dataManager, logger)
	if err := sess.Restore(); err != nil {
		// a broken auth record only costs a login
		logger.Warn(ctx, "Starting logged out", log.Fields{"error": err})
	}

	if err := os.MkdirAll(filepath.Dir(cfg.HistoryFile), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     cfg.HistoryFile,
		AutoComplete:    cli.Completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer rl.Close()

	useColor := terminal.IsTerminal(int(os.Stdout.Fd()))
	c := cli.NewCLI(sess, rl, rl.Stdout(), useColor, logger)

	for _, script := range scripts {
		if err := c.ExecuteScript(script); err != nil {
			logger.Error(ctx, "Script had failing lines", log.Fields{"script": script, "error": err})
			c.UI.Warning(fmt.Sprintf("%s finished with errors", script))
		}
	}

	c.UI.Println("Welcome to IronPulse! Type 'help' for the list of commands.")
	if user := sess.User(); user != nil {
		c.UI.Info(fmt.Sprintf("Logged in as %s", user.Username))
	}

	if err := c.Run(); err != nil {
		logger.Error(ctx, "CLI error", log.Fields{"error": err})
		return fmt.Errorf("CLI error: %w", err)
	}

	logger.Info(ctx, "Application shutting down", nil)
	return nil
}
