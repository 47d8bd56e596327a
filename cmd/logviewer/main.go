// Package main is a viewer for the IronPulse JSON log files.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"ironpulse/local-app/internal/ui"
)

// LogEntry is one decoded log line
type LogEntry map[string]interface{}

func formatTimestamp(timestamp string) string {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.000Z0700"} {
		if t, err := time.Parse(layout, timestamp); err == nil {
			return t.Local().Format("06-01-02 15:04:05.000")
		}
	}
	return timestamp
}

func levelColor(level string) ui.Color {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return ui.ColorLightBlue
	case "INFO":
		return ui.ColorLightGreen
	case "WARN":
		return ui.ColorYellow
	case "ERROR":
		return ui.ColorRed
	default:
		return ui.ColorWhite
	}
}

// formatLogEntry renders an entry on one header line with its fields indented below, sorted by key
func formatLogEntry(entry LogEntry) string {
	timestamp, _ := entry["timestamp"].(string)
	level, _ := entry["level"].(string)
	msg, _ := entry["msg"].(string)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s %s", formatTimestamp(timestamp), fmt.Sprintf("%-5s", strings.ToUpper(level)), msg))

	keys := make([]string, 0, len(entry))
	for key := range entry {
		if key != "timestamp" && key != "level" && key != "msg" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		b.WriteString(fmt.Sprintf("\n    %s: %v", key, entry[key]))
	}
	return b.String()
}

type viewer struct {
	ui        *ui.UI
	dir       string
	filter    string
	positions map[string]int64
}

// scan prints the lines added to every *.log file since the previous scan
func (v *viewer) scan() error {
	logFiles, err := filepath.Glob(filepath.Join(v.dir, "*.log"))
	if err != nil {
		return fmt.Errorf("error reading log directory: %w", err)
	}
	sort.Strings(logFiles)

	for _, path := range logFiles {
		if err := v.scanFile(path); err != nil {
			v.ui.Error(err.Error())
		}
	}
	return nil
}

func (v *viewer) scanFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening %s: %w", filepath.Base(path), err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return err
	}
	if stat.Size() < v.positions[path] {
		v.ui.Warning(fmt.Sprintf("%s has been truncated, starting from beginning", filepath.Base(path)))
		v.positions[path] = 0
	}
	if _, err := file.Seek(v.positions[path], io.SeekStart); err != nil {
		return err
	}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var entry LogEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue
		}
		formatted := formatLogEntry(entry)
		if v.filter != "" && !strings.Contains(strings.ToLower(formatted), strings.ToLower(v.filter)) {
			continue
		}
		level, _ := entry["level"].(string)
		header, rest, _ := strings.Cut(formatted, "\n")
		v.ui.PrintlnColored(header, levelColor(level))
		if rest != "" {
			v.ui.PrintlnColored(rest, ui.ColorGray)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	pos, err := file.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	v.positions[path] = pos
	return nil
}

func main() {
	var (
		dir    string
		filter string
		follow bool
		rate   time.Duration
	)
	flag.StringVar(&dir, "dir", "./logs", "Directory containing the *.log files")
	flag.StringVar(&filter, "f", "", "Only show entries containing this text (case insensitive)")
	flag.BoolVar(&follow, "follow", false, "Keep watching for new entries")
	flag.DurationVar(&rate, "r", time.Second, "Refresh rate when following")
	flag.Parse()

	if _, err := os.Stat(dir); err != nil {
		fmt.Fprintf(os.Stderr, "Log directory '%s' does not exist. Please specify a valid directory.\n", dir)
		os.Exit(1)
	}

	v := &viewer{ui: ui.NewUI(os.Stdout, true), dir: dir, filter: filter, positions: make(map[string]int64)}
	if err := v.scan(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if !follow {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ticker := time.NewTicker(rate)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := v.scan(); err != nil {
				v.ui.Error(err.Error())
			}
		}
	}
}
