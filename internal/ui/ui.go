// Package ui renders IronPulse output to a terminal writer.
package ui

import (
	"fmt"
	"io"
	"strings"
)

// UI writes messages with optional ANSI colors
type UI struct {
	writer   io.Writer
	useColor bool
}

func NewUI(w io.Writer, useColor bool) *UI {
	return &UI{writer: w, useColor: useColor}
}

func (u *UI) colorize(message string, color Color) string {
	if !u.useColor || color == ColorDefault {
		return message
	}
	return fmt.Sprintf("%s%s%s", color, message, ColorDefault)
}

func (u *UI) Print(message string) {
	fmt.Fprint(u.writer, message)
}

func (u *UI) Printf(format string, args ...interface{}) {
	fmt.Fprintf(u.writer, format, args...)
}

func (u *UI) Println(message string) {
	fmt.Fprintln(u.writer, message)
}

func (u *UI) PrintColored(message string, color Color) {
	fmt.Fprint(u.writer, u.colorize(message, color))
}

func (u *UI) PrintlnColored(message string, color Color) {
	fmt.Fprintln(u.writer, u.colorize(message, color))
}

func (u *UI) Error(message string) {
	u.Println(u.colorize("!", ColorRed) + " " + u.colorize(message, ColorLightOrange))
}

func (u *UI) Success(message string) {
	u.PrintlnColored(message, ColorLightGreen)
}

func (u *UI) Warning(message string) {
	u.Println(u.colorize("?", ColorLightRed) + " " + u.colorize(message, ColorLightYellow))
}

func (u *UI) Info(message string) {
	u.PrintlnColored(message, ColorGray)
}

// PromptString builds the REPL prompt, showing the user when one is logged in
func (u *UI) PromptString(user string, onboarding bool) string {
	var promptBuilder strings.Builder
	if user != "" {
		promptBuilder.WriteString(u.colorize(user, ColorLightBlue))
		if onboarding {
			promptBuilder.WriteString(u.colorize(" (onboarding)", ColorLightPurple))
		}
		promptBuilder.WriteString(" ")
	}
	promptBuilder.WriteString(u.colorize("> ", ColorGreen))
	return promptBuilder.String()
}

// PrintMarkup prints a line containing {{color}} tags. Unknown tags print in the default color.
func (u *UI) PrintMarkup(line string) {
	color := ColorDefault
	for len(line) > 0 {
		start := strings.Index(line, "{{")
		end := strings.Index(line, "}}")
		if start == -1 || end < start {
			u.PrintColored(line, color)
			break
		}
		if start > 0 {
			u.PrintColored(line[:start], color)
		}
		tag := line[start : end+2]
		c, ok := markupColors[tag]
		if !ok {
			c = ColorDefault
		}
		color = c
		line = line[end+2:]
	}
	u.Println("")
}

// bar draws a fixed-width bar filled to percent
func bar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * float64(width))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}
