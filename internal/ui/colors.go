package ui

// Color is an ANSI 24-bit foreground escape sequence
type Color string

const (
	ColorDefault  Color = "\033[0m"
	ColorGray     Color = "\033[38;2;150;150;150m"
	ColorDarkGray Color = "\033[38;2;100;100;100m"
	ColorWhite    Color = "\033[38;2;255;255;255m"

	ColorLightRed   Color = "\033[38;2;255;150;150m"
	ColorRed        Color = "\033[38;2;255;0;0m"
	ColorLightGreen Color = "\033[38;2;150;255;150m"
	ColorGreen      Color = "\033[38;2;0;255;0m"

	ColorLightYellow Color = "\033[38;2;255;255;150m"
	ColorYellow      Color = "\033[38;2;255;255;0m"
	ColorLightBlue   Color = "\033[38;2;150;150;255m"
	ColorBlue        Color = "\033[38;2;0;0;255m"

	ColorLightPurple Color = "\033[38;2;200;150;255m"
	ColorLightOrange Color = "\033[38;2;255;200;150m"
	ColorOrange      Color = "\033[38;2;255;165;0m"
)

// markupColors maps {{name}} tags used by PrintMarkup to colors
var markupColors = map[string]Color{
	"{{default}}": ColorDefault,
	"{{gray}}":    ColorGray,
	"{{red}}":     ColorRed,
	"{{green}}":   ColorGreen,
	"{{yellow}}":  ColorYellow,
	"{{blue}}":    ColorLightBlue,
	"{{purple}}":  ColorLightPurple,
	"{{orange}}":  ColorOrange,
}
