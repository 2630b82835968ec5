package resources

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// colorTags maps the {{COLOR_*}} tags usable inside resource strings to
// terminal color attributes.
var colorTags = map[string]color.Attribute{
	"{{COLOR_BLACK}}":          color.FgBlack,
	"{{COLOR_RED}}":            color.FgRed,
	"{{COLOR_GREEN}}":          color.FgGreen,
	"{{COLOR_YELLOW}}":         color.FgYellow,
	"{{COLOR_BLUE}}":           color.FgBlue,
	"{{COLOR_MAGENTA}}":        color.FgMagenta,
	"{{COLOR_CYAN}}":           color.FgCyan,
	"{{COLOR_WHITE}}":          color.FgWhite,
	"{{COLOR_BRIGHT_RED}}":     color.FgHiRed,
	"{{COLOR_BRIGHT_GREEN}}":   color.FgHiGreen,
	"{{COLOR_BRIGHT_YELLOW}}":  color.FgHiYellow,
	"{{COLOR_BRIGHT_BLUE}}":    color.FgHiBlue,
	"{{COLOR_BRIGHT_MAGENTA}}": color.FgHiMagenta,
	"{{COLOR_BRIGHT_CYAN}}":    color.FgHiCyan,
	"{{COLOR_BRIGHT_WHITE}}":   color.FgHiWhite,
	"{{COLOR_NONE}}":           color.Reset,
}

// FormatString expands {{COLOR_*}} tags into ANSI escape codes and turns
// literal \n sequences into newlines. When color output is disabled
// (color.NoColor) the tags are stripped instead.
func FormatString(msg string) string {
	pairs := make([]string, 0, 2*len(colorTags)+2)
	pairs = append(pairs, `\n`, "\n")
	for tag, attr := range colorTags {
		pairs = append(pairs, tag, escape(attr))
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

// escape renders a single color attribute as a raw escape sequence. The
// tags mark open-ended color runs, so the usual color.New wrappers (which
// reset after every print) do not fit here.
func escape(attr color.Attribute) string {
	if color.NoColor {
		return ""
	}
	return fmt.Sprintf("\x1b[%dm", attr)
}
