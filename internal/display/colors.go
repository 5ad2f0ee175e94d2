// FILE: internal/display/colors.go
package display

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// Terminal color codes
const (
	Reset   = "\033[0m"
	Bold    = "\033[1m"
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	White   = "\033[37m"
)

// Color modes accepted in configuration
const (
	ModeAuto   = "auto"
	ModeAlways = "always"
	ModeNever  = "never"
)

// Enabled resolves a color mode against the output file
func Enabled(mode string, f *os.File) bool {
	switch mode {
	case ModeAlways:
		return true
	case ModeNever:
		return false
	default:
		return f != nil && term.IsTerminal(int(f.Fd()))
	}
}

// Paint wraps s in color when on is set
func Paint(on bool, color, s string) string {
	if !on {
		return s
	}
	return color + s + Reset
}

// Prompt returns a colored prompt string
func Prompt(on bool, text string) string {
	if !on {
		return text + " > "
	}
	return Yellow + text + Yellow + " > " + Reset
}

// Paintf is Paint with formatting
func Paintf(on bool, color, format string, args ...any) string {
	return Paint(on, color, fmt.Sprintf(format, args...))
}
