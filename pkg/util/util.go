package util

import (
	"fmt"
	"io"
	"os"

	"github.com/xplshn/bgen/pkg/config"
	"golang.org/x/term"
)

// Output receives every diagnostic. Colour is used only when it is a
// terminal.
var Output io.Writer = os.Stderr

const (
	red    = "\033[31m"
	yellow = "\033[33m"
	reset  = "\033[0m"
)

func colored() bool {
	f, ok := Output.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func paint(color, s string) string {
	if !colored() {
		return s
	}
	return color + s + reset
}

func location(blockID string) string {
	if blockID == "" {
		return "bgen"
	}
	return "block " + blockID
}

// Error prints a formatted error message and exits the program
func Error(blockID string, format string, args ...interface{}) {
	fmt.Fprintf(Output, "%s: %s ", location(blockID), paint(red, "error:"))
	fmt.Fprintf(Output, format, args...)
	fmt.Fprintln(Output)
	os.Exit(1)
}

// Warn prints a formatted warning message if the corresponding warning is enabled
func Warn(cfg *config.Config, wt config.Warning, blockID string, format string, args ...interface{}) {
	if !cfg.IsWarningEnabled(wt) {
		return
	}
	fmt.Fprintf(Output, "%s: %s ", location(blockID), paint(yellow, "warning:"))
	fmt.Fprintf(Output, format, args...)
	fmt.Fprintf(Output, " [-W%s]\n", cfg.Warnings[wt].Name)
}

// PrintFeatures prints the current status of all features
func PrintFeatures(cfg *config.Config) {
	for i := config.Feature(0); i < config.FeatCount; i++ {
		info := cfg.Features[i]
		fmt.Fprintf(Output, "  - %-20s: %v (%s)\n", info.Name, info.Enabled, info.Description)
	}
}

// PrintWarnings prints the current status of all warnings.
func PrintWarnings(cfg *config.Config) {
	for i := config.Warning(0); i < config.WarnCount; i++ {
		info := cfg.Warnings[i]
		fmt.Fprintf(Output, "  - %-20s: %v (%s)\n", info.Name, info.Enabled, info.Description)
	}
}
