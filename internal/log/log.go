// Package log provides leveled, colored terminal output for the CLI.
//
// Informational output goes to stdout so scheduled runs can be captured
// in one stream; warnings and errors go to stderr. Debug output is
// gated behind SetDebugMode, wired to the root command's --debug flag.
package log

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var debugMode = false

// SetDebugMode enables or disables debug logging
func SetDebugMode(enabled bool) {
	debugMode = enabled
}

// Debug logs debug messages when debug mode is enabled
func Debug(format string, elem ...any) {
	if debugMode {
		fmt.Println(color.CyanString("[debug] ") + fmt.Sprintf(format, elem...))
	}
}

// Info logs an informational message
func Info(format string, elem ...any) {
	fmt.Println(color.BlueString("[+] ") + fmt.Sprintf(format, elem...))
}

// InfoH2 logs an indented informational message
func InfoH2(format string, elem ...any) {
	fmt.Println(color.GreenString("  [+] ") + fmt.Sprintf(format, elem...))
}

// Warn logs a warning message to stderr
func Warn(format string, elem ...any) {
	fmt.Fprintln(os.Stderr, color.YellowString("[!] ")+fmt.Sprintf(format, elem...))
}

// Error logs an error message to stderr
func Error(format string, elem ...any) {
	fmt.Fprintln(os.Stderr, color.RedString("[x] ")+fmt.Sprintf(format, elem...))
}

// ErrorH2 logs an indented error message to stderr
func ErrorH2(format string, elem ...any) {
	fmt.Fprintln(os.Stderr, color.RedString("  [x] ")+fmt.Sprintf(format, elem...))
}

// Fatal logs an error message and exits the program
func Fatal(format string, elem ...any) {
	Error(format, elem...)
	os.Exit(1)
}
