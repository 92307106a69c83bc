// Package logging configures the commonlog backend shared by the compiler,
// the VM and the driver.
package logging

import (
	"fmt"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

// Quiet turns logging off entirely.
const Quiet = -4

// Configure sets the maximum log level from verbosity (0 notice, 1 info,
// 2 debug) and directs output to file, or stderr when file is empty.
// The file must be writable; the backend exits the process on a bad path.
func Configure(verbosity int, file string) error {
	if verbosity < Quiet {
		verbosity = Quiet
	}
	if file == "" {
		commonlog.Configure(verbosity, nil)
		return nil
	}
	f, err := os.OpenFile(file, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	commonlog.Configure(verbosity, &file)
	return nil
}

// Enabled reports whether messages at level would be written for the named logger.
func Enabled(level commonlog.Level, name string) bool {
	return commonlog.AllowLevel(level, commonlog.PathToName(name)...)
}
