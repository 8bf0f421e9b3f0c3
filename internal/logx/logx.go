// Package logx provides debug logging to a file. A TUI owns the terminal,
// so diagnostics go to a log file instead of stderr.
package logx

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

var (
	isVerbose = false
	logFile   *os.File
)

// Init opens a dated log file under dir when verbose mode is enabled.
func Init(verbose bool, dir string) error {
	isVerbose = verbose
	if !verbose {
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	name := fmt.Sprintf("energytracker_%s.log", time.Now().Format("2006-01-02"))

	var err error
	logFile, err = os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	Printf("verbose logging enabled")
	return nil
}

// Printf writes a formatted line to the log file if verbose mode is enabled.
func Printf(format string, args ...interface{}) {
	if isVerbose && logFile != nil {
		fmt.Fprintf(logFile, time.Now().Format("15:04:05 ")+format+"\n", args...)
	}
}

// Close closes the log file if it is open.
func Close() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}
