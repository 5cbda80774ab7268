// ABOUTME: Debug logger for the TUI that writes to a file in the config dir
// ABOUTME: Keeps diagnostics off the alternate screen while the app runs

package debuglog

import (
	"log"
	"os"
	"path/filepath"
	"sync"
)

var (
	mu     sync.Mutex
	file   *os.File
	logger *log.Logger
)

// Init opens the debug log under the given config directory. An empty
// directory disables logging entirely; all calls become no-ops.
func Init(configDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if configDir == "" {
		return nil
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(configDir, "debug.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}

	file = f
	logger = log.New(f, "", log.LstdFlags)
	return nil
}

// Close flushes and closes the log file
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		file.Close()
		file = nil
		logger = nil
	}
}

// Log writes a formatted line to the debug log
func Log(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if logger == nil {
		return
	}
	logger.Printf(format, args...)
}

// Error logs a failed operation with its error. A nil error is ignored.
func Error(op string, err error) {
	if err == nil {
		return
	}
	Log("ERROR %s: %v", op, err)
}

