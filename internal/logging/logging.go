package logging

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const defaultLogFile = "hiview.log"

var (
	mu        sync.Mutex
	tracing   bool
	logPath   = defaultLogFile
	sessionID = uuid.NewString()
)

// Configure sets the log destination, creating its directory. An empty path
// selects the default file in the working directory.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	tracing = enabled
	mu.Unlock()
}

// Error appends err to the log, tagged with the session id.
func Error(err error) {
	if err == nil {
		return
	}
	appendLog(func(f *os.File) error {
		log.New(f, "", log.LstdFlags).Printf("[%s] %v", sessionID, err)
		return nil
	})
}

// Trace appends a structured JSON entry to the log when tracing is enabled.
func Trace(event string, payload interface{}) {
	mu.Lock()
	enabled := tracing
	mu.Unlock()
	if !enabled {
		return
	}

	entry := struct {
		Time    time.Time   `json:"time"`
		Session string      `json:"session"`
		Event   string      `json:"event"`
		Payload interface{} `json:"payload,omitempty"`
	}{
		Time:    time.Now().UTC(),
		Session: sessionID,
		Event:   event,
		Payload: payload,
	}
	appendLog(func(f *os.File) error {
		return json.NewEncoder(f).Encode(entry)
	})
}

func appendLog(write func(*os.File) error) {
	mu.Lock()
	path := logPath
	mu.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return
	}
	defer f.Close()
	if err := write(f); err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
	}
}
