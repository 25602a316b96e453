package whats4dinner

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// CallLogger records outbound recipe API calls.
type CallLogger interface {
	LogCall(call CallLog) error
}

// NewCallLogFilePath returns a timestamped file path inside dir named after the calling program.
func NewCallLogFilePath(dir, program string) string {
	name := strings.ReplaceAll(strings.ToLower(program), " ", "_")
	return filepath.Join(dir, fmt.Sprintf("%d.%s.json", time.Now().Unix(), name))
}

// CallLog represents a single request made to the recipe API.
type CallLog struct {
	Operation  string    `json:"operation"`
	Timestamp  time.Time `json:"timestamp"`
	Method     string    `json:"method"`
	URL        string    `json:"url"`
	Status     int       `json:"status,omitempty"`
	DurationMS int64     `json:"duration_ms"`
	Results    int       `json:"results,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// FileCallLogger accumulates calls and writes them as one document on Flush.
type FileCallLogger struct {
	mu     sync.Mutex
	calls  []CallLog
	writer io.Writer
}

func NewFileCallLogger(writer io.Writer) *FileCallLogger {
	return &FileCallLogger{
		calls:  make([]CallLog, 0),
		writer: writer,
	}
}

// LogCall buffers the call (does not flush immediately)
func (l *FileCallLogger) LogCall(call CallLog) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, call)
	return nil
}

// Flush writes all buffered calls to the writer and empties the buffer.
func (l *FileCallLogger) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.writer == nil {
		return nil
	}

	data, err := json.MarshalIndent(map[string]any{
		"call_session": map[string]any{
			"timestamp": time.Now(),
			"calls":     l.calls,
		},
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal call log: %w", err)
	}

	if _, err := l.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write call log: %w", err)
	}

	l.calls = l.calls[:0]
	return nil
}

// NoOpCallLogger discards all calls.
type NoOpCallLogger struct{}

func NewNoOpCallLogger() *NoOpCallLogger {
	return &NoOpCallLogger{}
}

func (nop *NoOpCallLogger) LogCall(call CallLog) error {
	return nil
}

// JSONLineCallLogger writes each call as one JSON line. Used by long-running
// processes where buffering a whole session is not an option.
type JSONLineCallLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func NewJSONLineCallLogger(w io.Writer) *JSONLineCallLogger {
	return &JSONLineCallLogger{w: w}
}

// NewStdoutCallLogger logs to os.Stdout (for Lambda/CloudWatch).
func NewStdoutCallLogger() *JSONLineCallLogger {
	return NewJSONLineCallLogger(os.Stdout)
}

func (l *JSONLineCallLogger) LogCall(call CallLog) error {
	data, err := json.Marshal(call)
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_, err = fmt.Fprintln(l.w, string(data))
	return err
}
