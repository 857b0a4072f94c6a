package resilienceplanner

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// ActionLogger is the interface for recording planner actions (plan
// generations and follow-up turns) for later inspection.
type ActionLogger interface {
	LogAction(entry ActionLog) error
}

// NewActionLogFilePath returns a file path based on a cleaned up backend name so logs produced with different model backends are easy to tell apart.
func NewActionLogFilePath(backend string) string {
	return fmt.Sprintf(
		"./logs/%d.%s.json",
		time.Now().Unix(),
		strings.ReplaceAll(strings.ToLower(backend), ":", "_"),
	)
}

// ActionLog represents a single planner action
type ActionLog struct {
	Action    string    `json:"action"` // "generate_plan" or "follow_up"
	Timestamp time.Time `json:"timestamp"`
	County    string    `json:"county,omitempty"`
	Prompt    string    `json:"prompt,omitempty"`
	Output    string    `json:"output,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// FileActionLogger logs to a file, accumulating actions and flushing at the end
type FileActionLogger struct {
	actions []ActionLog
	writer  io.Writer
}

// NewFileActionLogger creates a new file-based action logger
func NewFileActionLogger(writer io.Writer) *FileActionLogger {
	return &FileActionLogger{
		actions: make([]ActionLog, 0),
		writer:  writer,
	}
}

// LogAction logs an action to the buffer (does not flush immediately)
func (fal *FileActionLogger) LogAction(entry ActionLog) error {
	fal.actions = append(fal.actions, entry)
	return nil
}

// Flush flushes all accumulated actions to the writer
func (fal *FileActionLogger) Flush() error {
	if fal.writer == nil {
		return nil
	}

	data, err := json.MarshalIndent(map[string]any{
		"planner_session": map[string]any{
			"timestamp": time.Now(),
			"actions":   fal.actions,
		},
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal action log: %w", err)
	}

	if _, err := fal.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write action log: %w", err)
	}

	// Clear the buffer after successful write
	fal.actions = fal.actions[:0]
	return nil
}

// NoOpActionLogger is a logger that discards all log entries
type NoOpActionLogger struct{}

// NewNoOpActionLogger creates a new no-op action logger
func NewNoOpActionLogger() *NoOpActionLogger {
	return &NoOpActionLogger{}
}

// LogAction discards the entry (no-op)
func (nop *NoOpActionLogger) LogAction(entry ActionLog) error {
	return nil
}

// StdoutActionLogger logs each action as a JSON line to stdout (for Lambda/CloudWatch)
type StdoutActionLogger struct{}

// NewStdoutActionLogger creates a new stdout-based action logger
func NewStdoutActionLogger() *StdoutActionLogger {
	return &StdoutActionLogger{}
}

// LogAction writes the action as a JSON line to os.Stdout
func (l *StdoutActionLogger) LogAction(entry ActionLog) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(data))
	return nil
}
