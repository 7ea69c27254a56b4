package logger

import (
	"encoding/json"
	"io"
	"os"
	"time"
)

// Logger writes one JSON object per line. Cheap enough that no library is
// pulled in for it; the fields match what the rest of the tooling expects.
type Logger struct {
	service   string
	requestID string
	out       io.Writer
}

func New(service string) *Logger { return &Logger{service: service, out: os.Stdout} }

// WithRequestID returns a copy that stamps every entry with the id.
func (l *Logger) WithRequestID(id string) *Logger {
	cp := *l
	cp.requestID = id
	return &cp
}

func (l *Logger) log(level, action, msg string, fields map[string]any, err error) {
	entry := map[string]any{
		"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		"level":      level,
		"service":    l.service,
		"action":     action,
		"message":    msg,
		"hostname":   hostname(),
		"request_id": l.requestID,
	}
	for k, v := range fields {
		entry[k] = v
	}
	if err != nil {
		entry["error"] = err.Error()
	}
	_ = json.NewEncoder(l.out).Encode(entry)
}

func (l *Logger) Info(action string, fields map[string]any)  { l.log("INFO", action, action, fields, nil) }
func (l *Logger) Debug(action string, fields map[string]any) { l.log("DEBUG", action, action, fields, nil) }
func (l *Logger) Error(action string, err error, fields map[string]any) {
	l.log("ERROR", action, action, fields, err)
}

func hostname() string { h, _ := os.Hostname(); return h }
