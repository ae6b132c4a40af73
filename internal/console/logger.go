package console

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// Level is the importance of a Record.
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Record is a line of the console log.
type Record struct {
	Time    time.Time
	Level   Level
	Scope   string
	Message string
	Extra   map[string]interface{}
}

// MarshalJSON implements the json.Marshaler interface.
// Extra fields are placed in the same object as the other fields.
func (r Record) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(r.Extra)+4)
	for k, v := range r.Extra {
		m[k] = v
	}
	m["time"] = r.Time.Format(time.RFC3339)
	m["level"] = r.Level
	m["scope"] = r.Scope
	m["message"] = r.Message

	return json.Marshal(m)
}

// String makes a single line JSON of the Record.
func (r Record) String() string {
	b, err := r.MarshalJSON()
	if err != nil {
		return `{"level":"ERROR","scope":"statusboard:log","message":"failed to encode log record"}`
	}
	return string(b)
}

// Logger writes Records to a console as JSON lines.
type Logger struct {
	lock   *sync.Mutex
	writer io.Writer
	scope  string
}

// New makes a new Logger that writes to w.
func New(w io.Writer) Logger {
	return Logger{
		lock:   &sync.Mutex{},
		writer: w,
		scope:  "statusboard",
	}
}

// Default makes a Logger that writes to stdout.
func Default() Logger {
	return New(os.Stdout)
}

// Discard makes a Logger that writes nothing.
func Discard() Logger {
	return New(io.Discard)
}

// WithScope makes new Logger that has a scope under the current scope.
func (l Logger) WithScope(scope string) Logger {
	return Logger{
		lock:   l.lock,
		writer: l.writer,
		scope:  l.scope + ":" + scope,
	}
}

// Scope returns the scope of this Logger.
func (l Logger) Scope() string {
	return l.scope
}

// Print prints a Record.
func (l Logger) Print(r Record) {
	if l.writer == nil {
		return
	}

	if r.Time.IsZero() {
		r.Time = time.Now()
	}
	if r.Scope == "" {
		r.Scope = l.scope
	}

	l.lock.Lock()
	defer l.lock.Unlock()

	l.writer.Write([]byte(r.String() + "\n"))
}

// Info prints an INFO record.
func (l Logger) Info(message string, extra map[string]interface{}) {
	l.Print(Record{Level: LevelInfo, Message: message, Extra: extra})
}

// Warn prints a WARN record.
func (l Logger) Warn(message string, extra map[string]interface{}) {
	l.Print(Record{Level: LevelWarn, Message: message, Extra: extra})
}

// Error prints an ERROR record.
func (l Logger) Error(message string, extra map[string]interface{}) {
	l.Print(Record{Level: LevelError, Message: message, Extra: extra})
}
