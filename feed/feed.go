// Package feed provides change feed sinks for store mutations.
package feed

import (
	"log/slog"
	"sync"

	"github.com/jacentio/lattice/store"
)

// Journal retains every event it receives, in delivery order.
// Register it with Store.Watch to assert on mutations in tests.
type Journal struct {
	mu     sync.Mutex
	events []store.Event
}

// NewJournal creates an empty Journal.
func NewJournal() *Journal {
	return &Journal{}
}

// Record appends an event to the journal.
func (j *Journal) Record(ev store.Event) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = append(j.events, ev)
}

// Events returns a copy of the retained events.
func (j *Journal) Events() []store.Event {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]store.Event(nil), j.events...)
}

// Len returns the number of retained events.
func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.events)
}

// Reset discards all retained events.
func (j *Journal) Reset() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = nil
}

// Logger writes one structured log line per store mutation.
type Logger struct {
	logger *slog.Logger
}

// NewLogger creates a logging sink. A nil logger uses slog.Default().
func NewLogger(logger *slog.Logger) *Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Logger{logger: logger}
}

// Record logs a single event.
func (l *Logger) Record(ev store.Event) {
	l.logger.Info("store mutation",
		"op", string(ev.Op),
		"kind", ev.Kind,
		"ref", ev.Ref,
		"at", ev.At,
	)
}
