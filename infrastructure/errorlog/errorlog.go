package errorlog

import (
	"sync"
	"time"

	"leadbridge/domain/model"
	"leadbridge/infrastructure/utils"
)

// Log is an append-only list of errors shown to operators. It lives as long as the
// process; nothing is persisted.
type Log struct {
	mu      sync.RWMutex
	now     func() time.Time
	entries []model.ErrorLogEntry
}

func New() *Log {
	return &Log{now: utils.GetCurrentTime}
}

func (l *Log) Append(section, message string) model.ErrorLogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := model.ErrorLogEntry{Timestamp: l.now(), Section: section, Error: message}
	l.entries = append(l.entries, entry)
	return entry
}

// Entries returns a copy in insertion order.
func (l *Log) Entries() []model.ErrorLogEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]model.ErrorLogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
