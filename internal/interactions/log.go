package interactions

import (
	"errors"
	"sync"
)

// ErrNotFound is returned when a record ID is not in the log.
var ErrNotFound = errors.New("interaction not found")

// Log is an append-only, ordered sequence of records owned by one session.
// Records are stored by value; callers never see shared pointers.
type Log struct {
	mu      sync.RWMutex
	records []Record
}

// NewLog creates an empty log.
func NewLog() *Log {
	return &Log{}
}

// Append adds a copy of rec to the end of the log.
func (l *Log) Append(rec *Record) {
	if rec == nil {
		return
	}
	l.mu.Lock()
	l.records = append(l.records, *rec)
	l.mu.Unlock()
}

// Len returns the number of records.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// All returns a copy of every record in append order.
func (l *Log) All() []Record {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Summaries returns the listing form of every record in append order.
func (l *Log) Summaries() []Summary {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Summary, 0, len(l.records))
	for i := range l.records {
		out = append(out, l.records[i].Summarize())
	}
	return out
}

// Get returns the record with the given ID.
func (l *Log) Get(id string) (Record, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, r := range l.records {
		if r.ID == id {
			return r, nil
		}
	}
	return Record{}, ErrNotFound
}

// Last returns the most recent record, if any.
func (l *Log) Last() (Record, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.records) == 0 {
		return Record{}, false
	}
	return l.records[len(l.records)-1], true
}
