package sink

import (
	"strings"
	"sync"
	"time"
)

// Record is one Emit call captured by a Recorder.
type Record struct {
	Level   Level
	Message string
	Context map[string]any
	Time    time.Time
}

// Recorder keeps every record in memory. It accepts all records and is safe
// for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	records []Record
}

func (r *Recorder) Emit(level Level, msg string, ctx map[string]any) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, Record{Level: level, Message: msg, Context: ctx, Time: time.Now()})
	return true
}

// Records returns a copy of the captured records in emit order.
func (r *Recorder) Records() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Record(nil), r.records...)
}

func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// Contains reports whether a record at level has a message containing substr.
func (r *Recorder) Contains(level Level, substr string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.Level == level && strings.Contains(rec.Message, substr) {
			return true
		}
	}
	return false
}

// Reset drops all captured records.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.records = nil
	r.mu.Unlock()
}
