package testutil

import "sync"

// Record is one captured log call.
type Record struct {
	Message string
	Fields  map[string]interface{}
}

// Sink captures Info records in memory. It satisfies routes.Sink.
type Sink struct {
	mu      sync.Mutex
	records []Record
}

// Info records msg and the merged fields.
func (s *Sink) Info(msg string, fields ...map[string]interface{}) {
	merged := make(map[string]interface{})
	for _, f := range fields {
		for k, v := range f {
			merged[k] = v
		}
	}
	s.mu.Lock()
	s.records = append(s.records, Record{Message: msg, Fields: merged})
	s.mu.Unlock()
}

// Records returns every captured record.
func (s *Sink) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Messages returns the captured messages.
func (s *Sink) Messages() []string {
	records := s.Records()
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Message
	}
	return out
}
