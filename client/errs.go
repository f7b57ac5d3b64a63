package client

import "strings"

// errorSink retains the earliest background failure descriptions, up to
// max entries. Once full, later records are dropped silently so the
// first failures after a drain are the ones preserved.
type errorSink struct {
	max     int
	entries []string
}

func newErrorSink(max int) *errorSink {
	return &errorSink{max: max}
}

func (s *errorSink) record(msg string) {
	if len(s.entries) >= s.max {
		return
	}
	s.entries = append(s.entries, msg)
}

// drainAll returns the stored entries joined oldest-first and clears the
// sink. It returns "" when nothing is stored.
func (s *errorSink) drainAll() string {
	if len(s.entries) == 0 {
		return ""
	}
	text := strings.Join(s.entries, "\n")
	s.entries = s.entries[:0]
	return text
}
