package passy

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"sync/atomic"
	"time"
)

const (
	auditEventPasswordGenerated = "password_generated"
	auditEventStrengthEstimated = "strength_estimated"
	auditEventPolicyPreviewed   = "policy_previewed"
	auditEventStrengthAdvised   = "strength_advised"
)

// AuditEvent describes one engine operation. Events never carry password
// text, only shape: length, path, charset size and tier.
type AuditEvent struct {
	Timestamp time.Time         `json:"timestamp"`
	EventType string            `json:"event_type"`
	RequestID string            `json:"request_id,omitempty"`
	ClientID  string            `json:"client_id,omitempty"`
	Success   bool              `json:"success"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// AuditSink receives events from the engine's dispatcher goroutine.
type AuditSink interface {
	Emit(ctx context.Context, event AuditEvent)
}

type NoOpSink struct{}

func (NoOpSink) Emit(context.Context, AuditEvent) {}

// ChannelSink forwards events to a buffered channel for the caller to drain.
// Emit never blocks: when the buffer is full the event is dropped and
// counted, so an abandoned channel cannot stall Engine.Close.
type ChannelSink struct {
	events  chan AuditEvent
	dropped atomic.Uint64
}

func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelSink{
		events: make(chan AuditEvent, buffer),
	}
}

func (s *ChannelSink) Emit(_ context.Context, event AuditEvent) {
	select {
	case s.events <- event:
	default:
		s.dropped.Add(1)
	}
}

// Dropped returns the number of events discarded because the channel was
// full.
func (s *ChannelSink) Dropped() uint64 {
	return s.dropped.Load()
}

func (s *ChannelSink) Events() <-chan AuditEvent {
	return s.events
}

// JSONWriterSink writes one JSON object per line.
type JSONWriterSink struct {
	writer io.Writer
	mu     sync.Mutex
}

func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return &JSONWriterSink{
		writer: w,
	}
}

func (s *JSONWriterSink) Emit(_ context.Context, event AuditEvent) {
	if s == nil || s.writer == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = s.writer.Write(data)
}
