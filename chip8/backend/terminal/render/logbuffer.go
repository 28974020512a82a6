package render

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// LogEntry is one flattened log record shown in the log panel.
type LogEntry struct {
	Time    time.Time
	Level   slog.Level
	Message string
}

// String renders the entry as a single panel line.
func (e LogEntry) String() string {
	return fmt.Sprintf("%s [%s] %s", e.Time.Format("15:04:05"), LevelTag(e.Level), e.Message)
}

// LogBuffer keeps the last N log entries. It is safe for concurrent use,
// slog may be called from backend goroutines.
type LogBuffer struct {
	mu   sync.Mutex
	ring []LogEntry
	next int
	full bool
}

func NewLogBuffer(capacity int) *LogBuffer {
	return &LogBuffer{ring: make([]LogEntry, capacity)}
}

// Add stores an entry, dropping the oldest one when the buffer is full.
func (lb *LogBuffer) Add(entry LogEntry) {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	lb.ring[lb.next] = entry
	lb.next++
	if lb.next == len(lb.ring) {
		lb.next = 0
		lb.full = true
	}
}

// Recent returns up to limit entries at or above minLevel, newest first.
// A limit of 0 or less returns every matching entry.
func (lb *LogBuffer) Recent(minLevel slog.Level, limit int) []LogEntry {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	var out []LogEntry
	for i := range lb.len() {
		entry := lb.ring[(lb.next-1-i+len(lb.ring))%len(lb.ring)]
		if entry.Level < minLevel {
			continue
		}
		out = append(out, entry)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func (lb *LogBuffer) Len() int {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return lb.len()
}

func (lb *LogBuffer) len() int {
	if lb.full {
		return len(lb.ring)
	}
	return lb.next
}

func (lb *LogBuffer) Clear() {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	lb.next, lb.full = 0, false
}

// LogBufferHandler is a slog.Handler that flattens records into a LogBuffer.
// Attributes are rendered as key=value after the message, keys qualified
// by any open groups.
type LogBufferHandler struct {
	buffer *LogBuffer
	level  slog.Leveler
	prefix string // open groups, dot terminated
	bound  string // attrs from WithAttrs, already rendered
}

func NewLogBufferHandler(buffer *LogBuffer, level slog.Leveler) *LogBufferHandler {
	return &LogBufferHandler{buffer: buffer, level: level}
}

func (h *LogBufferHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *LogBufferHandler) Handle(_ context.Context, record slog.Record) error {
	var sb strings.Builder
	sb.WriteString(record.Message)
	sb.WriteString(h.bound)
	record.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&sb, a)
		return true
	})

	h.buffer.Add(LogEntry{Time: record.Time, Level: record.Level, Message: sb.String()})
	return nil
}

func (h *LogBufferHandler) writeAttr(sb *strings.Builder, a slog.Attr) {
	fmt.Fprintf(sb, " %s%s=%v", h.prefix, a.Key, a.Value)
}

func (h *LogBufferHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var sb strings.Builder
	sb.WriteString(h.bound)
	for _, a := range attrs {
		h.writeAttr(&sb, a)
	}
	clone := *h
	clone.bound = sb.String()
	return &clone
}

func (h *LogBufferHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.prefix += name + "."
	return &clone
}

// LevelTag returns a three letter tag for a level.
func LevelTag(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DBG"
	case slog.LevelInfo:
		return "INF"
	case slog.LevelWarn:
		return "WRN"
	case slog.LevelError:
		return "ERR"
	default:
		return "???"
	}
}
