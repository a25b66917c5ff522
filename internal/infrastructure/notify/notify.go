// Package notify delivers transient notifications and navigation requests to
// whichever surface is driving the client: a terminal or the console server.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/localtalent/console/internal/core/domain"
	"github.com/localtalent/console/internal/core/ports"
	"github.com/localtalent/console/internal/infrastructure/metrics"
)

// Printer writes notifications to a terminal stream.
type Printer struct {
	mu  sync.Mutex
	out io.Writer
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func (p *Printer) Notify(n domain.Notification) {
	metrics.NotificationsTotal.WithLabelValues(string(n.Variant)).Inc()

	p.mu.Lock()
	defer p.mu.Unlock()
	marker := "✓"
	if n.Variant == domain.VariantDestructive {
		marker = "✗"
	}
	fmt.Fprintf(p.out, "%s %s: %s\n", marker, n.Title, n.Description)
}

// Recorder keeps the most recent notifications for later retrieval.
type Recorder struct {
	mu    sync.Mutex
	limit int
	items []domain.Notification
}

// NewRecorder keeps up to limit notifications; limit <= 0 means 50.
func NewRecorder(limit int) *Recorder {
	if limit <= 0 {
		limit = 50
	}
	return &Recorder{limit: limit}
}

func (r *Recorder) Notify(n domain.Notification) {
	metrics.NotificationsTotal.WithLabelValues(string(n.Variant)).Inc()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
	if len(r.items) > r.limit {
		r.items = r.items[len(r.items)-r.limit:]
	}
}

// Drain returns the recorded notifications, oldest first, and forgets them.
func (r *Recorder) Drain() []domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.items
	r.items = nil
	return out
}

// Logger writes notifications as structured log entries.
type Logger struct {
	log zerolog.Logger
}

func NewLogger(log zerolog.Logger) *Logger {
	return &Logger{log: log}
}

func (l *Logger) Notify(n domain.Notification) {
	ev := l.log.Info()
	if n.Variant == domain.VariantDestructive {
		ev = l.log.Warn()
	}
	ev.Str("title", n.Title).Str("variant", string(n.Variant)).Msg(n.Description)
}

// Multi fans a notification out to several notifiers.
type Multi []ports.Notifier

func (m Multi) Notify(n domain.Notification) {
	for _, target := range m {
		target.Notify(n)
	}
}
