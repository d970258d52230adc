package watcher

import (
	"context"
	"time"

	"github.com/ritzau/graphrank/pkg/logging"
)

// Debouncer batches rapid change events so a burst of writes triggers
// a single re-analysis. It emits after quietPeriod with no new events,
// or after maxWait from the first pending event, whichever comes first.
type Debouncer struct {
	input       <-chan ChangeEvent
	output      chan ChangeEvent
	quietPeriod time.Duration
	maxWait     time.Duration
}

// NewDebouncer creates a debouncer over the given input channel.
func NewDebouncer(input <-chan ChangeEvent, quietPeriod, maxWait time.Duration) *Debouncer {
	return &Debouncer{
		input:       input,
		output:      make(chan ChangeEvent, 10),
		quietPeriod: quietPeriod,
		maxWait:     maxWait,
	}
}

// Events returns the debounced output channel.
func (d *Debouncer) Events() <-chan ChangeEvent {
	return d.output
}

// Start begins processing in a background goroutine. The output channel
// closes when ctx is cancelled or the input channel closes.
func (d *Debouncer) Start(ctx context.Context) {
	go d.run(ctx)
}

func (d *Debouncer) run(ctx context.Context) {
	defer close(d.output)

	var (
		pending  []string
		quiet    <-chan time.Time
		deadline <-chan time.Time
	)

	flush := func() {
		if len(pending) == 0 {
			return
		}
		logging.Debug("flushing accumulated change events", "count", len(pending))
		d.output <- ChangeEvent{Paths: pending, Timestamp: time.Now()}
		pending = nil
		quiet = nil
		deadline = nil
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-d.input:
			if !ok {
				flush()
				return
			}
			pending = append(pending, event.Paths...)
			quiet = time.After(d.quietPeriod)
			if deadline == nil {
				deadline = time.After(d.maxWait)
			}

		case <-quiet:
			flush()

		case <-deadline:
			flush()
		}
	}
}
