package metrics

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// BackgroundPublisher pushes the health payload to a Publisher on a
// fixed interval. It owns one goroutine between Start and Stop; Stop
// flushes one final payload before returning.
type BackgroundPublisher struct {
	publisher Publisher
	interval  time.Duration
	healthFn  func() *HealthMetrics
	logger    *slog.Logger

	stopCh  chan struct{}
	wg      sync.WaitGroup
	started atomic.Bool
	stopped atomic.Bool
}

// NewBackgroundPublisher creates a publishing loop that reports the
// payload healthFn builds every interval. A nil logger defaults to
// slog.Default().
func NewBackgroundPublisher(
	publisher Publisher,
	interval time.Duration,
	healthFn func() *HealthMetrics,
	logger *slog.Logger,
) *BackgroundPublisher {
	if logger == nil {
		logger = slog.Default()
	}

	return &BackgroundPublisher{
		publisher: publisher,
		interval:  interval,
		healthFn:  healthFn,
		logger:    logger.With("component", "metrics-background"),
		stopCh:    make(chan struct{}),
	}
}

// Start launches the publishing loop. The loop ends when ctx is
// canceled or Stop is called. Calling Start again does nothing.
func (b *BackgroundPublisher) Start(ctx context.Context) {
	if b.started.Swap(true) {
		return
	}

	b.wg.Add(1)
	go b.run(ctx)
	b.logger.Info("Background metrics publisher started", "interval", b.interval)
}

// Stop ends the loop after a final publish and waits for the goroutine
// to exit. Safe to call more than once.
func (b *BackgroundPublisher) Stop() {
	if b.stopped.Swap(true) {
		return
	}

	close(b.stopCh)
	b.wg.Wait()
	b.logger.Info("Background metrics publisher stopped")
}

// PublishNow pushes one payload outside the schedule.
func (b *BackgroundPublisher) PublishNow() {
	b.publish()
}

func (b *BackgroundPublisher) run(ctx context.Context) {
	defer b.wg.Done()

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-b.stopCh:
			b.publish()
			return
		case <-ticker.C:
			b.publish()
		}
	}
}

// publish builds and sends one payload. The health callback reaches
// into caller code, so a panic there is contained here.
func (b *BackgroundPublisher) publish() {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Health metrics publish panicked", "panic", r)
		}
	}()

	if b.healthFn == nil {
		return
	}
	if health := b.healthFn(); health != nil {
		b.publisher.PublishHealthMetrics(health)
	}
}
