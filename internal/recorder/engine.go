// Package recorder persists selection events off the UI goroutine.
package recorder

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sandeepkv93/daygrid/internal/storage"
)

var (
	ErrEngineStopped = errors.New("recorder: engine stopped")
	ErrQueueFull     = errors.New("recorder: queue full")
	ErrInvalidDay    = errors.New("recorder: invalid day")
)

const DefaultWriteTimeout = 2 * time.Second

// Sink is the storage side of the engine. *storage.SQLiteRepository
// satisfies it.
type Sink interface {
	RecordSelection(ctx context.Context, in storage.Selection) (int64, error)
}

type Event struct {
	Day    int
	Source string
	At     time.Time
}

// Result reports the outcome of one recorded event. ID is zero when Err is
// set.
type Result struct {
	Event Event
	ID    int64
	Err   error
}

type Engine struct {
	mu      sync.Mutex
	sink    Sink
	logger  *slog.Logger
	timeout time.Duration
	in      chan Event
	out     chan Result
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped uint64
}

func NewEngine(bufferSize int, sink Sink, logger *slog.Logger) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{
		sink:    sink,
		logger:  logger,
		timeout: DefaultWriteTimeout,
		in:      make(chan Event, bufferSize),
		out:     make(chan Result, bufferSize),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

// C delivers one Result per recorded event. It is closed after Stop.
func (e *Engine) C() <-chan Result {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started || e.stopped {
		return
	}
	e.started = true
	go e.loop()
}

// Stop records any queued events, then closes C and returns.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.stopped = true
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

// Submit queues ev without blocking the caller.
func (e *Engine) Submit(ev Event) error {
	if ev.Day < 1 {
		return ErrInvalidDay
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrEngineStopped
	}
	select {
	case e.in <- ev:
		return nil
	default:
		atomic.AddUint64(&e.dropped, 1)
		e.logger.Warn("recorder queue full", "day", ev.Day, "source", ev.Source)
		return ErrQueueFull
	}
}

// Dropped counts events lost to a full queue or an unread result channel.
func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	for {
		select {
		case ev := <-e.in:
			e.record(ev)
		case <-e.stopCh:
			for {
				select {
				case ev := <-e.in:
					e.record(ev)
				default:
					return
				}
			}
		}
	}
}

func (e *Engine) record(ev Event) {
	res := Result{Event: ev}
	if e.sink != nil {
		ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
		res.ID, res.Err = e.sink.RecordSelection(ctx, storage.Selection{
			Day:        ev.Day,
			Source:     ev.Source,
			SelectedAt: ev.At,
		})
		cancel()
	}
	if res.Err != nil {
		res.ID = 0
		e.logger.Error("record selection", "day", ev.Day, "err", res.Err)
	} else {
		e.logger.Debug("recorded selection", "day", ev.Day, "id", res.ID)
	}

	select {
	case e.out <- res:
	default:
		atomic.AddUint64(&e.dropped, 1)
	}
}
