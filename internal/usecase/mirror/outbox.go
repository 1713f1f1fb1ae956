package mirror

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/simaogato/poolledger-backend/internal/domain"
)

const applyTimeout = 10 * time.Second

// Outbox propagates committed mutations to the row-oriented mirror store
// in commit order, off the mutation path. Propagation is best-effort: a
// failed or dropped mutation is logged and never rolled back locally, so
// the mirror can lag or diverge from the authoritative in-memory state.
type Outbox struct {
	store  domain.MirrorStore
	logger *zap.Logger

	ch   chan domain.Mutation
	wg   sync.WaitGroup
	once sync.Once
}

// NewOutbox creates an outbox with the given queue capacity
func NewOutbox(store domain.MirrorStore, logger *zap.Logger, buffer int) *Outbox {
	if buffer <= 0 {
		buffer = 256
	}
	return &Outbox{
		store:  store,
		logger: logger,
		ch:     make(chan domain.Mutation, buffer),
	}
}

// Enqueue hands a mutation to the worker. Callers are already serialized
// by the engine mutex, so channel order is commit order. When the queue is
// full the mutation is dropped with a warning instead of blocking the
// ledger operation.
func (o *Outbox) Enqueue(m domain.Mutation) {
	select {
	case o.ch <- m:
	default:
		o.logger.Warn("mirror queue full, dropping mutation",
			zap.String("mutation", string(m.Kind)))
	}
}

// Start launches the worker goroutine. It runs until Close is called or
// ctx is cancelled.
func (o *Outbox) Start(ctx context.Context) {
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		for {
			select {
			case m, ok := <-o.ch:
				if !ok {
					return
				}
				o.apply(m)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Close stops accepting mutations, drains what is queued and waits for
// the worker to finish
func (o *Outbox) Close() {
	o.once.Do(func() { close(o.ch) })
	o.wg.Wait()
}

func (o *Outbox) apply(m domain.Mutation) {
	ctx, cancel := context.WithTimeout(context.Background(), applyTimeout)
	defer cancel()

	if err := o.store.Apply(ctx, m); err != nil {
		o.logger.Warn("mirror apply failed",
			zap.String("mutation", string(m.Kind)),
			zap.Error(err))
	}
}

// Nop is a MutationSink that discards everything, used when the mirror
// backend is disabled
type Nop struct{}

// Enqueue discards the mutation
func (Nop) Enqueue(domain.Mutation) {}
