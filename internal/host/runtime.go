// Package host models the runtime surrounding the contract core: messages
// are queued and executed strictly one at a time, each fully processed
// (reads, authorization checks, writes) before the next begins. Outbound
// receiver-hook messages are delivered only after the originating message
// has committed, so a hook that calls back into the ledger observes fully
// committed state rather than a partial write.
package host

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"nft-ledger/internal/contract"
	"nft-ledger/internal/domain"
	"nft-ledger/internal/observability"
	"nft-ledger/internal/storage"
)

// OutboundSink receives receiver-hook messages after the message that
// produced them commits. Delivery is one-way: the runtime never waits for
// a result.
type OutboundSink func(ctx context.Context, msg domain.SubMsg)

type result struct {
	resp *domain.Response
	err  error
}

type pending struct {
	info domain.MessageInfo
	msg  domain.ExecuteMsg
	done chan result
}

// Runtime drains a message queue through the contract handler on a single
// goroutine. It archives events for successful messages and forwards
// outbound hooks to the configured sink.
type Runtime struct {
	handler *contract.Handler
	tokens  storage.TokenStore
	events  storage.EventStore
	metrics *observability.Metrics
	logger  *log.Logger
	sink    OutboundSink
	queue   chan *pending
	now     func() time.Time
}

// Options configures optional Runtime collaborators.
type Options struct {
	// Events archives executed messages; nil disables archiving.
	Events storage.EventStore
	// Metrics records execution counters; nil disables them.
	Metrics *observability.Metrics
	// Sink receives outbound hooks; nil drops them with a log line.
	Sink OutboundSink
	// QueueSize bounds pending submissions; 0 means 256.
	QueueSize int
}

// NewRuntime creates a runtime over the handler and token store.
func NewRuntime(handler *contract.Handler, tokens storage.TokenStore, logger *log.Logger, opts Options) *Runtime {
	if logger == nil {
		logger = log.Default()
	}
	size := opts.QueueSize
	if size <= 0 {
		size = 256
	}
	return &Runtime{
		handler: handler,
		tokens:  tokens,
		events:  opts.Events,
		metrics: opts.Metrics,
		logger:  logger,
		sink:    opts.Sink,
		queue:   make(chan *pending, size),
		now:     time.Now,
	}
}

// Submit enqueues one message and blocks until it has been executed or ctx
// is cancelled. The error is exactly what the submitter of the message
// should see; failed messages leave no state behind.
func (r *Runtime) Submit(ctx context.Context, info domain.MessageInfo, msg domain.ExecuteMsg) (*domain.Response, error) {
	p := &pending{info: info, msg: msg, done: make(chan result, 1)}

	select {
	case r.queue <- p:
	case <-ctx.Done():
		return nil, fmt.Errorf("submit %s: %w", msg.Kind(), ctx.Err())
	}

	select {
	case res := <-p.done:
		return res.resp, res.err
	case <-ctx.Done():
		return nil, fmt.Errorf("await %s: %w", msg.Kind(), ctx.Err())
	}
}

// Run processes the queue until ctx is cancelled. It must be called from
// exactly one goroutine; the sequential execution guarantee lives here.
func (r *Runtime) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case p := <-r.queue:
			resp, err := r.execute(ctx, p.info, p.msg)
			p.done <- result{resp: resp, err: err}
		}
	}
}

func (r *Runtime) execute(ctx context.Context, info domain.MessageInfo, msg domain.ExecuteMsg) (*domain.Response, error) {
	start := r.now()
	resp, err := r.handler.Execute(ctx, info, msg)

	if r.metrics != nil {
		r.metrics.ExecuteLatency.Observe(r.now().Sub(start).Seconds())
	}

	if err != nil {
		if r.metrics != nil {
			r.metrics.MessagesFailed.WithLabelValues(msg.Kind(), errorClass(err)).Inc()
		}
		r.logger.Printf("execute %s from %s failed: %v", msg.Kind(), info.Sender, err)
		return nil, err
	}

	if r.metrics != nil {
		r.metrics.MessagesExecuted.WithLabelValues(msg.Kind()).Inc()
		if count, countErr := r.tokens.Count(ctx); countErr == nil {
			r.metrics.TokenSupply.Set(float64(count))
		}
	}

	r.archive(ctx, info, msg, resp)

	// Hooks go out only after the message has committed.
	for _, sub := range resp.Messages {
		if r.metrics != nil {
			r.metrics.HooksEmitted.Inc()
		}
		if r.sink != nil {
			r.sink(ctx, sub)
		} else {
			r.logger.Printf("dropping receive hook for %s: no outbound sink", sub.Contract)
		}
	}

	return resp, nil
}

// archive records the executed message in the event store. Archive failures
// are logged, not surfaced: the state change has already committed and the
// archive is a projection, not part of the transaction.
func (r *Runtime) archive(ctx context.Context, info domain.MessageInfo, msg domain.ExecuteMsg, resp *domain.Response) {
	if r.events == nil {
		return
	}

	attrs, err := json.Marshal(resp.Attributes)
	if err != nil {
		r.logger.Printf("encode attributes for %s: %v", msg.Kind(), err)
		return
	}

	event := &domain.LedgerEvent{
		Kind:        msg.Kind(),
		TokenID:     tokenIDOf(msg),
		Sender:      info.Sender,
		Recipient:   recipientOf(resp),
		Attributes:  string(attrs),
		TimestampMs: r.now().UnixMilli(),
	}
	if err := r.events.Insert(ctx, event); err != nil {
		if r.metrics != nil {
			r.metrics.ArchiveErrors.Inc()
		}
		r.logger.Printf("archive %s event: %v", msg.Kind(), err)
		return
	}
	if r.metrics != nil {
		r.metrics.EventsArchived.Inc()
	}
}

func tokenIDOf(msg domain.ExecuteMsg) string {
	switch m := msg.(type) {
	case *domain.MintMsg:
		return m.TokenID
	case *domain.TransferNftMsg:
		return m.TokenID
	case *domain.SendNftMsg:
		return m.TokenID
	case *domain.ApproveMsg:
		return m.TokenID
	case *domain.RevokeMsg:
		return m.TokenID
	case *domain.BurnMsg:
		return m.TokenID
	default:
		// approve_all / revoke_all are not token-scoped
		return ""
	}
}

func recipientOf(resp *domain.Response) domain.Address {
	for _, key := range []string{"recipient", "owner", "spender", "operator"} {
		if v := resp.Attribute(key); v != "" {
			return domain.Address(v)
		}
	}
	return ""
}

func errorClass(err error) string {
	switch {
	case errors.Is(err, contract.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, storage.ErrNotFound):
		return "not_found"
	case errors.Is(err, storage.ErrAlreadyMinted):
		return "already_minted"
	case errors.Is(err, storage.ErrInvalidInput):
		return "invalid_input"
	default:
		return "internal"
	}
}
