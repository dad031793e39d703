package router

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/bowerhall/courier/internal/archive"
	"github.com/bowerhall/courier/internal/backend"
	"github.com/bowerhall/courier/internal/history"
	"github.com/bowerhall/courier/internal/logger"
	"github.com/bowerhall/courier/internal/queue"
	"github.com/bowerhall/courier/internal/trigger"
)

const defaultBackendTimeout = 30 * time.Second

const waitNotice = "Hold on, I'm still working on your previous message."
const apology = "Sorry, something went wrong on my end. Please try again in a bit."

// Deliverer sends a reply back to a conversation. Implemented by the
// transport adapters.
type Deliverer interface {
	Deliver(conversationID, text string) error
}

// Media is an attachment that came with an inbound message.
type Media struct {
	Data        []byte
	ContentType string
}

// Inbound is one message handed over by a transport adapter. Text is the
// first non-empty of the transport's body fields (plain body, quoted body,
// image caption, video caption); the adapter picks it.
type Inbound struct {
	ConversationID string
	Sender         string
	Text           string
	Group          bool
	Media          []Media
}

// Stats are running totals for the operator report.
type Stats struct {
	Admitted uint64
	Rejected uint64
	Answered uint64
	Failed   uint64
}

// Router classifies inbound messages and pushes admitted ones through the
// per-conversation queue: backend call, then reply delivery.
type Router struct {
	classifier *trigger.Classifier
	queue      *queue.ConversationQueue
	backend    backend.Backend
	deliver    Deliverer
	history    *history.Store
	archive    *archive.Client
	timeout    time.Duration

	admitted atomic.Uint64
	rejected atomic.Uint64
	answered atomic.Uint64
	failed   atomic.Uint64
}

func New(classifier *trigger.Classifier, q *queue.ConversationQueue, b backend.Backend, d Deliverer) *Router {
	return &Router{
		classifier: classifier,
		queue:      q,
		backend:    b,
		deliver:    d,
		timeout:    defaultBackendTimeout,
	}
}

// SetHistory enables the exchange log.
func (r *Router) SetHistory(h *history.Store) {
	r.history = h
}

// SetArchive enables media archiving for admitted messages.
func (r *Router) SetArchive(a *archive.Client) {
	r.archive = a
}

// SetTimeout overrides the per-call backend timeout.
func (r *Router) SetTimeout(d time.Duration) {
	if d > 0 {
		r.timeout = d
	}
}

// Queue exposes the underlying queue for busy checks.
func (r *Router) Queue() *queue.ConversationQueue {
	return r.queue
}

// Stats returns the running totals.
func (r *Router) Stats() Stats {
	return Stats{
		Admitted: r.admitted.Load(),
		Rejected: r.rejected.Load(),
		Answered: r.answered.Load(),
		Failed:   r.failed.Load(),
	}
}

// HandleInbound classifies the message and, if admitted, enqueues the
// backend call. Rejected messages produce no reply of any kind. Returns
// once the work is queued; it never waits for the backend.
func (r *Router) HandleInbound(ctx context.Context, msg Inbound) {
	res := r.classifier.Classify(msg.Text, msg.Group)
	if !res.Admitted {
		r.rejected.Add(1)
		logger.Debug("message not admitted", "conversation", msg.ConversationID)
		return
	}

	r.admitted.Add(1)
	trace := uuid.NewString()
	logger.Info("message admitted", "conversation", msg.ConversationID, "trace", trace, "group", msg.Group)

	if r.queue.IsBusy(msg.ConversationID) {
		if err := r.deliver.Deliver(msg.ConversationID, waitNotice); err != nil {
			logger.Error("wait notice failed", "conversation", msg.ConversationID, "trace", trace, "error", err)
		}
	}

	r.queue.Enqueue(msg.ConversationID, func() {
		r.process(ctx, trace, msg, res.Text)
	})
}

// process runs inside the conversation's chain. Every failure is handled
// here; nothing propagates back into the queue.
func (r *Router) process(ctx context.Context, trace string, msg Inbound, query string) {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	reply, err := r.backend.Ask(callCtx, query, msg.Group)
	if err != nil {
		r.failed.Add(1)
		logger.Error("backend call failed", "conversation", msg.ConversationID, "trace", trace, "error", err)

		if derr := r.deliver.Deliver(msg.ConversationID, apology); derr != nil {
			logger.Error("apology delivery failed", "conversation", msg.ConversationID, "trace", trace, "error", derr)
		}
		return
	}

	if err := r.deliver.Deliver(msg.ConversationID, reply); err != nil {
		logger.Error("reply delivery failed", "conversation", msg.ConversationID, "trace", trace, "error", err)
	}

	r.answered.Add(1)

	if r.history != nil {
		if err := r.history.Record(msg.ConversationID, query, reply); err != nil {
			logger.Warn("exchange log failed", "conversation", msg.ConversationID, "error", err)
		}
	}

	if r.archive != nil {
		for _, m := range msg.Media {
			if _, err := r.archive.Save(ctx, msg.ConversationID, m.Data, m.ContentType); err != nil {
				logger.Warn("media archive failed", "conversation", msg.ConversationID, "error", err)
			}
		}
	}
}
