package queue

import (
	"sync"

	"github.com/bowerhall/courier/internal/logger"
)

// entry is the tail of one conversation's execution chain. Tasks enqueued
// later wait on done before running, so the chain encodes the full pending
// history while the queue itself only holds the current tail.
type entry struct {
	done chan struct{}
}

// ConversationQueue serializes task execution per conversation. Tasks for
// the same conversation run one at a time in enqueue order; tasks for
// different conversations run independently.
type ConversationQueue struct {
	mu    sync.Mutex
	tails map[string]*entry
}

func New() *ConversationQueue {
	return &ConversationQueue{tails: make(map[string]*entry)}
}

// IsBusy reports whether the conversation has work in flight.
func (q *ConversationQueue) IsBusy(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	_, ok := q.tails[id]
	return ok
}

// Active returns the number of conversations with work in flight.
func (q *ConversationQueue) Active() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.tails)
}

// Enqueue appends task to the conversation's chain and returns immediately.
// The task runs exactly once, after every previously enqueued task for the
// same conversation has finished, successfully or not.
func (q *ConversationQueue) Enqueue(id string, task func()) {
	e := &entry{done: make(chan struct{})}

	q.mu.Lock()
	prev := q.tails[id]
	q.tails[id] = e
	q.mu.Unlock()

	go func() {
		if prev != nil {
			<-prev.done
		}

		runTask(id, task)
		close(e.done)

		q.mu.Lock()
		// only the current tail may clean up: a newer enqueue has
		// replaced e if more work arrived while this task ran
		if q.tails[id] == e {
			delete(q.tails, id)
		}
		q.mu.Unlock()
	}()
}

// runTask executes task, containing any panic so the rest of the chain
// still runs.
func runTask(id string, task func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("queued task panicked", "conversation", id, "panic", r)
		}
	}()

	task()
}
