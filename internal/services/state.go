package services

import (
	"sync"
)

// Flow identifies a multi-turn conversation sequence. A sender has at most
// one active flow; new flow kinds only need a new constant here.
type Flow string

const (
	// FlowNone means no active flow (same as no entry in the store)
	FlowNone Flow = ""
	// FlowAwaitingCustomerDetails means we asked for the new customer's
	// data and are waiting for the next message
	FlowAwaitingCustomerDetails Flow = "awaiting_customer_details"
)

// FlowStore tracks the active conversation flow per sender. It lives for
// the process's uptime and is only mutated by the conversation engine.
type FlowStore struct {
	mu    sync.Mutex
	flows map[string]Flow
}

// NewFlowStore creates an empty flow store
func NewFlowStore() *FlowStore {
	return &FlowStore{
		flows: make(map[string]Flow),
	}
}

// Get returns the sender's active flow, or FlowNone
func (fs *FlowStore) Get(sender string) Flow {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	return fs.flows[sender]
}

// Set starts or replaces the sender's active flow
func (fs *FlowStore) Set(sender string, flow Flow) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if flow == FlowNone {
		delete(fs.flows, sender)
		return
	}
	fs.flows[sender] = flow
}

// Clear removes the sender's active flow
func (fs *FlowStore) Clear(sender string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	delete(fs.flows, sender)
}

// TakeIfActive atomically clears the sender's flow if it matches the given
// one and reports whether it did. Two concurrent messages from the same
// sender can never both take the same flow.
func (fs *FlowStore) TakeIfActive(sender string, flow Flow) bool {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.flows[sender] != flow {
		return false
	}
	delete(fs.flows, sender)
	return true
}

// ActiveCount returns how many senders have an active flow (for monitoring)
func (fs *FlowStore) ActiveCount() int {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	return len(fs.flows)
}
