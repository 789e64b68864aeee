package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlowStoreDefaultsToNone(t *testing.T) {
	fs := NewFlowStore()

	assert.Equal(t, FlowNone, fs.Get("573001112233"))
	assert.Equal(t, 0, fs.ActiveCount())
}

func TestFlowStoreSetGetClear(t *testing.T) {
	fs := NewFlowStore()

	fs.Set("573001112233", FlowAwaitingCustomerDetails)
	assert.Equal(t, FlowAwaitingCustomerDetails, fs.Get("573001112233"))
	assert.Equal(t, 1, fs.ActiveCount())

	fs.Clear("573001112233")
	assert.Equal(t, FlowNone, fs.Get("573001112233"))
	assert.Equal(t, 0, fs.ActiveCount())
}

func TestFlowStoreSetNoneRemovesEntry(t *testing.T) {
	fs := NewFlowStore()

	fs.Set("573001112233", FlowAwaitingCustomerDetails)
	fs.Set("573001112233", FlowNone)

	assert.Equal(t, 0, fs.ActiveCount())
}

func TestFlowStoreTakeIfActive(t *testing.T) {
	fs := NewFlowStore()
	fs.Set("573001112233", FlowAwaitingCustomerDetails)

	assert.True(t, fs.TakeIfActive("573001112233", FlowAwaitingCustomerDetails))
	// Already taken: the flow is gone
	assert.False(t, fs.TakeIfActive("573001112233", FlowAwaitingCustomerDetails))
	assert.Equal(t, FlowNone, fs.Get("573001112233"))
}

func TestFlowStoreTakeIfActiveWrongFlow(t *testing.T) {
	fs := NewFlowStore()

	assert.False(t, fs.TakeIfActive("573001112233", FlowAwaitingCustomerDetails))
}

func TestFlowStoreTakeIfActiveIsExclusive(t *testing.T) {
	fs := NewFlowStore()
	fs.Set("573001112233", FlowAwaitingCustomerDetails)

	const workers = 50
	var wg sync.WaitGroup
	results := make(chan bool, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- fs.TakeIfActive("573001112233", FlowAwaitingCustomerDetails)
		}()
	}
	wg.Wait()
	close(results)

	taken := 0
	for won := range results {
		if won {
			taken++
		}
	}
	assert.Equal(t, 1, taken, "exactly one concurrent caller should take the flow")
}
