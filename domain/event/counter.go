package event

import "sync"

// Counter keeps in-process totals per event type
type Counter struct {
	mu     sync.RWMutex
	totals map[Type]uint64
}

func NewCounter() *Counter {
	return &Counter{totals: make(map[Type]uint64)}
}

func (c *Counter) Increment(eventType Type) {
	c.Add(eventType, 1)
}

func (c *Counter) Add(eventType Type, delta uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.totals[eventType] += delta
}

func (c *Counter) Get(eventType Type) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.totals[eventType]
}
