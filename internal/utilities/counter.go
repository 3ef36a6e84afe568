package utilities

import (
	"sync"

	"github.com/antonio-alexander/go-employee-seeder/internal/data"
)

type counter struct {
	success int
	failure int
}

type phaseCounter struct {
	sync.RWMutex
	counters map[string]*counter
}

type Counter interface {
	Read(key string) (successCount, failureCount int)
	ReadAll() *data.Counters
	IncrementSuccess(key string) (successCount int)
	IncrementFailure(key string) (failureCount int)
	Reset()
}

func NewCounter() Counter {
	return &phaseCounter{
		counters: make(map[string]*counter),
	}
}

func (c *phaseCounter) get(key string) *counter {
	cntr, found := c.counters[key]
	if !found {
		cntr = &counter{}
		c.counters[key] = cntr
	}
	return cntr
}

// Read returns zero counts for a key that has never been incremented.
func (c *phaseCounter) Read(key string) (int, int) {
	c.RLock()
	defer c.RUnlock()

	if counter, found := c.counters[key]; found {
		return counter.success, counter.failure
	}
	return 0, 0
}

func (c *phaseCounter) ReadAll() *data.Counters {
	c.RLock()
	defer c.RUnlock()

	successes := make(map[string]int)
	failures := make(map[string]int)
	for key, value := range c.counters {
		successes[key] = value.success
		failures[key] = value.failure
	}
	return &data.Counters{
		Successes: successes,
		Failures:  failures,
	}
}

func (c *phaseCounter) Reset() {
	c.Lock()
	defer c.Unlock()

	c.counters = make(map[string]*counter)
}

func (c *phaseCounter) IncrementSuccess(key string) int {
	c.Lock()
	defer c.Unlock()

	cntr := c.get(key)
	cntr.success++
	return cntr.success
}

func (c *phaseCounter) IncrementFailure(key string) int {
	c.Lock()
	defer c.Unlock()

	cntr := c.get(key)
	cntr.failure++
	return cntr.failure
}
