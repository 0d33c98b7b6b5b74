package unpack

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounterConcurrent(t *testing.T) {
	var c Counter

	// One observer reading while writers add: the counter must only
	// ever increase.
	observerDone := make(chan struct{})
	monotonic := true
	go func() {
		defer close(observerDone)
		var last int64
		for range 10000 {
			v := c.Bytes()
			if v < last {
				monotonic = false
				return
			}
			last = v
		}
	}()

	const writers, perWriter = 4, 1000
	var wg sync.WaitGroup
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWriter {
				c.Add(3)
			}
		}()
	}
	wg.Wait()
	<-observerDone

	assert.True(t, monotonic)
	assert.Equal(t, int64(writers*perWriter*3), c.Bytes())
}

func TestCounterZero(t *testing.T) {
	var c Counter
	assert.Zero(t, c.Bytes())
	c.Add(42)
	assert.Equal(t, int64(42), c.Bytes())
}
