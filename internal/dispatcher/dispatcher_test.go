package dispatcher

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTasksRunFIFOWithinGuild(t *testing.T) {
	d := New(128)

	var mu sync.Mutex
	var order []int
	for i := 0; i < 100; i++ {
		i := i
		d.Submit("g1", func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		})
	}
	d.Stop()

	assert.Len(t, order, 100)
	for i, v := range order {
		assert.Equal(t, i, v)
	}
}

func TestGuildsRunIndependently(t *testing.T) {
	d := New(16)

	block := make(chan struct{})
	done := make(chan struct{})

	d.Submit("slow", func() { <-block })
	d.Submit("fast", func() { close(done) })

	// The fast guild's task completes while the slow guild is suspended.
	<-done
	close(block)
	d.Stop()
}

func TestSubmitAfterStopIsNoop(t *testing.T) {
	d := New(16)
	d.Stop()
	d.Submit("g1", func() { t.Fatal("task ran after stop") })
}
