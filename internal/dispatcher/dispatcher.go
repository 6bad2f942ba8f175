// Package dispatcher serializes event processing per guild. Everything
// that mutates a guild's counters, lockdown state or config cache runs
// on that guild's queue; distinct guilds run fully in parallel.
package dispatcher

import (
	"sync"

	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/logging"
)

// Dispatcher owns one FIFO task queue and worker goroutine per guild,
// created lazily on the first event for that guild.
type Dispatcher struct {
	mu      sync.Mutex
	queues  map[string]chan func()
	wg      sync.WaitGroup
	buffer  int
	stopped bool
}

func New(buffer int) *Dispatcher {
	return &Dispatcher{
		queues: make(map[string]chan func()),
		buffer: buffer,
	}
}

// Submit enqueues task on guildID's queue. Tasks for one guild execute
// in arrival order; a task that suspends on I/O holds up only its own
// guild. When the guild's queue is full the task is dropped and logged —
// backpressure must not stall the gateway reader.
func (d *Dispatcher) Submit(guildID string, task func()) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	queue, ok := d.queues[guildID]
	if !ok {
		queue = make(chan func(), d.buffer)
		d.queues[guildID] = queue
		d.wg.Add(1)
		go d.run(guildID, queue)
	}
	d.mu.Unlock()

	select {
	case queue <- task:
	default:
		logging.Warn("Guild %s queue full, dropping event", guildID)
	}
}

func (d *Dispatcher) run(guildID string, queue chan func()) {
	defer d.wg.Done()
	for task := range queue {
		task()
	}
}

// Stop closes every queue and waits for in-flight tasks to finish.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	for _, queue := range d.queues {
		close(queue)
	}
	d.mu.Unlock()

	d.wg.Wait()
}
