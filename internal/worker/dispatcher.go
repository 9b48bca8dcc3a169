package worker

import (
	"sync"

	"github.com/sirupsen/logrus"
)

const queueSize = 1000

// Task is one background write. Done is optional; when set, the task's
// error is delivered there after it runs. The REST layer never waits on
// Done, the test harness does.
type Task struct {
	Name string
	Run  func() error
	Done chan error
}

// Dispatcher drains a buffered queue with a fixed pool of workers.
// Writes are fire-and-forget from the caller's perspective.
type Dispatcher struct {
	queue      chan Task
	numWorkers int
	wg         sync.WaitGroup
	stopOnce   sync.Once
}

func NewDispatcher(numWorkers int) *Dispatcher {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &Dispatcher{
		queue:      make(chan Task, queueSize),
		numWorkers: numWorkers,
	}
}

func (d *Dispatcher) Start() {
	for i := 0; i < d.numWorkers; i++ {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			for task := range d.queue {
				d.process(task)
			}
		}()
	}
}

// Stop closes the queue and waits for in-flight tasks to finish.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		close(d.queue)
		d.wg.Wait()
	})
}

// Submit enqueues a task without waiting for its result.
func (d *Dispatcher) Submit(task Task) {
	d.queue <- task
}

func (d *Dispatcher) process(task Task) {
	err := task.Run()
	if err != nil {
		logrus.WithError(err).WithField("task", task.Name).Error("background write failed")
	}
	if task.Done != nil {
		select {
		case task.Done <- err:
		default:
		}
	}
}
