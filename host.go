package gui

import (
	"errors"
	"time"
)

// Host is the capability an embedding application supplies for running
// work on its main thread. The independent-context design in this
// package never requires it: each window owns its own native window
// and GPU context. It exists for hosts whose native layer funnels
// certain calls through a main-thread execution queue.
type Host interface {
	// Execute schedules task on the host's main thread. It must not
	// block waiting for the task to run.
	Execute(task func())
}

// hostCallTimeout bounds RunOnHost so a stalled host queue cannot park
// a render thread forever.
const hostCallTimeout = 5 * time.Second

var (
	// ErrNoHost is returned by RunOnHost when the window was created
	// without a Host.
	ErrNoHost = errors.New("gui: no host configured")

	// ErrHostTimeout is returned when the host did not run the task
	// within the bounded wait.
	ErrHostTimeout = errors.New("gui: host did not execute task in time")
)

// RunOnHost runs task on the host's main thread and waits for it to
// complete, up to a bounded timeout. On timeout the task may still run
// later; the caller only loses the synchronization, not the execution.
func (w *Window) RunOnHost(task func()) error {
	w.mu.Lock()
	host := w.host
	w.mu.Unlock()
	if host == nil {
		return ErrNoHost
	}

	ran := make(chan struct{})
	host.Execute(func() {
		task()
		close(ran)
	})

	select {
	case <-ran:
		return nil
	case <-time.After(hostCallTimeout):
		return ErrHostTimeout
	}
}
