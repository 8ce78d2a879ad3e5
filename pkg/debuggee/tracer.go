package debuggee

import (
	"runtime"
)

// tracer owns the one OS thread all ptrace work for a debuggee happens on.
// The kernel ties a tracee to the thread that launched or attached it, and
// goroutines migrate between threads, so every request runs as a closure on
// the tracer's locked goroutine instead.
type tracer struct {
	ops  chan func()
	done chan struct{}
}

func newTracer() *tracer {
	t := &tracer{
		ops:  make(chan func()),
		done: make(chan struct{}),
	}
	go t.loop()
	return t
}

func (t *tracer) loop() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	for op := range t.ops {
		op()
	}
	close(t.done)
}

// do runs op on the tracer thread and waits for its result.
func (t *tracer) do(op func() error) error {
	errc := make(chan error, 1)
	t.ops <- func() { errc <- op() }
	return <-errc
}

// close stops the loop after all submitted operations have run.
func (t *tracer) close() {
	close(t.ops)
	<-t.done
}
