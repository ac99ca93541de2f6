package viewer

import (
	"context"
	"sync"
)

// Completion reports the outcome of a texture load. Loads from ready sources
// return an already resolved completion.
type Completion struct {
	done chan struct{}
	once sync.Once
	err  error
}

func newCompletion() *Completion {
	return &Completion{done: make(chan struct{})}
}

func resolved(err error) *Completion {
	c := newCompletion()
	c.resolve(err)
	return c
}

func (c *Completion) resolve(err error) {
	c.once.Do(func() {
		c.err = err
		close(c.done)
	})
}

// Done is closed when the load finished.
func (c *Completion) Done() <-chan struct{} { return c.done }

// Err returns the load error once Done is closed, nil before.
func (c *Completion) Err() error {
	select {
	case <-c.done:
		return c.err
	default:
		return nil
	}
}

// Resolved reports whether the load finished.
func (c *Completion) Resolved() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the load finished or ctx ends. Remote loads only finish
// while the host keeps calling Viewer.ProcessPending, so Wait must not be
// called from the loop thread.
func (c *Completion) Wait(ctx context.Context) error {
	select {
	case <-c.done:
		return c.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
