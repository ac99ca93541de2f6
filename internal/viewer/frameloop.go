package viewer

// FrameID identifies a requested frame.
type FrameID uint64

// Scheduler runs callbacks on the next frame of the host's render loop.
type Scheduler interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}

type frameRequest struct {
	id FrameID
	fn func()
}

// FrameLoop is a Scheduler driven by the application's main loop. It is not
// safe for concurrent use; call it from the loop thread only.
type FrameLoop struct {
	next    FrameID
	pending []frameRequest
	// running is the batch of the current Tick; cancelled entries lose fn.
	running []frameRequest
}

// NewFrameLoop returns an empty frame loop.
func NewFrameLoop() *FrameLoop { return &FrameLoop{} }

// RequestFrame queues fn for the next Tick.
func (l *FrameLoop) RequestFrame(fn func()) FrameID {
	l.next++
	l.pending = append(l.pending, frameRequest{id: l.next, fn: fn})
	return l.next
}

// CancelFrame drops a queued request, including one waiting later in the
// batch being ticked. Unknown ids are ignored.
func (l *FrameLoop) CancelFrame(id FrameID) {
	for i := range l.running {
		if l.running[i].id == id {
			l.running[i].fn = nil
			return
		}
	}
	for i, r := range l.pending {
		if r.id == id {
			l.pending = append(l.pending[:i], l.pending[i+1:]...)
			return
		}
	}
}

// Pending returns the number of queued requests.
func (l *FrameLoop) Pending() int { return len(l.pending) }

// Tick runs the requests queued before the call. Requests made while ticking
// wait for the next Tick. It returns the number of callbacks run.
func (l *FrameLoop) Tick() int {
	l.running = l.pending
	l.pending = nil
	n := 0
	for i := range l.running {
		fn := l.running[i].fn
		if fn == nil {
			continue
		}
		l.running[i].fn = nil
		fn()
		n++
	}
	l.running = nil
	return n
}
