package viewer

import "sync"

// Display reports the device pixel ratio of the output surface.
type Display interface {
	DevicePixelRatio() float64
	// WatchRatio calls fn once, the first time the ratio differs from ratio.
	// The returned function cancels the watch.
	WatchRatio(ratio float64, fn func()) (cancel func())
}

// RatioNotifier implements Display on top of a ratio probe. The host calls
// Check whenever the ratio may have changed, e.g. on window events.
type RatioNotifier struct {
	probe func() float64

	mu       sync.Mutex
	next     int
	watchers map[int]ratioWatch
}

type ratioWatch struct {
	ratio float64
	fn    func()
}

// NewRatioNotifier returns a notifier reading the ratio from probe.
func NewRatioNotifier(probe func() float64) *RatioNotifier {
	return &RatioNotifier{probe: probe, watchers: make(map[int]ratioWatch)}
}

// DevicePixelRatio implements Display.
func (n *RatioNotifier) DevicePixelRatio() float64 {
	if r := n.probe(); r > 0 {
		return r
	}
	return 1
}

// WatchRatio implements Display.
func (n *RatioNotifier) WatchRatio(ratio float64, fn func()) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.next
	n.next++
	n.watchers[id] = ratioWatch{ratio: ratio, fn: fn}
	return func() {
		n.mu.Lock()
		delete(n.watchers, id)
		n.mu.Unlock()
	}
}

// Watchers returns the number of armed watches.
func (n *RatioNotifier) Watchers() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.watchers)
}

// Check fires and disarms every watch whose ratio no longer matches.
func (n *RatioNotifier) Check() {
	current := n.DevicePixelRatio()
	n.mu.Lock()
	var fire []func()
	for id, w := range n.watchers {
		if w.ratio != current {
			fire = append(fire, w.fn)
			delete(n.watchers, id)
		}
	}
	n.mu.Unlock()
	for _, fn := range fire {
		fn()
	}
}

// fixedDisplay is used when the host has no display information.
type fixedDisplay float64

func (d fixedDisplay) DevicePixelRatio() float64 { return float64(d) }

func (fixedDisplay) WatchRatio(float64, func()) func() { return func() {} }
