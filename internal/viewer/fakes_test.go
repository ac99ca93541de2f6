package viewer

import (
	"context"
	"errors"
	"image"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Faultbox/skinview/internal/engine/texture"
	"github.com/Faultbox/skinview/internal/model"
)

type fakeTexture struct {
	img      *image.RGBA
	kind     TextureKind
	disposed int
}

func (t *fakeTexture) Dispose() { t.disposed++ }

type fakeBackend struct {
	textures    []*fakeTexture
	failNext    error
	// failAt makes the failAt-th following NewTexture call fail with failErr.
	failAt      int
	failErr     error
	width       int
	height      int
	ratio       float64
	clearColors []color.Color
	lost        bool
	renders     int
	last        Scene
	disposed    int
}

func (b *fakeBackend) NewTexture(img *image.RGBA, kind TextureKind) (model.Texture, error) {
	if err := b.failNext; err != nil {
		b.failNext = nil
		return nil, err
	}
	if b.failAt > 0 {
		b.failAt--
		if b.failAt == 0 {
			return nil, b.failErr
		}
	}
	t := &fakeTexture{img: img, kind: kind}
	b.textures = append(b.textures, t)
	return t, nil
}

func (b *fakeBackend) SetSize(width, height int) { b.width, b.height = width, height }
func (b *fakeBackend) SetPixelRatio(ratio float64) { b.ratio = ratio }
func (b *fakeBackend) SetClearColor(c color.Color) { b.clearColors = append(b.clearColors, c) }
func (b *fakeBackend) IsContextLost() bool { return b.lost }
func (b *fakeBackend) Render(s *Scene) { b.renders++; b.last = *s }
func (b *fakeBackend) Dispose() { b.disposed++ }

// live returns the textures not yet disposed.
func (b *fakeBackend) live() int {
	n := 0
	for _, t := range b.textures {
		if t.disposed == 0 {
			n++
		}
	}
	return n
}

type fakeDecoder struct {
	mu     sync.Mutex
	images map[string]image.Image
	gates  map[string]chan struct{}
}

func newFakeDecoder() *fakeDecoder {
	return &fakeDecoder{images: map[string]image.Image{}, gates: map[string]chan struct{}{}}
}

func (d *fakeDecoder) add(ref string, img image.Image) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.images[ref] = img
}

// gate makes Decode of ref block until the returned func is called.
func (d *fakeDecoder) gate(ref string) func() {
	ch := make(chan struct{})
	d.mu.Lock()
	d.gates[ref] = ch
	d.mu.Unlock()
	return func() { close(ch) }
}

func (d *fakeDecoder) Decode(ctx context.Context, ref string) (image.Image, error) {
	d.mu.Lock()
	gate := d.gates[ref]
	d.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	img, ok := d.images[ref]
	if !ok {
		return nil, errors.New("not found")
	}
	return img, nil
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

type harness struct {
	v       *Viewer
	backend *fakeBackend
	loop    *FrameLoop
	clock   *fakeClock
	decoder *fakeDecoder
}

func newHarness(t *testing.T, mutate ...func(*Options)) *harness {
	t.Helper()
	h := &harness{
		backend: &fakeBackend{},
		loop:    NewFrameLoop(),
		clock:   &fakeClock{t: time.Unix(1000, 0)},
		decoder: newFakeDecoder(),
	}
	opts := DefaultOptions()
	opts.Backend = h.backend
	opts.Scheduler = h.loop
	opts.Decoder = h.decoder
	opts.Now = h.clock.now
	opts.Logger = zap.NewNop()
	for _, m := range mutate {
		m(&opts)
	}
	v, err := New(opts)
	require.NoError(t, err)
	h.v = v
	t.Cleanup(v.Dispose)
	return h
}

// settle pumps pending loads until c resolves.
func (h *harness) settle(t *testing.T, c *Completion) error {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !c.Resolved() {
		if time.Now().After(deadline) {
			t.Fatal("load did not finish")
		}
		h.v.ProcessPending()
		time.Sleep(time.Millisecond)
	}
	return c.Err()
}

func filled(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

var (
	red   = color.RGBA{R: 0xff, A: 0xff}
	green = color.RGBA{G: 0xff, A: 0xff}
)

func skin(c color.RGBA) *texture.Source { return texture.FromImage(filled(64, 64, c)) }
