package viewer

import (
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/skinview/internal/animation"
	"github.com/Faultbox/skinview/internal/engine/texture"
	"github.com/Faultbox/skinview/internal/model"
	"github.com/Faultbox/skinview/pkg/math"
)

func TestNewRequiresBackend(t *testing.T) {
	_, err := New(DefaultOptions())
	assert.ErrorIs(t, err, ErrMissingTarget)
}

func TestNewSchedulesFirstFrame(t *testing.T) {
	h := newHarness(t)
	assert.True(t, h.v.Scheduled())
	assert.Equal(t, 1, h.loop.Pending())
	assert.False(t, h.v.Player().Skin.Visible, "skin hidden until loaded")
	assert.Equal(t, 300, h.backend.width)
	assert.Equal(t, []color.Color{color.Transparent}, h.backend.clearColors)
}

func TestNewRenderPaused(t *testing.T) {
	h := newHarness(t, func(o *Options) { o.RenderPaused = true })
	assert.False(t, h.v.Scheduled())
	assert.Zero(t, h.loop.Pending())
	assert.True(t, h.v.RenderPaused())
}

func TestFrameLoopReschedules(t *testing.T) {
	h := newHarness(t)
	for i := 1; i <= 3; i++ {
		assert.Equal(t, 1, h.loop.Tick())
		assert.Equal(t, i, h.backend.renders)
		assert.True(t, h.v.Scheduled())
	}
}

func TestPausedEarlierInSameTickSkipsFrame(t *testing.T) {
	loop := NewFrameLoop()
	var h *harness
	loop.RequestFrame(func() { h.v.SetRenderPaused(true) })
	h = newHarness(t, func(o *Options) { o.Scheduler = loop })
	h.loop = loop

	assert.Equal(t, 1, loop.Tick())
	assert.Zero(t, h.backend.renders)
	assert.False(t, h.v.Scheduled())
	assert.Zero(t, loop.Pending())
}

func TestDisposedEarlierInSameTickSkipsFrame(t *testing.T) {
	loop := NewFrameLoop()
	var h *harness
	loop.RequestFrame(func() { h.v.Dispose() })
	h = newHarness(t, func(o *Options) { o.Scheduler = loop })
	h.loop = loop

	assert.Equal(t, 1, loop.Tick())
	assert.Zero(t, h.backend.renders)
	assert.Zero(t, loop.Pending())
}

func TestAnimationScenario(t *testing.T) {
	h := newHarness(t)
	a := animation.NewIdle()
	h.v.SetAnimation(a)

	h.loop.Tick() // starts the clock
	h.clock.advance(time.Second)
	h.loop.Tick()
	assert.Equal(t, 1.0, a.Progress())

	b := animation.NewRunning()
	b.SetProgress(5)
	h.v.SetAnimation(b)
	assert.Zero(t, b.Progress())
	assertRestPose(t, h.v.Player())
}

func assertRestPose(t *testing.T, p *model.Player) {
	t.Helper()
	rest := model.New()
	assert.Equal(t, rest.Skin.LeftArm.Part, p.Skin.LeftArm.Part)
	assert.Equal(t, rest.Skin.RightLeg.Part, p.Skin.RightLeg.Part)
	assert.Equal(t, rest.Cape.Rotation, p.Cape.Rotation)
	assert.Equal(t, math.Vec3{}, p.Position)
	assert.Equal(t, math.Vec3{}, p.Rotation)
}

func TestReplacingAnimationResetsPose(t *testing.T) {
	h := newHarness(t)
	run := animation.NewRunning()
	h.v.SetAnimation(run)
	h.loop.Tick()
	h.clock.advance(300 * time.Millisecond)
	h.loop.Tick()
	require.NotEqual(t, math.Vec3{}, h.v.Player().Position)

	h.v.SetAnimation(animation.NewWalking())
	assertRestPose(t, h.v.Player())

	h.v.SetAnimation(nil)
	assertRestPose(t, h.v.Player())
	assert.Nil(t, h.v.Animation())
}

func TestSameAnimationOnlyRestarts(t *testing.T) {
	h := newHarness(t)
	a := animation.NewWalking()
	h.v.SetAnimation(a)
	h.loop.Tick()
	h.clock.advance(100 * time.Millisecond)
	h.loop.Tick()
	h.clock.advance(100 * time.Millisecond)
	h.loop.Tick()
	posed := h.v.Player().Skin.LeftLeg.Rotation

	h.v.SetAnimation(a)
	assert.Zero(t, a.Progress())
	assert.Equal(t, posed, h.v.Player().Skin.LeftLeg.Rotation)
}

func TestNoAnimationKeepsRestPose(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 5; i++ {
		h.clock.advance(time.Second)
		h.loop.Tick()
	}
	assertRestPose(t, h.v.Player())
}

func TestRenderDoesNotAdvance(t *testing.T) {
	h := newHarness(t)
	a := animation.NewIdle()
	h.v.SetAnimation(a)
	h.loop.Tick()
	h.clock.advance(time.Second)
	h.v.Render()
	assert.Zero(t, a.Progress())
	assert.Equal(t, 2, h.backend.renders)
}

func TestPauseFreezesClock(t *testing.T) {
	h := newHarness(t)
	a := animation.NewIdle()
	h.v.SetAnimation(a)
	h.loop.Tick()
	h.clock.advance(time.Second)
	h.loop.Tick()

	h.v.SetRenderPaused(true)
	assert.False(t, h.v.Scheduled())
	assert.Zero(t, h.loop.Pending())

	h.clock.advance(time.Hour)
	h.v.SetRenderPaused(false)
	assert.True(t, h.v.Scheduled())
	h.loop.Tick()
	assert.Equal(t, 1.0, a.Progress(), "paused time must not be applied")

	h.clock.advance(500 * time.Millisecond)
	h.loop.Tick()
	assert.Equal(t, 1.5, a.Progress())
}

func TestResumeTwiceSchedulesOnce(t *testing.T) {
	h := newHarness(t)
	h.v.SetRenderPaused(false)
	h.v.SetRenderPaused(false)
	assert.Equal(t, 1, h.loop.Pending())
}

func TestPauseDuringFrameStopsLoop(t *testing.T) {
	h := newHarness(t)
	h.v.SetAnimation(animation.NewFunc(func(*model.Player, float64, float64) {
		h.v.SetRenderPaused(true)
	}))
	h.loop.Tick()
	assert.False(t, h.v.Scheduled())
	assert.Zero(t, h.loop.Pending())
}

func TestResumeBlockedByContextLoss(t *testing.T) {
	h := newHarness(t)
	h.v.SetRenderPaused(true)
	h.backend.lost = true
	h.v.SetRenderPaused(false)
	assert.False(t, h.v.Scheduled())
}

func TestContextLossAndRestore(t *testing.T) {
	h := newHarness(t)
	h.v.HandleContextLost()
	assert.False(t, h.v.Scheduled())
	assert.False(t, h.v.RenderPaused())

	h.v.SetRenderPaused(false)
	assert.False(t, h.v.Scheduled(), "resume waits for the context")

	h.v.HandleContextRestored()
	assert.True(t, h.v.Scheduled())
	assert.Len(t, h.backend.clearColors, 2)
}

func TestContextRestoredWhilePaused(t *testing.T) {
	h := newHarness(t)
	h.v.HandleContextLost()
	h.v.SetRenderPaused(true)
	h.v.HandleContextRestored()
	assert.False(t, h.v.Scheduled())

	h.v.SetRenderPaused(false)
	assert.True(t, h.v.Scheduled())
}

func TestDisposeReleasesEverything(t *testing.T) {
	h := newHarness(t)
	v := h.v
	require.NoError(t, v.LoadSkin(skin(red), SkinLoadOptions{Ears: EarsShow}).Err())
	require.NoError(t, v.LoadCape(texture.FromImage(filled(64, 32, red)), CapeLoadOptions{}).Err())
	require.NoError(t, v.LoadPanorama(texture.FromImage(filled(8, 4, red))).Err())
	v.SetNameTagText("Steve")
	require.Len(t, h.backend.textures, 5)

	v.Dispose()
	v.Dispose()

	for i, tex := range h.backend.textures {
		assert.Equal(t, 1, tex.disposed, "texture %d", i)
	}
	assert.Equal(t, 1, h.backend.disposed)
	assert.True(t, v.Disposed())
	assert.False(t, v.Scheduled())
	assert.Zero(t, h.loop.Pending())
	assert.False(t, v.Player().Skin.Visible)
	assert.Nil(t, v.Player().Cape.Map)
	assert.Nil(t, v.Background().Texture)
}

func TestOperationsAfterDispose(t *testing.T) {
	h := newHarness(t)
	v := h.v
	v.Dispose()
	renders := h.backend.renders

	assert.ErrorIs(t, v.LoadSkin(skin(red), SkinLoadOptions{}).Err(), ErrDisposed)
	assert.ErrorIs(t, v.LoadSkin(texture.FromRef("remote"), SkinLoadOptions{}).Err(), ErrDisposed)
	assert.ErrorIs(t, v.LoadCape(nil, CapeLoadOptions{}).Err(), ErrDisposed)
	assert.ErrorIs(t, v.LoadEars(texture.FromRef("ears"), EarsLoadOptions{}).Err(), ErrDisposed)
	assert.ErrorIs(t, v.LoadPanorama(texture.FromImage(filled(2, 1, red))).Err(), ErrDisposed)
	v.SetNameTagText("ghost")
	v.Render()
	v.SetRenderPaused(false)
	v.HandleContextRestored()
	v.SetSize(10, 10)
	v.SetPixelRatio(0)

	assert.Equal(t, renders, h.backend.renders)
	assert.Zero(t, h.loop.Pending())
	assert.Empty(t, h.backend.textures)
}

func TestLoadSkinReady(t *testing.T) {
	h := newHarness(t)
	c := h.v.LoadSkin(skin(red), SkinLoadOptions{})
	assert.True(t, c.Resolved())
	require.NoError(t, c.Err())

	p := h.v.Player()
	assert.True(t, p.Skin.Visible)
	assert.NotNil(t, p.Skin.Map)
	assert.Equal(t, model.ModelDefault, p.Skin.ModelType)
	assert.Equal(t, KindPixelArt, h.backend.textures[0].kind)
	assert.False(t, p.Ears.Visible)
}

func TestLoadSkinModelSelection(t *testing.T) {
	h := newHarness(t)
	transparent := texture.FromImage(filled(64, 64, color.RGBA{}))
	require.NoError(t, h.v.LoadSkin(transparent, SkinLoadOptions{Model: AutoDetect}).Err())
	assert.Equal(t, model.ModelSlim, h.v.Player().Skin.ModelType)

	require.NoError(t, h.v.LoadSkin(transparent, SkinLoadOptions{Model: model.ModelDefault}).Err())
	assert.Equal(t, model.ModelDefault, h.v.Player().Skin.ModelType)
}

func TestLoadSkinHidden(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.v.LoadSkin(skin(red), SkinLoadOptions{Hidden: true}).Err())
	assert.False(t, h.v.Player().Skin.Visible)
	assert.NotNil(t, h.v.Player().Skin.Map)
}

func TestLoadSkinEars(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.v.LoadSkin(skin(red), SkinLoadOptions{Ears: EarsLoadOnly}).Err())
	assert.NotNil(t, h.v.Player().Ears.Map)
	assert.False(t, h.v.Player().Ears.Visible)
	assert.Equal(t, 14, h.v.EarsCanvas().Bounds().Dx())

	require.NoError(t, h.v.LoadSkin(skin(red), SkinLoadOptions{Ears: EarsShow}).Err())
	assert.True(t, h.v.Player().Ears.Visible)
}

func TestLoadSkinEarsFailureKeepsBoth(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.v.LoadSkin(skin(red), SkinLoadOptions{Ears: EarsShow}).Err())
	prevSkin := h.v.Player().Skin.Map
	prevEars := h.v.Player().Ears.Map
	prevCanvas := h.v.SkinCanvas()

	h.backend.failAt = 2
	h.backend.failErr = errors.New("out of memory")
	err := h.v.LoadSkin(skin(green), SkinLoadOptions{Ears: EarsShow}).Err()
	var lerr *LoadError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, ChannelSkin, lerr.Channel)

	assert.Same(t, prevSkin, h.v.Player().Skin.Map)
	assert.Same(t, prevEars, h.v.Player().Ears.Map)
	assert.Same(t, prevCanvas, h.v.SkinCanvas())
	assert.Equal(t, 2, h.backend.live(), "the unused skin texture is released")
}

func TestResetChannels(t *testing.T) {
	h := newHarness(t)
	v := h.v
	require.NoError(t, v.LoadSkin(skin(red), SkinLoadOptions{}).Err())
	require.NoError(t, v.LoadCape(texture.FromImage(filled(64, 32, red)), CapeLoadOptions{}).Err())
	require.NoError(t, v.LoadEars(texture.FromImage(filled(14, 7, red)), EarsLoadOptions{}).Err())

	require.NoError(t, v.LoadSkin(nil, SkinLoadOptions{}).Err())
	require.NoError(t, v.LoadCape(nil, CapeLoadOptions{}).Err())
	require.NoError(t, v.LoadEars(nil, EarsLoadOptions{}).Err())
	// resetting an empty channel is a no-op
	require.NoError(t, v.LoadSkin(nil, SkinLoadOptions{}).Err())

	p := v.Player()
	assert.False(t, p.Skin.Visible)
	assert.Nil(t, p.Skin.Map)
	assert.Equal(t, model.BackNone, p.BackEquipment())
	assert.Nil(t, p.Cape.Map)
	assert.Nil(t, p.Elytra.Map)
	assert.False(t, p.Ears.Visible)
	assert.Nil(t, p.Ears.Map)
	for _, tex := range h.backend.textures {
		assert.Equal(t, 1, tex.disposed)
	}
}

func TestReloadReplacesTexture(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.v.LoadSkin(skin(red), SkinLoadOptions{}).Err())
	require.NoError(t, h.v.LoadSkin(skin(green), SkinLoadOptions{}).Err())

	require.Len(t, h.backend.textures, 2)
	assert.Equal(t, 1, h.backend.textures[0].disposed)
	assert.Zero(t, h.backend.textures[1].disposed)
	assert.Same(t, h.backend.textures[1], h.v.Player().Skin.Map)
}

func TestLoadFailureKeepsPrevious(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.v.LoadSkin(skin(red), SkinLoadOptions{}).Err())
	prev := h.v.Player().Skin.Map

	err := h.v.LoadSkin(texture.FromImage(filled(10, 10, green)), SkinLoadOptions{}).Err()
	var lerr *LoadError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, ChannelSkin, lerr.Channel)
	assert.ErrorIs(t, err, texture.ErrBadSize)
	assert.Same(t, prev, h.v.Player().Skin.Map)

	h.backend.failNext = errors.New("out of memory")
	require.Error(t, h.v.LoadSkin(skin(green), SkinLoadOptions{}).Err())
	assert.Same(t, prev, h.v.Player().Skin.Map)
	assert.Equal(t, 1, h.backend.live())
}

func TestCapeSharedWithElytra(t *testing.T) {
	h := newHarness(t)
	cape := texture.FromImage(filled(64, 32, red))
	require.NoError(t, h.v.LoadCape(cape, CapeLoadOptions{BackEquipment: model.BackElytra}).Err())

	p := h.v.Player()
	assert.Equal(t, model.BackElytra, p.BackEquipment())
	assert.Same(t, p.Cape.Map, p.Elytra.Map)

	require.NoError(t, h.v.LoadCape(cape, CapeLoadOptions{}).Err())
	assert.Equal(t, model.BackCape, p.BackEquipment())
	assert.Same(t, p.Cape.Map, p.Elytra.Map)
	assert.Equal(t, 1, h.backend.live())

	require.NoError(t, h.v.LoadCape(cape, CapeLoadOptions{BackEquipment: model.BackElytra, Hidden: true}).Err())
	assert.Equal(t, model.BackCape, p.BackEquipment(), "hidden load keeps the equipment")
}

func TestRemoteLoad(t *testing.T) {
	h := newHarness(t)
	h.decoder.add("steve.png", filled(64, 64, red))

	c := h.v.LoadSkin(texture.FromRef("steve.png"), SkinLoadOptions{})
	require.NoError(t, h.settle(t, c))
	assert.True(t, h.v.Player().Skin.Visible)
	assert.Equal(t, red, h.v.SkinCanvas().RGBAAt(10, 10))
}

func TestRemoteLoadError(t *testing.T) {
	h := newHarness(t)
	err := h.settle(t, h.v.LoadCape(texture.FromRef("missing.png"), CapeLoadOptions{}))
	var lerr *LoadError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, ChannelCape, lerr.Channel)
	assert.Equal(t, "missing.png", lerr.Source)
	assert.Equal(t, model.BackNone, h.v.Player().BackEquipment())
}

func TestRemoteLastRequestWins(t *testing.T) {
	h := newHarness(t)
	h.decoder.add("slow.png", filled(64, 64, red))
	h.decoder.add("fast.png", filled(64, 64, green))
	release := h.decoder.gate("slow.png")

	slow := h.v.LoadSkin(texture.FromRef("slow.png"), SkinLoadOptions{})
	fast := h.v.LoadSkin(texture.FromRef("fast.png"), SkinLoadOptions{})
	require.NoError(t, h.settle(t, fast))

	release()
	assert.ErrorIs(t, h.settle(t, slow), ErrSuperseded)
	assert.Equal(t, green, h.v.SkinCanvas().RGBAAt(10, 10))
	assert.Len(t, h.backend.textures, 1)
}

func TestSyncLoadSupersedesRemote(t *testing.T) {
	h := newHarness(t)
	h.decoder.add("old.png", filled(64, 64, red))
	release := h.decoder.gate("old.png")

	remote := h.v.LoadSkin(texture.FromRef("old.png"), SkinLoadOptions{})
	require.NoError(t, h.v.LoadSkin(skin(green), SkinLoadOptions{}).Err())
	release()
	assert.ErrorIs(t, h.settle(t, remote), ErrSuperseded)
	assert.Equal(t, green, h.v.SkinCanvas().RGBAAt(10, 10))

	// a reset also supersedes
	h.decoder.add("late.png", filled(64, 64, red))
	release = h.decoder.gate("late.png")
	remote = h.v.LoadSkin(texture.FromRef("late.png"), SkinLoadOptions{})
	h.v.LoadSkin(nil, SkinLoadOptions{})
	release()
	assert.ErrorIs(t, h.settle(t, remote), ErrSuperseded)
	assert.False(t, h.v.Player().Skin.Visible)
}

func TestDisposeDuringRemoteLoad(t *testing.T) {
	h := newHarness(t)
	h.decoder.add("skin.png", filled(64, 64, red))
	h.decoder.gate("skin.png")

	c := h.v.LoadSkin(texture.FromRef("skin.png"), SkinLoadOptions{})
	h.v.Dispose()

	assert.True(t, c.Resolved())
	assert.ErrorIs(t, c.Err(), ErrDisposed)
	assert.Empty(t, h.backend.textures)
	assert.Zero(t, h.loop.Pending())
}

func TestBackground(t *testing.T) {
	h := newHarness(t)
	v := h.v
	assert.Equal(t, Background{}, v.Background())

	require.NoError(t, v.LoadPanorama(texture.FromImage(filled(8, 4, red))).Err())
	bg := v.Background()
	assert.NotNil(t, bg.Texture)
	assert.Equal(t, MappingEquirectangular, bg.Mapping)
	assert.Equal(t, KindBackground, h.backend.textures[0].kind)

	v.SetBackground(red)
	assert.Equal(t, Background{Color: red}, v.Background())
	assert.Equal(t, 1, h.backend.textures[0].disposed)

	require.NoError(t, v.LoadBackground(texture.FromImage(filled(4, 4, green)), MappingScreen).Err())
	assert.Equal(t, MappingScreen, v.Background().Mapping)
	v.SetBackground(nil)
	assert.Equal(t, Background{}, v.Background())
}

func TestNameTag(t *testing.T) {
	h := newHarness(t)
	v := h.v
	v.SetNameTagText("Steve")
	require.NotNil(t, v.NameTag())
	assert.Equal(t, "Steve", v.NameTag().Text)

	h.loop.Tick()
	tag := h.backend.last.NameTag
	require.NotNil(t, tag)
	assert.Equal(t, float32(20), tag.OffsetY)
	assert.Equal(t, float32(4), tag.Height)
	assert.Greater(t, tag.Width, tag.Height)

	v.SetNameTagText("Alex")
	assert.Equal(t, 1, h.backend.textures[0].disposed)

	v.SetNameTag(nil)
	assert.Nil(t, v.NameTag())
	assert.Equal(t, 0, h.backend.live())
	h.loop.Tick()
	assert.Nil(t, h.backend.last.NameTag)
}

func TestInitialOptions(t *testing.T) {
	h := newHarness(t, func(o *Options) {
		o.Skin = skin(red)
		o.Model = model.ModelSlim
		o.Ears = &EarsOption{CurrentSkin: true}
		o.Cape = texture.FromImage(filled(64, 32, red))
		o.Width, o.Height = 640, 480
		o.NameTag = "Notch"
		o.Background = green
		o.EnablePan = true
		o.EnableZoom = false
	})
	p := h.v.Player()
	assert.True(t, p.Skin.Visible)
	assert.Equal(t, model.ModelSlim, p.Skin.ModelType)
	assert.True(t, p.Ears.Visible)
	assert.Equal(t, model.BackCape, p.BackEquipment())
	assert.Equal(t, 640, h.backend.width)
	assert.InDelta(t, 640.0/480.0, h.v.Camera().Aspect, 1e-6)
	assert.Equal(t, green, h.v.Background().Color)
	assert.Equal(t, "Notch", h.v.NameTag().Text)
	assert.True(t, h.v.Controls().EnablePan)
	assert.False(t, h.v.Controls().EnableZoom)
}

func TestInitialAnimationKeepsProgress(t *testing.T) {
	a := animation.NewWalking()
	a.SetProgress(2)
	h := newHarness(t, func(o *Options) { o.Animation = a })
	assert.Same(t, a, h.v.Animation())
	assert.Equal(t, 2.0, a.Progress())
}

func TestCameraDistance(t *testing.T) {
	assert.InDelta(t, 43.816, CameraDistance(50, 0.9), 1e-3)
	assert.Equal(t, 256.0, CameraDistance(1, 0.01))
	assert.Equal(t, 10.0, CameraDistance(170, 100))

	h := newHarness(t)
	assert.InDelta(t, CameraDistance(50, 0.9), h.v.Camera().Distance(), 1e-3)

	h.v.SetZoom(2)
	assert.InDelta(t, CameraDistance(50, 2), h.v.Camera().Distance(), 1e-3)
	h.v.SetFOV(70)
	assert.Equal(t, 70.0, h.v.FOV())
	assert.InDelta(t, CameraDistance(70, 2), h.v.Camera().Distance(), 1e-3)

	h.v.Camera().Position = math.Vec3{X: 5}
	h.v.ResetCameraPose()
	assert.InDelta(t, 0, h.v.Camera().Position.X, 1e-6)
	assert.InDelta(t, CameraDistance(70, 2), h.v.Camera().Position.Z, 1e-3)
}

func TestSetSize(t *testing.T) {
	h := newHarness(t)
	h.v.SetSize(200, 100)
	assert.Equal(t, 200, h.v.Width())
	assert.Equal(t, 100, h.backend.height)
	assert.InDelta(t, 2, h.v.Camera().Aspect, 1e-6)

	h.v.SetHeight(400)
	assert.Equal(t, 200, h.backend.width)
	assert.InDelta(t, 0.5, h.v.Camera().Aspect, 1e-6)

	h.v.SetSize(0, 100)
	assert.Equal(t, 200, h.v.Width())
}

func TestPixelRatioFollowsDevice(t *testing.T) {
	ratio := 2.0
	display := NewRatioNotifier(func() float64 { return ratio })
	h := newHarness(t, func(o *Options) { o.Display = display })
	v := h.v

	assert.True(t, v.MatchesDevice())
	assert.Equal(t, 2.0, h.backend.ratio)
	assert.Equal(t, 1, display.Watchers())

	ratio = 3
	display.Check()
	assert.Equal(t, 3.0, h.backend.ratio)
	assert.Equal(t, 1, display.Watchers(), "watch re-armed")

	v.SetPixelRatio(1.5)
	assert.False(t, v.MatchesDevice())
	assert.Equal(t, 0, display.Watchers())
	ratio = 1
	display.Check()
	assert.Equal(t, 1.5, h.backend.ratio)
	assert.Equal(t, 1.5, v.PixelRatio())

	v.SetPixelRatio(0)
	assert.Equal(t, 1.0, h.backend.ratio)
	assert.Equal(t, 1, display.Watchers())

	v.Dispose()
	assert.Equal(t, 0, display.Watchers())
}

func TestFixedPixelRatio(t *testing.T) {
	h := newHarness(t, func(o *Options) { o.PixelRatio = 2 })
	assert.Equal(t, 2.0, h.backend.ratio)
	assert.False(t, h.v.MatchesDevice())
}

func TestAutoRotate(t *testing.T) {
	h := newHarness(t)
	v := h.v
	v.SetAutoRotate(true)
	v.SetAutoRotateSpeed(2)
	h.loop.Tick()
	h.clock.advance(500 * time.Millisecond)
	h.loop.Tick()
	assert.InDelta(t, 1, v.WrapperRotation().Y, 1e-6)

	v.HandlePointerDown()
	h.clock.advance(500 * time.Millisecond)
	h.loop.Tick()
	assert.InDelta(t, 1, v.WrapperRotation().Y, 1e-6, "held while dragging")

	v.Controls().EnableRotate = false
	h.clock.advance(500 * time.Millisecond)
	h.loop.Tick()
	assert.InDelta(t, 2, v.WrapperRotation().Y, 1e-6, "dragging does nothing without rotate")

	v.HandlePointerUp()
	v.HandleTouchMove(2)
	v.Controls().EnableRotate = true
	h.clock.advance(500 * time.Millisecond)
	h.loop.Tick()
	assert.InDelta(t, 3, v.WrapperRotation().Y, 1e-6, "pinch is not a drag")

	v.ResetModelRotation()
	assert.Equal(t, math.Vec3{}, v.WrapperRotation())
}
