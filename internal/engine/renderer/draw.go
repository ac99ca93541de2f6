package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/skinview/internal/model"
	"github.com/Faultbox/skinview/internal/viewer"
	"github.com/Faultbox/skinview/pkg/math"
)

type meshBuffer struct {
	vao, vbo, ebo uint32
	count         int32
}

func newMeshBuffer(box model.Box) *meshBuffer {
	verts := box.Vertices()
	m := &meshBuffer{count: int32(len(model.BoxIndices))}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(model.BoxIndices)*2, gl.Ptr(model.BoxIndices), gl.STATIC_DRAW)

	stride := int32(model.VertexStride * 4)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	return m
}

func (m *meshBuffer) draw() {
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.count, gl.UNSIGNED_SHORT, nil)
}

func (m *meshBuffer) destroy() {
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteBuffers(1, &m.ebo)
}

// mesh returns the buffers for box, creating them on first use.
func (b *Backend) mesh(box model.Box) *meshBuffer {
	m, ok := b.meshes[box]
	if !ok {
		m = newMeshBuffer(box)
		b.meshes[box] = m
	}
	return m
}

// Render implements viewer.Backend.
func (b *Backend) Render(s *viewer.Scene) {
	if b.disposed || b.lost {
		return
	}
	w, h := b.DrawableSize()
	b.target.Resize(int32(w), int32(h))
	b.target.Bind()

	cc := b.clear
	if s.Background.Texture == nil && s.Background.Color != nil {
		cc = glColor(s.Background.Color)
	}
	b.target.Clear(cc[0], cc[1], cc[2], cc[3])

	viewProj := s.Camera.Projection().Mul(s.Camera.View())
	if tex, ok := s.Background.Texture.(*Texture); ok && tex.id != 0 {
		b.drawBackground(s, tex, viewProj)
	}
	b.drawPlayer(s, viewProj)
	if s.NameTag != nil {
		b.drawNameTag(s)
	}

	b.target.Unbind()
	b.resolveToScreen(w, h)
}

func (b *Backend) drawBackground(s *viewer.Scene, tex *Texture, viewProj math.Mat4) {
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)
	p := b.background
	if s.Background.Mapping == viewer.MappingEquirectangular {
		p = b.panorama
		p.Use()
		p.SetMat4("uInvViewProj", viewProj.Inverse())
		pos := s.Camera.Position
		p.SetVec3("uCameraPos", [3]float32{pos.X, pos.Y, pos.Z})
	} else {
		p.Use()
	}
	bindTexture(0, tex)
	p.SetInt("uTexture", 0)
	gl.BindVertexArray(b.emptyVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
}

func (b *Backend) drawPlayer(s *viewer.Scene, viewProj math.Mat4) {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	b.lights.Follow(s.Camera.Position)
	ambient, lightPos, lightColor := b.lights.Uniforms()

	p := b.model
	p.Use()
	p.SetMat4("uViewProj", viewProj)
	p.SetVec3("uAmbient", ambient)
	p.SetVec3("uLightPos", lightPos)
	p.SetVec3("uLightColor", lightColor)
	p.SetInt("uTexture", 0)

	root := s.WrapperMatrix().Mul(s.Player.Root())
	for _, m := range s.Player.Meshes() {
		if !m.Visible() {
			continue
		}
		tex, ok := s.Player.Texture(m.Channel).(*Texture)
		if !ok || tex.id == 0 {
			continue
		}
		world := root.Mul(m.Transform())
		p.SetMat4("uModel", world)
		p.SetMat3("uNormal", world.NormalMatrix())
		bindTexture(0, tex)
		b.mesh(m.Box).draw()
	}
	gl.BindVertexArray(0)
}

// NameTagCenter returns the world position of the tag above the player.
func NameTagCenter(s *viewer.Scene) math.Vec3 {
	c := s.WrapperMatrix().TransformPoint([3]float32{0, s.NameTag.OffsetY, 0})
	return math.Vec3{X: c[0], Y: c[1], Z: c[2]}
}

func (b *Backend) drawNameTag(s *viewer.Scene) {
	tex, ok := s.NameTag.Texture.(*Texture)
	if !ok || tex.id == 0 {
		return
	}
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	p := b.sprite
	p.Use()
	p.SetMat4("uView", s.Camera.View())
	p.SetMat4("uProj", s.Camera.Projection())
	c := NameTagCenter(s)
	p.SetVec3("uCenter", [3]float32{c.X, c.Y, c.Z})
	p.SetVec2("uSize", s.NameTag.Width, s.NameTag.Height)
	bindTexture(0, tex)
	p.SetInt("uTexture", 0)
	gl.BindVertexArray(b.emptyVAO)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)
}

// resolveToScreen draws the scene target onto the default framebuffer.
func (b *Backend) resolveToScreen(w, h int) {
	gl.Viewport(0, 0, int32(w), int32(h))
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)
	gl.ClearColor(0, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	p := b.resolve
	p.Use()
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, b.target.ColorTexture())
	p.SetInt("uTexture", 0)
	p.SetVec2("uResolution", 1/float32(w), 1/float32(h))
	enabled := int32(0)
	if b.cfg.FXAA {
		enabled = 1
	}
	p.SetInt("uEnabled", enabled)
	gl.BindVertexArray(b.emptyVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)
}
