package model

import "github.com/Faultbox/skinview/pkg/math"

// Channel identifies which texture a mesh samples.
type Channel int

const (
	ChannelSkin Channel = iota
	ChannelCape
	ChannelElytra
	ChannelEars
)

// Texture layout sizes in pixels.
const (
	SkinTextureSize   = 64
	CapeTextureWidth  = 64
	CapeTextureHeight = 32
	EarsTextureWidth  = 14
	EarsTextureHeight = 7
)

// Box is a textured cuboid using the Minecraft box unwrap: the top and bottom
// faces sit in the first depth rows, the four sides below them.
type Box struct {
	Size   math.Vec3 // model units
	Offset math.Vec3 // centre relative to the owning part

	U, V    int     // texture origin in pixels
	UVSize  [3]int  // width, height, depth of the unwrap in pixels
	TexSize [2]int  // texture width, height
	Inflate float32 // grows every face outward, for outer layers
}

// VertexStride is the number of float32 per vertex: position, normal, uv.
const VertexStride = 8

// BoxIndices holds the triangle indices shared by every box.
var BoxIndices = func() []uint16 {
	idx := make([]uint16, 0, 36)
	for f := uint16(0); f < 6; f++ {
		b := f * 4
		idx = append(idx, b, b+2, b+1, b+1, b+2, b+3)
	}
	return idx
}()

type face struct {
	normal  math.Vec3
	corners [4]math.Vec3 // top-left, top-right, bottom-left, bottom-right seen from outside
	rect    [4]int       // x1, y1, x2, y2 in pixels
	flipV   bool
}

// Vertices returns 24 interleaved vertices (4 per face, VertexStride floats each).
// UVs are normalised with v growing downward, matching an RGBA upload whose
// first row is the image's top row.
func (b Box) Vertices() []float32 {
	hx := b.Size.X/2 + b.Inflate
	hy := b.Size.Y/2 + b.Inflate
	hz := b.Size.Z/2 + b.Inflate
	w, h, d := b.UVSize[0], b.UVSize[1], b.UVSize[2]
	u, v := b.U, b.V

	faces := [6]face{
		{ // +X
			normal:  math.Vec3{X: 1},
			corners: [4]math.Vec3{{X: hx, Y: hy, Z: hz}, {X: hx, Y: hy, Z: -hz}, {X: hx, Y: -hy, Z: hz}, {X: hx, Y: -hy, Z: -hz}},
			rect:    [4]int{u + w + d, v + d, u + w + 2*d, v + d + h},
		},
		{ // -X
			normal:  math.Vec3{X: -1},
			corners: [4]math.Vec3{{X: -hx, Y: hy, Z: -hz}, {X: -hx, Y: hy, Z: hz}, {X: -hx, Y: -hy, Z: -hz}, {X: -hx, Y: -hy, Z: hz}},
			rect:    [4]int{u, v + d, u + d, v + d + h},
		},
		{ // +Y
			normal:  math.Vec3{Y: 1},
			corners: [4]math.Vec3{{X: -hx, Y: hy, Z: -hz}, {X: hx, Y: hy, Z: -hz}, {X: -hx, Y: hy, Z: hz}, {X: hx, Y: hy, Z: hz}},
			rect:    [4]int{u + d, v, u + d + w, v + d},
		},
		{ // -Y
			normal:  math.Vec3{Y: -1},
			corners: [4]math.Vec3{{X: -hx, Y: -hy, Z: hz}, {X: hx, Y: -hy, Z: hz}, {X: -hx, Y: -hy, Z: -hz}, {X: hx, Y: -hy, Z: -hz}},
			rect:    [4]int{u + d + w, v, u + d + 2*w, v + d},
			flipV:   true,
		},
		{ // +Z
			normal:  math.Vec3{Z: 1},
			corners: [4]math.Vec3{{X: -hx, Y: hy, Z: hz}, {X: hx, Y: hy, Z: hz}, {X: -hx, Y: -hy, Z: hz}, {X: hx, Y: -hy, Z: hz}},
			rect:    [4]int{u + d, v + d, u + d + w, v + d + h},
		},
		{ // -Z
			normal:  math.Vec3{Z: -1},
			corners: [4]math.Vec3{{X: hx, Y: hy, Z: -hz}, {X: -hx, Y: hy, Z: -hz}, {X: hx, Y: -hy, Z: -hz}, {X: -hx, Y: -hy, Z: -hz}},
			rect:    [4]int{u + 2*d + w, v + d, u + 2*d + 2*w, v + d + h},
		},
	}

	tw, th := float32(b.TexSize[0]), float32(b.TexSize[1])
	out := make([]float32, 0, 24*VertexStride)
	for _, f := range faces {
		x1, y1 := float32(f.rect[0])/tw, float32(f.rect[1])/th
		x2, y2 := float32(f.rect[2])/tw, float32(f.rect[3])/th
		if f.flipV {
			y1, y2 = y2, y1
		}
		uvs := [4][2]float32{{x1, y1}, {x2, y1}, {x1, y2}, {x2, y2}}
		for i, c := range f.corners {
			p := c.Add(b.Offset)
			out = append(out, p.X, p.Y, p.Z, f.normal.X, f.normal.Y, f.normal.Z, uvs[i][0], uvs[i][1])
		}
	}
	return out
}

// Mesh is one textured box hanging off a chain of parts.
type Mesh struct {
	Name    string
	Chain   []*Part // outermost first; the player root is implied
	Box     Box
	Channel Channel
	MirrorX bool  // mirrored across the owning part's YZ plane
	Layer   *bool // optional layer toggle on top of the chain's visibility
}

// Visible reports whether every part in the chain and the layer toggle are on.
func (m Mesh) Visible() bool {
	for _, p := range m.Chain {
		if !p.Visible {
			return false
		}
	}
	return m.Layer == nil || *m.Layer
}

// Transform returns the mesh's transform relative to the player root.
func (m Mesh) Transform() math.Mat4 {
	t := math.Identity()
	for _, p := range m.Chain {
		t = t.Mul(p.Local())
	}
	if m.MirrorX {
		t = t.Mul(math.Scale(-1, 1, 1))
	}
	return t
}

// Texture returns the texture bound to the mesh's channel, or nil.
func (p *Player) Texture(ch Channel) Texture {
	switch ch {
	case ChannelSkin:
		return p.Skin.Map
	case ChannelCape:
		return p.Cape.Map
	case ChannelElytra:
		return p.Elytra.Map
	case ChannelEars:
		return p.Ears.Map
	}
	return nil
}

// Meshes lists every mesh of the model. The list is rebuilt when the skin's
// model type changes, so callers can cache GPU buffers by Name and Box.
func (p *Player) Meshes() []Mesh {
	if p.meshes != nil && p.built == p.Skin.ModelType {
		return p.meshes
	}
	p.built = p.Skin.ModelType
	p.meshes = p.buildMeshes()
	return p.meshes
}

type limb struct {
	name         string
	part         *BodyPart
	size         math.Vec3
	offset       math.Vec3
	inner, outer [2]int
	inflate      float32
}

func (p *Player) buildMeshes() []Mesh {
	s := &p.Skin
	armW, armOffset := float32(4), float32(1)
	if s.ModelType == ModelSlim {
		armW, armOffset = 3, 0.5
	}

	limbs := []limb{
		{"head", &s.Head, math.Vec3{X: 8, Y: 8, Z: 8}, math.Vec3{Y: 4}, [2]int{0, 0}, [2]int{32, 0}, 0.5},
		{"body", &s.Body, math.Vec3{X: 8, Y: 12, Z: 4}, math.Vec3{}, [2]int{16, 16}, [2]int{16, 32}, 0.25},
		{"right_arm", &s.RightArm, math.Vec3{X: armW, Y: 12, Z: 4}, math.Vec3{X: -armOffset, Y: -4}, [2]int{40, 16}, [2]int{40, 32}, 0.25},
		{"left_arm", &s.LeftArm, math.Vec3{X: armW, Y: 12, Z: 4}, math.Vec3{X: armOffset, Y: -4}, [2]int{32, 48}, [2]int{48, 48}, 0.25},
		{"right_leg", &s.RightLeg, math.Vec3{X: 4, Y: 12, Z: 4}, math.Vec3{Y: -6}, [2]int{0, 16}, [2]int{0, 32}, 0.25},
		{"left_leg", &s.LeftLeg, math.Vec3{X: 4, Y: 12, Z: 4}, math.Vec3{Y: -6}, [2]int{16, 48}, [2]int{0, 48}, 0.25},
	}

	meshes := make([]Mesh, 0, 2*len(limbs)+5)
	for _, l := range limbs {
		uv := [3]int{int(l.size.X), int(l.size.Y), int(l.size.Z)}
		for layer, origin := range [2][2]int{l.inner, l.outer} {
			m := Mesh{
				Name:    l.name,
				Chain:   []*Part{&s.Part, &l.part.Part},
				Channel: ChannelSkin,
				Layer:   &l.part.InnerLayer,
				Box: Box{
					Size: l.size, Offset: l.offset,
					U: origin[0], V: origin[1], UVSize: uv,
					TexSize: [2]int{SkinTextureSize, SkinTextureSize},
				},
			}
			if layer == 1 {
				m.Name += "_outer"
				m.Layer = &l.part.OuterLayer
				m.Box.Inflate = l.inflate
			}
			meshes = append(meshes, m)
		}
	}

	capeTex := [2]int{CapeTextureWidth, CapeTextureHeight}
	meshes = append(meshes, Mesh{
		Name:    "cape",
		Chain:   []*Part{&p.Cape.Part},
		Channel: ChannelCape,
		Box: Box{
			Size: math.Vec3{X: 10, Y: 16, Z: 1}, Offset: math.Vec3{Y: -8, Z: 0.5},
			U: 0, V: 0, UVSize: [3]int{10, 16, 1}, TexSize: capeTex,
		},
	})

	wing := Box{
		Size: math.Vec3{X: 12, Y: 22, Z: 4}, Offset: math.Vec3{X: -5, Y: -10, Z: -1},
		U: 22, V: 0, UVSize: [3]int{10, 20, 2}, TexSize: capeTex,
	}
	meshes = append(meshes,
		Mesh{Name: "elytra_left", Chain: []*Part{&p.Elytra.Part, &p.Elytra.LeftWing}, Channel: ChannelElytra, Box: wing},
		Mesh{Name: "elytra_right", Chain: []*Part{&p.Elytra.Part, &p.Elytra.RightWing}, Channel: ChannelElytra, Box: wing, MirrorX: true},
	)

	ear := Box{
		Size: math.Vec3{X: 8, Y: 8, Z: 4.0 / 3}, U: 0, V: 0, UVSize: [3]int{6, 6, 1},
		TexSize: [2]int{EarsTextureWidth, EarsTextureHeight},
	}
	rightEar, leftEar := ear, ear
	rightEar.Offset = math.Vec3{X: -6}
	leftEar.Offset = math.Vec3{X: 6}
	headChain := []*Part{&s.Part, &s.Head.Part, &p.Ears.Part}
	meshes = append(meshes,
		Mesh{Name: "ear_right", Chain: headChain, Channel: ChannelEars, Box: rightEar},
		Mesh{Name: "ear_left", Chain: headChain, Channel: ChannelEars, Box: leftEar},
	)
	return meshes
}
