// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// ModelVertexShader transforms the player boxes.
//
//go:embed model.vert
var ModelVertexShader string

// ModelFragmentShader shades the player boxes with the ambient and camera lights.
//
//go:embed model.frag
var ModelFragmentShader string

// QuadVertexShader emits a fullscreen triangle without vertex buffers.
//
//go:embed quad.vert
var QuadVertexShader string

// BackgroundFragmentShader stretches a texture over the viewport.
//
//go:embed background.frag
var BackgroundFragmentShader string

// PanoramaFragmentShader samples an equirectangular panorama by view direction.
//
//go:embed panorama.frag
var PanoramaFragmentShader string

// FXAAFragmentShader resolves the scene target onto the screen.
//
//go:embed fxaa.frag
var FXAAFragmentShader string

// SpriteVertexShader places a camera-facing quad.
//
//go:embed sprite.vert
var SpriteVertexShader string

// SpriteFragmentShader draws the sprite texture.
//
//go:embed sprite.frag
var SpriteFragmentShader string
