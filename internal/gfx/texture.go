package gfx

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// TextureFormat is the pixel layout of uploaded data.
type TextureFormat int

const (
	FormatRGBA TextureFormat = iota
	FormatRGB
	FormatBGR
	FormatBGRA
	FormatRed
	FormatRG
)

// BytesPerPixel returns the size of one pixel in f.
func (f TextureFormat) BytesPerPixel() int {
	switch f {
	case FormatRGB, FormatBGR:
		return 3
	case FormatRed:
		return 1
	case FormatRG:
		return 2
	}
	return 4
}

type Filter int

const (
	FilterLinear Filter = iota
	FilterNearest
	// FilterTrilinear blends between mipmap levels when minifying.
	FilterTrilinear
)

type Wrap int

const (
	WrapClamp Wrap = iota
	WrapRepeat
	WrapMirror
)

// TextureOptions controls sampling and storage of a texture.
type TextureOptions struct {
	Format    TextureFormat
	MinFilter Filter
	MagFilter Filter
	WrapS     Wrap
	WrapT     Wrap
	Mipmaps   bool
	SRGB      bool
}

// DefaultTextureOptions returns clamped, linearly filtered RGBA with mipmaps.
func DefaultTextureOptions() TextureOptions {
	return TextureOptions{
		Format:    FormatRGBA,
		MinFilter: FilterLinear,
		MagFilter: FilterLinear,
		WrapS:     WrapClamp,
		WrapT:     WrapClamp,
		Mipmaps:   true,
	}
}

// TextureDesc is what a Device needs to allocate a texture.
type TextureDesc struct {
	Width  int
	Height int
	TextureOptions
}

// Texture is a 2D GPU texture.
type Texture struct {
	dev  Device
	id   uint32
	desc TextureDesc
}

// NewTexture allocates a width x height texture. pixels may be nil to leave
// it uninitialized; otherwise it must hold exactly one full image.
func NewTexture(dev Device, width, height int, opts TextureOptions, pixels []byte) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid texture size %dx%d", width, height)
	}
	if want := width * height * opts.Format.BytesPerPixel(); pixels != nil && len(pixels) != want {
		return nil, fmt.Errorf("texture data is %d bytes, want %d", len(pixels), want)
	}
	desc := TextureDesc{Width: width, Height: height, TextureOptions: opts}
	return &Texture{dev: dev, id: dev.CreateTexture(desc, pixels), desc: desc}, nil
}

// NewTextureFromImage uploads img as RGBA. opts.Format is ignored.
func NewTextureFromImage(dev Device, img image.Image, opts TextureOptions) (*Texture, error) {
	if img == nil {
		return nil, fmt.Errorf("nil image")
	}
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != rgba.Rect.Dx()*4 || rgba.Rect.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	}
	opts.Format = FormatRGBA
	return NewTexture(dev, rgba.Rect.Dx(), rgba.Rect.Dy(), opts, rgba.Pix)
}

// LoadTexture decodes a PNG, JPEG, GIF, BMP, TIFF or WebP file.
func LoadTexture(dev Device, path string, opts TextureOptions) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	t, err := NewTextureFromImage(dev, img, opts)
	if err != nil {
		return nil, fmt.Errorf("%s (%s): %w", path, format, err)
	}
	return t, nil
}

func (t *Texture) ID() uint32              { return t.id }
func (t *Texture) Width() int              { return t.desc.Width }
func (t *Texture) Height() int             { return t.desc.Height }
func (t *Texture) Options() TextureOptions { return t.desc.TextureOptions }

// SetData replaces the whole image.
func (t *Texture) SetData(pixels []byte) error {
	return t.SetSubData(0, 0, t.desc.Width, t.desc.Height, pixels)
}

// SetSubData replaces a rectangle of the image.
func (t *Texture) SetSubData(x, y, width, height int, pixels []byte) error {
	if x < 0 || y < 0 || width <= 0 || height <= 0 || x+width > t.desc.Width || y+height > t.desc.Height {
		return fmt.Errorf("region %d,%d %dx%d outside %dx%d texture", x, y, width, height, t.desc.Width, t.desc.Height)
	}
	if want := width * height * t.desc.Format.BytesPerPixel(); len(pixels) != want {
		return fmt.Errorf("texture data is %d bytes, want %d", len(pixels), want)
	}
	t.dev.UpdateTexture(t.id, t.desc, x, y, width, height, pixels)
	return nil
}

// Bind binds the texture to slot immediately, bypassing the renderer. Use
// Renderer.SetTexture to keep the binding ordered with recorded draws.
func (t *Texture) Bind(slot int) {
	t.dev.BindTexture(t.id, slot)
}

func (t *Texture) Release() {
	if t.id != 0 {
		t.dev.DeleteTexture(t.id)
		t.id = 0
	}
}

// RenderTarget is an offscreen framebuffer with a color texture.
type RenderTarget struct {
	Color  *Texture
	handle FramebufferHandle
}

// NewRenderTarget creates an RGBA render target, with a depth/stencil buffer
// when depth is set.
func NewRenderTarget(dev Device, width, height int, depth bool) (*RenderTarget, error) {
	opts := DefaultTextureOptions()
	opts.Mipmaps = false
	color, err := NewTexture(dev, width, height, opts, nil)
	if err != nil {
		return nil, err
	}
	h, err := dev.CreateFramebuffer(color.id, width, height, depth)
	if err != nil {
		color.Release()
		return nil, err
	}
	return &RenderTarget{Color: color, handle: h}, nil
}

// Bind directs rendering into the target.
func (rt *RenderTarget) Bind() {
	rt.Color.dev.BindFramebuffer(rt.handle)
}

// Unbind restores the window framebuffer.
func (rt *RenderTarget) Unbind() {
	rt.Color.dev.BindFramebuffer(FramebufferHandle{})
}

func (rt *RenderTarget) Release() {
	rt.Color.dev.DeleteFramebuffer(rt.handle)
	rt.Color.Release()
}
