// Package texture loads skin, cape and ears images and lays them out on the
// canvases the player model samples.
package texture

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // gif sources
	_ "image/jpeg" // jpeg sources
	_ "image/png"  // png sources
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // bmp sources
	_ "golang.org/x/image/webp" // webp sources
)

// Source is either a ready pixel buffer or a reference that has to be fetched
// and decoded first.
type Source struct {
	img image.Image
	ref string
}

// FromImage wraps a decoded image.
func FromImage(img image.Image) *Source { return &Source{img: img} }

// FromRef wraps an http(s) URL, a file:// URL or a filesystem path.
func FromRef(ref string) *Source { return &Source{ref: ref} }

// IsReady reports whether the source can be drawn without decoding.
func (s *Source) IsReady() bool { return s != nil && s.img != nil }

// Image returns the pixel buffer of a ready source.
func (s *Source) Image() image.Image { return s.img }

// Ref returns the reference of a remote source.
func (s *Source) Ref() string { return s.ref }

func (s *Source) String() string {
	switch {
	case s == nil:
		return "<nil>"
	case s.img != nil:
		b := s.img.Bounds()
		return fmt.Sprintf("image(%dx%d)", b.Dx(), b.Dy())
	default:
		return s.ref
	}
}

// Decoder turns a reference into an image.
type Decoder interface {
	Decode(ctx context.Context, ref string) (image.Image, error)
}

// maxSourceSize bounds how much a single texture download may read.
const maxSourceSize = 16 << 20

// DefaultDecoder fetches URLs over HTTP and everything else from disk.
type DefaultDecoder struct {
	Client *http.Client
}

// Decode implements Decoder.
func (d *DefaultDecoder) Decode(ctx context.Context, ref string) (image.Image, error) {
	data, err := d.read(ctx, ref)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(stripQuery(ref)), ".tga") {
		return DecodeTGA(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", ref, err)
	}
	return img, nil
}

func (d *DefaultDecoder) read(ctx context.Context, ref string) ([]byte, error) {
	u, err := url.Parse(ref)
	if err == nil {
		switch u.Scheme {
		case "http", "https":
			return d.fetch(ctx, ref)
		case "file":
			return readFile(ctx, u.Path)
		}
	}
	return readFile(ctx, ref)
}

func (d *DefaultDecoder) fetch(ctx context.Context, ref string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", ref, err)
	}
	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", ref, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: %s", ref, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSourceSize))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ref, err)
	}
	return data, nil
}

func readFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func stripQuery(ref string) string {
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		return ref[:i]
	}
	return ref
}
