package scene

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"sync"

	"github.com/wricardo/golem/game/engine"
)

// ErrAssetNotFound is returned by sizers for unknown assets
var ErrAssetNotFound = errors.New("asset not found")

// Sizer reports the pixel size of an image asset
type Sizer interface {
	AssetSize(asset string) (engine.Size, error)
}

// SizerFunc adapts a function to Sizer
type SizerFunc func(asset string) (engine.Size, error)

func (f SizerFunc) AssetSize(asset string) (engine.Size, error) { return f(asset) }

// FixedSizer gives every asset the same size unless overridden
type FixedSizer struct {
	Size      engine.Size
	Overrides map[string]engine.Size
}

func (s FixedSizer) AssetSize(asset string) (engine.Size, error) {
	if size, ok := s.Overrides[asset]; ok {
		return size, nil
	}
	return s.Size, nil
}

// ImageSizer reads image headers from an asset directory and caches the
// result per asset
type ImageSizer struct {
	assets fs.FS
	mu     sync.Mutex
	cache  map[string]engine.Size
}

// NewImageSizer creates a sizer over assets
func NewImageSizer(assets fs.FS) *ImageSizer {
	return &ImageSizer{assets: assets, cache: make(map[string]engine.Size)}
}

func (s *ImageSizer) AssetSize(asset string) (engine.Size, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if size, ok := s.cache[asset]; ok {
		return size, nil
	}

	f, err := s.assets.Open(asset)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return engine.Size{}, fmt.Errorf("%w: %s", ErrAssetNotFound, asset)
		}
		return engine.Size{}, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return engine.Size{}, fmt.Errorf("decode %s: %w", asset, err)
	}
	size := engine.Size{W: float64(cfg.Width), H: float64(cfg.Height)}
	s.cache[asset] = size
	return size, nil
}

// DirSizer reads sprite sizes from the images in dir. When dir is not a
// directory every asset gets the fallback size, so worlds still load on a
// checkout without art.
func DirSizer(dir string, fallback engine.Size) Sizer {
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return NewImageSizer(os.DirFS(dir))
	}
	return FixedSizer{Size: fallback}
}
