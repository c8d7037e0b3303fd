package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/png" // register PNG decoder
	"strconv"
	"strings"
	"sync"

	_ "golang.org/x/image/bmp" // register BMP decoder
)

// MissingName is the logical name of the placeholder texture.
const MissingName = "missing_texture"

// TextureRoot is the pack directory holding block textures.
const TextureRoot = "assets/minecraft/textures/"

// ErrBadTileSpec is returned for malformed "name[x,y]" tile references.
var ErrBadTileSpec = errors.New("malformed tile reference")

// Loader reads raw texture files from a resource pack stack.
type Loader interface {
	Load(path string) ([]byte, error)
}

// Atlas maps logical texture names to textures. Textures are decoded on first
// use; the cache is safe for concurrent use.
type Atlas struct {
	src     Loader
	version PackVersion
	missing *Texture

	entries sync.Map // name -> *entry
}

type entry struct {
	once sync.Once
	tex  *Texture
	err  error
}

// NewAtlas creates an atlas over src. A nil src serves only registered textures.
func NewAtlas(src Loader, version PackVersion) *Atlas {
	a := &Atlas{
		src:     src,
		version: version,
		missing: &Texture{Name: MissingName, Width: 16, Height: 16},
	}
	a.Register(a.missing)
	return a
}

// Version returns the pack layout of this atlas.
func (a *Atlas) Version() PackVersion {
	return a.version
}

// Register adds a prebuilt texture under its name, replacing lazy loading.
func (a *Atlas) Register(tex *Texture) {
	e := &entry{tex: tex}
	e.once.Do(func() {})
	a.entries.Store(tex.Name, e)
}

// Texture returns the texture with the given logical name.
func (a *Atlas) Texture(name string) (*Texture, error) {
	name = canonical(name)

	v, _ := a.entries.LoadOrStore(name, &entry{})
	e := v.(*entry)
	e.once.Do(func() {
		e.tex, e.err = a.load(name)
	})
	return e.tex, e.err
}

// SubTexture resolves a texture reference to a region. References are either a
// logical name ("block/stone") or a tile of a sheet ("terrain.png[3,1]").
// Animated textures resolve to their first frame.
func (a *Atlas) SubTexture(ref string) (SubTexture, error) {
	name, tx, ty, tiled, err := parseTileRef(ref)
	if err != nil {
		return SubTexture{}, err
	}

	tex, err := a.Texture(name)
	if err != nil {
		return SubTexture{}, err
	}

	sub := Whole(tex, a.version)
	if frames := tex.Frames(); frames > 1 {
		sub.V1 = 1 / float32(frames)
	}
	if tiled {
		sub = sub.Tile(tx, ty, 16)
	}
	return sub, nil
}

// SetMissing replaces the placeholder with a pack texture. It must be called
// before any SubTexture is handed out.
func (a *Atlas) SetMissing(tex *Texture) {
	m := *tex
	m.Name = MissingName
	a.missing = &m
	a.Register(a.missing)
}

// Missing returns the placeholder region.
func (a *Atlas) Missing() SubTexture {
	return Whole(a.missing, a.version)
}

// Loaded returns the number of textures resolved so far, placeholder included.
func (a *Atlas) Loaded() int {
	n := 0
	a.entries.Range(func(_, v any) bool {
		if v.(*entry).tex != nil {
			n++
		}
		return true
	})
	return n
}

func (a *Atlas) load(name string) (*Texture, error) {
	if a.src == nil {
		return nil, fmt.Errorf("texture %s: no source", name)
	}

	path := name
	if !strings.HasSuffix(path, ".png") && !strings.HasSuffix(path, ".bmp") {
		path = TextureRoot + path + ".png"
	}

	data, err := a.src.Load(path)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", name, err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding texture %s: %w", name, err)
	}

	transparent, translucent := Classify(img)
	b := img.Bounds()
	return &Texture{
		Name:        name,
		Width:       b.Dx(),
		Height:      b.Dy(),
		Transparent: transparent,
		Translucent: translucent,
	}, nil
}

// canonical strips the default namespace from a texture name.
func canonical(name string) string {
	return strings.TrimPrefix(name, "minecraft:")
}

func parseTileRef(ref string) (name string, x, y int, tiled bool, err error) {
	open := strings.IndexByte(ref, '[')
	if open < 0 {
		return ref, 0, 0, false, nil
	}
	if !strings.HasSuffix(ref, "]") {
		return "", 0, 0, false, fmt.Errorf("%w: %s", ErrBadTileSpec, ref)
	}

	parts := strings.Split(ref[open+1:len(ref)-1], ",")
	if len(parts) != 2 {
		return "", 0, 0, false, fmt.Errorf("%w: %s", ErrBadTileSpec, ref)
	}
	x, errX := strconv.Atoi(strings.TrimSpace(parts[0]))
	y, errY := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errX != nil || errY != nil || x < 0 || x > 15 || y < 0 || y > 15 {
		return "", 0, 0, false, fmt.Errorf("%w: %s", ErrBadTileSpec, ref)
	}
	return ref[:open], x, y, true, nil
}
