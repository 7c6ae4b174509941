// Package sprite owns the set of loaded sprites. A sprite is a sheet of
// equally sized frames sliced from one canvas, with an origin point used
// as the rotation and placement pivot, and a lazily regenerated
// premultiplied-alpha copy of the canvas used by blending draws.
//
// Sheet filenames encode the frame grid: "bat_4.png" is 4 frames in one
// row, "tiles_10x10.png" is a 10 column by 10 row grid, and a name with
// no suffix is a single-frame sprite.
package sprite

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/avico/go-blit/blit/buffer"
	"github.com/avico/go-blit/blit/geom"
)

// NotFound is the sentinel id returned by failed lookups.
const NotFound = -1

// ErrLoad is returned when a sheet cannot be decoded or registered.
var ErrLoad = errors.New("sprite: load failed")

// Sprite holds one registered sprite sheet. All fields describing the
// grid are fixed at registration; the canvas may be replaced in place.
type Sprite struct {
	ID         int
	Name       string
	Width      int // width of a single frame
	Height     int // height of a single frame
	HCount     int
	VCount     int
	TotalCount int
	OriginX    int
	OriginY    int

	canvas  *buffer.Buffer
	premult *buffer.Buffer
	dirty   bool // canvas changed since premult was generated
}

// Canvas returns a read-only view of the sprite's full sheet.
func (s *Sprite) Canvas() *buffer.Buffer { return s.canvas }

// Premult returns the premultiplied-alpha sheet, regenerating it first
// if the canvas changed since the last generation.
func (s *Sprite) Premult() *buffer.Buffer {
	if s.dirty || s.premult == nil {
		s.regenerate()
	}
	return s.premult
}

func (s *Sprite) regenerate() {
	s.premult = s.canvas.Clone()
	s.premult.Premultiply()
	s.dirty = false
}

// FrameOrigin returns the bottom-left corner of the given frame within
// the sheet, or false when the index is out of range.
func (s *Sprite) FrameOrigin(frame int) (x, y int, ok bool) {
	if frame < 0 || frame >= s.TotalCount {
		return 0, 0, false
	}
	col := frame % s.HCount
	row := frame / s.HCount
	// Frame 0 is the top-left cell of the sheet image; rows are stored
	// bottom-up, so row 0 of the grid is the topmost band of the canvas.
	bandBottom := (s.VCount - 1 - row) * s.Height
	return col * s.Width, bandBottom, true
}

// Registry owns all registered sprites. Callers hold ids, never sprites.
type Registry struct {
	sprites []*Sprite
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// ParseGridName splits a filename like "bat_4.png" or "tiles_10x10.png"
// into the root name and frame grid. Filenames without a trailing grid
// token describe a single-frame sprite.
func ParseGridName(filename string) (name string, hCount, vCount int) {
	name = filename
	if dot := strings.LastIndexByte(name, '.'); dot >= 0 {
		name = name[:dot]
	}
	if slash := strings.LastIndexAny(name, `/\`); slash >= 0 {
		name = name[slash+1:]
	}
	hCount, vCount = 1, 1

	under := strings.LastIndexByte(name, '_')
	if under < 0 || under == len(name)-1 {
		return name, hCount, vCount
	}
	token := name[under+1:]

	if x := strings.IndexByte(token, 'x'); x > 0 {
		h, errH := strconv.Atoi(token[:x])
		v, errV := strconv.Atoi(token[x+1:])
		if errH == nil && errV == nil && h > 0 && v > 0 {
			return name[:under], h, v
		}
		return name, hCount, vCount
	}
	if n, err := strconv.Atoi(token); err == nil && n > 0 {
		return name[:under], n, 1
	}
	return name, hCount, vCount
}

// LoadSheet decodes an image via the supplied decoder, derives the frame
// grid from the filename, and registers the sprite. Returns the new id.
func (r *Registry) LoadSheet(decode func(string) (*buffer.Buffer, error), path string) (int, error) {
	canvas, err := decode(path)
	if err != nil {
		return NotFound, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	name, hCount, vCount := ParseGridName(path)
	return r.add(strings.ToLower(name), canvas, hCount, vCount)
}

// Add registers a sprite from caller-supplied pixel data. The registry
// takes ownership of the buffer; the caller must not mutate it after.
func (r *Registry) Add(name string, canvas *buffer.Buffer, hCount, vCount int) (int, error) {
	return r.add(strings.ToLower(name), canvas, hCount, vCount)
}

func (r *Registry) add(name string, canvas *buffer.Buffer, hCount, vCount int) (int, error) {
	if hCount <= 0 || vCount <= 0 {
		return NotFound, fmt.Errorf("%w: %s: invalid grid %dx%d", ErrLoad, name, hCount, vCount)
	}
	if canvas.Width()%hCount != 0 || canvas.Height()%vCount != 0 {
		return NotFound, fmt.Errorf("%w: %s: canvas %dx%d not divisible by grid %dx%d",
			ErrLoad, name, canvas.Width(), canvas.Height(), hCount, vCount)
	}
	s := &Sprite{
		ID:         len(r.sprites),
		Name:       name,
		Width:      canvas.Width() / hCount,
		Height:     canvas.Height() / vCount,
		HCount:     hCount,
		VCount:     vCount,
		TotalCount: hCount * vCount,
		canvas:     canvas,
		dirty:      true,
	}
	r.sprites = append(r.sprites, s)
	return s.ID, nil
}

// UpdateCanvas replaces a sprite's canvas in place, keeping its id and
// origin. The registry takes ownership of the new buffer; disposal of
// whatever the caller previously held is the caller's responsibility.
func (r *Registry) UpdateCanvas(id int, canvas *buffer.Buffer, hCount, vCount int) error {
	s := r.Get(id)
	if s == nil {
		return fmt.Errorf("%w: no sprite with id %d", ErrLoad, id)
	}
	if hCount <= 0 || vCount <= 0 || canvas.Width()%hCount != 0 || canvas.Height()%vCount != 0 {
		return fmt.Errorf("%w: %s: canvas %dx%d not divisible by grid %dx%d",
			ErrLoad, s.Name, canvas.Width(), canvas.Height(), hCount, vCount)
	}
	s.canvas = canvas
	s.Width = canvas.Width() / hCount
	s.Height = canvas.Height() / vCount
	s.HCount = hCount
	s.VCount = vCount
	s.TotalCount = hCount * vCount
	s.dirty = true
	return nil
}

// RegeneratePremult recomputes the premultiplied buffer from the current
// canvas immediately rather than waiting for the next blending draw.
func (r *Registry) RegeneratePremult(id int) error {
	s := r.Get(id)
	if s == nil {
		return fmt.Errorf("%w: no sprite with id %d", ErrLoad, id)
	}
	s.regenerate()
	return nil
}

// Get returns the sprite with the given id, or nil if out of range.
func (r *Registry) Get(id int) *Sprite {
	if id < 0 || id >= len(r.sprites) {
		return nil
	}
	return r.sprites[id]
}

// FindID returns the id of the first sprite whose name contains the
// given text (case-insensitive), or NotFound.
func (r *Registry) FindID(name string) int {
	name = strings.ToLower(name)
	for _, s := range r.sprites {
		if strings.Contains(s.Name, name) {
			return s.ID
		}
	}
	return NotFound
}

// Count returns the number of registered sprites.
func (r *Registry) Count() int { return len(r.sprites) }

// Origin returns a sprite's origin offset from its bottom-left corner.
// Unknown ids return the zero point.
func (r *Registry) Origin(id int) geom.Point {
	s := r.Get(id)
	if s == nil {
		return geom.Point{}
	}
	return geom.Pt(float32(s.OriginX), float32(s.OriginY))
}

// SetOrigin sets a sprite's origin, either absolutely or relative to the
// current origin.
func (r *Registry) SetOrigin(id, x, y int, relative bool) {
	s := r.Get(id)
	if s == nil {
		return
	}
	if relative {
		s.OriginX += x
		s.OriginY += y
	} else {
		s.OriginX = x
		s.OriginY = y
	}
}

// SetOrigins applies SetOrigin to every sprite whose name contains the
// given text.
func (r *Registry) SetOrigins(name string, x, y int, relative bool) {
	name = strings.ToLower(name)
	for _, s := range r.sprites {
		if strings.Contains(s.Name, name) {
			r.SetOrigin(s.ID, x, y, relative)
		}
	}
}

// CentreOrigin moves a sprite's origin to the centre of a frame.
func (r *Registry) CentreOrigin(id int) {
	s := r.Get(id)
	if s == nil {
		return
	}
	s.OriginX = s.Width / 2
	s.OriginY = s.Height / 2
}

// CentreAllOrigins centres the origin of every registered sprite.
func (r *Registry) CentreAllOrigins() {
	for _, s := range r.sprites {
		r.CentreOrigin(s.ID)
	}
}

// FlipOriginVertically remaps an origin measured from the top edge to
// one measured from the bottom, for legacy top-left-origin content.
func (r *Registry) FlipOriginVertically(id int) {
	s := r.Get(id)
	if s == nil {
		return
	}
	s.OriginY = s.Height - s.OriginY
}

// FlipAllOriginsVertically applies FlipOriginVertically to all sprites.
func (r *Registry) FlipAllOriginsVertically() {
	for _, s := range r.sprites {
		r.FlipOriginVertically(s.ID)
	}
}

// Tint multiplies the sprite's canvas by the given colour channels and
// marks the premultiplied copy stale. Tinting with white restores
// nothing; callers wanting the original colours must update the canvas.
func (r *Registry) Tint(id int, red, green, blue uint8) {
	s := r.Get(id)
	if s == nil {
		return
	}
	pix := s.canvas.Pix()
	for i, p := range pix {
		pix[i] = buffer.ARGB(
			p.A(),
			uint8(uint32(p.R())*uint32(red)/255),
			uint8(uint32(p.G())*uint32(green)/255),
			uint8(uint32(p.B())*uint32(blue)/255),
		)
	}
	s.dirty = true
}
