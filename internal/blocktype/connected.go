package blocktype

import (
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/blockmesh/internal/emit"
	"github.com/Faultbox/blockmesh/internal/geometry"
	"github.com/Faultbox/blockmesh/internal/lighting"
	"github.com/Faultbox/blockmesh/internal/texture"
	"github.com/Faultbox/blockmesh/internal/world"
)

var horizontal = [...]struct {
	side side
	prop string
}{
	{north, "north"},
	{south, "south"},
	{east, "east"},
	{west, "west"},
}

// links reports, per horizontal side, whether a connecting block joins the
// cell. Modern cells carry the answer in their properties; legacy cells ask
// accept about each neighbour.
func links(ctx *emit.Context, mode emit.Mode, x, y, z int, accept func(n world.Cell, sd side) bool) [6]bool {
	var out [6]bool
	self := cellAt(ctx, x, y, z)
	for _, h := range horizontal {
		if !self.IsLegacy() {
			v := self.Props.Get(h.prop)
			out[h.side] = v != "" && v != "false" && v != "none"
			continue
		}
		o := sideOffsets[h.side]
		n, ok := ctx.Neighbor(mode, x+o[0], y+o[1], z+o[2])
		if !ok || n.IsAir() {
			continue
		}
		out[h.side] = ctx.IsOpaque(mode, x+o[0], y+o[1], z+o[2]) || accept(n, h.side)
	}
	return out
}

// arm returns the box running from the centre post towards side sd, given
// the half width and the height range in pixels.
func arm(sd side, half, y0, y1, reach float32) box {
	lo, hi := 8-half, 8+half
	switch sd {
	case north:
		return px(lo, y0, 0, hi, y1, reach)
	case south:
		return px(lo, y0, 16-reach, hi, y1, 16)
	case east:
		return px(16-reach, y0, lo, 16, y1, hi)
	default:
		return px(0, y0, lo, reach, y1, hi)
	}
}

// Fence is a post with two rails to each connecting neighbour.
type Fence struct {
	base
	tex texture.SubTexture
	reg *Registry
}

func newFence(s kindArgs) BlockType {
	return &Fence{base: s.base, tex: s.b.required(s.def, "texture"), reg: s.reg}
}

func (t *Fence) accepts(n world.Cell, _ side) bool {
	switch t.reg.Lookup(n).(type) {
	case *Fence, *FenceGate:
		return true
	}
	return false
}

func (t *Fence) Emit(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	p := newPainter(ctx, mode, x, y, z, geometry.Solid)
	tex := same(t.tex)
	p.box(px(6, 0, 6, 10, 16, 10), tex)

	l := links(ctx, mode, x, y, z, t.accepts)
	for _, h := range horizontal {
		if l[h.side] {
			p.box(arm(h.side, 1, 12, 15, 6), tex)
			p.box(arm(h.side, 1, 6, 9, 6), tex)
		}
	}
}

// FenceGate is two posts with rails between them, swung inwards when open.
type FenceGate struct {
	base
	tex texture.SubTexture
}

func newFenceGate(s kindArgs) BlockType {
	return &FenceGate{base: s.base, tex: s.b.required(s.def, "texture")}
}

func gateFacing(d int) string {
	return [...]string{"south", "west", "north", "east"}[d&3]
}

func (t *FenceGate) Emit(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	self := cellAt(ctx, x, y, z)
	rot := yawFor(facing(self, gateFacing))
	open := self.Props.Is("open", "true") || (self.IsLegacy() && self.Data&4 != 0)

	parts := []box{px(0, 5, 7, 2, 16, 9), px(14, 5, 7, 16, 16, 9)}
	if open {
		parts = append(parts,
			px(0, 6, 9, 2, 9, 15), px(0, 12, 9, 2, 15, 15),
			px(14, 6, 9, 16, 9, 15), px(14, 12, 9, 16, 15, 15))
	} else {
		parts = append(parts, px(2, 6, 7, 14, 9, 9), px(2, 12, 7, 14, 15, 9))
	}

	p := newPainter(ctx, mode, x, y, z, geometry.Solid)
	for _, b := range parts {
		p.box(b.turned(rot), same(t.tex))
	}
}

// GlassPane is a thin post with panels to connecting neighbours. A pane with
// no neighbours shows a full cross.
type GlassPane struct {
	base
	tex texture.SubTexture
	reg *Registry
}

func newGlassPane(s kindArgs) BlockType {
	return &GlassPane{base: s.base, tex: s.b.required(s.def, "texture"), reg: s.reg}
}

func (t *GlassPane) accepts(n world.Cell, _ side) bool {
	switch nt := t.reg.Lookup(n).(type) {
	case *GlassPane:
		return true
	case *Solid:
		return nt.hides != nil
	}
	return false
}

func (t *GlassPane) Emit(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	self := cellAt(ctx, x, y, z)
	p := newPainter(ctx, mode, x, y, z, geometry.AlphaTest)
	p.hides = func(n world.Cell) bool { return sameBlock(self, n) }
	tex := same(t.tex)
	p.box(px(7, 0, 7, 9, 16, 9), tex)

	l := links(ctx, mode, x, y, z, t.accepts)
	none := !l[north] && !l[south] && !l[east] && !l[west]
	for _, h := range horizontal {
		if l[h.side] || none {
			p.box(arm(h.side, 1, 0, 16, 7), tex)
		}
	}
}

// Wall is a thick post with lower arms to connecting neighbours.
type Wall struct {
	base
	tex texture.SubTexture
	reg *Registry
}

func newWall(s kindArgs) BlockType {
	return &Wall{base: s.base, tex: s.b.required(s.def, "texture"), reg: s.reg}
}

func (t *Wall) accepts(n world.Cell, _ side) bool {
	switch t.reg.Lookup(n).(type) {
	case *Wall, *FenceGate:
		return true
	}
	return false
}

func (t *Wall) Emit(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	p := newPainter(ctx, mode, x, y, z, geometry.Solid)
	tex := same(t.tex)
	p.box(px(4, 0, 4, 12, 16, 12), tex)

	l := links(ctx, mode, x, y, z, t.accepts)
	for _, h := range horizontal {
		if l[h.side] {
			p.box(arm(h.side, 3, 0, 13, 4), tex)
		}
	}
}

// Tracks are flat or sloped rails. Powered, detector and activator rails are
// straight only and keep their powered bit in 0x8.
type Tracks struct {
	base
	straight, corner, powered texture.SubTexture
	straightOnly              bool
}

func newTracks(s kindArgs) BlockType {
	return &Tracks{
		base:         s.base,
		straight:     s.b.required(s.def, "straight"),
		corner:       s.b.slot(s.def, "corner"),
		powered:      s.b.slot(s.def, "powered"),
		straightOnly: s.b.flag(s.def, "isStraightOnly"),
	}
}

var railShapes = [...]string{
	"north_south", "east_west",
	"ascending_east", "ascending_west", "ascending_north", "ascending_south",
	"south_east", "south_west", "north_west", "north_east",
}

const railHeight = 1.0 / 16

// railCorners turns the corner texture, which joins south and east.
var railCorners = map[string]geometry.Rotation{
	"south_east": geometry.Yaw(0),
	"south_west": geometry.Yaw(90),
	"north_west": geometry.Yaw(180),
	"north_east": geometry.Yaw(270),
}

func (t *Tracks) Emit(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	self := cellAt(ctx, x, y, z)
	shape := self.Props.Get("shape")
	powered := self.Props.Is("powered", "true")
	if self.IsLegacy() {
		d := int(self.Data)
		if t.straightOnly {
			powered = d&8 != 0
			d &= 7
		}
		if d < len(railShapes) {
			shape = railShapes[d]
		}
	}

	tex := t.straight
	if powered && t.powered.Valid() {
		tex = t.powered
	}

	flat := box{min: mgl32.Vec3{0, railHeight, 0}, max: mgl32.Vec3{1, railHeight, 1}}.corners(up)
	var c [4]mgl32.Vec3
	switch shape {
	case "east_west":
		c = turnQuad(flat, geometry.Yaw(90))
	case "ascending_north", "ascending_east", "ascending_south", "ascending_west":
		// Rising towards the south before turning.
		slope := [4]mgl32.Vec3{{0, railHeight, 0}, {1, railHeight, 0}, {1, 1 + railHeight, 1}, {0, 1 + railHeight, 1}}
		c = turnQuad(slope, yawFor(shape[len("ascending_"):]))
	case "south_east", "south_west", "north_west", "north_east":
		if t.straightOnly || !t.corner.Valid() {
			c = flat
			break
		}
		tex = t.corner
		c = turnQuad(flat, railCorners[shape])
	default:
		c = flat
	}
	newPainter(ctx, mode, x, y, z, geometry.AlphaTest).quad(c, tex, lighting.FaceTop, true)
}

// RedstoneWire is dust on the floor, drawn as a line when it only runs one
// way and as a junction otherwise. Its red deepens with power.
type RedstoneWire struct {
	base
	offJunction, onJunction texture.SubTexture
	offLine, onLine         texture.SubTexture
}

func newRedstoneWire(s kindArgs) BlockType {
	return &RedstoneWire{
		base:        s.base,
		offJunction: s.b.required(s.def, "offJunction"),
		onJunction:  s.b.slot(s.def, "onJunction", "offJunction"),
		offLine:     s.b.slot(s.def, "offLine", "offJunction"),
		onLine:      s.b.slot(s.def, "onLine", "offLine", "offJunction"),
	}
}

func (t *RedstoneWire) accepts(ctx *emit.Context, x, y, z int) func(world.Cell, side) bool {
	self := cellAt(ctx, x, y, z)
	return func(n world.Cell, sd side) bool {
		if sameBlock(self, n) {
			return true
		}
		// Wire one step down the slope.
		o := sideOffsets[sd]
		below, ok := ctx.Cell(x+o[0], y-1, z+o[2])
		return ok && sameBlock(self, below)
	}
}

func wirePower(c world.Cell) int {
	if v := c.Props.Get("power"); v != "" {
		n, _ := strconv.Atoi(v)
		return n
	}
	return int(c.Data)
}

func (t *RedstoneWire) Emit(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	self := cellAt(ctx, x, y, z)
	power := wirePower(self)
	l := links(ctx, mode, x, y, z, t.accepts(ctx, x, y, z))
	ns, ew := l[north] || l[south], l[east] || l[west]

	junction, line := t.offJunction, t.offLine
	if power > 0 {
		junction, line = t.onJunction, t.onLine
	}

	p := newPainter(ctx, mode, x, y, z, geometry.AlphaTest)
	p.shade = colorShade(colorful.Color{R: 0.3 + 0.7*float64(power)/15, G: 0.05, B: 0.05})
	flat := wallQuad(down, 1.0/64)
	switch {
	case ns && !ew:
		p.quad(flat, line, lighting.FaceTop, false)
	case ew && !ns:
		p.quad(turnQuad(flat, geometry.Yaw(90)), line, lighting.FaceTop, false)
	default:
		p.quad(flat, junction, lighting.FaceTop, false)
	}
}
