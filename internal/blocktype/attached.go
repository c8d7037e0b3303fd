package blocktype

import (
	"github.com/Faultbox/blockmesh/internal/emit"
	"github.com/Faultbox/blockmesh/internal/geometry"
	"github.com/Faultbox/blockmesh/internal/texture"
	"github.com/Faultbox/blockmesh/internal/world"
)

// Shapes in this file are modelled facing south, against the north wall or on
// the floor, and turned by yawFor into place.

// Torch stands on the floor or leans out of a wall.
type Torch struct {
	base
	tex texture.SubTexture
}

func newTorch(s kindArgs) BlockType {
	return &Torch{base: s.base, tex: s.b.required(s.def, "texture")}
}

func torchFacing(d int) string {
	switch d {
	case 1:
		return "east"
	case 2:
		return "west"
	case 3:
		return "south"
	case 4:
		return "north"
	}
	return "up"
}

func (t *Torch) Emit(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	f := facing(cellAt(ctx, x, y, z), torchFacing)
	b := px(7, 0, 7, 9, 10, 9)
	if f != "up" {
		b = px(7, 3, 1, 9, 13, 3).turned(yawFor(f))
	}
	newPainter(ctx, mode, x, y, z, geometry.AlphaTest).box(b, same(t.tex))
}

// Ladder is a flat quad one pixel off the wall behind it.
type Ladder struct {
	base
	tex texture.SubTexture
}

func newLadder(s kindArgs) BlockType {
	return &Ladder{base: s.base, tex: s.b.required(s.def, "texture")}
}

func (t *Ladder) Emit(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	f := facing(cellAt(ctx, x, y, z), legacyFacing)
	sd, ok := sideByName[f]
	if !ok || sd == up || sd == down {
		sd = south
	}
	p := newPainter(ctx, mode, x, y, z, geometry.AlphaTest)
	p.quad(wallQuad(opposite(sd), 1.0/16), t.tex, sd.light(), true)
}

// attachment decodes where a button or lever sits: "wall", "floor" or
// "ceiling", plus the direction it faces.
func attachment(c world.Cell) (face, dir string) {
	if !c.IsLegacy() {
		face = c.Props.Get("face")
		if face == "" {
			face = "wall"
		}
		return face, c.Props.Get("facing")
	}
	switch d := int(c.Data & 7); d {
	case 0:
		return "ceiling", "south"
	case 5:
		return "floor", "south"
	case 6:
		return "floor", "east"
	case 7:
		return "ceiling", "east"
	default:
		return "wall", torchFacing(d)
	}
}

// Button is a small box on a wall, floor or ceiling.
type Button struct {
	base
	tex texture.SubTexture
}

func newButton(s kindArgs) BlockType {
	return &Button{base: s.base, tex: s.b.required(s.def, "texture")}
}

func (t *Button) Emit(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	self := cellAt(ctx, x, y, z)
	depth := float32(2)
	if self.Props.Is("powered", "true") || (self.IsLegacy() && self.Data&8 != 0) {
		depth = 1
	}

	face, dir := attachment(self)
	var b box
	switch face {
	case "floor":
		b = px(5, 0, 6, 11, depth, 10)
	case "ceiling":
		b = px(5, 16-depth, 6, 11, 16, 10)
	default:
		b = px(5, 6, 0, 11, 10, depth)
	}
	newPainter(ctx, mode, x, y, z, geometry.Solid).box(b.turned(yawFor(dir)), same(t.tex))
}

// Lever is a base plate with a stick, cut out of the lever texture by pixel.
type Lever struct {
	base
	lever, plate texture.SubTexture
}

func newLever(s kindArgs) BlockType {
	return &Lever{base: s.base, lever: s.b.required(s.def, "lever"), plate: s.b.required(s.def, "base")}
}

func (t *Lever) Emit(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	face, dir := attachment(cellAt(ctx, x, y, z))
	var plate, stick box
	switch face {
	case "floor":
		plate, stick = px(5, 0, 4, 11, 3, 12), px(7, 3, 7, 9, 11, 9)
	case "ceiling":
		plate, stick = px(5, 13, 4, 11, 16, 12), px(7, 5, 7, 9, 13, 9)
	default:
		plate, stick = px(5, 4, 0, 11, 12, 3), px(7, 7, 3, 9, 9, 11)
	}
	rot := yawFor(dir)

	p := newPainter(ctx, mode, x, y, z, geometry.Solid)
	p.box(plate.turned(rot), same(t.plate))

	s := newPainter(ctx, mode, x, y, z, geometry.AlphaTest)
	s.raw = true
	tex := same(pixels(t.lever, 7, 6, 9, 16))
	tex[up] = pixels(t.lever, 7, 6, 9, 8)
	tex[down] = tex[up]
	s.box(stick.turned(rot), tex)
}

// Door is one half of a three pixel thick door. The halves share state: the
// lower one holds facing and open, the upper one the hinge side.
type Door struct {
	base
	top, bottom texture.SubTexture
}

func newDoor(s kindArgs) BlockType {
	return &Door{base: s.base, top: s.b.required(s.def, "top"), bottom: s.b.required(s.def, "bottom")}
}

const doorThickness = 3

type doorState struct {
	upper, open, rightHinge bool
	facing                  string
}

func doorFacing(d int) string {
	return [...]string{"east", "south", "west", "north"}[d&3]
}

func readDoor(ctx *emit.Context, x, y, z int) doorState {
	self := cellAt(ctx, x, y, z)
	if !self.IsLegacy() {
		return doorState{
			upper:      self.Props.Is("half", "upper"),
			open:       self.Props.Is("open", "true"),
			rightHinge: self.Props.Is("hinge", "right"),
			facing:     self.Props.Get("facing"),
		}
	}

	st := doorState{upper: self.Data&8 != 0}
	lower, upper := self, self
	if st.upper {
		lower = cellAt(ctx, x, y-1, z)
	} else {
		upper = cellAt(ctx, x, y+1, z)
	}
	st.facing = doorFacing(int(lower.Data))
	st.open = lower.Data&4 != 0
	st.rightHinge = upper.Data&8 != 0 && upper.Data&1 != 0
	return st
}

func (t *Door) Emit(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	st := readDoor(ctx, x, y, z)
	rots := []geometry.Rotation{yawFor(st.facing)}
	if st.open {
		swing := float32(90)
		if st.rightHinge {
			swing = -90
		}
		rots = append(rots, geometry.Yaw(swing))
	}

	tex := t.bottom
	if st.upper {
		tex = t.top
	}
	b := px(0, 0, 0, 16, 16, doorThickness).turned(rots...)
	newPainter(ctx, mode, x, y, z, geometry.AlphaTest).box(b, same(tex))
}

// TrapDoor lies flat in the lower or upper half, or stands against a wall
// when open.
type TrapDoor struct {
	base
	tex texture.SubTexture
}

func newTrapDoor(s kindArgs) BlockType {
	return &TrapDoor{base: s.base, tex: s.b.required(s.def, "texture")}
}

func trapDoorFacing(d int) string {
	return [...]string{"north", "south", "west", "east"}[d&3]
}

func (t *TrapDoor) Emit(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	self := cellAt(ctx, x, y, z)
	f := facing(self, trapDoorFacing)
	open := self.Props.Is("open", "true") || (self.IsLegacy() && self.Data&4 != 0)
	top := self.Props.Is("half", "top") || (self.IsLegacy() && self.Data&8 != 0)

	var b box
	switch {
	case open:
		b = px(0, 0, 0, 16, 16, doorThickness).turned(yawFor(f))
	case top:
		b = px(0, 16-doorThickness, 0, 16, 16, 16)
	default:
		b = px(0, 0, 0, 16, doorThickness, 16)
	}
	newPainter(ctx, mode, x, y, z, geometry.AlphaTest).box(b, same(t.tex))
}

// Stairs are a half slab with a raised back half; inner and outer corner
// shapes are drawn straight.
type Stairs struct {
	base
	tex texture.SubTexture
}

func newStairs(s kindArgs) BlockType {
	return &Stairs{base: s.base, tex: s.b.required(s.def, "texture")}
}

func stairsFacing(d int) string {
	return [...]string{"east", "west", "south", "north"}[d&3]
}

func (t *Stairs) Emit(ctx *emit.Context, x, y, z int, mode emit.Mode) {
	self := cellAt(ctx, x, y, z)
	rot := yawFor(facing(self, stairsFacing))

	slab, step := px(0, 0, 0, 16, 8, 16), px(0, 8, 8, 16, 16, 16)
	if self.Props.Is("half", "top") || (self.IsLegacy() && self.Data&4 != 0) {
		slab, step = px(0, 8, 0, 16, 16, 16), px(0, 0, 8, 16, 8, 16)
	}
	p := newPainter(ctx, mode, x, y, z, geometry.Solid)
	p.box(slab, same(t.tex))
	p.box(step.turned(rot), same(t.tex))
}
