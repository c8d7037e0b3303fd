package blocktype

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/blockmesh/internal/emit"
	"github.com/Faultbox/blockmesh/internal/logger"
	"github.com/Faultbox/blockmesh/internal/texture"
	"github.com/Faultbox/blockmesh/internal/world"
	"github.com/Faultbox/blockmesh/pkg/formats"
)

// ModelEmitter draws a cell through the block model registry. Types that only
// add geometry on top of a modern model, such as the beacon beam, use it.
type ModelEmitter interface {
	EmitBlock(ctx *emit.Context, x, y, z int, mode emit.Mode, cell world.Cell) bool
}

// Options configures Build.
type Options struct {
	// Warnings receives missing textures and unknown kinds. Nil logs through
	// a private set.
	Warnings *logger.Once
	// Models draws the base of blocks that have one in the model registry.
	Models ModelEmitter
}

// kindArgs is what a kind constructor gets to work with.
type kindArgs struct {
	def  formats.BlockDef
	base base
	tint tint
	reg  *Registry
	b    *builder
}

type kindFunc func(s kindArgs) BlockType

// kinds is the closed set of legacy shapes, with the data bits each kind
// registers on top of its configured data value.
var kinds = map[string]struct {
	build kindFunc
	extra []int
}{
	"air":              {build: func(s kindArgs) BlockType { return NewAir(s.def.Label()) }},
	"solid":            {build: newSolid},
	"datasolid":        {build: newDataSolid},
	"water":            {build: newLiquid},
	"grass":            {build: newGrass},
	"log":              {build: newLog},
	"leaves":           {build: newLeaves, extra: []int{4, 8, 12}},
	"glass":            {build: newGlass},
	"ice":              {build: newIce},
	"plant":            {build: newPlant},
	"sapling":          {build: newPlant, extra: []int{8}},
	"tallgrass":        {build: newTallGrass},
	"crops":            {build: newCrops},
	"netherwart":       {build: newNetherWart},
	"lilly":            {build: newLilyPad},
	"vines":            {build: newVines},
	"slab":             {build: newSlab, extra: []int{8}},
	"snow":             {build: newSnow},
	"carpet":           {build: newCarpet},
	"pressureplate":    {build: newPressurePlate},
	"soil":             {build: newSoil},
	"cake":             {build: newCake},
	"cactus":           {build: newCactus},
	"workbench":        {build: newWorkbench},
	"furnace":          {build: newFurnace},
	"dispenser":        {build: newDispenser},
	"pumpkin":          {build: newPumpkin},
	"torch":            {build: newTorch},
	"ladder":           {build: newLadder},
	"button":           {build: newButton},
	"lever":            {build: newLever},
	"minecarttracks":   {build: newTracks},
	"redstonewire":     {build: newRedstoneWire},
	"door":             {build: newDoor},
	"trapdoor":         {build: newTrapDoor},
	"stairs":           {build: newStairs},
	"fence":            {build: newFence},
	"fencegate":        {build: newFenceGate},
	"glasspane":        {build: newGlassPane},
	"wall":             {build: newWall},
	"bed":              {build: newBed},
	"sign":             {build: newSign},
	"chest":            {build: newChest},
	"beacon":           {build: newBeacon},
	"portal":           {build: newPortal},
	"enderportal":      {build: newEnderPortal},
	"enderportalframe": {build: newEnderPortalFrame},
	"enchantmenttable": {build: newEnchantmentTable},
	"cauldron":         {build: newCauldron},
	"flowerpot":        {build: newFlowerPot},
}

// KindNames returns the names of every supported kind.
func KindNames() []string {
	names := make([]string, 0, len(kinds))
	for k := range kinds {
		names = append(names, k)
	}
	return names
}

type builder struct {
	atlas *texture.Atlas
	warn  *logger.Once
	opts  Options
}

// slot resolves the first configured slot of names. A slot that names a
// texture the atlas cannot load gives the placeholder; no configured slot
// gives an invalid region, which draws nothing.
func (b *builder) slot(def formats.BlockDef, names ...string) texture.SubTexture {
	for _, name := range names {
		ref := def.Texture(name)
		if ref == "" {
			continue
		}
		sub, err := b.atlas.SubTexture(ref)
		if err != nil {
			b.warn.Warn("blocktype|"+def.Label()+"|"+ref, "missing block texture",
				zap.String("block", def.Label()), zap.String("texture", ref), zap.Error(err))
			return b.atlas.Missing()
		}
		if def.Frame > 0 {
			sub = frame(sub, def.Frame)
		}
		return sub
	}
	return texture.SubTexture{}
}

// required is slot for textures a shape cannot do without; the placeholder
// stands in when none is configured.
func (b *builder) required(def formats.BlockDef, names ...string) texture.SubTexture {
	if sub := b.slot(def, names...); sub.Valid() {
		return sub
	}
	b.warn.Warn("blocktype|"+def.Label()+"|"+names[0], "block texture slot not configured",
		zap.String("block", def.Label()), zap.String("kind", def.Kind), zap.String("slot", names[0]))
	return b.atlas.Missing()
}

// numbered resolves slots prefix0, prefix1, ... until the first gap.
func (b *builder) numbered(def formats.BlockDef, prefix string) []texture.SubTexture {
	var out []texture.SubTexture
	for i := 0; i < 16; i++ {
		sub := b.slot(def, fmt.Sprintf("%s%d", prefix, i))
		if !sub.Valid() {
			break
		}
		out = append(out, sub)
	}
	return out
}

// frame selects one frame of an animated strip.
func frame(sub texture.SubTexture, n int) texture.SubTexture {
	frames := sub.Texture.Frames()
	if frames <= 1 {
		return sub
	}
	h := sub.Height()
	v0 := sub.V0 + float32(n%frames)*h
	return sub.Region(sub.U0, v0, sub.U1, v0+h)
}

func (b *builder) flag(def formats.BlockDef, name string) bool {
	v := strings.ToLower(def.Texture(name))
	return v == "true" || v == "yes" || v == "1"
}

// Build creates the dispatch table from a block config. Unknown kinds are
// skipped with a warning; bad attribute values fail the build.
func Build(cfg *formats.BlockConfig, atlas *texture.Atlas, opts Options) (*Registry, error) {
	log := logger.Named("blocktype")
	if opts.Warnings == nil {
		opts.Warnings = logger.NewOnce(log)
	}
	b := &builder{atlas: atlas, warn: opts.Warnings, opts: opts}
	reg := NewRegistry()

	for i, def := range cfg.Blocks {
		kind, ok := kinds[strings.ToLower(def.Kind)]
		if !ok {
			opts.Warnings.Warn("blocktype|kind|"+def.Kind, "unknown block kind",
				zap.String("kind", def.Kind), zap.String("block", def.Label()))
			continue
		}

		tn, err := parseTint(def.Color)
		if err != nil {
			return nil, fmt.Errorf("block %d (%s): %w", i, def.Label(), err)
		}
		id, d, numeric, err := def.NumericID()
		if err != nil {
			return nil, fmt.Errorf("%w: block %d: %w", formats.ErrMalformedBlockConfig, i, err)
		}

		t := kind.build(kindArgs{
			def:  def,
			base: base{name: def.Label()},
			tint: tn,
			reg:  reg,
			b:    b,
		})

		if numeric {
			if d == formats.AnyData {
				for dd := 0; dd < 16; dd++ {
					reg.Register(id, dd, t)
				}
			} else {
				reg.Register(id, d, t)
				for _, bit := range kind.extra {
					reg.Register(id, d|bit, t)
				}
			}
		}
		if def.StringID != "" {
			reg.RegisterName(def.StringID, t)
		}
		if t.IsWater() && (reg.water == nil || strings.Contains(def.StringID, "water")) {
			reg.water = t
		}
		reg.byKind[strings.ToLower(def.Kind)]++
	}

	log.Info("block types built",
		zap.Int("ids", reg.Len()),
		zap.Int("names", reg.NameCount()),
		zap.Int("kinds", len(reg.byKind)))
	return reg, nil
}
