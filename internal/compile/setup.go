package compile

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/blockmesh/internal/assets"
	"github.com/Faultbox/blockmesh/internal/biome"
	"github.com/Faultbox/blockmesh/internal/blockmodel"
	"github.com/Faultbox/blockmesh/internal/blocktype"
	"github.com/Faultbox/blockmesh/internal/config"
	"github.com/Faultbox/blockmesh/internal/lighting"
	"github.com/Faultbox/blockmesh/internal/logger"
	"github.com/Faultbox/blockmesh/internal/texture"
	"github.com/Faultbox/blockmesh/internal/world"
	"github.com/Faultbox/blockmesh/pkg/formats"
)

// Setup holds everything built from a configuration at startup. All of it is
// read-only once Open returns.
type Setup struct {
	Assets   *assets.Manager
	Atlas    *texture.Atlas
	Models   *blockmodel.Registry
	Types    *blocktype.Registry
	World    *world.Map
	Warnings *logger.Once
	Engine   *Engine
}

// Open loads resource packs and block definitions and creates an engine over
// an empty world. Malformed definition documents are returned as errors.
func Open(cfg *config.Config) (*Setup, error) {
	log := logger.Named("setup")

	style, err := lighting.ParseStyle(cfg.Render.LightStyle)
	if err != nil {
		return nil, err
	}
	palette, err := biome.FromConfig(cfg.Biomes)
	if err != nil {
		return nil, err
	}

	mgr := assets.NewManager()
	for _, pack := range cfg.Assets.ResourcePacks {
		if err := mgr.AddPack(pack); err != nil {
			mgr.Close()
			return nil, fmt.Errorf("resource pack %s: %w", pack, err)
		}
	}

	s, err := Build(cfg, mgr, style, palette)
	if err != nil {
		mgr.Close()
		return nil, err
	}

	log.Info("compiler ready",
		zap.Int("packs", len(cfg.Assets.ResourcePacks)),
		zap.Int("blockstates", s.Models.Len()),
		zap.Int("legacy_types", s.Types.Len()),
		zap.String("light_style", style.String()),
		zap.Stringer("pack_version", s.Atlas.Version()))
	return s, nil
}

// Build creates the registries and engine over an already populated asset
// manager.
func Build(cfg *config.Config, mgr *assets.Manager, style lighting.Style, palette *biome.Palette) (*Setup, error) {
	version := texture.VersionModern
	if cfg.Assets.TerrainAtlas {
		version = texture.VersionTerrainAtlas
	}
	atlas := texture.NewAtlas(mgr, version)
	if name := cfg.Assets.MissingTexture; name != "" && name != texture.MissingName {
		if tex, err := atlas.Texture(name); err == nil {
			atlas.SetMissing(tex)
		} else {
			logger.Warn("placeholder texture not found", zap.String("texture", name), zap.Error(err))
		}
	}

	seed := cfg.Render.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rnd := blockmodel.NewLockedRand(seed)
	warnings := logger.NewOnce(nil)

	models, err := blockmodel.Load(mgr, atlas, blockmodel.Options{Rand: rnd, Warnings: warnings})
	if err != nil {
		return nil, err
	}

	blocks, err := loadBlockConfig(cfg.Assets.BlockConfig, mgr)
	if err != nil {
		return nil, err
	}
	choose := blockmodel.WeightedChooser{Rand: rnd}
	types, err := blocktype.Build(blocks, atlas, blocktype.Options{
		Warnings: warnings,
		Models:   modelEmitter{models: models, choose: choose},
	})
	if err != nil {
		return nil, err
	}

	m := world.NewMap(world.Options{
		Style:                style,
		NightLightAdjustment: cfg.Render.NightLightAdjustment,
		Palette:              palette,
		LegacyColors:         cfg.Render.OldColorPalette,
	})

	return &Setup{
		Assets:   mgr,
		Atlas:    atlas,
		Models:   models,
		Types:    types,
		World:    m,
		Warnings: warnings,
		Engine: NewEngine(types, models, Options{
			World:    m,
			Chooser:  choose,
			Warnings: warnings,
		}),
	}, nil
}

// loadBlockConfig reads the legacy block table from disk, falling back to
// the resource packs. An empty path yields an empty table.
func loadBlockConfig(path string, mgr *assets.Manager) (*formats.BlockConfig, error) {
	if path == "" {
		return &formats.BlockConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		data, err = mgr.Load(path)
	}
	if err != nil {
		return nil, fmt.Errorf("block config %s: %w", path, err)
	}
	return formats.ParseBlockConfig(data)
}

// Close releases the resource packs.
func (s *Setup) Close() {
	s.Assets.Close()
}
