package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Faultbox/blockmesh/internal/blockmodel"
	"github.com/Faultbox/blockmesh/internal/compile"
	"github.com/Faultbox/blockmesh/internal/config"
	"github.com/Faultbox/blockmesh/internal/logger"
	"github.com/Faultbox/blockmesh/internal/world"
)

var (
	heading = color.New(color.FgCyan, color.Bold)
	dim     = color.New(color.FgHiBlack)
	title   = cases.Title(language.English)
)

// displayName turns "minecraft:oak_stairs" into "Oak Stairs".
func displayName(name string) string {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		name = name[i+1:]
	}
	return title.String(strings.ReplaceAll(name, "_", " "))
}

func cmdBlocks(args []string) {
	fs := flag.NewFlagSet("blocks", flag.ExitOnError)
	cfg := setup(fs, args)
	defer logger.Sync()

	pattern := "*"
	if fs.NArg() > 0 {
		pattern = "*" + fs.Arg(0) + "*"
	}

	s := open(cfg)
	defer s.Close()

	heading.Println("Legacy block types")
	kinds := s.Types.Kinds()
	names := make([]string, 0, len(kinds))
	for k := range kinds {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		fmt.Printf("  %-18s %4d\n", k, kinds[k])
	}
	dim.Printf("  %d ids, %d names\n\n", s.Types.Len(), s.Types.NameCount())

	heading.Println("Block states")
	matched := 0
	for _, name := range s.Models.Names() {
		if ok, _ := path.Match(pattern, name); !ok {
			continue
		}
		matched++
		fmt.Printf("  %-40s %-12s %s\n", name, s.Engine.Classes().Classify(world.Cell{Name: name}), dim.Sprint(displayName(name)))
	}
	dim.Printf("  %d of %d\n", matched, s.Models.Len())
}

func cmdResolve(args []string) {
	fs := flag.NewFlagSet("resolve", flag.ExitOnError)
	cfg := setup(fs, args)
	defer logger.Sync()

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: blockmesh resolve [options] <block> [props]")
		os.Exit(1)
	}
	name := fs.Arg(0)
	if !strings.Contains(name, ":") {
		name = "minecraft:" + name
	}
	var props world.Properties
	if fs.NArg() > 1 {
		props = world.ParseProperties(fs.Arg(1))
	}

	s := open(cfg)
	defer s.Close()

	insts, ok := s.Models.Resolve(name, props, blockmodel.WeightedChooser{Rand: blockmodel.NewLockedRand(cfg.Render.Seed)})
	if !ok {
		color.Red("No block state: %s", name)
		os.Exit(1)
	}

	heading.Printf("%s", displayName(name))
	if len(props) > 0 {
		fmt.Printf(" [%s]", props)
	}
	fmt.Println()
	for _, inst := range insts {
		fmt.Printf("  %-40s x=%-3d y=%-3d faces=%-3d", inst.Model.Name, inst.X, inst.Y, inst.Model.FaceCount())
		switch {
		case inst.Model.IsFullBlock() && inst.Model.IsSolid():
			color.Green(" full")
		case inst.Model.IsTranslucent():
			color.Yellow(" translucent")
		default:
			fmt.Println()
		}
	}
	s.Warnings.Summary("definition warnings")
}

func cmdBench(args []string) {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	radius := fs.Int("radius", 2, "Chunks around the origin to compile")
	height := fs.Int("height", 128, "Height of the synthetic chunks")
	cfg := setup(fs, args)
	defer logger.Sync()

	s := open(cfg)
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	gen := newTerrain(cfg.Render.Seed, *height)
	var chunks []*world.Chunk
	for x := -*radius; x <= *radius; x++ {
		for z := -*radius; z <= *radius; z++ {
			c := gen.chunk(world.ChunkCoord{X: int32(x), Z: int32(z)})
			s.World.Add(c)
			chunks = append(chunks, c)
		}
	}

	cache := compile.NewCache()
	pool := compile.NewPool(s.Engine, cache, cfg.Render.Workers)

	start := time.Now()
	results := pool.CompileAll(ctx, chunks)
	wall := time.Since(start)
	pool.Stop()

	for _, r := range results {
		if r.Err != nil {
			color.Red("  chunk %s: %v", r.Coord, r.Err)
		}
	}
	printStats(cfg, pool.Stats(), cache, len(chunks), wall)
	s.Warnings.Summary("compile warnings")
	cache.Clear()
}

func printStats(cfg *config.Config, st compile.Stats, cache *compile.Cache, chunks int, wall time.Duration) {
	heading.Println("Compile statistics")
	fmt.Printf("  chunks      %d\n", chunks)
	fmt.Printf("  compiled    %s\n", color.GreenString("%d", st.Compiled))
	if st.Failed > 0 {
		fmt.Printf("  failed      %s\n", color.RedString("%d", st.Failed))
	}
	if st.Cancelled > 0 {
		fmt.Printf("  cancelled   %s\n", color.YellowString("%d", st.Cancelled))
	}
	fmt.Printf("  vertices    %d\n", st.Vertices)
	fmt.Printf("  memory      %.1f MiB\n", float64(cache.MemorySize())/(1<<20))
	fmt.Printf("  wall time   %s\n", wall.Round(time.Millisecond))
	if st.Compiled > 0 {
		fmt.Printf("  per chunk   %s\n", (st.Elapsed / time.Duration(st.Compiled)).Round(time.Microsecond))
	}
	dim.Printf("  light %s, %d workers\n", cfg.Render.LightStyle, cfg.Render.Workers)
}

func cmdConfig(args []string) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	cfg := setup(fs, args)
	defer logger.Sync()

	var err error
	if fs.NArg() > 0 {
		err = cfg.SaveTo(fs.Arg(0))
	} else {
		err = cfg.Save()
	}
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
	color.Green("Configuration written")
}
