// blockmesh compiles voxel chunk block grids into textured geometry and
// inspects the block definitions it compiles them with.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/blockmesh/internal/compile"
	"github.com/Faultbox/blockmesh/internal/config"
	"github.com/Faultbox/blockmesh/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "blocks", "ls":
		cmdBlocks(args)
	case "resolve":
		cmdResolve(args)
	case "bench":
		cmdBench(args)
	case "config":
		cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`blockmesh - block geometry compiler

Usage:
  blockmesh <command> [options]

Commands:
  blocks [pattern]               List legacy block types and block states
  resolve <block> [props]        Show the models a block state resolves to
  bench                          Compile synthetic terrain and report statistics
  config [path]                  Write the effective configuration

Common options:
  -config <file>   Config file (default: ./config.yaml or user config dir)
  -packs <list>    Comma separated resource packs
  -light <style>   day, night, cave or none
  -workers <n>     Compile workers
  -seed <n>        Seed for variant and frame selection
  -debug           Debug logging

Examples:
  blockmesh blocks -packs client.jar stairs
  blockmesh resolve minecraft:oak_stairs facing=east,half=top
  blockmesh bench -radius 4 -height 128`)
}

// setup parses the common flags, loads the config and initialises logging.
// Extra flags may be registered on fs by the caller before it is called.
func setup(fs *flag.FlagSet, args []string) *config.Config {
	flags := config.BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		os.Exit(2)
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	logger.Sugar.Debugf("Config: %+v", cfg)
	return cfg
}

// open builds the compiler. Malformed definitions are fatal.
func open(cfg *config.Config) *compile.Setup {
	s, err := compile.Open(cfg)
	if err != nil {
		logger.Error("failed to load block definitions", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	return s
}
