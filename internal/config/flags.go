package config

import "flag"

// Flags holds command-line overrides. Zero values leave the config untouched.
type Flags struct {
	Config     string
	Debug      bool
	LightStyle string
	Workers    int
	Seed       int64
	Packs      string
}

// BindFlags registers the config flags on fs.
func BindFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.LightStyle, "light", "", "Light style: day, night, cave or none")
	fs.IntVar(&f.Workers, "workers", 0, "Number of compile workers")
	fs.Int64Var(&f.Seed, "seed", 0, "Seed for variant and frame selection")
	fs.StringVar(&f.Packs, "packs", "", "Comma separated resource packs, overrides the config list")
	return f
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.LightStyle != "" {
		cfg.Render.LightStyle = f.LightStyle
	}
	if f.Workers > 0 {
		cfg.Render.Workers = f.Workers
	}
	if f.Seed != 0 {
		cfg.Render.Seed = f.Seed
	}
	if f.Packs != "" {
		cfg.Assets.ResourcePacks = splitList(f.Packs)
	}
}

func splitList(s string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	return out
}
