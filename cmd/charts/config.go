package main

import (
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"oss.terrastruct.com/charts/lib/xmain"
)

// config is the optional TOML file named by --config:
//
//	[render]
//	width = 640
//	max_width = 320
//	theme = 200
//	format = "png"
type config struct {
	Render renderConfig `toml:"render"`
}

type renderConfig struct {
	Width     *float64 `toml:"width"`
	Height    *float64 `toml:"height"`
	MaxWidth  *float64 `toml:"max_width"`
	MaxHeight *float64 `toml:"max_height"`
	Font      *string  `toml:"font"`
	Theme     *int64   `toml:"theme"`
	Format    *string  `toml:"format"`
}

func loadConfig(path string) (*config, error) {
	var c config
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return nil, xmain.UsageErrorf("failed to read config %v: %v", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, xmain.UsageErrorf("unknown keys in config %v: %v", path, strings.Join(keys, ", "))
	}
	return &c, nil
}

type flagValues struct {
	width     *float64
	height    *float64
	maxWidth  *float64
	maxHeight *float64
	font      *string
	theme     *int64
	format    *string
}

type settings struct {
	width     float64
	height    float64
	maxWidth  *float64
	maxHeight *float64
	font      string
	themeID   int64
	// format is empty until the output path is known.
	format string
}

// layer picks a flag given on the command line or through its environment variable, then the
// config file, then the flag's default.
func layer[T any](opts *xmain.Opts, envKey, flag string, v *T, file *T) T {
	if file == nil || opts.Changed(flag) || opts.EnvSet(envKey) {
		return *v
	}
	return *file
}

func resolveSettings(opts *xmain.Opts, cfg *config, f flagValues) (*settings, error) {
	var rc renderConfig
	if cfg != nil {
		rc = cfg.Render
	}

	s := &settings{
		width:   layer(opts, "CHARTS_WIDTH", "width", f.width, rc.Width),
		height:  layer(opts, "CHARTS_HEIGHT", "height", f.height, rc.Height),
		font:    layer(opts, "CHARTS_FONT", "font", f.font, rc.Font),
		themeID: layer(opts, "CHARTS_THEME", "theme", f.theme, rc.Theme),
		format:  strings.ToLower(layer(opts, "CHARTS_FORMAT", "format", f.format, rc.Format)),
	}
	if !(s.width > 0) || !(s.height > 0) {
		return nil, xmain.UsageErrorf("--width and --height must be positive, got %vx%v", s.width, s.height)
	}
	if mw := layer(opts, "CHARTS_MAX_WIDTH", "max-width", f.maxWidth, rc.MaxWidth); mw > 0 {
		s.maxWidth = &mw
	}
	if mh := layer(opts, "CHARTS_MAX_HEIGHT", "max-height", f.maxHeight, rc.MaxHeight); mh > 0 {
		s.maxHeight = &mh
	}
	switch s.format {
	case "", "svg", "png":
	default:
		return nil, xmain.UsageErrorf(`-f[ormat] must be "svg" or "png", got %q`, s.format)
	}
	return s, nil
}

// outputFormat is the configured format, else the one outputPath's extension names, else svg.
func (s *settings) outputFormat(outputPath string) string {
	if s.format != "" {
		return s.format
	}
	if strings.EqualFold(filepath.Ext(outputPath), ".png") {
		return "png"
	}
	return "svg"
}
