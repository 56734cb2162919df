package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"cdr.dev/slog"
	"github.com/spf13/pflag"

	"oss.terrastruct.com/charts"
	"oss.terrastruct.com/charts/chartfonts"
	"oss.terrastruct.com/charts/chartlayout"
	"oss.terrastruct.com/charts/chartrenderers/chartsvg"
	"oss.terrastruct.com/charts/chartthemes/chartthemescatalog"
	"oss.terrastruct.com/charts/lib/go2"
	ctxlog "oss.terrastruct.com/charts/lib/log"
	"oss.terrastruct.com/charts/lib/png"
	"oss.terrastruct.com/charts/lib/textmeasure"
	"oss.terrastruct.com/charts/lib/version"
	"oss.terrastruct.com/charts/lib/xbrowser"
	"oss.terrastruct.com/charts/lib/xmain"
)

func main() {
	xmain.Main(run)
}

func run(ctx context.Context, ms *xmain.State) (err error) {
	// These should be kept up-to-date with help.go
	watchFlag, err := ms.Opts.Bool("CHARTS_WATCH", "watch", "w", false, "watch for changes to input and recompile.")
	if err != nil {
		return err
	}
	formatFlag := ms.Opts.String("CHARTS_FORMAT", "format", "f", "", "output format, svg or png. Taken from the output extension when unset.")
	widthFlag, err := ms.Opts.Float64("CHARTS_WIDTH", "width", "", chartlayout.DEFAULT_WIDTH, "width of the frame charts are laid out in. A width in the chart's init directive wins.")
	if err != nil {
		return err
	}
	heightFlag, err := ms.Opts.Float64("CHARTS_HEIGHT", "height", "", chartlayout.DEFAULT_HEIGHT, "height of the frame charts are laid out in.")
	if err != nil {
		return err
	}
	maxWidthFlag, err := ms.Opts.Float64("CHARTS_MAX_WIDTH", "max-width", "", 0, "scale the output down to at most this width. 0 means no limit.")
	if err != nil {
		return err
	}
	maxHeightFlag, err := ms.Opts.Float64("CHARTS_MAX_HEIGHT", "max-height", "", 0, "scale the output down to at most this height. 0 means no limit.")
	if err != nil {
		return err
	}
	fontFlag := ms.Opts.String("CHARTS_FONT", "font", "", "", "font family text is measured and drawn in. Looked up among the system fonts.")
	themeFlag, err := ms.Opts.Int64("CHARTS_THEME", "theme", "t", chartthemescatalog.Default.ID, "the theme ID, used when the chart's init directive names none.")
	if err != nil {
		return err
	}
	configFlag := ms.Opts.String("CHARTS_CONFIG", "config", "c", "", "TOML file with [render] defaults.")
	openFlag, err := ms.Opts.Bool("", "open", "o", false, "open the output in a browser once it is written.")
	if err != nil {
		return err
	}
	debugFlag, err := ms.Opts.Bool("DEBUG", "debug", "d", false, "print debug logs.")
	if err != nil {
		return err
	}
	versionFlag, err := ms.Opts.Bool("", "version", "v", false, "get the version")
	if err != nil {
		return err
	}

	err = ms.Opts.Flags.Parse(ms.Opts.Args)
	if !errors.Is(err, pflag.ErrHelp) && err != nil {
		return xmain.UsageErrorf("failed to parse flags: %v", err)
	}
	if errors.Is(err, pflag.ErrHelp) {
		help(ms)
		return nil
	}

	if len(ms.Opts.Flags.Args()) > 0 {
		switch ms.Opts.Flags.Arg(0) {
		case "themes":
			fmt.Fprint(ms.Stdout, chartthemescatalog.CLIString())
			return nil
		case "version":
			if len(ms.Opts.Flags.Args()) > 1 {
				return xmain.UsageErrorf("version subcommand accepts no arguments")
			}
			fmt.Fprintln(ms.Stdout, version.Version)
			return nil
		}
	}

	if *debugFlag {
		ms.Env.Setenv("DEBUG", "1")
		ctx = ctxlog.Leveled(ctx, slog.LevelDebug)
	}

	var inputPath string
	var outputPath string

	if len(ms.Opts.Flags.Args()) == 0 {
		if *versionFlag {
			fmt.Fprintln(ms.Stdout, version.Version)
			return nil
		}
		help(ms)
		return nil
	} else if len(ms.Opts.Flags.Args()) >= 3 {
		return xmain.UsageErrorf("too many arguments passed")
	}

	var cfg *config
	if *configFlag != "" {
		cfg, err = loadConfig(*configFlag)
		if err != nil {
			return err
		}
		ms.Log.Debug.Printf("using config %s", *configFlag)
	}
	s, err := resolveSettings(ms.Opts, cfg, flagValues{
		width:     widthFlag,
		height:    heightFlag,
		maxWidth:  maxWidthFlag,
		maxHeight: maxHeightFlag,
		font:      fontFlag,
		theme:     themeFlag,
		format:    formatFlag,
	})
	if err != nil {
		return err
	}

	inputPath = ms.Opts.Flags.Arg(0)
	if len(ms.Opts.Flags.Args()) >= 2 {
		outputPath = ms.Opts.Flags.Arg(1)
	} else if inputPath == "-" {
		outputPath = "-"
	} else {
		outputPath = renameExt(inputPath, "."+s.outputFormat(""))
	}
	s.format = s.outputFormat(outputPath)

	if *openFlag && outputPath == "-" {
		return xmain.UsageErrorf("-o[pen] cannot be combined with writing output to stdout")
	}

	match := chartthemescatalog.Find(s.themeID)
	if match.Name == "" {
		return xmain.UsageErrorf("-t[heme] could not be found. The available options are:\n%s\nYou provided: %d", chartthemescatalog.CLIString(), s.themeID)
	}
	ms.Log.Debug.Printf("using theme %s (ID: %d)", match.Name, s.themeID)

	ruler, err := textmeasure.NewRuler()
	if err != nil {
		return err
	}

	if *watchFlag {
		if inputPath == "-" {
			return xmain.UsageErrorf("-w[atch] cannot be combined with reading input from stdin")
		}
		w, err := newWatcher(ctx, ms, watcherOpts{
			settings:   s,
			ruler:      ruler,
			inputPath:  inputPath,
			outputPath: outputPath,
			open:       *openFlag,
		})
		if err != nil {
			return err
		}
		return w.run()
	}

	ctx, cancel := ctxlog.WithTimeout(ctx, time.Minute*2)
	defer cancel()

	_, err = compile(ctx, ms, s, ruler, inputPath, outputPath)
	if err != nil {
		return xmain.ExitErrorf(1, "failed to compile %v: %v", inputPath, err)
	}
	ms.Log.Success.Printf("successfully compiled %v to %v", inputPath, outputPath)

	if *openFlag {
		err = xbrowser.OpenFile(ctx, ms.Env, outputPath)
		if err != nil {
			ms.Log.Warn.Printf("failed to open %v: %v", outputPath, err)
		}
	}
	return nil
}

func compile(ctx context.Context, ms *xmain.State, s *settings, ruler *textmeasure.Ruler, inputPath, outputPath string) ([]byte, error) {
	input, err := ms.ReadPath(inputPath)
	if err != nil {
		return nil, err
	}

	diagram, err := charts.Compile(ctx, string(input), &charts.CompileOptions{
		Path:   inputPath,
		Ruler:  ruler,
		Layout: s.layoutOptions(),
	})
	if err != nil {
		return nil, err
	}
	if diagram.Degenerate {
		ms.Log.Warn.Printf("%v: %v", inputPath, diagram.DegenerateReason)
	}

	var out []byte
	switch s.format {
	case "png":
		out, err = png.Rasterize(ctx, diagram, ruler, s.maxWidth, s.maxHeight)
		if err != nil {
			return nil, err
		}
	default:
		out, err = chartsvg.Render(diagram)
		if err != nil {
			return nil, err
		}
		if len(out) > 0 && out[len(out)-1] != '\n' {
			out = append(out, '\n')
		}
	}

	err = ms.WritePath(outputPath, out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// newExt must include leading .
func renameExt(fp string, newExt string) string {
	ext := filepath.Ext(fp)
	if ext == "" {
		return fp + newExt
	} else {
		return strings.TrimSuffix(fp, ext) + newExt
	}
}

func (s *settings) layoutOptions() chartlayout.Options {
	return chartlayout.Options{
		Width:      s.width,
		Height:     s.height,
		MaxWidth:   s.maxWidth,
		MaxHeight:  s.maxHeight,
		FontFamily: chartfonts.FontFamily(s.font),
		ThemeID:    go2.Pointer(s.themeID),
	}
}
