package main

import (
	"fmt"

	"oss.terrastruct.com/charts/lib/xmain"
)

func help(ms *xmain.State) {
	fmt.Fprintf(ms.Stdout, `Usage:
  %s [--watch=false] [--theme=1] [--format=svg] file.mmd [file.svg|file.png]

%[1]s renders a pie, xychart-beta or work-item-movement chart to SVG or PNG.
Use - to have %[1]s read from stdin or write to stdout.

Flags:
%s

Settings may also be read from a TOML file given with --config or $CHARTS_CONFIG:

  [render]
  width = 800
  height = 600
  max_width = 400
  max_height = 300
  font = "Inter"
  theme = 200
  format = "png"

Flags and environment variables take precedence over the file.

Subcommands:
  %[1]s themes - Lists available themes
  %[1]s version - Print the version
`, ms.Name, ms.Opts.Help())
}
