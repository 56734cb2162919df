package chartparser

import (
	"fmt"
	"math"
	"strings"

	"gopkg.in/yaml.v3"

	"oss.terrastruct.com/charts/chartast"
	"oss.terrastruct.com/charts/chartgraph"
	"oss.terrastruct.com/charts/chartthemes"
	"oss.terrastruct.com/charts/chartthemes/chartthemescatalog"
)

// directive is the recognised subset of a %%{init: {...}}%% block.
type directive struct {
	Theme          string                `yaml:"theme"`
	ThemeVariables chartthemes.Overrides `yaml:"themeVariables"`
	Width          *float64              `yaml:"width"`
}

type directiveBlock struct {
	Init       *directive `yaml:"init"`
	Initialize *directive `yaml:"initialize"`
}

// parseDirective consumes a leading %%{ ... }%% block if there is one. The block may span
// lines. Problems are warnings: the block is dropped and defaults apply.
func (p *parser) parseDirective() chartgraph.Config {
	var cfg chartgraph.Config

	first := p.next
	for first < len(p.lines) && strings.TrimSpace(p.lines[first].text) == "" {
		first++
	}
	if first == len(p.lines) {
		return cfg
	}
	l := p.lines[first]
	trimmed := strings.TrimSpace(l.text)
	if !strings.HasPrefix(trimmed, "%%{") {
		return cfg
	}
	indent := strings.Index(l.text, "%%{")
	start := l.start.AdvanceString(l.text[:indent], p.utf16Pos)

	var body strings.Builder
	last := -1
	for i := first; i < len(p.lines); i++ {
		text := p.lines[i].text
		if i == first {
			text = text[indent+len("%%{"):]
		}
		if j := strings.Index(text, "}%%"); j != -1 {
			body.WriteString(text[:j])
			last = i
			break
		}
		body.WriteString(text)
		body.WriteByte('\n')
	}

	if last == -1 {
		// Without a terminator only the first line is treated as the directive.
		p.next = first + 1
		cfg.Warnings = append(cfg.Warnings, p.warning(start, l, "ignoring directive: expected closing }%%"))
		return cfg
	}
	p.next = last + 1
	end := p.lines[last]

	d, err := decodeDirective(body.String())
	if err != nil {
		cfg.Warnings = append(cfg.Warnings, p.warning(start, end, "ignoring directive: %v", err))
		return cfg
	}
	if d == nil {
		return cfg
	}

	if d.Theme != "" {
		if _, ok := chartthemescatalog.FindByName(d.Theme); ok {
			cfg.ThemeName = d.Theme
		} else {
			cfg.Warnings = append(cfg.Warnings, p.warning(start, end, "unknown theme %q, expected one of:\n%s", d.Theme, chartthemescatalog.CLIString()))
		}
	}
	if d.Width != nil {
		if *d.Width > 0 && !math.IsInf(*d.Width, 1) {
			cfg.Width = d.Width
		} else {
			cfg.Warnings = append(cfg.Warnings, p.warning(start, end, "ignoring width %v: expected a positive number", *d.Width))
		}
	}
	cfg.Overrides = d.ThemeVariables
	for _, msg := range cfg.Overrides.Sanitize() {
		cfg.Warnings = append(cfg.Warnings, p.warning(start, end, "%s", msg))
	}
	return cfg
}

func decodeDirective(body string) (*directive, error) {
	var b directiveBlock
	err := yaml.Unmarshal([]byte(body), &b)
	if err != nil {
		return nil, err
	}
	if b.Init != nil {
		return b.Init, nil
	}
	return b.Initialize, nil
}

func (p *parser) warning(start chartast.Position, endLine line, f string, v ...interface{}) chartast.Error {
	r := chartast.Range{
		Path:  p.path,
		Start: start,
		End:   endLine.start.AdvanceString(endLine.text, p.utf16Pos),
	}
	return chartast.Error{
		Range:   r,
		Kind:    chartast.KindDirective,
		Message: fmt.Sprintf("%v: "+f, append([]interface{}{r}, v...)...),
	}
}
