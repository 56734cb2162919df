package chartthemescatalog

import (
	"fmt"
	"strings"

	"oss.terrastruct.com/charts/chartthemes"
)

var Catalog = []chartthemes.Theme{
	Base,
	Default,
	Forest,
	Neutral,
	Dark,
}

func Find(id int64) chartthemes.Theme {
	for _, theme := range Catalog {
		if theme.ID == id {
			return theme
		}
	}

	return chartthemes.Theme{}
}

// FindByName matches the theme names accepted in %%{init}%% directives, ignoring case.
func FindByName(name string) (chartthemes.Theme, bool) {
	name = strings.TrimSpace(name)
	for _, theme := range Catalog {
		if strings.EqualFold(theme.Name, name) {
			return theme, true
		}
	}
	return chartthemes.Theme{}, false
}

func CLIString() string {
	var s strings.Builder
	for _, t := range Catalog {
		s.WriteString(fmt.Sprintf("- %s: %d\n", t.Name, t.ID))
	}
	return s.String()
}
