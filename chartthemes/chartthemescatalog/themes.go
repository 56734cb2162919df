package chartthemescatalog

import "oss.terrastruct.com/charts/chartthemes"

// category10 from d3.
var category10 = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

var Base = chartthemes.Theme{
	ID:   0,
	Name: "base",
	Colors: chartthemes.Palette{
		Background:  "#FFFFFF",
		Text:        "#131300",
		Line:        "#131300",
		Guide:       "#E0E0E0",
		Primary:     "#131300",
		PrimaryText: "#FFFFFF",

		Pie: category10,
		XY: []string{
			"#ff8b00", "#9c1de9", "#2ca02c", "#d62728", "#9467bd",
			"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
		},
	},
}

var Default = chartthemes.Theme{
	ID:   1,
	Name: "default",
	Colors: chartthemes.Palette{
		Background:  "#FFFFFF",
		Text:        "#333333",
		Line:        "#333333",
		Guide:       "#E8E8F5",
		Primary:     "#9370DB",
		PrimaryText: "#FFFFFF",

		Pie: []string{
			"#ECECFF", "#FFFFDE", "#B9F01F", "#CAB0FF", "#FFD6A5",
			"#9FE3F5", "#F5B8C8", "#C7E9C0", "#FDE68A", "#D0D0F0",
		},
		XY: []string{
			"#ECECFF", "#8493A6", "#FFC3A0", "#DCDDE1", "#B8E994",
			"#D1A36F", "#C3CDE6", "#FFB6B9", "#F3E6B3", "#A0D2DB",
		},
	},
}

var Forest = chartthemes.Theme{
	ID:   2,
	Name: "forest",
	Colors: chartthemes.Palette{
		Background:  "#FFFFFF",
		Text:        "#000000",
		Line:        "#13540C",
		Guide:       "#CDE498",
		Primary:     "#13540C",
		PrimaryText: "#FFFFFF",

		Pie: []string{
			"#CDE498", "#13540C", "#6EAA49", "#487E3A", "#B3D57F",
			"#2E6B24", "#92C56B", "#5A8F3E", "#DDEFB8", "#3B7A2E",
		},
		XY: []string{
			"#13540C", "#6EAA49", "#B3D57F", "#487E3A", "#92C56B",
			"#2E6B24", "#CDE498", "#5A8F3E", "#3B7A2E", "#DDEFB8",
		},
	},
}

var Neutral = chartthemes.Theme{
	ID:   3,
	Name: "neutral",
	Colors: chartthemes.Palette{
		Background:  "#FFFFFF",
		Text:        "#333333",
		Line:        "#666666",
		Guide:       "#DDDDDD",
		Primary:     "#666666",
		PrimaryText: "#FFFFFF",

		Pie: []string{
			"#EEEEEE", "#BBBBBB", "#999999", "#777777", "#555555",
			"#DDDDDD", "#AAAAAA", "#888888", "#666666", "#CCCCCC",
		},
		XY: []string{
			"#555555", "#999999", "#333333", "#BBBBBB", "#777777",
			"#DDDDDD", "#444444", "#AAAAAA", "#666666", "#CCCCCC",
		},
	},
}

var Dark = chartthemes.Theme{
	ID:   200,
	Name: "dark",
	Colors: chartthemes.Palette{
		Background:  "#1F2020",
		Text:        "#CCCCCC",
		Line:        "#CCCCCC",
		Guide:       "#444444",
		Primary:     "#BB86FC",
		PrimaryText: "#1F2020",

		Pie: []string{
			"#1F77B4", "#FF7F0E", "#2CA02C", "#D62728", "#9467BD",
			"#8C564B", "#E377C2", "#7F7F7F", "#BCBD22", "#17BECF",
		},
		XY: []string{
			"#FFB347", "#BB86FC", "#03DAC6", "#CF6679", "#9467BD",
			"#8C564B", "#E377C2", "#7F7F7F", "#BCBD22", "#17BECF",
		},
	},
}
