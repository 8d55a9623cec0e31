// Package palette provides the named color and shape palette catalogue
// used to resolve a Scale's TO clause when it names a palette instead
// of an explicit array.
package palette

import "strings"

// Kind classifies a color palette's intended use.
type Kind int

const (
	Categorical Kind = iota
	Sequential
	Diverging
)

// Palette is a named, ordered list of color values (as CSS-style hex
// or named strings, left uninterpreted by this package) or shape
// names.
type Palette struct {
	Name   string
	Kind   Kind
	Values []string
}

// Categorical palettes. Tableau10 is the default color palette.
var (
	Tableau10 = Palette{"tableau10", Categorical, []string{
		"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f",
		"#edc948", "#b07aa1", "#ff9da7", "#9c755f", "#bab0ac",
	}}
	Category10 = Palette{"category10", Categorical, []string{
		"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
		"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
	}}
	Set1 = Palette{"set1", Categorical, []string{
		"#e41a1c", "#377eb8", "#4daf4a", "#984ea3", "#ff7f00",
		"#ffff33", "#a65628", "#f781bf", "#999999",
	}}
	Set2 = Palette{"set2", Categorical, []string{
		"#66c2a5", "#fc8d62", "#8da0cb", "#e78ac3", "#a6d854",
		"#ffd92f", "#e5c494", "#b3b3b3",
	}}
	Set3 = Palette{"set3", Categorical, []string{
		"#8dd3c7", "#ffffb3", "#bebada", "#fb8072", "#80b1d3",
		"#fdb462", "#b3de69", "#fccde5", "#d9d9d9", "#bc80bd",
	}}
	Pastel1 = Palette{"pastel1", Categorical, []string{
		"#fbb4ae", "#b3cde3", "#ccebc5", "#decbe4", "#fed9a6",
		"#ffffcc", "#e5d8bd", "#fddaec",
	}}
	Pastel2 = Palette{"pastel2", Categorical, []string{
		"#b3e2cd", "#fdcdac", "#cbd5e8", "#f4cae4", "#e6f5c9",
		"#fff2ae", "#f1e2cc",
	}}
	Dark2 = Palette{"dark2", Categorical, []string{
		"#1b9e77", "#d95f02", "#7570b3", "#e7298a", "#66a61e",
		"#e6ab02", "#a6761d",
	}}
	Paired = Palette{"paired", Categorical, []string{
		"#a6cee3", "#1f78b4", "#b2df8a", "#33a02c", "#fb9a99",
		"#e31a1c", "#fdbf6f", "#ff7f00", "#cab2d6", "#6a3d9a",
	}}
	Accent = Palette{"accent", Categorical, []string{
		"#7fc97f", "#beaed4", "#fdc086", "#ffff99", "#386cb0",
		"#f0027f", "#bf5b17",
	}}
)

// Sequential palettes.
var (
	Viridis = Palette{"viridis", Sequential, []string{
		"#440154", "#482878", "#3e4a89", "#31688e", "#26828e",
		"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
	}}
	Plasma = Palette{"plasma", Sequential, []string{
		"#0d0887", "#47039f", "#7201a8", "#9c179e", "#bd3786",
		"#d8576b", "#ed7953", "#fa9e3b", "#fdc926", "#f0f921",
	}}
	Magma = Palette{"magma", Sequential, []string{
		"#000004", "#3b0f70", "#8c2981", "#de4968", "#fe9f6d", "#fcfdbf",
	}}
	Inferno = Palette{"inferno", Sequential, []string{
		"#000004", "#420a68", "#932667", "#dd513a", "#fca50a", "#fcffa4",
	}}
	Cividis = Palette{"cividis", Sequential, []string{
		"#00204d", "#2c3e63", "#575d6d", "#7b7a77", "#a69d75", "#ffe945",
	}}
	Blues = Palette{"blues", Sequential, []string{
		"#f7fbff", "#deebf7", "#c6dbef", "#9ecae1", "#6baed6",
		"#4292c6", "#2171b5", "#08519c", "#08306b",
	}}
	Greens = Palette{"greens", Sequential, []string{
		"#f7fcf5", "#e5f5e0", "#c7e9c0", "#a1d99b", "#74c476",
		"#41ab5d", "#238b45", "#006d2c", "#00441b",
	}}
	Oranges = Palette{"oranges", Sequential, []string{
		"#fff5eb", "#fee6ce", "#fdd0a2", "#fdae6b", "#fd8d3c",
		"#f16913", "#d94801", "#a63603", "#7f2704",
	}}
	Reds = Palette{"reds", Sequential, []string{
		"#fff5f0", "#fee0d2", "#fcbba1", "#fc9272", "#fb6a4a",
		"#ef3b2c", "#cb181d", "#a50f15", "#67000d",
	}}
	Purples = Palette{"purples", Sequential, []string{
		"#fcfbfd", "#efedf5", "#dadaeb", "#bcbddc", "#9e9ac8",
		"#807dba", "#6a51a3", "#54278f", "#3f007d",
	}}
)

// Diverging palettes.
var (
	RdBu = Palette{"rdbu", Diverging, []string{
		"#67001f", "#b2182b", "#d6604d", "#f4a582", "#fddbc7",
		"#d1e5f0", "#92c5de", "#4393c3", "#2166ac", "#053061",
	}}
	RdYlBu = Palette{"rdylbu", Diverging, []string{
		"#a50026", "#d73027", "#f46d43", "#fdae61", "#fee090",
		"#e0f3f8", "#abd9e9", "#74add1", "#4575b4", "#313695",
	}}
	RdYlGn = Palette{"rdylgn", Diverging, []string{
		"#a50026", "#d73027", "#f46d43", "#fdae61", "#fee08b",
		"#d9ef8b", "#a6d96a", "#66bd63", "#1a9850", "#006837",
	}}
	Spectral = Palette{"spectral", Diverging, []string{
		"#9e0142", "#d53e4f", "#f46d43", "#fdae61", "#fee08b",
		"#e6f598", "#abdda4", "#66c2a5", "#3288bd", "#5e4fa2",
	}}
	BrBg = Palette{"brbg", Diverging, []string{
		"#543005", "#8c510a", "#bf812d", "#dfc27d", "#f6e8c3",
		"#c7eae5", "#80cdc1", "#35978f", "#01665e", "#003c30",
	}}
	PRGn = Palette{"prgn", Diverging, []string{
		"#40004b", "#762a83", "#9970ab", "#c2a5cf", "#e7d4e8",
		"#d9f0d3", "#a6dba0", "#5aae61", "#1b7837", "#00441b",
	}}
	PiYG = Palette{"piyg", Diverging, []string{
		"#8e0152", "#c51b7d", "#de77ae", "#f1b6da", "#fde0ef",
		"#e6f5d0", "#b8e186", "#7fbc41", "#4d9221", "#276419",
	}}
)

// Shapes is the default shape palette used for the "shape" aesthetic.
var Shapes = Palette{"shapes", Categorical, []string{
	"circle", "square", "cross", "diamond",
	"triangle-up", "triangle-down", "triangle-left", "triangle-right",
}}

// DefaultColor and DefaultShape are the palettes used when a Scale's TO
// clause is absent.
var (
	DefaultColor = Tableau10
	DefaultShape = Shapes
)

var catalogue = buildCatalogue()

func buildCatalogue() map[string]Palette {
	all := []Palette{
		Tableau10, Category10, Set1, Set2, Set3, Pastel1, Pastel2, Dark2, Paired, Accent,
		Viridis, Plasma, Magma, Inferno, Cividis, Blues, Greens, Oranges, Reds, Purples,
		RdBu, RdYlBu, RdYlGn, Spectral, BrBg, PRGn, PiYG,
		Shapes,
	}
	m := make(map[string]Palette, len(all))
	for _, p := range all {
		m[strings.ToLower(p.Name)] = p
	}
	return m
}

// Lookup finds a palette by name, case-insensitively.
func Lookup(name string) (Palette, bool) {
	p, ok := catalogue[strings.ToLower(name)]
	return p, ok
}

// Expand returns exactly n entries from p by cyclic indexing:
// Expand(p, n)[k] == p.Values[k % len(p.Values)].
func Expand(p Palette, n int) []string {
	if n <= 0 || len(p.Values) == 0 {
		return nil
	}
	out := make([]string, n)
	for i := range out {
		out[i] = p.Values[i%len(p.Values)]
	}
	return out
}
