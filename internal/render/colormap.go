package render

import (
	"fmt"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// gradient is a colormap defined by color keypoints at positions in
// [0, 1]. Lookups blend between neighboring keypoints in Lab space.
type gradient []struct {
	col colorful.Color
	pos float64
}

// at returns the gradient color for t in [0, 1]. Values outside the
// range clamp to the endpoints.
func (g gradient) at(t float64) colorful.Color {
	if t <= g[0].pos {
		return g[0].col
	}
	if t >= g[len(g)-1].pos {
		return g[len(g)-1].col
	}
	for i := 0; i < len(g)-1; i++ {
		c1, c2 := g[i], g[i+1]
		if c1.pos <= t && t <= c2.pos {
			frac := (t - c1.pos) / (c2.pos - c1.pos)
			return c1.col.BlendLab(c2.col, frac).Clamped()
		}
	}
	return g[len(g)-1].col
}

// Keypoints sampled from the matplotlib viridis and inferno tables.
var colormaps = map[string]gradient{
	"viridis": {
		{colorful.Color{R: 0.267, G: 0.005, B: 0.329}, 0.0},
		{colorful.Color{R: 0.283, G: 0.141, B: 0.458}, 0.125},
		{colorful.Color{R: 0.254, G: 0.265, B: 0.530}, 0.25},
		{colorful.Color{R: 0.207, G: 0.372, B: 0.553}, 0.375},
		{colorful.Color{R: 0.164, G: 0.471, B: 0.558}, 0.5},
		{colorful.Color{R: 0.135, G: 0.659, B: 0.518}, 0.625},
		{colorful.Color{R: 0.267, G: 0.749, B: 0.441}, 0.75},
		{colorful.Color{R: 0.741, G: 0.873, B: 0.150}, 0.875},
		{colorful.Color{R: 0.993, G: 0.906, B: 0.144}, 1.0},
	},
	"inferno": {
		{colorful.Color{R: 0.001, G: 0.000, B: 0.014}, 0.0},
		{colorful.Color{R: 0.258, G: 0.039, B: 0.406}, 0.25},
		{colorful.Color{R: 0.579, G: 0.148, B: 0.404}, 0.5},
		{colorful.Color{R: 0.865, G: 0.317, B: 0.226}, 0.75},
		{colorful.Color{R: 0.988, G: 0.645, B: 0.040}, 0.9},
		{colorful.Color{R: 0.988, G: 0.998, B: 0.645}, 1.0},
	},
	"gray": {
		{colorful.Color{R: 0, G: 0, B: 0}, 0.0},
		{colorful.Color{R: 1, G: 1, B: 1}, 1.0},
	},
}

// DefaultColormap is used when a tool call does not name one.
const DefaultColormap = "viridis"

// Colormaps lists the available colormap names, sorted.
func Colormaps() []string {
	names := make([]string, 0, len(colormaps))
	for name := range colormaps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupColormap(name string) (gradient, error) {
	if name == "" {
		name = DefaultColormap
	}
	g, ok := colormaps[name]
	if !ok {
		return nil, fmt.Errorf("unknown colormap %q (available: %v)", name, Colormaps())
	}
	return g, nil
}
