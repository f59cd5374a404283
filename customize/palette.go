package customize

import (
	"fmt"
	"slices"
	"strings"
)

// schemes are the named community palettes, six colors each.
var schemes = map[string][]string{
	"default":    {"#3366cc", "#dc3912", "#ff9900", "#109618", "#990099", "#0099c6"},
	"pastel":     {"#ffb6c1", "#afeeee", "#fffacd", "#98fb98", "#d8bfd8", "#dda0dd"},
	"vivid":      {"#ff0000", "#00ff00", "#0000ff", "#ffff00", "#ff00ff", "#00ffff"},
	"monochrome": {"#000000", "#333333", "#666666", "#999999", "#cccccc", "#ffffff"},
	"colorful":   {"#e41a1c", "#377eb8", "#4daf4a", "#984ea3", "#ff7f00", "#ffff33"},
	"sequential": {"#fef0d9", "#fdd49e", "#fdbb84", "#fc8d59", "#e34a33", "#b30000"},
	"netxplore":  {"#313659", "#5f6289", "#324b4a", "#158582", "#9092bc", "#c4c6f1"},
}

// Palette returns a copy of the named color scheme. The empty name is
// "default".
func Palette(name string) ([]string, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = "default"
	}
	p, ok := schemes[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
	}

	return slices.Clone(p), nil
}

// Schemes lists the palette names in sorted order.
func Schemes() []string {
	names := make([]string, 0, len(schemes))
	for k := range schemes {
		names = append(names, k)
	}
	slices.Sort(names)

	return names
}
