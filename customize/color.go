package customize

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Interpolate blends two hex colors channel by channel in RGB space.
// ratio is clamped to [0,1]; the result is a lowercase #rrggbb string.
func Interpolate(from, to string, ratio float64) (string, error) {
	a, err := colorful.Hex(from)
	if err != nil {
		return "", fmt.Errorf("%w: color %q: %v", ErrInvalidSettings, from, err)
	}
	b, err := colorful.Hex(to)
	if err != nil {
		return "", fmt.Errorf("%w: color %q: %v", ErrInvalidSettings, to, err)
	}
	switch {
	case ratio < 0:
		ratio = 0
	case ratio > 1:
		ratio = 1
	}

	return a.BlendRgb(b, ratio).Clamped().Hex(), nil
}
