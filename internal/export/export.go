// Package export writes figures and trajectories to image files.
package export

import (
	"fmt"
	"os"

	"github.com/binnev/lissajous-patterns/internal/session"
)

// DefaultSize is the page edge in pixels, a 5 inch figure at 100 dpi.
const DefaultSize = 500

// SaveFigure writes base.png and base.svg and returns the paths written.
func SaveFigure(base string, fig *session.Figure, size int) ([]string, error) {
	if size <= 0 {
		size = DefaultSize
	}
	pngPath := base + ".png"
	if err := WritePNG(pngPath, fig, size); err != nil {
		return nil, fmt.Errorf("save %s: %w", pngPath, err)
	}
	svgPath := base + ".svg"
	if err := os.WriteFile(svgPath, []byte(FigureToSVG(fig, size)), 0644); err != nil {
		return []string{pngPath}, fmt.Errorf("save %s: %w", svgPath, err)
	}
	return []string{pngPath, svgPath}, nil
}
