package display

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/glamour"
)

var (
	rendererMu sync.Mutex
	renderer   *glamour.TermRenderer
)

// InitRenderer sets up markdown rendering for ShowContentRendered
func InitRenderer() error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	rendererMu.Lock()
	renderer = r
	rendererMu.Unlock()
	return nil
}

// RenderMarkdown renders md for the terminal. Without a renderer, or when
// rendering fails, md is returned unchanged.
func RenderMarkdown(md string) string {
	rendererMu.Lock()
	r := renderer
	rendererMu.Unlock()

	if r == nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

// ShowContentRendered prints md through the markdown renderer
func ShowContentRendered(w io.Writer, md string) {
	fmt.Fprint(w, RenderMarkdown(md))
}
